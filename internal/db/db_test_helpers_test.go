package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/teachflow/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "teachflow-test.db"), zerolog.Nop())
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func createTestUser(t *testing.T, repos *Repositories, email string) models.User {
	t.Helper()

	user := models.User{
		Email:           email,
		PasswordHash:    "hash",
		Name:            "Teacher",
		DefaultCurrency: models.DefaultCurrency,
		Timezone:        models.DefaultTimezone,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, repos.Users.Create(&user))
	return user
}

func createTestContractor(t *testing.T, repos *Repositories, userID string) models.Contractor {
	t.Helper()

	contractor := models.Contractor{
		UserID:            userID,
		Name:              "Language School",
		DefaultHourlyRate: decimal.NewFromInt(50),
		Currency:          "BRL",
		PaymentFrequency:  models.PaymentFrequencyMonthly,
		PaymentTermsDays:  30,
	}
	require.NoError(t, repos.Contractors.Create(&contractor))
	return contractor
}

func createTestStudent(t *testing.T, repos *Repositories, userID string, contractorID *string, name string) models.Student {
	t.Helper()

	student := models.Student{
		UserID:       userID,
		ContractorID: contractorID,
		Name:         name,
		Status:       models.StudentStatusActive,
	}
	require.NoError(t, repos.Students.Create(&student))
	return student
}

func createTestClass(t *testing.T, repos *Repositories, userID string, studentID string, contractorID string, start time.Time) models.Class {
	t.Helper()

	class := models.Class{
		UserID:          userID,
		StudentID:       studentID,
		ContractorID:    contractorID,
		StartTime:       start.UTC(),
		EndTime:         models.ClassEndTime(start, 60).UTC(),
		DurationMinutes: 60,
		Status:          models.ClassStatusScheduled,
		LocationType:    models.LocationOnline,
	}
	require.NoError(t, repos.Classes.Create(&class))
	return class
}
