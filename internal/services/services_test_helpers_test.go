package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/teachflow/internal/db"
	"github.com/terraincognita07/teachflow/internal/models"
)

type testStore struct {
	repos *db.Repositories
}

func (store testStore) Transaction(fn func(repos Repositories) error) error {
	return store.repos.Transaction(func(tx *db.Repositories) error {
		return fn(bindRepositories(tx))
	})
}

func bindRepositories(repos *db.Repositories) Repositories {
	return Repositories{
		Contractors: repos.Contractors,
		Students:    repos.Students,
		Classes:     repos.Classes,
		Payments:    repos.Payments,
	}
}

type testEnv struct {
	repos      *db.Repositories
	classes    *ClassService
	payments   *PaymentService
	students   *StudentService
	contracts  *ContractorService
	dashboard  *DashboardService
	auth       *AuthService
	profile    *ProfileService
	owner      Caller
	stranger   Caller
	contractor models.Contractor
	student    models.Student
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "services-test.db"), zerolog.Nop())
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repos := db.NewRepositories(database)
	bound := bindRepositories(repos)
	store := testStore{repos: repos}

	env := &testEnv{
		repos:     repos,
		classes:   NewClassService(bound, store, zerolog.Nop()),
		payments:  NewPaymentService(bound, store),
		students:  NewStudentService(bound),
		contracts: NewContractorService(bound),
		dashboard: NewDashboardService(bound),
		auth:      NewAuthService(repos.Users),
		profile:   NewProfileService(repos.Users),
	}
	env.owner = createTestCaller(t, repos, "owner@example.com")
	env.stranger = createTestCaller(t, repos, "stranger@example.com")

	env.contractor, err = env.contracts.Create(env.owner, ContractorInput{
		Name:              "Language School",
		DefaultHourlyRate: decimal.NewFromInt(50),
		Currency:          "BRL",
		PaymentFrequency:  models.PaymentFrequencyMonthly,
		PaymentTermsDays:  30,
	})
	require.NoError(t, err)

	env.student, err = env.students.Create(env.owner, StudentInput{
		Name:         "Ana",
		ContractorID: env.contractor.ID,
	})
	require.NoError(t, err)
	return env
}

func createTestCaller(t *testing.T, repos *db.Repositories, email string) Caller {
	t.Helper()

	user := models.User{
		Email:           email,
		PasswordHash:    "hash",
		Name:            "Teacher",
		DefaultCurrency: "BRL",
		Timezone:        "UTC",
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, repos.Users.Create(&user))
	return CallerFromUser(user)
}

func (env *testEnv) scheduleClass(t *testing.T, start time.Time) models.Class {
	t.Helper()

	class, err := env.classes.Create(env.owner, ClassInput{
		StudentID:       env.student.ID,
		ContractorID:    env.contractor.ID,
		StartTime:       start,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	return class
}

func fixedClock(moment time.Time) func() time.Time {
	return func() time.Time {
		return moment
	}
}

func countRows(t *testing.T, repos *db.Repositories, userID string) (int, int) {
	t.Helper()

	classes, err := repos.Classes.ListByUser(userID, models.ClassFilter{})
	require.NoError(t, err)
	payments, err := repos.Payments.ListByUser(userID, models.PaymentFilter{})
	require.NoError(t, err)
	return len(classes), len(payments)
}
