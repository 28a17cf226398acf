package cli

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/teachflow/internal/db"
	"github.com/terraincognita07/teachflow/internal/models"
	"github.com/terraincognita07/teachflow/internal/security"
	"github.com/terraincognita07/teachflow/internal/services"
)

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(4)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 8 {
		t.Fatalf("generateTemporaryPassword minimum len = %d, want 8", len(password))
	}
}

func TestGenerateTemporaryPasswordSatisfiesPolicy(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(24)
	require.NoError(t, err)
	require.Len(t, password, 24)
	require.NoError(t, services.ValidatePasswordStrength(password))

	for _, char := range password {
		if !strings.ContainsRune(security.TemporaryPasswordAlphabet, char) {
			t.Fatalf("password %q contains char %q outside alphabet", password, char)
		}
	}
}

func openUsers(t *testing.T) *db.UserRepository {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "teachflow-cli.db"), zerolog.Nop())
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	users := db.NewRepositories(database).Users
	hash, err := services.HashPassword("OldPassword1")
	require.NoError(t, err)
	require.NoError(t, users.Create(&models.User{
		Email:           "teacher@example.com",
		PasswordHash:    hash,
		Name:            "Teacher",
		DefaultCurrency: models.DefaultCurrency,
		Timezone:        models.DefaultTimezone,
		CreatedAt:       time.Now().UTC(),
	}))
	return users
}

func TestResetPasswordStoresTemporaryHash(t *testing.T) {
	t.Parallel()

	users := openUsers(t)
	temporary, err := resetPassword(users, "  Teacher@Example.com ")
	require.NoError(t, err)

	user, err := users.FindByNormalizedEmail("teacher@example.com")
	require.NoError(t, err)
	require.True(t, security.PasswordMatches(user.PasswordHash, temporary))
}

func TestResetPasswordRejectsUnknownOrInvalidEmail(t *testing.T) {
	t.Parallel()

	users := openUsers(t)

	_, err := resetPassword(users, "missing@example.com")
	require.ErrorContains(t, err, "not found")

	_, err = resetPassword(users, "not-an-email")
	require.ErrorContains(t, err, "invalid email")
}

func TestSetPasswordEnforcesPolicy(t *testing.T) {
	t.Parallel()

	users := openUsers(t)

	err := setPassword(users, "teacher@example.com", "weak")
	require.Error(t, err)
	require.Equal(t, services.PublicMessage(services.ErrWeakPassword), err.Error())

	require.NoError(t, setPassword(users, "teacher@example.com", "NewPassword2"))
	user, err := users.FindByNormalizedEmail("teacher@example.com")
	require.NoError(t, err)
	require.True(t, security.PasswordMatches(user.PasswordHash, "NewPassword2"))
}
