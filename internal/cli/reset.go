package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/teachflow/internal/db"
	"github.com/terraincognita07/teachflow/internal/security"
	"github.com/terraincognita07/teachflow/internal/services"
	"gorm.io/gorm"
)

const (
	temporaryPasswordLength = 12
	maxTemporaryAttempts    = 32
)

var errPasswordMismatch = errors.New("passwords do not match")

// RunResetPasswordCommand replaces the account password with a generated one and prints it.
func RunResetPasswordCommand(dbPath string, email string, out io.Writer, log zerolog.Logger) error {
	database, err := db.OpenSQLite(dbPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	temporaryPassword, err := resetPassword(db.NewRepositories(database).Users, email)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "Change it after the next login.")
	return nil
}

// RunSetPasswordCommand prompts twice for a new password without echo and stores it.
func RunSetPasswordCommand(dbPath string, email string, stdin *os.File, out io.Writer, log zerolog.Logger) error {
	fmt.Fprint(out, "New password: ")
	first, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(out, "Repeat password: ")
	second, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return errPasswordMismatch
	}

	database, err := db.OpenSQLite(dbPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if err := setPassword(db.NewRepositories(database).Users, email, string(first)); err != nil {
		return err
	}

	fmt.Fprintln(out, "Password updated")
	return nil
}

func resetPassword(users *db.UserRepository, email string) (string, error) {
	temporaryPassword, err := generateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	if err := storePassword(users, email, temporaryPassword); err != nil {
		return "", err
	}
	return temporaryPassword, nil
}

func setPassword(users *db.UserRepository, email string, password string) error {
	if err := services.ValidatePasswordStrength(password); err != nil {
		return errors.New(services.PublicMessage(err))
	}
	return storePassword(users, email, password)
}

func storePassword(users *db.UserRepository, email string, password string) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return fmt.Errorf("invalid email address %q", email)
	}

	user, err := users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	passwordHash, err := services.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePassword(user.ID, passwordHash); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

// generateTemporaryPassword retries until the result satisfies the password policy.
func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	for attempt := 0; attempt < maxTemporaryAttempts; attempt++ {
		candidate, err := security.RandomString(length, security.TemporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(candidate) == nil {
			return candidate, nil
		}
	}
	return "", errors.New("could not generate a password satisfying the policy")
}
