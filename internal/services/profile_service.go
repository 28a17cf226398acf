package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/teachflow/internal/models"
	"github.com/terraincognita07/teachflow/internal/security"
	"gorm.io/gorm"
)

type ProfileUserRepository interface {
	FindByID(userID string) (models.User, error)
	UpdateByID(userID string, updates map[string]any) error
	UpdatePassword(userID string, passwordHash string) error
}

type ProfileInput struct {
	Name            string
	PhoneNumber     string
	Timezone        string
	DefaultCurrency string
}

type ProfileService struct {
	users ProfileUserRepository
}

func NewProfileService(users ProfileUserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// NormalizeTimezone accepts IANA zone names. Empty input selects the default zone.
func NormalizeTimezone(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return models.DefaultTimezone, nil
	}
	if strings.EqualFold(name, "local") {
		return "", invalid("invalid timezone %q", name)
	}
	if _, err := time.LoadLocation(name); err != nil {
		return "", invalid("invalid timezone %q", name)
	}
	return name, nil
}

func (service *ProfileService) Get(caller Caller) (models.User, error) {
	if err := requireCaller(caller); err != nil {
		return models.User{}, err
	}
	user, err := service.users.FindByID(caller.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUnauthenticated
	}
	if err != nil {
		return models.User{}, persistence("load profile", err)
	}
	return user, nil
}

func (service *ProfileService) Update(caller Caller, input ProfileInput) (models.User, error) {
	if err := requireCaller(caller); err != nil {
		return models.User{}, err
	}
	name, err := normalizeRequiredName("name", input.Name)
	if err != nil {
		return models.User{}, err
	}
	timezone, err := NormalizeTimezone(input.Timezone)
	if err != nil {
		return models.User{}, err
	}
	currency, err := normalizeCurrency(input.DefaultCurrency, caller.DefaultCurrency())
	if err != nil {
		return models.User{}, err
	}

	updates := map[string]any{
		"name":             name,
		"phone_number":     strings.TrimSpace(input.PhoneNumber),
		"timezone":         timezone,
		"default_currency": currency,
		"updated_at":       time.Now().UTC(),
	}
	if err := service.users.UpdateByID(caller.UserID, updates); err != nil {
		return models.User{}, persistence("update profile", err)
	}
	return service.Get(caller)
}

func (service *ProfileService) ChangePassword(caller Caller, currentPassword string, newPassword string) error {
	user, err := service.Get(caller)
	if err != nil {
		return err
	}
	if !security.PasswordMatches(user.PasswordHash, strings.TrimSpace(currentPassword)) {
		return invalid("current password is incorrect")
	}
	password := strings.TrimSpace(newPassword)
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := service.users.UpdatePassword(caller.UserID, hash); err != nil {
		return persistence("update password", err)
	}
	return nil
}
