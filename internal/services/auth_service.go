package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/teachflow/internal/models"
	"github.com/terraincognita07/teachflow/internal/security"
	"gorm.io/gorm"
)

var (
	ErrAuthCredentialsInvalid error = &serviceError{kind: ErrValidation, message: "email and password are required"}
	ErrInvalidCredentials     error = &serviceError{kind: ErrUnauthenticated, message: "invalid email or password"}
	ErrEmailTaken             error = &serviceError{kind: ErrInUse, message: "email is already registered"}
	ErrWeakPassword           error = &serviceError{kind: ErrValidation, message: "password must be at least 8 characters with upper case, lower case and a digit"}
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID string) (models.User, error)
	Create(user *models.User) error
}

type RegistrationInput struct {
	Email    string
	Password string
	Name     string
	Timezone string
	Currency string
}

type AuthService struct {
	users AuthUserRepository
	// dummyHash keeps login timing similar for unknown emails.
	dummyHash string
}

func NewAuthService(users AuthUserRepository) *AuthService {
	dummyHash, _ := security.HashPassword("teachflow-dummy-password")
	return &AuthService{users: users, dummyHash: dummyHash}
}

func (service *AuthService) Register(input RegistrationInput) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
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
	currency, err := normalizeCurrency(input.Currency, models.DefaultCurrency)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, persistence("check email", err)
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:           email,
		PasswordHash:    passwordHash,
		Name:            name,
		DefaultCurrency: currency,
		Timezone:        timezone,
		CreatedAt:       time.Now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, persistence("create user", err)
	}
	return user, nil
}

func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = security.PasswordMatches(service.dummyHash, password)
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, persistence("load user", err)
	}

	if !security.PasswordMatches(user.PasswordHash, password) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// ResolveUser loads the user behind a session. Missing users are unauthenticated.
func (service *AuthService) ResolveUser(userID string) (models.User, error) {
	if strings.TrimSpace(userID) == "" {
		return models.User{}, ErrUnauthenticated
	}
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUnauthenticated
	}
	if err != nil {
		return models.User{}, persistence("load user", err)
	}
	return user, nil
}

func HashPassword(password string) (string, error) {
	hash, err := security.HashPassword(password)
	if err != nil {
		return "", persistence("hash password", err)
	}
	return hash, nil
}
