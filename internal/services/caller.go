package services

import (
	"strings"
	"time"

	"github.com/terraincognita07/teachflow/internal/models"
)

// Caller is the authenticated identity every core operation acts on behalf of.
type Caller struct {
	UserID   string
	Email    string
	Name     string
	Currency string
	Timezone string
}

func CallerFromUser(user models.User) Caller {
	return Caller{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Currency: user.DefaultCurrency,
		Timezone: user.Timezone,
	}
}

func (caller Caller) Location() *time.Location {
	name := strings.TrimSpace(caller.Timezone)
	if name == "" {
		return time.UTC
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

func (caller Caller) DefaultCurrency() string {
	if currency := strings.TrimSpace(caller.Currency); currency != "" {
		return currency
	}
	return models.DefaultCurrency
}

func requireCaller(caller Caller) error {
	if strings.TrimSpace(caller.UserID) == "" {
		return ErrUnauthenticated
	}
	return nil
}
