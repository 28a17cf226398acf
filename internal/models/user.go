package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultCurrency = "BRL"
	DefaultTimezone = "America/Sao_Paulo"
)

type User struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	Name            string    `gorm:"not null" json:"name"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	DefaultCurrency string    `gorm:"not null;default:BRL" json:"default_currency"`
	Timezone        string    `gorm:"not null;default:America/Sao_Paulo" json:"timezone"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (user *User) BeforeCreate(*gorm.DB) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return nil
}
