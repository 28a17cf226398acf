package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StudentStatusActive   = "active"
	StudentStatusInactive = "inactive"
	StudentStatusPaused   = "paused"
	StudentStatusLead     = "lead"
	StudentStatusArchived = "archived"
)

// ClassPackage is a prepaid bundle of classes tracked by remaining count.
type ClassPackage struct {
	TotalClasses     int             `json:"total_classes"`
	RemainingClasses int             `json:"remaining_classes"`
	Value            decimal.Decimal `json:"value_per_package"`
	Currency         string          `json:"currency"`
	ExpiresAt        *time.Time      `json:"expires_at,omitempty"`
	ClassesPerWeek   *int            `json:"classes_per_week,omitempty"`
}

type Student struct {
	ID               string        `gorm:"primaryKey" json:"id"`
	UserID           string        `gorm:"not null;index" json:"user_id"`
	ContractorID     *string       `gorm:"index" json:"contractor_id"`
	Contractor       *Contractor   `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	Name             string        `gorm:"not null" json:"name"`
	Email            string        `json:"email,omitempty"`
	PhoneNumber      string        `json:"phone_number,omitempty"`
	NativeLanguage   string        `json:"native_language,omitempty"`
	ProficiencyLevel string        `json:"proficiency_level,omitempty"`
	LearningGoals    string        `json:"learning_goals,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	Status           string        `gorm:"not null;default:active" json:"status"`
	Package          *ClassPackage `gorm:"column:package_details;serializer:json" json:"package_details"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func (student *Student) BeforeCreate(*gorm.DB) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	return nil
}

func IsValidStudentStatus(status string) bool {
	switch status {
	case StudentStatusActive, StudentStatusInactive, StudentStatusPaused, StudentStatusLead, StudentStatusArchived:
		return true
	default:
		return false
	}
}

type StudentUsage struct {
	Classes  int64 `json:"classes"`
	Payments int64 `json:"payments"`
}

func (usage StudentUsage) InUse() bool {
	return usage.Classes > 0 || usage.Payments > 0
}
