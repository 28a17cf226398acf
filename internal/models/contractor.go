package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentFrequencyPerClass = "per_class"
	PaymentFrequencyWeekly   = "weekly"
	PaymentFrequencyBiweekly = "biweekly"
	PaymentFrequencyMonthly  = "monthly"
)

type ContactInfo struct {
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Website       string `json:"website,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
}

type Contractor struct {
	ID                         string          `gorm:"primaryKey" json:"id"`
	UserID                     string          `gorm:"not null;index" json:"user_id"`
	Name                       string          `gorm:"not null" json:"name"`
	ContactInfo                ContactInfo     `gorm:"serializer:json" json:"contact_info"`
	DefaultHourlyRate          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"default_hourly_rate"`
	Currency                   string          `gorm:"not null" json:"currency"`
	PaymentFrequency           string          `gorm:"not null;default:monthly" json:"payment_frequency"`
	PaymentTermsDays           int             `gorm:"not null;default:0" json:"payment_terms_days"`
	MinCancellationNoticeHours int             `gorm:"not null;default:24" json:"min_cancellation_notice_hours"`
	CancellationPenaltyRate    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"cancellation_penalty_rate"`
	Notes                      string          `json:"notes,omitempty"`
	CreatedAt                  time.Time       `json:"created_at"`
	UpdatedAt                  time.Time       `json:"updated_at"`
}

func (contractor *Contractor) BeforeCreate(*gorm.DB) error {
	if contractor.ID == "" {
		contractor.ID = uuid.NewString()
	}
	return nil
}

// ContractorUsage counts the records that keep a contractor from being deleted.
type ContractorUsage struct {
	Students int64 `json:"students"`
	Classes  int64 `json:"classes"`
	Payments int64 `json:"payments"`
}

func (usage ContractorUsage) InUse() bool {
	return usage.Students > 0 || usage.Classes > 0 || usage.Payments > 0
}
