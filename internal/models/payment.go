package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusReceived  = "received"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusOverdue   = "overdue"
)

type Payment struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	UserID       string          `gorm:"not null;index" json:"user_id"`
	ClassID      *string         `gorm:"uniqueIndex" json:"class_id"`
	Class        *Class          `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	StudentID    string          `gorm:"not null;index" json:"student_id"`
	Student      *Student        `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	ContractorID string          `gorm:"not null;index" json:"contractor_id"`
	Contractor   *Contractor     `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency     string          `gorm:"not null" json:"currency"`
	Status       string          `gorm:"not null;default:pending" json:"status"`
	DueDate      time.Time       `gorm:"type:date;not null;index" json:"due_date"`
	ReceivedDate *time.Time      `json:"received_date"`
	Reference    string          `gorm:"not null;default:''" json:"reference,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (payment *Payment) BeforeCreate(*gorm.DB) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	return nil
}

func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusReceived, PaymentStatusCancelled, PaymentStatusOverdue:
		return true
	default:
		return false
	}
}
