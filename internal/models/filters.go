package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StudentFilter struct {
	Status       string
	ContractorID string
	Search       string
}

type ClassFilter struct {
	StudentID    string
	ContractorID string
	Status       string
	StartFrom    *time.Time
	StartTo      *time.Time
}

type PaymentFilter struct {
	Status       string
	ContractorID string
	DueFrom      *time.Time
	DueTo        *time.Time
}

// PaymentSumFilter selects the payments added up by reporting queries.
// Received bounds apply to received_date, DueUntil to due_date.
type PaymentSumFilter struct {
	Status       string
	ReceivedFrom *time.Time
	ReceivedTo   *time.Time
	DueUntil     *time.Time
}

type ContractorTotal struct {
	ContractorID string          `json:"contractor_id"`
	Currency     string          `json:"currency"`
	Total        decimal.Decimal `json:"total"`
}
