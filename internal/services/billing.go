package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/teachflow/internal/models"
)

const paymentNotCreatedWarning = "payment not created: contractor not found"

// ClassRate is the flat amount charged for one class.
func ClassRate(class models.Class, contractor models.Contractor) decimal.Decimal {
	if class.CustomRate.Valid {
		return class.CustomRate.Decimal.Round(2)
	}
	return contractor.DefaultHourlyRate.Round(2)
}

// PaymentDueDate returns the calendar day, stored as UTC midnight, that falls termsDays
// after the day completedAt lands on in location.
func PaymentDueDate(completedAt time.Time, location *time.Location, termsDays int) time.Time {
	if location == nil {
		location = time.UTC
	}
	local := completedAt.In(location)
	return time.Date(local.Year(), local.Month(), local.Day()+termsDays, 0, 0, 0, 0, time.UTC)
}

// DerivePayment builds the pending payment owed for a completed class.
func DerivePayment(caller Caller, class models.Class, contractor models.Contractor, completedAt time.Time) models.Payment {
	classID := class.ID
	return models.Payment{
		UserID:       caller.UserID,
		ClassID:      &classID,
		StudentID:    class.StudentID,
		ContractorID: contractor.ID,
		Amount:       ClassRate(class, contractor),
		Currency:     contractor.Currency,
		Status:       models.PaymentStatusPending,
		DueDate:      PaymentDueDate(completedAt, caller.Location(), contractor.PaymentTermsDays),
	}
}
