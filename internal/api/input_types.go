package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/teachflow/internal/models"
)

type registerInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	Name            string `json:"name" form:"name"`
	Timezone        string `json:"timezone" form:"timezone"`
	Currency        string `json:"default_currency" form:"default_currency"`
}

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type profileInput struct {
	Name            string `json:"name"`
	PhoneNumber     string `json:"phone_number"`
	Timezone        string `json:"timezone"`
	DefaultCurrency string `json:"default_currency"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type contractorInput struct {
	Name                       string             `json:"name"`
	ContactInfo                models.ContactInfo `json:"contact_info"`
	DefaultHourlyRate          decimal.Decimal    `json:"default_hourly_rate"`
	Currency                   string             `json:"currency"`
	PaymentFrequency           string             `json:"payment_frequency"`
	PaymentTermsDays           int                `json:"payment_terms_days"`
	MinCancellationNoticeHours *int               `json:"min_cancellation_notice_hours"`
	CancellationPenaltyRate    decimal.Decimal    `json:"cancellation_penalty_rate"`
	Notes                      string             `json:"notes"`
}

type packageInput struct {
	TotalClasses     int             `json:"total_classes"`
	RemainingClasses *int            `json:"remaining_classes"`
	Value            decimal.Decimal `json:"value_per_package"`
	Currency         string          `json:"currency"`
	ExpiresAt        string          `json:"expires_at"`
	ClassesPerWeek   *int            `json:"classes_per_week"`
}

type studentInput struct {
	ContractorID     string        `json:"contractor_id"`
	Name             string        `json:"name"`
	Email            string        `json:"email"`
	PhoneNumber      string        `json:"phone_number"`
	NativeLanguage   string        `json:"native_language"`
	ProficiencyLevel string        `json:"proficiency_level"`
	LearningGoals    string        `json:"learning_goals"`
	Notes            string        `json:"notes"`
	Status           string        `json:"status"`
	Package          *packageInput `json:"package_details"`
}

type classInput struct {
	StudentID          string           `json:"student_id"`
	ContractorID       string           `json:"contractor_id"`
	StartTime          string           `json:"start_time"`
	DurationMinutes    int              `json:"duration_minutes"`
	LocationType       string           `json:"location_type"`
	VirtualMeetingLink string           `json:"virtual_meeting_link"`
	CustomRate         *decimal.Decimal `json:"custom_rate"`
	ClassNotes         string           `json:"class_notes"`
}

type classStatusInput struct {
	Status     string `json:"status"`
	ClassNotes string `json:"class_notes"`
}

type paymentInput struct {
	ClassID      string          `json:"class_id"`
	StudentID    string          `json:"student_id"`
	ContractorID string          `json:"contractor_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
	DueDate      string          `json:"due_date"`
	ReceivedDate string          `json:"received_date"`
	Reference    string          `json:"reference"`
	Notes        string          `json:"notes"`
}

type paymentStatusInput struct {
	Status       string `json:"status"`
	ReceivedDate string `json:"received_date"`
}

// optionalTimestamp parses an optional timestamp or day field of a request body.
func optionalTimestamp(raw string, location *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := parseTimestampOrDay(raw, location)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
