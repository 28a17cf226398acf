package api

import (
	"strings"
	"time"

	"github.com/terraincognita07/teachflow/internal/services"
)

// parseTimestampOrDay accepts a timestamp or a bare day, which starts at local
// midnight of the caller.
func parseTimestampOrDay(raw string, location *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if start, err := services.ParseLocalDay(value, location); err == nil {
		return start, nil
	}
	return services.ParseTimestamp(value, location)
}

func (input contractorInput) toService() services.ContractorInput {
	return services.ContractorInput{
		Name:                       input.Name,
		ContactInfo:                input.ContactInfo,
		DefaultHourlyRate:          input.DefaultHourlyRate,
		Currency:                   input.Currency,
		PaymentFrequency:           input.PaymentFrequency,
		PaymentTermsDays:           input.PaymentTermsDays,
		MinCancellationNoticeHours: input.MinCancellationNoticeHours,
		CancellationPenaltyRate:    input.CancellationPenaltyRate,
		Notes:                      input.Notes,
	}
}

func (input studentInput) toService(location *time.Location) (services.StudentInput, error) {
	result := services.StudentInput{
		ContractorID:     input.ContractorID,
		Name:             input.Name,
		Email:            input.Email,
		PhoneNumber:      input.PhoneNumber,
		NativeLanguage:   input.NativeLanguage,
		ProficiencyLevel: input.ProficiencyLevel,
		LearningGoals:    input.LearningGoals,
		Notes:            input.Notes,
		Status:           input.Status,
	}
	if input.Package == nil {
		return result, nil
	}

	expiresAt, err := optionalTimestamp(input.Package.ExpiresAt, location)
	if err != nil {
		return services.StudentInput{}, err
	}
	result.Package = &services.PackageInput{
		TotalClasses:     input.Package.TotalClasses,
		RemainingClasses: input.Package.RemainingClasses,
		Value:            input.Package.Value,
		Currency:         input.Package.Currency,
		ExpiresAt:        expiresAt,
		ClassesPerWeek:   input.Package.ClassesPerWeek,
	}
	return result, nil
}

func (input classInput) toService(location *time.Location) (services.ClassInput, error) {
	start, err := services.ParseTimestamp(input.StartTime, location)
	if err != nil {
		return services.ClassInput{}, err
	}
	return services.ClassInput{
		StudentID:          strings.TrimSpace(input.StudentID),
		ContractorID:       strings.TrimSpace(input.ContractorID),
		StartTime:          start,
		DurationMinutes:    input.DurationMinutes,
		LocationType:       strings.TrimSpace(input.LocationType),
		VirtualMeetingLink: strings.TrimSpace(input.VirtualMeetingLink),
		CustomRate:         input.CustomRate,
		ClassNotes:         input.ClassNotes,
	}, nil
}

func (input paymentInput) toService(location *time.Location) (services.PaymentInput, error) {
	dueDate, err := services.ParseDay(input.DueDate)
	if err != nil {
		return services.PaymentInput{}, err
	}
	receivedDate, err := optionalTimestamp(input.ReceivedDate, location)
	if err != nil {
		return services.PaymentInput{}, err
	}
	return services.PaymentInput{
		ClassID:      strings.TrimSpace(input.ClassID),
		StudentID:    strings.TrimSpace(input.StudentID),
		ContractorID: strings.TrimSpace(input.ContractorID),
		Amount:       input.Amount,
		Currency:     input.Currency,
		Status:       strings.TrimSpace(input.Status),
		DueDate:      dueDate,
		ReceivedDate: receivedDate,
		Reference:    strings.TrimSpace(input.Reference),
		Notes:        input.Notes,
	}, nil
}
