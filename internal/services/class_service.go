package services

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/terraincognita07/teachflow/internal/models"
)

const (
	defaultClassDurationMinutes = 60
	maxClassDurationMinutes     = 24 * 60
)

type ClassInput struct {
	StudentID          string
	ContractorID       string
	StartTime          time.Time
	DurationMinutes    int
	LocationType       string
	VirtualMeetingLink string
	CustomRate         *decimal.Decimal
	ClassNotes         string
}

type ClassListFilter struct {
	StudentID    string
	ContractorID string
	Status       string
	StartFrom    *time.Time
	StartTo      *time.Time
}

// ClassStatusResult describes what a status change did to billing.
type ClassStatusResult struct {
	Class          models.Class    `json:"class"`
	Payment        *models.Payment `json:"payment,omitempty"`
	PaymentCreated bool            `json:"payment_created"`
	Warning        string          `json:"warning,omitempty"`
}

type ClassService struct {
	repos Repositories
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewClassService(repos Repositories, store Store, log zerolog.Logger) *ClassService {
	return &ClassService{
		repos: repos,
		store: store,
		log:   log,
		now:   time.Now,
	}
}

func (service *ClassService) List(caller Caller, filter ClassListFilter) ([]models.Class, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if filter.Status != "" && !models.IsValidClassStatus(filter.Status) {
		return nil, invalid("invalid class status %q", filter.Status)
	}

	classes, err := service.repos.Classes.ListByUser(caller.UserID, models.ClassFilter{
		StudentID:    filter.StudentID,
		ContractorID: filter.ContractorID,
		Status:       filter.Status,
		StartFrom:    filter.StartFrom,
		StartTo:      filter.StartTo,
	})
	if err != nil {
		return nil, persistence("list classes", err)
	}
	return classes, nil
}

func (service *ClassService) Get(caller Caller, classID string) (models.Class, error) {
	if err := requireCaller(caller); err != nil {
		return models.Class{}, err
	}
	class, found, err := service.repos.Classes.FindByIDForUser(classID, caller.UserID)
	if err != nil {
		return models.Class{}, persistence("load class", err)
	}
	if !found {
		return models.Class{}, notFound("class not found")
	}
	return class, nil
}

// Create schedules a class after checking that both the student and the contractor
// belong to the caller. Nothing is written when either check fails.
func (service *ClassService) Create(caller Caller, input ClassInput) (models.Class, error) {
	if err := requireCaller(caller); err != nil {
		return models.Class{}, err
	}
	class, err := buildClass(caller, input)
	if err != nil {
		return models.Class{}, err
	}

	err = service.store.Transaction(func(tx Repositories) error {
		_, studentFound, err := tx.Students.FindByIDForUser(class.StudentID, caller.UserID)
		if err != nil {
			return persistence("load student", err)
		}
		_, contractorFound, err := tx.Contractors.FindByIDForUser(class.ContractorID, caller.UserID)
		if err != nil {
			return persistence("load contractor", err)
		}
		if !studentFound || !contractorFound {
			return notFound("student or contractor not found")
		}

		if err := tx.Classes.Create(&class); err != nil {
			return persistence("create class", err)
		}
		return nil
	})
	if err != nil {
		return models.Class{}, err
	}
	return class, nil
}

func buildClass(caller Caller, input ClassInput) (models.Class, error) {
	if input.StudentID == "" || input.ContractorID == "" {
		return models.Class{}, invalid("student and contractor are required")
	}
	if input.StartTime.IsZero() {
		return models.Class{}, invalid("start time is required")
	}

	duration := input.DurationMinutes
	if duration == 0 {
		duration = defaultClassDurationMinutes
	}
	if duration < 0 || duration > maxClassDurationMinutes {
		return models.Class{}, invalid("duration must be between 1 and %d minutes", maxClassDurationMinutes)
	}

	locationType := input.LocationType
	if locationType == "" {
		locationType = models.LocationOnline
	}
	if !models.IsValidLocationType(locationType) {
		return models.Class{}, invalid("invalid location type %q", locationType)
	}

	notes, err := normalizeNotes("class notes", input.ClassNotes)
	if err != nil {
		return models.Class{}, err
	}

	var customRate decimal.NullDecimal
	if input.CustomRate != nil {
		if err := requireNonNegative("custom rate", *input.CustomRate); err != nil {
			return models.Class{}, err
		}
		customRate = decimal.NewNullDecimal(input.CustomRate.Round(2))
	}

	start := input.StartTime.UTC()
	return models.Class{
		UserID:             caller.UserID,
		StudentID:          input.StudentID,
		ContractorID:       input.ContractorID,
		StartTime:          start,
		EndTime:            models.ClassEndTime(start, duration),
		DurationMinutes:    duration,
		Status:             models.ClassStatusScheduled,
		LocationType:       locationType,
		VirtualMeetingLink: input.VirtualMeetingLink,
		CustomRate:         customRate,
		ClassNotes:         notes,
	}, nil
}

// UpdateStatus records the new status and notes. Completing a class bills it once:
// the payment is derived in the same transaction, and a class that already has a
// payment keeps it.
func (service *ClassService) UpdateStatus(caller Caller, classID string, status string, notes string) (ClassStatusResult, error) {
	if err := requireCaller(caller); err != nil {
		return ClassStatusResult{}, err
	}
	if !models.IsValidClassStatus(status) {
		return ClassStatusResult{}, invalid("invalid class status %q", status)
	}
	normalizedNotes, err := normalizeNotes("class notes", notes)
	if err != nil {
		return ClassStatusResult{}, err
	}

	var result ClassStatusResult
	err = service.store.Transaction(func(tx Repositories) error {
		class, found, err := tx.Classes.FindByIDForUser(classID, caller.UserID)
		if err != nil {
			return persistence("load class", err)
		}
		if !found {
			return notFound("class not found")
		}

		updated, err := tx.Classes.UpdateStatusForUser(class.ID, caller.UserID, status, normalizedNotes)
		if err != nil {
			return persistence("update class status", err)
		}
		if !updated {
			return notFound("class not found")
		}
		class.Status = status
		class.ClassNotes = normalizedNotes
		result = ClassStatusResult{Class: class}

		if status != models.ClassStatusCompleted {
			return nil
		}
		return service.billCompletedClass(tx, caller, class, &result)
	})
	if err != nil {
		return ClassStatusResult{}, err
	}

	if result.Warning != "" {
		service.log.Warn().
			Str("user_id", caller.UserID).
			Str("class_id", result.Class.ID).
			Str("contractor_id", result.Class.ContractorID).
			Msg(result.Warning)
	}
	return result, nil
}

func (service *ClassService) billCompletedClass(tx Repositories, caller Caller, class models.Class, result *ClassStatusResult) error {
	existing, found, err := tx.Payments.FindByClassForUser(class.ID, caller.UserID)
	if err != nil {
		return persistence("load class payment", err)
	}
	if found {
		result.Payment = &existing
		return nil
	}

	contractor, found, err := tx.Contractors.FindByIDForUser(class.ContractorID, caller.UserID)
	if err != nil {
		return persistence("load contractor", err)
	}
	if !found {
		result.Warning = paymentNotCreatedWarning
		return nil
	}

	payment := DerivePayment(caller, class, contractor, service.now())
	created, err := tx.Payments.Create(&payment)
	if err != nil {
		return persistence("create payment", err)
	}
	if !created {
		// A concurrent completion won the insert.
		existing, found, err = tx.Payments.FindByClassForUser(class.ID, caller.UserID)
		if err != nil {
			return persistence("load class payment", err)
		}
		if found {
			result.Payment = &existing
		}
		return nil
	}

	result.Payment = &payment
	result.PaymentCreated = true
	return nil
}

func (service *ClassService) Delete(caller Caller, classID string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	deleted, err := service.repos.Classes.DeleteForUser(classID, caller.UserID)
	if err != nil {
		return persistence("delete class", err)
	}
	if !deleted {
		return notFound("class not found")
	}
	return nil
}
