package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/teachflow/internal/models"
)

const (
	defaultMinCancellationNoticeHours = 24
	maxPaymentTermsDays               = 365
)

type ContractorInput struct {
	Name                       string
	ContactInfo                models.ContactInfo
	DefaultHourlyRate          decimal.Decimal
	Currency                   string
	PaymentFrequency           string
	PaymentTermsDays           int
	MinCancellationNoticeHours *int
	CancellationPenaltyRate    decimal.Decimal
	Notes                      string
}

type ContractorDetails struct {
	Contractor models.Contractor      `json:"contractor"`
	Usage      models.ContractorUsage `json:"counts"`
}

type ContractorService struct {
	repos Repositories
}

func NewContractorService(repos Repositories) *ContractorService {
	return &ContractorService{repos: repos}
}

func (service *ContractorService) List(caller Caller) ([]models.Contractor, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	contractors, err := service.repos.Contractors.ListByUser(caller.UserID)
	if err != nil {
		return nil, persistence("list contractors", err)
	}
	return contractors, nil
}

func (service *ContractorService) Get(caller Caller, contractorID string) (ContractorDetails, error) {
	contractor, err := service.find(caller, contractorID)
	if err != nil {
		return ContractorDetails{}, err
	}
	usage, err := service.repos.Contractors.CountUsage(contractor.ID, caller.UserID)
	if err != nil {
		return ContractorDetails{}, persistence("count contractor usage", err)
	}
	return ContractorDetails{Contractor: contractor, Usage: usage}, nil
}

func (service *ContractorService) Create(caller Caller, input ContractorInput) (models.Contractor, error) {
	if err := requireCaller(caller); err != nil {
		return models.Contractor{}, err
	}
	contractor := models.Contractor{UserID: caller.UserID, MinCancellationNoticeHours: defaultMinCancellationNoticeHours}
	if err := applyContractorInput(&contractor, input, caller); err != nil {
		return models.Contractor{}, err
	}
	if err := service.repos.Contractors.Create(&contractor); err != nil {
		return models.Contractor{}, persistence("create contractor", err)
	}
	return contractor, nil
}

func (service *ContractorService) Update(caller Caller, contractorID string, input ContractorInput) (models.Contractor, error) {
	contractor, err := service.find(caller, contractorID)
	if err != nil {
		return models.Contractor{}, err
	}
	if err := applyContractorInput(&contractor, input, caller); err != nil {
		return models.Contractor{}, err
	}
	if err := service.repos.Contractors.Save(&contractor); err != nil {
		return models.Contractor{}, persistence("update contractor", err)
	}
	return contractor, nil
}

// Delete removes a contractor nothing refers to. Referenced contractors are kept.
func (service *ContractorService) Delete(caller Caller, contractorID string) error {
	if _, err := service.find(caller, contractorID); err != nil {
		return err
	}
	usage, deleted, err := service.repos.Contractors.DeleteUnusedForUser(contractorID, caller.UserID)
	if err != nil {
		return persistence("delete contractor", err)
	}
	if !deleted {
		if usage.InUse() {
			return inUse(describeUsage("contractor", map[string]int64{
				"students": usage.Students,
				"classes":  usage.Classes,
				"payments": usage.Payments,
			}, []string{"students", "classes", "payments"}))
		}
		return notFound("contractor not found")
	}
	return nil
}

func (service *ContractorService) find(caller Caller, contractorID string) (models.Contractor, error) {
	if err := requireCaller(caller); err != nil {
		return models.Contractor{}, err
	}
	contractor, found, err := service.repos.Contractors.FindByIDForUser(contractorID, caller.UserID)
	if err != nil {
		return models.Contractor{}, persistence("load contractor", err)
	}
	if !found {
		return models.Contractor{}, notFound("contractor not found")
	}
	return contractor, nil
}

func applyContractorInput(contractor *models.Contractor, input ContractorInput, caller Caller) error {
	name, err := normalizeRequiredName("name", input.Name)
	if err != nil {
		return err
	}
	if err := requireNonNegative("default hourly rate", input.DefaultHourlyRate); err != nil {
		return err
	}
	currency, err := normalizeCurrency(input.Currency, caller.DefaultCurrency())
	if err != nil {
		return err
	}

	frequency := input.PaymentFrequency
	if frequency == "" {
		frequency = models.PaymentFrequencyMonthly
	}
	if !isValidPaymentFrequency(frequency) {
		return invalid("invalid payment frequency %q", frequency)
	}
	if input.PaymentTermsDays < 0 || input.PaymentTermsDays > maxPaymentTermsDays {
		return invalid("payment terms must be between 0 and %d days", maxPaymentTermsDays)
	}

	// Omitted notice hours keep the stored value.
	noticeHours := contractor.MinCancellationNoticeHours
	if input.MinCancellationNoticeHours != nil {
		noticeHours = *input.MinCancellationNoticeHours
	}
	if noticeHours < 0 {
		return invalid("minimum cancellation notice must not be negative")
	}

	penalty := input.CancellationPenaltyRate
	if err := requireNonNegative("cancellation penalty rate", penalty); err != nil {
		return err
	}
	if penalty.GreaterThan(decimal.NewFromInt(100)) {
		return invalid("cancellation penalty rate must not exceed 100")
	}

	notes, err := normalizeNotes("notes", input.Notes)
	if err != nil {
		return err
	}

	contractor.Name = name
	contractor.ContactInfo = models.ContactInfo{
		Email:         strings.TrimSpace(input.ContactInfo.Email),
		Phone:         strings.TrimSpace(input.ContactInfo.Phone),
		Website:       strings.TrimSpace(input.ContactInfo.Website),
		ContactPerson: strings.TrimSpace(input.ContactInfo.ContactPerson),
	}
	contractor.DefaultHourlyRate = input.DefaultHourlyRate.Round(2)
	contractor.Currency = currency
	contractor.PaymentFrequency = frequency
	contractor.PaymentTermsDays = input.PaymentTermsDays
	contractor.MinCancellationNoticeHours = noticeHours
	contractor.CancellationPenaltyRate = penalty.Round(2)
	contractor.Notes = notes
	return nil
}

func isValidPaymentFrequency(frequency string) bool {
	switch frequency {
	case models.PaymentFrequencyPerClass, models.PaymentFrequencyWeekly, models.PaymentFrequencyBiweekly, models.PaymentFrequencyMonthly:
		return true
	default:
		return false
	}
}

// describeUsage renders "cannot delete contractor: has associated students (2), payments (1)".
func describeUsage(entity string, counts map[string]int64, order []string) string {
	parts := make([]string, 0, len(order))
	for _, key := range order {
		if counts[key] > 0 {
			parts = append(parts, fmt.Sprintf("%s (%d)", key, counts[key]))
		}
	}
	return fmt.Sprintf("cannot delete %s: has associated %s", entity, strings.Join(parts, ", "))
}
