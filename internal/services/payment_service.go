package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/teachflow/internal/models"
)

type PaymentInput struct {
	ClassID      string
	StudentID    string
	ContractorID string
	Amount       decimal.Decimal
	Currency     string
	Status       string
	DueDate      time.Time
	ReceivedDate *time.Time
	Reference    string
	Notes        string
}

type PaymentListFilter struct {
	Status       string
	ContractorID string
	DueFrom      *time.Time
	DueTo        *time.Time
}

type ContractorRevenue struct {
	ContractorID   string          `json:"contractor_id"`
	ContractorName string          `json:"contractor_name"`
	Currency       string          `json:"currency"`
	Total          decimal.Decimal `json:"total"`
}

type FinancialSummary struct {
	PeriodStart     time.Time           `json:"period_start"`
	PeriodEnd       time.Time           `json:"period_end"`
	TotalReceived   decimal.Decimal     `json:"total_received"`
	TotalPending    decimal.Decimal     `json:"total_pending"`
	ByContractor    []ContractorRevenue `json:"by_contractor"`
	DefaultCurrency string              `json:"currency"`
}

type PaymentService struct {
	repos Repositories
	store Store
	now   func() time.Time
}

func NewPaymentService(repos Repositories, store Store) *PaymentService {
	return &PaymentService{
		repos: repos,
		store: store,
		now:   time.Now,
	}
}

func (service *PaymentService) List(caller Caller, filter PaymentListFilter) ([]models.Payment, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if filter.Status != "" && !models.IsValidPaymentStatus(filter.Status) {
		return nil, invalid("invalid payment status %q", filter.Status)
	}

	payments, err := service.repos.Payments.ListByUser(caller.UserID, models.PaymentFilter{
		Status:       filter.Status,
		ContractorID: filter.ContractorID,
		DueFrom:      filter.DueFrom,
		DueTo:        filter.DueTo,
	})
	if err != nil {
		return nil, persistence("list payments", err)
	}
	return payments, nil
}

func (service *PaymentService) Get(caller Caller, paymentID string) (models.Payment, error) {
	if err := requireCaller(caller); err != nil {
		return models.Payment{}, err
	}
	payment, found, err := service.repos.Payments.FindByIDForUser(paymentID, caller.UserID)
	if err != nil {
		return models.Payment{}, persistence("load payment", err)
	}
	if !found {
		return models.Payment{}, notFound("payment not found")
	}
	return payment, nil
}

// Create records a payment by hand. Every referenced record is checked against the caller.
func (service *PaymentService) Create(caller Caller, input PaymentInput) (models.Payment, error) {
	if err := requireCaller(caller); err != nil {
		return models.Payment{}, err
	}
	payment, err := service.buildPayment(caller, input)
	if err != nil {
		return models.Payment{}, err
	}

	err = service.store.Transaction(func(tx Repositories) error {
		if _, found, err := tx.Students.FindByIDForUser(payment.StudentID, caller.UserID); err != nil {
			return persistence("load student", err)
		} else if !found {
			return notFound("student not found")
		}
		if _, found, err := tx.Contractors.FindByIDForUser(payment.ContractorID, caller.UserID); err != nil {
			return persistence("load contractor", err)
		} else if !found {
			return notFound("contractor not found")
		}
		if payment.ClassID != nil {
			class, found, err := tx.Classes.FindByIDForUser(*payment.ClassID, caller.UserID)
			if err != nil {
				return persistence("load class", err)
			}
			// A payment may only bill the class's own student and contractor.
			if !found || class.StudentID != payment.StudentID || class.ContractorID != payment.ContractorID {
				return notFound("class not found")
			}
		}

		created, err := tx.Payments.Create(&payment)
		if err != nil {
			return persistence("create payment", err)
		}
		if !created {
			return invalid("class already has a payment")
		}
		return nil
	})
	if err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (service *PaymentService) buildPayment(caller Caller, input PaymentInput) (models.Payment, error) {
	if input.StudentID == "" || input.ContractorID == "" {
		return models.Payment{}, invalid("student and contractor are required")
	}
	if !input.Amount.IsPositive() {
		return models.Payment{}, invalid("amount must be greater than zero")
	}
	if input.DueDate.IsZero() {
		return models.Payment{}, invalid("due date is required")
	}
	currency, err := normalizeCurrency(input.Currency, caller.DefaultCurrency())
	if err != nil {
		return models.Payment{}, err
	}
	status := input.Status
	if status == "" {
		status = models.PaymentStatusPending
	}
	if !models.IsValidPaymentStatus(status) {
		return models.Payment{}, invalid("invalid payment status %q", status)
	}
	notes, err := normalizeNotes("notes", input.Notes)
	if err != nil {
		return models.Payment{}, err
	}

	payment := models.Payment{
		UserID:       caller.UserID,
		StudentID:    input.StudentID,
		ContractorID: input.ContractorID,
		Amount:       input.Amount.Round(2),
		Currency:     currency,
		Status:       status,
		DueDate:      input.DueDate.UTC(),
		Reference:    input.Reference,
		Notes:        notes,
	}
	if input.ClassID != "" {
		classID := input.ClassID
		payment.ClassID = &classID
	}
	payment.ReceivedDate = service.resolveReceivedDate(status, input.ReceivedDate)
	return payment, nil
}

func (service *PaymentService) resolveReceivedDate(status string, receivedDate *time.Time) *time.Time {
	if status != models.PaymentStatusReceived {
		return nil
	}
	if receivedDate == nil {
		now := service.now().UTC()
		return &now
	}
	received := receivedDate.UTC()
	return &received
}

// UpdateStatus changes only the status and received date. The amount is never recomputed.
func (service *PaymentService) UpdateStatus(caller Caller, paymentID string, status string, receivedDate *time.Time) (models.Payment, error) {
	if err := requireCaller(caller); err != nil {
		return models.Payment{}, err
	}
	if !models.IsValidPaymentStatus(status) {
		return models.Payment{}, invalid("invalid payment status %q", status)
	}

	payment, found, err := service.repos.Payments.FindByIDForUser(paymentID, caller.UserID)
	if err != nil {
		return models.Payment{}, persistence("load payment", err)
	}
	if !found {
		return models.Payment{}, notFound("payment not found")
	}

	received := service.resolveReceivedDate(status, receivedDate)
	updated, err := service.repos.Payments.UpdateStatusForUser(payment.ID, caller.UserID, status, received)
	if err != nil {
		return models.Payment{}, persistence("update payment status", err)
	}
	if !updated {
		return models.Payment{}, notFound("payment not found")
	}

	payment.Status = status
	payment.ReceivedDate = received
	return payment, nil
}

// Summary reports money received between from and to, money still pending and due by
// now, and the received totals per contractor.
func (service *PaymentService) Summary(caller Caller, from time.Time, to time.Time) (FinancialSummary, error) {
	if err := requireCaller(caller); err != nil {
		return FinancialSummary{}, err
	}
	if to.Before(from) {
		return FinancialSummary{}, invalid("period end is before period start")
	}

	periodStart := from.UTC()
	periodEnd := to.UTC()
	receivedFilter := models.PaymentSumFilter{
		Status:       models.PaymentStatusReceived,
		ReceivedFrom: &periodStart,
		ReceivedTo:   &periodEnd,
	}

	received, err := service.repos.Payments.SumAmounts(caller.UserID, receivedFilter)
	if err != nil {
		return FinancialSummary{}, persistence("sum received payments", err)
	}

	now := service.now().UTC()
	pending, err := service.repos.Payments.SumAmounts(caller.UserID, models.PaymentSumFilter{
		Status:   models.PaymentStatusPending,
		DueUntil: &now,
	})
	if err != nil {
		return FinancialSummary{}, persistence("sum pending payments", err)
	}

	totals, err := service.repos.Payments.SumByContractor(caller.UserID, receivedFilter)
	if err != nil {
		return FinancialSummary{}, persistence("sum payments by contractor", err)
	}
	contractors, err := service.repos.Contractors.ListByUser(caller.UserID)
	if err != nil {
		return FinancialSummary{}, persistence("list contractors", err)
	}
	names := make(map[string]string, len(contractors))
	for _, contractor := range contractors {
		names[contractor.ID] = contractor.Name
	}

	byContractor := make([]ContractorRevenue, 0, len(totals))
	for _, total := range totals {
		byContractor = append(byContractor, ContractorRevenue{
			ContractorID:   total.ContractorID,
			ContractorName: names[total.ContractorID],
			Currency:       total.Currency,
			Total:          total.Total.Round(2),
		})
	}

	return FinancialSummary{
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		TotalReceived:   received.Round(2),
		TotalPending:    pending.Round(2),
		ByContractor:    byContractor,
		DefaultCurrency: caller.DefaultCurrency(),
	}, nil
}
