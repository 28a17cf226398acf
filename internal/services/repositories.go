package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/teachflow/internal/models"
)

type ContractorRepository interface {
	ListByUser(userID string) ([]models.Contractor, error)
	FindByIDForUser(contractorID string, userID string) (models.Contractor, bool, error)
	Create(contractor *models.Contractor) error
	Save(contractor *models.Contractor) error
	CountUsage(contractorID string, userID string) (models.ContractorUsage, error)
	DeleteUnusedForUser(contractorID string, userID string) (models.ContractorUsage, bool, error)
}

type StudentRepository interface {
	ListByUser(userID string, filter models.StudentFilter) ([]models.Student, error)
	FindByIDForUser(studentID string, userID string) (models.Student, bool, error)
	Create(student *models.Student) error
	Save(student *models.Student) error
	CountUsage(studentID string, userID string) (models.StudentUsage, error)
	CountByStatus(userID string, status string) (int64, error)
	DeleteUnusedForUser(studentID string, userID string) (models.StudentUsage, bool, error)
}

type ClassRepository interface {
	ListByUser(userID string, filter models.ClassFilter) ([]models.Class, error)
	ListRecentForStudent(userID string, studentID string, limit int) ([]models.Class, error)
	FindByIDForUser(classID string, userID string) (models.Class, bool, error)
	Create(class *models.Class) error
	UpdateStatusForUser(classID string, userID string, status string, notes string) (bool, error)
	DeleteForUser(classID string, userID string) (bool, error)
	CountByStatusBetween(userID string, status string, from time.Time, to time.Time) (int64, error)
}

type PaymentRepository interface {
	ListByUser(userID string, filter models.PaymentFilter) ([]models.Payment, error)
	ListRecentForStudent(userID string, studentID string, limit int) ([]models.Payment, error)
	FindByIDForUser(paymentID string, userID string) (models.Payment, bool, error)
	FindByClassForUser(classID string, userID string) (models.Payment, bool, error)
	Create(payment *models.Payment) (bool, error)
	UpdateStatusForUser(paymentID string, userID string, status string, receivedDate *time.Time) (bool, error)
	SumAmounts(userID string, filter models.PaymentSumFilter) (decimal.Decimal, error)
	SumByContractor(userID string, filter models.PaymentSumFilter) ([]models.ContractorTotal, error)
}

// Repositories groups the tenant-scoped stores a workflow reads and writes.
type Repositories struct {
	Contractors ContractorRepository
	Students    StudentRepository
	Classes     ClassRepository
	Payments    PaymentRepository
}

// Store runs fn against repositories bound to one transaction.
type Store interface {
	Transaction(fn func(repos Repositories) error) error
}
