package db

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/teachflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	database *gorm.DB
}

func NewPaymentRepository(database *gorm.DB) *PaymentRepository {
	return &PaymentRepository{database: database}
}

func (repo *PaymentRepository) ListByUser(userID string, filter models.PaymentFilter) ([]models.Payment, error) {
	query := repo.database.Model(&models.Payment{}).
		Preload("Contractor").
		Preload("Student").
		Preload("Class").
		Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ContractorID != "" {
		query = query.Where("contractor_id = ?", filter.ContractorID)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", filter.DueFrom.UTC())
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", filter.DueTo.UTC())
	}

	payments := make([]models.Payment, 0)
	if err := query.Order("due_date DESC, id ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (repo *PaymentRepository) ListRecentForStudent(userID string, studentID string, limit int) ([]models.Payment, error) {
	payments := make([]models.Payment, 0)
	if err := repo.database.
		Where("user_id = ? AND student_id = ?", userID, studentID).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (repo *PaymentRepository) FindByIDForUser(paymentID string, userID string) (models.Payment, bool, error) {
	payment := models.Payment{}
	found, err := findOne(
		repo.database.
			Preload("Contractor").
			Preload("Student").
			Preload("Class").
			Where("id = ? AND user_id = ?", paymentID, userID),
		&payment,
	)
	if err != nil || !found {
		return models.Payment{}, false, err
	}
	return payment, true, nil
}

func (repo *PaymentRepository) FindByClassForUser(classID string, userID string) (models.Payment, bool, error) {
	payment := models.Payment{}
	found, err := findOne(repo.database.Where("class_id = ? AND user_id = ?", classID, userID), &payment)
	if err != nil || !found {
		return models.Payment{}, false, err
	}
	return payment, true, nil
}

// Create inserts the payment unless another payment already holds its class id,
// in which case it reports created=false and leaves the table untouched.
func (repo *PaymentRepository) Create(payment *models.Payment) (bool, error) {
	result := repo.database.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(payment)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *PaymentRepository) UpdateStatusForUser(paymentID string, userID string, status string, receivedDate *time.Time) (bool, error) {
	var received any
	if receivedDate != nil {
		received = receivedDate.UTC()
	}

	result := repo.database.Model(&models.Payment{}).
		Where("id = ? AND user_id = ?", paymentID, userID).
		Updates(map[string]any{
			"status":        status,
			"received_date": received,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type amountTotalRow struct {
	Total decimal.NullDecimal `gorm:"column:total"`
}

func (repo *PaymentRepository) SumAmounts(userID string, filter models.PaymentSumFilter) (decimal.Decimal, error) {
	query := applyPaymentSumFilter(repo.database.Model(&models.Payment{}).Where("user_id = ?", userID), filter)

	row := amountTotalRow{}
	if err := query.Select("SUM(amount) AS total").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	if !row.Total.Valid {
		return decimal.Zero, nil
	}
	return row.Total.Decimal, nil
}

type contractorTotalRow struct {
	ContractorID string              `gorm:"column:contractor_id"`
	Currency     string              `gorm:"column:currency"`
	Total        decimal.NullDecimal `gorm:"column:total"`
}

func (repo *PaymentRepository) SumByContractor(userID string, filter models.PaymentSumFilter) ([]models.ContractorTotal, error) {
	query := applyPaymentSumFilter(repo.database.Model(&models.Payment{}).Where("user_id = ?", userID), filter)

	rows := make([]contractorTotalRow, 0)
	if err := query.
		Select("contractor_id, currency, SUM(amount) AS total").
		Group("contractor_id, currency").
		Order("contractor_id ASC, currency ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]models.ContractorTotal, 0, len(rows))
	for _, row := range rows {
		total := decimal.Zero
		if row.Total.Valid {
			total = row.Total.Decimal
		}
		totals = append(totals, models.ContractorTotal{
			ContractorID: row.ContractorID,
			Currency:     row.Currency,
			Total:        total,
		})
	}
	return totals, nil
}

func applyPaymentSumFilter(query *gorm.DB, filter models.PaymentSumFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ReceivedFrom != nil {
		query = query.Where("received_date >= ?", filter.ReceivedFrom.UTC())
	}
	if filter.ReceivedTo != nil {
		query = query.Where("received_date <= ?", filter.ReceivedTo.UTC())
	}
	if filter.DueUntil != nil {
		query = query.Where("due_date <= ?", filter.DueUntil.UTC())
	}
	return query
}
