package db

import (
	"github.com/terraincognita07/teachflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractorRepository struct {
	database *gorm.DB
}

func NewContractorRepository(database *gorm.DB) *ContractorRepository {
	return &ContractorRepository{database: database}
}

func (repo *ContractorRepository) ListByUser(userID string) ([]models.Contractor, error) {
	contractors := make([]models.Contractor, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&contractors).Error; err != nil {
		return nil, err
	}
	return contractors, nil
}

func (repo *ContractorRepository) FindByIDForUser(contractorID string, userID string) (models.Contractor, bool, error) {
	contractor := models.Contractor{}
	found, err := findOne(repo.database.Where("id = ? AND user_id = ?", contractorID, userID), &contractor)
	if err != nil || !found {
		return models.Contractor{}, false, err
	}
	return contractor, true, nil
}

func (repo *ContractorRepository) Create(contractor *models.Contractor) error {
	return repo.database.Omit(clause.Associations).Create(contractor).Error
}

func (repo *ContractorRepository) Save(contractor *models.Contractor) error {
	return repo.database.Omit(clause.Associations).Save(contractor).Error
}

func (repo *ContractorRepository) CountUsage(contractorID string, userID string) (models.ContractorUsage, error) {
	return countContractorUsage(repo.database, contractorID, userID)
}

// DeleteUnusedForUser deletes the contractor only while nothing references it.
// The usage snapshot is returned so callers can explain a refusal.
func (repo *ContractorRepository) DeleteUnusedForUser(contractorID string, userID string) (models.ContractorUsage, bool, error) {
	usage := models.ContractorUsage{}
	deleted := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var err error
		usage, err = countContractorUsage(tx, contractorID, userID)
		if err != nil {
			return err
		}
		if usage.InUse() {
			return nil
		}

		result := tx.Where("id = ? AND user_id = ?", contractorID, userID).Delete(&models.Contractor{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return models.ContractorUsage{}, false, err
	}
	return usage, deleted, nil
}

func countContractorUsage(database *gorm.DB, contractorID string, userID string) (models.ContractorUsage, error) {
	usage := models.ContractorUsage{}
	if err := database.Model(&models.Student{}).
		Where("contractor_id = ? AND user_id = ?", contractorID, userID).
		Count(&usage.Students).Error; err != nil {
		return models.ContractorUsage{}, err
	}
	if err := database.Model(&models.Class{}).
		Where("contractor_id = ? AND user_id = ?", contractorID, userID).
		Count(&usage.Classes).Error; err != nil {
		return models.ContractorUsage{}, err
	}
	if err := database.Model(&models.Payment{}).
		Where("contractor_id = ? AND user_id = ?", contractorID, userID).
		Count(&usage.Payments).Error; err != nil {
		return models.ContractorUsage{}, err
	}
	return usage, nil
}
