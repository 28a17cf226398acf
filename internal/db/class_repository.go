package db

import (
	"time"

	"github.com/terraincognita07/teachflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClassRepository struct {
	database *gorm.DB
}

func NewClassRepository(database *gorm.DB) *ClassRepository {
	return &ClassRepository{database: database}
}

func (repo *ClassRepository) ListByUser(userID string, filter models.ClassFilter) ([]models.Class, error) {
	query := repo.database.Model(&models.Class{}).
		Preload("Student").
		Preload("Contractor").
		Where("user_id = ?", userID)
	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.ContractorID != "" {
		query = query.Where("contractor_id = ?", filter.ContractorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StartFrom != nil {
		query = query.Where("start_time >= ?", filter.StartFrom.UTC())
	}
	if filter.StartTo != nil {
		query = query.Where("start_time <= ?", filter.StartTo.UTC())
	}

	classes := make([]models.Class, 0)
	if err := query.Order("start_time ASC, id ASC").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (repo *ClassRepository) ListRecentForStudent(userID string, studentID string, limit int) ([]models.Class, error) {
	classes := make([]models.Class, 0)
	if err := repo.database.
		Where("user_id = ? AND student_id = ?", userID, studentID).
		Order("start_time DESC, id ASC").
		Limit(limit).
		Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (repo *ClassRepository) FindByIDForUser(classID string, userID string) (models.Class, bool, error) {
	class := models.Class{}
	found, err := findOne(
		repo.database.Preload("Student").Preload("Contractor").Where("id = ? AND user_id = ?", classID, userID),
		&class,
	)
	if err != nil || !found {
		return models.Class{}, false, err
	}
	return class, true, nil
}

func (repo *ClassRepository) Create(class *models.Class) error {
	return repo.database.Omit(clause.Associations).Create(class).Error
}

// UpdateStatusForUser reports false when no class with that id belongs to the user.
func (repo *ClassRepository) UpdateStatusForUser(classID string, userID string, status string, notes string) (bool, error) {
	result := repo.database.Model(&models.Class{}).
		Where("id = ? AND user_id = ?", classID, userID).
		Updates(map[string]any{
			"status":      status,
			"class_notes": notes,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *ClassRepository) DeleteForUser(classID string, userID string) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", classID, userID).Delete(&models.Class{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *ClassRepository) CountByStatusBetween(userID string, status string, from time.Time, to time.Time) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Class{}).
		Where("user_id = ? AND status = ? AND start_time >= ? AND start_time < ?", userID, status, from.UTC(), to.UTC()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
