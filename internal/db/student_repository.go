package db

import (
	"strings"

	"github.com/terraincognita07/teachflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepository struct {
	database *gorm.DB
}

func NewStudentRepository(database *gorm.DB) *StudentRepository {
	return &StudentRepository{database: database}
}

func (repo *StudentRepository) ListByUser(userID string, filter models.StudentFilter) ([]models.Student, error) {
	query := repo.database.Model(&models.Student{}).Preload("Contractor").Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ContractorID != "" {
		query = query.Where("contractor_id = ?", filter.ContractorID)
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		pattern := "%" + escapeLikePattern(search) + "%"
		query = query.Where("(lower(name) LIKE ? ESCAPE '\\' OR lower(email) LIKE ? ESCAPE '\\')", pattern, pattern)
	}

	students := make([]models.Student, 0)
	if err := query.Order("created_at DESC, id ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *StudentRepository) FindByIDForUser(studentID string, userID string) (models.Student, bool, error) {
	student := models.Student{}
	found, err := findOne(
		repo.database.Preload("Contractor").Where("id = ? AND user_id = ?", studentID, userID),
		&student,
	)
	if err != nil || !found {
		return models.Student{}, false, err
	}
	return student, true, nil
}

func (repo *StudentRepository) Create(student *models.Student) error {
	return repo.database.Omit(clause.Associations).Create(student).Error
}

func (repo *StudentRepository) Save(student *models.Student) error {
	return repo.database.Omit(clause.Associations).Save(student).Error
}

func (repo *StudentRepository) CountUsage(studentID string, userID string) (models.StudentUsage, error) {
	return countStudentUsage(repo.database, studentID, userID)
}

func (repo *StudentRepository) CountByStatus(userID string, status string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Student{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *StudentRepository) DeleteUnusedForUser(studentID string, userID string) (models.StudentUsage, bool, error) {
	usage := models.StudentUsage{}
	deleted := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var err error
		usage, err = countStudentUsage(tx, studentID, userID)
		if err != nil {
			return err
		}
		if usage.InUse() {
			return nil
		}

		result := tx.Where("id = ? AND user_id = ?", studentID, userID).Delete(&models.Student{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return models.StudentUsage{}, false, err
	}
	return usage, deleted, nil
}

func countStudentUsage(database *gorm.DB, studentID string, userID string) (models.StudentUsage, error) {
	usage := models.StudentUsage{}
	if err := database.Model(&models.Class{}).
		Where("student_id = ? AND user_id = ?", studentID, userID).
		Count(&usage.Classes).Error; err != nil {
		return models.StudentUsage{}, err
	}
	if err := database.Model(&models.Payment{}).
		Where("student_id = ? AND user_id = ?", studentID, userID).
		Count(&usage.Payments).Error; err != nil {
		return models.StudentUsage{}, err
	}
	return usage, nil
}

func escapeLikePattern(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
