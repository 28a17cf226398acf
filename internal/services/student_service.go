package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/teachflow/internal/models"
)

const studentRecentActivityLimit = 10

type PackageInput struct {
	TotalClasses     int
	RemainingClasses *int
	Value            decimal.Decimal
	Currency         string
	ExpiresAt        *time.Time
	ClassesPerWeek   *int
}

type StudentInput struct {
	ContractorID     string
	Name             string
	Email            string
	PhoneNumber      string
	NativeLanguage   string
	ProficiencyLevel string
	LearningGoals    string
	Notes            string
	Status           string
	Package          *PackageInput
}

type StudentListFilter struct {
	Status       string
	ContractorID string
	Search       string
}

type StudentDetails struct {
	Student        models.Student      `json:"student"`
	RecentClasses  []models.Class      `json:"recent_classes"`
	RecentPayments []models.Payment    `json:"recent_payments"`
	Usage          models.StudentUsage `json:"counts"`
}

type StudentService struct {
	repos Repositories
}

func NewStudentService(repos Repositories) *StudentService {
	return &StudentService{repos: repos}
}

func (service *StudentService) List(caller Caller, filter StudentListFilter) ([]models.Student, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if filter.Status != "" && !models.IsValidStudentStatus(filter.Status) {
		return nil, invalid("invalid student status %q", filter.Status)
	}
	students, err := service.repos.Students.ListByUser(caller.UserID, models.StudentFilter{
		Status:       filter.Status,
		ContractorID: filter.ContractorID,
		Search:       strings.TrimSpace(filter.Search),
	})
	if err != nil {
		return nil, persistence("list students", err)
	}
	return students, nil
}

func (service *StudentService) Get(caller Caller, studentID string) (StudentDetails, error) {
	student, err := service.find(caller, studentID)
	if err != nil {
		return StudentDetails{}, err
	}

	classes, err := service.repos.Classes.ListRecentForStudent(caller.UserID, student.ID, studentRecentActivityLimit)
	if err != nil {
		return StudentDetails{}, persistence("list student classes", err)
	}
	payments, err := service.repos.Payments.ListRecentForStudent(caller.UserID, student.ID, studentRecentActivityLimit)
	if err != nil {
		return StudentDetails{}, persistence("list student payments", err)
	}
	usage, err := service.repos.Students.CountUsage(student.ID, caller.UserID)
	if err != nil {
		return StudentDetails{}, persistence("count student usage", err)
	}

	return StudentDetails{
		Student:        student,
		RecentClasses:  classes,
		RecentPayments: payments,
		Usage:          usage,
	}, nil
}

func (service *StudentService) Create(caller Caller, input StudentInput) (models.Student, error) {
	if err := requireCaller(caller); err != nil {
		return models.Student{}, err
	}
	student := models.Student{UserID: caller.UserID}
	if err := service.applyInput(caller, &student, input); err != nil {
		return models.Student{}, err
	}
	if err := service.repos.Students.Create(&student); err != nil {
		return models.Student{}, persistence("create student", err)
	}
	return student, nil
}

func (service *StudentService) Update(caller Caller, studentID string, input StudentInput) (models.Student, error) {
	student, err := service.find(caller, studentID)
	if err != nil {
		return models.Student{}, err
	}
	if err := service.applyInput(caller, &student, input); err != nil {
		return models.Student{}, err
	}
	if err := service.repos.Students.Save(&student); err != nil {
		return models.Student{}, persistence("update student", err)
	}
	return student, nil
}

func (service *StudentService) Delete(caller Caller, studentID string) error {
	if _, err := service.find(caller, studentID); err != nil {
		return err
	}
	usage, deleted, err := service.repos.Students.DeleteUnusedForUser(studentID, caller.UserID)
	if err != nil {
		return persistence("delete student", err)
	}
	if !deleted {
		if usage.InUse() {
			return inUse(describeUsage("student", map[string]int64{
				"classes":  usage.Classes,
				"payments": usage.Payments,
			}, []string{"classes", "payments"}))
		}
		return notFound("student not found")
	}
	return nil
}

func (service *StudentService) find(caller Caller, studentID string) (models.Student, error) {
	if err := requireCaller(caller); err != nil {
		return models.Student{}, err
	}
	student, found, err := service.repos.Students.FindByIDForUser(studentID, caller.UserID)
	if err != nil {
		return models.Student{}, persistence("load student", err)
	}
	if !found {
		return models.Student{}, notFound("student not found")
	}
	return student, nil
}

func (service *StudentService) applyInput(caller Caller, student *models.Student, input StudentInput) error {
	name, err := normalizeRequiredName("name", input.Name)
	if err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != "" && NormalizeAuthEmail(email) == "" {
		return invalid("invalid student email")
	}
	status := input.Status
	if status == "" {
		status = models.StudentStatusActive
	}
	if !models.IsValidStudentStatus(status) {
		return invalid("invalid student status %q", status)
	}
	notes, err := normalizeNotes("notes", input.Notes)
	if err != nil {
		return err
	}
	goals, err := normalizeNotes("learning goals", input.LearningGoals)
	if err != nil {
		return err
	}

	var contractorID *string
	if id := strings.TrimSpace(input.ContractorID); id != "" {
		contractor, found, err := service.repos.Contractors.FindByIDForUser(id, caller.UserID)
		if err != nil {
			return persistence("load contractor", err)
		}
		if !found {
			return notFound("contractor not found")
		}
		contractorID = &contractor.ID
		student.Contractor = &contractor
	} else {
		student.Contractor = nil
	}

	classPackage, err := buildClassPackage(input.Package, student.Package, caller)
	if err != nil {
		return err
	}

	student.ContractorID = contractorID
	student.Name = name
	student.Email = email
	student.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	student.NativeLanguage = strings.TrimSpace(input.NativeLanguage)
	student.ProficiencyLevel = strings.TrimSpace(input.ProficiencyLevel)
	student.LearningGoals = goals
	student.Notes = notes
	student.Status = status
	student.Package = classPackage
	return nil
}

// buildClassPackage validates a package. A new package starts with every class remaining;
// an existing one keeps its remaining count unless the input sets it.
func buildClassPackage(input *PackageInput, existing *models.ClassPackage, caller Caller) (*models.ClassPackage, error) {
	if input == nil {
		return nil, nil
	}
	if input.TotalClasses <= 0 {
		return nil, invalid("package total classes must be greater than zero")
	}
	if err := requireNonNegative("package value", input.Value); err != nil {
		return nil, err
	}
	currency, err := normalizeCurrency(input.Currency, caller.DefaultCurrency())
	if err != nil {
		return nil, err
	}
	if input.ClassesPerWeek != nil && *input.ClassesPerWeek <= 0 {
		return nil, invalid("package classes per week must be greater than zero")
	}

	remaining := input.TotalClasses
	switch {
	case input.RemainingClasses != nil:
		remaining = *input.RemainingClasses
	case existing != nil:
		remaining = existing.RemainingClasses
	}
	if remaining < 0 || remaining > input.TotalClasses {
		return nil, invalid("package remaining classes must be between 0 and %d", input.TotalClasses)
	}

	return &models.ClassPackage{
		TotalClasses:     input.TotalClasses,
		RemainingClasses: remaining,
		Value:            input.Value.Round(2),
		Currency:         currency,
		ExpiresAt:        input.ExpiresAt,
		ClassesPerWeek:   input.ClassesPerWeek,
	}, nil
}
