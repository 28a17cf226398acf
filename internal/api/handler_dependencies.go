package api

import (
	"github.com/terraincognita07/teachflow/internal/db"
	"github.com/terraincognita07/teachflow/internal/services"
	"gorm.io/gorm"
)

// workflowStore runs service transactions on top of the gorm repositories.
type workflowStore struct {
	repositories *db.Repositories
}

func (store workflowStore) Transaction(fn func(repos services.Repositories) error) error {
	return store.repositories.Transaction(func(tx *db.Repositories) error {
		return fn(serviceRepositories(tx))
	})
}

func serviceRepositories(repositories *db.Repositories) services.Repositories {
	return services.Repositories{
		Contractors: repositories.Contractors,
		Students:    repositories.Students,
		Classes:     repositories.Classes,
		Payments:    repositories.Payments,
	}
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	repos := serviceRepositories(handler.repositories)
	store := workflowStore{repositories: handler.repositories}

	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.profileService = services.NewProfileService(handler.repositories.Users)
	handler.contractorService = services.NewContractorService(repos)
	handler.studentService = services.NewStudentService(repos)
	handler.classService = services.NewClassService(repos, store, handler.log.With().Str("component", "classes").Logger())
	handler.paymentService = services.NewPaymentService(repos, store)
	handler.dashboardService = services.NewDashboardService(repos)
	return handler
}
