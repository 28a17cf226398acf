package db

import "gorm.io/gorm"

type Repositories struct {
	database    *gorm.DB
	Users       *UserRepository
	Contractors *ContractorRepository
	Students    *StudentRepository
	Classes     *ClassRepository
	Payments    *PaymentRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		database:    database,
		Users:       NewUserRepository(database),
		Contractors: NewContractorRepository(database),
		Students:    NewStudentRepository(database),
		Classes:     NewClassRepository(database),
		Payments:    NewPaymentRepository(database),
	}
}

// Transaction runs fn with repositories bound to a single database transaction.
// Returning an error from fn rolls every write back.
func (repos *Repositories) Transaction(fn func(tx *Repositories) error) error {
	return repos.database.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
