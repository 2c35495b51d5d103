package repository

import (
	"phone-auth/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Customer  CustomerRepository
	Session   SessionRepository
	OTPRecord OTPRecordRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Customer:  NewCustomerRepository(db, log),
		Session:   NewSessionRepository(db, log),
		OTPRecord: NewOTPRecordRepository(db, log),
	}
}
