package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"phone-auth/internal/data/entity"
	"phone-auth/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrDirectoryInconsistency signals that an identity was created but its
// customer record cannot be read back. This is an invariant breach, not a
// login rejection.
var ErrDirectoryInconsistency = errors.New("identity directory inconsistency: customer record missing")

// ProfileSeed carries the initial profile for a newly provisioned identity.
type ProfileSeed struct {
	Email     string `validate:"required,email"`
	FirstName string
	LastName  string
	Phone     *string
}

// ProfileBuilder derives a seed profile from a login identifier. The phone
// strategy uses it to provision accounts for numbers it has never seen.
type ProfileBuilder func(externalIdentifier string) ProfileSeed

// NewIdentity describes a user to provision together with its profile.
type NewIdentity struct {
	StrategyName       string
	ExternalIdentifier string
	PasswordHash       *string
	Verified           bool
	Profile            ProfileSeed
}

// IdentityDirectory is the lookup and provisioning surface strategies use.
// It hides how users and customer profiles are stored.
type IdentityDirectory interface {
	FindUser(ctx context.Context, strategyName, externalIdentifier string) (*entity.User, error)
	CreateCustomerAndUser(ctx context.Context, identity NewIdentity) (*entity.User, error)
	FindCustomerByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error)
	UpdateCustomer(ctx context.Context, customer *entity.Customer) error
}

type identityDirectory struct {
	users     repository.UserRepository
	customers repository.CustomerRepository
	log       *zap.Logger
}

func NewIdentityDirectory(
	users repository.UserRepository,
	customers repository.CustomerRepository,
	log *zap.Logger,
) IdentityDirectory {
	return &identityDirectory{
		users:     users,
		customers: customers,
		log:       log,
	}
}

func (d *identityDirectory) FindUser(ctx context.Context, strategyName, externalIdentifier string) (*entity.User, error) {
	return d.users.FindByStrategy(ctx, strategyName, externalIdentifier)
}

// CreateCustomerAndUser provisions the user first and its customer profile
// second. Callers that need the profile immediately should read it back
// and treat a missing row as ErrDirectoryInconsistency.
func (d *identityDirectory) CreateCustomerAndUser(ctx context.Context, identity NewIdentity) (*entity.User, error) {
	now := time.Now()

	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StrategyName:       identity.StrategyName,
		ExternalIdentifier: identity.ExternalIdentifier,
		PasswordHash:       identity.PasswordHash,
		Verified:           identity.Verified,
	}

	if err := d.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}

	customer := &entity.Customer{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    user.ID,
		Email:     identity.Profile.Email,
		FirstName: identity.Profile.FirstName,
		LastName:  identity.Profile.LastName,
		Phone:     identity.Profile.Phone,
	}

	if err := d.customers.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("provision customer: %w", err)
	}

	d.log.Info("Identity provisioned",
		zap.String("user_id", user.ID.String()),
		zap.String("strategy_name", identity.StrategyName))

	return user, nil
}

func (d *identityDirectory) FindCustomerByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error) {
	return d.customers.FindByUserID(ctx, userID)
}

func (d *identityDirectory) UpdateCustomer(ctx context.Context, customer *entity.Customer) error {
	return d.customers.Update(ctx, customer)
}
