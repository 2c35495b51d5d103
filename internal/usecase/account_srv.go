package usecase

import (
	"context"
	"fmt"

	"phone-auth/internal/data/entity"
	"phone-auth/internal/data/repository"
	"phone-auth/internal/dto/request"
	"phone-auth/internal/dto/response"
	"phone-auth/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.ProfileResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*response.ProfileResponse, error)
}

type accountService struct {
	directory IdentityDirectory
	users     repository.UserRepository
	log       *zap.Logger
}

func NewAccountService(
	directory IdentityDirectory,
	users repository.UserRepository,
	log *zap.Logger,
) AccountService {
	return &accountService{
		directory: directory,
		users:     users,
		log:       log,
	}
}

func (s *accountService) Register(ctx context.Context, req *request.RegisterRequest) (*response.ProfileResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check email is free
	existing, err := s.directory.FindUser(ctx, entity.StrategyNative, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 4. Provision identity with its profile
	user, err := s.directory.CreateCustomerAndUser(ctx, NewIdentity{
		StrategyName:       entity.StrategyNative,
		ExternalIdentifier: req.Email,
		PasswordHash:       &hashedPassword,
		Verified:           true,
		Profile: ProfileSeed{
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		},
	})
	if err != nil {
		s.log.Error("Failed to create account", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account")
	}

	// 5. Read the profile back
	customer, err := s.directory.FindCustomerByUserID(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to load profile", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to load profile")
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: user %s", ErrDirectoryInconsistency, user.ID.String())
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", req.Email))

	resp := response.ProfileToResponse(user, customer)
	return &resp, nil
}

func (s *accountService) Profile(ctx context.Context, userID uuid.UUID) (*response.ProfileResponse, error) {
	// 1. Find user
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load profile")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	// 2. Find profile
	customer, err := s.directory.FindCustomerByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find customer", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load profile")
	}

	resp := response.ProfileToResponse(user, customer)
	return &resp, nil
}
