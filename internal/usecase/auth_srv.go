package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"phone-auth/internal/data/entity"
	"phone-auth/internal/data/repository"
	"phone-auth/internal/dto/request"
	"phone-auth/internal/dto/response"
	"phone-auth/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	RequestOTP(ctx context.Context, req *request.RequestOTPRequest) (*response.RequestOTPResponse, error)
	Authenticate(ctx context.Context, req *request.AuthenticateRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	strategies *StrategyRegistry
	otp        OTPService
	sessions   repository.SessionRepository
	config     *utils.Config
	log        *zap.Logger
}

func NewAuthService(
	strategies *StrategyRegistry,
	otp OTPService,
	sessions repository.SessionRepository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		strategies: strategies,
		otp:        otp,
		sessions:   sessions,
		config:     config,
		log:        log,
	}
}

func (s *authService) RequestOTP(ctx context.Context, req *request.RequestOTPRequest) (*response.RequestOTPResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Request OTP validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Issue and deliver the code. Delivery errors pass through typed so
	// the handler can tell the caller nothing was sent.
	record, err := s.otp.RequestOTP(ctx, req.Phone)
	if err != nil {
		return nil, err
	}

	resp := response.OTPToResponse(record)
	return &resp, nil
}

func (s *authService) Authenticate(ctx context.Context, req *request.AuthenticateRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Authenticate validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Pick the strategy
	strategy, ok := s.strategies.Lookup(req.Method)
	if !ok {
		s.log.Warn("Unknown authentication method", zap.String("method", req.Method))
		return nil, fmt.Errorf("validation failed: method: Must be one of: %s",
			strings.Join(s.strategies.Names(), ", "))
	}

	// 3. Decode the strategy's own credential payload
	creds := strategy.NewCredentials()
	if err := json.Unmarshal(req.Credentials, creds); err != nil {
		s.log.Warn("Malformed credentials payload",
			zap.String("method", req.Method),
			zap.Error(err))
		return nil, fmt.Errorf("validation failed: credentials: Malformed payload")
	}

	// 4. Run the strategy
	user, err := strategy.Authenticate(ctx, creds)
	if err != nil {
		var failure *AuthenticationFailure
		if errors.As(err, &failure) {
			s.log.Warn("Authentication rejected",
				zap.String("method", req.Method),
				zap.String("reason", failure.Reason))
		} else {
			s.log.Error("Authentication error",
				zap.String("method", req.Method),
				zap.Error(err))
		}
		return nil, err
	}

	// 5. Create session
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("method", req.Method))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	// 1. Parse token
	tokenUUID, err := utils.ParseUUID(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return fmt.Errorf("invalid token format")
	}

	// 2. Revoke session
	if err := s.sessions.Revoke(ctx, tokenUUID); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("failed to logout")
	}

	s.log.Info("User logged out")
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(time.Duration(s.config.Auth.SessionExpiryHours) * time.Hour),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
