package usecase

import (
	"context"
	"fmt"
	"time"

	"phone-auth/internal/data/entity"
	"phone-auth/internal/data/repository"
	"phone-auth/pkg/notify"
	"phone-auth/pkg/otpgen"
	"phone-auth/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OTPService issues and verifies one-time passcodes for phone numbers.
type OTPService interface {
	RequestOTP(ctx context.Context, phone string) (*entity.OTPRecord, error)
	VerifyOTP(ctx context.Context, phone, code string) (bool, error)
}

type otpService struct {
	records   repository.OTPRecordRepository
	generator otpgen.Generator
	notifier  notify.Notifier
	config    *utils.Config
	log       *zap.Logger
}

func NewOTPService(
	records repository.OTPRecordRepository,
	generator otpgen.Generator,
	notifier notify.Notifier,
	config *utils.Config,
	log *zap.Logger,
) OTPService {
	return &otpService{
		records:   records,
		generator: generator,
		notifier:  notifier,
		config:    config,
		log:       log,
	}
}

// RequestOTP generates a fresh code for the phone, delivers it, and only
// then persists the record. A delivery failure therefore leaves nothing
// behind, and the returned *notify.DeliveryError tells the caller the code
// never reached the phone. Earlier unverified codes stay valid until they
// expire.
func (s *otpService) RequestOTP(ctx context.Context, phone string) (*entity.OTPRecord, error) {
	// 1. Generate code from the configured policy
	code, err := s.generator.Generate()
	if err != nil {
		s.log.Error("Failed to generate OTP code", zap.Error(err), zap.String("phone", phone))
		return nil, fmt.Errorf("failed to generate OTP")
	}

	// 2. Build record
	now := time.Now()
	record := &entity.OTPRecord{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Phone:     phone,
		Code:      code,
		Verified:  false,
		ExpiresAt: now.Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute),
	}

	// 3. Deliver before persisting
	if err := s.notifier.Send(ctx, phone, code); err != nil {
		s.log.Error("Failed to deliver OTP", zap.Error(err), zap.String("phone", phone))
		return nil, err
	}

	// 4. Save record
	if err := s.records.Create(ctx, record); err != nil {
		s.log.Error("Failed to save OTP record", zap.Error(err), zap.String("phone", phone))
		return nil, fmt.Errorf("failed to save OTP")
	}

	s.log.Info("OTP issued",
		zap.String("phone", phone),
		zap.Time("expires_at", record.ExpiresAt))

	return record, nil
}

// VerifyOTP reports whether the phone/code pair matches a live record and
// consumes that record. Matching picks the most recent unverified record,
// and the conditional flip in the repository guarantees a code is accepted
// exactly once even under concurrent attempts.
func (s *otpService) VerifyOTP(ctx context.Context, phone, code string) (bool, error) {
	// 1. Find most recent live record
	record, err := s.records.FindUnverifiedMatch(ctx, phone, code)
	if err != nil {
		s.log.Error("Failed to look up OTP record", zap.Error(err), zap.String("phone", phone))
		return false, fmt.Errorf("failed to verify OTP")
	}
	if record == nil {
		s.log.Warn("OTP verification failed", zap.String("phone", phone))
		return false, nil
	}

	// 2. Consume it
	verified, err := s.records.MarkVerified(ctx, record.ID)
	if err != nil {
		s.log.Error("Failed to consume OTP record",
			zap.Error(err),
			zap.String("otp_record_id", record.ID.String()))
		return false, fmt.Errorf("failed to verify OTP")
	}
	if !verified {
		// Lost the race to a concurrent verification
		s.log.Warn("OTP already consumed",
			zap.String("phone", phone),
			zap.String("otp_record_id", record.ID.String()))
		return false, nil
	}

	s.log.Info("OTP verified", zap.String("phone", phone))
	return true, nil
}
