package usecase

import (
	"context"
	"fmt"
	"time"

	"phone-auth/internal/data/entity"
	"phone-auth/internal/dto/request"
	"phone-auth/pkg/utils"

	"go.uber.org/zap"
)

const (
	// ReasonInvalidOTP is returned for every unusable phone/code pair:
	// wrong code, expired code, already consumed code, unknown phone.
	ReasonInvalidOTP = "Invalid OTP"
	// ReasonDefaultEmailRequired is returned when the profile builder
	// cannot produce a usable email for a first-time phone signup.
	ReasonDefaultEmailRequired = "Valid default email address is required"
)

// phoneStrategy logs users in with a phone number plus a one-time
// passcode, provisioning the identity on first successful login.
type phoneStrategy struct {
	otp          OTPService
	directory    IdentityDirectory
	buildProfile ProfileBuilder
	log          *zap.Logger
}

func NewPhoneStrategy(
	otp OTPService,
	directory IdentityDirectory,
	buildProfile ProfileBuilder,
	log *zap.Logger,
) AuthenticationStrategy {
	return &phoneStrategy{
		otp:          otp,
		directory:    directory,
		buildProfile: buildProfile,
		log:          log.With(zap.String("strategy", entity.StrategyPhone)),
	}
}

func (s *phoneStrategy) Name() string {
	return entity.StrategyPhone
}

func (s *phoneStrategy) NewCredentials() any {
	return &request.PhoneCredentials{}
}

func (s *phoneStrategy) Authenticate(ctx context.Context, credentials any) (*entity.User, error) {
	creds, ok := credentials.(*request.PhoneCredentials)
	if !ok {
		return nil, fmt.Errorf("phone strategy: unexpected credentials type %T", credentials)
	}

	// 1. Verify the code first; nothing is looked up or created for an
	// unusable code. Empty phone or code simply never matches a record.
	verified, err := s.otp.VerifyOTP(ctx, creds.Phone, creds.Code)
	if err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	if !verified {
		return nil, NewAuthenticationFailure(ReasonInvalidOTP)
	}

	// 2. Resolve the identity. A known number logs straight in.
	user, err := s.directory.FindUser(ctx, entity.StrategyPhone, creds.Phone)
	if err != nil {
		return nil, fmt.Errorf("find phone user: %w", err)
	}
	if user != nil {
		s.log.Info("Phone login succeeded", zap.String("user_id", user.ID.String()))
		return user, nil
	}

	// 3. First login: provision the identity from the default profile
	profile := s.buildProfile(creds.Phone)
	if errs := utils.ValidateStruct(&profile); len(errs) > 0 {
		s.log.Warn("Default profile has no usable email", zap.Any("errors", errs))
		return nil, NewAuthenticationFailure(ReasonDefaultEmailRequired)
	}

	user, err = s.directory.CreateCustomerAndUser(ctx, NewIdentity{
		StrategyName:       entity.StrategyPhone,
		ExternalIdentifier: creds.Phone,
		Verified:           true,
		Profile:            profile,
	})
	if err != nil {
		return nil, fmt.Errorf("provision phone user: %w", err)
	}

	// 4. Bind the verified number to the fresh profile. Phone-only accounts
	// carry the raw number as their display first name.
	customer, err := s.directory.FindCustomerByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: user %s", ErrDirectoryInconsistency, user.ID.String())
	}

	phone := creds.Phone
	customer.Phone = &phone
	customer.FirstName = creds.Phone
	customer.UpdatedAt = time.Now()

	if err := s.directory.UpdateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("bind phone to customer: %w", err)
	}

	s.log.Info("Phone identity provisioned", zap.String("user_id", user.ID.String()))
	return user, nil
}
