package usecase

import (
	"fmt"
	"strings"

	"phone-auth/internal/data/repository"
	"phone-auth/pkg/notify"
	"phone-auth/pkg/otpgen"
	"phone-auth/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Account AccountService
}

// NewService assembles the domain services. The generator and notifier are
// passed in because their drivers are chosen at wiring time.
func NewService(
	repo *repository.Repository,
	generator otpgen.Generator,
	notifier notify.Notifier,
	config *utils.Config,
	log *zap.Logger,
) (*Service, error) {
	otp := NewOTPService(repo.OTPRecord, generator, notifier, config, log)
	directory := NewIdentityDirectory(repo.User, repo.Customer, log)

	registry := NewStrategyRegistry()
	phone := NewPhoneStrategy(otp, directory, DefaultProfileBuilder(config.Auth.DefaultEmailDomain), log)
	native := NewNativeStrategy(directory, log)
	for _, strategy := range []AuthenticationStrategy{phone, native} {
		if err := registry.Register(strategy); err != nil {
			return nil, fmt.Errorf("register strategy: %w", err)
		}
	}

	return &Service{
		Auth:    NewAuthService(registry, otp, repo.Session, config, log),
		Account: NewAccountService(directory, repo.User, log),
	}, nil
}

// DefaultProfileBuilder seeds first-login phone profiles. The email is
// derived from the phone number under the configured domain; an empty
// domain yields an empty email, which blocks phone signups until the
// operator configures one.
func DefaultProfileBuilder(emailDomain string) ProfileBuilder {
	return func(externalIdentifier string) ProfileSeed {
		seed := ProfileSeed{
			FirstName: externalIdentifier,
		}
		if emailDomain != "" {
			seed.Email = fmt.Sprintf("%s@%s", strings.TrimSpace(externalIdentifier), emailDomain)
		}
		return seed
	}
}
