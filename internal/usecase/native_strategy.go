package usecase

import (
	"context"
	"fmt"

	"phone-auth/internal/data/entity"
	"phone-auth/internal/dto/request"
	"phone-auth/pkg/utils"

	"go.uber.org/zap"
)

// ReasonInvalidCredentials deliberately does not say whether the email or
// the password was wrong.
const ReasonInvalidCredentials = "Invalid email or password"

// nativeStrategy logs users in with the email/password pair they
// registered with.
type nativeStrategy struct {
	directory IdentityDirectory
	log       *zap.Logger
}

func NewNativeStrategy(directory IdentityDirectory, log *zap.Logger) AuthenticationStrategy {
	return &nativeStrategy{
		directory: directory,
		log:       log.With(zap.String("strategy", entity.StrategyNative)),
	}
}

func (s *nativeStrategy) Name() string {
	return entity.StrategyNative
}

func (s *nativeStrategy) NewCredentials() any {
	return &request.NativeCredentials{}
}

func (s *nativeStrategy) Authenticate(ctx context.Context, credentials any) (*entity.User, error) {
	creds, ok := credentials.(*request.NativeCredentials)
	if !ok {
		return nil, fmt.Errorf("native strategy: unexpected credentials type %T", credentials)
	}

	// 1. Resolve the identity
	user, err := s.directory.FindUser(ctx, entity.StrategyNative, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("find native user: %w", err)
	}

	// 2. Check password. Identities provisioned by other strategies have
	// no hash and can never pass here.
	if user == nil || user.PasswordHash == nil {
		return nil, NewAuthenticationFailure(ReasonInvalidCredentials)
	}
	if !utils.CheckPasswordHash(creds.Password, *user.PasswordHash) {
		s.log.Warn("Password mismatch", zap.String("user_id", user.ID.String()))
		return nil, NewAuthenticationFailure(ReasonInvalidCredentials)
	}

	s.log.Info("Native login succeeded", zap.String("user_id", user.ID.String()))
	return user, nil
}
