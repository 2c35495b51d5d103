package usecase

import (
	"context"
	"testing"

	"phone-auth/internal/data/entity"
	"phone-auth/internal/dto/request"
	"phone-auth/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func registerNativeUser(t *testing.T, directory IdentityDirectory, email, password string) *entity.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user, err := directory.CreateCustomerAndUser(context.Background(), NewIdentity{
		StrategyName:       entity.StrategyNative,
		ExternalIdentifier: email,
		PasswordHash:       &hash,
		Verified:           true,
		Profile:            ProfileSeed{Email: email, FirstName: "Ana", LastName: "Lima"},
	})
	require.NoError(t, err)
	return user
}

func TestNativeStrategyName(t *testing.T) {
	s := NewNativeStrategy(testDirectory(newFakeUserRepo(), newFakeCustomerRepo()), zap.NewNop())

	assert.Equal(t, entity.StrategyNative, s.Name())
	_, ok := s.NewCredentials().(*request.NativeCredentials)
	assert.True(t, ok)
}

func TestNativeStrategyLoginSucceeds(t *testing.T) {
	directory := testDirectory(newFakeUserRepo(), newFakeCustomerRepo())
	created := registerNativeUser(t, directory, "ana@example.com", "sup3r-secret")

	s := NewNativeStrategy(directory, zap.NewNop())

	user, err := s.Authenticate(context.Background(), &request.NativeCredentials{
		Email:    "ana@example.com",
		Password: "sup3r-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestNativeStrategyRejections(t *testing.T) {
	directory := testDirectory(newFakeUserRepo(), newFakeCustomerRepo())
	registerNativeUser(t, directory, "ana@example.com", "sup3r-secret")

	// An identity without a stored hash can never pass a password check
	_, err := directory.CreateCustomerAndUser(context.Background(), NewIdentity{
		StrategyName:       entity.StrategyNative,
		ExternalIdentifier: "imported@example.com",
		Verified:           true,
		Profile:            ProfileSeed{Email: "imported@example.com"},
	})
	require.NoError(t, err)

	s := NewNativeStrategy(directory, zap.NewNop())

	tests := []struct {
		name  string
		creds request.NativeCredentials
	}{
		{name: "unknown email", creds: request.NativeCredentials{Email: "bob@example.com", Password: "sup3r-secret"}},
		{name: "wrong password", creds: request.NativeCredentials{Email: "ana@example.com", Password: "wrong"}},
		{name: "empty password", creds: request.NativeCredentials{Email: "ana@example.com"}},
		{name: "identity without hash", creds: request.NativeCredentials{Email: "imported@example.com", Password: "anything"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := tt.creds
			_, err := s.Authenticate(context.Background(), &creds)

			var failure *AuthenticationFailure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, ReasonInvalidCredentials, failure.Reason)
		})
	}
}

func TestNativeStrategyWrongCredentialsType(t *testing.T) {
	s := NewNativeStrategy(testDirectory(newFakeUserRepo(), newFakeCustomerRepo()), zap.NewNop())

	_, err := s.Authenticate(context.Background(), &request.PhoneCredentials{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected credentials type")
}
