package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"phone-auth/internal/data/entity"
	"phone-auth/internal/dto/request"
	"phone-auth/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCredentials struct {
	Token string `json:"token"`
}

func testAuthConfig() *utils.Config {
	return &utils.Config{
		Auth: utils.AuthConfig{
			SessionExpiryHours: 24,
			DefaultEmailDomain: "phone.local",
		},
	}
}

func newTestAuthService(t *testing.T, strategy AuthenticationStrategy) (AuthService, *fakeSessionRepo) {
	t.Helper()

	registry := NewStrategyRegistry()
	require.NoError(t, registry.Register(strategy))

	sessions := newFakeSessionRepo()
	svc := NewAuthService(registry, &fakeOTPService{}, sessions, testAuthConfig(), zap.NewNop())
	return svc, sessions
}

func TestAuthenticateSuccessIssuesSession(t *testing.T) {
	user := testUser("stub", "someone")
	strategy := &fakeStrategy{
		name:     "stub",
		newCreds: func() any { return &stubCredentials{} },
		user:     user,
	}
	svc, sessions := newTestAuthService(t, strategy)

	resp, err := svc.Authenticate(context.Background(), &request.AuthenticateRequest{
		Method:      "stub",
		Credentials: json.RawMessage(`{"token":"abc"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), resp.UserID)
	assert.Equal(t, "stub", resp.Method)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), resp.ExpiresAt, 5*time.Second)

	// The decoded payload reached the strategy
	creds, ok := strategy.gotCreds.(*stubCredentials)
	require.True(t, ok)
	assert.Equal(t, "abc", creds.Token)

	// And the session is live
	token, err := utils.ParseUUID(resp.Token)
	require.NoError(t, err)
	session, err := sessions.FindValidSession(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.UserID)
}

func TestAuthenticateUnknownMethod(t *testing.T) {
	svc, _ := newTestAuthService(t, &fakeStrategy{name: "stub"})

	_, err := svc.Authenticate(context.Background(), &request.AuthenticateRequest{
		Method:      "saml",
		Credentials: json.RawMessage(`{}`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "stub")
}

func TestAuthenticateValidation(t *testing.T) {
	svc, _ := newTestAuthService(t, &fakeStrategy{name: "stub"})

	tests := []struct {
		name string
		req  request.AuthenticateRequest
	}{
		{name: "missing method", req: request.AuthenticateRequest{Credentials: json.RawMessage(`{}`)}},
		{name: "missing credentials", req: request.AuthenticateRequest{Method: "stub"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Authenticate(context.Background(), &req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestAuthenticateMalformedCredentials(t *testing.T) {
	strategy := &fakeStrategy{
		name:     "stub",
		newCreds: func() any { return &stubCredentials{} },
	}
	svc, _ := newTestAuthService(t, strategy)

	_, err := svc.Authenticate(context.Background(), &request.AuthenticateRequest{
		Method:      "stub",
		Credentials: json.RawMessage(`"not an object`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Nil(t, strategy.gotCreds)
}

func TestAuthenticateKeepsFailuresTyped(t *testing.T) {
	strategy := &fakeStrategy{
		name:     "stub",
		newCreds: func() any { return &stubCredentials{} },
		err:      NewAuthenticationFailure(ReasonInvalidOTP),
	}
	svc, sessions := newTestAuthService(t, strategy)

	_, err := svc.Authenticate(context.Background(), &request.AuthenticateRequest{
		Method:      "stub",
		Credentials: json.RawMessage(`{}`),
	})

	var failure *AuthenticationFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, ReasonInvalidOTP, failure.Reason)
	assert.Empty(t, sessions.sessions)
}

func TestAuthenticateSessionCreateFailure(t *testing.T) {
	strategy := &fakeStrategy{
		name:     "stub",
		newCreds: func() any { return &stubCredentials{} },
		user:     testUser("stub", "someone"),
	}
	registry := NewStrategyRegistry()
	require.NoError(t, registry.Register(strategy))

	sessions := newFakeSessionRepo()
	sessions.createErr = errors.New("db down")
	svc := NewAuthService(registry, &fakeOTPService{}, sessions, testAuthConfig(), zap.NewNop())

	_, err := svc.Authenticate(context.Background(), &request.AuthenticateRequest{
		Method:      "stub",
		Credentials: json.RawMessage(`{}`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create session")
}

func TestRequestOTPValidation(t *testing.T) {
	svc, _ := newTestAuthService(t, &fakeStrategy{name: "stub"})

	_, err := svc.RequestOTP(context.Background(), &request.RequestOTPRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLogout(t *testing.T) {
	user := testUser("stub", "someone")
	strategy := &fakeStrategy{
		name:     "stub",
		newCreds: func() any { return &stubCredentials{} },
		user:     user,
	}
	svc, sessions := newTestAuthService(t, strategy)

	resp, err := svc.Authenticate(context.Background(), &request.AuthenticateRequest{
		Method:      "stub",
		Credentials: json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.Token))

	// The session is gone
	token, err := utils.ParseUUID(resp.Token)
	require.NoError(t, err)
	session, err := sessions.FindValidSession(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, session)

	// Revoking again fails
	require.Error(t, svc.Logout(context.Background(), resp.Token))
}

func TestLogoutBadToken(t *testing.T) {
	svc, _ := newTestAuthService(t, &fakeStrategy{name: "stub"})

	err := svc.Logout(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token format")
}

// Phone identities and native identities never collide even when they
// share an external identifier.
func TestStrategyKeyedIdentityIsolation(t *testing.T) {
	users := newFakeUserRepo()
	directory := testDirectory(users, newFakeCustomerRepo())

	_, err := directory.CreateCustomerAndUser(context.Background(), NewIdentity{
		StrategyName:       entity.StrategyPhone,
		ExternalIdentifier: "+1000",
		Verified:           true,
		Profile:            ProfileSeed{Email: "+1000@phone.local"},
	})
	require.NoError(t, err)

	_, err = directory.CreateCustomerAndUser(context.Background(), NewIdentity{
		StrategyName:       entity.StrategyNative,
		ExternalIdentifier: "+1000",
		Verified:           true,
		Profile:            ProfileSeed{Email: "someone@example.com"},
	})
	require.NoError(t, err)

	phoneUser, err := directory.FindUser(context.Background(), entity.StrategyPhone, "+1000")
	require.NoError(t, err)
	nativeUser, err := directory.FindUser(context.Background(), entity.StrategyNative, "+1000")
	require.NoError(t, err)

	require.NotNil(t, phoneUser)
	require.NotNil(t, nativeUser)
	assert.NotEqual(t, phoneUser.ID, nativeUser.ID)
}
