package adaptor

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"phone-auth/internal/dto/request"
	"phone-auth/internal/dto/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// envelope mirrors utils.Response for decoding in assertions.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// ==================== service stubs ====================

type stubAuthService struct {
	otpResp   *response.RequestOTPResponse
	otpErr    error
	authResp  *response.AuthResponse
	authErr   error
	logoutErr error

	gotAuthReq     *request.AuthenticateRequest
	gotLogoutToken string
}

func (s *stubAuthService) RequestOTP(ctx context.Context, req *request.RequestOTPRequest) (*response.RequestOTPResponse, error) {
	if s.otpErr != nil {
		return nil, s.otpErr
	}
	return s.otpResp, nil
}

func (s *stubAuthService) Authenticate(ctx context.Context, req *request.AuthenticateRequest) (*response.AuthResponse, error) {
	s.gotAuthReq = req
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.authResp, nil
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	s.gotLogoutToken = token
	return s.logoutErr
}

type stubAccountService struct {
	registerResp *response.ProfileResponse
	registerErr  error
	profileResp  *response.ProfileResponse
	profileErr   error

	gotUserID uuid.UUID
}

func (s *stubAccountService) Register(ctx context.Context, req *request.RegisterRequest) (*response.ProfileResponse, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registerResp, nil
}

func (s *stubAccountService) Profile(ctx context.Context, userID uuid.UUID) (*response.ProfileResponse, error) {
	s.gotUserID = userID
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profileResp, nil
}
