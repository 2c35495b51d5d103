package response

import (
	"phone-auth/internal/data/entity"
	"time"
)

// RequestOTPResponse confirms a passcode was issued. The code itself only
// travels over the delivery channel, never in the HTTP response.
type RequestOTPResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthResponse struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Method    string    `json:"method"`
	Verified  bool      `json:"verified"`
}

type ProfileResponse struct {
	UserID    string    `json:"user_id"`
	Method    string    `json:"method"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Helper converters
func OTPToResponse(record *entity.OTPRecord) RequestOTPResponse {
	return RequestOTPResponse{
		Phone:     record.Phone,
		ExpiresAt: record.ExpiresAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	resp := AuthResponse{
		UserID:   user.ID.String(),
		Method:   user.StrategyName,
		Verified: user.Verified,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}

func ProfileToResponse(user *entity.User, customer *entity.Customer) ProfileResponse {
	resp := ProfileResponse{
		UserID:    user.ID.String(),
		Method:    user.StrategyName,
		CreatedAt: user.CreatedAt,
	}

	if customer != nil {
		resp.Email = customer.Email
		resp.FirstName = customer.FirstName
		resp.LastName = customer.LastName
		resp.Phone = customer.Phone
	}

	return resp
}
