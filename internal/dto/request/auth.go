package request

import "encoding/json"

type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required,max=50"`
}

// AuthenticateRequest names the login method and carries that method's own
// credential payload. Credentials are decoded by the chosen strategy, so
// new strategies never touch this struct.
type AuthenticateRequest struct {
	Method      string          `json:"method" validate:"required"`
	Credentials json.RawMessage `json:"credentials" validate:"required"`
}

// PhoneCredentials is the credential payload for the phone strategy.
// Empty fields are not a validation error: they just never match a live
// code, so the attempt fails like any wrong code.
type PhoneCredentials struct {
	Phone string `json:"phone"`
	Code  string `json:"otp"`
}

// NativeCredentials is the credential payload for email/password login.
// Empty fields fail authentication rather than validation, mirroring the
// phone strategy.
type NativeCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
}
