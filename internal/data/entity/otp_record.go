package entity

import (
	"time"
)

// OTPRecord is a single issued passcode bound to a phone number.
//
// A record is immutable after creation except for the Verified flag, which
// transitions false -> true exactly once and never reverts. Multiple
// unverified records may coexist for the same phone; matching picks the
// most recently created one.
type OTPRecord struct {
	BaseSimple
	Phone     string    `db:"phone"`
	Code      string    `db:"code"`
	Verified  bool      `db:"verified"`
	ExpiresAt time.Time `db:"expires_at"`
}
