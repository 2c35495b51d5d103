package entity

// Strategy names of the authentication methods built into the service.
// External identifiers are scoped per strategy: the native strategy keys
// users by email address, the phone strategy by phone number.
const (
	StrategyNative = "native"
	StrategyPhone  = "phone"
)

// User is an identity in the account directory, keyed by
// (strategy_name, external_identifier).
type User struct {
	Base
	StrategyName       string  `db:"strategy_name"`
	ExternalIdentifier string  `db:"external_identifier"`
	PasswordHash       *string `db:"password_hash"`
	Verified           bool    `db:"verified"`
}
