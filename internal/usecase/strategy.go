package usecase

import (
	"context"
	"fmt"

	"phone-auth/internal/data/entity"
)

// AuthenticationFailure is a login rejection carrying a reason meant for
// the caller. Infrastructure problems are returned as ordinary errors and
// must never be folded into this type.
type AuthenticationFailure struct {
	Reason string
}

func (e *AuthenticationFailure) Error() string {
	return e.Reason
}

func NewAuthenticationFailure(reason string) error {
	return &AuthenticationFailure{Reason: reason}
}

// AuthenticationStrategy verifies one kind of credential and resolves the
// user it belongs to. NewCredentials returns a fresh pointer the caller
// decodes the request payload into before handing it to Authenticate, so
// each strategy owns its own credential shape.
type AuthenticationStrategy interface {
	Name() string
	NewCredentials() any
	Authenticate(ctx context.Context, credentials any) (*entity.User, error)
}

// StrategyRegistry holds the enabled login methods in registration order.
// Register all strategies during wiring; the registry is read-only after
// that.
type StrategyRegistry struct {
	strategies []AuthenticationStrategy
}

func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{}
}

func (r *StrategyRegistry) Register(strategy AuthenticationStrategy) error {
	if strategy == nil {
		return fmt.Errorf("cannot register nil strategy")
	}
	if _, ok := r.Lookup(strategy.Name()); ok {
		return fmt.Errorf("strategy %q already registered", strategy.Name())
	}

	r.strategies = append(r.strategies, strategy)
	return nil
}

func (r *StrategyRegistry) Lookup(name string) (AuthenticationStrategy, bool) {
	for _, s := range r.strategies {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Names lists the registered methods in registration order.
func (r *StrategyRegistry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	return names
}
