// Package notify delivers one-time passcodes to phone numbers. The actual
// transport is pluggable; the service layer only sees the Notifier port.
package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Notifier sends a passcode to a phone number. Implementations return a
// *DeliveryError when the code could not be handed to the transport.
type Notifier interface {
	Send(ctx context.Context, phone, code string) error
}

// DeliveryError reports a failed OTP delivery attempt.
type DeliveryError struct {
	Phone string
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("otp delivery to %s failed: %v", e.Phone, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// ==================== Log driver ====================

// logNotifier writes codes to the application log. Development driver,
// never wire it to production traffic.
type logNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) Notifier {
	return &logNotifier{
		log: log.With(zap.String("notifier", "log")),
	}
}

func (n *logNotifier) Send(ctx context.Context, phone, code string) error {
	n.log.Info("OTP delivery",
		zap.String("phone", phone),
		zap.String("code", code))
	return nil
}

// ==================== Noop driver ====================

// noopNotifier discards codes. Used when delivery is handled out of band.
type noopNotifier struct{}

func NewNoopNotifier() Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) Send(ctx context.Context, phone, code string) error {
	return nil
}
