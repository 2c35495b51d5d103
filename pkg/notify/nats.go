package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// deliveryJob is the payload handed to the SMS worker pool.
type deliveryJob struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// natsConn abstracts the NATS connection so the notifier can be tested
// against a fake connection
type natsConn interface {
	Publish(subject string, data []byte) error
	Flush() error
	Drain() error
}

// NATSNotifier publishes delivery jobs to a NATS subject. An external SMS
// worker consumes the subject and talks to the carrier gateway.
type NATSNotifier struct {
	conn    natsConn
	subject string
	log     *zap.Logger
}

func NewNATSNotifier(url, subject string, log *zap.Logger) (*NATSNotifier, error) {
	if url == "" {
		return nil, fmt.Errorf("nats url is required")
	}
	if subject == "" {
		return nil, fmt.Errorf("nats subject is required")
	}

	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &NATSNotifier{
		conn:    conn,
		subject: subject,
		log:     log.With(zap.String("notifier", "nats")),
	}, nil
}

func (n *NATSNotifier) Send(ctx context.Context, phone, code string) error {
	if err := ctx.Err(); err != nil {
		return &DeliveryError{Phone: phone, Err: err}
	}

	payload, err := json.Marshal(deliveryJob{Phone: phone, Code: code})
	if err != nil {
		return &DeliveryError{Phone: phone, Err: err}
	}

	if err := n.conn.Publish(n.subject, payload); err != nil {
		return &DeliveryError{Phone: phone, Err: err}
	}
	// Flush so a dead server surfaces here, not on some later publish
	if err := n.conn.Flush(); err != nil {
		return &DeliveryError{Phone: phone, Err: err}
	}

	n.log.Debug("delivery job published",
		zap.String("phone", phone),
		zap.String("subject", n.subject))

	return nil
}

// Close drains the connection, letting buffered jobs flush before it
// closes. Safe to call during shutdown even if the connection never opened.
func (n *NATSNotifier) Close() {
	if n.conn == nil {
		return
	}
	if err := n.conn.Drain(); err != nil {
		n.log.Warn("NATS drain failed", zap.Error(err))
	}
}
