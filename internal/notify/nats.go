// Package notify publishes resolution misses to NATS so other services can
// react to broken documentation links.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docresolve/internal/config"
	"git.home.luguber.info/inful/docresolve/internal/logfields"
	"git.home.luguber.info/inful/docresolve/internal/navigate"
	"git.home.luguber.info/inful/docresolve/internal/resolve"
)

// Publisher is the subset of *nats.Conn used by NATSNotifier.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSNotifier publishes a MissEvent for every fallback navigation.
type NATSNotifier struct {
	pub     Publisher
	conn    *nats.Conn
	subject string
}

// Connect dials NATS and returns a notifier for cfg.Subject.
func Connect(cfg config.NotifyConfig) (*NATSNotifier, error) {
	if cfg.NATSURL == "" {
		return nil, fmt.Errorf("nats url is required")
	}

	conn, err := nats.Connect(cfg.NATSURL, nats.Name("docresolve"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	slog.Info("NATS miss notifier initialized", "url", cfg.NATSURL, "subject", cfg.Subject)
	return &NATSNotifier{pub: conn, conn: conn, subject: cfg.Subject}, nil
}

// NewNotifier wraps an existing publisher.
func NewNotifier(pub Publisher, subject string) *NATSNotifier {
	return &NATSNotifier{pub: pub, subject: subject}
}

// NavigateToNotFound implements resolve.FallbackNavigator.
func (n *NATSNotifier) NavigateToNotFound(_ context.Context, miss resolve.Miss) {
	ev := navigate.NewMissEvent(miss)
	if err := n.Publish(ev); err != nil {
		slog.Warn("Failed to publish miss event", logfields.MissID(ev.ID), logfields.Error(err))
	}
}

// Publish sends one event.
func (n *NATSNotifier) Publish(ev navigate.MissEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := n.pub.Publish(n.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	slog.Debug("Published miss event",
		logfields.MissID(ev.ID),
		logfields.Lang(ev.Lang),
		logfields.Path(ev.Path))
	return nil
}

// Close drains the connection when the notifier owns one.
func (n *NATSNotifier) Close() error {
	if n.conn != nil {
		return n.conn.Drain()
	}
	return nil
}
