// Package notify announces finished builds on a message bus.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Status of a finished build.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// BuildEvent is the message published after every build.
type BuildEvent struct {
	BuildID      string    `json:"build_id"`
	Status       string    `json:"status"`
	ContentPath  string    `json:"content_path"`
	OutputPath   string    `json:"output_path"`
	Revision     string    `json:"revision,omitempty"`
	FilesWritten int       `json:"files_written"`
	DurationMS   int64     `json:"duration_ms"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Encode returns the JSON form of e.
func (e BuildEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher sends build events somewhere.
type Publisher interface {
	PublishBuild(ctx context.Context, event BuildEvent) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishBuild(context.Context, BuildEvent) error { return nil }
func (NopPublisher) Close() error                                   { return nil }

// NATSPublisher publishes build events to a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to url and publishes to subject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		return nil, fmt.Errorf("nats subject is required")
	}
	conn, err := nats.Connect(url, nats.Name("pelican"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	slog.Info("NATS publisher connected", "url", url, "subject", subject)
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// PublishBuild publishes event and flushes the connection.
func (p *NATSPublisher) PublishBuild(ctx context.Context, event BuildEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	data, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}
	slog.Debug("Published build event", "build_id", event.BuildID, "status", event.Status)
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
