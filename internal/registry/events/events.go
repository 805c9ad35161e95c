// Package events publishes a record of every committed registry invocation.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Type names a committed state transition.
type Type string

const (
	UserRequested     Type = "user.requested"
	UserApproved      Type = "user.approved"
	AccountRecharged  Type = "account.recharged"
	PropertyRequested Type = "property.requested"
	PropertyApproved  Type = "property.approved"
	PropertyUpdated   Type = "property.updated"
	PropertyPurchased Type = "property.purchased"
)

// Event is emitted after an invocation commits.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	TxID       string    `json:"tx_id"`
	Invoker    string    `json:"invoker,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher delivers events. Callers treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to a structured log. It is used when no broker
// is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "ledger event",
		"event_id", event.ID,
		"event_type", string(event.Type),
		"tx_id", event.TxID,
		"invoker", event.Invoker,
		"occurred_at", event.OccurredAt,
		"data", json.RawMessage(data),
	)
	return nil
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
