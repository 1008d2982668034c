package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const LedgerChanged = "ledger.changed"

// Event describes one successful mutating command.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Command    string    `json:"command"`
	Message    string    `json:"message"`
	TraceID    string    `json:"trace_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewLedgerChanged(command string, message string, traceID string) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       LedgerChanged,
		Command:    command,
		Message:    message,
		TraceID:    traceID,
		OccurredAt: time.Now().UTC(),
	}
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func FromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, err
	}
	return e, nil
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, e Event) error { return nil }
func (NoopPublisher) Close() error                               { return nil }
