package bus

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects published by the pulse service. Downstream consumers (digest
// builders, audit sinks) subscribe out of process.
const (
	SubjectProjectCreated = "pulse.projects.created"
	SubjectPulsePublished = "pulse.updates.published"
	SubjectTokenIssued    = "pulse.tokens.issued"
	SubjectTokenRevoked   = "pulse.tokens.revoked"
)

// Event is the JSON envelope written to every subject.
type Event struct {
	Subject    string         `json:"subject"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

// Bus wraps a NATS JetStream connection for publishing service events.
type Bus struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// New creates a Bus connected to the provided NATS endpoint.
func New(url string, opts ...nats.Option) (*Bus, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	return &Bus{conn: nc, js: js}, nil
}

// Close drains and shuts down the underlying NATS connection.
func (b *Bus) Close() {
	if b == nil {
		return
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
	}
}

// Publish wraps data in an Event envelope and publishes it to subj.
func (b *Bus) Publish(ctx context.Context, subj string, data map[string]any) error {
	if b == nil {
		return errors.New("nil bus")
	}

	payload, err := json.Marshal(Event{
		Subject:    subj,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		return err
	}

	_, err = b.js.Publish(subj, payload, nats.Context(ctx))
	return err
}
