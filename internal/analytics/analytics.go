// Package analytics publishes storefront events emitted by cart mutations.
// Delivery is best-effort; a failed publish never fails the mutation that
// produced the event.
package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/verdantly/verdantly-backend/pkg/enums"
	"github.com/verdantly/verdantly-backend/pkg/logger"
)

// Event is a single storefront occurrence worth counting downstream.
type Event struct {
	ID         string              `json:"id"`
	Type       enums.CartEventType `json:"type"`
	SessionID  string              `json:"session_id"`
	ProductID  string              `json:"product_id,omitempty"`
	Variant    string              `json:"variant,omitempty"`
	Quantity   int                 `json:"quantity,omitempty"`
	Value      decimal.Decimal     `json:"value"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// NewEvent stamps an event with a fresh ID and the current time.
func NewEvent(eventType enums.CartEventType, sessionID string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		SessionID:  sessionID,
		OccurredAt: time.Now().UTC(),
	}
}

// Sink receives storefront events. Implementations must be safe for
// concurrent use.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// LogSink writes events to the structured log. It is the default sink when no
// message broker is configured.
type LogSink struct {
	Logger *logger.Logger
}

func (s *LogSink) Publish(ctx context.Context, event Event) error {
	if s == nil || s.Logger == nil {
		return nil
	}
	ctx = s.Logger.WithFields(ctx, map[string]any{
		"event_id":   event.ID,
		"event_type": event.Type.String(),
		"session_id": event.SessionID,
		"product_id": event.ProductID,
		"value":      event.Value.String(),
	})
	s.Logger.Info(ctx, "storefront event")
	return nil
}

// MultiSink fans an event out to every sink, collecting failures instead of
// stopping at the first one.
type MultiSink struct {
	Sinks []Sink
}

func (s *MultiSink) Publish(ctx context.Context, event Event) error {
	if s == nil {
		return nil
	}
	var err error
	for _, sink := range s.Sinks {
		if sink == nil {
			continue
		}
		err = multierr.Append(err, sink.Publish(ctx, event))
	}
	return err
}

// Publisher is the subset of the Pub/Sub publisher the sink needs.
type Publisher interface {
	Publish(ctx context.Context, msg *Message) Result
}

// Message mirrors the broker message shape without binding the sink to a
// concrete client.
type Message struct {
	Data       []byte
	Attributes map[string]string
}

// Result resolves the server-assigned message ID once the publish settles.
type Result interface {
	Get(ctx context.Context) (string, error)
}

// PubSubSink publishes events to a Pub/Sub topic as JSON.
type PubSubSink struct {
	Publisher Publisher
}

func (s *PubSubSink) Publish(ctx context.Context, event Event) error {
	if s == nil || s.Publisher == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	result := s.Publisher.Publish(ctx, &Message{
		Data: payload,
		Attributes: map[string]string{
			"event_type": event.Type.String(),
			"session_id": event.SessionID,
		},
	})
	_, err = result.Get(ctx)
	return err
}
