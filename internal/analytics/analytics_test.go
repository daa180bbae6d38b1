package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/multierr"

	"github.com/verdantly/verdantly-backend/pkg/enums"
)

type captureSink struct {
	events []Event
	err    error
}

func (s *captureSink) Publish(_ context.Context, event Event) error {
	s.events = append(s.events, event)
	return s.err
}

func TestNewEventStampsIdentityAndTime(t *testing.T) {
	t.Parallel()

	event := NewEvent(enums.CartEventItemAdded, "sess-1")
	if event.ID == "" {
		t.Fatal("event id not assigned")
	}
	if event.OccurredAt.IsZero() {
		t.Fatal("occurred_at not stamped")
	}
	if event.Type != enums.CartEventItemAdded || event.SessionID != "sess-1" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestMultiSinkFansOutAndCollectsErrors(t *testing.T) {
	t.Parallel()

	healthy := &captureSink{}
	broken := &captureSink{err: errors.New("broker down")}
	multi := &MultiSink{Sinks: []Sink{healthy, broken, nil}}

	err := multi.Publish(context.Background(), NewEvent(enums.CartEventCleared, "sess-1"))
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if len(multierr.Errors(err)) != 1 {
		t.Fatalf("expected 1 collected error, got %v", multierr.Errors(err))
	}
	if len(healthy.events) != 1 {
		t.Fatal("healthy sink must still receive the event")
	}
}

type fakeResult struct {
	err error
}

func (r fakeResult) Get(context.Context) (string, error) {
	return "msg-1", r.err
}

type fakePublisher struct {
	published []*Message
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, msg *Message) Result {
	p.published = append(p.published, msg)
	return fakeResult{err: p.err}
}

func TestPubSubSinkPublishesJSONWithAttributes(t *testing.T) {
	t.Parallel()

	publisher := &fakePublisher{}
	sink := &PubSubSink{Publisher: publisher}

	event := NewEvent(enums.CartEventItemAdded, "sess-1")
	event.ProductID = "peace-lily"

	if err := sink.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 message, got %d", len(publisher.published))
	}

	msg := publisher.published[0]
	if msg.Attributes["event_type"] != "cart_item_added" || msg.Attributes["session_id"] != "sess-1" {
		t.Fatalf("unexpected attributes: %v", msg.Attributes)
	}

	var decoded Event
	if err := json.Unmarshal(msg.Data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.ProductID != "peace-lily" {
		t.Fatalf("decoded product id = %q", decoded.ProductID)
	}
}

func TestPubSubSinkSurfacesPublishError(t *testing.T) {
	t.Parallel()

	sink := &PubSubSink{Publisher: &fakePublisher{err: errors.New("deadline exceeded")}}
	err := sink.Publish(context.Background(), NewEvent(enums.CartEventItemRemoved, "sess-1"))
	if err == nil {
		t.Fatal("expected publish error to surface")
	}
}

func TestNilSinksAreSafe(t *testing.T) {
	t.Parallel()

	var log *LogSink
	if err := log.Publish(context.Background(), Event{}); err != nil {
		t.Fatalf("nil LogSink errored: %v", err)
	}
	var multi *MultiSink
	if err := multi.Publish(context.Background(), Event{}); err != nil {
		t.Fatalf("nil MultiSink errored: %v", err)
	}
	var ps *PubSubSink
	if err := ps.Publish(context.Background(), Event{}); err != nil {
		t.Fatalf("nil PubSubSink errored: %v", err)
	}
}
