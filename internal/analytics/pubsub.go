package analytics

import (
	"context"

	pubsub "cloud.google.com/go/pubsub/v2"
)

// pubsubPublisher adapts the Pub/Sub v2 publisher to the Publisher interface.
type pubsubPublisher struct {
	publisher *pubsub.Publisher
}

// NewPubSubSink wraps a Pub/Sub publisher as an event sink. A nil publisher
// yields a sink that drops every event.
func NewPubSubSink(publisher *pubsub.Publisher) *PubSubSink {
	if publisher == nil {
		return &PubSubSink{}
	}
	return &PubSubSink{Publisher: &pubsubPublisher{publisher: publisher}}
}

func (p *pubsubPublisher) Publish(ctx context.Context, msg *Message) Result {
	return p.publisher.Publish(ctx, &pubsub.Message{
		Data:       msg.Data,
		Attributes: msg.Attributes,
	})
}
