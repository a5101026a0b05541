package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"noteboard/contexts/identity-access/account-service/ports"
	"noteboard/internal/shared/events"
)

// TopicWelcome carries post-registration notification jobs.
const TopicWelcome = "notifications.welcome"

const eventTypeUserRegistered = "user.registered"

// Publisher is the broker surface the producer needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// Subscriber is the broker surface the consumer side needs.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, events.Envelope) error) error
}

// WelcomeMailProducer implements ports.WelcomeMailProducer over the broker.
type WelcomeMailProducer struct {
	Publisher     Publisher
	SourceService string
	Logger        *slog.Logger
}

func (p WelcomeMailProducer) EnqueueWelcome(ctx context.Context, event ports.WelcomeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	envelope := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventTypeUserRegistered,
		SourceService: p.SourceService,
		OccurredAtUTC: time.Now().UTC(),
		Payload:       payload,
	}
	if err := p.Publisher.Publish(ctx, TopicWelcome, envelope); err != nil {
		return err
	}
	if p.Logger != nil {
		p.Logger.Info("welcome job enqueued",
			"event", "welcome_job_enqueued",
			"module", "identity-access/account-service",
			"layer", "adapter",
			"event_id", envelope.EventID,
			"email", event.Email,
		)
	}
	return nil
}

// BrokerSource implements ports.EventSource over the broker.
type BrokerSource struct {
	Subscriber Subscriber
}

func (s BrokerSource) SubscribeWelcome(
	ctx context.Context,
	consumerGroup string,
	handler func(context.Context, ports.WelcomeEvent) error,
) error {
	return s.Subscriber.Subscribe(ctx, TopicWelcome, consumerGroup, func(ctx context.Context, envelope events.Envelope) error {
		var event ports.WelcomeEvent
		if err := json.Unmarshal(envelope.Payload, &event); err != nil {
			return err
		}
		return handler(ctx, event)
	})
}
