package events

import (
	"context"

	"github.com/Sonder9999/Daily-Web/internal/infrastructure/cache"
	"github.com/Sonder9999/Daily-Web/pkg/broker"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier is what domain services depend on to announce writes.
type Notifier interface {
	Notify(ctx context.Context, change ChangeEvent)
}

type remotePublisher interface {
	PublishEvent(ctx context.Context, channel string, payload interface{}) error
}

// Publisher announces changes on the in-process broker and, when Redis is
// configured, on the shared channel so other instances can drop their
// derived caches too.
type Publisher struct {
	broker broker.MessageBroker
	remote remotePublisher
	origin string
	logger *zap.Logger
}

func NewPublisher(b broker.MessageBroker, redis *cache.RedisClient, logger *zap.Logger) *Publisher {
	p := &Publisher{
		broker: b,
		origin: uuid.New().String(),
		logger: logger,
	}
	if redis != nil {
		p.remote = redis
	}
	return p
}

// Notify never fails the caller's write; delivery problems are logged.
func (p *Publisher) Notify(ctx context.Context, change ChangeEvent) {
	change.Origin = p.origin

	payload, err := change.Marshal()
	if err != nil {
		p.logger.Error("Failed to encode change event", zap.Error(err))
		return
	}

	if err := p.broker.Publish(ctx, TopicEventsChanged, payload, map[string]string{"action": change.Action}); err != nil {
		p.logger.Error("Failed to publish change event",
			zap.String("action", change.Action),
			zap.Error(err),
		)
	}

	if p.remote != nil {
		if err := p.remote.PublishEvent(ctx, cache.EventsChannel, change); err != nil {
			p.logger.Error("Failed to publish change event to redis", zap.Error(err))
		}
	}
}

// Relay republishes a change received from another instance on the local
// broker. Changes that originated here are ignored.
func (p *Publisher) Relay(ctx context.Context, data []byte) error {
	change, err := UnmarshalChangeEvent(data)
	if err != nil {
		return err
	}
	if change.Origin == p.origin {
		return nil
	}
	return p.broker.Publish(ctx, TopicEventsChanged, data, map[string]string{
		"action": change.Action,
		"origin": change.Origin,
	})
}
