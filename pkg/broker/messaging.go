package broker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Common errors
var (
	ErrBrokerClosed      = errors.New("broker is closed")
	ErrQueueNotFound     = errors.New("queue not found")
	ErrSubscriptionError = errors.New("error creating subscription")
)

// Message represents a generic message in the message queue
type Message struct {
	ID          string            `json:"id"`
	Topic       string            `json:"topic"`
	Payload     []byte            `json:"payload"`
	PublishedAt time.Time         `json:"published_at"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// MessageHandler is a function that processes messages
type MessageHandler func(context.Context, *Message) error

// MessageBroker defines an interface for a message broker
type MessageBroker interface {
	// Publish publishes a message to a topic
	Publish(ctx context.Context, topic string, payload []byte, attributes map[string]string) error

	// Subscribe subscribes to a topic with a handler function
	Subscribe(ctx context.Context, topic string, handler MessageHandler) (Subscription, error)

	// Close closes the message broker
	Close() error
}

// Subscription represents a subscription to a topic
type Subscription interface {
	ID() string
	Topic() string
	Unsubscribe() error
	IsClosed() bool
}

// InMemoryBroker fans messages out to in-process subscribers. Each topic
// keeps the last retention messages for inspection; older ones are dropped.
type InMemoryBroker struct {
	topics        map[string][]Message
	subscriptions map[string]map[string]MessageHandler
	mu            sync.RWMutex
	inflight      sync.WaitGroup
	logger        *logrus.Logger
	retention     int
	closed        bool
}

type subscription struct {
	id     string
	topic  string
	broker *InMemoryBroker
	closed bool
}

// NewInMemoryBroker creates a new in-memory message broker
func NewInMemoryBroker(logger *logrus.Logger, retention int) *InMemoryBroker {
	if retention <= 0 {
		retention = 100
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &InMemoryBroker{
		topics:        make(map[string][]Message),
		subscriptions: make(map[string]map[string]MessageHandler),
		logger:        logger,
		retention:     retention,
	}
}

func (b *InMemoryBroker) ensureTopic(topic string) {
	if _, exists := b.topics[topic]; !exists {
		b.topics[topic] = make([]Message, 0)
		b.subscriptions[topic] = make(map[string]MessageHandler)
	}
}

// Publish stores the message and dispatches it to every subscriber on its
// own goroutine.
func (b *InMemoryBroker) Publish(ctx context.Context, topic string, payload []byte, attributes map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrokerClosed
	}

	b.ensureTopic(topic)

	msg := Message{
		ID:          uuid.New().String(),
		Topic:       topic,
		Payload:     payload,
		PublishedAt: time.Now(),
		Attributes:  attributes,
	}

	queue := append(b.topics[topic], msg)
	if len(queue) > b.retention {
		queue = queue[len(queue)-b.retention:]
	}
	b.topics[topic] = queue

	for _, handler := range b.subscriptions[topic] {
		b.inflight.Add(1)
		go b.processMessage(handler, msg)
	}

	b.logger.WithFields(logrus.Fields{
		"topic":       topic,
		"message_id":  msg.ID,
		"subscribers": len(b.subscriptions[topic]),
	}).Debug("Message published")

	return nil
}

// Subscribe subscribes to a topic
func (b *InMemoryBroker) Subscribe(ctx context.Context, topic string, handler MessageHandler) (Subscription, error) {
	if handler == nil {
		return nil, ErrSubscriptionError
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBrokerClosed
	}

	b.ensureTopic(topic)

	subID := uuid.New().String()
	b.subscriptions[topic][subID] = handler

	return &subscription{
		id:     subID,
		topic:  topic,
		broker: b,
	}, nil
}

// History returns a copy of the retained messages for a topic, oldest first.
func (b *InMemoryBroker) History(topic string) ([]Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	queue, ok := b.topics[topic]
	if !ok {
		return nil, ErrQueueNotFound
	}
	out := make([]Message, len(queue))
	copy(out, queue)
	return out, nil
}

// processMessage runs on a background context so a finished request does
// not cancel its subscribers.
func (b *InMemoryBroker) processMessage(handler MessageHandler, msg Message) {
	defer b.inflight.Done()

	if err := handler(context.Background(), &msg); err != nil {
		b.logger.WithError(err).WithFields(logrus.Fields{
			"message_id": msg.ID,
			"topic":      msg.Topic,
		}).Error("Error processing message")
	}
}

// Drain blocks until every dispatched handler has returned.
func (b *InMemoryBroker) Drain() {
	b.inflight.Wait()
}

// Close stops accepting messages and waits for running handlers.
func (b *InMemoryBroker) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.topics = nil
	b.subscriptions = nil
	b.mu.Unlock()

	b.inflight.Wait()
	return nil
}

func (s *subscription) ID() string {
	return s.id
}

func (s *subscription) Topic() string {
	return s.topic
}

func (s *subscription) IsClosed() bool {
	s.broker.mu.RLock()
	defer s.broker.mu.RUnlock()
	return s.closed
}

// Unsubscribe unsubscribes from the topic
func (s *subscription) Unsubscribe() error {
	s.broker.mu.Lock()
	defer s.broker.mu.Unlock()

	if s.closed {
		return nil
	}

	if subs, ok := s.broker.subscriptions[s.topic]; ok {
		delete(subs, s.id)
	}

	s.closed = true
	return nil
}
