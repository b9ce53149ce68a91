package event

import (
	"context"

	"github.com/Sonder9999/Daily-Web/internal/domain/events"
	"go.uber.org/zap"
)

// Service defines the business logic interface for daily events
type Service interface {
	ListByDate(ctx context.Context, date string) ([]Event, error)
	GetEvent(ctx context.Context, id uint) (*Event, error)
	CreateEvent(ctx context.Context, input Input) (*Event, error)
	// UpdateEvent and DeleteEvent succeed silently when id does not exist.
	UpdateEvent(ctx context.Context, id uint, input Input) error
	DeleteEvent(ctx context.Context, id uint) error
}

type service struct {
	repo     Repository
	notifier events.Notifier
	logger   *zap.Logger
}

// NewService creates a new event service instance
func NewService(repo Repository, notifier events.Notifier, logger *zap.Logger) Service {
	return &service{repo: repo, notifier: notifier, logger: logger}
}

func (s *service) ListByDate(ctx context.Context, date string) ([]Event, error) {
	date = NormalizeDate(date)
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	return s.repo.ListByDate(ctx, date)
}

func (s *service) GetEvent(ctx context.Context, id uint) (*Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) CreateEvent(ctx context.Context, input Input) (*Event, error) {
	event, err := input.Validate()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, event); err != nil {
		s.logger.Error("Failed to create event",
			zap.String("date", event.Date),
			zap.String("event_name", event.EventName),
			zap.Error(err),
		)
		return nil, err
	}

	s.notifier.Notify(ctx, events.NewChangeEvent(events.ActionCreated, event.ID, event.Date))
	return event, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uint, input Input) error {
	event, err := input.Validate()
	if err != nil {
		return err
	}
	event.ID = id

	if err := s.repo.Update(ctx, event); err != nil {
		s.logger.Error("Failed to update event", zap.Uint("id", id), zap.Error(err))
		return err
	}

	s.notifier.Notify(ctx, events.NewChangeEvent(events.ActionUpdated, id, event.Date))
	return nil
}

func (s *service) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete event", zap.Uint("id", id), zap.Error(err))
		return err
	}

	s.notifier.Notify(ctx, events.NewChangeEvent(events.ActionDeleted, id, ""))
	return nil
}
