package event

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"gorm.io/gorm"
)

// Repository interface defines the data access methods for events
type Repository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Event, error)
	ListByDate(ctx context.Context, date string) ([]Event, error)
	ListRange(ctx context.Context, startDate, endDate string) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
	// FindDuplicate returns nil, nil when no event shares the key.
	FindDuplicate(ctx context.Context, key Key) (*Event, error)
	// DateBounds returns empty strings when the store holds no events.
	DateBounds(ctx context.Context) (string, string, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new event repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return apperror.NewStore("create event", r.db.WithContext(ctx).Create(event).Error)
}

// Update overwrites the mutable columns by id. A missing id matches no
// rows and is not an error.
func (r *repository) Update(ctx context.Context, event *Event) error {
	err := r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"date":       event.Date,
			"start_time": event.StartTime,
			"end_time":   event.EndTime,
			"event_name": event.EventName,
			"notes":      event.Notes,
		}).Error
	return apperror.NewStore("update event", err)
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return apperror.NewStore("delete event", r.db.WithContext(ctx).Delete(&Event{}, id).Error)
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFound("event", id)
	}
	if err != nil {
		return nil, apperror.NewStore("find event", err)
	}
	return &event, nil
}

func (r *repository) ListByDate(ctx context.Context, date string) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("start_time ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, apperror.NewStore("list events by date", err)
	}
	return events, nil
}

func (r *repository) ListRange(ctx context.Context, startDate, endDate string) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Order("date ASC, start_time ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, apperror.NewStore("list events by range", err)
	}
	return events, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Order("date ASC, start_time ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, apperror.NewStore("list events", err)
	}
	return events, nil
}

func (r *repository) FindDuplicate(ctx context.Context, key Key) (*Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("date = ? AND start_time = ? AND end_time = ? AND event_name = ?",
			key.Date, key.StartTime, key.EndTime, key.EventName).
		Limit(1).
		Find(&events).Error
	if err != nil {
		return nil, apperror.NewStore("find duplicate event", err)
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *repository) DateBounds(ctx context.Context) (string, string, error) {
	var minDate, maxDate sql.NullString
	row := r.db.WithContext(ctx).
		Model(&Event{}).
		Select("MIN(date)::text, MAX(date)::text").
		Row()
	if err := row.Scan(&minDate, &maxDate); err != nil {
		return "", "", apperror.NewStore("event date bounds", err)
	}
	return NormalizeDate(minDate.String), NormalizeDate(maxDate.String), nil
}
