package event

import (
	"strings"
	"time"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"gorm.io/gorm"
)

// Event is one timestamped activity on a calendar date. Times are stored
// normalized to HH:MM:SS; overlapping events are allowed.
type Event struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Date      string    `json:"date" gorm:"type:date;not null;index:idx_events_date_start,priority:1"`
	StartTime string    `json:"start_time" gorm:"type:varchar(8);not null;index:idx_events_date_start,priority:2"`
	EndTime   string    `json:"end_time" gorm:"type:varchar(8);not null"`
	EventName string    `json:"event_name" gorm:"type:varchar(255);not null;index"`
	Notes     string    `json:"notes" gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

// AfterFind trims the driver's timestamp rendering of DATE columns back to
// YYYY-MM-DD.
func (e *Event) AfterFind(tx *gorm.DB) error {
	e.Date = NormalizeDate(e.Date)
	return nil
}

// Input carries the caller-supplied fields of an event.
type Input struct {
	Date      string
	StartTime string
	EndTime   string
	EventName string
	Notes     string
}

// Validate checks the input and returns the normalized event it describes.
func (in Input) Validate() (*Event, error) {
	date := NormalizeDate(strings.TrimSpace(in.Date))
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	start, err := NormalizeClock(strings.TrimSpace(in.StartTime))
	if err != nil {
		return nil, apperror.NewValidation("start_time", "invalid time of day %q", in.StartTime)
	}
	end, err := NormalizeClock(strings.TrimSpace(in.EndTime))
	if err != nil {
		return nil, apperror.NewValidation("end_time", "invalid time of day %q", in.EndTime)
	}
	name := strings.TrimSpace(in.EventName)
	if name == "" {
		return nil, apperror.NewValidation("event_name", "event name is required")
	}

	return &Event{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		EventName: name,
		Notes:     in.Notes,
	}, nil
}

// Key identifies an event for import deduplication.
type Key struct {
	Date      string
	StartTime string
	EndTime   string
	EventName string
}

func (e Event) Key() Key {
	return Key{Date: e.Date, StartTime: e.StartTime, EndTime: e.EndTime, EventName: e.EventName}
}
