package dto

import "github.com/Sonder9999/Daily-Web/internal/domain/layout"

// EventRequest is the body of POST /api/events and PUT /api/events/:id.
type EventRequest struct {
	Date      string  `json:"date" validate:"required,calendar_date"`
	StartTime string  `json:"start_time" validate:"required,clock"`
	EndTime   string  `json:"end_time" validate:"required,clock"`
	EventName string  `json:"event_name" validate:"required,not_empty,max=255"`
	Notes     *string `json:"notes" validate:"omitempty,max=10000"`
}

// EventResponse is one stored event.
type EventResponse struct {
	ID        uint   `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	EventName string `json:"event_name"`
	Notes     string `json:"notes"`
	Duration  string `json:"duration,omitempty"`
}

// MessageResponse is the acknowledgement returned by writes. ID is set on
// creation only.
type MessageResponse struct {
	ID      uint   `json:"id,omitempty"`
	Message string `json:"message"`
}

// LayoutResponse is the per-hour rendering plan of one day.
type LayoutResponse struct {
	Date  string        `json:"date"`
	Hours []layout.Slot `json:"hours"`
}
