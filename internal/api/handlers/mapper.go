package handlers

import (
	"github.com/Sonder9999/Daily-Web/internal/api/dto"
	"github.com/Sonder9999/Daily-Web/internal/domain/event"
	"github.com/Sonder9999/Daily-Web/internal/domain/template"
	"github.com/Sonder9999/Daily-Web/internal/domain/transfer"
)

// Events
func EventToResponse(e *event.Event) *dto.EventResponse {
	if e == nil {
		return nil
	}
	duration, _ := event.FormatDuration(e.StartTime, e.EndTime)
	return &dto.EventResponse{
		ID:        e.ID,
		Date:      event.NormalizeDate(e.Date),
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		EventName: e.EventName,
		Notes:     e.Notes,
		Duration:  duration,
	}
}

func EventsToResponse(events []event.Event) []dto.EventResponse {
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *EventToResponse(&events[i]))
	}
	return out
}

func EventRequestToInput(req *dto.EventRequest) event.Input {
	in := event.Input{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		EventName: req.EventName,
	}
	if req.Notes != nil {
		in.Notes = *req.Notes
	}
	return in
}

// Templates
func TemplatesToResponse(templates []template.EventTemplate) []dto.TemplateResponse {
	out := make([]dto.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, dto.TemplateResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

// Imports
func ImportRecordsToResponse(records []transfer.ImportRecord) []dto.ImportRecordResponse {
	out := make([]dto.ImportRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ImportRecordResponse{
			ID:        r.ID,
			Filename:  r.Filename,
			Format:    r.Format,
			Imported:  r.Imported,
			Skipped:   r.Skipped,
			Total:     r.Total,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
