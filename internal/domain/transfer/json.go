package transfer

import (
	"encoding/json"
	"io"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/Sonder9999/Daily-Web/internal/domain/event"
)

type jsonEvent struct {
	ID        uint    `json:"id,omitempty"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	EventName string  `json:"event_name"`
	Notes     *string `json:"notes"`
}

// EncodeJSON writes the events as an indented JSON array.
func EncodeJSON(w io.Writer, events []event.Event) error {
	out := make([]jsonEvent, 0, len(events))
	for _, e := range events {
		notes := e.Notes
		out = append(out, jsonEvent{
			ID:        e.ID,
			Date:      event.NormalizeDate(e.Date),
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			EventName: e.EventName,
			Notes:     &notes,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// DecodeJSON reads an array of events. Dates in full timestamp form are
// cut to YYYY-MM-DD; ids are ignored.
func DecodeJSON(r io.Reader) ([]event.Input, error) {
	var in []jsonEvent
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, apperror.NewValidation("file", "invalid JSON export: %v", err)
	}

	out := make([]event.Input, 0, len(in))
	for _, e := range in {
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}
		out = append(out, event.Input{
			Date:      event.NormalizeDate(e.Date),
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			EventName: e.EventName,
			Notes:     notes,
		})
	}
	return out, nil
}
