// Package layout maps the events of one date onto a 24-hour grid. Each
// event contributes one segment to every hour it touches; overlapping
// events are positioned independently and never merged.
package layout

import (
	"fmt"

	"github.com/Sonder9999/Daily-Web/internal/domain/event"
)

const HoursPerDay = 24

// Segment is the part of an event drawn inside one hour. Minutes are in
// [0,59]; Left and Width are percentages of the hour.
type Segment struct {
	EventID     uint    `json:"event_id"`
	Hour        int     `json:"hour"`
	StartMinute int     `json:"start_minute"`
	EndMinute   int     `json:"end_minute"`
	Label       string  `json:"label"`
	Left        float64 `json:"left"`
	Width       float64 `json:"width"`
	Color       string  `json:"color"`
	Duration    string  `json:"duration"`
}

// Slot is one hour of the grid with the defaults a new event in that hour
// starts from.
type Slot struct {
	Hour         int       `json:"hour"`
	Label        string    `json:"label"`
	DefaultStart string    `json:"default_start"`
	DefaultEnd   string    `json:"default_end"`
	Segments     []Segment `json:"segments"`
}

// Segments splits one event across the hours it covers.
func Segments(e event.Event) ([]Segment, error) {
	start, err := event.MinuteOfDay(e.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := event.MinuteOfDay(e.EndTime)
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, nil
	}

	duration, err := event.FormatDuration(e.StartTime, e.EndTime)
	if err != nil {
		return nil, err
	}

	startHour, endHour := start/60, end/60
	segments := make([]Segment, 0, endHour-startHour+1)

	for h := startHour; h <= endHour; h++ {
		startMinute, endMinute := 0, 59
		if h == startHour {
			startMinute = start % 60
		}
		if h == endHour {
			endMinute = end % 60
		}
		// An event ending exactly on the hour does not spill into it.
		if h == endHour && end%60 == 0 && h != startHour {
			continue
		}

		segments = append(segments, Segment{
			EventID:     e.ID,
			Hour:        h,
			StartMinute: startMinute,
			EndMinute:   endMinute,
			Label:       e.EventName,
			Left:        float64(startMinute) / 60 * 100,
			Width:       float64(endMinute-startMinute+1) / 60 * 100,
			Color:       Color(e.EventName, h),
			Duration:    duration,
		})
	}

	return segments, nil
}

// Build lays out the events of a single date. The result always has 24
// slots, ordered by hour; within a slot segments keep the input order.
func Build(events []event.Event) ([]Slot, error) {
	slots := make([]Slot, HoursPerDay)
	for h := range slots {
		start, end := DefaultSlot(h)
		slots[h] = Slot{
			Hour:         h,
			Label:        fmt.Sprintf("%02d:00", h),
			DefaultStart: start,
			DefaultEnd:   end,
			Segments:     []Segment{},
		}
	}

	for _, e := range events {
		segments, err := Segments(e)
		if err != nil {
			return nil, err
		}
		for _, s := range segments {
			slots[s.Hour].Segments = append(slots[s.Hour].Segments, s)
		}
	}

	return slots, nil
}

// DefaultSlot returns the start and end offered for a new event created in
// hour h: the full hour, with the last hour ending at 23:59.
func DefaultSlot(h int) (string, string) {
	start := fmt.Sprintf("%02d:00", h)
	if h >= HoursPerDay-1 {
		return start, "23:59"
	}
	return start, fmt.Sprintf("%02d:00", h+1)
}
