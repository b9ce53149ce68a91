package transfer

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/Sonder9999/Daily-Web/internal/domain/event"
)

const (
	icsProductID    = "-//Daily-Web//Daily Record//ZH"
	icsFloating     = "20060102T150405"
	icsUTC          = "20060102T150405Z"
	icsDate         = "20060102"
	icsEndOfDayTime = "23:59:00"
)

// icsNamespace seeds the UIDs of exported events. The UID depends only on
// the event tuple, so an event keeps its UID across re-imports.
var icsNamespace = uuid.MustParse("5f0c8a56-4a3e-4f0e-9d2b-8d1c7a1e6b11")

func eventUID(e event.Event) string {
	k := e.Key()
	name := fmt.Sprintf("%s|%s|%s|%s", k.Date, k.StartTime, k.EndTime, k.EventName)
	return uuid.NewSHA1(icsNamespace, []byte(name)).String() + "@daily-web"
}

func floatingStamp(date, clock string) (string, error) {
	d, err := event.ParseDate(event.NormalizeDate(date))
	if err != nil {
		return "", err
	}
	secs, err := event.ParseClock(clock)
	if err != nil {
		return "", err
	}
	return d.Add(time.Duration(secs) * time.Second).Format(icsFloating), nil
}

// EncodeICS writes one VEVENT per event in floating local time. Events
// whose end precedes their start are still written with DTEND on the same
// day so nothing is lost on export.
func EncodeICS(w io.Writer, events []event.Event) error {
	cal := ics.NewCalendar()
	cal.SetProductId(icsProductID)
	cal.SetMethod(ics.MethodPublish)

	now := time.Now().UTC()
	for _, e := range events {
		start, err := floatingStamp(e.Date, e.StartTime)
		if err != nil {
			continue
		}
		end, err := floatingStamp(e.Date, e.EndTime)
		if err != nil {
			continue
		}

		ve := cal.AddEvent(eventUID(e))
		ve.SetDtStampTime(now)
		ve.SetProperty(ics.ComponentPropertyDtStart, start)
		ve.SetProperty(ics.ComponentPropertyDtEnd, end)
		ve.SetSummary(e.EventName)
		if e.Notes != "" {
			ve.SetDescription(e.Notes)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// parseStamp reads a DATE-TIME value. UTC values are moved into the local
// zone; all-day DATE values are reported with allDay set.
func parseStamp(v string) (t time.Time, allDay bool, err error) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasSuffix(v, "Z"):
		t, err = time.Parse(icsUTC, v)
		return t.Local(), false, err
	case strings.Contains(v, "T"):
		t, err = time.ParseInLocation(icsFloating, v, time.Local)
		return t, false, err
	default:
		t, err = time.ParseInLocation(icsDate, v, time.Local)
		return t, true, err
	}
}

// DecodeICS turns each timed VEVENT into an event on its start date.
// All-day entries and entries without a start are skipped; an end on a
// later day is clamped to the end of the start day.
func DecodeICS(r io.Reader) ([]event.Input, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, apperror.NewValidation("file", "invalid iCalendar file: %v", err)
	}

	var out []event.Input
	for _, ve := range cal.Events() {
		startProp := ve.GetProperty(ics.ComponentPropertyDtStart)
		if startProp == nil {
			continue
		}
		start, allDay, err := parseStamp(startProp.Value)
		if err != nil || allDay {
			continue
		}

		end := start
		if endProp := ve.GetProperty(ics.ComponentPropertyDtEnd); endProp != nil {
			if t, _, err := parseStamp(endProp.Value); err == nil {
				end = t
			}
		}

		in := event.Input{
			Date:      start.Format(event.DateLayout),
			StartTime: start.Format("15:04:05"),
			EndTime:   end.Format("15:04:05"),
		}
		if end.Format(event.DateLayout) != in.Date {
			in.EndTime = icsEndOfDayTime
		}
		if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
			in.EventName = p.Value
		}
		if p := ve.GetProperty(ics.ComponentPropertyDescription); p != nil {
			in.Notes = p.Value
		}
		out = append(out, in)
	}
	return out, nil
}
