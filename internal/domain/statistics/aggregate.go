package statistics

import (
	"math"
	"sort"

	"github.com/Sonder9999/Daily-Web/internal/domain/event"
)

// minutesPerYear bounds the durations counted into the summary total.
const minutesPerYear = 365 * 24 * 60

// Row is the aggregate of every event sharing a name.
type Row struct {
	EventName    string `json:"event_name"`
	Frequency    int    `json:"frequency"`
	TotalMinutes int    `json:"total_minutes"`
}

type Summary struct {
	TotalEvents    int     `json:"total_events"`
	TotalMinutes   int     `json:"total_minutes"`
	TotalHours     float64 `json:"total_hours"`
	AverageMinutes int     `json:"average_minutes"`
	EventTypes     int     `json:"event_types"`
	MostFrequent   string  `json:"most_frequent"`
}

type Report struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Frequency []Row   `json:"frequency"`
	Summary   Summary `json:"summary"`
}

// durationMinutes is the whole minutes between start and end on the same
// date, truncated toward zero. It is negative when end precedes start.
// Unparsable times contribute nothing.
func durationMinutes(e event.Event) int {
	start, err := event.ParseClock(e.StartTime)
	if err != nil {
		return 0
	}
	end, err := event.ParseClock(e.EndTime)
	if err != nil {
		return 0
	}
	return (end - start) / 60
}

// Aggregate groups events by name. Rows are ordered by frequency
// descending, ties by name ascending.
func Aggregate(events []event.Event) []Row {
	index := make(map[string]int)
	rows := make([]Row, 0)

	for _, e := range events {
		i, ok := index[e.EventName]
		if !ok {
			i = len(rows)
			index[e.EventName] = i
			rows = append(rows, Row{EventName: e.EventName})
		}
		rows[i].Frequency++
		rows[i].TotalMinutes += durationMinutes(e)
	}

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Frequency != rows[b].Frequency {
			return rows[a].Frequency > rows[b].Frequency
		}
		return rows[a].EventName < rows[b].EventName
	})

	return rows
}

// Summarize derives the headline numbers from ordered aggregate rows.
// Row totals that are not positive or exceed a year are left out of the
// duration total but still count as events.
func Summarize(rows []Row) Summary {
	var s Summary
	s.EventTypes = len(rows)

	for _, r := range rows {
		s.TotalEvents += r.Frequency
		if r.TotalMinutes > 0 && r.TotalMinutes < minutesPerYear {
			s.TotalMinutes += r.TotalMinutes
		}
	}

	s.TotalHours = math.Round(float64(s.TotalMinutes)/60*10) / 10
	if s.TotalEvents > 0 {
		s.AverageMinutes = int(math.Round(float64(s.TotalMinutes) / float64(s.TotalEvents)))
	}
	if len(rows) > 0 {
		s.MostFrequent = rows[0].EventName
	}

	return s
}
