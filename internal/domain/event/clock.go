package event

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
)

const (
	DateLayout    = "2006-01-02"
	MinutesPerDay = 24 * 60
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// ParseClock returns the seconds since midnight of an "HH:MM" or
// "HH:MM:SS" time of day.
func ParseClock(value string) (int, error) {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, apperror.NewValidation("time", "invalid time of day %q", value)
	}
	h, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if h > 23 || minute > 59 || sec > 59 {
		return 0, apperror.NewValidation("time", "time of day out of range %q", value)
	}
	return h*3600 + minute*60 + sec, nil
}

// MinuteOfDay truncates a parsed clock value to whole minutes.
func MinuteOfDay(value string) (int, error) {
	secs, err := ParseClock(value)
	if err != nil {
		return 0, err
	}
	return secs / 60, nil
}

// NormalizeClock rewrites a valid time of day as HH:MM:SS.
func NormalizeClock(value string) (string, error) {
	secs, err := ParseClock(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60), nil
}

// NormalizeDate cuts a full timestamp ("2024-01-15T00:00:00.000Z") down to
// its calendar date. Values without a time part are returned unchanged.
func NormalizeDate(value string) string {
	if len(value) > len(DateLayout) && (value[len(DateLayout)] == 'T' || value[len(DateLayout)] == ' ') {
		return value[:len(DateLayout)]
	}
	return value
}

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperror.NewValidation("date", "invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// FormatDuration renders a span in the UI's "X小时Y分钟" form. An end
// before the start wraps around midnight.
func FormatDuration(start, end string) (string, error) {
	s, err := MinuteOfDay(start)
	if err != nil {
		return "", err
	}
	e, err := MinuteOfDay(end)
	if err != nil {
		return "", err
	}
	d := e - s
	if d < 0 {
		d += MinutesPerDay
	}
	if d >= 60 {
		return fmt.Sprintf("%d小时%d分钟", d/60, d%60), nil
	}
	return fmt.Sprintf("%d分钟", d), nil
}
