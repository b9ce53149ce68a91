package transfer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Sonder9999/Daily-Web/internal/domain/event"
)

// Markdown layout:
//
//	# 2024年
//	## 1月
//	### 1月15日
//	**08:00 - 09:00**
//	- event name
//	  - 08:00:00 - 09:00:00
//	  - notes
//
// Events are filed under their start hour only.

var (
	yearHeading  = regexp.MustCompile(`^#\s+(\d{4})年\s*$`)
	monthHeading = regexp.MustCompile(`^##\s+(\d{1,2})月\s*$`)
	dayHeading   = regexp.MustCompile(`^###\s+(\d{1,2})月(\d{1,2})日\s*$`)
	eventBullet  = regexp.MustCompile(`^-\s+(.+?)\s*$`)
	timeBullet   = regexp.MustCompile(`^\s+-\s+(\d{1,2}:\d{2}(?::\d{2})?)\s+-\s+(\d{1,2}:\d{2}(?::\d{2})?)\s*$`)
	noteBullet   = regexp.MustCompile(`^\s+-\s+(.*?)\s*$`)
)

type mdEntry struct {
	year, month, day, hour int
	event                  event.Event
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// singleLine keeps a value on one line so it cannot break the layout.
func singleLine(s string) string {
	return strings.TrimSpace(lineBreaks.Replace(s))
}

// EncodeMarkdown writes events grouped by year, month, day and start hour,
// each level ascending. Events sharing an hour keep their input order.
// Events with an unparsable date or start time are left out.
func EncodeMarkdown(w io.Writer, events []event.Event) error {
	entries := make([]mdEntry, 0, len(events))
	for _, e := range events {
		date, err := event.ParseDate(event.NormalizeDate(e.Date))
		if err != nil {
			continue
		}
		start, err := event.MinuteOfDay(e.StartTime)
		if err != nil {
			continue
		}
		entries = append(entries, mdEntry{
			year:  date.Year(),
			month: int(date.Month()),
			day:   date.Day(),
			hour:  start / 60,
			event: e,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.year != b.year {
			return a.year < b.year
		}
		if a.month != b.month {
			return a.month < b.month
		}
		if a.day != b.day {
			return a.day < b.day
		}
		return a.hour < b.hour
	})

	bw := bufio.NewWriter(w)
	year, month, day, hour := -1, -1, -1, -1

	for _, en := range entries {
		if en.year != year {
			year, month, day, hour = en.year, -1, -1, -1
			fmt.Fprintf(bw, "# %04d年\n\n", en.year)
		}
		if en.month != month {
			month, day, hour = en.month, -1, -1
			fmt.Fprintf(bw, "## %d月\n\n", en.month)
		}
		if en.day != day {
			day, hour = en.day, -1
			fmt.Fprintf(bw, "### %d月%d日\n\n", en.month, en.day)
		}
		if en.hour != hour {
			hour = en.hour
			fmt.Fprintf(bw, "**%02d:00 - %02d:00**\n\n", en.hour, en.hour+1)
		}

		fmt.Fprintf(bw, "- %s\n", singleLine(en.event.EventName))
		fmt.Fprintf(bw, "  - %s - %s\n", en.event.StartTime, en.event.EndTime)
		if notes := singleLine(en.event.Notes); notes != "" {
			fmt.Fprintf(bw, "  - %s\n", notes)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

// DecodeMarkdown parses the layout written by EncodeMarkdown. An event
// bullet must be followed directly by its time bullet; the bullet after
// that is its notes unless it also looks like a time range. Events that do
// not fit are dropped without failing the whole document.
func DecodeMarkdown(r io.Reader) ([]event.Input, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var (
		out              []event.Input
		year, month, day int
	)

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := yearHeading.FindStringSubmatch(line); m != nil {
			year, _ = strconv.Atoi(m[1])
			month, day = 0, 0
			continue
		}
		if m := monthHeading.FindStringSubmatch(line); m != nil {
			month, _ = strconv.Atoi(m[1])
			day = 0
			continue
		}
		if m := dayHeading.FindStringSubmatch(line); m != nil {
			month, _ = strconv.Atoi(m[1])
			day, _ = strconv.Atoi(m[2])
			continue
		}

		m := eventBullet.FindStringSubmatch(line)
		if m == nil || i+1 >= len(lines) {
			continue
		}
		t := timeBullet.FindStringSubmatch(lines[i+1])
		if t == nil {
			continue
		}
		i++

		in := event.Input{
			Date:      fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			StartTime: t[1],
			EndTime:   t[2],
			EventName: m[1],
		}

		if i+1 < len(lines) && !timeBullet.MatchString(lines[i+1]) {
			if n := noteBullet.FindStringSubmatch(lines[i+1]); n != nil {
				in.Notes = n[1]
				i++
			}
		}

		// Events outside a complete year/month/day heading have no date.
		if year == 0 || day == 0 {
			continue
		}
		if _, err := event.ParseDate(in.Date); err != nil {
			continue
		}
		out = append(out, in)
	}

	return out, nil
}
