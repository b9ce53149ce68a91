package transfer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/Sonder9999/Daily-Web/internal/domain/event"
	"github.com/Sonder9999/Daily-Web/internal/domain/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []event.Event {
	return []event.Event{
		{ID: 1, Date: "2024-01-15", StartTime: "08:00:00", EndTime: "09:00:00", EventName: "跑步", Notes: "公园"},
		{ID: 2, Date: "2024-01-15", StartTime: "08:30:00", EndTime: "08:45:00", EventName: "早餐"},
		{ID: 3, Date: "2024-01-15", StartTime: "14:00:00", EndTime: "15:30:00", EventName: "阅读", Notes: "第三章"},
		{ID: 4, Date: "2024-02-01", StartTime: "23:00:00", EndTime: "23:59:00", EventName: "写日记"},
		{ID: 5, Date: "2023-12-31", StartTime: "10:00:00", EndTime: "11:00:00", EventName: "跑步"},
	}
}

func inputsOf(events []event.Event) []event.Input {
	out := make([]event.Input, 0, len(events))
	for _, e := range events {
		out = append(out, event.Input{
			Date:      e.Date,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			EventName: e.EventName,
			Notes:     e.Notes,
		})
	}
	return out
}

func TestEncodeMarkdownLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, transfer.EncodeMarkdown(&buf, sample()[:2]))

	want := strings.Join([]string{
		"# 2024年",
		"",
		"## 1月",
		"",
		"### 1月15日",
		"",
		"**08:00 - 09:00**",
		"",
		"- 跑步",
		"  - 08:00:00 - 09:00:00",
		"  - 公园",
		"",
		"- 早餐",
		"  - 08:30:00 - 08:45:00",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestMarkdownRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, transfer.EncodeMarkdown(&buf, sample()))

	decoded, err := transfer.DecodeMarkdown(&buf)
	require.NoError(t, err)

	// Encoding orders by year, month, day and start hour.
	s := sample()
	want := inputsOf([]event.Event{s[4], s[0], s[1], s[2], s[3]})
	assert.Equal(t, want, decoded)
}

func TestDecodeMarkdownLenient(t *testing.T) {
	doc := strings.Join([]string{
		"# 2024年",
		"## 3月",
		"### 3月5日",
		"**09:00 - 10:00**",
		"- 会议",
		"  - 09:00 - 09:30",
		"- 没有时间的条目",
		"- 午饭",
		"  - 12:00:00 - 12:30:00",
		"  - 13:00:00 - 13:30:00",
		"### 2月30日",
		"- 不存在的日期",
		"  - 08:00:00 - 09:00:00",
	}, "\n")

	decoded, err := transfer.DecodeMarkdown(strings.NewReader("- 没有日期\n  - 07:00 - 07:30\n" + doc))
	require.NoError(t, err)
	assert.Equal(t, []event.Input{
		{Date: "2024-03-05", StartTime: "09:00", EndTime: "09:30", EventName: "会议"},
		{Date: "2024-03-05", StartTime: "12:00:00", EndTime: "12:30:00", EventName: "午饭"},
	}, decoded)
}

func TestEncodeMarkdownKeepsNotesOnOneLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, transfer.EncodeMarkdown(&buf, []event.Event{
		{Date: "2024-01-01", StartTime: "08:00:00", EndTime: "09:00:00", EventName: "x", Notes: "line one\nline two"},
	}))
	assert.Contains(t, buf.String(), "  - line one line two\n")
}

func TestMarkdownRoundTripEarlyYear(t *testing.T) {
	events := []event.Event{{Date: "0999-01-15", StartTime: "08:00:00", EndTime: "09:00:00", EventName: "a"}}

	var buf bytes.Buffer
	require.NoError(t, transfer.EncodeMarkdown(&buf, events))
	assert.True(t, strings.HasPrefix(buf.String(), "# 0999年\n"))

	decoded, err := transfer.DecodeMarkdown(&buf)
	require.NoError(t, err)
	assert.Equal(t, inputsOf(events), decoded)
}

func TestICSUIDIgnoresRowID(t *testing.T) {
	a := event.Event{ID: 1, Date: "2024-01-15", StartTime: "08:00:00", EndTime: "09:00:00", EventName: "跑步"}
	b := a
	b.ID = 42

	var first, second bytes.Buffer
	require.NoError(t, transfer.EncodeICS(&first, []event.Event{a}))
	require.NoError(t, transfer.EncodeICS(&second, []event.Event{b}))

	uid := func(doc string) string {
		for _, line := range strings.Split(doc, "\n") {
			if strings.HasPrefix(line, "UID:") {
				return strings.TrimSpace(line)
			}
		}
		return ""
	}
	require.NotEmpty(t, uid(first.String()))
	assert.Equal(t, uid(first.String()), uid(second.String()))
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, transfer.EncodeJSON(&buf, sample()))
	assert.Contains(t, buf.String(), `"event_name": "跑步"`)

	decoded, err := transfer.DecodeJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, inputsOf(sample()), decoded)
}

func TestDecodeJSONNormalizesTimestamps(t *testing.T) {
	doc := `[{"id":9,"date":"2024-01-15T00:00:00.000Z","start_time":"08:00:00","end_time":"09:00:00","event_name":"a","notes":null}]`
	decoded, err := transfer.DecodeJSON(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "2024-01-15", decoded[0].Date)
	assert.Equal(t, "", decoded[0].Notes)
}

func TestDecodeJSONInvalid(t *testing.T) {
	_, err := transfer.DecodeJSON(strings.NewReader(`{"not":"a list"}`))
	assert.True(t, apperror.IsValidation(err))
}

func TestICSRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, transfer.EncodeICS(&buf, sample()))
	assert.Contains(t, buf.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, buf.String(), "DTSTART:20240115T080000")

	decoded, err := transfer.DecodeICS(&buf)
	require.NoError(t, err)
	assert.ElementsMatch(t, inputsOf(sample()), decoded)
}

func TestDecodeICSSkipsAllDayAndClampsEnd(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//test//EN",
		"BEGIN:VEVENT",
		"UID:all-day",
		"DTSTART;VALUE=DATE:20240115",
		"SUMMARY:假期",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:overnight",
		"DTSTART:20240115T220000",
		"DTEND:20240116T020000",
		"SUMMARY:值班",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	decoded, err := transfer.DecodeICS(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []event.Input{
		{Date: "2024-01-15", StartTime: "22:00:00", EndTime: "23:59:00", EventName: "值班"},
	}, decoded)
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    transfer.Format
		wantErr bool
	}{
		{"export.json", transfer.FormatJSON, false},
		{"daily.MD", transfer.FormatMarkdown, false},
		{"notes.markdown", transfer.FormatMarkdown, false},
		{"cal.ics", transfer.FormatICS, false},
		{"sheet.csv", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transfer.FormatFromFilename(tt.name)
			if tt.wantErr {
				assert.True(t, apperror.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := transfer.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, transfer.FormatJSON, f)

	f, err = transfer.ParseFormat("MD")
	require.NoError(t, err)
	assert.Equal(t, transfer.FormatMarkdown, f)

	_, err = transfer.ParseFormat("xml")
	assert.True(t, apperror.IsValidation(err))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "daily_record_2024-01-01_to_2024-01-31.md",
		transfer.Filename(transfer.Range{StartDate: "2024-01-01", EndDate: "2024-01-31"}, "", "", transfer.FormatMarkdown))
	assert.Equal(t, "daily_record_2023-12-31_to_2024-02-01.json",
		transfer.Filename(transfer.Range{}, "2023-12-31", "2024-02-01", transfer.FormatJSON))
	assert.Equal(t, "daily_record_all.ics",
		transfer.Filename(transfer.Range{}, "", "", transfer.FormatICS))
}

func TestRangeValidate(t *testing.T) {
	assert.NoError(t, transfer.Range{}.Validate())
	assert.NoError(t, transfer.Range{StartDate: "2024-01-01", EndDate: "2024-01-01"}.Validate())
	assert.True(t, apperror.IsValidation(transfer.Range{StartDate: "2024-01-01"}.Validate()))
	assert.True(t, apperror.IsValidation(transfer.Range{StartDate: "2024-02-01", EndDate: "2024-01-01"}.Validate()))
	assert.True(t, apperror.IsValidation(transfer.Range{StartDate: "2024-1-1", EndDate: "2024-01-02"}.Validate()))
}
