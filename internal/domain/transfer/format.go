package transfer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/Sonder9999/Daily-Web/internal/domain/event"
)

// Format is an import/export encoding, named by its file extension.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatICS      Format = "ics"
)

// ParseFormat accepts the export query value; empty means JSON.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "ics", "ical":
		return FormatICS, nil
	default:
		return "", apperror.NewValidation("format", "unsupported export format %q", value)
	}
}

// FormatFromFilename picks the import decoder from the upload's extension.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".ics":
		return FormatICS, nil
	default:
		return "", apperror.NewValidation("file", "不支持的文件格式 %q，仅支持 .json、.md 和 .ics", filepath.Ext(name))
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatICS:
		return "text/calendar; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// Range is an optional inclusive date range. The zero value means every
// stored event.
type Range struct {
	StartDate string
	EndDate   string
}

func (r Range) IsAll() bool {
	return r.StartDate == "" && r.EndDate == ""
}

// Validate requires both bounds or neither, each a valid date, in order.
func (r Range) Validate() error {
	if r.IsAll() {
		return nil
	}
	if r.StartDate == "" || r.EndDate == "" {
		return apperror.NewValidation("", "startDate and endDate must be given together")
	}
	start, err := event.ParseDate(r.StartDate)
	if err != nil {
		return apperror.NewValidation("startDate", "invalid date %q, expected YYYY-MM-DD", r.StartDate)
	}
	end, err := event.ParseDate(r.EndDate)
	if err != nil {
		return apperror.NewValidation("endDate", "invalid date %q, expected YYYY-MM-DD", r.EndDate)
	}
	if start.After(end) {
		return apperror.NewValidation("", "开始日期不能晚于结束日期")
	}
	return nil
}

// Filename names an export. With an explicit range it uses the range;
// otherwise the first and last dates present, or "all" for an empty store.
func Filename(r Range, minDate, maxDate string, f Format) string {
	switch {
	case !r.IsAll():
		return fmt.Sprintf("daily_record_%s_to_%s.%s", r.StartDate, r.EndDate, f)
	case minDate != "" && maxDate != "":
		return fmt.Sprintf("daily_record_%s_to_%s.%s", minDate, maxDate, f)
	default:
		return fmt.Sprintf("daily_record_all.%s", f)
	}
}
