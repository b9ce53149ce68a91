package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/Sonder9999/Daily-Web/internal/domain/event"
	"github.com/Sonder9999/Daily-Web/internal/domain/events"
)

const defaultImportHistory = 20

var importedEvents = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "daily_import_events_total",
		Help: "Events seen by imports, by outcome",
	},
	[]string{"format", "outcome"},
)

// NameRecorder adds imported event names to the suggestion list.
type NameRecorder interface {
	RememberNames(ctx context.Context, names []string) error
}

// Export is a rendered download.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

type Service interface {
	Export(ctx context.Context, r Range, f Format) (*Export, error)
	Import(ctx context.Context, filename string, body io.Reader) (*Result, error)
	// Events returns every event in r, ordered by date then start time.
	Events(ctx context.Context, r Range) ([]event.Event, error)
	ListImports(ctx context.Context, limit int) ([]ImportRecord, error)
}

type service struct {
	events   event.Repository
	records  Repository
	names    NameRecorder
	notifier events.Notifier
	logger   *zap.Logger
}

func NewService(eventRepo event.Repository, records Repository, names NameRecorder, notifier events.Notifier, logger *zap.Logger) Service {
	return &service{
		events:   eventRepo,
		records:  records,
		names:    names,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *service) Events(ctx context.Context, r Range) ([]event.Event, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.IsAll() {
		return s.events.ListAll(ctx)
	}
	return s.events.ListRange(ctx, r.StartDate, r.EndDate)
}

func (s *service) Export(ctx context.Context, r Range, f Format) (*Export, error) {
	list, err := s.Events(ctx, r)
	if err != nil {
		return nil, err
	}

	var minDate, maxDate string
	if r.IsAll() {
		if minDate, maxDate, err = s.events.DateBounds(ctx); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	switch f {
	case FormatMarkdown:
		err = EncodeMarkdown(&buf, list)
	case FormatICS:
		err = EncodeICS(&buf, list)
	default:
		f = FormatJSON
		err = EncodeJSON(&buf, list)
	}
	if err != nil {
		s.logger.Error("Failed to encode export", zap.String("format", string(f)), zap.Error(err))
		return nil, err
	}

	return &Export{
		Filename:    Filename(r, minDate, maxDate, f),
		ContentType: f.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

func decode(f Format, body io.Reader) ([]event.Input, error) {
	switch f {
	case FormatMarkdown:
		return DecodeMarkdown(body)
	case FormatICS:
		return DecodeICS(body)
	default:
		return DecodeJSON(body)
	}
}

// Import decodes the upload by its extension and stores every entry that
// is valid and not already present. Entries are handled one at a time
// without a transaction; a store failure aborts the remainder, but rows
// already stored are still recorded and announced.
func (s *service) Import(ctx context.Context, filename string, body io.Reader) (*Result, error) {
	f, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	inputs, err := decode(f, body)
	if err != nil {
		if apperror.IsValidation(err) {
			return nil, err
		}
		return nil, apperror.NewValidation("file", "unreadable upload: %v", err)
	}

	run := &importRun{filename: filename, format: f, result: &Result{Total: len(inputs)}}
	for i, in := range inputs {
		if err := s.importOne(ctx, run, i, in); err != nil {
			s.logger.Error("Import aborted",
				zap.String("filename", filename),
				zap.Int("index", i),
				zap.Int("imported", run.result.Imported),
				zap.Error(err),
			)
			s.finish(ctx, run)
			return nil, err
		}
	}

	s.finish(ctx, run)
	s.logger.Info("Import completed",
		zap.String("filename", filename),
		zap.Int("imported", run.result.Imported),
		zap.Int("skipped", run.result.Skipped),
		zap.Int("total", run.result.Total),
	)
	return run.result, nil
}

type importRun struct {
	filename string
	format   Format
	result   *Result
	skipped  []SkipDetail
	names    []string
}

// importOne stores a single entry. Only store failures are returned.
func (s *service) importOne(ctx context.Context, run *importRun, i int, in event.Input) error {
	e, err := in.Validate()
	if err != nil {
		run.result.Skipped++
		run.skipped = append(run.skipped, SkipDetail{Index: i, EventName: in.EventName, Reason: err.Error()})
		return nil
	}

	existing, err := s.events.FindDuplicate(ctx, e.Key())
	if err != nil {
		return err
	}
	if existing != nil {
		run.result.Skipped++
		run.skipped = append(run.skipped, SkipDetail{Index: i, EventName: e.EventName, Reason: "duplicate"})
		return nil
	}

	if err := s.events.Create(ctx, e); err != nil {
		return err
	}
	run.result.Imported++
	run.names = append(run.names, e.EventName)
	return nil
}

// finish counts, records and announces whatever the run stored, so caches
// are invalidated even when the run was cut short.
func (s *service) finish(ctx context.Context, run *importRun) {
	importedEvents.WithLabelValues(string(run.format), "imported").Add(float64(run.result.Imported))
	importedEvents.WithLabelValues(string(run.format), "skipped").Add(float64(run.result.Skipped))

	s.record(ctx, run.filename, run.format, run.result, run.skipped)

	if len(run.names) == 0 {
		return
	}
	if err := s.names.RememberNames(ctx, run.names); err != nil {
		s.logger.Warn("Failed to record imported names as templates", zap.Error(err))
	}
	change := events.NewChangeEvent(events.ActionImported, 0, "")
	change.Count = run.result.Imported
	s.notifier.Notify(ctx, change)
}

// record writes the audit row. Failing to write it does not fail the import.
func (s *service) record(ctx context.Context, filename string, f Format, result *Result, skipped []SkipDetail) {
	rec := &ImportRecord{
		Filename: filename,
		Format:   string(f),
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Total:    result.Total,
	}
	if len(skipped) > 0 {
		if details, err := json.Marshal(skipped); err == nil {
			rec.Details = datatypes.JSON(details)
		}
	}
	if err := s.records.CreateRecord(ctx, rec); err != nil {
		s.logger.Warn("Failed to write import record", zap.String("filename", filename), zap.Error(err))
	}
}

func (s *service) ListImports(ctx context.Context, limit int) ([]ImportRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultImportHistory
	}
	return s.records.ListRecent(ctx, limit)
}
