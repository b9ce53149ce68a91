package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Sonder9999/Daily-Web/internal/domain/transfer"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultSchedule runs the backup every day at 03:00.
const DefaultSchedule = "0 3 * * *"

// Exporter renders a download of stored events.
type Exporter interface {
	Export(ctx context.Context, r transfer.Range, f transfer.Format) (*transfer.Export, error)
}

// Scheduler writes a full Markdown export to a directory on a cron
// schedule.
type Scheduler struct {
	cron     *cron.Cron
	exporter Exporter
	dir      string
	schedule string
	logger   *logrus.Logger
	now      func() time.Time
}

func NewScheduler(exporter Exporter, dir, schedule string, logger *logrus.Logger) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	printf := cron.PrintfLogger(logger)
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(printf),
			cron.SkipIfStillRunning(printf),
		)),
		exporter: exporter,
		dir:      dir,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the backup job and starts the cron loop.
func (s *Scheduler) Start() error {
	id, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunBackup(context.Background()); err != nil {
			s.logger.WithError(err).Error("Scheduled backup failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()

	s.logger.WithFields(logrus.Fields{
		"schedule": s.schedule,
		"dir":      s.dir,
		"next_run": s.cron.Entry(id).Next,
	}).Info("Backup scheduler started")
	return nil
}

// Stop waits for a running backup to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Backup scheduler stopped before the running job finished")
	}
}

// RunBackup writes one export and returns its path. The file is written
// under a temporary name and renamed so a partial backup is never visible.
func (s *Scheduler) RunBackup(ctx context.Context) (string, error) {
	start := s.now()

	out, err := s.exporter.Export(ctx, transfer.Range{}, transfer.FormatMarkdown)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("daily_record_%s.%s", start.Format("20060102-150405"), transfer.FormatMarkdown)
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, out.Body, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalize backup: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"path":     path,
		"bytes":    len(out.Body),
		"duration": time.Since(start).String(),
	}).Info("Backup written")
	return path, nil
}
