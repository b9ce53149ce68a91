package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/Sonder9999/Daily-Web/internal/domain/event"
	"github.com/Sonder9999/Daily-Web/internal/domain/events"
	"github.com/Sonder9999/Daily-Web/pkg/broker"
	"go.uber.org/zap"
)

const cacheType = "statistics"

// Cache is the read-through cache the report is served from. It is
// satisfied by *cache.RedisClient.
type Cache interface {
	CacheResponse(ctx context.Context, key string, ttl time.Duration, cacheType string, dest interface{}, fn func() (interface{}, error)) error
	ClearByPattern(ctx context.Context, pattern string) error
}

type Service interface {
	GetStatistics(ctx context.Context, startDate, endDate string) (*Report, error)
	// Invalidate drops every cached report.
	Invalidate(ctx context.Context) error
	// WatchChanges invalidates the cache whenever events change.
	WatchChanges(ctx context.Context, b broker.MessageBroker) (broker.Subscription, error)
}

type service struct {
	repo   event.Repository
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewService builds the statistics service. cache may be nil.
func NewService(repo event.Repository, cache Cache, ttl time.Duration, logger *zap.Logger) Service {
	return &service{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

func cacheKey(startDate, endDate string) string {
	return fmt.Sprintf("%s:%s:%s", cacheType, startDate, endDate)
}

// ValidateRange checks both dates and their order.
func ValidateRange(startDate, endDate string) error {
	start, err := event.ParseDate(startDate)
	if err != nil {
		return apperror.NewValidation("startDate", "invalid date %q, expected YYYY-MM-DD", startDate)
	}
	end, err := event.ParseDate(endDate)
	if err != nil {
		return apperror.NewValidation("endDate", "invalid date %q, expected YYYY-MM-DD", endDate)
	}
	if start.After(end) {
		return apperror.NewValidation("", "开始日期不能晚于结束日期")
	}
	return nil
}

func (s *service) GetStatistics(ctx context.Context, startDate, endDate string) (*Report, error) {
	if err := ValidateRange(startDate, endDate); err != nil {
		return nil, err
	}

	build := func() (interface{}, error) {
		list, err := s.repo.ListRange(ctx, startDate, endDate)
		if err != nil {
			return nil, err
		}
		rows := Aggregate(list)
		return &Report{
			StartDate: startDate,
			EndDate:   endDate,
			Frequency: rows,
			Summary:   Summarize(rows),
		}, nil
	}

	if s.cache == nil {
		report, err := build()
		if err != nil {
			s.logger.Error("Failed to build statistics", zap.Error(err))
			return nil, err
		}
		return report.(*Report), nil
	}

	var report Report
	if err := s.cache.CacheResponse(ctx, cacheKey(startDate, endDate), s.ttl, cacheType, &report, build); err != nil {
		s.logger.Error("Failed to build statistics", zap.Error(err))
		return nil, err
	}
	return &report, nil
}

func (s *service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.ClearByPattern(ctx, cacheType+":*")
}

func (s *service) WatchChanges(ctx context.Context, b broker.MessageBroker) (broker.Subscription, error) {
	return b.Subscribe(ctx, events.TopicEventsChanged, func(ctx context.Context, msg *broker.Message) error {
		if err := s.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate statistics cache",
				zap.String("message_id", msg.ID),
				zap.Error(err),
			)
			return err
		}
		return nil
	})
}
