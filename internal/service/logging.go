package service

import (
	"context"
	"strings"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/guttosm/bond-optimizer/internal/repository"
	"github.com/rs/zerolog"
)

const (
	// DefaultLogQueryLimit applies when a query sets no limit.
	DefaultLogQueryLimit = 100
	// MaxLogQueryLimit caps the page size of a log query.
	MaxLogQueryLimit = 1000
)

// LoggingService records request and audit entries and reads them back.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

type loggingService struct {
	store repository.LogStore
}

// NewLoggingService writes through store.
func NewLoggingService(store repository.LogStore) LoggingService {
	return &loggingService{store: store}
}

func (s *loggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	entry.Level = normalizeLevel(entry.Level)
	return s.store.Create(ctx, entry)
}

func (s *loggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		e.Level = normalizeLevel(e.Level)
	}
	return s.store.CreateMany(ctx, entries)
}

// QueryLogs pages through matching entries, newest first.
func (s *loggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	opts.Limit = EffectiveLogLimit(opts.Limit)
	opts.Level = normalizeFilterLevel(opts.Level)
	return s.store.Query(ctx, opts)
}

func (s *loggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	opts.Level = normalizeFilterLevel(opts.Level)
	return s.store.Count(ctx, opts)
}

// normalizeLevel maps an entry level onto zerolog's names; anything unrecognised is stored as info.
func normalizeLevel(level string) string {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel.String()
	}
	return l.String()
}

func normalizeFilterLevel(level string) string {
	if level == "" {
		return ""
	}
	return normalizeLevel(level)
}

// EffectiveLogLimit is the page size QueryLogs uses for a requested limit.
func EffectiveLogLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLogQueryLimit
	case limit > MaxLogQueryLimit:
		return MaxLogQueryLimit
	}
	return limit
}
