package repository

import (
	"context"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
)

// LogStore is where request and audit entries end up.
type LogStore interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, q model.LogQueryOptions) ([]model.LogEntry, error)
	Count(ctx context.Context, q model.LogQueryOptions) (int64, error)
}
