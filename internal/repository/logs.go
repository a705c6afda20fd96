package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogsRepository is the MongoDB LogStore.
type LogsRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewLogsRepository stores entries in db's logs collection.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{coll: db.Logs, now: time.Now}
}

// Create inserts entry, filling in a missing ID or timestamp.
func (r *LogsRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	r.identify(entry)
	_, err := r.coll.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries in one unordered round trip.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]any, 0, len(entries))
	for _, e := range entries {
		r.identify(e)
		docs = append(docs, e)
	}
	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns the matching entries, newest first.
func (r *LogsRepository) Query(ctx context.Context, q model.LogQueryOptions) ([]model.LogEntry, error) {
	find := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if q.Limit > 0 {
		find.SetLimit(int64(q.Limit))
	}
	if q.Skip > 0 {
		find.SetSkip(int64(q.Skip))
	}

	cur, err := r.coll.Find(ctx, logFilter(q), find)
	if err != nil {
		return nil, err
	}
	entries := []model.LogEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count ignores Limit and Skip.
func (r *LogsRepository) Count(ctx context.Context, q model.LogQueryOptions) (int64, error) {
	return r.coll.CountDocuments(ctx, logFilter(q))
}

func (r *LogsRepository) identify(e *model.LogEntry) {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = r.now()
	}
}

// logFilter matches every non-zero option. Path is a case-insensitive substring match.
func logFilter(q model.LogQueryOptions) bson.D {
	filter := bson.D{}
	for _, f := range []struct{ field, value string }{
		{"request_id", q.RequestID},
		{"level", q.Level},
		{"method", q.Method},
		{"action_type", q.ActionType},
	} {
		if f.value != "" {
			filter = append(filter, bson.E{Key: f.field, Value: f.value})
		}
	}
	if q.Path != "" {
		filter = append(filter, bson.E{Key: "path", Value: primitive.Regex{Pattern: regexp.QuoteMeta(q.Path), Options: "i"}})
	}

	window := bson.D{}
	if q.StartTime != nil {
		window = append(window, bson.E{Key: "$gte", Value: *q.StartTime})
	}
	if q.EndTime != nil {
		window = append(window, bson.E{Key: "$lte", Value: *q.EndTime})
	}
	if len(window) > 0 {
		filter = append(filter, bson.E{Key: "timestamp", Value: window})
	}
	return filter
}
