// Package repository persists request and audit logs in MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	logsCollection = "logs"
	retentionIndex = "timestamp_retention"
	pingTimeout    = 2 * time.Second
)

// MongoConfig tunes the client behind the log sink.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	Compress               bool
}

// DefaultMongoConfig sizes the pool for the asynchronous log writer.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            20,
		MinPoolSize:            2,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		Compress:               true,
	}
}

func (c MongoConfig) clientOptions(uri string) *options.ClientOptions {
	o := options.Client().ApplyURI(uri).SetRetryWrites(true).SetRetryReads(true)
	o.SetMaxPoolSize(c.MaxPoolSize).SetMinPoolSize(c.MinPoolSize)
	o.SetConnectTimeout(c.ConnectTimeout).SetServerSelectionTimeout(c.ServerSelectionTimeout)
	if c.Compress {
		o.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}
	return o
}

// MongoDB is a connected client plus the logs collection.
type MongoDB struct {
	Client *mongo.Client
	Logs   *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, database string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, database, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects and pings; a client that cannot reach a server is
// disconnected before the error is returned.
func NewMongoDBWithConfig(uri, database string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.clientOptions(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoDB{Client: client, Logs: client.Database(database).Collection(logsCollection)}, nil
}

var lookupIndexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "request_id", Value: 1}}, Options: options.Index().SetName("request_id")},
	{Keys: bson.D{{Key: "action_type", Value: 1}, {Key: "timestamp", Value: -1}}, Options: options.Index().SetName("action_recent")},
}

// EnsureIndexes creates the lookup indexes and, when retention is positive, a TTL
// index expiring entries retention after their timestamp. A TTL index built with a
// different retention is replaced.
func (m *MongoDB) EnsureIndexes(ctx context.Context, retention time.Duration) error {
	if _, err := m.Logs.Indexes().CreateMany(ctx, lookupIndexes); err != nil {
		return fmt.Errorf("create log indexes: %w", err)
	}
	if retention <= 0 {
		return nil
	}

	seconds := min(int64(retention/time.Second), math.MaxInt32)
	ttl := mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetName(retentionIndex).SetExpireAfterSeconds(int32(seconds)),
	}
	_, err := m.Logs.Indexes().CreateOne(ctx, ttl)
	if isIndexConflict(err) {
		if _, err = m.Logs.Indexes().DropOne(ctx, retentionIndex); err == nil {
			_, err = m.Logs.Indexes().CreateOne(ctx, ttl)
		}
	}
	if err != nil {
		return fmt.Errorf("create retention index: %w", err)
	}
	return nil
}

func isIndexConflict(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) &&
		(cmdErr.Name == "IndexOptionsConflict" || cmdErr.Name == "IndexKeySpecsConflict")
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary, giving up after two seconds.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
