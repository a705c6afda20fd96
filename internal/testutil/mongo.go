//go:build integration

// Package testutil runs the MongoDB container used by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const mongoImage = "mongo:7.0"

var (
	sharedURI string
	dbSeq     atomic.Int64
	unsafeDB  = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// StartMongoDB runs a throwaway container and returns its connection string together
// with a func that terminates it.
func StartMongoDB(ctx context.Context) (string, func(context.Context) error, error) {
	c, err := mongodb.Run(ctx, mongoImage)
	if err != nil {
		return "", nil, fmt.Errorf("start %s: %w", mongoImage, err)
	}
	stop := func(ctx context.Context) error { return c.Terminate(ctx) }

	uri, err := c.ConnectionString(ctx)
	if err != nil {
		_ = stop(ctx)
		return "", nil, fmt.Errorf("mongodb connection string: %w", err)
	}
	return uri, stop, nil
}

// RunWithMongoDB is meant for TestMain: it starts one container for the package,
// runs the tests and terminates the container.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.RunWithMongoDB(context.Background(), m))
//	}
func RunWithMongoDB(ctx context.Context, m *testing.M) int {
	uri, stop, err := StartMongoDB(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "testutil:", err)
		return 1
	}
	sharedURI = uri

	code := m.Run()
	if err := stop(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "testutil: terminate mongodb:", err)
	}
	return code
}

// MongoURI is the connection string of the container started by RunWithMongoDB.
func MongoURI() string {
	if sharedURI == "" {
		panic("testutil: MongoURI called outside RunWithMongoDB")
	}
	return sharedURI
}

// DatabaseName derives a database name unique to t, so parallel tests sharing a
// container never see each other's documents.
func DatabaseName(t testing.TB) string {
	name := unsafeDB.ReplaceAllString(t.Name(), "_")
	if len(name) > 48 {
		name = name[:48]
	}
	return fmt.Sprintf("%s_%d", name, dbSeq.Add(1))
}
