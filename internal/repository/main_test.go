//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/bond-optimizer/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithMongoDB(context.Background(), m))
}

// setupTestDBFromSharedContainer connects to a database named after the test and
// disconnects when it ends.
func setupTestDBFromSharedContainer(t *testing.T) *MongoDB {
	t.Helper()
	db, err := NewMongoDB(testutil.MongoURI(), testutil.DatabaseName(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(context.Background()) })
	return db
}
