package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrack/storage"
)

func newTestSQLiteStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	s, err := storage.NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestSQLiteStore(t)

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	doc := []byte(`{"trackables": []}`)
	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestSQLiteStoreSaveOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Save(ctx, []byte(`first`)))
	require.NoError(t, s.Save(ctx, []byte(`second`)))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`second`), got)
}
