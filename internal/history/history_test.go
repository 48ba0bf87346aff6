package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/unmonitorr/internal/reconcile"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "open db")
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	s := NewStore(db)
	require.NoError(t, s.Migrate(context.Background()), "apply schema")
	return s
}

func change(run, library string, id int, dryRun bool) reconcile.Change {
	return reconcile.Change{
		RunID:      run,
		Library:    library,
		Client:     "sonarr",
		Kind:       reconcile.KindEpisode,
		RecordID:   id,
		ExternalID: "70991",
		Title:      "Show - S01E02",
		DryRun:     dryRun,
	}
}

func TestStore_RecordAndList(t *testing.T) {
	s := setupTestStore(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, change("run-1", "TV", 101, false)))

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.NotZero(t, e.ID)
	assert.Equal(t, "run-1", e.RunID)
	assert.Equal(t, "TV", e.Library)
	assert.Equal(t, "sonarr", e.Client)
	assert.Equal(t, "episode", e.Kind)
	assert.Equal(t, 101, e.RecordID)
	assert.Equal(t, "70991", e.ExternalID)
	assert.Equal(t, "Show - S01E02", e.Title)
	assert.False(t, e.DryRun)
	assert.True(t, fixed.Equal(e.CreatedAt), "created_at = %v", e.CreatedAt)
}

func TestStore_ListFilters(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, change("run-1", "TV", 1, true)))
	require.NoError(t, s.Record(ctx, change("run-2", "TV", 2, false)))
	require.NoError(t, s.Record(ctx, change("run-2", "Anime", 3, false)))

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 3, entries[0].RecordID, "most recent first")

	entries, err = s.List(ctx, Filter{RunID: "run-2"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = s.List(ctx, Filter{Library: "TV"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = s.List(ctx, Filter{Applied: true})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	for _, e := range entries {
		assert.False(t, e.DryRun)
	}

	entries, err = s.List(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].RecordID)
}

func TestOpen_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "unmonitorr.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, change("run-1", "TV", 1, false)))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
