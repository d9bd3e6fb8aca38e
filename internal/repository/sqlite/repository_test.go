package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/Burh0n/LogiTrack-Pro/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "lt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSetAndGet(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "profiles")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "profiles", []byte(`[{"name":"Ann"}]`)))

	value, found, err := repo.Get(ctx, "profiles")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"name":"Ann"}]`, string(value))

	require.NoError(t, repo.Set(ctx, "profiles", []byte(`[]`)))
	value, _, err = repo.Get(ctx, "profiles")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value))
}

func TestGetEntry(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	fixed := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	require.NoError(t, repo.Set(ctx, "darkMode", []byte("true")))

	entry, err := repo.GetEntry(ctx, "darkMode")
	require.NoError(t, err)
	assert.Equal(t, "darkMode", entry.Key)
	assert.Equal(t, []byte("true"), entry.Value)
	assert.True(t, fixed.Equal(entry.UpdatedAt))

	_, err = repo.GetEntry(ctx, "missing")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestRemove(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "currentProfile", []byte(`"Ann"`)))
	require.NoError(t, repo.Remove(ctx, "currentProfile"))
	require.NoError(t, repo.Remove(ctx, "currentProfile"))

	_, found, err := repo.Get(ctx, "currentProfile")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeysAndList(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for _, key := range []string{"tasks_B", "profiles", "tasks_A", "tasks_%"} {
		require.NoError(t, repo.Set(ctx, key, []byte("[]")))
	}

	keys, err := repo.Keys(ctx, "tasks_")
	require.NoError(t, err)
	assert.Equal(t, []string{"tasks_%", "tasks_A", "tasks_B"}, keys)

	all, err := repo.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	entries, err := repo.List(ctx, "tasks_A")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks_A", entries[0].Key)
}

func TestMove(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "tasks_Ann", []byte(`[1]`)))
	require.NoError(t, repo.Set(ctx, "tasks_Bo", []byte(`[2]`)))

	require.NoError(t, repo.Move(ctx, "tasks_Ann", "tasks_Bo"))

	_, found, err := repo.Get(ctx, "tasks_Ann")
	require.NoError(t, err)
	assert.False(t, found)

	value, _, err := repo.Get(ctx, "tasks_Bo")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(value))

	// A missing source is a no-op.
	require.NoError(t, repo.Move(ctx, "tasks_None", "tasks_Bo"))
	value, _, err = repo.Get(ctx, "tasks_Bo")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(value))
}

func TestBatchCommitsAtomically(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	err := repo.Batch(ctx, func(tx Tx) error {
		if err := tx.Set("profiles", []byte(`[{"name":"Ann"}]`)); err != nil {
			return err
		}
		value, found, err := tx.Get("profiles")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"name":"Ann"}]`, string(value))
		return tx.Set("tasks_Ann", []byte(`[]`))
	})
	require.NoError(t, err)

	keys, err := repo.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"profiles", "tasks_Ann"}, keys)
}

func TestBatchRollsBackOnError(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "profiles", []byte(`["before"]`)))

	boom := errors.New("boom")
	err := repo.Batch(ctx, func(tx Tx) error {
		require.NoError(t, tx.Set("profiles", []byte(`["after"]`)))
		require.NoError(t, tx.Remove("profiles"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	value, found, err := repo.Get(ctx, "profiles")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `["before"]`, string(value))
}

func TestBatchRollsBackOnPanic(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = repo.Batch(ctx, func(tx Tx) error {
			_ = tx.Set("profiles", []byte(`[]`))
			panic("boom")
		})
	})

	_, found, err := repo.Get(ctx, "profiles")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lt.db")
	ctx := context.Background()

	repo, err := New(path)
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, "profiles", []byte(`[{"name":"Ann"}]`)))
	require.NoError(t, repo.Close())

	repo, err = New(path)
	require.NoError(t, err)
	defer repo.Close()

	value, found, err := repo.Get(ctx, "profiles")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"name":"Ann"}]`, string(value))
}

func TestCanceledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Set(ctx, "profiles", []byte(`[]`))
	assert.Error(t, err)
}
