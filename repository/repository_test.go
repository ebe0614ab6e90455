package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"voice-memos/entities"
)

func newSqliteRepo(t *testing.T) RecordingRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "recordings.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo, err := NewRepo(db)
	require.NoError(t, err)
	return repo
}

// Both implementations must satisfy the same contract, so they share one
// behavioral suite.
func repoBackends() map[string]func(t *testing.T) RecordingRepository {
	return map[string]func(t *testing.T) RecordingRepository{
		"memory": func(t *testing.T) RecordingRepository { return NewMemoryRepo() },
		"sqlite": newSqliteRepo,
	}
}

func newRecording(question string, duration int) *entities.Recording {
	return &entities.Recording{
		Question: question,
		AudioURL: "/uploads/recording-1-1.webm",
		Filename: "recording-1-1.webm",
		Duration: duration,
	}
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	for name, build := range repoBackends() {
		t.Run(name, func(t *testing.T) {
			repo := build(t)
			ctx := context.Background()

			before := time.Now().UTC()
			var lastID int64
			for i := 0; i < 5; i++ {
				rec := newRecording("q", i)
				require.NoError(t, repo.Create(ctx, rec))
				assert.Greater(t, rec.ID, lastID)
				assert.False(t, rec.CreatedAt.Before(before))
				lastID = rec.ID
			}
		})
	}
}

func TestListReturnsNewestFirst(t *testing.T) {
	for name, build := range repoBackends() {
		t.Run(name, func(t *testing.T) {
			repo := build(t)
			ctx := context.Background()

			questions := []string{"first", "second", "third"}
			for _, q := range questions {
				require.NoError(t, repo.Create(ctx, newRecording(q, 1)))
				time.Sleep(5 * time.Millisecond)
			}

			recordings, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, recordings, 3)
			assert.Equal(t, "third", recordings[0].Question)
			assert.Equal(t, "second", recordings[1].Question)
			assert.Equal(t, "first", recordings[2].Question)
			for i := 1; i < len(recordings); i++ {
				assert.False(t, recordings[i-1].CreatedAt.Before(recordings[i].CreatedAt))
			}
		})
	}
}

func TestGetByIDNotFound(t *testing.T) {
	for name, build := range repoBackends() {
		t.Run(name, func(t *testing.T) {
			repo := build(t)

			_, err := repo.GetByID(context.Background(), 42)
			assert.ErrorIs(t, err, ErrRecordingNotFound)
		})
	}
}

func TestDeleteUnknownIDLeavesStoreUnchanged(t *testing.T) {
	for name, build := range repoBackends() {
		t.Run(name, func(t *testing.T) {
			repo := build(t)
			ctx := context.Background()

			require.NoError(t, repo.Create(ctx, newRecording("keep me", 1)))

			deleted, err := repo.Delete(ctx, 999)
			require.NoError(t, err)
			assert.False(t, deleted)

			recordings, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Len(t, recordings, 1)
		})
	}
}

func TestDeleteTwice(t *testing.T) {
	for name, build := range repoBackends() {
		t.Run(name, func(t *testing.T) {
			repo := build(t)
			ctx := context.Background()

			rec := newRecording("delete me", 1)
			require.NoError(t, repo.Create(ctx, rec))

			deleted, err := repo.Delete(ctx, rec.ID)
			require.NoError(t, err)
			assert.True(t, deleted)

			deleted, err = repo.Delete(ctx, rec.ID)
			require.NoError(t, err)
			assert.False(t, deleted)
		})
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	for name, build := range repoBackends() {
		t.Run(name, func(t *testing.T) {
			repo := build(t)
			ctx := context.Background()

			first := newRecording("one", 1)
			require.NoError(t, repo.Create(ctx, first))
			second := newRecording("two", 2)
			require.NoError(t, repo.Create(ctx, second))

			_, err := repo.Delete(ctx, first.ID)
			require.NoError(t, err)

			third := newRecording("three", 3)
			require.NoError(t, repo.Create(ctx, third))
			assert.Greater(t, third.ID, second.ID)

			_, err = repo.GetByID(ctx, first.ID)
			assert.ErrorIs(t, err, ErrRecordingNotFound)
		})
	}
}
