package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/blogmirror"
	"github.com/fwojciec/blogmirror/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLockService(t *testing.T, now *time.Time) *sqlite.LockService {
	t.Helper()
	svc := sqlite.NewLockService(setupTestDB(t))
	svc.Now = func() time.Time { return *now }
	return svc
}

func TestLockService(t *testing.T) {
	t.Parallel()

	t.Run("second owner conflicts while the lease is live", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		svc := newLockService(t, &now)
		ctx := context.Background()

		require.NoError(t, svc.AcquireLock(ctx, "sync", "run-1", time.Hour))
		err := svc.AcquireLock(ctx, "sync", "run-2", time.Hour)

		require.Error(t, err)
		assert.Equal(t, blogmirror.ECONFLICT, blogmirror.ErrorCode(err))
	})

	t.Run("same owner may renew", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		svc := newLockService(t, &now)
		ctx := context.Background()

		require.NoError(t, svc.AcquireLock(ctx, "sync", "run-1", time.Hour))
		require.NoError(t, svc.AcquireLock(ctx, "sync", "run-1", time.Hour))
	})

	t.Run("expired lease can be taken over", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		svc := newLockService(t, &now)
		ctx := context.Background()

		require.NoError(t, svc.AcquireLock(ctx, "sync", "run-1", time.Minute))
		now = now.Add(2 * time.Minute)

		require.NoError(t, svc.AcquireLock(ctx, "sync", "run-2", time.Minute))
	})

	t.Run("release frees the lease", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		svc := newLockService(t, &now)
		ctx := context.Background()

		require.NoError(t, svc.AcquireLock(ctx, "sync", "run-1", time.Hour))
		require.NoError(t, svc.ReleaseLock(ctx, "sync", "run-1"))

		require.NoError(t, svc.AcquireLock(ctx, "sync", "run-2", time.Hour))
	})

	t.Run("release by a non-owner keeps the lease", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		svc := newLockService(t, &now)
		ctx := context.Background()

		require.NoError(t, svc.AcquireLock(ctx, "sync", "run-1", time.Hour))
		require.NoError(t, svc.ReleaseLock(ctx, "sync", "run-2"))

		err := svc.AcquireLock(ctx, "sync", "run-2", time.Hour)
		assert.Equal(t, blogmirror.ECONFLICT, blogmirror.ErrorCode(err))
	})

	t.Run("different names do not interfere", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		svc := newLockService(t, &now)
		ctx := context.Background()

		require.NoError(t, svc.AcquireLock(ctx, "sync", "run-1", time.Hour))
		require.NoError(t, svc.AcquireLock(ctx, "other", "run-2", time.Hour))
	})
}
