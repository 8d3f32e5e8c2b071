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

func TestListingService_UpsertListing(t *testing.T) {
	t.Parallel()

	t.Run("keys rows by post and category", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewListingService(db)
		ctx := context.Background()

		require.NoError(t, svc.UpsertListing(ctx, &blogmirror.Listing{ID: "a", CategoryID: "1", Title: "A"}))
		require.NoError(t, svc.UpsertListing(ctx, &blogmirror.Listing{ID: "a", CategoryID: "2", Title: "A"}))
		require.NoError(t, svc.UpsertListing(ctx, &blogmirror.Listing{ID: "a", CategoryID: "1", Title: "A edited"}))

		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM article_list").Scan(&n))
		assert.Equal(t, 2, n)

		var title string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT title FROM article_list WHERE id = 'a' AND class_id = '1'").Scan(&title))
		assert.Equal(t, "A edited", title)
	})

	t.Run("stores created time as epoch seconds", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewListingService(db)
		ctx := context.Background()
		created := time.Date(2020, 5, 1, 9, 5, 0, 0, time.UTC)

		require.NoError(t, svc.UpsertListing(ctx, &blogmirror.Listing{ID: "a", CategoryID: "1", CreatedTime: created}))
		require.NoError(t, svc.UpsertListing(ctx, &blogmirror.Listing{ID: "b", CategoryID: "1"}))

		var sec int64
		require.NoError(t, db.QueryRowContext(ctx, "SELECT created_time FROM article_list WHERE id = 'a'").Scan(&sec))
		assert.Equal(t, created.Unix(), sec)
		require.NoError(t, db.QueryRowContext(ctx, "SELECT created_time FROM article_list WHERE id = 'b'").Scan(&sec))
		assert.Equal(t, int64(0), sec)
	})

	t.Run("rejects a listing without a category", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewListingService(setupTestDB(t))

		err := svc.UpsertListing(context.Background(), &blogmirror.Listing{ID: "a"})
		require.Error(t, err)
		assert.Equal(t, blogmirror.EINVALID, blogmirror.ErrorCode(err))
	})
}
