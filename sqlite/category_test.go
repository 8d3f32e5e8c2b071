package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/blogmirror"
	"github.com/fwojciec/blogmirror/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_UpsertCategory(t *testing.T) {
	t.Parallel()

	t.Run("inserts a new category with zero count", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCategoryService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.UpsertCategory(ctx, &blogmirror.Category{ID: "3", Name: "Travel", URL: "https://blog.example.com/list_3"}))

		found, err := svc.FindCategoryByID(ctx, "3")
		require.NoError(t, err)
		assert.Equal(t, &blogmirror.Category{ID: "3", Name: "Travel", URL: "https://blog.example.com/list_3"}, found)
	})

	t.Run("updates name and url but keeps the count", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCategoryService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.UpsertCategory(ctx, &blogmirror.Category{ID: "3", Name: "Travel", URL: "u1"}))
		require.NoError(t, svc.UpdatePostCount(ctx, "3", 12))
		require.NoError(t, svc.UpsertCategory(ctx, &blogmirror.Category{ID: "3", Name: "Trips", URL: "u2"}))

		found, err := svc.FindCategoryByID(ctx, "3")
		require.NoError(t, err)
		assert.Equal(t, "Trips", found.Name)
		assert.Equal(t, "u2", found.URL)
		assert.Equal(t, 12, found.PostCount)
	})

	t.Run("repeating the same upsert leaves one row", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCategoryService(setupTestDB(t))
		ctx := context.Background()
		c := &blogmirror.Category{ID: "1", Name: "A", URL: "u"}

		require.NoError(t, svc.UpsertCategory(ctx, c))
		require.NoError(t, svc.UpsertCategory(ctx, c))

		all, err := svc.FindCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("rejects a category without an id", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCategoryService(setupTestDB(t))

		err := svc.UpsertCategory(context.Background(), &blogmirror.Category{URL: "u"})
		require.Error(t, err)
		assert.Equal(t, blogmirror.EINVALID, blogmirror.ErrorCode(err))
	})
}

func TestCategoryService_UpdatePostCount(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for unknown category", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCategoryService(setupTestDB(t))

		err := svc.UpdatePostCount(context.Background(), "missing", 3)
		require.Error(t, err)
		assert.Equal(t, blogmirror.ENOTFOUND, blogmirror.ErrorCode(err))
	})
}

func TestCategoryService_FindCategoryByID(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND when missing", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCategoryService(setupTestDB(t))

		_, err := svc.FindCategoryByID(context.Background(), "42")
		require.Error(t, err)
		assert.Equal(t, blogmirror.ENOTFOUND, blogmirror.ErrorCode(err))
	})
}

func TestCategoryService_FindCategories(t *testing.T) {
	t.Parallel()

	t.Run("orders by id ascending", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCategoryService(setupTestDB(t))
		ctx := context.Background()
		for _, id := range []string{"3", "0", "1"} {
			require.NoError(t, svc.UpsertCategory(ctx, &blogmirror.Category{ID: id, URL: "u" + id}))
		}

		all, err := svc.FindCategories(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "0", all[0].ID)
		assert.Equal(t, "1", all[1].ID)
		assert.Equal(t, "3", all[2].ID)
	})

	t.Run("returns empty for empty table", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCategoryService(setupTestDB(t))

		all, err := svc.FindCategories(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
