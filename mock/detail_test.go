package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/blogmirror"
	"github.com/fwojciec/blogmirror/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailService_SaveDetail(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SaveDetailFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *blogmirror.Detail
		s := &mock.DetailService{
			SaveDetailFn: func(_ context.Context, detail *blogmirror.Detail) error {
				calledWith = detail
				return nil
			},
		}

		detail := &blogmirror.Detail{ID: "abc", Tags: []string{"go"}, Content: "<p>hi</p>"}

		err := s.SaveDetail(context.Background(), detail)

		require.NoError(t, err)
		assert.Same(t, detail, calledWith)
	})

	t.Run("returns error from SaveDetailFn", func(t *testing.T) {
		t.Parallel()

		s := &mock.DetailService{
			SaveDetailFn: func(_ context.Context, _ *blogmirror.Detail) error {
				return blogmirror.Errorf(blogmirror.ESTORAGE, "write failed")
			},
		}

		err := s.SaveDetail(context.Background(), &blogmirror.Detail{ID: "abc"})

		require.Error(t, err)
		assert.Equal(t, blogmirror.ESTORAGE, blogmirror.ErrorCode(err))
	})
}
