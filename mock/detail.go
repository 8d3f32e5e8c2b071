package mock

import (
	"context"

	"github.com/fwojciec/blogmirror"
)

var _ blogmirror.DetailService = (*DetailService)(nil)

// DetailService is a mock implementation of blogmirror.DetailService.
type DetailService struct {
	DetailExistsFn func(ctx context.Context, id string) (bool, error)
	SaveDetailFn   func(ctx context.Context, detail *blogmirror.Detail) error
}

func (s *DetailService) DetailExists(ctx context.Context, id string) (bool, error) {
	return s.DetailExistsFn(ctx, id)
}

func (s *DetailService) SaveDetail(ctx context.Context, detail *blogmirror.Detail) error {
	return s.SaveDetailFn(ctx, detail)
}
