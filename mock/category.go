package mock

import (
	"context"

	"github.com/fwojciec/blogmirror"
)

var _ blogmirror.CategoryService = (*CategoryService)(nil)

// CategoryService is a mock implementation of blogmirror.CategoryService.
type CategoryService struct {
	UpsertCategoryFn   func(ctx context.Context, category *blogmirror.Category) error
	UpdatePostCountFn  func(ctx context.Context, id string, count int) error
	FindCategoryByIDFn func(ctx context.Context, id string) (*blogmirror.Category, error)
	FindCategoriesFn   func(ctx context.Context) ([]*blogmirror.Category, error)
}

func (s *CategoryService) UpsertCategory(ctx context.Context, category *blogmirror.Category) error {
	return s.UpsertCategoryFn(ctx, category)
}

func (s *CategoryService) UpdatePostCount(ctx context.Context, id string, count int) error {
	return s.UpdatePostCountFn(ctx, id, count)
}

func (s *CategoryService) FindCategoryByID(ctx context.Context, id string) (*blogmirror.Category, error) {
	return s.FindCategoryByIDFn(ctx, id)
}

func (s *CategoryService) FindCategories(ctx context.Context) ([]*blogmirror.Category, error) {
	return s.FindCategoriesFn(ctx)
}
