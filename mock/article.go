package mock

import (
	"context"

	"github.com/fwojciec/blogmirror"
)

var _ blogmirror.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of blogmirror.ArticleService.
type ArticleService struct {
	FindArticleByIDFn    func(ctx context.Context, id string) (*blogmirror.Article, error)
	FindArticlesFn       func(ctx context.Context, filter blogmirror.ArticleFilter) ([]*blogmirror.Article, error)
	CountArticlesByTagFn func(ctx context.Context, tag string) (int, error)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*blogmirror.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter blogmirror.ArticleFilter) ([]*blogmirror.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) CountArticlesByTag(ctx context.Context, tag string) (int, error) {
	return s.CountArticlesByTagFn(ctx, tag)
}
