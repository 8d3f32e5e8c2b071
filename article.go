package blogmirror

import (
	"context"
	"time"
)

// Article is a listing joined with its detail, as shown by the web front end.
// Detail fields are empty when the post body has not been mirrored yet.
type Article struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"categoryId"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	CreatedTime time.Time `json:"createdTime"`
	Tags        []string  `json:"tags"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
}

// ArticleService provides read-only queries over mirrored articles.
type ArticleService interface {
	// FindArticleByID retrieves an article joined with its detail.
	// Returns ENOTFOUND if no listing exists for the ID.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles returns articles matching the filter, newest first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// CountArticlesByTag returns the number of distinct posts carrying the tag.
	CountArticlesByTag(ctx context.Context, tag string) (int, error)
}

// ArticleFilter represents a filter for FindArticles.
// At most one of CategoryID and Tag should be set.
type ArticleFilter struct {
	CategoryID *string `json:"categoryId"`
	Tag        *string `json:"tag"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ArticleExporter writes rendered articles to an export target.
// Saved articles become visible only after Commit. Abort discards them.
type ArticleExporter interface {
	Save(ctx context.Context, article *Article, markdown string) error
	Commit() error
	Abort() error
}
