package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/blogmirror"
)

// Compile-time interface verification.
var _ blogmirror.ArticleService = (*ArticleService)(nil)

// ArticleService implements blogmirror.ArticleService by joining listings
// with their details.
//
// A post listed under several categories has one listing per category. When
// a query is not scoped to a category, the listing with the smallest class_id
// represents the post.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

const articleColumns = `
	l.id, l.class_id, l.title, l.url, l.created_time,
	COALESCE(d.content, ''), COALESCE(d.content_hash, '')
	FROM article_list l
	LEFT JOIN article_detail d ON d.id = l.id`

const representativeListing = ` AND l.class_id = (SELECT MIN(class_id) FROM article_list WHERE id = l.id)`

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*blogmirror.Article, error) {
	var a blogmirror.Article
	var created int64
	if err := row.Scan(&a.ID, &a.CategoryID, &a.Title, &a.URL, &created, &a.Content, &a.ContentHash); err != nil {
		return nil, err
	}
	a.CreatedTime = fromUnixSeconds(created)
	return &a, nil
}

// attachTags loads the tag rows of articles in the order they were saved.
// article_detail.tags is only a space-joined cache; article_tag is
// authoritative.
func (s *ArticleService) attachTags(ctx context.Context, articles []*blogmirror.Article) error {
	if len(articles) == 0 {
		return nil
	}

	byID := make(map[string][]*blogmirror.Article, len(articles))
	args := make([]any, 0, len(articles))
	for _, a := range articles {
		if _, ok := byID[a.ID]; !ok {
			args = append(args, a.ID)
		}
		byID[a.ID] = append(byID[a.ID], a)
	}

	query := "SELECT id, tag FROM article_tag WHERE id IN (?" + strings.Repeat(", ?", len(args)-1) + ") ORDER BY rowid"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return storageError(err, "find tags")
	}
	defer rows.Close()

	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return storageError(err, "scan tag")
		}
		for _, a := range byID[id] {
			a.Tags = append(a.Tags, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return storageError(err, "find tags")
	}
	return nil
}

// FindArticleByID retrieves an article by post ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*blogmirror.Article, error) {
	row := s.db.QueryRowContext(ctx, "SELECT"+articleColumns+" WHERE l.id = ?"+representativeListing, id)

	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blogmirror.Errorf(blogmirror.ENOTFOUND, "article %s not found", id)
	}
	if err != nil {
		return nil, storageError(err, "find article %s", id)
	}
	if err := s.attachTags(ctx, []*blogmirror.Article{article}); err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles returns articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter blogmirror.ArticleFilter) ([]*blogmirror.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT" + articleColumns + " WHERE 1=1")

	if filter.CategoryID != nil {
		query.WriteString(" AND l.class_id = ?")
		args = append(args, *filter.CategoryID)
	} else {
		query.WriteString(representativeListing)
	}
	if filter.Tag != nil {
		query.WriteString(" AND l.id IN (SELECT id FROM article_tag WHERE tag = ?)")
		args = append(args, *filter.Tag)
	}

	query.WriteString(" ORDER BY l.created_time DESC, l.id DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	articles, err := s.findArticles(ctx, query.String(), args)
	if err != nil {
		return nil, err
	}
	// The single connection is free again once the article rows are closed.
	if err := s.attachTags(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ArticleService) findArticles(ctx context.Context, query string, args []any) ([]*blogmirror.Article, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "find articles")
	}
	defer rows.Close()

	var articles []*blogmirror.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, storageError(err, "scan article")
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "find articles")
	}
	return articles, nil
}

// CountArticlesByTag returns the number of distinct posts carrying tag.
func (s *ArticleService) CountArticlesByTag(ctx context.Context, tag string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT id) FROM article_tag WHERE tag = ?", tag).Scan(&n)
	if err != nil {
		return 0, storageError(err, "count articles tagged %q", tag)
	}
	return n, nil
}
