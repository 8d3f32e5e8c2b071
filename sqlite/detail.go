package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/blogmirror"
)

// Compile-time interface verification.
var _ blogmirror.DetailService = (*DetailService)(nil)

// DetailService implements blogmirror.DetailService using the article_detail
// and article_tag tables.
type DetailService struct {
	db *DB
}

// NewDetailService creates a new DetailService.
func NewDetailService(db *DB) *DetailService {
	return &DetailService{db: db}
}

// ContentHash returns the hex xxhash of a post body.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// DetailExists reports whether the post's detail has been mirrored.
func (s *DetailService) DetailExists(ctx context.Context, id string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM article_detail WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storageError(err, "check detail %s", id)
	}
	return true, nil
}

// SaveDetail writes the detail row and its tag rows in one transaction.
// Tags are also cached space-joined on the row, and ContentHash is set from
// the content. Duplicate and empty tags are dropped.
func (s *DetailService) SaveDetail(ctx context.Context, detail *blogmirror.Detail) error {
	if err := detail.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return storageError(err, "save detail %s", detail.ID)
	}
	defer tx.Rollback()

	hash := ContentHash(detail.Content)
	if err := upsertDetail(ctx, tx, detail, hash); err != nil {
		return err
	}
	if err := replaceTags(ctx, tx, detail.ID, detail.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageError(err, "save detail %s", detail.ID)
	}
	detail.ContentHash = hash
	return nil
}

func upsertDetail(ctx context.Context, tx *sql.Tx, detail *blogmirror.Detail, hash string) error {
	tags := strings.Join(detail.Tags, " ")

	var exists int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM article_detail WHERE id = ?", detail.ID).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO article_detail (id, tags, content, content_hash)
			VALUES (?, ?, ?, ?)
		`, detail.ID, tags, detail.Content, hash)
	case err == nil:
		_, err = tx.ExecContext(ctx, `
			UPDATE article_detail SET tags = ?, content = ?, content_hash = ? WHERE id = ?
		`, tags, detail.Content, hash, detail.ID)
	}
	if err != nil {
		return storageError(err, "upsert detail %s", detail.ID)
	}
	return nil
}

// replaceTags swaps the post's tag rows for tags, in order.
func replaceTags(ctx context.Context, tx *sql.Tx, id string, tags []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM article_tag WHERE id = ?", id); err != nil {
		return storageError(err, "delete tags of %s", id)
	}

	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		if _, err := tx.ExecContext(ctx, "INSERT INTO article_tag (id, tag) VALUES (?, ?)", id, tag); err != nil {
			return storageError(err, "insert tag %q of %s", tag, id)
		}
	}
	return nil
}
