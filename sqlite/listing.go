package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fwojciec/blogmirror"
)

// Compile-time interface verification.
var _ blogmirror.ListingService = (*ListingService)(nil)

// ListingService implements blogmirror.ListingService using the article_list table.
type ListingService struct {
	db *DB
}

// NewListingService creates a new ListingService.
func NewListingService(db *DB) *ListingService {
	return &ListingService{db: db}
}

// UpsertListing inserts the listing or updates the row keyed by (id, class_id).
func (s *ListingService) UpsertListing(ctx context.Context, listing *blogmirror.Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}

	created := unixSeconds(listing.CreatedTime)

	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM article_list WHERE id = ? AND class_id = ?
	`, listing.ID, listing.CategoryID).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO article_list (id, class_id, title, url, created_time)
			VALUES (?, ?, ?, ?, ?)
		`, listing.ID, listing.CategoryID, listing.Title, listing.URL, created)
	case err == nil:
		_, err = s.db.ExecContext(ctx, `
			UPDATE article_list SET title = ?, url = ?, created_time = ?
			WHERE id = ? AND class_id = ?
		`, listing.Title, listing.URL, created, listing.ID, listing.CategoryID)
	}
	if err != nil {
		return storageError(err, "upsert listing %s in category %s", listing.ID, listing.CategoryID)
	}
	return nil
}
