package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fwojciec/blogmirror"
)

// Compile-time interface verification.
var _ blogmirror.CategoryService = (*CategoryService)(nil)

// CategoryService implements blogmirror.CategoryService using the class_list table.
type CategoryService struct {
	db *DB
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *DB) *CategoryService {
	return &CategoryService{db: db}
}

// UpsertCategory inserts the category or updates its name and URL.
func (s *CategoryService) UpsertCategory(ctx context.Context, category *blogmirror.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM class_list WHERE id = ?", category.ID).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO class_list (id, name, url, count)
			VALUES (?, ?, ?, 0)
		`, category.ID, category.Name, category.URL)
	case err == nil:
		_, err = s.db.ExecContext(ctx, `
			UPDATE class_list SET name = ?, url = ? WHERE id = ?
		`, category.Name, category.URL, category.ID)
	}
	if err != nil {
		return storageError(err, "upsert category %s", category.ID)
	}
	return nil
}

// UpdatePostCount sets the category's post count.
func (s *CategoryService) UpdatePostCount(ctx context.Context, id string, count int) error {
	result, err := s.db.ExecContext(ctx, "UPDATE class_list SET count = ? WHERE id = ?", count, id)
	if err != nil {
		return storageError(err, "update post count of category %s", id)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError(err, "update post count of category %s", id)
	}
	if rows == 0 {
		return blogmirror.Errorf(blogmirror.ENOTFOUND, "category %s not found", id)
	}
	return nil
}

// FindCategoryByID retrieves a category by ID.
func (s *CategoryService) FindCategoryByID(ctx context.Context, id string) (*blogmirror.Category, error) {
	var c blogmirror.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, url, count FROM class_list WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.URL, &c.PostCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, blogmirror.Errorf(blogmirror.ENOTFOUND, "category %s not found", id)
	}
	if err != nil {
		return nil, storageError(err, "find category %s", id)
	}
	return &c, nil
}

// FindCategories returns all categories ordered by ID ascending.
func (s *CategoryService) FindCategories(ctx context.Context) ([]*blogmirror.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, url, count FROM class_list ORDER BY id ASC")
	if err != nil {
		return nil, storageError(err, "find categories")
	}
	defer rows.Close()

	var categories []*blogmirror.Category
	for rows.Next() {
		var c blogmirror.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.URL, &c.PostCount); err != nil {
			return nil, storageError(err, "scan category")
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "find categories")
	}
	return categories, nil
}
