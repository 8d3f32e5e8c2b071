package blogmirror

import "context"

// Category represents one post category of the mirrored blog.
// The ID is parsed from the category's listing URL and is stable across runs.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	PostCount int    `json:"postCount"`
}

// Validate returns an error if the category contains invalid fields.
func (c *Category) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "category ID required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "category URL required")
	}
	return nil
}

// CategoryService represents a service for managing categories.
type CategoryService interface {
	// UpsertCategory inserts the category if its ID is absent,
	// otherwise updates its name and URL. PostCount is left untouched.
	UpsertCategory(ctx context.Context, category *Category) error

	// UpdatePostCount sets the number of posts listed under a category.
	// Returns ENOTFOUND if the category does not exist.
	UpdatePostCount(ctx context.Context, id string, count int) error

	// FindCategoryByID retrieves a category by ID.
	// Returns ENOTFOUND if category does not exist.
	FindCategoryByID(ctx context.Context, id string) (*Category, error)

	// FindCategories returns all categories ordered by ID ascending.
	FindCategories(ctx context.Context) ([]*Category, error)
}
