package blogmirror

import "context"

// Detail holds the full body and tags of one post. Its identity is the post
// ID alone, independent of which categories list the post.
type Detail struct {
	ID          string   `json:"id"`
	Tags        []string `json:"tags"`
	Content     string   `json:"content"`
	ContentHash string   `json:"contentHash"`
}

// Validate returns an error if the detail contains invalid fields.
func (d *Detail) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "detail ID required")
	}
	return nil
}

// DetailService represents a service for managing post details and tags.
type DetailService interface {
	// DetailExists reports whether a detail row exists for the post.
	DetailExists(ctx context.Context, id string) (bool, error)

	// SaveDetail upserts the detail row and replaces every tag association
	// of the post with detail.Tags. The row and its tags are written
	// together: either both persist or nothing changes.
	SaveDetail(ctx context.Context, detail *Detail) error
}
