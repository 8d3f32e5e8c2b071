package blogmirror

import (
	"context"
	"time"
)

// Listing is a lightweight reference to a post as it appears on one
// category's list page. The same post may be listed under several
// categories; each appearance is a distinct listing keyed by
// (ID, CategoryID).
type Listing struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"categoryId"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	CreatedTime time.Time `json:"createdTime"`
}

// Validate returns an error if the listing contains invalid fields.
func (l *Listing) Validate() error {
	if l.ID == "" {
		return Errorf(EINVALID, "listing ID required")
	}
	if l.CategoryID == "" {
		return Errorf(EINVALID, "listing category ID required")
	}
	return nil
}

// ListingService represents a service for managing listings.
type ListingService interface {
	// UpsertListing inserts the listing if (ID, CategoryID) is absent,
	// otherwise updates title, URL and created time.
	UpsertListing(ctx context.Context, listing *Listing) error
}
