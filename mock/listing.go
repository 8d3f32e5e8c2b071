package mock

import (
	"context"

	"github.com/fwojciec/blogmirror"
)

var _ blogmirror.ListingService = (*ListingService)(nil)

// ListingService is a mock implementation of blogmirror.ListingService.
type ListingService struct {
	UpsertListingFn func(ctx context.Context, listing *blogmirror.Listing) error
}

func (s *ListingService) UpsertListing(ctx context.Context, listing *blogmirror.Listing) error {
	return s.UpsertListingFn(ctx, listing)
}
