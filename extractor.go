package blogmirror

import "time"

// CategoryLink is a category as found on the blog's front page.
type CategoryLink struct {
	ID   string
	Name string
	URL  string
}

// ListingItem is a post reference as found on a category list page.
type ListingItem struct {
	ID      string
	Title   string
	URL     string
	RawTime string
	Time    time.Time // zero if RawTime could not be parsed
}

// ListingPage is one page of a paginated post list.
type ListingPage struct {
	Items []ListingItem

	// NextPageURL is empty on the last page.
	NextPageURL string
}

// DetailContent is the body and tags extracted from a post page.
type DetailContent struct {
	Tags    []string
	Content string
}

// Extractor pulls structured records out of the blog's HTML pages.
// Implementations are pure: no network or storage side effects.
// A selector matching nothing yields an empty result, not an error;
// unparseable documents return EPARSE.
type Extractor interface {
	// ExtractCategories returns the category links of the front page.
	// Links whose href does not carry a category ID are skipped.
	// Relative hrefs are resolved against baseURL.
	ExtractCategories(html string, baseURL string) ([]CategoryLink, error)

	// ExtractListingPage returns the post cells of one list page and the
	// next-page link, if any. Relative hrefs are resolved against baseURL.
	ExtractListingPage(html string, baseURL string) (*ListingPage, error)

	// ExtractDetail returns the tags and content markup of a post page.
	// Returns EPARSE if the content container is missing.
	ExtractDetail(html string) (*DetailContent, error)
}
