package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/blogmirror"
)

// DefaultMaxPages bounds how many pages one paginated list may span.
const DefaultMaxPages = 1000

// Pager reads a paginated post list by following its next-page links.
type Pager struct {
	Fetcher     blogmirror.Fetcher
	Extractor   blogmirror.Extractor
	MaxPages    int
	RetryDelays []time.Duration
	OnRetry     RetryFunc
}

// ReadAll fetches startURL and every page reachable through next-page links
// and returns their items concatenated in page order, then document order.
//
// Fetch failures return EFETCH and unparseable pages EPARSE. A next-page
// link pointing at an already visited page, or a chain longer than
// MaxPages, returns ECYCLE.
func (p *Pager) ReadAll(ctx context.Context, startURL string) ([]blogmirror.ListingItem, error) {
	maxPages := p.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var items []blogmirror.ListingItem
	visited := make(map[string]struct{})

	for next, pages := startURL, 0; next != ""; pages++ {
		if pages >= maxPages {
			return nil, blogmirror.Errorf(blogmirror.ECYCLE, "list at %s spans more than %d pages", startURL, maxPages)
		}
		if _, ok := visited[next]; ok {
			return nil, blogmirror.Errorf(blogmirror.ECYCLE, "list at %s links back to %s", startURL, next)
		}
		visited[next] = struct{}{}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		html, err := FetchWithRetry(ctx, next, p.Fetcher.Fetch, p.RetryDelays, p.OnRetry)
		if err != nil {
			return nil, err
		}

		page, err := p.Extractor.ExtractListingPage(html, next)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Items...)
		next = page.NextPageURL
	}

	return items, nil
}
