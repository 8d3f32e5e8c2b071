// Package crawl provides the blog synchronization pipeline. It walks the
// category list, the paginated post list of every category and the body of
// every newly seen post, and writes them to storage.
package crawl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/blogmirror"
	"github.com/google/uuid"
)

// LockName is the RunLocker lease taken by a pipeline run.
const LockName = "sync"

// DefaultLockTTL is how long a run's lease lives if the run never releases it.
const DefaultLockTTL = time.Hour

// Stage names, in execution order.
const (
	StageFetchCategories   = "fetch categories"
	StagePersistCategories = "persist categories"
	StageFetchListings     = "fetch listings"
	StagePersistListings   = "persist listings"
	StageDeduplicate       = "deduplicate posts"
	StageSyncDetails       = "sync details"
)

// Pipeline synchronizes the blog into storage. A run is a strictly ordered,
// single-threaded sequence of stages: every fetch and storage write finishes
// before the next begins, and the first error aborts the run.
//
// Runs must not overlap. When Locker is set the pipeline enforces this with
// a lease; otherwise callers are responsible for serializing runs.
type Pipeline struct {
	Fetcher    blogmirror.Fetcher
	Extractor  blogmirror.Extractor
	Categories blogmirror.CategoryService
	Listings   blogmirror.ListingService
	Details    blogmirror.DetailService

	// Locker is optional.
	Locker  blogmirror.RunLocker
	LockTTL time.Duration

	// MaxPages bounds each category's list; see Pager.
	MaxPages int

	// RetryDelays enables retrying failed fetches; nil means no retries.
	RetryDelays []time.Duration

	Progress ProgressFunc
}

// Result summarizes a pipeline run.
type Result struct {
	RunID      string
	Categories int
	Listings   int
	Posts      int
	Fetched    int
	Skipped    int
}

// ProgressEvent reports progress during a pipeline run.
type ProgressEvent struct {
	Type   ProgressType
	RunID  string
	Stage  string
	URL    string
	PostID string
	Count  int
	Error  error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStageStarted ProgressType = iota
	ProgressStageFinished
	ProgressListingRead
	ProgressDetailSaved
	ProgressDetailSkipped
	ProgressRetry
)

// ProgressFunc is a callback for reporting pipeline progress.
type ProgressFunc func(event ProgressEvent)

// CategoryListings holds the listings read from one category.
type CategoryListings struct {
	CategoryID string
	Listings   []blogmirror.Listing
}

// run holds the state carried from one stage to the next.
type run struct {
	id         string
	rootURL    string
	categories []blogmirror.CategoryLink
	listings   []CategoryListings
	posts      []blogmirror.Listing
	result     Result
}

type stage struct {
	name string
	fn   func(ctx context.Context, r *run) error
}

func (p *Pipeline) stages() []stage {
	return []stage{
		{StageFetchCategories, p.fetchCategories},
		{StagePersistCategories, p.persistCategories},
		{StageFetchListings, p.fetchListings},
		{StagePersistListings, p.persistListings},
		{StageDeduplicate, p.deduplicate},
		{StageSyncDetails, p.syncDetails},
	}
}

// Run executes one complete pipeline run against the blog at rootURL.
// The returned Result is non-nil even when the run aborts, and reflects the
// work completed before the failure. Cancelling ctx stops the run between
// steps; every write already made stays complete.
func (p *Pipeline) Run(ctx context.Context, rootURL string) (*Result, error) {
	r := &run{
		id:      uuid.NewString(),
		rootURL: rootURL,
	}
	r.result.RunID = r.id

	if p.Locker != nil {
		ttl := p.LockTTL
		if ttl <= 0 {
			ttl = DefaultLockTTL
		}
		if err := p.Locker.AcquireLock(ctx, LockName, r.id, ttl); err != nil {
			return &r.result, err
		}
		defer func() {
			_ = p.Locker.ReleaseLock(context.WithoutCancel(ctx), LockName, r.id)
		}()
	}

	for _, s := range p.stages() {
		if err := ctx.Err(); err != nil {
			return &r.result, err
		}
		p.emit(ProgressEvent{Type: ProgressStageStarted, RunID: r.id, Stage: s.name})
		if err := s.fn(ctx, r); err != nil {
			return &r.result, fmt.Errorf("%s: %w", s.name, err)
		}
		p.emit(ProgressEvent{Type: ProgressStageFinished, RunID: r.id, Stage: s.name})
	}

	return &r.result, nil
}

func (p *Pipeline) fetchCategories(ctx context.Context, r *run) error {
	html, err := FetchWithRetry(ctx, r.rootURL, p.Fetcher.Fetch, p.RetryDelays, p.onRetry(r, StageFetchCategories))
	if err != nil {
		return err
	}
	categories, err := p.Extractor.ExtractCategories(html, r.rootURL)
	if err != nil {
		return err
	}
	r.categories = categories
	return nil
}

func (p *Pipeline) persistCategories(ctx context.Context, r *run) error {
	for _, c := range r.categories {
		if err := ctx.Err(); err != nil {
			return err
		}
		category := &blogmirror.Category{ID: c.ID, Name: c.Name, URL: c.URL}
		if err := p.Categories.UpsertCategory(ctx, category); err != nil {
			return fmt.Errorf("category %s: %w", c.ID, err)
		}
		r.result.Categories++
	}
	return nil
}

func (p *Pipeline) fetchListings(ctx context.Context, r *run) error {
	pager := &Pager{
		Fetcher:     p.Fetcher,
		Extractor:   p.Extractor,
		MaxPages:    p.MaxPages,
		RetryDelays: p.RetryDelays,
		OnRetry:     p.onRetry(r, StageFetchListings),
	}

	for _, c := range r.categories {
		if err := ctx.Err(); err != nil {
			return err
		}
		items, err := pager.ReadAll(ctx, c.URL)
		if err != nil {
			return fmt.Errorf("category %s: %w", c.ID, err)
		}

		listings := make([]blogmirror.Listing, 0, len(items))
		for _, item := range items {
			listings = append(listings, blogmirror.Listing{
				ID:          item.ID,
				CategoryID:  c.ID,
				Title:       item.Title,
				URL:         item.URL,
				CreatedTime: item.Time,
			})
		}
		r.listings = append(r.listings, CategoryListings{CategoryID: c.ID, Listings: listings})
		p.emit(ProgressEvent{Type: ProgressListingRead, RunID: r.id, Stage: StageFetchListings, URL: c.URL, Count: len(listings)})
	}
	return nil
}

func (p *Pipeline) persistListings(ctx context.Context, r *run) error {
	for _, cl := range r.listings {
		for i := range cl.Listings {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.Listings.UpsertListing(ctx, &cl.Listings[i]); err != nil {
				return fmt.Errorf("listing %s in category %s: %w", cl.Listings[i].ID, cl.CategoryID, err)
			}
			r.result.Listings++
		}
		if err := p.Categories.UpdatePostCount(ctx, cl.CategoryID, len(cl.Listings)); err != nil {
			return fmt.Errorf("post count of category %s: %w", cl.CategoryID, err)
		}
	}
	return nil
}

func (p *Pipeline) deduplicate(_ context.Context, r *run) error {
	r.posts = Deduplicate(r.listings)
	r.result.Posts = len(r.posts)
	return nil
}

func (p *Pipeline) syncDetails(ctx context.Context, r *run) error {
	for _, post := range r.posts {
		if err := ctx.Err(); err != nil {
			return err
		}

		exists, err := p.Details.DetailExists(ctx, post.ID)
		if err != nil {
			return fmt.Errorf("post %s: %w", post.ID, err)
		}
		if exists {
			r.result.Skipped++
			p.emit(ProgressEvent{Type: ProgressDetailSkipped, RunID: r.id, Stage: StageSyncDetails, URL: post.URL, PostID: post.ID})
			continue
		}

		if err := p.syncDetail(ctx, r, post); err != nil {
			return fmt.Errorf("post %s: %w", post.ID, err)
		}
		r.result.Fetched++
		p.emit(ProgressEvent{Type: ProgressDetailSaved, RunID: r.id, Stage: StageSyncDetails, URL: post.URL, PostID: post.ID})
	}
	return nil
}

func (p *Pipeline) syncDetail(ctx context.Context, r *run, post blogmirror.Listing) error {
	html, err := FetchWithRetry(ctx, post.URL, p.Fetcher.Fetch, p.RetryDelays, p.onRetry(r, StageSyncDetails))
	if err != nil {
		return err
	}
	content, err := p.Extractor.ExtractDetail(html)
	if err != nil {
		return err
	}

	detail := &blogmirror.Detail{
		ID:      post.ID,
		Tags:    content.Tags,
		Content: content.Content,
	}
	return p.Details.SaveDetail(ctx, detail)
}

// Deduplicate flattens per-category listings into one entry per post ID.
// Posts keep the position of their first appearance; when a post appears in
// several categories, the last appearance's listing is the one retained.
func Deduplicate(lists []CategoryListings) []blogmirror.Listing {
	index := make(map[string]int)
	var posts []blogmirror.Listing
	for _, cl := range lists {
		for _, l := range cl.Listings {
			if i, ok := index[l.ID]; ok {
				posts[i] = l
				continue
			}
			index[l.ID] = len(posts)
			posts = append(posts, l)
		}
	}
	return posts
}

func (p *Pipeline) onRetry(r *run, stage string) RetryFunc {
	return func(url string, attempt int, err error) {
		p.emit(ProgressEvent{Type: ProgressRetry, RunID: r.id, Stage: stage, URL: url, Count: attempt, Error: err})
	}
}

func (p *Pipeline) emit(event ProgressEvent) {
	if p.Progress != nil {
		p.Progress(event)
	}
}

// FormatResult renders a one-line summary of a run.
func FormatResult(res *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d categories, %d listings, %d posts", res.Categories, res.Listings, res.Posts)
	fmt.Fprintf(&b, " (%d fetched, %d already mirrored)", res.Fetched, res.Skipped)
	return b.String()
}
