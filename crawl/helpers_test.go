package crawl_test

import (
	"context"
	"sync"

	"github.com/fwojciec/blogmirror"
	"github.com/fwojciec/blogmirror/mock"
)

// fakeSite serves pages through mocks. The fetched "HTML" of a page is its
// URL, which the mock extractor uses to look up the page's records.
type fakeSite struct {
	mu         sync.Mutex
	fetched    []string
	fetchErrs  map[string]error
	categories []blogmirror.CategoryLink
	pages      map[string]*blogmirror.ListingPage
	details    map[string]*blogmirror.DetailContent
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		fetchErrs: make(map[string]error),
		pages:     make(map[string]*blogmirror.ListingPage),
		details:   make(map[string]*blogmirror.DetailContent),
	}
}

func (s *fakeSite) Fetched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fetched...)
}

func (s *fakeSite) Fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.fetched = append(s.fetched, url)
			if err := s.fetchErrs[url]; err != nil {
				return "", err
			}
			return url, nil
		},
		CloseFn: func() error { return nil },
	}
}

func (s *fakeSite) Extractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractCategoriesFn: func(_ string, _ string) ([]blogmirror.CategoryLink, error) {
			return s.categories, nil
		},
		ExtractListingPageFn: func(html string, _ string) (*blogmirror.ListingPage, error) {
			page, ok := s.pages[html]
			if !ok {
				return nil, blogmirror.Errorf(blogmirror.EPARSE, "no page %s", html)
			}
			return page, nil
		},
		ExtractDetailFn: func(html string) (*blogmirror.DetailContent, error) {
			detail, ok := s.details[html]
			if !ok {
				return nil, blogmirror.Errorf(blogmirror.EPARSE, "content container missing in %s", html)
			}
			return detail, nil
		},
	}
}

// memStore is an in-memory stand-in for the storage services.
type memStore struct {
	mu         sync.Mutex
	categories map[string]*blogmirror.Category
	order      []string
	listings   map[[2]string]blogmirror.Listing
	details    map[string]*blogmirror.Detail
	tags       map[string][]string
	saves      int
}

func newMemStore() *memStore {
	return &memStore{
		categories: make(map[string]*blogmirror.Category),
		listings:   make(map[[2]string]blogmirror.Listing),
		details:    make(map[string]*blogmirror.Detail),
		tags:       make(map[string][]string),
	}
}

func (m *memStore) CategoryService() *mock.CategoryService {
	return &mock.CategoryService{
		UpsertCategoryFn: func(_ context.Context, c *blogmirror.Category) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			if existing, ok := m.categories[c.ID]; ok {
				existing.Name, existing.URL = c.Name, c.URL
				return nil
			}
			cp := *c
			m.categories[c.ID] = &cp
			m.order = append(m.order, c.ID)
			return nil
		},
		UpdatePostCountFn: func(_ context.Context, id string, count int) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			c, ok := m.categories[id]
			if !ok {
				return blogmirror.Errorf(blogmirror.ENOTFOUND, "category not found")
			}
			c.PostCount = count
			return nil
		},
	}
}

func (m *memStore) ListingService() *mock.ListingService {
	return &mock.ListingService{
		UpsertListingFn: func(_ context.Context, l *blogmirror.Listing) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.listings[[2]string{l.ID, l.CategoryID}] = *l
			return nil
		},
	}
}

func (m *memStore) DetailService() *mock.DetailService {
	return &mock.DetailService{
		DetailExistsFn: func(_ context.Context, id string) (bool, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			_, ok := m.details[id]
			return ok, nil
		},
		SaveDetailFn: func(_ context.Context, d *blogmirror.Detail) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			cp := *d
			m.details[d.ID] = &cp
			m.tags[d.ID] = append([]string(nil), d.Tags...)
			m.saves++
			return nil
		},
	}
}
