package mock

import "github.com/fwojciec/blogmirror"

var _ blogmirror.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of blogmirror.Extractor.
type Extractor struct {
	ExtractCategoriesFn  func(html string, baseURL string) ([]blogmirror.CategoryLink, error)
	ExtractListingPageFn func(html string, baseURL string) (*blogmirror.ListingPage, error)
	ExtractDetailFn      func(html string) (*blogmirror.DetailContent, error)
}

func (e *Extractor) ExtractCategories(html string, baseURL string) ([]blogmirror.CategoryLink, error) {
	return e.ExtractCategoriesFn(html, baseURL)
}

func (e *Extractor) ExtractListingPage(html string, baseURL string) (*blogmirror.ListingPage, error) {
	return e.ExtractListingPageFn(html, baseURL)
}

func (e *Extractor) ExtractDetail(html string) (*blogmirror.DetailContent, error) {
	return e.ExtractDetailFn(html)
}
