// Package goquery extracts categories, post listings and post bodies from
// the blog's HTML using CSS selectors and ID patterns from blogmirror.SiteRules.
package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blogmirror"
)

// Ensure Extractor implements blogmirror.Extractor at compile time.
var _ blogmirror.Extractor = (*Extractor)(nil)

// Extractor implements blogmirror.Extractor for a fixed set of site rules.
// It is stateless after construction and safe for concurrent use.
type Extractor struct {
	rules      blogmirror.SiteRules
	categoryRe *regexp.Regexp
	listingRe  *regexp.Regexp
	location   *time.Location
}

// NewExtractor compiles the rule patterns and returns an Extractor.
// Returns EINVALID if a pattern does not compile or lacks a capture group.
func NewExtractor(rules blogmirror.SiteRules) (*Extractor, error) {
	categoryRe, err := compilePattern("category", rules.CategoryPattern)
	if err != nil {
		return nil, err
	}
	listingRe, err := compilePattern("listing", rules.ListingPattern)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		rules:      rules,
		categoryRe: categoryRe,
		listingRe:  listingRe,
		location:   time.FixedZone("site", rules.UTCOffset),
	}, nil
}

func compilePattern(name, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, blogmirror.Errorf(blogmirror.EINVALID, "invalid %s pattern %q: %v", name, pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, blogmirror.Errorf(blogmirror.EINVALID, "%s pattern %q needs a capture group for the ID", name, pattern)
	}
	return re, nil
}

// ExtractCategories returns the category links of the blog's front page.
func (e *Extractor) ExtractCategories(html string, baseURL string) ([]blogmirror.CategoryLink, error) {
	base, doc, err := parse(html, baseURL)
	if err != nil {
		return nil, err
	}

	var categories []blogmirror.CategoryLink
	doc.Find(e.rules.CategorySelector).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		id := matchID(e.categoryRe, href)
		if id == "" {
			return
		}
		categories = append(categories, blogmirror.CategoryLink{
			ID:   id,
			Name: strings.TrimSpace(sel.Text()),
			URL:  resolveURL(base, href),
		})
	})

	return categories, nil
}

// ExtractListingPage returns the post cells of one list page and its next-page link.
func (e *Extractor) ExtractListingPage(html string, baseURL string) (*blogmirror.ListingPage, error) {
	base, doc, err := parse(html, baseURL)
	if err != nil {
		return nil, err
	}

	page := &blogmirror.ListingPage{}
	doc.Find(e.rules.ListingSelector).Each(func(_ int, cell *goquery.Selection) {
		title := cell.Find(e.rules.ListingTitleSelector).First()
		href, _ := title.Attr("href")
		id := matchID(e.listingRe, href)
		if id == "" {
			return
		}
		rawTime := strings.TrimSpace(cell.Find(e.rules.ListingTimeSelector).First().Text())
		page.Items = append(page.Items, blogmirror.ListingItem{
			ID:      id,
			Title:   strings.TrimSpace(title.Text()),
			URL:     resolveURL(base, href),
			RawTime: rawTime,
			Time:    e.parseTime(rawTime),
		})
	})

	if next, ok := doc.Find(e.rules.NextPageSelector).First().Attr("href"); ok && strings.TrimSpace(next) != "" {
		page.NextPageURL = resolveURL(base, strings.TrimSpace(next))
	}

	return page, nil
}

// ExtractDetail returns the tags and content markup of a post page.
func (e *Extractor) ExtractDetail(html string) (*blogmirror.DetailContent, error) {
	_, doc, err := parse(html, "")
	if err != nil {
		return nil, err
	}

	tags := []string{}
	doc.Find(e.rules.TagSelector).Each(func(_ int, sel *goquery.Selection) {
		if tag := strings.TrimSpace(sel.Text()); tag != "" {
			tags = append(tags, tag)
		}
	})

	container := doc.Find(e.rules.ContentSelector).First()
	if container.Length() == 0 {
		return nil, blogmirror.Errorf(blogmirror.EPARSE, "content container %q not found", e.rules.ContentSelector)
	}
	content, err := container.Html()
	if err != nil {
		return nil, blogmirror.WrapError(blogmirror.EPARSE, err, "failed to render content")
	}

	return &blogmirror.DetailContent{
		Tags:    tags,
		Content: strings.TrimSpace(content),
	}, nil
}

// parseTime parses a listing timestamp in the site's zone.
// Unparseable input yields the zero time.
func (e *Extractor) parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	// Some pages wrap the timestamp in parentheses.
	raw = strings.Trim(raw, "()（） ")
	t, err := time.ParseInLocation(e.rules.TimeLayout, raw, e.location)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parse(html string, baseURL string) (*url.URL, *goquery.Document, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nil, blogmirror.Errorf(blogmirror.EPARSE, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, blogmirror.Errorf(blogmirror.EPARSE, "failed to parse HTML: %v", err)
	}
	return base, doc, nil
}

// matchID returns the first capture group of re in href, or "" if it does not match.
func matchID(re *regexp.Regexp, href string) string {
	if href == "" {
		return ""
	}
	m := re.FindStringSubmatch(href)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// resolveURL resolves href against base. Unparseable hrefs are returned as-is.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
