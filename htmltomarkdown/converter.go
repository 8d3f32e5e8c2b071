// Package htmltomarkdown exports mirrored post bodies as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blogmirror"
)

// Ensure Converter implements blogmirror.Converter at compile time.
var _ blogmirror.Converter = (*Converter)(nil)

// lazySrcAttrs are attributes the blog uses to hold an image's real address
// while src points at a placeholder.
var lazySrcAttrs = []string{"real_src", "data-src"}

// Converter wraps html-to-markdown to convert post bodies to Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links and image sources against domain.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms a post body into Markdown. Lazily loaded images are
// rewritten to their real source first.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", blogmirror.Errorf(blogmirror.EINVALID, "empty HTML input")
	}

	html, err := restoreImageSources(html)
	if err != nil {
		return "", err
	}

	var result string
	if c.domain != "" {
		result, err = c.conv.ConvertString(html, converter.WithDomain(c.domain))
	} else {
		result, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", blogmirror.WrapError(blogmirror.EPARSE, err, "convert to markdown")
	}
	return strings.TrimSpace(result), nil
}

func restoreImageSources(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", blogmirror.WrapError(blogmirror.EPARSE, err, "parse post body")
	}

	changed := false
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		for _, attr := range lazySrcAttrs {
			if src, ok := img.Attr(attr); ok && src != "" {
				img.SetAttr("src", src)
				img.RemoveAttr(attr)
				changed = true
				return
			}
		}
	})
	if wbr := doc.Find("wbr"); wbr.Length() > 0 {
		wbr.Remove()
		changed = true
	}

	if !changed {
		return html, nil
	}
	return doc.Find("body").Html()
}
