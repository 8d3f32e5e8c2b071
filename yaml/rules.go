// Package yaml loads site rules from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/blogmirror"
	"gopkg.in/yaml.v3"
)

// LoadRules reads site rules from path. Keys absent from the file keep the
// value from blogmirror.DefaultSiteRules. Unknown keys are rejected so that
// a misspelt selector does not silently fall back to its default.
func LoadRules(path string) (blogmirror.SiteRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return blogmirror.SiteRules{}, blogmirror.WrapError(blogmirror.EINVALID, err, "read site rules")
	}
	return ParseRules(data)
}

// ParseRules decodes YAML site rules over the defaults.
func ParseRules(data []byte) (blogmirror.SiteRules, error) {
	rules := blogmirror.DefaultSiteRules()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return blogmirror.SiteRules{}, blogmirror.WrapError(blogmirror.EINVALID, err, "parse site rules")
	}

	if err := validate(rules); err != nil {
		return blogmirror.SiteRules{}, err
	}
	return rules, nil
}

// validate rejects empty settings and selectors that do not compile. An
// unusable selector would otherwise match nothing and a sync would succeed
// with no data.
func validate(rules blogmirror.SiteRules) error {
	selectors := []struct{ key, value string }{
		{"category_selector", rules.CategorySelector},
		{"listing_selector", rules.ListingSelector},
		{"listing_title_selector", rules.ListingTitleSelector},
		{"listing_time_selector", rules.ListingTimeSelector},
		{"next_page_selector", rules.NextPageSelector},
		{"tag_selector", rules.TagSelector},
		{"content_selector", rules.ContentSelector},
	}
	for _, sel := range selectors {
		if sel.value == "" {
			return blogmirror.Errorf(blogmirror.EINVALID, "site rules: %s must not be empty", sel.key)
		}
		if _, err := cascadia.Compile(sel.value); err != nil {
			return blogmirror.WrapError(blogmirror.EINVALID, err, "site rules: invalid %s %q", sel.key, sel.value)
		}
	}

	for _, field := range []struct{ key, value string }{
		{"category_pattern", rules.CategoryPattern},
		{"listing_pattern", rules.ListingPattern},
		{"time_layout", rules.TimeLayout},
	} {
		if field.value == "" {
			return blogmirror.Errorf(blogmirror.EINVALID, "site rules: %s must not be empty", field.key)
		}
	}
	return nil
}
