package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/blogmirror"
	"github.com/fwojciec/blogmirror/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules(t *testing.T) {
	t.Parallel()

	t.Run("empty document yields the defaults", func(t *testing.T) {
		t.Parallel()

		rules, err := yaml.ParseRules(nil)

		require.NoError(t, err)
		assert.Equal(t, blogmirror.DefaultSiteRules(), rules)
	})

	t.Run("overrides only the keys present", func(t *testing.T) {
		t.Parallel()

		rules, err := yaml.ParseRules([]byte("content_selector: \"#body\"\nutc_offset: 0\n"))

		require.NoError(t, err)
		want := blogmirror.DefaultSiteRules()
		want.ContentSelector = "#body"
		want.UTCOffset = 0
		assert.Equal(t, want, rules)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseRules([]byte("contnet_selector: x\n"))

		require.Error(t, err)
		assert.Equal(t, blogmirror.EINVALID, blogmirror.ErrorCode(err))
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseRules([]byte("utc_offset: [1, 2"))

		require.Error(t, err)
		assert.Equal(t, blogmirror.EINVALID, blogmirror.ErrorCode(err))
	})

	for _, tt := range []struct {
		name string
		doc  string
		msg  string
	}{
		{name: "rejects an empty time layout", doc: "time_layout: \"\"\n", msg: "time_layout"},
		{name: "rejects an empty category selector", doc: "category_selector: \"\"\n", msg: "category_selector"},
		{name: "rejects an empty content selector", doc: "content_selector: \"\"\n", msg: "content_selector"},
		{name: "rejects an empty listing pattern", doc: "listing_pattern: \"\"\n", msg: "listing_pattern"},
		{name: "rejects a selector that does not compile", doc: "listing_selector: \"div[\"\n", msg: "listing_selector"},
		{name: "rejects a dangling combinator", doc: "tag_selector: \".blog_tag >\"\n", msg: "tag_selector"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := yaml.ParseRules([]byte(tt.doc))

			require.Error(t, err)
			assert.Equal(t, blogmirror.EINVALID, blogmirror.ErrorCode(err))
			assert.Contains(t, blogmirror.ErrorMessage(err), tt.msg)
		})
	}

	t.Run("accepts any valid selector", func(t *testing.T) {
		t.Parallel()

		rules, err := yaml.ParseRules([]byte("next_page_selector: \"ul.pager > li:last-child a[href]\"\n"))

		require.NoError(t, err)
		assert.Equal(t, "ul.pager > li:last-child a[href]", rules.NextPageSelector)
	})
}

func TestLoadRules(t *testing.T) {
	t.Parallel()

	t.Run("reads a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("next_page_selector: \"a.next\"\n"), 0o600))

		rules, err := yaml.LoadRules(path)

		require.NoError(t, err)
		assert.Equal(t, "a.next", rules.NextPageSelector)
		assert.Equal(t, blogmirror.DefaultSiteRules().ListingSelector, rules.ListingSelector)
	})

	t.Run("returns EINVALID for a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))

		require.Error(t, err)
		assert.Equal(t, blogmirror.EINVALID, blogmirror.ErrorCode(err))
	})
}
