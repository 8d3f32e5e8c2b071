package blogmirror

// SiteRules holds the site-specific selectors and patterns used to scrape
// the blog. Keeping them as data separates extraction from orchestration.
type SiteRules struct {
	CategorySelector string `yaml:"category_selector"`
	CategoryPattern  string `yaml:"category_pattern"`

	ListingSelector      string `yaml:"listing_selector"`
	ListingTitleSelector string `yaml:"listing_title_selector"`
	ListingTimeSelector  string `yaml:"listing_time_selector"`
	ListingPattern       string `yaml:"listing_pattern"`
	NextPageSelector     string `yaml:"next_page_selector"`

	TagSelector     string `yaml:"tag_selector"`
	ContentSelector string `yaml:"content_selector"`

	// TimeLayout is the Go reference layout of listing timestamps.
	TimeLayout string `yaml:"time_layout"`

	// UTCOffset is the site's local time offset in seconds east of UTC.
	UTCOffset int `yaml:"utc_offset"`
}

// DefaultSiteRules returns the rules for the blog's current markup.
// The ID of a category or post is the first capture group of its pattern.
func DefaultSiteRules() SiteRules {
	return SiteRules{
		CategorySelector: ".classList li a",
		CategoryPattern:  `articlelist_\d+_(\d+)_\d+\.html`,

		ListingSelector:      ".articleList .articleCell",
		ListingTitleSelector: ".atc_title a",
		ListingTimeSelector:  ".atc_tm",
		ListingPattern:       `blog_([a-zA-Z0-9]+)\.html`,
		NextPageSelector:     ".SG_pgnext a",

		TagSelector:     ".blog_tag h3 a",
		ContentSelector: ".articalContent",

		TimeLayout: "2006-01-02 15:04",
		UTCOffset:  8 * 60 * 60,
	}
}
