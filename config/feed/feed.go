package feed

import (
	"strings"

	"github.com/rjw57/siteconf/utils"
)

// FeedConfig holds the syndication settings. A nil value means the feed
// is disabled.
type FeedConfig struct {
	Domain          *string `yaml:"FEED_DOMAIN"`
	Atom            *string `yaml:"FEED_ATOM"`
	RSS             *string `yaml:"FEED_RSS"`
	AllAtom         *string `yaml:"FEED_ALL_ATOM"`
	AllRSS          *string `yaml:"FEED_ALL_RSS"`
	CategoryAtom    *string `yaml:"CATEGORY_FEED_ATOM"`
	TranslationAtom *string `yaml:"TRANSLATION_FEED_ATOM"`

	ResolvedDomain string `yaml:"-"`
}

// Feed is one enabled feed as listed by Enabled.
type Feed struct {
	Key  string
	Path string
}

func (f *FeedConfig) entries() []struct {
	key string
	val *string
} {
	return []struct {
		key string
		val *string
	}{
		{"FEED_ATOM", f.Atom},
		{"FEED_RSS", f.RSS},
		{"FEED_ALL_ATOM", f.AllAtom},
		{"FEED_ALL_RSS", f.AllRSS},
		{"CATEGORY_FEED_ATOM", f.CategoryAtom},
		{"TRANSLATION_FEED_ATOM", f.TranslationAtom},
	}
}

// Enabled lists the feeds with a path, in a fixed order.
func (f *FeedConfig) Enabled() []Feed {
	var out []Feed
	for _, e := range f.entries() {
		if e.val != nil && *e.val != "" {
			out = append(out, Feed{Key: e.key, Path: *e.val})
		}
	}
	return out
}

// URL joins the feed domain and a feed path. Without a domain the path is
// returned site-relative.
func (f *FeedConfig) URL(path string) string {
	path = strings.TrimPrefix(path, "/")
	if f.ResolvedDomain == "" {
		return "/" + path
	}
	return f.ResolvedDomain + "/" + path
}

// AtomURL returns the absolute URL of the main Atom feed, or "" when it is
// disabled.
func (f *FeedConfig) AtomURL() string {
	if !set(f.Atom) {
		return ""
	}
	return f.URL(utils.FromStringPtr(f.Atom))
}

// CategoryFeed returns the path of the Atom feed of category slug.
func (f *FeedConfig) CategoryFeed(slug string) string {
	return substitute(f.CategoryAtom, "{slug}", slug)
}

// TranslationFeed returns the path of the Atom feed for lang.
func (f *FeedConfig) TranslationFeed(lang string) string {
	return substitute(f.TranslationAtom, "{lang}", lang)
}

// substitute fills a feed path template, which may use a named
// placeholder or the older "%s" form.
func substitute(tmpl *string, placeholder, value string) string {
	if !set(tmpl) {
		return ""
	}
	if strings.Contains(*tmpl, placeholder) {
		return strings.ReplaceAll(*tmpl, placeholder, value)
	}
	return strings.Replace(*tmpl, "%s", value, 1)
}

func set(s *string) bool {
	return utils.FromStringPtr(s) != ""
}
