package config

import (
	"github.com/rjw57/siteconf/settings"
	"github.com/rs/zerolog/log"
)

// Defaults returns the value every known key takes when a settings file
// leaves it unset. A nil value means the feature is off.
func Defaults() settings.Map {
	return settings.Map{
		"AUTHOR":             "",
		"SITENAME":           "A Pelican Blog",
		"SITEURL":            "",
		"TIMEZONE":           "UTC",
		"DEFAULT_LANG":       "en",
		"THEME":              "notmyidea",
		"RELATIVE_URLS":      false,
		"DEFAULT_PAGINATION": false,
		"STATIC_PATHS":       []any{"images"},

		"ARTICLE_URL":          "{slug}.html",
		"ARTICLE_SAVE_AS":      "{slug}.html",
		"ARTICLE_LANG_URL":     "{slug}-{lang}.html",
		"ARTICLE_LANG_SAVE_AS": "{slug}-{lang}.html",
		"PAGE_URL":             "pages/{slug}.html",
		"PAGE_SAVE_AS":         "pages/{slug}.html",
		"CATEGORY_URL":         "category/{slug}.html",
		"CATEGORY_SAVE_AS":     "category/{slug}.html",
		"TAG_URL":              "tag/{slug}.html",
		"TAG_SAVE_AS":          "tag/{slug}.html",
		"AUTHOR_URL":           "author/{slug}.html",
		"AUTHOR_SAVE_AS":       "author/{slug}.html",

		"FEED_DOMAIN":           nil,
		"FEED_ATOM":             nil,
		"FEED_RSS":              nil,
		"FEED_ALL_ATOM":         "feeds/all.atom.xml",
		"FEED_ALL_RSS":          nil,
		"CATEGORY_FEED_ATOM":    "feeds/{slug}.atom.xml",
		"TRANSLATION_FEED_ATOM": "feeds/all-{lang}.atom.xml",

		"GITHUB_USER":           "",
		"GITHUB_SHOW_USER_LINK": false,
		"GITHUB_SKIP_FORK":      false,
		"GITHUB_REPO_COUNT":     0,
		"TWITTER_USER":          "",
		"TWITTER_TWEET_BUTTON":  false,
		"TWITTER_FOLLOW_BUTTON": false,
		"GOOGLE_PLUS_USER":      "",
		"GOOGLE_PLUS_ONE":       false,

		"LINKS":  []any{},
		"SOCIAL": []any{},
	}
}

// withDefaults returns a copy of m with unset keys filled in. Keys the
// record does not know are dropped.
func withDefaults(m settings.Map) settings.Map {
	out := Defaults()
	for k, v := range m {
		if _, known := out[k]; !known {
			log.Logger.Debug().Str("config", k).Msg("unrecognized setting ignored")
			continue
		}
		out[k] = v
	}
	if _, set := m["TIMEZONE"]; !set {
		log.Logger.Warn().Str("config", "TIMEZONE").Msg("no timezone set, falling back to UTC")
	}
	return out
}
