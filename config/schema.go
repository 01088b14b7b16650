package config

import (
	"fmt"
	"sort"

	"github.com/rjw57/siteconf/config/validate"
	"github.com/rjw57/siteconf/settings"
)

type valueKind int

const (
	kindString valueKind = iota
	kindOptString
	kindBool
	kindInt
	kindPagination
	kindStringList
	kindPairs
)

func (k valueKind) String() string {
	switch k {
	case kindString:
		return "a string"
	case kindOptString:
		return "a string or None"
	case kindBool:
		return "True or False"
	case kindInt:
		return "an integer"
	case kindPagination:
		return "False or an integer"
	case kindStringList:
		return "a sequence of strings"
	case kindPairs:
		return "a sequence of (title, url) pairs"
	}
	return "unknown"
}

var schema = map[string]valueKind{
	"AUTHOR":             kindString,
	"SITENAME":           kindString,
	"SITEURL":            kindString,
	"TIMEZONE":           kindString,
	"DEFAULT_LANG":       kindString,
	"THEME":              kindString,
	"RELATIVE_URLS":      kindBool,
	"DEFAULT_PAGINATION": kindPagination,
	"STATIC_PATHS":       kindStringList,

	"ARTICLE_URL":          kindString,
	"ARTICLE_SAVE_AS":      kindString,
	"ARTICLE_LANG_URL":     kindString,
	"ARTICLE_LANG_SAVE_AS": kindString,
	"PAGE_URL":             kindString,
	"PAGE_SAVE_AS":         kindString,
	"CATEGORY_URL":         kindString,
	"CATEGORY_SAVE_AS":     kindString,
	"TAG_URL":              kindString,
	"TAG_SAVE_AS":          kindString,
	"AUTHOR_URL":           kindString,
	"AUTHOR_SAVE_AS":       kindString,

	"FEED_DOMAIN":           kindOptString,
	"FEED_ATOM":             kindOptString,
	"FEED_RSS":              kindOptString,
	"FEED_ALL_ATOM":         kindOptString,
	"FEED_ALL_RSS":          kindOptString,
	"CATEGORY_FEED_ATOM":    kindOptString,
	"TRANSLATION_FEED_ATOM": kindOptString,

	"GITHUB_USER":           kindString,
	"GITHUB_SHOW_USER_LINK": kindBool,
	"GITHUB_SKIP_FORK":      kindBool,
	"GITHUB_REPO_COUNT":     kindInt,
	"TWITTER_USER":          kindString,
	"TWITTER_TWEET_BUTTON":  kindBool,
	"TWITTER_FOLLOW_BUTTON": kindBool,
	"GOOGLE_PLUS_USER":      kindString,
	"GOOGLE_PLUS_ONE":       kindBool,

	"LINKS":  kindPairs,
	"SOCIAL": kindPairs,
}

// Keys returns every setting name the record knows, sorted.
func Keys() []string {
	out := make([]string, 0, len(schema))
	for k := range schema {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// checkTypes reports every value whose type does not match its key.
func checkTypes(m settings.Map) error {
	var verr validate.ValidationErrors
	for _, key := range Keys() {
		value, ok := m[key]
		if !ok {
			continue
		}
		kind := schema[key]
		if !matches(kind, value) {
			validate.Fail(&verr, key, value, fmt.Errorf("must be %s (got %s)", kind, describe(value)))
		}
	}
	return verr.Err()
}

func matches(kind valueKind, value any) bool {
	switch kind {
	case kindString:
		_, ok := value.(string)
		return ok
	case kindOptString:
		_, ok := value.(string)
		return ok || value == nil
	case kindBool:
		_, ok := value.(bool)
		return ok
	case kindInt:
		_, ok := value.(int)
		return ok
	case kindPagination:
		if b, ok := value.(bool); ok {
			return !b
		}
		_, ok := value.(int)
		return ok
	case kindStringList:
		items, ok := value.([]any)
		if !ok {
			return false
		}
		for _, it := range items {
			if _, ok := it.(string); !ok {
				return false
			}
		}
		return true
	case kindPairs:
		items, ok := value.([]any)
		if !ok {
			return false
		}
		for _, it := range items {
			pair, ok := it.([]any)
			if !ok || len(pair) != 2 {
				return false
			}
			if _, ok := pair[0].(string); !ok {
				return false
			}
			if _, ok := pair[1].(string); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return fmt.Sprintf("string %q", x)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return fmt.Sprintf("integer %d", x)
	case float64:
		return fmt.Sprintf("float %v", x)
	case []any:
		return fmt.Sprintf("sequence of %d", len(x))
	case map[string]any:
		return "dict"
	}
	return fmt.Sprintf("%T", v)
}
