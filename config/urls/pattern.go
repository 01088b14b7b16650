package urls

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Kind names the type of content a pattern produces a location for.
type Kind string

const (
	KindArticle     Kind = "article"
	KindArticleLang Kind = "article_lang"
	KindPage        Kind = "page"
	KindCategory    Kind = "category"
	KindTag         Kind = "tag"
	KindAuthor      Kind = "author"
)

var Kinds = []Kind{KindArticle, KindArticleLang, KindPage, KindCategory, KindTag, KindAuthor}

var placeholders = map[Kind][]string{
	KindArticle:     {"slug", "date", "modified", "lang", "category", "author"},
	KindArticleLang: {"slug", "date", "modified", "lang", "category", "author"},
	KindPage:        {"slug", "lang"},
	KindCategory:    {"slug", "name"},
	KindTag:         {"slug", "name"},
	KindAuthor:      {"slug", "name"},
}

// date placeholders accept a strftime layout after a colon
var datePlaceholders = map[string]bool{"date": true, "modified": true}

var ErrMissingValue = errors.New("missing value")

// Placeholders returns the placeholder names recognized for kind.
func Placeholders(kind Kind) []string {
	return placeholders[kind]
}

// Values carries what a pattern can refer to.
type Values struct {
	Slug     string
	Name     string
	Lang     string
	Category string
	Author   string
	Date     time.Time
	Modified time.Time
}

type segment struct {
	literal string
	name    string
	format  string
}

// Pattern is a parsed URL or save-as template such as
// "{date:%Y}/{date:%m}/{slug}/". Literal braces are written "{{" and "}}".
type Pattern struct {
	kind     Kind
	raw      string
	segments []segment
}

func Parse(kind Kind, text string) (Pattern, error) {
	allowed, ok := placeholders[kind]
	if !ok {
		return Pattern{}, fmt.Errorf("unknown pattern kind %q", kind)
	}

	p := Pattern{kind: kind, raw: text}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			p.segments = append(p.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '{' && strings.HasPrefix(text[i:], "{{"):
			lit.WriteByte('{')
			i++
		case c == '}' && strings.HasPrefix(text[i:], "}}"):
			lit.WriteByte('}')
			i++
		case c == '}':
			return Pattern{}, fmt.Errorf("single '}' at offset %d in %q", i, text)
		case c == '{':
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				return Pattern{}, fmt.Errorf("unterminated placeholder at offset %d in %q", i, text)
			}
			field := text[i+1 : i+end]
			name, format, hasFormat := strings.Cut(field, ":")
			switch {
			case name == "":
				return Pattern{}, fmt.Errorf("empty placeholder at offset %d in %q", i, text)
			case !contains(allowed, name):
				return Pattern{}, fmt.Errorf("unknown placeholder {%s} in %q (allowed: %s)", name, text, strings.Join(allowed, ", "))
			case hasFormat && !datePlaceholders[name]:
				return Pattern{}, fmt.Errorf("placeholder {%s} does not take a format in %q", name, text)
			case hasFormat && format == "":
				return Pattern{}, fmt.Errorf("empty format for {%s} in %q", name, text)
			}
			flush()
			p.segments = append(p.segments, segment{name: name, format: format})
			i += end
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return p, nil
}

func MustParse(kind Kind, text string) Pattern {
	p, err := Parse(kind, text)
	if err != nil {
		panic(err)
	}
	return p
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (p Pattern) Kind() Kind { return p.kind }

func (p Pattern) String() string { return p.raw }

// Placeholders returns the distinct placeholder names used, sorted.
func (p Pattern) Placeholders() []string {
	set := map[string]struct{}{}
	for _, s := range p.segments {
		if s.name != "" {
			set[s.name] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Render substitutes v into the pattern. A placeholder whose value is
// empty is an error; Modified falls back to Date.
func (p Pattern) Render(v Values) (string, error) {
	var sb strings.Builder
	for _, s := range p.segments {
		if s.name == "" {
			sb.WriteString(s.literal)
			continue
		}
		val, err := s.value(v)
		if err != nil {
			return "", fmt.Errorf("%s pattern %q: %w", p.kind, p.raw, err)
		}
		sb.WriteString(val)
	}
	return sb.String(), nil
}

func (s segment) value(v Values) (string, error) {
	var str string
	switch s.name {
	case "slug":
		str = v.Slug
	case "name":
		str = v.Name
	case "lang":
		str = v.Lang
	case "category":
		str = v.Category
	case "author":
		str = v.Author
	case "date", "modified":
		t := v.Date
		if s.name == "modified" && !v.Modified.IsZero() {
			t = v.Modified
		}
		if t.IsZero() {
			return "", fmt.Errorf("{%s}: %w", s.name, ErrMissingValue)
		}
		if s.format == "" {
			return t.Format("2006-01-02 15:04:05"), nil
		}
		return strftime.Format(s.format, t), nil
	}
	if str == "" {
		return "", fmt.Errorf("{%s}: %w", s.name, ErrMissingValue)
	}
	return str, nil
}
