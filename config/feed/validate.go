package feed

import (
	"errors"
	"strings"

	"github.com/rjw57/siteconf/config/validate"
)

func (f *FeedConfig) Validate(v *validate.ValidationErrors, siteURL string) {
	if set(f.Domain) {
		validate.CheckURL(v, "FEED_DOMAIN", *f.Domain, false)
	}

	for _, e := range f.entries() {
		if !set(e.val) {
			validate.LogConfigOK(e.key, nil)
			continue
		}
		validate.CheckRelativePath(v, e.key, *e.val)
	}

	if set(f.CategoryAtom) && !strings.Contains(*f.CategoryAtom, "{slug}") && !strings.Contains(*f.CategoryAtom, "%s") {
		validate.Fail(v, "CATEGORY_FEED_ATOM", *f.CategoryAtom, errors.New("must contain {slug} or %s"))
	}
	if set(f.TranslationAtom) && !strings.Contains(*f.TranslationAtom, "{lang}") && !strings.Contains(*f.TranslationAtom, "%s") {
		validate.Fail(v, "TRANSLATION_FEED_ATOM", *f.TranslationAtom, errors.New("must contain {lang} or %s"))
	}

	if (set(f.Atom) || set(f.RSS)) && !set(f.Domain) && siteURL == "" {
		validate.Fail(v, "FEED_DOMAIN", nil, errors.New("FEED_DOMAIN or SITEURL is required when FEED_ATOM or FEED_RSS is set"))
	}
}
