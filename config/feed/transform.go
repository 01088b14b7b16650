package feed

import "strings"

func (f *FeedConfig) TransformBeforeValidation() error {
	if f.Domain != nil {
		d := strings.TrimRight(strings.TrimSpace(*f.Domain), "/")
		f.Domain = &d
	}
	return nil
}

// TransformAfterValidation resolves the feed domain, which defaults to
// the site URL.
func (f *FeedConfig) TransformAfterValidation(siteURL string) error {
	if set(f.Domain) {
		f.ResolvedDomain = *f.Domain
	} else {
		f.ResolvedDomain = siteURL
	}
	return nil
}
