package config

import (
	"strings"

	"github.com/rjw57/siteconf/config/urls"
)

// Base returns the prefix links on the page saved as fromSaveAs start
// with: a relative path back to the output root when RELATIVE_URLS is
// set, SITEURL otherwise.
func (c *Config) Base(fromSaveAs string) string {
	if c.Site.RelativeURLs {
		return urls.RelativeRoot(fromSaveAs)
	}
	return c.Site.SiteURL
}

// Link returns the href for targetURL on the page saved as fromSaveAs.
func (c *Config) Link(fromSaveAs, targetURL string) string {
	return c.Base(fromSaveAs) + "/" + strings.TrimPrefix(targetURL, "/")
}
