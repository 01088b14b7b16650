package config

import (
	"github.com/rjw57/siteconf/config/validate"
)

func (c *Config) Validate() error {
	var verr validate.ValidationErrors

	c.Site.Validate(&verr)
	c.URLs.Validate(&verr)
	c.Feeds.Validate(&verr, c.Site.SiteURL)
	c.Social.Validate(&verr)
	c.Links.Validate(&verr)

	if verr.HasErrors() {
		return &verr
	}
	return nil
}
