package config

func (c *Config) TransformBeforeValidation() error {
	_ = c.Site.TransformBeforeValidation()
	_ = c.URLs.TransformBeforeValidation()
	_ = c.Feeds.TransformBeforeValidation()
	_ = c.Social.TransformBeforeValidation()
	return nil
}

func (c *Config) TransformAfterValidation() error {
	if err := c.Site.TransformAfterValidation(); err != nil {
		return err
	}
	if err := c.URLs.TransformAfterValidation(); err != nil {
		return err
	}
	_ = c.Feeds.TransformAfterValidation(c.Site.SiteURL)
	_ = c.Social.TransformAfterValidation()
	return nil
}
