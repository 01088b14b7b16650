package config

import (
	"github.com/rjw57/siteconf/logging"
	"github.com/rs/zerolog/log"
)

func writeOutInfo(c *Config) {
	e := log.Logger.Info().
		Str("site", c.Site.SiteName).
		Str("env", string(c.Env)).
		Str("timezone", c.Site.Location.String()).
		Str("lang", c.Site.Language.String()).
		Bool("relative_urls", c.Site.RelativeURLs)
	logging.StrIf(e, "feed_domain", nonEmpty(c.Feeds.ResolvedDomain))
	logging.StrIf(e, "feed_atom", nonEmpty(c.Feeds.AtomURL()))
	logging.IntIf(e, "pagination", pagination(c))
	e.Msg("Site configured")

	for _, f := range c.Feeds.Enabled() {
		log.Logger.Debug().
			Str("feed", f.Key).
			Str("path", f.Path).
			Msg("Feed enabled")
	}
	s := log.Logger.Info().Object("social", &c.Social)
	logging.BoolIf(s, "github_skip_fork", githubOption(c, c.Social.GitHubSkipFork))
	logging.BoolIf(s, "github_show_user_link", githubOption(c, c.Social.GitHubShowUserLink))
	s.Msg("Social widgets")
}

func pagination(c *Config) *int {
	if !c.Site.DefaultPagination.Enabled() {
		return nil
	}
	n := int(c.Site.DefaultPagination)
	return &n
}

// githubOption hides GitHub toggles that have no effect without a user.
func githubOption(c *Config, b bool) *bool {
	if c.Social.GitHubUser == "" {
		return nil
	}
	return &b
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
