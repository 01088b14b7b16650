package social

import "github.com/rs/zerolog"

type SocialConfig struct {
	GitHubUser         string `yaml:"GITHUB_USER"`
	GitHubShowUserLink bool   `yaml:"GITHUB_SHOW_USER_LINK"`
	GitHubSkipFork     bool   `yaml:"GITHUB_SKIP_FORK"`
	GitHubRepoCount    int    `yaml:"GITHUB_REPO_COUNT"`

	TwitterUser         string `yaml:"TWITTER_USER"`
	TwitterTweetButton  bool   `yaml:"TWITTER_TWEET_BUTTON"`
	TwitterFollowButton bool   `yaml:"TWITTER_FOLLOW_BUTTON"`

	GooglePlusUser string `yaml:"GOOGLE_PLUS_USER"`
	GooglePlusOne  bool   `yaml:"GOOGLE_PLUS_ONE"`

	Profiles []Profile `yaml:"-"`
}

type Widget string

const (
	WidgetGitHubRepos     Widget = "github_repos"
	WidgetTweetButton     Widget = "tweet_button"
	WidgetFollowButton    Widget = "twitter_follow"
	WidgetPlusOne         Widget = "google_plus_one"
	WidgetGooglePlusBadge Widget = "google_plus_badge"
)

// Profile is a derived link to the author's account on a service.
type Profile struct {
	Service string
	User    string
	URL     string
}

// Widgets lists the embeds the theme should render.
func (s *SocialConfig) Widgets() []Widget {
	var out []Widget
	if s.GitHubUser != "" && s.GitHubRepoCount > 0 {
		out = append(out, WidgetGitHubRepos)
	}
	if s.TwitterTweetButton {
		out = append(out, WidgetTweetButton)
	}
	if s.TwitterFollowButton {
		out = append(out, WidgetFollowButton)
	}
	if s.GooglePlusOne {
		out = append(out, WidgetPlusOne)
	}
	if s.GooglePlusUser != "" {
		out = append(out, WidgetGooglePlusBadge)
	}
	return out
}

func (s *SocialConfig) MarshalZerologObject(e *zerolog.Event) {
	widgets := s.Widgets()
	names := make([]string, len(widgets))
	for i, w := range widgets {
		names[i] = string(w)
	}
	e.Strs("widgets", names)
	for _, p := range s.Profiles {
		e.Str(p.Service, p.URL)
	}
}
