package social

import (
	"errors"
	"regexp"

	"github.com/rjw57/siteconf/config/validate"
)

var (
	githubUserRe  = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)
	twitterUserRe = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)
	plusUserRe    = regexp.MustCompile(`^[0-9]{1,21}$`)
)

func (s SocialConfig) Validate(v *validate.ValidationErrors) {
	if s.GitHubUser != "" {
		checkPattern(v, "GITHUB_USER", s.GitHubUser, githubUserRe, "must be a GitHub user name")
	}
	validate.RequireIntMin(v, "GITHUB_REPO_COUNT", s.GitHubRepoCount, 0)
	requireUser(v, "GITHUB_SHOW_USER_LINK", s.GitHubShowUserLink, "GITHUB_USER", s.GitHubUser)
	requireUser(v, "GITHUB_SKIP_FORK", s.GitHubSkipFork, "GITHUB_USER", s.GitHubUser)

	if s.TwitterUser != "" {
		checkPattern(v, "TWITTER_USER", s.TwitterUser, twitterUserRe, "must be a Twitter handle")
	}
	requireUser(v, "TWITTER_TWEET_BUTTON", s.TwitterTweetButton, "TWITTER_USER", s.TwitterUser)
	requireUser(v, "TWITTER_FOLLOW_BUTTON", s.TwitterFollowButton, "TWITTER_USER", s.TwitterUser)

	if s.GooglePlusUser != "" {
		checkPattern(v, "GOOGLE_PLUS_USER", s.GooglePlusUser, plusUserRe, "must be a numeric Google+ id")
	}
	// the +1 button works without a profile
	validate.LogConfigOK("GOOGLE_PLUS_ONE", s.GooglePlusOne)
}

func checkPattern(v *validate.ValidationErrors, key, value string, re *regexp.Regexp, msg string) {
	if !re.MatchString(value) {
		validate.Fail(v, key, value, errors.New(msg))
		return
	}
	validate.LogConfigOK(key, value)
}

func requireUser(v *validate.ValidationErrors, key string, enabled bool, userKey, user string) {
	if enabled && user == "" {
		validate.Fail(v, key, enabled, errors.New(userKey+" must be set"))
		return
	}
	validate.LogConfigOK(key, enabled)
}
