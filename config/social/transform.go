package social

import "strings"

func (s *SocialConfig) TransformBeforeValidation() error {
	s.GitHubUser = strings.TrimSpace(s.GitHubUser)
	s.TwitterUser = strings.TrimPrefix(strings.TrimSpace(s.TwitterUser), "@")
	s.GooglePlusUser = strings.TrimSpace(s.GooglePlusUser)
	return nil
}

func (s *SocialConfig) TransformAfterValidation() error {
	s.Profiles = nil
	if s.GitHubUser != "" {
		s.Profiles = append(s.Profiles, Profile{Service: "github", User: s.GitHubUser, URL: "https://github.com/" + s.GitHubUser})
	}
	if s.TwitterUser != "" {
		s.Profiles = append(s.Profiles, Profile{Service: "twitter", User: s.TwitterUser, URL: "https://twitter.com/" + s.TwitterUser})
	}
	if s.GooglePlusUser != "" {
		s.Profiles = append(s.Profiles, Profile{Service: "google_plus", User: s.GooglePlusUser, URL: "https://plus.google.com/" + s.GooglePlusUser})
	}
	return nil
}
