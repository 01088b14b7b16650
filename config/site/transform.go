package site

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

func (s *SiteConfig) TransformBeforeValidation() error {
	s.SiteURL = strings.TrimRight(strings.TrimSpace(s.SiteURL), "/")
	s.Theme = strings.TrimSpace(s.Theme)
	return nil
}

func (s *SiteConfig) TransformAfterValidation() error {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return err
	}
	s.Location = loc
	tag, err := language.Parse(s.DefaultLang)
	if err != nil {
		return err
	}
	s.Language = tag
	return nil
}
