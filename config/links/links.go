package links

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rjw57/siteconf/config/validate"
	"gopkg.in/yaml.v3"
)

// LinksConfig holds the blogroll and the social link list, both ordered
// (title, url) pairs.
type LinksConfig struct {
	Links  []Link `yaml:"LINKS"`
	Social []Link `yaml:"SOCIAL"`
}

type Link struct {
	Title string
	URL   string
}

func (l *Link) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: link must be a (title, url) pair", value.Line)
	}
	if err := value.Content[0].Decode(&l.Title); err != nil {
		return err
	}
	return value.Content[1].Decode(&l.URL)
}

func (l Link) MarshalYAML() (any, error) {
	return []string{l.Title, l.URL}, nil
}

func (c LinksConfig) Validate(v *validate.ValidationErrors) {
	validateList(v, "LINKS", c.Links)
	validateList(v, "SOCIAL", c.Social)
}

func validateList(v *validate.ValidationErrors, key string, list []Link) {
	for i, l := range list {
		itemKey := fmt.Sprintf("%s[%d]", key, i)
		validate.RequireString(v, itemKey+"/title", l.Title)
		checkTarget(v, itemKey+"/url", l.URL)
	}
}

// checkTarget accepts "#", site-relative paths and absolute URLs.
func checkTarget(v *validate.ValidationErrors, key, target string) {
	target = strings.TrimSpace(target)
	if target == "" {
		validate.Fail(v, key, target, errors.New("must not be empty"))
		return
	}
	u, err := url.Parse(target)
	if err != nil {
		validate.Fail(v, key, target, err)
		return
	}
	if u.Scheme != "" && u.Host == "" && u.Scheme != "mailto" {
		validate.Fail(v, key, target, errors.New("absolute URL without host"))
		return
	}
	validate.LogConfigOK(key, target)
}
