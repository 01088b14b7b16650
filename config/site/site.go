package site

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type SiteConfig struct {
	Author            string     `yaml:"AUTHOR"`
	SiteName          string     `yaml:"SITENAME"`
	SiteURL           string     `yaml:"SITEURL"`
	Timezone          string     `yaml:"TIMEZONE"`
	DefaultLang       string     `yaml:"DEFAULT_LANG"`
	Theme             string     `yaml:"THEME"`
	RelativeURLs      bool       `yaml:"RELATIVE_URLS"`
	DefaultPagination Pagination `yaml:"DEFAULT_PAGINATION"`
	StaticPaths       []string   `yaml:"STATIC_PATHS"`

	Location *time.Location `yaml:"-"`
	Language language.Tag   `yaml:"-"`
}

// Pagination is the number of items per index page; zero means
// pagination is off and is written as False.
type Pagination int

func (p *Pagination) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("DEFAULT_PAGINATION must be False or an integer")
	}
	var b bool
	if err := value.Decode(&b); err == nil {
		if b {
			return fmt.Errorf("DEFAULT_PAGINATION must be False or an integer (got True)")
		}
		*p = 0
		return nil
	}
	var n int
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("DEFAULT_PAGINATION must be False or an integer (got %q)", value.Value)
	}
	*p = Pagination(n)
	return nil
}

func (p Pagination) MarshalYAML() (any, error) {
	if p == 0 {
		return false, nil
	}
	return int(p), nil
}

func (p Pagination) Enabled() bool {
	return p > 0
}
