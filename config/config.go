package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rjw57/siteconf/config/feed"
	"github.com/rjw57/siteconf/config/links"
	"github.com/rjw57/siteconf/config/site"
	"github.com/rjw57/siteconf/config/social"
	"github.com/rjw57/siteconf/config/urls"
	"github.com/rjw57/siteconf/settings"
	"github.com/rjw57/siteconf/utils"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	ENV_PREFIX = "SITECONF"
)

var (
	ConfigPathEnv = ENV_PREFIX + "_CONFIG"

	ErrUnknownFormat = errors.New("unknown settings file format")
)

// Config is the site configuration record. It is read once and must not
// be modified afterwards; derived fields are filled in by Load.
type Config struct {
	Env     Environment `yaml:"-"`
	Sources []string    `yaml:"-"`

	Site   site.SiteConfig     `yaml:",inline"`
	URLs   urls.URLConfig      `yaml:",inline"`
	Feeds  feed.FeedConfig     `yaml:",inline"`
	Social social.SocialConfig `yaml:",inline"`
	Links  links.LinksConfig   `yaml:",inline"`
}

// Load reads a settings file. Files ending in .py use the generator's
// assignment syntax, .yaml and .yml files hold the same keys as YAML.
func Load(path string) (*Config, error) {
	log.Logger.Debug().Str("file", path).Msg("Configuration loading start")

	m, sources, err := ReadMap(path)
	if err != nil {
		return nil, err
	}
	cfg, err := build(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Sources = sources

	log.Logger.Info().Str("file", path).Msg("Configuration loaded")
	return cfg, nil
}

// LoadMap builds a record from already parsed settings.
func LoadMap(m settings.Map) (*Config, error) {
	return build(m)
}

// ReadMap reads the raw key/value mapping of a settings file without
// defaults or validation. It also returns every file that contributed.
func ReadMap(path string) (settings.Map, []string, error) {
	switch utils.NormalizeExt(filepath.Ext(path)) {
	case "py":
		f, err := settings.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		return f.Values, f.Sources(), nil
	case "yaml", "yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		m := settings.Map{}
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, err
		}
		return m, []string{abs}, nil
	}
	return nil, nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

func build(m settings.Map) (*Config, error) {
	env, err := LoadEnvironment()
	if err != nil {
		return nil, err
	}

	m = withDefaults(m)
	if err := checkTypes(m); err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := node.Encode(map[string]any(m)); err != nil {
		return nil, err
	}
	var cfg Config
	if err := node.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.Env = env

	if err := cfg.TransformBeforeValidation(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.TransformAfterValidation(); err != nil {
		return nil, err
	}
	writeOutInfo(&cfg)
	return &cfg, nil
}

// Map flattens the record back to its key/value form. Loading the result
// gives an equal record.
func (c *Config) Map() (settings.Map, error) {
	var node yaml.Node
	if err := node.Encode(c); err != nil {
		return nil, err
	}
	m := settings.Map{}
	if err := node.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
