package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rjw57/siteconf/settings"
	"github.com/rs/zerolog/log"
)

const (
	DevelopmentFile = "pelicanconf.py"
	PublishFile     = "publishconf.py"
)

// LoadProfile loads the record for env. Development uses devPath alone.
// Production overlays publishPath on devPath when the publish file exists,
// so it only needs the settings that differ.
func LoadProfile(env Environment, devPath, publishPath string) (*Config, error) {
	m, sources, err := ReadMap(devPath)
	if err != nil {
		return nil, err
	}

	if env == EnvProduction && publishPath != "" {
		overlay, more, err := ReadMap(publishPath)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !exists(publishPath):
			log.Logger.Warn().Str("file", publishPath).Msg("publish settings missing, using development settings")
		case err != nil:
			return nil, err
		default:
			m = merge(m, overlay)
			sources = appendUnique(sources, more...)
		}
	}

	cfg, err := build(m)
	if err != nil {
		return nil, fmt.Errorf("%s profile: %w", env, err)
	}
	cfg.Env = env
	cfg.Sources = sources
	log.Logger.Info().Str("env", string(env)).Strs("files", sources).Msg("Configuration profile loaded")
	return cfg, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func merge(base, overlay settings.Map) settings.Map {
	out := make(settings.Map, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

func appendUnique(list []string, items ...string) []string {
	for _, it := range items {
		dup := false
		for _, l := range list {
			if l == it {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, it)
		}
	}
	return list
}
