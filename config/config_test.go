package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rjw57/siteconf/config/urls"
	"github.com/rjw57/siteconf/config/validate"
	"github.com/rjw57/siteconf/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, ENV_PREFIX+"_") {
			k, _, _ := strings.Cut(e, "=")
			if err := os.Unsetenv(k); err != nil {
				panic("failed to unset env: " + err.Error())
			}
		}
	}
	os.Exit(m.Run())
}

const development = `#!/usr/bin/env python
# -*- coding: utf-8 -*- #
from __future__ import unicode_literals

AUTHOR = u'Rich Wareham'
SITENAME = u'Scattered Tech'
SITEURL = ''

TIMEZONE = 'Europe/Paris'

DEFAULT_LANG = u'en'

# Feed generation is usually not desired when developing
FEED_ALL_ATOM = None
CATEGORY_FEED_ATOM = None
TRANSLATION_FEED_ATOM = None

FEED_DOMAIN = 'http://rjw57.github.io/blog/feeds'
FEED_ATOM = 'all.atom.xml'

ARTICLE_URL = '{date:%Y}/{date:%m}/{date:%d}/{slug}/'
ARTICLE_SAVE_AS = '{date:%Y}/{date:%m}/{date:%d}/{slug}/'
STATIC_PATHS = ['images', 'extra']

THEME = 'themes/octopress'

DEFAULT_PAGINATION = False

RELATIVE_URLS = True

GITHUB_USER = 'rjw57'
GITHUB_SHOW_USER_LINK = True
GITHUB_SKIP_FORK = True
GITHUB_REPO_COUNT = 3

TWITTER_USER = 'richwareham'
TWITTER_TWEET_BUTTON = True

GOOGLE_PLUS_USER = '114005052144439249039'

GOOGLE_PLUS_ONE = True
TWITTER_FOLLOW_BUTTON = True
`

const publish = `import os
import sys
sys.path.append(os.curdir)
from pelicanconf import *

SITEURL = 'http://rjw57.github.io/blog'
RELATIVE_URLS = False

FEED_ALL_ATOM = 'feeds/all.atom.xml'
CATEGORY_FEED_ATOM = 'feeds/%s.atom.xml'
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDevelopmentSettings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pelicanconf.py", development)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "Rich Wareham", cfg.Site.Author)
	assert.Equal(t, "Scattered Tech", cfg.Site.SiteName)
	assert.Equal(t, "Europe/Paris", cfg.Site.Location.String())
	assert.Equal(t, "en", cfg.Site.Language.String())
	assert.True(t, cfg.Site.RelativeURLs)
	assert.False(t, cfg.Site.DefaultPagination.Enabled())
	assert.Equal(t, []string{"images", "extra"}, cfg.Site.StaticPaths)

	assert.Nil(t, cfg.Feeds.AllAtom)
	assert.Nil(t, cfg.Feeds.CategoryAtom)
	assert.Equal(t, "http://rjw57.github.io/blog/feeds/all.atom.xml", cfg.Feeds.AtomURL())

	assert.Equal(t, 3, cfg.Social.GitHubRepoCount)
	assert.True(t, cfg.Social.TwitterFollowButton)
	assert.Len(t, cfg.Social.Profiles, 3)

	// defaults fill what the file leaves out
	assert.Equal(t, "pages/{slug}.html", cfg.URLs.PageURL)
	assert.Empty(t, cfg.Links.Links)

	assert.Len(t, cfg.Sources, 1)
}

func TestLoadIsIdempotent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pelicanconf.py", development)

	a, err := Load(path)
	require.NoError(t, err)
	b, err := Load(path)
	require.NoError(t, err)

	ma, err := a.Map()
	require.NoError(t, err)
	mb, err := b.Map()
	require.NoError(t, err)
	if diff := cmp.Diff(ma, mb); diff != "" {
		t.Fatalf("reload changed the record (-first +second):\n%s", diff)
	}
	assert.Equal(t, a.Site.Location.String(), b.Site.Location.String())
	assert.Equal(t, a.Site.Language, b.Site.Language)
}

func TestLoadYAMLMatchesNative(t *testing.T) {
	dir := t.TempDir()
	native, err := Load(writeFile(t, dir, "pelicanconf.py", development))
	require.NoError(t, err)

	yamlSrc := `
AUTHOR: Rich Wareham
SITENAME: Scattered Tech
SITEURL: ""
TIMEZONE: Europe/Paris
DEFAULT_LANG: en
FEED_ALL_ATOM: null
CATEGORY_FEED_ATOM: null
TRANSLATION_FEED_ATOM: ~
FEED_DOMAIN: http://rjw57.github.io/blog/feeds
FEED_ATOM: all.atom.xml
ARTICLE_URL: "{date:%Y}/{date:%m}/{date:%d}/{slug}/"
ARTICLE_SAVE_AS: "{date:%Y}/{date:%m}/{date:%d}/{slug}/"
STATIC_PATHS: [images, extra]
THEME: themes/octopress
DEFAULT_PAGINATION: false
RELATIVE_URLS: true
GITHUB_USER: rjw57
GITHUB_SHOW_USER_LINK: true
GITHUB_SKIP_FORK: true
GITHUB_REPO_COUNT: 3
TWITTER_USER: richwareham
TWITTER_TWEET_BUTTON: true
GOOGLE_PLUS_USER: "114005052144439249039"
GOOGLE_PLUS_ONE: true
TWITTER_FOLLOW_BUTTON: true
`
	fromYAML, err := Load(writeFile(t, dir, "site.yaml", yamlSrc))
	require.NoError(t, err)

	a, err := native.Map()
	require.NoError(t, err)
	b, err := fromYAML.Map()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(a, b))
}

func TestLoadUnknownFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "site.toml", "")
	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pelicanconf.py", "AUTHOR = 'a'\nPLUGINS = ['sitemap']\nTIMEZONE = 'UTC'\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	m, err := cfg.Map()
	require.NoError(t, err)
	_, ok := m["PLUGINS"]
	assert.False(t, ok)
}

func TestLoadTypeErrorsNameTheKey(t *testing.T) {
	src := `AUTHOR = 'a'
RELATIVE_URLS = 'yes'
GITHUB_REPO_COUNT = '3'
DEFAULT_PAGINATION = True
LINKS = (('only-title',),)
STATIC_PATHS = 'images'
FEED_ATOM = False
`
	_, err := LoadMap(mustParse(t, src))
	require.Error(t, err)

	var verr *validate.ValidationErrors
	require.ErrorAs(t, err, &verr)
	msg := err.Error()
	for _, key := range []string{"RELATIVE_URLS", "GITHUB_REPO_COUNT", "DEFAULT_PAGINATION", "LINKS", "STATIC_PATHS", "FEED_ATOM"} {
		assert.Contains(t, msg, key)
	}
	assert.Len(t, verr.Errors(), 6)
}

func TestLoadValidationCollectsAllErrors(t *testing.T) {
	src := `SITENAME = ''
TIMEZONE = 'Mars/Olympus'
DEFAULT_LANG = 'not a language'
SITEURL = 'example.com'
ARTICLE_URL = '{title}/'
STATIC_PATHS = ['../outside']
TWITTER_FOLLOW_BUTTON = True
`
	_, err := LoadMap(mustParse(t, src))
	require.Error(t, err)
	var verr *validate.ValidationErrors
	require.ErrorAs(t, err, &verr)

	msg := err.Error()
	for _, key := range []string{"AUTHOR", "SITENAME", "TIMEZONE", "DEFAULT_LANG", "SITEURL", "ARTICLE_URL", "STATIC_PATHS[0]", "TWITTER_FOLLOW_BUTTON"} {
		assert.Contains(t, msg, key)
	}
}

func TestPaginationValue(t *testing.T) {
	cfg, err := LoadMap(settings.Map{"AUTHOR": "a", "TIMEZONE": "UTC", "DEFAULT_PAGINATION": 10})
	require.NoError(t, err)
	assert.True(t, cfg.Site.DefaultPagination.Enabled())

	m, err := cfg.Map()
	require.NoError(t, err)
	assert.Equal(t, 10, m["DEFAULT_PAGINATION"])

	_, err = LoadMap(settings.Map{"AUTHOR": "a", "TIMEZONE": "UTC", "DEFAULT_PAGINATION": -1})
	assert.Error(t, err)
}

func TestDefaultsCoverSchema(t *testing.T) {
	defaults := Defaults()
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, Keys(), keys)
	assert.NoError(t, checkTypes(defaults))
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	devPath := writeFile(t, dir, DevelopmentFile, development)
	pubPath := writeFile(t, dir, PublishFile, publish)

	dev, err := LoadProfile(EnvDevelopment, devPath, pubPath)
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, dev.Env)
	assert.True(t, dev.Site.RelativeURLs)
	assert.Nil(t, dev.Feeds.AllAtom)

	prod, err := LoadProfile(EnvProduction, devPath, pubPath)
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, prod.Env)
	assert.False(t, prod.Site.RelativeURLs)
	assert.Equal(t, "http://rjw57.github.io/blog", prod.Site.SiteURL)
	assert.Equal(t, "feeds/go.atom.xml", prod.Feeds.CategoryFeed("go"))
	assert.Equal(t, "Scattered Tech", prod.Site.SiteName, "inherited from development")
	assert.ElementsMatch(t, []string{devPath, pubPath}, prod.Sources)
}

func TestLoadProfileWithoutPublishFile(t *testing.T) {
	dir := t.TempDir()
	devPath := writeFile(t, dir, DevelopmentFile, development)

	cfg, err := LoadProfile(EnvProduction, devPath, filepath.Join(dir, PublishFile))
	require.NoError(t, err)
	assert.True(t, cfg.Site.RelativeURLs)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv(EnvironmentEnv, "development")
	env, err := LoadEnvironment()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, env)

	t.Setenv(EnvironmentEnv, "staging")
	_, err = LoadEnvironment()
	assert.Error(t, err)

	_, err = LoadMap(settings.Map{"AUTHOR": "a"})
	assert.Error(t, err, "an invalid environment fails loading")
}

func TestLink(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pelicanconf.py", development)
	cfg, err := Load(path)
	require.NoError(t, err)

	url, saveAs, err := cfg.URLs.Resolve(urls.KindArticle, urls.Values{Slug: "hello", Date: mustDate(t, "2013-07-21")})
	require.NoError(t, err)
	assert.Equal(t, "2013/07/21/hello/index.html", saveAs)
	assert.Equal(t, "../../../../2013/07/21/hello/", cfg.Link(saveAs, url))
	assert.Equal(t, "./pages/about.html", cfg.Link("index.html", "pages/about.html"))

	abs, err := LoadMap(settings.Map{"AUTHOR": "a", "TIMEZONE": "UTC", "SITEURL": "https://example.org/blog/"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/blog/pages/about.html", abs.Link("2013/07/21/hello/index.html", "/pages/about.html"))
}

func TestGlobal(t *testing.T) {
	cfg, err := LoadMap(settings.Map{"AUTHOR": "a", "TIMEZONE": "UTC"})
	require.NoError(t, err)
	other, err := LoadMap(settings.Map{"AUTHOR": "b", "TIMEZONE": "UTC"})
	require.NoError(t, err)

	assert.True(t, SetGlobal(cfg))
	assert.False(t, SetGlobal(other))
	assert.Same(t, cfg, Global())
}

func mustParse(t *testing.T, src string) settings.Map {
	t.Helper()
	m, err := settings.Parse("test.py", []byte(src))
	require.NoError(t, err)
	return m
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
