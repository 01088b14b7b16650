package validate

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Standardized error message helpers

func ErrRequired(field string) error {
	return fmt.Errorf("%s is required", field)
}

func ErrMin(field string, min any, value any) error {
	return fmt.Errorf("%s must be at least %v (got %v)", field, min, value)
}

func RequireString(v *ValidationErrors, key string, value string) bool {
	if strings.TrimSpace(value) == "" {
		err := ErrRequired(key)
		LogConfigError(key, value, err)
		v.Add(err)
		return false
	}
	LogConfigOK(key, value)
	return true
}

func RequireIntMin(v *ValidationErrors, key string, value int, min int) bool {
	if value < min {
		err := ErrMin(key, min, value)
		LogConfigError(key, value, err)
		v.Add(err)
		return false
	}
	LogConfigOK(key, value)
	return true
}

// Fail records err for key.
func Fail(v *ValidationErrors, key string, value any, err error) {
	LogConfigError(key, value, err)
	v.Add(fmt.Errorf("%s: %w", key, err))
}

type ValidationErrors struct {
	errors []error
}

func (v *ValidationErrors) Add(err error) {
	if err != nil {
		v.errors = append(v.errors, err)
	}
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *ValidationErrors) Errors() []error {
	return v.errors
}

func (v *ValidationErrors) Unwrap() []error {
	return v.errors
}

func (v *ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range v.errors {
		sb.WriteString(" - ")
		sb.WriteString(err.Error())
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Err returns v as an error, or nil when nothing was recorded.
func (v *ValidationErrors) Err() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

func LogConfigOK(key string, value any) {
	log.Logger.Debug().
		Str("config", key).
		Interface("value", value).
		Msg("config set")
}

func LogConfigError(key string, value any, err error) {
	log.Logger.Error().
		Str("config", key).
		Interface("value", value).
		Err(err).
		Msg("invalid config value")
}

func CheckDir(key string, dir string, required bool, v *ValidationErrors) {
	if dir == "" {
		if required {
			Fail(v, key, dir, errors.New("directory must be set"))
		} else {
			log.Info().Str("config", key).Msg("directory not set (optional)")
		}
		return
	}

	info, err := os.Stat(dir)
	if err != nil {
		if required {
			Fail(v, key, dir, err)
		} else {
			log.Warn().Str("config", key).Str("value", dir).Err(err).Msg("optional directory does not exist")
		}
		return
	}

	if !info.IsDir() {
		err := errors.New("not a directory")
		if required {
			Fail(v, key, dir, err)
		} else {
			log.Warn().
				Str("config", key).
				Str("value", dir).
				Msg("optional path exists but is not a directory")
		}
		return
	}

	LogConfigOK(key, dir)
}

// CheckTimezone loads an IANA zone name.
func CheckTimezone(v *ValidationErrors, key string, zone string) (*time.Location, bool) {
	if !RequireString(v, key, zone) {
		return nil, false
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		Fail(v, key, zone, err)
		return nil, false
	}
	LogConfigOK(key, loc.String())
	return loc, true
}

// CheckLanguage parses a BCP 47 language tag.
func CheckLanguage(v *ValidationErrors, key string, lang string) (language.Tag, bool) {
	if !RequireString(v, key, lang) {
		return language.Und, false
	}
	tag, err := language.Parse(lang)
	if err != nil {
		Fail(v, key, lang, err)
		return language.Und, false
	}
	LogConfigOK(key, tag.String())
	return tag, true
}

// CheckURL requires an absolute http or https URL. Empty values pass
// unless required is set.
func CheckURL(v *ValidationErrors, key string, raw string, required bool) bool {
	if raw == "" {
		if required {
			Fail(v, key, raw, errors.New("must be set"))
			return false
		}
		LogConfigOK(key, raw)
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		Fail(v, key, raw, err)
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		Fail(v, key, raw, errors.New("must be an absolute http or https URL"))
		return false
	}
	if u.Host == "" {
		Fail(v, key, raw, errors.New("host is missing"))
		return false
	}
	LogConfigOK(key, raw)
	return true
}

// CheckRelativePath requires a slash-separated path below the output or
// content root: not absolute, no "..", no scheme.
func CheckRelativePath(v *ValidationErrors, key string, p string) bool {
	switch {
	case strings.TrimSpace(p) == "":
		Fail(v, key, p, errors.New("path must not be empty"))
		return false
	case strings.HasPrefix(p, "/"):
		Fail(v, key, p, errors.New("path must be relative"))
		return false
	case strings.Contains(p, "://"):
		Fail(v, key, p, errors.New("path must not be a URL"))
		return false
	}
	for _, part := range strings.Split(path.Clean(p), "/") {
		if part == ".." {
			Fail(v, key, p, errors.New("path must not leave its root"))
			return false
		}
	}
	LogConfigOK(key, p)
	return true
}
