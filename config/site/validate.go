package site

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rjw57/siteconf/config/validate"
)

func (s SiteConfig) Validate(v *validate.ValidationErrors) {
	validate.RequireString(v, "AUTHOR", s.Author)
	validate.RequireString(v, "SITENAME", s.SiteName)
	validate.CheckURL(v, "SITEURL", s.SiteURL, false)
	validate.CheckTimezone(v, "TIMEZONE", s.Timezone)
	validate.CheckLanguage(v, "DEFAULT_LANG", s.DefaultLang)

	if validate.RequireString(v, "THEME", s.Theme) && strings.ContainsAny(s.Theme, `/\`) {
		// bare names refer to themes bundled with the generator
		validate.CheckDir("THEME", s.Theme, false, v)
	}

	validate.RequireIntMin(v, "DEFAULT_PAGINATION", int(s.DefaultPagination), 0)

	seen := map[string]struct{}{}
	for i, p := range s.StaticPaths {
		key := fmt.Sprintf("STATIC_PATHS[%d]", i)
		if !validate.CheckRelativePath(v, key, p) {
			continue
		}
		if _, ok := seen[p]; ok {
			validate.Fail(v, key, p, errors.New("duplicate path"))
		}
		seen[p] = struct{}{}
	}
}
