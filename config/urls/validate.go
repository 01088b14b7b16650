package urls

import (
	"slices"

	"github.com/rjw57/siteconf/config/validate"
	"github.com/rs/zerolog/log"
)

func (u *URLConfig) Validate(v *validate.ValidationErrors) {
	for _, kind := range Kinds {
		urlKey, saveAsKey := Keys(kind)
		urlText, saveAsText := u.patterns(kind)

		urlPattern, urlErr := Parse(kind, urlText)
		if urlErr != nil {
			validate.Fail(v, urlKey, urlText, urlErr)
		} else {
			validate.LogConfigOK(urlKey, urlText)
		}
		saveAsPattern, saveErr := Parse(kind, saveAsText)
		if saveErr != nil {
			validate.Fail(v, saveAsKey, saveAsText, saveErr)
		} else {
			validate.LogConfigOK(saveAsKey, saveAsText)
		}

		if urlErr == nil && saveErr == nil && saveAsText != "" &&
			!slices.Equal(urlPattern.Placeholders(), saveAsPattern.Placeholders()) {
			log.Logger.Warn().
				Str("config", saveAsKey).
				Strs("url_placeholders", urlPattern.Placeholders()).
				Strs("save_as_placeholders", saveAsPattern.Placeholders()).
				Msg("URL and save-as patterns use different placeholders")
		}
	}
}
