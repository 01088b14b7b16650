package links

import (
	"testing"

	"github.com/rjw57/siteconf/config/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLinksDecode(t *testing.T) {
	src := `
LINKS:
  - [Pelican, "http://getpelican.com/"]
  - [Python.org, "http://python.org/"]
SOCIAL:
  - ["You can add links in your config file", "#"]
`
	var c LinksConfig
	require.NoError(t, yaml.Unmarshal([]byte(src), &c))
	assert.Equal(t, []Link{
		{Title: "Pelican", URL: "http://getpelican.com/"},
		{Title: "Python.org", URL: "http://python.org/"},
	}, c.Links)
	assert.Equal(t, []Link{{Title: "You can add links in your config file", URL: "#"}}, c.Social)

	var v validate.ValidationErrors
	c.Validate(&v)
	assert.False(t, v.HasErrors(), v.Error())

	out, err := yaml.Marshal(c)
	require.NoError(t, err)
	var back LinksConfig
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, c, back)
}

func TestLinksRejectNonPairs(t *testing.T) {
	for _, src := range []string{
		"LINKS: [[only-title]]",
		"LINKS: [[a, b, c]]",
		"LINKS: [{title: a}]",
	} {
		var c LinksConfig
		assert.Error(t, yaml.Unmarshal([]byte(src), &c), src)
	}
}

func TestLinksValidation(t *testing.T) {
	c := LinksConfig{
		Links: []Link{
			{Title: "", URL: "http://example.com/"},
			{Title: "Empty", URL: " "},
			{Title: "Hostless", URL: "http:///path"},
			{Title: "Mail", URL: "mailto:someone@example.com"},
			{Title: "Relative", URL: "pages/about.html"},
		},
	}
	var v validate.ValidationErrors
	c.Validate(&v)
	assert.Len(t, v.Errors(), 3)
}
