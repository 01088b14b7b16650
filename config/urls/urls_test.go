package urls

import (
	"errors"
	"testing"
	"time"

	"github.com/rjw57/siteconf/config/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var published = time.Date(2013, time.July, 21, 9, 30, 0, 0, time.UTC)

func TestParseRecognizedPlaceholders(t *testing.T) {
	tests := []struct {
		kind Kind
		text string
		want []string
	}{
		{KindArticle, "{date:%Y}/{date:%m}/{date:%d}/{slug}/", []string{"date", "slug"}},
		{KindArticle, "{slug}.html", []string{"slug"}},
		{KindArticle, "{category}/{author}/{lang}/{modified:%Y}", []string{"author", "category", "lang", "modified"}},
		{KindPage, "pages/{slug}.html", []string{"slug"}},
		{KindTag, "tag/{name}/", []string{"name"}},
		{KindAuthor, "", []string{}},
		{KindCategory, "literal{{braces}}/{slug}", []string{"slug"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p, err := Parse(tt.kind, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Placeholders())
			assert.Equal(t, tt.text, p.String())
			assert.Equal(t, tt.kind, p.Kind())
		})
	}
}

func TestParseRejectsUnknownPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		text string
	}{
		{"unknown name", KindArticle, "{title}/"},
		{"page has no date", KindPage, "{date:%Y}/{slug}"},
		{"format on slug", KindArticle, "{slug:%Y}"},
		{"empty format", KindArticle, "{date:}/{slug}"},
		{"empty name", KindArticle, "{}/{slug}"},
		{"unterminated", KindArticle, "{slug"},
		{"stray close", KindArticle, "slug}"},
		{"unknown kind", Kind("feed"), "{slug}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.kind, tt.text)
			assert.Error(t, err)
		})
	}
}

func TestRender(t *testing.T) {
	p := MustParse(KindArticle, "{date:%Y}/{date:%m}/{date:%d}/{slug}/")
	got, err := p.Render(Values{Slug: "hello-world", Date: published})
	require.NoError(t, err)
	assert.Equal(t, "2013/07/21/hello-world/", got)

	p = MustParse(KindArticle, "{date:%b}-{date}-{modified:%Y}")
	got, err = p.Render(Values{Slug: "x", Date: published})
	require.NoError(t, err)
	assert.Equal(t, "Jul-2013-07-21 09:30:00-2013", got, "modified falls back to date")

	p = MustParse(KindArticle, "{modified:%Y}")
	got, err = p.Render(Values{Date: published, Modified: published.AddDate(1, 0, 0)})
	require.NoError(t, err)
	assert.Equal(t, "2014", got)

	p = MustParse(KindCategory, "{{{slug}}}")
	got, err = p.Render(Values{Slug: "go"})
	require.NoError(t, err)
	assert.Equal(t, "{go}", got)
}

func TestRenderMissingValue(t *testing.T) {
	_, err := MustParse(KindArticle, "{date:%Y}/{slug}").Render(Values{Slug: "s"})
	assert.True(t, errors.Is(err, ErrMissingValue))

	_, err = MustParse(KindArticle, "{slug}").Render(Values{Date: published})
	assert.True(t, errors.Is(err, ErrMissingValue))
}

func routes(t *testing.T, article, articleSaveAs string) *URLConfig {
	t.Helper()
	u := &URLConfig{
		ArticleURL: article, ArticleSaveAs: articleSaveAs,
		ArticleLangURL: "{slug}-{lang}.html", ArticleLangSaveAs: "{slug}-{lang}.html",
		PageURL: "pages/{slug}.html", PageSaveAs: "pages/{slug}.html",
		CategoryURL: "category/{slug}.html", CategorySaveAs: "category/{slug}.html",
		TagURL: "tag/{slug}.html", TagSaveAs: "tag/{slug}.html",
		AuthorURL: "author/{slug}.html", AuthorSaveAs: "",
	}
	require.NoError(t, u.TransformBeforeValidation())
	var v validate.ValidationErrors
	u.Validate(&v)
	require.False(t, v.HasErrors(), v.Error())
	require.NoError(t, u.TransformAfterValidation())
	return u
}

func TestResolve(t *testing.T) {
	pattern := "{date:%Y}/{date:%m}/{date:%d}/{slug}/"
	u := routes(t, pattern, pattern)

	url, saveAs, err := u.Resolve(KindArticle, Values{Slug: "hello", Date: published})
	require.NoError(t, err)
	assert.Equal(t, "2013/07/21/hello/", url)
	assert.Equal(t, "2013/07/21/hello/index.html", saveAs)

	url, saveAs, err = u.Resolve(KindPage, Values{Slug: "about"})
	require.NoError(t, err)
	assert.Equal(t, "pages/about.html", url)
	assert.Equal(t, "pages/about.html", saveAs)

	_, _, err = u.Resolve(KindAuthor, Values{Slug: "rich"})
	assert.True(t, errors.Is(err, ErrNotGenerated))
}

func TestValidateReportsBadPatterns(t *testing.T) {
	u := &URLConfig{ArticleURL: "{title}.html", ArticleSaveAs: "{slug}.html"}
	var v validate.ValidationErrors
	u.Validate(&v)
	require.True(t, v.HasErrors())
	require.Len(t, v.Errors(), 1)
	assert.Contains(t, v.Errors()[0].Error(), "ARTICLE_URL")
}

func TestTransformStripsLeadingSlash(t *testing.T) {
	u := &URLConfig{ArticleURL: " /{slug}/ "}
	require.NoError(t, u.TransformBeforeValidation())
	assert.Equal(t, "{slug}/", u.ArticleURL)
}

func TestKeys(t *testing.T) {
	url, saveAs := Keys(KindArticleLang)
	assert.Equal(t, "ARTICLE_LANG_URL", url)
	assert.Equal(t, "ARTICLE_LANG_SAVE_AS", saveAs)
}

func TestRelativeRoot(t *testing.T) {
	assert.Equal(t, ".", RelativeRoot("index.html"))
	assert.Equal(t, "..", RelativeRoot("pages/about.html"))
	assert.Equal(t, "../../../..", RelativeRoot("2013/07/21/hello/index.html"))
}
