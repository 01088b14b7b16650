package urls

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotGenerated is returned by Resolve for kinds whose save-as pattern
// is empty: the generator writes no output for them.
var ErrNotGenerated = errors.New("output disabled by empty save-as pattern")

type URLConfig struct {
	ArticleURL        string `yaml:"ARTICLE_URL"`
	ArticleSaveAs     string `yaml:"ARTICLE_SAVE_AS"`
	ArticleLangURL    string `yaml:"ARTICLE_LANG_URL"`
	ArticleLangSaveAs string `yaml:"ARTICLE_LANG_SAVE_AS"`
	PageURL           string `yaml:"PAGE_URL"`
	PageSaveAs        string `yaml:"PAGE_SAVE_AS"`
	CategoryURL       string `yaml:"CATEGORY_URL"`
	CategorySaveAs    string `yaml:"CATEGORY_SAVE_AS"`
	TagURL            string `yaml:"TAG_URL"`
	TagSaveAs         string `yaml:"TAG_SAVE_AS"`
	AuthorURL         string `yaml:"AUTHOR_URL"`
	AuthorSaveAs      string `yaml:"AUTHOR_SAVE_AS"`

	Routes map[Kind]Route `yaml:"-"`
}

// Route is the parsed URL and save-as pair of one content kind.
type Route struct {
	URL    Pattern
	SaveAs Pattern
}

// Keys returns the setting names holding the URL and save-as pattern of
// kind, e.g. ARTICLE_URL and ARTICLE_SAVE_AS.
func Keys(kind Kind) (urlKey, saveAsKey string) {
	prefix := strings.ToUpper(string(kind))
	return prefix + "_URL", prefix + "_SAVE_AS"
}

func (u *URLConfig) patterns(kind Kind) (url, saveAs string) {
	switch kind {
	case KindArticle:
		return u.ArticleURL, u.ArticleSaveAs
	case KindArticleLang:
		return u.ArticleLangURL, u.ArticleLangSaveAs
	case KindPage:
		return u.PageURL, u.PageSaveAs
	case KindCategory:
		return u.CategoryURL, u.CategorySaveAs
	case KindTag:
		return u.TagURL, u.TagSaveAs
	case KindAuthor:
		return u.AuthorURL, u.AuthorSaveAs
	}
	return "", ""
}

// Resolve renders the URL and the output path of one content item. A
// save-as path ending in "/" names a directory and gets index.html.
func (u *URLConfig) Resolve(kind Kind, v Values) (url string, saveAs string, err error) {
	route, ok := u.Routes[kind]
	if !ok {
		return "", "", fmt.Errorf("no route for %q", kind)
	}
	if route.SaveAs.String() == "" {
		return "", "", fmt.Errorf("%s: %w", kind, ErrNotGenerated)
	}
	if url, err = route.URL.Render(v); err != nil {
		return "", "", err
	}
	if saveAs, err = route.SaveAs.Render(v); err != nil {
		return "", "", err
	}
	if strings.HasSuffix(saveAs, "/") {
		saveAs += "index.html"
	}
	return url, saveAs, nil
}

// RelativeRoot returns the path from the directory of saveAs back to the
// output root: "." for top-level files, "../.." two levels down.
func RelativeRoot(saveAs string) string {
	depth := strings.Count(strings.TrimPrefix(saveAs, "/"), "/")
	if depth == 0 {
		return "."
	}
	return strings.TrimSuffix(strings.Repeat("../", depth), "/")
}
