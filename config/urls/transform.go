package urls

import "strings"

func (u *URLConfig) TransformBeforeValidation() error {
	for _, p := range []*string{
		&u.ArticleURL, &u.ArticleSaveAs,
		&u.ArticleLangURL, &u.ArticleLangSaveAs,
		&u.PageURL, &u.PageSaveAs,
		&u.CategoryURL, &u.CategorySaveAs,
		&u.TagURL, &u.TagSaveAs,
		&u.AuthorURL, &u.AuthorSaveAs,
	} {
		*p = strings.TrimPrefix(strings.TrimSpace(*p), "/")
	}
	return nil
}

func (u *URLConfig) TransformAfterValidation() error {
	u.Routes = make(map[Kind]Route, len(Kinds))
	for _, kind := range Kinds {
		urlText, saveAsText := u.patterns(kind)
		urlPattern, err := Parse(kind, urlText)
		if err != nil {
			return err
		}
		saveAsPattern, err := Parse(kind, saveAsText)
		if err != nil {
			return err
		}
		u.Routes[kind] = Route{URL: urlPattern, SaveAs: saveAsPattern}
	}
	return nil
}
