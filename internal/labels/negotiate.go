package labels

import (
	"golang.org/x/text/language"
)

var (
	supported = []language.Tag{language.German, language.English}
	catalogs  = []Catalog{German, English}
	matcher   = language.NewMatcher(supported)
)

// Negotiate picks the catalog best matching an Accept-Language header value.
// Unknown or malformed input yields German.
func Negotiate(acceptLanguage string) Catalog {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return German
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return German
	}
	return catalogs[idx]
}

// ForLanguage picks the catalog for a BCP 47 tag such as "en-GB".
func ForLanguage(tag string) Catalog {
	t, err := language.Parse(tag)
	if err != nil {
		return German
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return German
	}
	return catalogs[idx]
}
