package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the two storefront locales.
type Language string

const (
	Kyrgyz  Language = "kg"
	Russian Language = "ru"

	Default = Kyrgyz
)

var ErrUnknownLanguage = errors.New("unknown language")

// Languages lists the supported locales in selector order.
var Languages = []Language{Kyrgyz, Russian}

// Kyrgyz is "ky" in BCP 47; the shop uses the "kg" code everywhere else.
var (
	supportedTags = []language.Tag{language.Make("ky"), language.Russian}
	matcher       = language.NewMatcher(supportedTags)
)

func Parse(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case Kyrgyz:
		return Kyrgyz, nil
	case Russian:
		return Russian, nil
	}
	return "", ErrUnknownLanguage
}

// DisplayName is the English name used inside the assistant instruction.
func (l Language) DisplayName() string {
	if l == Russian {
		return "Russian"
	}
	return "Kyrgyz"
}

func (l Language) Valid() bool {
	return l == Kyrgyz || l == Russian
}

// Negotiate picks the initial language from an Accept-Language header,
// falling back to Default when nothing matches.
func Negotiate(acceptLanguage string) Language {
	if acceptLanguage == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Languages[idx]
}
