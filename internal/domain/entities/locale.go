package entities

import apperrors "github.com/kurortly/search-backend/pkg/errors"

// Locale identifies one of the supported content languages
type Locale string

const (
	LocaleRU Locale = "ru"
	LocaleEN Locale = "en"
)

// Locales lists every supported locale
var Locales = []Locale{LocaleRU, LocaleEN}

// ParseLocale validates a raw locale string
func ParseLocale(raw string) (Locale, error) {
	switch Locale(raw) {
	case LocaleRU:
		return LocaleRU, nil
	case LocaleEN:
		return LocaleEN, nil
	}
	return "", apperrors.NewUnsupportedLocaleError(raw)
}

// Projection maps a locale to the localized column names of an entity table.
// Applied uniformly instead of per-query locale switches.
type Projection struct {
	Name        string
	Description string
}

// Projection returns the column projection for the locale
func (l Locale) Projection() Projection {
	if l == LocaleEN {
		return Projection{Name: "name_en", Description: "description_en"}
	}
	return Projection{Name: "name_ru", Description: "description_ru"}
}
