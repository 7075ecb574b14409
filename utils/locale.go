package utils

import (
	"golang.org/x/text/language"
)

const (
	LocaleArabic  = "ar"
	LocaleEnglish = "en"
)

var supportedLocales = []string{LocaleArabic, LocaleEnglish}

var localeMatcher = language.NewMatcher([]language.Tag{
	language.Arabic,
	language.English,
})

func SupportedLocales() []string {
	return append([]string(nil), supportedLocales...)
}

func IsSupportedLocale(locale string) bool {
	for _, l := range supportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// NegotiateLocale picks the best supported locale for an Accept-Language
// header value, or fallback when nothing matches.
func NegotiateLocale(acceptLanguage, fallback string) string {
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supportedLocales[idx]
}
