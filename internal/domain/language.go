package domain

import "fmt"

type Language string

const (
	LanguageCreole  Language = "ht"
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
)

var DefaultLanguage = LanguageCreole

var SupportedLanguages = map[Language]bool{
	LanguageCreole:  true,
	LanguageFrench:  true,
	LanguageEnglish: true,
}

// ParseLanguage returns DefaultLanguage for an empty code.
func ParseLanguage(code string) (Language, error) {
	if code == "" {
		return DefaultLanguage, nil
	}
	l := Language(code)
	if !l.Valid() {
		return "", fmt.Errorf("unsupported language: %s", code)
	}
	return l, nil
}

func (l Language) Valid() bool {
	return SupportedLanguages[l]
}

func (l Language) String() string {
	return string(l)
}
