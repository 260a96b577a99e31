package models

// LangNameMap maps supported report language codes to display names.
var LangNameMap = map[string]string{
	"en": "English",
	"es": "Spanish (Español)",
}

// DefaultLanguage is used when no valid language code is configured.
const DefaultLanguage = "en"

// SupportedLanguages returns the supported report language codes.
func SupportedLanguages() []string {
	return []string{"en", "es"}
}

// GetLanguageName returns the display name for a language code.
// Returns "English" if the code is not found.
func GetLanguageName(code string) string {
	if name, ok := LangNameMap[code]; ok {
		return name
	}
	return LangNameMap[DefaultLanguage]
}

// IsValidLanguageCode reports whether code is a supported report language.
// The check is case-sensitive.
func IsValidLanguageCode(code string) bool {
	_, ok := LangNameMap[code]
	return ok
}
