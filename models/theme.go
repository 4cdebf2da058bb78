package models

import "strings"

const (
	ThemeNightService = "night_service"
	ThemeDaylight     = "daylight"
	ThemeSlate        = "slate"

	// DefaultTheme is applied to cooks without a stored preference.
	DefaultTheme = ThemeNightService
)

// ValidTheme reports whether value names a supported theme.
func ValidTheme(value string) bool {
	switch value {
	case ThemeNightService, ThemeDaylight, ThemeSlate:
		return true
	default:
		return false
	}
}

// NormalizeTheme trims value and falls back to DefaultTheme when it is unknown.
func NormalizeTheme(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if ValidTheme(trimmed) {
		return trimmed
	}
	return DefaultTheme
}
