package domain

// Theme is the visual mode of the UI.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// String returns the persisted form of the theme.
func (t Theme) String() string {
	switch t {
	case ThemeDark:
		return "dark"
	default:
		return "light"
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme converts a persisted value into a Theme. The second return
// value is false for anything other than "light" or "dark".
func ParseTheme(s string) (Theme, bool) {
	switch s {
	case "light":
		return ThemeLight, true
	case "dark":
		return ThemeDark, true
	default:
		return ThemeLight, false
	}
}
