package quadtui

import (
	"charm.land/lipgloss/v2"
	"github.com/muesli/termenv"
)

// Theme selects one of the fixed color schemes. Cycling wraps around.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
	ThemeMono

	themeCount
)

func (t Theme) String() string {
	switch t {
	case ThemeDark:
		return "dark"
	case ThemeLight:
		return "light"
	case ThemeMono:
		return "mono"
	}
	return "unknown"
}

// Next returns the following theme in the cycle.
func (t Theme) Next() Theme {
	return (t + 1) % themeCount
}

// ThemeByName resolves a theme from its name.
func ThemeByName(name string) (Theme, bool) {
	for t := Theme(0); t < themeCount; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return ThemeDark, false
}

// DefaultTheme picks a theme for the current environment: mono when the
// terminal advertises no color support, dark otherwise.
func DefaultTheme() Theme {
	if termenv.ColorProfile() == termenv.Ascii {
		return ThemeMono
	}
	return ThemeDark
}

// Styles holds the lipgloss styles for one theme. The mono theme uses
// zero-value styles, which render text unchanged — frames drawn with it
// contain no escape sequences at all, which the tests rely on.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Border lipgloss.Style
	Text   lipgloss.Style
	Muted  lipgloss.Style
	Prompt lipgloss.Style
	Cursor lipgloss.Style
	Status lipgloss.Style
}

// Styles returns the style set for the theme.
func (t Theme) Styles() Styles {
	switch t {
	case ThemeDark:
		return Styles{
			Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
			Header: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Border: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Text:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Prompt: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117")),
			Cursor: lipgloss.NewStyle().Reverse(true),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
		}
	case ThemeLight:
		return Styles{
			Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("21")),
			Header: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Border: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Text:   lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
			Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Prompt: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
			Cursor: lipgloss.NewStyle().Reverse(true),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("253")),
		}
	default:
		return Styles{}
	}
}
