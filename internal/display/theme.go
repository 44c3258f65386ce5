package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipex/internal/domain"
)

// Palette holds the colors for one visual mode.
type Palette struct {
	Background string
	Foreground string
	Primary    string
	OnPrimary  string
	Secondary  string
	Muted      string
	Border     string
	Accent     string
	Danger     string
}

var (
	lightPalette = Palette{
		Background: "#ffffff",
		Foreground: "#18181b",
		Primary:    "#ea580c",
		OnPrimary:  "#ffffff",
		Secondary:  "#52525b",
		Muted:      "#a1a1aa",
		Border:     "#d4d4d8",
		Accent:     "#16a34a",
		Danger:     "#dc2626",
	}

	darkPalette = Palette{
		Background: "#09090b",
		Foreground: "#e4e4e7",
		Primary:    "#fb923c",
		OnPrimary:  "#18181b",
		Secondary:  "#a1a1aa",
		Muted:      "#71717a",
		Border:     "#3f3f46",
		Accent:     "#86efac",
		Danger:     "#fca5a5",
	}
)

// PaletteFor returns the palette of theme.
func PaletteFor(theme domain.Theme) Palette {
	if theme == domain.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// Styles is every lipgloss style the UI renders with, derived from a palette.
type Styles struct {
	Header     lipgloss.Style
	ThemeBadge lipgloss.Style
	Banner     lipgloss.Style

	Prompt     lipgloss.Style
	InputText  lipgloss.Style
	Suggestion lipgloss.Style
	Highlight  lipgloss.Style

	Chip       lipgloss.Style
	ChipActive lipgloss.Style
	Button     lipgloss.Style
	ButtonOff  lipgloss.Style

	Card       lipgloss.Style
	CardActive lipgloss.Style
	CardTitle  lipgloss.Style
	Meta       lipgloss.Style
	Badge      lipgloss.Style
	Heart      lipgloss.Style

	Modal   lipgloss.Style
	Section lipgloss.Style
	Body    lipgloss.Style

	Notice lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles builds the styles for theme.
func NewStyles(theme domain.Theme) Styles {
	p := PaletteFor(theme)
	fg := lipgloss.Color(p.Foreground)
	primary := lipgloss.Color(p.Primary)
	muted := lipgloss.Color(p.Muted)
	border := lipgloss.Color(p.Border)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(primary),
		ThemeBadge: lipgloss.NewStyle().Foreground(muted),
		Banner:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Secondary)),

		Prompt:     lipgloss.NewStyle().Foreground(primary),
		InputText:  lipgloss.NewStyle().Foreground(fg),
		Suggestion: lipgloss.NewStyle().Foreground(fg).PaddingLeft(2),
		Highlight: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.OnPrimary)).
			Background(primary).
			PaddingLeft(2),

		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.OnPrimary)).
			Background(primary).
			Padding(0, 1),
		ChipActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.OnPrimary)).
			Background(lipgloss.Color(p.Danger)).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.OnPrimary)).
			Background(primary).
			Padding(0, 2),
		ButtonOff: lipgloss.NewStyle().
			Foreground(muted).
			Background(border).
			Padding(0, 2),

		Card:       card,
		CardActive: card.BorderForeground(primary),
		CardTitle:  lipgloss.NewStyle().Bold(true).Foreground(fg),
		Meta:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Secondary)),
		Badge:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		Heart:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Danger)),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 2),
		Section: lipgloss.NewStyle().Bold(true).Foreground(primary).MarginTop(1),
		Body:    lipgloss.NewStyle().Foreground(fg),

		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Danger)).Bold(true),
		Help:   lipgloss.NewStyle().Foreground(muted),
	}
}
