package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

const tagline = "Add a few ingredients, then press ctrl+f to find recipes."

// RenderBanner returns the banner art centred for width, followed by a
// short hint. A width of zero or less means the current terminal width.
// Terminals narrower than the art get the hint alone.
func RenderBanner(width int, style lipgloss.Style) string {
	if width <= 0 {
		width = termWidth()
	}

	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")
	maxW := 0
	for _, l := range lines {
		maxW = max(maxW, lipgloss.Width(l))
	}

	var b strings.Builder
	if maxW <= width {
		pad := strings.Repeat(" ", (width-maxW)/2)
		for _, l := range lines {
			b.WriteString(pad)
			b.WriteString(style.Render(l))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	hint := truncate(tagline, width)
	b.WriteString(strings.Repeat(" ", max(0, (width-lipgloss.Width(hint))/2)))
	b.WriteString(style.Render(hint))
	return b.String()
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
