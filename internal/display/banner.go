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

// RenderBanner returns the banner art centred for width columns, with
// subtitle centred beneath it. A width of 0 uses the terminal width.
func RenderBanner(width int, subtitle string) string {
	if width <= 0 {
		width = termWidth()
	}

	art := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")
	artW := 0
	for _, l := range art {
		artW = max(artW, len(l))
	}

	var b strings.Builder
	for _, l := range art {
		b.WriteString(centered(BannerStyle.Render(l), artW, width))
	}
	if subtitle != "" {
		b.WriteByte('\n')
		b.WriteString(centered(secondaryStyle.Render(subtitle), lipgloss.Width(subtitle), width))
	}
	return b.String()
}

func centered(s string, w, width int) string {
	if pad := (width - w) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + s + "\n"
	}
	return s + "\n"
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
