package dashboard

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aptiz/internal/ui/theme"
)

const titleFull = ` █████╗ ██████╗ ████████╗██╗███████╗
██╔══██╗██╔══██╗╚══██╔══╝██║╚══███╔╝
███████║██████╔╝   ██║   ██║  ███╔╝
██╔══██║██╔═══╝    ██║   ██║ ███╔╝
██║  ██║██║        ██║   ██║███████╗
╚═╝  ╚═╝╚═╝        ╚═╝   ╚═╝╚══════╝`

const titleCompact = "A · P · T · I · Z"

// renderTitle returns the block-letter title, or the spaced fallback when
// the terminal is small.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}
