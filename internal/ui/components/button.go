package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aptiz/internal/ui/theme"
)

// Button is a labelled action with its key shortcut.
type Button struct {
	Label    string
	Key      string
	Disabled bool
	Primary  bool
	Hidden   bool
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(label)
	case b.Primary:
		return theme.ButtonActive.Render("▸ " + label)
	default:
		return theme.ButtonInactive.Render(label)
	}
}

// ButtonRow renders the visible buttons side by side.
func ButtonRow(buttons ...Button) string {
	var views []string
	for _, b := range buttons {
		if b.Hidden {
			continue
		}
		if len(views) > 0 {
			views = append(views, "  ")
		}
		views = append(views, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
