// Package styles defines the hubdeck colour palette and the lipgloss
// styles the views share.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. The accent follows HubSpot's brand orange so the connect
// screen reads as "this talks to HubSpot"; the rest is a muted dark
// scheme that stays legible on light terminals too.
const (
	colorAccent   = lipgloss.Color("#FF7A59")
	colorInfo     = lipgloss.Color("#00A4BD") // HubSpot secondary blue
	colorText     = lipgloss.Color("#CBD6E2")
	colorFaint    = lipgloss.Color("#7C98B6")
	colorPositive = lipgloss.Color("#00BDA5")
	colorDanger   = lipgloss.Color("#F2545B")
	colorFrame    = lipgloss.Color("#425B76")
)

// Styles is the shared style sheet. Every view takes one of these so
// the whole UI can be re-skinned in one place.
type Styles struct {
	// Accent is exposed for components that take a bare colour, such
	// as spinners.
	Accent lipgloss.Color

	// Title renders view headings.
	Title lipgloss.Style

	// Subtitle renders section headings within a view.
	Subtitle lipgloss.Style

	// Normal renders regular rows and field values.
	Normal lipgloss.Style

	// Muted renders labels, hints, and empty-state text.
	Muted lipgloss.Style

	// Selected highlights the row under the cursor.
	Selected lipgloss.Style

	// Error renders failure messages.
	Error lipgloss.Style

	// Success renders confirmation messages.
	Success lipgloss.Style

	// InputField frames the search input.
	InputField lipgloss.Style

	// StatusBar renders the one-line state summary under a list.
	StatusBar lipgloss.Style

	// Help renders keybinding hints.
	Help lipgloss.Style

	// Border frames centred boxes such as the connect card.
	Border lipgloss.Style
}

// DefaultStyles returns the hubdeck style sheet.
func DefaultStyles() *Styles {
	return &Styles{
		Accent: colorAccent,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(colorInfo),
		Normal:   lipgloss.NewStyle().Foreground(colorText),
		Muted:    lipgloss.NewStyle().Foreground(colorFaint),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorAccent),

		Error:   lipgloss.NewStyle().Foreground(colorDanger),
		Success: lipgloss.NewStyle().Foreground(colorPositive),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorFrame).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(colorFaint).
			Padding(0, 1),

		Help: lipgloss.NewStyle().Foreground(colorFaint),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorFrame),
	}
}
