package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, blue and pink like the classroom screens.
var (
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#EC4899") // Pink
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#16A34A") // Green
	Error     = lipgloss.Color("#E11D48") // Rose
	TextDark  = lipgloss.Color("#111827") // Near black
	TextLight = lipgloss.Color("#F9FAFB") // Near white
	TextDim   = lipgloss.Color("#6B7280") // Gray
	Border    = lipgloss.Color("#BFDBFE") // Light blue
	BorderDim = lipgloss.Color("#3F3F46") // Zinc
)

// Styles are the rendered text styles for one theme.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Section   lipgloss.Style
	Body      lipgloss.Style
	Hint      lipgloss.Style
	Card      lipgloss.Style
	Badge     lipgloss.Style
	Draft     lipgloss.Style
	Published lipgloss.Style
	Error     lipgloss.Style
	Spinner   lipgloss.Style
}

// For returns the styles of a named theme ("light", "dark" or "system").
// "system" and unknown names render with the light theme.
func For(name string) Styles {
	text, border := TextDark, Border
	if name == "dark" {
		text, border = TextLight, BorderDim
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary),

		Subtitle: lipgloss.NewStyle().
			Foreground(TextDim),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			MarginTop(1),

		Body: lipgloss.NewStyle().
			Foreground(text),

		Hint: lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),

		Badge: lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true),

		Draft: lipgloss.NewStyle().
			Foreground(Accent),

		Published: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Error).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(Secondary),
	}
}
