package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Palette is a set of UI colors.
type Palette struct {
	Name      string
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
}

var (
	// Light is the default palette.
	Light = Palette{
		Name:      "light",
		Primary:   lipgloss.Color("#0F766E"), // Deep teal
		Secondary: lipgloss.Color("#2563EB"), // Blue
		Accent:    lipgloss.Color("#B45309"), // Amber
		Success:   lipgloss.Color("#15803D"), // Green
		Error:     lipgloss.Color("#BE123C"), // Rose
		Text:      lipgloss.Color("#0F172A"), // Ink
		TextDim:   lipgloss.Color("#64748B"), // Slate
		BgCard:    lipgloss.Color("#F1F5F9"), // Mist
		Border:    lipgloss.Color("#CBD5E1"), // Light slate
	}

	Dark = Palette{
		Name:      "dark",
		Primary:   lipgloss.Color("#2DD4BF"), // Teal
		Secondary: lipgloss.Color("#60A5FA"), // Sky
		Accent:    lipgloss.Color("#F59E0B"), // Amber
		Success:   lipgloss.Color("#22C55E"), // Green
		Error:     lipgloss.Color("#F43F5E"), // Rose
		Text:      lipgloss.Color("#F8FAFC"), // White
		TextDim:   lipgloss.Color("#94A3B8"), // Slate
		BgCard:    lipgloss.Color("#1E293B"), // Dark slate
		Border:    lipgloss.Color("#334155"), // Slate
	}
)

// ForName returns the palette stored under the theme preference value.
// Anything other than "dark" is light.
func ForName(name string) Palette {
	if strings.EqualFold(strings.TrimSpace(name), Dark.Name) {
		return Dark
	}
	return Light
}

// Active palette colors.
var (
	Current   Palette
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
)

// Styles derived from the active palette.
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style

	Card lipgloss.Style

	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
)

func init() {
	Use(Light)
}

// Use makes p the active palette. Call it before the program starts.
func Use(p Palette) {
	Current = p
	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgCard, Border = p.BgCard, p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)
}
