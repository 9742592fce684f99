package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	hist "github.com/medtrix/medtrix/internal/history"
	"github.com/medtrix/medtrix/internal/ui/theme"
)

const titleFull = `███╗   ███╗███████╗██████╗ ████████╗██████╗ ██╗██╗  ██╗
████╗ ████║██╔════╝██╔══██╗╚══██╔══╝██╔══██╗██║╚██╗██╔╝
██╔████╔██║█████╗  ██║  ██║   ██║   ██████╔╝██║ ╚███╔╝
██║╚██╔╝██║██╔══╝  ██║  ██║   ██║   ██╔══██╗██║ ██╔██╗
██║ ╚═╝ ██║███████╗██████╔╝   ██║   ██║  ██║██║██╔╝ ██╗
╚═╝     ╚═╝╚══════╝╚═════╝    ╚═╝   ╚═╝  ╚═╝╚═╝╚═╝  ╚═╝`

const titleCompact = "M · E · D · T · R · I · X"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStats shows the history summary in a bordered box.
func renderStats(sum hist.Summary, quizzes, cw int) string {
	value := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	line := value.Render(fmt.Sprint(quizzes)) + dim.Render(" quizzes   ") +
		value.Render(fmt.Sprint(sum.Total)) + dim.Render(" answered   ") +
		value.Render(fmt.Sprintf("%.0f%%", sum.Accuracy()*100)) + dim.Render(" accuracy")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Render(line)
}

// renderAIBanner warns that explanations are unavailable.
func renderAIBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ AI explanations are off: set an API key (see medtrix --help)")
}

// renderFrame wraps content in a double border, centered in the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
