package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/ui/theme"
)

// MultiChoice is a selector over a question's options. Any option marked
// correct is an accepted answer.
type MultiChoice struct {
	Options     []quiz.Option
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a selector for options.
func NewMultiChoice(options []quiz.Option) MultiChoice {
	return MultiChoice{
		Options:     options,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update moves the selection with arrow keys and jumps to an option with
// its number key. Enter submits the selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted || len(m.Options) == 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
			}
		}
	}

	return m, nil
}

// View renders the options. After submission correct options are green
// and a wrong choice is red.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, quiz.OptionLabel(i), opt.Text)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Submitted && opt.Correct:
			style = style.Foreground(theme.Success).Bold(true)
		case m.Submitted && i == m.ChosenIndex:
			style = style.Foreground(theme.Error).Bold(true)
		case m.Submitted:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		if width > 0 {
			style = style.Width(width)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// IsCorrect reports whether the submitted choice is a correct option.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex >= 0 && m.ChosenIndex < len(m.Options) &&
		m.Options[m.ChosenIndex].Correct
}
