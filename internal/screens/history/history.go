package history

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	hist "github.com/medtrix/medtrix/internal/history"
	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/router"
	"github.com/medtrix/medtrix/internal/screen"
	"github.com/medtrix/medtrix/internal/ui/layout"
	"github.com/medtrix/medtrix/internal/ui/theme"
)

// Reader reads the answer log.
type Reader interface {
	Records(ctx context.Context) ([]hist.Record, error)
}

type historyLoadedMsg struct {
	Records []hist.Record
	Err     error
}

// HistoryScreen lists answered questions, newest first.
type HistoryScreen struct {
	ctx      context.Context
	reader   Reader
	records  []hist.Record
	summary  hist.Summary
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.StatusProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctx context.Context, reader Reader) *HistoryScreen {
	if ctx == nil {
		ctx = context.Background()
	}
	return &HistoryScreen{
		ctx:      ctx,
		reader:   reader,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	ctx, reader := s.ctx, s.reader
	return func() tea.Msg {
		records, err := reader.Records(ctx)
		return historyLoadedMsg{Records: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) Status() string {
	if s.summary.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%.0f%% of %d", s.summary.Accuracy()*100, s.summary.Total)
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = slices.Clone(msg.Records)
			slices.SortStableFunc(s.records, func(a, b hist.Record) int {
				return cmp.Compare(b.Timestamp, a.Timestamp)
			})
			s.summary = hist.Summarize(s.records)
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg)))
	}
	if !s.loaded {
		return center(theme.Hint.Render("\n\n  Loading history..."))
	}
	if len(s.records) == 0 {
		return center(theme.Hint.Render("\n\n  No answers yet. Start a quiz!"))
	}

	cw := min(width-4, 100)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(fmt.Sprintf(
		"%d answered  %d correct  %.0f%% accuracy",
		s.summary.Total, s.summary.Correct, s.summary.Accuracy()*100)))
	b.WriteString("\n\n")

	// Leave room for the summary and one expanded record.
	rows := max(height-8, 3)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := min(start+rows, len(s.records))

	for i := start; i < end; i++ {
		r := s.records[i]
		mark := theme.Correct.Render("✓")
		if !r.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		text := truncate(r.Text, max(cw-40, 20))
		line := fmt.Sprintf("%s%s  %s  %s", prefix, r.Time().Format("Jan 02 15:04"),
			quiz.FormatTitle(r.Source), text)
		b.WriteString(mark + " " + style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(renderDetails(r, cw))
		}
	}

	return lipgloss.NewStyle().PaddingLeft(max((width-cw)/2, 0)).Render(b.String())
}

func renderDetails(r hist.Record, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Width(width).PaddingLeft(6)
	var b strings.Builder
	b.WriteString(dim.Render(r.Text))
	b.WriteString("\n")
	for i, o := range r.Options {
		line := fmt.Sprintf("%s) %s", quiz.OptionLabel(i), o.Text)
		if o.Correct {
			b.WriteString(theme.Correct.PaddingLeft(6).Render(line))
		} else {
			b.WriteString(dim.Render(line))
		}
		b.WriteString("\n")
	}
	if r.Explanation != "" {
		b.WriteString(dim.Italic(true).Render(r.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
