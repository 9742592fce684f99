// Package play is the quiz screen: one question at a time, graded on
// submit, with optional AI explanations.
package play

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/medtrix/medtrix/internal/explain"
	"github.com/medtrix/medtrix/internal/llm"
	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/router"
	"github.com/medtrix/medtrix/internal/screen"
	"github.com/medtrix/medtrix/internal/ui/components"
	"github.com/medtrix/medtrix/internal/ui/layout"
	"github.com/medtrix/medtrix/internal/ui/theme"
)

// Loader returns a normalized quiz document.
type Loader interface {
	Quiz(ctx context.Context, filename string) (*quiz.Document, bool)
}

// Recorder stores an answer.
type Recorder interface {
	SaveResult(ctx context.Context, q quiz.Question, isCorrect bool, source string)
}

// Explainer answers a prompt about a question.
type Explainer interface {
	Ask(ctx context.Context, prompt, excerpt string) string
}

// Deps are the services the screen talks to. Recorder and Explainer may
// be nil.
type Deps struct {
	Ctx       context.Context
	Loader    Loader
	Recorder  Recorder
	Explainer Explainer
	SessionID string
}

const explainPrompt = "Explain the correct answer to this medical exam question " +
	"and why each other option is wrong. Be concise."

type quizLoadedMsg struct {
	Doc *quiz.Document
	OK  bool
}

type explanationMsg struct {
	Index int
	Text  string
}

// PlayScreen runs one quiz file.
type PlayScreen struct {
	deps     Deps
	entry    quiz.ManifestEntry
	title    string
	loaded   bool
	errMsg   string
	finished bool

	questions []quiz.Question
	index     int
	choice    components.MultiChoice
	revealed  bool

	answered int
	correct  int
	streak   streak

	aiText    string
	aiLoading bool
	asking    bool
	input     components.TextInput
}

var (
	_ screen.Screen          = (*PlayScreen)(nil)
	_ screen.KeyHintProvider = (*PlayScreen)(nil)
	_ screen.StatusProvider  = (*PlayScreen)(nil)
	_ screen.InputCapturer   = (*PlayScreen)(nil)
)

// New creates a screen for the manifest entry.
func New(deps Deps, entry quiz.ManifestEntry) *PlayScreen {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	return &PlayScreen{
		deps:  deps,
		entry: entry,
		title: entry.DisplayTitle(),
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	loader, ctx, name := s.deps.Loader, s.deps.Ctx, s.entry.Filename
	return func() tea.Msg {
		doc, ok := loader.Quiz(ctx, name)
		return quizLoadedMsg{Doc: doc, OK: ok}
	}
}

func (s *PlayScreen) Title() string {
	return s.title
}

func (s *PlayScreen) Status() string {
	if !s.loaded || len(s.questions) == 0 {
		return ""
	}
	n := min(s.index+1, len(s.questions))
	return fmt.Sprintf("%d/%d  ✓ %d", n, len(s.questions), s.correct)
}

func (s *PlayScreen) CapturesInput() bool {
	return s.asking
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.asking:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ask"},
			{Key: "Esc", Description: "Cancel"},
		}
	case !s.loaded:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.finished || s.errMsg != "":
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	case s.revealed:
		return []layout.KeyHint{
			{Key: "Enter/n", Description: "Next"},
			{Key: "e", Description: "Explain"},
			{Key: "?", Description: "Ask AI"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓/1-9", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "?", Description: "Ask AI"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		return s.handleLoaded(msg)

	case explanationMsg:
		if msg.Index == s.index {
			s.aiLoading = false
			s.aiText = msg.Text
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.asking {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) handleLoaded(msg quizLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loaded = true
	if !msg.OK {
		s.errMsg = fmt.Sprintf("Could not load %s.", s.entry.Filename)
		return s, nil
	}
	if t := msg.Doc.Title(); t != "" && s.entry.Title == "" {
		s.title = t
	}
	s.questions = msg.Doc.Questions
	if len(s.questions) == 0 {
		s.errMsg = "This quiz has no questions."
		return s, nil
	}
	s.startQuestion()
	return s, nil
}

func (s *PlayScreen) startQuestion() {
	s.choice = components.NewMultiChoice(s.questions[s.index].Options)
	s.revealed = false
	s.aiText = ""
	s.aiLoading = false
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.asking {
		switch key {
		case "esc":
			s.asking = false
			return s, nil
		case "enter":
			prompt := s.input.Value()
			if prompt == "" {
				return s, nil
			}
			s.asking = false
			return s, s.askCmd(prompt, explain.PurposeFollowUp)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if !s.loaded {
		return s, nil
	}
	if s.errMsg != "" || s.finished {
		if key == "enter" || key == "q" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch key {
	case "?":
		if s.deps.Explainer == nil {
			return s, nil
		}
		s.asking = true
		s.input = components.NewTextInput("Ask the AI about this question", "Type your question...", 500)
		return s, s.input.Init()
	case "e":
		if s.revealed && s.deps.Explainer != nil {
			return s, s.askCmd(explainPrompt, explain.Purpose)
		}
		return s, nil
	}

	if s.revealed {
		if key == "enter" || key == "n" {
			s.next()
		}
		return s, nil
	}

	q := s.questions[s.index]
	if !q.HasOptions() {
		if key == "enter" {
			s.revealed = true
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		s.submit(q)
	}
	return s, nil
}

// submit grades and records the current answer.
func (s *PlayScreen) submit(q quiz.Question) {
	s.revealed = true
	s.answered++
	ok := s.choice.IsCorrect()
	if ok {
		s.correct++
	}
	s.streak.record(ok)
	if s.deps.Recorder != nil {
		s.deps.Recorder.SaveResult(s.deps.Ctx, q, ok, s.entry.Filename)
	}
}

func (s *PlayScreen) next() {
	if s.index+1 >= len(s.questions) {
		s.finished = true
		return
	}
	s.index++
	s.startQuestion()
}

func (s *PlayScreen) askCmd(prompt, purpose string) tea.Cmd {
	s.aiLoading = true
	s.aiText = ""

	idx := s.index
	excerpt := explain.QuestionContext(s.questions[idx])
	ctx := llm.WithPurpose(llm.WithSession(s.deps.Ctx, s.deps.SessionID), purpose)
	ex := s.deps.Explainer
	return func() tea.Msg {
		return explanationMsg{Index: idx, Text: ex.Ask(ctx, prompt, excerpt)}
	}
}

func (s *PlayScreen) View(width, height int) string {
	cw := min(width-4, 100)
	if cw < 20 {
		cw = 20
	}
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	switch {
	case !s.loaded:
		return center(theme.Hint.Render("\n\nLoading quiz..."))
	case s.errMsg != "":
		return center(lipgloss.NewStyle().Foreground(theme.Error).Render("\n\n" + s.errMsg))
	case s.finished:
		return center(s.renderScore(cw))
	}

	q := s.questions[s.index]
	var b strings.Builder
	b.WriteString("\n")

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", s.index+1, len(s.questions)),
		float64(s.index+1)/float64(len(s.questions)), false, cw)
	b.WriteString(progress.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(q.Text))
	b.WriteString("\n\n")

	if q.HasOptions() {
		b.WriteString(s.choice.View(cw))
	} else {
		b.WriteString(theme.Hint.Render("No options for this question. Press Enter to reveal."))
		b.WriteString("\n")
	}

	if s.revealed {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(q, cw))
	}

	switch {
	case s.asking:
		b.WriteString("\n\n")
		b.WriteString(s.input.View())
	case s.aiLoading:
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Asking the AI..."))
	case s.aiText != "":
		b.WriteString("\n\n")
		b.WriteString(theme.Card.Width(cw).Render(s.aiText))
	}

	return lipgloss.NewStyle().PaddingLeft(max((width-cw)/2, 0)).Render(b.String())
}

func (s *PlayScreen) renderFeedback(q quiz.Question, width int) string {
	var lines []string
	if q.HasOptions() {
		var labels []string
		for _, i := range q.CorrectIndexes() {
			labels = append(labels, quiz.OptionLabel(i))
		}
		answer := strings.Join(labels, ", ")
		if answer == "" {
			answer = "none marked"
		}
		if s.choice.IsCorrect() {
			line := "✓ Correct"
			if s.streak.milestone {
				line += fmt.Sprintf("  ·  %d in a row!", s.streak.current)
			}
			lines = append(lines, theme.Correct.Render(line))
		} else {
			lines = append(lines, theme.Incorrect.Render("✗ Incorrect. Answer: "+answer))
		}
	}
	if q.Explanation != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Width(width).Render(q.Explanation))
	}
	return strings.Join(lines, "\n")
}

func (s *PlayScreen) renderScore(width int) string {
	pct := 0
	if s.answered > 0 {
		pct = s.correct * 100 / s.answered
	}
	body := fmt.Sprintf("%s\n\n%d of %d correct (%d%%)\n%d questions in this quiz",
		theme.Title.Render("Quiz complete"), s.correct, s.answered, pct, len(s.questions))
	if s.streak.best > 1 {
		body += fmt.Sprintf("\nBest streak: %d", s.streak.best)
	}
	return "\n\n" + theme.Card.Width(min(width, 50)).Align(lipgloss.Center).Render(body)
}
