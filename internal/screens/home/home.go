package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	hist "github.com/medtrix/medtrix/internal/history"
	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/router"
	"github.com/medtrix/medtrix/internal/screen"
	historyscreen "github.com/medtrix/medtrix/internal/screens/history"
	"github.com/medtrix/medtrix/internal/screens/play"
	"github.com/medtrix/medtrix/internal/ui/components"
	"github.com/medtrix/medtrix/internal/ui/layout"
)

// Catalog lists and loads quizzes.
type Catalog interface {
	play.Loader
	Manifest(ctx context.Context) []quiz.ManifestEntry
}

// Journal is the answer log as the screens use it.
type Journal interface {
	play.Recorder
	historyscreen.Reader
}

// Deps are the services behind the home screen. Journal and Explainer
// may be nil.
type Deps struct {
	Ctx       context.Context
	Catalog   Catalog
	Journal   Journal
	Explainer play.Explainer
	// AIDisabled shows a banner that explanations will only return errors.
	AIDisabled bool
	SessionID  string
}

type manifestLoadedMsg struct {
	Entries []quiz.ManifestEntry
}

type statsLoadedMsg struct {
	Summary hist.Summary
}

// HomeScreen lists the manifest quizzes, the history and exit.
type HomeScreen struct {
	deps    Deps
	menu    components.Menu
	entries []quiz.ManifestEntry
	loaded  bool
	summary hist.Summary
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	h := &HomeScreen{deps: deps}
	h.buildMenu()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	ctx, catalog := h.deps.Ctx, h.deps.Catalog
	return tea.Batch(
		func() tea.Msg {
			return manifestLoadedMsg{Entries: catalog.Manifest(ctx)}
		},
		h.loadStats(),
	)
}

// Resume refreshes the stats after a quiz or the history screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	if h.deps.Journal == nil {
		return nil
	}
	ctx, journal := h.deps.Ctx, h.deps.Journal
	return func() tea.Msg {
		records, err := journal.Records(ctx)
		if err != nil {
			return statsLoadedMsg{}
		}
		return statsLoadedMsg{Summary: hist.Summarize(records)}
	}
}

func (h *HomeScreen) buildMenu() {
	var items []components.MenuItem
	for _, e := range h.entries {
		items = append(items, components.MenuItem{
			Label:  e.DisplayTitle(),
			Action: h.openQuiz(e),
		})
	}
	if h.loaded && len(h.entries) == 0 {
		items = append(items, components.MenuItem{Label: "No quizzes available", Disabled: true})
	}

	items = append(items,
		components.MenuItem{
			Label:    "HISTORY",
			Disabled: h.deps.Journal == nil,
			Action: func() tea.Cmd {
				s := historyscreen.New(h.deps.Ctx, h.deps.Journal)
				return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
			},
		},
		components.MenuItem{
			Label:  "EXIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) openQuiz(e quiz.ManifestEntry) func() tea.Cmd {
	return func() tea.Cmd {
		deps := play.Deps{
			Ctx:       h.deps.Ctx,
			Loader:    h.deps.Catalog,
			Explainer: h.deps.Explainer,
			SessionID: h.deps.SessionID,
		}
		if h.deps.Journal != nil {
			deps.Recorder = h.deps.Journal
		}
		s := play.New(deps, e)
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case manifestLoadedMsg:
		h.entries = msg.Entries
		h.loaded = true
		h.buildMenu()
		return h, nil
	case statsLoadedMsg:
		h.summary = msg.Summary
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 36 || width < 100

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStats(h.summary, len(h.entries), cw))
	if h.deps.AIDisabled {
		sections = append(sections, renderAIBanner(cw))
	}

	used := strings.Count(strings.Join(sections, "\n\n"), "\n") + 8
	rows := max(height-used, 3)
	if !h.loaded {
		sections = append(sections, "Loading quizzes...")
	}
	sections = append(sections, h.menu.ViewRows(rows))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
