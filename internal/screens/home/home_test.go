package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hist "github.com/medtrix/medtrix/internal/history"
	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/router"
	historyscreen "github.com/medtrix/medtrix/internal/screens/history"
	"github.com/medtrix/medtrix/internal/screens/play"
)

type fakeCatalog struct {
	entries []quiz.ManifestEntry
}

func (f *fakeCatalog) Manifest(context.Context) []quiz.ManifestEntry { return f.entries }

func (f *fakeCatalog) Quiz(context.Context, string) (*quiz.Document, bool) { return nil, false }

type fakeJournal struct {
	records []hist.Record
}

func (f *fakeJournal) SaveResult(_ context.Context, q quiz.Question, ok bool, source string) {
	f.records = append(f.records, hist.Record{UID: q.UID, IsCorrect: ok, Source: source})
}

func (f *fakeJournal) Records(context.Context) ([]hist.Record, error) { return f.records, nil }

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// runBatch executes cmd and feeds every resulting message to h.
func runBatch(h *HomeScreen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			runBatch(h, c)
		}
	default:
		h.Update(msg)
	}
}

func newTestHome(journal Journal) *HomeScreen {
	h := New(Deps{
		Catalog: &fakeCatalog{entries: []quiz.ManifestEntry{
			{Filename: "01_cardiology.json", Title: "Cardiology"},
			{Filename: "02_renal_physiology.json"},
		}},
		Journal:   journal,
		SessionID: "s1",
	})
	runBatch(h, h.Init())
	return h
}

func labels(h *HomeScreen) []string {
	var out []string
	for _, it := range h.menu.Items {
		out = append(out, it.Label)
	}
	return out
}

func TestHome_MenuFromManifest(t *testing.T) {
	h := newTestHome(&fakeJournal{})
	assert.Equal(t, []string{"Cardiology", "renal physiology", "HISTORY", "EXIT"}, labels(h))
	assert.Equal(t, 0, h.menu.Selected)

	view := h.View(120, 40)
	assert.Contains(t, view, "renal physiology")
	assert.NotContains(t, view, "Loading quizzes")
}

func TestHome_OpenQuiz(t *testing.T) {
	h := newTestHome(&fakeJournal{})
	h.Update(specialKey(tea.KeyDown))

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	s, ok := push.Screen.(*play.PlayScreen)
	require.True(t, ok)
	assert.Equal(t, "renal physiology", s.Title())
}

func TestHome_OpenHistory(t *testing.T) {
	h := newTestHome(&fakeJournal{})
	h.menu.Selected = 2

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	push := cmd().(router.PushScreenMsg)
	_, ok := push.Screen.(*historyscreen.HistoryScreen)
	assert.True(t, ok)
}

func TestHome_Exit(t *testing.T) {
	h := newTestHome(&fakeJournal{})
	h.menu.Selected = 3

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestHome_NoJournalDisablesHistory(t *testing.T) {
	h := newTestHome(nil)
	assert.True(t, h.menu.Items[2].Disabled)
	assert.Nil(t, h.Resume())
}

func TestHome_EmptyManifest(t *testing.T) {
	h := New(Deps{Catalog: &fakeCatalog{}})
	runBatch(h, h.Init())

	assert.Equal(t, []string{"No quizzes available", "HISTORY", "EXIT"}, labels(h))
	assert.Equal(t, 2, h.menu.Selected)
}

func TestHome_ResumeRefreshesStats(t *testing.T) {
	j := &fakeJournal{}
	h := newTestHome(j)
	assert.Equal(t, 0, h.summary.Total)

	j.SaveResult(context.Background(), quiz.Question{UID: "a"}, true, "01_cardiology.json")
	runBatch(h, h.Resume())
	assert.Equal(t, 1, h.summary.Total)
	assert.Contains(t, h.View(120, 40), "100%")
}

func TestHome_AIBanner(t *testing.T) {
	h := New(Deps{Catalog: &fakeCatalog{}, AIDisabled: true})
	assert.Contains(t, h.View(120, 40), "AI explanations are off")
}
