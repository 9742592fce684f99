package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrix/medtrix/internal/quiz"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func options() []quiz.Option {
	return []quiz.Option{
		{Text: "Aspirin"},
		{Text: "Heparin", Correct: true},
		{Text: "Warfarin", Correct: true},
	}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice(options())
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 2, m.Selected, "selection stops at the last option")

	m, _ = m.Update(specialKey(tea.KeyUp))
	m, _ = m.Update(specialKey(tea.KeyEnter))
	require.True(t, m.Submitted)
	assert.Equal(t, 1, m.ChosenIndex)
	assert.True(t, m.IsCorrect())
}

func TestMultiChoice_NumberKeysSelect(t *testing.T) {
	m := NewMultiChoice(options())
	m, _ = m.Update(keyPress('3'))
	assert.Equal(t, 2, m.Selected)
	assert.False(t, m.Submitted, "number keys only select")

	m, _ = m.Update(keyPress('9'))
	assert.Equal(t, 2, m.Selected, "out of range number ignored")

	m, _ = m.Update(keyPress('1'))
	m, _ = m.Update(specialKey(tea.KeyEnter))
	assert.False(t, m.IsCorrect())
}

func TestMultiChoice_FrozenAfterSubmit(t *testing.T) {
	m := NewMultiChoice(options())
	m, _ = m.Update(specialKey(tea.KeyEnter))
	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 0, m.Selected)
	assert.Equal(t, 0, m.ChosenIndex)
}

func TestMultiChoice_View(t *testing.T) {
	m := NewMultiChoice(options())
	view := m.View(0)
	assert.Contains(t, view, "A)  Aspirin")
	assert.Contains(t, view, "C)  Warfarin")
	assert.Equal(t, 3, strings.Count(view, "\n"))
}

func TestMultiChoice_NoOptions(t *testing.T) {
	m := NewMultiChoice(nil)
	m, _ = m.Update(specialKey(tea.KeyEnter))
	assert.False(t, m.Submitted)
	assert.False(t, m.IsCorrect())
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := false
	m := NewMenu([]MenuItem{
		{Label: "Disabled", Disabled: true},
		{Label: "Cardiology", Action: func() tea.Cmd { called = true; return nil }},
		{Label: "Off", Disabled: true},
		{Label: "Exit"},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyUp))
	m, _ = m.Update(specialKey(tea.KeyEnter))
	assert.True(t, called)
}

func TestMenu_ViewRowsScrolls(t *testing.T) {
	var items []MenuItem
	for _, l := range []string{"one", "two", "three", "four", "five"} {
		items = append(items, MenuItem{Label: l})
	}
	m := NewMenu(items)
	m.Selected = 3

	view := m.ViewRows(2)
	assert.NotContains(t, view, "one")
	assert.Contains(t, view, "three")
	assert.Contains(t, view, "four")
	assert.NotContains(t, view, "five")

	assert.Contains(t, m.View(), "five")
}

func TestTextInput(t *testing.T) {
	ti := NewTextInput("Ask the AI", "Type a question...", 200)
	for _, r := range " why? " {
		ti, _ = ti.Update(keyPress(r))
	}
	assert.Equal(t, "why?", ti.Value())
	assert.Contains(t, ti.View(), "Ask the AI")

	ti.Reset()
	assert.Equal(t, "", ti.Value())
}

func TestProgressBar(t *testing.T) {
	view := NewProgressBar("Q 2/4", 0.5, true, 30).View()
	assert.Contains(t, view, "Q 2/4")
	assert.Contains(t, view, "50%")
}
