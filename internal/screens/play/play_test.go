package play

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrix/medtrix/internal/llm"
	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/router"
)

type fakeLoader struct {
	doc *quiz.Document
}

func (f *fakeLoader) Quiz(_ context.Context, _ string) (*quiz.Document, bool) {
	return f.doc, f.doc != nil
}

type savedResult struct {
	uid     quiz.UID
	correct bool
	source  string
}

type fakeRecorder struct {
	saved []savedResult
}

func (f *fakeRecorder) SaveResult(_ context.Context, q quiz.Question, isCorrect bool, source string) {
	f.saved = append(f.saved, savedResult{uid: q.UID, correct: isCorrect, source: source})
}

type fakeExplainer struct {
	prompts  []string
	excerpts []string
	sessions []string
	purposes []string
	reply    string
}

func (f *fakeExplainer) Ask(ctx context.Context, prompt, excerpt string) string {
	f.prompts = append(f.prompts, prompt)
	f.excerpts = append(f.excerpts, excerpt)
	f.sessions = append(f.sessions, llm.SessionFrom(ctx))
	f.purposes = append(f.purposes, llm.PurposeFrom(ctx))
	return f.reply
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testDoc() *quiz.Document {
	return &quiz.Document{Questions: []quiz.Question{
		{
			UID:  "q1",
			Text: "First-line treatment of anaphylaxis?",
			Options: []quiz.Option{
				{Text: "Antihistamine"},
				{Text: "IM adrenaline", Correct: true},
			},
			Explanation: "Adrenaline reverses bronchospasm and hypotension.",
		},
		{
			UID:  "q2",
			Text: "Describe Virchow's triad.",
		},
		{
			UID:     "q3",
			Text:    "Most common site of ectopic pregnancy?",
			Options: []quiz.Option{{Text: "Ampulla", Correct: true}, {Text: "Ovary"}},
		},
	}}
}

func newTestScreen(t *testing.T, doc *quiz.Document) (*PlayScreen, *fakeRecorder, *fakeExplainer) {
	t.Helper()
	rec := &fakeRecorder{}
	ex := &fakeExplainer{reply: "Because adrenaline."}
	s := New(Deps{
		Loader:    &fakeLoader{doc: doc},
		Recorder:  rec,
		Explainer: ex,
		SessionID: "sess-1",
	}, quiz.ManifestEntry{Filename: "04_emergency_medicine.json"})

	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
	return s, rec, ex
}

func send(s *PlayScreen, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

func TestPlay_TitleFromManifest(t *testing.T) {
	s, _, _ := newTestScreen(t, testDoc())
	assert.Equal(t, "emergency medicine", s.Title())
	assert.Equal(t, "1/3  ✓ 0", s.Status())
}

func TestPlay_TitleFromDocument(t *testing.T) {
	doc := testDoc()
	doc.Meta = map[string]json.RawMessage{"title": json.RawMessage(`"Emergency"`)}
	s, _, _ := newTestScreen(t, doc)
	assert.Equal(t, "Emergency", s.Title())
}

func TestPlay_CorrectAnswerRecorded(t *testing.T) {
	s, rec, _ := newTestScreen(t, testDoc())

	send(s, keyPress('2'), specialKey(tea.KeyEnter))

	require.True(t, s.revealed)
	require.Len(t, rec.saved, 1)
	assert.Equal(t, savedResult{uid: "q1", correct: true, source: "04_emergency_medicine.json"}, rec.saved[0])
	assert.Equal(t, 1, s.correct)

	view := s.View(100, 30)
	assert.Contains(t, view, "Correct")
	assert.Contains(t, view, "Adrenaline reverses bronchospasm")
}

func TestPlay_WrongAnswerShowsKey(t *testing.T) {
	s, rec, _ := newTestScreen(t, testDoc())

	send(s, specialKey(tea.KeyEnter))

	require.Len(t, rec.saved, 1)
	assert.False(t, rec.saved[0].correct)
	assert.Contains(t, s.View(100, 30), "Incorrect. Answer: B")
}

func TestPlay_QuestionWithoutOptionsNotRecorded(t *testing.T) {
	s, rec, _ := newTestScreen(t, testDoc())

	send(s, specialKey(tea.KeyEnter), keyPress('n'))
	require.Equal(t, 1, s.index)
	assert.Contains(t, s.View(100, 30), "No options for this question")

	send(s, specialKey(tea.KeyEnter))
	assert.True(t, s.revealed)
	assert.Len(t, rec.saved, 1)
	assert.Equal(t, 1, s.answered)
}

func TestPlay_FinishAndPop(t *testing.T) {
	s, rec, _ := newTestScreen(t, testDoc())

	send(s,
		keyPress('2'), specialKey(tea.KeyEnter), specialKey(tea.KeyEnter), // q1 correct
		specialKey(tea.KeyEnter), specialKey(tea.KeyEnter), // q2 revealed
		specialKey(tea.KeyEnter), specialKey(tea.KeyEnter), // q3 correct
	)
	require.True(t, s.finished)
	assert.Len(t, rec.saved, 2)
	assert.Contains(t, s.View(100, 30), "2 of 2 correct (100%)")
	assert.Contains(t, s.View(100, 30), "Best streak: 2")

	cmd := send(s, specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestPlay_ExplainOnlyAfterAnswer(t *testing.T) {
	s, _, ex := newTestScreen(t, testDoc())

	assert.Nil(t, send(s, keyPress('e')))

	send(s, specialKey(tea.KeyEnter))
	cmd := send(s, keyPress('e'))
	require.NotNil(t, cmd)
	assert.True(t, s.aiLoading)
	assert.Contains(t, s.View(100, 30), "Asking the AI")

	send(s, cmd())
	assert.False(t, s.aiLoading)
	assert.Contains(t, s.View(100, 30), "Because adrenaline.")

	require.Len(t, ex.prompts, 1)
	assert.Equal(t, explainPrompt, ex.prompts[0])
	assert.Contains(t, ex.excerpts[0], "B) IM adrenaline")
	assert.Equal(t, "sess-1", ex.sessions[0])
	assert.Equal(t, "explain", ex.purposes[0])
}

func TestPlay_StaleExplanationDropped(t *testing.T) {
	s, _, _ := newTestScreen(t, testDoc())

	send(s, specialKey(tea.KeyEnter))
	cmd := send(s, keyPress('e'))
	send(s, keyPress('n'))
	send(s, cmd())

	assert.Equal(t, "", s.aiText)
	assert.NotContains(t, s.View(100, 30), "Because adrenaline.")
}

func TestPlay_CustomQuestion(t *testing.T) {
	s, rec, ex := newTestScreen(t, testDoc())

	send(s, keyPress('?'))
	require.True(t, s.CapturesInput())

	for _, r := range "why not steroids?" {
		send(s, keyPress(r))
	}
	cmd := send(s, specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.False(t, s.CapturesInput())
	assert.Empty(t, rec.saved, "typing in the input must not answer")

	send(s, cmd())
	require.Len(t, ex.prompts, 1)
	assert.Equal(t, "why not steroids?", ex.prompts[0])
	assert.Equal(t, "follow-up", ex.purposes[0])
}

func TestPlay_CustomQuestionCancel(t *testing.T) {
	s, _, ex := newTestScreen(t, testDoc())

	send(s, keyPress('?'), keyPress('x'), specialKey(tea.KeyEscape))
	assert.False(t, s.CapturesInput())
	assert.Empty(t, ex.prompts)
}

func TestPlay_NoExplainerIgnoresAIKeys(t *testing.T) {
	s := New(Deps{Loader: &fakeLoader{doc: testDoc()}}, quiz.ManifestEntry{Filename: "x.json"})
	s.Update(s.Init()())

	send(s, keyPress('?'))
	assert.False(t, s.CapturesInput())

	send(s, specialKey(tea.KeyEnter))
	assert.Nil(t, send(s, keyPress('e')))
}

func TestPlay_LoadFailure(t *testing.T) {
	s, _, _ := newTestScreen(t, nil)
	assert.Contains(t, s.View(80, 20), "Could not load 04_emergency_medicine.json")

	cmd := send(s, specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestPlay_EmptyQuiz(t *testing.T) {
	s, _, _ := newTestScreen(t, &quiz.Document{})
	assert.Contains(t, s.View(80, 20), "no questions")
	assert.Equal(t, "", s.Status())
}

func TestPlay_KeyHints(t *testing.T) {
	s, _, _ := newTestScreen(t, testDoc())
	assert.Equal(t, "Submit", s.KeyHints()[1].Description)

	send(s, specialKey(tea.KeyEnter))
	var keys []string
	for _, h := range s.KeyHints() {
		keys = append(keys, h.Key)
	}
	assert.Equal(t, "Enter/n e ? Esc", strings.Join(keys, " "))
}

func TestPlay_StreakCallout(t *testing.T) {
	var questions []quiz.Question
	for i := 0; i < 5; i++ {
		questions = append(questions, quiz.Question{
			Text:    "Pick A",
			Options: []quiz.Option{{Text: "A", Correct: true}, {Text: "B"}},
		})
	}
	s, _, _ := newTestScreen(t, &quiz.Document{Questions: questions})

	for i := 0; i < 4; i++ {
		send(s, specialKey(tea.KeyEnter))
		assert.NotContains(t, s.View(100, 30), "in a row")
		send(s, specialKey(tea.KeyEnter))
	}
	send(s, specialKey(tea.KeyEnter))
	assert.Contains(t, s.View(100, 30), "5 in a row!")
}
