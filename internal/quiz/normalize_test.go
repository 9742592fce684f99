package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalizeJSON(t *testing.T, src string) Question {
	t.Helper()
	rq, err := DecodeQuestion(json.RawMessage(src))
	require.NoError(t, err)
	return Normalize(rq)
}

func TestNormalize_Text(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"string question", `{"question":"What is the normal pH?"}`, "What is the normal pH?"},
		{"object with text", `{"question":{"text":"Define preload","img":"x.png"}}`, "Define preload"},
		{"object without text", `{"question":{"img":"x.png","n":2}}`, `{"img":"x.png","n":2}`},
		{"object with empty text", `{"question":{"text":""}}`, `{"text":""}`},
		{"object keeps key order", `{"question":{"b":1,"a":2}}`, `{"b":1,"a":2}`},
		{"numeric question", `{"question":42}`, "42"},
		{"absent uses text", `{"text":"Fallback text"}`, "Fallback text"},
		{"null uses text", `{"question":null,"text":"Fallback"}`, "Fallback"},
		{"empty string uses text", `{"question":"","text":"Fallback"}`, "Fallback"},
		{"nothing at all", `{"uid":"q1"}`, ""},
		{"numeric text", `{"text":7}`, "7"},
		{"bare string element", `"Loose question"`, "Loose question"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeJSON(t, tt.src).Text)
		})
	}
}

func TestNormalize_OptionList(t *testing.T) {
	q := normalizeJSON(t, `{
		"question": "Which is a beta blocker?",
		"options": [
			"Amlodipine",
			{"text": "Metoprolol", "correct": true},
			{"value": "Lisinopril"},
			{"text": "", "value": "Losartan", "correct": 0},
			7,
			null
		]
	}`)

	assert.Equal(t, []Option{
		{Text: "Amlodipine"},
		{Text: "Metoprolol", Correct: true},
		{Text: "Lisinopril"},
		{Text: "Losartan"},
		{Text: "7"},
		{Text: ""},
	}, q.Options)
	assert.Equal(t, []int{1}, q.CorrectIndexes())
	assert.True(t, q.IsCorrect(1))
	assert.False(t, q.IsCorrect(0))
	assert.False(t, q.IsCorrect(99))
}

func TestNormalize_KeyedOptions(t *testing.T) {
	q := normalizeJSON(t, `{
		"question": "Pick the loop diuretic",
		"options": {
			"b": {"text": "Furosemide", "correct": true},
			"a": "Spironolactone",
			"c": {"value": "Hydrochlorothiazide"}
		}
	}`)

	require.True(t, q.HasOptions())
	assert.Equal(t, []Option{
		{Text: "Furosemide", Correct: true},
		{Text: "Spironolactone"},
		{Text: "Hydrochlorothiazide"},
	}, q.Options)
}

func TestNormalize_KeyedOptionsIndexOrder(t *testing.T) {
	q := normalizeJSON(t, `{"options": {"x": "last", "10": "ten", "2": "two", "01": "zero-one"}}`)

	texts := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		texts = append(texts, o.Text)
	}
	assert.Equal(t, []string{"two", "ten", "last", "zero-one"}, texts)
}

func TestNormalize_PrimitiveOptions(t *testing.T) {
	for _, src := range []string{`"Aspirin"`, `12.5`, `true`, `false`} {
		q := normalizeJSON(t, `{"question":"q","options":[`+src+`]}`)
		require.Len(t, q.Options, 1)
		assert.Equal(t, Option{Text: textOf(json.RawMessage(src)), Correct: false}, q.Options[0], src)
	}
}

func TestNormalize_AbsentOptions(t *testing.T) {
	for _, src := range []string{
		`{"question":"q"}`,
		`{"question":"q","options":null}`,
		`{"question":"q","options":false}`,
		`{"question":"q","options":""}`,
		`{"question":"q","options":0}`,
	} {
		q := normalizeJSON(t, src)
		assert.Nil(t, q.Options, src)
		assert.False(t, q.HasOptions(), src)
	}
}

func TestNormalize_ScalarOptionField(t *testing.T) {
	q := normalizeJSON(t, `{"question":"q","options":"AB"}`)
	assert.Equal(t, []Option{{Text: "A"}, {Text: "B"}}, q.Options)

	q = normalizeJSON(t, `{"question":"q","options":5}`)
	assert.NotNil(t, q.Options)
	assert.Empty(t, q.Options)

	q = normalizeJSON(t, `{"question":"q","options":[]}`)
	assert.NotNil(t, q.Options)
	assert.Empty(t, q.Options)
}

func TestNormalize_Passthrough(t *testing.T) {
	q := normalizeJSON(t, `{
		"uid": 1042,
		"question": {"text": "Name the nerve"},
		"explanation": "The radial nerve.",
		"difficulty": "hard",
		"options": ["Radial"]
	}`)

	assert.Equal(t, UID("1042"), q.UID)
	assert.Equal(t, "The radial nerve.", q.Explanation)
	assert.JSONEq(t, `"hard"`, string(q.Extra["difficulty"]))
	assert.Contains(t, q.Extra, "question")
	assert.NotContains(t, q.Extra, "options")

	out, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"uid": 1042,
		"question": {"text": "Name the nerve"},
		"explanation": "The radial nerve.",
		"difficulty": "hard",
		"text": "Name the nerve",
		"options": [{"text": "Radial", "correct": false}]
	}`, string(out))
}

func TestNormalize_MarshalWithoutOptions(t *testing.T) {
	q := normalizeJSON(t, `{"question":"Open question","uid":"u1"}`)

	out, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, `{"question":"Open question","uid":"u1","text":"Open question"}`, string(out))
}
