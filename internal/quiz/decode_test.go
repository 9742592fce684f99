package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	entries, err := DecodeManifest([]byte(`[
		{"filename": "01_cardiology.json", "title": "Cardiology", "count": 40},
		{"filename": "02_renal.json"}
	]`))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "01_cardiology.json", entries[0].Filename)
	assert.Equal(t, "Cardiology", entries[0].Title)
	assert.JSONEq(t, `40`, string(entries[0].Extra["count"]))
	assert.Equal(t, "renal", entries[1].DisplayTitle())

	out, err := json.Marshal(entries[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"filename":"01_cardiology.json","title":"Cardiology","count":40}`, string(out))
}

func TestDecodeManifest_Empty(t *testing.T) {
	entries, err := DecodeManifest([]byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestDecodeManifest_RejectsBadShapes(t *testing.T) {
	for _, src := range []string{
		`{"filename": "a.json"}`,
		`[{"title": "no filename"}]`,
		`[{"filename": 3}]`,
		`[{"filename": ""}]`,
		`["a.json"]`,
		`not json`,
	} {
		_, err := DecodeManifest([]byte(src))
		assert.Error(t, err, src)
	}
}

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"title": "Cardiology",
		"version": 3,
		"questions": [
			{"uid": "c1", "question": "First-line for stable angina?", "options": [{"text": "Nitrates", "correct": true}, "Digoxin"]},
			{"uid": "c2", "question": {"text": "Define afterload"}}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Cardiology", doc.Title())
	assert.Contains(t, doc.Meta, "version")
	assert.NotContains(t, doc.Meta, "questions")
	require.Len(t, doc.Questions, 2)
	assert.Equal(t, "First-line for stable angina?", doc.Questions[0].Text)
	assert.Equal(t, []int{0}, doc.Questions[0].CorrectIndexes())
	assert.Equal(t, "Define afterload", doc.Questions[1].Text)
	assert.Nil(t, doc.Questions[1].Options)
}

func TestDecodeDocument_NoQuestions(t *testing.T) {
	for _, src := range []string{`{"title":"Empty"}`, `{"questions":null}`} {
		doc, err := DecodeDocument([]byte(src))
		require.NoError(t, err, src)
		assert.Nil(t, doc.Questions, src)
	}
}

func TestDecodeDocument_NonObjectQuestions(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"questions":[{"question":"ok","uid":"1"},"Loose question",12]}`))
	require.NoError(t, err)
	require.Len(t, doc.Questions, 3)
	assert.Equal(t, "ok", doc.Questions[0].Text)
	assert.Equal(t, "Loose question", doc.Questions[1].Text)
	assert.Nil(t, doc.Questions[1].Options)
	assert.Equal(t, "12", doc.Questions[2].Text)
}

func TestDecodeDocument_RejectsBadShapes(t *testing.T) {
	for _, src := range []string{
		`[]`,
		`{"questions": "nope"}`,
		`{"questions": {"a": {}}}`,
		`{"questions": [{"question": "ok"}, null]}`,
		`{"questions": [`,
	} {
		_, err := DecodeDocument([]byte(src))
		assert.Error(t, err, src)
	}

	_, err := DecodeDocument([]byte(`{"questions": 1}`))
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestUID_Unmarshal(t *testing.T) {
	var v struct {
		A UID `json:"a"`
		B UID `json:"b"`
		C UID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"q-17","b":17,"c":null}`), &v))
	assert.Equal(t, UID("q-17"), v.A)
	assert.Equal(t, UID("17"), v.B)
	assert.Equal(t, UID(""), v.C)
}
