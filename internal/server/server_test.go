package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrix/medtrix/internal/content"
	"github.com/medtrix/medtrix/internal/history"
	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/store"
)

const manifestJSON = `[{"filename":"01_Cardiology_Basics.json","title":"Cardiology"},{"filename":"02_renal.json"}]`

const cardioJSON = `{
  "title": "Cardiology",
  "questions": [
    {"uid": "c1", "question": {"text": "Most common cause of mitral stenosis?"},
     "options": {"a": {"text": "Rheumatic fever", "correct": true}, "b": "Endocarditis"}},
    {"uid": 2, "text": "S3 heart sound suggests?", "options": ["Volume overload", "Stiff ventricle"]}
  ]
}`

func contentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, quiz.ManifestName), []byte(manifestJSON), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, quiz.DataDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, quiz.DataDir, "01_Cardiology_Basics.json"), []byte(cardioJSON), 0o644))
	return dir
}

func newTestServer(t *testing.T, hist *history.Store) *httptest.Server {
	t.Helper()
	src, err := content.NewDirSource(contentDir(t))
	require.NoError(t, err)
	srv := httptest.NewServer(New(Options{Source: src, History: hist}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServer_Content(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := get(t, srv.URL+"/quiz_manifest.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, manifestJSON, body)

	resp, body = get(t, srv.URL+"/quiz_data/01_Cardiology_Basics.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, cardioJSON, body)

	resp, _ = get(t, srv.URL+"/quiz_data/02_renal.json")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestServer_CORS(t *testing.T) {
	srv := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/quiz_manifest.json", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://quiz.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_NoHistory(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, _ := get(t, srv.URL+"/api/history")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_History(t *testing.T) {
	s, err := store.Open("file:server_history?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	hist := history.New(s.KV())
	srv := newTestServer(t, hist)

	resp, body := get(t, srv.URL+"/api/history")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	ctx := context.Background()
	hist.SaveResult(ctx, quiz.Question{UID: "c1", Text: "Q1"}, true, "01_Cardiology_Basics.json")
	hist.SaveResult(ctx, quiz.Question{UID: "c2", Text: "Q2"}, false, "01_Cardiology_Basics.json")

	_, body = get(t, srv.URL+"/api/history")
	var records []history.Record
	require.NoError(t, json.Unmarshal([]byte(body), &records))
	require.Len(t, records, 2)
	assert.Equal(t, quiz.UID("c1"), records[0].UID)

	_, body = get(t, srv.URL+"/api/history/summary")
	var sum history.Summary
	require.NoError(t, json.Unmarshal([]byte(body), &sum))
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Correct)
}

// The repository reads the served layout through an HTTP source.
func TestServer_RepositoryOverHTTP(t *testing.T) {
	srv := newTestServer(t, nil)

	src, err := content.NewHTTPSource(srv.URL, srv.Client())
	require.NoError(t, err)
	repo := quiz.NewRepository(src)
	ctx := context.Background()

	manifest := repo.Manifest(ctx)
	require.Len(t, manifest, 2)
	assert.Equal(t, "Cardiology", manifest[0].DisplayTitle())
	assert.Equal(t, "renal", manifest[1].DisplayTitle())

	doc, ok := repo.Quiz(ctx, "01_Cardiology_Basics.json")
	require.True(t, ok)
	require.Len(t, doc.Questions, 2)
	assert.Equal(t, "Most common cause of mitral stenosis?", doc.Questions[0].Text)
	assert.Equal(t, []quiz.Option{{Text: "Rheumatic fever", Correct: true}, {Text: "Endocarditis"}}, doc.Questions[0].Options)
	assert.Equal(t, quiz.UID("2"), doc.Questions[1].UID)
	assert.Equal(t, "Cardiology", doc.Title())

	_, ok = repo.Quiz(ctx, "02_renal.json")
	assert.False(t, ok)
}
