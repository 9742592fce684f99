package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestHTTPSource_Fetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		switch r.URL.Path {
		case "/content/quiz_manifest.json":
			_, _ = w.Write([]byte(`[{"filename":"a.json"}]`))
		case "/content/quiz_data/broken.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL+"/content", srv.Client())
	require.NoError(t, err)
	ctx := context.Background()

	data, err := src.Fetch(ctx, "quiz_manifest.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"filename":"a.json"}]`, string(data))
	assert.Equal(t, "/content/quiz_manifest.json", gotPath)

	_, err = src.Fetch(ctx, "quiz_data/missing.json")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.Fetch(ctx, "quiz_data/broken.json")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestHTTPSource_RejectsBadScheme(t *testing.T) {
	_, err := NewHTTPSource("ftp://example.com/", nil)
	assert.Error(t, err)
}

func TestDirSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "quiz_data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quiz_data", "01_a.json"), []byte(`{"questions":[]}`), 0o644))

	src, err := NewDirSource(dir)
	require.NoError(t, err)
	ctx := context.Background()

	data, err := src.Fetch(ctx, "quiz_data/01_a.json")
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[]}`, string(data))

	_, err = src.Fetch(ctx, "quiz_manifest.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirSource_SizeLimit(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "huge.json"))
	require.NoError(t, err)
	require.NoError(t, f.Truncate(maxResourceSize+1))
	require.NoError(t, f.Close())

	src, err := NewDirSource(dir)
	require.NoError(t, err)

	_, err = src.Fetch(context.Background(), "huge.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestDirSource_MissingDir(t *testing.T) {
	_, err := NewDirSource(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFetch_InvalidNames(t *testing.T) {
	src, err := NewDirSource(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", ".", "../secret.json", "/etc/passwd", "quiz_data/../../x.json"} {
		_, err := src.Fetch(context.Background(), name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestParseGCSLocation(t *testing.T) {
	tests := []struct {
		in      string
		bucket  string
		prefix  string
		wantErr bool
	}{
		{in: "gs://medtrix-content", bucket: "medtrix-content"},
		{in: "gs://medtrix-content/", bucket: "medtrix-content"},
		{in: "gs://medtrix-content/v2/public/", bucket: "medtrix-content", prefix: "v2/public"},
		{in: "gs://", wantErr: true},
		{in: "s3://bucket", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bucket, prefix, err := ParseGCSLocation(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}

func TestGCSSource_Fetch(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/medtrix-content/v2/quiz_manifest.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"filename":"a.json"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	src, err := NewGCSSource(ctx, "medtrix-content", "v2",
		option.WithEndpoint(srv.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	defer src.Close()

	data, err := src.Fetch(ctx, "quiz_manifest.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"filename":"a.json"}]`, string(data))

	_, err = src.Fetch(ctx, "quiz_data/missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "gs://medtrix-content/v2/quiz_data/missing.json")

	assert.Equal(t, []string{
		"/medtrix-content/v2/quiz_manifest.json",
		"/medtrix-content/v2/quiz_data/missing.json",
	}, paths)
}

func TestOpen_Dispatch(t *testing.T) {
	ctx := context.Background()

	src, err := Open(ctx, "https://example.com/medtrix")
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, src)

	dir := t.TempDir()
	src, err = Open(ctx, dir)
	require.NoError(t, err)
	ds, ok := src.(*DirSource)
	require.True(t, ok)
	assert.Equal(t, dir, ds.Dir())

	_, err = Open(ctx, "")
	assert.Error(t, err)
}
