package quiz

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/medtrix/medtrix/internal/content"
)

// fakeSource serves resources from memory and counts fetches per name.
type fakeSource struct {
	mu     sync.Mutex
	files  map[string]string
	fails  map[string]error
	calls  map[string]int
	delay  time.Duration
	active atomic.Int32
	peak   atomic.Int32
}

func newFakeSource(files map[string]string) *fakeSource {
	return &fakeSource{files: files, fails: map[string]error{}, calls: map[string]int{}}
}

func (f *fakeSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	if err := f.fails[name]; err != nil {
		return nil, err
	}
	data, ok := f.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", content.ErrNotFound, name)
	}
	return []byte(data), nil
}

func (f *fakeSource) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) set(name, data string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = data
	if err != nil {
		f.fails[name] = err
	} else {
		delete(f.fails, name)
	}
}

const cardiology = `{"title":"Cardiology","questions":[{"uid":"c1","question":"Q1","options":["A","B"]}]}`

func TestRepository_QuizFetchesOnce(t *testing.T) {
	src := newFakeSource(map[string]string{"quiz_data/01_cardio.json": cardiology})
	repo := NewRepository(src)
	ctx := context.Background()

	first, ok := repo.Quiz(ctx, "01_cardio.json")
	require.True(t, ok)
	second, ok := repo.Quiz(ctx, "01_cardio.json")
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Equal(t, 1, src.count("quiz_data/01_cardio.json"))
	assert.Equal(t, "Q1", first.Questions[0].Text)
}

func TestRepository_QuizFailureNotCached(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	src := newFakeSource(map[string]string{})
	repo := NewRepository(src, WithLogger(zap.New(core)))
	ctx := context.Background()

	doc, ok := repo.Quiz(ctx, "02_renal.json")
	assert.False(t, ok)
	assert.Nil(t, doc)
	assert.Equal(t, 1, logs.FilterMessage("quiz unavailable").Len())

	src.set("quiz_data/02_renal.json", `{"questions":[{"question":`, nil)
	_, ok = repo.Quiz(ctx, "02_renal.json")
	assert.False(t, ok, "parse failure")

	src.set("quiz_data/02_renal.json", `{"questions":[]}`, nil)
	doc, ok = repo.Quiz(ctx, "02_renal.json")
	require.True(t, ok)
	assert.Empty(t, doc.Questions)
	assert.Equal(t, 3, src.count("quiz_data/02_renal.json"))
}

func TestRepository_ManifestFailureReturnsEmpty(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	src := newFakeSource(map[string]string{})
	src.fails[ManifestName] = &content.StatusError{URL: "http://x/quiz_manifest.json", StatusCode: 503}
	repo := NewRepository(src, WithLogger(zap.New(core)))
	ctx := context.Background()

	entries := repo.Manifest(ctx)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "manifest unavailable", logs.All()[0].Message)

	src.set(ManifestName, `{"not":"a list"}`, nil)
	assert.Empty(t, repo.Manifest(ctx))

	src.set(ManifestName, `[{"filename":"01_cardio.json"}]`, nil)
	entries = repo.Manifest(ctx)
	require.Len(t, entries, 1)
	assert.Equal(t, "cardio", entries[0].DisplayTitle())

	repo.Manifest(ctx)
	assert.Equal(t, 3, src.count(ManifestName))
}

func TestRepository_Invalidate(t *testing.T) {
	src := newFakeSource(map[string]string{
		ManifestName:              `[{"filename":"01_cardio.json"}]`,
		"quiz_data/01_cardio.json": cardiology,
	})
	repo := NewRepository(src)
	ctx := context.Background()

	repo.Manifest(ctx)
	_, ok := repo.Quiz(ctx, "01_cardio.json")
	require.True(t, ok)

	repo.Invalidate()
	src.set("quiz_data/01_cardio.json", `{"questions":[{"question":"Updated"}]}`, nil)

	doc, ok := repo.Quiz(ctx, "01_cardio.json")
	require.True(t, ok)
	assert.Equal(t, "Updated", doc.Questions[0].Text)
	repo.Manifest(ctx)

	assert.Equal(t, 2, src.count(ManifestName))
	assert.Equal(t, 2, src.count("quiz_data/01_cardio.json"))
}

func TestRepository_ConcurrentMissesCollapse(t *testing.T) {
	src := newFakeSource(map[string]string{"quiz_data/01_cardio.json": cardiology})
	src.delay = 50 * time.Millisecond
	repo := NewRepository(src)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := repo.Quiz(context.Background(), "01_cardio.json")
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, src.count("quiz_data/01_cardio.json"))
}

func TestRepository_Preload(t *testing.T) {
	src := newFakeSource(map[string]string{
		ManifestName: `[
			{"filename":"01_a.json"},
			{"filename":"02_b.json"},
			{"filename":"03_c.json"},
			{"filename":"04_missing.json"}
		]`,
		"quiz_data/01_a.json": cardiology,
		"quiz_data/02_b.json": `{"questions":[{"question":"x"},{"question":"y"}]}`,
		"quiz_data/03_c.json": `["not", "a", "document"]`,
	})
	src.delay = 10 * time.Millisecond
	repo := NewRepository(src)

	report, err := repo.Preload(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 3, report.Questions)
	assert.Equal(t, []string{"03_c.json", "04_missing.json"}, report.FailedFiles())
	assert.LessOrEqual(t, src.peak.Load(), int32(2))

	_, ok := repo.Quiz(context.Background(), "01_a.json")
	require.True(t, ok)
	assert.Equal(t, 1, src.count("quiz_data/01_a.json"))
}

func TestRepository_PreloadCancelled(t *testing.T) {
	src := newFakeSource(map[string]string{
		ManifestName:          `[{"filename":"01_a.json"}]`,
		"quiz_data/01_a.json": cardiology,
	})
	repo := NewRepository(src)
	repo.Manifest(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Preload(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
