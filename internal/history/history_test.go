package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/store"
)

type memKV struct {
	mu      sync.Mutex
	data    map[string]string
	failSet error
	failGet error
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return "", false, m.failGet
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) Keys(context.Context) ([]string, error) { return nil, nil }

func (m *memKV) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string]string{}
	return nil
}

// stepClock returns t0, t0+1s, t0+2s, ...
func stepClock(t0 time.Time) func() time.Time {
	var n int
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n-1) * time.Second)
	}
}

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func question(uid, text string) quiz.Question {
	return quiz.Question{
		UID:         quiz.UID(uid),
		Text:        text,
		Explanation: "because",
		Options:     []quiz.Option{{Text: "A", Correct: true}, {Text: "B"}},
	}
}

func TestSaveResult_SameUIDReplaces(t *testing.T) {
	kv := newMemKV()
	h := New(kv, WithClock(stepClock(t0)))
	ctx := context.Background()

	h.SaveResult(ctx, question("q1", "First"), false, "01_cardio.json")
	h.SaveResult(ctx, question("q2", "Second"), true, "01_cardio.json")
	h.SaveResult(ctx, question("q1", "First"), true, "02_renal.json")

	records, err := h.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, quiz.UID("q2"), records[0].UID)
	last := records[1]
	assert.Equal(t, quiz.UID("q1"), last.UID)
	assert.True(t, last.IsCorrect)
	assert.Equal(t, "02_renal.json", last.Source)
	assert.Equal(t, t0.Add(2*time.Second).UnixMilli(), last.Timestamp)
	assert.Equal(t, t0.Add(2*time.Second), last.Time().UTC())
	assert.Equal(t, "because", last.Explanation)
	assert.Len(t, last.Options, 2)
}

func TestSaveResult_WireFormat(t *testing.T) {
	kv := newMemKV()
	h := New(kv, WithClock(func() time.Time { return t0 }))

	h.SaveResult(context.Background(), question("q9", "Name the valve"), true, "03_valves.json")

	assert.JSONEq(t, fmt.Sprintf(`[{
		"uid": "q9",
		"text": "Name the valve",
		"explanation": "because",
		"timestamp": %d,
		"isCorrect": true,
		"source": "03_valves.json",
		"options": [{"text": "A", "correct": true}, {"text": "B", "correct": false}]
	}]`, t0.UnixMilli()), kv.data[store.KeyHistory])
}

func TestSaveResult_UnparseableLogStartsOver(t *testing.T) {
	kv := newMemKV()
	kv.data[store.KeyHistory] = `{"corrupt":`
	h := New(kv)
	ctx := context.Background()

	h.SaveResult(ctx, question("q1", "Q"), true, "a.json")

	records, err := h.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, quiz.UID("q1"), records[0].UID)
}

func TestSaveResult_KeepsUndecodableEntries(t *testing.T) {
	kv := newMemKV()
	kv.data[store.KeyHistory] = `[` +
		`{"uid":"good","text":"t","timestamp":1,"isCorrect":true,"source":"a.json"},` +
		`{"uid":"odd","text":"t","timestamp":"yesterday","isCorrect":true,"source":"a.json"},` +
		`"stray"]`
	h := New(kv, WithClock(func() time.Time { return t0 }))
	ctx := context.Background()

	records, err := h.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, quiz.UID("good"), records[0].UID)

	h.SaveResult(ctx, question("new", "Q"), false, "b.json")

	records, err = h.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, quiz.UID("good"), records[0].UID)
	assert.Equal(t, quiz.UID("new"), records[1].UID)
	assert.Contains(t, kv.data[store.KeyHistory], `"timestamp":"yesterday"`)
	assert.Contains(t, kv.data[store.KeyHistory], `"stray"`)
}

func TestSaveResult_ReplacesUndecodableEntryWithSameUID(t *testing.T) {
	kv := newMemKV()
	kv.data[store.KeyHistory] = `[{"uid":"q1","timestamp":"bad"}]`
	h := New(kv)
	ctx := context.Background()

	h.SaveResult(ctx, question("q1", "Q"), true, "a.json")

	assert.NotContains(t, kv.data[store.KeyHistory], `"bad"`)
	records, err := h.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsCorrect)
}

func TestSaveResult_ReadsNumericUIDs(t *testing.T) {
	kv := newMemKV()
	kv.data[store.KeyHistory] = `[{"uid":12,"text":"old","timestamp":1,"isCorrect":false,"source":"a.json"}]`
	h := New(kv)
	ctx := context.Background()

	h.SaveResult(ctx, question("12", "old"), true, "a.json")

	records, err := h.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsCorrect)
}

func TestSaveResult_WriteFailureSwallowed(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	kv := newMemKV()
	kv.failSet = errors.New("disk full")
	h := New(kv, WithLogger(zap.New(core)))

	assert.NotPanics(t, func() {
		h.SaveResult(context.Background(), question("q1", "Q"), true, "a.json")
	})
	require.Equal(t, 1, logs.FilterMessage("write history").Len())
	assert.Empty(t, kv.data)
}

func TestSaveResult_ReadFailureLeavesLog(t *testing.T) {
	kv := newMemKV()
	kv.data[store.KeyHistory] = `[{"uid":"keep","text":"t","timestamp":1,"isCorrect":true,"source":"a.json"}]`
	kv.failGet = errors.New("database is locked")
	h := New(kv)

	h.SaveResult(context.Background(), question("q1", "Q"), true, "a.json")

	kv.failGet = nil
	records, err := h.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, quiz.UID("keep"), records[0].UID)
}

func TestSaveResult_ConcurrentWritersKeepAll(t *testing.T) {
	h := New(newMemKV())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.SaveResult(ctx, question(fmt.Sprintf("q%d", i), "Q"), i%2 == 0, "a.json")
		}()
	}
	wg.Wait()

	records, err := h.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 20)
}

func TestSummaryAndClear(t *testing.T) {
	h := New(newMemKV())
	ctx := context.Background()

	h.SaveResult(ctx, question("a1", "Q"), true, "b.json")
	h.SaveResult(ctx, question("a2", "Q"), false, "b.json")
	h.SaveResult(ctx, question("a3", "Q"), true, "a.json")

	sum, err := h.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2, sum.Correct)
	assert.InDelta(t, 2.0/3.0, sum.Accuracy(), 1e-9)
	assert.Equal(t, []SourceStat{
		{Source: "a.json", Total: 1, Correct: 1},
		{Source: "b.json", Total: 2, Correct: 1},
	}, sum.BySource)

	require.NoError(t, h.Clear(ctx))
	records, err := h.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, Summarize(records).Accuracy())
}

func TestStore_SQLiteBacked(t *testing.T) {
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	h := New(s.KV())
	ctx := context.Background()

	h.SaveResult(ctx, question("q1", "Q"), false, "a.json")
	h.SaveResult(ctx, question("q1", "Q"), true, "a.json")

	records, err := h.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsCorrect)
}
