// Package history keeps the answer log: one record per question uid, the
// latest attempt replacing any earlier one.
package history

import (
	"context"
	"encoding/json"
	"slices"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/store"
)

// Record is one answered question.
type Record struct {
	UID         quiz.UID      `json:"uid,omitempty"`
	Text        string        `json:"text"`
	Explanation string        `json:"explanation,omitempty"`
	Timestamp   int64         `json:"timestamp"`
	IsCorrect   bool          `json:"isCorrect"`
	Source      string        `json:"source"`
	Options     []quiz.Option `json:"options,omitempty"`
}

// Time returns the record timestamp.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Store reads and writes the log as a single JSON array under
// store.KeyHistory. Writes within one process are serialized; separate
// processes sharing a database can still lose an update.
type Store struct {
	kv  store.KV
	log *zap.Logger
	now func() time.Time

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a history store on kv.
func New(kv store.KV, opts ...Option) *Store {
	s := &Store{kv: kv, log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("history")
	return s
}

// SaveResult records an attempt at q. Any earlier record with the same uid
// is removed and the new one appended. Stored entries that do not decode as
// records are written back unchanged. Storage failures are logged and
// otherwise ignored.
func (s *Store) SaveResult(ctx context.Context, q quiz.Question, isCorrect bool, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		// An unreadable store is left alone rather than overwritten.
		s.log.Debug("read history", zap.Error(err))
		return
	}

	rec, err := json.Marshal(Record{
		UID:         q.UID,
		Text:        q.Text,
		Explanation: q.Explanation,
		Timestamp:   s.now().UnixMilli(),
		IsCorrect:   isCorrect,
		Source:      source,
		Options:     q.Options,
	})
	if err != nil {
		s.log.Debug("encode history record", zap.Error(err))
		return
	}
	entries = slices.DeleteFunc(entries, func(e json.RawMessage) bool {
		uid, ok := uidOf(e)
		return ok && uid == q.UID
	})
	entries = append(entries, rec)

	data, err := json.Marshal(entries)
	if err != nil {
		s.log.Debug("encode history", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, store.KeyHistory, string(data)); err != nil {
		s.log.Debug("write history", zap.Error(err))
	}
}

// Records returns the log in insertion order. Entries that do not decode
// as a Record are skipped.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(entries))
	for i, e := range entries {
		var r Record
		if err := json.Unmarshal(e, &r); err != nil {
			s.log.Debug("skipping history entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// Clear deletes the log.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, store.KeyHistory)
}

// load reads the raw log entries. A missing value, or one that is not a
// JSON array, is an empty log; only store failures are returned.
func (s *Store) load(ctx context.Context) ([]json.RawMessage, error) {
	raw, ok, err := s.kv.Get(ctx, store.KeyHistory)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Debug("discarding unparseable history", zap.Error(err))
		return nil, nil
	}
	return entries, nil
}

// uidOf extracts the uid of a stored entry. ok is false when the entry is
// not an object or its uid cannot be read.
func uidOf(entry json.RawMessage) (uid quiz.UID, ok bool) {
	var v struct {
		UID quiz.UID `json:"uid"`
	}
	if err := json.Unmarshal(entry, &v); err != nil {
		return "", false
	}
	return v.UID, true
}

// SourceStat counts attempts for one quiz file.
type SourceStat struct {
	Source  string `json:"source"`
	Total   int    `json:"total"`
	Correct int    `json:"correct"`
}

// Summary aggregates the log.
type Summary struct {
	Total    int          `json:"total"`
	Correct  int          `json:"correct"`
	BySource []SourceStat `json:"bySource"`
}

// Accuracy is Correct/Total, or 0 for an empty log.
func (s Summary) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// Summarize aggregates records; BySource is sorted by source name.
func Summarize(records []Record) Summary {
	var sum Summary
	idx := make(map[string]int)
	for _, r := range records {
		sum.Total++
		i, ok := idx[r.Source]
		if !ok {
			i = len(sum.BySource)
			idx[r.Source] = i
			sum.BySource = append(sum.BySource, SourceStat{Source: r.Source})
		}
		sum.BySource[i].Total++
		if r.IsCorrect {
			sum.Correct++
			sum.BySource[i].Correct++
		}
	}
	sort.Slice(sum.BySource, func(a, b int) bool {
		return sum.BySource[a].Source < sum.BySource[b].Source
	})
	return sum
}

// Summary reads the log and aggregates it.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(records), nil
}
