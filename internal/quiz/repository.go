package quiz

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/medtrix/medtrix/internal/content"
)

// ManifestName is the manifest resource name.
const ManifestName = "quiz_manifest.json"

// DataDir is the directory holding quiz documents.
const DataDir = "quiz_data"

// Repository loads and caches the manifest and quiz documents. Caches fill
// on the first successful fetch and live until Invalidate. Failures are
// never cached. Returned values are shared and must not be modified.
type Repository struct {
	src content.Source
	log *zap.Logger

	mu       sync.RWMutex
	gen      uint64
	manifest []ManifestEntry
	docs     map[string]*Document

	flight singleflight.Group
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithLogger sets the logger used for fetch failures.
func WithLogger(l *zap.Logger) RepositoryOption {
	return func(r *Repository) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRepository creates a repository reading from src.
func NewRepository(src content.Source, opts ...RepositoryOption) *Repository {
	r := &Repository{
		src:  src,
		log:  zap.NewNop(),
		docs: make(map[string]*Document),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("quiz")
	return r
}

// Manifest returns the list of quiz files. Any failure is logged and
// yields an empty list; the next call tries again.
func (r *Repository) Manifest(ctx context.Context) []ManifestEntry {
	r.mu.RLock()
	cached, gen := r.manifest, r.gen
	r.mu.RUnlock()
	if cached != nil {
		return cached
	}

	v, err, _ := r.flight.Do("manifest", func() (any, error) {
		r.mu.RLock()
		cached := r.manifest
		r.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}
		data, err := r.src.Fetch(ctx, ManifestName)
		if err != nil {
			return nil, fmt.Errorf("fetch manifest: %w", err)
		}
		entries, err := DecodeManifest(data)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		if r.gen == gen {
			r.manifest = entries
		}
		r.mu.Unlock()
		return entries, nil
	})
	if err != nil {
		r.log.Warn("manifest unavailable", zap.Error(err))
		return []ManifestEntry{}
	}
	return v.([]ManifestEntry)
}

// Quiz returns the normalized document for filename, or false when it
// cannot be fetched or parsed.
func (r *Repository) Quiz(ctx context.Context, filename string) (*Document, bool) {
	doc, err := r.LoadQuiz(ctx, filename)
	if err != nil {
		r.log.Warn("quiz unavailable", zap.String("file", filename), zap.Error(err))
		return nil, false
	}
	return doc, true
}

// LoadQuiz is Quiz with the failure reason returned instead of logged.
func (r *Repository) LoadQuiz(ctx context.Context, filename string) (*Document, error) {
	r.mu.RLock()
	doc, ok := r.docs[filename]
	gen := r.gen
	r.mu.RUnlock()
	if ok {
		return doc, nil
	}

	v, err, _ := r.flight.Do("quiz/"+filename, func() (any, error) {
		r.mu.RLock()
		doc, ok := r.docs[filename]
		r.mu.RUnlock()
		if ok {
			return doc, nil
		}
		data, err := r.src.Fetch(ctx, DataDir+"/"+filename)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", filename, err)
		}
		doc, err = DecodeDocument(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		r.mu.Lock()
		if r.gen == gen {
			r.docs[filename] = doc
		}
		r.mu.Unlock()
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Document), nil
}

// Invalidate drops every cached manifest and document. Fetches already in
// flight complete but do not repopulate the cache.
func (r *Repository) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.manifest = nil
	r.docs = make(map[string]*Document)
}

// PreloadReport summarizes a Preload run.
type PreloadReport struct {
	Loaded    int
	Questions int
	Failed    map[string]error
}

// FailedFiles returns the names of files that failed, sorted.
func (p PreloadReport) FailedFiles() []string {
	names := make([]string, 0, len(p.Failed))
	for n := range p.Failed {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Preload fetches every file listed in the manifest with at most limit
// fetches in flight, filling the cache. A cancelled context stops it early.
func (r *Repository) Preload(ctx context.Context, limit int) (PreloadReport, error) {
	entries := r.Manifest(ctx)
	report := PreloadReport{Failed: make(map[string]error)}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := r.LoadQuiz(gctx, e.Filename)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				report.Failed[e.Filename] = err
				return nil
			}
			report.Loaded++
			report.Questions += len(doc.Questions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}
