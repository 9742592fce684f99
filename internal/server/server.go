// Package server serves quiz content over HTTP in the layout the quiz
// repository fetches: /quiz_manifest.json and /quiz_data/<file>. It also
// exposes the local answer history read-only.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/medtrix/medtrix/internal/content"
	"github.com/medtrix/medtrix/internal/history"
	"github.com/medtrix/medtrix/internal/quiz"
)

// Options configures the handler.
type Options struct {
	// Source provides the manifest and quiz documents.
	Source content.Source

	// History is optional; without it /api/history answers 404.
	History *history.Store

	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string

	Log *zap.Logger
}

type server struct {
	src     content.Source
	history *history.Store
	log     *zap.Logger
}

// New returns the content handler.
func New(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &server{src: opts.Source, history: opts.History, log: log.Named("server")}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.logRequests, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/"+quiz.ManifestName, s.serveFile(func(*http.Request) string {
		return quiz.ManifestName
	}))
	r.Get("/"+quiz.DataDir+"/{file}", s.serveFile(func(r *http.Request) string {
		return quiz.DataDir + "/" + chi.URLParam(r, "file")
	}))

	r.Route("/api/history", func(hr chi.Router) {
		hr.Get("/", s.listHistory)
		hr.Get("/summary", s.historySummary)
	})

	return r
}

func (s *server) serveFile(name func(*http.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := name(r)
		data, err := s.src.Fetch(r.Context(), n)
		switch {
		case err == nil:
		case errors.Is(err, content.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
			return
		case errors.Is(err, content.ErrInvalidName):
			http.Error(w, "invalid name", http.StatusBadRequest)
			return
		default:
			s.log.Warn("fetch failed", zap.String("name", n), zap.Error(err))
			http.Error(w, "content unavailable", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(data)
	}
}

func (s *server) listHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.NotFound(w, r)
		return
	}
	records, err := s.history.Records(r.Context())
	if err != nil {
		s.log.Warn("read history", zap.Error(err))
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	writeJSON(w, records)
}

func (s *server) historySummary(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.NotFound(w, r)
		return
	}
	sum, err := s.history.Summary(r.Context())
	if err != nil {
		s.log.Warn("summarize history", zap.Error(err))
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, sum)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("serving content", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
