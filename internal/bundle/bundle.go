// Package bundle installs versioned quiz content archives into a local
// content directory.
//
// A release at <base> consists of:
//
//	<base>/LATEST                                  latest version, e.g. v1.4.0
//	<base>/<version>/medtrix-content-<version>.tar.gz
//	<base>/<version>/checksums.txt                 sha256sum format
//
// Only quiz_manifest.json and quiz_data/*.json are extracted; every
// document must pass the same validation the quiz repository applies.
package bundle

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/medtrix/medtrix/internal/quiz"
)

var (
	ErrAlreadyCurrent = errors.New("content is already up to date")
	ErrChecksum       = errors.New("checksum verification failed")
	ErrBadVersion     = errors.New("invalid content version")
)

const (
	// VersionFile records the installed version inside the content dir.
	VersionFile = "VERSION"

	latestFile    = "LATEST"
	checksumsFile = "checksums.txt"

	maxArchiveSize = 64 << 20
)

// AssetName returns the archive name for version.
func AssetName(version string) string {
	return "medtrix-content-" + version + ".tar.gz"
}

// Syncer downloads content releases.
type Syncer struct {
	base   *url.URL
	client *http.Client
	log    *zap.Logger
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Syncer) { s.client = c }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(s *Syncer) { s.client = &http.Client{Timeout: d} }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Syncer) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Syncer for releases published under baseURL.
func New(baseURL string, opts ...Option) (*Syncer, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse release URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("release URL %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	s := &Syncer{base: u, client: &http.Client{Timeout: 2 * time.Minute}, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("bundle")
	return s, nil
}

// SyncInput selects what to install where.
type SyncInput struct {
	// Dir is the content directory.
	Dir string

	// Version to install. Empty means the published latest.
	Version string

	// Force reinstalls even when Dir is already current.
	Force bool
}

// Progress reports a sync stage.
type Progress struct {
	Stage   string
	Message string
}

// Result describes a completed sync.
type Result struct {
	Version  string
	Previous string
	Files    []string
}

// Latest returns the published latest version.
func (s *Syncer) Latest(ctx context.Context) (string, error) {
	data, err := s.download(ctx, latestFile)
	if err != nil {
		return "", fmt.Errorf("fetch latest version: %w", err)
	}
	return Canonical(strings.TrimSpace(string(data)))
}

// Canonical validates v as a semantic version and adds a missing "v".
func Canonical(v string) (string, error) {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: %q", ErrBadVersion, v)
	}
	return v, nil
}

// InstalledVersion reads the version recorded in dir, or "" when none is.
func InstalledVersion(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, VersionFile))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Sync installs a content release into in.Dir. Without an explicit
// version it returns ErrAlreadyCurrent when the installed version is not
// older than the latest; with one, only when they are equal.
func (s *Syncer) Sync(ctx context.Context, in SyncInput, progress func(Progress)) (*Result, error) {
	if progress == nil {
		progress = func(Progress) {}
	}

	previous, err := InstalledVersion(in.Dir)
	if err != nil {
		return nil, fmt.Errorf("read installed version: %w", err)
	}

	target := in.Version
	if target == "" {
		progress(Progress{Stage: "check", Message: "Checking for the latest content..."})
		if target, err = s.Latest(ctx); err != nil {
			return nil, err
		}
	} else if target, err = Canonical(target); err != nil {
		return nil, err
	}

	if !in.Force && semver.IsValid(previous) {
		cmp := semver.Compare(previous, target)
		if cmp == 0 || (in.Version == "" && cmp > 0) {
			return nil, ErrAlreadyCurrent
		}
	}

	asset := AssetName(target)
	progress(Progress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", target)})
	archive, err := s.download(ctx, path.Join(target, asset))
	if err != nil {
		return nil, fmt.Errorf("download archive: %w", err)
	}

	progress(Progress{Stage: "verify", Message: "Verifying checksum..."})
	sums, err := s.download(ctx, path.Join(target, checksumsFile))
	if err != nil {
		return nil, fmt.Errorf("download checksums: %w", err)
	}
	expected, ok := parseChecksums(sums)[asset]
	if !ok {
		return nil, fmt.Errorf("no checksum found for %s in %s", asset, checksumsFile)
	}
	if err := verifyChecksum(archive, expected); err != nil {
		return nil, err
	}

	progress(Progress{Stage: "extract", Message: "Extracting quizzes..."})
	files, err := extractContent(archive)
	if err != nil {
		return nil, fmt.Errorf("extract content: %w", err)
	}

	progress(Progress{Stage: "apply", Message: "Installing content..."})
	if err := install(in.Dir, files, target); err != nil {
		return nil, fmt.Errorf("install content: %w", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	s.log.Info("content installed",
		zap.String("version", target),
		zap.String("previous", previous),
		zap.Int("files", len(names)),
	)
	progress(Progress{Stage: "done", Message: fmt.Sprintf("Installed content %s", target)})
	return &Result{Version: target, Previous: previous, Files: names}, nil
}

func (s *Syncer) download(ctx context.Context, name string) ([]byte, error) {
	u := s.base.JoinPath(name).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", u, maxArchiveSize)
	}
	return data, nil
}

func parseChecksums(data []byte) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		result[strings.TrimPrefix(parts[1], "*")] = strings.ToLower(parts[0])
	}
	return result
}

func verifyChecksum(data []byte, expectedHex string) error {
	h := sha256.Sum256(data)
	actual := hex.EncodeToString(h[:])
	if actual != expectedHex {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, expectedHex, actual)
	}
	return nil
}

// contentName maps an archive entry to its place in the content dir, or
// "" for entries that are not quiz content.
func contentName(entry string) string {
	name := path.Clean(strings.TrimPrefix(entry, "./"))
	if name == quiz.ManifestName {
		return name
	}
	dir, file := path.Split(name)
	if dir == quiz.DataDir+"/" && strings.HasSuffix(file, ".json") && !strings.HasPrefix(file, ".") {
		return name
	}
	return ""
}

// extractContent reads quiz content out of a tar.gz and validates it.
func extractContent(archive []byte) (map[string][]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	files := make(map[string][]byte)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		name := contentName(hdr.Name)
		if name == "" {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", hdr.Name, err)
		}
		files[name] = data
	}

	manifest, ok := files[quiz.ManifestName]
	if !ok {
		return nil, fmt.Errorf("%s not found in archive", quiz.ManifestName)
	}
	if _, err := quiz.DecodeManifest(manifest); err != nil {
		return nil, fmt.Errorf("%s: %w", quiz.ManifestName, err)
	}
	for name, data := range files {
		if name == quiz.ManifestName {
			continue
		}
		if _, err := quiz.DecodeDocument(data); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return files, nil
}

// install stages files next to dir and swaps them in: quiz_data is
// replaced as a whole, then the manifest, then VERSION.
func install(dir string, files map[string][]byte, version string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}

	stage, err := os.MkdirTemp(dir, ".medtrix-sync-*")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(stage) }()

	if err := os.MkdirAll(filepath.Join(stage, quiz.DataDir), 0o755); err != nil {
		return err
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(stage, filepath.FromSlash(name)), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	// Post-write verification: re-read the manifest and compare hashes.
	written, err := os.ReadFile(filepath.Join(stage, quiz.ManifestName))
	if err != nil {
		return fmt.Errorf("re-read manifest: %w", err)
	}
	if sha256.Sum256(written) != sha256.Sum256(files[quiz.ManifestName]) {
		return fmt.Errorf("%w: staged manifest changed after write", ErrChecksum)
	}

	dataDir := filepath.Join(dir, quiz.DataDir)
	old := filepath.Join(stage, "old")
	if err := os.Rename(dataDir, old); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("move old %s: %w", quiz.DataDir, err)
	}
	if err := os.Rename(filepath.Join(stage, quiz.DataDir), dataDir); err != nil {
		return fmt.Errorf("rename %s: %w", quiz.DataDir, err)
	}
	if err := os.Rename(filepath.Join(stage, quiz.ManifestName), filepath.Join(dir, quiz.ManifestName)); err != nil {
		return fmt.Errorf("rename manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, VersionFile), []byte(version+"\n"), 0o644)
}
