package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DirSource reads resources from a local directory.
type DirSource struct {
	dir  string
	fsys fs.FS
}

// NewDirSource creates a source rooted at dir, which must exist.
func NewDirSource(dir string) (*DirSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", dir)
	}
	return &DirSource{dir: dir, fsys: os.DirFS(dir)}, nil
}

// Dir returns the root directory.
func (s *DirSource) Dir() string {
	return s.dir
}

func (s *DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	defer f.Close()
	return readLimited(f)
}
