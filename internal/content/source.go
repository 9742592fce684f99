// Package content reads quiz resources (the manifest and quiz documents)
// from an HTTP base URL, a local directory or a Google Cloud Storage bucket.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"google.golang.org/api/option"
)

// maxResourceSize caps a single resource read.
const maxResourceSize = 32 << 20

// ErrNotFound is returned when a resource does not exist at the source.
var ErrNotFound = errors.New("content not found")

// ErrInvalidName is returned for names that are not slash-separated,
// unrooted paths without "." or ".." elements.
var ErrInvalidName = errors.New("invalid resource name")

// Source fetches named resources such as "quiz_manifest.json" or
// "quiz_data/03_cardiology.json".
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// Is reports 404 responses as ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Open returns the Source for location:
//
//	http://host/path, https://host/path  HTTPSource rooted at that URL
//	gs://bucket/prefix                   GCSSource
//	anything else                        DirSource rooted at that directory
func Open(ctx context.Context, location string, gcsOpts ...option.ClientOption) (Source, error) {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, nil)
	case strings.HasPrefix(location, "gs://"):
		bucket, prefix, err := ParseGCSLocation(location)
		if err != nil {
			return nil, err
		}
		return NewGCSSource(ctx, bucket, prefix, gcsOpts...)
	case location == "":
		return nil, fmt.Errorf("content location is empty")
	default:
		return NewDirSource(location)
	}
}

func checkName(name string) error {
	if !fs.ValidPath(name) || name == "." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxResourceSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxResourceSize {
		return nil, fmt.Errorf("resource exceeds %d bytes", maxResourceSize)
	}
	return data, nil
}
