package rpm

import (
	"fmt"
	"os"

	"github.com/ralt/rpmsync/internal/models"
	"github.com/sassoftware/go-rpmutils"
)

// Fields is the tag dictionary extracted from an rpm header. Missing
// tags surface as (_, false) or a nil slice rather than an error.
type Fields interface {
	// String returns a scalar string tag.
	String(tag int) (string, bool)

	// Strings returns a string array tag.
	Strings(tag int) []string

	// Ints returns an integer array tag.
	Ints(tag int) []int

	// Int returns a scalar integer tag.
	Int(tag int) (int64, bool)
}

// HeaderSource reads the header field dictionary out of a local
// archive file.
type HeaderSource interface {
	ReadHeader(path string) (Fields, error)
}

// FileHeaderSource reads headers from rpm files on disk.
type FileHeaderSource struct{}

// ReadHeader implements HeaderSource.
func (FileHeaderSource) ReadHeader(path string) (Fields, error) {
	return ReadHeader(path)
}

// Header adapts an rpm file's header to the Fields dictionary.
type Header struct {
	rpm *rpmutils.Rpm
}

// ReadHeader parses the header of the rpm file at path.
func ReadHeader(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.SyncError{Type: models.ErrBackend, Path: path, Err: err}
	}
	defer f.Close()

	r, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, &models.SyncError{
			Type: models.ErrArchiveFormat,
			Path: path,
			Err:  fmt.Errorf("failed to read rpm header: %w", err),
		}
	}

	return &Header{rpm: r}, nil
}

// String safely gets a string tag from the header
func (h *Header) String(tag int) (string, bool) {
	val, err := h.rpm.Header.Get(tag)
	if err != nil {
		return "", false
	}

	// Handle different types that might be returned
	switch v := val.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case []string:
		if len(v) > 0 {
			return v[0], true
		}
	}

	return "", false
}

// Strings safely gets a string slice tag from the header
func (h *Header) Strings(tag int) []string {
	val, err := h.rpm.Header.Get(tag)
	if err != nil {
		return nil
	}
	if slice, ok := val.([]string); ok {
		return slice
	}
	return nil
}

// Ints safely gets an integer slice tag from the header
func (h *Header) Ints(tag int) []int {
	val, err := h.rpm.Header.Get(tag)
	if err != nil {
		return nil
	}

	switch v := val.(type) {
	case []int:
		return v
	case []int32:
		out := make([]int, len(v))
		for i, n := range v {
			out[i] = int(n)
		}
		return out
	case []uint32:
		out := make([]int, len(v))
		for i, n := range v {
			out[i] = int(n)
		}
		return out
	case []int64:
		out := make([]int, len(v))
		for i, n := range v {
			out[i] = int(n)
		}
		return out
	case []uint64:
		out := make([]int, len(v))
		for i, n := range v {
			out[i] = int(n)
		}
		return out
	}
	return nil
}

// Int safely gets an integer tag from the header
func (h *Header) Int(tag int) (int64, bool) {
	if vals := h.Ints(tag); len(vals) > 0 {
		return int64(vals[0]), true
	}
	return 0, false
}
