package utils

import (
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Decompress inflates a stored package-list document according to the
// suffix of its location. createrepo historically gzips the documents;
// createrepo_c can also emit xz and zstd. Unknown suffixes pass
// through untouched.
func Decompress(data []byte, location string) ([]byte, error) {
	switch {
	case strings.HasSuffix(location, ".gz"):
		return GzipDecompress(data)
	case strings.HasSuffix(location, ".xz"):
		return XzDecompress(data)
	case strings.HasSuffix(location, ".zst"):
		return ZstdDecompress(data)
	default:
		return data, nil
	}
}

// GzipDecompress decompresses gzip data
func GzipDecompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// XzDecompress decompresses xz data
func XzDecompress(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return io.ReadAll(r)
}

// ZstdDecompress decompresses zstandard data
func ZstdDecompress(data []byte) ([]byte, error) {
	r, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
