package tableparser

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"go.uber.org/multierr"
)

// Compression identifies how a table file is encoded on disk.
type Compression string

const (
	// CompressionNone reads the file as plain text.
	CompressionNone Compression = "none"
	// CompressionGzip reads gzip streams (.gz).
	CompressionGzip Compression = "gzip"
	// CompressionZstd reads zstandard streams (.zst).
	CompressionZstd Compression = "zstd"
	// CompressionLZ4 reads lz4 frames (.lz4).
	CompressionLZ4 Compression = "lz4"
	// CompressionSnappy reads framed snappy streams (.sz).
	CompressionSnappy Compression = "snappy"
)

// CompressionForPath picks the compression from the file extension.
func CompressionForPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	case ".sz":
		return CompressionSnappy
	default:
		return CompressionNone
	}
}

// Open loads every row of the file at path, decompressing it according to its
// extension. The path is used as the source name.
func Open(path string) (rows *Rows, err error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, &FileError{Path: path, Err: cerr})
			rows = nil
		}
	}()

	src, err := NewDecompressor(f, CompressionForPath(path))
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			err = multierr.Append(err, &FileError{Path: path, Err: cerr})
			rows = nil
		}
	}()

	return LoadRows(path, src)
}

// NewDecompressor wraps r so that reads return decoded table text.
func NewDecompressor(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompressionSnappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}
