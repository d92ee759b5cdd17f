// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package output

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how a listing file is encoded.
type Compression uint8

const (
	// CompressionNone writes plain text.
	CompressionNone Compression = iota
	// CompressionGzip is chosen by a .gz suffix.
	CompressionGzip
	// CompressionZstd is chosen by a .zst suffix.
	CompressionZstd
	// CompressionLZ4 is chosen by a .lz4 suffix.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CompressionFor returns the compression implied by the suffix of path.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// closers closes the encoder before the file.
type closers struct {
	io.Writer
	cs []io.Closer
}

func (c *closers) Close() error {
	var first error
	for _, x := range c.cs {
		if err := x.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Create creates path and returns a writer that compresses according to its suffix.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	switch CompressionFor(path) {
	case CompressionGzip:
		zw := gzip.NewWriter(f)
		return &closers{zw, []io.Closer{zw, f}}, nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			f.Close()
			return nil, err
		}
		return &closers{zw, []io.Closer{zw, f}}, nil
	case CompressionLZ4:
		zw := lz4.NewWriter(f)
		return &closers{zw, []io.Closer{zw, f}}, nil
	default:
		return f, nil
	}
}

type readClosers struct {
	io.Reader
	close func() error
}

func (r *readClosers) Close() error {
	return r.close()
}

// Open opens path and returns a reader that decompresses according to its suffix.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch CompressionFor(path) {
	case CompressionGzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readClosers{zr, func() error {
			zr.Close()
			return f.Close()
		}}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readClosers{zr, func() error {
			zr.Close()
			return f.Close()
		}}, nil
	case CompressionLZ4:
		return &readClosers{lz4.NewReader(f), f.Close}, nil
	default:
		return f, nil
	}
}
