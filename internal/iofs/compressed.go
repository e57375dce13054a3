package iofs

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

// Stdin is the path that makes Open read the standard input.
const Stdin = "-"

type readCloser struct {
	io.Reader
	closers []io.Closer
}

// Close closes the decompressor and then the file.
func (rc *readCloser) Close() error {
	var res error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && res == nil {
			res = err
		}
	}
	return res
}

// Open opens a file and wraps it in a decompressor according to its
// extension: ".bz2" for bzip2 and ".gz" for gzip. Other files are read as
// is. The returned ReadCloser always closes the underlying file.
func Open(path string) (io.ReadCloser, error) {
	if path == Stdin {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".bz2"):
		bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			f.Close()
			return nil, ReadFileError(path, err)
		}
		return &readCloser{Reader: bz, closers: []io.Closer{bz, f}}, nil
	case strings.HasSuffix(lower, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, ReadFileError(path, err)
		}
		return &readCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
	default:
		return f, nil
	}
}
