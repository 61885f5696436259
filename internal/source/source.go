// Package source resolves the report argument to a reader.
package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
)

// Stdin is the argument selecting standard input.
const Stdin = "-"

var (
	// ErrOpen is returned when the report cannot be opened.
	ErrOpen = errors.New("cannot open report")
	// ErrIsDirectory is returned when the report path names a directory.
	ErrIsDirectory = errors.New("is a directory")
)

// Open returns a reader over the report named by path, or over stdin when path is "-".
func Open(fs afero.Fs, stdin io.Reader, path string) (io.ReadCloser, error) {
	if path == Stdin {
		slog.Debug("source.Open", "source", "stdin")

		return io.NopCloser(stdin), nil
	}

	slog.Debug("source.Open", "file path", path)

	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, ErrIsDirectory)
	}

	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}

	return file, nil
}
