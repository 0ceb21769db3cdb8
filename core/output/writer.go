// Package output writes converted Markdown where the host wants it:
// standard output by default, or a file when a path is given.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer delivers the final Markdown. A zero-value Writer writes to
// stdout; setting Path redirects to a file, creating parent directories
// as needed.
type Writer struct {
	Path   string
	Stdout io.Writer
}

// New creates a Writer targeting the given path. An empty path means
// standard output.
func New(path string) *Writer {
	return &Writer{Path: path, Stdout: os.Stdout}
}

// Write delivers the Markdown and returns a human-readable destination
// description. Output is all-or-nothing: on any error nothing useful has
// been inserted anywhere and the caller reports failure.
func (w *Writer) Write(markdown string) (string, error) {
	if w.Path == "" {
		out := w.Stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := io.WriteString(out, markdown+"\n"); err != nil {
			return "", fmt.Errorf("writing stdout: %w", err)
		}
		return "stdout", nil
	}

	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(w.Path, []byte(markdown+"\n"), 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", w.Path, err)
	}
	return w.Path, nil
}
