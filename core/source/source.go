// Package source implements the Source interface.
// Clipboard HTML reaches clipmark in one of three ways: piped on stdin,
// saved to a file, or fetched from a URL for testing against live pages.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rahul-khatri/clipmark/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "clipmark/1.0 (https://github.com/rahul-khatri/clipmark)"
)

// For selects a source from the command-line argument: empty or "-"
// reads stdin, http(s) URLs are fetched, anything else is a file path.
func For(arg string) core.Source {
	switch {
	case arg == "" || arg == "-":
		return &StdinSource{}
	case strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://"):
		return NewHTTPSource(arg)
	default:
		return &FileSource{Path: arg}
	}
}

// StdinSource reads the whole of standard input.
type StdinSource struct{}

func (s *StdinSource) Read(_ context.Context) (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func (s *StdinSource) Name() string { return "stdin" }

// FileSource reads a saved HTML file.
type FileSource struct {
	Path string
}

func (s *FileSource) Read(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return string(data), nil
}

func (s *FileSource) Name() string { return s.Path }

// HTTPSource fetches HTML over HTTP with sensible defaults.
type HTTPSource struct {
	URL    string
	client *http.Client
}

// NewHTTPSource creates an HTTPSource with a sensible timeout.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

func (s *HTTPSource) Read(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, s.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}

func (s *HTTPSource) Name() string { return s.URL }
