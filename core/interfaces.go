// Package core defines the pipeline interfaces for clipmark.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"

	"golang.org/x/net/html"
)

// Sanitizer reduces untrusted HTML to an allowlisted element tree.
// The returned node is the sanitized body; only permitted tags,
// attributes, and URI schemes survive below it.
type Sanitizer interface {
	Sanitize(rawHTML string) (*html.Node, error)
}

// Converter turns raw clipboard HTML into Markdown. This is the single
// operation exposed to the host application.
type Converter interface {
	Convert(rawHTML string, includeImages bool) (string, error)
}

// Source supplies the raw HTML to convert. The host decides where it
// comes from: a clipboard dump on stdin, a saved file, or a URL.
type Source interface {
	Read(ctx context.Context) (string, error)
	// Name describes the source for logging (e.g. "stdin", a path, a URL).
	Name() string
}
