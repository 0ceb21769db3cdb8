// Package normalize cleans raw attribute text for embedding in Markdown.
// An image alt value pasted from the web can contain newlines, control
// characters, or exotic Unicode spaces; any of those inside the
// single-line ![alt](src) token would corrupt it.
package normalize

import (
	"regexp"
	"strings"
)

var (
	// ASCII control characters and DEL.
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

	// No-break space, the Unicode space-separator block, line/paragraph
	// separators, narrow no-break space, medium mathematical space, and
	// ideographic space.
	unicodeSpaces = regexp.MustCompile(
		`[\x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}]`)

	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// AttributeText collapses raw attribute text into safe, single-line,
// single-spaced form. Total over any input and idempotent.
func AttributeText(raw string) string {
	s := controlChars.ReplaceAllString(raw, " ")
	s = unicodeSpaces.ReplaceAllString(s, " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
