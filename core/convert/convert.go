// Package convert composes the clipmark pipeline:
// sanitize → normalize alt text → rule-engine render → final cleanup.
// This is the single entry point the host application drives.
package convert

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rahul-khatri/clipmark/core/normalize"
	"github.com/rahul-khatri/clipmark/core/policy"
	"github.com/rahul-khatri/clipmark/core/rules"
	"github.com/rahul-khatri/clipmark/core/sanitize"
)

// excessBlankLines collapses runs of three or more newlines left behind
// by nested block framing.
var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// Converter converts untrusted HTML to Markdown. Safe for concurrent
// use: every call builds its own policy and tree, and the engine's rule
// table is read-only.
type Converter struct {
	engine *rules.Engine
}

// New creates a Converter with the default rule set.
func New() *Converter {
	return &Converter{engine: rules.NewEngine()}
}

// Convert turns rawHTML into Markdown. includeImages controls whether
// image elements survive sanitization and emit ![alt](src) tokens.
// Identical inputs always produce byte-identical output. An empty or
// whitespace-only input yields "" without error; a parser failure
// surfaces as sanitize.ErrSanitizeFailed.
func (c *Converter) Convert(rawHTML string, includeImages bool) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	pol := policy.Build(includeImages)
	root, err := sanitize.New(pol).Sanitize(rawHTML)
	if err != nil {
		return "", err
	}

	// Alt text is the one attribute embedded verbatim into a
	// single-line Markdown token, so it is normalized in place before
	// rendering.
	goquery.NewDocumentFromNode(root).Find("img").Each(func(_ int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); ok {
			s.SetAttr("alt", normalize.AttributeText(alt))
		}
	})

	md := c.engine.Render(root)
	md = excessBlankLines.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md), nil
}
