// Package rules converts a sanitized HTML tree into GitHub Flavored
// Markdown. The engine walks the tree depth-first, renders every child
// first, then dispatches the element through an ordered rule table; the
// first matching rule decides the element's Markdown. Elements without
// a rule fall back to blank-line framing (block tags) or passthrough
// (inline tags).
package rules

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

// Rule pairs a match predicate with a replacement function. Replace
// receives the already-rendered child content and the node itself.
type Rule struct {
	Name    string
	Match   func(n *html.Node) bool
	Replace func(content string, n *html.Node) string
}

// Engine renders sanitized trees with a fixed, ordered rule set.
type Engine struct {
	rules []Rule
}

// NewEngine creates an Engine with the default GFM rule set installed.
func NewEngine() *Engine {
	return &Engine{rules: defaultRules()}
}

// Render converts the tree rooted at n into Markdown. Total over any
// sanitized tree: every node either matches a rule or falls back.
func (e *Engine) Render(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		if insideTableScaffold(n) && strings.TrimSpace(n.Data) == "" {
			// Source formatting between rows/cells must not leak
			// into pipe rows.
			return ""
		}
		return n.Data

	case html.ElementNode:
		content := e.renderChildren(n)
		for _, r := range e.rules {
			if r.Match(n) {
				return r.Replace(content, n)
			}
		}
		if isBlock(dom.NodeName(n)) {
			return "\n\n" + content + "\n\n"
		}
		return content

	case html.DocumentNode:
		return e.renderChildren(n)

	default:
		// Comments and doctypes are gone after sanitization; anything
		// else contributes nothing.
		return ""
	}
}

func (e *Engine) renderChildren(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(e.Render(c))
	}
	return b.String()
}

// blockTags are elements framed by blank lines when no rule claims them.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "body": true,
	"div": true, "dl": true, "fieldset": true, "figure": true,
	"footer": true, "form": true, "header": true, "main": true,
	"p": true, "section": true,
}

func isBlock(tag string) bool {
	return blockTags[tag]
}

var tableScaffold = map[string]bool{
	"table": true, "thead": true, "tbody": true, "tfoot": true, "tr": true,
}

func insideTableScaffold(n *html.Node) bool {
	p := n.Parent
	return p != nil && p.Type == html.ElementNode && tableScaffold[strings.ToLower(p.Data)]
}
