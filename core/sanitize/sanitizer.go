// Package sanitize implements the Sanitizer interface.
// It neutralizes untrusted clipboard HTML before conversion by:
//  1. Removing forbidden tags (script, style, iframe, ...) with their
//     entire subtree, text content included
//  2. Unwrapping elements outside the allowlist, promoting their children
//  3. Stripping disallowed attributes and unsafe href/src values
package sanitize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/rahul-khatri/clipmark/core/policy"
)

// ErrSanitizeFailed wraps a fatal error from the underlying HTML parser.
// Callers test for it with errors.Is and decide on fallback; the
// pipeline never emits partial output on this condition.
var ErrSanitizeFailed = errors.New("html sanitization failed")

// Sanitizer applies one Policy to untrusted HTML.
type Sanitizer struct {
	policy policy.Policy
}

// New creates a Sanitizer enforcing the given policy.
func New(p policy.Policy) *Sanitizer {
	return &Sanitizer{policy: p}
}

// Sanitize parses rawHTML and returns the sanitized body element.
// The input string is never mutated; the returned tree is freshly built
// and contains only allowlisted tags and attributes.
func (s *Sanitizer) Sanitize(rawHTML string) (*html.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSanitizeFailed, err)
	}

	// Forbidden subtrees go first, before anything below them is
	// inspected. goquery removal detaches the whole subtree, so the
	// text content of script/style never reaches the rule engine.
	doc.Find(forbiddenSelector(s.policy)).Remove()

	sel := doc.Find("body")
	if len(sel.Nodes) == 0 {
		return nil, fmt.Errorf("%w: parsed document has no body", ErrSanitizeFailed)
	}
	body := sel.Nodes[0]
	// The body element is only a container for the result; whatever
	// attributes the parser put on it are not part of the content.
	body.Attr = nil

	s.walk(body)
	return body, nil
}

// forbiddenSelector joins the policy's forbidden tags into one selector.
// Sorted iteration is not required; goquery removal is order-independent.
func forbiddenSelector(p policy.Policy) string {
	tags := make([]string, 0, len(p.ForbiddenTags))
	for tag := range p.ForbiddenTags {
		tags = append(tags, tag)
	}
	return strings.Join(tags, ", ")
}

// walk enforces the allowlist below n. Children are snapshotted before
// recursion because unwrapping rewrites sibling links in place.
func (s *Sanitizer) walk(n *html.Node) {
	for _, c := range childNodes(n) {
		switch c.Type {
		case html.CommentNode, html.DoctypeNode:
			n.RemoveChild(c)

		case html.ElementNode:
			tag := strings.ToLower(c.Data)
			switch {
			case s.policy.TagForbidden(tag):
				// Defense in depth; the selector pass above should
				// already have removed these.
				n.RemoveChild(c)
			case !s.policy.TagAllowed(tag):
				s.walk(c)
				unwrap(n, c)
			default:
				c.Attr = s.filterAttrs(c.Attr)
				s.walk(c)
			}

		case html.TextNode:
			// kept as-is

		default:
			s.walk(c)
		}
	}
}

// filterAttrs keeps only allowlisted attributes, dropping href/src
// values whose scheme fails the URI pattern. The attribute is stripped,
// not the element.
func (s *Sanitizer) filterAttrs(attrs []html.Attribute) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		if !s.policy.AttrAllowed(a.Key) {
			continue
		}
		key := strings.ToLower(a.Key)
		if (key == "href" || key == "src") && !s.policy.URIAllowed(a.Val) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// unwrap replaces child with its children, preserving document order.
// Used for elements outside the allowlist: the markup is dropped but
// the content degrades to whatever it contains.
func unwrap(parent, child *html.Node) {
	for _, gc := range childNodes(child) {
		child.RemoveChild(gc)
		parent.InsertBefore(gc, child)
	}
	parent.RemoveChild(child)
}

// childNodes snapshots n's children so callers can mutate the tree
// while iterating.
func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}
