// Package policy builds the allowlist configuration enforced by the
// sanitizer. A Policy says which tags and attributes may survive, which
// tags are removed with their whole subtree, and which URI schemes are
// acceptable in href/src values. Everything else is stripped.
package policy

import (
	"regexp"
	"strings"
)

// baseTags are the structural and inline-formatting elements always
// permitted, plus the checkbox input needed for task-list detection.
var baseTags = []string{
	"p", "div", "span",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"em", "i", "strong", "b", "del", "s", "strike",
	"sup", "sub", "mark",
	"code", "pre",
	"ul", "ol", "li",
	"blockquote", "hr", "br",
	"table", "thead", "tbody", "tfoot", "tr", "th", "td",
	"a",
	"input",
}

// imageTags are only permitted when image support is requested.
var imageTags = []string{"img", "picture", "source"}

// baseAttrs are attributes kept on any allowed tag. type/checked/disabled
// exist solely so checkbox inputs remain detectable downstream.
var baseAttrs = []string{
	"href",
	"name", "id", "title",
	"aria-label", "aria-labelledby",
	"colspan", "rowspan", "align",
	"class",
	"type", "checked", "disabled",
}

// imageAttrs are only kept when image support is requested.
var imageAttrs = []string{"src", "alt", "width", "height", "title"}

// forbiddenTags are removed together with their entire subtree. Their
// text content is dropped too, so raw script/style source can never
// leak into the output as plain text.
var forbiddenTags = []string{
	"script", "style",
	"iframe", "frame", "frameset", "noframes",
	"object", "embed", "applet",
	"base", "meta", "link",
}

// forbiddenAttrs are stripped from every element. AttrAllowed also
// rejects any attribute starting with "on", so handlers missing from
// this list are still caught.
var forbiddenAttrs = []string{
	"style",
	"onabort", "onblur", "onchange", "onclick", "ondblclick",
	"ondrag", "ondrop", "onerror", "onfocus", "oninput",
	"onkeydown", "onkeypress", "onkeyup", "onload",
	"onmousedown", "onmousemove", "onmouseout", "onmouseover",
	"onmouseup", "onpaste", "onreset", "onresize", "onscroll",
	"onselect", "onsubmit", "onunload", "onwheel",
}

// uriPattern accepts absolute URLs with a known-safe scheme, values with
// no scheme at all (relative references), and any value not shaped like
// a colon-prefixed scheme. href/src values failing it lose the attribute.
var uriPattern = regexp.MustCompile(
	`(?i)^(?:(?:(?:f|ht)tps?|mailto|tel|callto|sms|cid|xmpp|data):|[^a-z]|[a-z+.\-]+(?:[^a-z+.\-:]|$))`)

// Policy is the allowlist configuration for one conversion call. Built
// by Build and never mutated afterwards.
type Policy struct {
	AllowedTags    map[string]struct{}
	AllowedAttrs   map[string]struct{}
	ForbiddenTags  map[string]struct{}
	ForbiddenAttrs map[string]struct{}
	URIPattern     *regexp.Regexp
}

// Build constructs the Policy for a conversion. When includeImages is
// false, no image-bearing tag or attribute is permitted, so image syntax
// cannot appear in the output regardless of input.
func Build(includeImages bool) Policy {
	p := Policy{
		AllowedTags:    toSet(baseTags),
		AllowedAttrs:   toSet(baseAttrs),
		ForbiddenTags:  toSet(forbiddenTags),
		ForbiddenAttrs: toSet(forbiddenAttrs),
		URIPattern:     uriPattern,
	}
	if includeImages {
		addAll(p.AllowedTags, imageTags)
		addAll(p.AllowedAttrs, imageAttrs)
	}
	return p
}

// TagAllowed reports whether elements with this tag are kept.
func (p Policy) TagAllowed(tag string) bool {
	_, ok := p.AllowedTags[strings.ToLower(tag)]
	return ok
}

// TagForbidden reports whether elements with this tag are removed along
// with their entire subtree.
func (p Policy) TagForbidden(tag string) bool {
	_, ok := p.ForbiddenTags[strings.ToLower(tag)]
	return ok
}

// AttrAllowed reports whether an attribute with this name is kept on an
// allowed element. data-* attributes are always rejected to avoid
// smuggling attacker-controlled payloads, and on* handlers are always
// rejected whether or not they appear in the forbidden table.
func (p Policy) AttrAllowed(name string) bool {
	name = strings.ToLower(name)
	if _, ok := p.ForbiddenAttrs[name]; ok {
		return false
	}
	if strings.HasPrefix(name, "on") || strings.HasPrefix(name, "data-") {
		return false
	}
	_, ok := p.AllowedAttrs[name]
	return ok
}

// URIAllowed reports whether a href/src value passes the scheme filter.
// Control characters are removed and the value trimmed first, so
// "java\tscript:" style smuggling does not slip past the pattern.
func (p Policy) URIAllowed(val string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, val)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return true
	}
	return p.URIPattern.MatchString(cleaned)
}

func toSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

func addAll(m map[string]struct{}, names []string) {
	for _, n := range names {
		m[n] = struct{}{}
	}
}
