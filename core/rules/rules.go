package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

// defaultRules returns the rule table in priority order. At most one
// rule fires per node; order matters for code-inside-pre and for the
// table family.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:  "table",
			Match: matchTag("table"),
			Replace: func(content string, _ *html.Node) string {
				return "\n" + content + "\n"
			},
		},
		{
			Name:  "table-section",
			Match: matchTag("thead", "tbody", "tfoot"),
			Replace: func(content string, _ *html.Node) string {
				return content
			},
		},
		{
			Name:    "table-row",
			Match:   matchTag("tr"),
			Replace: renderRow,
		},
		{
			Name:  "table-cell",
			Match: matchTag("th", "td"),
			Replace: func(content string, _ *html.Node) string {
				return " " + content + " |"
			},
		},
		{
			Name:    "task-checkbox",
			Match:   isCheckbox,
			Replace: renderCheckbox,
		},
		{
			Name:    "heading",
			Match:   matchTag("h1", "h2", "h3", "h4", "h5", "h6"),
			Replace: renderHeading,
		},
		{
			Name:  "paragraph",
			Match: matchTag("p", "div"),
			Replace: func(content string, _ *html.Node) string {
				return "\n\n" + content + "\n\n"
			},
		},
		{
			Name:  "line-break",
			Match: matchTag("br"),
			Replace: func(_ string, _ *html.Node) string {
				return "\n"
			},
		},
		{
			Name:  "thematic-break",
			Match: matchTag("hr"),
			Replace: func(_ string, _ *html.Node) string {
				return "\n\n---\n\n"
			},
		},
		{
			Name:    "strong",
			Match:   matchTag("strong", "b"),
			Replace: wrapInline("**"),
		},
		{
			Name:    "emphasis",
			Match:   matchTag("em", "i"),
			Replace: wrapInline("*"),
		},
		{
			Name:    "strikethrough",
			Match:   matchTag("del", "s", "strike"),
			Replace: wrapInline("~~"),
		},
		{
			Name:    "highlight",
			Match:   matchTag("mark"),
			Replace: wrapInline("=="),
		},
		{
			Name: "code-inline",
			Match: func(n *html.Node) bool {
				return tagIs(n, "code") && !parentIs(n, "pre")
			},
			Replace: func(content string, _ *html.Node) string {
				if content == "" {
					return content
				}
				return "`" + content + "`"
			},
		},
		{
			Name:    "code-block",
			Match:   matchTag("pre"),
			Replace: renderCodeBlock,
		},
		{
			Name:    "blockquote",
			Match:   matchTag("blockquote"),
			Replace: renderBlockquote,
		},
		{
			Name:    "list",
			Match:   matchTag("ul", "ol"),
			Replace: renderList,
		},
		{
			Name:    "list-item",
			Match:   matchTag("li"),
			Replace: renderListItem,
		},
		{
			Name:    "link",
			Match:   matchTag("a"),
			Replace: renderLink,
		},
		{
			Name:    "image",
			Match:   matchTag("img"),
			Replace: renderImage,
		},
		{
			Name:  "picture",
			Match: matchTag("picture"),
			Replace: func(content string, _ *html.Node) string {
				return content
			},
		},
		{
			Name:  "picture-source",
			Match: matchTag("source"),
			Replace: func(_ string, _ *html.Node) string {
				return ""
			},
		},
	}
}

// renderRow emits one pipe-delimited row. For a header row (direct
// child of thead) it appends the separator line; the cell count is
// derived from the rendered content, where each cell contributed
// exactly one trailing pipe.
func renderRow(content string, n *html.Node) string {
	row := "|" + content + "\n"
	if parentIs(n, "thead") {
		cells := strings.Count(content, "|")
		row += "|" + strings.Repeat(" --- |", cells) + "\n"
	}
	return row
}

func renderCheckbox(_ string, n *html.Node) string {
	if hasAttr(n, "checked") {
		return "[x] "
	}
	return "[ ] "
}

func renderHeading(content string, n *html.Node) string {
	level := int(n.Data[1] - '0')
	text := strings.Join(strings.Fields(content), " ")
	return "\n\n" + strings.Repeat("#", level) + " " + text + "\n\n"
}

// renderCodeBlock emits a fenced block from the subtree's raw text.
// A child <code class="language-go"> contributes the fence info string.
func renderCodeBlock(_ string, n *html.Node) string {
	lang := codeLanguage(n)
	code := strings.TrimRight(textContent(n), "\n")
	return "\n\n```" + lang + "\n" + code + "\n```\n\n"
}

// blankRuns collapses block framing inside a blockquote before every
// line gets its "> " prefix; the orchestrator's final cleanup cannot
// reach between prefixed lines.
var blankRuns = regexp.MustCompile(`\n{3,}`)

func renderBlockquote(content string, _ *html.Node) string {
	trimmed := strings.TrimSpace(blankRuns.ReplaceAllString(content, "\n\n"))
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("> "+strings.TrimSpace(line), " ")
	}
	return "\n\n" + strings.Join(lines, "\n") + "\n\n"
}

// renderList frames a top-level list with blank lines. A nested list
// (one with an li ancestor) instead starts on a fresh line indented
// under its parent item.
func renderList(content string, n *html.Node) string {
	content = strings.Trim(content, "\n")
	if hasAncestor(n, "li") {
		return "\n" + indent(content) + "\n"
	}
	return "\n\n" + content + "\n\n"
}

func renderListItem(content string, n *html.Node) string {
	marker := "- "
	if parentIs(n, "ol") {
		marker = fmt.Sprintf("%d. ", listIndex(n))
	}
	return marker + strings.Trim(content, "\n ") + "\n"
}

func renderLink(content string, n *html.Node) string {
	href := dom.GetAttributeOr(n, "href", "")
	if href == "" {
		return content
	}
	if title := dom.GetAttributeOr(n, "title", ""); title != "" {
		return "[" + content + "](" + href + " \"" + title + "\")"
	}
	return "[" + content + "](" + href + ")"
}

func renderImage(_ string, n *html.Node) string {
	src := dom.GetAttributeOr(n, "src", "")
	if src == "" {
		return ""
	}
	alt := dom.GetAttributeOr(n, "alt", "")
	if title := dom.GetAttributeOr(n, "title", ""); title != "" {
		return "![" + alt + "](" + src + " \"" + title + "\")"
	}
	return "![" + alt + "](" + src + ")"
}

// --- helpers ---------------------------------------------------------

func matchTag(tags ...string) func(*html.Node) bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && set[strings.ToLower(n.Data)]
	}
}

func tagIs(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && strings.ToLower(n.Data) == tag
}

func parentIs(n *html.Node, tag string) bool {
	return n.Parent != nil && tagIs(n.Parent, tag)
}

func hasAncestor(n *html.Node, tag string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if tagIs(p, tag) {
			return true
		}
	}
	return false
}

func isCheckbox(n *html.Node) bool {
	return tagIs(n, "input") &&
		strings.EqualFold(dom.GetAttributeOr(n, "type", ""), "checkbox")
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}

// listIndex returns the 1-based position of li among its element
// siblings that are also list items.
func listIndex(n *html.Node) int {
	idx := 1
	for sib := n.Parent.FirstChild; sib != nil; sib = sib.NextSibling {
		if sib == n {
			return idx
		}
		if tagIs(sib, "li") {
			idx++
		}
	}
	return idx
}

func codeLanguage(pre *html.Node) string {
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if !tagIs(c, "code") {
			continue
		}
		for _, class := range strings.Fields(dom.GetAttributeOr(c, "class", "")) {
			if rest, ok := strings.CutPrefix(class, "language-"); ok {
				return rest
			}
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "    " + line
		}
	}
	return strings.Join(lines, "\n")
}

// wrapInline wraps non-blank content in the given delimiter; blank
// content passes through so empty emphasis never emits bare markers.
func wrapInline(delim string) func(string, *html.Node) string {
	return func(content string, _ *html.Node) string {
		if strings.TrimSpace(content) == "" {
			return content
		}
		return delim + content + delim
	}
}
