package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// render parses an HTML fragment and renders its body through a fresh
// engine, trimming the outer blank-line framing for compact assertions.
func render(t *testing.T, fragment string) string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	require.NoError(t, err)
	body := findBody(doc)
	require.NotNil(t, body)
	return strings.TrimSpace(NewEngine().Render(body))
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func TestRender_TableShape(t *testing.T) {
	got := render(t, `<table><thead><tr><th>A</th><th>B</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>`)
	assert.Equal(t, "| A | B |\n| --- | --- |\n| 1 | 2 |", got)
}

func TestRender_TableSeparatorMatchesHeaderWidth(t *testing.T) {
	for cols := 1; cols <= 6; cols++ {
		var b strings.Builder
		b.WriteString("<table><thead><tr>")
		for i := 0; i < cols; i++ {
			b.WriteString("<th>h</th>")
		}
		b.WriteString("</tr></thead></table>")

		got := render(t, b.String())
		lines := strings.Split(got, "\n")
		require.Len(t, lines, 2, "cols=%d", cols)
		assert.Equal(t, cols, strings.Count(lines[0], "|")-1, "header cells, cols=%d", cols)
		assert.Equal(t, cols, strings.Count(lines[1], "---"), "separator cells, cols=%d", cols)
	}
}

func TestRender_TableWithSourceWhitespace(t *testing.T) {
	got := render(t, `<table>
		<thead>
			<tr><th>A</th></tr>
		</thead>
		<tbody>
			<tr><td>1</td></tr>
		</tbody>
	</table>`)
	assert.Equal(t, "| A |\n| --- |\n| 1 |", got)
}

func TestRender_BodyRowWithoutHeaderSection(t *testing.T) {
	// The parser wraps bare rows in tbody; no separator may appear.
	got := render(t, `<table><tr><td>1</td><td>2</td></tr></table>`)
	assert.Equal(t, "| 1 | 2 |", got)
	assert.NotContains(t, got, "---")
}

func TestRender_Checkbox(t *testing.T) {
	checked := &html.Node{Type: html.ElementNode, Data: "input", Attr: []html.Attribute{
		{Key: "type", Val: "checkbox"}, {Key: "checked", Val: ""},
	}}
	assert.Equal(t, "[x] ", NewEngine().Render(checked))

	unchecked := &html.Node{Type: html.ElementNode, Data: "input", Attr: []html.Attribute{
		{Key: "type", Val: "checkbox"},
	}}
	assert.Equal(t, "[ ] ", NewEngine().Render(unchecked))
}

func TestRender_TaskList(t *testing.T) {
	got := render(t, `<ul><li><input type="checkbox" checked>Buy milk</li><li><input type="checkbox">Walk dog</li></ul>`)
	assert.Equal(t, "- [x] Buy milk\n- [ ] Walk dog", got)
}

func TestRender_Headings(t *testing.T) {
	assert.Equal(t, "# Top", render(t, `<h1>Top</h1>`))
	assert.Equal(t, "### Deep", render(t, `<h3>Deep</h3>`))
	assert.Equal(t, "## One line", render(t, "<h2>One\nline</h2>"))
}

func TestRender_InlineFormatting(t *testing.T) {
	got := render(t, `<p>a <strong>b</strong> and <em>c</em> not <del>d</del> but <mark>e</mark></p>`)
	assert.Equal(t, "a **b** and *c* not ~~d~~ but ==e==", got)
}

func TestRender_EmptyEmphasisEmitsNoMarkers(t *testing.T) {
	got := render(t, `<p>x<strong> </strong>y</p>`)
	assert.NotContains(t, got, "**")
}

func TestRender_UnorderedList(t *testing.T) {
	got := render(t, `<ul><li>One</li><li>Two</li></ul>`)
	assert.Equal(t, "- One\n- Two", got)
}

func TestRender_OrderedList(t *testing.T) {
	got := render(t, `<ol><li>First</li><li>Second</li><li>Third</li></ol>`)
	assert.Equal(t, "1. First\n2. Second\n3. Third", got)
}

func TestRender_NestedList(t *testing.T) {
	got := render(t, `<ul><li>Top<ul><li>Inner</li></ul></li></ul>`)
	assert.Equal(t, "- Top\n    - Inner", got)
}

func TestRender_Blockquote(t *testing.T) {
	got := render(t, `<blockquote><p>first</p><p>second</p></blockquote>`)
	assert.Equal(t, "> first\n>\n> second", got)
}

func TestRender_CodeInline(t *testing.T) {
	got := render(t, `<p>run <code>go vet</code> first</p>`)
	assert.Equal(t, "run `go vet` first", got)
}

func TestRender_CodeBlock(t *testing.T) {
	got := render(t, `<pre><code class="language-go">fmt.Println("hi")</code></pre>`)
	assert.Equal(t, "```go\nfmt.Println(\"hi\")\n```", got)
}

func TestRender_CodeBlockNoLanguage(t *testing.T) {
	got := render(t, `<pre><code>plain</code></pre>`)
	assert.Equal(t, "```\nplain\n```", got)
}

func TestRender_Link(t *testing.T) {
	assert.Equal(t, "[docs](https://example.com)",
		render(t, `<a href="https://example.com">docs</a>`))
	assert.Equal(t, `[docs](https://example.com "Example")`,
		render(t, `<a href="https://example.com" title="Example">docs</a>`))
	assert.Equal(t, "docs", render(t, `<a>docs</a>`))
}

func TestRender_Image(t *testing.T) {
	assert.Equal(t, "![pic](https://e.com/x.png)",
		render(t, `<img src="https://e.com/x.png" alt="pic">`))
	assert.Equal(t, "", render(t, `<img alt="no source">`))
}

func TestRender_HorizontalRule(t *testing.T) {
	got := render(t, `<p>a</p><hr><p>b</p>`)
	assert.Contains(t, got, "---")
}

func TestRender_InlineFallback(t *testing.T) {
	// span has no rule and is not a block tag.
	got := render(t, `<p><span>just text</span></p>`)
	assert.Equal(t, "just text", got)
}

func TestRender_TextNodeLiteral(t *testing.T) {
	n := &html.Node{Type: html.TextNode, Data: "raw *text* [here]"}
	assert.Equal(t, "raw *text* [here]", NewEngine().Render(n))
}
