package sundown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownBasicPlainParagraph(t *testing.T) {
	out := MarkdownBasic([]byte("hello world\n"))
	assert.Equal(t, "<p>hello world</p>\n", string(out))
}

func TestMarkdownBasicAddsMissingTrailingNewline(t *testing.T) {
	out := MarkdownBasic([]byte("hello world"))
	assert.Equal(t, "<p>hello world</p>\n", string(out))
}

func TestMarkdownBasicATXHeader(t *testing.T) {
	out := MarkdownBasic([]byte("# Title\n"))
	assert.Equal(t, "<h1>Title</h1>\n", string(out))
}

func TestMarkdownBasicATXHeaderLevels(t *testing.T) {
	out := MarkdownBasic([]byte("### Sub\n"))
	assert.Equal(t, "<h3>Sub</h3>\n", string(out))
}

func TestMarkdownBasicEmphasis(t *testing.T) {
	out := MarkdownBasic([]byte("*hello*\n"))
	assert.Equal(t, "<p><em>hello</em></p>\n", string(out))
}

func TestMarkdownBasicStrongEmphasis(t *testing.T) {
	out := MarkdownBasic([]byte("**hello**\n"))
	assert.Equal(t, "<p><strong>hello</strong></p>\n", string(out))
}

func TestMarkdownBasicTripleEmphasis(t *testing.T) {
	out := MarkdownBasic([]byte("***hello***\n"))
	assert.Equal(t, "<p><strong><em>hello</em></strong></p>\n", string(out))
}

func TestMarkdownBasicCodeSpan(t *testing.T) {
	out := MarkdownBasic([]byte("`code`\n"))
	assert.Equal(t, "<p><code>code</code></p>\n", string(out))
}

func TestMarkdownBasicInlineLink(t *testing.T) {
	out := MarkdownBasic([]byte("[text](http://example.com)\n"))
	assert.Equal(t, "<p><a href=\"http://example.com\">text</a></p>\n", string(out))
}

func TestMarkdownBasicBlockquote(t *testing.T) {
	out := MarkdownBasic([]byte("> quoted\n"))
	assert.Equal(t, "<blockquote>\n<p>quoted</p>\n</blockquote>\n", string(out))
}

func TestMarkdownBasicHardLineBreak(t *testing.T) {
	out := MarkdownBasic([]byte("line one  \nline two\n"))
	assert.Equal(t, "<p>line one<br/>\nline two</p>\n", string(out))
}

func TestMarkdownBasicUsesXHTMLSelfClosingTags(t *testing.T) {
	out := MarkdownBasic([]byte("---\n"))
	assert.Equal(t, "<hr/>\n", string(out))
}

func TestMarkdownBasicEscapesHTMLSpecialCharacters(t *testing.T) {
	out := MarkdownBasic([]byte("a < b & c\n"))
	assert.Equal(t, "<p>a &lt; b &amp; c</p>\n", string(out))
}

func TestMarkdownBasicBackslashEscape(t *testing.T) {
	out := MarkdownBasic([]byte("\\*not emphasis\\*\n"))
	assert.Equal(t, "<p>*not emphasis*</p>\n", string(out))
}

func TestMarkdownBasicReferenceStyleLink(t *testing.T) {
	input := "[text][1]\n\n[1]: http://example.com \"Example\"\n"
	out := MarkdownBasic([]byte(input))
	assert.Equal(t, "<p><a href=\"http://example.com\" title=\"Example\">text</a></p>\n", string(out))
}

func TestMarkdownBasicReferenceStyleLinkWithCRLF(t *testing.T) {
	input := "[text][1]\r\n\r\n[1]: http://example.com \"Example\"\r\n"
	out := MarkdownBasic([]byte(input))
	assert.Equal(t, "<p><a href=\"http://example.com\" title=\"Example\">text</a></p>\n", string(out))
}

func TestMarkdownCommonBareURLAutolink(t *testing.T) {
	out := MarkdownCommon([]byte("http://example.com\n"))
	assert.Equal(t, "<p><a href=\"http://example.com\">http://example.com</a></p>\n", string(out))
}

func TestMarkdownCommonStrikethrough(t *testing.T) {
	out := MarkdownCommon([]byte("~~gone~~\n"))
	assert.Equal(t, "<p><del>gone</del></p>\n", string(out))
}

func TestParserIns(t *testing.T) {
	var state HTMLRendererState
	cb := NewHTMLRenderer(0, &state)
	p := NewParser(ExtensionIns, 0, cb, &state)

	out := p.Render([]byte("++added++\n"))
	assert.Equal(t, "<p><ins>added</ins></p>\n", string(out))
}

func TestMarkdownCommonFencedCodeBlockNoLanguage(t *testing.T) {
	out := MarkdownCommon([]byte("```\ncode\n```\n"))
	assert.Equal(t, "<pre><code>code\n</code></pre>\n", string(out))
}

func TestMarkdownCommonFencedCodeBlockWithLanguage(t *testing.T) {
	out := MarkdownCommon([]byte("```go\nfunc main() {}\n```\n"))
	assert.Contains(t, string(out), "<pre><code class=\"go\">")
	assert.Contains(t, string(out), "func main() {}")
}

func TestMarkdownCommonTableRendersStructure(t *testing.T) {
	input := "Col A | Col B\n--- | ---\none | two\n"
	out := MarkdownCommon([]byte(input))

	assert.Contains(t, string(out), "<table>")
	assert.Contains(t, string(out), "<th>Col A</th>")
	assert.Contains(t, string(out), "<td>one</td>")
}

func TestParserFootnotes(t *testing.T) {
	var state HTMLRendererState
	cb := NewHTMLRenderer(HTMLUseXHTML, &state)
	p := NewParser(ExtensionFootnotes, 0, cb, &state)

	input := "see[^1] it\n\n[^1]: a footnote\n"
	out := p.Render([]byte(input))

	assert.Contains(t, string(out), "<sup id=\"fnref1\"><a href=\"#fn1\" rel=\"footnote\">1</a></sup>")
	assert.Contains(t, string(out), "<div class=\"footnotes\">")
	assert.Contains(t, string(out), "<li id=\"fn1\">")
}

func TestParserSuperscript(t *testing.T) {
	var state HTMLRendererState
	cb := NewHTMLRenderer(0, &state)
	p := NewParser(ExtensionSuperscript, 0, cb, &state)

	out := p.Render([]byte("2^(nd)\n"))
	assert.Equal(t, "<p>2<sup>nd</sup></p>\n", string(out))
}

func TestParserRenderIsOneShot(t *testing.T) {
	var state HTMLRendererState
	cb := NewHTMLRenderer(0, &state)
	p := NewParser(0, 0, cb, &state)

	_ = p.Render([]byte("one\n"))
	assert.NotPanics(t, func() {
		_ = p.Render([]byte("two\n"))
	})
}

func TestNewTOCRendererBuildsHeaderOutline(t *testing.T) {
	var state HTMLRendererState
	cb := NewTOCRenderer(&state)
	p := NewParser(0, 0, cb, &state)

	out := p.Render([]byte("# One\n\n## Two\n"))

	require.Contains(t, string(out), "<a href=\"#toc_0\">One</a>")
	assert.Contains(t, string(out), "<a href=\"#toc_1\">Two</a>")
}

func TestMarkdownBasicEmptyInput(t *testing.T) {
	out := MarkdownBasic(nil)
	assert.Equal(t, "", string(out))
}
