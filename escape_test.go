package sundown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTMLSecureEscapesSlash(t *testing.T) {
	out := NewBuffer(0)
	EscapeHTML(out, []byte(`<a href="x">'text'</a>`), true)
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;&#39;text&#39;&lt;&#47;a&gt;", string(out.Bytes()))
}

func TestEscapeHTMLNonSecureLeavesSlashAlone(t *testing.T) {
	out := NewBuffer(0)
	EscapeHTML(out, []byte("a/b"), false)
	assert.Equal(t, "a/b", string(out.Bytes()))
}

func TestEscapeHTMLPlainTextPassesThrough(t *testing.T) {
	out := NewBuffer(0)
	EscapeHTML(out, []byte("hello world 123"), false)
	assert.Equal(t, "hello world 123", string(out.Bytes()))
}

func TestEscapeHTMLEmptyInput(t *testing.T) {
	out := NewBuffer(0)
	EscapeHTML(out, nil, true)
	assert.Equal(t, 0, out.Len())
}

func TestEscapeHrefPassesSafeBytesThrough(t *testing.T) {
	out := NewBuffer(0)
	EscapeHref(out, []byte("http://example.com/a_b-c.d?x=1&y=2#frag"))
	assert.Equal(t, "http://example.com/a_b-c.d?x=1&amp;y=2#frag", string(out.Bytes()))
}

func TestEscapeHrefEscapesQuoteAndPercentEncodesRest(t *testing.T) {
	out := NewBuffer(0)
	EscapeHref(out, []byte("it's \"quoted\""))
	assert.Equal(t, "it&#x27;s%20%22quoted%22", string(out.Bytes()))
}
