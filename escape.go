package sundown

// htmlEscapeTable classifies each byte that needs escaping when writing
// HTML text or attribute content, ported byte-for-byte from
// HTML_ESCAPE_TABLE in houdini_html_e.c.
var htmlEscapeTable = [256]byte{
	'"':  1,
	'&':  2,
	'\'': 3,
	'/':  4,
	'<':  5,
	'>':  6,
}

var htmlEscapes = [...]string{
	"",
	"&quot;",
	"&amp;",
	"&#39;",
	"&#47;",
	"&lt;",
	"&gt;",
}

// EscapeHTML writes an HTML-escaped copy of src to out. In secure mode a
// literal '/' is also escaped to "&#47;"; the renderer uses secure mode
// for ordinary body text and non-secure mode for its own structural
// escaping (e.g. fenced-code language names), matching the distinction
// the original renderer makes between houdini_escape_html (always
// secure) and its internal escape_html helper (never secure).
func EscapeHTML(out *Buffer, src []byte, secure bool) {
	i := 0

	for i < len(src) {
		org := i

		for i < len(src) && htmlEscapeTable[src[i]] == 0 {
			i++
		}

		if i > org {
			_ = out.Put(src[org:i])
		}

		if i >= len(src) {
			break
		}

		if src[i] == '/' && !secure {
			_ = out.PutByte('/')
		} else {
			_ = out.PutString(htmlEscapes[htmlEscapeTable[src[i]]])
		}

		i++
	}
}

// hrefSafeByte marks bytes that may appear unescaped inside an href/src
// attribute value: alphanumerics plus the common URL punctuation set.
var hrefSafeByte = func() [256]bool {
	var t [256]bool

	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
	}

	for c := 'A'; c <= 'Z'; c++ {
		t[c] = true
	}

	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}

	for _, c := range []byte("-_.+!*(),%#@?=;:/$~[]") {
		t[c] = true
	}

	return t
}()

// EscapeHref writes src to out as a safe href/src attribute value:
// URL-safe bytes pass through unchanged, '&' and '\'' are rewritten to
// their HTML entities (the value still sits inside a double-quoted HTML
// attribute), and every other byte is percent-encoded. This is this
// port's implementation of the houdini_escape_href contract described as
// "URL-encode forbidden bytes while leaving the safe set intact" — no
// source for the original houdini_escape_href was available to port
// byte-for-byte, so the safe set and escaping choices here are derived
// directly from that description (see DESIGN.md).
func EscapeHref(out *Buffer, src []byte) {
	i := 0

	for i < len(src) {
		org := i

		for i < len(src) && hrefSafeByte[src[i]] {
			i++
		}

		if i > org {
			_ = out.Put(src[org:i])
		}

		if i >= len(src) {
			break
		}

		switch src[i] {
		case '&':
			_ = out.PutString("&amp;")
		case '\'':
			_ = out.PutString("&#x27;")
		default:
			out.Printf("%%%02X", src[i])
		}

		i++
	}
}
