package sundown

// HTMLFlags is a bitmask of options controlling the default HTML
// renderer built by NewHTMLRenderer.
type HTMLFlags int

const (
	HTMLSkipHTML HTMLFlags = 1 << iota
	HTMLSkipStyle
	HTMLSkipImages
	HTMLSkipLinks
	HTMLSafelink
	HTMLTOC
	HTMLHardWrap
	HTMLUseXHTML
	HTMLEscape
	HTMLOutline
)

// htmlTagKind is the result of classifying a raw HTML tag against a
// tag name, used by the SkipStyle/SkipLinks/SkipImages checks.
type htmlTagKind int

const (
	htmlTagNone htmlTagKind = iota
	htmlTagOpen
	htmlTagClose
)

// isHTMLTag reports whether tag (the raw bytes of a single HTML tag,
// starting with '<') is an open or close tag for name. A tag shorter
// than "<x>", one not starting with '<', or one that doesn't have name
// immediately after the optional '/' followed by whitespace or '>'
// classifies as htmlTagNone.
func isHTMLTag(tag []byte, name string) htmlTagKind {
	if len(tag) < 3 || tag[0] != '<' {
		return htmlTagNone
	}

	i := 1
	closed := false

	if tag[i] == '/' {
		closed = true
		i++
	}

	j := 0
	for ; i < len(tag) && j < len(name); i, j = i+1, j+1 {
		if tag[i] != name[j] {
			return htmlTagNone
		}
	}

	if j != len(name) || i == len(tag) {
		return htmlTagNone
	}

	if isCSpace(tag[i]) || tag[i] == '>' {
		if closed {
			return htmlTagClose
		}

		return htmlTagOpen
	}

	return htmlTagNone
}

// outlineState tracks the open <section> nesting built up by
// htmlHeader when HTMLOutline is set.
type outlineState struct {
	openSectionCount int
	currentLevel     int
}

// tocState tracks the synthetic nested <ul> structure built up by
// tocHeader when rendering a table of contents.
type tocState struct {
	headerCount  int
	currentLevel int
	levelOffset  int
}

// HTMLRendererState is the opaque value NewHTMLRenderer and
// NewTOCRenderer thread through every callback. LinkAttributes, when
// set, is called after a link's href (and, for Autolink, the
// mailto:/scheme prefix) is written but before the closing '>', letting
// a caller inject extra attributes such as rel="nofollow".
type HTMLRendererState struct {
	Flags HTMLFlags

	LinkAttributes func(out *Buffer, link *Buffer, opaque interface{})

	outline outlineState
	toc     tocState
}

func useXHTML(state *HTMLRendererState) bool {
	return state.Flags&HTMLUseXHTML != 0
}

func htmlAutolink(out *Buffer, link *Buffer, kind AutolinkType, opaque interface{}) bool {
	state := opaque.(*HTMLRendererState)

	if link.Len() == 0 {
		return false
	}

	if state.Flags&HTMLSafelink != 0 && !isSafeLink(link.Bytes()) && kind != AutolinkEmail {
		return false
	}

	_ = out.PutString("<a href=\"")

	if kind == AutolinkEmail {
		_ = out.PutString("mailto:")
	}

	EscapeHref(out, link.Bytes())

	if state.LinkAttributes != nil {
		_ = out.PutByte('"')
		state.LinkAttributes(out, link, opaque)
		_ = out.PutByte('>')
	} else {
		_ = out.PutString("\">")
	}

	// Pretty-printing: an actual mailto: URI autolink shouldn't repeat
	// the scheme in the link text.
	if link.HasPrefix("mailto:") {
		EscapeHTML(out, link.Bytes()[len("mailto:"):], false)
	} else {
		EscapeHTML(out, link.Bytes(), false)
	}

	_ = out.PutString("</a>")

	return true
}

func htmlBlockCode(out *Buffer, text, lang *Buffer, opaque interface{}) {
	if out.Len() != 0 {
		_ = out.PutByte('\n')
	}

	if lang.Len() != 0 {
		_ = out.PutString("<pre><code class=\"")

		data := lang.Bytes()
		cls := 0

		for i := 0; i < len(data); cls++ {
			for i < len(data) && isCSpace(data[i]) {
				i++
			}

			if i >= len(data) {
				break
			}

			org := i
			for i < len(data) && !isCSpace(data[i]) {
				i++
			}

			start := org
			if data[start] == '.' {
				start++
			}

			if cls != 0 {
				_ = out.PutByte(' ')
			}

			EscapeHTML(out, data[start:i], false)
		}

		_ = out.PutString("\">")
	} else {
		_ = out.PutString("<pre><code>")
	}

	EscapeHTML(out, text.Bytes(), false)
	_ = out.PutString("</code></pre>\n")
}

func htmlBlockQuote(out *Buffer, text *Buffer, opaque interface{}) {
	if out.Len() != 0 {
		_ = out.PutByte('\n')
	}

	_ = out.PutString("<blockquote>\n")
	_ = out.Put(text.Bytes())
	_ = out.PutString("</blockquote>\n")
}

func htmlCodeSpan(out *Buffer, text *Buffer, opaque interface{}) bool {
	_ = out.PutString("<code>")
	EscapeHTML(out, text.Bytes(), false)
	_ = out.PutString("</code>")

	return true
}

func htmlIns(out *Buffer, text *Buffer, opaque interface{}) bool {
	if text.Len() == 0 {
		return false
	}

	_ = out.PutString("<ins>")
	_ = out.Put(text.Bytes())
	_ = out.PutString("</ins>")

	return true
}

func htmlStrikethrough(out *Buffer, text *Buffer, opaque interface{}) bool {
	if text.Len() == 0 {
		return false
	}

	_ = out.PutString("<del>")
	_ = out.Put(text.Bytes())
	_ = out.PutString("</del>")

	return true
}

func htmlDoubleEmphasis(out *Buffer, text *Buffer, opaque interface{}) bool {
	if text.Len() == 0 {
		return false
	}

	_ = out.PutString("<strong>")
	_ = out.Put(text.Bytes())
	_ = out.PutString("</strong>")

	return true
}

func htmlEmphasis(out *Buffer, text *Buffer, opaque interface{}) bool {
	if text.Len() == 0 {
		return false
	}

	_ = out.PutString("<em>")
	_ = out.Put(text.Bytes())
	_ = out.PutString("</em>")

	return true
}

func htmlLineBreak(out *Buffer, opaque interface{}) bool {
	state := opaque.(*HTMLRendererState)

	if useXHTML(state) {
		_ = out.PutString("<br/>\n")
	} else {
		_ = out.PutString("<br>\n")
	}

	return true
}

func htmlHeader(out *Buffer, text *Buffer, level int, opaque interface{}) {
	state := opaque.(*HTMLRendererState)

	if out.Len() != 0 {
		_ = out.PutByte('\n')
	}

	if state.Flags&HTMLOutline != 0 {
		if state.outline.currentLevel >= level {
			_ = out.PutString("</section>")
			state.outline.openSectionCount--
		}

		out.Printf("<section class=\"section%d\">\n", level)
		state.outline.openSectionCount++
		state.outline.currentLevel = level
	}

	if state.Flags&HTMLTOC != 0 {
		out.Printf("<h%d id=\"toc_%d\">", level, state.toc.headerCount)
		state.toc.headerCount++
	} else {
		out.Printf("<h%d>", level)
	}

	_ = out.Put(text.Bytes())
	out.Printf("</h%d>\n", level)
}

func htmlLink(out *Buffer, link, title, content *Buffer, opaque interface{}) bool {
	state := opaque.(*HTMLRendererState)

	if link != nil && state.Flags&HTMLSafelink != 0 && !isSafeLink(link.Bytes()) {
		return false
	}

	_ = out.PutString("<a href=\"")

	if link.Len() != 0 {
		EscapeHref(out, link.Bytes())
	}

	if title.Len() != 0 {
		_ = out.PutString("\" title=\"")
		EscapeHTML(out, title.Bytes(), false)
	}

	if state.LinkAttributes != nil {
		_ = out.PutByte('"')
		state.LinkAttributes(out, link, opaque)
		_ = out.PutByte('>')
	} else {
		_ = out.PutString("\">")
	}

	if content.Len() != 0 {
		_ = out.Put(content.Bytes())
	}

	_ = out.PutString("</a>")

	return true
}

func htmlList(out *Buffer, text *Buffer, flags ListFlags, opaque interface{}) {
	if out.Len() != 0 {
		_ = out.PutByte('\n')
	}

	if flags&ListOrdered != 0 {
		_ = out.PutString("<ol>\n")
	} else {
		_ = out.PutString("<ul>\n")
	}

	_ = out.Put(text.Bytes())

	if flags&ListOrdered != 0 {
		_ = out.PutString("</ol>\n")
	} else {
		_ = out.PutString("</ul>\n")
	}
}

func htmlListItem(out *Buffer, text *Buffer, flags ListFlags, opaque interface{}) {
	_ = out.PutString("<li>")

	size := text.Len()
	data := text.Bytes()

	for size > 0 && data[size-1] == '\n' {
		size--
	}

	_ = out.Put(data[:size])
	_ = out.PutString("</li>\n")
}

func htmlParagraph(out *Buffer, text *Buffer, opaque interface{}) {
	state := opaque.(*HTMLRendererState)

	if out.Len() != 0 {
		_ = out.PutByte('\n')
	}

	if text.Len() == 0 {
		return
	}

	data := text.Bytes()
	i := 0

	for i < len(data) && isCSpace(data[i]) {
		i++
	}

	if i == len(data) {
		return
	}

	_ = out.PutString("<p>")

	if state.Flags&HTMLHardWrap != 0 {
		for i < len(data) {
			org := i

			for i < len(data) && data[i] != '\n' {
				i++
			}

			if i > org {
				_ = out.Put(data[org:i])
			}

			if i >= len(data)-1 {
				break
			}

			htmlLineBreak(out, opaque)
			i++
		}
	} else {
		_ = out.Put(data[i:])
	}

	_ = out.PutString("</p>\n")
}

func htmlRawBlock(out *Buffer, text *Buffer, opaque interface{}) {
	data := text.Bytes()
	size := len(data)

	for size > 0 && data[size-1] == '\n' {
		size--
	}

	org := 0
	for org < size && data[org] == '\n' {
		org++
	}

	if org >= size {
		return
	}

	if out.Len() != 0 {
		_ = out.PutByte('\n')
	}

	_ = out.Put(data[org:size])
	_ = out.PutByte('\n')
}

func htmlTripleEmphasis(out *Buffer, text *Buffer, opaque interface{}) bool {
	if text.Len() == 0 {
		return false
	}

	_ = out.PutString("<strong><em>")
	_ = out.Put(text.Bytes())
	_ = out.PutString("</em></strong>")

	return true
}

func htmlHRule(out *Buffer, opaque interface{}) {
	state := opaque.(*HTMLRendererState)

	if out.Len() != 0 {
		_ = out.PutByte('\n')
	}

	if useXHTML(state) {
		_ = out.PutString("<hr/>\n")
	} else {
		_ = out.PutString("<hr>\n")
	}
}

func htmlImage(out *Buffer, link, title, alt *Buffer, opaque interface{}) bool {
	state := opaque.(*HTMLRendererState)

	if link.Len() == 0 {
		return false
	}

	_ = out.PutString("<img src=\"")
	EscapeHref(out, link.Bytes())
	_ = out.PutString("\" alt=\"")

	if alt.Len() != 0 {
		EscapeHTML(out, alt.Bytes(), false)
	}

	if title.Len() != 0 {
		_ = out.PutString("\" title=\"")
		EscapeHTML(out, title.Bytes(), false)
	}

	if useXHTML(state) {
		_ = out.PutString("\"/>")
	} else {
		_ = out.PutString("\">")
	}

	return true
}

func htmlRawHTMLTag(out *Buffer, text *Buffer, opaque interface{}) bool {
	state := opaque.(*HTMLRendererState)

	if state.Flags&HTMLEscape != 0 {
		EscapeHTML(out, text.Bytes(), false)

		return true
	}

	if state.Flags&HTMLSkipHTML != 0 {
		return true
	}

	if state.Flags&HTMLSkipStyle != 0 && isHTMLTag(text.Bytes(), "style") != htmlTagNone {
		return true
	}

	if state.Flags&HTMLSkipLinks != 0 && isHTMLTag(text.Bytes(), "a") != htmlTagNone {
		return true
	}

	if state.Flags&HTMLSkipImages != 0 && isHTMLTag(text.Bytes(), "img") != htmlTagNone {
		return true
	}

	_ = out.Put(text.Bytes())

	return true
}

func htmlTable(out *Buffer, header, body *Buffer, opaque interface{}) {
	if out.Len() != 0 {
		_ = out.PutByte('\n')
	}

	_ = out.PutString("<table><thead>\n")
	_ = out.Put(header.Bytes())
	_ = out.PutString("</thead><tbody>\n")
	_ = out.Put(body.Bytes())
	_ = out.PutString("</tbody></table>\n")
}

func htmlTableRow(out *Buffer, text *Buffer, opaque interface{}) {
	_ = out.PutString("<tr>\n")
	_ = out.Put(text.Bytes())
	_ = out.PutString("</tr>\n")
}

func htmlTableCell(out *Buffer, text *Buffer, flags TableFlags, opaque interface{}) {
	if flags&TableHeader != 0 {
		_ = out.PutString("<th")
	} else {
		_ = out.PutString("<td")
	}

	switch flags & TableAlignmentCenter {
	case TableAlignmentCenter:
		_ = out.PutString(" style=\"text-align: center\">")
	case TableAlignmentLeft:
		_ = out.PutString(" style=\"text-align: left\">")
	case TableAlignmentRight:
		_ = out.PutString(" style=\"text-align: right\">")
	default:
		_ = out.PutString(">")
	}

	_ = out.Put(text.Bytes())

	if flags&TableHeader != 0 {
		_ = out.PutString("</th>\n")
	} else {
		_ = out.PutString("</td>\n")
	}
}

func htmlSuperscript(out *Buffer, text *Buffer, opaque interface{}) bool {
	if text.Len() == 0 {
		return false
	}

	_ = out.PutString("<sup>")
	_ = out.Put(text.Bytes())
	_ = out.PutString("</sup>")

	return true
}

func htmlNormalText(out *Buffer, text *Buffer, opaque interface{}) {
	EscapeHTML(out, text.Bytes(), true)
}

func htmlFinalize(out *Buffer, opaque interface{}) {
	state := opaque.(*HTMLRendererState)

	for i := 0; i < state.outline.openSectionCount; i++ {
		_ = out.PutString("\n</section>\n")
	}
}

func htmlFootnotes(out *Buffer, text *Buffer, opaque interface{}) {
	_ = out.PutString("<div class=\"footnotes\">\n<hr />\n<ol>\n")
	_ = out.Put(text.Bytes())
	_ = out.PutString("\n</ol>\n</div>\n")
}

func htmlFootnoteDef(out *Buffer, text *Buffer, num int, opaque interface{}) {
	data := text.Bytes()

	pEnd := -1

	for i := 0; i+3 < len(data); i++ {
		if data[i] != '<' || data[i+1] != '/' || (data[i+2] != 'p' && data[i+2] != 'P') || data[i+3] != '>' {
			continue
		}

		pEnd = i

		break
	}

	out.Printf("\n<li id=\"fn%d\">\n", num)

	if pEnd >= 0 {
		_ = out.Put(data[:pEnd])
		out.Printf("&nbsp;<a href=\"#fnref%d\" rev=\"footnote\">&#8617;</a>", num)
		_ = out.Put(data[pEnd:])
	} else {
		_ = out.Put(data)
	}

	_ = out.PutString("</li>\n")
}

func htmlFootnoteRef(out *Buffer, num int, opaque interface{}) bool {
	out.Printf("<sup id=\"fnref%d\"><a href=\"#fn%d\" rel=\"footnote\">%d</a></sup>", num, num, num)

	return true
}

func tocHeader(out *Buffer, text *Buffer, level int, opaque interface{}) {
	state := opaque.(*HTMLRendererState)

	if state.toc.currentLevel == 0 {
		state.toc.levelOffset = level - 1
	}

	level -= state.toc.levelOffset

	switch {
	case level > state.toc.currentLevel:
		for level > state.toc.currentLevel {
			_ = out.PutString("<ul>\n<li>\n")
			state.toc.currentLevel++
		}
	case level < state.toc.currentLevel:
		_ = out.PutString("</li>\n")

		for level < state.toc.currentLevel {
			_ = out.PutString("</ul>\n</li>\n")
			state.toc.currentLevel--
		}

		_ = out.PutString("<li>\n")
	default:
		_ = out.PutString("</li>\n<li>\n")
	}

	out.Printf("<a href=\"#toc_%d\">", state.toc.headerCount)
	state.toc.headerCount++
	EscapeHTML(out, text.Bytes(), false)
	_ = out.PutString("</a>\n")
}

func tocLink(out *Buffer, link, title, content *Buffer, opaque interface{}) bool {
	if content.Len() != 0 {
		_ = out.Put(content.Bytes())
	}

	return true
}

func tocFinalize(out *Buffer, opaque interface{}) {
	state := opaque.(*HTMLRendererState)

	for state.toc.currentLevel > 0 {
		_ = out.PutString("</li>\n</ul>\n")
		state.toc.currentLevel--
	}
}

// NewHTMLRenderer builds the default (X)HTML callback table. flags is
// stashed on state (which must not be nil; its zero value is a valid
// starting point) alongside the mutable outline/TOC bookkeeping the
// callbacks update as rendering proceeds, so state must not be shared
// between concurrent or sequential Render calls.
func NewHTMLRenderer(flags HTMLFlags, state *HTMLRendererState) *Callbacks {
	state.Flags = flags
	state.outline = outlineState{}
	state.toc = tocState{}

	cb := &Callbacks{
		BlockCode:   htmlBlockCode,
		BlockQuote:  htmlBlockQuote,
		BlockHTML:   htmlRawBlock,
		Header:      htmlHeader,
		HRule:       htmlHRule,
		List:        htmlList,
		ListItem:    htmlListItem,
		Paragraph:   htmlParagraph,
		Table:       htmlTable,
		TableRow:    htmlTableRow,
		TableCell:   htmlTableCell,
		Footnotes:   htmlFootnotes,
		FootnoteDef: htmlFootnoteDef,

		Autolink:       htmlAutolink,
		CodeSpan:       htmlCodeSpan,
		DoubleEmphasis: htmlDoubleEmphasis,
		Emphasis:       htmlEmphasis,
		Image:          htmlImage,
		LineBreak:      htmlLineBreak,
		Link:           htmlLink,
		RawHTMLTag:     htmlRawHTMLTag,
		TripleEmphasis: htmlTripleEmphasis,
		Ins:            htmlIns,
		Strikethrough:  htmlStrikethrough,
		Superscript:    htmlSuperscript,
		FootnoteRef:    htmlFootnoteRef,

		NormalText: htmlNormalText,
	}

	if flags&HTMLOutline != 0 {
		cb.Outline = htmlFinalize
	}

	if flags&HTMLSkipImages != 0 {
		cb.Image = nil
	}

	if flags&HTMLSkipLinks != 0 {
		cb.Link = nil
		cb.Autolink = nil
	}

	if flags&HTMLSkipHTML != 0 || flags&HTMLEscape != 0 {
		cb.BlockHTML = nil
	}

	return cb
}

// NewTOCRenderer builds a callback table that renders a nested <ul> table
// of contents instead of a document body: only headers, and the span
// callbacks needed to render their text, are wired up.
func NewTOCRenderer(state *HTMLRendererState) *Callbacks {
	state.Flags = HTMLTOC
	state.outline = outlineState{}
	state.toc = tocState{}

	return &Callbacks{
		Header: tocHeader,

		CodeSpan:       htmlCodeSpan,
		DoubleEmphasis: htmlDoubleEmphasis,
		Emphasis:       htmlEmphasis,
		Link:           tocLink,
		TripleEmphasis: htmlTripleEmphasis,
		Ins:            htmlIns,
		Strikethrough:  htmlStrikethrough,
		Superscript:    htmlSuperscript,

		Outline: tocFinalize,
	}
}
