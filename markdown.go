package sundown

// utf8BOM is the three-byte UTF-8 byte-order mark, skipped at the very
// start of a document if present even though the Unicode standard
// discourages shipping one in UTF-8 text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Render runs a full two-pass parse of input and returns the rendered
// output. The first pass walks the document line by line, pulling out
// link-reference and (if ExtensionFootnotes is set) footnote-definition
// lines while expanding tabs and normalizing CRLF/CR/LF line endings in
// everything else; the second pass runs the block parser over the
// normalized text, driving the callback table, then appends rendered
// footnotes and runs the document-lifecycle callbacks.
//
// A Parser is good for exactly one call to Render: the reference and
// footnote tables it builds are document-specific and are not reset
// between calls. Build a new Parser (or a fresh one via NewParser) per
// document.
func (p *Parser) Render(input []byte) []byte {
	text := NewBuffer(64)

	beg := 0
	if len(input) >= 3 && input[0] == utf8BOM[0] && input[1] == utf8BOM[1] && input[2] == utf8BOM[2] {
		beg += 3
	}

	footnotesEnabled := p.extensions&ExtensionFootnotes != 0
	tabSizeEight := p.extensions&ExtensionTabSizeEight != 0
	noExpandTabs := p.extensions&ExtensionNoExpandTabs != 0

	for beg < len(input) {
		if footnotesEnabled {
			if end, ok := isFootnote(input, beg, &p.footnotesFound); ok {
				beg = end

				continue
			}
		}

		if end, ok := isRef(input, beg, &p.refs); ok {
			beg = end

			continue
		}

		end := beg
		for end < len(input) && input[end] != '\n' && input[end] != '\r' {
			end++
		}

		if end > beg {
			if noExpandTabs {
				_ = text.Put(input[beg:end])
			} else {
				expandTabs(text, input[beg:end], tabSizeEight)
			}
		}

		for end < len(input) && (input[end] == '\n' || input[end] == '\r') {
			if input[end] == '\n' || (end+1 < len(input) && input[end+1] != '\n') {
				_ = text.PutByte('\n')
			}

			end++
		}

		beg = end
	}

	ob := NewBuffer(text.Len() + text.Len()/2)

	if p.cb.DocumentHeader != nil {
		p.cb.DocumentHeader(ob, p.opaque)
	}

	if text.Len() > 0 {
		last := text.Data[text.Len()-1]
		if last != '\n' && last != '\r' {
			_ = text.PutByte('\n')
		}

		parseBlock(ob, p, text.Data)
	}

	if footnotesEnabled {
		parseFootnoteList(ob, p, &p.footnotesUsed)
	}

	if p.cb.DocumentFooter != nil {
		p.cb.DocumentFooter(ob, p.opaque)
	}

	if p.cb.Outline != nil {
		p.cb.Outline(ob, p.opaque)
	}

	p.pool.assertDrained()

	return ob.Bytes()
}

// expandTabs appends line to ob, expanding each tab to the next stop.
// Stops are every 4th column unless tabSizeEight, which uses every 8th
// (ExtensionTabSizeEight); column counting resets only at the start of
// this call, matching the original's per-line, not per-document, tab
// expansion.
func expandTabs(ob *Buffer, line []byte, tabSizeEight bool) {
	stop := 4
	if tabSizeEight {
		stop = 8
	}

	i := 0
	col := 0

	for i < len(line) {
		org := i

		for i < len(line) && line[i] != '\t' {
			i++
			col++
		}

		if i > org {
			_ = ob.Put(line[org:i])
		}

		if i >= len(line) {
			break
		}

		for {
			_ = ob.PutByte(' ')
			col++

			if col%stop == 0 {
				break
			}
		}

		i++
	}
}

// isFootnote recognizes a `[^id]: contents...` footnote definition
// starting at beg, consuming it (and any indented continuation lines,
// joined the way a loose list item's lines are joined) into found.
// It reports the offset just past the definition and whether a
// definition was recognized at all.
func isFootnote(data []byte, beg int, found *footnoteList) (last int, ok bool) {
	end := len(data)
	i := beg

	if i+3 >= end {
		return 0, false
	}

	if data[i] == ' ' {
		i++

		if i < end && data[i] == ' ' {
			i++

			if i < end && data[i] == ' ' {
				i++

				if i < end && data[i] == ' ' {
					return 0, false
				}
			}
		}
	}

	if i >= end || data[i] != '[' {
		return 0, false
	}

	i++

	if i >= end || data[i] != '^' {
		return 0, false
	}

	i++
	idOffset := i

	for i < end && data[i] != '\n' && data[i] != '\r' && data[i] != ']' {
		i++
	}

	if i >= end || data[i] != ']' {
		return 0, false
	}

	idEnd := i

	i++

	if i >= end || data[i] != ':' {
		return 0, false
	}

	i++

	for i < end && data[i] == ' ' {
		i++
	}

	if i < end && (data[i] == '\n' || data[i] == '\r') {
		i++

		if i < end && data[i] == '\n' && data[i-1] == '\r' {
			i++
		}
	}

	for i < end && data[i] == ' ' {
		i++
	}

	if i >= end || data[i] == '\n' || data[i] == '\r' {
		return 0, false
	}

	contents := NewBuffer(64)
	start := i
	inEmpty := false

	for i < end {
		for i < end && data[i] != '\n' && data[i] != '\r' {
			i++
		}

		if isEmpty(data[start:i]) != 0 {
			inEmpty = true

			if i < end && (data[i] == '\n' || data[i] == '\r') {
				i++

				if i < end && data[i] == '\n' && data[i-1] == '\r' {
					i++
				}
			}

			start = i

			continue
		}

		ind := 0
		for ind < 4 && start+ind < end && data[start+ind] == ' ' {
			ind++
		}

		if inEmpty && ind == 0 {
			break
		} else if inEmpty {
			_ = contents.PutByte('\n')
		}

		inEmpty = false

		_ = contents.Put(data[start+ind : i])

		if i < end {
			_ = contents.PutByte('\n')

			if data[i] == '\n' || data[i] == '\r' {
				i++

				if i < end && data[i] == '\n' && data[i-1] == '\r' {
					i++
				}
			}
		}

		start = i
	}

	ref := createFootnoteRef(data[idOffset:idEnd])
	ref.contents = contents
	found.add(ref)

	return start, true
}

// isRef recognizes a `[id]: url "title"` link reference definition
// starting at beg. It reports the offset of the line break that ends the
// definition (its optional title line included) and whether a definition
// was recognized at all.
func isRef(data []byte, beg int, refs *linkRefTable) (last int, ok bool) {
	end := len(data)

	if beg+3 >= end {
		return 0, false
	}

	i := beg

	if data[i] == ' ' {
		i++

		if i < end && data[i] == ' ' {
			i++

			if i < end && data[i] == ' ' {
				i++

				if i < end && data[i] == ' ' {
					return 0, false
				}
			}
		}
	}

	if data[i] != '[' {
		return 0, false
	}

	i++
	idOffset := i

	for i < end && data[i] != '\n' && data[i] != '\r' && data[i] != ']' {
		i++
	}

	if i >= end || data[i] != ']' {
		return 0, false
	}

	idEnd := i

	i++

	if i >= end || data[i] != ':' {
		return 0, false
	}

	i++

	for i < end && data[i] == ' ' {
		i++
	}

	if i < end && (data[i] == '\n' || data[i] == '\r') {
		i++

		if i < end && data[i] == '\n' && data[i-1] == '\r' {
			i++
		}
	}

	for i < end && data[i] == ' ' {
		i++
	}

	if i >= end {
		return 0, false
	}

	if data[i] == '<' {
		i++
	}

	linkOffset := i

	for i < end && data[i] != ' ' && data[i] != '\n' && data[i] != '\r' {
		i++
	}

	var linkEnd int
	if i > 0 && data[i-1] == '>' {
		linkEnd = i - 1
	} else {
		linkEnd = i
	}

	for i < end && data[i] == ' ' {
		i++
	}

	if i < end && data[i] != '\n' && data[i] != '\r' && data[i] != '\'' && data[i] != '"' && data[i] != '(' {
		return 0, false
	}

	lineEnd := 0

	if i >= end || data[i] == '\r' || data[i] == '\n' {
		lineEnd = i
	}

	if i+1 < end && data[i] == '\r' && data[i+1] == '\n' {
		lineEnd = i + 1
	}

	if lineEnd != 0 {
		i = lineEnd + 1

		for i < end && data[i] == ' ' {
			i++
		}
	}

	titleOffset, titleEnd := 0, 0

	if i+1 < end && (data[i] == '\'' || data[i] == '"' || data[i] == '(') {
		i++
		titleOffset = i

		for i < end && data[i] != '\n' && data[i] != '\r' {
			i++
		}

		if i+1 < end && data[i] == '\n' && data[i+1] == '\r' {
			titleEnd = i + 1
		} else {
			titleEnd = i
		}

		i--

		for i > titleOffset && data[i] == ' ' {
			i--
		}

		if i > titleOffset && (data[i] == '\'' || data[i] == '"' || data[i] == ')') {
			lineEnd = titleEnd
			titleEnd = i
		}
	}

	if lineEnd == 0 || linkEnd == linkOffset {
		return 0, false
	}

	ref := refs.add(data[idOffset:idEnd])
	ref.link = data[linkOffset:linkEnd]

	if titleEnd > titleOffset {
		ref.title = data[titleOffset:titleEnd]
	}

	return lineEnd, true
}

// MarkdownBasic renders input with no extensions enabled, using the
// default XHTML renderer.
func MarkdownBasic(input []byte) []byte {
	state := &HTMLRendererState{}
	cb := NewHTMLRenderer(HTMLUseXHTML, state)
	p := NewParser(0, 0, cb, state)

	return p.Render(input)
}

// MarkdownCommon renders input with the most broadly useful set of
// extensions enabled (no intra-word emphasis, tables, fenced code,
// autolinks, strikethrough, and a required space after a header's '#'
// run), using the default XHTML renderer.
func MarkdownCommon(input []byte) []byte {
	state := &HTMLRendererState{}
	cb := NewHTMLRenderer(HTMLUseXHTML, state)

	extensions := ExtensionNoIntraEmphasis |
		ExtensionTables |
		ExtensionFencedCode |
		ExtensionAutolink |
		ExtensionStrikethrough |
		ExtensionSpaceHeaders

	p := NewParser(extensions, 0, cb, state)

	return p.Render(input)
}
