package sundown

// isEmpty reports the length of data up to and including the next
// newline if every byte before it is a space, or 0 if the line has any
// other content.
func isEmpty(data []byte) int {
	i := 0

	for i < len(data) && data[i] != '\n' {
		if data[i] != ' ' {
			return 0
		}

		i++
	}

	return i + 1
}

// isHrule reports whether data begins with a horizontal-rule line: up to
// three leading spaces, then three or more of the same '*', '-' or '_'
// possibly interleaved with spaces, to end of line.
func isHrule(data []byte) bool {
	if len(data) < 3 {
		return false
	}

	i := 0

	if data[0] == ' ' {
		i++

		if data[1] == ' ' {
			i++

			if data[2] == ' ' {
				i++
			}
		}
	}

	if i+2 >= len(data) || (data[i] != '*' && data[i] != '-' && data[i] != '_') {
		return false
	}

	c := data[i]
	n := 0

	for i < len(data) && data[i] != '\n' {
		if data[i] == c {
			n++
		} else if data[i] != ' ' {
			return false
		}

		i++
	}

	return n >= 3
}

// prefixCodefence returns the width of a leading code-fence delimiter
// (three or more consecutive '~' or '`', after up to three leading
// spaces), or 0 if data doesn't start with one.
func prefixCodefence(data []byte) int {
	if len(data) < 3 {
		return 0
	}

	i := 0

	if data[0] == ' ' {
		i++

		if data[1] == ' ' {
			i++

			if data[2] == ' ' {
				i++
			}
		}
	}

	if i+2 >= len(data) || (data[i] != '~' && data[i] != '`') {
		return 0
	}

	c := data[i]
	n := 0

	for i < len(data) && data[i] == c {
		n++
		i++
	}

	if n < 3 {
		return 0
	}

	return i
}

// isCodefence reports whether data's first line is a complete code-fence
// marker, optionally followed by a `{syntax}` or bare syntax-name
// annotation, returning the byte length of that whole line (through its
// newline) and, via syntax, the annotation's trimmed text. Returns 0 if
// the line has non-whitespace trailing garbage.
func isCodefence(data []byte, syntax *Buffer) int {
	i := prefixCodefence(data)
	if i == 0 {
		return 0
	}

	for i < len(data) && data[i] == ' ' {
		i++
	}

	synStart := i
	synLen := 0

	if i < len(data) && data[i] == '{' {
		i++
		synStart++

		for i < len(data) && data[i] != '}' && data[i] != '\n' {
			synLen++
			i++
		}

		if i == len(data) || data[i] != '}' {
			return 0
		}

		for synLen > 0 && isSpace(data[synStart]) {
			synStart++
			synLen--
		}

		for synLen > 0 && isSpace(data[synStart+synLen-1]) {
			synLen--
		}

		i++
	} else {
		for i < len(data) && !isSpace(data[i]) {
			synLen++
			i++
		}
	}

	if syntax != nil {
		syntax.Data = data[synStart : synStart+synLen]
	}

	for i < len(data) && data[i] != '\n' {
		if !isSpace(data[i]) {
			return 0
		}

		i++
	}

	return i + 1
}

// isAtxheader reports whether data begins with a hash-prefixed header
// line. With ExtensionSpaceHeaders set, the run of '#' must be followed
// by a space (so "#5" is not a header).
func isAtxheader(p *Parser, data []byte) bool {
	if data[0] != '#' {
		return false
	}

	if p.extensions&ExtensionSpaceHeaders != 0 {
		level := 0

		for level < len(data) && level < 6 && data[level] == '#' {
			level++
		}

		if level < len(data) && data[level] != ' ' {
			return false
		}
	}

	return true
}

// isHeaderline reports whether data's first line is a setext-style header
// underline, returning 1 for a "===" underline, 2 for a "---" underline,
// or 0 for neither.
func isHeaderline(data []byte) int {
	i := 0

	if len(data) > 0 && data[i] == '=' {
		for i = 1; i < len(data) && data[i] == '='; i++ {
		}

		for i < len(data) && data[i] == ' ' {
			i++
		}

		if i >= len(data) || data[i] == '\n' {
			return 1
		}

		return 0
	}

	if len(data) > 0 && data[i] == '-' {
		for i = 1; i < len(data) && data[i] == '-'; i++ {
		}

		for i < len(data) && data[i] == ' ' {
			i++
		}

		if i >= len(data) || data[i] == '\n' {
			return 2
		}

		return 0
	}

	return 0
}

// isNextHeaderline reports whether the line following data's first line
// is a setext header underline.
func isNextHeaderline(data []byte) int {
	i := 0

	for i < len(data) && data[i] != '\n' {
		i++
	}

	i++
	if i >= len(data) {
		return 0
	}

	return isHeaderline(data[i:])
}

// prefixQuote returns the length of a leading blockquote marker (up to
// three spaces then '>' and an optional following space), or 0.
func prefixQuote(data []byte) int {
	i := 0

	for j := 0; j < 3 && i < len(data) && data[i] == ' '; j++ {
		i++
	}

	if i < len(data) && data[i] == '>' {
		if i+1 < len(data) && data[i+1] == ' ' {
			return i + 2
		}

		return i + 1
	}

	return 0
}

// prefixCode returns 4 if data begins with four literal spaces (the
// indented-code-block marker), or 0.
func prefixCode(data []byte) int {
	if len(data) > 3 && data[0] == ' ' && data[1] == ' ' && data[2] == ' ' && data[3] == ' ' {
		return 4
	}

	return 0
}

// prefixOli returns the length of a leading ordered-list marker
// ("1. ", after up to three spaces), or 0; a marker line followed by a
// setext header underline doesn't count (it is the header's text).
func prefixOli(data []byte) int {
	i := 0

	for j := 0; j < 3 && i < len(data) && data[i] == ' '; j++ {
		i++
	}

	if i >= len(data) || data[i] < '0' || data[i] > '9' {
		return 0
	}

	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}

	if i+1 >= len(data) || data[i] != '.' || data[i+1] != ' ' {
		return 0
	}

	if isNextHeaderline(data[i:]) != 0 {
		return 0
	}

	return i + 2
}

// prefixUli returns the length of a leading unordered-list marker
// ("* "/"+ "/"- ", after up to three spaces), or 0.
func prefixUli(data []byte) int {
	i := 0

	for j := 0; j < 3 && i < len(data) && data[i] == ' '; j++ {
		i++
	}

	if i+1 >= len(data) || (data[i] != '*' && data[i] != '+' && data[i] != '-') || data[i+1] != ' ' {
		return 0
	}

	if isNextHeaderline(data[i:]) != 0 {
		return 0
	}

	return i + 2
}

// parseBlock is the block-level dispatcher: it repeatedly looks at the
// start of the remaining input and tries each block construct in a fixed
// priority order, falling back to paragraph if nothing else matches.
func parseBlock(ob *Buffer, p *Parser, data []byte) {
	if p.pool.nesting() > p.maxNesting {
		return
	}

	beg := 0

	for beg < len(data) {
		txt := data[beg:]

		if isAtxheader(p, txt) {
			beg += parseAtxheader(ob, p, txt)

			continue
		}

		if txt[0] == '<' && p.cb.BlockHTML != nil {
			if n := parseHtmlblock(ob, p, txt, true); n != 0 {
				beg += n

				continue
			}
		}

		if n := isEmpty(txt); n != 0 {
			beg += n

			continue
		}

		if isHrule(txt) {
			if p.cb.HRule != nil {
				p.cb.HRule(ob, p.opaque)
			}

			for beg < len(data) && data[beg] != '\n' {
				beg++
			}

			beg++

			continue
		}

		if p.extensions&ExtensionFencedCode != 0 {
			if n := parseFencedcode(ob, p, txt); n != 0 {
				beg += n

				continue
			}
		}

		if p.extensions&ExtensionTables != 0 {
			if n := parseTable(ob, p, txt); n != 0 {
				beg += n

				continue
			}
		}

		if prefixQuote(txt) != 0 {
			beg += parseBlockquote(ob, p, txt)

			continue
		}

		if prefixCode(txt) != 0 {
			beg += parseBlockcode(ob, p, txt)

			continue
		}

		if prefixUli(txt) != 0 {
			beg += parseList(ob, p, txt, 0)

			continue
		}

		if prefixOli(txt) != 0 {
			beg += parseList(ob, p, txt, ListOrdered)

			continue
		}

		beg += parseParagraph(ob, p, txt)
	}
}

// parseBlockquote handles a run of '>'-prefixed (or blank-continuation)
// lines as a blockquote, stripping the prefix from each line before
// recursively block-parsing the dedented contents.
func parseBlockquote(ob *Buffer, p *Parser, data []byte) int {
	out := p.pool.newBuf(bufBlock)
	defer p.pool.popBuf(bufBlock)

	beg, end := 0, 0
	var work []byte

	for beg < len(data) {
		for end = beg + 1; end < len(data) && data[end-1] != '\n'; end++ {
		}

		pre := prefixQuote(data[beg:end])

		if pre != 0 {
			beg += pre
		} else if isEmpty(data[beg:end]) != 0 && (end >= len(data) || (prefixQuote(data[end:]) == 0 && isEmpty(data[end:]) == 0)) {
			break
		}

		if beg < end {
			work = append(work, data[beg:end]...)
		}

		beg = end
	}

	parseBlock(out, p, work)

	if p.cb.BlockQuote != nil {
		p.cb.BlockQuote(ob, out, p.opaque)
	}

	return end
}

// parseParagraph handles a run of lines as a single paragraph, unless it
// turns out to end in a setext header underline, in which case the
// preceding lines are parsed as a paragraph (if any remain) and the
// underlined line becomes a Header callback instead.
func parseParagraph(ob *Buffer, p *Parser, data []byte) int {
	i, end := 0, 0
	level := 0

	for i < len(data) {
		for end = i + 1; end < len(data) && data[end-1] != '\n'; end++ {
		}

		if isEmpty(data[i:]) != 0 {
			break
		}

		if level = isHeaderline(data[i:]); level != 0 {
			break
		}

		if isAtxheader(p, data[i:]) || isHrule(data[i:]) || prefixQuote(data[i:]) != 0 {
			end = i

			break
		}

		if p.extensions&ExtensionLaxSpacing != 0 && !isAlnum(data[i]) {
			if prefixOli(data[i:]) != 0 || prefixUli(data[i:]) != 0 {
				end = i

				break
			}

			if data[i] == '<' && p.cb.BlockHTML != nil && parseHtmlblock(ob, p, data[i:], false) != 0 {
				end = i

				break
			}

			if p.extensions&ExtensionFencedCode != 0 && isCodefence(data[i:], nil) != 0 {
				end = i

				break
			}
		}

		i = end
	}

	work := data[:i]

	for len(work) > 0 && work[len(work)-1] == '\n' {
		work = work[:len(work)-1]
	}

	if level == 0 {
		tmp := p.pool.newBuf(bufBlock)
		parseInline(tmp, p, work)

		if p.cb.Paragraph != nil {
			p.cb.Paragraph(ob, tmp, p.opaque)
		}

		p.pool.popBuf(bufBlock)

		return end
	}

	if len(work) > 0 {
		total := len(work)
		n := total - 1

		for n > 0 && work[n] != '\n' {
			n--
		}

		beg := n + 1

		for n > 0 && work[n-1] == '\n' {
			n--
		}

		if n > 0 {
			tmp := p.pool.newBuf(bufBlock)
			parseInline(tmp, p, work[:n])

			if p.cb.Paragraph != nil {
				p.cb.Paragraph(ob, tmp, p.opaque)
			}

			p.pool.popBuf(bufBlock)

			work = work[beg:total]
		} else {
			work = work[:total]
		}
	}

	headerWork := p.pool.newBuf(bufSpan)
	parseInline(headerWork, p, work)

	if p.cb.Header != nil {
		p.cb.Header(ob, headerWork, level, p.opaque)
	}

	p.pool.popBuf(bufSpan)

	return end
}

// parseFencedcode handles a ```/~~~-delimited fenced code block (the
// ExtensionFencedCode grammar), passing its optional syntax annotation
// through to Callbacks.BlockCode as lang.
func parseFencedcode(ob *Buffer, p *Parser, data []byte) int {
	var lang Buffer

	beg := isCodefence(data, &lang)
	if beg == 0 {
		return 0
	}

	work := p.pool.newBuf(bufBlock)
	defer p.pool.popBuf(bufBlock)

	for beg < len(data) {
		var fenceTrail Buffer

		fenceEnd := isCodefence(data[beg:], &fenceTrail)
		if fenceEnd != 0 && fenceTrail.Len() == 0 {
			beg += fenceEnd

			break
		}

		end := beg + 1
		for end < len(data) && data[end-1] != '\n' {
			end++
		}

		if beg < end {
			if isEmpty(data[beg:end]) != 0 {
				_ = work.PutByte('\n')
			} else {
				_ = work.Put(data[beg:end])
			}
		}

		beg = end
	}

	if work.Len() > 0 && work.Data[work.Len()-1] != '\n' {
		_ = work.PutByte('\n')
	}

	if p.cb.BlockCode != nil {
		if lang.Len() > 0 {
			p.cb.BlockCode(ob, work, &lang, p.opaque)
		} else {
			p.cb.BlockCode(ob, work, nil, p.opaque)
		}
	}

	return beg
}

// parseBlockcode handles a run of four-space-indented lines as an
// indented code block.
func parseBlockcode(ob *Buffer, p *Parser, data []byte) int {
	work := p.pool.newBuf(bufBlock)
	defer p.pool.popBuf(bufBlock)

	beg := 0

	for beg < len(data) {
		end := beg + 1
		for end < len(data) && data[end-1] != '\n' {
			end++
		}

		pre := prefixCode(data[beg:end])

		if pre != 0 {
			beg += pre
		} else if isEmpty(data[beg:end]) == 0 {
			break
		}

		if beg < end {
			if isEmpty(data[beg:end]) != 0 {
				_ = work.PutByte('\n')
			} else {
				_ = work.Put(data[beg:end])
			}
		}

		beg = end
	}

	for work.Len() > 0 && work.Data[work.Len()-1] == '\n' {
		work.Data = work.Data[:work.Len()-1]
	}

	_ = work.PutByte('\n')

	if p.cb.BlockCode != nil {
		p.cb.BlockCode(ob, work, nil, p.opaque)
	}

	return beg
}

// parseListitem parses a single list item starting at data (whose own
// marker has not yet been stripped), tracking enough state across
// continuation lines to decide whether the item contains block-level
// content (MKD_LI_BLOCK in the original) and whether a nested sublist
// starts partway through it. flags is both read (ListOrdered) and
// written (ListItemEndOfList, ListItemContainsBlock) to communicate with
// the enclosing parseList call.
func parseListitem(ob *Buffer, p *Parser, data []byte, flags *ListFlags) int {
	orgpre := 0

	for orgpre < 3 && orgpre < len(data) && data[orgpre] == ' ' {
		orgpre++
	}

	beg := prefixUli(data)
	if beg == 0 {
		beg = prefixOli(data)
	}

	if beg == 0 {
		return 0
	}

	end := beg
	for end < len(data) && data[end-1] != '\n' {
		end++
	}

	work := p.pool.newBuf(bufSpan)
	defer p.pool.popBuf(bufSpan)

	inter := p.pool.newBuf(bufSpan)
	defer p.pool.popBuf(bufSpan)

	_ = work.Put(data[beg:end])
	beg = end

	sublist := 0
	inEmpty := false
	hasInsideEmpty := false
	inFence := false

	for beg < len(data) {
		end++

		for end < len(data) && data[end-1] != '\n' {
			end++
		}

		if isEmpty(data[beg:end]) != 0 {
			inEmpty = true
			beg = end

			continue
		}

		i := 0
		for i < 4 && beg+i < end && data[beg+i] == ' ' {
			i++
		}

		pre := i

		if p.extensions&ExtensionFencedCode != 0 {
			if isCodefence(data[beg+i:end], nil) != 0 {
				inFence = !inFence
			}
		}

		hasNextUli := 0
		hasNextOli := 0

		if !inFence {
			hasNextUli = prefixUli(data[beg+i : end])
			hasNextOli = prefixOli(data[beg+i : end])
		}

		if inEmpty && (((*flags&ListOrdered != 0) && hasNextUli != 0) || (*flags&ListOrdered == 0 && hasNextOli != 0)) {
			*flags |= ListItemEndOfList

			break
		}

		if (hasNextUli != 0 && !isHrule(data[beg+i:end])) || hasNextOli != 0 {
			if inEmpty {
				hasInsideEmpty = true
			}

			if pre == orgpre {
				break
			}

			if sublist == 0 {
				sublist = work.Len()
			}
		} else if inEmpty && pre == 0 {
			*flags |= ListItemEndOfList

			break
		} else if inEmpty {
			_ = work.PutByte('\n')
			hasInsideEmpty = true
		}

		inEmpty = false

		_ = work.Put(data[beg+i : end])
		beg = end
	}

	if hasInsideEmpty {
		*flags |= ListItemContainsBlock
	}

	if *flags&ListItemContainsBlock != 0 {
		if sublist != 0 && sublist < work.Len() {
			parseBlock(inter, p, work.Data[:sublist])
			parseBlock(inter, p, work.Data[sublist:])
		} else {
			parseBlock(inter, p, work.Data)
		}
	} else {
		if sublist != 0 && sublist < work.Len() {
			parseInline(inter, p, work.Data[:sublist])
			parseBlock(inter, p, work.Data[sublist:])
		} else {
			parseInline(inter, p, work.Data)
		}
	}

	if p.cb.ListItem != nil {
		p.cb.ListItem(ob, inter, *flags, p.opaque)
	}

	return beg
}

// parseList parses a run of list items sharing a marker style (ordered or
// unordered, carried in flags) into a single List callback.
func parseList(ob *Buffer, p *Parser, data []byte, flags ListFlags) int {
	work := p.pool.newBuf(bufBlock)
	defer p.pool.popBuf(bufBlock)

	i := 0

	for i < len(data) {
		j := parseListitem(work, p, data[i:], &flags)
		i += j

		if j == 0 || flags&ListItemEndOfList != 0 {
			break
		}
	}

	if p.cb.List != nil {
		p.cb.List(ob, work, flags, p.opaque)
	}

	return i
}

// parseAtxheader parses a single "#...#" ATX-style header line.
func parseAtxheader(ob *Buffer, p *Parser, data []byte) int {
	level := 0
	for level < len(data) && level < 6 && data[level] == '#' {
		level++
	}

	i := level
	for i < len(data) && data[i] == ' ' {
		i++
	}

	end := i
	for end < len(data) && data[end] != '\n' {
		end++
	}

	skip := end

	for end > 0 && data[end-1] == '#' {
		end--
	}

	for end > 0 && data[end-1] == ' ' {
		end--
	}

	if end > i {
		work := p.pool.newBuf(bufSpan)
		parseInline(work, p, data[i:end])

		if p.cb.Header != nil {
			p.cb.Header(ob, work, level, p.opaque)
		}

		p.pool.popBuf(bufSpan)
	}

	return skip
}

// parseFootnoteDef renders a single footnote's contents (collected during
// the first pass) as a nested block context.
func parseFootnoteDef(ob *Buffer, p *Parser, num int, data []byte) {
	work := p.pool.newBuf(bufSpan)
	defer p.pool.popBuf(bufSpan)

	parseBlock(work, p, data)

	if p.cb.FootnoteDef != nil {
		p.cb.FootnoteDef(ob, work, num, p.opaque)
	}
}

// parseFootnoteList renders every footnote actually referenced from the
// body (footnotesUsed), in first-reference order, as a single Footnotes
// callback.
func parseFootnoteList(ob *Buffer, p *Parser, footnotes *footnoteList) {
	if footnotes.count == 0 {
		return
	}

	work := p.pool.newBuf(bufBlock)
	defer p.pool.popBuf(bufBlock)

	for item := footnotes.head; item != nil; item = item.next {
		ref := item.ref
		parseFootnoteDef(work, p, ref.num, ref.contents.Bytes())
	}

	if p.cb.Footnotes != nil {
		p.cb.Footnotes(ob, work, p.opaque)
	}
}

// htmlblockEndTag checks for "</tag>" followed by a blank line (or end of
// input), the standard close condition for an HTML block.
func htmlblockEndTag(tag string, data []byte) int {
	tagLen := len(tag)

	if tagLen+3 >= len(data) || !hasPrefixFold(data[2:], tag) || data[tagLen+2] != '>' {
		return 0
	}

	i := tagLen + 3
	w := 0

	if i < len(data) {
		w = isEmpty(data[i:])

		if w == 0 {
			return 0
		}
	}

	i += w
	w = 0

	if i < len(data) {
		w = isEmpty(data[i:])
	}

	return i + w
}

// htmlblockEnd scans forward for the closing tag of an HTML block opened
// by curtag. When startOfLine is true, a candidate closing tag is only
// accepted if it begins a line (matching the original Markdown.pl
// behavior for most block tags); startOfLine is false only for the
// second, more lenient pass, which parseHtmlblock tries when the strict
// pass fails for any tag other than "ins"/"del".
func htmlblockEnd(curtag string, data []byte, startOfLine bool) int {
	tagSize := len(curtag)
	i := 1
	blockLines := 0

	for i < len(data) {
		i++

		for i < len(data) && !(data[i-1] == '<' && data[i] == '/') {
			if data[i] == '\n' {
				blockLines++
			}

			i++
		}

		if startOfLine && blockLines > 0 && data[i-2] != '\n' {
			continue
		}

		if i+2+tagSize >= len(data) {
			break
		}

		endTag := htmlblockEndTag(curtag, data[i-1:])
		if endTag != 0 {
			return i + endTag - 1
		}
	}

	return 0
}

// parseHtmlblock parses an inline HTML block: a recognized block-level
// tag's opening tag through its matching, blank-line-terminated closing
// tag, an HTML comment, or a self-closing "<hr>" variant. When doRender
// is false the block is only recognized, not rendered — used by
// parseParagraph's ExtensionLaxSpacing probe to decide whether to
// terminate the paragraph early without actually emitting the block
// twice.
func parseHtmlblock(ob *Buffer, p *Parser, data []byte, doRender bool) int {
	if len(data) < 2 || data[0] != '<' {
		return 0
	}

	i := 1
	for i < len(data) && data[i] != '>' && data[i] != ' ' {
		i++
	}

	var curtag string
	var hasTag bool

	if i < len(data) {
		curtag, hasTag = findBlockTagName(data[1:i])
	}

	if !hasTag {
		if len(data) > 5 && data[1] == '!' && data[2] == '-' && data[3] == '-' {
			i = 5

			for i < len(data) && !(data[i-2] == '-' && data[i-1] == '-' && data[i] == '>') {
				i++
			}

			i++

			j := 0
			if i < len(data) {
				j = isEmpty(data[i:])
			}

			if j != 0 {
				size := i + j

				if doRender && p.cb.BlockHTML != nil {
					p.cb.BlockHTML(ob, VolatileBuffer(data[:size]), p.opaque)
				}

				return size
			}
		}

		if len(data) > 4 && (data[1] == 'h' || data[1] == 'H') && (data[2] == 'r' || data[2] == 'R') {
			i = 3

			for i < len(data) && data[i] != '>' {
				i++
			}

			if i+1 < len(data) {
				i++
				j := isEmpty(data[i:])

				if j != 0 {
					size := i + j

					if doRender && p.cb.BlockHTML != nil {
						p.cb.BlockHTML(ob, VolatileBuffer(data[:size]), p.opaque)
					}

					return size
				}
			}
		}

		return 0
	}

	tagEnd := htmlblockEnd(curtag, data, true)

	if tagEnd == 0 && curtag != "ins" && curtag != "del" {
		tagEnd = htmlblockEnd(curtag, data, false)
	}

	if tagEnd == 0 {
		return 0
	}

	if doRender && p.cb.BlockHTML != nil {
		p.cb.BlockHTML(ob, VolatileBuffer(data[:tagEnd]), p.opaque)
	}

	return tagEnd
}

// findBlockTagName extracts the tag name from "name" or "name attr=..."
// and reports whether it is a recognized block tag.
func findBlockTagName(nameAndRest []byte) (string, bool) {
	end := 0
	for end < len(nameAndRest) && nameAndRest[end] != ' ' && nameAndRest[end] != '>' {
		end++
	}

	name := string(nameAndRest[:end])

	return name, isBlockTag(name)
}

// parseTableRow renders a single "|"-delimited table row into columns
// cells, filling any short row out with empty cells.
func parseTableRow(ob *Buffer, p *Parser, data []byte, columns int, colData []TableFlags, headerFlag TableFlags) {
	if p.cb.TableCell == nil || p.cb.TableRow == nil {
		return
	}

	rowWork := p.pool.newBuf(bufSpan)
	defer p.pool.popBuf(bufSpan)

	i := 0
	if i < len(data) && data[i] == '|' {
		i++
	}

	col := 0

	for ; col < columns && i < len(data); col++ {
		for i < len(data) && isSpace(data[i]) {
			i++
		}

		cellStart := i

		for i < len(data) && (data[i] != '|' || (i > 0 && data[i-1] == '\\')) {
			i++
		}

		cellEnd := i - 1

		for cellEnd > cellStart && isSpace(data[cellEnd]) {
			cellEnd--
		}

		cellWork := p.pool.newBuf(bufSpan)
		parseInline(cellWork, p, data[cellStart:cellEnd+1])
		p.cb.TableCell(rowWork, cellWork, colData[col]|headerFlag, p.opaque)
		p.pool.popBuf(bufSpan)

		i++
	}

	for ; col < columns; col++ {
		p.cb.TableCell(rowWork, nil, colData[col]|headerFlag, p.opaque)
	}

	p.cb.TableRow(ob, rowWork, p.opaque)
}

// parseTableHeader parses the header row and its "---|:--:|--:" alignment
// underline, reporting the column count, per-column alignment flags, and
// the byte length consumed (the header line plus its underline). Returns
// 0 if data's first two lines don't form a valid table header.
func parseTableHeader(ob *Buffer, p *Parser, data []byte) (consumed, columns int, colData []TableFlags) {
	pipes := 0
	i := 0

	for i < len(data) && data[i] != '\n' {
		if data[i] == '|' {
			pipes++
		}

		i++
	}

	if i == len(data) || pipes == 0 {
		return 0, 0, nil
	}

	headerEnd := i

	for headerEnd > 0 && isSpace(data[headerEnd-1]) {
		headerEnd--
	}

	if data[0] == '|' {
		pipes--
	}

	if headerEnd > 0 && data[headerEnd-1] == '|' {
		pipes--
	}

	columns = pipes + 1
	colData = make([]TableFlags, columns)

	i++

	if i < len(data) && data[i] == '|' {
		i++
	}

	underEnd := i
	for underEnd < len(data) && data[underEnd] != '\n' {
		underEnd++
	}

	col := 0

	for ; col < columns && i < underEnd; col++ {
		for i < underEnd && data[i] == ' ' {
			i++
		}

		dashes := 0

		if data[i] == ':' {
			i++
			colData[col] |= TableAlignmentLeft
			dashes++
		}

		for i < underEnd && data[i] == '-' {
			i++
			dashes++
		}

		if i < underEnd && data[i] == ':' {
			i++
			colData[col] |= TableAlignmentRight
			dashes++
		}

		for i < underEnd && data[i] == ' ' {
			i++
		}

		if i < underEnd && data[i] != '|' {
			break
		}

		if dashes < 3 {
			break
		}

		i++
	}

	if col < columns {
		return 0, 0, nil
	}

	parseTableRow(ob, p, data[:headerEnd], columns, colData, TableHeader)

	return underEnd + 1, columns, colData
}

// parseTable parses a full GFM-style pipe table: a header row, its
// alignment underline, and every following row until one without any '|'
// ends the table.
func parseTable(ob *Buffer, p *Parser, data []byte) int {
	headerWork := p.pool.newBuf(bufSpan)
	defer p.pool.popBuf(bufSpan)

	bodyWork := p.pool.newBuf(bufBlock)
	defer p.pool.popBuf(bufBlock)

	i, columns, colData := parseTableHeader(headerWork, p, data)

	if i > 0 {
		for i < len(data) {
			pipes := 0
			rowStart := i

			for i < len(data) && data[i] != '\n' {
				if data[i] == '|' {
					pipes++
				}

				i++
			}

			if pipes == 0 || i == len(data) {
				i = rowStart

				break
			}

			parseTableRow(bodyWork, p, data[rowStart:i], columns, colData, 0)

			i++
		}

		if p.cb.Table != nil {
			p.cb.Table(ob, headerWork, bodyWork, p.opaque)
		}
	}

	return i
}
