package sundown

// escapeChars is the set of punctuation a backslash can escape.
const escapeChars = "\\`*_{}[]()#+-.!:|&<>^~$"

// parseInline walks data, copying runs of inactive bytes straight to ob
// (through Callbacks.NormalText when present) and handing each active byte
// to its trigger. A trigger returning 0 means "not actually a match here":
// the byte is treated as literal and scanning resumes one byte later.
// Recursion is bounded by maxNesting, checked against the combined
// block/span buffer-pool depth exactly as the original bounds its two work
// stacks.
func parseInline(ob *Buffer, p *Parser, data []byte) {
	if p.pool.nesting() > p.maxNesting {
		return
	}

	i, end := 0, 0

	for i < len(data) {
		for end < len(data) && p.activeChar[data[end]] == triggerNone {
			end++
		}

		if p.cb.NormalText != nil {
			p.cb.NormalText(ob, VolatileBuffer(data[i:end]), p.opaque)
		} else {
			_ = ob.Put(data[i:end])
		}

		if end >= len(data) {
			break
		}

		i = end

		trigger := charDispatch[p.activeChar[data[i]]]
		consumed := trigger(ob, p, data, i)

		if consumed == 0 {
			end = i + 1
		} else {
			i += consumed
			end = i
		}
	}
}

// unscapeText copies src to ob with one backslash stripped from each
// escaped byte, used to unescape a link destination before it is emitted.
func unscapeText(ob *Buffer, src []byte) {
	i := 0

	for i < len(src) {
		org := i

		for i < len(src) && src[i] != '\\' {
			i++
		}

		if i > org {
			_ = ob.Put(src[org:i])
		}

		if i+1 >= len(src) {
			break
		}

		_ = ob.PutByte(src[i+1])
		i += 2
	}
}

// findEmphChar finds the next occurrence of c in data[1:], skipping over
// balanced code spans and links so that emphasis markers inside them are
// never mistaken for the closing delimiter. Returns 0 if none is found.
func findEmphChar(data []byte, c byte) int {
	i := 1

	for i < len(data) {
		for i < len(data) && data[i] != c && data[i] != '`' && data[i] != '[' {
			i++
		}

		if i == len(data) {
			return 0
		}

		if data[i] == c {
			return i
		}

		if i > 0 && data[i-1] == '\\' {
			i++

			continue
		}

		if data[i] == '`' {
			spanNb := 0

			for i < len(data) && data[i] == '`' {
				i++
				spanNb++
			}

			if i >= len(data) {
				return 0
			}

			bt := 0
			tmpI := 0

			for i < len(data) && bt < spanNb {
				if tmpI == 0 && data[i] == c {
					tmpI = i
				}

				if data[i] == '`' {
					bt++
				} else {
					bt = 0
				}

				i++
			}

			if i >= len(data) {
				return tmpI
			}
		} else if data[i] == '[' {
			tmpI := 0
			i++

			for i < len(data) && data[i] != ']' {
				if tmpI == 0 && data[i] == c {
					tmpI = i
				}

				i++
			}

			i++

			for i < len(data) && (data[i] == ' ' || data[i] == '\n') {
				i++
			}

			if i >= len(data) {
				return tmpI
			}

			var cc byte

			switch data[i] {
			case '[':
				cc = ']'
			case '(':
				cc = ')'
			default:
				if tmpI != 0 {
					return tmpI
				}

				continue
			}

			i++

			for i < len(data) && data[i] != cc {
				if tmpI == 0 && data[i] == c {
					tmpI = i
				}

				i++
			}

			if i >= len(data) {
				return tmpI
			}

			i++
		}
	}

	return 0
}

// parseEmph1, parseEmph2 and parseEmph3 all take the enclosing inline
// window (full, the same slice parseInline is walking) and an offset into
// it, rather than a re-sliced copy: parseEmph3's single/double fallback
// needs to widen its view a byte or two to the left of where it started,
// which falling back to full[offset-n:] gives for free.

// parseEmph1 matches single-delimiter emphasis ("*word*"), closed by a
// delimiter not preceded by whitespace.
func parseEmph1(ob *Buffer, p *Parser, full []byte, offset int, c byte) int {
	if p.cb.Emphasis == nil {
		return 0
	}

	data := full[offset:]
	i := 0

	if len(data) > 1 && data[0] == c && data[1] == c {
		i = 1
	}

	for i < len(data) {
		length := findEmphChar(data[i:], c)
		if length == 0 {
			return 0
		}

		i += length

		if i >= len(data) {
			return 0
		}

		if data[i] == c && !isSpace(data[i-1]) {
			if p.extensions&ExtensionNoIntraEmphasis != 0 {
				if i+1 < len(data) && isAlnum(data[i+1]) {
					continue
				}
			}

			work := p.pool.newBuf(bufSpan)
			parseInline(work, p, data[:i])
			r := p.cb.Emphasis(ob, work, p.opaque)
			p.pool.popBuf(bufSpan)

			if r {
				return i + 1
			}

			return 0
		}
	}

	return 0
}

// parseEmph2 matches double-delimiter emphasis ("**word**"), strikethrough
// ("~~word~~"), or ins ("++word++").
func parseEmph2(ob *Buffer, p *Parser, full []byte, offset int, c byte) int {
	var renderMethod func(out *Buffer, text *Buffer, opaque interface{}) bool

	switch c {
	case '~':
		renderMethod = p.cb.Strikethrough
	case '+':
		renderMethod = p.cb.Ins
	default:
		renderMethod = p.cb.DoubleEmphasis
	}

	if renderMethod == nil {
		return 0
	}

	data := full[offset:]
	i := 0

	for i < len(data) {
		length := findEmphChar(data[i:], c)
		if length == 0 {
			return 0
		}

		i += length

		if i+1 < len(data) && data[i] == c && data[i+1] == c && i > 0 && !isSpace(data[i-1]) {
			work := p.pool.newBuf(bufSpan)
			parseInline(work, p, data[:i])
			r := renderMethod(ob, work, p.opaque)
			p.pool.popBuf(bufSpan)

			if r {
				return i + 2
			}

			return 0
		}

		i++
	}

	return 0
}

// parseEmph3 matches triple-delimiter emphasis ("***word***"), finds the
// first closing delimiter, then delegates to parseEmph1/parseEmph2 once it
// determines which of the three closing shapes actually applies.
func parseEmph3(ob *Buffer, p *Parser, full []byte, offset int, c byte) int {
	data := full[offset:]
	i := 0

	for i < len(data) {
		length := findEmphChar(data[i:], c)
		if length == 0 {
			return 0
		}

		i += length

		if data[i] != c || isSpace(data[i-1]) {
			continue
		}

		if i+2 < len(data) && data[i+1] == c && data[i+2] == c && p.cb.TripleEmphasis != nil {
			work := p.pool.newBuf(bufSpan)
			parseInline(work, p, data[:i])
			r := p.cb.TripleEmphasis(ob, work, p.opaque)
			p.pool.popBuf(bufSpan)

			if r {
				return i + 3
			}

			return 0
		}

		if i+1 < len(data) && data[i+1] == c {
			length = parseEmph1(ob, p, full, offset-2, c)
			if length == 0 {
				return 0
			}

			return length - 2
		}

		length = parseEmph2(ob, p, full, offset-1, c)
		if length == 0 {
			return 0
		}

		return length - 1
	}

	return 0
}

// charEmphasis is the active-char trigger for '*', '_' and (with
// ExtensionStrikethrough / as '+' for ins) '~'/'+', dispatching to whichever
// of parseEmph1/2/3 matches the run length of consecutive delimiters.
func charEmphasis(ob *Buffer, p *Parser, full []byte, offset int) int {
	data := full[offset:]
	c := data[0]

	if p.extensions&ExtensionNoIntraEmphasis != 0 {
		if offset > 0 && !isSpace(full[offset-1]) && full[offset-1] != '>' {
			return 0
		}
	}

	if len(data) > 2 && data[1] != c {
		if c == '+' || c == '~' || isSpace(data[1]) {
			return 0
		}

		ret := parseEmph1(ob, p, full, offset+1, c)
		if ret == 0 {
			return 0
		}

		return ret + 1
	}

	if len(data) > 3 && data[1] == c && data[2] != c {
		if isSpace(data[2]) {
			return 0
		}

		ret := parseEmph2(ob, p, full, offset+2, c)
		if ret == 0 {
			return 0
		}

		return ret + 2
	}

	if len(data) > 4 && data[1] == c && data[2] == c && data[3] != c {
		if c == '+' || c == '~' || isSpace(data[3]) {
			return 0
		}

		ret := parseEmph3(ob, p, full, offset+3, c)
		if ret == 0 {
			return 0
		}

		return ret + 3
	}

	return 0
}

// charLinebreak turns a '\n' preceded by two trailing spaces into a hard
// line break, trimming those spaces back out of ob first.
func charLinebreak(ob *Buffer, p *Parser, full []byte, offset int) int {
	if offset < 2 || full[offset-1] != ' ' || full[offset-2] != ' ' {
		return 0
	}

	for ob.Len() > 0 && ob.Data[ob.Len()-1] == ' ' {
		ob.Data = ob.Data[:ob.Len()-1]
	}

	if p.cb.LineBreak(ob, p.opaque) {
		return 1
	}

	return 0
}

// charCodespan parses a backtick-delimited code span, matching a run of N
// backticks against the next run of exactly N backticks and trimming a
// single leading/trailing space pair from the contents.
func charCodespan(ob *Buffer, p *Parser, full []byte, offset int) int {
	data := full[offset:]
	nb := 0

	for nb < len(data) && data[nb] == '`' {
		nb++
	}

	i := 0
	end := nb

	for ; end < len(data) && i < nb; end++ {
		if data[end] == '`' {
			i++
		} else {
			i = 0
		}
	}

	if i < nb && end >= len(data) {
		return 0
	}

	fBegin := nb
	if fBegin < end && data[fBegin] == ' ' {
		fBegin++
	}

	fEnd := end - nb
	if fEnd > nb && data[fEnd-1] == ' ' {
		fEnd--
	}

	var ok bool

	if fBegin < fEnd {
		ok = p.cb.CodeSpan(ob, VolatileBuffer(data[fBegin:fEnd]), p.opaque)
	} else {
		ok = p.cb.CodeSpan(ob, nil, p.opaque)
	}

	if !ok {
		return 0
	}

	return end
}

// charEscape handles a backslash escape: the following byte, if it is one
// of escapeChars, is emitted literally and both bytes are consumed;
// otherwise the backslash is not a valid escape and is left untouched by
// the caller (a lone backslash at end of input is emitted as-is).
func charEscape(ob *Buffer, p *Parser, full []byte, offset int) int {
	data := full[offset:]

	if len(data) > 1 {
		if indexByte(escapeChars, data[1]) < 0 {
			return 0
		}

		if p.cb.NormalText != nil {
			p.cb.NormalText(ob, VolatileBuffer(data[1:2]), p.opaque)
		} else {
			_ = ob.PutByte(data[1])
		}
	} else if len(data) == 1 {
		_ = ob.PutByte(data[0])
	}

	return 2
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}

	return -1
}

// charEntity recognizes an HTML entity of the form &#?[A-Za-z0-9]+;
// A bare '&' that isn't followed by such a sequence is left for literal
// output (a declined match, not an error).
func charEntity(ob *Buffer, p *Parser, full []byte, offset int) int {
	data := full[offset:]
	end := 1

	if end < len(data) && data[end] == '#' {
		end++
	}

	for end < len(data) && isAlnum(data[end]) {
		end++
	}

	if end < len(data) && data[end] == ';' {
		end++
	} else {
		return 0
	}

	if p.cb.Entity != nil {
		p.cb.Entity(ob, VolatileBuffer(data[:end]), p.opaque)
	} else {
		_ = ob.Put(data[:end])
	}

	return end
}

// tagLength scans a candidate "<...>" span starting at data[0] and reports
// its length plus, via altype, whether it looks like an autolink (a bare
// scheme or mail address wrapped in angle brackets) as opposed to an
// ordinary HTML tag.
func tagLength(data []byte) (length int, altype AutolinkType, isAutolink bool) {
	if len(data) < 3 || data[0] != '<' {
		return 0, 0, false
	}

	i := 1
	if data[1] == '/' {
		i = 2
	}

	if i >= len(data) || !isAlnum(data[i]) {
		return 0, 0, false
	}

	isAutolink = false

	for i < len(data) && (isAlnum(data[i]) || data[i] == '.' || data[i] == '+' || data[i] == '-') {
		i++
	}

	if i > 1 && i < len(data) && data[i] == '@' {
		if j := isMailAutolink(data[i:]); j != 0 {
			return i + j, AutolinkEmail, true
		}
	}

	if i > 2 && i < len(data) && data[i] == ':' {
		isAutolink = true
		i++
	}

	if i >= len(data) {
		isAutolink = false
	} else if isAutolink {
		j := i

		for i < len(data) {
			if data[i] == '\\' {
				i += 2
			} else if data[i] == '>' || data[i] == '\'' || data[i] == '"' || data[i] == ' ' || data[i] == '\n' {
				break
			} else {
				i++
			}
		}

		if i >= len(data) {
			return 0, 0, false
		}

		if i > j && data[i] == '>' {
			return i + 1, AutolinkNormal, true
		}

		isAutolink = false
	}

	for i < len(data) && data[i] != '>' {
		i++
	}

	if i >= len(data) {
		return 0, 0, false
	}

	return i + 1, 0, false
}

// isMailAutolink scans the address part of a "user@host.tld>" autolink,
// looser than RFC mail-address grammar: [-@._a-zA-Z0-9]+ with exactly one
// '@', terminated by '>'.
func isMailAutolink(data []byte) int {
	nb := 0

	for i := 0; i < len(data); i++ {
		if isAlnum(data[i]) {
			continue
		}

		switch data[i] {
		case '@':
			nb++
		case '-', '.', '_':
			// allowed address punctuation
		case '>':
			if nb == 1 {
				return i + 1
			}

			return 0
		default:
			return 0
		}
	}

	return 0
}

// charLangleTag handles '<' when it might open an HTML tag or an
// autolink wrapped in angle brackets.
func charLangleTag(ob *Buffer, p *Parser, full []byte, offset int) int {
	data := full[offset:]
	end, altype, isAutolink := tagLength(data)

	var ret bool

	if end > 2 {
		if p.cb.Autolink != nil && isAutolink {
			link := p.pool.newBuf(bufSpan)
			unscapeText(link, data[1:end-1])
			ret = p.cb.Autolink(ob, link, altype, p.opaque)
			p.pool.popBuf(bufSpan)
		} else if p.cb.RawHTMLTag != nil {
			ret = p.cb.RawHTMLTag(ob, VolatileBuffer(data[:end]), p.opaque)
		}
	}

	if !ret {
		return 0
	}

	return end
}

// charAutolinkWWW handles a bare "www." autolink, rewriting it to an
// "http://"-prefixed link.
func charAutolinkWWW(ob *Buffer, p *Parser, full []byte, offset int) int {
	if p.cb.Link == nil || p.inLinkBody {
		return 0
	}

	link := p.pool.newBuf(bufSpan)
	defer p.pool.popBuf(bufSpan)

	linkLen := autolinkWWW(full, offset)
	if linkLen == 0 {
		return 0
	}

	_ = link.Put(full[offset : offset+linkLen])

	linkURL := p.pool.newBuf(bufSpan)
	defer p.pool.popBuf(bufSpan)

	_ = linkURL.PutString("http://")
	_ = linkURL.Put(link.Bytes())

	if p.cb.NormalText != nil {
		linkText := p.pool.newBuf(bufSpan)
		defer p.pool.popBuf(bufSpan)

		p.cb.NormalText(linkText, link, p.opaque)
		p.cb.Link(ob, linkURL, nil, linkText, p.opaque)
	} else {
		p.cb.Link(ob, linkURL, nil, link, p.opaque)
	}

	return linkLen
}

// charAutolinkEmail handles a bare email autolink, rewinding ob past any
// already-emitted local-part bytes autolinkEmail determined belong to it.
func charAutolinkEmail(ob *Buffer, p *Parser, full []byte, offset int) int {
	if p.cb.Autolink == nil || p.inLinkBody {
		return 0
	}

	linkLen, rewind := autolinkEmail(full, offset)
	if linkLen == 0 {
		return 0
	}

	link := VolatileBuffer(full[offset-rewind : offset+linkLen])
	ob.Data = ob.Data[:ob.Len()-rewind]
	p.cb.Autolink(ob, link, AutolinkEmail, p.opaque)

	return linkLen
}

// charAutolinkURL handles a bare "scheme://" autolink, rewinding ob past
// any already-emitted scheme-name bytes autolinkURL determined belong to
// it.
func charAutolinkURL(ob *Buffer, p *Parser, full []byte, offset int) int {
	if p.cb.Autolink == nil || p.inLinkBody {
		return 0
	}

	linkLen, rewind := autolinkURL(full, offset)
	if linkLen == 0 {
		return 0
	}

	link := VolatileBuffer(full[offset-rewind : offset+linkLen])
	ob.Data = ob.Data[:ob.Len()-rewind]
	p.cb.Autolink(ob, link, AutolinkNormal, p.opaque)

	return linkLen
}

// charSuperscript handles '^' as a superscript marker, taking either a
// parenthesized group "^(...)" or a single whitespace-delimited word.
func charSuperscript(ob *Buffer, p *Parser, full []byte, offset int) int {
	if p.cb.Superscript == nil {
		return 0
	}

	data := full[offset:]
	if len(data) < 2 {
		return 0
	}

	var supStart, supLen int

	if data[1] == '(' {
		supLen = 2
		supStart = 2

		for supLen < len(data) && data[supLen] != ')' && data[supLen-1] != '\\' {
			supLen++
		}

		if supLen == len(data) {
			return 0
		}
	} else {
		supLen = 1
		supStart = 1

		for supLen < len(data) && !isSpace(data[supLen]) {
			supLen++
		}
	}

	if supLen-supStart == 0 {
		if supStart == 2 {
			return 3
		}

		return 0
	}

	sup := p.pool.newBuf(bufSpan)
	parseInline(sup, p, data[supStart:supLen])
	p.cb.Superscript(ob, sup, p.opaque)
	p.pool.popBuf(bufSpan)

	if supStart == 2 {
		return supLen + 1
	}

	return supLen
}

// charLink parses '[' as the opening of a link or (if preceded by '!') an
// image: an inline-style "[text](url \"title\")", a reference-style
// "[text][id]", a shortcut reference "[id]", or — with ExtensionFootnotes —
// an inline footnote reference "[^id]".
func charLink(ob *Buffer, p *Parser, full []byte, offset int) int {
	data := full[offset:]
	isImg := offset > 0 && full[offset-1] == '!'
	i := 1
	orgWorkSize := p.pool.depth[bufSpan]
	ret := false

	defer func() {
		p.pool.truncate(bufSpan, orgWorkSize)
	}()

	if (isImg && p.cb.Image == nil) || (!isImg && p.cb.Link == nil) {
		return 0
	}

	textHasNL := false
	level := 1

	for ; i < len(data); i++ {
		if data[i] == '\n' {
			textHasNL = true
		} else if data[i-1] == '\\' {
			continue
		} else if data[i] == '[' {
			level++
		} else if data[i] == ']' {
			level--

			if level <= 0 {
				break
			}
		}
	}

	if i >= len(data) {
		return 0
	}

	txtE := i
	i++

	if p.extensions&ExtensionFootnotes != 0 && data[1] == '^' {
		if txtE < 3 {
			return 0
		}

		id := data[2:txtE]

		fr := p.footnotesFound.find(id)

		if fr != nil && !fr.isUsed {
			p.footnotesUsed.add(fr)
			fr.isUsed = true
			fr.num = p.footnotesUsed.count
		}

		if fr != nil && p.cb.FootnoteRef != nil {
			ret = p.cb.FootnoteRef(ob, fr.num, p.opaque)
		}

		if ret {
			return i
		}

		return 0
	}

	for i < len(data) && isSpace(data[i]) {
		i++
	}

	var titleB, titleE int
	var link, title *Buffer

	switch {
	case i < len(data) && data[i] == '(':
		i++

		for i < len(data) && isSpace(data[i]) {
			i++
		}

		linkB := i

		for i < len(data) {
			if data[i] == '\\' {
				i += 2
			} else if data[i] == ')' {
				break
			} else if i >= 1 && isSpace(data[i-1]) && (data[i] == '\'' || data[i] == '"') {
				break
			} else {
				i++
			}
		}

		if i >= len(data) {
			return 0
		}

		linkE := i

		if data[i] == '\'' || data[i] == '"' {
			qtype := data[i]
			inTitle := true
			i++
			titleB = i

			for i < len(data) {
				if data[i] == '\\' {
					i += 2
				} else if data[i] == qtype {
					inTitle = false
					i++
				} else if data[i] == ')' && !inTitle {
					break
				} else {
					i++
				}
			}

			if i >= len(data) {
				return 0
			}

			titleE = i - 1
			for titleE > titleB && isSpace(data[titleE]) {
				titleE--
			}

			if data[titleE] != '\'' && data[titleE] != '"' {
				titleE = 0
				titleB = 0
				linkE = i
			}
		}

		for linkE > linkB && isSpace(data[linkE-1]) {
			linkE--
		}

		if data[linkB] == '<' {
			linkB++
		}

		if linkE > linkB && data[linkE-1] == '>' {
			linkE--
		}

		if linkE > linkB {
			link = p.pool.newBuf(bufSpan)
			_ = link.Put(data[linkB:linkE])
		}

		if titleE > titleB {
			title = p.pool.newBuf(bufSpan)
			_ = title.Put(data[titleB:titleE])
		}

		i++

	case i < len(data) && data[i] == '[':
		i++
		linkB := i

		for i < len(data) && data[i] != ']' {
			i++
		}

		if i >= len(data) {
			return 0
		}

		linkE := i

		var id []byte

		if linkB == linkE {
			id = collapsedID(p, data, txtE, textHasNL)
		} else {
			id = data[linkB:linkE]
		}

		lr := p.refs.find(id)
		if lr == nil {
			return 0
		}

		link = VolatileBuffer(lr.link)
		title = VolatileBuffer(lr.title)
		i++

	default:
		id := collapsedID(p, data, txtE, textHasNL)

		lr := p.refs.find(id)
		if lr == nil {
			return 0
		}

		link = VolatileBuffer(lr.link)
		title = VolatileBuffer(lr.title)

		i = txtE + 1
	}

	var content *Buffer

	if txtE > 1 {
		content = p.pool.newBuf(bufSpan)

		if isImg {
			_ = content.Put(data[1:txtE])
		} else {
			p.inLinkBody = true
			parseInline(content, p, data[1:txtE])
			p.inLinkBody = false
		}
	}

	var uLink *Buffer

	if link != nil {
		uLink = p.pool.newBuf(bufSpan)
		unscapeText(uLink, link.Bytes())
	}

	if isImg {
		if ob.Len() > 0 && ob.Data[ob.Len()-1] == '!' {
			ob.Data = ob.Data[:ob.Len()-1]
		}

		ret = p.cb.Image(ob, uLink, title, content, p.opaque)
	} else {
		ret = p.cb.Link(ob, uLink, title, content, p.opaque)
	}

	if ret {
		return i
	}

	return 0
}

// collapsedID builds the lookup key for a reference-style or shortcut
// link: the bracketed text verbatim, unless it spans multiple lines, in
// which case internal newlines collapse to single spaces the way a
// rendered paragraph would.
func collapsedID(p *Parser, data []byte, txtE int, hasNL bool) []byte {
	if !hasNL {
		return data[1:txtE]
	}

	b := p.pool.newBuf(bufSpan)

	for j := 1; j < txtE; j++ {
		if data[j] != '\n' {
			_ = b.PutByte(data[j])
		} else if data[j-1] != ' ' {
			_ = b.PutByte(' ')
		}
	}

	return b.Bytes()
}
