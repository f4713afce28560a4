package sundown

// Extensions is a bitmask of optional parsing behaviors layered on top of
// the baseline Markdown grammar, OR'd together and passed to NewParser.
type Extensions int

const (
	ExtensionNoIntraEmphasis Extensions = 1 << iota
	ExtensionTables
	ExtensionFencedCode
	ExtensionAutolink
	ExtensionStrikethrough
	ExtensionLaxHTMLBlocks
	ExtensionSpaceHeaders
	ExtensionHardLineBreak
	ExtensionTabSizeEight
	ExtensionFootnotes
	ExtensionNoExpandTabs
	ExtensionLaxSpacing
	ExtensionSuperscript
	ExtensionIns
)

// AutolinkType distinguishes the two kinds of span the parser can detect
// and pass to Callbacks.Autolink: a bare URL/scheme link, or a bare email
// address that should be rendered behind a mailto: link.
type AutolinkType int

const (
	AutolinkNormal AutolinkType = iota + 1
	AutolinkEmail
)

// ListFlags describes the shape of a list or list item passed to
// Callbacks.List and Callbacks.ListItem. Multiple flags may be combined.
type ListFlags int

const (
	ListOrdered ListFlags = 1 << iota
	ListItemContainsBlock
	ListItemEndOfList
)

// TableFlags records a table cell's column alignment.
type TableFlags int

const (
	TableAlignmentLeft TableFlags = 1 << iota
	TableAlignmentRight
	TableAlignmentCenter = TableAlignmentLeft | TableAlignmentRight
	// TableHeader marks a cell as belonging to the header row, set
	// independently of any alignment bits.
	TableHeader TableFlags = 4
)

// Callbacks is the full set of rendering hooks a Parser drives a document
// through. Every field is optional: a nil block-level callback drops that
// construct's rendering (the raw content is simply not emitted), a nil or
// false-returning span-level callback falls back to emitting the span's
// source text verbatim, and a nil low-level callback copies its input
// straight to the output. NewHTMLRenderer fills this structure in to
// produce (X)HTML; callers that want a different output format build and
// populate their own.
type Callbacks struct {
	// Block-level callbacks. Absent ones suppress that construct.
	BlockCode   func(out *Buffer, text, lang *Buffer, opaque interface{})
	BlockQuote  func(out *Buffer, text *Buffer, opaque interface{})
	BlockHTML   func(out *Buffer, text *Buffer, opaque interface{})
	Header      func(out *Buffer, text *Buffer, level int, opaque interface{})
	HRule       func(out *Buffer, opaque interface{})
	List        func(out *Buffer, text *Buffer, flags ListFlags, opaque interface{})
	ListItem    func(out *Buffer, text *Buffer, flags ListFlags, opaque interface{})
	Paragraph   func(out *Buffer, text *Buffer, opaque interface{})
	Table       func(out *Buffer, header, body *Buffer, opaque interface{})
	TableRow    func(out *Buffer, text *Buffer, opaque interface{})
	TableCell   func(out *Buffer, text *Buffer, flags TableFlags, opaque interface{})
	Footnotes   func(out *Buffer, text *Buffer, opaque interface{})
	FootnoteDef func(out *Buffer, text *Buffer, num int, opaque interface{})

	// Span-level callbacks. A false return (or a nil field) means
	// "declined": the caller falls back to the span's literal source text.
	Autolink       func(out *Buffer, link *Buffer, kind AutolinkType, opaque interface{}) bool
	CodeSpan       func(out *Buffer, text *Buffer, opaque interface{}) bool
	DoubleEmphasis func(out *Buffer, text *Buffer, opaque interface{}) bool
	Emphasis       func(out *Buffer, text *Buffer, opaque interface{}) bool
	Image          func(out *Buffer, link, title, alt *Buffer, opaque interface{}) bool
	LineBreak      func(out *Buffer, opaque interface{}) bool
	Link           func(out *Buffer, link, title, content *Buffer, opaque interface{}) bool
	RawHTMLTag     func(out *Buffer, tag *Buffer, opaque interface{}) bool
	TripleEmphasis func(out *Buffer, text *Buffer, opaque interface{}) bool
	Ins            func(out *Buffer, text *Buffer, opaque interface{}) bool
	Strikethrough  func(out *Buffer, text *Buffer, opaque interface{}) bool
	Superscript    func(out *Buffer, text *Buffer, opaque interface{}) bool
	FootnoteRef    func(out *Buffer, num int, opaque interface{}) bool

	// Low-level callbacks. Absent ones copy their input verbatim.
	Entity     func(out *Buffer, text *Buffer, opaque interface{})
	NormalText func(out *Buffer, text *Buffer, opaque interface{})

	// Document lifecycle.
	DocumentHeader func(out *Buffer, opaque interface{})
	DocumentFooter func(out *Buffer, opaque interface{})
	Outline        func(out *Buffer, opaque interface{})
}

// charTrigger is a single active-character handler: given the full input
// slice and the offset of the triggering byte, it attempts to parse and
// render a span starting there, returning the number of bytes consumed
// (which may be less than what a greedy scan would take) or 0 to signal
// "no match here", which the inline loop treats as a literal byte.
type charTrigger func(ob *Buffer, p *Parser, full []byte, offset int) int

// charTriggerID indexes into charDispatch, the package-level dispatch
// table shared by every Parser.
type charTriggerID byte

const (
	triggerNone charTriggerID = iota
	triggerEmphasis
	triggerCodespan
	triggerLinebreak
	triggerLink
	triggerLangleTag
	triggerEscape
	triggerEntity
	triggerAutolinkURL
	triggerAutolinkEmail
	triggerAutolinkWWW
	triggerSuperscript
)

// charDispatch is filled in by init: the handlers reach back into it
// through parseInline, so a package-level initializer would form an
// initialization cycle.
var charDispatch [triggerSuperscript + 1]charTrigger

func init() {
	charDispatch = [...]charTrigger{
		triggerNone:          nil,
		triggerEmphasis:      charEmphasis,
		triggerCodespan:      charCodespan,
		triggerLinebreak:     charLinebreak,
		triggerLink:          charLink,
		triggerLangleTag:     charLangleTag,
		triggerEscape:        charEscape,
		triggerEntity:        charEntity,
		triggerAutolinkURL:   charAutolinkURL,
		triggerAutolinkEmail: charAutolinkEmail,
		triggerAutolinkWWW:   charAutolinkWWW,
		triggerSuperscript:   charSuperscript,
	}
}

// Parser holds everything a single Render call needs: the callback table,
// the opaque value threaded through to every callback, the reference and
// footnote tables collected during the first pass, the active-character
// dispatch table built from which callbacks and extensions are enabled,
// and the shared work-buffer pool.
type Parser struct {
	cb     Callbacks
	opaque interface{}

	refs           linkRefTable
	footnotesFound footnoteList
	footnotesUsed  footnoteList

	activeChar [256]charTriggerID

	pool bufferPool

	extensions Extensions
	maxNesting int
	inLinkBody bool
}

// NewParser builds a Parser wired to the given callback table. extensions
// selects the optional grammar behaviors to enable; maxNesting bounds the
// combined block/span recursion depth (a value <= 0 uses the default of
// 16, matching the original's default). callbacks is copied, so later
// mutation of the struct the caller passed in has no effect. opaque is
// handed back to every callback untouched.
func NewParser(extensions Extensions, maxNesting int, callbacks *Callbacks, opaque interface{}) *Parser {
	if maxNesting <= 0 {
		maxNesting = 16
	}

	p := &Parser{
		extensions: extensions,
		maxNesting: maxNesting,
		opaque:     opaque,
	}

	if callbacks != nil {
		p.cb = *callbacks
	}

	if p.cb.Emphasis != nil || p.cb.DoubleEmphasis != nil || p.cb.TripleEmphasis != nil {
		p.activeChar['*'] = triggerEmphasis
		p.activeChar['_'] = triggerEmphasis

		if extensions&ExtensionStrikethrough != 0 {
			p.activeChar['~'] = triggerEmphasis
		}

		if extensions&ExtensionIns != 0 {
			p.activeChar['+'] = triggerEmphasis
		}
	}

	if extensions&ExtensionSuperscript != 0 {
		p.activeChar['^'] = triggerSuperscript
	}

	if p.cb.CodeSpan != nil {
		p.activeChar['`'] = triggerCodespan
	}

	if p.cb.LineBreak != nil {
		p.activeChar['\n'] = triggerLinebreak
	}

	if p.cb.Image != nil || p.cb.Link != nil {
		p.activeChar['['] = triggerLink
	}

	p.activeChar['<'] = triggerLangleTag
	p.activeChar['\\'] = triggerEscape
	p.activeChar['&'] = triggerEntity

	if extensions&ExtensionAutolink != 0 {
		p.activeChar[':'] = triggerAutolinkURL
		p.activeChar['@'] = triggerAutolinkEmail
		p.activeChar['w'] = triggerAutolinkWWW
	}

	return p
}
