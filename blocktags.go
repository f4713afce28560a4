package sundown

// blockTags is the set of HTML tag names treated as block-level for the
// purposes of HTML-block recognition. It is kept as a plain lookup table
// (ported from the teacher's blockTags literal) rather than the original
// gperf-generated perfect hash, since a map lookup is the idiomatic Go
// stand-in for a small, static, read-only keyword set.
var blockTags = map[string]bool{
	"p":          true,
	"dl":         true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"ol":         true,
	"ul":         true,
	"del":        true,
	"div":        true,
	"ins":        true,
	"pre":        true,
	"form":       true,
	"math":       true,
	"table":      true,
	"iframe":     true,
	"script":     true,
	"fieldset":   true,
	"noscript":   true,
	"blockquote": true,
}

// isBlockTag reports whether name (case-sensitive, as scanned from the
// document) is a recognized HTML block tag.
func isBlockTag(name string) bool {
	return blockTags[name]
}
