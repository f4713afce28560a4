// Package sundown implements a two-pass, extensible Markdown-to-HTML
// parser in the style of the upskirt/sundown C library and its
// russross/blackfriday v1 Go port.
//
// Parsing is driven by a pluggable Callbacks table: a document is scanned
// once to collect link and footnote reference definitions, then parsed a
// second time into block and inline constructs, each of which is handed to
// the matching callback. NewHTMLRenderer builds the default callback table,
// which renders (X)HTML.
package sundown
