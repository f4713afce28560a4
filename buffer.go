package sundown

import (
	"errors"
	"fmt"
)

// maxBufferSize caps how large a single Buffer's backing array may grow.
// It mirrors BUFFER_MAX_ALLOC_SIZE from the original buffer pool.
const maxBufferSize = 1024 * 1024 * 16

// ErrBufferTooLarge is wrapped and returned when an append would grow a
// Buffer past maxBufferSize.
var ErrBufferTooLarge = errors.New("sundown: buffer exceeds maximum allocation size")

// Buffer is the growable byte accumulator threaded through the parser and
// renderer callbacks in place of bare []byte. A Buffer can also be a
// read-only view over a caller-owned slice (volatile == true): such a view
// is never grown or mutated in place, which lets block and span parsing
// hand out scratch windows into the original document without copying.
type Buffer struct {
	Data []byte

	volatile bool
}

// NewBuffer returns an empty, growable Buffer with initial capacity unit.
func NewBuffer(unit int) *Buffer {
	if unit <= 0 {
		unit = 64
	}

	return &Buffer{Data: make([]byte, 0, unit)}
}

// VolatileBuffer wraps src as a read-only view, the Go analogue of a
// struct buf with unit == 0: Len and Bytes behave normally, but any
// mutating method is a programmer error.
func VolatileBuffer(src []byte) *Buffer {
	return &Buffer{Data: src, volatile: true}
}

// Len returns the number of bytes currently held, treating a nil receiver
// as empty (renderer callbacks are frequently handed a nil *Buffer for an
// absent optional argument).
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}

	return len(b.Data)
}

// Bytes returns the buffer's contents. The slice is only valid until the
// next mutating call.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}

	return b.Data
}

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() {
	if b == nil || b.volatile {
		return
	}

	b.Data = b.Data[:0]
}

// Put appends raw bytes, growing the backing array as needed.
func (b *Buffer) Put(p []byte) error {
	if b.volatile {
		panic("sundown: write to a volatile buffer")
	}

	if len(b.Data)+len(p) > maxBufferSize {
		return fmt.Errorf("%w: wanted %d bytes", ErrBufferTooLarge, len(b.Data)+len(p))
	}

	b.Data = append(b.Data, p...)

	return nil
}

// PutString appends s.
func (b *Buffer) PutString(s string) error {
	return b.Put([]byte(s))
}

// PutByte appends a single byte.
func (b *Buffer) PutByte(c byte) error {
	if b.volatile {
		panic("sundown: write to a volatile buffer")
	}

	if len(b.Data)+1 > maxBufferSize {
		return fmt.Errorf("%w", ErrBufferTooLarge)
	}

	b.Data = append(b.Data, c)

	return nil
}

// Printf appends formatted text, silently dropping the write if it would
// exceed maxBufferSize (matching the original's "give up on ENOMEM"
// behavior for a case that should never occur on realistic documents).
func (b *Buffer) Printf(format string, args ...interface{}) {
	_ = b.Put([]byte(fmt.Sprintf(format, args...)))
}

// HasPrefix reports whether the buffer's contents start with prefix.
func (b *Buffer) HasPrefix(prefix string) bool {
	if b.Len() < len(prefix) {
		return false
	}

	return string(b.Data[:len(prefix)]) == prefix
}

// Slurp removes the first n bytes, shifting the remainder down.
func (b *Buffer) Slurp(n int) {
	if b.volatile {
		return
	}

	if n >= len(b.Data) {
		b.Data = b.Data[:0]

		return
	}

	b.Data = append(b.Data[:0], b.Data[n:]...)
}

// bufScope distinguishes the two buffer-pool stacks: block-level work
// buffers (larger unit, used e.g. for blockquote/list contents) and
// span-level work buffers (smaller unit, used for inline spans).
type bufScope int

const (
	bufBlock bufScope = iota
	bufSpan
)

// bufferPool is the LIFO work-buffer recycler shared by block and inline
// parsing. Buffers are never freed mid-render: newBuf reuses the buffer
// sitting at the current stack depth if one is already there, and popBuf
// simply decrements the depth, leaving the backing array alive for the
// next newBuf at that depth.
type bufferPool struct {
	stacks [2][]*Buffer
	depth  [2]int
}

func (p *bufferPool) newBuf(scope bufScope) *Buffer {
	if p.depth[scope] < len(p.stacks[scope]) {
		buf := p.stacks[scope][p.depth[scope]]
		buf.Reset()
		p.depth[scope]++

		return buf
	}

	unit := 256
	if scope == bufSpan {
		unit = 64
	}

	buf := NewBuffer(unit)
	p.stacks[scope] = append(p.stacks[scope], buf)
	p.depth[scope]++

	return buf
}

func (p *bufferPool) popBuf(scope bufScope) {
	p.depth[scope]--
}

// truncate resets a stack's depth to n, used by charLink's cleanup path
// to discard every span buffer allocated while exploring a link or image
// that ultimately failed to render.
func (p *bufferPool) truncate(scope bufScope, n int) {
	p.depth[scope] = n
}

// nesting returns the combined depth of both stacks, the quantity
// max_nesting is checked against before descending into another block or
// span.
func (p *bufferPool) nesting() int {
	return p.depth[bufBlock] + p.depth[bufSpan]
}

// assertDrained panics if either stack is non-empty at the end of a
// render, the Go analogue of the original's end-of-render assertions.
func (p *bufferPool) assertDrained() {
	if p.depth[bufBlock] != 0 || p.depth[bufSpan] != 0 {
		panic("sundown: buffer pool not drained at end of render")
	}
}
