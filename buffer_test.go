package sundown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPutAndBytes(t *testing.T) {
	b := NewBuffer(0)
	require.NoError(t, b.Put([]byte("hello")))
	require.NoError(t, b.PutByte(' '))
	require.NoError(t, b.PutString("world"))
	assert.Equal(t, "hello world", string(b.Bytes()))
	assert.Equal(t, 11, b.Len())
}

func TestBufferNewBufferNonPositiveUnit(t *testing.T) {
	b := NewBuffer(0)
	assert.Equal(t, 0, b.Len())
	require.NoError(t, b.PutString("x"))
	assert.Equal(t, "x", string(b.Bytes()))
}

func TestBufferNilReceiverIsEmpty(t *testing.T) {
	var b *Buffer
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Bytes())
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer(8)
	require.NoError(t, b.PutString("abc"))
	b.Reset()
	assert.Equal(t, 0, b.Len())
}

func TestBufferHasPrefix(t *testing.T) {
	b := NewBuffer(8)
	require.NoError(t, b.PutString("mailto:foo@example.com"))
	assert.True(t, b.HasPrefix("mailto:"))
	assert.False(t, b.HasPrefix("http:"))
	assert.False(t, b.HasPrefix("this prefix is way too long"))
}

func TestBufferSlurp(t *testing.T) {
	b := NewBuffer(8)
	require.NoError(t, b.PutString("abcdef"))
	b.Slurp(2)
	assert.Equal(t, "cdef", string(b.Bytes()))

	b.Slurp(100)
	assert.Equal(t, 0, b.Len())
}

func TestBufferPrintf(t *testing.T) {
	b := NewBuffer(8)
	b.Printf("<h%d>", 3)
	assert.Equal(t, "<h3>", string(b.Bytes()))
}

func TestVolatileBufferPanicsOnWrite(t *testing.T) {
	v := VolatileBuffer([]byte("fixed"))
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, "fixed", string(v.Bytes()))
	assert.Panics(t, func() {
		_ = v.Put([]byte("x"))
	})
	assert.Panics(t, func() {
		_ = v.PutByte('x')
	})
}

func TestVolatileBufferResetIsNoop(t *testing.T) {
	v := VolatileBuffer([]byte("fixed"))
	v.Reset()
	assert.Equal(t, "fixed", string(v.Bytes()))
}

func TestBufferPoolReusesBuffersByDepth(t *testing.T) {
	var pool bufferPool

	b1 := pool.newBuf(bufSpan)
	require.NoError(t, b1.PutString("first"))
	pool.popBuf(bufSpan)

	b2 := pool.newBuf(bufSpan)
	assert.Equal(t, 0, b2.Len(), "newBuf must reset a reused buffer")
	pool.popBuf(bufSpan)

	assert.Equal(t, 0, pool.nesting())
}

func TestBufferPoolNestingCombinesBothScopes(t *testing.T) {
	var pool bufferPool

	pool.newBuf(bufBlock)
	pool.newBuf(bufSpan)
	pool.newBuf(bufSpan)
	assert.Equal(t, 3, pool.nesting())

	pool.popBuf(bufSpan)
	assert.Equal(t, 2, pool.nesting())

	pool.truncate(bufSpan, 0)
	pool.popBuf(bufBlock)
	assert.Equal(t, 0, pool.nesting())
}

func TestBufferPoolAssertDrainedPanicsWhenNotEmpty(t *testing.T) {
	var pool bufferPool
	pool.newBuf(bufBlock)

	assert.Panics(t, func() {
		pool.assertDrained()
	})
}
