package sundown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSpaceOnlyAcceptsSpaceAndNewline(t *testing.T) {
	assert.True(t, isSpace(' '))
	assert.True(t, isSpace('\n'))
	assert.False(t, isSpace('\t'))
	assert.False(t, isSpace('\r'))
	assert.False(t, isSpace('a'))
}

func TestIsCSpaceAcceptsWiderWhitespaceSet(t *testing.T) {
	for _, c := range []byte(" \t\n\v\f\r") {
		assert.True(t, isCSpace(c), "expected %q to be c-space", c)
	}
	assert.False(t, isCSpace('a'))
}

func TestIsAlphaAndIsAlnum(t *testing.T) {
	assert.True(t, isAlpha('a'))
	assert.True(t, isAlpha('Z'))
	assert.False(t, isAlpha('5'))

	assert.True(t, isAlnum('5'))
	assert.True(t, isAlnum('z'))
	assert.False(t, isAlnum('-'))
}

func TestIsPunct(t *testing.T) {
	assert.True(t, isPunct('.'))
	assert.True(t, isPunct('~'))
	assert.False(t, isPunct('a'))
	assert.False(t, isPunct(' '))
}

func TestHasPrefixFoldIsCaseInsensitive(t *testing.T) {
	assert.True(t, hasPrefixFold([]byte("HTTP://example.com"), "http://"))
	assert.True(t, hasPrefixFold([]byte("http://example.com"), "HTTP://"))
	assert.False(t, hasPrefixFold([]byte("ftp://example.com"), "http://"))
	assert.False(t, hasPrefixFold([]byte("htt"), "http://"))
}
