package sundown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckDomainRequiresAlnumStart(t *testing.T) {
	assert.Equal(t, 0, checkDomain([]byte("-bad.com"), false))
	assert.Equal(t, 0, checkDomain(nil, false))
}

func TestCheckDomainRequiresDotUnlessShortAllowed(t *testing.T) {
	assert.Equal(t, 0, checkDomain([]byte("localhost"), false))
	assert.True(t, checkDomain([]byte("localhost"), true) > 0)
}

func TestCheckDomainStopsAtFirstInvalidByte(t *testing.T) {
	n := checkDomain([]byte("example.com/path"), false)
	assert.Equal(t, len("example.com"), n)
}

func TestAutolinkDelimDropsTrailingSentencePunctuation(t *testing.T) {
	data := []byte("example.com/path.")
	assert.Equal(t, len(data)-1, autolinkDelim(data, len(data)))
}

func TestAutolinkDelimKeepsBalancedParens(t *testing.T) {
	data := []byte("example.com/(path)")
	assert.Equal(t, len(data), autolinkDelim(data, len(data)))
}

func TestAutolinkDelimDropsUnbalancedTrailingParen(t *testing.T) {
	data := []byte("example.com/path)")
	assert.Equal(t, len(data)-1, autolinkDelim(data, len(data)))
}

func TestAutolinkWWWMatchesBareWWW(t *testing.T) {
	full := []byte("see www.example.com today")
	n := autolinkWWW(full, 4)
	assert.Equal(t, "www.example.com", string(full[4:4+n]))
}

func TestAutolinkWWWRejectsWhenNotWordBoundary(t *testing.T) {
	full := []byte("xwww.example.com")
	n := autolinkWWW(full, 1)
	assert.Equal(t, 0, n)
}

func TestAutolinkEmailMatchesLocalAndDomain(t *testing.T) {
	full := []byte("mail me at jane.doe@example.com please")
	at := indexByte(string(full), '@')
	n, rewind := autolinkEmail(full, at)
	assert.Equal(t, "jane.doe@example.com", string(full[at-rewind:at+n]))
}

func TestAutolinkEmailRejectsWithoutLocalPart(t *testing.T) {
	full := []byte("@example.com")
	n, rewind := autolinkEmail(full, 0)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, rewind)
}

func TestAutolinkURLMatchesSchemeWithRewind(t *testing.T) {
	full := []byte("go to http://example.com/page now")
	colon := 10 // offset of ':' in "http:"
	assert.Equal(t, byte(':'), full[colon])

	n, rewind := autolinkURL(full, colon)
	assert.Equal(t, "http://example.com/page", string(full[colon-rewind:colon+n]))
}

func TestAutolinkURLRejectsUnsafeScheme(t *testing.T) {
	full := []byte("javascript://alert(1)")
	n, rewind := autolinkURL(full, 10)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, rewind)
}
