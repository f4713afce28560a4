package sundown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSafeLinkAcceptsKnownSchemes(t *testing.T) {
	assert.True(t, isSafeLink([]byte("http://example.com")))
	assert.True(t, isSafeLink([]byte("HTTPS://example.com")))
	assert.True(t, isSafeLink([]byte("mailto://user@example.com")))
}

func TestIsSafeLinkAcceptsRelativePaths(t *testing.T) {
	assert.True(t, isSafeLink([]byte("/absolute/path")))
	assert.True(t, isSafeLink([]byte("./relative/path")))
	assert.True(t, isSafeLink([]byte("../parent/path")))
}

func TestIsSafeLinkRejectsUnknownSchemes(t *testing.T) {
	assert.False(t, isSafeLink([]byte("javascript:alert(1)")))
	assert.False(t, isSafeLink([]byte("data:text/html,<script>")))
}

func TestIsSafeLinkRejectsIncompleteParentPath(t *testing.T) {
	assert.False(t, isSafeLink([]byte("..")))
}
