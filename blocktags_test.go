package sundown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlockTagRecognizesKnownTags(t *testing.T) {
	assert.True(t, isBlockTag("div"))
	assert.True(t, isBlockTag("blockquote"))
	assert.True(t, isBlockTag("h3"))
}

func TestIsBlockTagRejectsInlineAndUnknownTags(t *testing.T) {
	assert.False(t, isBlockTag("span"))
	assert.False(t, isBlockTag("a"))
	assert.False(t, isBlockTag("not-a-tag"))
}
