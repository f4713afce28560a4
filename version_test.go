package sundown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionIsStable(t *testing.T) {
	major, minor, revision := Version()
	assert.Equal(t, 1, major)
	assert.Equal(t, 17, minor)
	assert.Equal(t, 0, revision)
}
