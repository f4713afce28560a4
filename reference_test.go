package sundown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkRefTableAddAndFind(t *testing.T) {
	var table linkRefTable

	ref := table.add([]byte("foo"))
	ref.link = []byte("/foo")
	ref.title = []byte("Foo Title")

	found := table.find([]byte("foo"))
	require.NotNil(t, found)
	assert.Equal(t, "/foo", string(found.link))
	assert.Equal(t, "Foo Title", string(found.title))
}

func TestLinkRefTableFindIsCaseInsensitive(t *testing.T) {
	var table linkRefTable

	ref := table.add([]byte("Foo Bar"))
	ref.link = []byte("/foobar")

	found := table.find([]byte("foo bar"))
	require.NotNil(t, found)
	assert.Equal(t, "/foobar", string(found.link))
}

func TestLinkRefTableFindMissingReturnsNil(t *testing.T) {
	var table linkRefTable
	table.add([]byte("known"))

	assert.Nil(t, table.find([]byte("unknown")))
}

func TestFootnoteListPreservesAppendOrderAndCount(t *testing.T) {
	var list footnoteList

	first := createFootnoteRef([]byte("a"))
	second := createFootnoteRef([]byte("b"))
	third := createFootnoteRef([]byte("c"))

	list.add(first)
	list.add(second)
	list.add(third)

	assert.Equal(t, 3, list.count)
	assert.Same(t, first, list.head.ref)
	assert.Same(t, second, list.head.next.ref)
	assert.Same(t, third, list.tail.ref)

	got := list.find([]byte("b"))
	require.NotNil(t, got)
	assert.Same(t, second, got)
}

func TestFootnoteListFindMissingReturnsNil(t *testing.T) {
	var list footnoteList
	list.add(createFootnoteRef([]byte("only")))

	assert.Nil(t, list.find([]byte("missing")))
}

func TestHashRefNameFoldsCase(t *testing.T) {
	assert.Equal(t, hashRefName([]byte("ABC")), hashRefName([]byte("abc")))
	assert.NotEqual(t, hashRefName([]byte("abc")), hashRefName([]byte("abd")))
}
