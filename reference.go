package sundown

import "hash/fnv"

// refTableSize is the bucket count for the link reference table. The
// original hashes into 8 buckets and never stores the original key,
// trusting the hash alone to disambiguate entries within a bucket; this
// port keeps that exact trade-off (see DESIGN.md) rather than switching
// to a map[string]*linkRef, which would change observable aliasing
// behavior on hash collisions.
const refTableSize = 8

// hashRefName hashes a case-folded reference name with FNV-1a. The
// original C uses a bespoke multiplicative hash; FNV-1a is this port's
// idiomatic Go substitute; a footnote id and a link id are never compared
// against one another so sharing one hash function across both tables is
// safe.
func hashRefName(name []byte) uint32 {
	h := fnv.New32a()
	lower := make([]byte, len(name))

	for i, c := range name {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}

		lower[i] = c
	}

	_, _ = h.Write(lower)

	return h.Sum32()
}

// linkRef is a single `[id]: url "title"` reference definition.
type linkRef struct {
	id    uint32
	link  []byte
	title []byte
	next  *linkRef
}

// linkRefTable is the per-document table of link reference definitions
// collected during the first pass.
type linkRefTable struct {
	buckets [refTableSize]*linkRef
}

// add prepends to its bucket, so find resolves a repeated `[id]:`
// definition to the last one parsed, not the first. That keep-last
// behavior matches the reference implementation and is intentional,
// even though it reads as the opposite of "first definition wins".
func (t *linkRefTable) add(name []byte) *linkRef {
	ref := &linkRef{id: hashRefName(name)}
	bucket := ref.id % refTableSize
	ref.next = t.buckets[bucket]
	t.buckets[bucket] = ref

	return ref
}

func (t *linkRefTable) find(name []byte) *linkRef {
	h := hashRefName(name)

	for ref := t.buckets[h%refTableSize]; ref != nil; ref = ref.next {
		if ref.id == h {
			return ref
		}
	}

	return nil
}

// footnoteRef is a single `[^id]: ...` footnote definition, shared between
// the found-list (every definition seen during pass 1) and the used-list
// (only those actually referenced from the body, in first-reference
// order, which is what assigns num).
type footnoteRef struct {
	id       uint32
	isUsed   bool
	num      int
	contents *Buffer
}

type footnoteItem struct {
	ref  *footnoteRef
	next *footnoteItem
}

// footnoteList is a singly linked, append-ordered list of footnote items.
// It backs both footnotesFound (population order) and footnotesUsed
// (first-reference order).
type footnoteList struct {
	count int
	head  *footnoteItem
	tail  *footnoteItem
}

func createFootnoteRef(name []byte) *footnoteRef {
	return &footnoteRef{id: hashRefName(name)}
}

func (l *footnoteList) add(ref *footnoteRef) {
	item := &footnoteItem{ref: ref}

	if l.head == nil {
		l.head, l.tail = item, item
	} else {
		l.tail.next = item
		l.tail = item
	}

	l.count++
}

func (l *footnoteList) find(name []byte) *footnoteRef {
	h := hashRefName(name)

	for item := l.head; item != nil; item = item.next {
		if item.ref.id == h {
			return item.ref
		}
	}

	return nil
}
