// Package decode parses a bencoded byte range into a node.Node tree. Every
// Node is carved out of the supplied arena.Arena (so the whole tree is
// freed together), but the String/Integer Head and Tail segments borrow
// directly from the caller's input slice rather than being copied — the
// caller must keep that slice alive at least as long as the tree is used.
//
// Dispatch mirrors the header-message parse loop in
// internal/core/objectheader.go's parseV2Header: a single-pass reader
// that switches on a leading tag byte and recurses for containers.
package decode

import (
	"fmt"
	"strconv"

	"github.com/scigolib/bencode/arena"
	"github.com/scigolib/bencode/dictindex"
	"github.com/scigolib/bencode/node"
)

// Decode parses one bencoded value starting at offset 0 of data and returns
// its root, with every Node allocated from a. Trailing bytes beyond the
// first value are ignored; compare root.ByteLength against len(data) to
// detect them.
func Decode(a *arena.Arena, data []byte) (*node.Node, error) {
	if a == nil {
		return nil, errMalformed("nil arena")
	}
	if len(data) == 0 {
		return nil, errShort("empty input")
	}
	n, _, err := decodeValue(a, data, 0, 0)
	if err != nil {
		return nil, err
	}
	if n.IsEndMarker() {
		return nil, fmt.Errorf("bencode: unexpected 'e' at top level")
	}
	return n, nil
}

// decodeErr is the structural decode error kind (§7's "Structural decode
// error"). Decode returns nil, never a partial tree, alongside every error:
// one of these, or the plain errors for a top-level 'e' and for nesting
// past MaxDepth.
type decodeErr struct {
	msg   string
	short bool
}

func (e *decodeErr) Error() string { return e.msg }

func errShort(msg string) error {
	return &decodeErr{msg: "bencode: short input: " + msg, short: true}
}

func errMalformed(msg string) error {
	return &decodeErr{msg: "bencode: " + msg}
}

// IsShortInput reports whether err indicates the input simply ended early
// (as opposed to being structurally wrong no matter how many more bytes
// arrive).
func IsShortInput(err error) bool {
	de, ok := err.(*decodeErr)
	return ok && de.short
}

func decodeValue(a *arena.Arena, data []byte, pos, depth int) (*node.Node, int, error) {
	if depth > MaxDepth {
		return nil, pos, fmt.Errorf("bencode: %w", ErrTooDeep{})
	}
	if pos >= len(data) {
		return nil, pos, errShort("expected a value")
	}

	switch c := data[pos]; {
	case c == 'd':
		return decodeDict(a, data, pos, depth)
	case c == 'l':
		return decodeList(a, data, pos, depth)
	case c == 'i':
		return decodeInteger(a, data, pos)
	case c == 'e':
		return node.NewEndMarker(), pos + 1, nil
	case c >= '0' && c <= '9':
		return decodeString(a, data, pos)
	default:
		return nil, pos, errMalformed(fmt.Sprintf("unknown leading byte %q at offset %d", c, pos))
	}
}

func decodeInteger(a *arena.Arena, data []byte, pos int) (*node.Node, int, error) {
	// data[pos] == 'i'
	rel := indexByte(data[pos+1:], 'e')
	if rel < 0 {
		return nil, pos, errShort("unterminated integer")
	}
	end := pos + 1 + rel
	body := data[pos+1 : end]

	if len(body) == 0 {
		return nil, pos, errMalformed("empty integer body")
	}
	// "-0" is accepted here (decoding to Integer 0) but the Validator
	// rejects it outright, since it can never arise from a builder. That
	// split is intentional, not an inconsistency (property 6).
	digits := body
	if digits[0] == '-' {
		digits = digits[1:]
	}
	if len(digits) > 1 && digits[0] == '0' {
		return nil, pos, errMalformed(fmt.Sprintf("invalid integer %q: leading zero", body))
	}

	v, err := strconv.ParseInt(string(body), 10, 64)
	if err != nil {
		return nil, pos, errMalformed(fmt.Sprintf("invalid integer %q: %v", body, err))
	}

	n := a.AllocNode()
	if n == nil {
		return nil, pos, errMalformed("arena allocation failed")
	}
	head := data[pos : end+1]
	n.Kind = node.KindInteger
	n.Head = head
	n.SegmentCount = 1
	n.ByteLength = int64(len(head))
	n.IntValue = v
	return n, end + 1, nil
}

func decodeString(a *arena.Arena, data []byte, pos int) (*node.Node, int, error) {
	rel := indexByte(data[pos:], ':')
	if rel < 0 {
		return nil, pos, errShort("unterminated string length prefix")
	}
	colon := pos + rel
	lenBytes := data[pos:colon]

	length, err := strconv.ParseInt(string(lenBytes), 10, 64)
	if err != nil || length < 0 {
		return nil, pos, errMalformed(fmt.Sprintf("invalid string length %q", lenBytes))
	}

	payloadStart := colon + 1
	payloadEnd := payloadStart + int(length)
	if length > int64(len(data)-payloadStart) || payloadEnd < 0 {
		return nil, pos, errShort("string payload truncated")
	}

	n := a.AllocNode()
	if n == nil {
		return nil, pos, errMalformed("arena allocation failed")
	}
	head := data[pos:payloadStart]
	tail := data[payloadStart:payloadEnd]
	n.Kind = node.KindString
	n.Head = head
	n.Tail = tail
	n.SegmentCount = 2
	n.ByteLength = int64(len(head)) + int64(len(tail))
	return n, payloadEnd, nil
}

func decodeList(a *arena.Arena, data []byte, pos, depth int) (*node.Node, int, error) {
	list := a.AllocNode()
	if list == nil {
		return nil, pos, errMalformed("arena allocation failed")
	}
	list.Kind = node.KindList
	list.Head = data[pos : pos+1]
	list.SegmentCount = 1
	list.ByteLength = 1

	p := pos + 1
	for {
		child, next, err := decodeValue(a, data, p, depth+1)
		if err != nil {
			return nil, pos, err
		}
		if child.IsEndMarker() {
			list.Tail = data[next-1 : next]
			list.SegmentCount++
			list.ByteLength++
			return list, next, nil
		}
		node.AttachChild(list, child)
		p = next
	}
}

func decodeDict(a *arena.Arena, data []byte, pos, depth int) (*node.Node, int, error) {
	dict := a.AllocNode()
	if dict == nil {
		return nil, pos, errMalformed("arena allocation failed")
	}
	dict.Kind = node.KindDictionary
	dict.Head = data[pos : pos+1]
	dict.SegmentCount = 1
	dict.ByteLength = 1

	p := pos + 1
	pairCount := 0
	for {
		keyNode, next, err := decodeValue(a, data, p, depth+1)
		if err != nil {
			return nil, pos, err
		}
		if keyNode.IsEndMarker() {
			dict.Tail = data[next-1 : next]
			dict.SegmentCount++
			dict.ByteLength++
			buildIndex(dict, pairCount)
			return dict, next, nil
		}
		if keyNode.Kind != node.KindString {
			return nil, pos, errMalformed(fmt.Sprintf("dictionary key must be a string, got %s at offset %d", keyNode.Kind, p))
		}

		valNode, next2, err := decodeValue(a, data, next, depth+1)
		if err != nil {
			return nil, pos, err
		}
		if valNode.IsEndMarker() {
			return nil, pos, errMalformed(fmt.Sprintf("dangling dictionary key at offset %d", next))
		}

		node.AttachChild(dict, keyNode)
		node.AttachChild(dict, valNode)
		pairCount++
		p = next2
	}
}

// buildIndex attaches a dictindex.Index to a freshly decoded dictionary.
// Built after the full pair count is known so the decoder can pick between
// WordFoldHash and the xxhash fallback via dictindex's threshold policy,
// rather than committing to a hash function before the first key is seen.
func buildIndex(dict *node.Node, pairCount int) {
	if pairCount == 0 {
		return
	}
	idx := dictindex.Build(dict, dictindex.SelectHashFunc(pairCount))
	dict.HashIndex = idx
	dict.IntValue = 1
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
