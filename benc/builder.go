// Package benc builds bencode trees and serializes them. Construction
// mirrors the per-kind constructor style of internal/core/datatype.go's
// ParseDatatypeMessage family, one function per Node kind, each returning
// either a ready Node or a nil/fail signal so call chains can be written
// without a per-step error check (see arena.Arena's sticky failure state).
package benc

import (
	"strconv"

	"github.com/scigolib/bencode/arena"
	"github.com/scigolib/bencode/node"
)

// NewInteger builds an Integer node encoding "i<v>e" into arena-owned
// scratch. Returns nil if a is nil, already failed, or allocation fails.
func NewInteger(a *arena.Arena, v int64) *node.Node {
	if a == nil || a.Failed() {
		return nil
	}

	enc := strconv.AppendInt(make([]byte, 0, 24), v, 10)
	total := len(enc) + 2 // 'i' ... 'e'

	buf, ok := a.Alloc(total)
	if !ok {
		return nil
	}
	buf[0] = 'i'
	copy(buf[1:], enc)
	buf[1+len(enc)] = 'e'

	n := a.AllocNode()
	if n == nil {
		return nil
	}
	n.Kind = node.KindInteger
	n.Head = buf
	n.SegmentCount = 1
	n.ByteLength = int64(total)
	n.IntValue = v
	return n
}

// NewStringBorrowed builds a String node whose payload is the caller's
// (ptr,len) slice. The prefix scratch is sized exactly from len, removing
// the original C source's fixed 99999-byte cap. The caller's slice must
// stay valid for the life of a.
func NewStringBorrowed(a *arena.Arena, payload []byte) *node.Node {
	if a == nil || a.Failed() {
		return nil
	}

	prefix := strconv.Itoa(len(payload))
	buf, ok := a.Alloc(len(prefix) + 1)
	if !ok {
		return nil
	}
	copy(buf, prefix)
	buf[len(prefix)] = ':'

	n := a.AllocNode()
	if n == nil {
		return nil
	}
	n.Kind = node.KindString
	n.Head = buf
	n.Tail = payload
	n.SegmentCount = 2
	n.ByteLength = int64(len(buf)) + int64(len(payload))
	return n
}

// NewStringCopied behaves like NewStringBorrowed but first copies payload
// into arena-owned memory, so the caller's slice need not outlive the call.
func NewStringCopied(a *arena.Arena, payload []byte) *node.Node {
	if a == nil || a.Failed() {
		return nil
	}
	owned, ok := a.Alloc(len(payload))
	if !ok {
		return nil
	}
	copy(owned, payload)
	return NewStringBorrowed(a, owned)
}

// NewList builds an empty List node ("l" ... "e").
func NewList(a *arena.Arena) *node.Node {
	if a == nil || a.Failed() {
		return nil
	}
	head, ok := a.Alloc(1)
	if !ok {
		return nil
	}
	head[0] = 'l'
	tail, ok := a.Alloc(1)
	if !ok {
		return nil
	}
	tail[0] = 'e'

	n := a.AllocNode()
	if n == nil {
		return nil
	}
	n.Kind = node.KindList
	n.Head = head
	n.Tail = tail
	n.SegmentCount = 2
	n.ByteLength = 2
	return n
}

// NewDictionary builds an empty Dictionary node ("d" ... "e") with no hash
// index; builder-produced dictionaries always use the linear scan (see
// dictindex).
func NewDictionary(a *arena.Arena) *node.Node {
	if a == nil || a.Failed() {
		return nil
	}
	head, ok := a.Alloc(1)
	if !ok {
		return nil
	}
	head[0] = 'd'
	tail, ok := a.Alloc(1)
	if !ok {
		return nil
	}
	tail[0] = 'e'

	n := a.AllocNode()
	if n == nil {
		return nil
	}
	n.Kind = node.KindDictionary
	n.Head = head
	n.Tail = tail
	n.SegmentCount = 2
	n.ByteLength = 2
	return n
}

// ListAppend attaches item as the new last child of list. item must be
// unparented and have no sibling (see node.AttachChild). Returns item, or
// nil if list or item is nil.
func ListAppend(list, item *node.Node) *node.Node {
	if list == nil || item == nil {
		return nil
	}
	if list.Kind != node.KindList {
		panic("benc: ListAppend on non-list node: " + list.Kind.String())
	}
	node.AttachChild(list, item)
	return item
}

// DictPut builds a borrowed-key String node for key and appends key then
// value as consecutive children of dict. Duplicate keys are not detected;
// dictindex documents and tests the lookup precedence for that case. For
// wire-format correctness callers should insert keys in sorted order.
func DictPut(a *arena.Arena, dict *node.Node, key []byte, value *node.Node) *node.Node {
	if a == nil || dict == nil || value == nil {
		return nil
	}
	if dict.Kind != node.KindDictionary {
		panic("benc: DictPut on non-dictionary node: " + dict.Kind.String())
	}
	keyNode := NewStringBorrowed(a, key)
	if keyNode == nil {
		return nil
	}
	node.AttachChild(dict, keyNode)
	node.AttachChild(dict, value)
	return value
}
