// Package arena provides a bump allocator over a chain of byte blocks. All
// Nodes and side buffers produced while building or decoding a bencode tree
// are carved out of one Arena and released en masse when it is freed.
//
// Strategy, adapted from the end-of-file Allocator in
// internal/writer/allocator.go: allocation is always sequential within
// the current block; once a block can't satisfy a request, a new block is
// appended to the front of the chain and becomes current. There is no
// free-space reuse and no per-node deallocation — the same documented MVP
// allocation strategy that file used, here applied to in-memory blocks
// instead of file offsets.
package arena

import (
	"fmt"

	"github.com/scigolib/bencode/node"
)

const (
	// Alignment is the minimum byte alignment for every allocation.
	Alignment = 8
	// MinBlockSize is the smallest block the Arena will allocate when its
	// current block runs out of room.
	MinBlockSize = 4096
	// nodeSlabLen is the number of node.Node values carved out per slab.
	// Nodes are fixed-size, so unlike byte blocks a slab never needs to
	// grow beyond this to satisfy one request.
	nodeSlabLen = 64
)

type block struct {
	buf  []byte
	used int
	next *block
}

func (b *block) remaining() int {
	return cap(b.buf) - b.used
}

// nodeBlock is a slab of node.Node values. Handing out &slab[i] instead of
// individually heap-allocating each Node is what makes the Arena the true
// owner of node storage (not just of the byte buffers Nodes point into);
// the whole slab becomes collectible only once every Node within it is
// unreachable, mirroring the "freed together" contract of a bump allocator
// in a garbage-collected host language.
type nodeBlock struct {
	slab []node.Node
	used int
	next *nodeBlock
}

// Arena is a bump allocator. The zero value is not usable; construct one
// with New. An Arena is not safe for concurrent use by multiple goroutines
// without external synchronization; distinct Arenas may be used
// concurrently from different goroutines.
type Arena struct {
	head     *block
	nodeHead *nodeBlock
	failed   bool
	// err records the first allocation failure, for callers who want a
	// concrete error instead of just the sticky-failure boolean.
	err error
}

// New creates an empty Arena with one block of at least MinBlockSize bytes.
func New() *Arena {
	a := &Arena{}
	a.head = &block{buf: make([]byte, 0, MinBlockSize)}
	a.nodeHead = &nodeBlock{slab: make([]node.Node, nodeSlabLen)}
	return a
}

// AllocNode returns a zeroed *node.Node carved out of the Arena's node
// slabs. Returns nil if the Arena has already failed.
func (a *Arena) AllocNode() *node.Node {
	if a.failed {
		return nil
	}
	if a.nodeHead.used == len(a.nodeHead.slab) {
		a.nodeHead = &nodeBlock{slab: make([]node.Node, nodeSlabLen), next: a.nodeHead}
	}
	n := &a.nodeHead.slab[a.nodeHead.used]
	a.nodeHead.used++
	return n
}

// Failed reports whether the Arena has entered its sticky error state. Once
// true, every subsequent Alloc call returns (nil, false) without touching
// the underlying allocator, so Builder call chains can skip a per-step
// error check and inspect Failed (or Err) once at the end.
func (a *Arena) Failed() bool {
	return a.failed
}

// Err returns the error that caused the sticky failure state, or nil.
func (a *Arena) Err() error {
	return a.err
}

func alignUp(n int) int {
	r := n % Alignment
	if r == 0 {
		return n
	}
	return n + (Alignment - r)
}

// Alloc returns a zeroed region of exactly n bytes, rounded up internally to
// the alignment boundary. A negative n puts the Arena into its sticky error
// state, after which every subsequent Alloc returns (nil, false).
func (a *Arena) Alloc(n int) ([]byte, bool) {
	if a.failed {
		return nil, false
	}
	if n < 0 {
		a.fail(fmt.Errorf("arena: negative allocation size %d", n))
		return nil, false
	}
	if n == 0 {
		return a.head.buf[a.head.used:a.head.used], true
	}

	need := alignUp(n)
	cur := a.head
	if cur.remaining() < need {
		size := MinBlockSize
		if need > size {
			size = need
		}
		nb := &block{buf: make([]byte, 0, size), next: a.head}
		a.head = nb
		cur = nb
	}

	start := cur.used
	cur.buf = cur.buf[:start+need]
	cur.used = start + need
	return cur.buf[start : start+n : start+need], true
}

// MustAlloc is a convenience for call sites that already checked Failed and
// simply want the slice; it panics if the Arena is in its failure state,
// which indicates a logic error (Alloc should have been checked).
func (a *Arena) MustAlloc(n int) []byte {
	buf, ok := a.Alloc(n)
	if !ok {
		panic("arena: MustAlloc on failed arena")
	}
	return buf
}

func (a *Arena) fail(err error) {
	a.failed = true
	if a.err == nil {
		a.err = err
	}
}

// FreeAll releases every block. The Arena is left usable (as if freshly
// constructed via New) but every Node and buffer previously allocated from
// it is invalid to dereference afterward.
func (a *Arena) FreeAll() {
	a.head = &block{buf: make([]byte, 0, MinBlockSize)}
	a.nodeHead = &nodeBlock{slab: make([]node.Node, nodeSlabLen)}
	a.failed = false
	a.err = nil
}

// Merge splices src's block and node-slab chains onto the front of dst's
// chains and empties src. Nodes previously allocated from src remain valid
// and are now owned by dst; src is left holding a single empty block and
// must not be used to allocate anything that needs to outlive this call
// without accounting for the fact it no longer owns the blocks those old
// Nodes point into.
func (a *Arena) Merge(src *Arena) {
	if src == nil || src == a {
		return
	}
	if src.head != nil && len(src.head.buf) > 0 {
		tail := src.head
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = a.head
		a.head = src.head
	}
	if src.nodeHead != nil && src.nodeHead.used > 0 {
		tail := src.nodeHead
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = a.nodeHead
		a.nodeHead = src.nodeHead
	}
	src.head = &block{buf: make([]byte, 0, MinBlockSize)}
	src.nodeHead = &nodeBlock{slab: make([]node.Node, nodeSlabLen)}
	src.failed = false
	src.err = nil
}
