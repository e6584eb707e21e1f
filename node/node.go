// Package node defines the tagged tree element shared by the builder,
// decoder, serializer and dictionary index.
package node

// Kind identifies the tagged variant a Node holds.
type Kind uint8

const (
	// KindString is a byte sequence of arbitrary length.
	KindString Kind = iota
	// KindInteger is a signed 64-bit integer.
	KindInteger
	// KindList is an ordered sequence of child nodes.
	KindList
	// KindDictionary is an ordered sequence of (key, value) pairs.
	KindDictionary
	// kindEndMarker is the decoder's internal sentinel for a trailing 'e'.
	// It is never reachable through a finished tree handed to callers.
	kindEndMarker
)

// String returns a human-readable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	case kindEndMarker:
		return "end-marker"
	default:
		return "unknown"
	}
}

// Node is a single element of a bencode tree. All Nodes are owned by the
// Arena that allocated them; a Node is never freed individually.
//
// Segments: a Node serializes as Head, followed by each child's full
// serialization in order, followed by Tail. For a String, Head is the
// "<len>:" prefix and Tail is the payload; both may borrow from memory the
// Arena does not own (see §3 of the design), so a Node never copies on its
// own behalf.
type Node struct {
	Kind Kind

	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	NextSibling *Node

	Head []byte
	Tail []byte

	SegmentCount int
	ByteLength   int64

	// IntValue holds the decoded/built value for KindInteger. For a
	// KindDictionary produced by the Decoder it is repurposed as a
	// 0/1 flag: non-zero means HashIndex is present.
	IntValue int64

	// HashIndex is present only on decoded dictionaries with at least one
	// pair (see dictindex).
	HashIndex any
}

// IsEndMarker reports whether n is the decoder's internal sentinel. Callers
// never see true for a Node returned from a public API.
func (n *Node) IsEndMarker() bool {
	return n != nil && n.Kind == kindEndMarker
}

// NewEndMarker returns the singleton-shaped sentinel the decoder uses to
// recognize a container's trailing 'e'. Every call allocates a fresh value
// (the arena has no identity map) but callers only ever test IsEndMarker,
// never pointer-compare, so this is not observable.
func NewEndMarker() *Node {
	return &Node{Kind: kindEndMarker, ByteLength: 1}
}

// StringValue returns the payload bytes of a String node. Panics if n is
// not a String; callers are expected to check Kind (or use Lookup-typed
// helpers) first, rather than poke at the tagged-union fields directly.
func (n *Node) StringValue() []byte {
	if n.Kind != KindString {
		panic("node: StringValue on non-string node: " + n.Kind.String())
	}
	return n.Tail
}

// IntegerValue returns the decoded/built integer value. Panics if n is not
// an Integer.
func (n *Node) IntegerValue() int64 {
	if n.Kind != KindInteger {
		panic("node: IntegerValue on non-integer node: " + n.Kind.String())
	}
	return n.IntValue
}

// Children returns the direct children of a List or Dictionary node in
// insertion/decode order. For a Dictionary, children alternate key, value,
// key, value...
func (n *Node) Children() []*Node {
	if n.Kind != KindList && n.Kind != KindDictionary {
		panic("node: Children on non-container node: " + n.Kind.String())
	}
	out := make([]*Node, 0, n.childCountHint())
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// childCountHint is a cheap capacity guess; it does not need to be exact.
func (n *Node) childCountHint() int {
	if n.SegmentCount <= 2 {
		return 0
	}
	return n.SegmentCount / 2
}

// AttachChild links child as the new last child of parent and propagates
// the aggregate SegmentCount/ByteLength additions up the ancestor chain.
// child must be unparented and have no sibling; violating this is a
// programmer error and panics rather than returning an error (see spec
// §4.3's "Assertions enforce structural preconditions").
func AttachChild(parent, child *Node) {
	if parent == nil || child == nil {
		panic("node: AttachChild with nil parent or child")
	}
	if parent.Kind != KindList && parent.Kind != KindDictionary {
		panic("node: AttachChild to non-container parent: " + parent.Kind.String())
	}
	if child.Parent != nil || child.NextSibling != nil {
		panic("node: AttachChild on already-attached child")
	}

	child.Parent = parent
	if parent.LastChild == nil {
		parent.FirstChild = child
		parent.LastChild = child
	} else {
		parent.LastChild.NextSibling = child
		parent.LastChild = child
	}

	addSegments := child.SegmentCount
	addBytes := child.ByteLength
	for n := parent; n != nil; n = n.Parent {
		n.SegmentCount += addSegments
		n.ByteLength += addBytes
	}
}
