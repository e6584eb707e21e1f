package benc

import (
	"io"

	"github.com/scigolib/bencode/arena"
	"github.com/scigolib/bencode/node"
)

// Segment is one entry of a scatter/gather vector: a borrowed byte range
// that must be written in order and never copied.
type Segment []byte

// ToSegments walks n in pre-order and returns its segment vector.
// headPad/tailPad reserve that many empty leading/trailing slots so a
// caller can splice the vector into an enclosing frame without a second
// allocation. The vector itself is allocated from the Go heap, not from a.
// Returns the slice (n's SegmentCount segments plus the padding slots) and
// true, or (nil, false) if a or n is nil.
func ToSegments(a *arena.Arena, n *node.Node, headPad, tailPad int) ([]Segment, bool) {
	if a == nil || n == nil {
		return nil, false
	}

	total := n.SegmentCount + headPad + tailPad
	out := make([]Segment, total)

	idx := headPad
	var walk func(cur *node.Node)
	walk = func(cur *node.Node) {
		if len(cur.Head) > 0 {
			out[idx] = cur.Head
			idx++
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		// A String always counts its payload as a segment, even when empty.
		if len(cur.Tail) > 0 || cur.Kind == node.KindString {
			out[idx] = cur.Tail
			idx++
		}
	}
	walk(n)

	if idx != headPad+n.SegmentCount {
		panic("benc: segment count invariant violated during serialization")
	}
	return out, true
}

func writeFlat(n *node.Node, buf []byte) int {
	off := 0
	var walk func(cur *node.Node)
	walk = func(cur *node.Node) {
		off += copy(buf[off:], cur.Head)
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		off += copy(buf[off:], cur.Tail)
	}
	walk(n)
	return off
}

// ToBuffer allocates ByteLength+1 bytes from a, writes the flat
// serialization of n, and appends a trailing NUL not counted in the
// returned length. The returned slice is arena-owned and becomes invalid
// once a is freed.
func ToBuffer(a *arena.Arena, n *node.Node) ([]byte, bool) {
	if a == nil || n == nil {
		return nil, false
	}
	buf, ok := a.Alloc(int(n.ByteLength) + 1)
	if !ok {
		return nil, false
	}
	written := writeFlat(n, buf[:n.ByteLength])
	if int64(written) != n.ByteLength {
		panic("benc: byte length invariant violated during serialization")
	}
	buf[n.ByteLength] = 0
	return buf[:n.ByteLength], true
}

// ToHostBuffer behaves like ToBuffer but allocates from the Go heap instead
// of the Arena, so the returned slice outlives the Arena's lifetime.
func ToHostBuffer(n *node.Node) []byte {
	if n == nil {
		return nil
	}
	buf := make([]byte, n.ByteLength+1)
	written := writeFlat(n, buf[:n.ByteLength])
	if int64(written) != n.ByteLength {
		panic("benc: byte length invariant violated during serialization")
	}
	return buf[:n.ByteLength]
}

// WriteTo writes the flat serialization of n to w without an intermediate
// buffer, walking head/children/tail directly, and returns the byte count
// written, so a built or decoded tree can be streamed straight to a socket
// or file. It is a package-level function, not a method, so a Node does not
// itself implement io.WriterTo.
func WriteTo(w io.Writer, n *node.Node) (int64, error) {
	if n == nil {
		return 0, nil
	}
	var total int64
	var werr error
	var walk func(cur *node.Node)
	walk = func(cur *node.Node) {
		if werr != nil {
			return
		}
		if len(cur.Head) > 0 {
			wn, err := w.Write(cur.Head)
			total += int64(wn)
			if err != nil {
				werr = err
				return
			}
		}
		for c := cur.FirstChild; c != nil && werr == nil; c = c.NextSibling {
			walk(c)
		}
		if werr != nil {
			return
		}
		if len(cur.Tail) > 0 {
			wn, err := w.Write(cur.Tail)
			total += int64(wn)
			if err != nil {
				werr = err
			}
		}
	}
	walk(n)
	return total, werr
}
