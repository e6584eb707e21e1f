package node

import "testing"

func TestAttachChildPropagatesSizes(t *testing.T) {
	list := &Node{Kind: KindList, Head: []byte("l"), Tail: []byte("e"), SegmentCount: 2, ByteLength: 2}
	outer := &Node{Kind: KindList, Head: []byte("l"), Tail: []byte("e"), SegmentCount: 2, ByteLength: 2}

	child := &Node{Kind: KindInteger, Head: []byte("i1e"), SegmentCount: 1, ByteLength: 3}
	AttachChild(list, child)

	if list.SegmentCount != 3 || list.ByteLength != 5 {
		t.Fatalf("list aggregates wrong after one attach: segs=%d bytes=%d", list.SegmentCount, list.ByteLength)
	}

	AttachChild(outer, list)
	if outer.SegmentCount != 5 || outer.ByteLength != 7 {
		t.Fatalf("outer aggregates wrong after nested attach: segs=%d bytes=%d", outer.SegmentCount, outer.ByteLength)
	}
	if list.SegmentCount != 3 || list.ByteLength != 5 {
		t.Fatalf("attaching list to outer should not change list's own aggregates: segs=%d bytes=%d", list.SegmentCount, list.ByteLength)
	}
}

func TestAttachChildRejectsAlreadyAttached(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic attaching an already-parented child")
		}
	}()

	list := &Node{Kind: KindList, SegmentCount: 2, ByteLength: 2}
	child := &Node{Kind: KindInteger, SegmentCount: 1, ByteLength: 3}
	AttachChild(list, child)
	AttachChild(list, child) // second attach: child already has a parent.
}

func TestChildrenOrder(t *testing.T) {
	list := &Node{Kind: KindList, SegmentCount: 2, ByteLength: 2}
	a := &Node{Kind: KindInteger, IntValue: 1, SegmentCount: 1, ByteLength: 3}
	b := &Node{Kind: KindInteger, IntValue: 2, SegmentCount: 1, ByteLength: 3}
	AttachChild(list, a)
	AttachChild(list, b)

	got := list.Children()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("Children() order wrong: %v", got)
	}
}

func TestIsEndMarker(t *testing.T) {
	m := NewEndMarker()
	if !m.IsEndMarker() {
		t.Fatal("NewEndMarker() should report IsEndMarker true")
	}
	s := &Node{Kind: KindString}
	if s.IsEndMarker() {
		t.Fatal("a String node must not report IsEndMarker true")
	}
}

func TestStringValuePanicsOnWrongKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling StringValue on a non-string node")
		}
	}()
	(&Node{Kind: KindInteger}).StringValue()
}
