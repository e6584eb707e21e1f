package benc

import (
	"github.com/scigolib/bencode/arena"
	"github.com/scigolib/bencode/node"
)

// AdoptCopy rebuilds src (typically a decoded, input-borrowing subtree) in
// dst with every string payload fully copied — dictionary keys included —
// so the result no longer depends on whatever buffer src's strings were
// borrowed from. This mirrors the original C source's bencode_collapse,
// which exists so callers can hold onto a decoded value after releasing
// the bytes it was decoded from.
func AdoptCopy(dst *arena.Arena, src *node.Node) *node.Node {
	if dst == nil || src == nil {
		return nil
	}
	switch src.Kind {
	case node.KindInteger:
		return NewInteger(dst, src.IntValue)
	case node.KindString:
		return NewStringCopied(dst, src.StringValue())
	case node.KindList:
		out := NewList(dst)
		if out == nil {
			return nil
		}
		for c := src.FirstChild; c != nil; c = c.NextSibling {
			item := AdoptCopy(dst, c)
			if item == nil {
				return nil
			}
			ListAppend(out, item)
		}
		return out
	case node.KindDictionary:
		out := NewDictionary(dst)
		if out == nil {
			return nil
		}
		pairs := src.Children()
		for i := 0; i+1 < len(pairs); i += 2 {
			key, val := pairs[i], pairs[i+1]
			copiedKey := NewStringCopied(dst, key.StringValue())
			if copiedKey == nil {
				return nil
			}
			copiedVal := AdoptCopy(dst, val)
			if copiedVal == nil {
				return nil
			}
			node.AttachChild(out, copiedKey)
			node.AttachChild(out, copiedVal)
		}
		return out
	default:
		return nil
	}
}
