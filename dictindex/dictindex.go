// Package dictindex provides an O(1)-expected key lookup structure layered
// on decoded dictionaries, adapted from the fixed-record B-tree reader in
// internal/structures/btree.go: a small fixed-size table parsed once and
// probed by callers afterward, with a defined fallback when the fast path
// can't answer definitively.
package dictindex

import (
	"bytes"

	"github.com/scigolib/bencode/node"
)

// BucketCount is the small prime bucket count used by every Index, matching
// the "~31" the source's design calls for.
const BucketCount = 31

// XXHashThreshold is the pair count above which the decoder builds the
// index with the xxhash-backed HashFunc instead of WordFoldHash, which
// depends only on a small fixed-width key prefix and starts colliding more
// on large dictionaries than a full-key hash would.
const XXHashThreshold = 64

// HashFunc maps a key to a bucket index in [0, bucketCount).
type HashFunc func(key []byte, bucketCount int) int

// Index is a fixed-size open-addressed table with linear probing over one
// decoded dictionary's keys. The zero value is not usable; build one with
// Build.
type Index struct {
	dict    *node.Node
	buckets []*node.Node // key Node per slot; nil means empty.
	hashFn  HashFunc
}

// Build constructs an Index over every (key, value) pair currently attached
// to dict, using hashFn to place keys. A dictionary whose pair count
// exceeds the table's effective capacity silently drops the overflow from
// the fast path; Lookup always falls back to a correct linear scan in that
// case.
func Build(dict *node.Node, hashFn HashFunc) *Index {
	idx := &Index{
		dict:    dict,
		buckets: make([]*node.Node, BucketCount),
		hashFn:  hashFn,
	}
	pairs := dict.Children()
	for i := 0; i+1 < len(pairs); i += 2 {
		idx.insert(pairs[i])
	}
	return idx
}

func (idx *Index) insert(key *node.Node) {
	n := len(idx.buckets)
	start := idx.hashFn(key.StringValue(), n)
	i := start
	for {
		if idx.buckets[i] == nil {
			idx.buckets[i] = key
			return
		}
		i = (i + 1) % n
		if i == start {
			// Table full: insertion silently skipped. Lookup's wrap
			// detection always falls back to the linear scan, so
			// correctness is preserved at the cost of O(n) for this key.
			return
		}
	}
}

// Lookup probes idx for key, falling back to a linear scan of dict's
// children when the probe wraps without a definitive answer.
func (idx *Index) Lookup(key []byte) (*node.Node, bool) {
	n := len(idx.buckets)
	if n == 0 {
		return LinearScan(idx.dict, key)
	}
	start := idx.hashFn(key, n)
	i := start
	for {
		slot := idx.buckets[i]
		if slot == nil {
			return nil, false
		}
		if bytes.Equal(slot.StringValue(), key) {
			return slot.NextSibling, true
		}
		i = (i + 1) % n
		if i == start {
			return LinearScan(idx.dict, key)
		}
	}
}

// LinearScan walks dict's children directly, the only lookup strategy
// available to builder-produced dictionaries (which carry no Index).
func LinearScan(dict *node.Node, key []byte) (*node.Node, bool) {
	pairs := dict.Children()
	var found *node.Node
	ok := false
	for i := 0; i+1 < len(pairs); i += 2 {
		if bytes.Equal(pairs[i].StringValue(), key) {
			found, ok = pairs[i+1], true
		}
	}
	return found, ok
}

// Lookup resolves a key against dict, using its attached Index (if any,
// decoded dictionaries carry one) or a direct linear scan (builder-produced
// dictionaries, or a decoded dictionary whose index build was skipped).
func Lookup(dict *node.Node, key []byte) (*node.Node, bool) {
	if dict == nil {
		return nil, false
	}
	if idx, ok := dict.HashIndex.(*Index); ok && idx != nil {
		return idx.Lookup(key)
	}
	return LinearScan(dict, key)
}

// GetString looks up key and returns its value's string payload, requiring
// the value to be a String node.
func GetString(dict *node.Node, key []byte) ([]byte, bool) {
	v, ok := Lookup(dict, key)
	if !ok || v.Kind != node.KindString {
		return nil, false
	}
	return v.StringValue(), true
}

// GetInt looks up key and returns its value's integer, requiring the value
// to be an Integer node.
func GetInt(dict *node.Node, key []byte) (int64, bool) {
	v, ok := Lookup(dict, key)
	if !ok || v.Kind != node.KindInteger {
		return 0, false
	}
	return v.IntegerValue(), true
}

// GetList looks up key and returns its value, requiring it to be a List
// node.
func GetList(dict *node.Node, key []byte) (*node.Node, bool) {
	v, ok := Lookup(dict, key)
	if !ok || v.Kind != node.KindList {
		return nil, false
	}
	return v, true
}

// GetDict looks up key and returns its value, requiring it to be a
// Dictionary node.
func GetDict(dict *node.Node, key []byte) (*node.Node, bool) {
	v, ok := Lookup(dict, key)
	if !ok || v.Kind != node.KindDictionary {
		return nil, false
	}
	return v, true
}
