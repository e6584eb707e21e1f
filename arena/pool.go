package arena

import "sync"

// scratchPool holds short-lived byte slices that never outlive the call
// that borrowed them — never anything a Node ends up pointing at. Anything
// a Node references must come from an Arena block instead, since the pool
// may recycle the backing array at any time after ReleaseScratch.
var scratchPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 4096)
	},
}

// GetScratch returns a call-scoped byte slice of length size from the pool.
func GetScratch(size int) []byte {
	buf := scratchPool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, size, size*2)
	}
	return buf[:size]
}

// ReleaseScratch returns buf to the pool. Callers must not use buf after
// this returns.
func ReleaseScratch(buf []byte) {
	//nolint:staticcheck // slice descriptor copy is the accepted sync.Pool idiom here
	scratchPool.Put(buf[:0])
}
