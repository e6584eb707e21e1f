package arena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/bencode/node"
)

func TestAllocReturnsDistinctRegions(t *testing.T) {
	a := New()

	b1, ok := a.Alloc(10)
	require.True(t, ok)
	b2, ok := a.Alloc(10)
	require.True(t, ok)

	b1[0] = 'x'
	require.NotEqual(t, byte('x'), b2[0], "distinct allocations must not alias")
}

func TestAllocSpansMultipleBlocks(t *testing.T) {
	a := New()

	first, ok := a.Alloc(MinBlockSize - 8)
	require.True(t, ok)

	second, ok := a.Alloc(64)
	require.True(t, ok)

	first[0] = 1
	second[0] = 2
	require.EqualValues(t, 1, first[0])
	require.EqualValues(t, 2, second[0])
}

func TestAllocNegativeSizeSticksFailure(t *testing.T) {
	a := New()

	_, ok := a.Alloc(-1)
	require.False(t, ok)
	require.True(t, a.Failed())
	require.Error(t, a.Err())

	_, ok = a.Alloc(1)
	require.False(t, ok, "a failed arena must reject every subsequent alloc")
}

func TestAllocNodeHandsOutDistinctNodes(t *testing.T) {
	a := New()

	n1 := a.AllocNode()
	n2 := a.AllocNode()
	require.NotNil(t, n1)
	require.NotNil(t, n2)
	require.NotSame(t, n1, n2)
}

func TestAllocNodeSpansSlabs(t *testing.T) {
	a := New()

	var last *node.Node
	for i := 0; i < nodeSlabLen+5; i++ {
		n := a.AllocNode()
		require.NotNil(t, n)
		require.NotSame(t, last, n)
		last = n
	}
}

func TestFreeAllInvalidatesFurtherUseButArenaStaysUsable(t *testing.T) {
	a := New()
	_, ok := a.Alloc(16)
	require.True(t, ok)

	a.FreeAll()

	buf, ok := a.Alloc(16)
	require.True(t, ok)
	require.Len(t, buf, 16)
}

func TestMergePrependsSourceBlocks(t *testing.T) {
	dst := New()
	src := New()

	dstBuf, ok := dst.Alloc(8)
	require.True(t, ok)
	copy(dstBuf, "dstdstdd")

	srcBuf, ok := src.Alloc(8)
	require.True(t, ok)
	copy(srcBuf, "srcsrcss")

	dst.Merge(src)

	// Both buffers remain readable through their original handles after merge.
	require.Equal(t, "dstdstdd", string(dstBuf))
	require.Equal(t, "srcsrcss", string(srcBuf))

	// src is left usable and empty.
	require.False(t, src.Failed())
	again, ok := src.Alloc(4)
	require.True(t, ok)
	require.Len(t, again, 4)
}
