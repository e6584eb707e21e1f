package decode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/bencode/arena"
	"github.com/scigolib/bencode/dictindex"
	"github.com/scigolib/bencode/node"
)

func TestDecodeInteger(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"i0e", 0},
		{"i42e", 42},
		{"i-3e", -3},
		{"i-9223372036854775808e", -9223372036854775808},
	}
	for _, tt := range tests {
		a := arena.New()
		n, err := Decode(a, []byte(tt.in))
		require.NoError(t, err)
		require.Equal(t, node.KindInteger, n.Kind)
		require.Equal(t, tt.want, n.IntegerValue())
	}
}

func TestDecodeIntegerRejectsMalformedBodies(t *testing.T) {
	for _, in := range []string{"ie", "i-e", "i03e", "i-03e", "i--1e", "i1.5e"} {
		a := arena.New()
		_, err := Decode(a, []byte(in))
		require.Error(t, err, "input %q should be rejected", in)
		require.False(t, IsShortInput(err), "input %q is malformed, not short", in)
	}
}

func TestDecodeAcceptsNegativeZeroUnlikeValidator(t *testing.T) {
	// Property 6: decode("i-0e") is accepted (as Integer 0), even though
	// Validate rejects the same bytes outright.
	a := arena.New()
	n, err := Decode(a, []byte("i-0e"))
	require.NoError(t, err)
	require.EqualValues(t, 0, n.IntegerValue())
}

func TestDecodeIntegerShortInput(t *testing.T) {
	a := arena.New()
	_, err := Decode(a, []byte("i42"))
	require.Error(t, err)
	require.True(t, IsShortInput(err))
}

func TestDecodeString(t *testing.T) {
	a := arena.New()
	n, err := Decode(a, []byte("4:spam"))
	require.NoError(t, err)
	require.Equal(t, node.KindString, n.Kind)
	require.Equal(t, "spam", string(n.StringValue()))
}

func TestDecodeEmptyString(t *testing.T) {
	a := arena.New()
	n, err := Decode(a, []byte("0:"))
	require.NoError(t, err)
	require.Empty(t, n.StringValue())
}

func TestDecodeStringTruncatedPayloadIsShort(t *testing.T) {
	a := arena.New()
	_, err := Decode(a, []byte("5:spa"))
	require.Error(t, err)
	require.True(t, IsShortInput(err))
}

func TestDecodeStringUnterminatedLengthIsShort(t *testing.T) {
	a := arena.New()
	_, err := Decode(a, []byte("5"))
	require.Error(t, err)
	require.True(t, IsShortInput(err))
}

func TestDecodeListNested(t *testing.T) {
	a := arena.New()
	n, err := Decode(a, []byte("l4:spami42ee"))
	require.NoError(t, err)
	require.Equal(t, node.KindList, n.Kind)
	children := n.Children()
	require.Len(t, children, 2)
	require.Equal(t, "spam", string(children[0].StringValue()))
	require.EqualValues(t, 42, children[1].IntegerValue())
}

func TestDecodeEmptyList(t *testing.T) {
	a := arena.New()
	n, err := Decode(a, []byte("le"))
	require.NoError(t, err)
	require.Empty(t, n.Children())
}

func TestDecodeDictBuildsIndexAndPreservesOrder(t *testing.T) {
	a := arena.New()
	n, err := Decode(a, []byte("d3:cow3:moo4:spam4:eggse"))
	require.NoError(t, err)
	require.Equal(t, node.KindDictionary, n.Kind)

	pairs := n.Children()
	require.Len(t, pairs, 4)
	require.Equal(t, "cow", string(pairs[0].StringValue()))
	require.Equal(t, "spam", string(pairs[2].StringValue()))

	idx, ok := n.HashIndex.(*dictindex.Index)
	require.True(t, ok)
	v, ok := idx.Lookup([]byte("spam"))
	require.True(t, ok)
	require.Equal(t, "eggs", string(v.StringValue()))
}

func TestDecodeEmptyDictHasNoIndex(t *testing.T) {
	a := arena.New()
	n, err := Decode(a, []byte("de"))
	require.NoError(t, err)
	require.Nil(t, n.HashIndex)
}

func TestDecodeDictRejectsNonStringKey(t *testing.T) {
	a := arena.New()
	_, err := Decode(a, []byte("di1e3:fooe"))
	require.Error(t, err)
	require.False(t, IsShortInput(err))
}

func TestDecodeDictRejectsDanglingKey(t *testing.T) {
	a := arena.New()
	_, err := Decode(a, []byte("d3:fooe"))
	require.Error(t, err)
	require.False(t, IsShortInput(err))
}

func TestDecodeRejectsTopLevelEndMarker(t *testing.T) {
	a := arena.New()
	_, err := Decode(a, []byte("e"))
	require.Error(t, err)
}

func TestDecodeRejectsEmptyInput(t *testing.T) {
	a := arena.New()
	_, err := Decode(a, nil)
	require.Error(t, err)
	require.True(t, IsShortInput(err))
}

func TestDecodeRejectsNilArena(t *testing.T) {
	_, err := Decode(nil, []byte("i1e"))
	require.Error(t, err)
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	a := arena.New()
	n, err := Decode(a, []byte("i1eGARBAGE"))
	require.NoError(t, err)
	require.EqualValues(t, 3, n.ByteLength)
}

func TestDecodeRejectsNestingBeyondMaxDepth(t *testing.T) {
	a := arena.New()
	var buf []byte
	for i := 0; i <= MaxDepth+1; i++ {
		buf = append(buf, 'l')
	}
	_, err := Decode(a, buf)
	require.Error(t, err)
	require.False(t, IsShortInput(err))
	var target ErrTooDeep
	require.True(t, errors.As(err, &target), "expected err to wrap ErrTooDeep: %v", err)
}

func TestDecodeStringsAreBorrowedFromInput(t *testing.T) {
	a := arena.New()
	data := []byte("4:spam")
	n, err := Decode(a, data)
	require.NoError(t, err)

	// Head/Tail must alias the caller's slice, not a copy.
	require.Equal(t, &data[0], &n.Head[0])
}
