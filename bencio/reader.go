// Package bencio reads a single bencoded value out of an io.ReaderAt,
// adapted from the ReaderAt-staged reads in internal/utils/endian.go's
// ReadUint64. This is not incremental/streaming decode, it is staged
// buffering followed by exactly one call to decode.Decode — but it lets a
// caller holding a file or other random-access source avoid reading the
// whole thing up front when only the leading value is wanted.
package bencio

import (
	"fmt"
	"io"

	"github.com/scigolib/bencode/arena"
	"github.com/scigolib/bencode/decode"
	"github.com/scigolib/bencode/node"
	"github.com/scigolib/bencode/validate"
)

// errAt formats a context string for the offset a read/decode failure
// occurred at, for use with arena.WrapError.
func errAt(verb string, offset int64) string {
	return fmt.Sprintf("bencio: %s at offset %d", verb, offset)
}

const (
	initialReadSize = 512
	maxReadSize     = 64 << 20 // 64 MiB
)

// ReadValueAt reads and decodes the single bencoded value starting at
// offset in r. It grows its trial read by doubling until validate.Validate
// reports a complete value, reports Malformed, or the read size exceeds
// maxReadSize. On success it returns the decoded Node (allocated from a)
// and the host-owned raw bytes the Node's String/Integer segments borrow
// from; the caller must keep that slice alive at least as long as it uses
// the Node.
func ReadValueAt(a *arena.Arena, r io.ReaderAt, offset int64) (*node.Node, []byte, error) {
	size := initialReadSize
	for {
		trial := arena.GetScratch(size)
		n, readErr := r.ReadAt(trial, offset)
		data := trial[:n]

		switch v := validate.Validate(data); {
		case v == validate.Malformed:
			arena.ReleaseScratch(trial)
			return nil, nil, fmt.Errorf("bencio: malformed bencode at offset %d", offset)

		case v >= 0:
			out := make([]byte, v)
			copy(out, data[:v])
			arena.ReleaseScratch(trial)
			n, err := decode.Decode(a, out)
			if err != nil {
				return nil, nil, arena.WrapError(errAt("decoding", offset), err)
			}
			return n, out, nil

		default: // validate.ShortInput
			arena.ReleaseScratch(trial)
			if readErr != nil && readErr != io.EOF {
				return nil, nil, arena.WrapError(errAt("reading", offset), readErr)
			}
			if readErr == io.EOF && n < size {
				return nil, nil, fmt.Errorf("bencio: short input at offset %d", offset)
			}
			size *= 2
			if size > maxReadSize {
				return nil, nil, fmt.Errorf("bencio: value at offset %d exceeds %d bytes", offset, maxReadSize)
			}
		}
	}
}
