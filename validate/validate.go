// Package validate implements a pure structural pass over a bencode byte
// range: it confirms the range holds one well-formed value (and reports
// where that value ends) without building a tree. Adapted from the
// dataspace parser in internal/core/dataspace.go, which likewise walks a
// binary layout and returns an offset or an error without allocating or
// retaining anything.
package validate

import (
	"strconv"

	"github.com/scigolib/bencode/decode"
)

// Sentinel return values for Validate's result.
const (
	// ShortInput means the range could become valid with more bytes.
	ShortInput = -1
	// Malformed means the range can never become valid no matter how many
	// more bytes arrive.
	Malformed = -2
)

// Validate checks that data holds one complete, well-formed bencoded value
// starting at offset 0. On success it returns the offset just past that
// value (which may be less than len(data) if trailing bytes follow). On
// failure it returns ShortInput or Malformed.
func Validate(data []byte) int {
	if len(data) == 0 {
		return ShortInput
	}
	return validateValue(data, 0, 0)
}

func validateValue(data []byte, pos, depth int) int {
	if depth > decode.MaxDepth {
		return Malformed
	}
	if pos >= len(data) {
		return ShortInput
	}

	switch c := data[pos]; {
	case c == 'd':
		return validateDict(data, pos, depth)
	case c == 'l':
		return validateList(data, pos, depth)
	case c == 'i':
		return validateInteger(data, pos)
	case c >= '0' && c <= '9':
		return validateString(data, pos)
	default:
		return Malformed
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func validateInteger(data []byte, pos int) int {
	i := pos + 1
	if i >= len(data) {
		return ShortInput
	}

	negative := data[i] == '-'
	if negative {
		i++
		if i >= len(data) {
			return ShortInput
		}
	}

	digitsStart := i
	for i < len(data) && isDigit(data[i]) {
		i++
	}
	if i >= len(data) {
		return ShortInput
	}
	if data[i] != 'e' {
		return Malformed
	}

	digits := data[digitsStart:i]
	if len(digits) == 0 {
		return Malformed // "ie" or "i-e": empty body.
	}
	if len(digits) > 1 && digits[0] == '0' {
		return Malformed // leading zero, e.g. "i03e" or "i-03e".
	}
	if negative && len(digits) == 1 && digits[0] == '0' {
		return Malformed // "i-0e": decode accepts it, Validator does not.
	}

	return i + 1
}

func validateString(data []byte, pos int) int {
	i := pos
	for i < len(data) && isDigit(data[i]) {
		i++
	}
	if i >= len(data) {
		return ShortInput
	}
	if data[i] != ':' {
		return Malformed
	}

	length, err := strconv.ParseInt(string(data[pos:i]), 10, 64)
	if err != nil || length < 0 {
		return Malformed
	}

	payloadStart := i + 1
	if length > int64(len(data)-payloadStart) {
		return ShortInput
	}
	return payloadStart + int(length)
}

func validateList(data []byte, pos, depth int) int {
	p := pos + 1
	for {
		if p >= len(data) {
			return ShortInput
		}
		if data[p] == 'e' {
			return p + 1
		}
		next := validateValue(data, p, depth+1)
		if next < 0 {
			return next
		}
		p = next
	}
}

func validateDict(data []byte, pos, depth int) int {
	p := pos + 1
	for {
		if p >= len(data) {
			return ShortInput
		}
		if data[p] == 'e' {
			return p + 1
		}
		if !isDigit(data[p]) {
			return Malformed // dictionary key must be a string.
		}

		next := validateString(data, p)
		if next < 0 {
			return next
		}
		p = next

		if p >= len(data) {
			return ShortInput
		}
		if data[p] == 'e' {
			return Malformed // dangling key.
		}

		next2 := validateValue(data, p, depth+1)
		if next2 < 0 {
			return next2
		}
		p = next2
	}
}
