package decode

// MaxDepth bounds container nesting during decode and validate. The
// original C source relies on the platform call stack with no explicit
// limit; this port documents one instead of letting recursion run until an
// unrelated resource limit kicks in. 512 comfortably covers nesting to
// depth 100 and beyond, with headroom for pathological input.
const MaxDepth = 512

// ErrTooDeep is wrapped into the error Decode returns when a container
// nests past MaxDepth; check for it with errors.Is.
type ErrTooDeep struct{}

func (ErrTooDeep) Error() string {
	return "bencode: nesting exceeds maximum depth"
}
