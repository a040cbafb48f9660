package dangerous

// Input is an immutable view over a section of a caller-owned buffer,
// tagged as bound (known complete) or unbound (more bytes may arrive).
//
// Every Input derived from another (via SplitAt or a Reader primitive)
// is a window over the same backing storage with the same bound flag;
// nothing is ever copied. Offsets reported by Span index the buffer the
// root Input was constructed over.
type Input struct {
	root  []byte
	start int
	end   int
	bound bool
}

// New constructs an Input over b. bound declares whether b is the
// complete input: pass false when parsing a stream that may still
// grow, true when the buffer is all there will ever be.
//
// The buffer is borrowed, not copied. It must not be mutated while any
// Input, Reader, or value extracted from it is still in use.
func New(b []byte, bound bool) Input {
	return Input{root: b, end: len(b), bound: bound}
}

// NewString constructs a bound or unbound Input over the bytes of s.
func NewString(s string, bound bool) Input {
	return New([]byte(s), bound)
}

// AsDangerous returns the raw, unvalidated bytes of the view.
//
// The name is deliberate: this is the single escape hatch from the
// checked Reader primitives, and call sites should be treated as
// danger acknowledgements in review. The returned slice aliases the
// root buffer; do not mutate it.
func (in Input) AsDangerous() []byte { return in.root[in.start:in.end] }

// IsBound reports whether the input is known complete. Errors raised
// against a bound Input are never retryable.
func (in Input) IsBound() bool { return in.bound }

// Len returns the number of bytes in the view.
func (in Input) Len() int { return in.end - in.start }

// IsEmpty reports whether the view covers no bytes.
func (in Input) IsEmpty() bool { return in.Len() == 0 }

// Span returns the byte range this view covers within the root buffer.
func (in Input) Span() Span { return Span{Start: in.start, End: in.end} }

// IsWithin reports whether s lies entirely within this view.
func (in Input) IsWithin(s Span) bool { return in.Span().Contains(s) }

// Bound returns a copy of the view tagged as complete, for callers
// that learn the byte source is out of data after constructing the
// view. Failures raised against the copy are terminal.
func (in Input) Bound() Input {
	in.bound = true
	return in
}

// SplitAt splits the view at pos, returning the leading and trailing
// halves. Both halves share the backing buffer and bound flag. If
// fewer than pos bytes are present the error is retryable on an
// unbound input and terminal on a bound one.
func (in Input) SplitAt(pos int) (Input, Input, error) {
	if pos < 0 {
		panic("dangerous: negative split position")
	}
	if pos > in.Len() {
		return Input{}, Input{}, &ExpectedLength{
			failure: failure{
				input:     in,
				span:      in.Span(),
				operation: "split input",
				stack:     newBacktrace(false),
			},
			min: pos,
		}
	}
	head := in
	head.end = in.start + pos
	tail := in
	tail.start = in.start + pos
	return head, tail, nil
}

// slice returns the sub-view [a, b) of in, in view-relative offsets.
// Callers must have bounds-checked a and b already.
func (in Input) slice(a, b int) Input {
	if a < 0 || b > in.Len() || a > b {
		panic("dangerous: slice outside checked bounds")
	}
	out := in
	out.start = in.start + a
	out.end = in.start + b
	return out
}
