package dangerous

import "bytes"

// Reader is a cursor over an Input for the duration of one parse
// attempt. Primitives are atomic: a failed read leaves the position
// exactly where it was.
//
// A Reader is used by one logical call stack at a time and is
// discarded when the attempt returns; independent parses over
// independent buffers need no coordination.
type Reader struct {
	input    Input
	cur      int // absolute offset into input's root buffer
	rootOnly bool
}

// NewReader constructs a Reader positioned at the start of in.
func NewReader(in Input) *Reader {
	return &Reader{input: in, cur: in.start}
}

// SetMinimalBacktrace controls the context accumulation strategy for
// errors raised through this Reader. When enabled, errors retain only
// the deepest context in constant space instead of the full chain.
func (r *Reader) SetMinimalBacktrace(on bool) { r.rootOnly = on }

// Input returns the whole input for this attempt.
func (r *Reader) Input() Input { return r.input }

// Remaining returns the unread portion of the input.
func (r *Reader) Remaining() Input {
	rem := r.input
	rem.start = r.cur
	return rem
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.cur - r.input.start }

// AtEnd reports whether all input has been consumed. On an unbound
// input this only means no more bytes have arrived yet.
func (r *Reader) AtEnd() bool { return r.cur == r.input.end }

// Take consumes and returns the next n bytes. With fewer than n bytes
// left the failure is retryable on an unbound input, requiring the
// shortfall, and terminal on a bound one.
func (r *Reader) Take(n int) (Input, error) {
	return r.take(n, "take input")
}

// Peek returns the next n bytes without consuming them, with the same
// shortfall semantics as Take.
func (r *Reader) Peek(n int) (Input, error) {
	rem := r.Remaining()
	if n > rem.Len() {
		return Input{}, r.lengthError("peek input", n, rem)
	}
	return rem.slice(0, n), nil
}

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	rem := r.Remaining()
	if rem.IsEmpty() {
		return 0, r.lengthError("peek byte", 1, rem)
	}
	return rem.AsDangerous()[0], nil
}

// Skip discards the next n bytes, with the same shortfall semantics
// as Take.
func (r *Reader) Skip(n int) error {
	_, err := r.take(n, "skip input")
	return err
}

// TakeWhile consumes the maximal prefix whose bytes satisfy pred.
// A zero-length match is success; TakeWhile never fails.
func (r *Reader) TakeWhile(pred func(byte) bool) Input {
	rem := r.Remaining()
	raw := rem.AsDangerous()
	n := len(raw)
	for i, b := range raw {
		if !pred(b) {
			n = i
			break
		}
	}
	r.cur += n
	return rem.slice(0, n)
}

// SkipWhile discards the maximal prefix whose bytes satisfy pred and
// returns how many bytes were discarded.
func (r *Reader) SkipWhile(pred func(byte) bool) int {
	return r.TakeWhile(pred).Len()
}

// TakeWhileIn is TakeWhile over a ByteClass membership table. It is a
// performance substitution with identical observable behavior.
func (r *Reader) TakeWhileIn(c *ByteClass) Input {
	rem := r.Remaining()
	n := c.scan(rem.AsDangerous())
	r.cur += n
	return rem.slice(0, n)
}

// SkipWhileIn discards the maximal prefix of bytes in c.
func (r *Reader) SkipWhileIn(c *ByteClass) int {
	return r.TakeWhileIn(c).Len()
}

// TakeRemaining consumes and returns everything left.
func (r *Reader) TakeRemaining() Input {
	rem := r.Remaining()
	r.cur = r.input.end
	return rem
}

// Consume reads and discards the exact value. When the remaining
// input is a strict prefix of value and may still grow, the failure
// is retryable; any other mismatch is terminal.
func (r *Reader) Consume(value []byte) error {
	rem := r.Remaining()
	if rem.Len() >= len(value) && bytes.Equal(rem.slice(0, len(value)).AsDangerous(), value) {
		r.cur += len(value)
		return nil
	}
	found := len(value)
	if found > rem.Len() {
		found = rem.Len()
	}
	return &ExpectedValue{
		failure: r.failure("consume input", rem.slice(0, found).Span()),
		value:   value,
	}
}

// ConsumeByte reads and discards the exact byte b.
func (r *Reader) ConsumeByte(b byte) error {
	return r.Consume([]byte{b})
}

// ConsumeString reads and discards the exact bytes of value.
func (r *Reader) ConsumeString(value string) error {
	return r.Consume([]byte(value))
}

// Context invokes fn, annotating any failure it raises with label and
// the span of the remaining input at the point of invocation. The
// annotation is prepended as the failure bubbles up, so outer calls
// contribute the outer entries of the backtrace.
func (r *Reader) Context(label string, fn func(r *Reader) error) error {
	span := r.Remaining().Span()
	err := fn(r)
	if err != nil {
		if ce, ok := err.(contextual); ok {
			ce.pushContext(Context{Operation: label, Span: span})
		}
	}
	return err
}

// Verify runs fn and requires it to report success. On failure the
// cursor is restored and the error is a validity failure for the
// named construct, spanning whatever fn consumed before rejecting.
func (r *Reader) Verify(expected string, fn func(r *Reader) bool) error {
	mark := r.cur
	if fn(r) {
		return nil
	}
	span := Span{Start: mark, End: r.cur}
	r.cur = mark
	if span.IsEmpty() {
		return r.Expected(expected)
	}
	return r.ExpectedSpan(expected, span)
}

// TryExpect runs fn, treating a false report as a validity failure
// for the named construct with Verify's restore semantics.
func TryExpect[T any](r *Reader, expected string, fn func(r *Reader) (T, bool)) (T, error) {
	mark := r.cur
	v, ok := fn(r)
	if ok {
		return v, nil
	}
	var zero T
	span := Span{Start: mark, End: r.cur}
	r.cur = mark
	if span.IsEmpty() {
		return zero, r.Expected(expected)
	}
	return zero, r.ExpectedSpan(expected, span)
}

// WithContext runs p under a context label, forwarding its value.
func WithContext[T any](r *Reader, label string, p Parser[T]) (T, error) {
	var out T
	err := r.Context(label, func(r *Reader) error {
		var err error
		out, err = p(r)
		return err
	})
	return out, err
}

// Expected reports that a valid instance of the named construct was
// required at the current position. At the end of an unbound input
// the failure is retryable with an unspecified requirement, since the
// construct might begin with the next byte; otherwise it is terminal
// with the span pinned on the offending byte.
func (r *Reader) Expected(what string) error {
	rem := r.Remaining()
	if rem.IsEmpty() {
		return &ExpectedValid{
			failure:   r.failure("read "+what, rem.Span()),
			expected:  what,
			retryable: true,
		}
	}
	return &ExpectedValid{
		failure:  r.failure("read "+what, rem.slice(0, 1).Span()),
		expected: what,
	}
}

// ExpectedSpan is Expected with the offending span supplied by the
// caller, for validators that consumed input before discovering it
// was invalid. The failure is always terminal.
func (r *Reader) ExpectedSpan(what string, span Span) error {
	if !r.input.IsWithin(span) {
		panic("dangerous: expected span outside input")
	}
	return &ExpectedValid{
		failure:  r.failure("read "+what, span),
		expected: what,
	}
}

// take consumes n bytes on behalf of the named operation.
func (r *Reader) take(n int, op string) (Input, error) {
	if n < 0 {
		panic("dangerous: negative read length")
	}
	rem := r.Remaining()
	if n > rem.Len() {
		return Input{}, r.lengthError(op, n, rem)
	}
	out := rem.slice(0, n)
	r.cur += n
	return out, nil
}

// lengthError builds the shortfall failure for op: min bytes were
// required, rem is what was left.
func (r *Reader) lengthError(op string, min int, rem Input) error {
	return &ExpectedLength{
		failure: r.failure(op, rem.Span()),
		min:     min,
	}
}

func (r *Reader) failure(op string, span Span) failure {
	return failure{
		input:     r.input,
		span:      span,
		operation: op,
		stack:     newBacktrace(r.rootOnly),
	}
}
