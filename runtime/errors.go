package dangerous

import (
	"bytes"
	"errors"
	"strconv"
)

// Error is the interface satisfied by all parse failures originating
// from this package.
//
// Failures come in exactly two kinds, and the split is what drives
// streaming control flow:
//
//   - retryable: the input ran out before the outcome could be
//     determined. Resubmitting the same prefix with more bytes
//     appended may succeed.
//   - terminal: the input is malformed at Span. No amount of
//     additional data changes the outcome, so retrying is pointless.
//
// A retryable failure can only arise against an unbound Input; the
// same shortfall against a bound Input is terminal by construction.
type Error interface {
	error

	// Retryable reports whether feeding more input could change
	// the outcome.
	Retryable() bool

	// RetryRequirement returns the additional input needed before
	// the next attempt. ok is false when the error is terminal.
	RetryRequirement() (requirement RetryRequirement, ok bool)
}

// Details is implemented by errors that carry enough information to
// produce a verbose report: the whole attempt input, the offending
// span, and the backtrace of enclosing expectations.
type Details interface {
	Error

	// Input returns the input for the attempt that failed.
	Input() Input
	// Operation names the primitive read that failed.
	Operation() string
	// Span returns the specific section of input that caused the
	// failure.
	Span() Span
	// ExpectedValue returns the exact value that was expected, if
	// the failure was an exact-value mismatch.
	ExpectedValue() ([]byte, bool)
	// Description is a short lowercase description of what went
	// wrong, without the operation or backtrace.
	Description() string
	// Backtrace returns the chain of contexts around the failure,
	// deepest expectation first.
	Backtrace() Backtrace
}

// IsRetryable reports whether err is a retryable parse failure.
// Errors that do not originate from this package are never retryable.
func IsRetryable(err error) bool {
	var e Error
	if errors.As(err, &e) {
		return e.Retryable()
	}
	return false
}

// ToRetryRequirement extracts the retry requirement from err.
// ok is false for terminal failures and foreign errors.
func ToRetryRequirement(err error) (RetryRequirement, bool) {
	var e Error
	if errors.As(err, &e) {
		return e.RetryRequirement()
	}
	return RetryRequirement{}, false
}

// RetryRequirement is the minimum number of additional bytes required
// before a retryable failure is worth re-attempting. The zero value
// means the exact amount is unspecified: supply at least one byte.
type RetryRequirement struct {
	more int
}

// AtLeast returns a requirement for n additional bytes. Values less
// than one collapse to the unspecified requirement.
func AtLeast(n int) RetryRequirement {
	if n < 1 {
		return RetryRequirement{}
	}
	return RetryRequirement{more: n}
}

// fromHadAndNeeded derives the requirement to continue when needed
// bytes were required and only had were present.
func fromHadAndNeeded(had, needed int) RetryRequirement {
	return AtLeast(needed - had)
}

// Count returns the required byte count, zero when unspecified.
func (rr RetryRequirement) Count() int { return rr.more }

// ContinueAfter returns the number of bytes the caller must append
// before retrying: Count, or one when unspecified.
func (rr RetryRequirement) ContinueAfter() int {
	if rr.more == 0 {
		return 1
	}
	return rr.more
}

// String implements fmt.Stringer.
func (rr RetryRequirement) String() string {
	if rr.more == 0 {
		return "at least 1 more byte"
	}
	return "at least " + byteCount(rr.more) + " more"
}

// failure holds the report fields shared by all concrete errors.
type failure struct {
	input     Input
	span      Span
	operation string
	stack     backtraceBuilder
}

func (f *failure) Input() Input         { return f.input }
func (f *failure) Span() Span           { return f.span }
func (f *failure) Operation() string    { return f.operation }
func (f *failure) Backtrace() Backtrace { return f.stack }

// pushContext is called by Reader.Context as the failure bubbles up.
func (f *failure) pushContext(c Context) { f.stack.push(c) }

// contextual is satisfied by errors whose backtrace can be extended
// while they propagate.
type contextual interface {
	pushContext(c Context)
}

// found returns the bytes the failing span covers.
func (f *failure) found() []byte {
	return f.input.root[f.span.Start:f.span.End]
}

func (f *failure) header() string {
	return "dangerous: error attempting to " + f.operation + ": "
}

// ExpectedLength reports that a length requirement over the input was
// not met: too few bytes for a read, or too many for a whole-buffer
// parse.
type ExpectedLength struct {
	failure
	min    int
	max    int
	hasMax bool
}

// Min returns the minimum length that was expected.
func (e *ExpectedLength) Min() int { return e.min }

// Max returns the maximum length that was expected, if one applies.
// A maximum makes the failure terminal: extra input cannot shrink.
func (e *ExpectedLength) Max() (int, bool) { return e.max, e.hasMax }

// IsExact reports whether an exact length was expected.
func (e *ExpectedLength) IsExact() bool { return e.hasMax && e.min == e.max }

// Error implements the error interface.
func (e *ExpectedLength) Error() string { return e.header() + e.Description() }

// Description implements Details.
func (e *ExpectedLength) Description() string {
	out := "found " + byteCount(e.span.Len()) + " when "
	switch {
	case e.hasMax && e.min == e.max:
		out += "exactly " + byteCount(e.min)
	case e.hasMax && e.min == 0:
		out += "at most " + byteCount(e.max)
	case e.hasMax:
		out += "at least " + byteCount(e.min) + " and at most " + byteCount(e.max)
	default:
		out += "at least " + byteCount(e.min)
	}
	return out + " was expected"
}

// ExpectedValue returns no value; length failures have none.
func (e *ExpectedLength) ExpectedValue() ([]byte, bool) { return nil, false }

// Retryable implements Error.
func (e *ExpectedLength) Retryable() bool {
	return !e.hasMax && !e.input.IsBound()
}

// RetryRequirement implements Error.
func (e *ExpectedLength) RetryRequirement() (RetryRequirement, bool) {
	if !e.Retryable() {
		return RetryRequirement{}, false
	}
	return fromHadAndNeeded(e.span.Len(), e.min), true
}

// ExpectedValue reports that an exact value was expected and something
// else was found.
type ExpectedValue struct {
	failure
	value []byte
}

// Value returns the exact bytes that were expected.
func (e *ExpectedValue) Value() []byte { return e.value }

// Error implements the error interface.
func (e *ExpectedValue) Error() string { return e.header() + e.Description() }

// Description implements Details.
func (e *ExpectedValue) Description() string {
	return "found a different value to the exact expected"
}

// ExpectedValue implements Details.
func (e *ExpectedValue) ExpectedValue() ([]byte, bool) { return e.value, true }

// Retryable implements Error. A mismatch is retryable only while the
// found bytes are a strict prefix of the expected value and the input
// may still grow; anything else is a terminal mismatch.
func (e *ExpectedValue) Retryable() bool {
	if e.input.IsBound() {
		return false
	}
	found := e.found()
	return len(found) < len(e.value) && bytes.HasPrefix(e.value, found)
}

// RetryRequirement implements Error.
func (e *ExpectedValue) RetryRequirement() (RetryRequirement, bool) {
	if !e.Retryable() {
		return RetryRequirement{}, false
	}
	return fromHadAndNeeded(e.span.Len(), len(e.value)), true
}

// ExpectedValid reports that a valid instance of a named construct was
// expected, e.g. "digit" or "utf-8 code point".
type ExpectedValid struct {
	failure
	expected  string
	retryable bool
}

// Expected returns the name of the construct that was expected.
func (e *ExpectedValid) Expected() string { return e.expected }

// Error implements the error interface.
func (e *ExpectedValid) Error() string { return e.header() + e.Description() }

// Description implements Details.
func (e *ExpectedValid) Description() string { return "invalid " + e.expected }

// ExpectedValue returns no value; validity failures have none.
func (e *ExpectedValid) ExpectedValue() ([]byte, bool) { return nil, false }

// Retryable implements Error.
func (e *ExpectedValid) Retryable() bool {
	return e.retryable && !e.input.IsBound()
}

// RetryRequirement implements Error. Validity failures never know how
// many bytes would complete the construct, so the requirement is
// always unspecified.
func (e *ExpectedValid) RetryRequirement() (RetryRequirement, bool) {
	if !e.Retryable() {
		return RetryRequirement{}, false
	}
	return RetryRequirement{}, true
}

// ErrNoProgress is returned by the retry engine when a byte source
// reports neither new data nor end-of-data, which would otherwise
// loop forever.
var ErrNoProgress = errors.New("dangerous: byte source returned no data and no end-of-data")

// byteCount formats n for error messages.
func byteCount(n int) string {
	switch n {
	case 0:
		return "no bytes"
	case 1:
		return "1 byte"
	default:
		return strconv.Itoa(n) + " bytes"
	}
}
