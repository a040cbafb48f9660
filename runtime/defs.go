// Package dangerous is a toolkit for safely parsing untrusted input.
//
// The package is built around three ideas:
//
//   - Input is an immutable window over a caller-owned buffer, tagged as
//     bound (complete) or unbound (more bytes may still arrive). Raw bytes
//     are reachable only through the explicitly named AsDangerous accessor.
//   - Reader is a cursor over an Input. Every primitive read checks bounds
//     before advancing and never fabricates bytes: whatever a read returns
//     is exactly the section of the buffer it consumed.
//   - Errors are a closed set of two kinds. A retryable error means the
//     input ran out and resubmitting with more bytes may succeed; a terminal
//     error means the input is malformed at a specific span and no amount of
//     additional data changes that.
//
// Parsers are ordinary functions from a Reader to a value. Combinators nest
// by plain function composition; Reader.Context annotates failures bubbling
// up through the nesting so terminal errors carry a readable backtrace.
//
// Streaming is layered on top: Drive and StreamParser re-run a parser over
// an accumulating buffer, growing it by at least the reported retry
// requirement between attempts. Correctness relies on parsers being pure
// functions of the buffer contents; no partial parse state is carried
// across attempts.
package dangerous

// Parser is the universal shape implemented by all parsers and
// combinators: read from r and return a value, or report why the
// input could not be read.
type Parser[T any] func(r *Reader) (T, error)

// Span is a byte range [Start, End) into the root buffer an Input was
// constructed over. Spans from the same parse attempt are directly
// comparable, which is what makes zero-copy extraction verifiable:
// a borrowed value's span indexes the caller's own buffer.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool { return s.Len() == 0 }

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Context describes one nested parsing expectation: the operation that
// was being attempted and the section of input it was attempted over.
type Context struct {
	// Operation is a short, lowercase description of the attempted
	// read, e.g. "read frame header".
	Operation string
	// Span is the remaining input at the point the operation began.
	Span Span
}
