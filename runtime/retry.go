package dangerous

import "io"

// Parse runs p over in from the start and returns its value along
// with the unconsumed remainder. The remainder is a view sharing in's
// backing buffer, ready to be parsed as the next logical unit.
func Parse[T any](in Input, p Parser[T]) (T, Input, error) {
	r := NewReader(in)
	v, err := p(r)
	if err != nil {
		var zero T
		return zero, Input{}, err
	}
	return v, r.Remaining(), nil
}

// ParseAll runs p over in and requires it to consume everything.
// Trailing bytes are a terminal failure spanning the leftover input.
func ParseAll[T any](in Input, p Parser[T]) (T, error) {
	v, rem, err := Parse(in, p)
	if err != nil {
		var zero T
		return zero, err
	}
	if !rem.IsEmpty() {
		var zero T
		return zero, &ExpectedLength{
			failure: failure{
				input:     in,
				span:      rem.Span(),
				operation: "parse all input",
				stack:     newBacktrace(false),
			},
			hasMax: true,
		}
	}
	return v, nil
}

// Pump supplies bytes to Drive between attempts. needed is the
// minimum total byte count (always at least one) that must be
// appended before the next attempt is worth making; the pump may
// return less per call and will simply be called again. io.EOF
// signals the source is permanently out of data.
type Pump func(needed int) ([]byte, error)

// Drive runs p to completion over a growing buffer fed by pump.
//
// Each attempt re-parses an unbound view of the accumulated buffer
// from the start; p must therefore be a pure function of the buffer
// contents. A retryable failure pumps at least the reported
// requirement and tries again. When the pump reports io.EOF the final
// attempt runs against a bound view, so a still-outstanding shortfall
// surfaces as the terminal unexpected-end-of-input failure instead of
// a retry. Terminal failures abandon the parse immediately.
//
// On success Drive returns the value and the unconsumed trailing
// bytes. Pump errors other than io.EOF are returned unchanged.
func Drive[T any](p Parser[T], pump Pump) (T, []byte, error) {
	var (
		buf   []byte
		bound bool
		zero  T
	)
	for {
		v, rem, err := Parse(New(buf, bound), p)
		if err == nil {
			return v, rem.AsDangerous(), nil
		}
		rr, ok := ToRetryRequirement(err)
		if !ok {
			return zero, buf, err
		}
		want := rr.ContinueAfter()
		for got := 0; got < want; {
			chunk, perr := pump(want - got)
			if len(chunk) > 0 {
				buf = append(buf, chunk...)
				got += len(chunk)
			}
			if perr == io.EOF {
				bound = true
				break
			}
			if perr != nil {
				return zero, buf, perr
			}
			if len(chunk) == 0 {
				return zero, buf, ErrNoProgress
			}
		}
	}
}

// StreamParser parses a stream of records: one parser re-applied to
// an accumulating buffer, with the unconsumed remainder carried over
// between records.
//
// The zero-copy contract holds across Feed calls: the internal buffer
// is never compacted in place, so values borrowed from earlier
// records stay valid for the life of the StreamParser.
type StreamParser[T any] struct {
	p      Parser[T]
	buf    []byte
	bound  bool
	closed bool
}

// NewStreamParser returns a StreamParser applying p per record.
func NewStreamParser[T any](p Parser[T]) *StreamParser[T] {
	return &StreamParser[T]{p: p}
}

// Feed appends a chunk from the byte source. Feeding after Close is
// a caller defect.
func (s *StreamParser[T]) Feed(chunk []byte) {
	if s.closed {
		panic("dangerous: Feed after Close")
	}
	s.buf = append(s.buf, chunk...)
}

// Close marks the source as permanently out of data. Subsequent
// attempts run against bound input, so shortfalls become terminal.
func (s *StreamParser[T]) Close() {
	s.closed = true
	s.bound = true
}

// Buffered returns the number of bytes awaiting consumption.
func (s *StreamParser[T]) Buffered() int { return len(s.buf) }

// Next parses the next record from the buffered bytes.
//
// A retryable failure means the caller should Feed at least the
// error's retry requirement and call Next again; the buffered prefix
// is untouched. io.EOF is returned once the source is closed and the
// buffer fully consumed.
func (s *StreamParser[T]) Next() (T, error) {
	var zero T
	if s.bound && len(s.buf) == 0 {
		return zero, io.EOF
	}
	v, rem, err := Parse(New(s.buf, s.bound), s.p)
	if err != nil {
		return zero, err
	}
	// Reslice rather than copy so previously returned borrows keep
	// pointing at valid memory.
	s.buf = s.buf[len(s.buf)-rem.Len():]
	return v, nil
}
