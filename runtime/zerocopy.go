package dangerous

import "unsafe"

// Zero-copy output contract.
//
// A value extracted straight from the source is an Input: a window
// into the caller's root buffer, valid as long as that buffer is.
// A value that had to be computed (concatenated, unescaped, decoded)
// cannot borrow, and is tagged as owned so callers can see which one
// they are holding. MaybeOwned makes that distinction explicit in the
// type rather than leaving it to documentation.

// MaybeOwned is either a borrow into the root buffer or an owned
// byte slice produced by a computation.
type MaybeOwned struct {
	borrowed Input
	owned    []byte
	isOwned  bool
}

// Borrowed wraps a zero-copy window over the source buffer.
func Borrowed(in Input) MaybeOwned {
	return MaybeOwned{borrowed: in}
}

// Owned wraps a computed value that does not alias the source.
func Owned(b []byte) MaybeOwned {
	return MaybeOwned{owned: b, isOwned: true}
}

// IsOwned reports whether the value was computed rather than
// borrowed from the source buffer.
func (m MaybeOwned) IsOwned() bool { return m.isOwned }

// Bytes returns the value. For a borrowed value the slice aliases the
// root buffer and must not outlive it; for an owned value the slice
// is independent.
func (m MaybeOwned) Bytes() []byte {
	if m.isOwned {
		return m.owned
	}
	return m.borrowed.AsDangerous()
}

// Span returns the source range a borrowed value occupies. ok is
// false for owned values, which occupy no source range.
func (m MaybeOwned) Span() (Span, bool) {
	if m.isOwned {
		return Span{}, false
	}
	return m.borrowed.Span(), true
}

// String returns the value as a freshly allocated string.
func (m MaybeOwned) String() string { return string(m.Bytes()) }

// UnsafeString returns a string sharing the value's backing memory.
// For borrowed values that memory is the caller's root buffer, which
// must stay immutable for the lifetime of the string.
func (m MaybeOwned) UnsafeString() string {
	b := m.Bytes()
	return *(*string)(unsafe.Pointer(&b))
}

// Concat joins consecutive windows into one value. A single part (or
// adjacent parts forming one contiguous range) stays a borrow; any
// gap forces an owned copy, since the source holds no contiguous
// representation of the result.
func Concat(parts ...Input) MaybeOwned {
	switch len(parts) {
	case 0:
		return Borrowed(Input{})
	case 1:
		return Borrowed(parts[0])
	}
	contiguous := true
	for i := 1; i < len(parts); i++ {
		if parts[i].start != parts[i-1].end ||
			unsafe.SliceData(parts[i].root) != unsafe.SliceData(parts[0].root) {
			contiguous = false
			break
		}
	}
	if contiguous {
		joined := parts[0]
		joined.end = parts[len(parts)-1].end
		return Borrowed(joined)
	}
	total := 0
	for _, p := range parts {
		total += p.Len()
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p.AsDangerous()...)
	}
	return Owned(out)
}
