package dangerous

import "sync"

// Pooled byte buffer used by the display renderer.
//
// Guidelines:
//   - Put returns the buffer reset; there is no need to Reset before Put.
//   - Use Ensure(n) to grow capacity up-front when the final size is known.

type ByteBuffer struct {
	b []byte
}

var bbPool = sync.Pool{New: func() any { return &ByteBuffer{b: make([]byte, 0, 1024)} }}

// GetByteBuffer obtains a pooled ByteBuffer with zero length.
func GetByteBuffer() *ByteBuffer {
	bb := bbPool.Get().(*ByteBuffer)
	bb.Reset()
	return bb
}

// PutByteBuffer resets the buffer and returns it to the pool.
func PutByteBuffer(bb *ByteBuffer) { bb.Reset(); bbPool.Put(bb) }

// Bytes returns the underlying bytes.
func (bb *ByteBuffer) Bytes() []byte { return bb.b }

// Len returns the current length.
func (bb *ByteBuffer) Len() int { return len(bb.b) }

// Reset truncates to zero length; capacity is kept.
func (bb *ByteBuffer) Reset() { bb.b = bb.b[:0] }

// Ensure grows capacity so n more bytes can be appended without
// reallocation.
func (bb *ByteBuffer) Ensure(n int) {
	need := len(bb.b) + n
	if cap(bb.b) >= need {
		return
	}
	c := cap(bb.b)
	if c == 0 {
		c = 1024
	}
	for c < need {
		c <<= 1
	}
	nb := make([]byte, len(bb.b), c)
	copy(nb, bb.b)
	bb.b = nb
}

// Extend grows the buffer by n bytes and returns the newly appended
// region for direct writes.
func (bb *ByteBuffer) Extend(n int) []byte {
	old := len(bb.b)
	bb.Ensure(n)
	bb.b = bb.b[:old+n]
	return bb.b[old:]
}

// Write implements io.Writer.
func (bb *ByteBuffer) Write(p []byte) (int, error) {
	bb.Ensure(len(p))
	bb.b = append(bb.b, p...)
	return len(p), nil
}

// WriteString appends a string.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.Ensure(len(s))
	bb.b = append(bb.b, s...)
	return len(s), nil
}

// WriteByte appends a single byte.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.Ensure(1)
	bb.b = append(bb.b, c)
	return nil
}
