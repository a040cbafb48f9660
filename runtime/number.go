package dangerous

import "encoding/binary"

// Fixed-width integer reads. Each consumes exactly the encoded width;
// a shortfall follows Take semantics (retryable on unbound input with
// the missing byte count, terminal on bound input).

// ReadU8 reads one byte as a uint8.
func (r *Reader) ReadU8() (uint8, error) {
	w, err := r.take(1, "read u8")
	if err != nil {
		return 0, err
	}
	return w.AsDangerous()[0], nil
}

// ReadU16LE reads a little-endian uint16.
func (r *Reader) ReadU16LE() (uint16, error) {
	w, err := r.take(2, "read u16-le")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(w.AsDangerous()), nil
}

// ReadU16BE reads a big-endian uint16.
func (r *Reader) ReadU16BE() (uint16, error) {
	w, err := r.take(2, "read u16-be")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(w.AsDangerous()), nil
}

// ReadU32LE reads a little-endian uint32.
func (r *Reader) ReadU32LE() (uint32, error) {
	w, err := r.take(4, "read u32-le")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(w.AsDangerous()), nil
}

// ReadU32BE reads a big-endian uint32.
func (r *Reader) ReadU32BE() (uint32, error) {
	w, err := r.take(4, "read u32-be")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(w.AsDangerous()), nil
}

// ReadU64LE reads a little-endian uint64.
func (r *Reader) ReadU64LE() (uint64, error) {
	w, err := r.take(8, "read u64-le")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(w.AsDangerous()), nil
}

// ReadU64BE reads a big-endian uint64.
func (r *Reader) ReadU64BE() (uint64, error) {
	w, err := r.take(8, "read u64-be")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(w.AsDangerous()), nil
}
