package dangerous

// ByteClass is a 256-entry membership table over byte values, used by
// TakeWhileIn to scan simple byte-class prefixes without a predicate
// call per byte. Behavior is identical to the equivalent TakeWhile.
//
// The common classes (Digit, Alpha, ...) live in byteclass_tables.go,
// which tablegen generates; build ad-hoc classes with ByteClassOf.
type ByteClass struct {
	bits [4]uint64
}

// ByteClassOf builds a class containing every byte that satisfies
// pred. The predicate is evaluated once per byte value at build time,
// so the class is safe to share and reuse.
func ByteClassOf(pred func(byte) bool) *ByteClass {
	var c ByteClass
	for i := 0; i < 256; i++ {
		if pred(byte(i)) {
			c.bits[i>>6] |= 1 << (uint(i) & 63)
		}
	}
	return &c
}

// Contains reports whether b is a member of the class.
func (c *ByteClass) Contains(b byte) bool {
	return c.bits[b>>6]&(1<<(uint(b)&63)) != 0
}

// scan returns the length of the maximal prefix of raw whose bytes
// are members of the class.
func (c *ByteClass) scan(raw []byte) int {
	for i, b := range raw {
		if c.bits[b>>6]&(1<<(uint(b)&63)) == 0 {
			return i
		}
	}
	return len(raw)
}
