package dangerous

import (
	"bytes"
	"testing"
)

// TestGeneratedTables verifies every generated table against the
// predicate it was generated from, over all 256 byte values.
func TestGeneratedTables(t *testing.T) {
	cases := []struct {
		name  string
		class *ByteClass
		pred  func(byte) bool
	}{
		{"Digit", Digit, func(b byte) bool { return b >= '0' && b <= '9' }},
		{"Alpha", Alpha, func(b byte) bool {
			return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
		}},
		{"Alnum", Alnum, func(b byte) bool {
			return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
		}},
		{"HexDigit", HexDigit, func(b byte) bool {
			return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'F') || (b >= 'a' && b <= 'f')
		}},
		{"Whitespace", Whitespace, func(b byte) bool {
			return b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r' || b == ' '
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 256; i++ {
				b := byte(i)
				if tc.class.Contains(b) != tc.pred(b) {
					t.Fatalf("byte %#x: table %v, predicate %v", b, tc.class.Contains(b), tc.pred(b))
				}
			}
		})
	}
}

func TestByteClassOf(t *testing.T) {
	vowel := ByteClassOf(func(b byte) bool {
		return bytes.IndexByte([]byte("aeiou"), b) >= 0
	})
	for i := 0; i < 256; i++ {
		b := byte(i)
		want := bytes.IndexByte([]byte("aeiou"), b) >= 0
		if vowel.Contains(b) != want {
			t.Fatalf("byte %q: got %v want %v", b, vowel.Contains(b), want)
		}
	}
}

// TestTakeWhileInEquivalence verifies the accelerator is a pure
// performance substitution: TakeWhileIn consumes exactly what the
// equivalent TakeWhile would.
func TestTakeWhileInEquivalence(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("12345"),
		[]byte("123abc"),
		[]byte("abc123"),
		[]byte("\t \r\nx"),
		[]byte{0x00, 0xff, '7'},
	}
	pred := func(b byte) bool { return b >= '0' && b <= '9' }

	for _, in := range inputs {
		fast := NewReader(New(in, true))
		slow := NewReader(New(in, true))
		a := fast.TakeWhileIn(Digit)
		b := slow.TakeWhile(pred)
		if !bytes.Equal(a.AsDangerous(), b.AsDangerous()) || fast.Offset() != slow.Offset() {
			t.Fatalf("input %q: fast %q slow %q", in, a.AsDangerous(), b.AsDangerous())
		}
	}
}
