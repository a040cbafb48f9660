package dangerous

import (
	"bytes"
	"errors"
	"testing"
)

func TestTake(t *testing.T) {
	r := NewReader(New([]byte("hello world"), true))

	w, err := r.Take(5)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(w.AsDangerous(), []byte("hello")) {
		t.Fatalf("take: got %q", w.AsDangerous())
	}
	if w.Span() != (Span{0, 5}) {
		t.Fatalf("take span: got %v", w.Span())
	}
	if r.Offset() != 5 {
		t.Fatalf("offset: got %d", r.Offset())
	}
}

// TestTakeAtomic verifies that a failed read leaves the cursor where
// it was.
func TestTakeAtomic(t *testing.T) {
	r := NewReader(New([]byte("abc"), false))
	if err := r.Skip(2); err != nil {
		t.Fatal(err)
	}

	_, err := r.Take(10)
	rr, ok := ToRetryRequirement(err)
	if !ok {
		t.Fatalf("expected retryable, got %v", err)
	}
	if rr.Count() != 9 {
		t.Fatalf("needed: got %d want 9", rr.Count())
	}
	if r.Offset() != 2 {
		t.Fatalf("cursor moved on failure: offset %d", r.Offset())
	}

	// The remaining byte is still readable.
	w, err := r.Take(1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(w.AsDangerous(), []byte("c")) {
		t.Fatalf("got %q", w.AsDangerous())
	}
}

func TestTakeShortfall(t *testing.T) {
	cases := []struct {
		name      string
		in        Input
		n         int
		retryable bool
		needed    int
	}{
		{"unbound short", New([]byte("ab"), false), 5, true, 3},
		{"unbound empty", New(nil, false), 1, true, 1},
		{"bound short", New([]byte("ab"), true), 5, false, 0},
		{"bound empty", New(nil, true), 1, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReader(tc.in).Take(tc.n)
			if err == nil {
				t.Fatal("expected error")
			}
			if IsRetryable(err) != tc.retryable {
				t.Fatalf("retryable: got %v want %v", IsRetryable(err), tc.retryable)
			}
			if tc.retryable {
				rr, _ := ToRetryRequirement(err)
				if rr.Count() != tc.needed {
					t.Fatalf("needed: got %d want %d", rr.Count(), tc.needed)
				}
			}
		})
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	r := NewReader(New([]byte("abcd"), true))
	w, err := r.Peek(2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(w.AsDangerous(), []byte("ab")) {
		t.Fatalf("peek: got %q", w.AsDangerous())
	}
	if r.Offset() != 0 {
		t.Fatalf("peek advanced cursor to %d", r.Offset())
	}

	b, err := r.PeekByte()
	if err != nil || b != 'a' {
		t.Fatalf("peek byte: %c %v", b, err)
	}
}

func TestTakeWhile(t *testing.T) {
	r := NewReader(New([]byte("123abc"), true))

	digits := r.TakeWhile(func(b byte) bool { return b >= '0' && b <= '9' })
	if !bytes.Equal(digits.AsDangerous(), []byte("123")) {
		t.Fatalf("got %q", digits.AsDangerous())
	}

	// Zero-length match is success.
	none := r.TakeWhile(func(b byte) bool { return b == 'x' })
	if !none.IsEmpty() {
		t.Fatalf("expected empty match, got %q", none.AsDangerous())
	}
	if r.Offset() != 3 {
		t.Fatalf("offset: got %d", r.Offset())
	}

	rest := r.TakeWhile(func(byte) bool { return true })
	if !bytes.Equal(rest.AsDangerous(), []byte("abc")) {
		t.Fatalf("got %q", rest.AsDangerous())
	}
	if !r.AtEnd() {
		t.Fatal("expected end")
	}
}

func TestConsume(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		r := NewReader(New([]byte("GET /"), true))
		if err := r.Consume([]byte("GET ")); err != nil {
			t.Fatal(err)
		}
		if r.Offset() != 4 {
			t.Fatalf("offset: got %d", r.Offset())
		}
	})

	t.Run("prefix of expected on unbound input retries", func(t *testing.T) {
		r := NewReader(New([]byte("GE"), false))
		err := r.Consume([]byte("GET "))
		rr, ok := ToRetryRequirement(err)
		if !ok {
			t.Fatalf("expected retryable, got %v", err)
		}
		if rr.Count() != 2 {
			t.Fatalf("needed: got %d want 2", rr.Count())
		}
		if r.Offset() != 0 {
			t.Fatal("cursor moved on failure")
		}
	})

	t.Run("prefix of expected on bound input is terminal", func(t *testing.T) {
		r := NewReader(New([]byte("GE"), true))
		err := r.Consume([]byte("GET "))
		if IsRetryable(err) {
			t.Fatalf("expected terminal, got %v", err)
		}
	})

	t.Run("mismatch is terminal even when unbound", func(t *testing.T) {
		r := NewReader(New([]byte("PO"), false))
		err := r.Consume([]byte("GET "))
		if IsRetryable(err) {
			t.Fatalf("expected terminal, got %v", err)
		}
		var ev *ExpectedValue
		if !errors.As(err, &ev) {
			t.Fatalf("expected ExpectedValue, got %T", err)
		}
		if !bytes.Equal(ev.Value(), []byte("GET ")) {
			t.Fatalf("value: got %q", ev.Value())
		}
	})
}

func TestConsumeByte(t *testing.T) {
	r := NewReader(New([]byte(",x"), true))
	if err := r.ConsumeByte(','); err != nil {
		t.Fatal(err)
	}
	if err := r.ConsumeByte(','); err == nil {
		t.Fatal("expected mismatch")
	}
}

func TestExpected(t *testing.T) {
	t.Run("at end of unbound input retries", func(t *testing.T) {
		r := NewReader(New([]byte("ab"), false))
		r.TakeRemaining()
		err := r.Expected("digit")
		rr, ok := ToRetryRequirement(err)
		if !ok {
			t.Fatalf("expected retryable, got %v", err)
		}
		if rr.Count() != 0 || rr.ContinueAfter() != 1 {
			t.Fatalf("requirement: %v", rr)
		}
	})

	t.Run("mid input pins the offending byte", func(t *testing.T) {
		r := NewReader(New([]byte("12x"), true))
		r.TakeWhileIn(Digit)
		err := r.Expected("digit")
		if IsRetryable(err) {
			t.Fatal("expected terminal")
		}
		var ev *ExpectedValid
		if !errors.As(err, &ev) {
			t.Fatalf("got %T", err)
		}
		if ev.Span() != (Span{2, 3}) {
			t.Fatalf("span: got %v", ev.Span())
		}
		if ev.Expected() != "digit" {
			t.Fatalf("expected: got %q", ev.Expected())
		}
	})
}

func TestVerify(t *testing.T) {
	t.Run("success keeps consumption", func(t *testing.T) {
		r := NewReader(New([]byte("abc1"), true))
		err := r.Verify("letters", func(r *Reader) bool {
			return r.TakeWhileIn(Alpha).Len() == 3
		})
		if err != nil {
			t.Fatal(err)
		}
		if r.Offset() != 3 {
			t.Fatalf("offset: got %d", r.Offset())
		}
	})

	t.Run("failure restores cursor and spans consumed bytes", func(t *testing.T) {
		r := NewReader(New([]byte("ab1"), true))
		err := r.Verify("three letters", func(r *Reader) bool {
			return r.TakeWhileIn(Alpha).Len() == 3
		})
		if err == nil || IsRetryable(err) {
			t.Fatalf("expected terminal, got %v", err)
		}
		var ev *ExpectedValid
		if !errors.As(err, &ev) {
			t.Fatalf("got %T", err)
		}
		if ev.Span() != (Span{0, 2}) {
			t.Fatalf("span: got %v", ev.Span())
		}
		if r.Offset() != 0 {
			t.Fatal("cursor not restored")
		}
	})

	t.Run("nothing consumed at end of unbound input retries", func(t *testing.T) {
		r := NewReader(New(nil, false))
		err := r.Verify("letter", func(r *Reader) bool {
			return r.TakeWhileIn(Alpha).Len() > 0
		})
		if !IsRetryable(err) {
			t.Fatalf("expected retryable, got %v", err)
		}
	})
}

func TestTryExpect(t *testing.T) {
	digits := func(r *Reader) (Input, bool) {
		d := r.TakeWhileIn(Digit)
		return d, !d.IsEmpty()
	}

	r := NewReader(New([]byte("42x"), true))
	v, err := TryExpect(r, "number", digits)
	if err != nil {
		t.Fatal(err)
	}
	if string(v.AsDangerous()) != "42" {
		t.Fatalf("got %q", v.AsDangerous())
	}

	_, err = TryExpect(r, "number", digits)
	if err == nil || IsRetryable(err) {
		t.Fatalf("expected terminal, got %v", err)
	}
	var ev *ExpectedValid
	if !errors.As(err, &ev) {
		t.Fatalf("got %T", err)
	}
	if ev.Expected() != "number" {
		t.Fatalf("expected label: %q", ev.Expected())
	}
	if r.Offset() != 2 {
		t.Fatal("cursor moved on failure")
	}
}

// parsePair reads "digits ',' digits" consuming the whole input, the
// grammar used by the streaming scenario tests.
func parsePair(r *Reader) ([2]Input, error) {
	var out [2]Input
	err := r.Context("read pair", func(r *Reader) error {
		if err := r.Context("read first number", func(r *Reader) error {
			out[0] = r.TakeWhileIn(Digit)
			if out[0].IsEmpty() {
				return r.Expected("digit")
			}
			return nil
		}); err != nil {
			return err
		}
		if err := r.ConsumeByte(','); err != nil {
			return err
		}
		return r.Context("read second number", func(r *Reader) error {
			out[1] = r.TakeWhileIn(Digit)
			if out[1].IsEmpty() || !r.AtEnd() {
				return r.Expected("digit")
			}
			return nil
		})
	})
	return out, err
}

// TestScenarioPair covers the documented scenario: "12," unbound
// needs one more byte; "12,3x" is terminal at offset 4 with a digit
// expectation; "12,34" parses cleanly with an empty remainder.
func TestScenarioPair(t *testing.T) {
	t.Run("12, unbound", func(t *testing.T) {
		_, err := ParseAll(New([]byte("12,"), false), parsePair)
		rr, ok := ToRetryRequirement(err)
		if !ok {
			t.Fatalf("expected retryable, got %v", err)
		}
		if rr.ContinueAfter() != 1 {
			t.Fatalf("needed: got %d want 1", rr.ContinueAfter())
		}
	})

	t.Run("12,3x terminal", func(t *testing.T) {
		_, err := ParseAll(New([]byte("12,3x"), false), parsePair)
		if err == nil || IsRetryable(err) {
			t.Fatalf("expected terminal, got %v", err)
		}
		var ev *ExpectedValid
		if !errors.As(err, &ev) {
			t.Fatalf("got %T", err)
		}
		if ev.Expected() != "digit" {
			t.Fatalf("expected label: got %q", ev.Expected())
		}
		if ev.Span() != (Span{4, 5}) {
			t.Fatalf("span: got %v", ev.Span())
		}
	})

	t.Run("12,34 success", func(t *testing.T) {
		pair, rem, err := Parse(New([]byte("12,34"), false), parsePair)
		if err != nil {
			t.Fatal(err)
		}
		if !rem.IsEmpty() {
			t.Fatalf("remainder: %q", rem.AsDangerous())
		}
		if string(pair[0].AsDangerous()) != "12" || string(pair[1].AsDangerous()) != "34" {
			t.Fatalf("pair: %q %q", pair[0].AsDangerous(), pair[1].AsDangerous())
		}
	})
}

func TestParseAllTrailing(t *testing.T) {
	first := func(r *Reader) (Input, error) { return r.Take(2) }

	_, err := ParseAll(New([]byte("abXX"), true), first)
	if err == nil {
		t.Fatal("expected trailing-data failure")
	}
	if IsRetryable(err) {
		t.Fatal("trailing data must be terminal")
	}
	var el *ExpectedLength
	if !errors.As(err, &el) {
		t.Fatalf("got %T", err)
	}
	if el.Span() != (Span{2, 4}) {
		t.Fatalf("span: got %v", el.Span())
	}
}

func TestWithContext(t *testing.T) {
	in := New([]byte("abc"), true)
	v, err := WithContext(NewReader(in), "read token", func(r *Reader) (Input, error) {
		return r.Take(3)
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(v.AsDangerous()) != "abc" {
		t.Fatalf("got %q", v.AsDangerous())
	}
}
