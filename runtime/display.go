package dangerous

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DisplayWidthFunc measures the rendered column width of a rune when
// aligning the excerpt underline. It defaults to go-runewidth so that
// wide characters line up; setting it to nil assumes one column per
// rune, which degrades alignment only, never correctness.
var DisplayWidthFunc func(r rune) int = runewidth.RuneWidth

// excerptRadius is how many bytes of surrounding input the excerpt
// shows on each side of the offending span.
const excerptRadius = 16

// ErrorDisplay renders a verbose multi-line report for a parse
// failure: description, annotated excerpt of the offending span, and
// the backtrace of enclosing expectations (outermost first).
type ErrorDisplay struct {
	details Details
}

// Display prepares a report for err. ok is false when err carries no
// report details (foreign errors, or errors stripped of details).
func Display(err error) (d *ErrorDisplay, ok bool) {
	var det Details
	if errors.As(err, &det) {
		return &ErrorDisplay{details: det}, true
	}
	return nil, false
}

// String implements fmt.Stringer.
func (d *ErrorDisplay) String() string {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	d.render(bb)
	return string(bb.Bytes())
}

func (d *ErrorDisplay) render(bb *ByteBuffer) {
	e := d.details
	bb.WriteString("error attempting to ")
	bb.WriteString(e.Operation())
	bb.WriteString(": ")
	bb.WriteString(e.Description())
	if rr, ok := e.RetryRequirement(); ok {
		bb.WriteString(" (")
		bb.WriteString(rr.String())
		bb.WriteString(" needed)")
	}
	bb.WriteByte('\n')
	if v, ok := e.ExpectedValue(); ok {
		bb.WriteString("expected value: ")
		writeValue(bb, v)
		bb.WriteByte('\n')
	}
	d.renderExcerpt(bb)
	d.renderBacktrace(bb)
}

// renderExcerpt writes the offending span inside a window of
// surrounding input, underlined. Printable input is shown quoted with
// a width-aligned caret line; anything else falls back to hex pairs.
func (d *ErrorDisplay) renderExcerpt(bb *ByteBuffer) {
	in := d.details.Input()
	span := d.details.Span()
	if !in.IsWithin(span) {
		return
	}
	full := in.Span()
	ws, we := span.Start-excerptRadius, span.End+excerptRadius
	if ws < full.Start {
		ws = full.Start
	}
	if we > full.End {
		we = full.End
	}
	raw := in.AsDangerous()
	window := raw[ws-full.Start : we-full.Start]
	relStart, relEnd := span.Start-ws, span.End-ws

	leftMark, rightMark := "", ""
	if ws > full.Start {
		leftMark = ".. "
	}
	if we < full.End {
		rightMark = " .."
	}

	if isPrintable(window) {
		bb.WriteString("> ")
		bb.WriteString(leftMark)
		bb.WriteByte('"')
		bb.Write(window)
		bb.WriteByte('"')
		bb.WriteString(rightMark)
		bb.WriteByte('\n')
		pad := 2 + len(leftMark) + 1 + textWidth(window[:relStart])
		caret := textWidth(window[relStart:relEnd])
		if caret < 1 {
			caret = 1
		}
		writeRepeat(bb, ' ', pad)
		writeRepeat(bb, '^', caret)
		bb.WriteByte('\n')
		return
	}

	bb.WriteString("> ")
	bb.WriteString(leftMark)
	writeHex(bb, window)
	bb.WriteString(rightMark)
	bb.WriteByte('\n')
	pad := 2 + len(leftMark) + 3*relStart
	caret := 3*(relEnd-relStart) - 1
	if caret < 1 {
		caret = 1
	}
	writeRepeat(bb, ' ', pad)
	writeRepeat(bb, '^', caret)
	bb.WriteByte('\n')
}

// renderBacktrace writes the recorded contexts outermost first; the
// deepest expectation is the last entry. Contexts a minimal strategy
// did not retain are summarised, not invented.
func (d *ErrorDisplay) renderBacktrace(bb *ByteBuffer) {
	bt := d.details.Backtrace()
	if bt.Count() == 0 {
		return
	}
	var nodes []Context
	bt.Walk(func(_ int, c Context) bool {
		nodes = append(nodes, c)
		return true
	})
	bb.WriteString("backtrace:\n")
	num := 1
	if dropped := bt.Count() - len(nodes); dropped > 0 {
		bb.WriteString("  (")
		bb.WriteString(strconv.Itoa(dropped))
		if dropped == 1 {
			bb.WriteString(" outer context not retained)\n")
		} else {
			bb.WriteString(" outer contexts not retained)\n")
		}
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		c := nodes[i]
		bb.WriteString("  ")
		bb.WriteString(strconv.Itoa(num))
		bb.WriteString(". `")
		bb.WriteString(c.Operation)
		bb.WriteString("` (bytes ")
		bb.WriteString(strconv.Itoa(c.Span.Start))
		bb.WriteString("..")
		bb.WriteString(strconv.Itoa(c.Span.End))
		bb.WriteString(")\n")
		num++
	}
}

// isPrintable reports whether b renders cleanly between quotes:
// valid UTF-8 with no control characters.
func isPrintable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, c := range string(b) {
		if c < 0x20 || c == 0x7f {
			return false
		}
	}
	return true
}

// textWidth sums the rendered width of the runes in b.
func textWidth(b []byte) int {
	w := 0
	for _, r := range string(b) {
		if DisplayWidthFunc == nil {
			w++
			continue
		}
		if rw := DisplayWidthFunc(r); rw > 0 {
			w += rw
		}
	}
	return w
}

func writeRepeat(bb *ByteBuffer, c byte, n int) {
	out := bb.Extend(n)
	for i := range out {
		out[i] = c
	}
}

const hexDigits = "0123456789abcdef"

// writeHex writes space-separated hex pairs, one per byte.
func writeHex(bb *ByteBuffer, b []byte) {
	for i, c := range b {
		if i > 0 {
			bb.WriteByte(' ')
		}
		bb.WriteByte(hexDigits[c>>4])
		bb.WriteByte(hexDigits[c&0x0f])
	}
}

// writeValue writes an expected exact value, quoted when printable
// and as hex otherwise.
func writeValue(bb *ByteBuffer, v []byte) {
	if isPrintable(v) {
		bb.WriteString(strconv.Quote(string(v)))
		return
	}
	writeHex(bb, v)
}
