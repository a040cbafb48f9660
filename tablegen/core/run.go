package core

import (
	"bytes"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	"golang.org/x/tools/imports"
)

var log = commonlog.GetLogger("tablegen")

// Class is one byte class to generate a membership table for. Member
// is evaluated once per byte value; the generated table is a [4]uint64
// bitset literal.
type Class struct {
	Name   string
	Doc    string
	Member func(byte) bool
}

// Defaults returns the byte classes shipped with the runtime. Order
// is the order they appear in the generated file.
func Defaults() []Class {
	return []Class{
		{
			Name:   "Digit",
			Doc:    "Digit matches the ASCII digits '0' through '9'.",
			Member: func(b byte) bool { return b >= '0' && b <= '9' },
		},
		{
			Name: "Alpha",
			Doc:  "Alpha matches the ASCII letters 'A'-'Z' and 'a'-'z'.",
			Member: func(b byte) bool {
				return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
			},
		},
		{
			Name: "Alnum",
			Doc:  "Alnum matches ASCII letters and digits.",
			Member: func(b byte) bool {
				return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
			},
		},
		{
			Name: "HexDigit",
			Doc:  "HexDigit matches '0'-'9', 'A'-'F' and 'a'-'f'.",
			Member: func(b byte) bool {
				return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'F') || (b >= 'a' && b <= 'f')
			},
		},
		{
			Name: "Whitespace",
			Doc: "Whitespace matches ASCII whitespace: tab, newline, vertical tab,\n" +
				"form feed, carriage return and space.",
			Member: func(b byte) bool {
				return b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r' || b == ' '
			},
		},
	}
}

// Options configures generation.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
}

// Run generates the membership tables for classes and writes the
// formatted result to outputPath.
func Run(outputPath string, classes []Class, opts Options) error {
	if opts.Package == "" {
		opts.Package = "dangerous"
	}

	src := generate(classes, opts.Package)

	formatted, err := imports.Process(outputPath, src, nil)
	if err != nil {
		return fmt.Errorf("format generated tables: %w", err)
	}

	if err := os.WriteFile(outputPath, formatted, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	log.Infof("wrote %d classes to %s", len(classes), outputPath)
	return nil
}

func generate(classes []Class, pkg string) []byte {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by tablegen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	for i, c := range classes {
		if i > 0 {
			buf.WriteByte('\n')
		}
		writeDoc(&buf, c.Doc)
		bits := tableBits(c.Member)
		fmt.Fprintf(&buf, "var %s = &ByteClass{bits: [4]uint64{\n", c.Name)
		fmt.Fprintf(&buf, "\t0x%016x, 0x%016x,\n", bits[0], bits[1])
		fmt.Fprintf(&buf, "\t0x%016x, 0x%016x,\n", bits[2], bits[3])
		buf.WriteString("}}\n")
		log.Debugf("class %s: %d members", c.Name, memberCount(bits))
	}

	return buf.Bytes()
}

func writeDoc(buf *bytes.Buffer, doc string) {
	for _, line := range bytes.Split([]byte(doc), []byte{'\n'}) {
		buf.WriteString("// ")
		buf.Write(line)
		buf.WriteByte('\n')
	}
}

func tableBits(member func(byte) bool) [4]uint64 {
	var bits [4]uint64
	for i := 0; i < 256; i++ {
		if member(byte(i)) {
			bits[i>>6] |= 1 << (uint(i) & 63)
		}
	}
	return bits
}

func memberCount(bits [4]uint64) int {
	n := 0
	for _, w := range bits {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}
