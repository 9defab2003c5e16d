// Package nla encodes and iterates netlink attributes.
//
// Each attribute is a native-endian {len u16, type u16} header followed by
// len-4 value bytes, padded to a 4-byte boundary before the next header.
package nla

import (
	"fmt"
)

const (
	// HeaderLen is the size of struct nlattr.
	HeaderLen = 4
	// AlignTo is the attribute alignment (NLA_ALIGNTO).
	AlignTo = 4

	FlagNested       uint16 = 1 << 15
	FlagNetByteOrder uint16 = 1 << 14
	TypeMask                = ^(FlagNested | FlagNetByteOrder)
)

// Align rounds n up to the attribute alignment.
func Align(n int) int {
	return (n + AlignTo - 1) &^ (AlignTo - 1)
}

// Attribute is one typed attribute that knows its own wire encoding.
type Attribute interface {
	// Kind is the attribute type without flag bits.
	Kind() uint16
	// ValueLen is the unpadded value length.
	ValueLen() int
	// EmitValue writes exactly ValueLen bytes into b.
	EmitValue(b []byte)
}

// Len is the padded on-wire size of a, header included.
func Len(a Attribute) int {
	return HeaderLen + Align(a.ValueLen())
}

// BufferLen is the on-wire size of attrs emitted in sequence.
func BufferLen[A Attribute](attrs []A) int {
	n := 0
	for _, a := range attrs {
		n += Len(a)
	}
	return n
}

// EmitOne writes a at the start of b and returns the bytes consumed.
// b must hold at least Len(a) bytes.
func EmitOne(b []byte, a Attribute) int {
	vlen := a.ValueLen()
	total := Len(a)
	if len(b) < total {
		panic(fmt.Sprintf("nla: emit kind %d needs %d bytes, buffer has %d", a.Kind(), total, len(b)))
	}
	if HeaderLen+vlen > 0xffff {
		panic(fmt.Sprintf("nla: kind %d value of %d bytes exceeds attribute length field", a.Kind(), vlen))
	}
	putUint16(b[0:2], uint16(HeaderLen+vlen))
	putUint16(b[2:4], a.Kind()&TypeMask)
	a.EmitValue(b[HeaderLen : HeaderLen+vlen])
	clear(b[HeaderLen+vlen : total])
	return total
}

// Emit writes attrs in order into b, which must hold BufferLen(attrs) bytes.
func Emit[A Attribute](b []byte, attrs []A) {
	off := 0
	for _, a := range attrs {
		off += EmitOne(b[off:], a)
	}
}

// Marshal allocates a buffer and emits attrs into it.
func Marshal[A Attribute](attrs []A) []byte {
	b := make([]byte, BufferLen(attrs))
	Emit(b, attrs)
	return b
}
