package nla

import (
	"github.com/danmuck/genlstats/internal/protocol"
)

// Raw is one undecoded attribute as found on the wire.
type Raw struct {
	Kind         uint16
	Nested       bool
	NetByteOrder bool
	// Length is the declared length, header included.
	Length uint16
	// Value aliases the iterated buffer.
	Value []byte
}

// Iterator walks the attributes of a buffer in wire order.
//
// Records are produced lazily. The first malformed header stops iteration
// and is reported by Err; an Iterator cannot be restarted.
type Iterator struct {
	buf []byte
	off int
	cur Raw
	err error
}

// NewIterator returns an iterator over b.
func NewIterator(b []byte) *Iterator {
	return &Iterator{buf: b}
}

// Next advances to the next attribute and reports whether one is available.
func (it *Iterator) Next() bool {
	if it.err != nil || it.off >= len(it.buf) {
		return false
	}
	rest := it.buf[it.off:]
	if len(rest) < HeaderLen {
		it.err = protocol.Truncated("nla: short attribute header at offset %d: %d bytes left", it.off, len(rest))
		return false
	}
	length := getUint16(rest[0:2])
	typ := getUint16(rest[2:4])
	if int(length) < HeaderLen {
		it.err = protocol.Truncated("nla: attribute at offset %d declares length %d below header size", it.off, length)
		return false
	}
	if int(length) > len(rest) {
		it.err = protocol.Truncated("nla: attribute kind %d at offset %d declares length %d, %d bytes left", typ&TypeMask, it.off, length, len(rest))
		return false
	}
	it.cur = Raw{
		Kind:         typ & TypeMask,
		Nested:       typ&FlagNested != 0,
		NetByteOrder: typ&FlagNetByteOrder != 0,
		Length:       length,
		Value:        rest[HeaderLen:length],
	}
	// the final attribute may omit its padding
	it.off += min(Align(int(length)), len(rest))
	return true
}

// Attr returns the current attribute. It is valid after Next returns true.
func (it *Iterator) Attr() Raw {
	return it.cur
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

// ParseAll decodes every attribute of b through parse, preserving wire order.
func ParseAll[A any](b []byte, parse func(Raw) (A, error)) ([]A, error) {
	out := make([]A, 0, 4)
	it := NewIterator(b)
	for it.Next() {
		a, err := parse(it.Attr())
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Collect returns every raw attribute of b.
func Collect(b []byte) ([]Raw, error) {
	return ParseAll(b, func(r Raw) (Raw, error) { return r, nil })
}
