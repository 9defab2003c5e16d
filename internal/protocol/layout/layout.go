// Package layout reads and writes fixed-layout kernel structs with a
// forward-only cursor.
//
// Reads and writes happen strictly in field order. Align reproduces the
// padding a C compiler inserts before an aligned member, so a struct is
// described by the same sequence of calls on both sides.
package layout

import (
	"encoding/binary"

	"github.com/danmuck/genlstats/internal/protocol"
)

// Order is the byte order of kernel structs: the host's.
var Order binary.ByteOrder = binary.NativeEndian

// Reader is a bounds-checked forward cursor over a byte slice.
//
// The first out-of-bounds access records an error and every later read
// returns zero values, so a caller can read a whole struct and check Err once.
type Reader struct {
	buf []byte
	off int
	err error
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Offset is the cursor position from the start of the buffer.
func (r *Reader) Offset() int { return r.off }

// Err returns the first bounds failure.
func (r *Reader) Err() error { return r.err }

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n > len(r.buf)-r.off {
		r.err = protocol.Truncated("layout: read of %d bytes at offset %d exceeds buffer of %d bytes", n, r.off, len(r.buf))
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) Uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return Order.Uint16(b)
}

func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return Order.Uint32(b)
}

func (r *Reader) Uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return Order.Uint64(b)
}

func (r *Reader) Int32() int32 { return int32(r.Uint32()) }
func (r *Reader) Int64() int64 { return int64(r.Uint64()) }

// Copy fills dst from the cursor, for fixed-length array members.
func (r *Reader) Copy(dst []byte) {
	if b := r.take(len(dst)); b != nil {
		copy(dst, b)
	}
}

// Skip advances over n bytes of padding.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// Align advances to the next multiple of n.
func (r *Reader) Align(n int) {
	r.Skip(pad(r.off, n))
}

// Writer is the emit counterpart of Reader. Writing past the end of the
// buffer is a caller bug and panics.
type Writer struct {
	buf []byte
	off int
}

func NewWriter(b []byte) *Writer {
	return &Writer{buf: b}
}

func (w *Writer) Offset() int { return w.off }

func (w *Writer) next(n int) []byte {
	if n > len(w.buf)-w.off {
		panic("layout: write past end of buffer")
	}
	b := w.buf[w.off : w.off+n]
	w.off += n
	return b
}

func (w *Writer) Uint8(v uint8)   { w.next(1)[0] = v }
func (w *Writer) Uint16(v uint16) { Order.PutUint16(w.next(2), v) }
func (w *Writer) Uint32(v uint32) { Order.PutUint32(w.next(4), v) }
func (w *Writer) Uint64(v uint64) { Order.PutUint64(w.next(8), v) }
func (w *Writer) Int32(v int32)   { w.Uint32(uint32(v)) }
func (w *Writer) Int64(v int64)   { w.Uint64(uint64(v)) }

func (w *Writer) Copy(src []byte) { copy(w.next(len(src)), src) }

// Skip zero-fills n bytes.
func (w *Writer) Skip(n int) { clear(w.next(n)) }

// Align zero-fills up to the next multiple of n.
func (w *Writer) Align(n int) { w.Skip(pad(w.off, n)) }

func pad(off, n int) int {
	if n <= 1 {
		return 0
	}
	return (n - off%n) % n
}
