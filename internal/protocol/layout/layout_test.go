package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danmuck/genlstats/internal/protocol"
)

type record struct {
	A uint8
	B uint32
	C [3]byte
	D uint64
	E int32
}

func (r *record) read(rd *Reader) {
	r.A = rd.Uint8()
	rd.Align(4)
	r.B = rd.Uint32()
	rd.Copy(r.C[:])
	rd.Align(8)
	r.D = rd.Uint64()
	r.E = rd.Int32()
}

func (r *record) write(w *Writer) {
	w.Uint8(r.A)
	w.Align(4)
	w.Uint32(r.B)
	w.Copy(r.C[:])
	w.Align(8)
	w.Uint64(r.D)
	w.Int32(r.E)
}

const recordLen = 28

func TestWriterReaderMirror(t *testing.T) {
	in := record{A: 7, B: 0xdeadbeef, C: [3]byte{'a', 'b', 'c'}, D: 1 << 40, E: -3}
	b := make([]byte, recordLen)
	for i := range b {
		b[i] = 0xff
	}
	w := NewWriter(b)
	in.write(w)
	if w.Offset() != recordLen {
		t.Fatalf("writer ended at %d, want %d", w.Offset(), recordLen)
	}
	if b[1] != 0 || b[2] != 0 || b[3] != 0 || b[11] != 0 || b[15] != 0 {
		t.Fatalf("padding not zeroed: %x", b)
	}
	if Order.Uint32(b[4:8]) != in.B || Order.Uint64(b[16:24]) != in.D {
		t.Fatalf("fields written at wrong offsets: %x", b)
	}

	var out record
	rd := NewReader(b)
	out.read(rd)
	if err := rd.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReaderStickyError(t *testing.T) {
	rd := NewReader([]byte{1, 2, 3, 4, 5})
	if rd.Uint32() != Order.Uint32([]byte{1, 2, 3, 4}) {
		t.Fatalf("unexpected first read")
	}
	if v := rd.Uint64(); v != 0 {
		t.Fatalf("expected zero value past end, got %d", v)
	}
	if protocol.KindOf(rd.Err()) != protocol.KindTruncated {
		t.Fatalf("expected truncated error, got %v", rd.Err())
	}
	if v := rd.Uint8(); v != 0 {
		t.Fatalf("expected reads to stay failed, got %d", v)
	}
	if rd.Offset() != 4 {
		t.Fatalf("cursor moved after failure: %d", rd.Offset())
	}
}

func TestAlignNoop(t *testing.T) {
	rd := NewReader(make([]byte, 8))
	rd.Align(8)
	rd.Align(1)
	if rd.Offset() != 0 {
		t.Fatalf("align at boundary moved cursor to %d", rd.Offset())
	}
}

func TestWriterPanicsPastEnd(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	w := NewWriter(make([]byte, 4))
	w.Uint32(1)
	w.Uint8(2)
}
