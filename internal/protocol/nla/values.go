package nla

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/danmuck/genlstats/internal/protocol"
)

// Native is the byte order netlink uses for attribute headers and scalar values.
var Native binary.ByteOrder = binary.NativeEndian

func putUint16(b []byte, v uint16) { Native.PutUint16(b, v) }
func getUint16(b []byte) uint16    { return Native.Uint16(b) }

func checkLen(b []byte, want int, what string) error {
	if len(b) != want {
		return protocol.Malformed("invalid %s: want %d bytes, got %d", what, want, len(b))
	}
	return nil
}

func ParseUint8(b []byte) (uint8, error) {
	if err := checkLen(b, 1, "u8"); err != nil {
		return 0, err
	}
	return b[0], nil
}

func ParseUint16(b []byte) (uint16, error) {
	if err := checkLen(b, 2, "u16"); err != nil {
		return 0, err
	}
	return Native.Uint16(b), nil
}

func ParseUint32(b []byte) (uint32, error) {
	if err := checkLen(b, 4, "u32"); err != nil {
		return 0, err
	}
	return Native.Uint32(b), nil
}

func ParseUint64(b []byte) (uint64, error) {
	if err := checkLen(b, 8, "u64"); err != nil {
		return 0, err
	}
	return Native.Uint64(b), nil
}

func ParseInt32(b []byte) (int32, error) {
	v, err := ParseUint32(b)
	return int32(v), err
}

func ParseInt64(b []byte) (int64, error) {
	v, err := ParseUint64(b)
	return int64(v), err
}

// ParseString decodes a NUL-terminated UTF-8 string value.
func ParseString(b []byte) (string, error) {
	if len(b) == 0 || b[len(b)-1] != 0 {
		return "", protocol.Malformed("invalid string: missing NUL terminator")
	}
	s := b[:len(b)-1]
	if !utf8.Valid(s) {
		return "", protocol.Malformed("invalid string: not valid UTF-8")
	}
	return string(s), nil
}

func PutUint32(b []byte, v uint32) { Native.PutUint32(b, v) }
func PutInt32(b []byte, v int32)   { Native.PutUint32(b, uint32(v)) }

// StringLen is the value length of s including its terminator.
func StringLen(s string) int {
	return len(s) + 1
}

// PutString writes s followed by a NUL terminator.
func PutString(b []byte, s string) {
	n := copy(b, s)
	b[n] = 0
}
