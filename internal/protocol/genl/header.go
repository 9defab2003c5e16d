// Package genl holds the generic netlink header and the family envelope
// contract every family payload implements.
package genl

import (
	"errors"

	"github.com/danmuck/genlstats/internal/protocol"
	"github.com/danmuck/genlstats/internal/protocol/nla"
)

// HeaderLen is the size of struct genlmsghdr.
const HeaderLen = 4

var ErrUnresolvedFamily = errors.New("genl: family id not resolved")

// Header is the generic netlink header that precedes family attributes.
type Header struct {
	Command  uint8
	Version  uint8
	Reserved uint16
}

// ParseHeader decodes the header at the start of b and returns the payload after it.
func ParseHeader(b []byte) (Header, []byte, error) {
	if len(b) < HeaderLen {
		return Header{}, nil, protocol.Truncated("genl: short header: %d bytes", len(b))
	}
	h := Header{
		Command:  b[0],
		Version:  b[1],
		Reserved: nla.Native.Uint16(b[2:4]),
	}
	return h, b[HeaderLen:], nil
}

// Emit writes h into the first HeaderLen bytes of b.
func (h Header) Emit(b []byte) {
	b[0] = h.Command
	b[1] = h.Version
	nla.Native.PutUint16(b[2:4], h.Reserved)
}
