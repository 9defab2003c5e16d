package genl

import (
	"fmt"
)

// Family is the contract of one generic netlink family payload.
//
// FamilyName and Version are constants of the family. FamilyID is assigned by
// the kernel and known only after a controller lookup; it is 0 until then.
type Family interface {
	FamilyName() string
	FamilyID() uint16
	Command() uint8
	Version() uint8
	// BufferLen is the size of the attribute payload, header excluded.
	BufferLen() int
	// Emit writes the attribute payload into b, which holds BufferLen bytes.
	Emit(b []byte)
}

// Resolvable is a Family whose id is patched in after construction or parse.
type Resolvable interface {
	Family
	SetFamilyID(id uint16)
	FamilyResolved() bool
}

// Parser builds a family payload from its attribute bytes and the already
// decoded generic header.
type Parser[F Family] func(b []byte, h Header) (F, error)

// ID is a family id that may not be known yet.
type ID struct {
	value    uint16
	resolved bool
}

// ResolvedID returns a resolved id.
func ResolvedID(v uint16) ID {
	return ID{value: v, resolved: true}
}

// Value returns the id and whether it has been resolved.
func (id ID) Value() (uint16, bool) {
	return id.value, id.resolved
}

// Resolved reports whether the id has been set.
func (id ID) Resolved() bool {
	return id.resolved
}

// Uint16 returns the id, or 0 when unresolved.
func (id ID) Uint16() uint16 {
	if !id.resolved {
		return 0
	}
	return id.value
}

func (id ID) String() string {
	if !id.resolved {
		return "unresolved"
	}
	return fmt.Sprintf("%d", id.value)
}

// Len is the size of f on the wire including the generic header.
func Len(f Family) int {
	return HeaderLen + f.BufferLen()
}

// Marshal encodes the generic header and attributes of f.
func Marshal(f Family) []byte {
	b := make([]byte, Len(f))
	Header{Command: f.Command(), Version: f.Version()}.Emit(b)
	f.Emit(b[HeaderLen:])
	return b
}

// Unmarshal decodes the generic header of b and hands the rest to parse.
func Unmarshal[F Family](b []byte, parse Parser[F]) (F, error) {
	h, payload, err := ParseHeader(b)
	if err != nil {
		var zero F
		return zero, err
	}
	return parse(payload, h)
}

// Destination returns the family id an outer netlink header should carry for
// f. It fails for a Resolvable family whose id has not been set.
func Destination(f Family) (uint16, error) {
	if r, ok := f.(Resolvable); ok && !r.FamilyResolved() {
		return 0, fmt.Errorf("%s: %w", f.FamilyName(), ErrUnresolvedFamily)
	}
	return f.FamilyID(), nil
}
