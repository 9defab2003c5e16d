package taskstats

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/genlstats/internal/protocol/genl"
	"github.com/danmuck/genlstats/internal/protocol/nla"
)

const (
	// FamilyName is TASKSTATS_GENL_NAME.
	FamilyName = "TASKSTATS"
	// FamilyVersion is TASKSTATS_GENL_VERSION.
	FamilyVersion uint8 = 1
)

const attrsContext = "failed to parse control message attributes"

// Request is a user->kernel TASKSTATS message.
type Request struct {
	Cmd   Command
	Attrs []CommandAttr
	// Family is unresolved until the caller sets the kernel-assigned id.
	Family genl.ID
}

var (
	_ genl.Resolvable = (*Request)(nil)
	_ genl.Resolvable = (*Event)(nil)
)

func (*Request) FamilyName() string      { return FamilyName }
func (r *Request) FamilyID() uint16      { return r.Family.Uint16() }
func (r *Request) SetFamilyID(id uint16) { r.Family = genl.ResolvedID(id) }
func (r *Request) FamilyResolved() bool  { return r.Family.Resolved() }
func (r *Request) Command() uint8        { return r.Cmd.Uint8() }
func (*Request) Version() uint8          { return FamilyVersion }
func (r *Request) BufferLen() int        { return nla.BufferLen(r.Attrs) }
func (r *Request) Emit(b []byte)         { nla.Emit(b, r.Attrs) }

// ParseRequest decodes the attribute payload of a Request. The family id is
// left unresolved.
func ParseRequest(b []byte, h genl.Header) (*Request, error) {
	log.Debug().Uint8("cmd", h.Command).Uint8("version", h.Version).Int("len", len(b)).Msg("taskstats.ParseRequest")
	cmd, err := ParseCommand(h.Command)
	if err != nil {
		return nil, err
	}
	attrs, err := nla.ParseAll(b, ParseCommandAttr)
	if err != nil {
		log.Debug().Err(err).Msg("taskstats.ParseRequest attributes rejected")
		return nil, errors.WithMessage(err, attrsContext)
	}
	return &Request{Cmd: cmd, Attrs: attrs}, nil
}

// Event is a kernel->user TASKSTATS message: a get reply or an exit
// notification.
type Event struct {
	Cmd   EventCommand
	Attrs []EventAttr
	// Family is unresolved until the caller sets the kernel-assigned id.
	Family genl.ID
}

func (*Event) FamilyName() string      { return FamilyName }
func (e *Event) FamilyID() uint16      { return e.Family.Uint16() }
func (e *Event) SetFamilyID(id uint16) { e.Family = genl.ResolvedID(id) }
func (e *Event) FamilyResolved() bool  { return e.Family.Resolved() }
func (e *Event) Command() uint8        { return e.Cmd.Uint8() }
func (*Event) Version() uint8          { return FamilyVersion }
func (e *Event) BufferLen() int        { return nla.BufferLen(e.Attrs) }
func (e *Event) Emit(b []byte)         { nla.Emit(b, e.Attrs) }

// ParseEvent decodes the attribute payload of an Event. The family id is left
// unresolved.
func ParseEvent(b []byte, h genl.Header) (*Event, error) {
	log.Debug().Uint8("cmd", h.Command).Uint8("version", h.Version).Int("len", len(b)).Msg("taskstats.ParseEvent")
	cmd, err := ParseEventCommand(h.Command)
	if err != nil {
		return nil, err
	}
	attrs, err := parseEventAttrs(b, false)
	if err != nil {
		log.Debug().Err(err).Msg("taskstats.ParseEvent attributes rejected")
		return nil, errors.WithMessage(err, attrsContext)
	}
	return &Event{Cmd: cmd, Attrs: attrs}, nil
}

// UnmarshalRequest decodes a generic netlink payload, header included.
func UnmarshalRequest(b []byte) (*Request, error) {
	return genl.Unmarshal(b, ParseRequest)
}

// UnmarshalEvent decodes a generic netlink payload, header included.
func UnmarshalEvent(b []byte) (*Event, error) {
	return genl.Unmarshal(b, ParseEvent)
}
