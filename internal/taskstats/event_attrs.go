package taskstats

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/danmuck/genlstats/internal/protocol"
	"github.com/danmuck/genlstats/internal/protocol/nla"
)

// Event attribute kinds (TASKSTATS_TYPE_*).
const (
	TypePID      uint16 = 1
	TypeTGID     uint16 = 2
	TypeStats    uint16 = 3
	TypeAggrPID  uint16 = 4
	TypeAggrTGID uint16 = 5
	TypeNull     uint16 = 6
)

// EventAttr is one attribute of an Event. The implementations in this package
// are the complete set.
type EventAttr interface {
	nla.Attribute
	isEventAttr()
}

// EventPID identifies the task the following Stats belong to.
type EventPID int32

// EventTGID identifies the thread group the following Stats belong to.
type EventTGID int32

// EventStats carries one accounting record.
type EventStats struct {
	Stats Stats
}

// EventAggrPID starts a per-task group: a PID followed by its Stats.
type EventAggrPID struct{}

// EventAggrTGID starts a per-thread-group group: a TGID followed by its Stats.
type EventAggrTGID struct{}

// EventNull carries nothing; the kernel uses it as padding.
type EventNull struct{}

func (EventPID) isEventAttr()      {}
func (EventTGID) isEventAttr()     {}
func (EventStats) isEventAttr()    {}
func (EventAggrPID) isEventAttr()  {}
func (EventAggrTGID) isEventAttr() {}
func (EventNull) isEventAttr()     {}

func (EventPID) Kind() uint16      { return TypePID }
func (EventTGID) Kind() uint16     { return TypeTGID }
func (EventStats) Kind() uint16    { return TypeStats }
func (EventAggrPID) Kind() uint16  { return TypeAggrPID }
func (EventAggrTGID) Kind() uint16 { return TypeAggrTGID }
func (EventNull) Kind() uint16     { return TypeNull }

func (EventPID) ValueLen() int      { return 4 }
func (EventTGID) ValueLen() int     { return 4 }
func (EventStats) ValueLen() int    { return StatsLen }
func (EventAggrPID) ValueLen() int  { return 0 }
func (EventAggrTGID) ValueLen() int { return 0 }
func (EventNull) ValueLen() int     { return 0 }

func (a EventPID) EmitValue(b []byte)   { nla.PutInt32(b, int32(a)) }
func (a EventTGID) EmitValue(b []byte)  { nla.PutInt32(b, int32(a)) }
func (a EventStats) EmitValue(b []byte) { a.Stats.Emit(b) }
func (EventAggrPID) EmitValue([]byte)   {}
func (EventAggrTGID) EmitValue([]byte)  {}
func (EventNull) EmitValue([]byte)      {}

func (a EventPID) String() string    { return fmt.Sprintf("Pid(%d)", int32(a)) }
func (a EventTGID) String() string   { return fmt.Sprintf("TGid(%d)", int32(a)) }
func (a EventStats) String() string  { return fmt.Sprintf("Stats(pid=%d comm=%q)", a.Stats.AcPID, a.Stats.Comm()) }
func (EventAggrPID) String() string  { return "AggrPid" }
func (EventAggrTGID) String() string { return "AggrTGid" }
func (EventNull) String() string     { return "Null" }

// ParseEventAttr decodes one raw attribute of an Event. Aggregate markers are
// returned without their nested contents; see parseEventAttrs.
func ParseEventAttr(raw nla.Raw) (EventAttr, error) {
	switch raw.Kind {
	case TypePID:
		v, err := nla.ParseInt32(raw.Value)
		if err != nil {
			return nil, errors.WithMessage(err, "invalid TASKSTATS_TYPE_PID value")
		}
		return EventPID(v), nil
	case TypeTGID:
		v, err := nla.ParseInt32(raw.Value)
		if err != nil {
			return nil, errors.WithMessage(err, "invalid TASKSTATS_TYPE_TGID value")
		}
		return EventTGID(v), nil
	case TypeStats:
		s, err := ParseStats(raw.Value)
		if err != nil {
			return nil, errors.WithMessage(err, "invalid TASKSTATS_TYPE_STATS value")
		}
		return EventStats{Stats: s}, nil
	case TypeAggrPID:
		return EventAggrPID{}, nil
	case TypeAggrTGID:
		return EventAggrTGID{}, nil
	case TypeNull:
		return EventNull{}, nil
	default:
		return nil, protocol.Unknown("NLA type", uint64(raw.Kind))
	}
}

func isAggregate(a EventAttr) bool {
	switch a.(type) {
	case EventAggrPID, EventAggrTGID:
		return true
	}
	return false
}

// parseEventAttrs decodes b in wire order. The kernel nests the id and stats
// of a group inside its aggregate attribute; those are flattened in after the
// marker so nested and flat encodings decode to the same sequence.
func parseEventAttrs(b []byte, nested bool) ([]EventAttr, error) {
	out := make([]EventAttr, 0, 4)
	it := nla.NewIterator(b)
	for it.Next() {
		raw := it.Attr()
		a, err := ParseEventAttr(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
		if !isAggregate(a) || len(raw.Value) == 0 {
			continue
		}
		if nested {
			return nil, protocol.Malformed("aggregate kind %d nested inside another aggregate", raw.Kind)
		}
		inner, err := parseEventAttrs(raw.Value, true)
		if err != nil {
			return nil, errors.WithMessagef(err, "invalid aggregate kind %d contents", raw.Kind)
		}
		out = append(out, inner...)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
