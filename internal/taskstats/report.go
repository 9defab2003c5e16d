package taskstats

import (
	"github.com/danmuck/genlstats/internal/protocol"
)

// Scope says what a Report aggregates.
type Scope uint8

const (
	ScopeNone Scope = iota
	ScopePID
	ScopeTGID
)

func (s Scope) String() string {
	switch s {
	case ScopePID:
		return "pid"
	case ScopeTGID:
		return "tgid"
	default:
		return "none"
	}
}

// Report is one id and its accounting record.
type Report struct {
	Scope Scope
	ID    int32
	Stats Stats
}

// Reports groups an event attribute sequence into per-task and per-group
// records. An aggregate marker opens a group; the id and stats after it
// belong to that group and Stats closes it. Stats without a preceding
// marker are reported with ScopeNone. A group or id left without Stats is
// an error.
func Reports(attrs []EventAttr) ([]Report, error) {
	var (
		out   []Report
		cur   Report
		open  bool
		hasID bool
	)
	for _, a := range attrs {
		switch v := a.(type) {
		case EventAggrPID, EventAggrTGID:
			if open || hasID {
				return nil, unclosed(cur, hasID)
			}
			scope := ScopePID
			if _, ok := v.(EventAggrTGID); ok {
				scope = ScopeTGID
			}
			cur, open, hasID = Report{Scope: scope}, true, false
		case EventPID:
			if open && cur.Scope != ScopePID {
				return nil, protocol.Malformed("taskstats: pid %d inside tgid aggregate", int32(v))
			}
			cur.ID, hasID = int32(v), true
		case EventTGID:
			if open && cur.Scope != ScopeTGID {
				return nil, protocol.Malformed("taskstats: tgid %d inside pid aggregate", int32(v))
			}
			cur.ID, hasID = int32(v), true
		case EventStats:
			if open && !hasID {
				return nil, protocol.Malformed("taskstats: %s aggregate stats without id", cur.Scope)
			}
			cur.Stats = v.Stats
			out = append(out, cur)
			cur, open, hasID = Report{}, false, false
		case EventNull:
		}
	}
	if open || hasID {
		return nil, unclosed(cur, hasID)
	}
	return out, nil
}

func unclosed(cur Report, hasID bool) error {
	if hasID {
		return protocol.Malformed("taskstats: %s %d without stats", cur.Scope, cur.ID)
	}
	return protocol.Malformed("taskstats: %s aggregate without stats", cur.Scope)
}
