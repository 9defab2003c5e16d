package taskstats

import (
	"fmt"

	"github.com/danmuck/genlstats/internal/protocol"
)

// Command code values from linux/taskstats.h.
const (
	CmdGetValue uint8 = 1
	CmdNewValue uint8 = 2
)

// Command is the command of a Request envelope.
type Command uint8

const (
	// CmdGet is a user->kernel request, also used for get responses.
	CmdGet Command = Command(CmdGetValue)
	// CmdNew is a kernel->user event.
	CmdNew Command = Command(CmdNewValue)
)

// Uint8 returns the wire value of c.
func (c Command) Uint8() uint8 {
	return uint8(c)
}

func (c Command) String() string {
	switch c {
	case CmdGet:
		return "GET"
	case CmdNew:
		return "NEW"
	default:
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
}

// ParseCommand decodes a Request command byte.
func ParseCommand(v uint8) (Command, error) {
	switch v {
	case CmdGetValue:
		return CmdGet, nil
	case CmdNewValue:
		return CmdNew, nil
	default:
		return 0, protocol.Unknown("taskstats command", uint64(v))
	}
}

// EventCommand is the command of an Event envelope. The kernel only ever
// sends NEW to userspace.
type EventCommand uint8

const EventNew EventCommand = EventCommand(CmdNewValue)

func (c EventCommand) Uint8() uint8 {
	return uint8(c)
}

func (c EventCommand) String() string {
	if c == EventNew {
		return "NEW"
	}
	return fmt.Sprintf("EventCommand(%d)", uint8(c))
}

// ParseEventCommand decodes an Event command byte.
func ParseEventCommand(v uint8) (EventCommand, error) {
	if v == CmdNewValue {
		return EventNew, nil
	}
	return 0, protocol.Unknown("taskstats event command", uint64(v))
}
