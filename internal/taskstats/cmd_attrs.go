package taskstats

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/danmuck/genlstats/internal/protocol"
	"github.com/danmuck/genlstats/internal/protocol/nla"
)

// Request attribute kinds (TASKSTATS_CMD_ATTR_*).
const (
	CmdAttrPID               uint16 = 1
	CmdAttrTGID              uint16 = 2
	CmdAttrRegisterCPUMask   uint16 = 3
	CmdAttrDeregisterCPUMask uint16 = 4
)

// CommandAttr is one attribute of a Request. The implementations in this
// package are the complete set.
type CommandAttr interface {
	nla.Attribute
	isCommandAttr()
}

// CmdPID asks for the statistics of one task.
type CmdPID uint32

// CmdTGID asks for the statistics of one thread group.
type CmdTGID uint32

// CmdRegisterCPUMask subscribes to exit events on a cpulist such as "0-3".
type CmdRegisterCPUMask string

// CmdDeregisterCPUMask cancels a CmdRegisterCPUMask subscription.
type CmdDeregisterCPUMask string

func (CmdPID) isCommandAttr()               {}
func (CmdTGID) isCommandAttr()              {}
func (CmdRegisterCPUMask) isCommandAttr()   {}
func (CmdDeregisterCPUMask) isCommandAttr() {}

func (CmdPID) Kind() uint16               { return CmdAttrPID }
func (CmdTGID) Kind() uint16              { return CmdAttrTGID }
func (CmdRegisterCPUMask) Kind() uint16   { return CmdAttrRegisterCPUMask }
func (CmdDeregisterCPUMask) Kind() uint16 { return CmdAttrDeregisterCPUMask }

func (CmdPID) ValueLen() int                 { return 4 }
func (CmdTGID) ValueLen() int                { return 4 }
func (m CmdRegisterCPUMask) ValueLen() int   { return nla.StringLen(string(m)) }
func (m CmdDeregisterCPUMask) ValueLen() int { return nla.StringLen(string(m)) }

func (a CmdPID) EmitValue(b []byte)               { nla.PutUint32(b, uint32(a)) }
func (a CmdTGID) EmitValue(b []byte)              { nla.PutUint32(b, uint32(a)) }
func (m CmdRegisterCPUMask) EmitValue(b []byte)   { nla.PutString(b, string(m)) }
func (m CmdDeregisterCPUMask) EmitValue(b []byte) { nla.PutString(b, string(m)) }

func (a CmdPID) String() string               { return fmt.Sprintf("Pid(%d)", uint32(a)) }
func (a CmdTGID) String() string              { return fmt.Sprintf("TGid(%d)", uint32(a)) }
func (m CmdRegisterCPUMask) String() string   { return fmt.Sprintf("RegisterCPUMask(%q)", string(m)) }
func (m CmdDeregisterCPUMask) String() string { return fmt.Sprintf("DeregisterCPUMask(%q)", string(m)) }

// ParseCommandAttr decodes one raw attribute of a Request.
func ParseCommandAttr(raw nla.Raw) (CommandAttr, error) {
	switch raw.Kind {
	case CmdAttrPID:
		v, err := nla.ParseUint32(raw.Value)
		if err != nil {
			return nil, errors.WithMessage(err, "invalid TASKSTATS_CMD_ATTR_PID value")
		}
		return CmdPID(v), nil
	case CmdAttrTGID:
		v, err := nla.ParseUint32(raw.Value)
		if err != nil {
			return nil, errors.WithMessage(err, "invalid TASKSTATS_CMD_ATTR_TGID value")
		}
		return CmdTGID(v), nil
	case CmdAttrRegisterCPUMask:
		s, err := nla.ParseString(raw.Value)
		if err != nil {
			return nil, errors.WithMessage(err, "invalid TASKSTATS_CMD_ATTR_REGISTER_CPUMASK value")
		}
		return CmdRegisterCPUMask(s), nil
	case CmdAttrDeregisterCPUMask:
		s, err := nla.ParseString(raw.Value)
		if err != nil {
			return nil, errors.WithMessage(err, "invalid TASKSTATS_CMD_ATTR_DEREGISTER_CPUMASK value")
		}
		return CmdDeregisterCPUMask(s), nil
	default:
		return nil, protocol.Unknown("NLA type", uint64(raw.Kind))
	}
}
