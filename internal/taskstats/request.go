package taskstats

func newGet(a CommandAttr) *Request {
	return &Request{Cmd: CmdGet, Attrs: []CommandAttr{a}}
}

// NewPIDRequest asks for the statistics of one task.
func NewPIDRequest(pid uint32) *Request { return newGet(CmdPID(pid)) }

// NewTGIDRequest asks for the statistics of one thread group.
func NewTGIDRequest(tgid uint32) *Request { return newGet(CmdTGID(tgid)) }

// NewRegisterRequest subscribes to exit events for the cpus in mask.
func NewRegisterRequest(mask string) *Request { return newGet(CmdRegisterCPUMask(mask)) }

// NewDeregisterRequest cancels a subscription made with NewRegisterRequest.
func NewDeregisterRequest(mask string) *Request { return newGet(CmdDeregisterCPUMask(mask)) }
