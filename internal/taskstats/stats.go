package taskstats

import (
	"bytes"

	"github.com/danmuck/genlstats/internal/protocol"
	"github.com/danmuck/genlstats/internal/protocol/layout"
)

const (
	// CommLen is TS_COMM_LEN.
	CommLen = 32

	// statsBaseLen is sizeof(struct taskstats) through thrashing_delay_total
	// (TASKSTATS_VERSION 9) without read_bytes.
	statsBaseLen = 336

	// StatsLen is the number of bytes ParseStats consumes.
	StatsLen = statsBaseLen + ioAccountingLen
)

// Stats is struct taskstats as laid out by the kernel.
//
// ReadBytes is only on the wire when the package is built with I/O
// accounting (the default); otherwise it stays zero.
type Stats struct {
	Version    uint16 `json:"version" yaml:"version"`
	AcExitcode uint32 `json:"ac_exitcode" yaml:"ac_exitcode"`
	AcFlag     uint8  `json:"ac_flag" yaml:"ac_flag"`
	AcNice     uint8  `json:"ac_nice" yaml:"ac_nice"`

	CPUCount           uint64 `json:"cpu_count" yaml:"cpu_count"`
	CPUDelayTotal      uint64 `json:"cpu_delay_total" yaml:"cpu_delay_total"`
	BlkioCount         uint64 `json:"blkio_count" yaml:"blkio_count"`
	BlkioDelayTotal    uint64 `json:"blkio_delay_total" yaml:"blkio_delay_total"`
	SwapinCount        uint64 `json:"swapin_count" yaml:"swapin_count"`
	SwapinDelayTotal   uint64 `json:"swapin_delay_total" yaml:"swapin_delay_total"`
	CPURunRealTotal    uint64 `json:"cpu_run_real_total" yaml:"cpu_run_real_total"`
	CPURunVirtualTotal uint64 `json:"cpu_run_virtual_total" yaml:"cpu_run_virtual_total"`

	AcComm  [CommLen]byte `json:"-" yaml:"-"`
	AcSched uint8         `json:"ac_sched" yaml:"ac_sched"`
	AcPad   [3]byte       `json:"-" yaml:"-"`

	AcUID   uint32 `json:"ac_uid" yaml:"ac_uid"`
	AcGID   uint32 `json:"ac_gid" yaml:"ac_gid"`
	AcPID   uint32 `json:"ac_pid" yaml:"ac_pid"`
	AcPPID  uint32 `json:"ac_ppid" yaml:"ac_ppid"`
	AcBtime uint32 `json:"ac_btime" yaml:"ac_btime"`

	AcEtime             uint64 `json:"ac_etime" yaml:"ac_etime"`
	AcUtime             uint64 `json:"ac_utime" yaml:"ac_utime"`
	AcStime             uint64 `json:"ac_stime" yaml:"ac_stime"`
	AcMinflt            uint64 `json:"ac_minflt" yaml:"ac_minflt"`
	AcMajflt            uint64 `json:"ac_majflt" yaml:"ac_majflt"`
	Coremem             uint64 `json:"coremem" yaml:"coremem"`
	Virtmem             uint64 `json:"virtmem" yaml:"virtmem"`
	HiwaterRSS          uint64 `json:"hiwater_rss" yaml:"hiwater_rss"`
	HiwaterVM           uint64 `json:"hiwater_vm" yaml:"hiwater_vm"`
	ReadChar            uint64 `json:"read_char" yaml:"read_char"`
	WriteChar           uint64 `json:"write_char" yaml:"write_char"`
	ReadSyscalls        uint64 `json:"read_syscalls" yaml:"read_syscalls"`
	WriteSyscalls       uint64 `json:"write_syscalls" yaml:"write_syscalls"`
	ReadBytes           uint64 `json:"read_bytes" yaml:"read_bytes"`
	WriteBytes          uint64 `json:"write_bytes" yaml:"write_bytes"`
	CancelledWriteBytes uint64 `json:"cancelled_write_bytes" yaml:"cancelled_write_bytes"`

	Nvcsw  uint64 `json:"nvcsw" yaml:"nvcsw"`
	Nivcsw uint64 `json:"nivcsw" yaml:"nivcsw"`

	AcUtimescaled         uint64 `json:"ac_utimescaled" yaml:"ac_utimescaled"`
	AcStimescaled         uint64 `json:"ac_stimescaled" yaml:"ac_stimescaled"`
	CPUScaledRunRealTotal uint64 `json:"cpu_scaled_run_real_total" yaml:"cpu_scaled_run_real_total"`

	FreepagesCount      uint64 `json:"freepages_count" yaml:"freepages_count"`
	FreepagesDelayTotal uint64 `json:"freepages_delay_total" yaml:"freepages_delay_total"`
	ThrashingCount      uint64 `json:"thrashing_count" yaml:"thrashing_count"`
	ThrashingDelayTotal uint64 `json:"thrashing_delay_total" yaml:"thrashing_delay_total"`
}

// ParseStats decodes a struct taskstats from the start of b. Bytes past
// StatsLen belong to fields of newer kernels and are ignored.
func ParseStats(b []byte) (Stats, error) {
	if len(b) < StatsLen {
		return Stats{}, protocol.Truncated("taskstats: record of %d bytes, want at least %d", len(b), StatsLen)
	}
	var s Stats
	r := layout.NewReader(b)

	s.Version = r.Uint16()
	r.Align(4)
	s.AcExitcode = r.Uint32()
	s.AcFlag = r.Uint8()
	s.AcNice = r.Uint8()

	r.Align(8)
	s.CPUCount = r.Uint64()
	s.CPUDelayTotal = r.Uint64()
	s.BlkioCount = r.Uint64()
	s.BlkioDelayTotal = r.Uint64()
	s.SwapinCount = r.Uint64()
	s.SwapinDelayTotal = r.Uint64()
	s.CPURunRealTotal = r.Uint64()
	s.CPURunVirtualTotal = r.Uint64()

	r.Copy(s.AcComm[:])
	r.Align(8)
	s.AcSched = r.Uint8()
	r.Copy(s.AcPad[:])

	r.Align(8)
	s.AcUID = r.Uint32()
	s.AcGID = r.Uint32()
	s.AcPID = r.Uint32()
	s.AcPPID = r.Uint32()
	s.AcBtime = r.Uint32()

	r.Align(8)
	s.AcEtime = r.Uint64()
	s.AcUtime = r.Uint64()
	s.AcStime = r.Uint64()
	s.AcMinflt = r.Uint64()
	s.AcMajflt = r.Uint64()
	s.Coremem = r.Uint64()
	s.Virtmem = r.Uint64()
	s.HiwaterRSS = r.Uint64()
	s.HiwaterVM = r.Uint64()
	s.ReadChar = r.Uint64()
	s.WriteChar = r.Uint64()
	s.ReadSyscalls = r.Uint64()
	s.WriteSyscalls = r.Uint64()
	if ioAccounting {
		s.ReadBytes = r.Uint64()
	}
	s.WriteBytes = r.Uint64()
	s.CancelledWriteBytes = r.Uint64()
	s.Nvcsw = r.Uint64()
	s.Nivcsw = r.Uint64()
	s.AcUtimescaled = r.Uint64()
	s.AcStimescaled = r.Uint64()
	s.CPUScaledRunRealTotal = r.Uint64()
	s.FreepagesCount = r.Uint64()
	s.FreepagesDelayTotal = r.Uint64()
	s.ThrashingCount = r.Uint64()
	s.ThrashingDelayTotal = r.Uint64()

	if err := r.Err(); err != nil {
		return Stats{}, err
	}
	return s, nil
}

// Emit writes s into the first StatsLen bytes of b in kernel layout.
func (s *Stats) Emit(b []byte) {
	w := layout.NewWriter(b[:StatsLen])

	w.Uint16(s.Version)
	w.Align(4)
	w.Uint32(s.AcExitcode)
	w.Uint8(s.AcFlag)
	w.Uint8(s.AcNice)

	w.Align(8)
	w.Uint64(s.CPUCount)
	w.Uint64(s.CPUDelayTotal)
	w.Uint64(s.BlkioCount)
	w.Uint64(s.BlkioDelayTotal)
	w.Uint64(s.SwapinCount)
	w.Uint64(s.SwapinDelayTotal)
	w.Uint64(s.CPURunRealTotal)
	w.Uint64(s.CPURunVirtualTotal)

	w.Copy(s.AcComm[:])
	w.Align(8)
	w.Uint8(s.AcSched)
	w.Copy(s.AcPad[:])

	w.Align(8)
	w.Uint32(s.AcUID)
	w.Uint32(s.AcGID)
	w.Uint32(s.AcPID)
	w.Uint32(s.AcPPID)
	w.Uint32(s.AcBtime)

	w.Align(8)
	w.Uint64(s.AcEtime)
	w.Uint64(s.AcUtime)
	w.Uint64(s.AcStime)
	w.Uint64(s.AcMinflt)
	w.Uint64(s.AcMajflt)
	w.Uint64(s.Coremem)
	w.Uint64(s.Virtmem)
	w.Uint64(s.HiwaterRSS)
	w.Uint64(s.HiwaterVM)
	w.Uint64(s.ReadChar)
	w.Uint64(s.WriteChar)
	w.Uint64(s.ReadSyscalls)
	w.Uint64(s.WriteSyscalls)
	if ioAccounting {
		w.Uint64(s.ReadBytes)
	}
	w.Uint64(s.WriteBytes)
	w.Uint64(s.CancelledWriteBytes)
	w.Uint64(s.Nvcsw)
	w.Uint64(s.Nivcsw)
	w.Uint64(s.AcUtimescaled)
	w.Uint64(s.AcStimescaled)
	w.Uint64(s.CPUScaledRunRealTotal)
	w.Uint64(s.FreepagesCount)
	w.Uint64(s.FreepagesDelayTotal)
	w.Uint64(s.ThrashingCount)
	w.Uint64(s.ThrashingDelayTotal)
}

// Comm returns the command name up to its first NUL.
func (s *Stats) Comm() string {
	comm := s.AcComm[:]
	if i := bytes.IndexByte(comm, 0); i >= 0 {
		comm = comm[:i]
	}
	return string(comm)
}

// SetComm stores name in AcComm, truncated to leave room for a terminator.
func (s *Stats) SetComm(name string) {
	clear(s.AcComm[:])
	copy(s.AcComm[:CommLen-1], name)
}
