//go:build taskstats_noioacct

package taskstats

import (
	"testing"

	"github.com/danmuck/genlstats/internal/protocol/layout"
)

func TestStatsLayoutWithoutReadBytes(t *testing.T) {
	if StatsLen != 336 {
		t.Fatalf("StatsLen = %d, want 336", StatsLen)
	}
	checkHandBuilt(t, 248, false)
}

func TestStatsTailShiftsWithoutReadBytes(t *testing.T) {
	b := emitStats(fixtureStats())
	o := layout.Order

	if got := o.Uint64(b[240:]); got != 33 {
		t.Fatalf("write_syscalls at 240 = %d, want 33", got)
	}
	if got := o.Uint64(b[248:]); got != 35 {
		t.Fatalf("write_bytes at 248 = %d, want 35", got)
	}
	if got := o.Uint64(b[328:]); got != 45 {
		t.Fatalf("thrashing_delay_total at 328 = %d, want 45", got)
	}
	if _, err := ParseStats(b[:335]); err == nil {
		t.Fatalf("expected 335-byte record to be rejected")
	}
}
