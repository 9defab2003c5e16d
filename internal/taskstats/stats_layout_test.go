//go:build !taskstats_noioacct

package taskstats

import (
	"testing"

	"github.com/danmuck/genlstats/internal/protocol/layout"
)

func TestStatsKernelLayout(t *testing.T) {
	if StatsLen != 344 {
		t.Fatalf("StatsLen = %d, want 344", StatsLen)
	}
	checkHandBuilt(t, 256, true)
}

func TestStatsWireOffsets(t *testing.T) {
	b := emitStats(fixtureStats())
	o := layout.Order

	if got := o.Uint64(b[248:]); got != 34 {
		t.Fatalf("read_bytes at 248 = %d, want 34", got)
	}
	if got := o.Uint64(b[256:]); got != 35 {
		t.Fatalf("write_bytes at 256 = %d, want 35", got)
	}
	if got := o.Uint64(b[336:]); got != 45 {
		t.Fatalf("thrashing_delay_total at 336 = %d, want 45", got)
	}
	if string(b[80:91]) != "kworker/0:1" || b[91] != 0 {
		t.Fatalf("ac_comm at 80 = %q", b[80:112])
	}
}
