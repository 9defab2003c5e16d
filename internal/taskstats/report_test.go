package taskstats

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danmuck/genlstats/internal/protocol"
)

func TestReportsGroupsAggregates(t *testing.T) {
	a, b := fixtureStats(), fixtureStats()
	b.AcPID = 7
	got, err := Reports([]EventAttr{
		EventAggrPID{}, EventPID(7), EventStats{Stats: b},
		EventNull{},
		EventAggrTGID{}, EventTGID(100), EventStats{Stats: a},
		EventStats{Stats: a},
	})
	if err != nil {
		t.Fatalf("reports: %v", err)
	}
	want := []Report{
		{Scope: ScopePID, ID: 7, Stats: b},
		{Scope: ScopeTGID, ID: 100, Stats: a},
		{Scope: ScopeNone, Stats: a},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("reports mismatch (-want +got):\n%s", diff)
	}
}

func TestReportsRejectsMismatchedIDs(t *testing.T) {
	s := EventStats{Stats: fixtureStats()}
	for name, attrs := range map[string][]EventAttr{
		"pid in tgid": {EventAggrTGID{}, EventPID(1), s},
		"tgid in pid": {EventAggrPID{}, EventTGID(1), s},
		"missing id":  {EventAggrPID{}, s},
	} {
		if _, err := Reports(attrs); protocol.KindOf(err) != protocol.KindMalformed {
			t.Fatalf("%s: expected malformed error, got %v", name, err)
		}
	}
}

func TestScopeNames(t *testing.T) {
	if ScopePID.String() != "pid" || ScopeTGID.String() != "tgid" || ScopeNone.String() != "none" {
		t.Fatalf("unexpected scope names")
	}
}

func TestReportsRejectsUnclosedGroups(t *testing.T) {
	s := EventStats{Stats: fixtureStats()}
	for name, attrs := range map[string][]EventAttr{
		"trailing id":          {EventAggrPID{}, EventPID(1), s, EventAggrPID{}, EventPID(2)},
		"trailing marker":      {EventAggrTGID{}},
		"id before next group": {EventAggrPID{}, EventPID(1), EventAggrTGID{}, EventTGID(2), s},
		"marker after marker":  {EventAggrPID{}, EventAggrPID{}, EventPID(3), s},
		"bare id":              {EventTGID(4)},
	} {
		if _, err := Reports(attrs); protocol.KindOf(err) != protocol.KindMalformed {
			t.Fatalf("%s: expected malformed error, got %v", name, err)
		}
	}

	got, err := Reports([]EventAttr{EventNull{}, EventPID(5), s})
	if err != nil {
		t.Fatalf("bare id with stats: %v", err)
	}
	if len(got) != 1 || got[0].Scope != ScopeNone || got[0].ID != 5 {
		t.Fatalf("unexpected reports %+v", got)
	}
}
