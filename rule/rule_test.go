package rule

import (
	"testing"
	"time"
)

func records(usernames ...string) []Record {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]Record, len(usernames))
	for i, u := range usernames {
		out[i] = Record{Username: u, Timestamp: base.Add(time.Duration(i) * time.Second)}
	}
	return out
}

func TestDefaultRejectsSelfReply(t *testing.T) {
	history := records("alice", "alice", "bob")
	mask := Default().Validate(history)
	want := []bool{true, false, true}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
}

func TestFirstRecordAlwaysValid(t *testing.T) {
	for _, r := range []Rule{Default(), WaitN(5), OncePerThread(), TimeGap(time.Minute, time.Hour), NewFastOrSlow(time.Minute, time.Hour), OnlyDoubleCounting{}} {
		mask := r.Validate(records("alice"))
		if !mask[0] {
			t.Errorf("%T: first record not valid", r)
		}
	}
}

func TestWaitNRequiresEnoughOthersBetween(t *testing.T) {
	history := records("alice", "bob", "alice", "carol", "dave", "alice")
	mask := WaitN(2).Validate(history)
	want := []bool{true, true, false, true, true, true}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
}

func TestOncePerThreadRejectsAnyRepeat(t *testing.T) {
	history := records("alice", "bob", "carol", "alice")
	mask := OncePerThread().Validate(history)
	if mask[3] {
		t.Error("second post by alice should be invalid under once-per-thread")
	}
	if !mask[0] || !mask[1] || !mask[2] {
		t.Error("first-time posters should be valid")
	}
}

func TestTimeGapEnforcesThreadAndUserMinimums(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	history := []Record{
		{Username: "alice", Timestamp: base},
		{Username: "bob", Timestamp: base.Add(30 * time.Second)},
		{Username: "carol", Timestamp: base.Add(2 * time.Minute)},
		{Username: "alice", Timestamp: base.Add(3 * time.Minute)},
	}
	mask := TimeGap(time.Minute, 5*time.Minute).Validate(history)
	if mask[1] {
		t.Error("bob's post only 30s after alice's should violate the thread time gap")
	}
	if !mask[2] {
		t.Error("carol's post after 90s more should satisfy the thread time gap")
	}
	if mask[3] {
		t.Error("alice's second post only 3 minutes after her first should violate the user time gap")
	}
}

func TestOnlyDoubleCountingScenarios(t *testing.T) {
	cases := []struct {
		name  string
		users []string
		want  []bool
	}{
		{"doubled pairs", []string{"A", "A", "B", "B", "C", "C"}, []bool{true, true, true, true, true, true}},
		{"alternating single authors", []string{"A", "B", "A", "B"}, []bool{true, true, true, true}},
		{"last three mispair", []string{"A", "A", "B", "C", "C", "C"}, []bool{true, true, false, false, true, true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mask := OnlyDoubleCounting{}.Validate(records(c.users...))
			for i := range c.want {
				if mask[i] != c.want[i] {
					t.Errorf("mask[%d] = %v, want %v", i, mask[i], c.want[i])
				}
			}
		})
	}
}

func TestFastOrSlowAcceptsOnlyExtremeGaps(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	history := []Record{
		{Username: "alice", Timestamp: base},
		{Username: "bob", Timestamp: base.Add(time.Second)},
		{Username: "carol", Timestamp: base.Add(31 * time.Second)},
		{Username: "dave", Timestamp: base.Add(time.Hour + 32*time.Second)},
	}
	mask := NewFastOrSlow(5*time.Second, time.Hour).Validate(history)
	if !mask[1] {
		t.Error("a 1s gap should be valid (faster than the fast threshold)")
	}
	if mask[2] {
		t.Error("a 30s gap should be invalid (between the fast and slow thresholds)")
	}
	if !mask[3] {
		t.Error("a gap longer than an hour should be valid (slower than the slow threshold)")
	}
}
