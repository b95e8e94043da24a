package aggregate

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func records(authors []string) []Record {
	out := make([]Record, len(authors))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, a := range authors {
		out[i] = Record{Author: a, Timestamp: base.Add(time.Duration(i) * time.Minute), Count: int64(i + 1)}
	}
	return out
}

func TestTabulateSortsByCountThenName(t *testing.T) {
	hist := records([]string{"A", "B", "A", "B", "A"})
	tallies := Tabulate(hist, nil)
	if len(tallies) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(tallies))
	}
	if tallies[0].Author != "A" || tallies[0].Count != 3 {
		t.Errorf("first tally = %+v, want A:3", tallies[0])
	}
	if tallies[1].Author != "B" || tallies[1].Count != 2 {
		t.Errorf("second tally = %+v, want B:2", tallies[1])
	}
	if !tallies[0].IsTerminal {
		t.Error("terminal post author (A) should be marked IsTerminal")
	}
}

func TestTabulateAppliesAliasResolution(t *testing.T) {
	hist := records([]string{"alice_alt", "alice_alt", "bob"})
	resolve := func(u string) string {
		if u == "alice_alt" {
			return "Alice"
		}
		return u
	}
	tallies := Tabulate(hist, resolve)
	if tallies[0].Author != "Alice" || tallies[0].Count != 2 {
		t.Errorf("expected Alice:2 after alias resolution, got %+v", tallies[0])
	}
}

func TestElapsedTimeBreaksDownSpan(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hist := []Record{
		{Timestamp: base},
		{Timestamp: base.Add(25*time.Hour + 3*time.Minute + 7*time.Second)},
	}
	e := ElapsedTime(hist)
	if e.Days != 1 || e.Hours != 1 || e.Minutes != 3 || e.Seconds != 7 {
		t.Errorf("ElapsedTime = %+v, want {1 1 3 7}", e)
	}
}

func TestFindErrorsFlagsUncorrectedErrorOnly(t *testing.T) {
	// counts: 1,2,3,10,11,12 -- position 3 (0-indexed) jumps to 10 and
	// is never corrected back onto the index-implied sequence.
	hist := []Record{
		{CommentID: "a", Count: 1},
		{CommentID: "b", Count: 2},
		{CommentID: "c", Count: 3},
		{CommentID: "d", Count: 10},
		{CommentID: "e", Count: 11},
		{CommentID: "f", Count: 12},
	}
	errs := FindErrors(hist)
	if len(errs) != 1 || errs[0].CommentID != "d" {
		t.Errorf("FindErrors = %+v, want just record d", errs)
	}
}

func TestFindErrorsIgnoresSelfCorrectedSkip(t *testing.T) {
	// A double-count at position 3 (3,3 instead of 3,4) is corrected by
	// the next post: e's count 5 matches its position-implied count, so
	// every record up to e is treated as already corrected.
	hist := []Record{
		{CommentID: "a", Count: 1},
		{CommentID: "b", Count: 2},
		{CommentID: "c", Count: 3},
		{CommentID: "d", Count: 3},
		{CommentID: "e", Count: 5},
	}
	errs := FindErrors(hist)
	for _, e := range errs {
		if e.CommentID == "d" {
			t.Errorf("self-correcting skip at d should not be flagged, got %+v", errs)
		}
	}
}

func TestUpdateStrategyPriorityPrefersLength(t *testing.T) {
	length := int64(1000)
	s := UpdateStrategy{
		Length:       &length,
		Decode:       func(string) (int64, error) { return 1, nil },
		TitlePattern: regexp.MustCompile(`(\d+)`),
	}
	got, err := s.Update(5000, 2, "count: 9999", "ignored")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got != 7000 {
		t.Errorf("Update = %d, want 7000 (length takes priority)", got)
	}
}

func TestUpdateStrategyFallsBackToTitleParse(t *testing.T) {
	s := UpdateStrategy{TitlePattern: regexp.MustCompile(`count:\s*(\d+)`)}
	got, err := s.Update(0, 0, "Side thread (count: 4242)", "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got != 4242 {
		t.Errorf("Update = %d, want 4242", got)
	}
}

func TestRenderMarkdownTableIncludesHeaderAndRows(t *testing.T) {
	tallies := []Tally{{Author: "A", Count: 10, IsTerminal: true}, {Author: "B", Count: 5}}
	table := RenderMarkdownTable(tallies)
	if !strings.Contains(table, "**Rank**|**User**|**Counts**") {
		t.Error("missing header row")
	}
	if !strings.Contains(table, "1|A (get)|10") {
		t.Errorf("missing expected first data row, got:\n%s", table)
	}
	if !strings.Contains(table, "2|B|5") {
		t.Errorf("missing expected second data row, got:\n%s", table)
	}
}
