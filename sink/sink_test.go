package sink

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestWriteCSVSortsByCountAndWritesTitle(t *testing.T) {
	rows := []CountRow{
		{Count: 2, Username: "bob", Timestamp: time.Unix(200, 0), CommentID: "c2", SubmissionID: "s1"},
		{Count: 1, Username: "alice", Timestamp: time.Unix(100, 0), CommentID: "c1", SubmissionID: "s1"},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, "base 10", rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "# base 10" {
		t.Errorf("first line = %q, want title comment", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,alice,") {
		t.Errorf("expected ascending count order, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2,bob,") {
		t.Errorf("expected second row for count 2, got %q", lines[2])
	}
}

func TestSQLiteSinkRoundTripsCheckpoints(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.LatestCheckpoint("thread1"); err != nil || ok {
		t.Fatalf("expected no checkpoint yet, got ok=%v err=%v", ok, err)
	}

	if err := s.SetCheckpoint("thread1", "subA"); err != nil {
		t.Fatalf("SetCheckpoint: %v", err)
	}
	if err := s.SetCheckpoint("thread1", "subB"); err != nil {
		t.Fatalf("SetCheckpoint: %v", err)
	}

	got, ok, err := s.LatestCheckpoint("thread1")
	if err != nil || !ok {
		t.Fatalf("LatestCheckpoint: ok=%v err=%v", ok, err)
	}
	if got != "subB" {
		t.Errorf("LatestCheckpoint = %q, want subB (most recent)", got)
	}
}

func TestSQLiteSinkInsertCommentsAndCounters(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	rows := []CountRow{
		{Count: 1, Username: "alice", Timestamp: time.Unix(1, 0), CommentID: "c1", SubmissionID: "s1"},
		{Count: 2, Username: "bob", Timestamp: time.Unix(2, 0), CommentID: "c2", SubmissionID: "s1"},
	}
	if err := s.InsertComments(rows); err != nil {
		t.Fatalf("InsertComments: %v", err)
	}
	if err := s.UpsertCounter("alice_alt", "Alice", true, false); err != nil {
		t.Fatalf("UpsertCounter: %v", err)
	}
}
