package coreerr

import (
	"errors"
	"testing"
)

func TestErrorIs(t *testing.T) {
	err := New(NotACount, "abc123", "no valid prefix")
	target := New(NotACount, "", "")
	if !errors.Is(err, target) {
		t.Fatalf("expected errors.Is to match on Kind alone")
	}

	other := New(ChainBroken, "abc123", "")
	if errors.Is(err, other) {
		t.Fatalf("did not expect NotACount to match ChainBroken")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("network timeout")
	err := Wrap(FetchFailed, "xyz", "fetch_post failed", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected Unwrap chain to reach cause")
	}
	if got := err.Error(); got == "" {
		t.Fatalf("expected non-empty error string")
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{NotACount, "NotACount"},
		{ChainBroken, "ChainBroken"},
		{FetchFailed, "FetchFailed"},
		{DatabaseError, "DatabaseError"},
		{ValidationFailure, "ValidationFailure"},
		{Overflow, "Overflow"},
		{Archived, "Archived"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}
