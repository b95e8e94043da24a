// Package sink implements the two reference persistence serialisations
// spec §6 names: a per-thread CSV file and a SQLite schema. Both are
// thin writers over the aggregate/chain packages' in-memory structures;
// neither is a live-service driver (spec.md's Non-goals keep "network
// client" and "persistence to a relational store" external — these are
// the reference sink implementations spec §6 explicitly calls for).
package sink

import (
	"time"

	"github.com/cutonbuminband/rcounting-go/chain"
)

// CountRow is one row of a per-thread tabulation, the unit both the CSV
// and SQLite sinks persist.
type CountRow struct {
	Count        int64
	Username     string
	Timestamp    time.Time
	CommentID    string
	SubmissionID string
}

// FromHistory converts a chain walk's post records into persistable
// CountRows, taking each post's decoded position from the same index of
// positions (0 where positions is shorter than posts).
func FromHistory(posts []chain.PostRecord, positions []int64, submissionID string) []CountRow {
	rows := make([]CountRow, len(posts))
	for i, p := range posts {
		pos := int64(0)
		if i < len(positions) {
			pos = positions[i]
		}
		rows[i] = CountRow{
			Count:        pos,
			Username:     p.Author,
			Timestamp:    p.Timestamp,
			CommentID:    p.ID,
			SubmissionID: submissionID,
		}
	}
	return rows
}
