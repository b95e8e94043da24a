// Package aggregate summarises a validated chain history into
// participation tabulations (spec §4.7): rank-ordered author counts,
// elapsed wall-clock, uncorrected-error detection, running-count
// recovery strategies, and markdown rendering for external consumers.
package aggregate

import "time"

// Record is one decoded, validated post in a history, ready for
// tabulation. Count is the post's decoded integer position.
type Record struct {
	Author    string
	Timestamp time.Time
	CommentID string
	Count     int64
}
