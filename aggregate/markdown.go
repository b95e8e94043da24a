package aggregate

import (
	"fmt"
	"strings"
)

// RenderMarkdownTable renders a rank-ordered tabulation as a
// pipe-delimited markdown table with a bold header row (SUPPLEMENTED
// FEATURE 7), matching weekly_side_thread_stats.py's stats_post
// (`top_counters.head(n).to_markdown(headers=["**Rank**", "**User**",
// "**Counts**"])`). Rank is 1-based and follows tallies' existing order
// (callers pass an already rank-sorted slice, e.g. from Tabulate).
func RenderMarkdownTable(tallies []Tally) string {
	var b strings.Builder
	b.WriteString("**Rank**|**User**|**Counts**\n")
	b.WriteString("---|---|---\n")
	for i, t := range tallies {
		name := t.Author
		if t.IsTerminal {
			name += " (get)"
		}
		fmt.Fprintf(&b, "%d|%s|%d\n", i+1, name, t.Count)
	}
	return b.String()
}
