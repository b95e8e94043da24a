package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// WriteCSV writes rows as the reference per-thread CSV (spec §6): a
// `#`-prefixed title comment line, then one row per count with columns
// count, username, timestamp, comment_id, submission_id, sorted by
// ascending count.
func WriteCSV(w io.Writer, title string, rows []CountRow) error {
	if _, err := fmt.Fprintf(w, "# %s\n", title); err != nil {
		return errors.Wrap(err, "sink: writing csv title")
	}

	sorted := make([]CountRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Count < sorted[j].Count })

	writer := csv.NewWriter(w)
	for _, r := range sorted {
		record := []string{
			strconv.FormatInt(r.Count, 10),
			r.Username,
			strconv.FormatInt(r.Timestamp.Unix(), 10),
			r.CommentID,
			r.SubmissionID,
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "sink: writing csv row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(err, "sink: flushing csv writer")
	}
	return nil
}
