package registry

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// DirectoryRow is one parsed row of the wiki directory table that
// indexes every side thread (SUPPLEMENTED FEATURE 3): its name, its
// first submission, its current submission/comment, and its running
// count, as posted in the directory's markdown tables. Grounded on
// rcounting/parsing.py's parse_row.
type DirectoryRow struct {
	Name                 string
	FirstSubmissionID    string
	Title                string
	CurrentSubmissionID  string
	CurrentCommentID     string
	Count                string
}

// DirectoryParagraph is one paragraph of a directory page, tagged as
// either free text or a parsed table, matching
// rcounting/parsing.py's parse_directory_page output shape
// (`["text", ...]` / `["table", [...]]` tagged lists).
type DirectoryParagraph struct {
	IsTable bool
	Text    string
	Rows    []DirectoryRow
}

var tableRowPattern = regexp.MustCompile(`^.*\|.*\|.*$`)

// ParseDirectoryPage splits a directory wiki page into paragraphs and
// tags each as text or a table, parsing every table's data rows (the
// header and separator rows, lines[0:2], are skipped the same way the
// original slices lines[2:]).
func ParseDirectoryPage(page string) []DirectoryParagraph {
	var result []DirectoryParagraph
	var textBuf []string

	flushText := func() {
		if len(textBuf) > 0 {
			result = append(result, DirectoryParagraph{Text: strings.Join(textBuf, "\n\n")})
			textBuf = nil
		}
	}

	for _, paragraph := range strings.Split(page, "\n\n") {
		var lines []string
		for _, line := range strings.Split(paragraph, "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}
		allTableLines := len(lines) > 0
		for _, line := range lines {
			if !tableRowPattern.MatchString(line) {
				allTableLines = false
				break
			}
		}
		if !allTableLines {
			textBuf = append(textBuf, paragraph)
			continue
		}
		flushText()
		var rows []DirectoryRow
		if len(lines) > 2 {
			for _, line := range lines[2:] {
				row, err := ParseDirectoryRow(line)
				if err == nil {
					rows = append(rows, row)
				}
			}
		}
		result = append(result, DirectoryParagraph{IsTable: true, Rows: rows})
	}
	flushText()
	return result
}

var (
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	commentsURLPattern  = regexp.MustCompile(`/comments/([a-z0-9]+)(?:/[^/]*/([a-z0-9]+))?`)
)

// ParseDirectoryRow extracts a side thread's attributes from one
// pipe-delimited markdown table row. Grounded on parsing.py's parse_row:
// the first cell holds a `[name](/first_submission_id)` link, the
// second a `[title](full_url)` link whose URL is matched against the
// standard `/comments/<submission>/.../<comment>` shape, and the third
// is the bare running count.
func ParseDirectoryRow(row string) (DirectoryRow, error) {
	cells := strings.SplitN(row, "|", 3)
	if len(cells) != 3 {
		return DirectoryRow{}, errors.Errorf("registry: directory row does not have 3 cells: %q", row)
	}
	firstMatch := markdownLinkPattern.FindStringSubmatch(cells[0])
	if firstMatch == nil {
		return DirectoryRow{}, errors.Errorf("registry: no markdown link in first cell: %q", cells[0])
	}
	currentMatch := markdownLinkPattern.FindStringSubmatch(cells[1])
	if currentMatch == nil {
		return DirectoryRow{}, errors.Errorf("registry: no markdown link in current cell: %q", cells[1])
	}
	urlMatch := commentsURLPattern.FindStringSubmatch(currentMatch[2])
	if urlMatch == nil {
		return DirectoryRow{}, errors.Errorf("registry: no comments url in current cell: %q", currentMatch[2])
	}
	return DirectoryRow{
		Name:                strings.TrimSpace(firstMatch[1]),
		FirstSubmissionID:   strings.TrimPrefix(strings.TrimSpace(firstMatch[2]), "/"),
		Title:               strings.TrimSpace(currentMatch[1]),
		CurrentSubmissionID: urlMatch[1],
		CurrentCommentID:    urlMatch[2],
		Count:               strings.TrimSpace(cells[2]),
	}, nil
}
