package aggregate

import "sort"

// Tally is one row of a rank-ordered participation tabulation: a
// canonical author and how many valid counts they contributed.
// IsTerminal marks the author of the thread's final post (the "get").
type Tally struct {
	Author     string
	Count      int
	IsTerminal bool
}

// Tabulate groups history by canonical author (after applying resolve,
// the alias table's username-to-canonical mapping) and returns a
// rank-ordered tabulation sorted by count descending, then by name
// ascending (spec §4.7). The author of the last record is marked
// IsTerminal.
func Tabulate(history []Record, resolve func(string) string) []Tally {
	if resolve == nil {
		resolve = func(s string) string { return s }
	}
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range history {
		canonical := resolve(r.Author)
		if _, seen := counts[canonical]; !seen {
			order = append(order, canonical)
		}
		counts[canonical]++
	}
	tallies := make([]Tally, 0, len(order))
	for _, author := range order {
		tallies = append(tallies, Tally{Author: author, Count: counts[author]})
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Count != tallies[j].Count {
			return tallies[i].Count > tallies[j].Count
		}
		return tallies[i].Author < tallies[j].Author
	})

	if len(history) > 0 {
		terminal := resolve(history[len(history)-1].Author)
		for i := range tallies {
			if tallies[i].Author == terminal {
				tallies[i].IsTerminal = true
				break
			}
		}
	}
	return tallies
}

// Elapsed is the wall-clock span between the first and last record of a
// thread, broken into its day/hour/minute/second components (spec
// §4.7).
type Elapsed struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// ElapsedTime computes the elapsed span between history's first and
// last records. It returns the zero Elapsed for a history of fewer than
// two records.
func ElapsedTime(history []Record) Elapsed {
	if len(history) < 2 {
		return Elapsed{}
	}
	d := history[len(history)-1].Timestamp.Sub(history[0].Timestamp)
	if d < 0 {
		d = 0
	}
	totalSeconds := int64(d.Seconds())
	days := totalSeconds / 86400
	totalSeconds -= days * 86400
	hours := totalSeconds / 3600
	totalSeconds -= hours * 3600
	minutes := totalSeconds / 60
	seconds := totalSeconds - minutes*60
	return Elapsed{Days: int(days), Hours: int(hours), Minutes: int(minutes), Seconds: int(seconds)}
}
