package aggregate

// FindErrors reports the records in history that introduce an
// uncorrected error (SUPPLEMENTED FEATURE 2), independent of (and
// additional to) the rule package's pacing/turn validation. Grounded
// on side_threads.py's SideThread.find_errors: a record is an
// uncorrected error if its count is not the previous count + 1, not
// the count two positions back + 2, and does not match its
// position-implied count (index + the first record's count) — and
// only records after the last known-good count are considered, so
// already-corrected errors are not re-reported.
func FindErrors(history []Record) []Record {
	n := len(history)
	if n == 0 {
		return nil
	}
	counts := make([]int64, n)
	for i, r := range history {
		counts[i] = r.Count
	}

	mismatch := make([]bool, n)
	for i := range counts {
		mismatch[i] = counts[i]-counts[0] != int64(i)
	}

	lastCorrect := -1
	for i := n - 1; i >= 0; i-- {
		if !mismatch[i] {
			lastCorrect = i
			break
		}
	}
	for i := 0; i <= lastCorrect; i++ {
		mismatch[i] = false
	}
	if lastCorrect == -1 {
		// No record matches its position-implied count at all; the
		// original treats an all-NaN "last valid index" the same way
		// and clears every flag.
		for i := range mismatch {
			mismatch[i] = false
		}
	}

	var result []Record
	for i, flagged := range mismatch {
		if !flagged {
			continue
		}
		continuesPrev := i >= 1 && counts[i]-counts[i-1] == 1
		continuesPrevPrev := i >= 2 && counts[i]-counts[i-2] == 2
		if !continuesPrev && !continuesPrevPrev {
			result = append(result, history[i])
		}
	}
	return result
}
