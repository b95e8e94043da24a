package aggregate

import (
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// UpdateStrategy recovers a side thread's running count once a thread
// completes, without necessarily decoding every post body (SUPPLEMENTED
// FEATURE 4). Three approaches are modeled, in the same priority order
// SideThread.__init__ assigns `update_count` in (each later approach,
// if configured, overrides the ones before it): title-parse (lowest),
// explicit encoder/traversal (middle), fixed length (highest).
type UpdateStrategy struct {
	// TitlePattern, if set, extracts the running count from a
	// completed thread's submission title (make_title_updater): many
	// side threads post their current count in the title.
	TitlePattern *regexp.Regexp

	// Decode, if set, derives the count directly from the leaf post's
	// body, overriding TitlePattern.
	Decode func(body string) (int64, error)

	// Length, if non-nil, adds a fixed count per completed thread
	// (update_from_length), overriding both of the above. This is the
	// right choice for threads whose chain may contain revivals, since
	// revival threads can be excluded by the caller before counting
	// thread length.
	Length *int64
}

// Update recovers the running count after completedThreads more
// threads have finished, given the most recent submission title and
// leaf post body, following the configured strategy's priority.
func (s UpdateStrategy) Update(oldCount int64, completedThreads int, title, leafBody string) (int64, error) {
	if s.Length != nil {
		return oldCount + *s.Length*int64(completedThreads), nil
	}
	if s.Decode != nil {
		return s.Decode(leafBody)
	}
	if s.TitlePattern != nil {
		m := s.TitlePattern.FindStringSubmatch(title)
		if m == nil || len(m) < 2 {
			return 0, errors.Errorf("aggregate: title %q does not match count pattern", title)
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "aggregate: parsing count from title %q", title)
		}
		return n, nil
	}
	return 0, errors.New("aggregate: no update strategy configured")
}
