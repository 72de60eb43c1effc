package table

import "regexp"

// Cell contents that disqualify a column from being the identifying one:
// phone numbers, URLs, email addresses, plain numbers, geographic
// coordinates, long free text, times of day, calendar dates and blanks.
// The idea of disregarding such columns stems from Quercini & Reynaud,
// "Entity Discovery and Annotation in Tables".
const (
	phoneNumberPattern = `\+?[0-9][0-9 -]+[0-9]`
	urlPattern         = `(https:|http:|www\.)\S*`
	emailPattern       = `.+@.+`
	numericPattern     = `[+\-]?[0-9., _]+`
	geoPattern         = `[+\-0-9.,;'" NESW]+`
	longTextPattern    = `.{50,}`
	timePattern        = `[0-9]{2}:[0-9]{2}(:[0-9]{2})?`
	datePattern        = `([0-9]{1,2} \w{3,} [0-9]{4})|(\w{3,} [0-9]{1,2}, [0-9]{4})`
	blankPattern       = `\s*`
)

// fullmatch compiles pattern so that it must match a whole cell.
func fullmatch(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + pattern + `)$`)
}

// DefaultBlacklist returns the regex blacklist used by DefaultHeuristic.
func DefaultBlacklist() []*regexp.Regexp {
	return []*regexp.Regexp{
		fullmatch(phoneNumberPattern),
		fullmatch(urlPattern),
		fullmatch(emailPattern),
		fullmatch(numericPattern),
		fullmatch(geoPattern),
		fullmatch(longTextPattern),
		fullmatch(timePattern),
		fullmatch(datePattern),
		fullmatch(blankPattern),
	}
}

// Heuristic configures identifying-column selection. The zero value is not
// useful; start from DefaultHeuristic.
type Heuristic struct {
	// Minimum fraction of distinct values a column needs to qualify as
	// identifying when no fully unique column exists.
	MinUniqueness float64

	// When a column counts as blacklisted: n > 0 means at least n cells
	// match some blacklist pattern, 0 means all cells match, -n means all
	// cells except at most n match.
	BlacklistThreshold int

	// Consider blacklisted columns after all others failed.
	AllowBlacklistedAsLastResort bool

	Blacklist []*regexp.Regexp
}

// DefaultHeuristic mirrors the parameter defaults of the original NETT
// tool: 50% uniqueness, one blacklist match disqualifies, no last resort.
func DefaultHeuristic() Heuristic {
	return Heuristic{
		MinUniqueness:      0.5,
		BlacklistThreshold: 1,
		Blacklist:          DefaultBlacklist(),
	}
}

// Uniqueness returns the fraction of distinct values in column: 1.0 for an
// all-unique column, tending towards 0.0 for a constant one.
func Uniqueness(column []string) float64 {
	if len(column) == 0 {
		return 0
	}
	distinct := make(map[string]bool, len(column))
	for _, cell := range column {
		distinct[cell] = true
	}
	return float64(len(distinct)) / float64(len(column))
}

func (h Heuristic) blacklisted(column []string) bool {
	matches := 0
	for _, cell := range column {
		for _, re := range h.Blacklist {
			if re.MatchString(cell) {
				matches++
				break
			}
		}
	}
	if h.BlacklistThreshold > 0 {
		return matches >= h.BlacklistThreshold
	}
	return matches >= len(column)+h.BlacklistThreshold
}

// bestColumn returns the index in candidates of the most unique column
// reaching h.MinUniqueness, ties broken by the left-most index, or -1.
func (h Heuristic) bestColumn(t *Table, candidates []int) int {
	best, bestScore := -1, 0.0
	for _, i := range candidates {
		if u := Uniqueness(t.Columns[i]); u > bestScore {
			best, bestScore = i, u
		}
	}
	if best >= 0 && bestScore >= h.MinUniqueness {
		return best
	}
	return -1
}

// IdentifyingColumn selects the column of t whose values best identify its
// rows, the "entity label attribute" of Ritze et al.'s T2K Match. It
// returns the column index, or -1 when no column qualifies.
//
// Selection order: among columns not matching the blacklist, an all-unique
// column wins (left-most first); failing that, the column with the highest
// uniqueness, provided it reaches h.MinUniqueness. Blacklisted columns are
// only considered as a last resort, and only if configured so.
func (t *Table) IdentifyingColumn(h Heuristic) int {
	var blacklisted, clean []int
	for i, col := range t.Columns {
		if h.blacklisted(col) {
			blacklisted = append(blacklisted, i)
		} else {
			clean = append(clean, i)
		}
	}

	for _, i := range clean {
		if Uniqueness(t.Columns[i]) == 1.0 {
			return i
		}
	}

	if best := h.bestColumn(t, clean); best >= 0 {
		return best
	}
	if h.AllowBlacklistedAsLastResort {
		return h.bestColumn(t, blacklisted)
	}
	return -1
}
