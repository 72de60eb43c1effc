// Package classify combines the candidate scores of the three
// table-classification approaches (textual surroundings, attribute names,
// attribute extensions) into a single deterministic ranking.
package classify

import (
	"fmt"
	"math"
	"sort"
)

// ScoreMap maps entity identifiers ("Q3231690") to evidence scores from a
// single classification approach. Higher scores mean better matches.
type ScoreMap map[string]float64

// A candidate entity type together with its combined score.
type Candidate struct {
	Score  float64 `json:"score"`
	Entity string  `json:"entity"`
}

// Ranking is a list of candidates in descending score order.
//
// The order is total: exact score ties are broken by the numeric suffix of
// the entity identifier (lower wins), so that repeated runs produce
// identical output.
type Ranking []Candidate

// numericSuffix returns the value of the decimal digit suffix of an entity
// identifier such as "Q3231690". The identifier must consist of a non-empty
// prefix without digits at its end, followed by at least one digit.
func numericSuffix(id string) (uint64, error) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) || i == 0 {
		return 0, fmt.Errorf("malformed entity identifier %q", id)
	}
	var n uint64
	for _, c := range id[i:] {
		n = 10*n + uint64(c-'0')
	}
	return n, nil
}

func checkFinite(m ScoreMap) error {
	for e, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite score %v for entity %q", v, e)
		}
	}
	return nil
}

// Combine3 merges three score maps into one ranking using a weighted sum
// over the union of their keys. An entity missing from a map contributes
// score zero for that map, it is not dropped from the result.
//
// Scores must be finite; entity identifiers must carry a numeric suffix.
func Combine3(m1 ScoreMap, w1 float64, m2 ScoreMap, w2 float64,
	m3 ScoreMap, w3 float64) (Ranking, error) {

	for _, m := range []ScoreMap{m1, m2, m3} {
		if err := checkFinite(m); err != nil {
			return nil, err
		}
	}

	combined := make(map[string]float64, len(m1)+len(m2)+len(m3))
	add := func(m ScoreMap, w float64) {
		for e, v := range m {
			combined[e] += w * v
		}
	}
	add(m1, w1)
	add(m2, w2)
	add(m3, w3)

	type keyed struct {
		cand   Candidate
		suffix uint64
	}
	all := make([]keyed, 0, len(combined))
	for e, score := range combined {
		suffix, err := numericSuffix(e)
		if err != nil {
			return nil, err
		}
		all = append(all, keyed{Candidate{score, e}, suffix})
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.cand.Score != b.cand.Score {
			return a.cand.Score > b.cand.Score
		}
		if a.suffix != b.suffix {
			return a.suffix < b.suffix
		}
		return a.cand.Entity < b.cand.Entity
	})

	result := make(Ranking, len(all))
	for i, k := range all {
		result[i] = k.cand
	}
	return result, nil
}

// Normalize min-max scales the scores in m into the interval [0,1].
// The empty map normalizes to the empty map. Maps with a single entry or
// with all-equal values normalize to all ones, avoiding a division by zero.
func Normalize(m ScoreMap) (ScoreMap, error) {
	if err := checkFinite(m); err != nil {
		return nil, err
	}

	result := make(ScoreMap, len(m))
	if len(m) == 0 {
		return result, nil
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range m {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		for e := range m {
			result[e] = 1.0
		}
		return result, nil
	}
	for e, v := range m {
		result[e] = (v - min) / (max - min)
	}
	return result, nil
}
