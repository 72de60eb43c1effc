// Package eval computes rank-based quality metrics for classification
// rankings against manually annotated ground truth: top-k coverage,
// macro-averaged recall and precision, and the mean reciprocal rank.
package eval

import (
	"errors"
	"math"

	"github.com/k-gruenberg/nett/classify"
)

// ErrEmptyInput is returned when a metric is evaluated over no ranks at
// all; the metrics below are undefined for empty inputs.
var ErrEmptyInput = errors.New("empty input: no ranks to evaluate")

// A Judgment pairs the ranking computed for one table with the correct
// entity type a human annotated for that table.
type Judgment struct {
	Ranking classify.Ranking
	Correct string
}

// Rank returns the 0-based position of entity in r, or +Inf when entity
// does not occur in r at all.
func Rank(r classify.Ranking, entity string) float64 {
	for i, c := range r {
		if c.Entity == entity {
			return float64(i)
		}
	}
	return math.Inf(1)
}

// Ranks returns the rank of the correct entity for every judgment.
func Ranks(judgments []Judgment) []float64 {
	ranks := make([]float64, len(judgments))
	for i, j := range judgments {
		ranks[i] = Rank(j.Ranking, j.Correct)
	}
	return ranks
}

// RanksByType groups the ranks of the correct entities by ground-truth
// entity type.
func RanksByType(judgments []Judgment) map[string][]float64 {
	byType := make(map[string][]float64)
	for _, j := range judgments {
		byType[j.Correct] = append(byType[j.Correct], Rank(j.Ranking, j.Correct))
	}
	return byType
}

// TopKCoverage returns the fraction of ranks strictly below k. Ranks are
// 0-based, so rank < k means: among the first k candidates.
func TopKCoverage(k int, ranks []float64) (float64, error) {
	if len(ranks) == 0 {
		return 0, ErrEmptyInput
	}
	hits := 0
	for _, r := range ranks {
		if r < float64(k) {
			hits++
		}
	}
	return float64(hits) / float64(len(ranks)), nil
}

// RecallMacroAverage computes, for every ground-truth type, the fraction
// of its instances with rank below k, and averages these fractions without
// weighting them by instance count.
func RecallMacroAverage(k int, ranksByType map[string][]float64) (float64, error) {
	if len(ranksByType) == 0 {
		return 0, ErrEmptyInput
	}
	var sum float64
	for _, ranks := range ranksByType {
		recall, err := TopKCoverage(k, ranks)
		if err != nil {
			return 0, err
		}
		sum += recall
	}
	return sum / float64(len(ranksByType)), nil
}

// TypeSpecificPrecision computes the precision for one entity type at
// cutoff k. True positives are tables of that type whose correct entity
// ranks below k; false positives are tables of other types whose rankings
// nonetheless place the type below k. Returns NaN when the type was never
// placed below k at all, i.e. when the precision is undefined.
func TypeSpecificPrecision(k int, entityType string, judgments []Judgment) float64 {
	tp, fp := 0, 0
	for _, j := range judgments {
		if Rank(j.Ranking, entityType) >= float64(k) {
			continue
		}
		if j.Correct == entityType {
			tp++
		} else {
			fp++
		}
	}
	if tp+fp == 0 {
		return math.NaN()
	}
	return float64(tp) / float64(tp+fp)
}

// PrecisionMacroAverage averages TypeSpecificPrecision over all
// ground-truth types, skipping types whose precision is undefined. When
// every type is undefined the result itself is NaN; that is a valid
// "undefined metric" outcome, not an error.
func PrecisionMacroAverage(k int, judgments []Judgment) (float64, error) {
	if len(judgments) == 0 {
		return 0, ErrEmptyInput
	}
	types := make(map[string]bool)
	for _, j := range judgments {
		types[j.Correct] = true
	}
	var sum float64
	n := 0
	for entityType := range types {
		if p := TypeSpecificPrecision(k, entityType, judgments); !math.IsNaN(p) {
			sum += p
			n++
		}
	}
	if n == 0 {
		return math.NaN(), nil
	}
	return sum / float64(n), nil
}

// MeanReciprocalRank returns the mean of 1/(1+rank) over all ranks. An
// infinite rank contributes zero.
func MeanReciprocalRank(ranks []float64) (float64, error) {
	if len(ranks) == 0 {
		return 0, ErrEmptyInput
	}
	var sum float64
	for _, r := range ranks {
		sum += 1 / (1 + r)
	}
	return sum / float64(len(ranks)), nil
}
