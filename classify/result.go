package classify

import "errors"

// ErrConflictingAggregation is returned by Classify when a configuration
// requests rolling up into superclasses and subclasses at the same time.
var ErrConflictingAggregation = errors.New(
	"invalid configuration: conflicting aggregation directions")

// Config selects which of the three approaches contribute to a
// classification and how.
type Config struct {
	UseTextualSurroundings    bool    `json:"useTextualSurroundings"`
	TextualSurroundingsWeight float64 `json:"textualSurroundingsWeight"`
	UseAttrNames              bool    `json:"useAttrNames"`
	AttrNamesWeight           float64 `json:"attrNamesWeight"`
	UseAttrExtensions         bool    `json:"useAttrExtensions"`
	AttrExtensionsWeight      float64 `json:"attrExtensionsWeight"`

	// Normalize scales each approach's scores into [0,1] before they are
	// combined, so that the weights truly reflect the contribution of each
	// approach. The information that one approach may be more confident
	// than another is lost.
	Normalize bool `json:"normalize"`

	// At most one of the two may be set.
	RollUpSuperclasses bool `json:"rollUpSuperclasses"`
	RollUpSubclasses   bool `json:"rollUpSubclasses"`
}

// AllApproaches is the configuration using all three approaches, equally
// weighted, without normalization or aggregation.
func AllApproaches() Config {
	return Config{
		UseTextualSurroundings:    true,
		TextualSurroundingsWeight: 1.0,
		UseAttrNames:              true,
		AttrNamesWeight:           1.0,
		UseAttrExtensions:         true,
		AttrExtensionsWeight:      1.0,
	}
}

// Result holds the raw scores of all three classification approaches for
// one table, captured independently of one another. It allows computing the
// final classification of the same table many times under varying
// parameters without re-running the approaches themselves, which is what
// makes statistics over large parameter grids affordable.
type Result struct {
	textualSurroundings ScoreMap
	attrNames           ScoreMap
	attrExtensions      ScoreMap
}

func copyScores(m ScoreMap) ScoreMap {
	c := make(ScoreMap, len(m))
	for e, v := range m {
		c[e] = v
	}
	return c
}

// NewResult captures the scores of the three approaches. The maps are
// copied; later changes by the caller do not affect the Result.
func NewResult(textualSurroundings, attrNames, attrExtensions ScoreMap) *Result {
	return &Result{
		textualSurroundings: copyScores(textualSurroundings),
		attrNames:           copyScores(attrNames),
		attrExtensions:      copyScores(attrExtensions),
	}
}

// TextualSurroundings returns a copy of the raw scores of the textual
// surroundings approach.
func (r *Result) TextualSurroundings() ScoreMap { return copyScores(r.textualSurroundings) }

// AttrNames returns a copy of the raw scores of the attribute names
// approach.
func (r *Result) AttrNames() ScoreMap { return copyScores(r.attrNames) }

// AttrExtensions returns a copy of the raw scores of the attribute
// extensions approach.
func (r *Result) AttrExtensions() ScoreMap { return copyScores(r.attrExtensions) }

// Classify combines the captured per-approach scores into one ranking
// according to cfg. Disabled approaches contribute nothing, regardless of
// their weight.
func (r *Result) Classify(cfg Config) (Ranking, error) {
	if cfg.RollUpSuperclasses && cfg.RollUpSubclasses {
		return nil, ErrConflictingAggregation
	}

	textualSurroundings := ScoreMap{}
	if cfg.UseTextualSurroundings {
		textualSurroundings = r.textualSurroundings
	}
	attrNames := ScoreMap{}
	if cfg.UseAttrNames {
		attrNames = r.attrNames
	}
	attrExtensions := ScoreMap{}
	if cfg.UseAttrExtensions {
		attrExtensions = r.attrExtensions
	}

	if cfg.Normalize {
		var err error
		if textualSurroundings, err = Normalize(textualSurroundings); err != nil {
			return nil, err
		}
		if attrNames, err = Normalize(attrNames); err != nil {
			return nil, err
		}
		if attrExtensions, err = Normalize(attrExtensions); err != nil {
			return nil, err
		}
	}

	ranking, err := Combine3(
		textualSurroundings, cfg.TextualSurroundingsWeight,
		attrNames, cfg.AttrNamesWeight,
		attrExtensions, cfg.AttrExtensionsWeight)
	if err != nil {
		return nil, err
	}

	var agg Aggregator
	switch {
	case cfg.RollUpSuperclasses:
		agg = Superclasses{}
	case cfg.RollUpSubclasses:
		agg = Subclasses{}
	}
	if agg != nil {
		ranking = agg.Aggregate(ranking)
	}
	return ranking, nil
}
