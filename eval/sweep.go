package eval

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/k-gruenberg/nett/classify"
)

// An Annotated pairs the raw classification result of a table with the
// correct entity type a human annotated for it. The sweep re-classifies
// these under every weighting combination.
type Annotated struct {
	Result  *classify.Result
	Correct string
}

// SweepConfig configures the optimal-weighting search.
type SweepConfig struct {
	UseTextualSurroundings bool
	UseAttrNames           bool
	UseAttrExtensions      bool

	// Grid resolution, e.g. 0.1.
	Step float64

	// Number of worker goroutines; GOMAXPROCS when zero or below.
	Workers int

	// Called once per evaluated combination when set, possibly from
	// multiple goroutines.
	Progress func()

	RollUpSuperclasses bool
	RollUpSubclasses   bool
}

// A Combination is one evaluated point of the weighting grid.
type Combination struct {
	Config classify.Config
	MRR    float64
}

// The weights of the active approaches sum to a fixed total so that
// combinations stay comparable: 2.0 when all three approaches are active,
// 1.0 for two.
func weightTotal(active int) float64 {
	if active == 3 {
		return 2.0
	}
	return 1.0
}

// GridSize returns the number of combinations OptimalWeighting evaluates
// for cfg, for progress reporting.
func GridSize(cfg SweepConfig) (int, error) {
	combos, err := combinations(cfg)
	if err != nil {
		return 0, err
	}
	return len(combos), nil
}

func combinations(cfg SweepConfig) ([]classify.Config, error) {
	active := 0
	for _, use := range []bool{cfg.UseTextualSurroundings,
		cfg.UseAttrNames, cfg.UseAttrExtensions} {
		if use {
			active++
		}
	}
	if active < 2 {
		return nil, errors.New(
			"weighting sweep needs at least two active approaches")
	}
	if cfg.Step <= 0 {
		return nil, fmt.Errorf("invalid grid step %v", cfg.Step)
	}

	total := weightTotal(active)
	steps := int(math.Round(total / cfg.Step))
	if steps < 1 {
		return nil, fmt.Errorf("grid step %v exceeds weight total %v",
			cfg.Step, total)
	}
	weight := func(i int) float64 { return float64(i) * cfg.Step }

	base := classify.Config{
		UseTextualSurroundings: cfg.UseTextualSurroundings,
		UseAttrNames:           cfg.UseAttrNames,
		UseAttrExtensions:      cfg.UseAttrExtensions,
		RollUpSuperclasses:     cfg.RollUpSuperclasses,
		RollUpSubclasses:       cfg.RollUpSubclasses,
	}

	// Sets the weights of the active approaches, in approach order.
	withWeights := func(ws ...float64) classify.Config {
		c := base
		i := 0
		if c.UseTextualSurroundings {
			c.TextualSurroundingsWeight = ws[i]
			i++
		}
		if c.UseAttrNames {
			c.AttrNamesWeight = ws[i]
			i++
		}
		if c.UseAttrExtensions {
			c.AttrExtensionsWeight = ws[i]
		}
		return c
	}

	// Ascending weight grid; normalization true before false. The last
	// active weight is the remainder, keeping the sum at total.
	var combos []classify.Config
	add := func(c classify.Config) {
		c.Normalize = true
		combos = append(combos, c)
		c.Normalize = false
		combos = append(combos, c)
	}
	if active == 3 {
		for i := 0; i <= steps; i++ {
			for j := 0; i+j <= steps; j++ {
				add(withWeights(weight(i), weight(j), weight(steps-i-j)))
			}
		}
	} else {
		for i := 0; i <= steps; i++ {
			add(withWeights(weight(i), weight(steps-i)))
		}
	}
	return combos, nil
}

// OptimalWeighting recomputes the MRR over annotated for every weighting
// combination on the grid and returns the combination maximizing it. Ties
// go to the first combination in grid order. The combinations are
// independent of one another and are evaluated on a bounded worker pool.
func OptimalWeighting(annotated []Annotated, cfg SweepConfig) (Combination, error) {
	if len(annotated) == 0 {
		return Combination{}, ErrEmptyInput
	}
	combos, err := combinations(cfg)
	if err != nil {
		return Combination{}, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	mrrs := make([]float64, len(combos))
	var g errgroup.Group
	g.SetLimit(workers)
	for idx := range combos {
		idx := idx
		g.Go(func() error {
			mrr, err := sweepMRR(annotated, combos[idx])
			if err != nil {
				return err
			}
			mrrs[idx] = mrr
			if cfg.Progress != nil {
				cfg.Progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Combination{}, err
	}

	best := 0
	for i := range mrrs {
		if mrrs[i] > mrrs[best] {
			best = i
		}
	}
	return Combination{combos[best], mrrs[best]}, nil
}

func sweepMRR(annotated []Annotated, cfg classify.Config) (float64, error) {
	ranks := make([]float64, len(annotated))
	for i, a := range annotated {
		ranking, err := a.Result.Classify(cfg)
		if err != nil {
			return 0, err
		}
		ranks[i] = Rank(ranking, a.Correct)
	}
	return MeanReciprocalRank(ranks)
}
