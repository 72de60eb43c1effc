// NETT: narrative entity types to tables.
//
// Takes an annotations database (manually annotated tables with the cached
// scores of the three classification approaches) and prints ranking
// quality statistics, searches the weighting grid for the configuration
// with the best mean reciprocal rank, or serves the combination engine
// over HTTP. Can also report the identifying column for every table in a
// corpus.
//
// Run with --help to see command-line usage.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/cheggaaa/pb"
	"gopkg.in/alecthomas/kingpin.v1"

	"github.com/k-gruenberg/nett/classify"
	"github.com/k-gruenberg/nett/eval"
	"github.com/k-gruenberg/nett/storage"
	"github.com/k-gruenberg/nett/table"
)

var (
	dbpath = kingpin.Arg("model",
		"path to annotations database").String()
	configpath = kingpin.Flag("config",
		"TOML file with heuristic constants").Default("").String()

	stats = kingpin.Flag("stats",
		"print MRR, top-k coverage, recall and precision").Bool()
	maxK = kingpin.Flag("max-k",
		"largest k for the top-k statistics").Default("5").Int()
	sweep = kingpin.Flag("sweep",
		"search the weighting grid for the best MRR").Bool()

	noTextualSurroundings = kingpin.Flag("dont-use-textual-surroundings",
		"ignore the textual surroundings approach").Bool()
	noAttrNames = kingpin.Flag("dont-use-attr-names",
		"ignore the attribute names approach").Bool()
	noAttrExtensions = kingpin.Flag("dont-use-attr-extensions",
		"ignore the attribute extensions approach").Bool()

	weightTextualSurroundings = kingpin.Flag("textual-surroundings-weight",
		"weight of the textual surroundings approach").Default("1.0").Float()
	weightAttrNames = kingpin.Flag("attr-names-weight",
		"weight of the attribute names approach").Default("1.0").Float()
	weightAttrExtensions = kingpin.Flag("attr-extensions-weight",
		"weight of the attribute extensions approach").Default("1.0").Float()

	normalize = kingpin.Flag("normalize",
		"normalize each approach's scores into [0,1]").Bool()
	rollUpSuperclasses = kingpin.Flag("roll-up-superclasses",
		"aggregate rankings into superclasses").Bool()
	rollUpSubclasses = kingpin.Flag("roll-up-subclasses",
		"aggregate rankings into subclasses").Bool()

	corpuspath = kingpin.Flag("id-columns",
		"print the identifying column for every table in this corpus").
		Default("").String()

	dohttp = kingpin.Flag("http",
		"HTTP server address; use :0 for a random port").Default("").String()
	portfile = kingpin.Flag("portfile",
		"write server port to this file (useful with :0)").Default("").String()
)

func main() {
	kingpin.Parse()

	log.SetPrefix("nett ")

	var err error
	check := func() {
		if err != nil {
			log.Fatal(err)
		}
	}

	cfg := defaultConfig()
	if *configpath != "" {
		cfg, err = loadConfig(*configpath)
		check()
	}

	if *corpuspath != "" {
		err = printIdentifyingColumns(*corpuspath, cfg)
		check()
		return
	}

	if *dbpath == "" {
		log.Fatal("no annotations database specified (try --help)")
	}

	log.Printf("loading annotations from %s", *dbpath)
	db, settings, err := storage.LoadModel(*dbpath)
	check()
	defer db.Close()
	annotations, err := storage.LoadAnnotations(db)
	check()
	log.Printf("%d annotations loaded (corpus %s)",
		len(annotations), settings.Corpus)

	switch {
	case *dohttp != "":
		log.Fatal(restServer(*dohttp, *portfile, annotations, settings, cfg))
	case *sweep:
		err = runSweep(annotations, cfg)
		check()
	case *stats:
		err = printStats(annotations)
		check()
	default:
		// Emit one ranking per annotated table as JSON.
		out := json.NewEncoder(os.Stdout)
		for _, a := range annotations {
			var ranking classify.Ranking
			ranking, err = a.Result.Classify(flagConfig())
			check()
			err = out.Encode(struct {
				File    string           `json:"file"`
				Ranking classify.Ranking `json:"ranking"`
			}{a.File, ranking})
			check()
		}
	}
}

// flagConfig assembles the classification configuration from the
// command-line flags.
func flagConfig() classify.Config {
	return classify.Config{
		UseTextualSurroundings:    !*noTextualSurroundings,
		TextualSurroundingsWeight: *weightTextualSurroundings,
		UseAttrNames:              !*noAttrNames,
		AttrNamesWeight:           *weightAttrNames,
		UseAttrExtensions:         !*noAttrExtensions,
		AttrExtensionsWeight:      *weightAttrExtensions,
		Normalize:                 *normalize,
		RollUpSuperclasses:        *rollUpSuperclasses,
		RollUpSubclasses:          *rollUpSubclasses,
	}
}

func judgments(annotations []*storage.Annotation,
	cfg classify.Config) ([]eval.Judgment, error) {

	js := make([]eval.Judgment, len(annotations))
	for i, a := range annotations {
		ranking, err := a.Result.Classify(cfg)
		if err != nil {
			return nil, err
		}
		js[i] = eval.Judgment{Ranking: ranking, Correct: a.Correct.ID}
	}
	return js, nil
}

func printStats(annotations []*storage.Annotation) error {
	js, err := judgments(annotations, flagConfig())
	if err != nil {
		return err
	}
	ranks := eval.Ranks(js)
	byType := eval.RanksByType(js)

	mrr, err := eval.MeanReciprocalRank(ranks)
	if err != nil {
		return err
	}
	fmt.Println("===== Overall stats: =====")
	fmt.Printf("MRR: %f\n", mrr)
	for k := 1; k <= *maxK; k++ {
		coverage, err := eval.TopKCoverage(k, ranks)
		if err != nil {
			return err
		}
		recall, err := eval.RecallMacroAverage(k, byType)
		if err != nil {
			return err
		}
		precision, err := eval.PrecisionMacroAverage(k, js)
		if err != nil {
			return err
		}
		fmt.Printf("k=%d: top-k coverage %f, recall (macro-avg.) %f, "+
			"precision (macro-avg.) %f\n", k, coverage, recall, precision)
	}

	fmt.Println("===== Entity type-specific recalls: =====")
	types := make([]string, 0, len(byType))
	for entityType := range byType {
		types = append(types, entityType)
	}
	sort.Strings(types)
	for _, entityType := range types {
		fmt.Printf("%s:", entityType)
		for k := 1; k <= *maxK; k++ {
			recall, err := eval.TopKCoverage(k, byType[entityType])
			if err != nil {
				return err
			}
			fmt.Printf(" k=%d: %f", k, recall)
		}
		fmt.Println()
	}
	return nil
}

func runSweep(annotations []*storage.Annotation, cfg config) error {
	annotated := make([]eval.Annotated, len(annotations))
	for i, a := range annotations {
		annotated[i] = eval.Annotated{Result: a.Result, Correct: a.Correct.ID}
	}
	sweepCfg := eval.SweepConfig{
		UseTextualSurroundings: !*noTextualSurroundings,
		UseAttrNames:           !*noAttrNames,
		UseAttrExtensions:      !*noAttrExtensions,
		Step:                   cfg.GridStep,
		Workers:                cfg.Workers,
		RollUpSuperclasses:     *rollUpSuperclasses,
		RollUpSubclasses:       *rollUpSubclasses,
	}

	size, err := eval.GridSize(sweepCfg)
	if err != nil {
		return err
	}
	bar := pb.New(size).Start()
	sweepCfg.Progress = func() { bar.Increment() }

	best, err := eval.OptimalWeighting(annotated, sweepCfg)
	bar.Finish()
	if err != nil {
		return err
	}

	c := best.Config
	fmt.Printf("best MRR %f with weights %.2f/%.2f/%.2f, normalize=%v\n",
		best.MRR, c.TextualSurroundingsWeight, c.AttrNamesWeight,
		c.AttrExtensionsWeight, c.Normalize)
	return nil
}

func printIdentifyingColumns(path string, cfg config) error {
	h, err := cfg.heuristic()
	if err != nil {
		return err
	}
	tables, err := table.ReadCorpus(path, true)
	if err != nil {
		return err
	}
	for _, t := range tables {
		i := t.IdentifyingColumn(h)
		switch {
		case i < 0:
			fmt.Printf("%s: no identifying column\n", t.File)
		case i < len(t.Header):
			fmt.Printf("%s: column %d (%s)\n", t.File, i, t.Header[i])
		default:
			fmt.Printf("%s: column %d\n", t.File, i)
		}
	}
	return nil
}
