package storage

import (
	"reflect"
	"testing"

	"github.com/k-gruenberg/nett/classify"
	"github.com/k-gruenberg/nett/wikidata"
)

func TestMakeDB(t *testing.T) {
	db, err := MakeDB("/", true, &Settings{"corpus"})
	if db != nil {
		t.Error("got non-nil for invalid path name")
	}
	if err == nil {
		t.Error("got no error for invalid path name")
	}
}

func TestSettings(t *testing.T) {
	var err error
	check := func() {
		if err != nil {
			t.Fatal(err)
		}
	}

	db, err := MakeDB(":memory:", true, &Settings{"some/corpus"})
	check()
	defer db.Close()

	s, err := loadSettings(db)
	check()
	if s == nil {
		t.Fatal("got nil *Settings, but no error")
	}
	if s.Corpus != "some/corpus" {
		t.Errorf("expected corpus path restored, got %q", s.Corpus)
	}
}

func TestStoreLoadAnnotations(t *testing.T) {
	var err error
	check := func() {
		if err != nil {
			t.Fatal(err)
		}
	}

	db, err := MakeDB(":memory:", true, &Settings{"corpus"})
	check()
	defer db.Close()

	stored := []*Annotation{
		{
			File: "cars.csv",
			Correct: wikidata.Item{
				ID:    "Q3231690",
				Label: "automobile model",
			},
			Result: classify.NewResult(
				classify.ScoreMap{"Q3231690": 0.7, "Q1420": 0.2},
				classify.ScoreMap{"Q3231690": 1.0},
				classify.ScoreMap{"Q1420": 4.0}),
		},
		{
			File:    "restaurants.json",
			Correct: wikidata.Item{ID: "Q11707", Label: "restaurant"},
			Result: classify.NewResult(
				nil,
				classify.ScoreMap{"Q11707": 2.0},
				nil),
		},
	}
	for _, a := range stored {
		err = StoreAnnotation(db, a)
		check()
	}

	loaded, err := LoadAnnotations(db)
	check()

	if len(loaded) != len(stored) {
		t.Fatalf("expected %d annotations, got %d", len(stored), len(loaded))
	}
	for i, a := range stored {
		got := loaded[i]
		if got.File != a.File {
			t.Errorf("expected file %q, got %q", a.File, got.File)
		}
		if got.Correct != a.Correct {
			t.Errorf("expected entity %+v, got %+v", a.Correct, got.Correct)
		}
		for name, maps := range map[string][2]classify.ScoreMap{
			"textual surroundings": {a.Result.TextualSurroundings(),
				got.Result.TextualSurroundings()},
			"attr names": {a.Result.AttrNames(), got.Result.AttrNames()},
			"attr extensions": {a.Result.AttrExtensions(),
				got.Result.AttrExtensions()},
		} {
			if !reflect.DeepEqual(maps[0], maps[1]) {
				t.Errorf("%s: expected %v, got %v", name, maps[0], maps[1])
			}
		}
	}
}

func TestClassifyFromRestoredScores(t *testing.T) {
	// Rankings classified from restored scores must equal rankings from
	// the original scores.
	var err error
	check := func() {
		if err != nil {
			t.Fatal(err)
		}
	}

	db, err := MakeDB(":memory:", true, &Settings{"corpus"})
	check()
	defer db.Close()

	result := classify.NewResult(
		classify.ScoreMap{"Q5": 1.5},
		classify.ScoreMap{"Q5": 0.5, "Q42": 2.0},
		classify.ScoreMap{"Q7": 1.0})
	err = StoreAnnotation(db, &Annotation{
		File:    "t.csv",
		Correct: wikidata.Item{ID: "Q5"},
		Result:  result,
	})
	check()

	loaded, err := LoadAnnotations(db)
	check()

	want, err := result.Classify(classify.AllApproaches())
	check()
	got, err := loaded[0].Result.Classify(classify.AllApproaches())
	check()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected ranking %v, got %v", want, got)
	}
}
