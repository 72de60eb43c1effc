// Database stuff.
//
// An annotations database stores, per manually annotated table, the
// correct entity type and the raw score maps of the three classification
// approaches. Statistics runs re-classify from these cached scores under
// many parameter combinations without re-running the approaches.
package storage

import (
	"database/sql"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/k-gruenberg/nett/classify"
	"github.com/k-gruenberg/nett/wikidata"
)

// The three evidence sources, as stored in the scores table.
const (
	SourceTextualSurroundings = iota
	SourceAttrNames
	SourceAttrExtensions
)

const create = (`
    pragma foreign_keys = on;
    pragma journal_mode = off;
    pragma synchronous = off;

    drop table if exists scores;
    drop table if exists annotations;

    create table parameters (
        key   text primary key not NULL,
        value text default NULL
    );

    create table annotations (
        id          integer primary key autoincrement,
        file        text not NULL,
        entity      text not NULL,
        label       text not NULL default "",
        description text not NULL default ""
    );

    create table scores (
        annotation integer not NULL references annotations(id),
        source     integer not NULL,
        entity     text not NULL,
        score      real not NULL
    );

    create index score_annotation on scores(annotation);
`)

// Settings of the run that produced an annotations database.
type Settings struct {
	// Path of the table corpus the annotations refer to.
	Corpus string
}

// An Annotation pairs one corpus table (by file name) with the correct
// entity type a human assigned to it and the cached raw scores of the
// three approaches.
type Annotation struct {
	File    string
	Correct wikidata.Item
	Result  *classify.Result
}

func MakeDB(path string, overwrite bool, s *Settings) (db *sql.DB, err error) {
	if overwrite {
		os.Remove(path)
	}
	db, err = sql.Open("sqlite3", path)
	if err != nil {
		return
	}
	db.Ping()

	_, err = db.Exec(create)
	if err == nil {
		_, err = db.Exec(`insert into parameters values ("corpus", ?)`, s.Corpus)
	}
	if err != nil {
		db.Close()
		db = nil
	}
	return
}

// LoadModel opens an annotations database and restores its settings.
func LoadModel(path string) (db *sql.DB, s *Settings, err error) {
	db, err = sql.Open("sqlite3", path)
	if err != nil {
		return
	}
	s, err = loadSettings(db)
	if err != nil {
		db.Close()
		db = nil
	}
	return
}

func loadSettings(db *sql.DB) (s *Settings, err error) {
	s = &Settings{}
	err = db.QueryRow(`select value from parameters where key = "corpus"`).
		Scan(&s.Corpus)
	if err != nil {
		s = nil
	}
	return
}

// StoreAnnotation writes one annotation and its cached scores.
func StoreAnnotation(db *sql.DB, a *Annotation) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.Exec(
		`insert into annotations (file, entity, label, description)
		 values (?, ?, ?, ?)`,
		a.File, a.Correct.ID, a.Correct.Label, a.Correct.Description)
	if err != nil {
		return
	}
	id, err := res.LastInsertId()
	if err != nil {
		return
	}

	insert, err := tx.Prepare(
		`insert into scores (annotation, source, entity, score)
		 values (?, ?, ?, ?)`)
	if err != nil {
		return
	}
	for source, scores := range map[int]classify.ScoreMap{
		SourceTextualSurroundings: a.Result.TextualSurroundings(),
		SourceAttrNames:           a.Result.AttrNames(),
		SourceAttrExtensions:      a.Result.AttrExtensions(),
	} {
		for entity, score := range scores {
			if _, err = insert.Exec(id, source, entity, score); err != nil {
				return
			}
		}
	}
	return
}

// LoadAnnotations restores all annotations in insertion order.
func LoadAnnotations(db *sql.DB) (annotations []*Annotation, err error) {
	rows, err := db.Query(
		`select id, file, entity, label, description
		 from annotations order by id`)
	if err != nil {
		return
	}
	var ids []int64
	for rows.Next() {
		var id int64
		a := &Annotation{}
		err = rows.Scan(&id, &a.File, &a.Correct.ID,
			&a.Correct.Label, &a.Correct.Description)
		if err != nil {
			rows.Close()
			return
		}
		ids = append(ids, id)
		annotations = append(annotations, a)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return
	}

	for i, id := range ids {
		if annotations[i].Result, err = loadScores(db, id); err != nil {
			return
		}
	}
	return
}

func loadScores(db *sql.DB, annotation int64) (*classify.Result, error) {
	rows, err := db.Query(
		`select source, entity, score from scores where annotation = ?`,
		annotation)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	maps := map[int]classify.ScoreMap{
		SourceTextualSurroundings: {},
		SourceAttrNames:           {},
		SourceAttrExtensions:      {},
	}
	for rows.Next() {
		var (
			source int
			entity string
			score  float64
		)
		if err := rows.Scan(&source, &entity, &score); err != nil {
			return nil, err
		}
		maps[source][entity] = score
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return classify.NewResult(
		maps[SourceTextualSurroundings],
		maps[SourceAttrNames],
		maps[SourceAttrExtensions]), nil
}
