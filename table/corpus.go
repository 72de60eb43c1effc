package table

import (
	"archive/tar"
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// A corpus table together with the file it came from. The file name is the
// key under which manual annotations refer to a table.
type CorpusTable struct {
	File string
	*Table
}

// Tables smaller than this (in either dimension, header not counted) are
// dropped from corpora, as in the original NETT tool.
const minCorpusDimension = 3

// ReadCorpus reads all tables from path: either a directory containing
// .csv, .json, .html and .tar files, or a single such file. Directories
// are read in sorted order so that the result is predictable; annotations
// refer to tables by position and name. Files that fail to parse are
// logged and skipped, as are tables smaller than 3x3.
//
// CSV files are assumed to carry their header in the first record.
func ReadCorpus(path string, recursive bool) ([]CorpusTable, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return readCorpusFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var tables []CorpusTable
	for _, entry := range entries {
		sub := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if !recursive {
				continue
			}
			more, err := ReadCorpus(sub, true)
			if err != nil {
				return nil, err
			}
			tables = append(tables, more...)
			continue
		}
		more, err := readCorpusFile(sub)
		if err != nil {
			log.Printf("skipping %s: %v", sub, err)
			continue
		}
		tables = append(tables, more...)
	}
	return tables, nil
}

func readCorpusFile(path string) ([]CorpusTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tar":
		return readTar(path)
	case ".csv", ".json", ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return parseEntry(path, f)
	}
	return nil, nil // unknown file types are ignored
}

// readTar reads the tables from all .csv, .json and .html members of a tar
// archive, in archive order.
func readTar(path string) (tables []CorpusTable, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name := filepath.Base(hdr.Name)
		if hdr.Typeflag != tar.TypeReg || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, err
		}
		more, err := parseEntry(path+":"+hdr.Name, bytes.NewReader(data))
		if err != nil {
			log.Printf("skipping %s in %s: %v", hdr.Name, path, err)
			continue
		}
		tables = append(tables, more...)
	}
	return tables, nil
}

func parseEntry(name string, r io.Reader) ([]CorpusTable, error) {
	var (
		parsed []*Table
		err    error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		var t *Table
		t, err = ParseCSV(r, ',', true)
		parsed = []*Table{t}
	case ".json":
		var data []byte
		data, err = io.ReadAll(r)
		if err == nil {
			var t *Table
			t, err = ParseJSON(data)
			parsed = []*Table{t}
		}
	case ".html", ".htm":
		parsed, err = ParseHTML(r)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tables []CorpusTable
	for _, t := range parsed {
		if t.MinDimension() < minCorpusDimension {
			continue
		}
		tables = append(tables, CorpusTable{name, t})
	}
	return tables, nil
}
