package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// ParseCSV reads a table from CSV. When hasHeader is set, the first record
// becomes the header row. Records may have varying lengths; short records
// leave the trailing columns short.
func ParseCSV(r io.Reader, delimiter rune, hasHeader bool) (*Table, error) {
	cr := csv.NewReader(r)
	if delimiter != 0 {
		cr.Comma = delimiter
	}
	cr.FieldsPerRecord = -1

	t := &Table{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if hasHeader && t.Header == nil {
			t.Header = record
			continue
		}
		for len(t.Columns) < len(record) {
			t.Columns = append(t.Columns, nil)
		}
		for i, cell := range record {
			t.Columns[i] = append(t.Columns[i], cell)
		}
	}
	return t, nil
}

// The JSON format of the WDC Web Table Corpus
// (http://webdatacommons.org/webtables/). "relation" is column-major.
type wdcTable struct {
	Relation        [][]string `json:"relation"`
	HasHeader       bool       `json:"hasHeader"`
	HeaderPosition  string     `json:"headerPosition"`
	TableType       string     `json:"tableType"`
	TextBeforeTable string     `json:"textBeforeTable"`
	TextAfterTable  string     `json:"textAfterTable"`
}

// ParseJSON reads a table in the WDC Web Table Corpus format. Tables whose
// header position the corpus itself marks as unreliable ("MIXED") are
// rejected.
func ParseJSON(data []byte) (*Table, error) {
	var w wdcTable
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	t := &Table{SurroundingText: w.TextBeforeTable + " " + w.TextAfterTable}

	if !w.HasHeader {
		t.Columns = w.Relation
		return t, nil
	}
	switch w.HeaderPosition {
	case "FIRST_ROW":
		// Column-major: the header is the first cell of every column.
		for _, col := range w.Relation {
			if len(col) == 0 {
				return nil, fmt.Errorf("empty column in relation")
			}
			t.Header = append(t.Header, col[0])
			t.Columns = append(t.Columns, col[1:])
		}
	case "FIRST_COLUMN":
		if len(w.Relation) == 0 {
			return nil, fmt.Errorf("empty relation")
		}
		t.Header = w.Relation[0]
		t.Columns = transpose(w.Relation[1:])
	case "MIXED":
		return nil, fmt.Errorf("unreliable header position %q", w.HeaderPosition)
	default:
		return nil, fmt.Errorf("unknown header position %q", w.HeaderPosition)
	}
	return t, nil
}

func transpose(rows [][]string) [][]string {
	var columns [][]string
	for _, row := range rows {
		for len(columns) < len(row) {
			columns = append(columns, nil)
		}
		for i, cell := range row {
			columns[i] = append(columns[i], cell)
		}
	}
	return columns
}
