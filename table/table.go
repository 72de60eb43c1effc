// Package table holds relational web tables and the heuristics that pick
// the column identifying their entities.
package table

// A relational table, stored column-major. The header row and the
// surrounding free text are optional; an empty Header means "no header".
// Columns may have unequal lengths when the source data was ragged.
type Table struct {
	SurroundingText string     `json:"surroundingText"`
	Header          []string   `json:"header"`
	Columns         [][]string `json:"columns"`
}

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.Columns) }

// MinHeight returns the number of rows, counting a header row if present.
// It differs from MaxHeight only for ragged tables.
func (t *Table) MinHeight() int {
	if len(t.Columns) == 0 {
		return 0
	}
	min := len(t.Columns[0])
	for _, col := range t.Columns[1:] {
		if len(col) < min {
			min = len(col)
		}
	}
	if len(t.Header) > 0 {
		min++
	}
	return min
}

// MaxHeight returns the number of rows of the longest column, counting a
// header row if present.
func (t *Table) MaxHeight() int {
	max := 0
	for _, col := range t.Columns {
		if len(col) > max {
			max = len(col)
		}
	}
	if max > 0 && len(t.Header) > 0 {
		max++
	}
	return max
}

// MinDimension returns the smaller of width and height, not counting the
// header row. Corpus readers use it to drop degenerate tables.
func (t *Table) MinDimension() int {
	w := t.Width()
	h := t.MinHeight()
	if len(t.Header) > 0 {
		h--
	}
	if w < h {
		return w
	}
	return h
}
