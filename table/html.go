package table

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML extracts all <table> elements from an HTML document. A header
// is taken from <th> cells when the document provides them; otherwise the
// table is returned without one.
func ParseHTML(r io.Reader) ([]*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var tables []*Table
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		t := &Table{}
		sel.Find("tr").Each(func(_ int, row *goquery.Selection) {
			headers := row.Find("th")
			if headers.Length() > 0 && t.Header == nil && len(t.Columns) == 0 {
				headers.Each(func(_ int, cell *goquery.Selection) {
					t.Header = append(t.Header, cellText(cell))
				})
				return
			}
			cells := row.Find("td")
			for len(t.Columns) < cells.Length() {
				t.Columns = append(t.Columns, nil)
			}
			cells.Each(func(i int, cell *goquery.Selection) {
				t.Columns[i] = append(t.Columns[i], cellText(cell))
			})
		})
		if len(t.Columns) > 0 {
			tables = append(tables, t)
		}
	})
	return tables, nil
}

func cellText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
