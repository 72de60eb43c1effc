package table

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const carsCSV = `car name,mpg,cylinders
chevrolet chevelle malibu,18.0,8
buick skylark 320,15.0,8
plymouth satellite,18.0,8
`

func TestParseCSV(t *testing.T) {
	tab, err := ParseCSV(strings.NewReader(carsCSV), ',', true)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"car name", "mpg", "cylinders"}; !reflect.DeepEqual(tab.Header, want) {
		t.Errorf("expected header %v, got %v", want, tab.Header)
	}
	if tab.Width() != 3 {
		t.Errorf("expected width 3, got %d", tab.Width())
	}
	wantCol := []string{"18.0", "15.0", "18.0"}
	if !reflect.DeepEqual(tab.Columns[1], wantCol) {
		t.Errorf("expected column %v, got %v", wantCol, tab.Columns[1])
	}
	if tab.MinHeight() != 4 || tab.MaxHeight() != 4 {
		t.Errorf("expected height 4, got %d and %d",
			tab.MinHeight(), tab.MaxHeight())
	}
}

func TestParseCSVNoHeader(t *testing.T) {
	tab, err := ParseCSV(strings.NewReader("a,b\nc,d\n"), ',', false)
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.Header) != 0 {
		t.Errorf("expected no header, got %v", tab.Header)
	}
	if want := [][]string{{"a", "c"}, {"b", "d"}}; !reflect.DeepEqual(tab.Columns, want) {
		t.Errorf("expected columns %v, got %v", want, tab.Columns)
	}
}

const wdcJSON = `{
	"relation": [
		["Name", "Mound Station", "Mount Sterling", "Ripley"],
		["Status", "Village", "City", "Village"],
		["County", "Brown", "Brown", "Brown"]
	],
	"hasHeader": true,
	"headerPosition": "FIRST_ROW",
	"tableType": "RELATION",
	"textBeforeTable": "Villages in Brown County.",
	"textAfterTable": "Census data."
}`

func TestParseJSON(t *testing.T) {
	tab, err := ParseJSON([]byte(wdcJSON))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Name", "Status", "County"}; !reflect.DeepEqual(tab.Header, want) {
		t.Errorf("expected header %v, got %v", want, tab.Header)
	}
	wantCol := []string{"Mound Station", "Mount Sterling", "Ripley"}
	if !reflect.DeepEqual(tab.Columns[0], wantCol) {
		t.Errorf("expected column %v, got %v", wantCol, tab.Columns[0])
	}
	if want := "Villages in Brown County. Census data."; tab.SurroundingText != want {
		t.Errorf("expected surrounding text %q, got %q",
			want, tab.SurroundingText)
	}
}

func TestParseJSONMixedHeader(t *testing.T) {
	in := `{"relation": [["a","b"]], "hasHeader": true, "headerPosition": "MIXED"}`
	if _, err := ParseJSON([]byte(in)); err == nil {
		t.Error("got no error for MIXED header position")
	}
}

const tablesHTML = `<html><body>
<p>Some text.</p>
<table>
<tr><th>Song Title</th><th>Year</th></tr>
<tr><td>The Stroke</td><td>1981</td></tr>
<tr><td>My Kinda Lover</td><td>1981</td></tr>
</table>
</body></html>`

func TestParseHTML(t *testing.T) {
	tables, err := ParseHTML(strings.NewReader(tablesHTML))
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	tab := tables[0]
	if want := []string{"Song Title", "Year"}; !reflect.DeepEqual(tab.Header, want) {
		t.Errorf("expected header %v, got %v", want, tab.Header)
	}
	if want := [][]string{
		{"The Stroke", "My Kinda Lover"},
		{"1981", "1981"},
	}; !reflect.DeepEqual(tab.Columns, want) {
		t.Errorf("expected columns %v, got %v", want, tab.Columns)
	}
}

func TestReadCorpus(t *testing.T) {
	dir := t.TempDir()

	var err error
	check := func() {
		if err != nil {
			t.Fatal(err)
		}
	}

	err = os.WriteFile(filepath.Join(dir, "b.csv"), []byte(carsCSV), 0666)
	check()
	err = os.WriteFile(filepath.Join(dir, "a.json"), []byte(wdcJSON), 0666)
	check()
	// Too small, must be filtered out.
	err = os.WriteFile(filepath.Join(dir, "c.csv"),
		[]byte("x,y\n1,2\n"), 0666)
	check()

	tables, err := ReadCorpus(dir, false)
	check()

	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	// Sorted order: a.json before b.csv.
	if !strings.HasSuffix(tables[0].File, "a.json") {
		t.Errorf("expected a.json first, got %s", tables[0].File)
	}
	if !strings.HasSuffix(tables[1].File, "b.csv") {
		t.Errorf("expected b.csv second, got %s", tables[1].File)
	}
}
