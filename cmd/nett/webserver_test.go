package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/k-gruenberg/nett/classify"
)

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestClassifyHandler(t *testing.T) {
	w := post(t, classifyHandler{}, `{
		"textualSurroundings": {"Q5": 1.0},
		"attrNames": {"Q5": 1.0, "Q42": 3.0},
		"attrExtensions": {},
		"config": {
			"useTextualSurroundings": true, "textualSurroundingsWeight": 1,
			"useAttrNames": true, "attrNamesWeight": 1,
			"useAttrExtensions": true, "attrExtensionsWeight": 1
		}
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	var ranking classify.Ranking
	if err := json.Unmarshal(w.Body.Bytes(), &ranking); err != nil {
		t.Fatal(err)
	}
	want := classify.Ranking{{Score: 3.0, Entity: "Q42"}, {Score: 2.0, Entity: "Q5"}}
	if !reflect.DeepEqual(ranking, want) {
		t.Errorf("expected %v, got %v", want, ranking)
	}
}

func TestClassifyHandlerConflict(t *testing.T) {
	w := post(t, classifyHandler{}, `{
		"config": {"rollUpSuperclasses": true, "rollUpSubclasses": true}
	}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestClassifyHandlerRejectsGet(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	classifyHandler{}.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestIdColumnHandler(t *testing.T) {
	h, err := defaultConfig().heuristic()
	if err != nil {
		t.Fatal(err)
	}
	w := post(t, idColumnHandler{h}, `{
		"columns": [["a", "b", "a"], ["x", "y", "z"]]
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	var resp struct {
		Index int `json:"index"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Index != 1 {
		t.Errorf("expected column 1, got %d", resp.Index)
	}
}
