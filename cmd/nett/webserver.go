package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/k-gruenberg/nett/classify"
	"github.com/k-gruenberg/nett/storage"
	"github.com/k-gruenberg/nett/table"
)

var infoTemplate = template.Must(template.New("info").Parse(`<html>
<head><title>NETT</title></head>
  <body>
    <h1>NETT</h1>
    <p>
      Serving {{.Annotations}} annotated tables
      from corpus <code>{{.Corpus}}</code>.
    </p>
    <p>Endpoints take JSON via POST requests and produce JSON:
      <ul>
        <li>
          <code>/classify</code> combines three score maps into a ranking
        </li>
        <li>
          <code>/idcolumn</code> reports the identifying column of a table
        </li>
      </ul>
    </p>
  </body>
</html>`))

type classifyRequest struct {
	TextualSurroundings classify.ScoreMap `json:"textualSurroundings"`
	AttrNames           classify.ScoreMap `json:"attrNames"`
	AttrExtensions      classify.ScoreMap `json:"attrExtensions"`
	Config              classify.Config   `json:"config"`
}

type classifyHandler struct{}

func (classifyHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var cr classifyRequest
	if err := decode(req, &cr); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result := classify.NewResult(
		cr.TextualSurroundings, cr.AttrNames, cr.AttrExtensions)
	ranking, err := result.Classify(cr.Config)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if ranking == nil {
		// Report "[]" to caller, not "null".
		ranking = classify.Ranking{}
	}
	json.NewEncoder(w).Encode(ranking)
}

type idColumnHandler struct {
	heuristic table.Heuristic
}

func (h idColumnHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var t table.Table
	if err := decode(req, &t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(struct {
		Index int `json:"index"`
	}{t.IdentifyingColumn(h.heuristic)})
}

func decode(req *http.Request, v interface{}) error {
	if req.Method != http.MethodPost {
		return errors.New("POST request expected")
	}
	if req.Body == nil {
		return errors.New("received no data")
	}
	return json.NewDecoder(req.Body).Decode(v)
}

func restServer(addr, portfile string, annotations []*storage.Annotation,
	settings *storage.Settings, cfg config) error {

	h, err := cfg.heuristic()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		infoTemplate.Execute(w, struct {
			Annotations int
			Corpus      string
		}{len(annotations), settings.Corpus})
	})
	mux.Handle("/classify", classifyHandler{})
	mux.Handle("/idcolumn", idColumnHandler{h})

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if portfile != "" {
		_, port, err := net.SplitHostPort(listener.Addr().String())
		if err != nil {
			return err
		}
		err = os.WriteFile(portfile, []byte(port+"\n"), 0666)
		if err != nil {
			return err
		}
	}
	fmt.Println("serving on", listener.Addr())
	return http.Serve(listener, mux)
}
