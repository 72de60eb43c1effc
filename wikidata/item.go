// Package wikidata holds Wikidata items and a minimal client for the
// Wikidata web API. The classification core only deals in item
// identifiers; the types here decorate rankings with labels for display.
package wikidata

// A Wikidata item ("Q3231690"). Identity is the ID alone: label and
// description are display decoration that may be filled in lazily.
type Item struct {
	ID          string `json:"id"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// String renders "Q42 (Douglas Adams)", or just the ID when no label is
// known.
func (it Item) String() string {
	if it.Label == "" {
		return it.ID
	}
	return it.ID + " (" + it.Label + ")"
}
