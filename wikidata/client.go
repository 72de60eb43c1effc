package wikidata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const defaultAPI = "https://www.wikidata.org/w/api.php"

// Client talks to the Wikidata web API.
type Client struct {
	// HTTP client to use; http.DefaultClient when nil.
	HTTP *http.Client

	// API endpoint; the public Wikidata endpoint when empty.
	Endpoint string
}

func (c *Client) get(query url.Values, result interface{}) error {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = defaultAPI
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	query.Set("format", "json")
	resp, err := client.Get(endpoint + "?" + query.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error %d from %s", resp.StatusCode, endpoint)
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

// Search returns the items matching a search string, best match first
// (the wbsearchentities API action).
func (c *Client) Search(s string) ([]Item, error) {
	var parsed struct {
		Search []struct {
			ID          string `json:"id"`
			Label       string `json:"label"`
			Description string `json:"description"`
		} `json:"search"`
	}
	err := c.get(url.Values{
		"action":   {"wbsearchentities"},
		"language": {"en"},
		"type":     {"item"},
		"continue": {"0"},
		"search":   {s},
	}, &parsed)
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(parsed.Search))
	for i, s := range parsed.Search {
		items[i] = Item{s.ID, s.Label, s.Description}
	}
	return items, nil
}

// Fill populates the label and description of the item with the given ID
// (the wbgetentities API action).
func (c *Client) Fill(id string) (Item, error) {
	var parsed struct {
		Entities map[string]struct {
			Labels map[string]struct {
				Value string `json:"value"`
			} `json:"labels"`
			Descriptions map[string]struct {
				Value string `json:"value"`
			} `json:"descriptions"`
		} `json:"entities"`
	}
	err := c.get(url.Values{
		"action":    {"wbgetentities"},
		"languages": {"en"},
		"ids":       {id},
	}, &parsed)
	if err != nil {
		return Item{}, err
	}

	entity, ok := parsed.Entities[id]
	if !ok {
		return Item{}, fmt.Errorf("no such entity: %s", id)
	}
	item := Item{ID: id}
	if label, ok := entity.Labels["en"]; ok {
		item.Label = label.Value
	}
	if desc, ok := entity.Descriptions["en"]; ok {
		item.Description = desc.Value
	}
	return item, nil
}
