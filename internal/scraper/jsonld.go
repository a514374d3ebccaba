package scraper

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSONLDProduct is the subset of a schema.org Product that enrichment reads.
type JSONLDProduct struct {
	Type   jsonldTypes  `json:"@type"`
	Name   string       `json:"name"`
	Offers jsonldOffers `json:"offers"`
}

type JSONLDOffer struct {
	Type          string     `json:"@type"`
	Price         flexString `json:"price"`
	LowPrice      flexString `json:"lowPrice"`
	PriceCurrency string     `json:"priceCurrency"`
}

// Amount prefers the exact price over an aggregate low price.
func (o JSONLDOffer) Amount() string {
	if o.Price != "" {
		return string(o.Price)
	}
	return string(o.LowPrice)
}

// jsonldTypes accepts "@type" as a string or an array of strings.
type jsonldTypes []string

func (t *jsonldTypes) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = jsonldTypes{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*t = many
	return nil
}

func (t jsonldTypes) Has(name string) bool {
	for _, v := range t {
		if strings.EqualFold(v, name) || strings.HasSuffix(v, "/"+name) {
			return true
		}
	}
	return false
}

// jsonldOffers accepts "offers" as a single object or an array.
type jsonldOffers []JSONLDOffer

func (o *jsonldOffers) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var many []JSONLDOffer
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*o = many
		return nil
	}
	var single JSONLDOffer
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*o = jsonldOffers{single}
	return nil
}

// flexString accepts JSON strings and numbers.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(strings.TrimSpace(str))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = flexString(num.String())
	return nil
}

type jsonldNode struct {
	Type  jsonldTypes       `json:"@type"`
	Graph []json.RawMessage `json:"@graph"`
}

// findProducts walks a JSON-LD script body (object, array or @graph) and
// returns every Product node it can decode.
func findProducts(raw []byte) []JSONLDProduct {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		var products []JSONLDProduct
		for _, item := range items {
			products = append(products, findProducts(item)...)
		}
		return products
	}

	var node jsonldNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil
	}

	var products []JSONLDProduct
	for _, item := range node.Graph {
		products = append(products, findProducts(item)...)
	}
	if node.Type.Has("Product") {
		var p JSONLDProduct
		if err := json.Unmarshal(raw, &p); err == nil {
			products = append(products, p)
		}
	}
	return products
}
