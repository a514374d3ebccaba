package scraper

import (
	"encoding/json"
	"fmt"
	"os"
)

// SelectorConfig lists, per deal field, the CSS selectors tried in order.
// Each match yields its content attribute, value attribute or text.
type SelectorConfig struct {
	Title         []string `json:"title"`
	PriceAmount   []string `json:"price_amount"`
	PriceCurrency []string `json:"price_currency"`
	SiteName      []string `json:"site_name"`
}

// LoadSelectors loads the selector configuration from the specified JSON file.
func LoadSelectors(path string) (SelectorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SelectorConfig{}, fmt.Errorf("failed to read selector config file: %w", err)
	}

	return LoadSelectorsFromBytes(data)
}

// LoadSelectorsFromBytes parses selector configuration from raw JSON bytes.
// This supports loading from embedded data via go:embed.
func LoadSelectorsFromBytes(data []byte) (SelectorConfig, error) {
	var config SelectorConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return SelectorConfig{}, fmt.Errorf("failed to parse selector config JSON: %w", err)
	}
	if len(config.Title) == 0 && len(config.PriceAmount) == 0 && len(config.SiteName) == 0 {
		return SelectorConfig{}, fmt.Errorf("selector config defines no selectors")
	}

	return config, nil
}

// DefaultSelectors returns the fallback configuration if no JSON file is loaded.
// The embedded selectors.json should be preferred.
func DefaultSelectors() SelectorConfig {
	return SelectorConfig{
		Title:         []string{"meta[property='og:title']", "meta[name='twitter:title']", "[itemprop='name']"},
		PriceAmount:   []string{"meta[property='product:price:amount']", "meta[property='og:price:amount']", "[itemprop='price']"},
		PriceCurrency: []string{"meta[property='product:price:currency']", "meta[property='og:price:currency']", "[itemprop='priceCurrency']"},
		SiteName:      []string{"meta[property='og:site_name']", "meta[name='application-name']"},
	}
}
