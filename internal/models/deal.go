package models

import "strings"

// DefaultTitle replaces an empty deal title on the image and in the caption.
const DefaultTitle = "Hot Deal!"

// DefaultCategory is the fallback styling bucket for unknown or empty categories.
const DefaultCategory = "default"

// Deal represents the structured information for one promotional post.
// A Deal is passed by value and never mutated once built.
type Deal struct {
	Title         string `json:"title" validate:"required"`
	Price         string `json:"price,omitempty"`
	OriginalPrice string `json:"original_price,omitempty"`
	Discount      string `json:"discount,omitempty"`
	Category      string `json:"category,omitempty"`
	Source        string `json:"source,omitempty"`
	URL           string `json:"url,omitempty"`
}

// DisplayTitle returns the title, or DefaultTitle when it is blank.
func (d Deal) DisplayTitle() string {
	if strings.TrimSpace(d.Title) == "" {
		return DefaultTitle
	}
	return d.Title
}

// CategoryKey returns the lower-cased category used for styling lookups.
func (d Deal) CategoryKey() string {
	c := strings.ToLower(strings.TrimSpace(d.Category))
	if c == "" {
		return DefaultCategory
	}
	return c
}
