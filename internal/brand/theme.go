package brand

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pauljones0/thehub-deal-poster/internal/models"
)

type Theme struct {
	Name          string              `yaml:"name"`
	Accent        string              `yaml:"accent"`
	Text          string              `yaml:"text"`
	Muted         string              `yaml:"muted"`
	Highlight     string              `yaml:"highlight"`
	Subtle        string              `yaml:"subtle"`
	ImageCTA      string              `yaml:"image_cta"`
	CaptionCTA    string              `yaml:"caption_cta"`
	Separator     string              `yaml:"separator"`
	PostURLPrefix string              `yaml:"post_url_prefix"`
	BaseHashtags  []string            `yaml:"base_hashtags"`
	Categories    map[string]Category `yaml:"categories"`
}

type Category struct {
	Background string   `yaml:"background"`
	Hashtags   []string `yaml:"hashtags"`
}

// LoadTheme loads the theme from the specified YAML file.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read brand config file: %w", err)
	}
	return LoadThemeFromBytes(data)
}

// LoadThemeFromBytes parses a theme from raw YAML and checks that every
// colour in it can be drawn.
func LoadThemeFromBytes(data []byte) (Theme, error) {
	var theme Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("failed to parse brand config YAML: %w", err)
	}
	if err := theme.validate(); err != nil {
		return Theme{}, err
	}
	return theme, nil
}

func (t Theme) validate() error {
	if _, ok := t.Categories[models.DefaultCategory]; !ok {
		return fmt.Errorf("brand config must define a %q category", models.DefaultCategory)
	}
	colors := map[string]string{
		"accent": t.Accent, "text": t.Text, "muted": t.Muted,
		"highlight": t.Highlight, "subtle": t.Subtle,
	}
	for name, cat := range t.Categories {
		colors["categories."+name+".background"] = cat.Background
	}
	for field, hex := range colors {
		if _, err := ParseHex(hex); err != nil {
			return fmt.Errorf("brand config %s: %w", field, err)
		}
	}
	return nil
}

// Background returns the canvas colour for a category key, falling back to
// the default category.
func (t Theme) Background(category string) color.NRGBA {
	cat, ok := t.Categories[category]
	if !ok {
		cat = t.Categories[models.DefaultCategory]
	}
	return MustHex(cat.Background)
}

// Hashtags returns the base hashtags followed by the category's own set.
// Categories without a set (including the default) add nothing.
func (t Theme) Hashtags(category string) []string {
	tags := make([]string, 0, len(t.BaseHashtags)+5)
	tags = append(tags, t.BaseHashtags...)
	if cat, ok := t.Categories[category]; ok {
		tags = append(tags, cat.Hashtags...)
	}
	return tags
}

// ParseHex parses "#rrggbb" into an opaque colour.
func ParseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustHex is ParseHex for values already checked by LoadThemeFromBytes.
func MustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultTheme returns the fallback theme if no YAML is loaded.
// The embedded brand.yaml should be preferred.
func DefaultTheme() Theme {
	return Theme{
		Name:          "THE HUB",
		Accent:        "#e94560",
		Text:          "#ffffff",
		Muted:         "#888888",
		Highlight:     "#00ff88",
		Subtle:        "#aaaaaa",
		ImageCTA:      "Link in bio → the-hub-psi.vercel.app",
		CaptionCTA:    "👆 Link in bio to shop all deals!",
		Separator:     "─────────────────",
		PostURLPrefix: "https://instagram.com/p/",
		BaseHashtags:  []string{"#deals", "#discount", "#sale", "#savemoney", "#thehubdeals"},
		Categories: map[string]Category{
			"default": {Background: "#1a1a2e"},
			"watches": {
				Background: "#1a1a2e",
				Hashtags:   []string{"#watches", "#watchdeals", "#luxurywatches", "#watchcollector", "#timepiece"},
			},
			"sneakers": {
				Background: "#16213e",
				Hashtags:   []string{"#sneakers", "#sneakerdeals", "#kicks", "#sneakerhead", "#kotd"},
			},
			"cars": {
				Background: "#0f3460",
				Hashtags:   []string{"#cars", "#cardeals", "#automotive", "#carsofinstagram", "#cardeal"},
			},
		},
	}
}
