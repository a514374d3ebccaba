package caption

import (
	"strings"

	"github.com/pauljones0/thehub-deal-poster/internal/brand"
	"github.com/pauljones0/thehub-deal-poster/internal/models"
)

// Composer builds feed captions. Output depends only on the deal and the
// theme it was constructed with.
type Composer struct {
	theme brand.Theme
}

func New(theme brand.Theme) *Composer {
	return &Composer{theme: theme}
}

// Compose returns the caption for a deal. Absent fields omit their line.
func (c *Composer) Compose(deal models.Deal) string {
	lines := []string{
		"🔥 " + deal.DisplayTitle(),
		"",
	}

	if deal.Price != "" {
		lines = append(lines, "💰 NOW: "+deal.Price)
	}
	if deal.OriginalPrice != "" {
		lines = append(lines, "📉 Was: "+deal.OriginalPrice)
	}
	if deal.Discount != "" {
		lines = append(lines, "✅ Save "+deal.Discount+"!")
	}

	lines = append(lines, "")

	if deal.Source != "" {
		lines = append(lines, "📍 From: "+deal.Source)
	}

	lines = append(lines,
		"",
		c.theme.CaptionCTA,
		"",
		c.theme.Separator,
		strings.Join(c.theme.Hashtags(deal.CategoryKey()), " "),
	)

	return strings.Join(lines, "\n")
}
