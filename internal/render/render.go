package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/pauljones0/thehub-deal-poster/internal/brand"
	"github.com/pauljones0/thehub-deal-poster/internal/models"
	"github.com/pauljones0/thehub-deal-poster/internal/util"
)

const (
	CanvasSize  = 1080
	JPEGQuality = 95

	centerX = CanvasSize / 2

	wordmarkY = 60
	tagY      = 150
	titleY    = 350
	priceY    = 525
	wasY      = 650
	discountY = 720
	sourceY   = 850
	ctaY      = 950

	maxTitleRunes = 40
)

// PriceBox is the accent rectangle behind the current price.
var PriceBox = image.Rect(240, 450, 841, 601)

type anchor int

const (
	// anchorTop centres text horizontally with its top edge at y.
	anchorTop anchor = iota
	// anchorMiddle centres text on (x, y).
	anchorMiddle
)

// Renderer draws the branded deal card.
type Renderer struct {
	theme brand.Theme
	faces Faces
}

// New resolves fonts once; fontPath may be empty to force the default face.
func New(theme brand.Theme, fontPath string) *Renderer {
	return &Renderer{theme: theme, faces: ResolveFaces(fontPath)}
}

// NewWithFaces is used when the caller already holds resolved faces.
func NewWithFaces(theme brand.Theme, faces Faces) *Renderer {
	return &Renderer{theme: theme, faces: faces}
}

// Render draws the deal and writes it as a quality-95 JPEG to path.
func (r *Renderer) Render(deal models.Deal, path string) error {
	img := r.Draw(deal)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := imaging.Encode(out, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	slog.Debug("Created deal image", "path", path, "fallbackFont", r.faces.Fallback)
	return nil
}

// Draw lays the deal out on a fresh canvas.
func (r *Renderer) Draw(deal models.Deal) *image.NRGBA {
	category := deal.CategoryKey()
	canvas := imaging.New(CanvasSize, CanvasSize, r.theme.Background(category))

	accent := brand.MustHex(r.theme.Accent)
	text := brand.MustHex(r.theme.Text)

	drawText(canvas, r.faces.Title, r.theme.Name, centerX, wordmarkY, anchorTop, accent)
	drawText(canvas, r.faces.Body, "🔥 "+categoryLabel(category)+" DEAL", centerX, tagY, anchorTop, text)
	drawText(canvas, r.faces.Body, TruncateTitle(deal.DisplayTitle()), centerX, titleY, anchorMiddle, text)

	if deal.Price != "" {
		draw.Draw(canvas, PriceBox, image.NewUniform(accent), image.Point{}, draw.Src)
		drawText(canvas, r.faces.Price, deal.Price, centerX, priceY, anchorMiddle, text)
	}

	if deal.OriginalPrice != "" {
		r.drawWasPrice(canvas, deal.OriginalPrice)
	}

	if deal.Discount != "" {
		drawText(canvas, r.faces.Body, "💰 "+deal.Discount+" OFF", centerX, discountY, anchorTop, brand.MustHex(r.theme.Highlight))
	}

	if deal.Source != "" {
		drawText(canvas, r.faces.Small, "📍 "+deal.Source, centerX, sourceY, anchorTop, brand.MustHex(r.theme.Subtle))
	}

	drawText(canvas, r.faces.Small, r.theme.ImageCTA, centerX, ctaY, anchorTop, text)

	return canvas
}

// drawWasPrice draws "Was: <price>" with a strike line through the price part.
func (r *Renderer) drawWasPrice(canvas *image.NRGBA, original string) {
	muted := brand.MustHex(r.theme.Muted)
	face := r.faces.Body
	label := "Was: "
	full := label + original

	dot := drawText(canvas, face, full, centerX, wasY, anchorTop, muted)

	start := dot.X + font.MeasureString(face, label)
	end := dot.X + font.MeasureString(face, full)
	ascent := face.Metrics().Ascent
	strikeY := (dot.Y - ascent*35/100).Round()
	thickness := 1 + face.Metrics().Height.Round()/16

	line := image.Rect(start.Round(), strikeY-thickness/2, end.Round(), strikeY-thickness/2+thickness)
	draw.Draw(canvas, line, image.NewUniform(muted), image.Point{}, draw.Over)
}

// TruncateTitle truncates titles longer than 40 characters to 37 plus "...".
func TruncateTitle(title string) string {
	return util.Truncate(title, maxTitleRunes)
}

func categoryLabel(category string) string {
	if category == models.DefaultCategory {
		return "DEAL"
	}
	return strings.ToUpper(category)
}

// drawText draws s horizontally centred on x and returns the starting dot
// (left edge, baseline).
func drawText(dst draw.Image, face font.Face, s string, x, y int, a anchor, c color.Color) fixed.Point26_6 {
	width := font.MeasureString(face, s)
	m := face.Metrics()

	dot := fixed.Point26_6{X: fixed.I(x) - width/2}
	switch a {
	case anchorTop:
		dot.Y = fixed.I(y) + m.Ascent
	case anchorMiddle:
		dot.Y = fixed.I(y) + (m.Ascent-m.Descent)/2
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(s)
	return dot
}
