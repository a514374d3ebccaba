package render

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Pixel sizes for each text role when a real font is available.
const (
	titleSize = 72
	priceSize = 96
	bodySize  = 48
	smallSize = 36
)

// Faces holds one face per text role. In fallback mode all four are the
// same built-in bitmap face.
type Faces struct {
	Title    font.Face
	Price    font.Face
	Body     font.Face
	Small    font.Face
	Fallback bool
}

// ResolveFaces loads the font at path for every role. Any failure selects
// the uniform default face instead; this is the normal path on machines
// without the font, not an error.
func ResolveFaces(path string) Faces {
	faces, err := LoadFaces(path)
	if err != nil {
		slog.Debug("Using default font", "path", path, "reason", err)
		return DefaultFaces()
	}
	return faces
}

// DefaultFaces returns the uniform fallback used when no font file loads.
func DefaultFaces() Faces {
	face := basicfont.Face7x13
	return Faces{Title: face, Price: face, Body: face, Small: face, Fallback: true}
}

// LoadFaces parses a TrueType/OpenType font or collection (first face) and
// builds the four sized faces.
func LoadFaces(path string) (Faces, error) {
	if path == "" {
		return Faces{}, fmt.Errorf("no font path configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Faces{}, fmt.Errorf("failed to read font: %w", err)
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		coll, collErr := opentype.ParseCollection(data)
		if collErr != nil {
			return Faces{}, fmt.Errorf("failed to parse font %s: %w", path, err)
		}
		if coll.NumFonts() == 0 {
			return Faces{}, fmt.Errorf("font collection %s is empty", path)
		}
		parsed, err = coll.Font(0)
		if err != nil {
			return Faces{}, fmt.Errorf("failed to read first font of collection %s: %w", path, err)
		}
	}

	sized := func(size float64) (font.Face, error) {
		return opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	var faces Faces
	for _, role := range []struct {
		dst  *font.Face
		size float64
	}{
		{&faces.Title, titleSize},
		{&faces.Price, priceSize},
		{&faces.Body, bodySize},
		{&faces.Small, smallSize},
	} {
		face, err := sized(role.size)
		if err != nil {
			return Faces{}, fmt.Errorf("failed to size font %s at %v: %w", path, role.size, err)
		}
		*role.dst = face
	}
	return faces, nil
}
