package publisher

import (
	"context"

	"github.com/pauljones0/thehub-deal-poster/internal/models"
)

// AssetRenderer abstracts the image layer.
type AssetRenderer interface {
	Render(deal models.Deal, path string) error
}

// CaptionComposer abstracts caption generation.
type CaptionComposer interface {
	Compose(deal models.Deal) string
}

// Uploader is the part of an authenticated session the publisher needs.
type Uploader interface {
	UploadPhoto(ctx context.Context, path, caption string) (*models.Media, error)
	UploadStory(ctx context.Context, path string) (*models.Media, error)
}

// SessionFunc returns an authenticated uploader. It is only called for real
// posts, never for dry runs.
type SessionFunc func(ctx context.Context) (Uploader, error)
