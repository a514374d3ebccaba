package session

import (
	"context"

	"github.com/pauljones0/thehub-deal-poster/internal/models"
)

// Client abstracts the platform client held by an authenticated session.
type Client interface {
	RestoreState(data []byte) error
	DumpState() ([]byte, error)
	Login(ctx context.Context, username, password string) error
	TimelineFeed(ctx context.Context) error
	UploadPhoto(ctx context.Context, path, caption string) (*models.Media, error)
	UploadStory(ctx context.Context, path string) (*models.Media, error)
	AccountInfo(ctx context.Context) (*models.Account, error)
}

// ClientFactory builds an unauthenticated client.
type ClientFactory func() (Client, error)

// StateStore persists the opaque session blob between runs. Load returns
// nil, nil when nothing has been saved yet.
type StateStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, state []byte) error
}
