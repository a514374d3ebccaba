package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	sessionCollection = "instagram_sessions"
	DefaultSessionDoc = "default"
)

type sessionDoc struct {
	State     string    `firestore:"state"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// SessionStore keeps the platform session blob in one Firestore document so
// scheduled runs on different machines share a login.
type SessionStore struct {
	client *firestore.Client
	docID  string
}

func New(ctx context.Context, projectID, docID, credentialsFile string) (*SessionStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return NewWithClient(client, docID), nil
}

// NewWithClient wraps an existing client; an empty docID selects DefaultSessionDoc.
func NewWithClient(client *firestore.Client, docID string) *SessionStore {
	if docID == "" {
		docID = DefaultSessionDoc
	}
	return &SessionStore{client: client, docID: docID}
}

func (s *SessionStore) Close() error {
	return s.client.Close()
}

func (s *SessionStore) doc() *firestore.DocumentRef {
	return s.client.Collection(sessionCollection).Doc(s.docID)
}

// Load returns nil, nil when the document does not exist yet.
func (s *SessionStore) Load(ctx context.Context) ([]byte, error) {
	snap, err := s.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session %s: %w", s.docID, err)
	}
	if !snap.Exists() {
		return nil, nil
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	if doc.State == "" {
		return nil, nil
	}
	return []byte(doc.State), nil
}

func (s *SessionStore) Save(ctx context.Context, state []byte) error {
	_, err := s.doc().Set(ctx, sessionDoc{
		State:     string(state),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.docID, err)
	}
	return nil
}
