package storage

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
)

// The round-trip test needs the Firestore emulator:
//
//	gcloud emulators firestore start --host-port=localhost:8085
//	FIRESTORE_EMULATOR_HOST=localhost:8085 go test ./internal/storage/
func newEmulatorStore(t *testing.T, docID string) *SessionStore {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "thehub-test")
	if err != nil {
		t.Fatalf("firestore.NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return NewWithClient(client, docID)
}

func TestNewWithClient_DefaultDoc(t *testing.T) {
	store := NewWithClient(nil, "")
	if store.docID != DefaultSessionDoc {
		t.Errorf("docID = %q, want %q", store.docID, DefaultSessionDoc)
	}

	store = NewWithClient(nil, "thehub-main")
	if store.docID != "thehub-main" {
		t.Errorf("docID = %q, want %q", store.docID, "thehub-main")
	}
}

func TestSessionStore_Emulator(t *testing.T) {
	store := newEmulatorStore(t, t.Name())
	ctx := context.Background()

	state, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() on missing doc returned error: %v", err)
	}
	if state != nil {
		t.Fatalf("Load() on missing doc = %q, want nil", state)
	}

	if err := store.Save(ctx, []byte(`{"uuid":"abc"}`)); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	state, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if string(state) != `{"uuid":"abc"}` {
		t.Errorf("Load() = %q, want saved state", state)
	}
}
