package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("THEHUB_SECRETS_DIR", dir)
	t.Setenv("INSTAGRAM_BASE_URL", "https://ig.test/")
	t.Setenv("INSTAGRAM_HTTP_TIMEOUT", "15s")
	t.Setenv("DEAL_FONT_PATH", "/fonts/test.ttf")
	t.Setenv("ENRICH_ALLOWED_DOMAINS", "Chrono24.com, amazon.ca,,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.CredentialsPath != filepath.Join(dir, "instagram.json") {
		t.Errorf("Expected credentials under secrets dir, got %s", cfg.CredentialsPath)
	}
	if cfg.SessionPath != filepath.Join(dir, "instagram_session.json") {
		t.Errorf("Expected session under secrets dir, got %s", cfg.SessionPath)
	}
	if cfg.SessionBackend != SessionBackendFile {
		t.Errorf("Expected default backend %q, got %q", SessionBackendFile, cfg.SessionBackend)
	}
	if cfg.InstagramBaseURL != "https://ig.test" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.InstagramBaseURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("Expected 15s, got %s", cfg.HTTPTimeout)
	}
	if cfg.FontPath != "/fonts/test.ttf" {
		t.Errorf("Expected font override, got %s", cfg.FontPath)
	}
	if len(cfg.EnrichAllowedDomains) != 2 || cfg.EnrichAllowedDomains[0] != "chrono24.com" {
		t.Errorf("Unexpected allowed domains: %v", cfg.EnrichAllowedDomains)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("Expected info/text logging defaults, got %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_ExplicitPaths(t *testing.T) {
	t.Setenv("THEHUB_SECRETS_DIR", t.TempDir())
	t.Setenv("INSTAGRAM_CREDENTIALS_PATH", "/etc/thehub/creds.json")
	t.Setenv("INSTAGRAM_SESSION_PATH", "/var/lib/thehub/session.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.CredentialsPath != "/etc/thehub/creds.json" {
		t.Errorf("Expected explicit credentials path, got %s", cfg.CredentialsPath)
	}
	if cfg.SessionPath != "/var/lib/thehub/session.json" {
		t.Errorf("Expected explicit session path, got %s", cfg.SessionPath)
	}
}

func TestLoad_FirestoreRequiresProject(t *testing.T) {
	t.Setenv("THEHUB_SECRETS_DIR", t.TempDir())
	t.Setenv("SESSION_BACKEND", "firestore")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")

	if _, err := Load(); err == nil {
		t.Error("Load() should return an error when firestore backend has no project")
	}

	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.ProjectID != "test-project" || cfg.FirestoreSessionDoc != "default" {
		t.Errorf("Unexpected firestore settings: %s/%s", cfg.ProjectID, cfg.FirestoreSessionDoc)
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("THEHUB_SECRETS_DIR", t.TempDir())
	t.Setenv("SESSION_BACKEND", "redis")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an unknown SESSION_BACKEND")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("THEHUB_SECRETS_DIR", t.TempDir())
	t.Setenv("INSTAGRAM_HTTP_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Error("Load() should return error for invalid INSTAGRAM_HTTP_TIMEOUT")
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("THEHUB_SECRETS_DIR", t.TempDir())
	t.Setenv("LOG_FORMAT", "xml")

	if _, err := Load(); err == nil {
		t.Error("Load() should return error for invalid LOG_FORMAT")
	}
}

func TestDefaultFontPath(t *testing.T) {
	tests := map[string]string{
		"darwin":  "/System/Library/Fonts/Helvetica.ttc",
		"windows": `C:\Windows\Fonts\arialbd.ttf`,
		"linux":   "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	}
	for goos, want := range tests {
		if got := DefaultFontPath(goos); got != want {
			t.Errorf("DefaultFontPath(%q) = %q, want %q", goos, got, want)
		}
	}
}
