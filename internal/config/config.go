package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionBackendFile      = "file"
	SessionBackendFirestore = "firestore"
)

type Config struct {
	CredentialsPath string
	SessionPath     string

	SessionBackend           string
	ProjectID                string
	FirestoreSessionDoc      string
	FirestoreCredentialsFile string

	InstagramBaseURL string
	HTTPTimeout      time.Duration

	FontPath        string
	BrandConfigPath string
	AssetTempDir    string

	EnrichAllowedDomains []string

	GeminiAPIKey string
	ImageModel   string

	LogLevel  string
	LogFormat string
	LogFile   string
}

func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	secretsDir := os.Getenv("THEHUB_SECRETS_DIR")
	if secretsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve home directory for secrets: %w", err)
		}
		secretsDir = filepath.Join(home, ".thehub-secrets")
	}

	credentialsPath := os.Getenv("INSTAGRAM_CREDENTIALS_PATH")
	if credentialsPath == "" {
		credentialsPath = filepath.Join(secretsDir, "instagram.json")
	}

	sessionPath := os.Getenv("INSTAGRAM_SESSION_PATH")
	if sessionPath == "" {
		sessionPath = filepath.Join(secretsDir, "instagram_session.json")
	}

	sessionBackend := strings.ToLower(os.Getenv("SESSION_BACKEND"))
	if sessionBackend == "" {
		sessionBackend = SessionBackendFile
	}
	if sessionBackend != SessionBackendFile && sessionBackend != SessionBackendFirestore {
		return nil, fmt.Errorf("invalid SESSION_BACKEND %q: must be %q or %q", sessionBackend, SessionBackendFile, SessionBackendFirestore)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if sessionBackend == SessionBackendFirestore && projectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT environment variable is required when SESSION_BACKEND=firestore")
	}

	sessionDoc := os.Getenv("FIRESTORE_SESSION_DOC")
	if sessionDoc == "" {
		sessionDoc = "default"
	}

	baseURL := strings.TrimRight(os.Getenv("INSTAGRAM_BASE_URL"), "/")
	if baseURL == "" {
		baseURL = "https://i.instagram.com"
	}

	timeoutStr := os.Getenv("INSTAGRAM_HTTP_TIMEOUT")
	if timeoutStr == "" {
		timeoutStr = "60s"
	}
	httpTimeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid INSTAGRAM_HTTP_TIMEOUT %q: %w", timeoutStr, err)
	}

	fontPath := os.Getenv("DEAL_FONT_PATH")
	if fontPath == "" {
		fontPath = DefaultFontPath(runtime.GOOS)
	}

	imageModel := os.Getenv("IMAGE_MODEL")
	if imageModel == "" {
		imageModel = "imagen-4.0-generate-001"
	}

	logLevel := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "" {
		logFormat = "text"
	}
	if logFormat != "text" && logFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: must be text or json", logFormat)
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		slog.Debug("GEMINI_API_KEY not set, image generation will be unavailable")
	}

	return &Config{
		CredentialsPath:          credentialsPath,
		SessionPath:              sessionPath,
		SessionBackend:           sessionBackend,
		ProjectID:                projectID,
		FirestoreSessionDoc:      sessionDoc,
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		InstagramBaseURL:         baseURL,
		HTTPTimeout:              httpTimeout,
		FontPath:                 fontPath,
		BrandConfigPath:          os.Getenv("BRAND_CONFIG_PATH"),
		AssetTempDir:             os.Getenv("ASSET_TEMP_DIR"),
		EnrichAllowedDomains:     splitList(os.Getenv("ENRICH_ALLOWED_DOMAINS")),
		GeminiAPIKey:             geminiAPIKey,
		ImageModel:               imageModel,
		LogLevel:                 logLevel,
		LogFormat:                logFormat,
		LogFile:                  os.Getenv("LOG_FILE"),
	}, nil
}

// DefaultFontPath returns the bold sans-serif font usually present on the given OS.
func DefaultFontPath(goos string) string {
	switch goos {
	case "darwin":
		return "/System/Library/Fonts/Helvetica.ttc"
	case "windows":
		return `C:\Windows\Fonts\arialbd.ttf`
	default:
		return "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
