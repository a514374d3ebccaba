package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const (
	DefaultBaseURL = "https://i.instagram.com"

	userAgent = "Instagram 269.0.0.18.75 Android (26/8.0.0; 480dpi; 1080x1920; OnePlus; 6T Dev; devitron; qcom; en_US; 314665256)"
	appID     = "567067343352427"
)

// Client talks to the private mobile API. It is not safe for concurrent use;
// the poster holds exactly one per process.
type Client struct {
	baseURL *url.URL
	client  *http.Client
	state   State
}

// New builds a client with fresh device identifiers. Call RestoreState to
// resume a persisted session.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid instagram base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid instagram base URL %q: scheme and host required", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: parsed,
		client:  &http.Client{Timeout: timeout, Jar: jar},
		state:   newDeviceState(),
	}, nil
}

func newDeviceState() State {
	return State{
		DeviceID: "android-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
		UUID:     uuid.NewString(),
		PhoneID:  uuid.NewString(),
	}
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// do sends req with the app headers and decodes a 2xx JSON body into out.
// Failures come back as *APIError whenever the body can be read.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-IG-App-ID", appID)
	req.Header.Set("X-IG-Device-ID", c.state.UUID)
	req.Header.Set("X-IG-Android-ID", c.state.DeviceID)
	if c.state.Authorization != "" {
		req.Header.Set("Authorization", c.state.Authorization)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", req.URL.Path, err)
	}

	var apiErr apiErrorBody
	_ = json.Unmarshal(body, &apiErr)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || apiErr.Status == "fail" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiErr.Message,
			ErrorType:  apiErr.ErrorType,
			TwoFactor:  apiErr.TwoFactorRequired,
			Body:       string(body),
		}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", req.URL.Path, err)
		}
	}
	if auth := resp.Header.Get("ig-set-authorization"); auth != "" {
		c.state.Authorization = auth
	}
	slog.Debug("Instagram request completed", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	return c.do(req, out)
}

func (c *Client) postBytes(ctx context.Context, path string, payload []byte, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}
