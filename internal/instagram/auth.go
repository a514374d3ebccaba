package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pauljones0/thehub-deal-poster/internal/models"
)

// State is everything needed to resume a session without a password login.
type State struct {
	Username      string        `json:"username"`
	UserID        string        `json:"user_id"`
	Authorization string        `json:"authorization"`
	DeviceID      string        `json:"device_id"`
	UUID          string        `json:"uuid"`
	PhoneID       string        `json:"phone_id"`
	Cookies       []stateCookie `json:"cookies,omitempty"`
	SavedAt       time.Time     `json:"saved_at"`
}

type stateCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RestoreState loads a blob produced by DumpState.
func (c *Client) RestoreState(data []byte) error {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: %v", models.ErrSessionStateInvalid, err)
	}
	if st.DeviceID == "" || st.UUID == "" {
		return fmt.Errorf("%w: missing device identifiers", models.ErrSessionStateInvalid)
	}

	cookies := make([]*http.Cookie, 0, len(st.Cookies))
	for _, ck := range st.Cookies {
		cookies = append(cookies, &http.Cookie{Name: ck.Name, Value: ck.Value, Path: "/"})
	}
	if len(cookies) > 0 {
		c.client.Jar.SetCookies(c.baseURL, cookies)
	}
	st.Cookies = nil
	c.state = st
	return nil
}

// DumpState serialises the current session for a StateStore.
func (c *Client) DumpState() ([]byte, error) {
	st := c.state
	st.SavedAt = time.Now().UTC()
	for _, ck := range c.client.Jar.Cookies(c.baseURL) {
		st.Cookies = append(st.Cookies, stateCookie{Name: ck.Name, Value: ck.Value})
	}
	return json.Marshal(st)
}

// Username reports the account the client is authenticated as, if any.
func (c *Client) Username() string {
	return c.state.Username
}

type loginResponse struct {
	LoggedInUser struct {
		PK       json.Number `json:"pk"`
		Username string      `json:"username"`
	} `json:"logged_in_user"`
	Status string `json:"status"`
}

// Login authenticates username. A restored session for the same user is
// reused as-is; validity is only proven by the next API call.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if c.state.Authorization != "" && strings.EqualFold(c.state.Username, username) {
		return nil
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("enc_password", fmt.Sprintf("#PWD_INSTAGRAM:0:%d:%s", time.Now().Unix(), password))
	form.Set("device_id", c.state.DeviceID)
	form.Set("guid", c.state.UUID)
	form.Set("phone_id", c.state.PhoneID)
	form.Set("login_attempt_count", "0")

	var resp loginResponse
	if err := c.postForm(ctx, "/api/v1/accounts/login/", form, &resp); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if resp.LoggedInUser.PK == "" {
		return fmt.Errorf("login failed: response did not include the logged in user")
	}

	c.state.Username = resp.LoggedInUser.Username
	if c.state.Username == "" {
		c.state.Username = username
	}
	c.state.UserID = resp.LoggedInUser.PK.String()
	return nil
}

// TimelineFeed fetches the home feed. The session manager uses it as a cheap
// probe that a restored session is still accepted.
func (c *Client) TimelineFeed(ctx context.Context) error {
	if err := c.get(ctx, "/api/v1/feed/timeline/", nil); err != nil {
		return fmt.Errorf("timeline probe failed: %w", err)
	}
	return nil
}

type userInfoResponse struct {
	User struct {
		PK             json.Number `json:"pk"`
		Username       string      `json:"username"`
		FullName       string      `json:"full_name"`
		FollowerCount  int         `json:"follower_count"`
		FollowingCount int         `json:"following_count"`
		MediaCount     int         `json:"media_count"`
	} `json:"user"`
}

// AccountInfo returns the profile of the authenticated account.
func (c *Client) AccountInfo(ctx context.Context) (*models.Account, error) {
	if c.state.UserID == "" {
		return nil, fmt.Errorf("account info: %w", models.ErrLoginRequired)
	}
	if _, err := strconv.ParseInt(c.state.UserID, 10, 64); err != nil {
		return nil, fmt.Errorf("account info: %w: bad user id %q", models.ErrSessionStateInvalid, c.state.UserID)
	}

	var resp userInfoResponse
	if err := c.get(ctx, "/api/v1/users/"+c.state.UserID+"/info/", &resp); err != nil {
		return nil, fmt.Errorf("account info failed: %w", err)
	}
	return &models.Account{
		PK:             resp.User.PK.String(),
		Username:       resp.User.Username,
		FullName:       resp.User.FullName,
		FollowerCount:  resp.User.FollowerCount,
		FollowingCount: resp.User.FollowingCount,
		MediaCount:     resp.User.MediaCount,
	}, nil
}
