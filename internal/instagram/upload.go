package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pauljones0/thehub-deal-poster/internal/models"
)

type uploadResponse struct {
	UploadID string `json:"upload_id"`
	Status   string `json:"status"`
}

type configureResponse struct {
	Media struct {
		PK   json.Number `json:"pk"`
		ID   string      `json:"id"`
		Code string      `json:"code"`
	} `json:"media"`
	Status string `json:"status"`
}

// UploadPhoto publishes a JPEG to the feed with the given caption.
func (c *Client) UploadPhoto(ctx context.Context, path, caption string) (*models.Media, error) {
	uploadID, err := c.uploadJPEG(ctx, path)
	if err != nil {
		return nil, err
	}

	form := c.configureForm(uploadID)
	form.Set("caption", caption)
	form.Set("source_type", "4")

	return c.configure(ctx, "/api/v1/media/configure/", form)
}

// UploadStory publishes a JPEG as a story. Stories carry no caption.
func (c *Client) UploadStory(ctx context.Context, path string) (*models.Media, error) {
	uploadID, err := c.uploadJPEG(ctx, path)
	if err != nil {
		return nil, err
	}

	form := c.configureForm(uploadID)
	form.Set("source_type", "3")
	form.Set("configure_mode", "1")

	return c.configure(ctx, "/api/v1/media/configure_to_story/", form)
}

// uploadJPEG pushes the raw bytes to the resumable upload endpoint and
// returns the upload id to reference in the configure call.
func (c *Client) uploadJPEG(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image for upload: %w", err)
	}

	uploadID := strconv.FormatInt(time.Now().UnixMilli(), 10)
	entityName := fmt.Sprintf("%s_0_%s", uploadID, uuid.NewString()[:8])

	params, err := json.Marshal(map[string]string{
		"upload_id":         uploadID,
		"media_type":        "1",
		"retry_context":     `{"num_step_auto_retry":0,"num_reupload":0,"num_step_manual_retry":0}`,
		"image_compression": `{"lib_name":"moz","lib_version":"3.1.m","quality":"95"}`,
	})
	if err != nil {
		return "", err
	}

	headers := map[string]string{
		"Content-Type":               "application/octet-stream",
		"X-Instagram-Rupload-Params": string(params),
		"X-Entity-Name":              entityName,
		"X-Entity-Length":            strconv.Itoa(len(data)),
		"X-Entity-Type":              "image/jpeg",
		"Offset":                     "0",
	}

	var resp uploadResponse
	if err := c.postBytes(ctx, "/rupload_igphoto/"+entityName, data, headers, &resp); err != nil {
		return "", fmt.Errorf("photo upload failed: %w", err)
	}
	if resp.UploadID == "" {
		resp.UploadID = uploadID
	}
	return resp.UploadID, nil
}

func (c *Client) configureForm(uploadID string) url.Values {
	form := url.Values{}
	form.Set("upload_id", uploadID)
	form.Set("_uid", c.state.UserID)
	form.Set("_uuid", c.state.UUID)
	form.Set("device_id", c.state.DeviceID)
	return form
}

func (c *Client) configure(ctx context.Context, path string, form url.Values) (*models.Media, error) {
	var resp configureResponse
	if err := c.postForm(ctx, path, form, &resp); err != nil {
		return nil, fmt.Errorf("configure media failed: %w", err)
	}
	if resp.Media.ID == "" && resp.Media.PK == "" {
		return nil, fmt.Errorf("configure media failed: response did not include media")
	}
	return &models.Media{
		PK:   resp.Media.PK.String(),
		ID:   resp.Media.ID,
		Code: resp.Media.Code,
	}, nil
}
