// Package media uploads listing images to the external media store.
//
// The store is consumed as a black box: a multipart POST with an API key
// header, answered with a JSON body carrying the public URL.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/config"
)

// Client talks to the media store over HTTP.
type Client struct {
	httpClient *http.Client
	logger     *zerolog.Logger

	uploadURL string
	apiKey    string
}

// NewClient creates a media Client from the integration config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		uploadURL:  cfg.Integration.MediaUploadURL,
		apiKey:     cfg.Integration.MediaAPIKey,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload streams the file to the media store and returns its public URL.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if c.uploadURL == "" {
		return "", fmt.Errorf("media upload is not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("media upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("media store returned status %d", resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode media store response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("media store response missing url")
	}

	return out.URL, nil
}
