package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a Supabase-compatible Storage REST API.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a storage client for the project at baseURL.
func NewClient(baseURL, serviceKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "storage"),
	}
}

type apiError struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

type uploadResponse struct {
	Key string `json:"Key"`
}

// Upload stores body as bucket/name. With upsert an existing object of the
// same name is overwritten. It returns the object path inside the bucket.
// A positive size is sent as Content-Length; otherwise the body is chunked.
// Errors carry the storage service's own message.
func (c *Client) Upload(ctx context.Context, bucket, name string, body io.Reader, size int64, contentType string, upsert bool) (string, error) {
	endpoint := c.baseURL + "/storage/v1/object/" + url.PathEscape(bucket) + "/" + escapePath(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	if size > 0 {
		req.ContentLength = size
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("x-upsert", fmt.Sprintf("%t", upsert))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "storage upload",
		slog.String("bucket", bucket),
		slog.String("object", name),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", responseError(resp.StatusCode, raw)
	}

	var out uploadResponse
	if err := json.Unmarshal(raw, &out); err == nil && out.Key != "" {
		return strings.TrimPrefix(out.Key, bucket+"/"), nil
	}
	return name, nil
}

// PublicURL returns the public URL of an object in a public bucket.
func (c *Client) PublicURL(bucket, path string) string {
	return c.baseURL + "/storage/v1/object/public/" + url.PathEscape(bucket) + "/" + escapePath(path)
}

func responseError(status int, raw []byte) error {
	var ae apiError
	if err := json.Unmarshal(raw, &ae); err == nil {
		if ae.Message != "" {
			return errors.New(ae.Message)
		}
		if ae.Error != "" {
			return errors.New(ae.Error)
		}
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf("storage responded with status %d", status)
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}
