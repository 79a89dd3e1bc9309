// Package storage is a thin client for the Supabase-compatible object store
// that holds screenshot blobs. The store exposes a plain REST surface, so the
// client is a timeout-bounded net/http wrapper behind a small interface.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-timetrack/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Store interface {
	// Upload writes the blob under key and returns its public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes the blob. Callers treat failures as warnings.
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.StorageConfig) *Client {
	timeout := cfg.UploadTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.URL,
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.L().Named("storage"),
	}
}

func (c *Client) objectURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, key)
}

func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, key)
}

func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.objectURL(key), bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "3600")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage upload: status %d: %s", resp.StatusCode, body)
	}

	c.logger.Info("screenshot uploaded", zap.String("key", key))
	return c.PublicURL(key), nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.objectURL(key), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("storage delete: status %d", resp.StatusCode)
	}

	c.logger.Info("screenshot blob deleted", zap.String("key", key))
	return nil
}

// BuildObjectKey generates the storage path for a screenshot, encoding owner,
// session, capture time and a random suffix so concurrent captures in the
// same second never collide.
func BuildObjectKey(employeeID, timeEntryID uuid.UUID, capturedAt time.Time) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf(
		"employee_%s/time_entry_%s/%s_%s.png",
		employeeID, timeEntryID, capturedAt.UTC().Format("20060102_150405"), suffix,
	)
}
