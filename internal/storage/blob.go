package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"talenthub/internal/common"
)

// BlobStore is the upload contract the engine consumes; only the
// resulting public URL matters to callers.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// HTTPStore uploads objects to an S3-compatible endpoint with a plain
// HTTP PUT and derives the public URL from the configured base.
type HTTPStore struct {
	endpoint  string
	bucket    string
	publicURL string
	client    *http.Client
}

func NewHTTPStore(endpoint, bucket, publicURL string) *HTTPStore {
	return &HTTPStore{
		endpoint:  strings.TrimRight(endpoint, "/"),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if s.endpoint == "" {
		return "", common.NewError(common.CodeUnavailable, "blob storage is not configured", nil)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectURL := s.endpoint + "/" + s.bucket + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, objectURL, bytes.NewReader(data))
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to build upload request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", common.NewError(common.CodeUnavailable, "blob storage unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", common.NewError(common.CodeUnavailable, fmt.Sprintf("blob storage returned status %d", resp.StatusCode), nil)
	}
	base := s.publicURL
	if base == "" {
		base = s.endpoint
	}
	return base + "/" + s.bucket + "/" + strings.TrimLeft(path, "/"), nil
}
