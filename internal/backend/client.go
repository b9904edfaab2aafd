// Package backend is the typed client for the marketplace backend HTTP API.
// Every console component talks to the backend through it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"admin-console/internal/common/config"
	conerr "admin-console/internal/common/errors"
	"admin-console/internal/common/logger"
	"admin-console/internal/common/metrics"

	"github.com/google/uuid"
)

// Client wraps the backend HTTP surface with typed request/response methods.
// No retry is attempted at this layer for any error category.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

func NewClient(cfg config.BackendConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		log: log.WithFields(map[string]interface{}{"component": "backend-client"}),
	}
}

// doJSON issues one JSON request and decodes the response into out (nil out
// discards the body). Transport failures map to NETWORK_ERROR, non-2xx
// responses to SERVER_ERROR (404 to RESOURCE_NOT_FOUND).
func (c *Client) doJSON(ctx context.Context, method, resource, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.execute(req, resource, method, path, out)
}

// doMultipart issues one multipart/form-data request with a file part per
// entry in files (field name = slot name, value = local path).
func (c *Client) doMultipart(ctx context.Context, method, resource, path string, files map[string]string, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, filePath := range files {
		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("failed to open staged file %q: %w", filePath, err)
		}
		part, err := writer.CreateFormFile(field, filepath.Base(filePath))
		if err == nil {
			_, err = io.Copy(part, f)
		}
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to build multipart field %q: %w", field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.execute(req, resource, method, path, out)
}

func (c *Client) execute(req *http.Request, resource, method, path string, out interface{}) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	metrics.BackendRequests.WithLabelValues(resource, method).Inc()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(resource, method).Observe(time.Since(start).Seconds())
	if err != nil {
		netErr := conerr.NewNetworkError(err)
		metrics.BackendRequestFailures.WithLabelValues(resource, method, string(conerr.ErrCodeNetworkError)).Inc()
		c.log.Error("backend request failed", map[string]interface{}{
			"method":    method,
			"path":      path,
			"requestId": requestID,
			"error":     err.Error(),
		})
		return netErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var stdErr error
		if resp.StatusCode == http.StatusNotFound {
			stdErr = conerr.NewResourceNotFoundError(resource, path)
		} else {
			stdErr = conerr.NewServerError(resp.StatusCode, string(body))
		}
		metrics.BackendRequestFailures.WithLabelValues(resource, method, string(conerr.CodeOf(stdErr))).Inc()
		c.log.Error("backend returned error status", map[string]interface{}{
			"method":    method,
			"path":      path,
			"requestId": requestID,
			"status":    resp.StatusCode,
		})
		return stdErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.BackendRequestFailures.WithLabelValues(resource, method, string(conerr.ErrCodeServerError)).Inc()
		return conerr.NewServerError(resp.StatusCode, fmt.Sprintf("malformed response body: %s", err))
	}
	return nil
}
