// Package storage contains the adapters that translate the uniform
// StorageSystemService contract into back-end-specific API calls for the
// three storage systems the catalog federates.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "catalog/internal/shared/errors"
)

const (
	// Maximum response body size accepted from a storage back-end (8MB)
	maxResponseBodySize = 8 << 20
)

// doJSON performs one JSON request against a storage back-end. A transport
// failure or non-2xx response is wrapped exactly once into a storage system
// error preserving the remote status code; the call is never retried here.
func doJSON(ctx context.Context, client *http.Client, method, url, token string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return apperrors.NewStorageSystemError("storage system request failed", 0, err.Error())
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return apperrors.NewStorageSystemError(
			fmt.Sprintf("storage system returned status %d", resp.StatusCode),
			resp.StatusCode,
			strings.TrimSpace(string(detail)),
		)
	}

	if out == nil {
		return nil
	}

	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodySize))
	if err := decoder.Decode(out); err != nil {
		return apperrors.NewStorageSystemError("failed to decode storage system response", 0, err.Error())
	}
	return nil
}

// probeStatus turns a health endpoint call into a SystemStatus, never an error.
func probeStatus(ctx context.Context, client *http.Client, url string) (ok bool, message string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err.Error()
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, err.Error()
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Sprintf("status endpoint returned %d", resp.StatusCode)
	}
	return true, ""
}
