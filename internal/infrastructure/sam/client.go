// Package sam provides the client for the Sam permission service: the
// identity check and the global-action override oracle. Answers are treated
// as authoritative and never cached.
package sam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"catalog/internal/domain/dataset"
	"catalog/internal/domain/storage"
	sharedConfig "catalog/internal/shared/config"
	apperrors "catalog/internal/shared/errors"
	"catalog/internal/shared/logger"
)

const (
	defaultTimeout = 20 * time.Second

	// Sam resource the catalog's global actions live on
	catalogResourceType = "catalog"
	catalogResourceID   = "global"

	maxResponseBodySize = 64 << 10
)

// Client talks to the Sam permission service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

// NewClient creates a new Sam client.
func NewClient(cfg *sharedConfig.SamConfig, logger logger.Interface) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// UserStatus is the caller's registration state as Sam reports it.
type UserStatus struct {
	UserSubjectID string `json:"userSubjectId"`
	UserEmail     string `json:"userEmail"`
	Enabled       bool   `json:"enabled"`
}

// GetUserStatus resolves the caller's identity from the bearer token. An
// unknown or expired token yields an Unauthorized error.
func (c *Client) GetUserStatus(ctx context.Context, token string) (*UserStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/register/user/v2/self/info", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("identity request failed", "error", err)
		return nil, apperrors.NewInternalError("identity check failed", err.Error())
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, apperrors.NewUnauthorizedError("invalid or missing credentials")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Errorw("identity endpoint returned unexpected status", "status", resp.StatusCode)
		return nil, apperrors.NewInternalError(
			fmt.Sprintf("identity endpoint returned status %d", resp.StatusCode))
	}

	var status UserStatus
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodySize)).Decode(&status); err != nil {
		return nil, apperrors.NewInternalError("failed to decode identity response", err.Error())
	}
	return &status, nil
}

// HasGlobalAction reports whether the caller holds the catalog-wide
// administrative override for the given action.
func (c *Client) HasGlobalAction(ctx context.Context, token string, action dataset.SamAction) (bool, error) {
	endpoint := fmt.Sprintf("%s/api/resources/v2/%s/%s/action/%s",
		c.baseURL, catalogResourceType, catalogResourceID, url.PathEscape(action.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create permission request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("permission service request failed", "action", action, "error", err)
		return false, apperrors.NewInternalError("permission check failed", err.Error())
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return false, apperrors.NewUnauthorizedError("invalid or missing credentials")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Errorw("permission service returned unexpected status",
			"action", action, "status", resp.StatusCode)
		return false, apperrors.NewInternalError(
			fmt.Sprintf("permission service returned status %d", resp.StatusCode))
	}

	var allowed bool
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodySize)).Decode(&allowed); err != nil {
		return false, apperrors.NewInternalError("failed to decode permission response", err.Error())
	}
	return allowed, nil
}

// Status probes the permission service health endpoint; failures are captured
// in the returned status, never raised.
func (c *Client) Status(ctx context.Context) storage.SystemStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return storage.SystemStatus{OK: false, Message: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return storage.SystemStatus{OK: false, Message: err.Error()}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return storage.SystemStatus{OK: false, Message: fmt.Sprintf("status endpoint returned %d", resp.StatusCode)}
	}
	return storage.SystemStatus{OK: true}
}
