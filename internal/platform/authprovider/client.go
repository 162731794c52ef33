// Package authprovider implements the client for the external identity
// provider used by the browser session exchange flow. The frontend obtains a
// provider session ID after the OAuth redirect and hands it to this API,
// which exchanges it for the user's verified identity.
package authprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Errors returned by the session exchange.
var (
	// ErrInvalidSession indicates the provider rejected the session ID.
	ErrInvalidSession = errors.New("invalid provider session")

	// ErrProviderUnavailable indicates the provider could not be reached or
	// returned a server-side failure.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// SessionData is the identity returned by the provider for a valid session.
type SessionData struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	SessionToken string `json:"session_token"`
}

// Client exchanges provider session IDs for user identities.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a provider client for the given base URL.
// If logger is nil, a default logger will be used.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With(slog.String("component", "authprovider_client")),
	}
}

// ExchangeSession resolves the given session ID with the identity provider.
// Returns ErrInvalidSession when the provider rejects the session and
// ErrProviderUnavailable when the provider cannot be reached.
func (c *Client) ExchangeSession(ctx context.Context, sessionID string) (*SessionData, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: empty session ID", ErrInvalidSession)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("identity provider request failed",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		c.logger.Warn("identity provider rejected session",
			slog.Int("status", resp.StatusCode))
		return nil, ErrInvalidSession
	default:
		c.logger.Error("identity provider returned server error",
			slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var data SessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.Error("failed to decode provider response",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: malformed response: %v", ErrProviderUnavailable, err)
	}

	if data.Email == "" {
		return nil, fmt.Errorf("%w: response missing email", ErrInvalidSession)
	}

	return &data, nil
}
