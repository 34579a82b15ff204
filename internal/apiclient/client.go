// Package apiclient is the HTTP client for the score-tracker API. The
// syncer uses it to reconcile the in-memory scoreboard with the server;
// the CLI uses it directly.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned for 409 responses (duplicate name, full sheet).
	ErrConflict = errors.New("conflict")

	// ErrBadRequest is returned for 400 responses.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned for 401 responses.
	ErrUnauthorized = errors.New("unauthorized")
)

// HTTPClient talks to the score-tracker API over HTTP.
type HTTPClient struct {
	httpClient *http.Client
	BaseURL    string
	Token      string
}

var _ Client = (*HTTPClient)(nil)

// NewClient creates a new API client for the given base URL.
func NewClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *HTTPClient) SetToken(token string) {
	c.Token = token
}

// ListPlayers fetches the full player list with server-computed aggregates.
func (c *HTTPClient) ListPlayers(ctx context.Context) ([]PlayerRecord, error) {
	var players []PlayerRecord
	if err := c.do(ctx, http.MethodGet, "/players", nil, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// CreatePlayer registers a new player. totalShots <= 0 lets the server
// apply its default.
func (c *HTTPClient) CreatePlayer(ctx context.Context, name string, totalShots int) (*PlayerRecord, error) {
	body := map[string]any{"name": name}
	if totalShots > 0 {
		body["totalShots"] = totalShots
	}
	var player PlayerRecord
	if err := c.do(ctx, http.MethodPost, "/players", body, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// UpdatePlayer renames a player, changes the shot count, or resets
// scores via the action field.
func (c *HTTPClient) UpdatePlayer(ctx context.Context, playerID string, req UpdatePlayerRequest) (*PlayerRecord, error) {
	var player PlayerRecord
	if err := c.do(ctx, http.MethodPut, "/players/"+url.PathEscape(playerID), req, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// DeletePlayer removes a player and, through the store's cascade, their scores.
func (c *HTTPClient) DeletePlayer(ctx context.Context, playerID string) error {
	return c.do(ctx, http.MethodDelete, "/players/"+url.PathEscape(playerID), nil, nil)
}

// ResetScores zeroes a player's sheet and returns the updated player.
func (c *HTTPClient) ResetScores(ctx context.Context, playerID string) (*PlayerRecord, error) {
	return c.UpdatePlayer(ctx, playerID, UpdatePlayerRequest{Action: "reset-scores"})
}

// RecordScore persists a single shot.
func (c *HTTPClient) RecordScore(ctx context.Context, req ScoreRequest) (*ScoreRecord, error) {
	var score ScoreRecord
	if err := c.do(ctx, http.MethodPost, "/scores", req, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

// DeleteScores removes every shot recorded for the player.
func (c *HTTPClient) DeleteScores(ctx context.Context, playerID string) error {
	return c.do(ctx, http.MethodDelete, "/scores?playerId="+url.QueryEscape(playerID), nil, nil)
}

// Login exchanges the credential pair for a token and stores it on the client.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.Token = resp.Token
	return &resp, nil
}

// errorResponse is the API's error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	log.Debug("API request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", ErrBadRequest, apiErr.Error)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Error)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Error)
		case http.StatusConflict:
			return fmt.Errorf("%w: %s", ErrConflict, apiErr.Error)
		default:
			return fmt.Errorf("unexpected HTTP status %d: %s", resp.StatusCode, apiErr.Error)
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
