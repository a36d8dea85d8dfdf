package retell

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const DefaultBaseURL = "https://api.retellai.com"

var ErrNotConfigured = errors.New("retell: RETELL_API_KEY and RETELL_AGENT_ID are required")

// Client talks to Retell's session API. No timeout is set; callers bound
// requests through the context.
type Client struct {
	baseURL string
	apiKey  string
	agentID string
	http    *http.Client
}

func New(baseURL, apiKey, agentID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		agentID: agentID,
		http:    http.DefaultClient,
	}
}

// CreateWebCall starts a browser call session for the configured agent and
// returns Retell's JSON response untouched.
func (c *Client) CreateWebCall(ctx context.Context) (json.RawMessage, error) {
	if c.apiKey == "" || c.agentID == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{"agent_id": c.agentID})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/create-web-call", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("retell: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("retell: create web call: %w", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("retell: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("retell: create web call: %s: %s", resp.Status, bytes.TrimSpace(out))
	}
	if !json.Valid(out) {
		return nil, errors.New("retell: create web call: response is not JSON")
	}
	return json.RawMessage(out), nil
}
