// Package github fetches recent public activity for one user and condenses
// it into the summary the analyzer consumes.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// Event is the slice of a GitHub event the summary cares about.
type Event struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload struct {
		Commits []struct {
			Message string `json:"message"`
		} `json:"commits"`
	} `json:"payload"`
}

// Client talks to the GitHub events API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	username   string
}

// NewClient creates a client for the given user. The token is optional; the
// events endpoint is public, the token only raises the rate limit.
func NewClient(username, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		username:   username,
	}
}

// Events fetches the user's recent public events, filtered to the last
// `days` days.
func (c *Client) Events(ctx context.Context, days int) ([]Event, error) {
	url := fmt.Sprintf("%s/users/%s/events/public", c.baseURL, c.username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API error (status %d): %s", resp.StatusCode, string(body))
	}

	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to parse events: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	var recent []Event
	for _, e := range events {
		if e.CreatedAt.After(cutoff) {
			recent = append(recent, e)
		}
	}
	return recent, nil
}
