// internal/dashboard/client.go
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Activity is a server-supplied activity record. Any field may be absent;
// zero values are treated as absent when rendering.
type Activity struct {
	ActivityID   string  `json:"activity_id"`
	ActivityName string  `json:"activity_name"`
	StartTimeGMT int64   `json:"start_time_gmt"` // Unix seconds
	Distance     float64 `json:"distance"`       // meters
	Duration     float64 `json:"duration"`       // seconds
}

// APIError is a server-reported logical failure: the request completed but
// the backend said no. Transport failures come back as ordinary errors, so
// callers can tell the two apart with errors.As.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client wraps the two dashboard endpoints behind a single result shape:
// activities on success, *APIError on a server-reported failure, any other
// error on a transport failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type fetchEnvelope struct {
	Success    bool       `json:"success"`
	Activities []Activity `json:"activities"`
	Error      string     `json:"error"`
}

// LoginAndFetch posts the credentials and returns the freshly synced
// activities. Success requires both transport success and the server's
// success flag.
func (c *Client) LoginAndFetch(ctx context.Context, username, password string) ([]Activity, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login-and-fetch", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env fetchEnvelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && resp.StatusCode == http.StatusOK {
		return nil, decodeErr
	}

	if resp.StatusCode != http.StatusOK || !env.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    messageOr(env.Error, "Login failed."),
		}
	}

	return env.Activities, nil
}

// FetchData reads the already-synced activities. The HTTP status code is the
// success signal for this endpoint.
func (c *Client) FetchData(ctx context.Context) ([]Activity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get-data", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env fetchEnvelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && resp.StatusCode == http.StatusOK {
		return nil, decodeErr
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    messageOr(env.Error, "Failed to load data."),
		}
	}

	return env.Activities, nil
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
