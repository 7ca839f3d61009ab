// internal/garmin/client.go
package garmin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// ErrBadCredentials marks an authentication rejection from the Garmin API
// gateway, as opposed to a transport failure. Match with errors.Is.
var ErrBadCredentials = errors.New("garmin: bad credentials")

// Client talks to the Garmin Connect API gateway. A successful Login leaves a
// bearer token on the client; Logout drops it. The token is the only
// credential-derived state ever held, and only in memory.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu    sync.Mutex
	token string
}

// Activity is the gateway's activity summary representation.
type Activity struct {
	ActivityID   int64                  `json:"activityId"`
	ActivityName string                 `json:"activityName"`
	StartTimeGMT string                 `json:"startTimeGMT"` // "2006-01-02 15:04:05"
	ActivityType map[string]interface{} `json:"activityType"`
	Distance     float64                `json:"distance"` // meters
	Duration     float64                `json:"duration"` // seconds
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Login authenticates with the gateway and retains the session token.
func (c *Client) Login(ctx context.Context, username, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		var body struct {
			Error string `json:"error"`
		}
		msg := "authentication rejected"
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Error != "" {
			msg = body.Error
		}
		return fmt.Errorf("%w: %s", ErrBadCredentials, msg)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login returned status %d: %s", resp.StatusCode, body)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if body.Token == "" {
		return fmt.Errorf("login response carried no token")
	}

	c.mu.Lock()
	c.token = body.Token
	c.mu.Unlock()
	return nil
}

// Logout drops the session token.
func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *Client) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != ""
}

// FetchActivities retrieves a page of activity summaries, newest first.
func (c *Client) FetchActivities(ctx context.Context, start, limit int) ([]Activity, error) {
	reqURL := fmt.Sprintf("%s/activities?start=%d&limit=%d", c.baseURL, start, limit)

	var activities []Activity
	if err := c.getJSON(ctx, reqURL, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetActivityDetails retrieves the summary for a single activity.
func (c *Client) GetActivityDetails(ctx context.Context, activityID int64) (*Activity, error) {
	reqURL := fmt.Sprintf("%s/activities/%d", c.baseURL, activityID)

	var activity Activity
	if err := c.getJSON(ctx, reqURL, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// DownloadActivity fetches the raw activity file in the requested format
// (fit or gpx).
func (c *Client) DownloadActivity(ctx context.Context, activityID int64, format string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/activities/%d/download?format=%s", c.baseURL, activityID, url.QueryEscape(format))

	resp, err := c.do(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, body)
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	resp, err := c.do(ctx, reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) do(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}
