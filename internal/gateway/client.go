package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gauchoeats/gaucho/internal/models"
	"github.com/google/uuid"
)

// ErrInvalidResponse is returned when a response body cannot be decoded
var ErrInvalidResponse = errors.New("invalid response from backend")

// StatusError is returned for any non-2xx response
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: unexpected status code %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: unexpected status code %d", e.Endpoint, e.StatusCode)
}

// RecommendRequest carries the parameters of GET /recommend
type RecommendRequest struct {
	Query            string
	UserID           int64
	DailyQueryNumber int
}

// Client talks to the dining backend over plain HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a backend client. A zero timeout means requests are bounded only by their context.
func New(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserInfo handles GET /user_info?id=
func (c *Client) UserInfo(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	path := "/user_info" + query("id", strconv.FormatInt(userID, 10))
	if err := c.do(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	return &user, nil
}

// UpdatePreferences handles POST /update_preferences and returns the stored record
func (c *Client) UpdatePreferences(ctx context.Context, update models.PreferencesUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/update_preferences", update, &user); err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return &user, nil
}

// WaitTime handles GET /wait_time?dining_hall= and returns the average wait in seconds.
// A null average is reported as 0.
func (c *Client) WaitTime(ctx context.Context, hall string) (float64, error) {
	var resp models.WaitTimeResponse
	if err := c.do(ctx, http.MethodGet, "/wait_time"+query("dining_hall", hall), nil, &resp); err != nil {
		return 0, fmt.Errorf("fetch wait time for %s: %w", hall, err)
	}
	if resp.AverageWaitTime == nil {
		return 0, nil
	}
	return *resp.AverageWaitTime, nil
}

// Menu handles GET /menu?userId=&dining_hall=
func (c *Client) Menu(ctx context.Context, userID int64, hall string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	path := "/menu" + query("userId", strconv.FormatInt(userID, 10), "dining_hall", hall)
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, fmt.Errorf("fetch menu for %s: %w", hall, err)
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return items, nil
}

// Recommend handles GET /recommend and returns the recommendation text.
// A JSON string body is unwrapped; any other JSON value is returned as compact text.
// A null body is an invalid response.
func (c *Client) Recommend(ctx context.Context, req RecommendRequest) (string, error) {
	var raw json.RawMessage
	path := "/recommend" + query(
		"user_query", req.Query,
		"user_id", strconv.FormatInt(req.UserID, 10),
		"daily_query_number", strconv.Itoa(req.DailyQueryNumber),
	)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return "", fmt.Errorf("fetch recommendation: %w", err)
	}

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("fetch recommendation: %w", ErrInvalidResponse)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("fetch recommendation: %w", ErrInvalidResponse)
	}
	return buf.String(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func statusError(path string, resp *http.Response) error {
	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}

	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(data, &payload)

	return &StatusError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Message:    payload.Error,
	}
}

// query builds a query string keeping the parameters in the given order.
// Spaces are encoded as %20.
func query(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(escape(pairs[i]))
		b.WriteByte('=')
		b.WriteString(escape(pairs[i+1]))
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
