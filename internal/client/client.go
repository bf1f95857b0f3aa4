// Package client is a Go client for the website API: the admin session, the
// FAQ editor of the admin panel and the visitor chat widget.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/auth"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/chatbot"
)

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Code       string // "error" field of the response body
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Code)
}

// IsUnauthorized reports whether err is a 401 from the API
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Settings is the chatbot configuration as the widget and the editor see it
type Settings struct {
	Greeting  string          `json:"greeting"`
	FAQs      chatbot.FAQList `json:"faqs"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DefaultSettings is used when the settings cannot be loaded
func DefaultSettings() *Settings {
	return &Settings{Greeting: chatbot.DefaultGreeting, FAQs: chatbot.FAQList{}}
}

// Client calls the API. Requests are sent once; there are no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client with a 15s timeout
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSettings fetches the chatbot settings. The faqs field may arrive as an
// array or as a JSON-encoded string; both decode to the same list.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.do(ctx, http.MethodGet, "/api/chatbot/settings", "", nil, &settings); err != nil {
		return nil, err
	}
	if strings.TrimSpace(settings.Greeting) == "" {
		settings.Greeting = chatbot.DefaultGreeting
	}
	settings.FAQs = settings.FAQs.Normalized()
	return &settings, nil
}

// SaveSettings replaces greeting and FAQs in a single call
func (c *Client) SaveSettings(ctx context.Context, token, greeting string, faqs chatbot.FAQList) error {
	body := map[string]interface{}{
		"greeting": greeting,
		"faqs":     faqs.Normalized(),
	}
	return c.do(ctx, http.MethodPut, "/api/chatbot/settings", token, body, nil)
}

// SendMessage asks the chatbot and returns its reply
func (c *Client) SendMessage(ctx context.Context, message string) (string, error) {
	var resp struct {
		Response string `json:"response"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chatbot/message", "", map[string]string{"message": message}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Login exchanges credentials for an access token
func (c *Client) Login(ctx context.Context, username, password string) (*auth.AuthResponse, error) {
	var resp auth.AuthResponse
	body := auth.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Verify returns the user a token belongs to
func (c *Client) Verify(ctx context.Context, token string) (*auth.UserInfo, error) {
	var resp struct {
		User auth.UserInfo `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout records the logout server side
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
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

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			apiErr.Code = payload.Error
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
