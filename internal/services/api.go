package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "http://localhost:8080"

// TokenProvider supplies the bearer token for outgoing requests.
// An empty string means no token is held and the request goes out without one.
type TokenProvider interface {
	AccessToken() string
}

// RequestError is the failure surface for any non-2xx backend response.
// Authorization failures (401/403) are not structurally distinguished; callers
// inspect Status.
type RequestError struct {
	Status     int
	StatusText string
	Message    string // decoded {message} body when available, else the literal body
	Body       []byte
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error: status %d %s", e.Status, e.StatusText)
}

// Client performs JSON requests against the match-tracking backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

// NewClient creates a backend client. baseURL defaults to http://localhost:8080
// and client to [http.DefaultClient]; tokens may be nil for unauthenticated use.
func NewClient(baseURL string, client *http.Client, tokens TokenProvider) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
		tokens:     tokens,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string) (any, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// do performs one request and decodes the JSON response body.
//
// Transport errors propagate wrapped; non-2xx statuses become a *RequestError.
// A success body that fails to decode yields a nil value, which the normalizer
// turns into a fully defaulted record rather than an error.
func (c *Client) do(ctx context.Context, method, path string, body any) (any, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newRequestError(resp, raw)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, nil
	}
	return decoded, nil
}

// newRequestError builds a RequestError, preferring the backend's {message}
// JSON body and falling back to the literal body text.
func newRequestError(resp *http.Response, body []byte) *RequestError {
	reqErr := &RequestError{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       body,
	}

	var msgBody struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &msgBody); err == nil && msgBody.Message != "" {
		reqErr.Message = msgBody.Message
	} else if len(body) > 0 {
		reqErr.Message = string(body)
	}

	return reqErr
}
