package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carelink/carelink/internal/session"
)

// ErrUnauthorized is returned when the server answers 401. By the time the
// caller sees it, the local session has already been cleared; handling is
// idempotent under repeated 401s.
var ErrUnauthorized = errors.New("session expired or invalid, please log in again")

// APIError carries a non-401 HTTP failure. Message is the server's JSON
// "message" field when present, otherwise the raw response text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Client is the shared HTTP layer every resource client goes through.
// There is no caching and no retry: each command re-fetches, and mutations
// wait for the server response before any local state changes.
type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, store session.Store, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		log:     log,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, true)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, true)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, true)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

// PostPublic sends a request without attaching the stored token, for
// credential endpoints like login and register. A 401 here means the
// submitted credentials were rejected, not that the session died, so the
// stored session is left alone and the server's message is surfaced as a
// plain APIError.
func (c *Client) PostPublic(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, false)
}

// GetBlob streams a binary response body (e.g. a prescription download)
// into w and returns the number of bytes written.
func (c *Client) GetBlob(ctx context.Context, path string, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil, true)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return 0, c.handleUnauthorized(path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, decodeError(resp)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("save blob from %s: %w", path, err)
	}
	return n, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, authed bool) error {
	req, err := c.newRequest(ctx, method, path, query, body, authed)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Teardown applies only to authenticated resource calls. A 401
		// on a public endpoint is a result, not an expired session.
		if !authed {
			return decodeError(resp)
		}
		return c.handleUnauthorized(path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}, authed bool) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		if sess, err := c.store.Current(); err == nil {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}
	return req, nil
}

func (c *Client) handleUnauthorized(path string) error {
	if err := c.store.Clear(); err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("failed to clear session after 401")
	} else {
		c.log.Warn().Str("path", path).Msg("401 received, session cleared")
	}
	return ErrUnauthorized
}

// decodeError extracts the best available error text from a failed
// response: the JSON "message" field if the body decodes, else the raw
// body, else the standard status text.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return &APIError{Status: resp.StatusCode, Message: payload.Message}
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: text}
}
