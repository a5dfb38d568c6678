// Package client is a typed Go client for the Tripora API. Besides plain
// request helpers it ships the pieces a dashboard needs to consume the API
// well: a pager driven by the response's pagination block, a trailing
// debouncer for search inputs, and an observable query cache with
// prefix invalidation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const authCookieName = "authToken"

type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
	locale  string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpc = h } }
func WithAuthToken(token string) Option    { return func(c *Client) { c.token = token } }
func WithLocale(locale string) Option      { return func(c *Client) { c.locale = locale } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		locale:  "en",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuthToken swaps the token after sign-in.
func (c *Client) SetAuthToken(token string) { c.token = token }

// Pagination mirrors the server's pagination block. Prev and next are nil
// exactly on the first and last page.
type Pagination struct {
	CurrentPage    int  `json:"current_page"`
	TotalPages     int  `json:"total_pages"`
	PrevPageNumber *int `json:"prev_page_number"`
	NextPageNumber *int `json:"next_page_number"`
}

type Meta struct {
	CurrentPage int        `json:"current_page"`
	Pagination  Pagination `json:"pagination"`
}

type ListPage[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// APIError is a non-2xx response decoded from { "error": msg }.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// List fetches one page of a collection. Item order is the server's.
func List[T any](ctx context.Context, c *Client, path string, query url.Values) (ListPage[T], error) {
	var page ListPage[T]
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	if err := c.do(ctx, http.MethodGet, u, nil, &page); err != nil {
		return ListPage[T]{}, err
	}
	return page, nil
}

// Get fetches a single resource from { "data": T }.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out struct {
		Data T `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, c.baseURL+path, nil, &out); err != nil {
		var zero T
		return zero, err
	}
	return out.Data, nil
}

// MutationResult is the { message, data? } mutation response.
type MutationResult struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Mutate sends a JSON mutation. Single attempt, no retry: the caller decides
// what a failure means.
func (c *Client) Mutate(ctx context.Context, method, path string, body any) (MutationResult, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return MutationResult{}, err
		}
		payload = bytes.NewReader(b)
	}

	var out MutationResult
	if err := c.do(ctx, method, c.baseURL+path, payload, &out); err != nil {
		return MutationResult{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, u string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.locale != "" {
		req.Header.Set("Accept-Language", c.locale)
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: authCookieName, Value: c.token})
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var decoded struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(raw, &decoded) == nil && decoded.Error != "" {
			apiErr.Message = decoded.Error
			apiErr.Fields = decoded.Fields
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
