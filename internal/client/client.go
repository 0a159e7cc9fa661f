// Package client talks to a running Asset Compass server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

// Collections are the resource paths served under /api/.
var Collections = []string{
	"datacenters",
	"operating-systems",
	"servers",
	"hosts",
	"ip-addresses",
	"persons",
	"assignments",
}

// Error is a non-2xx response decoded from the server's error body.
type Error struct {
	StatusCode int               `json:"code"`
	Kind       string            `json:"kind"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s: %s", e.StatusCode, e.Kind, e.Message)
	for k, v := range e.Fields {
		fmt.Fprintf(&b, "\n  %s: %s", k, v)
	}
	return b.String()
}

// Client is a thin JSON client. Responses are returned undecoded.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Health returns nil when the server reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", nil, nil)
	return err
}

// List fetches one page of a collection. filter adds extra query parameters.
func (c *Client) List(ctx context.Context, collection string, page model.Page, filter url.Values) (json.RawMessage, error) {
	q := url.Values{}
	for k, v := range filter {
		q[k] = v
	}
	q.Set("skip", strconv.Itoa(page.Skip))
	q.Set("limit", strconv.Itoa(page.Limit))
	return c.do(ctx, http.MethodGet, "/api/"+collection, q, nil)
}

// ListChildren fetches the records of kind child that belong to parent id,
// e.g. ListChildren(ctx, "datacenters", "dc-1", "servers", page).
func (c *Client) ListChildren(ctx context.Context, parent, id, child string, page model.Page) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(page.Skip))
	q.Set("limit", strconv.Itoa(page.Limit))
	return c.do(ctx, http.MethodGet, "/api/"+parent+"/"+url.PathEscape(id)+"/"+child, q, nil)
}

func (c *Client) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/"+collection+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Create(ctx context.Context, collection string, body []byte) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/api/"+collection, nil, body)
}

func (c *Client) Update(ctx context.Context, collection, id string, body []byte) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, "/api/"+collection+"/"+url.PathEscape(id), nil, body)
}

func (c *Client) Delete(ctx context.Context, collection, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, "/api/"+collection+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Kind = "http_error"
			apiErr.Message = strings.TrimSpace(string(data))
			if apiErr.Message == "" {
				apiErr.Message = resp.Status
			}
		}
		apiErr.StatusCode = resp.StatusCode
		return nil, apiErr
	}

	return json.RawMessage(data), nil
}
