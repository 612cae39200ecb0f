// Package client talks to a running presence endpoint over HTTP.
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

	"github.com/jpalmerr/presence/internal/status"
)

const maxResponseBodySize = 1 << 20 // 1MB

const (
	defaultTimeout         = 10 * time.Second
	defaultIdleConnTimeout = 60 * time.Second
)

var (
	// ErrUnauthorized is returned when the endpoint rejects the token.
	ErrUnauthorized = errors.New("unauthorized: token rejected")

	// ErrNoStatus is returned when nothing has been published yet.
	ErrNoStatus = errors.New("no status has been published")
)

// ResponseError describes an unexpected HTTP response.
type ResponseError struct {
	StatusCode int
	Body       string

	// Issues holds the validation issues of a 400 response, if any.
	Issues status.Issues
}

func (e *ResponseError) Error() string {
	if len(e.Issues) > 0 {
		return fmt.Sprintf("request rejected (%d): %s", e.StatusCode, e.Issues.Error())
	}
	return fmt.Sprintf("unexpected response %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Client reads and publishes status against a single endpoint URL.
//
// Timeouts are applied per request via the context passed to [Client.Get] and
// [Client.Set].
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// New creates a [Client] for the endpoint at baseURL. A zero timeout uses 10s.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		timeout: timeout,
		httpClient: &http.Client{
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// Get returns the status as currently reported, with staleness applied by the
// server.
func (c *Client) Get(ctx context.Context) (status.Record, error) {
	code, body, err := c.do(ctx, http.MethodGet, "", nil)
	if err != nil {
		return status.Record{}, err
	}

	switch code {
	case http.StatusOK:
		var rec status.Record
		if err := json.Unmarshal(body, &rec); err != nil {
			return status.Record{}, fmt.Errorf("failed to decode status: %w", err)
		}
		return rec, nil
	case http.StatusBadGateway:
		return status.Record{}, ErrNoStatus
	default:
		return status.Record{}, &ResponseError{StatusCode: code, Body: string(body)}
	}
}

// Set publishes s authenticated with token.
func (c *Client) Set(ctx context.Context, token string, s status.Status) error {
	payload, err := json.Marshal(struct {
		Status status.Status `json:"status"`
	}{Status: s})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	code, body, err := c.do(ctx, http.MethodPost, token, payload)
	if err != nil {
		return err
	}

	switch code {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusBadRequest:
		respErr := &ResponseError{StatusCode: code, Body: string(body)}
		_ = json.Unmarshal(body, &respErr.Issues)
		return respErr
	default:
		return &ResponseError{StatusCode: code, Body: string(body)}
	}
}

// Close closes all idle connections in the client's connection pool.
// Safe to call multiple times.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	c.httpClient.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, method, token string, payload []byte) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}
