// Package inventory is the order service's HTTP client for the inventory service.
package inventory

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StatusError is returned when the inventory service answers with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inventory: unexpected status %d: %s", e.Code, e.Body)
}

// Rejected reports a 4xx answer: the query itself was refused and repeating it
// unchanged will not succeed.
func (e *StatusError) Rejected() bool {
	return e.Code >= 400 && e.Code < 500
}

// Client calls GET /api/inventory. Every call is bounded by the client timeout
// in addition to the caller's context.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
	}
}

// IsInStock asks the inventory service whether quantity units of skuCode are on hand.
func (c *Client) IsInStock(ctx context.Context, skuCode string, quantity int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("skuCode", skuCode)
	q.Set("quantity", strconv.Itoa(quantity))
	endpoint := c.baseURL + "/api/inventory?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("inventory: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("inventory: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil {
		return false, fmt.Errorf("inventory: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return false, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	switch strings.TrimSpace(string(body)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("inventory: unexpected body %q", body)
	}
}
