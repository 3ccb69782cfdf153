package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	restPrefix   = "/rest/v1/"
	preferUpsert = "resolution=merge-duplicates,return=representation"
)

// APIError is the error body returned by the table endpoint.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fasthttp.StatusMessage(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("table api %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("table api %d: %s", e.Status, msg)
}

// Client talks to a hosted table store over its REST interface.
type Client struct {
	baseURL string
	key     string
	timeout time.Duration
	http    *fasthttp.Client
}

// NewClient builds a client for the endpoint URL and access key.
func NewClient(baseURL, key string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                "alphadate",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

// Ping issues a minimal select to confirm the endpoint answers with valid credentials.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("limit", "1")
	return c.do(ctx, fasthttp.MethodGet, tableActivities, q, nil, "", nil)
}

func (c *Client) do(ctx context.Context, method, table string, query url.Values, body interface{}, prefer string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	target := c.baseURL + restPrefix + table
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req.SetRequestURI(target)
	req.Header.SetMethod(method)
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("%s %s: %w", method, table, err)
	}

	status := resp.StatusCode()
	if status >= fasthttp.StatusMultipleChoices {
		apiErr := &APIError{Status: status}
		_ = json.Unmarshal(resp.Body(), apiErr)
		return apiErr
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s response: %w", table, err)
	}
	return nil
}
