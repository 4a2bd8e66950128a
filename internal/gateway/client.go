// Package gateway implements the HTTP client for the remote content
// gateway: folder/file CRUD, favorites, uploads and downloads. Every
// request carries the bearer credential supplied by the token source;
// the client performs no auth logic beyond attaching it.
package gateway

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/filedash/filedash/internal/domain"
	"github.com/filedash/filedash/internal/metrics"
	"github.com/filedash/filedash/internal/port"
)

// Client talks to the remote content gateway over HTTP
type Client struct {
	baseURL    string
	tokens     port.TokenSource
	httpClient *http.Client
}

// Ensure Client implements port.Gateway
var _ port.Gateway = (*Client)(nil)

// Config holds client settings
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	SkipTLSVerify bool
}

// NewClient creates a new gateway client
func NewClient(cfg Config, tokens port.TokenSource) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// errorBody is the failure payload shape the gateway returns
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// newRequest builds a request with the bearer credential attached
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

// do runs the request and maps failures into the domain error taxonomy.
// The caller owns the response body on success.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	done := metrics.RequestStarted()
	defer done()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveRequest(op, 0, err, time.Since(start))
		return nil, domain.NewNetworkError(op, err)
	}
	metrics.ObserveRequest(op, resp.StatusCode, nil, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		var eb errorBody
		detail := ""
		if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb); err == nil {
			detail = eb.Detail
			if detail == "" {
				detail = eb.Message
			}
		}
		return nil, domain.NewGatewayError(op, resp.StatusCode, detail)
	}

	return resp, nil
}

// getJSON performs a GET and decodes the JSON response into out
func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewNetworkError(op, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// sendJSON performs a request with a JSON body and optionally decodes
// the response into out
func (c *Client) sendJSON(ctx context.Context, op, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return domain.NewNetworkError(op, fmt.Errorf("failed to decode response: %w", err))
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return nil
}

// wireID converts an opaque item id into its wire representation.
// Folder ids are numeric on the wire; file ids are UUID strings.
func wireID(id domain.ItemID) any {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return n
	}
	return string(id)
}
