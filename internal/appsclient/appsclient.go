// Package appsclient is a small JSON client for the apps API, used by the CLI
// and by integration tests.
package appsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/hatsunemiku3939/cliutil"
)

const appsBasePath = "/v2/apps/"

var ErrMissingServer = errors.New("missing server")

// Client sends JSON requests below <BaseURL>/v2/apps/.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client using http.DefaultClient.
func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTPClient: http.DefaultClient}
}

func (c *Client) Get(ctx context.Context, path string) (any, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (any, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// URL resolves path against the apps base path.
func (c *Client) URL(path string) (string, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	ref := &url.URL{Path: appsBasePath + strings.TrimPrefix(path, "/")}
	return base.ResolveReference(ref).String(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (any, error) {
	target, err := c.URL(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		var opErr *net.OpError
		if errors.As(err, &opErr) {
			return nil, fmt.Errorf("%w at %s: %v", ErrMissingServer, req.URL.Host, err)
		}
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	return cliutil.LoadJSON(ctx, resp.Body)
}
