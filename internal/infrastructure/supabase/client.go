// Package supabase talks to the hosted backend: PostgREST for table access
// and GoTrue for authentication.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"telesalud-admin/config"

	"github.com/sirupsen/logrus"
)

// Client carries the project URL, the public anon key and the HTTP client
// shared by the REST and auth endpoints.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(cfg config.SupabaseConfig, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// newRequest builds a request with the project headers. bearer falls back
// to the anon key when empty.
func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}, bearer string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do sends req and returns the response with its body fully read.
func (c *Client) do(req *http.Request) (*http.Response, []byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnf("Failed to call %s %s: %+v", req.Method, req.URL.Path, err)
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"method":   req.Method,
		"path":     req.URL.Path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("supabase call")

	return resp, raw, nil
}
