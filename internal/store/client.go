// Package store wraps the remote JSON document store behind typed accessors.
//
// Reads never fail from the caller's point of view: any transport error or
// non-2xx status is logged and the caller gets the zero value back, so an
// empty result is ambiguous between "nothing there" and "request failed".
// Writes return explicit errors because every mutating flow has to know
// whether the document actually landed.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// getJSON performs a fallback-read: on any failure it logs and leaves out untouched.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Printf("[Store] build request %s: %v", path, err)
		return
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[Store] GET %s: %v", path, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[Store] GET %s: %s", path, resp.Status)
		return
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("[Store] decode %s: %v", path, err)
	}
}

// send performs a mutating request. A nil out discards the response body.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: store replied %s", method, path, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.send(ctx, http.MethodDelete, path, nil, nil)
}
