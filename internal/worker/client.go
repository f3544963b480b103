package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"timebook/internal/models"
)

// HTTPForwardClient replicates time-entry mutations to the booking service
// over its JSON API.
type HTTPForwardClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPForwardClient(baseURL string, client *http.Client) *HTTPForwardClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPForwardClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (c *HTTPForwardClient) CreateEntry(ctx context.Context, entry *models.TimeEntry) error {
	return c.send(ctx, http.MethodPost, c.baseURL+"/api/time-entries", entry)
}

func (c *HTTPForwardClient) UpdateEntry(ctx context.Context, entry *models.TimeEntry) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("%s/api/time-entries/%d", c.baseURL, entry.ID), entry)
}

func (c *HTTPForwardClient) DeleteEntry(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("%s/api/time-entries/%d", c.baseURL, id), nil)
}

func (c *HTTPForwardClient) send(ctx context.Context, method, url string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", method, url, resp.StatusCode)
	}
	return nil
}
