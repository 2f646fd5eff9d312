package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"nundu/internal/models"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "NUNDU_HTTP_TIMEOUT"
)

// Client is a simple HTTP client for the nundu API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeoutFromEnv()},
	}
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/info", nil, nil, &resp)
	return resp, err
}

// List returns the records of entity, filtered by query.
func (c *Client) List(ctx context.Context, entity models.Entity, query url.Values) ([]models.Record, error) {
	var resp []models.Record
	err := c.do(ctx, http.MethodGet, collectionPath(entity), query, nil, &resp)
	return resp, err
}

func (c *Client) Get(ctx context.Context, entity models.Entity, id string) (models.Record, error) {
	var resp models.Record
	err := c.do(ctx, http.MethodGet, recordPath(entity, id), nil, nil, &resp)
	return resp, err
}

func (c *Client) Create(ctx context.Context, entity models.Entity, fields map[string]any) (models.Record, error) {
	var resp models.Record
	err := c.do(ctx, http.MethodPost, collectionPath(entity), nil, fields, &resp)
	return resp, err
}

// Update sends a partial update; only the given fields change.
func (c *Client) Update(ctx context.Context, entity models.Entity, id string, fields map[string]any) (models.Record, error) {
	var resp models.Record
	err := c.do(ctx, http.MethodPatch, recordPath(entity, id), nil, fields, &resp)
	return resp, err
}

func (c *Client) Delete(ctx context.Context, entity models.Entity, id string) (MessageResponse, error) {
	var resp MessageResponse
	err := c.do(ctx, http.MethodDelete, recordPath(entity, id), nil, nil, &resp)
	return resp, err
}

func collectionPath(entity models.Entity) string {
	return "/" + entity.Name
}

func recordPath(entity models.Entity, id string) string {
	return collectionPath(entity) + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return &APIError{
			Status:    resp.StatusCode,
			Code:      errResp.Code,
			ErrorCode: errResp.ErrorCode,
			Message:   errResp.Error,
			Details:   errResp.Details,
		}
	}
	return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("api error: %s", resp.Status)}
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
