// Package api is the REST client for the task backend. It covers the task
// CRUD endpoints, the non-streaming chat fallback, and the liveness probe.
// The realtime paths live in internal/conn.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"taskflow/task"
)

const defaultTimeout = 10 * time.Second

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}

// Client talks to the task backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithHTTP creates a Client with an explicit http.Client, for tests.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc}
}

// GetTasks lists tasks with pagination. skip and limit follow the backend's
// defaults when zero (limit 0 means 100 server-side).
func (c *Client) GetTasks(ctx context.Context, skip, limit int) ([]task.Task, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var tasks []task.Task
	if err := c.get(ctx, "/api/tasks/?"+q.Encode(), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTasksFiltered lists tasks matching the filter. Zero-value fields are
// omitted from the query string.
func (c *Client) GetTasksFiltered(ctx context.Context, f task.Filter) ([]task.Task, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		q.Set("priority", string(f.Priority))
	}
	if f.DueBefore != "" {
		q.Set("due_before", f.DueBefore)
	}
	if f.DueAfter != "" {
		q.Set("due_after", f.DueAfter)
	}

	path := "/api/tasks/filter"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var tasks []task.Task
	if err := c.get(ctx, path, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task by id.
func (c *Client) GetTask(ctx context.Context, id int) (*task.Task, error) {
	var t task.Task
	if err := c.get(ctx, fmt.Sprintf("/api/tasks/%d", id), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask creates a task and returns the server's copy.
func (c *Client) CreateTask(ctx context.Context, create task.Create) (*task.Task, error) {
	var t task.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks/", create, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask applies a partial update and returns the server's copy.
func (c *Client) UpdateTask(ctx context.Context, id int, update task.Update) (*task.Task, error) {
	var t task.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), update, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTask removes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}

// ChatRequest is the body for the non-streaming chat endpoint.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the reply from the non-streaming chat endpoint.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id,omitempty"`
}

// SendChatMessage sends a message over the REST fallback path. The realtime
// chat channel is preferred when connected; this exists for degraded mode.
func (c *Client) SendChatMessage(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HealthCheck probes the backend's liveness endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// do performs a JSON request. body and out may be nil. Non-2xx responses
// become a *StatusError carrying the HTTP code and response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
