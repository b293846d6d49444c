// Package client is a typed HTTP client for the task-tracker API.
//
// Errors reported by the server come back as *exceptions.Exception carrying
// the server's message verbatim. Failures to reach the server at all,
// including timeouts, are reported as *NetworkError.
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

	dto "task-tracker.com/task-tracker/pkg/data_models"
	"task-tracker.com/task-tracker/pkg/exceptions"
	model "task-tracker.com/task-tracker/pkg/models"
)

const maxErrorBody = 64 << 10

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	return call[[]model.Task](ctx, c, http.MethodGet, "/api/tasks", nil)
}

func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error) {
	return call[*model.Task](ctx, c, http.MethodPost, "/api/tasks", req)
}

func (c *Client) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	return call[*model.Task](ctx, c, http.MethodGet, taskPath(id), nil)
}

func (c *Client) UpdateTask(ctx context.Context, id uint, req dto.UpdateTaskRequest) (*model.Task, error) {
	return call[*model.Task](ctx, c, http.MethodPut, taskPath(id), req)
}

func (c *Client) DeleteTask(ctx context.Context, id uint) error {
	_, err := call[struct{}](ctx, c, http.MethodDelete, taskPath(id), nil)
	return err
}

func (c *Client) ListComments(ctx context.Context, taskID uint) ([]model.Comment, error) {
	return call[[]model.Comment](ctx, c, http.MethodGet, commentsPath(taskID), nil)
}

func (c *Client) CreateComment(ctx context.Context, taskID uint, req dto.CreateCommentRequest) (*model.Comment, error) {
	return call[*model.Comment](ctx, c, http.MethodPost, commentsPath(taskID), req)
}

func (c *Client) UpdateComment(
	ctx context.Context,
	taskID, commentID uint,
	req dto.UpdateCommentRequest,
) (*model.Comment, error) {
	return call[*model.Comment](ctx, c, http.MethodPut, commentPath(taskID, commentID), req)
}

func (c *Client) DeleteComment(ctx context.Context, taskID, commentID uint) error {
	_, err := call[struct{}](ctx, c, http.MethodDelete, commentPath(taskID, commentID), nil)
	return err
}

// Health returns nil when the server reports {"status": "ok"}.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	var health dto.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("server reported status %q", health.Status)
	}
	return nil
}

func call[T any](ctx context.Context, c *Client, method, path string, body interface{}) (T, error) {
	var zero T

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return zero, decodeError(resp)
	}
	if resp.StatusCode == http.StatusNoContent {
		return zero, nil
	}

	var env dto.Envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return env.Data, nil
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}
	return resp, nil
}

// decodeError rebuilds the server's exception, falling back to the HTTP
// status text when the body is not an error envelope.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var env dto.ErrorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Error == nil || env.Error.Message == "" {
		return &exceptions.Exception{
			Kind:       exceptions.KindForStatus(resp.StatusCode),
			Message:    http.StatusText(resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	exc := env.Error
	exc.StatusCode = resp.StatusCode
	if exc.Kind == "" {
		exc.Kind = exceptions.KindForStatus(resp.StatusCode)
	}
	return exc
}

func taskPath(id uint) string {
	return fmt.Sprintf("/api/tasks/%d", id)
}

func commentsPath(taskID uint) string {
	return fmt.Sprintf("/api/tasks/%d/comments", taskID)
}

func commentPath(taskID, commentID uint) string {
	return fmt.Sprintf("/api/tasks/%d/comments/%d", taskID, commentID)
}

// IsRetryable reports whether err is a transport failure worth resubmitting.
// Server-reported errors are never retryable.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
