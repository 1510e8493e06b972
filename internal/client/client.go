// Package client talks to the task HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/miguelbonilla1/ai-automation/internal/models"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("task api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("task api: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id uuid.UUID) (models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+id.String(), nil, nil, &task)
	return task, err
}

func (c *Client) CreateTask(ctx context.Context, title string, userEmail *string) (models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", nil,
		models.CreateTaskRequest{Title: &title, UserEmail: userEmail}, &task)
	return task, err
}

func (c *Client) UpdateTask(ctx context.Context, id uuid.UUID, update models.TaskUpdate) (models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPatch, "/api/tasks", nil, models.UpdateTaskRequest{
		ID:        id.String(),
		Title:     update.Title,
		Completed: update.Completed,
	}, &task)
	return task, err
}

func (c *Client) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks", nil, models.DeleteTaskRequest{ID: id.String()}, nil)
}

// Enhance posts an enhanced title the way the external worker does.
func (c *Client) Enhance(ctx context.Context, secret string, id uuid.UUID, enhancedTitle string) error {
	taskID := id.String()
	headers := map[string]string{"Authorization": "Bearer " + secret}
	return c.do(ctx, http.MethodPost, "/api/enhance", headers,
		models.EnhanceRequest{TaskID: &taskID, EnhancedTitle: &enhancedTitle}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
