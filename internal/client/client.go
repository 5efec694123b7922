// Package client speaks to a running task API server. It implements
// the same service.API contract as the local service, so the TUI and
// CLI do not care which side of the wire they are on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/service"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

var _ service.API = (*Client)(nil)

// New returns a client for the API at baseURL (e.g. http://localhost:8080).
// The logger records transport failures; pass a discard logger from the
// TUI so stdout stays clean.
func New(baseURL string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		c.log.Error("list tasks", "error", err)
		return nil, service.ErrFetchFailed
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*model.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, service.ErrEmptyID
	}
	// The API has no single-task GET; filter the listing.
	tasks, err := c.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

func (c *Client) CreateTask(ctx context.Context, title string) (model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return model.Task{}, service.ErrEmptyTitle
	}
	body := map[string]string{"title": title}
	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", body, &task); err != nil {
		c.log.Error("create task", "error", err)
		return model.Task{}, service.ErrCreateFailed
	}
	return task, nil
}

func (c *Client) ToggleTask(ctx context.Context, id string) (*model.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, service.ErrEmptyID
	}
	var task model.Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, nil, &task)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		c.log.Error("toggle task", "id", id, "error", err)
		return nil, service.ErrUpdateFailed
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, service.ErrEmptyID
	}
	var resp struct {
		Success bool `json:"success"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, &resp)
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	if err != nil {
		c.log.Error("delete task", "id", id, "error", err)
		return false, service.ErrDeleteFailed
	}
	return resp.Success, nil
}

// errNotFound marks a 404 so callers can map it to the absent outcome
// instead of a failure.
var errNotFound = errors.New("not found")

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
