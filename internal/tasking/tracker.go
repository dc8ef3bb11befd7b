// Package tasking adapts the follow-up task tracker collaborator.
package tasking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/leads/ports"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
)

const defaultHTTPTimeout = 10 * time.Second

// New selects the live tracker when a tasking API is configured, the mock
// otherwise.
func New(cfg config.TaskingConfig, log *logger.Logger) ports.TaskTracker {
	if !cfg.IsTaskingEnabled() {
		return &mock{log: log}
	}
	return &Client{
		baseURL:    cfg.GetTaskingAPIURL(),
		apiKey:     cfg.GetTaskingAPIKey(),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		log:        log,
	}
}

// Client handles task tracker requests.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

type taskPayload struct {
	Title    string `json:"title"`
	Notes    string `json:"notes,omitempty"`
	DueAt    string `json:"dueAt"`
	Priority string `json:"priority"`
	Assignee string `json:"assignee,omitempty"`
}

type taskResponse struct {
	ID string `json:"id"`
}

// CreateTask creates a follow-up task and returns its ref.
func (c *Client) CreateTask(ctx context.Context, lead *domain.Lead, req ports.TaskRequest) (string, error) {
	body, err := json.Marshal(taskPayload{
		Title:    req.Title,
		Notes:    req.Notes,
		DueAt:    req.DueAt.UTC().Format(time.RFC3339),
		Priority: req.Priority,
		Assignee: lead.Territory.Representative,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tasks", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("task create failed", "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("tasking status %d", resp.StatusCode)
	}

	var out taskResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// Mode reports live operation.
func (c *Client) Mode() string { return ports.ModeLive }

type mock struct {
	log *logger.Logger
}

func (m *mock) CreateTask(_ context.Context, lead *domain.Lead, req ports.TaskRequest) (string, error) {
	id := "task-" + uuid.NewString()
	m.log.Debug("mock task created",
		"email", lead.Email, "title", req.Title, "priority", req.Priority, "dueAt", req.DueAt, "id", id)
	return id, nil
}

func (m *mock) Mode() string { return ports.ModeMock }

var (
	_ ports.TaskTracker = (*Client)(nil)
	_ ports.TaskTracker = (*mock)(nil)
)
