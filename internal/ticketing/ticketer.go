// Package ticketing adapts the support ticket collaborator.
package ticketing

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

// New selects the live ticketer when a ticketing API is configured, the mock
// otherwise.
func New(cfg config.TicketingConfig, log *logger.Logger) ports.Ticketer {
	if !cfg.IsTicketingEnabled() {
		return &mock{log: log}
	}
	return &Client{
		baseURL:    cfg.GetTicketingAPIURL(),
		apiKey:     cfg.GetTicketingAPIKey(),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		log:        log,
	}
}

// Client handles ticketing requests.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

type ticketPayload struct {
	Subject        string `json:"subject"`
	RequesterEmail string `json:"requesterEmail"`
	RequesterName  string `json:"requesterName,omitempty"`
	Priority       string `json:"priority"`
}

type ticketResponse struct {
	ID string `json:"id"`
}

// OpenTicket opens an onboarding ticket for the lead and returns its ref.
func (c *Client) OpenTicket(ctx context.Context, lead *domain.Lead, subject string) (string, error) {
	body, err := json.Marshal(ticketPayload{
		Subject:        subject,
		RequesterEmail: domain.NormalizeEmail(lead.Email),
		RequesterName:  lead.FullName(),
		Priority:       "high",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tickets", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("ticket create failed", "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("ticketing status %d", resp.StatusCode)
	}

	var out ticketResponse
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

func (m *mock) OpenTicket(_ context.Context, lead *domain.Lead, subject string) (string, error) {
	id := "ticket-" + uuid.NewString()
	m.log.Debug("mock ticket opened", "email", lead.Email, "subject", subject, "id", id)
	return id, nil
}

func (m *mock) Mode() string { return ports.ModeMock }

var (
	_ ports.Ticketer = (*Client)(nil)
	_ ports.Ticketer = (*mock)(nil)
)
