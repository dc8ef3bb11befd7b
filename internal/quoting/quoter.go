// Package quoting adapts the CPQ collaborator.
package quoting

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

// New selects the live quoter when a quoting API is configured, the mock
// otherwise.
func New(cfg config.QuotingConfig, log *logger.Logger) ports.Quoter {
	if !cfg.IsQuotingEnabled() {
		return &mock{log: log}
	}
	return &Client{
		baseURL:    cfg.GetQuotingAPIURL(),
		apiKey:     cfg.GetQuotingAPIKey(),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		log:        log,
	}
}

// Client handles CPQ requests.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

type quotePayload struct {
	Email       string `json:"email"`
	Company     string `json:"company,omitempty"`
	AmountCents int64  `json:"amountCents"`
	Owner       string `json:"owner,omitempty"`
}

type quoteResponse struct {
	ID string `json:"id"`
}

// CreateQuote creates a quote for the lead and returns its ref.
func (c *Client) CreateQuote(ctx context.Context, lead *domain.Lead, amountCents int64) (string, error) {
	body, err := json.Marshal(quotePayload{
		Email:       domain.NormalizeEmail(lead.Email),
		Company:     lead.Company,
		AmountCents: amountCents,
		Owner:       lead.Territory.Representative,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/quotes", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("quote create failed", "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("quoting status %d", resp.StatusCode)
	}

	var out quoteResponse
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

func (m *mock) CreateQuote(_ context.Context, lead *domain.Lead, amountCents int64) (string, error) {
	id := "quote-" + uuid.NewString()
	m.log.Debug("mock quote created", "email", lead.Email, "amountCents", amountCents, "id", id)
	return id, nil
}

func (m *mock) Mode() string { return ports.ModeMock }

var (
	_ ports.Quoter = (*Client)(nil)
	_ ports.Quoter = (*mock)(nil)
)
