// Package crm adapts the external CRM collaborator: contact upsert by email
// and deal creation.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/leads/ports"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
)

const defaultHTTPTimeout = 10 * time.Second

// New selects the live client when a CRM API is configured, the in-memory
// mock otherwise.
func New(cfg config.CRMConfig, log *logger.Logger) ports.CRM {
	if !cfg.IsCRMEnabled() {
		return NewMock(log)
	}
	return NewClient(cfg.GetCRMAPIURL(), cfg.GetCRMAPIKey(), log)
}

// Client handles CRM requests.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a new CRM client.
func NewClient(baseURL, apiKey string, log *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		log:        log,
	}
}

type contactPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Company   string `json:"company,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
	Industry  string `json:"industry,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Score     int    `json:"leadScore"`
	Category  string `json:"leadCategory,omitempty"`
}

type contactResponse struct {
	ID string `json:"id"`
}

// UpsertContact searches the CRM by email and updates the match, creating a
// contact only when none exists. A duplicate response on create resolves to
// the existing record.
func (c *Client) UpsertContact(ctx context.Context, lead *domain.Lead) (ports.ContactResult, error) {
	existingID, err := c.searchContact(ctx, lead.Email)
	if err != nil {
		return ports.ContactResult{}, err
	}

	payload := contactPayload{
		Email:     domain.NormalizeEmail(lead.Email),
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
		Company:   lead.Company,
		JobTitle:  lead.JobTitle,
		Industry:  lead.Industry,
		Phone:     lead.Phone,
		Score:     lead.Score,
		Category:  string(lead.Category),
	}

	if existingID != "" {
		if err := c.updateContact(ctx, existingID, payload); err != nil {
			return ports.ContactResult{}, err
		}
		return ports.ContactResult{ID: existingID, Existing: true}, nil
	}

	id, conflicted, err := c.createContact(ctx, payload)
	if err != nil {
		return ports.ContactResult{}, err
	}
	if conflicted {
		// Created concurrently elsewhere; resolve to the existing record.
		if id == "" {
			id, err = c.searchContact(ctx, lead.Email)
			if err != nil {
				return ports.ContactResult{}, err
			}
		}
		return ports.ContactResult{ID: id, Existing: true}, nil
	}
	return ports.ContactResult{ID: id}, nil
}

func (c *Client) searchContact(ctx context.Context, email string) (string, error) {
	params := url.Values{}
	params.Set("email", domain.NormalizeEmail(email))

	reqURL := fmt.Sprintf("%s/v1/contacts/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("crm contact search failed", "error", err)
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload contactResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return "", err
		}
		return payload.ID, nil
	case http.StatusNotFound:
		return "", nil
	default:
		return "", fmt.Errorf("crm search status %d", resp.StatusCode)
	}
}

func (c *Client) updateContact(ctx context.Context, id string, payload contactPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/v1/contacts/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, reqURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("crm contact update failed", "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("crm update status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) createContact(ctx context.Context, payload contactPayload) (id string, conflicted bool, err error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/contacts", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("crm contact create failed", "error", err)
		return "", false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var out contactResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", false, err
		}
		return out.ID, false, nil
	case http.StatusConflict:
		var out contactResponse
		// Some CRMs return the existing record on conflict; absence is fine.
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return out.ID, true, nil
	default:
		return "", false, fmt.Errorf("crm create status %d", resp.StatusCode)
	}
}

type dealPayload struct {
	ContactID   string `json:"contactId"`
	Name        string `json:"name"`
	AmountCents int64  `json:"amountCents"`
	Stage       string `json:"stage"`
}

// CreateDeal creates a deal associated to the contact and returns its ref.
func (c *Client) CreateDeal(ctx context.Context, lead *domain.Lead, contactID string, amountCents int64) (string, error) {
	body, err := json.Marshal(dealPayload{
		ContactID:   contactID,
		Name:        fmt.Sprintf("%s - %s", lead.Company, lead.FullName()),
		AmountCents: amountCents,
		Stage:       "qualified",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/deals", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("crm deal create failed", "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("crm deal status %d", resp.StatusCode)
	}

	var out contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// Mode reports live operation.
func (c *Client) Mode() string { return ports.ModeLive }

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

var _ ports.CRM = (*Client)(nil)
