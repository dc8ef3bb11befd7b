// Package client provides the HTTP client for the external enrichment
// provider.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/platform/logger"
)

const defaultHTTPTimeout = 10 * time.Second

// Client handles enrichment provider requests.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a new enrichment provider client.
func New(baseURL, apiKey string, log *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		log:        log,
	}
}

type lookupRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Company     string `json:"company,omitempty"`
	Industry    string `json:"industry,omitempty"`
	CompanySize string `json:"companySize,omitempty"`
}

type lookupResponse struct {
	Person struct {
		Seniority       string `json:"seniority"`
		Department      string `json:"department"`
		YearsExperience int    `json:"yearsExperience"`
		LinkedInURL     string `json:"linkedinUrl"`
	} `json:"person"`
	Company struct {
		AnnualRevenueUSD int64    `json:"annualRevenueUsd"`
		EmployeeCount    int      `json:"employeeCount"`
		Technologies     []string `json:"technologies"`
		Funding          struct {
			RecentRound   bool   `json:"recentRound"`
			LastRoundDays int    `json:"lastRoundDays"`
			Stage         string `json:"stage"`
		} `json:"funding"`
	} `json:"company"`
	Intent struct {
		Signals []struct {
			Type     string `json:"type"`
			Strength string `json:"strength"`
			Score    int    `json:"score"`
		} `json:"signals"`
		Aggregate string `json:"aggregate"`
	} `json:"intent"`
}

// Lookup resolves a profile for the lead from the provider. The caller owns
// the fallback decision; any transport or status error is returned as-is.
func (c *Client) Lookup(ctx context.Context, lead *domain.Lead) (*domain.EnrichedProfile, error) {
	body, err := json.Marshal(lookupRequest{
		Email:       lead.Email,
		FirstName:   lead.FirstName,
		LastName:    lead.LastName,
		Company:     lead.Company,
		Industry:    lead.Industry,
		CompanySize: string(lead.CompanySize),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/enrich", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("enrichment request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("enrichment request error", "status", resp.StatusCode)
		return nil, fmt.Errorf("enrichment provider status %d", resp.StatusCode)
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Error("enrichment decode failed", "error", err)
		return nil, err
	}

	return mapProfile(lead.Email, payload), nil
}

func mapProfile(email string, payload lookupResponse) *domain.EnrichedProfile {
	profile := &domain.EnrichedProfile{
		Email: domain.NormalizeEmail(email),
		Person: domain.PersonAttributes{
			Seniority:       payload.Person.Seniority,
			Department:      payload.Person.Department,
			YearsExperience: payload.Person.YearsExperience,
			LinkedInURL:     payload.Person.LinkedInURL,
		},
		Company: domain.CompanyAttributes{
			AnnualRevenueUSD: payload.Company.AnnualRevenueUSD,
			EmployeeCount:    payload.Company.EmployeeCount,
			Technologies:     payload.Company.Technologies,
			Funding: domain.FundingStatus{
				RecentRound:   payload.Company.Funding.RecentRound,
				LastRoundDays: payload.Company.Funding.LastRoundDays,
				Stage:         payload.Company.Funding.Stage,
			},
		},
		Source:     domain.ProfileSourceProvider,
		EnrichedAt: time.Now().UTC(),
	}

	profile.Intent.Aggregate = domain.IntentStrength(payload.Intent.Aggregate)
	if profile.Intent.Aggregate == "" {
		profile.Intent.Aggregate = domain.IntentNone
	}
	for _, sig := range payload.Intent.Signals {
		profile.Intent.Signals = append(profile.Intent.Signals, domain.IntentSignal{
			Type:     sig.Type,
			Strength: domain.IntentStrength(sig.Strength),
			Score:    sig.Score,
		})
	}

	return profile
}
