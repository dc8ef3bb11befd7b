// Package service implements lead enrichment with a synthetic fallback.
package service

import (
	"context"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/leads/ports"
	"leadflow_backend/platform/logger"
)

// ProviderClient is the outbound contract to the real enrichment provider.
type ProviderClient interface {
	Lookup(ctx context.Context, lead *domain.Lead) (*domain.EnrichedProfile, error)
}

// Service enriches leads, falling back to a deterministic synthetic profile
// whenever the provider is unconfigured or unreachable. Enrichment never
// fails the pipeline.
type Service struct {
	provider ProviderClient
	log      *logger.Logger
}

// New creates an enrichment service. A nil provider means synthetic-only
// operation.
func New(provider ProviderClient, log *logger.Logger) *Service {
	return &Service{provider: provider, log: log}
}

// Enrich resolves a profile for the lead. Provider failures are logged and
// absorbed by the synthetic fallback.
func (s *Service) Enrich(ctx context.Context, lead *domain.Lead) *domain.EnrichedProfile {
	if s.provider == nil {
		return SyntheticProfile(lead)
	}

	profile, err := s.provider.Lookup(ctx, lead)
	if err != nil {
		s.log.Warn("enrichment provider unavailable, using synthetic profile",
			"email", lead.Email, "error", err)
		return SyntheticProfile(lead)
	}
	return profile
}

// Mode reports whether a real provider is wired.
func (s *Service) Mode() string {
	if s.provider == nil {
		return ports.ModeMock
	}
	return ports.ModeLive
}

var _ ports.Enricher = (*Service)(nil)
