// Package enrichment provides the composition root for lead enrichment.
package enrichment

import (
	"leadflow_backend/internal/enrichment/client"
	"leadflow_backend/internal/enrichment/service"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
)

// Module wires the enrichment service.
type Module struct {
	service *service.Service
}

// NewModule creates the enrichment module. Without a configured provider
// the service runs synthetic-only.
func NewModule(cfg config.EnrichmentConfig, log *logger.Logger) *Module {
	var provider service.ProviderClient
	if cfg.IsEnrichmentEnabled() {
		provider = client.New(cfg.GetEnrichmentAPIURL(), cfg.GetEnrichmentAPIKey(), log)
	}
	return &Module{service: service.New(provider, log)}
}

// Service returns the enrichment service.
func (m *Module) Service() *service.Service {
	return m.service
}
