// Package leads provides the lead qualification bounded context module.
package leads

import (
	"context"
	"fmt"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/http"
	"leadflow_backend/internal/leads/analytics"
	"leadflow_backend/internal/leads/handler"
	"leadflow_backend/internal/leads/ports"
	"leadflow_backend/internal/leads/scoring"
	"leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/leads/territory"
	"leadflow_backend/internal/store"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	pipeline *service.Pipeline
	handler  *handler.Handler
	scorer   *scoring.Service
	log      *logger.Logger
}

// NewModule creates and initializes the leads module. The collaborator
// adapters are constructed by the composition root and injected here.
func NewModule(
	st store.LeadStore,
	enricher ports.Enricher,
	crm ports.CRM,
	notifier ports.Notifier,
	tasker ports.TaskTracker,
	ticketer ports.Ticketer,
	quoter ports.Quoter,
	cfg *config.Config,
	val *validator.Validator,
	bus events.Bus,
	log *logger.Logger,
) (*Module, error) {
	rules := scoring.DefaultRules()
	if path := cfg.GetScoringRulesFile(); path != "" {
		loaded, err := scoring.LoadRulesFile(path)
		if err != nil {
			return nil, fmt.Errorf("scoring rules: %w", err)
		}
		rules = loaded
	}

	scorer := scoring.NewService(rules, scoring.ThresholdsFromConfig(cfg))
	territorySvc := territory.NewService()

	pipeline := service.NewPipeline(
		st, enricher, crm, notifier, tasker, ticketer, quoter,
		scorer, territorySvc, service.PolicyFromConfig(cfg), bus, log,
	)
	analyticsSvc := analytics.NewService(st)
	h := handler.New(pipeline, st, analyticsSvc, scorer, val, bus)

	return &Module{pipeline: pipeline, handler: h, scorer: scorer, log: log}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Pipeline returns the processing pipeline for external use.
func (m *Module) Pipeline() *service.Pipeline {
	return m.pipeline
}

// RegisterRoutes mounts the leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	ctx.API.POST("/leads", m.handler.ProcessLead)
	ctx.API.GET("/leads", m.handler.ListLeads)
	ctx.API.GET("/leads/:email", m.handler.GetLead)
	ctx.API.GET("/analytics/pipeline", m.handler.PipelineAnalytics)
}

// RegisterHandlers subscribes the module to domain events.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadReceivedEvent, m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadReceived:
		m.log.Info("lead received", "email", e.Email, "source", e.Source)
		return nil
	default:
		return nil
	}
}

// Compile-time check that Module implements http.Module
var _ http.Module = (*Module)(nil)
