// Package handler exposes the leads HTTP API.
package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/leads/analytics"
	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/leads/scoring"
	"leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/internal/store"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgLeadNotFound     = "lead not found"
)

// Handler handles HTTP requests for leads.
type Handler struct {
	pipeline  *service.Pipeline
	store     store.LeadStore
	analytics *analytics.Service
	scorer    *scoring.Service
	val       *validator.Validator
	bus       events.Bus
}

// New creates a new leads handler.
func New(
	pipeline *service.Pipeline,
	st store.LeadStore,
	analyticsSvc *analytics.Service,
	scorer *scoring.Service,
	val *validator.Validator,
	bus events.Bus,
) *Handler {
	return &Handler{
		pipeline:  pipeline,
		store:     st,
		analytics: analyticsSvc,
		scorer:    scorer,
		val:       val,
		bus:       bus,
	}
}

// ProcessLead accepts a lead submission and runs the full pipeline.
// POST /api/leads
func (h *Handler) ProcessLead(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead := req.ToDomain()
	h.bus.Publish(c.Request.Context(), events.NewLeadReceived(lead.Email, lead.Source))

	report, err := h.pipeline.Process(c.Request.Context(), lead)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromReport(report))
}

// ListLeads returns every stored lead, sorted by email.
// GET /api/leads
func (h *Handler) ListLeads(c *gin.Context) {
	stored, err := h.store.ListLeads(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.LeadResponse, 0, len(stored))
	for _, lead := range stored {
		items = append(items, transport.FromLead(lead))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Email < items[j].Email })

	httpkit.OK(c, transport.LeadListResponse{Items: items, Total: len(items)})
}

// GetLead returns one stored lead with its enrichment profile and a score
// recomputed from the stored inputs.
// GET /api/leads/:email
func (h *Handler) GetLead(c *gin.Context) {
	email := domain.NormalizeEmail(c.Param("email"))
	if err := h.val.Var(email, "required,email"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.store.GetLead(c.Request.Context(), email)
	if err == store.ErrNotFound {
		httpkit.HandleError(c, apperr.NotFound(msgLeadNotFound))
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.LeadDetailResponse{LeadResponse: transport.FromLead(lead)}
	profile, err := h.store.GetProfile(c.Request.Context(), email)
	if err == nil {
		resp.Profile = profile
	}
	resp.RecomputedScore, _ = h.scorer.Score(lead, resp.Profile)

	httpkit.OK(c, resp)
}

// PipelineAnalytics returns aggregate counts and the revenue forecast by
// category.
// GET /api/analytics/pipeline
func (h *Handler) PipelineAnalytics(c *gin.Context) {
	result, err := h.analytics.Pipeline(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
