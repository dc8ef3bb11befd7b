package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"leadflow_backend/internal/crm"
	enrichsvc "leadflow_backend/internal/enrichment/service"
	"leadflow_backend/internal/events"
	"leadflow_backend/internal/leads/analytics"
	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/leads/ports"
	"leadflow_backend/internal/leads/scoring"
	"leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/leads/territory"
	"leadflow_backend/internal/store"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, *domain.Lead, string) error { return nil }
func (nopNotifier) Mode() string                                       { return ports.ModeMock }

type nopTasker struct{}

func (nopTasker) CreateTask(context.Context, *domain.Lead, ports.TaskRequest) (string, error) {
	return "t-1", nil
}
func (nopTasker) Mode() string { return ports.ModeMock }

type nopTicketer struct{}

func (nopTicketer) OpenTicket(context.Context, *domain.Lead, string) (string, error) {
	return "tk-1", nil
}
func (nopTicketer) Mode() string { return ports.ModeMock }

type nopQuoter struct{}

func (nopQuoter) CreateQuote(context.Context, *domain.Lead, int64) (string, error) {
	return "q-1", nil
}
func (nopQuoter) Mode() string { return ports.ModeMock }

func newTestRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	st := store.NewMemoryStore()
	scorer := scoring.NewService(scoring.DefaultRules(), scoring.SchemeA())
	policy := service.DispatchPolicy{
		DealScoreMin:   40,
		NotifyScoreMin: 60,
		TicketScoreMin: 85,
		QuoteScoreMin:  85,
		StepTimeout:    time.Second,
	}
	bus := events.NewInMemoryBus(log)
	pipeline := service.NewPipeline(
		st, enrichsvc.New(nil, log), crm.NewMock(log),
		nopNotifier{}, nopTasker{}, nopTicketer{}, nopQuoter{},
		scorer, territory.NewService(), policy, bus, log,
	)
	h := New(pipeline, st, analytics.NewService(st), scorer, validator.New(), bus)

	engine := gin.New()
	api := engine.Group("/api")
	api.POST("/leads", h.ProcessLead)
	api.GET("/leads", h.ListLeads)
	api.GET("/leads/:email", h.GetLead)
	api.GET("/analytics/pipeline", h.PipelineAnalytics)
	return engine, st
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestProcessLeadRequiresEmail(t *testing.T) {
	engine, _ := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/leads", map[string]any{
		"firstName": "Jane",
		"company":   "Acme",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without email, got %d", rec.Code)
	}
}

func TestProcessLeadRejectsUnknownCompanySize(t *testing.T) {
	engine, _ := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/leads", map[string]any{
		"email":       "jane@acme.com",
		"companySize": "enormous",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad size bucket, got %d", rec.Code)
	}
}

func TestProcessLeadReturnsReport(t *testing.T) {
	engine, _ := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/leads", map[string]any{
		"email":       "cfo@fintechco.com",
		"firstName":   "Dana",
		"jobTitle":    "CFO",
		"industry":    "fintech",
		"companySize": "1000+",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success     bool                         `json:"success"`
		Email       string                       `json:"email"`
		Score       int                          `json:"score"`
		Category    domain.Category              `json:"category"`
		Territory   domain.TerritoryAssignment   `json:"territory"`
		StepResults map[string]domain.StepResult `json:"stepResults"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success true")
	}
	if resp.Email != "cfo@fintechco.com" {
		t.Fatalf("expected normalized email, got %q", resp.Email)
	}
	if resp.Territory.Territory != territory.Enterprise {
		t.Fatalf("expected Enterprise for size 1000+, got %s", resp.Territory.Territory)
	}
	if _, ok := resp.StepResults[domain.StepCRM]; !ok {
		t.Fatal("expected a crm step result")
	}
}

func TestGetLeadNotFound(t *testing.T) {
	engine, _ := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/leads/ghost@acme.com", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetLeadReturnsProfileAndRecomputedScore(t *testing.T) {
	engine, _ := newTestRouter(t)

	if rec := doJSON(t, engine, http.MethodPost, "/api/leads", map[string]any{
		"email": "jane@acme.com",
	}); rec.Code != http.StatusOK {
		t.Fatalf("seed failed: %d", rec.Code)
	}

	rec := doJSON(t, engine, http.MethodGet, "/api/leads/jane@acme.com", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Email           string                  `json:"email"`
		Score           int                     `json:"score"`
		RecomputedScore int                     `json:"recomputedScore"`
		Profile         *domain.EnrichedProfile `json:"profile"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Profile == nil {
		t.Fatal("expected the enrichment profile to be attached")
	}
	// The synthetic profile is deterministic, so the recomputed score must
	// match the stored one.
	if resp.RecomputedScore != resp.Score {
		t.Fatalf("recomputed score %d diverges from stored %d", resp.RecomputedScore, resp.Score)
	}
}

func TestListLeads(t *testing.T) {
	engine, _ := newTestRouter(t)

	for _, email := range []string{"b@acme.com", "a@acme.com"} {
		if rec := doJSON(t, engine, http.MethodPost, "/api/leads", map[string]any{"email": email}); rec.Code != http.StatusOK {
			t.Fatalf("seed %s failed: %d", email, rec.Code)
		}
	}

	rec := doJSON(t, engine, http.MethodGet, "/api/leads", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Items []struct {
			Email string `json:"email"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Items) != 2 {
		t.Fatalf("expected 2 leads, got %+v", resp)
	}
	if resp.Items[0].Email != "a@acme.com" {
		t.Fatalf("expected sorted listing, got %+v", resp.Items)
	}
}

func TestPipelineAnalytics(t *testing.T) {
	engine, st := newTestRouter(t)

	seed := []*domain.Lead{
		{Email: "h@x.com", Score: 90, Category: domain.CategoryHot},
		{Email: "w@x.com", Score: 70, Category: domain.CategoryWarm},
		{Email: "c@x.com", Score: 5, Category: domain.CategoryCold},
	}
	for _, lead := range seed {
		if err := st.UpsertLead(context.Background(), lead); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	rec := doJSON(t, engine, http.MethodGet, "/api/analytics/pipeline", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		TotalLeads         int   `json:"totalLeads"`
		TotalForecastCents int64 `json:"totalForecastCents"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalLeads != 3 {
		t.Fatalf("expected 3 leads, got %d", resp.TotalLeads)
	}
	if resp.TotalForecastCents == 0 {
		t.Fatal("expected a non-zero forecast")
	}
}
