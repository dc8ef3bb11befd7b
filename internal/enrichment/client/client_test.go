package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/platform/logger"
)

func TestLookupMapsProviderResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/enrich" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"person": {"seniority": "C-Level", "department": "Finance", "yearsExperience": 12},
			"company": {
				"annualRevenueUsd": 60000000,
				"employeeCount": 200,
				"technologies": ["Salesforce"],
				"funding": {"recentRound": true, "lastRoundDays": 90, "stage": "Series B"}
			},
			"intent": {"aggregate": "high", "signals": [{"type": "pricing_page", "strength": "high", "score": 72}]}
		}`))
	}))
	defer srv.Close()

	cli := New(srv.URL, "test-key", logger.NewNop())
	profile, err := cli.Lookup(context.Background(), &domain.Lead{Email: "CFO@FintechCo.com"})
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if profile.Email != "cfo@fintechco.com" {
		t.Fatalf("expected normalized email, got %q", profile.Email)
	}
	if profile.Source != domain.ProfileSourceProvider {
		t.Fatalf("expected provider source, got %s", profile.Source)
	}
	if profile.Company.AnnualRevenueUSD != 60_000_000 {
		t.Fatalf("revenue mismatch: %d", profile.Company.AnnualRevenueUSD)
	}
	if profile.Intent.Aggregate != domain.IntentHigh {
		t.Fatalf("expected high intent, got %s", profile.Intent.Aggregate)
	}
	if len(profile.Intent.Signals) != 1 || profile.Intent.Signals[0].Score != 72 {
		t.Fatalf("intent signals not mapped: %+v", profile.Intent.Signals)
	}
}

func TestLookupNonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cli := New(srv.URL, "test-key", logger.NewNop())
	if _, err := cli.Lookup(context.Background(), &domain.Lead{Email: "x@y.com"}); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestLookupEmptyIntentDefaultsToNone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"person": {}, "company": {}, "intent": {}}`))
	}))
	defer srv.Close()

	cli := New(srv.URL, "test-key", logger.NewNop())
	profile, err := cli.Lookup(context.Background(), &domain.Lead{Email: "x@y.com"})
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if profile.Intent.Aggregate != domain.IntentNone {
		t.Fatalf("expected none intent, got %s", profile.Intent.Aggregate)
	}
}
