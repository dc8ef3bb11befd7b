package store

import (
	"context"
	"testing"
	"time"

	"leadflow_backend/internal/leads/domain"
)

func TestMemoryStoreUpsertReplacesRecord(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := &domain.Lead{
		Email:   "jane@acme.com",
		Company: "Acme",
		Score:   72,
	}
	if err := s.UpsertLead(ctx, first); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	second := &domain.Lead{
		Email:   "Jane@Acme.com",
		Company: "Acme Corp",
		Score:   88,
	}
	if err := s.UpsertLead(ctx, second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := s.GetLead(ctx, "jane@acme.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Score != 88 {
		t.Fatalf("expected last write to win, got score %d", got.Score)
	}
	if got.Company != "Acme Corp" {
		t.Fatalf("expected replaced company, got %q", got.Company)
	}

	leads, err := s.ListLeads(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected 1 lead after re-upsert, got %d", len(leads))
	}
}

func TestMemoryStoreGetLeadNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.GetLead(context.Background(), "nobody@nowhere.com")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	profile := &domain.EnrichedProfile{
		Email:      "jane@acme.com",
		Source:     domain.ProfileSourceSynthetic,
		EnrichedAt: time.Now(),
		Company: domain.CompanyAttributes{
			AnnualRevenueUSD: 5_000_000,
			EmployeeCount:    120,
		},
	}
	if err := s.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("save profile failed: %v", err)
	}

	got, err := s.GetProfile(ctx, "JANE@acme.com")
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if got.Company.EmployeeCount != 120 {
		t.Fatalf("expected employee count 120, got %d", got.Company.EmployeeCount)
	}

	if _, err := s.GetProfile(ctx, "other@acme.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing profile, got %v", err)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	lead := &domain.Lead{Email: "jane@acme.com", Score: 50}
	if err := s.UpsertLead(ctx, lead); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := s.GetLead(ctx, "jane@acme.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	got.Score = 99

	again, err := s.GetLead(ctx, "jane@acme.com")
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if again.Score != 50 {
		t.Fatalf("mutating a returned lead leaked into the store: score %d", again.Score)
	}
}
