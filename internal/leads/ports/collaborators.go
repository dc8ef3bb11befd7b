// Package ports declares the outbound collaborator contracts the lead
// pipeline depends on. Every external system is reached only through one of
// these narrow interfaces; adapters live in their own internal packages.
package ports

import (
	"context"
	"time"

	"leadflow_backend/internal/leads/domain"
)

// Adapter modes, reported on the health endpoint.
const (
	ModeLive = "live"
	ModeMock = "mock"
)

// Enricher resolves a third-party profile for a lead. Implementations never
// return an error: when the provider is unreachable or unconfigured they
// fall back to a deterministic synthetic profile.
type Enricher interface {
	Enrich(ctx context.Context, lead *domain.Lead) *domain.EnrichedProfile
	Mode() string
}

// ContactResult is the outcome of a CRM contact upsert. Existing is true
// when the CRM already had a contact for the email and the upsert resolved
// to that record.
type ContactResult struct {
	ID       string
	Existing bool
}

// CRM is the contact-and-deal collaborator. UpsertContact searches by email
// and updates the match, creating a contact only when none exists; a
// duplicate response from the CRM resolves to the existing record, never an
// error.
type CRM interface {
	UpsertContact(ctx context.Context, lead *domain.Lead) (ContactResult, error)
	CreateDeal(ctx context.Context, lead *domain.Lead, contactID string, amountCents int64) (string, error)
	Mode() string
}

// Notifier delivers a lead notification. Severity is picked by score band
// upstream.
type Notifier interface {
	Notify(ctx context.Context, lead *domain.Lead, severity string) error
	Mode() string
}

// TaskRequest describes a follow-up task for the task tracker.
type TaskRequest struct {
	Title    string
	Notes    string
	DueAt    time.Time
	Priority string
}

// TaskTracker creates follow-up tasks and returns the external task ref.
type TaskTracker interface {
	CreateTask(ctx context.Context, lead *domain.Lead, req TaskRequest) (string, error)
	Mode() string
}

// Ticketer opens support onboarding tickets and returns the ticket ref.
type Ticketer interface {
	OpenTicket(ctx context.Context, lead *domain.Lead, subject string) (string, error)
	Mode() string
}

// Quoter creates CPQ quotes and returns the quote ref.
type Quoter interface {
	CreateQuote(ctx context.Context, lead *domain.Lead, amountCents int64) (string, error)
	Mode() string
}
