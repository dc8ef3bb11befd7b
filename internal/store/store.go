// Package store provides the lead store abstraction. The pipeline only ever
// talks to the LeadStore interface, so the in-memory default can be swapped
// for a real datastore without touching pipeline logic.
package store

import (
	"context"
	"errors"

	"leadflow_backend/internal/leads/domain"
)

// ErrNotFound is returned when no record exists for the given email key.
var ErrNotFound = errors.New("lead not found")

// LeadStore persists leads and their enrichment profiles, keyed by
// normalized email. Upsert semantics are last-write-wins: re-submitting an
// email replaces the stored lead entirely, no field-level merge.
type LeadStore interface {
	UpsertLead(ctx context.Context, lead *domain.Lead) error
	GetLead(ctx context.Context, email string) (*domain.Lead, error)
	ListLeads(ctx context.Context) ([]*domain.Lead, error)

	SaveProfile(ctx context.Context, profile *domain.EnrichedProfile) error
	// GetProfile returns ErrNotFound when the lead has no enrichment profile.
	GetProfile(ctx context.Context, email string) (*domain.EnrichedProfile, error)
}
