package store

import (
	"context"
	"sync"

	"leadflow_backend/internal/leads/domain"
)

// MemoryStore is the default process-lifetime LeadStore. Records live for
// the lifetime of the process only.
type MemoryStore struct {
	mu       sync.RWMutex
	leads    map[string]domain.Lead
	profiles map[string]domain.EnrichedProfile
}

// NewMemoryStore creates an empty in-memory lead store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		leads:    make(map[string]domain.Lead),
		profiles: make(map[string]domain.EnrichedProfile),
	}
}

// UpsertLead stores the lead, replacing any prior record for the same email.
func (s *MemoryStore) UpsertLead(_ context.Context, lead *domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[domain.NormalizeEmail(lead.Email)] = *lead
	return nil
}

// GetLead returns the stored lead for the email, or ErrNotFound.
func (s *MemoryStore) GetLead(_ context.Context, email string) (*domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lead, ok := s.leads[domain.NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return &lead, nil
}

// ListLeads returns every stored lead.
func (s *MemoryStore) ListLeads(_ context.Context) ([]*domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		l := lead
		out = append(out, &l)
	}
	return out, nil
}

// SaveProfile attaches an enrichment profile to the lead's email key.
func (s *MemoryStore) SaveProfile(_ context.Context, profile *domain.EnrichedProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[domain.NormalizeEmail(profile.Email)] = *profile
	return nil
}

// GetProfile returns the enrichment profile for the email, or ErrNotFound.
func (s *MemoryStore) GetProfile(_ context.Context, email string) (*domain.EnrichedProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[domain.NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}

// Compile-time check that MemoryStore implements LeadStore
var _ LeadStore = (*MemoryStore)(nil)
