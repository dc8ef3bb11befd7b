package crm

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/leads/ports"
	"leadflow_backend/platform/logger"
)

// Mock is the in-memory CRM used when no API is configured. It deduplicates
// contacts by email like the real CRM does.
type Mock struct {
	mu       sync.Mutex
	contacts map[string]string
	log      *logger.Logger
}

// NewMock creates an empty mock CRM.
func NewMock(log *logger.Logger) *Mock {
	return &Mock{contacts: make(map[string]string), log: log}
}

// UpsertContact returns the existing contact for the email or mints a new one.
func (m *Mock) UpsertContact(_ context.Context, lead *domain.Lead) (ports.ContactResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := domain.NormalizeEmail(lead.Email)
	if id, ok := m.contacts[email]; ok {
		return ports.ContactResult{ID: id, Existing: true}, nil
	}

	id := "contact-" + uuid.NewString()
	m.contacts[email] = id
	m.log.Debug("mock crm contact created", "email", email, "id", id)
	return ports.ContactResult{ID: id}, nil
}

// CreateDeal mints a deal ref.
func (m *Mock) CreateDeal(_ context.Context, lead *domain.Lead, contactID string, amountCents int64) (string, error) {
	id := "deal-" + uuid.NewString()
	m.log.Debug("mock crm deal created",
		"email", lead.Email, "contactId", contactID, "amountCents", amountCents, "id", id)
	return id, nil
}

// Mode reports mock operation.
func (m *Mock) Mode() string { return ports.ModeMock }

var _ ports.CRM = (*Mock)(nil)
