// Package events defines the domain events published by the lead pipeline,
// re-exporting the platform bus types so modules only import one package.
package events

import (
	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/platform/events"
)

// Re-exported platform types.
type (
	Event       = events.Event
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	Bus         = events.Bus
	InMemoryBus = events.InMemoryBus
)

// NewInMemoryBus creates the default in-process bus.
var NewInMemoryBus = events.NewInMemoryBus

// Event names.
const (
	LeadReceivedEvent  = "lead.received"
	LeadProcessedEvent = "lead.processed"
)

// LeadReceived is published when a lead submission passes validation,
// before the pipeline runs.
type LeadReceived struct {
	events.BaseEvent
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

// EventName returns the unique event identifier.
func (LeadReceived) EventName() string { return LeadReceivedEvent }

// NewLeadReceived creates a LeadReceived event.
func NewLeadReceived(email, source string) LeadReceived {
	return LeadReceived{BaseEvent: events.NewBaseEvent(), Email: email, Source: source}
}

// LeadProcessed is published after the pipeline finishes, whatever the
// per-step outcomes were.
type LeadProcessed struct {
	events.BaseEvent
	Email     string          `json:"email"`
	Score     int             `json:"score"`
	Category  domain.Category `json:"category"`
	Territory string          `json:"territory"`
	Success   bool            `json:"success"`
}

// EventName returns the unique event identifier.
func (LeadProcessed) EventName() string { return LeadProcessedEvent }

// NewLeadProcessed creates a LeadProcessed event from a pipeline report.
func NewLeadProcessed(report *domain.Report) LeadProcessed {
	return LeadProcessed{
		BaseEvent: events.NewBaseEvent(),
		Email:     report.Email,
		Score:     report.Score,
		Category:  report.Category,
		Territory: report.Territory.Territory,
		Success:   report.Success,
	}
}
