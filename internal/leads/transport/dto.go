// Package transport holds the request and response DTOs for the leads API.
package transport

import (
	"time"

	"leadflow_backend/internal/leads/domain"
)

// CreateLeadRequest is the POST /api/leads body. Email is the only required
// field.
type CreateLeadRequest struct {
	Email       string         `json:"email" validate:"required,email,max=254"`
	FirstName   string         `json:"firstName" validate:"max=100"`
	LastName    string         `json:"lastName" validate:"max=100"`
	Company     string         `json:"company" validate:"max=200"`
	JobTitle    string         `json:"jobTitle" validate:"max=200"`
	Industry    string         `json:"industry" validate:"max=100"`
	CompanySize string         `json:"companySize" validate:"omitempty,oneof=1-10 11-50 51-200 201-1000 1000+"`
	Source      string         `json:"source" validate:"max=100"`
	Phone       string         `json:"phone" validate:"max=32"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// ToDomain converts the request into a lead record.
func (r CreateLeadRequest) ToDomain() *domain.Lead {
	return &domain.Lead{
		Email:       domain.NormalizeEmail(r.Email),
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Company:     r.Company,
		JobTitle:    r.JobTitle,
		Industry:    r.Industry,
		CompanySize: domain.CompanySize(r.CompanySize),
		Source:      r.Source,
		Phone:       r.Phone,
		Extra:       r.Extra,
	}
}

// ProcessLeadResponse is the POST /api/leads response: the pipeline report.
type ProcessLeadResponse struct {
	Success     bool                         `json:"success"`
	Email       string                       `json:"email"`
	Score       int                          `json:"score"`
	Breakdown   map[string]int               `json:"breakdown,omitempty"`
	Category    domain.Category              `json:"category"`
	Territory   domain.TerritoryAssignment   `json:"territory"`
	StepResults map[string]domain.StepResult `json:"stepResults"`
	ProcessedAt string                       `json:"processedAt"`
}

// FromReport converts a pipeline report into the response DTO.
func FromReport(report *domain.Report) ProcessLeadResponse {
	return ProcessLeadResponse{
		Success:     report.Success,
		Email:       report.Email,
		Score:       report.Score,
		Breakdown:   report.Breakdown,
		Category:    report.Category,
		Territory:   report.Territory,
		StepResults: report.Steps,
		ProcessedAt: report.ProcessedAt.Format(time.RFC3339),
	}
}

// LeadResponse is one stored lead.
type LeadResponse struct {
	Email       string                     `json:"email"`
	FirstName   string                     `json:"firstName,omitempty"`
	LastName    string                     `json:"lastName,omitempty"`
	Company     string                     `json:"company,omitempty"`
	JobTitle    string                     `json:"jobTitle,omitempty"`
	Industry    string                     `json:"industry,omitempty"`
	CompanySize string                     `json:"companySize,omitempty"`
	Source      string                     `json:"source,omitempty"`
	Phone       string                     `json:"phone,omitempty"`
	Score       int                        `json:"score"`
	Category    domain.Category            `json:"category"`
	Territory   domain.TerritoryAssignment `json:"territory"`
	Extra       map[string]any             `json:"extra,omitempty"`
	CreatedAt   string                     `json:"createdAt"`
	UpdatedAt   string                     `json:"updatedAt"`
}

// FromLead converts a stored lead into its response DTO.
func FromLead(lead *domain.Lead) LeadResponse {
	return LeadResponse{
		Email:       lead.Email,
		FirstName:   lead.FirstName,
		LastName:    lead.LastName,
		Company:     lead.Company,
		JobTitle:    lead.JobTitle,
		Industry:    lead.Industry,
		CompanySize: string(lead.CompanySize),
		Source:      lead.Source,
		Phone:       lead.Phone,
		Score:       lead.Score,
		Category:    lead.Category,
		Territory:   lead.Territory,
		Extra:       lead.Extra,
		CreatedAt:   lead.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   lead.UpdatedAt.Format(time.RFC3339),
	}
}

// LeadDetailResponse is a stored lead with its enrichment profile and the
// score recomputed from current inputs.
type LeadDetailResponse struct {
	LeadResponse
	Profile         *domain.EnrichedProfile `json:"profile,omitempty"`
	RecomputedScore int                     `json:"recomputedScore"`
}

// LeadListResponse is the GET /api/leads response.
type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}
