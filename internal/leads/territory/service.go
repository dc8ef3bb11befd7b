// Package territory routes leads to sales territories via an ordered rule
// list. Assignment is a pure function of (company size, industry, score).
package territory

import (
	"strings"

	"leadflow_backend/internal/leads/domain"
)

// Territory names.
const (
	Enterprise = "Enterprise"
	MidMarket  = "Mid-Market"
	SMB        = "SMB"
)

// defaultReps maps each territory to its single representative. One rep per
// territory, no load balancing.
var defaultReps = map[string]string{
	Enterprise: "sarah.chen@company.com",
	MidMarket:  "marcus.webb@company.com",
	SMB:        "priya.patel@company.com",
}

// Service assigns leads to territories.
type Service struct {
	reps map[string]string
}

// NewService creates a territory service with the default representative map.
func NewService() *Service {
	return &Service{reps: defaultReps}
}

// Assign evaluates the ordered territory rules, first match wins:
//
//  1. company size "1000+" is Enterprise;
//  2. fintech with score ≥ 80 is escalated to Enterprise regardless of size,
//     taking precedence over the mid-market size rules;
//  3. size "201-1000", or "51-200" with score ≥ 70, is Mid-Market;
//  4. everything else is SMB.
func (s *Service) Assign(size domain.CompanySize, industry string, score int) domain.TerritoryAssignment {
	switch {
	case size == domain.SizeEnterprise:
		return s.assignment(Enterprise)
	case strings.EqualFold(strings.TrimSpace(industry), "fintech") && score >= 80:
		return s.assignment(Enterprise)
	case size == domain.SizeLarge || (size == domain.SizeMedium && score >= 70):
		return s.assignment(MidMarket)
	default:
		return s.assignment(SMB)
	}
}

func (s *Service) assignment(territory string) domain.TerritoryAssignment {
	return domain.TerritoryAssignment{
		Territory:      territory,
		Representative: s.reps[territory],
	}
}
