package scoring

import (
	"strings"

	"leadflow_backend/internal/leads/domain"
)

// Breakdown contribution keys, as they appear in the processing report.
const (
	SignalRevenueBand    = "revenue_band"
	SignalRevenueSubBand = "revenue_sub_band"
	SignalEmployees      = "employees"
	SignalTechnologies   = "technologies"
	SignalFundingRecent  = "funding_recent"
	SignalFundingWindow  = "funding_window"
	SignalTitle          = "title"
	SignalIndustry       = "industry"
	SignalIntent         = "intent"
)

// Service scores leads against a weight table and categorizes the result.
// Score is a pure function of its inputs; the service holds no mutable state.
type Service struct {
	rules      Rules
	thresholds Thresholds
}

// NewService creates a scoring service with the given weight table and
// category thresholds.
func NewService(rules Rules, thresholds Thresholds) *Service {
	return &Service{rules: rules, thresholds: thresholds}
}

// Score computes the qualification score for a lead and its optional
// enrichment profile. A nil profile contributes zero; it is never an error.
// The returned breakdown maps signal names to their pre-clamp contributions;
// the score itself is clamped to [0,100].
func (s *Service) Score(lead *domain.Lead, profile *domain.EnrichedProfile) (int, map[string]int) {
	breakdown := make(map[string]int)

	if profile != nil {
		company := profile.Company

		if inRevenueBand(company.AnnualRevenueUSD, s.rules.RevenueBand) {
			breakdown[SignalRevenueBand] = s.rules.RevenueBand.Points
		}
		if inRevenueBand(company.AnnualRevenueUSD, s.rules.RevenueSubBand) {
			breakdown[SignalRevenueSubBand] = s.rules.RevenueSubBand.Points
		}
		if company.EmployeeCount >= s.rules.EmployeeBand.Min && company.EmployeeCount <= s.rules.EmployeeBand.Max {
			breakdown[SignalEmployees] = s.rules.EmployeeBand.Points
		}

		if matches := s.matchedTechnologies(company.Technologies); matches > 0 {
			breakdown[SignalTechnologies] = matches * s.rules.TechnologyPoints
		}

		if company.Funding.RecentRound {
			breakdown[SignalFundingRecent] = s.rules.RecentFundingPoints
		}
		if company.Funding.LastRoundDays > 0 && company.Funding.LastRoundDays <= s.rules.FundingWindowDays {
			breakdown[SignalFundingWindow] = s.rules.FundingWindowPoints
		}

		if pts, ok := s.rules.IntentPoints[string(profile.Intent.Aggregate)]; ok {
			breakdown[SignalIntent] = pts
		}
	}

	if containsAnyFold(lead.JobTitle, s.rules.HighValueTitles) {
		breakdown[SignalTitle] = s.rules.TitlePoints
	}
	if containsAnyFold(lead.Industry, s.rules.TargetIndustries) {
		breakdown[SignalIndustry] = s.rules.IndustryPoints
	}

	total := 0
	for _, pts := range breakdown {
		total += pts
	}
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return total, breakdown
}

// Categorize maps the score onto the configured category bands.
func (s *Service) Categorize(score int) domain.Category {
	return s.thresholds.Categorize(score)
}

// Thresholds exposes the active band floors, used by handlers for reporting.
func (s *Service) Thresholds() Thresholds {
	return s.thresholds
}

func (s *Service) matchedTechnologies(detected []string) int {
	matches := 0
	for _, target := range s.rules.TargetTechnologies {
		for _, tech := range detected {
			if strings.EqualFold(strings.TrimSpace(tech), target) {
				matches++
				break
			}
		}
	}
	return matches
}

func inRevenueBand(revenue int64, band RevenueBand) bool {
	return revenue >= band.MinUSD && revenue <= band.MaxUSD
}

// containsAnyFold reports whether value contains any of the substrings,
// case-insensitively.
func containsAnyFold(value string, substrings []string) bool {
	if value == "" {
		return false
	}
	lower := strings.ToLower(value)
	for _, sub := range substrings {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
