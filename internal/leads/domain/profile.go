package domain

import "time"

// IntentStrength is the tiered strength of a buying-intent signal bundle.
type IntentStrength string

const (
	IntentVeryHigh IntentStrength = "very_high"
	IntentHigh     IntentStrength = "high"
	IntentMedium   IntentStrength = "medium"
	IntentLow      IntentStrength = "low"
	IntentNone     IntentStrength = "none"
)

// PersonAttributes holds enriched person-level data.
type PersonAttributes struct {
	Seniority       string `json:"seniority,omitempty"`
	Department      string `json:"department,omitempty"`
	YearsExperience int    `json:"yearsExperience,omitempty"`
	LinkedInURL     string `json:"linkedinUrl,omitempty"`
}

// FundingStatus describes a company's most recent funding round.
type FundingStatus struct {
	RecentRound   bool   `json:"recentRound"`
	LastRoundDays int    `json:"lastRoundDays,omitempty"`
	Stage         string `json:"stage,omitempty"`
}

// CompanyAttributes holds enriched firmographic data.
type CompanyAttributes struct {
	AnnualRevenueUSD int64         `json:"annualRevenueUsd,omitempty"`
	EmployeeCount    int           `json:"employeeCount,omitempty"`
	Technologies     []string      `json:"technologies,omitempty"`
	Funding          FundingStatus `json:"funding"`
}

// IntentSignal is one observed buying-intent signal.
type IntentSignal struct {
	Type     string         `json:"type"`
	Strength IntentStrength `json:"strength"`
	Score    int            `json:"score"`
}

// IntentProfile bundles the observed signals with their aggregate tier.
type IntentProfile struct {
	Signals   []IntentSignal `json:"signals,omitempty"`
	Aggregate IntentStrength `json:"aggregate"`
}

// Profile sources.
const (
	ProfileSourceProvider  = "provider"
	ProfileSourceSynthetic = "synthetic"
)

// EnrichedProfile is derived third-party data attached to a Lead by email key.
// Absence of a profile contributes zero to scoring; it is never an error.
type EnrichedProfile struct {
	Email      string            `json:"email"`
	Person     PersonAttributes  `json:"person"`
	Company    CompanyAttributes `json:"company"`
	Intent     IntentProfile     `json:"intent"`
	Source     string            `json:"source"`
	EnrichedAt time.Time         `json:"enrichedAt"`
}
