// Package scoring implements the additive lead scoring engine and the
// score-to-category thresholds.
package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RevenueBand is an inclusive annual-revenue band with its contribution.
type RevenueBand struct {
	MinUSD int64 `yaml:"minUsd"`
	MaxUSD int64 `yaml:"maxUsd"`
	Points int   `yaml:"points"`
}

// EmployeeBand is an inclusive employee-count band with its contribution.
type EmployeeBand struct {
	Min    int `yaml:"min"`
	Max    int `yaml:"max"`
	Points int `yaml:"points"`
}

// Rules is the full weight table for the scoring engine. Every rule is a
// discrete step function; contributions are summed and clamped to [0,100].
type Rules struct {
	RevenueBand    RevenueBand  `yaml:"revenueBand"`
	RevenueSubBand RevenueBand  `yaml:"revenueSubBand"`
	EmployeeBand   EmployeeBand `yaml:"employeeBand"`

	TargetTechnologies []string `yaml:"targetTechnologies"`
	TechnologyPoints   int      `yaml:"technologyPoints"`

	RecentFundingPoints int `yaml:"recentFundingPoints"`
	FundingWindowDays   int `yaml:"fundingWindowDays"`
	FundingWindowPoints int `yaml:"fundingWindowPoints"`

	HighValueTitles []string `yaml:"highValueTitles"`
	TitlePoints     int      `yaml:"titlePoints"`

	TargetIndustries []string `yaml:"targetIndustries"`
	IndustryPoints   int      `yaml:"industryPoints"`

	// IntentPoints maps intent strength tiers (very_high, high, medium, low)
	// to their contribution.
	IntentPoints map[string]int `yaml:"intentPoints"`
}

// DefaultRules returns the built-in weight table.
func DefaultRules() Rules {
	return Rules{
		RevenueBand:    RevenueBand{MinUSD: 2_000_000, MaxUSD: 100_000_000, Points: 25},
		RevenueSubBand: RevenueBand{MinUSD: 5_000_000, MaxUSD: 50_000_000, Points: 10},
		EmployeeBand:   EmployeeBand{Min: 10, Max: 500, Points: 15},

		TargetTechnologies: []string{"Salesforce", "HubSpot", "NetSuite", "QuickBooks", "Stripe", "SAP"},
		TechnologyPoints:   10,

		RecentFundingPoints: 20,
		FundingWindowDays:   180,
		FundingWindowPoints: 15,

		HighValueTitles: []string{"CEO", "CFO", "VP Finance", "Controller", "Finance Director", "COO"},
		TitlePoints:     20,

		TargetIndustries: []string{"fintech", "saas", "software", "financial services", "insurance"},
		IndustryPoints:   15,

		IntentPoints: map[string]int{
			"very_high": 20,
			"high":      15,
			"medium":    10,
			"low":       5,
		},
	}
}

// LoadRulesFile reads a YAML weight table from path, layered over the
// defaults so a partial file only overrides what it names.
func LoadRulesFile(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read scoring rules: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parse scoring rules: %w", err)
	}
	return rules, nil
}
