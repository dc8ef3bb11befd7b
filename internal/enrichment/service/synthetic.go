package service

import (
	"hash/fnv"
	"math/rand"
	"time"

	"leadflow_backend/internal/leads/domain"
)

var (
	syntheticSeniorities  = []string{"C-Level", "VP", "Director", "Manager", "Individual Contributor"}
	syntheticDepartments  = []string{"Finance", "Sales", "Engineering", "Operations", "Marketing"}
	syntheticTechnologies = []string{"Salesforce", "HubSpot", "NetSuite", "QuickBooks", "Stripe", "SAP", "Workday", "Slack"}
	syntheticStages       = []string{"Seed", "Series A", "Series B", "Series C"}
	syntheticIntents      = []domain.IntentStrength{domain.IntentNone, domain.IntentLow, domain.IntentMedium, domain.IntentHigh, domain.IntentVeryHigh}
)

// SyntheticProfile fabricates a plausible enrichment profile for a lead when
// no real provider is available. The generator is seeded from the normalized
// email, so the same lead always yields the same profile.
func SyntheticProfile(lead *domain.Lead) *domain.EnrichedProfile {
	email := domain.NormalizeEmail(lead.Email)

	h := fnv.New64a()
	h.Write([]byte(email))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	// 1M-80M revenue, 5-800 employees: wide enough that some synthetic
	// profiles hit the scoring bands and some miss them.
	revenue := int64(1_000_000 + rng.Intn(79_000_001))
	employees := 5 + rng.Intn(796)

	techCount := rng.Intn(4)
	techs := make([]string, 0, techCount)
	for _, i := range rng.Perm(len(syntheticTechnologies))[:techCount] {
		techs = append(techs, syntheticTechnologies[i])
	}

	funding := domain.FundingStatus{}
	if rng.Intn(100) < 30 {
		funding.RecentRound = true
		funding.LastRoundDays = 30 + rng.Intn(330)
		funding.Stage = syntheticStages[rng.Intn(len(syntheticStages))]
	}

	intent := syntheticIntents[rng.Intn(len(syntheticIntents))]
	profile := &domain.EnrichedProfile{
		Email: email,
		Person: domain.PersonAttributes{
			Seniority:       syntheticSeniorities[rng.Intn(len(syntheticSeniorities))],
			Department:      syntheticDepartments[rng.Intn(len(syntheticDepartments))],
			YearsExperience: 2 + rng.Intn(24),
		},
		Company: domain.CompanyAttributes{
			AnnualRevenueUSD: revenue,
			EmployeeCount:    employees,
			Technologies:     techs,
			Funding:          funding,
		},
		Intent: domain.IntentProfile{
			Aggregate: intent,
		},
		Source:     domain.ProfileSourceSynthetic,
		EnrichedAt: time.Now().UTC(),
	}

	if intent != domain.IntentNone {
		profile.Intent.Signals = []domain.IntentSignal{
			{Type: "website_visits", Strength: intent, Score: 20 + rng.Intn(60)},
		}
	}

	return profile
}
