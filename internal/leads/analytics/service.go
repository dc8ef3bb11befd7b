// Package analytics computes pipeline aggregates and the revenue forecast
// over the stored leads.
package analytics

import (
	"context"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/store"
)

// Assumed average deal values per category, in cents. Constants, not
// measured.
var dealValueCents = map[domain.Category]int64{
	domain.CategoryHot:       5_000_000,
	domain.CategoryWarm:      2_500_000,
	domain.CategoryQualified: 1_000_000,
	domain.CategoryCold:      250_000,
}

// Assumed conversion rates per category.
var conversionRate = map[domain.Category]float64{
	domain.CategoryHot:       0.45,
	domain.CategoryWarm:      0.25,
	domain.CategoryQualified: 0.10,
	domain.CategoryCold:      0.02,
}

// EstimatedDealValueCents returns the assumed average deal value for a
// category. Also used by the dispatcher to size deals and quotes.
func EstimatedDealValueCents(category domain.Category) int64 {
	return dealValueCents[category]
}

// CategoryBreakdown is the per-category slice of the pipeline aggregate.
type CategoryBreakdown struct {
	Count              int     `json:"count"`
	AverageScore       float64 `json:"averageScore"`
	ForecastCents      int64   `json:"forecastCents"`
	ConversionRate     float64 `json:"conversionRate"`
	DealValueCentsUsed int64   `json:"dealValueCents"`
}

// PipelineAnalytics aggregates all stored leads.
type PipelineAnalytics struct {
	TotalLeads         int                                  `json:"totalLeads"`
	ByCategory         map[domain.Category]CategoryBreakdown `json:"byCategory"`
	TotalForecastCents int64                                `json:"totalForecastCents"`
}

// Service computes analytics over the lead store.
type Service struct {
	store store.LeadStore
}

// NewService creates the analytics service.
func NewService(st store.LeadStore) *Service {
	return &Service{store: st}
}

// Pipeline computes counts, average scores, and the revenue forecast per
// category: count × assumed deal value × assumed conversion rate.
func (s *Service) Pipeline(ctx context.Context) (*PipelineAnalytics, error) {
	leads, err := s.store.ListLeads(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.Category]int)
	scoreSums := make(map[domain.Category]int)
	for _, lead := range leads {
		category := lead.Category
		if category == "" {
			category = domain.CategoryCold
		}
		counts[category]++
		scoreSums[category] += lead.Score
	}

	out := &PipelineAnalytics{
		TotalLeads: len(leads),
		ByCategory: make(map[domain.Category]CategoryBreakdown),
	}
	for category, count := range counts {
		forecast := int64(float64(count) * float64(dealValueCents[category]) * conversionRate[category])
		out.ByCategory[category] = CategoryBreakdown{
			Count:              count,
			AverageScore:       float64(scoreSums[category]) / float64(count),
			ForecastCents:      forecast,
			ConversionRate:     conversionRate[category],
			DealValueCentsUsed: dealValueCents[category],
		}
		out.TotalForecastCents += forecast
	}
	return out, nil
}
