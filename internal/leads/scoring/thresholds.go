package scoring

import "leadflow_backend/internal/leads/domain"

// Thresholds holds the band floors for the categorizer. Bands are ordered
// and contiguous: HOT ≥ HotMin, WARM ≥ WarmMin, QUALIFIED ≥ QualifiedMin
// (when the scheme has a QUALIFIED tier), COLD below.
type Thresholds struct {
	HotMin       int
	WarmMin      int
	QualifiedMin int
	HasQualified bool
}

// SchemeA is the default four-band scheme: HOT ≥ 85, WARM 60-84,
// QUALIFIED 40-59, COLD < 40.
func SchemeA() Thresholds {
	return Thresholds{HotMin: 85, WarmMin: 60, QualifiedMin: 40, HasQualified: true}
}

// SchemeB is the three-band scheme: HOT ≥ 40, WARM 10-39, COLD < 10.
func SchemeB() Thresholds {
	return Thresholds{HotMin: 40, WarmMin: 10, QualifiedMin: 10, HasQualified: false}
}

// ScoringConfig is the narrow view of configuration the categorizer needs.
type ScoringConfig interface {
	GetScoreScheme() string
	GetHotMin() int
	GetWarmMin() int
	GetQualifiedMin() int
}

// ThresholdsFromConfig builds the active thresholds from configuration.
// Scheme B drops the QUALIFIED tier; any other value means Scheme A bands.
func ThresholdsFromConfig(cfg ScoringConfig) Thresholds {
	return Thresholds{
		HotMin:       cfg.GetHotMin(),
		WarmMin:      cfg.GetWarmMin(),
		QualifiedMin: cfg.GetQualifiedMin(),
		HasQualified: cfg.GetScoreScheme() != "B",
	}
}

// Categorize maps a score onto its band. The bands partition [0,100] with
// no gaps and no overlaps.
func (t Thresholds) Categorize(score int) domain.Category {
	switch {
	case score >= t.HotMin:
		return domain.CategoryHot
	case score >= t.WarmMin:
		return domain.CategoryWarm
	case t.HasQualified && score >= t.QualifiedMin:
		return domain.CategoryQualified
	default:
		return domain.CategoryCold
	}
}
