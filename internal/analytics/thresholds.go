// Package analytics implements the KPI derivation, anomaly detection,
// forecasting and context-building core. Every function here is pure and
// stateless: identical inputs yield identical outputs, and data sparsity
// degrades to documented neutral values instead of errors.
package analytics

// Thresholds centralizes every tuned constant the pipeline relies on.
// These encode the original product's undocumented business heuristics;
// they are deliberately preserved as-is rather than re-derived, since no
// ground truth exists to validate alternatives.
type Thresholds struct {
	// Trend tiers (percent change of recent 3-month mean vs previous).
	TrendStableBand      float64 // within +-this percent counts as stable
	TrendSignifMedium    float64
	TrendSignifHigh      float64

	// Anomaly z-score tiers.
	AnomalyMediumZ float64
	AnomalyHighZ   float64

	// Seasonality ratio cutoffs.
	SeasonLowRatio  float64
	SeasonHighRatio float64

	// Forecast confidence decay.
	ConfidenceFloor float64
	ConfidenceDecay float64

	// KPI heuristics.
	RoomCostShare   float64 // share of total cost allocated to the rooms department for CPOR
	ALOSDirectRatio float64 // guest-nights/rooms-sold at or above this is already a length of stay
	ALOSLowRatio    float64
	ALOSHighRatio   float64
	ALOSLowFactor   float64
	ALOSBaseFactor  float64
	ALOSHighFactor  float64 // fraction of the base factor applied above ALOSHighRatio

	// Rule-catalog thresholds.
	RevPARBenchmarkFloor float64 // fraction of benchmark below which RevPAR is flagged
	ADROccBandLow        float64
	ADROccBandHigh       float64
	AncillaryRatioFloor  float64 // TRevPAR/RevPAR below this flags weak ancillary revenue
	GOPPARBenchmarkFloor float64
	CPORShareCeiling     float64 // CPOR/ADR above this flags operating cost pressure
	CACShareFloor        float64
	CACShareCeiling      float64
	GOPMarginWarn        float64
	GOPMarginCritical    float64
	OccupancySwingPoints float64 // 3-month occupancy swing beyond this is flagged
}

// DefaultThresholds returns the production constant table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TrendStableBand:   2,
		TrendSignifMedium: 8,
		TrendSignifHigh:   15,

		AnomalyMediumZ: 2,
		AnomalyHighZ:   3,

		SeasonLowRatio:  0.85,
		SeasonHighRatio: 1.15,

		ConfidenceFloor: 0.3,
		ConfidenceDecay: 0.7,

		RoomCostShare:   0.40,
		ALOSDirectRatio: 4.0,
		ALOSLowRatio:    1.5,
		ALOSHighRatio:   2.5,
		ALOSLowFactor:   4.0,
		ALOSBaseFactor:  3.0,
		ALOSHighFactor:  0.9,

		RevPARBenchmarkFloor: 0.70,
		ADROccBandLow:        80,
		ADROccBandHigh:       200,
		AncillaryRatioFloor:  1.1,
		GOPPARBenchmarkFloor: 0.70,
		CPORShareCeiling:     0.35,
		CACShareFloor:        0.08,
		CACShareCeiling:      0.25,
		GOPMarginWarn:        0.20,
		GOPMarginCritical:    0.10,
		OccupancySwingPoints: 10,
	}
}
