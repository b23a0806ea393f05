package model

import "time"

// CostAnomaly represents a flagged cost-per-guest observation.
type CostAnomaly struct {
	Date         time.Time `json:"data"`
	CostPerGuest float64   `json:"costoPerOspite"`
	Expected     float64   `json:"costoAtteso"`
	ZScore       float64   `json:"score"`
	DeviationPct float64   `json:"scostamentoPct"`
	Severity     Severity  `json:"severita"`
	Suggestion   string    `json:"suggerimento"`
}

// ClassifyAnomalySeverity maps a positive z-score to a severity tier.
// Scores below the reporting threshold return the empty severity.
func ClassifyAnomalySeverity(z float64) Severity {
	switch {
	case z >= 3:
		return SeverityHigh
	case z >= 2:
		return SeverityMedium
	default:
		return ""
	}
}
