package model

import "time"

// ForecastPoint is a single predicted day.
type ForecastPoint struct {
	Date       time.Time `json:"data"`
	Revenue    float64   `json:"entratePreviste"`
	Occupancy  float64   `json:"occupazionePrevista"` // percent, clamped to [0,100]
	Confidence float64   `json:"confidenza"`          // decays with horizon, floor 0.3
}

// ForecastStats aggregates a forecast run.
type ForecastStats struct {
	TotalRevenue   float64 `json:"entrateTotaliPreviste"`
	AvgOccupancy   float64 `json:"occupazioneMedia"`
	MinRevenue     float64 `json:"entrateMin"`
	MaxRevenue     float64 `json:"entrateMax"`
	ConfidenceLow  float64 `json:"bandaInferiore"` // mean daily revenue -10%
	ConfidenceHigh float64 `json:"bandaSuperiore"` // mean daily revenue +10%
}

// Forecast bundles the per-day predictions with their aggregate stats.
type Forecast struct {
	Points []ForecastPoint `json:"previsioni"`
	Stats  ForecastStats   `json:"statistiche"`
}
