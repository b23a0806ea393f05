package model

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisSnapshot is the nightly persisted result of a full analytics run.
// The core itself never persists anything; the scheduler job stores these
// through the repository so the dashboard has a warm result to serve.
type AnalysisSnapshot struct {
	ID              int64     `json:"id" db:"id"`
	PropertyID      uuid.UUID `json:"property_id" db:"property_id"`
	GeneratedAt     time.Time `json:"generated_at" db:"generated_at"`
	KPIs            KPISet    `json:"kpi"`
	Context         []byte    `json:"-" db:"context"`         // JSON blob
	Recommendations []byte    `json:"-" db:"recommendations"` // JSON blob
	Insights        []byte    `json:"-" db:"insights"`        // JSON blob
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
