// Package model contains the core domain entities for HotelMind.
package model

import (
	"time"

	"github.com/google/uuid"
)

// OperatingModel describes how a property operates over the year.
type OperatingModel string

const (
	OperatingYearRound OperatingModel = "year-round"
	OperatingSeasonal  OperatingModel = "seasonal"
)

// Currency represents monetary currency codes.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// Severity represents alert/anomaly severity levels.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Priority represents recommendation priority tiers. Values keep the
// original product's Italian wire vocabulary.
type Priority string

const (
	PriorityCritical Priority = "critica"
	PriorityHigh     Priority = "alta"
	PriorityMedium   Priority = "media"
	PriorityLow      Priority = "bassa"
)

// Rank returns a sortable weight for a priority (higher sorts first).
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Difficulty represents implementation difficulty tiers for a recommendation.
type Difficulty string

const (
	DifficultyLow    Difficulty = "bassa"
	DifficultyMedium Difficulty = "media"
	DifficultyHigh   Difficulty = "alta"
)

// DateRange represents a time period.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Pagination holds pagination parameters.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// BaseEntity contains common fields for all persisted entities.
type BaseEntity struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewBaseEntity creates a new BaseEntity with generated ID and timestamps.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
