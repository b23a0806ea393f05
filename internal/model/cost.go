package model

import (
	"time"

	"github.com/google/uuid"
)

// CostCategory classifies an itemized operating cost.
type CostCategory string

const (
	CostCategoryUtilities CostCategory = "utilities"
	CostCategoryPayroll   CostCategory = "payroll"
	CostCategoryFnB       CostCategory = "fnb_suppliers"
	CostCategoryMarketing CostCategory = "marketing"
	CostCategoryOther     CostCategory = "other"
)

// CostCategories lists all known categories in a stable order.
var CostCategories = []CostCategory{
	CostCategoryUtilities,
	CostCategoryPayroll,
	CostCategoryFnB,
	CostCategoryMarketing,
	CostCategoryOther,
}

// CostRecord represents a single itemized cost entry.
type CostRecord struct {
	BaseEntity
	PropertyID uuid.UUID    `json:"property_id" db:"property_id"`
	Period     string       `json:"periodo" db:"period"` // YYYY-MM
	Category   CostCategory `json:"categoria" db:"category"`
	Supplier   string       `json:"fornitore" db:"supplier"`
	Amount     float64      `json:"importo" db:"amount"`
	Date       *time.Time   `json:"data,omitempty" db:"date"`
}

// PeriodCosts groups the cost records of a single YYYY-MM period.
type PeriodCosts struct {
	Period  string       `json:"periodo"`
	Records []CostRecord `json:"voci"`
}

// CostTotals holds category-wise totals for one or many periods.
type CostTotals struct {
	ByCategory map[CostCategory]float64 `json:"perCategoria"`
	Total      float64                  `json:"totale"`
	Periods    int                      `json:"periodi"`
}

// Category returns the total for a category, zero if absent.
func (t CostTotals) Category(c CostCategory) float64 {
	if t.ByCategory == nil {
		return 0
	}
	return t.ByCategory[c]
}

// CostFilter defines filter criteria for cost queries.
type CostFilter struct {
	PropertyID uuid.UUID
	FromPeriod string
	ToPeriod   string
	Categories []CostCategory
}

// CostPerGuestPoint is one observation of a cost-per-guest time series.
type CostPerGuestPoint struct {
	Date         time.Time `json:"data"`
	CostPerGuest float64   `json:"costoPerOspite"`
}
