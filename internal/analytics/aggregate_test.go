package analytics

import (
	"testing"

	"github.com/hotelmind/backend/internal/model"
)

func TestAggregateCosts_Associativity(t *testing.T) {
	p1 := model.PeriodCosts{Period: "2025-02", Records: []model.CostRecord{
		{Category: model.CostCategoryPayroll, Amount: 3000},
		{Category: model.CostCategoryUtilities, Amount: 800},
	}}
	p2 := model.PeriodCosts{Period: "2025-02", Records: []model.CostRecord{
		{Category: model.CostCategoryPayroll, Amount: 500},
		{Category: model.CostCategoryMarketing, Amount: 200},
	}}

	combined := AggregateCosts([]model.PeriodCosts{p1, p2})
	a := AggregateSinglePeriod(p1)
	b := AggregateSinglePeriod(p2)

	if !almostEqual(combined.Total, a.Total+b.Total) {
		t.Errorf("total %v != %v + %v", combined.Total, a.Total, b.Total)
	}
	for _, cat := range model.CostCategories {
		if !almostEqual(combined.Category(cat), a.Category(cat)+b.Category(cat)) {
			t.Errorf("category %s: %v != %v + %v", cat, combined.Category(cat), a.Category(cat), b.Category(cat))
		}
	}
}

func TestAggregateCosts_UnknownCategoryLandsInOther(t *testing.T) {
	totals := AggregateSinglePeriod(model.PeriodCosts{Period: "2025-01", Records: []model.CostRecord{
		{Category: "manutenzione-straordinaria", Amount: 150},
	}})
	if !almostEqual(totals.Category(model.CostCategoryOther), 150) {
		t.Errorf("other = %v, want 150", totals.Category(model.CostCategoryOther))
	}
}

func TestAggregateCosts_NegativeAmountsDropped(t *testing.T) {
	totals := AggregateSinglePeriod(model.PeriodCosts{Period: "2025-01", Records: []model.CostRecord{
		{Category: model.CostCategoryPayroll, Amount: -100},
		{Category: model.CostCategoryPayroll, Amount: 400},
	}})
	if !almostEqual(totals.Total, 400) {
		t.Errorf("total = %v, want 400", totals.Total)
	}
}

func TestGroupRecordsByPeriod_Ordered(t *testing.T) {
	records := []model.CostRecord{
		{Period: "2025-03", Category: model.CostCategoryOther, Amount: 1},
		{Period: "2025-01", Category: model.CostCategoryOther, Amount: 2},
		{Period: "2025-02", Category: model.CostCategoryOther, Amount: 3},
	}
	grouped := GroupRecordsByPeriod(records)
	if len(grouped) != 3 {
		t.Fatalf("got %d groups, want 3", len(grouped))
	}
	for i, want := range []string{"2025-01", "2025-02", "2025-03"} {
		if grouped[i].Period != want {
			t.Errorf("group %d period = %s, want %s", i, grouped[i].Period, want)
		}
	}
}
