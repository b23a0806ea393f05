package analytics

import (
	"sort"

	"github.com/hotelmind/backend/internal/model"
)

// AggregateCosts reduces one or many periods of itemized cost records into
// category-wise totals. Aggregation is associative: summing several
// PeriodCosts for the same period equals aggregating them separately and
// adding the results. Records with unknown categories count under "other";
// a missing amount is treated as zero rather than rejecting the period.
func AggregateCosts(periods []model.PeriodCosts) model.CostTotals {
	totals := model.CostTotals{
		ByCategory: make(map[model.CostCategory]float64),
		Periods:    len(periods),
	}

	for _, p := range periods {
		for _, rec := range p.Records {
			cat := rec.Category
			if !knownCategory(cat) {
				cat = model.CostCategoryOther
			}
			if rec.Amount < 0 {
				// Amounts are non-negative by contract; drop malformed entries.
				continue
			}
			totals.ByCategory[cat] += rec.Amount
			totals.Total += rec.Amount
		}
	}

	return totals
}

// AggregateSinglePeriod is the single-period convenience variant.
func AggregateSinglePeriod(p model.PeriodCosts) model.CostTotals {
	return AggregateCosts([]model.PeriodCosts{p})
}

// GroupRecordsByPeriod turns a flat record list into ordered PeriodCosts.
// Records without a period land in the zero-key group at the front.
func GroupRecordsByPeriod(records []model.CostRecord) []model.PeriodCosts {
	byPeriod := make(map[string][]model.CostRecord)
	for _, rec := range records {
		byPeriod[rec.Period] = append(byPeriod[rec.Period], rec)
	}

	keys := make([]string, 0, len(byPeriod))
	for k := range byPeriod {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]model.PeriodCosts, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.PeriodCosts{Period: k, Records: byPeriod[k]})
	}
	return out
}

func knownCategory(c model.CostCategory) bool {
	for _, known := range model.CostCategories {
		if c == known {
			return true
		}
	}
	return false
}
