package recommend

import (
	"fmt"
	"sort"

	"github.com/hotelmind/backend/internal/analytics"
	"github.com/hotelmind/backend/internal/model"
)

// Engine evaluates the rule catalog and ranks the matches.
type Engine struct {
	th    analytics.Thresholds
	rules []Rule
}

// NewEngine creates an engine over the default catalog.
func NewEngine(th analytics.Thresholds) *Engine {
	return &Engine{th: th, rules: Catalog()}
}

// GenerateRecommendations runs every rule over the supplied window and
// returns the matches ordered by priority tier, ties broken by descending
// estimated impact. When no rule fires but cost data exists a single
// monitoring recommendation is returned: the engine never goes silent
// while there is data to reason about.
func (e *Engine) GenerateRecommendations(
	costs []model.PeriodCosts,
	revenues []model.RevenuePeriod,
	kpis model.KPISet,
	ctx model.AnalysisContext,
	profile model.PropertyProfile,
) []model.Recommendation {
	in := Input{
		Costs:    analytics.AggregateCosts(costs),
		Revenues: revenues,
		KPIs:     kpis,
		Context:  ctx,
		Profile:  profile,
	}

	var out []model.Recommendation
	for _, rule := range e.rules {
		if rec := rule.Evaluate(in, e.th); rec != nil {
			out = append(out, *rec)
		}
	}

	if len(out) == 0 && in.Costs.Total > 0 {
		out = append(out, monitoringRecommendation(in))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority.Rank() != out[j].Priority.Rank() {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		}
		return out[i].EstimatedImpact > out[j].EstimatedImpact
	})

	return out
}

// Alerts derives hard-limit threshold alerts from the same window. These
// are routed to the notification channels rather than the ranked list.
func (e *Engine) Alerts(kpis model.KPISet, ctx model.AnalysisContext) []model.ThresholdAlert {
	var alerts []model.ThresholdAlert

	if kpis.GOPMargin != 0 && kpis.GOPMargin < e.th.GOPMarginCritical {
		alerts = append(alerts, model.ThresholdAlert{
			Metric:    "gopMargin",
			Value:     kpis.GOPMargin,
			Threshold: e.th.GOPMarginCritical,
			Severity:  model.SeverityCritical,
			Title:     "Margine GOP sotto il livello critico",
			Message:   fmt.Sprintf("Il margine operativo lordo e al %.1f%%, sotto il limite critico del %.0f%%.", kpis.GOPMargin*100, e.th.GOPMarginCritical*100),
		})
	}

	occTrend := ctx.Trend("occupazione")
	if drop := occTrend.PreviousMean - occTrend.RecentMean; drop > e.th.OccupancySwingPoints {
		alerts = append(alerts, model.ThresholdAlert{
			Metric:    "occupazione",
			Value:     occTrend.RecentMean,
			Threshold: occTrend.PreviousMean - e.th.OccupancySwingPoints,
			Severity:  model.SeverityHigh,
			Title:     "Occupazione in forte calo",
			Message:   fmt.Sprintf("L'occupazione media trimestrale e scesa di %.1f punti.", drop),
		})
	}

	if gap, ok := ctx.BenchmarkFor("revpar"); ok && gap.Gap < -0.5 {
		alerts = append(alerts, model.ThresholdAlert{
			Metric:    "revpar",
			Value:     gap.Actual,
			Threshold: gap.Benchmark * 0.5,
			Severity:  model.SeverityHigh,
			Title:     "RevPAR a meta del benchmark",
			Message:   fmt.Sprintf("Il RevPAR (%.2f) e sotto la meta del riferimento di categoria (%.2f).", gap.Actual, gap.Benchmark),
		})
	}

	return alerts
}

func monitoringRecommendation(in Input) model.Recommendation {
	return model.Recommendation{
		ID:              "monitoraggio-continuo",
		Category:        model.RecCategoryMonitoring,
		Title:           "Nessuna criticita rilevata: mantenere il monitoraggio",
		Description:     "Gli indicatori del periodo rientrano nelle soglie attese. Continuare la registrazione puntuale di costi e ricavi per consolidare lo storico.",
		EstimatedImpact: 0,
		Difficulty:      model.DifficultyLow,
		Priority:        model.PriorityLow,
		Actions: []string{
			"Registrare i costi a cadenza mensile per categoria",
			"Verificare gli indicatori dopo la chiusura di ogni mese",
		},
		Evidence: []string{fmt.Sprintf("Costi registrati per %d periodi, totale %.2f", in.Costs.Periods, in.Costs.Total)},
	}
}
