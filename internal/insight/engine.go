// Package insight implements the reasoning engine: it composes trend,
// anomaly, benchmark and seasonality signals from the analysis context
// into prioritized narrative insights with explicit causal chains. The
// structured output is handed to the presentation collaborator for
// templating; nothing here formats final user-facing text.
package insight

import (
	"math"
	"sort"

	"github.com/hotelmind/backend/internal/analytics"
	"github.com/hotelmind/backend/internal/model"
)

// Engine generates insights from an analysis context.
type Engine struct {
	th analytics.Thresholds
}

// NewEngine creates a reasoning engine.
func NewEngine(th analytics.Thresholds) *Engine {
	return &Engine{th: th}
}

// builder is one independent insight generator. Builders are evaluated in
// a fixed order; each returns nil when its signal is absent.
type builder func(ctx model.AnalysisContext, th analytics.Thresholds) *model.Insight

func builders() []builder {
	return []builder{
		buildRevenueTrendInsight,
		buildOccupancyTrendInsight,
		buildCostAnomalyInsight,
		buildBenchmarkGapInsight,
		buildSeasonalityInsight,
		buildMarginRiskInsight,
	}
}

// GenerateInsights runs every builder over the context and returns the
// results ordered by descending priority. Priority and urgency are
// derived from the magnitude of the underlying signal, never recomputed
// independently.
func (e *Engine) GenerateInsights(ctx model.AnalysisContext) []model.Insight {
	var out []model.Insight
	for _, b := range builders() {
		if ins := b(ctx, e.th); ins != nil {
			out = append(out, *ins)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// trendPriority maps a trend's magnitude and significance onto the 0-10
// priority scale.
func trendPriority(t model.TrendMetric) float64 {
	base := 3.0
	switch t.Significance {
	case model.SignificanceHigh:
		base = 7
	case model.SignificanceMedium:
		base = 5
	}
	return clamp10(base + math.Abs(t.ChangePct)/10)
}

// trendConfidence grades how much weight a trend signal carries.
func trendConfidence(t model.TrendMetric) float64 {
	switch t.Significance {
	case model.SignificanceHigh:
		return 0.8
	case model.SignificanceMedium:
		return 0.65
	default:
		return 0.5
	}
}

// urgencyFor derives urgency from a priority score.
func urgencyFor(priority float64) model.Urgency {
	switch {
	case priority >= 8:
		return model.UrgencyImmediate
	case priority >= 5:
		return model.UrgencyShortTerm
	default:
		return model.UrgencyPlanned
	}
}

func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return math.Round(v*10) / 10
}
