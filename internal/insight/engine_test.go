package insight

import (
	"testing"
	"time"

	"github.com/hotelmind/backend/internal/analytics"
	"github.com/hotelmind/backend/internal/model"
)

func neutralContext() model.AnalysisContext {
	return model.AnalysisContext{
		Profile:     model.PropertyProfile{TotalRooms: 20, Stars: 3},
		Trends:      map[string]model.TrendMetric{},
		Seasonality: model.NeutralSeasonality(),
	}
}

func TestGenerateInsights_QuietContextYieldsNothing(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	if got := e.GenerateInsights(neutralContext()); len(got) != 0 {
		t.Errorf("expected no insights on a neutral context, got %d", len(got))
	}
}

func TestGenerateInsights_RevenueDropBuildsProblem(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	ctx := neutralContext()
	ctx.Trends["entrate"] = model.TrendMetric{
		Metric:       "entrate",
		Direction:    model.TrendDown,
		Significance: model.SignificanceHigh,
		ChangePct:    -20,
		RecentMean:   24000,
		PreviousMean: 30000,
	}

	got := e.GenerateInsights(ctx)
	if len(got) != 1 {
		t.Fatalf("got %d insights, want 1", len(got))
	}
	ins := got[0]
	if ins.ID != "calo-ricavi-trimestrale" || ins.Category != model.InsightProblem {
		t.Errorf("got %s/%v, want calo-ricavi-trimestrale/problem", ins.ID, ins.Category)
	}
	// base 7 for high significance plus 20/10.
	if ins.Priority != 9 {
		t.Errorf("priority = %v, want 9", ins.Priority)
	}
	if ins.Urgency != model.UrgencyImmediate {
		t.Errorf("urgency = %v, want immediate", ins.Urgency)
	}
	if ins.Chain.Observation == "" || len(ins.Chain.Causes) == 0 || ins.Chain.Logic == "" {
		t.Error("reasoning chain must be fully populated")
	}
	if len(ins.Recommendations) == 0 {
		t.Error("expected at least one actionable recommendation")
	}
}

func TestGenerateInsights_RevenueGrowthBuildsAchievement(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	ctx := neutralContext()
	ctx.Trends["entrate"] = model.TrendMetric{
		Metric:       "entrate",
		Direction:    model.TrendUp,
		Significance: model.SignificanceMedium,
		ChangePct:    10,
		RecentMean:   33000,
		PreviousMean: 30000,
	}

	got := e.GenerateInsights(ctx)
	if len(got) != 1 || got[0].Category != model.InsightAchievement {
		t.Fatalf("expected a single achievement insight, got %+v", got)
	}
	if got[0].Impact.RevenueDelta != 3000 {
		t.Errorf("revenue delta = %v, want 3000", got[0].Impact.RevenueDelta)
	}
}

func TestGenerateInsights_AnomalyUsesWorstHighSeverity(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	ctx := neutralContext()
	ctx.Anomalies = []model.CostAnomaly{
		{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), ZScore: 3.2, Severity: model.SeverityHigh, CostPerGuest: 80, Expected: 40, DeviationPct: 100},
		{Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), ZScore: 2.4, Severity: model.SeverityMedium, CostPerGuest: 55, Expected: 40, DeviationPct: 37.5},
	}

	got := e.GenerateInsights(ctx)
	if len(got) != 1 || got[0].ID != "anomalia-costi-ospite" {
		t.Fatalf("expected the cost anomaly insight, got %+v", got)
	}
	if got[0].Category != model.InsightRisk {
		t.Errorf("category = %v, want risk", got[0].Category)
	}
	// z 3.2 scaled by 2.5.
	if got[0].Priority != 8 {
		t.Errorf("priority = %v, want 8", got[0].Priority)
	}
	if got[0].Impact.CostDelta != -40 {
		t.Errorf("cost delta = %v, want -40", got[0].Impact.CostDelta)
	}
}

func TestGenerateInsights_MediumAnomaliesAloneDoNotFire(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	ctx := neutralContext()
	ctx.Anomalies = []model.CostAnomaly{
		{ZScore: 2.4, Severity: model.SeverityMedium, CostPerGuest: 55, Expected: 40},
	}

	if got := e.GenerateInsights(ctx); len(got) != 0 {
		t.Errorf("medium-only anomalies should not build an insight, got %d", len(got))
	}
}

func TestGenerateInsights_SeasonalityBothDirections(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	high := neutralContext()
	high.Seasonality.NextSeason = model.SeasonHigh
	high.Seasonality.NextMonthRatio = 1.4
	got := e.GenerateInsights(high)
	if len(got) != 1 || got[0].Category != model.InsightOpportunity {
		t.Fatalf("high season: expected one opportunity, got %+v", got)
	}

	low := neutralContext()
	low.Seasonality.NextSeason = model.SeasonLow
	low.Seasonality.NextMonthRatio = 0.6
	got = e.GenerateInsights(low)
	if len(got) != 1 || got[0].Category != model.InsightRisk {
		t.Fatalf("low season: expected one risk, got %+v", got)
	}
}

func TestGenerateInsights_SortedByPriorityDesc(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	ctx := neutralContext()
	ctx.KPIs = model.KPISet{GOPMargin: 0.12, TRevPAR: 70, ADR: 90}
	ctx.Trends["entrate"] = model.TrendMetric{
		Metric: "entrate", Direction: model.TrendDown,
		Significance: model.SignificanceHigh, ChangePct: -25,
		RecentMean: 22500, PreviousMean: 30000,
	}
	ctx.Seasonality.NextSeason = model.SeasonHigh
	ctx.Seasonality.NextMonthRatio = 1.2

	got := e.GenerateInsights(ctx)
	if len(got) < 3 {
		t.Fatalf("expected at least 3 insights, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Priority < got[i].Priority {
			t.Errorf("priority order violated at %d: %v < %v", i, got[i-1].Priority, got[i].Priority)
		}
	}
}

func TestUrgencyFor(t *testing.T) {
	tests := []struct {
		priority float64
		want     model.Urgency
	}{
		{9, model.UrgencyImmediate},
		{8, model.UrgencyImmediate},
		{6.5, model.UrgencyShortTerm},
		{3, model.UrgencyPlanned},
	}
	for _, tt := range tests {
		if got := urgencyFor(tt.priority); got != tt.want {
			t.Errorf("urgencyFor(%v) = %v, want %v", tt.priority, got, tt.want)
		}
	}
}

func TestBuildMarginRiskInsight_CriticalBecomesProblem(t *testing.T) {
	th := analytics.DefaultThresholds()

	ctx := neutralContext()
	ctx.KPIs = model.KPISet{GOPMargin: 0.06, TRevPAR: 70}

	ins := buildMarginRiskInsight(ctx, th)
	if ins == nil {
		t.Fatal("expected an insight at 6% margin")
	}
	if ins.Category != model.InsightProblem {
		t.Errorf("category = %v, want problem below the critical threshold", ins.Category)
	}
}
