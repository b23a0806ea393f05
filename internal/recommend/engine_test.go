package recommend

import (
	"testing"

	"github.com/hotelmind/backend/internal/analytics"
	"github.com/hotelmind/backend/internal/model"
)

func testProfile() model.PropertyProfile {
	return model.PropertyProfile{TotalRooms: 20, Stars: 3, OperatingModel: model.OperatingYearRound}
}

func healthyContext(kpis model.KPISet, stars int) model.AnalysisContext {
	return model.AnalysisContext{
		KPIs:        kpis,
		Trends:      map[string]model.TrendMetric{},
		Benchmarks:  analytics.BenchmarkGaps(kpis, stars),
		Seasonality: model.NeutralSeasonality(),
	}
}

func monthCosts(period string, amount float64) model.PeriodCosts {
	return model.PeriodCosts{
		Period:  period,
		Records: []model.CostRecord{{Period: period, Category: model.CostCategoryOther, Amount: amount}},
	}
}

func TestGenerateRecommendations_LowGOPMarginIsCritical(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	kpis := model.KPISet{
		ADR:       85,
		Occupancy: 65,
		RevPAR:    85 * 0.65,
		TRevPAR:   85 * 0.65 * 1.2,
		GOPMargin: 0.08,
	}
	revenues := []model.RevenuePeriod{
		{Period: "2025-05", RoomRevenue: 30000},
		{Period: "2025-06", RoomRevenue: 32000},
	}

	recs := e.GenerateRecommendations(nil, revenues, kpis, healthyContext(kpis, 3), testProfile())

	var margin *model.Recommendation
	for i := range recs {
		if recs[i].ID == "margine-gop-basso" {
			margin = &recs[i]
		}
	}
	if margin == nil {
		t.Fatal("expected a GOP margin recommendation at 8% margin")
	}
	if margin.Priority != model.PriorityCritical {
		t.Errorf("priority = %v, want critica", margin.Priority)
	}
	if margin.EstimatedImpact <= 0 {
		t.Errorf("impact = %v, want positive", margin.EstimatedImpact)
	}
}

func TestGenerateRecommendations_OrderedByPriorityThenImpact(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	// Weak margin plus RevPAR far below benchmark: several rules fire.
	kpis := model.KPISet{
		ADR:       60,
		Occupancy: 30,
		RevPAR:    18,
		TRevPAR:   19,
		GOPPAR:    5,
		GOPMargin: 0.05,
	}
	revenues := []model.RevenuePeriod{{Period: "2025-06", RoomRevenue: 15000, RoomsSold: 180}}

	recs := e.GenerateRecommendations(nil, revenues, kpis, healthyContext(kpis, 3), testProfile())
	if len(recs) < 2 {
		t.Fatalf("expected multiple recommendations, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		prev, cur := recs[i-1], recs[i]
		if prev.Priority.Rank() < cur.Priority.Rank() {
			t.Errorf("rank order violated at %d: %v before %v", i, prev.Priority, cur.Priority)
		}
		if prev.Priority.Rank() == cur.Priority.Rank() && prev.EstimatedImpact < cur.EstimatedImpact {
			t.Errorf("impact order violated at %d within tier %v", i, cur.Priority)
		}
	}
}

func TestGenerateRecommendations_MonitoringFallback(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	// Every KPI inside its band, but cost data exists.
	kpis := model.KPISet{
		ADR:       85,
		Occupancy: 65,
		RevPAR:    85 * 0.65,
		TRevPAR:   85 * 0.65 * 1.3,
		GOPPAR:    55,
		GOPMargin: 0.30,
		CPOR:      20,
		CAC:       10,
	}
	costs := []model.PeriodCosts{monthCosts("2025-06", 12000)}

	recs := e.GenerateRecommendations(costs, nil, kpis, healthyContext(kpis, 3), testProfile())
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want the single monitoring fallback", len(recs))
	}
	if recs[0].ID != "monitoraggio-continuo" || recs[0].Priority != model.PriorityLow {
		t.Errorf("unexpected fallback: %s / %v", recs[0].ID, recs[0].Priority)
	}
}

func TestGenerateRecommendations_SilentWithoutAnyData(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	recs := e.GenerateRecommendations(nil, nil, model.KPISet{}, healthyContext(model.KPISet{}, 3), testProfile())
	if len(recs) != 0 {
		t.Errorf("expected no recommendations without data, got %d", len(recs))
	}
}

func TestAlerts_CriticalMarginAndOccupancyDrop(t *testing.T) {
	e := NewEngine(analytics.DefaultThresholds())

	ctx := healthyContext(model.KPISet{}, 3)
	ctx.Trends["occupazione"] = model.TrendMetric{
		Metric:       "occupazione",
		Direction:    model.TrendDown,
		RecentMean:   48,
		PreviousMean: 62,
	}

	alerts := e.Alerts(model.KPISet{GOPMargin: 0.07}, ctx)
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	if alerts[0].Severity != model.SeverityCritical {
		t.Errorf("first alert severity = %v, want critical", alerts[0].Severity)
	}
	if alerts[1].Metric != "occupazione" || alerts[1].Severity != model.SeverityHigh {
		t.Errorf("second alert = %s/%v, want occupazione/high", alerts[1].Metric, alerts[1].Severity)
	}
}

func TestRuleADROccupancyBand_BothSides(t *testing.T) {
	th := analytics.DefaultThresholds()

	low := Input{KPIs: model.KPISet{ADR: 50, Occupancy: 80}, Profile: testProfile()}
	rec := ruleADROccupancyBand(low, th)
	if rec == nil || rec.Category != model.RecCategoryPricing {
		t.Errorf("low ratio: expected a pricing recommendation, got %+v", rec)
	}

	high := Input{KPIs: model.KPISet{ADR: 250, Occupancy: 40}, Profile: testProfile()}
	rec = ruleADROccupancyBand(high, th)
	if rec == nil || rec.Category != model.RecCategoryOccupancy {
		t.Errorf("high ratio: expected an occupancy recommendation, got %+v", rec)
	}

	inside := Input{KPIs: model.KPISet{ADR: 85, Occupancy: 65}, Profile: testProfile()}
	if rec = ruleADROccupancyBand(inside, th); rec != nil {
		t.Errorf("inside the band: expected nil, got %s", rec.ID)
	}
}

func TestEstimatedMonthlyBookings_FallbackChain(t *testing.T) {
	tests := []struct {
		name string
		p    model.RevenuePeriod
		want float64
	}{
		{"bookings win", model.RevenuePeriod{Bookings: 40, RoomsSold: 100, GuestNights: 300}, 40},
		{"rooms sold next", model.RevenuePeriod{RoomsSold: 100, GuestNights: 300}, 100},
		{"guest nights halved", model.RevenuePeriod{GuestNights: 300}, 150},
	}
	for _, tt := range tests {
		got := estimatedMonthlyBookings(Input{Revenues: []model.RevenuePeriod{tt.p}})
		if got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}
