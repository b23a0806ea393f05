package analytics

import (
	"testing"
	"time"

	"github.com/hotelmind/backend/internal/model"
)

func TestComputeTrend_OccupancyRecovery(t *testing.T) {
	b := NewTrendContextBuilder(DefaultThresholds())

	// Old 3-month average 40%, recent 55%: +37.5% relative change.
	trend := b.ComputeTrend("occupazione", []float64{40, 40, 40, 55, 55, 55})

	if trend.Direction != model.TrendUp {
		t.Errorf("direction = %v, want up", trend.Direction)
	}
	if trend.Significance != model.SignificanceHigh {
		t.Errorf("significance = %v, want high", trend.Significance)
	}
	if !almostEqual(trend.ChangePct, 37.5) {
		t.Errorf("change = %v, want 37.5", trend.ChangePct)
	}
}

func TestComputeTrend_Tiers(t *testing.T) {
	b := NewTrendContextBuilder(DefaultThresholds())

	tests := []struct {
		name      string
		values    []float64
		direction model.TrendDirection
		signif    model.SignificanceTier
	}{
		{"within stable band", []float64{100, 100, 100, 101, 101, 101}, model.TrendStable, model.SignificanceLow},
		{"moderate rise", []float64{100, 100, 100, 110, 110, 110}, model.TrendUp, model.SignificanceMedium},
		{"sharp fall", []float64{100, 100, 100, 80, 80, 80}, model.TrendDown, model.SignificanceHigh},
		{"mild fall", []float64{100, 100, 100, 95, 95, 95}, model.TrendDown, model.SignificanceLow},
	}

	for _, tt := range tests {
		got := b.ComputeTrend("m", tt.values)
		if got.Direction != tt.direction || got.Significance != tt.signif {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", tt.name, got.Direction, got.Significance, tt.direction, tt.signif)
		}
	}
}

func TestComputeTrend_InsufficientDataIsNeutral(t *testing.T) {
	b := NewTrendContextBuilder(DefaultThresholds())

	got := b.ComputeTrend("entrate", []float64{100, 120, 90})
	if got.Direction != model.TrendStable || got.ChangePct != 0 {
		t.Errorf("expected neutral trend, got %+v", got)
	}
}

func TestBuildContext_PartialInputsDegrade(t *testing.T) {
	b := NewTrendContextBuilder(DefaultThresholds())

	ctx := b.BuildContext(nil, nil, nil, model.KPISet{}, model.PropertyProfile{TotalRooms: 10, Stars: 3})

	if ctx.Trend("entrate").Direction != model.TrendStable {
		t.Error("expected neutral revenue trend")
	}
	if len(ctx.Anomalies) != 0 {
		t.Errorf("expected no anomalies, got %d", len(ctx.Anomalies))
	}
	if ctx.Seasonality.CurrentSeason != model.SeasonMid {
		t.Errorf("expected mid season default, got %v", ctx.Seasonality.CurrentSeason)
	}
}

func TestBenchmarkGaps_DefaultsToThreeStars(t *testing.T) {
	kpis := model.KPISet{ADR: 85, Occupancy: 65}

	gaps := BenchmarkGaps(kpis, 0)
	for _, g := range gaps {
		if g.Metric == "adr" && !almostEqual(g.Gap, 0) {
			t.Errorf("adr gap = %v, want 0 against the 3-star default", g.Gap)
		}
	}
}

func TestBenchmarkGaps_SkipsUnderivableMetrics(t *testing.T) {
	gaps := BenchmarkGaps(model.KPISet{ADR: 100}, 4)
	for _, g := range gaps {
		if g.Metric != "adr" {
			t.Errorf("unexpected gap for %s with zero actual", g.Metric)
		}
	}
}

func TestSeasonality_HighAndLowMonths(t *testing.T) {
	b := NewTrendContextBuilder(DefaultThresholds())

	// January weak, August strong, history ends in July so August is next.
	var history []model.DailyPerformance
	addMonth := func(year int, month time.Month, occ float64) {
		for d := 1; d <= 28; d++ {
			history = append(history, model.DailyPerformance{
				Date:      time.Date(year, month, d, 0, 0, 0, 0, time.UTC),
				Occupancy: occ,
			})
		}
	}
	addMonth(2024, time.August, 95)
	addMonth(2025, time.January, 30)
	addMonth(2025, time.July, 70)

	snap := b.seasonality(history)

	if snap.NextSeason != model.SeasonHigh {
		t.Errorf("next season = %v, want high (August ratio %v)", snap.NextSeason, snap.NextMonthRatio)
	}
	if snap.MonthlyRatios[0] >= 0.85 {
		t.Errorf("January ratio = %v, want below the low-season cutoff", snap.MonthlyRatios[0])
	}
}

func TestCostPerGuestSeries_SkipsPeriodsWithoutGuests(t *testing.T) {
	periods := []model.RevenuePeriod{
		{Period: "2025-01", GuestNights: 200},
		{Period: "2025-02"}, // no guest data
	}
	costs := []model.PeriodCosts{
		{Period: "2025-01", Records: []model.CostRecord{{Category: model.CostCategoryOther, Amount: 4000}}},
		{Period: "2025-02", Records: []model.CostRecord{{Category: model.CostCategoryOther, Amount: 5000}}},
	}

	series := CostPerGuestSeries(periods, costs)
	if len(series) != 1 {
		t.Fatalf("got %d points, want 1", len(series))
	}
	if !almostEqual(series[0].CostPerGuest, 20) {
		t.Errorf("cost per guest = %v, want 20", series[0].CostPerGuest)
	}
}
