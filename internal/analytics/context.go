package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/hotelmind/backend/internal/model"
)

// TrendContextBuilder assembles the aggregated decision-support context:
// trend directions, cost anomalies, benchmark gaps and seasonality. Each
// section computes independently and degrades to its neutral default on
// sparse data, so a partial context is always produced.
type TrendContextBuilder struct {
	th       Thresholds
	detector *CostAnomalyDetector
}

// NewTrendContextBuilder creates a context builder.
func NewTrendContextBuilder(th Thresholds) *TrendContextBuilder {
	return &TrendContextBuilder{th: th, detector: NewCostAnomalyDetector(th)}
}

// BuildContext derives the full analysis context for one property window.
func (b *TrendContextBuilder) BuildContext(
	periods []model.RevenuePeriod,
	costs []model.PeriodCosts,
	dailyHistory []model.DailyPerformance,
	kpis model.KPISet,
	profile model.PropertyProfile,
) model.AnalysisContext {
	ordered := sortedByPeriod(periods)

	ctx := model.AnalysisContext{
		Profile:     profile,
		KPIs:        kpis,
		Trends:      b.buildTrends(ordered, costs),
		Anomalies:   b.detector.DetectAnomalies(CostPerGuestSeries(ordered, costs)),
		Benchmarks:  BenchmarkGaps(kpis, profile.Stars),
		Seasonality: b.seasonality(dailyHistory),
		Periods:     len(ordered),
	}
	return ctx
}

// ComputeTrend compares the mean of the most recent three values against
// the mean of the three before them. Fewer than six values yields the
// neutral zero-trend result.
func (b *TrendContextBuilder) ComputeTrend(metric string, values []float64) model.TrendMetric {
	if len(values) < 6 {
		return model.NeutralTrend(metric)
	}

	recent := mean(values[len(values)-3:])
	previous := mean(values[len(values)-6 : len(values)-3])
	if previous == 0 {
		return model.NeutralTrend(metric)
	}

	changePct := (recent - previous) / previous * 100

	direction := model.TrendStable
	switch {
	case changePct > b.th.TrendStableBand:
		direction = model.TrendUp
	case changePct < -b.th.TrendStableBand:
		direction = model.TrendDown
	}

	significance := model.SignificanceLow
	switch {
	case math.Abs(changePct) > b.th.TrendSignifHigh:
		significance = model.SignificanceHigh
	case math.Abs(changePct) > b.th.TrendSignifMedium:
		significance = model.SignificanceMedium
	}

	return model.TrendMetric{
		Metric:       metric,
		Direction:    direction,
		ChangePct:    round2(changePct),
		Significance: significance,
		RecentMean:   round2(recent),
		PreviousMean: round2(previous),
	}
}

func (b *TrendContextBuilder) buildTrends(periods []model.RevenuePeriod, costs []model.PeriodCosts) map[string]model.TrendMetric {
	trends := make(map[string]model.TrendMetric)

	trends["entrate"] = b.ComputeTrend("entrate", collect(periods, func(p model.RevenuePeriod) float64 { return p.TotalRevenue() }))
	trends["occupazione"] = b.ComputeTrend("occupazione", collect(periods, func(p model.RevenuePeriod) float64 { return p.Occupancy }))
	trends["adr"] = b.ComputeTrend("adr", collect(periods, func(p model.RevenuePeriod) float64 { return p.ADR }))

	costSeries := make([]float64, 0, len(costs))
	for _, pc := range sortedCosts(costs) {
		costSeries = append(costSeries, AggregateSinglePeriod(pc).Total)
	}
	trends["costi"] = b.ComputeTrend("costi", costSeries)

	return trends
}

// seasonality groups the daily occupancy history by calendar month and
// expresses the current and next month as ratios to the overall mean. The
// "current" month is the month of the last historical observation.
func (b *TrendContextBuilder) seasonality(history []model.DailyPerformance) model.SeasonalitySnapshot {
	if len(history) == 0 {
		return model.NeutralSeasonality()
	}

	var sums, counts [12]float64
	var total float64
	for _, d := range history {
		m := int(d.Date.Month()) - 1
		sums[m] += d.Occupancy
		counts[m]++
		total += d.Occupancy
	}
	overall := total / float64(len(history))
	if overall == 0 {
		return model.NeutralSeasonality()
	}

	snap := model.NeutralSeasonality()
	for m := 0; m < 12; m++ {
		if counts[m] > 0 {
			snap.MonthlyRatios[m] = round2((sums[m] / counts[m]) / overall)
		}
	}

	last := history[len(history)-1].Date
	snap.CurrentMonthRatio = snap.MonthlyRatios[int(last.Month())-1]
	snap.NextMonthRatio = snap.MonthlyRatios[int(nextMonth(last))-1]
	snap.CurrentSeason = b.classifySeason(snap.CurrentMonthRatio)
	snap.NextSeason = b.classifySeason(snap.NextMonthRatio)
	return snap
}

func (b *TrendContextBuilder) classifySeason(ratio float64) model.Season {
	switch {
	case ratio < b.th.SeasonLowRatio:
		return model.SeasonLow
	case ratio > b.th.SeasonHighRatio:
		return model.SeasonHigh
	default:
		return model.SeasonMid
	}
}

// CostPerGuestSeries derives a monthly cost-per-guest series by joining
// period cost totals with the matching revenue period's guest-nights.
// Months without guest-night data are skipped.
func CostPerGuestSeries(periods []model.RevenuePeriod, costs []model.PeriodCosts) []model.CostPerGuestPoint {
	guestsByPeriod := make(map[string]float64, len(periods))
	for _, p := range periods {
		guestsByPeriod[p.Period] = p.GuestNights
	}

	var series []model.CostPerGuestPoint
	for _, pc := range sortedCosts(costs) {
		guests := guestsByPeriod[pc.Period]
		if guests == 0 {
			continue
		}
		date, err := time.Parse("2006-01", pc.Period)
		if err != nil {
			continue
		}
		series = append(series, model.CostPerGuestPoint{
			Date:         date,
			CostPerGuest: AggregateSinglePeriod(pc).Total / guests,
		})
	}
	return series
}

func sortedByPeriod(periods []model.RevenuePeriod) []model.RevenuePeriod {
	out := make([]model.RevenuePeriod, len(periods))
	copy(out, periods)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

func sortedCosts(costs []model.PeriodCosts) []model.PeriodCosts {
	out := make([]model.PeriodCosts, len(costs))
	copy(out, costs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

func collect(periods []model.RevenuePeriod, field func(model.RevenuePeriod) float64) []float64 {
	out := make([]float64, 0, len(periods))
	for _, p := range periods {
		out = append(out, field(p))
	}
	return out
}
