package model

// TrendDirection indicates how a metric is moving.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// SignificanceTier grades how meaningful a change is.
type SignificanceTier string

const (
	SignificanceLow    SignificanceTier = "low"
	SignificanceMedium SignificanceTier = "medium"
	SignificanceHigh   SignificanceTier = "high"
)

// TrendMetric compares the mean of the most recent three periods against
// the mean of the three before them.
type TrendMetric struct {
	Metric       string           `json:"metrica"`
	Direction    TrendDirection   `json:"direzione"`
	ChangePct    float64          `json:"variazionePct"`
	Significance SignificanceTier `json:"significativita"`
	RecentMean   float64          `json:"mediaRecente"`
	PreviousMean float64          `json:"mediaPrecedente"`
}

// NeutralTrend returns the zero-change trend used when fewer than six
// periods are available.
func NeutralTrend(metric string) TrendMetric {
	return TrendMetric{
		Metric:       metric,
		Direction:    TrendStable,
		Significance: SignificanceLow,
	}
}

// BenchmarkGap expresses how far a KPI sits from its star-tier benchmark.
type BenchmarkGap struct {
	Metric    string  `json:"metrica"`
	Actual    float64 `json:"valore"`
	Benchmark float64 `json:"benchmark"`
	Gap       float64 `json:"gap"` // (actual - benchmark) / benchmark
}

// Season labels a month relative to the property's typical demand.
type Season string

const (
	SeasonLow  Season = "low"
	SeasonMid  Season = "mid"
	SeasonHigh Season = "high"
)

// SeasonalitySnapshot describes where the current and next calendar month
// sit relative to the property's average occupancy.
type SeasonalitySnapshot struct {
	CurrentMonthRatio float64 `json:"rapportoMeseCorrente"`
	NextMonthRatio    float64 `json:"rapportoMeseProssimo"`
	CurrentSeason     Season  `json:"stagioneCorrente"`
	NextSeason        Season  `json:"stagioneProssima"`
	MonthlyRatios     [12]float64 `json:"rapportiMensili"`
}

// NeutralSeasonality is the degraded snapshot when no daily history exists.
func NeutralSeasonality() SeasonalitySnapshot {
	s := SeasonalitySnapshot{
		CurrentMonthRatio: 1,
		NextMonthRatio:    1,
		CurrentSeason:     SeasonMid,
		NextSeason:        SeasonMid,
	}
	for i := range s.MonthlyRatios {
		s.MonthlyRatios[i] = 1
	}
	return s
}

// AnalysisContext is the aggregated decision-support context consumed by
// the recommendation and reasoning engines. Each section degrades
// independently to its neutral default; a partial context is always
// preferable to none.
type AnalysisContext struct {
	Profile     PropertyProfile        `json:"profilo"`
	KPIs        KPISet                 `json:"kpi"`
	Trends      map[string]TrendMetric `json:"tendenze"`
	Anomalies   []CostAnomaly          `json:"anomalie"`
	Benchmarks  []BenchmarkGap         `json:"benchmark"`
	Seasonality SeasonalitySnapshot    `json:"stagionalita"`
	Periods     int                    `json:"periodiAnalizzati"`
}

// Trend returns the named trend or the neutral default.
func (c AnalysisContext) Trend(metric string) TrendMetric {
	if t, ok := c.Trends[metric]; ok {
		return t
	}
	return NeutralTrend(metric)
}

// BenchmarkFor returns the gap for a metric, if computed.
func (c AnalysisContext) BenchmarkFor(metric string) (BenchmarkGap, bool) {
	for _, g := range c.Benchmarks {
		if g.Metric == metric {
			return g, true
		}
	}
	return BenchmarkGap{}, false
}
