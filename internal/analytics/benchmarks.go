package analytics

import "github.com/hotelmind/backend/internal/model"

// Benchmark holds reference KPI values for a star tier.
type Benchmark struct {
	ADR       float64
	Occupancy float64
	RevPAR    float64
	GOPPAR    float64
}

// starBenchmarks indexes reference values by star rating. Tiers outside
// 3..5 fall back to the 3-star row.
var starBenchmarks = map[int]Benchmark{
	3: {ADR: 85, Occupancy: 65, RevPAR: 55, GOPPAR: 22},
	4: {ADR: 130, Occupancy: 70, RevPAR: 91, GOPPAR: 38},
	5: {ADR: 240, Occupancy: 72, RevPAR: 172, GOPPAR: 75},
}

// BenchmarkForStars returns the benchmark row for a star rating.
func BenchmarkForStars(stars int) Benchmark {
	if b, ok := starBenchmarks[stars]; ok {
		return b
	}
	return starBenchmarks[3]
}

// BenchmarkGaps compares derived KPIs against the star-tier benchmarks.
// Metrics that could not be derived (zero value) produce no gap entry.
func BenchmarkGaps(kpis model.KPISet, stars int) []model.BenchmarkGap {
	b := BenchmarkForStars(stars)

	var gaps []model.BenchmarkGap
	add := func(metric string, actual, bench float64) {
		if actual == 0 || bench == 0 {
			return
		}
		gaps = append(gaps, model.BenchmarkGap{
			Metric:    metric,
			Actual:    actual,
			Benchmark: bench,
			Gap:       round2((actual - bench) / bench),
		})
	}

	add("adr", kpis.ADR, b.ADR)
	add("occupazione", kpis.Occupancy, b.Occupancy)
	add("revpar", kpis.RevPAR, b.RevPAR)
	add("goppar", kpis.GOPPAR, b.GOPPAR)
	return gaps
}
