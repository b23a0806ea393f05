package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/hotelmind/backend/internal/model"
)

// CostAnomalyDetector flags cost-per-guest observations that sit too far
// above the series mean. Only positive deviations are reportable: spending
// less than usual is not an operational problem.
type CostAnomalyDetector struct {
	th Thresholds
}

// NewCostAnomalyDetector creates a detector with the given thresholds.
func NewCostAnomalyDetector(th Thresholds) *CostAnomalyDetector {
	return &CostAnomalyDetector{th: th}
}

// DetectAnomalies scores every point of the series against the population
// mean and standard deviation. A series with no variation produces no
// anomalies. Results are ordered high severity first, then by descending
// z-score within each tier.
func (d *CostAnomalyDetector) DetectAnomalies(series []model.CostPerGuestPoint) []model.CostAnomaly {
	if len(series) == 0 {
		return nil
	}

	mean, stdDev := meanStdDev(series)
	if stdDev == 0 {
		return nil
	}

	var anomalies []model.CostAnomaly
	for _, p := range series {
		z := (p.CostPerGuest - mean) / stdDev
		if z < d.th.AnomalyMediumZ {
			continue
		}

		severity := model.SeverityMedium
		if z >= d.th.AnomalyHighZ {
			severity = model.SeverityHigh
		}

		deviationPct := safeDiv(p.CostPerGuest-mean, mean) * 100
		anomalies = append(anomalies, model.CostAnomaly{
			Date:         p.Date,
			CostPerGuest: round2(p.CostPerGuest),
			Expected:     round2(mean),
			ZScore:       round2(z),
			DeviationPct: round2(deviationPct),
			Severity:     severity,
			Suggestion:   costSuggestion(deviationPct),
		})
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		if anomalies[i].Severity != anomalies[j].Severity {
			return anomalies[i].Severity == model.SeverityHigh
		}
		return anomalies[i].ZScore > anomalies[j].ZScore
	})

	return anomalies
}

// costSuggestion returns the tiered descriptive note attached to an
// anomaly. It plays no role in ranking.
func costSuggestion(deviationPct float64) string {
	switch {
	case deviationPct > 50:
		return fmt.Sprintf("Costo per ospite superiore del %.0f%% alla media: verificare subito fatture fornitori e sprechi di reparto.", deviationPct)
	case deviationPct > 30:
		return fmt.Sprintf("Costo per ospite superiore del %.0f%% alla media: controllare i consumi del periodo.", deviationPct)
	default:
		return "Scostamento sopra la norma: tenere il periodo sotto osservazione."
	}
}

// meanStdDev computes the mean and population standard deviation.
func meanStdDev(series []model.CostPerGuestPoint) (float64, float64) {
	var sum float64
	for _, p := range series {
		sum += p.CostPerGuest
	}
	mean := sum / float64(len(series))

	var sq float64
	for _, p := range series {
		d := p.CostPerGuest - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(series)))
}
