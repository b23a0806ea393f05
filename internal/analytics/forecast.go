package analytics

import (
	"time"

	"github.com/hotelmind/backend/internal/model"
)

// DemandForecaster produces a short-horizon daily forecast of revenue and
// occupancy from the property's daily history. The model is closed-form:
// a 7-day moving average, its recent drift, and day-of-week coefficients.
// The forecast start date derives from the last historical point, never
// from the wall clock, so identical inputs always produce identical
// output.
type DemandForecaster struct {
	th Thresholds
}

// NewDemandForecaster creates a forecaster with the given thresholds.
func NewDemandForecaster(th Thresholds) *DemandForecaster {
	return &DemandForecaster{th: th}
}

const maWindow = 7

// Forecast predicts daysAhead future days. An empty history yields an
// empty forecast with all-zero stats rather than an error.
func (f *DemandForecaster) Forecast(history []model.DailyPerformance, daysAhead int) model.Forecast {
	if len(history) == 0 || daysAhead <= 0 {
		return model.Forecast{}
	}

	revMA := movingAverage(history, func(d model.DailyPerformance) float64 { return d.Revenue })
	occMA := movingAverage(history, func(d model.DailyPerformance) float64 { return d.Occupancy })

	revTrend := maTrend(revMA)
	occTrend := maTrend(occMA)

	revCoeff := weekdayCoefficients(history, func(d model.DailyPerformance) float64 { return d.Revenue })
	occCoeff := weekdayCoefficients(history, func(d model.DailyPerformance) float64 { return d.Occupancy })

	lastRevMA := revMA[len(revMA)-1]
	lastOccMA := occMA[len(occMA)-1]
	start := history[len(history)-1].Date.AddDate(0, 0, 1)

	points := make([]model.ForecastPoint, 0, daysAhead)
	for i := 0; i < daysAhead; i++ {
		date := start.AddDate(0, 0, i)
		dow := int(date.Weekday())

		revenue := (lastRevMA + revTrend*float64(i)/maWindow) * revCoeff[dow]
		occupancy := (lastOccMA + occTrend*float64(i)/maWindow) * occCoeff[dow]

		confidence := 1 - (float64(i)/float64(daysAhead))*f.th.ConfidenceDecay
		if confidence < f.th.ConfidenceFloor {
			confidence = f.th.ConfidenceFloor
		}

		points = append(points, model.ForecastPoint{
			Date:       date,
			Revenue:    round2(clamp(revenue, 0, revenue)),
			Occupancy:  round2(clamp(occupancy, 0, 100)),
			Confidence: round2(confidence),
		})
	}

	return model.Forecast{Points: points, Stats: forecastStats(points)}
}

// movingAverage computes the trailing moving average of a field; early
// points average over the shorter available window.
func movingAverage(history []model.DailyPerformance, field func(model.DailyPerformance) float64) []float64 {
	out := make([]float64, len(history))
	var sum float64
	for i := range history {
		sum += field(history[i])
		if i >= maWindow {
			sum -= field(history[i-maWindow])
		}
		window := i + 1
		if window > maWindow {
			window = maWindow
		}
		out[i] = sum / float64(window)
	}
	return out
}

// maTrend is the difference between the mean of the last 7 MA values and
// the mean of the 7 before them; zero when history is too short.
func maTrend(ma []float64) float64 {
	if len(ma) < 2*maWindow {
		return 0
	}
	recent := mean(ma[len(ma)-maWindow:])
	previous := mean(ma[len(ma)-2*maWindow : len(ma)-maWindow])
	return recent - previous
}

// weekdayCoefficients returns the per-weekday seasonality ratio
// (weekday mean / overall mean), defaulting to 1 where no history exists.
func weekdayCoefficients(history []model.DailyPerformance, field func(model.DailyPerformance) float64) [7]float64 {
	var sums, counts [7]float64
	var total float64
	for _, d := range history {
		dow := int(d.Date.Weekday())
		sums[dow] += field(d)
		counts[dow]++
		total += field(d)
	}
	overall := total / float64(len(history))

	var coeff [7]float64
	for i := range coeff {
		coeff[i] = 1
		if counts[i] > 0 && overall > 0 {
			coeff[i] = (sums[i] / counts[i]) / overall
		}
	}
	return coeff
}

func forecastStats(points []model.ForecastPoint) model.ForecastStats {
	if len(points) == 0 {
		return model.ForecastStats{}
	}

	stats := model.ForecastStats{
		MinRevenue: points[0].Revenue,
		MaxRevenue: points[0].Revenue,
	}
	var occSum float64
	for _, p := range points {
		stats.TotalRevenue += p.Revenue
		occSum += p.Occupancy
		if p.Revenue < stats.MinRevenue {
			stats.MinRevenue = p.Revenue
		}
		if p.Revenue > stats.MaxRevenue {
			stats.MaxRevenue = p.Revenue
		}
	}

	meanRevenue := stats.TotalRevenue / float64(len(points))
	stats.AvgOccupancy = round2(occSum / float64(len(points)))
	stats.TotalRevenue = round2(stats.TotalRevenue)
	stats.ConfidenceLow = round2(meanRevenue * 0.9)
	stats.ConfidenceHigh = round2(meanRevenue * 1.1)
	return stats
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// nextMonth returns the calendar month after t's month.
func nextMonth(t time.Time) time.Month {
	m := t.Month() + 1
	if m > time.December {
		m = time.January
	}
	return m
}
