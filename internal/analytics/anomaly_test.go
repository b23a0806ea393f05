package analytics

import (
	"testing"
	"time"

	"github.com/hotelmind/backend/internal/model"
)

func series(values ...float64) []model.CostPerGuestPoint {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := make([]model.CostPerGuestPoint, len(values))
	for i, v := range values {
		pts[i] = model.CostPerGuestPoint{Date: base.AddDate(0, i, 0), CostPerGuest: v}
	}
	return pts
}

func TestDetectAnomalies_ConstantSeriesHasNone(t *testing.T) {
	d := NewCostAnomalyDetector(DefaultThresholds())
	if got := d.DetectAnomalies(series(12, 12, 12, 12, 12)); len(got) != 0 {
		t.Errorf("constant series: got %d anomalies, want 0", len(got))
	}
}

func TestDetectAnomalies_EmptySeries(t *testing.T) {
	d := NewCostAnomalyDetector(DefaultThresholds())
	if got := d.DetectAnomalies(nil); got != nil {
		t.Errorf("empty series: got %v, want nil", got)
	}
}

func TestDetectAnomalies_SpikeOnLowVarianceBaseline(t *testing.T) {
	d := NewCostAnomalyDetector(DefaultThresholds())

	got := d.DetectAnomalies(series(10, 10, 10, 10, 50))
	if len(got) != 1 {
		t.Fatalf("got %d anomalies, want 1", len(got))
	}
	if got[0].ZScore < 2 {
		t.Errorf("z-score = %v, want >= 2", got[0].ZScore)
	}
	if got[0].Severity != model.SeverityMedium && got[0].Severity != model.SeverityHigh {
		t.Errorf("severity = %v, want medium or high", got[0].Severity)
	}
	if got[0].Suggestion == "" {
		t.Error("expected a textual suggestion")
	}
}

func TestDetectAnomalies_NegativeDeviationsNotReported(t *testing.T) {
	d := NewCostAnomalyDetector(DefaultThresholds())

	// The dip is as extreme as a spike would be, but costs below the
	// mean are not an operational problem.
	got := d.DetectAnomalies(series(50, 50, 50, 50, 10))
	for _, a := range got {
		if a.ZScore < 0 {
			t.Errorf("negative z-score %v reported", a.ZScore)
		}
	}
}

func TestDetectAnomalies_Ordering(t *testing.T) {
	d := NewCostAnomalyDetector(DefaultThresholds())

	// A baseline with two reportable spikes of different magnitude.
	got := d.DetectAnomalies(series(10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 30, 45))
	if len(got) < 2 {
		t.Fatalf("got %d anomalies, want at least 2", len(got))
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.Severity == model.SeverityMedium && cur.Severity == model.SeverityHigh {
			t.Errorf("high severity sorted after medium at index %d", i)
		}
		if prev.Severity == cur.Severity && prev.ZScore < cur.ZScore {
			t.Errorf("z-scores not descending within tier at index %d", i)
		}
	}
}
