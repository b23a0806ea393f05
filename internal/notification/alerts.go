package notification

import (
	"context"
	"fmt"

	"github.com/hotelmind/backend/internal/model"
)

// SendAnomalyAlert sends a cost-per-guest anomaly alert.
func (s *Service) SendAnomalyAlert(ctx context.Context, property string, anomaly model.CostAnomaly) error {
	return s.Send(ctx, Message{
		EventType: EventAnomalyDetected,
		Title:     fmt.Sprintf("Cost Anomaly Detected: %s", property),
		Body: fmt.Sprintf("Unusual cost per guest in %s. Observed %.2f vs expected %.2f (%.1f%% deviation).",
			anomaly.Date.Format("2006-01"), anomaly.CostPerGuest, anomaly.Expected, anomaly.DeviationPct),
		Severity: string(anomaly.Severity),
		Data: map[string]any{
			"Period":         anomaly.Date.Format("2006-01"),
			"Cost Per Guest": fmt.Sprintf("%.2f", anomaly.CostPerGuest),
			"Expected":       fmt.Sprintf("%.2f", anomaly.Expected),
			"Deviation":      fmt.Sprintf("%.1f%%", anomaly.DeviationPct),
		},
	})
}

// SendThresholdAlert sends a hard-limit KPI alert.
func (s *Service) SendThresholdAlert(ctx context.Context, property string, alert model.ThresholdAlert) error {
	return s.Send(ctx, Message{
		EventType: EventThresholdAlert,
		Title:     fmt.Sprintf("%s: %s", property, alert.Title),
		Body:      alert.Message,
		Severity:  string(alert.Severity),
		Data: map[string]any{
			"Metric":    alert.Metric,
			"Value":     fmt.Sprintf("%.2f", alert.Value),
			"Threshold": fmt.Sprintf("%.2f", alert.Threshold),
		},
	})
}

// SendRecommendationAlert notifies about a new high-priority recommendation.
func (s *Service) SendRecommendationAlert(ctx context.Context, property string, rec model.Recommendation) error {
	return s.Send(ctx, Message{
		EventType: EventRecommendationNew,
		Title:     fmt.Sprintf("%s: %s", property, rec.Title),
		Body:      rec.Description,
		Severity:  string(prioritySeverity(rec.Priority)),
		Data: map[string]any{
			"Category":         string(rec.Category),
			"Priority":         string(rec.Priority),
			"Estimated Impact": fmt.Sprintf("%.2f/mo", rec.EstimatedImpact),
		},
	})
}

// prioritySeverity maps a recommendation priority tier onto the alert
// severity scale used by the delivery channels.
func prioritySeverity(p model.Priority) model.Severity {
	switch p {
	case model.PriorityCritical:
		return model.SeverityCritical
	case model.PriorityHigh:
		return model.SeverityHigh
	case model.PriorityMedium:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

// SendAnalysisDigest summarizes a completed nightly analysis run.
func (s *Service) SendAnalysisDigest(ctx context.Context, property string, recommendations, insights, anomalies int) error {
	return s.Send(ctx, Message{
		EventType: EventAnalysisCompleted,
		Title:     fmt.Sprintf("Nightly Analysis Completed: %s", property),
		Body: fmt.Sprintf("Analysis run produced %d recommendations, %d insights and flagged %d cost anomalies.",
			recommendations, insights, anomalies),
		Severity: "low",
		Data: map[string]any{
			"Recommendations": recommendations,
			"Insights":        insights,
			"Anomalies":       anomalies,
		},
	})
}
