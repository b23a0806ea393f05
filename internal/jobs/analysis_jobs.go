package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hotelmind/backend/internal/analytics"
	"github.com/hotelmind/backend/internal/config"
	"github.com/hotelmind/backend/internal/insight"
	"github.com/hotelmind/backend/internal/model"
	"github.com/hotelmind/backend/internal/notification"
	"github.com/hotelmind/backend/internal/recommend"
	"github.com/hotelmind/backend/internal/repository"
)

// AnalysisRunner executes the scheduled analytics work: the nightly full
// pipeline run with snapshot persistence, the periodic threshold alert
// check, and snapshot retention pruning.
type AnalysisRunner struct {
	properties repository.PropertyRepository
	costs      repository.CostRepository
	revenues   repository.RevenueRepository
	snapshots  repository.SnapshotRepository
	notifier   *notification.Service
	kpis       *analytics.KPIEngine
	contexts   *analytics.TrendContextBuilder
	recommends *recommend.Engine
	insights   *insight.Engine
	cfg        config.AnalyticsConfig
	logger     *slog.Logger
}

// NewAnalysisRunner creates a runner over the shared engine thresholds.
func NewAnalysisRunner(
	properties repository.PropertyRepository,
	costs repository.CostRepository,
	revenues repository.RevenueRepository,
	snapshots repository.SnapshotRepository,
	notifier *notification.Service,
	th analytics.Thresholds,
	cfg config.AnalyticsConfig,
	logger *slog.Logger,
) *AnalysisRunner {
	return &AnalysisRunner{
		properties: properties,
		costs:      costs,
		revenues:   revenues,
		snapshots:  snapshots,
		notifier:   notifier,
		kpis:       analytics.NewKPIEngine(th),
		contexts:   analytics.NewTrendContextBuilder(th),
		recommends: recommend.NewEngine(th),
		insights:   insight.NewEngine(th),
		cfg:        cfg,
		logger:     logger,
	}
}

// RunNightlyAnalysis runs the full pipeline for every property and
// persists one snapshot each. A failing property is logged and skipped;
// one bad dataset must not starve the rest.
func (r *AnalysisRunner) RunNightlyAnalysis(ctx context.Context) error {
	properties, err := r.properties.List(ctx)
	if err != nil {
		return err
	}

	for _, property := range properties {
		if err := r.analyzeProperty(ctx, property); err != nil {
			r.logger.Error("nightly analysis failed",
				"property", property.Name, "error", err)
			continue
		}
		r.logger.Info("nightly analysis completed", "property", property.Name)
	}
	return nil
}

func (r *AnalysisRunner) analyzeProperty(ctx context.Context, property *model.Property) error {
	revenues, costs, daily, err := r.loadWindow(ctx, property.ID)
	if err != nil {
		return err
	}

	kpis, err := r.kpis.ComputeKPIs(costs, revenues, property.Profile)
	if err != nil {
		return err
	}

	actx := r.contexts.BuildContext(revenues, costs, daily, kpis, property.Profile)
	recs := r.recommends.GenerateRecommendations(costs, revenues, kpis, actx, property.Profile)
	insights := r.insights.GenerateInsights(actx)

	contextJSON, err := json.Marshal(actx)
	if err != nil {
		return err
	}
	recsJSON, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	insightsJSON, err := json.Marshal(insights)
	if err != nil {
		return err
	}

	snapshot := &model.AnalysisSnapshot{
		PropertyID:      property.ID,
		GeneratedAt:     time.Now().UTC(),
		KPIs:            kpis,
		Context:         contextJSON,
		Recommendations: recsJSON,
		Insights:        insightsJSON,
	}
	if err := r.snapshots.Save(ctx, snapshot); err != nil {
		return err
	}

	if property.Settings.AlertsEnabled {
		highAnomalies := 0
		for _, a := range actx.Anomalies {
			if a.Severity == model.SeverityHigh {
				highAnomalies++
			}
		}
		if err := r.notifier.SendAnalysisDigest(ctx, property.Name, len(recs), len(insights), highAnomalies); err != nil {
			r.logger.Warn("digest notification failed",
				"property", property.Name, "error", err)
		}
	}
	return nil
}

// RunAlertCheck evaluates the hard KPI limits for every property and
// pushes threshold and high-severity anomaly alerts.
func (r *AnalysisRunner) RunAlertCheck(ctx context.Context) error {
	properties, err := r.properties.List(ctx)
	if err != nil {
		return err
	}

	for _, property := range properties {
		if !property.Settings.AlertsEnabled {
			continue
		}

		revenues, costs, daily, err := r.loadWindow(ctx, property.ID)
		if err != nil {
			r.logger.Error("alert check failed",
				"property", property.Name, "error", err)
			continue
		}

		kpis, err := r.kpis.ComputeKPIs(costs, revenues, property.Profile)
		if err != nil {
			continue
		}
		actx := r.contexts.BuildContext(revenues, costs, daily, kpis, property.Profile)

		for _, alert := range r.recommends.Alerts(kpis, actx) {
			if err := r.notifier.SendThresholdAlert(ctx, property.Name, alert); err != nil {
				r.logger.Warn("threshold alert failed",
					"property", property.Name, "metric", alert.Metric, "error", err)
			}
		}
		for _, anomaly := range actx.Anomalies {
			if anomaly.Severity != model.SeverityHigh {
				continue
			}
			if err := r.notifier.SendAnomalyAlert(ctx, property.Name, anomaly); err != nil {
				r.logger.Warn("anomaly alert failed",
					"property", property.Name, "error", err)
			}
		}
		for _, rec := range r.recommends.GenerateRecommendations(costs, revenues, kpis, actx, property.Profile) {
			if rec.Priority != model.PriorityCritical {
				continue
			}
			if err := r.notifier.SendRecommendationAlert(ctx, property.Name, rec); err != nil {
				r.logger.Warn("recommendation alert failed",
					"property", property.Name, "rule", rec.ID, "error", err)
			}
		}
	}
	return nil
}

// RunSnapshotPrune deletes snapshots older than the retention window.
func (r *AnalysisRunner) RunSnapshotPrune(ctx context.Context) error {
	properties, err := r.properties.List(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-r.cfg.SnapshotRetention)
	for _, property := range properties {
		deleted, err := r.snapshots.DeleteOlderThan(ctx, property.ID, cutoff)
		if err != nil {
			r.logger.Error("snapshot prune failed",
				"property", property.Name, "error", err)
			continue
		}
		if deleted > 0 {
			r.logger.Info("snapshots pruned",
				"property", property.Name, "deleted", deleted)
		}
	}
	return nil
}

func (r *AnalysisRunner) loadWindow(ctx context.Context, propertyID uuid.UUID) ([]model.RevenuePeriod, []model.PeriodCosts, []model.DailyPerformance, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, -r.cfg.HistoryMonths, 0)
	fromPeriod := from.Format("2006-01")
	toPeriod := now.Format("2006-01")

	revenues, err := r.revenues.ListPeriods(ctx, propertyID, fromPeriod, toPeriod)
	if err != nil {
		return nil, nil, nil, err
	}
	costs, err := r.costs.ListByPeriod(ctx, propertyID, fromPeriod, toPeriod)
	if err != nil {
		return nil, nil, nil, err
	}
	daily, err := r.revenues.ListDaily(ctx, propertyID, model.DateRange{Start: from, End: now})
	if err != nil {
		return nil, nil, nil, err
	}
	return revenues, costs, daily, nil
}
