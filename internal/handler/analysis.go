package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hotelmind/backend/internal/analytics"
	"github.com/hotelmind/backend/internal/config"
	"github.com/hotelmind/backend/internal/insight"
	"github.com/hotelmind/backend/internal/model"
	"github.com/hotelmind/backend/internal/recommend"
)

// AnalysisHandler serves the derived analytics: KPIs, anomalies,
// forecasts, the trend context, recommendations and insights. Every
// endpoint recomputes from the stored window on request; the nightly
// snapshots exist only so the dashboard has a warm result.
type AnalysisHandler struct {
	loader     *WindowLoader
	kpis       *analytics.KPIEngine
	detector   *analytics.CostAnomalyDetector
	forecaster *analytics.DemandForecaster
	contexts   *analytics.TrendContextBuilder
	recommends *recommend.Engine
	insights   *insight.Engine
	cfg        config.AnalyticsConfig
}

func NewAnalysisHandler(loader *WindowLoader, th analytics.Thresholds, cfg config.AnalyticsConfig) *AnalysisHandler {
	return &AnalysisHandler{
		loader:     loader,
		kpis:       analytics.NewKPIEngine(th),
		detector:   analytics.NewCostAnomalyDetector(th),
		forecaster: analytics.NewDemandForecaster(th),
		contexts:   analytics.NewTrendContextBuilder(th),
		recommends: recommend.NewEngine(th),
		insights:   insight.NewEngine(th),
		cfg:        cfg,
	}
}

// KPIs returns the canonical metric snapshot for the current window.
func (h *AnalysisHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	win, ok := h.window(w, r)
	if !ok {
		return
	}

	kpis, err := h.kpis.ComputeKPIs(win.Costs, win.Revenues, win.Property.Profile)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"kpi":               kpis,
		"periodiAnalizzati": len(win.Revenues),
	})
}

// Anomalies flags cost-per-guest outliers over the stored window.
func (h *AnalysisHandler) Anomalies(w http.ResponseWriter, r *http.Request) {
	win, ok := h.window(w, r)
	if !ok {
		return
	}

	series := analytics.CostPerGuestSeries(win.Revenues, win.Costs)
	anomalies := h.detector.DetectAnomalies(series)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"anomalie":     anomalies,
		"osservazioni": len(series),
	})
}

// DetectAnomalies runs the detector over a caller-supplied series, for
// ad-hoc what-if checks that bypass the stored data.
func (h *AnalysisHandler) DetectAnomalies(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Series []model.CostPerGuestPoint `json:"serie"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"anomalie":     h.detector.DetectAnomalies(req.Series),
		"osservazioni": len(req.Series),
	})
}

// Forecast predicts upcoming demand from the stored daily history. The
// horizon is capped by configuration.
func (h *AnalysisHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	win, ok := h.window(w, r)
	if !ok {
		return
	}

	days := queryInt(r, "days", h.cfg.ForecastDaysDefault)
	if days < 1 {
		days = h.cfg.ForecastDaysDefault
	}
	if days > h.cfg.ForecastDaysMax {
		days = h.cfg.ForecastDaysMax
	}

	writeJSON(w, http.StatusOK, h.forecaster.Forecast(win.Daily, days))
}

// GenerateForecast runs the forecaster over a caller-supplied history.
func (h *AnalysisHandler) GenerateForecast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		History []model.DailyPerformance `json:"storico"`
		Days    int                      `json:"giorni"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	days := req.Days
	if days < 1 {
		days = h.cfg.ForecastDaysDefault
	}
	if days > h.cfg.ForecastDaysMax {
		days = h.cfg.ForecastDaysMax
	}

	writeJSON(w, http.StatusOK, h.forecaster.Forecast(req.History, days))
}

// Context returns the full aggregated decision-support context.
func (h *AnalysisHandler) Context(w http.ResponseWriter, r *http.Request) {
	win, ok := h.window(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.buildContext(win))
}

// Recommendations returns the ranked action list for the current window.
func (h *AnalysisHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	win, ok := h.window(w, r)
	if !ok {
		return
	}

	actx := h.buildContext(win)
	recs := h.recommends.GenerateRecommendations(win.Costs, win.Revenues, actx.KPIs, actx, win.Property.Profile)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"raccomandazioni": recs,
	})
}

// Alerts returns the hard-limit threshold alerts for the current window.
func (h *AnalysisHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	win, ok := h.window(w, r)
	if !ok {
		return
	}

	actx := h.buildContext(win)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"allarmi": h.recommends.Alerts(actx.KPIs, actx),
	})
}

// Insights returns the prioritized narrative findings.
func (h *AnalysisHandler) Insights(w http.ResponseWriter, r *http.Request) {
	win, ok := h.window(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"insight": h.insights.GenerateInsights(h.buildContext(win)),
	})
}

func (h *AnalysisHandler) window(w http.ResponseWriter, r *http.Request) (*analysisWindow, bool) {
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return nil, false
	}

	win, err := h.loader.load(r.Context(), propID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load analysis window")
		return nil, false
	}
	return win, true
}

func (h *AnalysisHandler) buildContext(win *analysisWindow) model.AnalysisContext {
	kpis, err := h.kpis.ComputeKPIs(win.Costs, win.Revenues, win.Property.Profile)
	if err != nil {
		kpis = model.KPISet{}
	}
	return h.contexts.BuildContext(win.Revenues, win.Costs, win.Daily, kpis, win.Property.Profile)
}
