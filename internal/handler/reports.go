package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hotelmind/backend/internal/model"
	"github.com/hotelmind/backend/internal/repository"
)

// ReportHandler serves the executive summary and the snapshot history.
type ReportHandler struct {
	analysis  *AnalysisHandler
	snapshots repository.SnapshotRepository
}

func NewReportHandler(analysis *AnalysisHandler, snapshots repository.SnapshotRepository) *ReportHandler {
	return &ReportHandler{analysis: analysis, snapshots: snapshots}
}

// ExecutiveSummary returns the latest nightly snapshot when one exists,
// otherwise it runs the full pipeline on the spot. The `fresh` query
// parameter forces recomputation.
func (h *ReportHandler) ExecutiveSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	if r.URL.Query().Get("fresh") != "true" {
		snapshot, err := h.snapshots.GetLatest(ctx, propID)
		if err == nil && snapshot != nil {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"tipo":            "executive_summary",
				"generato":        snapshot.GeneratedAt.UTC().Format(time.RFC3339),
				"origine":         "snapshot",
				"kpi":             snapshot.KPIs,
				"contesto":        json.RawMessage(snapshot.Context),
				"raccomandazioni": json.RawMessage(snapshot.Recommendations),
				"insight":         json.RawMessage(snapshot.Insights),
			})
			return
		}
	}

	win, ok := h.analysis.window(w, r)
	if !ok {
		return
	}

	actx := h.analysis.buildContext(win)
	recs := h.analysis.recommends.GenerateRecommendations(win.Costs, win.Revenues, actx.KPIs, actx, win.Property.Profile)
	insights := h.analysis.insights.GenerateInsights(actx)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tipo":            "executive_summary",
		"generato":        time.Now().UTC().Format(time.RFC3339),
		"origine":         "live",
		"kpi":             actx.KPIs,
		"contesto":        actx,
		"raccomandazioni": recs,
		"insight":         insights,
	})
}

// History lists stored analysis snapshots, newest first.
func (h *ReportHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	pagination := model.Pagination{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 20),
	}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.PageSize < 1 || pagination.PageSize > 100 {
		pagination.PageSize = 20
	}

	snapshots, total, err := h.snapshots.List(ctx, propID, pagination)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list snapshots")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot":  snapshots,
		"page":      pagination.Page,
		"page_size": pagination.PageSize,
		"total":     total,
	})
}
