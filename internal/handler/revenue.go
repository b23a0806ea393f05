package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hotelmind/backend/internal/model"
	"github.com/hotelmind/backend/internal/repository"
)

// RevenueHandler handles monthly revenue and daily performance requests.
type RevenueHandler struct {
	repo repository.RevenueRepository
}

func NewRevenueHandler(repo repository.RevenueRepository) *RevenueHandler {
	return &RevenueHandler{repo: repo}
}

// UpsertPeriod stores or replaces one month of operating performance.
func (h *RevenueHandler) UpsertPeriod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	var req model.RevenuePeriod
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateRevenuePeriod(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	req.PropertyID = propID

	if err := h.repo.Upsert(ctx, &req); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save revenue period")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// Import stores a batch of monthly periods, replacing existing months.
func (h *RevenueHandler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	var req []model.RevenuePeriod
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req) == 0 {
		writeError(w, http.StatusBadRequest, "empty import")
		return
	}

	periods := make([]*model.RevenuePeriod, 0, len(req))
	for i := range req {
		if msg := validateRevenuePeriod(&req[i]); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		req[i].PropertyID = propID
		periods = append(periods, &req[i])
	}

	if err := h.repo.UpsertBatch(ctx, periods); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to import revenue periods")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"imported": len(periods),
	})
}

// ListPeriods returns the stored monthly periods in a range.
func (h *RevenueHandler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	from, to := periodRange(r)
	periods, err := h.repo.ListPeriods(ctx, propID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list revenue periods")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"periodi": periods,
	})
}

// ImportDaily stores a batch of daily performance observations used by
// the demand forecaster and the seasonality analysis.
func (h *RevenueHandler) ImportDaily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	var req []model.DailyPerformance
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req) == 0 {
		writeError(w, http.StatusBadRequest, "empty import")
		return
	}
	for _, d := range req {
		if d.Date.IsZero() {
			writeError(w, http.StatusBadRequest, "data is required on every entry")
			return
		}
	}

	if err := h.repo.UpsertDaily(ctx, propID, req); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to import daily history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"imported": len(req),
	})
}

// DeletePeriod removes one stored month.
func (h *RevenueHandler) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	period := chi.URLParam(r, "period")
	if !periodRe.MatchString(period) {
		writeError(w, http.StatusBadRequest, "periodo must be YYYY-MM")
		return
	}

	if err := h.repo.DeletePeriod(ctx, propID, period); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete revenue period")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateRevenuePeriod(p *model.RevenuePeriod) string {
	if !periodRe.MatchString(p.Period) {
		return "periodo must be YYYY-MM"
	}
	if p.Occupancy < 0 || p.Occupancy > 100 {
		return "occupazione must be within [0,100]"
	}
	if p.RoomRevenue < 0 || p.ADR < 0 || p.RoomsSold < 0 || p.GuestNights < 0 {
		return "monetary and count fields must be non-negative"
	}
	return ""
}
