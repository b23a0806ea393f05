package handler

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hotelmind/backend/internal/analytics"
	"github.com/hotelmind/backend/internal/model"
	"github.com/hotelmind/backend/internal/repository"
)

var periodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// CostHandler handles itemized operating cost requests.
type CostHandler struct {
	repo repository.CostRepository
}

func NewCostHandler(repo repository.CostRepository) *CostHandler {
	return &CostHandler{repo: repo}
}

// Create records a single cost entry.
func (h *CostHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	var req model.CostRecord
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateCostRecord(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	req.BaseEntity = model.NewBaseEntity()
	req.PropertyID = propID

	if err := h.repo.Create(ctx, &req); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cost entry")
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// Import records a batch of cost entries in one transaction. Entries for
// an already-recorded (period, category, supplier) tuple overwrite the
// stored amount.
func (h *CostHandler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	var req []model.CostRecord
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req) == 0 {
		writeError(w, http.StatusBadRequest, "empty import")
		return
	}

	records := make([]*model.CostRecord, 0, len(req))
	for i := range req {
		if msg := validateCostRecord(&req[i]); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		req[i].BaseEntity = model.NewBaseEntity()
		req[i].PropertyID = propID
		records = append(records, &req[i])
	}

	if err := h.repo.CreateBatch(ctx, records); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to import cost entries")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"imported": len(records),
	})
}

// List returns cost entries filtered by period range and category.
func (h *CostHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	from, to := periodRange(r)
	filter := model.CostFilter{
		PropertyID: propID,
		FromPeriod: from,
		ToPeriod:   to,
	}
	if c := r.URL.Query().Get("category"); c != "" {
		filter.Categories = []model.CostCategory{model.CostCategory(c)}
	}

	pagination := model.Pagination{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 50),
	}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.PageSize < 1 || pagination.PageSize > 500 {
		pagination.PageSize = 50
	}

	records, total, err := h.repo.List(ctx, filter, pagination)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cost entries")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"voci":      records,
		"page":      pagination.Page,
		"page_size": pagination.PageSize,
		"total":     total,
	})
}

// Summary returns category totals over a period range.
func (h *CostHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	from, to := periodRange(r)
	periods, err := h.repo.ListByPeriod(ctx, propID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load costs")
		return
	}

	writeJSON(w, http.StatusOK, analytics.AggregateCosts(periods))
}

// Delete removes a single cost entry.
func (h *CostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := propertyID(r); !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cost id")
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete cost entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateCostRecord(c *model.CostRecord) string {
	if !periodRe.MatchString(c.Period) {
		return "periodo must be YYYY-MM"
	}
	if c.Amount < 0 {
		return "importo must be non-negative"
	}
	if c.Category == "" {
		c.Category = model.CostCategoryOther
	}
	return ""
}
