package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hotelmind/backend/internal/repository"
)

// ExportHandler streams stored data as CSV downloads. Exports use the
// same period filters as the list endpoints.
type ExportHandler struct {
	costs    repository.CostRepository
	revenues repository.RevenueRepository
}

func NewExportHandler(costs repository.CostRepository, revenues repository.RevenueRepository) *ExportHandler {
	return &ExportHandler{costs: costs, revenues: revenues}
}

// ExportCostsCSV exports the itemized cost entries of a period range.
func (h *ExportHandler) ExportCostsCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	from, to := periodRange(r)
	periods, err := h.costs.ListByPeriod(ctx, propID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load costs")
		return
	}

	filename := fmt.Sprintf("hotelmind-costi-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	w.Write([]byte("Periodo,Categoria,Fornitore,Importo,Data\n"))
	for _, p := range periods {
		for _, rec := range p.Records {
			date := ""
			if rec.Date != nil {
				date = rec.Date.Format("2006-01-02")
			}
			w.Write([]byte(fmt.Sprintf("%s,%s,%s,%.2f,%s\n",
				rec.Period, rec.Category, csvField(rec.Supplier), rec.Amount, date)))
		}
	}
}

// ExportRevenueCSV exports the monthly revenue periods of a range.
func (h *ExportHandler) ExportRevenueCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	from, to := periodRange(r)
	periods, err := h.revenues.ListPeriods(ctx, propID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load revenue periods")
		return
	}

	filename := fmt.Sprintf("hotelmind-entrate-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	w.Write([]byte("Periodo,EntrateCamere,Occupazione,ADR,CamereVendute,Pernottamenti,EntrateFnB,EntrateExtra,Prenotazioni,CommissioniOTA\n"))
	for _, p := range periods {
		w.Write([]byte(fmt.Sprintf("%s,%.2f,%.1f,%.2f,%.0f,%.0f,%.2f,%.2f,%.0f,%.2f\n",
			p.Period, p.RoomRevenue, p.Occupancy, p.ADR, p.RoomsSold,
			p.GuestNights, p.FnBRevenue, p.AncillaryRevenue, p.Bookings, p.OTACommissions)))
	}
}

// csvField strips the characters that would break an unquoted CSV cell.
func csvField(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ',' || r == '\n' || r == '\r' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
