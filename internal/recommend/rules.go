// Package recommend implements the rule-based recommendation engine: a
// fixed catalog of independent threshold checks over KPIs, trends and
// benchmark gaps, each emitting one explainable recommendation with its
// own proportional impact estimate.
package recommend

import (
	"fmt"
	"math"

	"github.com/hotelmind/backend/internal/analytics"
	"github.com/hotelmind/backend/internal/model"
)

// Input carries everything a rule may inspect. Rules are pure: they read
// the input and either return a recommendation or nil.
type Input struct {
	Costs    model.CostTotals
	Revenues []model.RevenuePeriod
	KPIs     model.KPISet
	Context  model.AnalysisContext
	Profile  model.PropertyProfile
}

// availableRoomNights is the monthly room-night capacity used by the
// proportional impact formulas.
func (in Input) availableRoomNights() float64 {
	return float64(in.Profile.TotalRooms) * 30
}

// meanMonthlyRevenue averages total revenue across the supplied periods.
func (in Input) meanMonthlyRevenue() float64 {
	if len(in.Revenues) == 0 {
		return 0
	}
	var sum float64
	for _, p := range in.Revenues {
		sum += p.TotalRevenue()
	}
	return sum / float64(len(in.Revenues))
}

// Rule is one entry of the catalog. Evaluation order is the catalog
// order and is part of the contract: ties after sorting preserve it.
type Rule struct {
	ID       string
	Evaluate func(in Input, th analytics.Thresholds) *model.Recommendation
}

// Catalog returns the fixed, ordered rule catalog.
func Catalog() []Rule {
	return []Rule{
		{ID: "revpar-sotto-benchmark", Evaluate: ruleRevPARBenchmark},
		{ID: "rapporto-adr-occupazione", Evaluate: ruleADROccupancyBand},
		{ID: "ricavi-ancillari-deboli", Evaluate: ruleAncillaryRatio},
		{ID: "goppar-sotto-benchmark", Evaluate: ruleGOPPARBenchmark},
		{ID: "cpor-eccessivo", Evaluate: ruleCPORShare},
		{ID: "cac-fuori-banda", Evaluate: ruleCACBand},
		{ID: "margine-gop-basso", Evaluate: ruleGOPMargin},
		{ID: "oscillazione-occupazione", Evaluate: ruleOccupancySwing},
	}
}

func ruleRevPARBenchmark(in Input, th analytics.Thresholds) *model.Recommendation {
	gap, ok := in.Context.BenchmarkFor("revpar")
	if !ok || in.KPIs.RevPAR >= gap.Benchmark*th.RevPARBenchmarkFloor {
		return nil
	}

	priority := model.PriorityHigh
	if in.KPIs.RevPAR < gap.Benchmark*0.5 {
		priority = model.PriorityCritical
	}

	// A quarter of the benchmark shortfall, spread over monthly capacity.
	impact := (gap.Benchmark - in.KPIs.RevPAR) * in.availableRoomNights() * 0.25

	return &model.Recommendation{
		ID:       "revpar-sotto-benchmark",
		Category: model.RecCategoryPricing,
		Title:    "RevPAR molto sotto il benchmark di categoria",
		Description: fmt.Sprintf("Il RevPAR attuale (%.2f) e inferiore al %.0f%% del benchmark per la categoria (%.2f).",
			in.KPIs.RevPAR, th.RevPARBenchmarkFloor*100, gap.Benchmark),
		EstimatedImpact: round2(impact),
		Difficulty:      model.DifficultyMedium,
		Priority:        priority,
		Actions: []string{
			"Rivedere la strategia tariffaria per i prossimi 60 giorni",
			"Confrontare le tariffe con i competitor diretti",
			"Attivare promozioni mirate sui giorni a bassa occupazione",
		},
		Evidence: []string{
			fmt.Sprintf("RevPAR %.2f contro benchmark %.2f (gap %.0f%%)", in.KPIs.RevPAR, gap.Benchmark, gap.Gap*100),
		},
	}
}

func ruleADROccupancyBand(in Input, th analytics.Thresholds) *model.Recommendation {
	if in.KPIs.ADR == 0 || in.KPIs.Occupancy == 0 {
		return nil
	}
	ratio := in.KPIs.ADR / in.KPIs.Occupancy * 100
	if ratio >= th.ADROccBandLow && ratio <= th.ADROccBandHigh {
		return nil
	}

	// Alignment toward the band is worth about 5% of rate on sold rooms.
	impact := in.KPIs.ADR * 0.05 * in.availableRoomNights() * in.KPIs.Occupancy / 100

	if ratio < th.ADROccBandLow {
		return &model.Recommendation{
			ID:              "rapporto-adr-occupazione",
			Category:        model.RecCategoryPricing,
			Title:           "Tariffa media bassa rispetto alla domanda",
			Description:     fmt.Sprintf("Con occupazione al %.1f%% l'ADR di %.2f indica margine per un incremento tariffario.", in.KPIs.Occupancy, in.KPIs.ADR),
			EstimatedImpact: round2(impact),
			Difficulty:      model.DifficultyLow,
			Priority:        model.PriorityMedium,
			Actions: []string{
				"Aumentare gradualmente le tariffe nei periodi di alta domanda",
				"Introdurre tariffe differenziate per tipologia di camera",
			},
			Evidence: []string{fmt.Sprintf("Rapporto ADR/occupazione %.0f, sotto la banda %.0f-%.0f", ratio, th.ADROccBandLow, th.ADROccBandHigh)},
		}
	}

	return &model.Recommendation{
		ID:              "rapporto-adr-occupazione",
		Category:        model.RecCategoryOccupancy,
		Title:           "Tariffa media alta con occupazione debole",
		Description:     fmt.Sprintf("L'ADR di %.2f non e sostenuto dall'occupazione al %.1f%%: il posizionamento prezzo rischia di frenare le vendite.", in.KPIs.ADR, in.KPIs.Occupancy),
		EstimatedImpact: round2(impact),
		Difficulty:      model.DifficultyMedium,
		Priority:        model.PriorityHigh,
		Actions: []string{
			"Testare riduzioni tariffarie sui canali a minor visibilita",
			"Rafforzare le politiche di cancellazione flessibile",
		},
		Evidence: []string{fmt.Sprintf("Rapporto ADR/occupazione %.0f, sopra la banda %.0f-%.0f", ratio, th.ADROccBandLow, th.ADROccBandHigh)},
	}
}

func ruleAncillaryRatio(in Input, th analytics.Thresholds) *model.Recommendation {
	if in.KPIs.RevPAR == 0 || in.KPIs.TRevPAR == 0 {
		return nil
	}
	ratio := in.KPIs.TRevPAR / in.KPIs.RevPAR
	if ratio >= th.AncillaryRatioFloor {
		return nil
	}

	// Closing the ancillary gap is worth 10% of RevPAR on capacity.
	impact := in.KPIs.RevPAR * 0.1 * in.availableRoomNights()

	return &model.Recommendation{
		ID:              "ricavi-ancillari-deboli",
		Category:        model.RecCategoryAncillary,
		Title:           "Ricavi extra camera quasi assenti",
		Description:     fmt.Sprintf("Il TRevPAR supera il RevPAR solo del %.0f%%: F&B e servizi extra contribuiscono poco al fatturato.", (ratio-1)*100),
		EstimatedImpact: round2(impact),
		Difficulty:      model.DifficultyMedium,
		Priority:        model.PriorityMedium,
		Actions: []string{
			"Proporre pacchetti colazione e mezza pensione in fase di prenotazione",
			"Introdurre upsell automatici pre-arrivo",
		},
		Evidence: []string{fmt.Sprintf("TRevPAR/RevPAR %.2f, sotto la soglia %.1f", ratio, th.AncillaryRatioFloor)},
	}
}

func ruleGOPPARBenchmark(in Input, th analytics.Thresholds) *model.Recommendation {
	gap, ok := in.Context.BenchmarkFor("goppar")
	if !ok || in.KPIs.GOPPAR >= gap.Benchmark*th.GOPPARBenchmarkFloor {
		return nil
	}

	// Thirty percent of the per-room-night profit shortfall on capacity.
	impact := (gap.Benchmark - in.KPIs.GOPPAR) * in.availableRoomNights() * 0.3

	return &model.Recommendation{
		ID:              "goppar-sotto-benchmark",
		Category:        model.RecCategoryProfitability,
		Title:           "GOPPAR sotto il benchmark di categoria",
		Description:     fmt.Sprintf("Il profitto operativo per camera disponibile (%.2f) e inferiore al %.0f%% del riferimento di categoria (%.2f).", in.KPIs.GOPPAR, th.GOPPARBenchmarkFloor*100, gap.Benchmark),
		EstimatedImpact: round2(impact),
		Difficulty:      model.DifficultyHigh,
		Priority:        model.PriorityHigh,
		Actions: []string{
			"Analizzare l'incidenza dei costi fissi per reparto",
			"Rinegoziare i contratti di fornitura principali",
		},
		Evidence: []string{fmt.Sprintf("GOPPAR %.2f contro benchmark %.2f", in.KPIs.GOPPAR, gap.Benchmark)},
	}
}

func ruleCPORShare(in Input, th analytics.Thresholds) *model.Recommendation {
	if in.KPIs.ADR == 0 || in.KPIs.CPOR == 0 {
		return nil
	}
	share := in.KPIs.CPOR / in.KPIs.ADR
	if share <= th.CPORShareCeiling {
		return nil
	}

	var soldNights float64
	for _, p := range in.Revenues {
		soldNights += p.RoomsSold
	}
	// Recoverable cost: the excess share over the ceiling on sold nights.
	impact := (in.KPIs.CPOR - th.CPORShareCeiling*in.KPIs.ADR) * soldNights

	return &model.Recommendation{
		ID:              "cpor-eccessivo",
		Category:        model.RecCategoryCosts,
		Title:           "Costo per camera occupata troppo alto",
		Description:     fmt.Sprintf("Il CPOR (%.2f) assorbe il %.0f%% dell'ADR: oltre la soglia del %.0f%%.", in.KPIs.CPOR, share*100, th.CPORShareCeiling*100),
		EstimatedImpact: round2(impact),
		Difficulty:      model.DifficultyMedium,
		Priority:        model.PriorityHigh,
		Actions: []string{
			"Verificare i costi di pulizia e lavanderia per camera",
			"Rivedere i consumi energetici dei piani camere",
		},
		Evidence: []string{fmt.Sprintf("CPOR/ADR %.0f%%, soglia %.0f%%", share*100, th.CPORShareCeiling*100)},
	}
}

func ruleCACBand(in Input, th analytics.Thresholds) *model.Recommendation {
	if in.KPIs.CAC == 0 || in.KPIs.ADR == 0 {
		return nil
	}
	share := in.KPIs.CAC / in.KPIs.ADR
	if share >= th.CACShareFloor && share <= th.CACShareCeiling {
		return nil
	}

	marketing := in.Costs.Category(model.CostCategoryMarketing)

	if share > th.CACShareCeiling {
		// Savings from bringing acquisition cost back to the ceiling.
		impact := (share - th.CACShareCeiling) * in.KPIs.ADR * estimatedMonthlyBookings(in)
		return &model.Recommendation{
			ID:              "cac-fuori-banda",
			Category:        model.RecCategoryMarketing,
			Title:           "Costo di acquisizione cliente eccessivo",
			Description:     fmt.Sprintf("Il CAC (%.2f) pesa il %.0f%% dell'ADR: canali di acquisizione poco efficienti.", in.KPIs.CAC, share*100),
			EstimatedImpact: round2(impact),
			Difficulty:      model.DifficultyMedium,
			Priority:        model.PriorityHigh,
			Actions: []string{
				"Spostare budget dai canali OTA alle prenotazioni dirette",
				"Rivedere le commissioni dei canali di intermediazione",
			},
			Evidence: []string{fmt.Sprintf("CAC/ADR %.0f%%, banda %.0f-%.0f%%; spesa marketing %.2f", share*100, th.CACShareFloor*100, th.CACShareCeiling*100, marketing)},
		}
	}

	// Under-investment: growing demand is worth a 2-point occupancy lift.
	impact := in.KPIs.ADR * in.availableRoomNights() * 0.02
	return &model.Recommendation{
		ID:              "cac-fuori-banda",
		Category:        model.RecCategoryMarketing,
		Title:           "Investimento commerciale sotto la norma",
		Description:     fmt.Sprintf("Il CAC (%.2f) e solo il %.0f%% dell'ADR: c'e spazio per investire in visibilita.", in.KPIs.CAC, share*100),
		EstimatedImpact: round2(impact),
		Difficulty:      model.DifficultyLow,
		Priority:        model.PriorityLow,
		Actions: []string{
			"Aumentare gradualmente il budget sui canali a miglior conversione",
			"Attivare campagne sui periodi a bassa occupazione",
		},
		Evidence: []string{fmt.Sprintf("CAC/ADR %.0f%%, banda %.0f-%.0f%%", share*100, th.CACShareFloor*100, th.CACShareCeiling*100)},
	}
}

func ruleGOPMargin(in Input, th analytics.Thresholds) *model.Recommendation {
	if in.KPIs.GOPMargin >= th.GOPMarginWarn || in.meanMonthlyRevenue() == 0 {
		return nil
	}

	priority := model.PriorityHigh
	title := "Margine operativo lordo debole"
	if in.KPIs.GOPMargin < th.GOPMarginCritical {
		priority = model.PriorityCritical
		title = "Margine operativo lordo critico"
	}

	// What restoring the warning-level margin would be worth per month.
	impact := (th.GOPMarginWarn - in.KPIs.GOPMargin) * in.meanMonthlyRevenue()

	return &model.Recommendation{
		ID:              "margine-gop-basso",
		Category:        model.RecCategoryProfitability,
		Title:           title,
		Description:     fmt.Sprintf("Il margine GOP e al %.1f%%, sotto la soglia di attenzione del %.0f%%.", in.KPIs.GOPMargin*100, th.GOPMarginWarn*100),
		EstimatedImpact: round2(impact),
		Difficulty:      model.DifficultyHigh,
		Priority:        priority,
		Actions: []string{
			"Mappare i costi per categoria e individuare le voci fuori linea",
			"Definire un piano di recupero margine a 90 giorni",
		},
		Evidence: []string{fmt.Sprintf("Margine GOP %.1f%% su ricavi medi mensili %.2f", in.KPIs.GOPMargin*100, in.meanMonthlyRevenue())},
	}
}

func ruleOccupancySwing(in Input, th analytics.Thresholds) *model.Recommendation {
	trend := in.Context.Trend("occupazione")
	points := trend.RecentMean - trend.PreviousMean
	if math.Abs(points) <= th.OccupancySwingPoints {
		return nil
	}

	// A third of the swing, valued at current rate on capacity.
	impact := math.Abs(points) / 100 * in.KPIs.ADR * in.availableRoomNights() / 3

	if points < 0 {
		return &model.Recommendation{
			ID:              "oscillazione-occupazione",
			Category:        model.RecCategoryOccupancy,
			Title:           "Calo marcato dell'occupazione trimestrale",
			Description:     fmt.Sprintf("L'occupazione media e scesa di %.1f punti rispetto al trimestre precedente.", -points),
			EstimatedImpact: round2(impact),
			Difficulty:      model.DifficultyMedium,
			Priority:        model.PriorityHigh,
			Actions: []string{
				"Analizzare il calo per canale di vendita",
				"Attivare offerte last-minute sui giorni scoperti",
			},
			Evidence: []string{fmt.Sprintf("Occupazione media: %.1f%% -> %.1f%%", trend.PreviousMean, trend.RecentMean)},
		}
	}

	return &model.Recommendation{
		ID:              "oscillazione-occupazione",
		Category:        model.RecCategoryPricing,
		Title:           "Crescita dell'occupazione da capitalizzare",
		Description:     fmt.Sprintf("L'occupazione media e salita di %.1f punti: margine per rivedere le tariffe al rialzo.", points),
		EstimatedImpact: round2(impact),
		Difficulty:      model.DifficultyLow,
		Priority:        model.PriorityMedium,
		Actions: []string{
			"Alzare le tariffe sulle date gia a forte riempimento",
			"Ridurre la dipendenza dai canali piu costosi",
		},
		Evidence: []string{fmt.Sprintf("Occupazione media: %.1f%% -> %.1f%%", trend.PreviousMean, trend.RecentMean)},
	}
}

func estimatedMonthlyBookings(in Input) float64 {
	if len(in.Revenues) == 0 {
		return 0
	}
	var bookings, roomsSold, guestNights float64
	for _, p := range in.Revenues {
		bookings += p.Bookings
		roomsSold += p.RoomsSold
		guestNights += p.GuestNights
	}
	n := float64(len(in.Revenues))
	switch {
	case bookings > 0:
		return bookings / n
	case roomsSold > 0:
		return roomsSold / n
	default:
		return guestNights / 2 / n
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
