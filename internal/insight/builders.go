package insight

import (
	"fmt"
	"math"

	"github.com/hotelmind/backend/internal/analytics"
	"github.com/hotelmind/backend/internal/model"
)

func buildRevenueTrendInsight(ctx model.AnalysisContext, th analytics.Thresholds) *model.Insight {
	t := ctx.Trend("entrate")
	if t.Direction == model.TrendStable || t.Significance == model.SignificanceLow {
		return nil
	}

	priority := trendPriority(t)
	monthlyDelta := t.RecentMean - t.PreviousMean

	if t.Direction == model.TrendDown {
		return &model.Insight{
			ID:         "calo-ricavi-trimestrale",
			Category:   model.InsightProblem,
			Urgency:    urgencyFor(priority),
			Priority:   priority,
			Confidence: trendConfidence(t),
			Title:      "Ricavi in calo rispetto al trimestre precedente",
			Chain: model.ReasoningChain{
				Observation: fmt.Sprintf("I ricavi medi mensili sono passati da %.2f a %.2f (%.1f%%).", t.PreviousMean, t.RecentMean, t.ChangePct),
				Analysis:    "Il confronto tre mesi su tre mesi esclude oscillazioni singole: il calo riflette una tendenza consolidata del periodo.",
				Causes: []string{
					"Possibile riduzione della domanda sul mercato di riferimento",
					"Politica tariffaria non allineata alla stagione",
					"Minore visibilita sui canali di prenotazione",
				},
				Consequences: []string{
					"Riduzione del margine operativo nei prossimi mesi",
					"Minore liquidita per investimenti di prodotto",
				},
				Logic: "Calo di ricavi persistente su piu mesi: senza intervento tariffario o commerciale la tendenza tende a confermarsi.",
			},
			Recommendations: []model.ActionableRecommendation{
				{
					Action:          "Rivedere tariffe e offerte dei prossimi 60 giorni",
					Why:             "Il calo e concentrato sul ricavo medio mensile",
					How:             "Analisi del pickup per canale e revisione del pricing sulle date deboli",
					ExpectedOutcome: "Recupero parziale del ricavo mensile medio",
					TimeToImpact:    "30-60 giorni",
				},
			},
			Impact: model.ImpactEstimate{
				RevenueDelta: round2(-monthlyDelta),
				ProfitDelta:  round2(-monthlyDelta * 0.6),
				Timeframe:    "90 giorni",
				Confidence:   trendConfidence(t),
			},
		}
	}

	return &model.Insight{
		ID:         "crescita-ricavi-trimestrale",
		Category:   model.InsightAchievement,
		Urgency:    model.UrgencyPlanned,
		Priority:   priority,
		Confidence: trendConfidence(t),
		Title:      "Ricavi in crescita consolidata",
		Chain: model.ReasoningChain{
			Observation: fmt.Sprintf("I ricavi medi mensili sono passati da %.2f a %.2f (+%.1f%%).", t.PreviousMean, t.RecentMean, t.ChangePct),
			Analysis:    "La crescita e confermata sul confronto trimestrale, non su un singolo mese.",
			Causes: []string{
				"Domanda in aumento nel periodo analizzato",
				"Posizionamento tariffario efficace",
			},
			Consequences: []string{
				"Spazio per consolidare tariffe piu alte",
				"Maggiore capacita di investimento",
			},
			Logic: "Crescita trimestrale dei ricavi: conviene consolidarla prima che la stagione cambi.",
		},
		Recommendations: []model.ActionableRecommendation{
			{
				Action:          "Consolidare l'incremento tariffario sulle date forti",
				Why:             "La domanda sostiene gia il livello attuale di prezzo",
				How:             "Aumenti selettivi dove il riempimento supera la media",
				ExpectedOutcome: "ADR piu alto a parita di occupazione",
				TimeToImpact:    "30 giorni",
			},
		},
		Impact: model.ImpactEstimate{
			RevenueDelta: round2(monthlyDelta),
			ProfitDelta:  round2(monthlyDelta * 0.6),
			Timeframe:    "90 giorni",
			Confidence:   trendConfidence(t),
		},
	}
}

func buildOccupancyTrendInsight(ctx model.AnalysisContext, th analytics.Thresholds) *model.Insight {
	t := ctx.Trend("occupazione")
	points := t.RecentMean - t.PreviousMean
	if t.Direction != model.TrendDown || t.Significance == model.SignificanceLow {
		return nil
	}

	priority := trendPriority(t)
	lostNights := -points / 100 * float64(ctx.Profile.TotalRooms) * 30

	return &model.Insight{
		ID:         "calo-occupazione",
		Category:   model.InsightProblem,
		Urgency:    urgencyFor(priority),
		Priority:   priority,
		Confidence: trendConfidence(t),
		Title:      "Occupazione in calo strutturale",
		Chain: model.ReasoningChain{
			Observation: fmt.Sprintf("L'occupazione media e scesa da %.1f%% a %.1f%% nel confronto trimestrale.", t.PreviousMean, t.RecentMean),
			Analysis:    fmt.Sprintf("Il calo di %.1f punti equivale a circa %.0f notti camera perse al mese.", -points, lostNights),
			Causes: []string{
				"Concorrenza piu aggressiva sui prezzi",
				"Calendario eventi o stagionalita sfavorevole",
				"Distribuzione debole sui canali online",
			},
			Consequences: []string{
				"RevPAR in discesa anche a tariffa invariata",
				"Costi fissi spalmati su meno camere vendute",
			},
			Logic: "Meno camere vendute con la stessa struttura di costo: il margine per camera peggiora due volte.",
		},
		Recommendations: []model.ActionableRecommendation{
			{
				Action:          "Attivare campagne mirate sui giorni a bassa occupazione",
				Why:             "Il calo e concentrato sul volume, non sul prezzo",
				How:             "Offerte last-minute e pacchetti infrasettimanali sui canali diretti",
				ExpectedOutcome: "Recupero di parte delle notti camera perse",
				TimeToImpact:    "30 giorni",
				Dependencies:    []string{"budget promozionale disponibile"},
			},
		},
		Impact: model.ImpactEstimate{
			RevenueDelta:   round2(lostNights * ctx.KPIs.ADR),
			OccupancyDelta: round2(-points),
			Timeframe:      "60 giorni",
			Confidence:     trendConfidence(t),
		},
	}
}

func buildCostAnomalyInsight(ctx model.AnalysisContext, th analytics.Thresholds) *model.Insight {
	var worst *model.CostAnomaly
	highs := 0
	for i := range ctx.Anomalies {
		a := &ctx.Anomalies[i]
		if a.Severity == model.SeverityHigh {
			highs++
			if worst == nil || a.ZScore > worst.ZScore {
				worst = a
			}
		}
	}
	if worst == nil {
		return nil
	}

	// Priority scales with the strongest z-score; 3 sigma maps to 7.5.
	priority := clamp10(worst.ZScore * 2.5)

	return &model.Insight{
		ID:         "anomalia-costi-ospite",
		Category:   model.InsightRisk,
		Urgency:    urgencyFor(priority),
		Priority:   priority,
		Confidence: 0.75,
		Title:      "Picco anomalo del costo per ospite",
		Chain: model.ReasoningChain{
			Observation: fmt.Sprintf("Il %s il costo per ospite ha raggiunto %.2f contro un atteso di %.2f (+%.0f%%).", worst.Date.Format("2006-01"), worst.CostPerGuest, worst.Expected, worst.DeviationPct),
			Analysis:    fmt.Sprintf("Rilevati %d periodi con scostamento grave: la deviazione supera %.1f volte la variabilita storica.", highs, worst.ZScore),
			Causes: []string{
				"Fatture fornitori fuori contratto o duplicate",
				"Sprechi o consumi anomali di reparto",
				"Calo ospiti non accompagnato da riduzione dei costi variabili",
			},
			Consequences: []string{
				"Erosione diretta del margine operativo del periodo",
				"Rischio di consolidare un livello di costo piu alto",
			},
			Logic: "Uno scostamento di costo cosi ampio non rientra nella variabilita normale: va verificato alla fonte prima che si ripeta.",
		},
		Recommendations: []model.ActionableRecommendation{
			{
				Action:          "Audit delle fatture del periodo anomalo",
				Why:             "Lo scostamento supera ampiamente la soglia statistica",
				How:             "Riconciliare fatture, contratti e consumi del mese segnalato",
				ExpectedOutcome: "Identificazione della voce fuori linea",
				TimeToImpact:    "15 giorni",
			},
		},
		Impact: model.ImpactEstimate{
			CostDelta:  round2(-(worst.CostPerGuest - worst.Expected)),
			Timeframe:  "30 giorni",
			Confidence: 0.75,
		},
	}
}

func buildBenchmarkGapInsight(ctx model.AnalysisContext, th analytics.Thresholds) *model.Insight {
	gap, ok := ctx.BenchmarkFor("revpar")
	if !ok || gap.Gap > -0.3 {
		return nil
	}

	// Priority grows with the gap: -30% maps to 6, -100% to 10.
	priority := clamp10(6 + (-gap.Gap-0.3)*5.7)
	monthlyGapValue := (gap.Benchmark - gap.Actual) * float64(ctx.Profile.TotalRooms) * 30

	return &model.Insight{
		ID:         "gap-revpar-categoria",
		Category:   model.InsightOpportunity,
		Urgency:    urgencyFor(priority),
		Priority:   priority,
		Confidence: 0.6,
		Title:      "Ampio margine di recupero verso il benchmark di categoria",
		Chain: model.ReasoningChain{
			Observation: fmt.Sprintf("Il RevPAR (%.2f) e il %.0f%% sotto il riferimento per la categoria (%.2f).", gap.Actual, -gap.Gap*100, gap.Benchmark),
			Analysis:    fmt.Sprintf("A parita di capacita il divario vale circa %.0f al mese.", monthlyGapValue),
			Causes: []string{
				"Posizionamento tariffario sotto il mercato di categoria",
				"Mix di canali sbilanciato sull'intermediazione",
			},
			Consequences: []string{
				"Ricavo potenziale non catturato ogni mese",
			},
			Logic: "Il divario dal benchmark e strutturale, non stagionale: anche un recupero parziale sposta il risultato annuale.",
		},
		Recommendations: []model.ActionableRecommendation{
			{
				Action:          "Piano di riposizionamento tariffario in 2 fasi",
				Why:             "Il gap verso la categoria supera il 30%",
				How:             "Allineamento progressivo dell'ADR con verifica dell'elasticita a 30 giorni",
				ExpectedOutcome: "Riduzione del gap di almeno un terzo",
				TimeToImpact:    "60-90 giorni",
			},
		},
		Impact: model.ImpactEstimate{
			RevenueDelta: round2(monthlyGapValue / 3),
			Timeframe:    "90 giorni",
			Confidence:   0.6,
		},
	}
}

func buildSeasonalityInsight(ctx model.AnalysisContext, th analytics.Thresholds) *model.Insight {
	s := ctx.Seasonality

	if s.NextSeason == model.SeasonHigh {
		priority := clamp10(4 + (s.NextMonthRatio-1)*5)
		return &model.Insight{
			ID:         "alta-stagione-in-arrivo",
			Category:   model.InsightOpportunity,
			Urgency:    urgencyFor(priority),
			Priority:   priority,
			Confidence: 0.7,
			Title:      "Mese ad alta domanda in arrivo",
			Chain: model.ReasoningChain{
				Observation: fmt.Sprintf("Il prossimo mese storicamente registra un'occupazione pari a %.0f%% della media annua.", s.NextMonthRatio*100),
				Analysis:    "Il pattern stagionale e ricorrente negli anni osservati: la domanda aggiuntiva e prevedibile.",
				Causes:      []string{"Stagionalita strutturale della destinazione"},
				Consequences: []string{
					"Domanda in eccesso vendibile a tariffe piu alte",
				},
				Logic: "Con domanda stagionale prevedibile, il prezzo va alzato prima che l'inventario si riempia alle tariffe base.",
			},
			Recommendations: []model.ActionableRecommendation{
				{
					Action:          "Alzare le tariffe del mese entrante",
					Why:             "La domanda attesa supera la media annua",
					How:             "Incrementi per fasce di riempimento con chiusura dei canali meno redditizi",
					ExpectedOutcome: "ADR superiore senza perdita di occupazione",
					TimeToImpact:    "30 giorni",
				},
			},
			Impact: model.ImpactEstimate{
				RevenueDelta: round2(ctx.KPIs.ADR * float64(ctx.Profile.TotalRooms) * 30 * (s.NextMonthRatio - 1) * 0.5),
				Timeframe:    "30 giorni",
				Confidence:   0.7,
			},
		}
	}

	if s.NextSeason == model.SeasonLow {
		priority := clamp10(4 + (1-s.NextMonthRatio)*5)
		return &model.Insight{
			ID:         "bassa-stagione-in-arrivo",
			Category:   model.InsightRisk,
			Urgency:    urgencyFor(priority),
			Priority:   priority,
			Confidence: 0.7,
			Title:      "Mese a bassa domanda in arrivo",
			Chain: model.ReasoningChain{
				Observation: fmt.Sprintf("Il prossimo mese storicamente registra un'occupazione pari al %.0f%% della media annua.", s.NextMonthRatio*100),
				Analysis:    "Il calo stagionale e ricorrente: senza contromisure occupazione e ricavi scenderanno in proporzione.",
				Causes:      []string{"Stagionalita strutturale della destinazione"},
				Consequences: []string{
					"Costi fissi su un volume di vendita ridotto",
					"Pressione al ribasso sulle tariffe",
				},
				Logic: "La bassa stagione e nota in anticipo: anticipare offerte e contenimento costi limita l'impatto sul margine.",
			},
			Recommendations: []model.ActionableRecommendation{
				{
					Action:          "Pianificare offerte e contenimento costi per il mese debole",
					Why:             "Il calo di domanda e prevedibile dallo storico",
					How:             "Pacchetti promozionali anticipati e riduzione dei costi variabili programmabili",
					ExpectedOutcome: "Minore perdita di margine nel mese debole",
					TimeToImpact:    "30 giorni",
					Dependencies:    []string{"pianificazione turni e fornitori"},
				},
			},
			Impact: model.ImpactEstimate{
				RevenueDelta: round2(ctx.KPIs.ADR * float64(ctx.Profile.TotalRooms) * 30 * (s.NextMonthRatio - 1) * 0.5),
				Timeframe:    "30 giorni",
				Confidence:   0.7,
			},
		}
	}

	return nil
}

func buildMarginRiskInsight(ctx model.AnalysisContext, th analytics.Thresholds) *model.Insight {
	margin := ctx.KPIs.GOPMargin
	if margin == 0 || margin >= th.GOPMarginWarn {
		return nil
	}

	// Priority climbs as margin approaches zero; the critical threshold
	// maps to 8.
	priority := clamp10(8 * (th.GOPMarginWarn - margin) / (th.GOPMarginWarn - th.GOPMarginCritical) * 0.5 + 4)

	category := model.InsightRisk
	if margin < th.GOPMarginCritical {
		category = model.InsightProblem
	}

	return &model.Insight{
		ID:         "margine-sotto-soglia",
		Category:   category,
		Urgency:    urgencyFor(priority),
		Priority:   priority,
		Confidence: 0.8,
		Title:      "Margine operativo sotto la soglia di sicurezza",
		Chain: model.ReasoningChain{
			Observation: fmt.Sprintf("Il margine GOP del periodo e al %.1f%%.", margin*100),
			Analysis:    fmt.Sprintf("Sotto il %.0f%% la gestione non genera riserve sufficienti per manutenzioni e imprevisti.", th.GOPMarginWarn*100),
			Causes: []string{
				"Struttura costi sovradimensionata rispetto ai ricavi",
				"Ricavi per camera sotto il potenziale della categoria",
			},
			Consequences: []string{
				"Vulnerabilita a cali di domanda anche modesti",
				"Capacita di investimento compromessa",
			},
			Logic: "Margine sottile su base strutturale: ogni punto di ricavo o costo recuperato va direttamente a riserva.",
		},
		Recommendations: []model.ActionableRecommendation{
			{
				Action:          "Piano margine a 90 giorni su costi e ricavi",
				Why:             "Il margine attuale non copre il fabbisogno di gestione",
				How:             "Taglio mirato delle categorie di costo fuori linea e revisione tariffaria",
				ExpectedOutcome: fmt.Sprintf("Margine riportato sopra il %.0f%%", th.GOPMarginWarn*100),
				TimeToImpact:    "90 giorni",
			},
		},
		Impact: model.ImpactEstimate{
			ProfitDelta: round2((th.GOPMarginWarn - margin) * ctx.KPIs.TRevPAR * float64(ctx.Profile.TotalRooms) * 30),
			Timeframe:   "90 giorni",
			Confidence:  0.8,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
