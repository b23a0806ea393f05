package model

// RecommendationCategory groups recommendations by the lever they act on.
type RecommendationCategory string

const (
	RecCategoryPricing       RecommendationCategory = "pricing"
	RecCategoryOccupancy     RecommendationCategory = "occupancy"
	RecCategoryCosts         RecommendationCategory = "costs"
	RecCategoryAncillary     RecommendationCategory = "ancillary"
	RecCategoryMarketing     RecommendationCategory = "marketing"
	RecCategoryProfitability RecommendationCategory = "profitability"
	RecCategoryMonitoring    RecommendationCategory = "monitoring"
)

// Recommendation is one ranked, explainable action. Generated fresh on
// every run; persistence is a collaborator concern.
type Recommendation struct {
	ID              string                 `json:"id"`
	Category        RecommendationCategory `json:"categoria"`
	Title           string                 `json:"titolo"`
	Description     string                 `json:"descrizione"`
	EstimatedImpact float64                `json:"impattoStimato"` // currency per month
	Difficulty      Difficulty             `json:"difficolta"`
	Priority        Priority               `json:"priorita"`
	Actions         []string               `json:"azioni"`
	Evidence        []string               `json:"evidenze"`
}

// ThresholdAlert is raised when a KPI crosses a hard limit. Unlike
// recommendations these are meant for the notification channels, not the
// ranked list.
type ThresholdAlert struct {
	Metric    string   `json:"metrica"`
	Value     float64  `json:"valore"`
	Threshold float64  `json:"soglia"`
	Severity  Severity `json:"severita"`
	Title     string   `json:"titolo"`
	Message   string   `json:"messaggio"`
}
