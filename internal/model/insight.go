package model

// InsightCategory classifies what kind of finding an insight reports.
type InsightCategory string

const (
	InsightProblem     InsightCategory = "problem"
	InsightOpportunity InsightCategory = "opportunity"
	InsightRisk        InsightCategory = "risk"
	InsightAchievement InsightCategory = "achievement"
)

// Urgency grades how quickly an insight should be acted on.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencyShortTerm Urgency = "short-term"
	UrgencyPlanned   Urgency = "planned"
)

// ReasoningChain is the explicit causal argument behind an insight.
type ReasoningChain struct {
	Observation  string   `json:"osservazione"`
	Analysis     string   `json:"analisi"`
	Causes       []string `json:"cause"`
	Consequences []string `json:"conseguenze"`
	Logic        string   `json:"sintesi"`
}

// ActionableRecommendation is one concrete action attached to an insight.
type ActionableRecommendation struct {
	Action          string   `json:"azione"`
	Why             string   `json:"perche"`
	How             string   `json:"come"`
	ExpectedOutcome string   `json:"risultatoAtteso"`
	TimeToImpact    string   `json:"tempoImpatto"`
	Dependencies    []string `json:"dipendenze,omitempty"`
}

// ImpactEstimate quantifies what acting on an insight is worth.
type ImpactEstimate struct {
	RevenueDelta   float64 `json:"deltaEntrate"`
	CostDelta      float64 `json:"deltaCosti"`
	ProfitDelta    float64 `json:"deltaProfitto"`
	OccupancyDelta float64 `json:"deltaOccupazione"` // percentage points
	Timeframe      string  `json:"orizzonte"`
	Confidence     float64 `json:"confidenza"` // 0..1
}

// Insight is a prioritized narrative finding produced by the reasoning
// engine. Its structured fields are handed to the presentation collaborator
// for templating; the core never formats prose beyond these fields.
type Insight struct {
	ID              string                     `json:"id"`
	Category        InsightCategory            `json:"categoria"`
	Urgency         Urgency                    `json:"urgenza"`
	Priority        float64                    `json:"priorita"`   // 0..10
	Confidence      float64                    `json:"confidenza"` // 0..1
	Title           string                     `json:"titolo"`
	Chain           ReasoningChain             `json:"ragionamento"`
	Recommendations []ActionableRecommendation `json:"raccomandazioni"`
	Impact          ImpactEstimate             `json:"impatto"`
}
