package model

// KPISet is the canonical derived metric snapshot for one evaluation
// window. It is recomputed from current inputs on every request and never
// mutated in place. Zero values mean "not derivable from the inputs";
// missing marketing or guest-count signals leave CAC, CPPR and ALOS at
// zero without invalidating the rest.
type KPISet struct {
	RevPAR    float64 `json:"revpar"`
	ADR       float64 `json:"adr"`
	Occupancy float64 `json:"occupazione"` // percent, clamped to [0,100]
	TRevPAR   float64 `json:"trevpar"`
	GOP       float64 `json:"gop"`
	GOPMargin float64 `json:"gopMargin"` // fraction of revenue
	GOPPAR    float64 `json:"goppar"`
	CPPR      float64 `json:"cppr"` // cost per guest-night
	CPOR      float64 `json:"cpor"` // cost per occupied room
	ROI       float64 `json:"roi"`
	CAC       float64 `json:"cac"`
	ALOS      float64 `json:"alos"`
}

// IsZero reports whether no KPI could be derived (the empty-state result).
func (k KPISet) IsZero() bool {
	return k == KPISet{}
}
