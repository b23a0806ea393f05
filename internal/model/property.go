package model

// Property represents the hotel whose data is being analyzed.
type Property struct {
	BaseEntity
	Name     string           `json:"name" db:"name"`
	Profile  PropertyProfile  `json:"profile" db:"profile"`
	Settings PropertySettings `json:"settings" db:"settings"`
}

// PropertyProfile holds the static metadata that governs which KPI
// formulas apply.
type PropertyProfile struct {
	TotalRooms        int            `json:"camereTotali"`
	Stars             int            `json:"stelle"`
	OperatingModel    OperatingModel `json:"tipoGestione"`
	OperatingDaysYear int            `json:"giorniAperturaAnnui,omitempty"` // seasonal only
}

// IsSeasonal reports whether seasonal KPI normalization applies.
func (p PropertyProfile) IsSeasonal() bool {
	return p.OperatingModel == OperatingSeasonal
}

// PropertySettings holds property-level preferences and integration state.
type PropertySettings struct {
	DefaultCurrency       Currency `json:"default_currency"`
	Timezone              string   `json:"timezone"`
	AlertsEnabled         bool     `json:"alerts_enabled"`
	SlackWebhookURL       string   `json:"slack_webhook_url,omitempty"`
	EmailRecipients       []string `json:"email_recipients,omitempty"`
	RateShopperCredential []byte   `json:"-"` // AES-GCM encrypted at rest
}
