package model

import (
	"time"

	"github.com/google/uuid"
)

// RevenuePeriod captures one month of operating performance. JSON tags keep
// the original product's Italian wire names so exported reports match
// historical exports.
type RevenuePeriod struct {
	PropertyID       uuid.UUID `json:"property_id,omitempty" db:"property_id"`
	Period           string    `json:"periodo" db:"period"` // YYYY-MM
	RoomRevenue      float64   `json:"entrateTotali" db:"room_revenue"`
	Occupancy        float64   `json:"occupazione" db:"occupancy"` // percent, [0,100]
	ADR              float64   `json:"prezzoMedioCamera" db:"adr"`
	RoomsSold        float64   `json:"camereVendute" db:"rooms_sold"`
	GuestNights      float64   `json:"pernottamenti" db:"guest_nights"`
	FnBRevenue       float64   `json:"entrateFnB,omitempty" db:"fnb_revenue"`
	AncillaryRevenue float64   `json:"entrateExtra,omitempty" db:"ancillary_revenue"`
	Bookings         float64   `json:"prenotazioni,omitempty" db:"bookings"`
	OTACommissions   float64   `json:"commissioniOTA,omitempty" db:"ota_commissions"`
	DaysOpen         int       `json:"giorniApertura,omitempty" db:"days_open"` // seasonal properties
}

// TotalRevenue returns room plus ancillary plus F&B revenue for the period.
func (r RevenuePeriod) TotalRevenue() float64 {
	return r.RoomRevenue + r.FnBRevenue + r.AncillaryRevenue
}

// DailyPerformance is one day of the operational history used by the
// demand forecaster and the seasonality analysis.
type DailyPerformance struct {
	Date      time.Time `json:"data" db:"date"`
	Revenue   float64   `json:"entrate" db:"revenue"`
	Occupancy float64   `json:"occupazione" db:"occupancy"`
}
