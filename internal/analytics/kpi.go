package analytics

import (
	"errors"
	"math"
	"time"

	"github.com/hotelmind/backend/internal/model"
)

// ErrInvalidProfile is returned for profiles that cannot describe a real
// property. This is the only error the KPI engine raises; data sparsity is
// absorbed into the empty-state result instead.
var ErrInvalidProfile = errors.New("analytics: property profile must have at least one room")

// KPIEngine derives the canonical KPI set from aggregated costs, monthly
// revenue periods and the property profile.
type KPIEngine struct {
	th Thresholds
}

// NewKPIEngine creates a KPI engine with the given threshold table.
func NewKPIEngine(th Thresholds) *KPIEngine {
	return &KPIEngine{th: th}
}

// ComputeKPIs converts the supplied evaluation window into an immutable
// KPI snapshot. Passing no revenue periods and no costs yields the
// all-zero KPISet: the deliberate empty-state contract, not a failure.
func (e *KPIEngine) ComputeKPIs(costs []model.PeriodCosts, revenues []model.RevenuePeriod, profile model.PropertyProfile) (model.KPISet, error) {
	if profile.TotalRooms <= 0 {
		return model.KPISet{}, ErrInvalidProfile
	}

	totals := AggregateCosts(costs)
	if len(revenues) == 0 && totals.Total == 0 {
		return model.KPISet{}, nil
	}

	rooms := float64(profile.TotalRooms)

	var (
		roomRevenue  float64
		totalRevenue float64
		roomsSold    float64
		guestNights  float64
		bookings     float64
		commissions  float64
		totalDays    float64
	)
	for _, p := range revenues {
		roomRevenue += p.RoomRevenue
		totalRevenue += p.TotalRevenue()
		roomsSold += p.RoomsSold
		guestNights += p.GuestNights
		bookings += p.Bookings
		commissions += p.OTACommissions
		totalDays += float64(operatingDays(p))
	}

	k := model.KPISet{}
	k.Occupancy = e.occupancy(revenues, profile)
	k.ADR = e.adr(revenues, roomRevenue, roomsSold)
	k.RevPAR = e.revPAR(revenues, profile, k.ADR, k.Occupancy)
	k.TRevPAR = safeDiv(totalRevenue, rooms*totalDays)

	k.GOP = totalRevenue - totals.Total
	k.GOPMargin = safeDiv(k.GOP, totalRevenue)
	k.GOPPAR = safeDiv(k.GOP, rooms*totalDays)

	k.CPPR = safeDiv(totals.Total, guestNights)
	k.CPOR = safeDiv(e.th.RoomCostShare*totals.Total, roomsSold)

	if profile.IsSeasonal() {
		revPerDay := safeDiv(totalRevenue, totalDays)
		costPerDay := safeDiv(totals.Total, totalDays)
		k.ROI = safeDiv(revPerDay-costPerDay, costPerDay)
	} else {
		k.ROI = safeDiv(k.GOP, totals.Total)
	}

	marketing := totals.Category(model.CostCategoryMarketing)
	k.CAC = safeDiv(marketing+commissions, estimatedBookings(bookings, roomsSold, guestNights))
	k.ALOS = e.alos(bookings, roomsSold, guestNights)

	return roundKPIs(k), nil
}

// occupancy averages per-month occupancy for seasonal properties and uses
// the most recent month alone for year-round ones. Per-month normalization
// is less biased by uneven month lengths than a single division over the
// whole season.
func (e *KPIEngine) occupancy(revenues []model.RevenuePeriod, profile model.PropertyProfile) float64 {
	if len(revenues) == 0 {
		return 0
	}

	if !profile.IsSeasonal() {
		return clamp(monthOccupancy(revenues[len(revenues)-1], profile), 0, 100)
	}

	var sum float64
	var n int
	for _, p := range revenues {
		if occ := monthOccupancy(p, profile); occ > 0 {
			sum += occ
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return clamp(sum/float64(n), 0, 100)
}

// monthOccupancy prefers the reported occupancy figure and derives one
// from sold units and available room-nights otherwise.
func monthOccupancy(p model.RevenuePeriod, profile model.PropertyProfile) float64 {
	if p.Occupancy > 0 {
		return p.Occupancy
	}
	days := operatingDays(p)
	if days == 0 {
		return 0
	}
	units := p.RoomsSold
	if units == 0 {
		units = p.GuestNights
	}
	return safeDiv(units, float64(profile.TotalRooms)*float64(days)) * 100
}

// revPAR mirrors the occupancy branching: per-month average for seasonal
// properties, latest month for year-round. When the direct computation
// yields zero (no resolvable operating days) it falls back to
// ADR x Occupancy/100.
func (e *KPIEngine) revPAR(revenues []model.RevenuePeriod, profile model.PropertyProfile, adr, occupancy float64) float64 {
	rooms := float64(profile.TotalRooms)
	direct := 0.0

	if len(revenues) > 0 {
		if profile.IsSeasonal() {
			var sum float64
			var n int
			for _, p := range revenues {
				if days := operatingDays(p); days > 0 {
					sum += safeDiv(p.RoomRevenue, rooms*float64(days))
					n++
				}
			}
			if n > 0 {
				direct = sum / float64(n)
			}
		} else {
			latest := revenues[len(revenues)-1]
			if days := operatingDays(latest); days > 0 {
				direct = safeDiv(latest.RoomRevenue, rooms*float64(days))
			}
		}
	}

	if direct == 0 {
		return adr * occupancy / 100
	}
	return direct
}

// adr is total room revenue over total rooms sold; when rooms sold is
// unreported it keeps the most recent reported rate.
func (e *KPIEngine) adr(revenues []model.RevenuePeriod, roomRevenue, roomsSold float64) float64 {
	if roomsSold > 0 {
		return roomRevenue / roomsSold
	}
	for i := len(revenues) - 1; i >= 0; i-- {
		if revenues[i].ADR > 0 {
			return revenues[i].ADR
		}
	}
	return 0
}

// alos derives average length of stay. With an explicit booking count the
// value is exact; otherwise the guest-nights/rooms-sold ratio is
// disambiguated by the tiered multiplier the original product shipped
// with. The tiering is a documented approximation and is preserved as-is.
func (e *KPIEngine) alos(bookings, roomsSold, guestNights float64) float64 {
	if bookings > 0 {
		return safeDiv(guestNights, bookings)
	}
	ratio := safeDiv(guestNights, roomsSold)
	if ratio == 0 {
		return 0
	}
	if ratio >= e.th.ALOSDirectRatio {
		return ratio
	}
	switch {
	case ratio < e.th.ALOSLowRatio:
		return ratio * e.th.ALOSLowFactor
	case ratio <= e.th.ALOSHighRatio:
		return ratio * e.th.ALOSBaseFactor
	default:
		return ratio * e.th.ALOSBaseFactor * e.th.ALOSHighFactor
	}
}

// estimatedBookings picks the best available proxy for booking volume:
// explicit bookings, then rooms sold, then half the guest-nights.
func estimatedBookings(bookings, roomsSold, guestNights float64) float64 {
	if bookings > 0 {
		return bookings
	}
	if roomsSold > 0 {
		return roomsSold
	}
	return guestNights / 2
}

// operatingDays resolves a period's open days: the explicit figure when
// reported, else the calendar length of the YYYY-MM period, else zero.
func operatingDays(p model.RevenuePeriod) int {
	if p.DaysOpen > 0 {
		return p.DaysOpen
	}
	return daysInPeriod(p.Period)
}

// daysInPeriod returns the calendar days of a YYYY-MM period, zero when
// the period identifier is absent or malformed.
func daysInPeriod(period string) int {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return 0
	}
	return t.AddDate(0, 1, -1).Day()
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundKPIs(k model.KPISet) model.KPISet {
	k.RevPAR = round2(k.RevPAR)
	k.ADR = round2(k.ADR)
	k.Occupancy = round2(k.Occupancy)
	k.TRevPAR = round2(k.TRevPAR)
	k.GOP = round2(k.GOP)
	k.GOPMargin = round2(k.GOPMargin)
	k.GOPPAR = round2(k.GOPPAR)
	k.CPPR = round2(k.CPPR)
	k.CPOR = round2(k.CPOR)
	k.ROI = round2(k.ROI)
	k.CAC = round2(k.CAC)
	k.ALOS = round2(k.ALOS)
	return k
}
