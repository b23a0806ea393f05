package analytics

import (
	"math"
	"testing"

	"github.com/hotelmind/backend/internal/model"
)

const eps = 0.01

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func yearRoundProfile(rooms int) model.PropertyProfile {
	return model.PropertyProfile{
		TotalRooms:     rooms,
		Stars:          3,
		OperatingModel: model.OperatingYearRound,
	}
}

func TestComputeKPIs_EmptyInputsYieldZeroSet(t *testing.T) {
	engine := NewKPIEngine(DefaultThresholds())

	kpis, err := engine.ComputeKPIs(nil, nil, yearRoundProfile(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !kpis.IsZero() {
		t.Errorf("expected all-zero KPISet, got %+v", kpis)
	}

	// Empty state must be idempotent.
	again, _ := engine.ComputeKPIs(nil, nil, yearRoundProfile(20))
	if kpis != again {
		t.Errorf("empty state not idempotent: %+v vs %+v", kpis, again)
	}
}

func TestComputeKPIs_ZeroRoomsIsAnError(t *testing.T) {
	engine := NewKPIEngine(DefaultThresholds())
	if _, err := engine.ComputeKPIs(nil, nil, model.PropertyProfile{TotalRooms: 0}); err == nil {
		t.Fatal("expected error for zero-rooms profile")
	}
}

func TestComputeKPIs_YearRoundFallbackRevPAR(t *testing.T) {
	// Scenario: one month, no period identifier and no days-open, so the
	// direct RevPAR computation cannot resolve operating days and the
	// ADR x Occupancy fallback applies.
	engine := NewKPIEngine(DefaultThresholds())

	revenues := []model.RevenuePeriod{
		{RoomRevenue: 10000, Occupancy: 60, ADR: 100},
	}

	kpis, err := engine.ComputeKPIs(nil, revenues, yearRoundProfile(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(kpis.ADR, 100) {
		t.Errorf("ADR = %v, want 100", kpis.ADR)
	}
	if !almostEqual(kpis.Occupancy, 60) {
		t.Errorf("Occupancy = %v, want 60", kpis.Occupancy)
	}
	if !almostEqual(kpis.RevPAR, 60) {
		t.Errorf("RevPAR = %v, want 60 (ADR x Occupancy fallback)", kpis.RevPAR)
	}
}

func TestComputeKPIs_YearRoundDirectRevPAR(t *testing.T) {
	engine := NewKPIEngine(DefaultThresholds())

	revenues := []model.RevenuePeriod{
		{Period: "2025-06", RoomRevenue: 30000, Occupancy: 75, RoomsSold: 450},
	}

	kpis, err := engine.ComputeKPIs(nil, revenues, yearRoundProfile(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// June has 30 days: 30000 / (20 * 30) = 50.
	if !almostEqual(kpis.RevPAR, 50) {
		t.Errorf("RevPAR = %v, want 50", kpis.RevPAR)
	}
	// ADR = 30000 / 450.
	if !almostEqual(kpis.ADR, 66.67) {
		t.Errorf("ADR = %v, want 66.67", kpis.ADR)
	}
}

func TestComputeKPIs_SeasonalAveragesPerMonth(t *testing.T) {
	engine := NewKPIEngine(DefaultThresholds())

	profile := model.PropertyProfile{
		TotalRooms:        10,
		Stars:             4,
		OperatingModel:    model.OperatingSeasonal,
		OperatingDaysYear: 180,
	}
	revenues := []model.RevenuePeriod{
		{Period: "2025-06", RoomRevenue: 3000, Occupancy: 50, DaysOpen: 30},
		{Period: "2025-07", RoomRevenue: 6000, Occupancy: 70, DaysOpen: 30},
	}

	kpis, err := engine.ComputeKPIs(nil, revenues, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Per-month RevPAR: 10 and 20, averaged.
	if !almostEqual(kpis.RevPAR, 15) {
		t.Errorf("RevPAR = %v, want 15 (per-month average)", kpis.RevPAR)
	}
	if !almostEqual(kpis.Occupancy, 60) {
		t.Errorf("Occupancy = %v, want 60", kpis.Occupancy)
	}
	// TRevPAR: 9000 / (10 rooms * 60 days).
	if !almostEqual(kpis.TRevPAR, 15) {
		t.Errorf("TRevPAR = %v, want 15", kpis.TRevPAR)
	}
}

func TestComputeKPIs_OccupancyClampedTo100(t *testing.T) {
	engine := NewKPIEngine(DefaultThresholds())

	revenues := []model.RevenuePeriod{
		{Period: "2025-03", RoomRevenue: 1000, Occupancy: 140},
	}
	kpis, err := engine.ComputeKPIs(nil, revenues, yearRoundProfile(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.Occupancy < 0 || kpis.Occupancy > 100 {
		t.Errorf("Occupancy = %v, want within [0,100]", kpis.Occupancy)
	}
}

func TestComputeKPIs_GOPAndMargin(t *testing.T) {
	engine := NewKPIEngine(DefaultThresholds())

	costs := []model.PeriodCosts{
		{Period: "2025-05", Records: []model.CostRecord{
			{Category: model.CostCategoryPayroll, Amount: 4000},
			{Category: model.CostCategoryUtilities, Amount: 2000},
		}},
	}
	revenues := []model.RevenuePeriod{
		{Period: "2025-05", RoomRevenue: 9000, FnBRevenue: 1000, Occupancy: 55, RoomsSold: 300, GuestNights: 600},
	}

	kpis, err := engine.ComputeKPIs(costs, revenues, yearRoundProfile(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(kpis.GOP, 4000) {
		t.Errorf("GOP = %v, want 4000", kpis.GOP)
	}
	if !almostEqual(kpis.GOPMargin, 0.4) {
		t.Errorf("GOPMargin = %v, want 0.4", kpis.GOPMargin)
	}
	// CPPR = 6000 / 600 guest-nights.
	if !almostEqual(kpis.CPPR, 10) {
		t.Errorf("CPPR = %v, want 10", kpis.CPPR)
	}
	// CPOR allocates 40% of the total cost to the rooms department.
	if !almostEqual(kpis.CPOR, 8) {
		t.Errorf("CPOR = %v, want 8 (0.4*6000/300)", kpis.CPOR)
	}
	// Year-round ROI = GOP / total cost.
	if !almostEqual(kpis.ROI, 0.67) {
		t.Errorf("ROI = %v, want 0.67", kpis.ROI)
	}
}

func TestComputeKPIs_SeasonalROIUsesPerDayNormalization(t *testing.T) {
	engine := NewKPIEngine(DefaultThresholds())

	profile := model.PropertyProfile{
		TotalRooms:        10,
		OperatingModel:    model.OperatingSeasonal,
		OperatingDaysYear: 150,
	}
	costs := []model.PeriodCosts{
		{Period: "2025-07", Records: []model.CostRecord{{Category: model.CostCategoryOther, Amount: 3000}}},
	}
	revenues := []model.RevenuePeriod{
		{Period: "2025-07", RoomRevenue: 9000, Occupancy: 80, DaysOpen: 30},
	}

	kpis, err := engine.ComputeKPIs(costs, revenues, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// rev/day = 300, cost/day = 100: (300-100)/100 = 2.
	if !almostEqual(kpis.ROI, 2) {
		t.Errorf("ROI = %v, want 2", kpis.ROI)
	}
}

func TestComputeKPIs_CACFallbacks(t *testing.T) {
	engine := NewKPIEngine(DefaultThresholds())

	costs := []model.PeriodCosts{
		{Period: "2025-05", Records: []model.CostRecord{{Category: model.CostCategoryMarketing, Amount: 1000}}},
	}

	// Rooms sold stands in for bookings when no booking count exists.
	revenues := []model.RevenuePeriod{
		{Period: "2025-05", RoomRevenue: 8000, Occupancy: 50, RoomsSold: 100, GuestNights: 220, OTACommissions: 200},
	}
	kpis, err := engine.ComputeKPIs(costs, revenues, yearRoundProfile(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(kpis.CAC, 12) {
		t.Errorf("CAC = %v, want 12 ((1000+200)/100)", kpis.CAC)
	}

	// With an explicit booking count the divisor is exact.
	revenues[0].Bookings = 60
	kpis, _ = engine.ComputeKPIs(costs, revenues, yearRoundProfile(10))
	if !almostEqual(kpis.CAC, 20) {
		t.Errorf("CAC = %v, want 20 ((1000+200)/60)", kpis.CAC)
	}
}

func TestALOS_Tiers(t *testing.T) {
	engine := NewKPIEngine(DefaultThresholds())

	tests := []struct {
		name        string
		bookings    float64
		roomsSold   float64
		guestNights float64
		want        float64
	}{
		{"exact with bookings", 100, 0, 300, 3},
		{"ratio already a length of stay", 0, 100, 450, 4.5},
		{"low ratio corrected by 4x", 0, 100, 100, 4},
		{"mid ratio corrected by base factor", 0, 100, 200, 6},
		{"upper ratio corrected by 0.9x base", 0, 100, 300, 8.1},
	}

	for _, tt := range tests {
		got := engine.alos(tt.bookings, tt.roomsSold, tt.guestNights)
		if !almostEqual(got, tt.want) {
			t.Errorf("%s: alos = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDaysInPeriod(t *testing.T) {
	if d := daysInPeriod("2024-02"); d != 29 {
		t.Errorf("2024-02 days = %d, want 29", d)
	}
	if d := daysInPeriod("2025-04"); d != 30 {
		t.Errorf("2025-04 days = %d, want 30", d)
	}
	if d := daysInPeriod("not-a-period"); d != 0 {
		t.Errorf("malformed period days = %d, want 0", d)
	}
}
