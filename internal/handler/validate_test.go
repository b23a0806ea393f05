package handler

import (
	"testing"

	"github.com/hotelmind/backend/internal/model"
)

func TestValidateCostRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  model.CostRecord
		wantErr bool
	}{
		{
			name:   "valid entry",
			record: model.CostRecord{Period: "2025-07", Category: model.CostCategoryUtilities, Amount: 1200},
		},
		{
			name:    "malformed period",
			record:  model.CostRecord{Period: "2025/07", Amount: 100},
			wantErr: true,
		},
		{
			name:    "month out of range",
			record:  model.CostRecord{Period: "2025-13", Amount: 100},
			wantErr: true,
		},
		{
			name:    "negative amount",
			record:  model.CostRecord{Period: "2025-07", Amount: -5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateCostRecord(&tt.record)
			if (msg != "") != tt.wantErr {
				t.Errorf("validateCostRecord() = %q, wantErr %v", msg, tt.wantErr)
			}
		})
	}
}

func TestValidateCostRecord_DefaultsCategory(t *testing.T) {
	rec := model.CostRecord{Period: "2025-07", Amount: 50}
	if msg := validateCostRecord(&rec); msg != "" {
		t.Fatalf("unexpected validation error: %s", msg)
	}
	if rec.Category != model.CostCategoryOther {
		t.Errorf("Category = %s, want %s", rec.Category, model.CostCategoryOther)
	}
}

func TestValidateRevenuePeriod(t *testing.T) {
	tests := []struct {
		name    string
		period  model.RevenuePeriod
		wantErr bool
	}{
		{
			name:   "valid month",
			period: model.RevenuePeriod{Period: "2025-08", RoomRevenue: 42000, Occupancy: 71, ADR: 120},
		},
		{
			name:    "occupancy above 100",
			period:  model.RevenuePeriod{Period: "2025-08", Occupancy: 101},
			wantErr: true,
		},
		{
			name:    "negative revenue",
			period:  model.RevenuePeriod{Period: "2025-08", RoomRevenue: -1},
			wantErr: true,
		},
		{
			name:    "missing period",
			period:  model.RevenuePeriod{RoomRevenue: 1000},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateRevenuePeriod(&tt.period)
			if (msg != "") != tt.wantErr {
				t.Errorf("validateRevenuePeriod() = %q, wantErr %v", msg, tt.wantErr)
			}
		})
	}
}
