// Package repository defines data access interfaces.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hotelmind/backend/internal/model"
)

// CostRepository defines cost data access methods.
type CostRepository interface {
	Create(ctx context.Context, cost *model.CostRecord) error
	CreateBatch(ctx context.Context, costs []*model.CostRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CostRecord, error)
	List(ctx context.Context, filter model.CostFilter, pagination model.Pagination) ([]*model.CostRecord, int, error)
	ListByPeriod(ctx context.Context, propertyID uuid.UUID, fromPeriod, toPeriod string) ([]model.PeriodCosts, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RevenueRepository defines revenue data access methods.
type RevenueRepository interface {
	Upsert(ctx context.Context, period *model.RevenuePeriod) error
	UpsertBatch(ctx context.Context, periods []*model.RevenuePeriod) error
	ListPeriods(ctx context.Context, propertyID uuid.UUID, fromPeriod, toPeriod string) ([]model.RevenuePeriod, error)
	UpsertDaily(ctx context.Context, propertyID uuid.UUID, days []model.DailyPerformance) error
	ListDaily(ctx context.Context, propertyID uuid.UUID, dateRange model.DateRange) ([]model.DailyPerformance, error)
	DeletePeriod(ctx context.Context, propertyID uuid.UUID, period string) error
}

// PropertyRepository defines property data access methods.
type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Property, error)
	List(ctx context.Context) ([]*model.Property, error)
	Update(ctx context.Context, property *model.Property) error
	UpdateSettings(ctx context.Context, id uuid.UUID, settings model.PropertySettings) error
	SetRateShopperCredential(ctx context.Context, id uuid.UUID, encrypted []byte) error
	GetRateShopperCredential(ctx context.Context, id uuid.UUID) ([]byte, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SnapshotRepository stores the nightly analysis results.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *model.AnalysisSnapshot) error
	GetLatest(ctx context.Context, propertyID uuid.UUID) (*model.AnalysisSnapshot, error)
	List(ctx context.Context, propertyID uuid.UUID, pagination model.Pagination) ([]*model.AnalysisSnapshot, int, error)
	DeleteOlderThan(ctx context.Context, propertyID uuid.UUID, cutoff time.Time) (int64, error)
}
