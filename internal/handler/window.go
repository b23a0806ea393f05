package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hotelmind/backend/internal/model"
	"github.com/hotelmind/backend/internal/repository"
)

// analysisWindow bundles everything the engines consume for one
// property: the profile plus the monthly and daily history of the
// configured lookback window.
type analysisWindow struct {
	Property *model.Property
	Revenues []model.RevenuePeriod
	Costs    []model.PeriodCosts
	Daily    []model.DailyPerformance
}

// WindowLoader assembles analysis windows from the repositories. Missing
// sections load as empty slices; the engines degrade on their own, so
// only the property lookup itself is fatal.
type WindowLoader struct {
	properties    repository.PropertyRepository
	costs         repository.CostRepository
	revenues      repository.RevenueRepository
	historyMonths int
}

func NewWindowLoader(
	properties repository.PropertyRepository,
	costs repository.CostRepository,
	revenues repository.RevenueRepository,
	historyMonths int,
) *WindowLoader {
	return &WindowLoader{
		properties:    properties,
		costs:         costs,
		revenues:      revenues,
		historyMonths: historyMonths,
	}
}

func (l *WindowLoader) load(ctx context.Context, propertyID uuid.UUID) (*analysisWindow, error) {
	property, err := l.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	from := now.AddDate(0, -l.historyMonths, 0)
	fromPeriod := from.Format("2006-01")
	toPeriod := now.Format("2006-01")

	revenues, err := l.revenues.ListPeriods(ctx, propertyID, fromPeriod, toPeriod)
	if err != nil {
		return nil, err
	}

	costs, err := l.costs.ListByPeriod(ctx, propertyID, fromPeriod, toPeriod)
	if err != nil {
		return nil, err
	}

	daily, err := l.revenues.ListDaily(ctx, propertyID, model.DateRange{Start: from, End: now})
	if err != nil {
		return nil, err
	}

	return &analysisWindow{
		Property: property,
		Revenues: revenues,
		Costs:    costs,
		Daily:    daily,
	}, nil
}
