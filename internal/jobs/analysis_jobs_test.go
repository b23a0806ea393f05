package jobs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hotelmind/backend/internal/analytics"
	"github.com/hotelmind/backend/internal/config"
	"github.com/hotelmind/backend/internal/model"
	"github.com/hotelmind/backend/internal/notification"
)

type stubPropertyRepo struct {
	properties []*model.Property
}

func (s *stubPropertyRepo) Create(ctx context.Context, property *model.Property) error { return nil }
func (s *stubPropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	return s.properties[0], nil
}
func (s *stubPropertyRepo) List(ctx context.Context) ([]*model.Property, error) {
	return s.properties, nil
}
func (s *stubPropertyRepo) Update(ctx context.Context, property *model.Property) error { return nil }
func (s *stubPropertyRepo) UpdateSettings(ctx context.Context, id uuid.UUID, settings model.PropertySettings) error {
	return nil
}
func (s *stubPropertyRepo) SetRateShopperCredential(ctx context.Context, id uuid.UUID, encrypted []byte) error {
	return nil
}
func (s *stubPropertyRepo) GetRateShopperCredential(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return nil, nil
}
func (s *stubPropertyRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubCostRepo struct {
	periods []model.PeriodCosts
}

func (s *stubCostRepo) Create(ctx context.Context, cost *model.CostRecord) error { return nil }
func (s *stubCostRepo) CreateBatch(ctx context.Context, costs []*model.CostRecord) error {
	return nil
}
func (s *stubCostRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.CostRecord, error) {
	return nil, nil
}
func (s *stubCostRepo) List(ctx context.Context, filter model.CostFilter, pagination model.Pagination) ([]*model.CostRecord, int, error) {
	return nil, 0, nil
}
func (s *stubCostRepo) ListByPeriod(ctx context.Context, propertyID uuid.UUID, fromPeriod, toPeriod string) ([]model.PeriodCosts, error) {
	return s.periods, nil
}
func (s *stubCostRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubRevenueRepo struct {
	periods []model.RevenuePeriod
}

func (s *stubRevenueRepo) Upsert(ctx context.Context, period *model.RevenuePeriod) error { return nil }
func (s *stubRevenueRepo) UpsertBatch(ctx context.Context, periods []*model.RevenuePeriod) error {
	return nil
}
func (s *stubRevenueRepo) ListPeriods(ctx context.Context, propertyID uuid.UUID, fromPeriod, toPeriod string) ([]model.RevenuePeriod, error) {
	return s.periods, nil
}
func (s *stubRevenueRepo) UpsertDaily(ctx context.Context, propertyID uuid.UUID, days []model.DailyPerformance) error {
	return nil
}
func (s *stubRevenueRepo) ListDaily(ctx context.Context, propertyID uuid.UUID, dateRange model.DateRange) ([]model.DailyPerformance, error) {
	return nil, nil
}
func (s *stubRevenueRepo) DeletePeriod(ctx context.Context, propertyID uuid.UUID, period string) error {
	return nil
}

type stubSnapshotRepo struct {
	saved []*model.AnalysisSnapshot
}

func (s *stubSnapshotRepo) Save(ctx context.Context, snapshot *model.AnalysisSnapshot) error {
	s.saved = append(s.saved, snapshot)
	return nil
}
func (s *stubSnapshotRepo) GetLatest(ctx context.Context, propertyID uuid.UUID) (*model.AnalysisSnapshot, error) {
	return nil, nil
}
func (s *stubSnapshotRepo) List(ctx context.Context, propertyID uuid.UUID, pagination model.Pagination) ([]*model.AnalysisSnapshot, int, error) {
	return nil, 0, nil
}
func (s *stubSnapshotRepo) DeleteOlderThan(ctx context.Context, propertyID uuid.UUID, cutoff time.Time) (int64, error) {
	return 0, nil
}

// eventSink counts received webhook notifications per event type.
type eventSink struct {
	mu     sync.Mutex
	events map[string]int
}

func newEventSink() *eventSink {
	return &eventSink{events: map[string]int{}}
}

func (s *eventSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.events[r.Header.Get("X-HotelMind-Event")]++
	s.mu.Unlock()
}

func (s *eventSink) count(event string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[event]
}

func testRunner(sinkURL string, alertsEnabled bool) (*AnalysisRunner, *stubSnapshotRepo) {
	property := &model.Property{
		Name:    "Hotel Bellavista",
		Profile: model.PropertyProfile{TotalRooms: 20, Stars: 3, OperatingModel: model.OperatingYearRound},
		Settings: model.PropertySettings{
			DefaultCurrency: model.CurrencyEUR,
			AlertsEnabled:   alertsEnabled,
		},
	}
	property.ID = uuid.New()

	// Three months at 5% GOP margin, below the 10% hard limit.
	var revenues []model.RevenuePeriod
	var costs []model.PeriodCosts
	for _, period := range []string{"2025-05", "2025-06", "2025-07"} {
		revenues = append(revenues, model.RevenuePeriod{
			Period:      period,
			RoomRevenue: 10000,
			Occupancy:   70,
			ADR:         95,
			RoomsSold:   420,
			GuestNights: 800,
		})
		costs = append(costs, model.PeriodCosts{
			Period: period,
			Records: []model.CostRecord{
				{Period: period, Category: model.CostCategoryOther, Amount: 9500},
			},
		})
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := notification.NewService(notification.Config{WebhookURLs: []string{sinkURL}}, logger)
	snapshots := &stubSnapshotRepo{}

	runner := NewAnalysisRunner(
		&stubPropertyRepo{properties: []*model.Property{property}},
		&stubCostRepo{periods: costs},
		&stubRevenueRepo{periods: revenues},
		snapshots,
		notifier,
		analytics.DefaultThresholds(),
		config.AnalyticsConfig{HistoryMonths: 12, SnapshotRetention: 90 * 24 * time.Hour},
		logger,
	)
	return runner, snapshots
}

func TestRunAlertCheck_CriticalRecommendationNotifies(t *testing.T) {
	sink := newEventSink()
	srv := httptest.NewServer(sink)
	defer srv.Close()

	runner, _ := testRunner(srv.URL, true)
	if err := runner.RunAlertCheck(context.Background()); err != nil {
		t.Fatalf("RunAlertCheck() error = %v", err)
	}

	if sink.count("recommendation.new") == 0 {
		t.Error("expected a recommendation.new notification for the critical margin")
	}
	// The same window also trips the hard GOP limit.
	if sink.count("threshold.alert") == 0 {
		t.Error("expected a threshold.alert notification for the critical margin")
	}
}

func TestRunAlertCheck_SkipsPropertiesWithAlertsDisabled(t *testing.T) {
	sink := newEventSink()
	srv := httptest.NewServer(sink)
	defer srv.Close()

	runner, _ := testRunner(srv.URL, false)
	if err := runner.RunAlertCheck(context.Background()); err != nil {
		t.Fatalf("RunAlertCheck() error = %v", err)
	}

	if got := sink.count("recommendation.new") + sink.count("threshold.alert"); got != 0 {
		t.Errorf("expected no notifications with alerts disabled, got %d", got)
	}
}

func TestRunNightlyAnalysis_SavesSnapshotAndSendsDigest(t *testing.T) {
	sink := newEventSink()
	srv := httptest.NewServer(sink)
	defer srv.Close()

	runner, snapshots := testRunner(srv.URL, true)
	if err := runner.RunNightlyAnalysis(context.Background()); err != nil {
		t.Fatalf("RunNightlyAnalysis() error = %v", err)
	}

	if len(snapshots.saved) != 1 {
		t.Fatalf("saved %d snapshots, want 1", len(snapshots.saved))
	}
	snap := snapshots.saved[0]
	if snap.KPIs.GOPMargin >= 0.10 {
		t.Errorf("snapshot GOPMargin = %v, want below 0.10", snap.KPIs.GOPMargin)
	}
	if len(snap.Recommendations) == 0 {
		t.Error("snapshot is missing the recommendations blob")
	}
	if sink.count("analysis.completed") != 1 {
		t.Errorf("analysis.completed notifications = %d, want 1", sink.count("analysis.completed"))
	}
}
