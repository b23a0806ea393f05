// Package repository provides PostgreSQL repository implementations.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotelmind/backend/internal/model"
)

// PostgresCostRepository implements CostRepository for PostgreSQL.
type PostgresCostRepository struct {
	db *sql.DB
}

// NewPostgresCostRepository creates a new PostgresCostRepository.
func NewPostgresCostRepository(db *sql.DB) *PostgresCostRepository {
	return &PostgresCostRepository{db: db}
}

func (r *PostgresCostRepository) Create(ctx context.Context, cost *model.CostRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO costs (id, property_id, period, category, supplier, amount, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, cost.ID, cost.PropertyID, cost.Period, cost.Category, cost.Supplier,
		cost.Amount, cost.Date, cost.CreatedAt, cost.UpdatedAt)
	return err
}

func (r *PostgresCostRepository) CreateBatch(ctx context.Context, costs []*model.CostRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO costs (id, property_id, period, category, supplier, amount, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (property_id, period, category, supplier)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, cost := range costs {
		_, err := stmt.ExecContext(ctx, cost.ID, cost.PropertyID, cost.Period, cost.Category,
			cost.Supplier, cost.Amount, cost.Date, cost.CreatedAt, cost.UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresCostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CostRecord, error) {
	var cost model.CostRecord
	err := r.db.QueryRowContext(ctx, `
		SELECT id, property_id, period, category, supplier, amount, date, created_at, updated_at
		FROM costs WHERE id = $1
	`, id).Scan(&cost.ID, &cost.PropertyID, &cost.Period, &cost.Category, &cost.Supplier,
		&cost.Amount, &cost.Date, &cost.CreatedAt, &cost.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cost, nil
}

func (r *PostgresCostRepository) List(ctx context.Context, filter model.CostFilter, pagination model.Pagination) ([]*model.CostRecord, int, error) {
	where := "WHERE property_id = $1 AND period >= $2 AND period <= $3"
	args := []interface{}{filter.PropertyID, filter.FromPeriod, filter.ToPeriod}
	if len(filter.Categories) > 0 {
		where += " AND category = ANY($4)"
		cats := make([]string, len(filter.Categories))
		for i, c := range filter.Categories {
			cats[i] = string(c)
		}
		args = append(args, cats)
	}

	var total int
	r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM costs "+where, args...).Scan(&total)

	query := fmt.Sprintf(`
		SELECT id, property_id, period, category, supplier, amount, date, created_at, updated_at
		FROM costs %s ORDER BY period DESC, category ASC LIMIT %d OFFSET %d
	`, where, pagination.PageSize, (pagination.Page-1)*pagination.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var costs []*model.CostRecord
	for rows.Next() {
		var cost model.CostRecord
		err := rows.Scan(&cost.ID, &cost.PropertyID, &cost.Period, &cost.Category, &cost.Supplier,
			&cost.Amount, &cost.Date, &cost.CreatedAt, &cost.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		costs = append(costs, &cost)
	}

	return costs, total, rows.Err()
}

// ListByPeriod returns cost records grouped into per-month buckets, ordered
// by period ascending, ready for the analytics layer.
func (r *PostgresCostRepository) ListByPeriod(ctx context.Context, propertyID uuid.UUID, fromPeriod, toPeriod string) ([]model.PeriodCosts, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, property_id, period, category, supplier, amount, date, created_at, updated_at
		FROM costs WHERE property_id = $1 AND period >= $2 AND period <= $3
		ORDER BY period ASC, category ASC
	`, propertyID, fromPeriod, toPeriod)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grouped []model.PeriodCosts
	for rows.Next() {
		var cost model.CostRecord
		err := rows.Scan(&cost.ID, &cost.PropertyID, &cost.Period, &cost.Category, &cost.Supplier,
			&cost.Amount, &cost.Date, &cost.CreatedAt, &cost.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if n := len(grouped); n == 0 || grouped[n-1].Period != cost.Period {
			grouped = append(grouped, model.PeriodCosts{Period: cost.Period})
		}
		grouped[len(grouped)-1].Records = append(grouped[len(grouped)-1].Records, cost)
	}
	return grouped, rows.Err()
}

func (r *PostgresCostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM costs WHERE id = $1", id)
	return err
}

// PostgresRevenueRepository implements RevenueRepository for PostgreSQL.
type PostgresRevenueRepository struct {
	db *sql.DB
}

// NewPostgresRevenueRepository creates a new PostgresRevenueRepository.
func NewPostgresRevenueRepository(db *sql.DB) *PostgresRevenueRepository {
	return &PostgresRevenueRepository{db: db}
}

func (r *PostgresRevenueRepository) Upsert(ctx context.Context, period *model.RevenuePeriod) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO revenue_periods (property_id, period, room_revenue, occupancy, adr, rooms_sold, guest_nights, fnb_revenue, ancillary_revenue, bookings, ota_commissions, days_open, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (property_id, period) DO UPDATE SET
			room_revenue = EXCLUDED.room_revenue,
			occupancy = EXCLUDED.occupancy,
			adr = EXCLUDED.adr,
			rooms_sold = EXCLUDED.rooms_sold,
			guest_nights = EXCLUDED.guest_nights,
			fnb_revenue = EXCLUDED.fnb_revenue,
			ancillary_revenue = EXCLUDED.ancillary_revenue,
			bookings = EXCLUDED.bookings,
			ota_commissions = EXCLUDED.ota_commissions,
			days_open = EXCLUDED.days_open,
			updated_at = NOW()
	`, period.PropertyID, period.Period, period.RoomRevenue, period.Occupancy, period.ADR,
		period.RoomsSold, period.GuestNights, period.FnBRevenue, period.AncillaryRevenue,
		period.Bookings, period.OTACommissions, period.DaysOpen)
	return err
}

func (r *PostgresRevenueRepository) UpsertBatch(ctx context.Context, periods []*model.RevenuePeriod) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range periods {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO revenue_periods (property_id, period, room_revenue, occupancy, adr, rooms_sold, guest_nights, fnb_revenue, ancillary_revenue, bookings, ota_commissions, days_open, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
			ON CONFLICT (property_id, period) DO UPDATE SET
				room_revenue = EXCLUDED.room_revenue,
				occupancy = EXCLUDED.occupancy,
				adr = EXCLUDED.adr,
				rooms_sold = EXCLUDED.rooms_sold,
				guest_nights = EXCLUDED.guest_nights,
				fnb_revenue = EXCLUDED.fnb_revenue,
				ancillary_revenue = EXCLUDED.ancillary_revenue,
				bookings = EXCLUDED.bookings,
				ota_commissions = EXCLUDED.ota_commissions,
				days_open = EXCLUDED.days_open,
				updated_at = NOW()
		`, p.PropertyID, p.Period, p.RoomRevenue, p.Occupancy, p.ADR, p.RoomsSold,
			p.GuestNights, p.FnBRevenue, p.AncillaryRevenue, p.Bookings, p.OTACommissions, p.DaysOpen)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRevenueRepository) ListPeriods(ctx context.Context, propertyID uuid.UUID, fromPeriod, toPeriod string) ([]model.RevenuePeriod, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT property_id, period, room_revenue, occupancy, adr, rooms_sold, guest_nights, fnb_revenue, ancillary_revenue, bookings, ota_commissions, days_open
		FROM revenue_periods WHERE property_id = $1 AND period >= $2 AND period <= $3
		ORDER BY period ASC
	`, propertyID, fromPeriod, toPeriod)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []model.RevenuePeriod
	for rows.Next() {
		var p model.RevenuePeriod
		err := rows.Scan(&p.PropertyID, &p.Period, &p.RoomRevenue, &p.Occupancy, &p.ADR,
			&p.RoomsSold, &p.GuestNights, &p.FnBRevenue, &p.AncillaryRevenue,
			&p.Bookings, &p.OTACommissions, &p.DaysOpen)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (r *PostgresRevenueRepository) UpsertDaily(ctx context.Context, propertyID uuid.UUID, days []model.DailyPerformance) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_performance (property_id, date, revenue, occupancy)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (property_id, date) DO UPDATE SET
			revenue = EXCLUDED.revenue, occupancy = EXCLUDED.occupancy
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range days {
		if _, err := stmt.ExecContext(ctx, propertyID, d.Date, d.Revenue, d.Occupancy); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRevenueRepository) ListDaily(ctx context.Context, propertyID uuid.UUID, dateRange model.DateRange) ([]model.DailyPerformance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, revenue, occupancy FROM daily_performance
		WHERE property_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`, propertyID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []model.DailyPerformance
	for rows.Next() {
		var d model.DailyPerformance
		if err := rows.Scan(&d.Date, &d.Revenue, &d.Occupancy); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *PostgresRevenueRepository) DeletePeriod(ctx context.Context, propertyID uuid.UUID, period string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM revenue_periods WHERE property_id = $1 AND period = $2
	`, propertyID, period)
	return err
}

// PostgresPropertyRepository implements PropertyRepository for PostgreSQL.
type PostgresPropertyRepository struct {
	db *sql.DB
}

// NewPostgresPropertyRepository creates a new PostgresPropertyRepository.
func NewPostgresPropertyRepository(db *sql.DB) *PostgresPropertyRepository {
	return &PostgresPropertyRepository{db: db}
}

func (r *PostgresPropertyRepository) Create(ctx context.Context, property *model.Property) error {
	profileJSON, _ := json.Marshal(property.Profile)
	settingsJSON, _ := json.Marshal(property.Settings)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO properties (id, name, profile, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, property.ID, property.Name, profileJSON, settingsJSON, property.CreatedAt, property.UpdatedAt)
	return err
}

func (r *PostgresPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	var property model.Property
	var profileJSON, settingsJSON []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, profile, settings, created_at, updated_at FROM properties WHERE id = $1
	`, id).Scan(&property.ID, &property.Name, &profileJSON, &settingsJSON, &property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		return nil, err
	}
	json.Unmarshal(profileJSON, &property.Profile)
	json.Unmarshal(settingsJSON, &property.Settings)
	return &property, nil
}

func (r *PostgresPropertyRepository) List(ctx context.Context) ([]*model.Property, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, profile, settings, created_at, updated_at FROM properties`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*model.Property
	for rows.Next() {
		var property model.Property
		var profileJSON, settingsJSON []byte
		err := rows.Scan(&property.ID, &property.Name, &profileJSON, &settingsJSON, &property.CreatedAt, &property.UpdatedAt)
		if err != nil {
			return nil, err
		}
		json.Unmarshal(profileJSON, &property.Profile)
		json.Unmarshal(settingsJSON, &property.Settings)
		properties = append(properties, &property)
	}
	return properties, rows.Err()
}

func (r *PostgresPropertyRepository) Update(ctx context.Context, property *model.Property) error {
	profileJSON, _ := json.Marshal(property.Profile)
	settingsJSON, _ := json.Marshal(property.Settings)
	property.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		UPDATE properties SET name = $2, profile = $3, settings = $4, updated_at = $5 WHERE id = $1
	`, property.ID, property.Name, profileJSON, settingsJSON, property.UpdatedAt)
	return err
}

func (r *PostgresPropertyRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings model.PropertySettings) error {
	settingsJSON, _ := json.Marshal(settings)
	_, err := r.db.ExecContext(ctx, `
		UPDATE properties SET settings = $2, updated_at = $3 WHERE id = $1
	`, id, settingsJSON, time.Now().UTC())
	return err
}

// SetRateShopperCredential stores the AES-GCM encrypted credential blob.
// It lives in its own column because settings serialize without it.
func (r *PostgresPropertyRepository) SetRateShopperCredential(ctx context.Context, id uuid.UUID, encrypted []byte) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE properties SET rate_shopper_credential = $2, updated_at = $3 WHERE id = $1
	`, id, encrypted, time.Now().UTC())
	return err
}

// GetRateShopperCredential loads the encrypted credential blob, nil if unset.
func (r *PostgresPropertyRepository) GetRateShopperCredential(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var encrypted []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT rate_shopper_credential FROM properties WHERE id = $1
	`, id).Scan(&encrypted)
	if err != nil {
		return nil, err
	}
	return encrypted, nil
}

func (r *PostgresPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM properties WHERE id = $1", id)
	return err
}
