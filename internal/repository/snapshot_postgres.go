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

// PostgresSnapshotRepository implements SnapshotRepository for PostgreSQL.
type PostgresSnapshotRepository struct {
	db *sql.DB
}

// NewPostgresSnapshotRepository creates a new PostgresSnapshotRepository.
func NewPostgresSnapshotRepository(db *sql.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

func (r *PostgresSnapshotRepository) Save(ctx context.Context, snapshot *model.AnalysisSnapshot) error {
	kpisJSON, _ := json.Marshal(snapshot.KPIs)
	return r.db.QueryRowContext(ctx, `
		INSERT INTO analysis_snapshots (property_id, generated_at, kpis, context, recommendations, insights, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id
	`, snapshot.PropertyID, snapshot.GeneratedAt, kpisJSON,
		snapshot.Context, snapshot.Recommendations, snapshot.Insights).Scan(&snapshot.ID)
}

func (r *PostgresSnapshotRepository) GetLatest(ctx context.Context, propertyID uuid.UUID) (*model.AnalysisSnapshot, error) {
	var s model.AnalysisSnapshot
	var kpisJSON []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, property_id, generated_at, kpis, context, recommendations, insights, created_at
		FROM analysis_snapshots WHERE property_id = $1 ORDER BY generated_at DESC LIMIT 1
	`, propertyID).Scan(&s.ID, &s.PropertyID, &s.GeneratedAt, &kpisJSON,
		&s.Context, &s.Recommendations, &s.Insights, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	json.Unmarshal(kpisJSON, &s.KPIs)
	return &s, nil
}

func (r *PostgresSnapshotRepository) List(ctx context.Context, propertyID uuid.UUID, pagination model.Pagination) ([]*model.AnalysisSnapshot, int, error) {
	var total int
	r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analysis_snapshots WHERE property_id = $1", propertyID).Scan(&total)

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, property_id, generated_at, kpis, context, recommendations, insights, created_at
		FROM analysis_snapshots WHERE property_id = $1 ORDER BY generated_at DESC LIMIT %d OFFSET %d
	`, pagination.PageSize, (pagination.Page-1)*pagination.PageSize), propertyID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var snapshots []*model.AnalysisSnapshot
	for rows.Next() {
		var s model.AnalysisSnapshot
		var kpisJSON []byte
		err := rows.Scan(&s.ID, &s.PropertyID, &s.GeneratedAt, &kpisJSON,
			&s.Context, &s.Recommendations, &s.Insights, &s.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		json.Unmarshal(kpisJSON, &s.KPIs)
		snapshots = append(snapshots, &s)
	}
	return snapshots, total, rows.Err()
}

// DeleteOlderThan prunes snapshots before the cutoff, returning how many
// rows were removed. The nightly job uses it to cap retention.
func (r *PostgresSnapshotRepository) DeleteOlderThan(ctx context.Context, propertyID uuid.UUID, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM analysis_snapshots WHERE property_id = $1 AND generated_at < $2
	`, propertyID, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// EnsureTable creates the analysis_snapshots table if it doesn't exist.
func (r *PostgresSnapshotRepository) EnsureTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_snapshots (
			id BIGSERIAL PRIMARY KEY,
			property_id UUID NOT NULL REFERENCES properties(id),
			generated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			kpis JSONB NOT NULL DEFAULT '{}',
			context JSONB NOT NULL DEFAULT '{}',
			recommendations JSONB NOT NULL DEFAULT '[]',
			insights JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create analysis_snapshots table: %w", err)
	}

	// Index for fast latest-per-property lookup
	r.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_snapshots_property_generated ON analysis_snapshots (property_id, generated_at DESC)`)
	return nil
}
