package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Run is one completed search as stored in search_runs.
type Run struct {
	ID                 uuid.UUID `json:"id"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	RadiusMeters       int       `json:"radiusMeters"`
	BusinessTypes      []string  `json:"businessTypes"`
	MaxPages           int       `json:"maxPages"`
	Total              int       `json:"total"`
	WithWebsite        int       `json:"withWebsite"`
	WithoutWebsite     int       `json:"withoutWebsite"`
	EnrichmentFailures int       `json:"enrichmentFailures"`
	FailedTypes        []string  `json:"failedTypes"`
	DurationMs         int64     `json:"durationMs"`
	CreatedAt          time.Time `json:"createdAt"`
}

type Repository interface {
	Insert(ctx context.Context, run Run) error
	ListRecent(ctx context.Context, limit int) ([]Run, error)
}

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Insert stores run. Re-delivered events with the same id are ignored.
func (r *Repo) Insert(ctx context.Context, run Run) error {
	query := `
		INSERT INTO search_runs (
			id, latitude, longitude, radius_meters, business_types, max_pages,
			total, with_website, without_website, enrichment_failures, failed_types,
			duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING`

	failedTypes := run.FailedTypes
	if failedTypes == nil {
		failedTypes = []string{}
	}

	_, err := r.pool.Exec(ctx, query,
		run.ID, run.Latitude, run.Longitude, run.RadiusMeters, run.BusinessTypes, run.MaxPages,
		run.Total, run.WithWebsite, run.WithoutWebsite, run.EnrichmentFailures, failedTypes,
		run.DurationMs, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert search run: %w", err)
	}
	return nil
}

// ListRecent returns the newest runs first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, latitude, longitude, radius_meters, business_types, max_pages,
			total, with_website, without_website, enrichment_failures, failed_types,
			duration_ms, created_at
		FROM search_runs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list search runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		var run Run
		var maxPages int16
		if err := rows.Scan(
			&run.ID, &run.Latitude, &run.Longitude, &run.RadiusMeters, &run.BusinessTypes, &maxPages,
			&run.Total, &run.WithWebsite, &run.WithoutWebsite, &run.EnrichmentFailures, &run.FailedTypes,
			&run.DurationMs, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan search run: %w", err)
		}
		run.MaxPages = int(maxPages)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search runs: %w", err)
	}
	return runs, nil
}
