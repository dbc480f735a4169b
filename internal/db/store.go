package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voltguard/backend/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// EnsureSchema creates the incidents table on startup when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS incidents (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			subcategory TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL,
			severity TEXT NOT NULL,
			status TEXT NOT NULL,
			building TEXT NOT NULL,
			room TEXT NOT NULL DEFAULT '',
			gps_lat DOUBLE PRECISION,
			gps_lng DOUBLE PRECISION,
			equipment TEXT NOT NULL DEFAULT '',
			images TEXT[] NOT NULL DEFAULT '{}',
			assigned_to TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			resolved_at TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_incidents_building_created
			ON incidents (building, created_at DESC);
	`)
	return err
}

const incidentColumns = `id, title, category, subcategory, description, severity, status,
	building, room, gps_lat, gps_lng, equipment, images, assigned_to,
	created_at, updated_at, resolved_at`

func scanIncident(row pgx.Row) (models.Incident, error) {
	var (
		inc    models.Incident
		lat    *float64
		lng    *float64
		images []string
	)
	err := row.Scan(
		&inc.ID, &inc.Title, &inc.Category, &inc.Subcategory, &inc.Description,
		&inc.Severity, &inc.Status, &inc.Location.Building, &inc.Location.Room,
		&lat, &lng, &inc.Equipment, &images, &inc.AssignedTo,
		&inc.CreatedAt, &inc.UpdatedAt, &inc.ResolvedAt,
	)
	if err != nil {
		return models.Incident{}, err
	}
	inc.Images = images
	if lat != nil && lng != nil {
		inc.Location.GPS = &models.GPS{Lat: *lat, Lng: *lng}
	}
	return inc, nil
}

func incidentArgs(inc models.Incident) []any {
	var lat, lng *float64
	if inc.Location.GPS != nil {
		lat = &inc.Location.GPS.Lat
		lng = &inc.Location.GPS.Lng
	}
	images := inc.Images
	if images == nil {
		images = []string{}
	}
	return []any{
		inc.ID, inc.Title, inc.Category, inc.Subcategory, inc.Description,
		inc.Severity, inc.Status, inc.Location.Building, inc.Location.Room,
		lat, lng, inc.Equipment, images, inc.AssignedTo,
		inc.CreatedAt, inc.UpdatedAt, inc.ResolvedAt,
	}
}

func (s *Store) InsertIncident(ctx context.Context, inc models.Incident) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO incidents (`+incidentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`, incidentArgs(inc)...)
	return err
}

// ListIncidents returns all incidents newest-first.
func (s *Store) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+incidentColumns+` FROM incidents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Incident
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inc)
	}
	return out, rows.Err()
}

func (s *Store) GetIncident(ctx context.Context, id string) (models.Incident, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT `+incidentColumns+` FROM incidents WHERE id = $1
	`, id)
	return scanIncident(row)
}

// ListRecentByBuilding returns incidents in one building created at or after
// since, newest-first. Used by the duplicate detector.
func (s *Store) ListRecentByBuilding(ctx context.Context, building string, since time.Time) ([]models.Incident, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+incidentColumns+` FROM incidents
		WHERE building = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`, building, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Incident
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inc)
	}
	return out, rows.Err()
}

// UpdateIncidentStatus patches status (and assigned_to when provided), bumps
// updated_at and stamps resolved_at exactly once on the transition to
// resolved.
func (s *Store) UpdateIncidentStatus(ctx context.Context, id, status string, assignedTo *string) (models.Incident, error) {
	now := time.Now().UTC()
	row := s.Pool.QueryRow(ctx, `
		UPDATE incidents SET
			status = $2,
			assigned_to = COALESCE($3, assigned_to),
			updated_at = $4,
			resolved_at = CASE
				WHEN $2 = 'resolved' AND resolved_at IS NULL THEN $4
				WHEN $2 <> 'resolved' THEN NULL
				ELSE resolved_at
			END
		WHERE id = $1
		RETURNING `+incidentColumns+`
	`, id, status, assignedTo, now)
	return scanIncident(row)
}

// SeedIncidents wipes the table and bulk-loads the sample set.
func (s *Store) SeedIncidents(ctx context.Context, incidents []models.Incident) (int64, error) {
	if err := s.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `TRUNCATE incidents`)
		return err
	}); err != nil {
		return 0, err
	}

	rows := make([][]any, 0, len(incidents))
	for _, inc := range incidents {
		rows = append(rows, incidentArgs(inc))
	}
	return s.Pool.CopyFrom(ctx, pgx.Identifier{"incidents"}, []string{
		"id", "title", "category", "subcategory", "description", "severity", "status",
		"building", "room", "gps_lat", "gps_lng", "equipment", "images", "assigned_to",
		"created_at", "updated_at", "resolved_at",
	}, pgx.CopyFromRows(rows))
}

func (s *Store) CountIncidents(ctx context.Context) (int, error) {
	var n int
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM incidents`).Scan(&n)
	return n, err
}
