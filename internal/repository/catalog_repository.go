package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"FRANCIGENA_BACK-END/internal/models"
)

// CatalogRepository reads the route catalog
type CatalogRepository struct {
	db DB
}

func NewCatalogRepository(db DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListSegments returns all segments ordered by id with their waypoints
func (r *CatalogRepository) ListSegments(ctx context.Context) ([]models.Segment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.distance_km, s.duration_hours, s.gpx_url,
		       ws.id, ws.name, we.id, we.name
		FROM segments s
		JOIN waypoints ws ON ws.id = s.start_waypoint_id
		JOIN waypoints we ON we.id = s.end_waypoint_id
		ORDER BY s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()

	var segments []models.Segment
	for rows.Next() {
		var s models.Segment
		if err := rows.Scan(
			&s.ID, &s.DistanceKm, &s.DurationHours, &s.GPXURL,
			&s.Start.ID, &s.Start.Name, &s.End.ID, &s.End.Name,
		); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		segments = append(segments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate segments: %w", err)
	}

	return segments, nil
}

// ListWaypoints returns all waypoints ordered by id
func (r *CatalogRepository) ListWaypoints(ctx context.Context) ([]models.Waypoint, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM waypoints ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query waypoints: %w", err)
	}

	waypoints, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Waypoint])
	if err != nil {
		return nil, fmt.Errorf("collect waypoints: %w", err)
	}
	return waypoints, nil
}
