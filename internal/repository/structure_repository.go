package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"FRANCIGENA_BACK-END/internal/models"
)

const structureColumns = `id, owner_username, name, waypoint_id, street, street_number, latitude, longitude,
	total_beds, other_info, color, photo_url, created_at`

// StructureRepository stores lodging structures
type StructureRepository struct {
	db DB
}

func NewStructureRepository(db DB) *StructureRepository {
	return &StructureRepository{db: db}
}

func (r *StructureRepository) List(ctx context.Context) ([]models.Structure, error) {
	rows, err := r.db.Query(ctx, `SELECT `+structureColumns+` FROM structures ORDER BY waypoint_id, name`)
	if err != nil {
		return nil, fmt.Errorf("query structures: %w", err)
	}
	return collectStructures(rows)
}

func (r *StructureRepository) ListByOwner(ctx context.Context, owner string) ([]models.Structure, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+structureColumns+` FROM structures WHERE owner_username = $1 ORDER BY name
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("query owner structures: %w", err)
	}
	return collectStructures(rows)
}

func (r *StructureRepository) GetByID(ctx context.Context, id int64) (*models.Structure, error) {
	rows, err := r.db.Query(ctx, `SELECT `+structureColumns+` FROM structures WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query structure %d: %w", id, err)
	}
	s, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Structure])
	if err != nil {
		return nil, fmt.Errorf("structure %d: %w", id, notFound(err))
	}
	return s, nil
}

// ListColorsByOwner returns the distinct calendar colors the owner already uses
func (r *StructureRepository) ListColorsByOwner(ctx context.Context, owner string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT color FROM structures WHERE owner_username = $1 AND color <> '' ORDER BY color
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("query colors: %w", err)
	}
	colors, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect colors: %w", err)
	}
	return colors, nil
}

func (r *StructureRepository) Create(ctx context.Context, s *models.Structure) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO structures (owner_username, name, waypoint_id, street, street_number, latitude, longitude,
		                        total_beds, other_info, color, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`, s.OwnerUsername, s.Name, s.WaypointID, s.Street, s.StreetNumber, s.Latitude, s.Longitude,
		s.TotalBeds, s.OtherInfo, s.Color, s.PhotoURL,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert structure: %w", err)
	}
	return nil
}

// Update overwrites the structure. The row is locked and the busiest night
// from since onwards is re-read in the same transaction, so a concurrent
// reservation cannot push bookings past the new bed count.
func (r *StructureRepository) Update(ctx context.Context, s *models.Structure, since time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current int
	if err := tx.QueryRow(ctx, `SELECT total_beds FROM structures WHERE id = $1 FOR UPDATE`, s.ID).Scan(&current); err != nil {
		return fmt.Errorf("lock structure %d: %w", s.ID, notFound(err))
	}
	if s.TotalBeds < current {
		var busiest int
		err := tx.QueryRow(ctx, `
			SELECT COALESCE(MAX(occupied_beds), 0) FROM structure_occupancy
			WHERE structure_id = $1 AND stay_date >= $2
		`, s.ID, since).Scan(&busiest)
		if err != nil {
			return fmt.Errorf("busiest night of structure %d: %w", s.ID, err)
		}
		if s.TotalBeds < busiest {
			return fmt.Errorf("update structure %d to %d beds, %d booked: %w", s.ID, s.TotalBeds, busiest, ErrBedsInUse)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE structures
		SET name = $2, waypoint_id = $3, street = $4, street_number = $5, latitude = $6, longitude = $7,
		    total_beds = $8, other_info = $9, color = $10, photo_url = $11
		WHERE id = $1
	`, s.ID, s.Name, s.WaypointID, s.Street, s.StreetNumber, s.Latitude, s.Longitude,
		s.TotalBeds, s.OtherInfo, s.Color, s.PhotoURL)
	if err != nil {
		return fmt.Errorf("update structure %d: %w", s.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit structure update: %w", err)
	}
	return nil
}

// Delete removes the structure and all of its bookings in one transaction.
// The structure row is locked first so no reservation can slip in between.
func (r *StructureRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked int64
	if err := tx.QueryRow(ctx, `SELECT id FROM structures WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		return fmt.Errorf("lock structure %d: %w", id, notFound(err))
	}
	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE structure_id = $1`, id); err != nil {
		return fmt.Errorf("delete bookings of structure %d: %w", id, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM structures WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete structure %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit structure delete: %w", err)
	}
	return nil
}

// SummaryForOwner counts the owner's structures and their beds
func (r *StructureRepository) SummaryForOwner(ctx context.Context, owner string) (structures, beds int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_beds), 0) FROM structures WHERE owner_username = $1
	`, owner).Scan(&structures, &beds)
	if err != nil {
		return 0, 0, fmt.Errorf("summarize structures: %w", err)
	}
	return structures, beds, nil
}

func collectStructures(rows pgx.Rows) ([]models.Structure, error) {
	structures, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Structure])
	if err != nil {
		return nil, fmt.Errorf("collect structures: %w", err)
	}
	return structures, nil
}
