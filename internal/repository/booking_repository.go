package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"FRANCIGENA_BACK-END/internal/booking"
	"FRANCIGENA_BACK-END/internal/models"
)

// errStructureMissing matches both booking.ErrStructureNotFound and ErrNotFound.
var errStructureMissing = fmt.Errorf("%w: %w", booking.ErrStructureNotFound, ErrNotFound)

const bookingDetailQuery = `
	SELECT b.id, b.structure_id, b.pilgrim_username, b.bed_count, b.stay_date, b.created_at,
	       s.name AS structure_name, s.owner_username, s.waypoint_id, s.color
	FROM bookings b
	JOIN structures s ON s.id = b.structure_id
`

// BookingRepository stores bookings and serves the capacity gate
type BookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) GetTotalBeds(ctx context.Context, structureID int64) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT total_beds FROM structures WHERE id = $1`, structureID).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, errStructureMissing
	}
	if err != nil {
		return 0, fmt.Errorf("read total beds of structure %d: %w", structureID, err)
	}
	return total, nil
}

func (r *BookingRepository) GetOccupancy(ctx context.Context, structureID int64, stayDate time.Time) (int, error) {
	var occupied int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(bed_count), 0) FROM bookings WHERE structure_id = $1 AND stay_date = $2
	`, structureID, stayDate).Scan(&occupied)
	if err != nil {
		return 0, fmt.Errorf("read occupancy of structure %d: %w", structureID, err)
	}
	return occupied, nil
}

// ReserveBeds locks the structure row, re-reads occupancy and inserts the
// booking only when it fits. Concurrent reservations for the same structure
// queue on the row lock. A second booking by the same pilgrim for the same
// night adds to the existing one.
func (r *BookingRepository) ReserveBeds(ctx context.Context, b models.Booking) (booking.Decision, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return booking.Decision{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var total int
	err = tx.QueryRow(ctx, `SELECT total_beds FROM structures WHERE id = $1 FOR UPDATE`, b.StructureID).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return booking.Decision{}, errStructureMissing
	}
	if err != nil {
		return booking.Decision{}, fmt.Errorf("lock structure %d: %w", b.StructureID, err)
	}

	var occupied int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(bed_count), 0) FROM bookings WHERE structure_id = $1 AND stay_date = $2
	`, b.StructureID, b.StayDate).Scan(&occupied)
	if err != nil {
		return booking.Decision{}, fmt.Errorf("read occupancy: %w", err)
	}

	d := booking.Evaluate(occupied, total, b.BedCount)
	if !d.Admitted {
		return d, nil
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (structure_id, pilgrim_username, bed_count, stay_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (structure_id, pilgrim_username, stay_date)
		DO UPDATE SET bed_count = bookings.bed_count + EXCLUDED.bed_count
	`, b.StructureID, b.PilgrimUsername, b.BedCount, b.StayDate)
	if err != nil {
		return booking.Decision{}, fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return booking.Decision{}, fmt.Errorf("commit booking: %w", err)
	}
	return d, nil
}

func (r *BookingRepository) DeleteBooking(ctx context.Context, structureID int64, username string, stayDate time.Time) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM bookings WHERE structure_id = $1 AND pilgrim_username = $2 AND stay_date = $3
	`, structureID, username, stayDate)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking of %s at structure %d on %s: %w",
			username, structureID, stayDate.Format(time.DateOnly), ErrNotFound)
	}
	return nil
}

// ListByPilgrim returns the pilgrim's bookings with stay dates in [from, to]
func (r *BookingRepository) ListByPilgrim(ctx context.Context, username string, from, to time.Time) ([]models.BookingDetail, error) {
	rows, err := r.db.Query(ctx, bookingDetailQuery+`
		WHERE b.pilgrim_username = $1 AND b.stay_date BETWEEN $2 AND $3
		ORDER BY b.stay_date, b.id
	`, username, from, to)
	if err != nil {
		return nil, fmt.Errorf("query pilgrim bookings: %w", err)
	}
	return collectDetails(rows)
}

// ListByOwner returns bookings across all structures of the owner
func (r *BookingRepository) ListByOwner(ctx context.Context, owner string) ([]models.BookingDetail, error) {
	rows, err := r.db.Query(ctx, bookingDetailQuery+`
		WHERE s.owner_username = $1
		ORDER BY b.stay_date, s.name, b.id
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("query owner bookings: %w", err)
	}
	return collectDetails(rows)
}

// ListOccupancy aggregates occupied beds per structure and night in [from, to]
func (r *BookingRepository) ListOccupancy(ctx context.Context, from, to time.Time) ([]models.Occupancy, error) {
	rows, err := r.db.Query(ctx, `
		SELECT structure_id, stay_date, occupied_beds, total_beds
		FROM structure_occupancy
		WHERE stay_date BETWEEN $1 AND $2
		ORDER BY structure_id, stay_date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query occupancy: %w", err)
	}
	occ, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Occupancy])
	if err != nil {
		return nil, fmt.Errorf("collect occupancy: %w", err)
	}
	return occ, nil
}

// MaxOccupancySince is the highest nightly occupancy from the given date on
func (r *BookingRepository) MaxOccupancySince(ctx context.Context, structureID int64, since time.Time) (int, error) {
	var highest int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(occupied_beds), 0) FROM structure_occupancy
		WHERE structure_id = $1 AND stay_date >= $2
	`, structureID, since).Scan(&highest)
	if err != nil {
		return 0, fmt.Errorf("read max occupancy: %w", err)
	}
	return highest, nil
}

// GuestsSince lists pilgrims holding bookings at the structure from the given date on
func (r *BookingRepository) GuestsSince(ctx context.Context, structureID int64, since time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT pilgrim_username FROM bookings
		WHERE structure_id = $1 AND stay_date >= $2
		ORDER BY pilgrim_username
	`, structureID, since)
	if err != nil {
		return nil, fmt.Errorf("query guests: %w", err)
	}
	guests, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect guests: %w", err)
	}
	return guests, nil
}

// CountForOwner counts all bookings and those from the given date on
func (r *BookingRepository) CountForOwner(ctx context.Context, owner string, since time.Time) (total, upcoming int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE b.stay_date >= $2)
		FROM bookings b
		JOIN structures s ON s.id = b.structure_id
		WHERE s.owner_username = $1
	`, owner, since).Scan(&total, &upcoming)
	if err != nil {
		return 0, 0, fmt.Errorf("count owner bookings: %w", err)
	}
	return total, upcoming, nil
}

func collectDetails(rows pgx.Rows) ([]models.BookingDetail, error) {
	details, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BookingDetail])
	if err != nil {
		return nil, fmt.Errorf("collect bookings: %w", err)
	}
	return details, nil
}
