package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"FRANCIGENA_BACK-END/internal/models"
)

const tripColumns = `id, pilgrim_username, start_segment_id, end_segment_id, start_date, end_date,
	party_size, reversed, daily_hour_budget, created_at, updated_at`

const stageColumns = `trip_id, position, segment_id, travel_date, stage_name`

// TripRepository stores trips and their day plans
type TripRepository struct {
	db DB
}

func NewTripRepository(db DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create inserts the trip and fills in its id and timestamps. Creation is
// serialized per pilgrim with an advisory lock, and ErrActiveTrip is returned
// when a trip ending on or after today already exists.
func (r *TripRepository) Create(ctx context.Context, t *models.Trip, today time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, t.PilgrimUsername); err != nil {
		return fmt.Errorf("lock trips of %s: %w", t.PilgrimUsername, err)
	}
	var active bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM trips WHERE pilgrim_username = $1 AND end_date >= $2)
	`, t.PilgrimUsername, today).Scan(&active)
	if err != nil {
		return fmt.Errorf("check active trip: %w", err)
	}
	if active {
		return ErrActiveTrip
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO trips (pilgrim_username, start_segment_id, end_segment_id, start_date, end_date,
		                   party_size, reversed, daily_hour_budget)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, t.PilgrimUsername, t.StartSegmentID, t.EndSegmentID, t.StartDate, t.EndDate,
		t.PartySize, t.Reversed, t.DailyHourBudget,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit trip: %w", err)
	}
	return nil
}

// Update overwrites the trip's bounds, dates and planning parameters
func (r *TripRepository) Update(ctx context.Context, t *models.Trip) error {
	err := r.db.QueryRow(ctx, `
		UPDATE trips
		SET start_segment_id = $2, end_segment_id = $3, start_date = $4, end_date = $5,
		    party_size = $6, reversed = $7, daily_hour_budget = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, t.ID, t.StartSegmentID, t.EndSegmentID, t.StartDate, t.EndDate,
		t.PartySize, t.Reversed, t.DailyHourBudget,
	).Scan(&t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update trip %d: %w", t.ID, notFound(err))
	}
	return nil
}

// Delete removes the trip. Day plan and checklist go with it.
func (r *TripRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trip %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete trip %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *TripRepository) GetByID(ctx context.Context, id int64) (*models.Trip, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query trip %d: %w", id, err)
	}
	t, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Trip])
	if err != nil {
		return nil, fmt.Errorf("trip %d: %w", id, notFound(err))
	}
	return t, nil
}

// GetActive returns the pilgrim's trip that has not ended before today
func (r *TripRepository) GetActive(ctx context.Context, username string, today time.Time) (*models.Trip, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tripColumns+` FROM trips
		WHERE pilgrim_username = $1 AND end_date >= $2
		ORDER BY start_date
		LIMIT 1
	`, username, today)
	if err != nil {
		return nil, fmt.Errorf("query active trip: %w", err)
	}
	t, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Trip])
	if err != nil {
		return nil, fmt.Errorf("active trip of %s: %w", username, notFound(err))
	}
	return t, nil
}

func (r *TripRepository) ListByPilgrim(ctx context.Context, username string) ([]models.Trip, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tripColumns+` FROM trips WHERE pilgrim_username = $1 ORDER BY start_date DESC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("query trips: %w", err)
	}
	trips, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Trip])
	if err != nil {
		return nil, fmt.Errorf("collect trips: %w", err)
	}
	return trips, nil
}

// ListActive returns every trip that has not ended before today
func (r *TripRepository) ListActive(ctx context.Context, today time.Time) ([]models.Trip, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tripColumns+` FROM trips WHERE end_date >= $1 ORDER BY id
	`, today)
	if err != nil {
		return nil, fmt.Errorf("query active trips: %w", err)
	}
	trips, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Trip])
	if err != nil {
		return nil, fmt.Errorf("collect active trips: %w", err)
	}
	return trips, nil
}

// ReplaceDayPlan deletes the trip's day plan and writes the new one in a
// single transaction.
func (r *TripRepository) ReplaceDayPlan(ctx context.Context, tripID int64, entries []models.DayPlanEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM trip_stages WHERE trip_id = $1`, tripID); err != nil {
		return fmt.Errorf("delete day plan of trip %d: %w", tripID, err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"trip_stages"},
		[]string{"trip_id", "position", "segment_id", "travel_date", "stage_name"},
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			return []any{tripID, e.Position, e.SegmentID, e.TravelDate, e.StageName}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("insert day plan of trip %d: %w", tripID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit day plan: %w", err)
	}
	return nil
}

// ListDayPlan returns the trip's entries in walking order
func (r *TripRepository) ListDayPlan(ctx context.Context, tripID int64) ([]models.DayPlanEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+stageColumns+` FROM trip_stages WHERE trip_id = $1 ORDER BY position
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("query day plan: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.DayPlanEntry])
	if err != nil {
		return nil, fmt.Errorf("collect day plan: %w", err)
	}
	return entries, nil
}

// ListStagesByPilgrim returns day plan entries across all of a pilgrim's trips
func (r *TripRepository) ListStagesByPilgrim(ctx context.Context, username string) ([]models.DayPlanEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ts.trip_id, ts.position, ts.segment_id, ts.travel_date, ts.stage_name
		FROM trip_stages ts
		JOIN trips t ON t.id = ts.trip_id
		WHERE t.pilgrim_username = $1
		ORDER BY ts.trip_id, ts.position
	`, username)
	if err != nil {
		return nil, fmt.Errorf("query stages: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.DayPlanEntry])
	if err != nil {
		return nil, fmt.Errorf("collect stages: %w", err)
	}
	return entries, nil
}
