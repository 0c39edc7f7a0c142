package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"FRANCIGENA_BACK-END/internal/config"
	"FRANCIGENA_BACK-END/internal/itinerary"
	"FRANCIGENA_BACK-END/internal/models"
)

// TripPlan is a trip with its day plan in walking order.
type TripPlan struct {
	Trip        models.Trip
	DayPlan     []models.DayPlanEntry
	Unscheduled int
}

type CreateTripInput struct {
	PilgrimUsername     string
	DepartureWaypointID int
	ArrivalWaypointID   int
	StartDate           time.Time
	EndDate             time.Time
	PartySize           int
	// DailyHourBudget uses the hours.minutes encoding; zero means default.
	DailyHourBudget float64
}

// UpdateTripInput carries the fields to change; nil fields are kept.
type UpdateTripInput struct {
	StartDate           *time.Time
	EndDate             *time.Time
	DepartureWaypointID *int
	ArrivalWaypointID   *int
	PartySize           *int
	DailyHourBudget     *float64
}

// EditOptions tells a client which edits keep the trip walkable.
type EditOptions struct {
	Window              itinerary.EditWindow
	ArrivalCandidates   []models.Waypoint
	DepartureCandidates []models.Waypoint
}

// TripService plans and stores pilgrim trips
type TripService struct {
	trips   TripStore
	catalog *CatalogService
	planner config.PlannerConfig
	logger  *slog.Logger
	now     Clock
}

func NewTripService(trips TripStore, catalog *CatalogService, planner config.PlannerConfig, logger *slog.Logger, now Clock) *TripService {
	if now == nil {
		now = time.Now
	}
	return &TripService{trips: trips, catalog: catalog, planner: planner, logger: logger, now: now}
}

// Create plans and stores a new trip. The trip row is removed again if the
// day plan cannot be written.
func (s *TripService) Create(ctx context.Context, in CreateTripInput) (*TripPlan, error) {
	today := s.now.today()
	start, end := itinerary.CivilDate(in.StartDate), itinerary.CivilDate(in.EndDate)

	if !start.After(today) {
		return nil, invalid("start_date", "must be after today")
	}
	if end.Before(start) {
		return nil, invalid("end_date", "must not be before start_date")
	}
	if in.PartySize < 1 {
		return nil, invalid("party_size", "must be at least 1")
	}
	budget, err := s.budget(in.DailyHourBudget)
	if err != nil {
		return nil, err
	}

	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	startSeg, endSeg, reversed, err := s.bounds(cat, in.DepartureWaypointID, in.ArrivalWaypointID)
	if err != nil {
		return nil, err
	}

	if _, err := s.trips.GetActive(ctx, in.PilgrimUsername, today); err == nil {
		return nil, ErrActiveTripExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check active trip: %w", err)
	}

	trip := models.Trip{
		PilgrimUsername: in.PilgrimUsername,
		StartSegmentID:  startSeg,
		EndSegmentID:    endSeg,
		StartDate:       start,
		EndDate:         end,
		PartySize:       in.PartySize,
		Reversed:        reversed,
		DailyHourBudget: budget,
	}
	plan, err := s.plan(cat, trip)
	if err != nil {
		return nil, err
	}

	if err := s.trips.Create(ctx, &trip, today); err != nil {
		if errors.Is(err, ErrActiveTripExists) {
			return nil, ErrActiveTripExists
		}
		return nil, fmt.Errorf("create trip: %w", err)
	}
	setTripID(plan, trip.ID)

	if err := s.trips.ReplaceDayPlan(ctx, trip.ID, plan); err != nil {
		if derr := s.trips.Delete(ctx, trip.ID); derr != nil {
			s.logger.Error("orphan trip left after day plan failure", "trip_id", trip.ID, "error", derr)
		}
		return nil, fmt.Errorf("store day plan: %w", err)
	}

	result := &TripPlan{Trip: trip, DayPlan: plan, Unscheduled: itinerary.Unscheduled(plan)}
	s.logger.Info("trip created",
		"trip_id", trip.ID,
		"pilgrim", trip.PilgrimUsername,
		"segments", len(plan),
		"unscheduled", result.Unscheduled,
	)
	return result, nil
}

// Get returns one of the pilgrim's trips with its day plan.
func (s *TripService) Get(ctx context.Context, username string, id int64) (*TripPlan, error) {
	trip, err := s.owned(ctx, username, id)
	if err != nil {
		return nil, err
	}
	return s.withPlan(ctx, trip)
}

// Active returns the pilgrim's trip that has not yet ended.
func (s *TripService) Active(ctx context.Context, username string) (*TripPlan, error) {
	trip, err := s.trips.GetActive(ctx, username, s.now.today())
	if err != nil {
		return nil, err
	}
	return s.withPlan(ctx, trip)
}

// Waypoints lists the trip's waypoints in walking order.
func (s *TripService) Waypoints(ctx context.Context, username string, id int64) ([]models.Waypoint, error) {
	trip, err := s.owned(ctx, username, id)
	if err != nil {
		return nil, err
	}
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return cat.RouteWaypoints(trip.StartSegmentID, trip.EndSegmentID, trip.Reversed)
}

// Update changes dates, endpoints or planning parameters and replaces the
// day plan wholesale. If the new plan cannot be written the previous trip
// row is restored.
func (s *TripService) Update(ctx context.Context, username string, id int64, in UpdateTripInput) (*TripPlan, error) {
	trip, err := s.owned(ctx, username, id)
	if err != nil {
		return nil, err
	}
	previous := *trip

	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	if in.DepartureWaypointID != nil || in.ArrivalWaypointID != nil {
		dep := itinerary.DepartureWaypoint(trip.StartSegmentID, trip.Reversed)
		arr := itinerary.ArrivalWaypoint(trip.EndSegmentID, trip.Reversed)
		if in.DepartureWaypointID != nil {
			dep = *in.DepartureWaypointID
		}
		if in.ArrivalWaypointID != nil {
			arr = *in.ArrivalWaypointID
		}
		startSeg, endSeg, reversed, err := s.bounds(cat, dep, arr)
		if err != nil {
			return nil, err
		}
		if reversed != trip.Reversed {
			return nil, invalid("arrival_waypoint_id", "would reverse the walking direction")
		}
		trip.StartSegmentID, trip.EndSegmentID = startSeg, endSeg
	}

	if in.StartDate != nil {
		start := itinerary.CivilDate(*in.StartDate)
		if !start.Equal(trip.StartDate) && !start.After(s.now.today()) {
			return nil, invalid("start_date", "must be after today")
		}
		trip.StartDate = start
	}
	if in.EndDate != nil {
		trip.EndDate = itinerary.CivilDate(*in.EndDate)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return nil, invalid("end_date", "must not be before start_date")
	}
	if in.PartySize != nil {
		if *in.PartySize < 1 {
			return nil, invalid("party_size", "must be at least 1")
		}
		trip.PartySize = *in.PartySize
	}
	if in.DailyHourBudget != nil {
		budget, err := s.budget(*in.DailyHourBudget)
		if err != nil {
			return nil, err
		}
		trip.DailyHourBudget = budget
	}

	plan, err := s.plan(cat, *trip)
	if err != nil {
		return nil, err
	}
	setTripID(plan, trip.ID)

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("update trip: %w", err)
	}
	if err := s.trips.ReplaceDayPlan(ctx, trip.ID, plan); err != nil {
		if rerr := s.trips.Update(ctx, &previous); rerr != nil {
			s.logger.Error("trip left inconsistent with its day plan", "trip_id", trip.ID, "error", rerr)
		}
		return nil, fmt.Errorf("replace day plan: %w", err)
	}

	s.logger.Info("trip updated", "trip_id", trip.ID, "segments", len(plan))
	return &TripPlan{Trip: *trip, DayPlan: plan, Unscheduled: itinerary.Unscheduled(plan)}, nil
}

// EditOptions computes the edit window and the reachable alternative
// endpoints for the trip's current day count.
func (s *TripService) EditOptions(ctx context.Context, username string, id int64) (*EditOptions, error) {
	trip, err := s.owned(ctx, username, id)
	if err != nil {
		return nil, err
	}
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	window, err := cat.Window(trip.StartSegmentID, trip.EndSegmentID, trip.Reversed, trip.DailyHourBudget, trip.StartDate)
	if err != nil {
		return nil, err
	}
	days := itinerary.TotalDays(trip.StartDate, trip.EndDate)

	arrivals, err := cat.ReachableEndpoints(trip.StartSegmentID, days, trip.DailyHourBudget, trip.Reversed, itinerary.ArrivalSet)
	if err != nil {
		return nil, err
	}
	departures, err := cat.ReachableEndpoints(trip.EndSegmentID, days, trip.DailyHourBudget, trip.Reversed, itinerary.DepartureSet)
	if err != nil {
		return nil, err
	}

	return &EditOptions{Window: window, ArrivalCandidates: arrivals, DepartureCandidates: departures}, nil
}

// Delete removes the trip together with its day plan and checklist.
func (s *TripService) Delete(ctx context.Context, username string, id int64) error {
	if _, err := s.owned(ctx, username, id); err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("trip deleted", "trip_id", id)
	return nil
}

func (s *TripService) owned(ctx context.Context, username string, id int64) (*models.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip.PilgrimUsername != username {
		return nil, ErrForbidden
	}
	return trip, nil
}

func (s *TripService) withPlan(ctx context.Context, trip *models.Trip) (*TripPlan, error) {
	plan, err := s.trips.ListDayPlan(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	return &TripPlan{Trip: *trip, DayPlan: plan, Unscheduled: itinerary.Unscheduled(plan)}, nil
}

func (s *TripService) budget(requested float64) (float64, error) {
	if requested == 0 {
		return s.planner.DefaultDailyBudget, nil
	}
	if itinerary.ToMinutes(requested) < itinerary.ToMinutes(s.planner.MinDailyBudget) {
		return 0, invalid("daily_hour_budget", "must be at least %.2f", s.planner.MinDailyBudget)
	}
	if itinerary.FromMinutes(itinerary.ToMinutes(requested)) != requested {
		return 0, invalid("daily_hour_budget", "must use the hours.minutes format with minutes below 60")
	}
	return requested, nil
}

func (s *TripService) bounds(cat *itinerary.Catalog, departure, arrival int) (int, int, bool, error) {
	if departure == arrival {
		return 0, 0, false, invalid("arrival_waypoint_id", "arrival must differ from departure")
	}
	return cat.BoundsFromWaypoints(departure, arrival)
}

func (s *TripService) plan(cat *itinerary.Catalog, trip models.Trip) ([]models.DayPlanEntry, error) {
	segments, err := cat.Slice(trip.StartSegmentID, trip.EndSegmentID, trip.Reversed)
	if err != nil {
		return nil, err
	}
	return itinerary.Plan(itinerary.PlanRequest{
		Segments:        segments,
		StartDate:       trip.StartDate,
		EndDate:         trip.EndDate,
		DailyHourBudget: trip.DailyHourBudget,
		Reversed:        trip.Reversed,
	})
}

func setTripID(plan []models.DayPlanEntry, id int64) {
	for i := range plan {
		plan[i].TripID = id
	}
}
