package services

import (
	"context"
	"errors"
	"time"

	"FRANCIGENA_BACK-END/internal/itinerary"
)

// PilgrimStats summarizes a pilgrim's walking history
type PilgrimStats struct {
	TotalTrips int
	TotalKm    float64
	Active     *ActiveTripStats
}

// ActiveTripStats describes the trip in progress. WalkingHours uses the
// hours.minutes encoding.
type ActiveTripStats struct {
	TripID       int64
	Departure    string
	Arrival      string
	StartDate    time.Time
	EndDate      time.Time
	Km           float64
	WalkingHours float64
}

type OwnerStats struct {
	Structures       int
	TotalBeds        int
	TotalBookings    int
	UpcomingBookings int
}

// StatsService computes profile statistics
type StatsService struct {
	trips      TripStore
	structures StructureStore
	bookings   BookingStore
	catalog    *CatalogService
	now        Clock
}

func NewStatsService(trips TripStore, structures StructureStore, bookings BookingStore, catalog *CatalogService, now Clock) *StatsService {
	if now == nil {
		now = time.Now
	}
	return &StatsService{trips: trips, structures: structures, bookings: bookings, catalog: catalog, now: now}
}

func (s *StatsService) Pilgrim(ctx context.Context, username string) (*PilgrimStats, error) {
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	trips, err := s.trips.ListByPilgrim(ctx, username)
	if err != nil {
		return nil, err
	}
	stages, err := s.trips.ListStagesByPilgrim(ctx, username)
	if err != nil {
		return nil, err
	}

	stats := &PilgrimStats{TotalTrips: len(trips)}
	for _, e := range stages {
		if seg, ok := cat.Segment(e.SegmentID); ok {
			stats.TotalKm += seg.DistanceKm
		}
	}

	active, err := s.trips.GetActive(ctx, username, s.now.today())
	if errors.Is(err, ErrNotFound) {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}

	segments, err := cat.Slice(active.StartSegmentID, active.EndSegmentID, active.Reversed)
	if err != nil {
		return nil, err
	}
	a := &ActiveTripStats{TripID: active.ID, StartDate: active.StartDate, EndDate: active.EndDate}
	minutes := 0
	for _, seg := range segments {
		a.Km += seg.DistanceKm
		minutes += itinerary.ToMinutes(seg.DurationHours)
	}
	a.WalkingHours = itinerary.FromMinutes(minutes)
	if w, ok := cat.Waypoint(itinerary.DepartureWaypoint(active.StartSegmentID, active.Reversed)); ok {
		a.Departure = w.Name
	}
	if w, ok := cat.Waypoint(itinerary.ArrivalWaypoint(active.EndSegmentID, active.Reversed)); ok {
		a.Arrival = w.Name
	}
	stats.Active = a

	return stats, nil
}

func (s *StatsService) Owner(ctx context.Context, owner string) (*OwnerStats, error) {
	structures, beds, err := s.structures.SummaryForOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	total, upcoming, err := s.bookings.CountForOwner(ctx, owner, s.now.today())
	if err != nil {
		return nil, err
	}
	return &OwnerStats{
		Structures:       structures,
		TotalBeds:        beds,
		TotalBookings:    total,
		UpcomingBookings: upcoming,
	}, nil
}
