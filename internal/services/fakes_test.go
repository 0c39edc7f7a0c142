package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"FRANCIGENA_BACK-END/internal/booking"
	"FRANCIGENA_BACK-END/internal/config"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/notify"
	"FRANCIGENA_BACK-END/internal/repository"
)

var today = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return today.Add(9 * time.Hour) }

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var testPlanner = config.PlannerConfig{DefaultDailyBudget: 6.00, MinDailyBudget: 1.00}

// catalogSource serves segments 1..n of 2h each, joining waypoints named
// Stop1..Stop(n+1).
type catalogSource struct {
	segments  []models.Segment
	waypoints []models.Waypoint
}

func newCatalogSource(durations ...float64) *catalogSource {
	src := &catalogSource{}
	for i, d := range durations {
		id := i + 1
		start := models.Waypoint{ID: id, Name: fmt.Sprintf("Stop%d", id)}
		end := models.Waypoint{ID: id + 1, Name: fmt.Sprintf("Stop%d", id+1)}
		src.segments = append(src.segments, models.Segment{ID: id, Start: start, End: end, DistanceKm: float64(10 + i), DurationHours: d})
		src.waypoints = append(src.waypoints, start)
	}
	src.waypoints = append(src.waypoints, src.segments[len(src.segments)-1].End)
	return src
}

func (c *catalogSource) ListSegments(context.Context) ([]models.Segment, error) {
	return c.segments, nil
}

func (c *catalogSource) ListWaypoints(context.Context) ([]models.Waypoint, error) {
	return c.waypoints, nil
}

type tripStore struct {
	mu         sync.Mutex
	nextID     int64
	trips      map[int64]models.Trip
	plans      map[int64][]models.DayPlanEntry
	replaceErr error
	updates    int
}

func newTripStore() *tripStore {
	return &tripStore{trips: map[int64]models.Trip{}, plans: map[int64][]models.DayPlanEntry{}}
}

func (s *tripStore) Create(_ context.Context, t *models.Trip, today time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.trips {
		if other.PilgrimUsername == t.PilgrimUsername && !other.EndDate.Before(today) {
			return ErrActiveTripExists
		}
	}
	s.nextID++
	t.ID = s.nextID
	s.trips[t.ID] = *t
	return nil
}

func (s *tripStore) Update(_ context.Context, t *models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[t.ID]; !ok {
		return ErrNotFound
	}
	s.updates++
	s.trips[t.ID] = *t
	return nil
}

func (s *tripStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[id]; !ok {
		return ErrNotFound
	}
	delete(s.trips, id)
	delete(s.plans, id)
	return nil
}

func (s *tripStore) GetByID(_ context.Context, id int64) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[id]
	if !ok {
		return nil, fmt.Errorf("trip %d: %w", id, ErrNotFound)
	}
	return &t, nil
}

func (s *tripStore) GetActive(_ context.Context, username string, today time.Time) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.sorted() {
		if t.PilgrimUsername == username && !t.EndDate.Before(today) {
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (s *tripStore) ListByPilgrim(_ context.Context, username string) ([]models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Trip
	for _, t := range s.sorted() {
		if t.PilgrimUsername == username {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *tripStore) ListActive(_ context.Context, today time.Time) ([]models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Trip
	for _, t := range s.sorted() {
		if !t.EndDate.Before(today) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *tripStore) ReplaceDayPlan(_ context.Context, tripID int64, entries []models.DayPlanEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.plans[tripID] = append([]models.DayPlanEntry(nil), entries...)
	return nil
}

func (s *tripStore) ListDayPlan(_ context.Context, tripID int64) ([]models.DayPlanEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plans[tripID], nil
}

func (s *tripStore) ListStagesByPilgrim(_ context.Context, username string) ([]models.DayPlanEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.DayPlanEntry
	for _, t := range s.sorted() {
		if t.PilgrimUsername == username {
			out = append(out, s.plans[t.ID]...)
		}
	}
	return out, nil
}

func (s *tripStore) sorted() []models.Trip {
	out := make([]models.Trip, 0, len(s.trips))
	for _, t := range s.trips {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type bookingStore struct {
	mu         sync.Mutex
	structures *structureStore
	bookings   []models.Booking
}

func (s *bookingStore) GetTotalBeds(ctx context.Context, structureID int64) (int, error) {
	st, err := s.structures.GetByID(ctx, structureID)
	if err != nil {
		return 0, booking.ErrStructureNotFound
	}
	return st.TotalBeds, nil
}

func (s *bookingStore) GetOccupancy(_ context.Context, structureID int64, stayDate time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.occupied(structureID, stayDate), nil
}

func (s *bookingStore) ReserveBeds(ctx context.Context, b models.Booking) (booking.Decision, error) {
	total, err := s.GetTotalBeds(ctx, b.StructureID)
	if err != nil {
		return booking.Decision{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := booking.Evaluate(s.occupied(b.StructureID, b.StayDate), total, b.BedCount)
	if d.Admitted {
		s.bookings = append(s.bookings, b)
	}
	return d, nil
}

func (s *bookingStore) DeleteBooking(_ context.Context, structureID int64, username string, stayDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.bookings {
		if b.StructureID == structureID && b.PilgrimUsername == username && b.StayDate.Equal(stayDate) {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *bookingStore) ListByPilgrim(_ context.Context, username string, from, to time.Time) ([]models.BookingDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BookingDetail
	for _, b := range s.bookings {
		if b.PilgrimUsername == username && !b.StayDate.Before(from) && !b.StayDate.After(to) {
			out = append(out, models.BookingDetail{Booking: b})
		}
	}
	return out, nil
}

func (s *bookingStore) ListByOwner(context.Context, string) ([]models.BookingDetail, error) {
	return nil, nil
}

func (s *bookingStore) ListOccupancy(context.Context, time.Time, time.Time) ([]models.Occupancy, error) {
	return nil, nil
}

func (s *bookingStore) MaxOccupancySince(_ context.Context, structureID int64, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	highest := 0
	for _, b := range s.bookings {
		if b.StructureID == structureID && !b.StayDate.Before(since) {
			highest = max(highest, s.occupied(structureID, b.StayDate))
		}
	}
	return highest, nil
}

func (s *bookingStore) GuestsSince(_ context.Context, structureID int64, since time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, b := range s.bookings {
		if b.StructureID == structureID && !b.StayDate.Before(since) {
			out = append(out, b.PilgrimUsername)
		}
	}
	return out, nil
}

func (s *bookingStore) CountForOwner(ctx context.Context, owner string, since time.Time) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total, upcoming := 0, 0
	for _, b := range s.bookings {
		st, err := s.structures.GetByID(ctx, b.StructureID)
		if err != nil || st.OwnerUsername != owner {
			continue
		}
		total++
		if !b.StayDate.Before(since) {
			upcoming++
		}
	}
	return total, upcoming, nil
}

func (s *bookingStore) occupied(structureID int64, stayDate time.Time) int {
	n := 0
	for _, b := range s.bookings {
		if b.StructureID == structureID && b.StayDate.Equal(stayDate) {
			n += b.BedCount
		}
	}
	return n
}

type structureStore struct {
	mu         sync.Mutex
	nextID     int64
	structures map[int64]models.Structure
	deleted    []int64

	// busiest reports the most beds booked on one night from since onwards.
	busiest func(ctx context.Context, id int64, since time.Time) (int, error)
	// beforeUpdate runs at the start of Update, outside the lock.
	beforeUpdate func()
}

func newStructureStore() *structureStore {
	return &structureStore{structures: map[int64]models.Structure{}}
}

func (s *structureStore) add(st models.Structure) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	st.ID = s.nextID
	s.structures[st.ID] = st
	return st.ID
}

func (s *structureStore) List(context.Context) ([]models.Structure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Structure
	for _, st := range s.structures {
		out = append(out, st)
	}
	return out, nil
}

func (s *structureStore) ListByOwner(_ context.Context, owner string) ([]models.Structure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Structure
	for _, st := range s.structures {
		if st.OwnerUsername == owner {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *structureStore) GetByID(_ context.Context, id int64) (*models.Structure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.structures[id]
	if !ok {
		return nil, fmt.Errorf("structure %d: %w", id, ErrNotFound)
	}
	return &st, nil
}

func (s *structureStore) ListColorsByOwner(context.Context, string) ([]string, error) {
	return nil, nil
}

func (s *structureStore) Create(_ context.Context, st *models.Structure) error {
	st.ID = s.add(*st)
	return nil
}

// Update rejects a bed count below the busiest night from since onwards.
// Bookings are read before taking the lock, so callers must not reserve
// concurrently with an update.
func (s *structureStore) Update(ctx context.Context, st *models.Structure, since time.Time) error {
	if s.beforeUpdate != nil {
		s.beforeUpdate()
	}
	busiest := 0
	if s.busiest != nil {
		n, err := s.busiest(ctx, st.ID, since)
		if err != nil {
			return err
		}
		busiest = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.structures[st.ID]
	if !ok {
		return ErrNotFound
	}
	if st.TotalBeds < current.TotalBeds && st.TotalBeds < busiest {
		return fmt.Errorf("structure %d: %w", st.ID, repository.ErrBedsInUse)
	}
	s.structures[st.ID] = *st
	return nil
}

func (s *structureStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.structures[id]; !ok {
		return ErrNotFound
	}
	delete(s.structures, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *structureStore) SummaryForOwner(_ context.Context, owner string) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count, beds := 0, 0
	for _, st := range s.structures {
		if st.OwnerUsername == owner {
			count++
			beds += st.TotalBeds
		}
	}
	return count, beds, nil
}

type ownerCall struct {
	Kind        notify.Kind
	StructureID int64
	StayDate    time.Time
}

type pilgrimCall struct {
	Kind       notify.Kind
	Venue      notify.Venue
	Recipients []string
}

// recorder is a synchronous Dispatcher that remembers every call.
type recorder struct {
	mu       sync.Mutex
	owners   []ownerCall
	pilgrims []pilgrimCall
}

func (r *recorder) NotifyOwner(kind notify.Kind, structureID int64, stayDate time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners = append(r.owners, ownerCall{kind, structureID, stayDate})
}

func (r *recorder) NotifyPilgrims(kind notify.Kind, venue notify.Venue, recipients []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pilgrims = append(r.pilgrims, pilgrimCall{kind, venue, recipients})
}

type env struct {
	catalog    *CatalogService
	trips      *tripStore
	structures *structureStore
	bookings   *bookingStore
	notifier   *recorder
}

func newEnv(t *testing.T) *env {
	t.Helper()
	structures := newStructureStore()
	bookings := &bookingStore{structures: structures}
	structures.busiest = bookings.MaxOccupancySince
	return &env{
		catalog:    NewCatalogService(newCatalogSource(2, 2, 2, 2, 2, 2, 2, 2), discard),
		trips:      newTripStore(),
		structures: structures,
		bookings:   bookings,
		notifier:   &recorder{},
	}
}

func (e *env) tripService() *TripService {
	return NewTripService(e.trips, e.catalog, testPlanner, discard, fixedClock)
}

func (e *env) bookingService() *BookingService {
	return NewBookingService(e.bookings, e.notifier, discard, fixedClock)
}

func (e *env) structureService() *StructureService {
	return NewStructureService(e.structures, e.bookings, e.trips, e.catalog, e.notifier, discard, fixedClock)
}

var errBoom = errors.New("boom")
