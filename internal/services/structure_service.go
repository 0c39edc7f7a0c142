package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"FRANCIGENA_BACK-END/internal/itinerary"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/notify"
	"FRANCIGENA_BACK-END/internal/repository"
)

// StructureInput holds the editable fields of a structure
type StructureInput struct {
	Name         string
	WaypointID   int
	Street       string
	StreetNumber string
	Latitude     *float64
	Longitude    *float64
	TotalBeds    int
	OtherInfo    string
	Color        string
	PhotoURL     *string
}

// StructureService manages lodging structures owned by hosts
type StructureService struct {
	structures StructureStore
	bookings   BookingStore
	trips      TripStore
	catalog    *CatalogService
	notifier   notify.Dispatcher
	logger     *slog.Logger
	now        Clock
}

func NewStructureService(structures StructureStore, bookings BookingStore, trips TripStore, catalog *CatalogService, notifier notify.Dispatcher, logger *slog.Logger, now Clock) *StructureService {
	if now == nil {
		now = time.Now
	}
	return &StructureService{
		structures: structures,
		bookings:   bookings,
		trips:      trips,
		catalog:    catalog,
		notifier:   notifier,
		logger:     logger,
		now:        now,
	}
}

func (s *StructureService) List(ctx context.Context) ([]models.Structure, error) {
	return s.structures.List(ctx)
}

func (s *StructureService) Get(ctx context.Context, id int64) (*models.Structure, error) {
	return s.structures.GetByID(ctx, id)
}

func (s *StructureService) Mine(ctx context.Context, owner string) ([]models.Structure, error) {
	return s.structures.ListByOwner(ctx, owner)
}

func (s *StructureService) Colors(ctx context.Context, owner string) ([]string, error) {
	return s.structures.ListColorsByOwner(ctx, owner)
}

// Create stores a new structure and tells pilgrims whose active trip walks
// through its waypoint.
func (s *StructureService) Create(ctx context.Context, owner string, in StructureInput) (*models.Structure, error) {
	waypoint, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	st := &models.Structure{OwnerUsername: owner}
	apply(st, in)
	if err := s.structures.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("create structure: %w", err)
	}
	s.logger.Info("structure created", "structure_id", st.ID, "owner", owner, "waypoint_id", st.WaypointID)

	s.notifyRoute(ctx, st, waypoint)
	return st, nil
}

// Update changes a structure. Total beds cannot drop below the busiest
// night still to come.
func (s *StructureService) Update(ctx context.Context, owner string, id int64, in StructureInput) (*models.Structure, error) {
	st, err := s.owned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	today := s.now.today()
	if in.TotalBeds < st.TotalBeds {
		busiest, err := s.bookings.MaxOccupancySince(ctx, id, today)
		if err != nil {
			return nil, err
		}
		if in.TotalBeds < busiest {
			return nil, invalid("total_beds", "%d beds are already booked on a future night", busiest)
		}
	}

	apply(st, in)
	if err := s.structures.Update(ctx, st, today); err != nil {
		if errors.Is(err, repository.ErrBedsInUse) {
			return nil, invalid("total_beds", "beds were booked on a future night meanwhile")
		}
		return nil, err
	}
	return st, nil
}

// Delete removes the structure with its bookings and tells the pilgrims
// who had booked a future night there.
func (s *StructureService) Delete(ctx context.Context, owner string, id int64) error {
	st, err := s.owned(ctx, owner, id)
	if err != nil {
		return err
	}

	guests, err := s.bookings.GuestsSince(ctx, id, s.now.today())
	if err != nil {
		return err
	}
	if err := s.structures.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("structure deleted", "structure_id", id, "notified_guests", len(guests))

	s.notifier.NotifyPilgrims(notify.KindCancelled, s.venue(ctx, st), guests)
	return nil
}

func (s *StructureService) owned(ctx context.Context, owner string, id int64) (*models.Structure, error) {
	st, err := s.structures.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.OwnerUsername != owner {
		return nil, ErrForbidden
	}
	return st, nil
}

func (s *StructureService) validate(ctx context.Context, in StructureInput) (models.Waypoint, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Waypoint{}, invalid("name", "is required")
	}
	if in.TotalBeds < 1 {
		return models.Waypoint{}, invalid("total_beds", "must be at least 1")
	}
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return models.Waypoint{}, err
	}
	w, ok := cat.Waypoint(in.WaypointID)
	if !ok {
		return models.Waypoint{}, invalid("waypoint_id", "unknown waypoint %d", in.WaypointID)
	}
	return w, nil
}

// notifyRoute is best effort: a failed lookup only skips the notification.
func (s *StructureService) notifyRoute(ctx context.Context, st *models.Structure, waypoint models.Waypoint) {
	trips, err := s.trips.ListActive(ctx, s.now.today())
	if err != nil {
		s.logger.Warn("cannot resolve pilgrims on route", "structure_id", st.ID, "error", err)
		return
	}

	var recipients []string
	seen := make(map[string]bool)
	for _, t := range trips {
		if seen[t.PilgrimUsername] {
			continue
		}
		if itinerary.PassesThrough(t.StartSegmentID, t.EndSegmentID, t.Reversed, st.WaypointID) {
			seen[t.PilgrimUsername] = true
			recipients = append(recipients, t.PilgrimUsername)
		}
	}

	s.notifier.NotifyPilgrims(notify.KindCreated, notify.Venue{
		StructureID:   st.ID,
		StructureName: st.Name,
		WaypointName:  waypoint.Name,
	}, recipients)
}

func (s *StructureService) venue(ctx context.Context, st *models.Structure) notify.Venue {
	v := notify.Venue{StructureID: st.ID, StructureName: st.Name}
	if cat, err := s.catalog.Catalog(ctx); err == nil {
		if w, ok := cat.Waypoint(st.WaypointID); ok {
			v.WaypointName = w.Name
		}
	}
	return v
}

func apply(st *models.Structure, in StructureInput) {
	st.Name = strings.TrimSpace(in.Name)
	st.WaypointID = in.WaypointID
	st.Street = in.Street
	st.StreetNumber = in.StreetNumber
	st.Latitude = in.Latitude
	st.Longitude = in.Longitude
	st.TotalBeds = in.TotalBeds
	st.OtherInfo = in.OtherInfo
	st.Color = in.Color
	st.PhotoURL = in.PhotoURL
}
