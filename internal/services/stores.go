package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"FRANCIGENA_BACK-END/internal/booking"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/repository"
)

// CatalogSource loads the route catalog.
type CatalogSource interface {
	ListSegments(ctx context.Context) ([]models.Segment, error)
	ListWaypoints(ctx context.Context) ([]models.Waypoint, error)
}

// TripStore persists trips and day plans. Lookups return ErrNotFound when
// nothing matches.
type TripStore interface {
	Create(ctx context.Context, t *models.Trip, today time.Time) error
	Update(ctx context.Context, t *models.Trip) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Trip, error)
	GetActive(ctx context.Context, username string, today time.Time) (*models.Trip, error)
	ListByPilgrim(ctx context.Context, username string) ([]models.Trip, error)
	ListActive(ctx context.Context, today time.Time) ([]models.Trip, error)
	ReplaceDayPlan(ctx context.Context, tripID int64, entries []models.DayPlanEntry) error
	ListDayPlan(ctx context.Context, tripID int64) ([]models.DayPlanEntry, error)
	ListStagesByPilgrim(ctx context.Context, username string) ([]models.DayPlanEntry, error)
}

// BookingStore is the booking side of the database.
type BookingStore interface {
	booking.Store
	DeleteBooking(ctx context.Context, structureID int64, username string, stayDate time.Time) error
	ListByPilgrim(ctx context.Context, username string, from, to time.Time) ([]models.BookingDetail, error)
	ListByOwner(ctx context.Context, owner string) ([]models.BookingDetail, error)
	ListOccupancy(ctx context.Context, from, to time.Time) ([]models.Occupancy, error)
	MaxOccupancySince(ctx context.Context, structureID int64, since time.Time) (int, error)
	GuestsSince(ctx context.Context, structureID int64, since time.Time) ([]string, error)
	CountForOwner(ctx context.Context, owner string, since time.Time) (total, upcoming int, err error)
}

type StructureStore interface {
	List(ctx context.Context) ([]models.Structure, error)
	ListByOwner(ctx context.Context, owner string) ([]models.Structure, error)
	GetByID(ctx context.Context, id int64) (*models.Structure, error)
	ListColorsByOwner(ctx context.Context, owner string) ([]string, error)
	Create(ctx context.Context, s *models.Structure) error
	Update(ctx context.Context, s *models.Structure, since time.Time) error
	Delete(ctx context.Context, id int64) error
	SummaryForOwner(ctx context.Context, owner string) (structures, beds int, err error)
}

type ChecklistStore interface {
	ListByTrip(ctx context.Context, tripID int64) ([]models.ChecklistCategory, error)
	CreateCategory(ctx context.Context, c *models.ChecklistCategory) error
	CreateItem(ctx context.Context, item *models.ChecklistItem) error
	SetItemChecked(ctx context.Context, itemID int64, checked bool) error
	DeleteItem(ctx context.Context, itemID int64) error
	DeleteCategory(ctx context.Context, categoryID int64) error
	TripOfCategory(ctx context.Context, categoryID int64) (int64, error)
	TripOfItem(ctx context.Context, itemID int64) (int64, error)
}

type NotificationStore interface {
	List(ctx context.Context, username string, f repository.NotificationFilter) (repository.NotificationPage, error)
	MarkRead(ctx context.Context, id uuid.UUID, username string) error
	MarkAllRead(ctx context.Context, username string) (int64, error)
}

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

func (c Clock) today() time.Time {
	y, m, d := c().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
