package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"FRANCIGENA_BACK-END/internal/booking"
	"FRANCIGENA_BACK-END/internal/itinerary"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/notify"
)

// BookingService reserves and cancels beds
type BookingService struct {
	bookings BookingStore
	gate     *booking.Gate
	notifier notify.Dispatcher
	logger   *slog.Logger
	now      Clock
}

func NewBookingService(bookings BookingStore, notifier notify.Dispatcher, logger *slog.Logger, now Clock) *BookingService {
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		bookings: bookings,
		gate:     booking.NewGate(bookings, logger),
		notifier: notifier,
		logger:   logger,
		now:      now,
	}
}

// Book reserves beds for one night. A rejection returns the decision
// together with an error wrapping booking.ErrOverbooked.
func (s *BookingService) Book(ctx context.Context, username string, structureID int64, stayDate time.Time, beds int) (booking.Decision, error) {
	night := itinerary.CivilDate(stayDate)
	if night.Before(s.now.today()) {
		return booking.Decision{}, invalid("stay_date", "must not be in the past")
	}
	if beds < 1 {
		return booking.Decision{}, invalid("bed_count", "must be at least 1")
	}

	d, err := s.gate.Reserve(ctx, models.Booking{
		StructureID:     structureID,
		PilgrimUsername: username,
		BedCount:        beds,
		StayDate:        night,
	})
	if err != nil {
		return booking.Decision{}, notFoundStructure(err, structureID)
	}
	if !d.Admitted {
		return d, d.Err()
	}

	s.logger.Info("booking created", "structure_id", structureID, "pilgrim", username, "stay_date", night.Format(time.DateOnly), "beds", beds)
	s.notifier.NotifyOwner(notify.KindCreated, structureID, night)
	return d, nil
}

// Cancel removes the pilgrim's booking for a night.
func (s *BookingService) Cancel(ctx context.Context, username string, structureID int64, stayDate time.Time) error {
	night := itinerary.CivilDate(stayDate)
	if err := s.bookings.DeleteBooking(ctx, structureID, username, night); err != nil {
		return err
	}

	s.logger.Info("booking cancelled", "structure_id", structureID, "pilgrim", username, "stay_date", night.Format(time.DateOnly))
	s.notifier.NotifyOwner(notify.KindCancelled, structureID, night)
	return nil
}

// Availability reports occupancy for a night without reserving anything.
func (s *BookingService) Availability(ctx context.Context, structureID int64, stayDate time.Time) (booking.Decision, error) {
	d, err := s.gate.Admit(ctx, structureID, itinerary.CivilDate(stayDate), 1)
	if err != nil {
		return booking.Decision{}, notFoundStructure(err, structureID)
	}
	return d, nil
}

// Mine lists the pilgrim's bookings in [from, to].
func (s *BookingService) Mine(ctx context.Context, username string, from, to time.Time) ([]models.BookingDetail, error) {
	from, to = itinerary.CivilDate(from), itinerary.CivilDate(to)
	if to.Before(from) {
		return nil, invalid("to", "must not be before from")
	}
	return s.bookings.ListByPilgrim(ctx, username, from, to)
}

func (s *BookingService) ForOwner(ctx context.Context, owner string) ([]models.BookingDetail, error) {
	return s.bookings.ListByOwner(ctx, owner)
}

// Occupancy aggregates occupied beds per structure and night in [from, to].
func (s *BookingService) Occupancy(ctx context.Context, from, to time.Time) ([]models.Occupancy, error) {
	from, to = itinerary.CivilDate(from), itinerary.CivilDate(to)
	if to.Before(from) {
		return nil, invalid("to", "must not be before from")
	}
	return s.bookings.ListOccupancy(ctx, from, to)
}

func notFoundStructure(err error, structureID int64) error {
	if errors.Is(err, booking.ErrStructureNotFound) && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("structure %d: %w", structureID, ErrNotFound)
	}
	return err
}
