package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FRANCIGENA_BACK-END/internal/booking"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/notify"
)

func TestBookAdmitsAndNotifiesOwner(t *testing.T) {
	e := newEnv(t)
	id := e.structures.add(models.Structure{OwnerUsername: "gianni", Name: "Ostello", WaypointID: 3, TotalBeds: 10})
	svc := e.bookingService()
	night := date("2026-11-01")

	_, err := svc.Book(context.Background(), "anna", id, night, 7)
	require.NoError(t, err)

	d, err := svc.Book(context.Background(), "bruno", id, night, 3)
	require.NoError(t, err)
	assert.True(t, d.Admitted)
	assert.Equal(t, 7, d.Occupied)

	require.Len(t, e.notifier.owners, 2)
	assert.Equal(t, ownerCall{notify.KindCreated, id, night}, e.notifier.owners[1])
}

func TestBookRejectsOverbooking(t *testing.T) {
	e := newEnv(t)
	id := e.structures.add(models.Structure{OwnerUsername: "gianni", TotalBeds: 10})
	svc := e.bookingService()
	night := date("2026-11-01")

	_, err := svc.Book(context.Background(), "anna", id, night, 7)
	require.NoError(t, err)

	d, err := svc.Book(context.Background(), "bruno", id, night, 4)
	assert.ErrorIs(t, err, booking.ErrOverbooked)
	assert.False(t, d.Admitted)
	assert.Equal(t, booking.ReasonOverbooked, d.Reason)
	assert.Len(t, e.notifier.owners, 1)
}

func TestBookValidation(t *testing.T) {
	e := newEnv(t)
	id := e.structures.add(models.Structure{TotalBeds: 10})
	svc := e.bookingService()

	_, err := svc.Book(context.Background(), "anna", id, date("2026-10-14"), 1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "stay_date", verr.Field)

	_, err = svc.Book(context.Background(), "anna", id, today, 0)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bed_count", verr.Field)

	_, err = svc.Book(context.Background(), "anna", 99, today, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentBookingsStayWithinCapacity(t *testing.T) {
	e := newEnv(t)
	id := e.structures.add(models.Structure{TotalBeds: 6})
	svc := e.bookingService()
	night := date("2026-11-01")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Book(context.Background(), "p", id, night, 1)
		}()
	}
	wg.Wait()

	occupied, err := e.bookings.GetOccupancy(context.Background(), id, night)
	require.NoError(t, err)
	assert.Equal(t, 6, occupied)
}

func TestCancelBooking(t *testing.T) {
	e := newEnv(t)
	id := e.structures.add(models.Structure{TotalBeds: 4})
	svc := e.bookingService()
	night := date("2026-11-01")

	_, err := svc.Book(context.Background(), "anna", id, night, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), "anna", id, night))
	assert.Equal(t, notify.KindCancelled, e.notifier.owners[1].Kind)

	assert.ErrorIs(t, svc.Cancel(context.Background(), "anna", id, night), ErrNotFound)
	assert.Len(t, e.notifier.owners, 2)
}

func TestAvailability(t *testing.T) {
	e := newEnv(t)
	id := e.structures.add(models.Structure{TotalBeds: 4})
	svc := e.bookingService()
	night := date("2026-11-01")

	_, err := svc.Book(context.Background(), "anna", id, night, 3)
	require.NoError(t, err)

	d, err := svc.Availability(context.Background(), id, night)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Occupied)
	assert.Equal(t, 1, d.Free())

	_, err = svc.Availability(context.Background(), 42, night)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMineRejectsInvertedRange(t *testing.T) {
	e := newEnv(t)
	_, err := e.bookingService().Mine(context.Background(), "anna", date("2026-11-02"), date("2026-11-01"))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
