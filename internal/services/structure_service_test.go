package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/notify"
)

func hostel(waypoint, beds int) StructureInput {
	return StructureInput{Name: "Ostello", WaypointID: waypoint, TotalBeds: beds, Color: "#ff0000"}
}

func TestCreateStructureNotifiesPilgrimsOnRoute(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	trips := e.tripService()

	onRoute := validTrip() // Stop1 to Stop7
	_, err := trips.Create(ctx, onRoute)
	require.NoError(t, err)

	reversed := validTrip()
	reversed.PilgrimUsername = "bruno"
	reversed.DepartureWaypointID, reversed.ArrivalWaypointID = 9, 5
	_, err = trips.Create(ctx, reversed)
	require.NoError(t, err)

	elsewhere := validTrip()
	elsewhere.PilgrimUsername = "carla"
	elsewhere.DepartureWaypointID, elsewhere.ArrivalWaypointID = 7, 9
	_, err = trips.Create(ctx, elsewhere)
	require.NoError(t, err)

	st, err := e.structureService().Create(ctx, "gianni", hostel(5, 8))
	require.NoError(t, err)
	assert.Equal(t, "gianni", st.OwnerUsername)

	require.Len(t, e.notifier.pilgrims, 1)
	call := e.notifier.pilgrims[0]
	assert.Equal(t, notify.KindCreated, call.Kind)
	assert.Equal(t, "Stop5", call.Venue.WaypointName)
	assert.Equal(t, []string{"anna", "bruno"}, call.Recipients)
}

func TestCreateStructureValidation(t *testing.T) {
	e := newEnv(t)
	svc := e.structureService()
	var verr *ValidationError

	_, err := svc.Create(context.Background(), "gianni", hostel(42, 4))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "waypoint_id", verr.Field)

	_, err = svc.Create(context.Background(), "gianni", hostel(2, 0))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "total_beds", verr.Field)

	in := hostel(2, 4)
	in.Name = "  "
	_, err = svc.Create(context.Background(), "gianni", in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestUpdateStructureKeepsBookedBeds(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.structureService()
	st, err := svc.Create(ctx, "gianni", hostel(3, 8))
	require.NoError(t, err)

	_, err = e.bookingService().Book(ctx, "anna", st.ID, date("2026-11-01"), 5)
	require.NoError(t, err)

	_, err = svc.Update(ctx, "gianni", st.ID, hostel(3, 4))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "total_beds", verr.Field)

	updated, err := svc.Update(ctx, "gianni", st.ID, hostel(3, 5))
	require.NoError(t, err)
	assert.Equal(t, 5, updated.TotalBeds)

	_, err = svc.Update(ctx, "mario", st.ID, hostel(3, 5))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStructureRejectsShrinkWhenBookingLandsMeanwhile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.structureService()
	st, err := svc.Create(ctx, "gianni", hostel(3, 8))
	require.NoError(t, err)

	// the owner's pre-check sees an empty structure, then anna books 6 beds
	// before the new bed count is written
	e.structures.beforeUpdate = func() {
		e.structures.beforeUpdate = nil
		_, err := e.bookingService().Book(ctx, "anna", st.ID, date("2026-11-01"), 6)
		require.NoError(t, err)
	}

	_, err = svc.Update(ctx, "gianni", st.ID, hostel(3, 4))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "total_beds", verr.Field)

	stored, err := e.structures.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.TotalBeds)
	assert.Equal(t, 6, e.bookings.occupied(st.ID, date("2026-11-01")))
}

func TestDeleteStructureNotifiesGuests(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.structureService()
	st, err := svc.Create(ctx, "gianni", hostel(4, 8))
	require.NoError(t, err)

	bookings := e.bookingService()
	_, err = bookings.Book(ctx, "anna", st.ID, date("2026-11-01"), 2)
	require.NoError(t, err)
	_, err = bookings.Book(ctx, "bruno", st.ID, date("2026-11-03"), 1)
	require.NoError(t, err)
	// a past stay is not notified
	e.bookings.bookings = append(e.bookings.bookings, models.Booking{StructureID: st.ID, PilgrimUsername: "old", BedCount: 1, StayDate: date("2026-09-01")})

	assert.ErrorIs(t, svc.Delete(ctx, "mario", st.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, "gianni", st.ID))

	assert.Equal(t, []int64{st.ID}, e.structures.deleted)
	last := e.notifier.pilgrims[len(e.notifier.pilgrims)-1]
	assert.Equal(t, notify.KindCancelled, last.Kind)
	assert.Equal(t, "Stop4", last.Venue.WaypointName)
	assert.ElementsMatch(t, []string{"anna", "bruno"}, last.Recipients)

	_, err = svc.Get(ctx, st.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
