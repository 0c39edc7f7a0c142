package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"FRANCIGENA_BACK-END/internal/booking"
	"FRANCIGENA_BACK-END/internal/dto"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/utils"
)

// Reserver is the booking side of the service layer
type Reserver interface {
	Book(ctx context.Context, username string, structureID int64, stayDate time.Time, beds int) (booking.Decision, error)
	Cancel(ctx context.Context, username string, structureID int64, stayDate time.Time) error
	Mine(ctx context.Context, username string, from, to time.Time) ([]models.BookingDetail, error)
	ForOwner(ctx context.Context, owner string) ([]models.BookingDetail, error)
	Occupancy(ctx context.Context, from, to time.Time) ([]models.Occupancy, error)
}

// defaultRange is how far ahead list endpoints look when no bound is given.
const defaultRange = 365 * 24 * time.Hour

type BookingsHandler struct {
	bookings Reserver
	logger   *slog.Logger
	now      func() time.Time
}

func NewBookingsHandler(bookings Reserver, logger *slog.Logger) *BookingsHandler {
	return &BookingsHandler{bookings: bookings, logger: logger, now: time.Now}
}

// CreateBooking handles POST /api/bookings
// @Summary Book beds for one night
// @Description Goes through the capacity gate. A full structure answers 409 with error "Overbooked".
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateBookingRequest true "Booking payload"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Overbooked"
// @Router /api/bookings [post]
func (h *BookingsHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	night, err := utils.ParseDate(req.StayDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "stay_date must be YYYY-MM-DD")
		return
	}

	if _, err := h.bookings.Book(r.Context(), username, req.StructureID, night, req.BedCount); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.BookingResponse{
		StructureID:     req.StructureID,
		PilgrimUsername: username,
		StayDate:        utils.FormatDate(night),
		BedCount:        req.BedCount,
		CreatedAt:       utils.FormatTimestamp(h.now()),
	})
}

// CancelBooking handles DELETE /api/bookings
// @Summary Cancel the caller's booking for a night
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param payload body dto.CancelBookingRequest true "Booking key"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/bookings [delete]
func (h *BookingsHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	var req dto.CancelBookingRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	night, err := utils.ParseDate(req.StayDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "stay_date must be YYYY-MM-DD")
		return
	}
	if err := h.bookings.Cancel(r.Context(), username, req.StructureID, night); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MyBookings handles GET /api/bookings/mine
// @Summary The caller's bookings in a date range
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param from query string false "YYYY-MM-DD, default today"
// @Param to query string false "YYYY-MM-DD, default one year after from"
// @Success 200 {object} dto.BookingListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/bookings/mine [get]
func (h *BookingsHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	from, to, ok := h.dateRange(w, r)
	if !ok {
		return
	}
	list, err := h.bookings.Mine(r.Context(), username, from, to)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toBookingList(list))
}

// OwnerBookings handles GET /api/bookings/owner
// @Summary Bookings across the caller's structures
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BookingListResponse
// @Router /api/bookings/owner [get]
func (h *BookingsHandler) OwnerBookings(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.bookings.ForOwner(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toBookingList(list))
}

// Occupancy handles GET /api/bookings/occupancy
// @Summary Occupied beds per structure and night
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param from query string false "YYYY-MM-DD, default today"
// @Param to query string false "YYYY-MM-DD, default one year after from"
// @Success 200 {object} dto.OccupancyListResponse
// @Router /api/bookings/occupancy [get]
func (h *BookingsHandler) Occupancy(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.dateRange(w, r)
	if !ok {
		return
	}
	rows, err := h.bookings.Occupancy(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	resp := dto.OccupancyListResponse{Occupancy: make([]dto.OccupancyResponse, 0, len(rows))}
	for _, o := range rows {
		resp.Occupancy = append(resp.Occupancy, dto.OccupancyResponse{
			StructureID:  o.StructureID,
			StayDate:     utils.FormatDate(o.StayDate),
			OccupiedBeds: o.OccupiedBeds,
			TotalBeds:    o.TotalBeds,
		})
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

func (h *BookingsHandler) dateRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	from, ok := queryDate(w, r, "from", utils.Today(h.now()))
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok := queryDate(w, r, "to", from.Add(defaultRange))
	return from, to, ok
}

func toBookingList(list []models.BookingDetail) dto.BookingListResponse {
	resp := dto.BookingListResponse{Bookings: make([]dto.BookingDetailResponse, 0, len(list))}
	for _, b := range list {
		resp.Bookings = append(resp.Bookings, dto.BookingDetailResponse{
			BookingResponse: dto.BookingResponse{
				StructureID:     b.StructureID,
				PilgrimUsername: b.PilgrimUsername,
				StayDate:        utils.FormatDate(b.StayDate),
				BedCount:        b.BedCount,
				CreatedAt:       utils.FormatTimestamp(b.CreatedAt),
			},
			StructureName: b.StructureName,
			OwnerUsername: b.OwnerUsername,
			WaypointID:    b.WaypointID,
			Color:         b.Color,
		})
	}
	return resp
}
