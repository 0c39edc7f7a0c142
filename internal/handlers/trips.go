package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"FRANCIGENA_BACK-END/internal/dto"
	"FRANCIGENA_BACK-END/internal/itinerary"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/services"
	"FRANCIGENA_BACK-END/internal/utils"
)

// TripPlanner is the trip side of the service layer
type TripPlanner interface {
	Create(ctx context.Context, in services.CreateTripInput) (*services.TripPlan, error)
	Get(ctx context.Context, username string, id int64) (*services.TripPlan, error)
	Active(ctx context.Context, username string) (*services.TripPlan, error)
	Waypoints(ctx context.Context, username string, id int64) ([]models.Waypoint, error)
	Update(ctx context.Context, username string, id int64, in services.UpdateTripInput) (*services.TripPlan, error)
	EditOptions(ctx context.Context, username string, id int64) (*services.EditOptions, error)
	Delete(ctx context.Context, username string, id int64) error
}

// TripsHandler manages trip-related endpoints
type TripsHandler struct {
	trips  TripPlanner
	logger *slog.Logger
}

// NewTripsHandler creates a new TripsHandler
func NewTripsHandler(trips TripPlanner, logger *slog.Logger) *TripsHandler {
	return &TripsHandler{trips: trips, logger: logger}
}

// CreateTrip handles POST /api/trips
// @Summary Create a new trip
// @Description The server groups the route into daily stages. Segments that do not fit in the trip's days are returned without a date.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} dto.TripPlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Active trip already exists"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips [post]
func (h *TripsHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	startAt, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "start_date must be YYYY-MM-DD")
		return
	}
	endAt, err := utils.ParseDate(req.EndDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date must be YYYY-MM-DD")
		return
	}

	plan, err := h.trips.Create(r.Context(), services.CreateTripInput{
		PilgrimUsername:     username,
		DepartureWaypointID: req.DepartureWaypointID,
		ArrivalWaypointID:   req.ArrivalWaypointID,
		StartDate:           startAt,
		EndDate:             endAt,
		PartySize:           req.PartySize,
		DailyHourBudget:     req.DailyHourBudget,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, toTripPlanResponse(plan))
}

// ActiveTrip handles GET /api/trips/active
// @Summary Get the caller's active trip
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TripPlanResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/active [get]
func (h *TripsHandler) ActiveTrip(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	plan, err := h.trips.Active(r.Context(), username)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTripPlanResponse(plan))
}

// TripDetail handles GET /api/trips/{id}
// @Summary Get a trip with its day plan
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} dto.TripPlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id} [get]
func (h *TripsHandler) TripDetail(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	plan, err := h.trips.Get(r.Context(), username, id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTripPlanResponse(plan))
}

// TripWaypoints handles GET /api/trips/{id}/waypoints
// @Summary List the waypoints of a trip in walking order
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} dto.WaypointListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id}/waypoints [get]
func (h *TripsHandler) TripWaypoints(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	waypoints, err := h.trips.Waypoints(r.Context(), username, id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.WaypointListResponse{Waypoints: toWaypointResponses(waypoints)})
}

// UpdateTrip handles PUT /api/trips/{id}
// @Summary Update a trip
// @Description Changes dates or endpoints and replans the day plan. Reversing the walking direction is rejected.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param payload body dto.UpdateTripRequest true "Fields to update"
// @Success 200 {object} dto.TripPlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id} [put]
func (h *TripsHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	in := services.UpdateTripInput{
		DepartureWaypointID: req.DepartureWaypointID,
		ArrivalWaypointID:   req.ArrivalWaypointID,
		PartySize:           req.PartySize,
		DailyHourBudget:     req.DailyHourBudget,
	}
	var err error
	if in.StartDate, err = optionalDate(req.StartDate); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "start_date must be YYYY-MM-DD")
		return
	}
	if in.EndDate, err = optionalDate(req.EndDate); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date must be YYYY-MM-DD")
		return
	}

	plan, err := h.trips.Update(r.Context(), username, id, in)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTripPlanResponse(plan))
}

// EditOptions handles GET /api/trips/{id}/edit-options
// @Summary Valid edits for a trip
// @Description Day-count window plus the arrival and departure waypoints reachable with the trip's current days and budget.
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} dto.EditOptionsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id}/edit-options [get]
func (h *TripsHandler) EditOptions(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	opts, err := h.trips.EditOptions(r.Context(), username, id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.EditOptionsResponse{
		MinDays:             opts.Window.MinDays,
		MaxDays:             opts.Window.MaxDays,
		EarliestArrivalDate: utils.FormatDate(opts.Window.EarliestArrival),
		LatestArrivalDate:   utils.FormatDate(opts.Window.LatestArrival),
		ArrivalCandidates:   toWaypointResponses(opts.ArrivalCandidates),
		DepartureCandidates: toWaypointResponses(opts.DepartureCandidates),
	})
}

// DeleteTrip handles DELETE /api/trips/{id}
// @Summary Delete a trip
// @Tags trips
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id} [delete]
func (h *TripsHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.trips.Delete(r.Context(), username, id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func optionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := utils.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func toTripResponse(t models.Trip) dto.TripResponse {
	return dto.TripResponse{
		ID:                  t.ID,
		PilgrimUsername:     t.PilgrimUsername,
		StartSegmentID:      t.StartSegmentID,
		EndSegmentID:        t.EndSegmentID,
		DepartureWaypointID: itinerary.DepartureWaypoint(t.StartSegmentID, t.Reversed),
		ArrivalWaypointID:   itinerary.ArrivalWaypoint(t.EndSegmentID, t.Reversed),
		StartDate:           utils.FormatDate(t.StartDate),
		EndDate:             utils.FormatDate(t.EndDate),
		PartySize:           t.PartySize,
		Reversed:            t.Reversed,
		DailyHourBudget:     t.DailyHourBudget,
		CreatedAt:           utils.FormatTimestamp(t.CreatedAt),
		UpdatedAt:           utils.FormatTimestamp(t.UpdatedAt),
	}
}

func toTripPlanResponse(p *services.TripPlan) dto.TripPlanResponse {
	resp := dto.TripPlanResponse{
		Trip:                toTripResponse(p.Trip),
		DayPlan:             make([]dto.StageResponse, 0, len(p.DayPlan)),
		UnscheduledSegments: p.Unscheduled,
	}
	for _, e := range p.DayPlan {
		resp.DayPlan = append(resp.DayPlan, dto.StageResponse{
			Position:   e.Position,
			SegmentID:  e.SegmentID,
			TravelDate: utils.FormatDatePtr(e.TravelDate),
			StageName:  e.StageName,
		})
	}
	if p.Unscheduled > 0 {
		resp.Warning = "some segments do not fit in the trip's days and have no travel date"
	}
	return resp
}
