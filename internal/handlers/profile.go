package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"FRANCIGENA_BACK-END/internal/dto"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/services"
	"FRANCIGENA_BACK-END/internal/utils"
)

type StatsProvider interface {
	Pilgrim(ctx context.Context, username string) (*services.PilgrimStats, error)
	Owner(ctx context.Context, owner string) (*services.OwnerStats, error)
}

// ProfileHandler serves profile statistics for both roles
type ProfileHandler struct {
	stats  StatsProvider
	logger *slog.Logger
}

func NewProfileHandler(stats StatsProvider, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{stats: stats, logger: logger}
}

// GetStats handles GET /api/profile/stats
// @Summary Profile statistics
// @Description Pilgrims get walking totals and their active trip; owners get structure and booking counts.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PilgrimStatsResponse "pilgrim"
// @Success 200 {object} dto.OwnerStatsResponse "owner"
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/profile/stats [get]
func (h *ProfileHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	if role == models.RoleOwner {
		s, err := h.stats.Owner(r.Context(), username)
		if err != nil {
			writeServiceError(w, r, h.logger, err)
			return
		}
		utils.WriteJSONResponse(w, http.StatusOK, dto.OwnerStatsResponse{
			Structures:       s.Structures,
			TotalBeds:        s.TotalBeds,
			TotalBookings:    s.TotalBookings,
			UpcomingBookings: s.UpcomingBookings,
		})
		return
	}

	s, err := h.stats.Pilgrim(r.Context(), username)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	resp := dto.PilgrimStatsResponse{TotalTrips: s.TotalTrips, TotalKm: s.TotalKm}
	if a := s.Active; a != nil {
		resp.ActiveTrip = &dto.ActiveTripStatsResponse{
			TripID:       a.TripID,
			Departure:    a.Departure,
			Arrival:      a.Arrival,
			StartDate:    utils.FormatDate(a.StartDate),
			EndDate:      utils.FormatDate(a.EndDate),
			Km:           a.Km,
			WalkingHours: a.WalkingHours,
		}
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}
