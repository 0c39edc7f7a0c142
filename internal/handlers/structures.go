package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"FRANCIGENA_BACK-END/internal/booking"
	"FRANCIGENA_BACK-END/internal/dto"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/services"
	"FRANCIGENA_BACK-END/internal/utils"
)

// StructureManager is the hostel side of the service layer
type StructureManager interface {
	List(ctx context.Context) ([]models.Structure, error)
	Get(ctx context.Context, id int64) (*models.Structure, error)
	Mine(ctx context.Context, owner string) ([]models.Structure, error)
	Colors(ctx context.Context, owner string) ([]string, error)
	Create(ctx context.Context, owner string, in services.StructureInput) (*models.Structure, error)
	Update(ctx context.Context, owner string, id int64, in services.StructureInput) (*models.Structure, error)
	Delete(ctx context.Context, owner string, id int64) error
}

// AvailabilityChecker answers capacity questions without reserving
type AvailabilityChecker interface {
	Availability(ctx context.Context, structureID int64, stayDate time.Time) (booking.Decision, error)
}

type StructuresHandler struct {
	structures   StructureManager
	availability AvailabilityChecker
	logger       *slog.Logger
	now          func() time.Time
}

func NewStructuresHandler(structures StructureManager, availability AvailabilityChecker, logger *slog.Logger) *StructuresHandler {
	return &StructuresHandler{structures: structures, availability: availability, logger: logger, now: time.Now}
}

// ListStructures handles GET /api/structures
// @Summary List structures
// @Tags structures
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructureListResponse
// @Router /api/structures [get]
func (h *StructuresHandler) ListStructures(w http.ResponseWriter, r *http.Request) {
	list, err := h.structures.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toStructureList(list))
}

// GetStructure handles GET /api/structures/{id}
// @Summary Get a structure
// @Tags structures
// @Produce json
// @Security BearerAuth
// @Param id path int true "Structure ID"
// @Success 200 {object} dto.StructureResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/structures/{id} [get]
func (h *StructuresHandler) GetStructure(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	st, err := h.structures.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toStructureResponse(*st))
}

// MyStructures handles GET /api/structures/mine
// @Summary List the caller's structures
// @Tags structures
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructureListResponse
// @Router /api/structures/mine [get]
func (h *StructuresHandler) MyStructures(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.structures.Mine(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toStructureList(list))
}

// MyColors handles GET /api/structures/mine/colors
// @Summary Colors used by the caller's structures
// @Tags structures
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ColorsResponse
// @Router /api/structures/mine/colors [get]
func (h *StructuresHandler) MyColors(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	colors, err := h.structures.Colors(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	if colors == nil {
		colors = []string{}
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ColorsResponse{Colors: colors})
}

// CreateStructure handles POST /api/structures
// @Summary Create a structure
// @Description Pilgrims whose active trip passes through the structure's waypoint are notified.
// @Tags structures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.StructureRequest true "Structure payload"
// @Success 201 {object} dto.StructureResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/structures [post]
func (h *StructuresHandler) CreateStructure(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	var req dto.StructureRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	st, err := h.structures.Create(r.Context(), owner, toStructureInput(req))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toStructureResponse(*st))
}

// UpdateStructure handles PUT /api/structures/{id}
// @Summary Replace a structure
// @Description total_beds may not drop below the busiest future night.
// @Tags structures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Structure ID"
// @Param payload body dto.StructureRequest true "Structure payload"
// @Success 200 {object} dto.StructureResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/structures/{id} [put]
func (h *StructuresHandler) UpdateStructure(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.StructureRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	st, err := h.structures.Update(r.Context(), owner, id, toStructureInput(req))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toStructureResponse(*st))
}

// DeleteStructure handles DELETE /api/structures/{id}
// @Summary Delete a structure and its bookings
// @Description Pilgrims holding future bookings are notified.
// @Tags structures
// @Security BearerAuth
// @Param id path int true "Structure ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/structures/{id} [delete]
func (h *StructuresHandler) DeleteStructure(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.structures.Delete(r.Context(), owner, id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Availability handles GET /api/structures/{id}/availability
// @Summary Free beds for one night
// @Tags structures
// @Produce json
// @Security BearerAuth
// @Param id path int true "Structure ID"
// @Param date query string false "YYYY-MM-DD, default today"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/structures/{id}/availability [get]
func (h *StructuresHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	night, ok := queryDate(w, r, "date", utils.Today(h.now()))
	if !ok {
		return
	}
	d, err := h.availability.Availability(r.Context(), id, night)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.AvailabilityResponse{
		StructureID: id,
		StayDate:    utils.FormatDate(night),
		Occupied:    d.Occupied,
		TotalBeds:   d.TotalBeds,
		Free:        d.Free(),
		Available:   d.Admitted,
	})
}

func toStructureInput(req dto.StructureRequest) services.StructureInput {
	return services.StructureInput{
		Name:         req.Name,
		WaypointID:   req.WaypointID,
		Street:       req.Street,
		StreetNumber: req.StreetNumber,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		TotalBeds:    req.TotalBeds,
		OtherInfo:    req.OtherInfo,
		Color:        req.Color,
		PhotoURL:     req.PhotoURL,
	}
}

func toStructureResponse(s models.Structure) dto.StructureResponse {
	return dto.StructureResponse{
		ID:            s.ID,
		OwnerUsername: s.OwnerUsername,
		Name:          s.Name,
		WaypointID:    s.WaypointID,
		Street:        s.Street,
		StreetNumber:  s.StreetNumber,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		TotalBeds:     s.TotalBeds,
		OtherInfo:     s.OtherInfo,
		Color:         s.Color,
		PhotoURL:      s.PhotoURL,
		CreatedAt:     utils.FormatTimestamp(s.CreatedAt),
	}
}

func toStructureList(list []models.Structure) dto.StructureListResponse {
	resp := dto.StructureListResponse{Structures: make([]dto.StructureResponse, 0, len(list))}
	for _, s := range list {
		resp.Structures = append(resp.Structures, toStructureResponse(s))
	}
	return resp
}
