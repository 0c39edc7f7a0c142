package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"FRANCIGENA_BACK-END/internal/dto"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/utils"
)

// CatalogReader serves the trail catalog
type CatalogReader interface {
	Segments(ctx context.Context) ([]models.Segment, error)
	Waypoints(ctx context.Context) ([]models.Waypoint, error)
}

type CatalogHandler struct {
	catalog CatalogReader
	logger  *slog.Logger
}

func NewCatalogHandler(catalog CatalogReader, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// ListSegments handles GET /api/segments
// @Summary List trail segments
// @Description All segments of the route ordered by id. Durations use the hours.minutes encoding.
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.SegmentListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/segments [get]
func (h *CatalogHandler) ListSegments(w http.ResponseWriter, r *http.Request) {
	segments, err := h.catalog.Segments(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	resp := dto.SegmentListResponse{Segments: make([]dto.SegmentResponse, 0, len(segments))}
	for _, s := range segments {
		resp.Segments = append(resp.Segments, dto.SegmentResponse{
			ID:            s.ID,
			Start:         toWaypointResponse(s.Start),
			End:           toWaypointResponse(s.End),
			DistanceKm:    s.DistanceKm,
			DurationHours: s.DurationHours,
			GPXURL:        s.GPXURL,
		})
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// ListWaypoints handles GET /api/waypoints
// @Summary List waypoints
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.WaypointListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/waypoints [get]
func (h *CatalogHandler) ListWaypoints(w http.ResponseWriter, r *http.Request) {
	waypoints, err := h.catalog.Waypoints(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.WaypointListResponse{Waypoints: toWaypointResponses(waypoints)})
}

func toWaypointResponse(w models.Waypoint) dto.WaypointResponse {
	return dto.WaypointResponse{ID: w.ID, Name: w.Name}
}

func toWaypointResponses(ws []models.Waypoint) []dto.WaypointResponse {
	out := make([]dto.WaypointResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, toWaypointResponse(w))
	}
	return out
}
