package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"FRANCIGENA_BACK-END/internal/booking"
	"FRANCIGENA_BACK-END/internal/itinerary"
	"FRANCIGENA_BACK-END/internal/services"
	"FRANCIGENA_BACK-END/internal/utils"
)

// writeServiceError maps a service error onto the HTTP error envelope.
// Anything unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", verr.Error())
	case errors.Is(err, booking.ErrOverbooked):
		utils.WriteErrorResponse(w, http.StatusConflict, string(booking.ReasonOverbooked), err.Error())
	case errors.Is(err, services.ErrActiveTripExists):
		utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, services.ErrNotFound), errors.Is(err, booking.ErrStructureNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "not allowed to access this resource")
	case errors.Is(err, booking.ErrInvalidBedCount),
		errors.Is(err, itinerary.ErrInconsistentRange),
		errors.Is(err, itinerary.ErrInvalidDays),
		errors.Is(err, itinerary.ErrInvalidBudget):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid itinerary", err.Error())
	default:
		logger.Error("request failed",
			"request_id", utils.GetRequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "unexpected error")
	}
}

// caller returns the authenticated username or writes a 401.
func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
	}
	return username, ok
}

// pathID parses the {id} path value or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid id", err.Error())
		return 0, false
	}
	return id, true
}

// queryDate parses an optional YYYY-MM-DD query parameter, falling back to def.
func queryDate(w http.ResponseWriter, r *http.Request, name string, def time.Time) (time.Time, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	d, err := utils.ParseDate(v)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", name+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}
