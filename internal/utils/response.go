package utils

import (
	"log/slog"
	"net/http"

	"github.com/matheodrd/httphelper/handler"

	"FRANCIGENA_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data any) {
	if err := handler.Encode(data, status, w); err != nil {
		slog.Error("encode response", "status", status, "error", err)
	}
}

// WriteErrorResponse writes the standard error envelope
func WriteErrorResponse(w http.ResponseWriter, status int, errText, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errText, Message: message})
}
