package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
)

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// BuildErrorResponse maps an application error to its status and envelope.
func BuildErrorResponse(err error) (int, ErrorResponse) {
	resp := ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    application.ToErrorCode(err),
			Message: err.Error(),
		},
	}
	if field := application.ErrorField(err); field != "" {
		resp.Error.Details = map[string]string{"field": field}
	}
	return application.ToHTTPStatus(err), resp
}

// WriteError maps application errors to HTTP responses
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode, response := BuildErrorResponse(err)

	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed",
			"category", application.CategorizeError(err),
			"error", err)
	}

	writeJSON(w, statusCode, response, logger)
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any, logger *slog.Logger) {
	writeJSON(w, statusCode, SuccessResponse{Success: true, Data: data}, logger)
}

func writeJSON(w http.ResponseWriter, statusCode int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
