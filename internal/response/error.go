package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/budgetbot/backend/internal/errs"
	"github.com/budgetbot/backend/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", e.Message)

	case *errs.AlreadyExistsError:
		log.Warn("resource already exists", "error", e.Message)
		h.WriteError(w, r, http.StatusConflict, "already_exists", e.Message)

	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", e.Message)

	case *errs.ExternalServiceError:
		// Oracle unreachable or envelope malformed. The caller only learns
		// "parsing failed"; the cause stays in the logs.
		log.Error("external service error",
			"service", e.Service,
			"error", e.Message,
			"cause", e.Cause)
		h.WriteError(w, r, http.StatusBadGateway, "parsing_failed", "Parsing failed")

	case *errs.DecodeError:
		// The oracle answered but broke the strict-JSON contract. Log the
		// offending text so prompt drift is diagnosable.
		log.Error("oracle response decode failed", "raw", e.Raw)
		h.WriteError(w, r, http.StatusBadGateway, "parsing_failed", "Parsing failed")

	case *errs.DatabaseError:
		log.Error("database error",
			"operation", e.Operation,
			"error", e.Message,
			"cause", e.Cause)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
