package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/domain/repaircase"
	"github.com/rpggio/repairdesk/internal/estimator"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequestBody),
		errors.Is(err, record.ErrInvalidInput),
		errors.Is(err, estimator.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput),
		errors.Is(err, repaircase.ErrQueryRequired),
		errors.Is(err, repaircase.ErrInvalidDeleteMode):
		return http.StatusBadRequest
	case errors.Is(err, repaircase.ErrCaseNotFound),
		errors.Is(err, repaircase.ErrStoreNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as {"error": ...}. Internal failures are logged and
// reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorMessage(w, status, "Internal Server Error")
		return
	}
	writeErrorMessage(w, status, err.Error())
}
