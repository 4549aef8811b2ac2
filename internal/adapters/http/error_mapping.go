package httpadapter

import (
	"log/slog"
	"net/http"

	"halalradar/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrRestaurantNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage keeps 5xx bodies generic; internals go to the log, not the
// caller.
func errorMessage(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return "Invalid ID"
	case domain.IsKind(err, domain.ErrRestaurantNotFound):
		return "Restaurant not found"
	default:
		return "Internal Server Error"
	}
}

func slogWriteFailure(r *http.Request, err error) {
	slog.Error("response write failed",
		"request_id", requestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
}
