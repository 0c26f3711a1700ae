package reflist

import (
	"context"
	"errors"
	"net/http"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
)

// statusClientClosedRequest is reported when the caller went away mid-batch.
const statusClientClosedRequest = 499

const partialHint = "; changes earlier in this batch may already be applied"

// mapError translates domain errors into HTTP status codes.
// Unknown errors become 500.
func mapError(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if errors.Is(err, context.Canceled) {
		return statusClientClosedRequest
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	// Storage failures can wrap anything, so they are matched before the
	// domain sentinels.
	if errors.Is(err, domain.ErrStorage) {
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, domain.ErrUnknownList),
		errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrMalformedBatch):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// errorMessage is what the caller sees. Server-side failures are not echoed.
func errorMessage(code int, err error, partial bool) string {
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		msg = "internal error"
		if errors.Is(err, domain.ErrStorage) {
			msg = domain.ErrStorage.Error()
		}
	}
	if partial {
		msg += partialHint
	}
	return msg
}
