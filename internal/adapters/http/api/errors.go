package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/arrows/internal/app"
	"github.com/okian/arrows/internal/domain/player"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// NewKind annotates a sentinel kind with the failing operation.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind annotates a sentinel kind with the operation and cause.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// statusFor maps reconciliation errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrMissingPlayerID):
		return http.StatusBadRequest, "missing_user_id"
	case errors.Is(err, app.ErrNegativeCoins):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, app.ErrUnknownCosmetic):
		return http.StatusNotFound, "unknown_skin"
	case errors.Is(err, player.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, player.ErrCosmeticLocked):
		return http.StatusConflict, "skin_locked"
	case errors.Is(err, player.ErrInsufficientCoins):
		return http.StatusConflict, "insufficient_coins"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
