package handler

import (
	"errors"
	"fmt"
	"net/http"

	"tush00nka/group_chat/internal/model"
	"tush00nka/group_chat/internal/pkg/httputils"
	"tush00nka/group_chat/internal/pkg/logging"
)

// apiFunc is a handler whose failures are rendered by errorHandler.
type apiFunc func(w http.ResponseWriter, r *http.Request) error

// errorHandler maps handler errors to responses: validation and not-found
// errors become 400 with their message, anything else a generic 500.
func errorHandler(fn apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				writeError(w, r, fmt.Errorf("panic: %v", p))
			}
		}()

		if err := fn(w, r); err != nil {
			writeError(w, r, err)
		}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.Ctx(r.Context())

	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Info().Str("reason", validationErr.Message).Msg("rejected request")
		httputils.ResponseError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, model.ErrNotFound):
		logger.Info().Err(err).Msg("referenced entity does not exist")
		httputils.ResponseError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Msg("request failed")
		httputils.ResponseError(w, http.StatusInternalServerError, "internal server error")
	}
}
