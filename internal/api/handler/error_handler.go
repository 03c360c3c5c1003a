package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// NewHTTPErrorHandler maps domain errors to status codes and renders
// {"error": "..."}. Only unexpected errors are logged at error level.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: ve.Reason, Field: ve.Field}
	}

	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		if errors.Is(err, domain.ErrAuthInProgress) {
			return http.StatusConflict, errorResponse{Error: authErr.Error()}
		}
		return http.StatusUnauthorized, errorResponse{Error: authErr.Error()}
	}

	switch {
	case errors.Is(err, domain.ErrCandidateNotFound):
		return http.StatusNotFound, errorResponse{Error: "candidate not found"}
	case errors.Is(err, domain.ErrSelectionsNotFound):
		return http.StatusNotFound, errorResponse{Error: "selections not found"}
	case errors.Is(err, domain.ErrActionInFlight):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	}

	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		log.Warn().Err(err).Str("path", c.Path()).Msg("store unavailable")
		return http.StatusBadGateway, errorResponse{Error: storeErr.Error()}
	}

	var trErr *domain.TransportError
	if errors.As(err, &trErr) {
		log.Warn().Err(err).Str("path", c.Path()).Msg("mail transport failed")
		return http.StatusBadGateway, errorResponse{Error: trErr.Error()}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
