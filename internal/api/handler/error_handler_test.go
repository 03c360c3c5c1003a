package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

func TestHTTPErrorHandler_MapsDomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", domain.NewValidationError("to", "invalid email format: x"), http.StatusUnprocessableEntity},
		{"candidate missing", fmt.Errorf("load: %w", domain.ErrCandidateNotFound), http.StatusNotFound},
		{"in flight", domain.ErrActionInFlight, http.StatusConflict},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"auth required", &domain.AuthError{Err: domain.ErrAuthRequired}, http.StatusUnauthorized},
		{"auth in progress", &domain.AuthError{Err: domain.ErrAuthInProgress}, http.StatusConflict},
		{"store", &domain.StoreError{Op: "list", Status: 500, Err: errors.New("boom")}, http.StatusBadGateway},
		{"transport", &domain.TransportError{Err: errors.New("reset")}, http.StatusBadGateway},
		{"echo", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationCarriesField(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.NewValidationError("cc", "invalid email format: a, b"), c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Field != "cc" || resp.Error != "invalid email format: a, b" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorHidesDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("db password leaked"), c)

	var resp errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error != "internal server error" {
		t.Fatalf("leaked error: %q", resp.Error)
	}
}
