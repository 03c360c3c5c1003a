package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// ctxOperator extracts the claims injected by the Auth middleware.
func ctxOperator(c echo.Context) (username, role string, err error) {
	role, _ = c.Get("role").(string)
	username, _ = c.Get("username").(string)
	if role == "" || username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, role, nil
}

func candidateID(c echo.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", domain.NewValidationError("id", "candidate id is required")
	}
	return id, nil
}

func recipientParam(c echo.Context) (domain.RecipientType, error) {
	return domain.ParseRecipientType(c.Param("recipient"))
}
