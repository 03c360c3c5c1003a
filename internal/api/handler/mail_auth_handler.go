package handler

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buzzhire/recruit-mailer/internal/api/metrics"
	"github.com/buzzhire/recruit-mailer/internal/core/domain"
	"github.com/buzzhire/recruit-mailer/internal/core/ports"
)

const (
	defaultAuthWait = 60 * time.Second
	maxAuthWait     = 5 * time.Minute
)

// MailAuthHandler connects and disconnects the mail account used for sending.
type MailAuthHandler struct {
	auth ports.MailAuthorizer
}

func NewMailAuthHandler(auth ports.MailAuthorizer) *MailAuthHandler {
	return &MailAuthHandler{auth: auth}
}

type mailAuthStatus struct {
	Connected bool   `json:"connected"`
	Pending   bool   `json:"pending"`
	AuthURL   string `json:"authUrl,omitempty"`
}

// Status handles GET /v1/mail/auth.
//
// @Summary      Mail account status
// @Tags         mail
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  mailAuthStatus
// @Router       /v1/mail/auth [get]
func (h *MailAuthHandler) Status(c echo.Context) error {
	status, err := h.status(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

// Start handles POST /v1/mail/auth. The operator opens authUrl in a browser.
//
// @Summary      Start connecting a mail account
// @Tags         mail
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  mailAuthStatus
// @Failure      409  {object}  map[string]string
// @Router       /v1/mail/auth [post]
func (h *MailAuthHandler) Start(c echo.Context) error {
	flow, err := h.auth.Begin(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, mailAuthStatus{Pending: true, AuthURL: flow.URL()})
}

// Wait handles GET /v1/mail/auth/wait. It blocks until the pending flow
// resolves or the wait times out.
//
// @Summary      Wait for the pending authorization
// @Tags         mail
// @Produce      json
// @Security     BearerAuth
// @Param        timeout  query     string  false  "Go duration, default 60s, max 5m"
// @Success      200      {object}  mailAuthStatus
// @Failure      401      {object}  map[string]string
// @Failure      408      {object}  map[string]string
// @Router       /v1/mail/auth/wait [get]
func (h *MailAuthHandler) Wait(c echo.Context) error {
	wait := defaultAuthWait
	if raw := c.QueryParam("timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return domain.NewValidationError("timeout", "invalid duration %q", raw)
		}
		wait = min(d, maxAuthWait)
	}

	if flow, ok := h.auth.Pending(); ok {
		ctx, cancel := context.WithTimeout(c.Request().Context(), wait)
		defer cancel()
		if err := flow.Wait(ctx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return echo.NewHTTPError(http.StatusRequestTimeout, "authorization still pending")
			}
			return err
		}
	}

	status, err := h.status(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

// Disconnect handles DELETE /v1/mail/auth.
//
// @Summary      Forget the connected mail account
// @Tags         mail
// @Security     BearerAuth
// @Success      204
// @Router       /v1/mail/auth [delete]
func (h *MailAuthHandler) Disconnect(c echo.Context) error {
	if err := h.auth.Disconnect(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

var callbackPage = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html><head><title>Mail authorization</title></head>
<body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">
<h2>{{.Title}}</h2>
<p>{{.Message}}</p>
</body></html>`))

type callbackView struct {
	Title   string
	Message string
}

// Callback handles GET /mail/oauth/callback, the provider redirect target.
// It is public; the signed state ties it to the pending flow.
//
// @Summary      OAuth redirect target
// @Tags         mail
// @Produce      html
// @Param        state  query  string  true   "Signed flow state"
// @Param        code   query  string  false  "Authorization code"
// @Param        error  query  string  false  "Provider error, e.g. access_denied"
// @Success      200
// @Failure      400
// @Router       /mail/oauth/callback [get]
func (h *MailAuthHandler) Callback(c echo.Context) error {
	state := c.QueryParam("state")
	code := c.QueryParam("code")

	var err error
	switch {
	case c.QueryParam("error") != "":
		err = h.auth.Fail(state, c.QueryParam("error"))
		metrics.MailAuthFlowsTotal.WithLabelValues("denied").Inc()
	case code == "":
		err = h.auth.Fail(state, "no authorization code received")
		metrics.MailAuthFlowsTotal.WithLabelValues("denied").Inc()
	default:
		err = h.auth.Complete(c.Request().Context(), state, code)
		if err == nil {
			metrics.MailAuthFlowsTotal.WithLabelValues("connected").Inc()
		} else {
			metrics.MailAuthFlowsTotal.WithLabelValues("rejected").Inc()
		}
	}

	if err != nil {
		return renderCallback(c, http.StatusBadRequest, callbackView{
			Title:   "Authentication failed",
			Message: err.Error(),
		})
	}
	return renderCallback(c, http.StatusOK, callbackView{
		Title:   "Authentication successful!",
		Message: "You can close this window and return to the application.",
	})
}

func renderCallback(c echo.Context, code int, v callbackView) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return callbackPage.Execute(c.Response(), v)
}

func (h *MailAuthHandler) status(ctx context.Context) (mailAuthStatus, error) {
	connected, err := h.auth.Connected(ctx)
	if err != nil {
		return mailAuthStatus{}, err
	}
	st := mailAuthStatus{Connected: connected}
	if flow, ok := h.auth.Pending(); ok {
		st.Pending = true
		st.AuthURL = flow.URL()
	}
	return st, nil
}
