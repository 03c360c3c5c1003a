package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buzzhire/recruit-mailer/internal/api/metrics"
	"github.com/buzzhire/recruit-mailer/internal/core/domain"
	"github.com/buzzhire/recruit-mailer/internal/core/ports"
)

// EmailHandler previews, sends and copies generated candidate emails.
type EmailHandler struct {
	composer   ports.EmailComposer
	dispatcher ports.MailDispatcher
}

func NewEmailHandler(composer ports.EmailComposer, dispatcher ports.MailDispatcher) *EmailHandler {
	return &EmailHandler{composer: composer, dispatcher: dispatcher}
}

type sendEmailRequest struct {
	To      string   `json:"to" validate:"required"`
	Cc      string   `json:"cc"`
	Bcc     string   `json:"bcc"`
	Subject string   `json:"subject"`
	Order   []string `json:"order"`
}

type copyEmailRequest struct {
	Order []string `json:"order"`
}

type previewResponse struct {
	Recipient domain.RecipientType `json:"recipient"`
	domain.Email
}

// Preview handles GET /v1/candidates/:id/emails/:recipient.
//
// @Summary      Preview the email for one recipient type
// @Tags         emails
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true   "Candidate id"
// @Param        recipient  path      string  true   "client, internal or superiors"
// @Param        order      query     string  false  "Comma-separated field keys overriding the stored order"
// @Success      200        {object}  previewResponse
// @Failure      404        {object}  map[string]string
// @Failure      422        {object}  map[string]string
// @Router       /v1/candidates/{id}/emails/{recipient} [get]
func (h *EmailHandler) Preview(c echo.Context) error {
	id, r, err := emailTarget(c)
	if err != nil {
		return err
	}
	order, err := parseOrder(splitOrder(c.QueryParam("order")))
	if err != nil {
		return err
	}

	start := time.Now()
	email, err := h.composer.Compose(c.Request().Context(), id, r, order)
	if err != nil {
		return err
	}
	metrics.EmailComposeDuration.WithLabelValues(string(r)).Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, previewResponse{Recipient: r, Email: email})
}

// Send handles POST /v1/candidates/:id/emails/:recipient/send.
//
// @Summary      Send the email through the connected mail account
// @Tags         emails
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string            true  "Candidate id"
// @Param        recipient  path      string            true  "client, internal or superiors"
// @Param        body       body      sendEmailRequest  true  "Comma-separated address lists"
// @Success      200        {object}  ports.SendResult
// @Failure      401        {object}  map[string]string
// @Failure      409        {object}  map[string]string
// @Failure      422        {object}  map[string]string
// @Failure      502        {object}  map[string]string
// @Router       /v1/candidates/{id}/emails/{recipient}/send [post]
func (h *EmailHandler) Send(c echo.Context) error {
	id, r, err := emailTarget(c)
	if err != nil {
		return err
	}
	var req sendEmailRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.EmailsDispatchedTotal.WithLabelValues(string(r), "invalid").Inc()
		return err
	}
	order, err := parseOrder(req.Order)
	if err != nil {
		return err
	}

	res, err := h.dispatcher.Send(c.Request().Context(), ports.SendRequest{
		CandidateID: id,
		Recipient:   r,
		To:          req.To,
		Cc:          req.Cc,
		Bcc:         req.Bcc,
		Subject:     req.Subject,
		Order:       order,
	})
	if err != nil {
		metrics.EmailsDispatchedTotal.WithLabelValues(string(r), resultLabel(err)).Inc()
		return err
	}
	metrics.EmailsDispatchedTotal.WithLabelValues(string(r), "sent").Inc()
	return c.JSON(http.StatusOK, res)
}

// Copy handles POST /v1/candidates/:id/emails/:recipient/copy. The payload is
// returned in every mode so the caller can paste it even without a clipboard.
//
// @Summary      Copy the email to the clipboard
// @Tags         emails
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string            true   "Candidate id"
// @Param        recipient  path      string            true   "client, internal or superiors"
// @Param        body       body      copyEmailRequest  false  "Optional order override"
// @Success      200        {object}  ports.CopyResult
// @Failure      404        {object}  map[string]string
// @Failure      422        {object}  map[string]string
// @Router       /v1/candidates/{id}/emails/{recipient}/copy [post]
func (h *EmailHandler) Copy(c echo.Context) error {
	id, r, err := emailTarget(c)
	if err != nil {
		return err
	}
	var req copyEmailRequest
	if c.Request().ContentLength != 0 {
		if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
	}
	order, err := parseOrder(req.Order)
	if err != nil {
		return err
	}

	res, err := h.dispatcher.Copy(c.Request().Context(), id, r, order)
	if err != nil {
		return err
	}
	metrics.ClipboardCopiesTotal.WithLabelValues(res.Mode).Inc()
	return c.JSON(http.StatusOK, res)
}

func emailTarget(c echo.Context) (string, domain.RecipientType, error) {
	id, err := candidateID(c)
	if err != nil {
		return "", "", err
	}
	r, err := recipientParam(c)
	if err != nil {
		return "", "", err
	}
	return id, r, nil
}

func splitOrder(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// parseOrder converts raw keys into an order override. Surrounding spaces
// are trimmed since keys arrive from a query string.
func parseOrder(raw []string) (domain.FieldOrder, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	order := make(domain.FieldOrder, 0, len(raw))
	for _, s := range raw {
		k, err := domain.ParseFieldKey(strings.TrimSpace(s))
		if err != nil {
			return nil, domain.NewValidationError("order", "field keys must not be empty")
		}
		order = append(order, k)
	}
	return order, nil
}
