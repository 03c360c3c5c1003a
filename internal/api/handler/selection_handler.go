package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buzzhire/recruit-mailer/internal/api/metrics"
	"github.com/buzzhire/recruit-mailer/internal/core/domain"
	"github.com/buzzhire/recruit-mailer/internal/core/ports"
)

// SelectionHandler edits the per-recipient visibility matrix and field order.
type SelectionHandler struct {
	workspace ports.WorkspaceService
}

func NewSelectionHandler(workspace ports.WorkspaceService) *SelectionHandler {
	return &SelectionHandler{workspace: workspace}
}

type saveSelectionsRequest struct {
	FieldVisibility domain.FieldVisibility `json:"fieldVisibility"`
	FieldOrder      domain.FieldOrder      `json:"fieldOrder"`
}

type toggleRequest struct {
	Field     string `json:"field" validate:"required"`
	Recipient string `json:"recipient" validate:"required,oneof=client internal superiors"`
}

type bulkRequest struct {
	Recipient string `json:"recipient" validate:"required,oneof=client internal superiors"`
	Visible   *bool  `json:"visible" validate:"required"`
}

type reorderRequest struct {
	From *int `json:"from" validate:"required,gte=0"`
	To   *int `json:"to" validate:"required,gte=0"`
}

// Get handles GET /v1/candidates/:id/selections. Candidates without stored
// selections get the all-visible default.
//
// @Summary      Get recipient selections
// @Tags         selections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Candidate id"
// @Success      200  {object}  domain.RecipientSelections
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/candidates/{id}/selections [get]
func (h *SelectionHandler) Get(c echo.Context) error {
	id, err := candidateID(c)
	if err != nil {
		return err
	}
	sel, err := h.workspace.Selections(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sel)
}

// Put handles PUT /v1/candidates/:id/selections.
//
// @Summary      Replace recipient selections
// @Tags         selections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Candidate id"
// @Param        body  body      saveSelectionsRequest  true  "Visibility matrix and order"
// @Success      200   {object}  domain.RecipientSelections
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/candidates/{id}/selections [put]
func (h *SelectionHandler) Put(c echo.Context) error {
	id, err := candidateID(c)
	if err != nil {
		return err
	}
	var req saveSelectionsRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	saved, err := h.workspace.SaveSelections(c.Request().Context(), domain.RecipientSelections{
		CandidateID:     id,
		FieldVisibility: req.FieldVisibility,
		FieldOrder:      req.FieldOrder,
	})
	return h.respond(c, "save", saved, err)
}

// Toggle handles POST /v1/candidates/:id/selections/toggle.
//
// @Summary      Flip one field for one recipient
// @Tags         selections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Candidate id"
// @Param        body  body      toggleRequest  true  "Field and recipient"
// @Success      200   {object}  domain.RecipientSelections
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/candidates/{id}/selections/toggle [post]
func (h *SelectionHandler) Toggle(c echo.Context) error {
	id, err := candidateID(c)
	if err != nil {
		return err
	}
	var req toggleRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	key, err := domain.ParseFieldKey(req.Field)
	if err != nil {
		return err
	}

	saved, err := h.workspace.ToggleField(c.Request().Context(), id, key, domain.RecipientType(req.Recipient))
	return h.respond(c, "toggle", saved, err)
}

// Bulk handles POST /v1/candidates/:id/selections/bulk.
//
// @Summary      Show or hide every field for one recipient
// @Tags         selections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Candidate id"
// @Param        body  body      bulkRequest  true  "Recipient and visibility"
// @Success      200   {object}  domain.RecipientSelections
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/candidates/{id}/selections/bulk [post]
func (h *SelectionHandler) Bulk(c echo.Context) error {
	id, err := candidateID(c)
	if err != nil {
		return err
	}
	var req bulkRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	saved, err := h.workspace.SetAllForRecipient(c.Request().Context(), id, domain.RecipientType(req.Recipient), *req.Visible)
	return h.respond(c, "bulk", saved, err)
}

// Reorder handles POST /v1/candidates/:id/selections/reorder.
//
// @Summary      Move one field in the rendering order
// @Tags         selections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Candidate id"
// @Param        body  body      reorderRequest  true  "Source and destination index"
// @Success      200   {object}  domain.RecipientSelections
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/candidates/{id}/selections/reorder [post]
func (h *SelectionHandler) Reorder(c echo.Context) error {
	id, err := candidateID(c)
	if err != nil {
		return err
	}
	var req reorderRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	saved, err := h.workspace.ReorderFields(c.Request().Context(), id, *req.From, *req.To)
	return h.respond(c, "reorder", saved, err)
}

func (h *SelectionHandler) respond(c echo.Context, op string, saved domain.RecipientSelections, err error) error {
	metrics.SelectionsSavedTotal.WithLabelValues(op, resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}

// resultLabel buckets an outcome for metric labels.
func resultLabel(err error) string {
	var ve *domain.ValidationError
	var authErr *domain.AuthError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ve):
		return "invalid"
	case errors.Is(err, domain.ErrActionInFlight):
		return "conflict"
	case errors.As(err, &authErr):
		return "auth"
	default:
		return "error"
	}
}
