package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
	"github.com/buzzhire/recruit-mailer/internal/core/ports"
)

// CandidateHandler serves the candidate dashboard.
type CandidateHandler struct {
	workspace ports.WorkspaceService
}

func NewCandidateHandler(workspace ports.WorkspaceService) *CandidateHandler {
	return &CandidateHandler{workspace: workspace}
}

type candidateListResponse struct {
	Candidates []domain.Candidate `json:"candidates"`
	Total      int                `json:"total"`
}

// List handles GET /v1/candidates.
//
// @Summary      List candidates
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Case-insensitive match on name, email, company, location or skills"
// @Success      200     {object}  candidateListResponse
// @Failure      502     {object}  map[string]string
// @Router       /v1/candidates [get]
func (h *CandidateHandler) List(c echo.Context) error {
	list, err := h.workspace.ListCandidates(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	if list == nil {
		list = []domain.Candidate{}
	}
	return c.JSON(http.StatusOK, candidateListResponse{Candidates: list, Total: len(list)})
}

// Get handles GET /v1/candidates/:id.
//
// @Summary      Get a candidate
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Candidate id"
// @Success      200  {object}  domain.Candidate
// @Failure      404  {object}  map[string]string
// @Router       /v1/candidates/{id} [get]
func (h *CandidateHandler) Get(c echo.Context) error {
	id, err := candidateID(c)
	if err != nil {
		return err
	}
	cand, err := h.workspace.Candidate(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cand)
}

// Create handles POST /v1/candidates. Default selections are stored along
// with the candidate.
//
// @Summary      Create a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.Candidate  true  "Candidate"
// @Success      201   {object}  domain.Candidate
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/candidates [post]
func (h *CandidateHandler) Create(c echo.Context) error {
	var req domain.Candidate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	created, err := h.workspace.CreateCandidate(c.Request().Context(), req)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/candidates/"+created.ID)
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/candidates/:id. The path id wins over the body.
//
// @Summary      Update a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Candidate id"
// @Param        body  body      domain.Candidate  true  "Candidate"
// @Success      200   {object}  domain.Candidate
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/candidates/{id} [put]
func (h *CandidateHandler) Update(c echo.Context) error {
	id, err := candidateID(c)
	if err != nil {
		return err
	}
	var req domain.Candidate
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	req.ID = id

	updated, err := h.workspace.UpdateCandidate(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/candidates/:id.
//
// @Summary      Delete a candidate
// @Tags         candidates
// @Security     BearerAuth
// @Param        id   path  string  true  "Candidate id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/candidates/{id} [delete]
func (h *CandidateHandler) Delete(c echo.Context) error {
	id, err := candidateID(c)
	if err != nil {
		return err
	}
	if err := h.workspace.DeleteCandidate(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/candidates/stats.
//
// @Summary      Dashboard counters
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Stats
// @Failure      502  {object}  map[string]string
// @Router       /v1/candidates/stats [get]
func (h *CandidateHandler) Stats(c echo.Context) error {
	stats, err := h.workspace.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
