package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/unipath/backend/api/http/presenter"
	"github.com/unipath/backend/pkg/catalog"
)

type UniversityHandler struct {
	uc catalog.UseCase
}

func NewUniversityHandler(uc catalog.UseCase) *UniversityHandler {
	return &UniversityHandler{uc: uc}
}

type universityRequest struct {
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Ranking    int      `json:"ranking"`
	Rating     float64  `json:"rating"`
	Tuition    string   `json:"tuition"`
	Acceptance string   `json:"acceptance"`
	Students   string   `json:"students"`
	Image      string   `json:"image"`
	Programs   []string `json:"programs"`
	Highlights []string `json:"highlights"`
	Deadline   string   `json:"deadline"`
}

func (r universityRequest) toEntity() catalog.University {
	return catalog.University{
		Name:       r.Name,
		Location:   r.Location,
		Ranking:    r.Ranking,
		Rating:     r.Rating,
		Tuition:    r.Tuition,
		Acceptance: r.Acceptance,
		Students:   r.Students,
		Image:      r.Image,
		Programs:   r.Programs,
		Highlights: r.Highlights,
		Deadline:   r.Deadline,
	}
}

// @Summary List universities
// @Tags    universities
// @Produce json
// @Param   limit query int false "page size"
// @Param   offset query int false "page offset"
// @Success 200 {array} catalog.University
// @Router  /universities [get]
func (h *UniversityHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	us, err := h.uc.ListUniversities(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list universities")
	}
	if us == nil {
		us = []catalog.University{}
	}
	return presenter.JSON(c, http.StatusOK, us)
}

// @Summary Get university by ID
// @Tags    universities
// @Produce json
// @Param   id path string true "university ID (UUID)"
// @Success 200 {object} catalog.University
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /universities/{id} [get]
func (h *UniversityHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	u, err := h.uc.GetUniversity(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "university not found")
	}
	return presenter.JSON(c, http.StatusOK, u)
}

// @Summary Create university
// @Tags    universities
// @Accept  json
// @Produce json
// @Param   input body universityRequest true "university payload"
// @Security BearerAuth
// @Success 201 {object} catalog.University
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /universities [post]
func (h *UniversityHandler) Create(c *fiber.Ctx) error {
	var req universityRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	u, err := h.uc.CreateUniversity(c.Context(), req.toEntity())
	if err != nil {
		if errors.Is(err, catalog.ErrValidation) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create university")
	}
	return presenter.JSON(c, http.StatusCreated, u)
}

// @Summary Update university
// @Tags    universities
// @Accept  json
// @Produce json
// @Param   id path string true "university ID (UUID)"
// @Param   input body universityRequest true "university payload"
// @Security BearerAuth
// @Success 200 {object} catalog.University
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /universities/{id} [put]
func (h *UniversityHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req universityRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	u := req.toEntity()
	u.ID = id
	updated, err := h.uc.UpdateUniversity(c.Context(), u)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrValidation):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "university not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update university")
		}
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

// @Summary Delete university
// @Tags    universities
// @Produce json
// @Param   id path string true "university ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /universities/{id} [delete]
func (h *UniversityHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.DeleteUniversity(c.Context(), id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "university not found")
	}
	return c.SendStatus(http.StatusNoContent)
}
