package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/unipath/backend/api/http/presenter"
	"github.com/unipath/backend/pkg/catalog"
)

// CatalogHandler serves the scholarship, visa and exam reference data.
type CatalogHandler struct {
	uc catalog.UseCase
}

func NewCatalogHandler(uc catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// @Summary List scholarships
// @Tags    catalog
// @Produce json
// @Success 200 {array} catalog.Scholarship
// @Router  /scholarships [get]
func (h *CatalogHandler) ListScholarships(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.uc.ListScholarships(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list scholarships")
	}
	if items == nil {
		items = []catalog.Scholarship{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary Get scholarship by ID
// @Tags    catalog
// @Produce json
// @Param   id path string true "scholarship ID (UUID)"
// @Success 200 {object} catalog.Scholarship
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /scholarships/{id} [get]
func (h *CatalogHandler) GetScholarship(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	item, err := h.uc.GetScholarship(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "scholarship not found")
	}
	return presenter.JSON(c, http.StatusOK, item)
}

// @Summary Create scholarship
// @Tags    catalog
// @Accept  json
// @Produce json
// @Param   input body catalog.Scholarship true "scholarship payload"
// @Security BearerAuth
// @Success 201 {object} catalog.Scholarship
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /scholarships [post]
func (h *CatalogHandler) CreateScholarship(c *fiber.Ctx) error {
	var req catalog.Scholarship
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	item, err := h.uc.CreateScholarship(c.Context(), req)
	if err != nil {
		if errors.Is(err, catalog.ErrValidation) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create scholarship")
	}
	return presenter.JSON(c, http.StatusCreated, item)
}

// @Summary Update scholarship
// @Tags    catalog
// @Accept  json
// @Produce json
// @Param   id path string true "scholarship ID (UUID)"
// @Param   input body catalog.Scholarship true "scholarship payload"
// @Security BearerAuth
// @Success 200 {object} catalog.Scholarship
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /scholarships/{id} [put]
func (h *CatalogHandler) UpdateScholarship(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req catalog.Scholarship
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	req.ID = id
	item, err := h.uc.UpdateScholarship(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrValidation):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "scholarship not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update scholarship")
		}
	}
	return presenter.JSON(c, http.StatusOK, item)
}

// @Summary Delete scholarship
// @Tags    catalog
// @Param   id path string true "scholarship ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /scholarships/{id} [delete]
func (h *CatalogHandler) DeleteScholarship(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.DeleteScholarship(c.Context(), id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "scholarship not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary List visa guides
// @Tags    catalog
// @Produce json
// @Success 200 {array} catalog.VisaGuide
// @Router  /visas [get]
func (h *CatalogHandler) ListVisaGuides(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.uc.ListVisaGuides(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list visa guides")
	}
	if items == nil {
		items = []catalog.VisaGuide{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary Get visa guide by ID
// @Tags    catalog
// @Produce json
// @Param   id path string true "visa guide ID (UUID)"
// @Success 200 {object} catalog.VisaGuide
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /visas/{id} [get]
func (h *CatalogHandler) GetVisaGuide(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	item, err := h.uc.GetVisaGuide(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "visa guide not found")
	}
	return presenter.JSON(c, http.StatusOK, item)
}

// @Summary Create visa guide
// @Tags    catalog
// @Accept  json
// @Produce json
// @Param   input body catalog.VisaGuide true "visa guide payload"
// @Security BearerAuth
// @Success 201 {object} catalog.VisaGuide
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /visas [post]
func (h *CatalogHandler) CreateVisaGuide(c *fiber.Ctx) error {
	var req catalog.VisaGuide
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	item, err := h.uc.CreateVisaGuide(c.Context(), req)
	if err != nil {
		if errors.Is(err, catalog.ErrValidation) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create visa guide")
	}
	return presenter.JSON(c, http.StatusCreated, item)
}

// @Summary Update visa guide
// @Tags    catalog
// @Accept  json
// @Produce json
// @Param   id path string true "visa guide ID (UUID)"
// @Param   input body catalog.VisaGuide true "visa guide payload"
// @Security BearerAuth
// @Success 200 {object} catalog.VisaGuide
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /visas/{id} [put]
func (h *CatalogHandler) UpdateVisaGuide(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req catalog.VisaGuide
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	req.ID = id
	item, err := h.uc.UpdateVisaGuide(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrValidation):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "visa guide not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update visa guide")
		}
	}
	return presenter.JSON(c, http.StatusOK, item)
}

// @Summary Delete visa guide
// @Tags    catalog
// @Param   id path string true "visa guide ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /visas/{id} [delete]
func (h *CatalogHandler) DeleteVisaGuide(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.DeleteVisaGuide(c.Context(), id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "visa guide not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary List exams
// @Tags    catalog
// @Produce json
// @Success 200 {array} catalog.Exam
// @Router  /exams [get]
func (h *CatalogHandler) ListExams(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.uc.ListExams(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list exams")
	}
	if items == nil {
		items = []catalog.Exam{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary Get exam by ID
// @Tags    catalog
// @Produce json
// @Param   id path string true "exam ID (UUID)"
// @Success 200 {object} catalog.Exam
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /exams/{id} [get]
func (h *CatalogHandler) GetExam(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	item, err := h.uc.GetExam(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "exam not found")
	}
	return presenter.JSON(c, http.StatusOK, item)
}

// @Summary Create exam
// @Tags    catalog
// @Accept  json
// @Produce json
// @Param   input body catalog.Exam true "exam payload"
// @Security BearerAuth
// @Success 201 {object} catalog.Exam
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /exams [post]
func (h *CatalogHandler) CreateExam(c *fiber.Ctx) error {
	var req catalog.Exam
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	item, err := h.uc.CreateExam(c.Context(), req)
	if err != nil {
		if errors.Is(err, catalog.ErrValidation) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create exam")
	}
	return presenter.JSON(c, http.StatusCreated, item)
}

// @Summary Update exam
// @Tags    catalog
// @Accept  json
// @Produce json
// @Param   id path string true "exam ID (UUID)"
// @Param   input body catalog.Exam true "exam payload"
// @Security BearerAuth
// @Success 200 {object} catalog.Exam
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /exams/{id} [put]
func (h *CatalogHandler) UpdateExam(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req catalog.Exam
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	req.ID = id
	item, err := h.uc.UpdateExam(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrValidation):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "exam not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update exam")
		}
	}
	return presenter.JSON(c, http.StatusOK, item)
}

// @Summary Delete exam
// @Tags    catalog
// @Param   id path string true "exam ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /exams/{id} [delete]
func (h *CatalogHandler) DeleteExam(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.DeleteExam(c.Context(), id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "exam not found")
	}
	return c.SendStatus(http.StatusNoContent)
}
