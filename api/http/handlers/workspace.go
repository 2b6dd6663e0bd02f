package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/unipath/backend/api/http/presenter"
	"github.com/unipath/backend/pkg/workspace"
)

// WorkspaceHandler serves per-user test scores and the saved-university
// shortlist.
type WorkspaceHandler struct {
	uc workspace.UseCase
}

func NewWorkspaceHandler(uc workspace.UseCase) *WorkspaceHandler {
	return &WorkspaceHandler{uc: uc}
}

type scoreRequest struct {
	Exam     string `json:"exam"`
	Score    string `json:"score"`
	MaxScore string `json:"maxScore"`
	TestDate string `json:"testDate"`
}

// @Summary Submit or replace a test score
// @Tags    workspace
// @Accept  json
// @Produce json
// @Param   input body scoreRequest true "test score payload"
// @Security BearerAuth
// @Success 200 {object} workspace.TestScore
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /scores [put]
func (h *WorkspaceHandler) SubmitScore(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	var req scoreRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	score, err := h.uc.SubmitScore(c.Context(), workspace.TestScore{
		OwnerID:  ownerID,
		Exam:     req.Exam,
		Score:    req.Score,
		MaxScore: req.MaxScore,
		TestDate: req.TestDate,
	})
	if err != nil {
		if errors.Is(err, workspace.ErrValidation) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to save score")
	}
	return presenter.JSON(c, http.StatusOK, score)
}

// @Summary List test scores
// @Tags    workspace
// @Produce json
// @Security BearerAuth
// @Success 200 {array} workspace.TestScore
// @Router  /scores [get]
func (h *WorkspaceHandler) ListScores(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	scores, err := h.uc.ListScores(c.Context(), ownerID)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list scores")
	}
	if scores == nil {
		scores = []workspace.TestScore{}
	}
	return presenter.JSON(c, http.StatusOK, scores)
}

// @Summary Delete a test score
// @Tags    workspace
// @Param   id path string true "score ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /scores/{id} [delete]
func (h *WorkspaceHandler) DeleteScore(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.DeleteScore(c.Context(), ownerID, id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "score not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

type saveRequest struct {
	Note string `json:"note"`
}

// @Summary Save a university to the shortlist
// @Tags    workspace
// @Accept  json
// @Param   universityId path string true "university ID (UUID)"
// @Param   input body saveRequest false "optional note"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /saved/{universityId} [post]
func (h *WorkspaceHandler) SaveUniversity(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	universityID, err := uuid.Parse(c.Params("universityId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req saveRequest
	_ = c.BodyParser(&req) // note is optional; an empty body is fine
	if err := h.uc.SaveUniversity(c.Context(), ownerID, universityID, req.Note); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save university")
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary Remove a university from the shortlist
// @Tags    workspace
// @Param   universityId path string true "university ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /saved/{universityId} [delete]
func (h *WorkspaceHandler) UnsaveUniversity(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	universityID, err := uuid.Parse(c.Params("universityId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.UnsaveUniversity(c.Context(), ownerID, universityID); err != nil {
		return presenter.Error(c, http.StatusNotFound, "saved university not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary List saved universities
// @Tags    workspace
// @Produce json
// @Security BearerAuth
// @Success 200 {array} workspace.SavedUniversityView
// @Router  /saved [get]
func (h *WorkspaceHandler) ListSaved(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	saved, err := h.uc.ListSaved(c.Context(), ownerID)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list saved universities")
	}
	if saved == nil {
		saved = []workspace.SavedUniversityView{}
	}
	return presenter.JSON(c, http.StatusOK, saved)
}
