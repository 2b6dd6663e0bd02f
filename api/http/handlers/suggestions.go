package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/unipath/backend/api/http/presenter"
	"github.com/unipath/backend/pkg/match"
)

// SuggestionHandler serves the university match scorer.
type SuggestionHandler struct {
	uc match.UseCase
}

func NewSuggestionHandler(uc match.UseCase) *SuggestionHandler {
	return &SuggestionHandler{uc: uc}
}

// Suggest scores the whole university catalog against the submitted
// academic profile and returns the top matches.
// @Summary University suggestions for an academic profile
// @Description Scores every catalog university against GPA, SAT, IELTS band and intended major, returning at most six ranked matches.
// @Tags    suggestions
// @Accept  json
// @Produce json
// @Param   input body match.Request true "academic profile"
// @Security BearerAuth
// @Success 200 {array} match.Suggestion
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /suggestions [post]
func (h *SuggestionHandler) Suggest(c *fiber.Ctx) error {
	var req match.Request
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	suggestions, err := h.uc.Suggest(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrValidation):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, match.ErrCatalogUnavailable):
			return presenter.Error(c, http.StatusServiceUnavailable, err.Error())
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to compute suggestions")
		}
	}
	if suggestions == nil {
		suggestions = []match.Suggestion{}
	}
	return presenter.JSON(c, http.StatusOK, suggestions)
}
