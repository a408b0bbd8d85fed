package handler

import (
	"net/http"

	"larp-server/internal/middleware"

	"github.com/labstack/echo/v4"
)

// GET /characters/:id/background
func (h *Handler) resolveCurrentStep(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	resolution, err := h.backgroundService.ResolveCurrentStep(c.Request().Context(), actor, characterID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, resolution)
}

// POST /characters/:id/background/answers
func (h *Handler) submitAnswer(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req submitAnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.backgroundService.SubmitAnswer(c.Request().Context(), actor, characterID, req.StepID, req.ChoiceID, req.PlayerText)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GET /characters/:id/background/answers
func (h *Handler) listAnswers(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	answers, err := h.backgroundService.ListAnswers(c.Request().Context(), actor, characterID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, answers)
}

// PATCH /characters/:id/background/answers/:answerID
func (h *Handler) updateAnswerText(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	answerID, err := pathUUID(c, "answerID")
	if err != nil {
		return err
	}

	var req updateAnswerTextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.backgroundService.UpdateAnswerText(c.Request().Context(), actor, characterID, answerID, req.PlayerText); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
