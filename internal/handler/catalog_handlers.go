package handler

import (
	"net/http"

	"larp-server/internal/middleware"
	"larp-server/internal/service"

	"github.com/labstack/echo/v4"
)

// GET /factions/:id/steps
func (h *Handler) listSteps(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	factionID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	steps, err := h.catalogService.ListSteps(c.Request().Context(), actor, factionID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, steps)
}

// POST /factions/:id/steps
func (h *Handler) createStep(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	factionID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req createStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	step, err := h.catalogService.CreateStep(c.Request().Context(), actor, factionID, req.ShortName, req.Question)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, step)
}

// PUT /steps/:id
func (h *Handler) updateStep(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	stepID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	step, err := h.catalogService.UpdateStep(c.Request().Context(), actor, stepID, req.ShortName, req.Question)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, step)
}

// POST /steps/:id/move
func (h *Handler) moveStep(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	stepID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req moveStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.catalogService.MoveStep(c.Request().Context(), actor, stepID, service.MoveDirection(req.Direction)); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DELETE /steps/:id
func (h *Handler) deleteStep(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	stepID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteStep(c.Request().Context(), actor, stepID); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /steps/:id/choices
func (h *Handler) listChoices(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	stepID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	choices, err := h.catalogService.ListChoices(c.Request().Context(), actor, stepID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, choices)
}

// POST /steps/:id/choices
func (h *Handler) createChoice(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	stepID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req createChoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	choice, err := h.catalogService.CreateChoice(c.Request().Context(), actor, stepID,
		req.ShortName, req.Text, req.FillableByPlayer, req.PrerequisiteID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, choice)
}

// PUT /choices/:id
func (h *Handler) updateChoice(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	choiceID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateChoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	choice, err := h.catalogService.UpdateChoice(c.Request().Context(), actor, choiceID,
		req.ShortName, req.Text, req.FillableByPlayer)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, choice)
}

// PUT /choices/:id/prerequisite
func (h *Handler) setPrerequisite(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	choiceID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req setPrerequisiteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.catalogService.SetPrerequisite(c.Request().Context(), actor, choiceID, req.PrerequisiteID); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DELETE /choices/:id
func (h *Handler) deleteChoice(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	choiceID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteChoice(c.Request().Context(), actor, choiceID); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
