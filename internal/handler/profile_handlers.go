package handler

import (
	"net/http"

	"larp-server/internal/middleware"
	"larp-server/internal/models"
	"larp-server/internal/service"

	"github.com/labstack/echo/v4"
)

// GET /profile
func (h *Handler) getProfile(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	profile, err := h.profileService.GetProfile(c.Request().Context(), actor)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// PUT /profile
func (h *Handler) saveProfile(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req saveProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.profileService.SaveProfile(c.Request().Context(), actor, service.UpsertProfileInput{
		Pseudos:          req.Pseudos,
		Birthdate:        req.Birthdate,
		Food:             req.Food,
		Experience:       models.ExperienceLevel(req.Experience),
		UnwantedPeople:   req.UnwantedPeople,
		Fears:            req.Fears,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GET /larps/:id/pnj-profile
func (h *Handler) getPnjProfile(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	larpID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.profileService.GetPnjProfile(c.Request().Context(), actor, larpID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// PUT /larps/:id/pnj-profile
func (h *Handler) savePnjProfile(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	larpID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req savePnjProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := service.UpsertPnjProfileInput{
		LarpID:      larpID,
		InfoOrga:    req.InfoOrga,
		NightAction: req.NightAction,
		Talent:      req.Talent,
	}
	if req.PreferredTime != nil {
		pt := models.TimePreference(*req.PreferredTime)
		input.PreferredTime = &pt
	}
	if req.LogisticOrRole != nil {
		lv := models.ScaleLevel(*req.LogisticOrRole)
		input.LogisticOrRole = &lv
	}
	if req.Importance != nil {
		lv := models.ScaleLevel(*req.Importance)
		input.Importance = &lv
	}

	profile, err := h.profileService.SavePnjProfile(c.Request().Context(), actor, input)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}
