package handler

import (
	"net/http"

	"larp-server/internal/middleware"
	"larp-server/internal/models"

	"github.com/labstack/echo/v4"
)

// GET /larps
func (h *Handler) listLarps(c echo.Context) error {
	larps, err := h.enrollmentService.ListLarps(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, larps)
}

// POST /larps
func (h *Handler) createLarp(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req createLarpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	larp, err := h.enrollmentService.CreateLarp(c.Request().Context(), actor, req.Name, req.Description, req.FactionsName)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, larp)
}

// GET /larps/:id
func (h *Handler) getLarp(c echo.Context) error {
	larpID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	larp, err := h.enrollmentService.GetLarp(c.Request().Context(), larpID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, larp)
}

// PATCH /larps/:id/sheet-creation
func (h *Handler) setSheetCreation(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	larpID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req setSheetCreationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.enrollmentService.SetSheetCreationOpened(c.Request().Context(), actor, larpID, req.Opened); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /larps/:id/opuses
func (h *Handler) listOpuses(c echo.Context) error {
	larpID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	opuses, err := h.enrollmentService.ListOpuses(c.Request().Context(), larpID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, opuses)
}

// POST /larps/:id/opuses
func (h *Handler) createOpus(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	larpID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req createOpusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	opus, err := h.enrollmentService.CreateOpus(c.Request().Context(), actor, larpID, req.Name, req.Date, req.Description, req.Location)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, opus)
}

// GET /larps/:id/factions
func (h *Handler) listFactions(c echo.Context) error {
	larpID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	factions, err := h.enrollmentService.ListFactions(c.Request().Context(), larpID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, factions)
}

// POST /larps/:id/factions
func (h *Handler) createFaction(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	larpID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req createFactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	faction, err := h.enrollmentService.CreateFaction(c.Request().Context(), actor, larpID, req.Name, req.OrgaContact, req.OrgaUserID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, faction)
}

// GET /opuses/:id/tickets
func (h *Handler) listTickets(c echo.Context) error {
	opusID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	tickets, err := h.enrollmentService.ListTickets(c.Request().Context(), opusID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// POST /opuses/:id/tickets
func (h *Handler) createTicket(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	opusID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ticket, err := h.enrollmentService.CreateTicket(c.Request().Context(), actor, opusID, req.Price, models.AccessType(req.AccessType))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, ticket)
}

// POST /opuses/:id/inscriptions
func (h *Handler) enroll(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	opusID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	inscription, err := h.enrollmentService.Enroll(c.Request().Context(), actor, opusID, models.AccessType(req.AccessType), req.FactionID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, inscription)
}

// GET /inscriptions
func (h *Handler) listMyInscriptions(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	inscriptions, err := h.enrollmentService.ListMyInscriptions(c.Request().Context(), actor)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, inscriptions)
}

// DELETE /inscriptions/:id
func (h *Handler) cancelInscription(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	inscriptionID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.enrollmentService.CancelInscription(c.Request().Context(), actor, inscriptionID); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
