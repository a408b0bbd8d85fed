package handler

import (
	"net/http"

	"larp-server/internal/middleware"
	"larp-server/internal/models"
	"larp-server/internal/service"

	"github.com/labstack/echo/v4"
)

// POST /characters
func (h *Handler) createCharacter(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req createCharacterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	character, err := h.characterService.CreateCharacter(c.Request().Context(), actor, service.CreateCharacterInput{
		LarpID:      req.LarpID,
		FactionID:   req.FactionID,
		Name:        req.Name,
		Skills:      req.Skills,
		LastLearned: req.LastLearned,
		Emotions:    models.EmotionPreference(req.Emotions),
		Objectives:  req.Objectives,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, character)
}

// GET /characters
func (h *Handler) listMyCharacters(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	characters, err := h.characterService.ListMyCharacters(c.Request().Context(), actor)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, characters)
}

// GET /characters/:id
func (h *Handler) getCharacter(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	character, err := h.characterService.GetCharacter(c.Request().Context(), actor, characterID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, character)
}

// GET /larps/:id/characters
func (h *Handler) listLarpCharacters(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	larpID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	characters, err := h.characterService.ListLarpCharacters(c.Request().Context(), actor, larpID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, characters)
}

// PUT /characters/:id
func (h *Handler) updateCharacter(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateCharacterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	character, err := h.characterService.UpdateCharacter(c.Request().Context(), actor, characterID, service.UpdateCharacterInput{
		Name:        req.Name,
		Skills:      req.Skills,
		LastLearned: req.LastLearned,
		Emotions:    models.EmotionPreference(req.Emotions),
		Objectives:  req.Objectives,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, character)
}

// DELETE /characters/:id
func (h *Handler) deleteCharacter(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.characterService.DeleteCharacter(c.Request().Context(), actor, characterID); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /characters/:id/validate
func (h *Handler) playerValidate(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.characterService.PlayerValidate(c.Request().Context(), actor, characterID); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /characters/:id/orga-validate
func (h *Handler) orgaValidate(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.characterService.OrgaValidate(c.Request().Context(), actor, characterID); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /characters/:id/unlock
func (h *Handler) unlock(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.characterService.Unlock(c.Request().Context(), actor, characterID); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /characters/:id/documents
func (h *Handler) listDocuments(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	docs, err := h.characterService.ListDocuments(c.Request().Context(), actor, characterID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, docs)
}

// POST /characters/:id/documents
func (h *Handler) addDocument(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req addDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	doc, err := h.characterService.AddDocument(c.Request().Context(), actor, characterID, req.Name, req.DocumentURL)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

// DELETE /characters/:id/documents/:docID
func (h *Handler) deleteDocument(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	docID, err := pathUUID(c, "docID")
	if err != nil {
		return err
	}

	if err := h.characterService.DeleteDocument(c.Request().Context(), actor, characterID, docID); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
