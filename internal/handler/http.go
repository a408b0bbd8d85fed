package handler

import (
	"errors"
	"net/http"

	"larp-server/internal/middleware"
	"larp-server/internal/models"
	"larp-server/internal/service"
	"larp-server/pkg/authutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// APIError is the standardized error response body.
type APIError struct {
	Message string `json:"message"`
}

// CustomValidator plugs go-playground/validator into Echo's c.Validate.
type CustomValidator struct {
	validate *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Handler serves the HTTP API of the larp server.
type Handler struct {
	backgroundService service.BackgroundService
	catalogService    service.CatalogService
	characterService  service.CharacterService
	enrollmentService service.EnrollmentService
	profileService    service.ProfileService
	verifier          *authutils.JWTVerifier
	logger            *zap.Logger
}

func NewHandler(
	backgroundService service.BackgroundService,
	catalogService service.CatalogService,
	characterService service.CharacterService,
	enrollmentService service.EnrollmentService,
	profileService service.ProfileService,
	verifier *authutils.JWTVerifier,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		backgroundService: backgroundService,
		catalogService:    catalogService,
		characterService:  characterService,
		enrollmentService: enrollmentService,
		profileService:    profileService,
		verifier:          verifier,
		logger:            logger.Named("Handler"),
	}
}

// RegisterRoutes wires every route behind the auth middleware.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	authMiddleware := middleware.AuthMiddleware(h.verifier, h.logger)

	larps := e.Group("/larps", authMiddleware)
	{
		larps.GET("", h.listLarps)
		larps.POST("", h.createLarp, middleware.RequireRole(models.RoleAdmin))
		larps.GET("/:id", h.getLarp)
		larps.PATCH("/:id/sheet-creation", h.setSheetCreation)
		larps.GET("/:id/opuses", h.listOpuses)
		larps.POST("/:id/opuses", h.createOpus)
		larps.GET("/:id/factions", h.listFactions)
		larps.POST("/:id/factions", h.createFaction)
		larps.GET("/:id/characters", h.listLarpCharacters)
		larps.GET("/:id/pnj-profile", h.getPnjProfile)
		larps.PUT("/:id/pnj-profile", h.savePnjProfile)
	}

	opuses := e.Group("/opuses", authMiddleware)
	{
		opuses.GET("/:id/tickets", h.listTickets)
		opuses.POST("/:id/tickets", h.createTicket)
		opuses.POST("/:id/inscriptions", h.enroll)
	}

	inscriptions := e.Group("/inscriptions", authMiddleware)
	{
		inscriptions.GET("", h.listMyInscriptions)
		inscriptions.DELETE("/:id", h.cancelInscription)
	}

	factions := e.Group("/factions", authMiddleware)
	{
		factions.GET("/:id/steps", h.listSteps)
		factions.POST("/:id/steps", h.createStep)
	}

	steps := e.Group("/steps", authMiddleware)
	{
		steps.PUT("/:id", h.updateStep)
		steps.DELETE("/:id", h.deleteStep)
		steps.POST("/:id/move", h.moveStep)
		steps.GET("/:id/choices", h.listChoices)
		steps.POST("/:id/choices", h.createChoice)
	}

	choices := e.Group("/choices", authMiddleware)
	{
		choices.PUT("/:id", h.updateChoice)
		choices.DELETE("/:id", h.deleteChoice)
		choices.PUT("/:id/prerequisite", h.setPrerequisite)
	}

	characters := e.Group("/characters", authMiddleware)
	{
		characters.POST("", h.createCharacter)
		characters.GET("", h.listMyCharacters)
		characters.GET("/:id", h.getCharacter)
		characters.PUT("/:id", h.updateCharacter)
		characters.DELETE("/:id", h.deleteCharacter)
		characters.POST("/:id/validate", h.playerValidate)
		characters.POST("/:id/orga-validate", h.orgaValidate)
		characters.POST("/:id/unlock", h.unlock)

		characters.GET("/:id/background", h.resolveCurrentStep)
		characters.GET("/:id/background/answers", h.listAnswers)
		characters.POST("/:id/background/answers", h.submitAnswer)
		characters.PATCH("/:id/background/answers/:answerID", h.updateAnswerText)

		characters.GET("/:id/documents", h.listDocuments)
		characters.POST("/:id/documents", h.addDocument)
		characters.DELETE("/:id/documents/:docID", h.deleteDocument)
	}

	profile := e.Group("/profile", authMiddleware)
	{
		profile.GET("", h.getProfile)
		profile.PUT("", h.saveProfile)
	}
}

// pathUUID parses a path parameter as a UUID.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" parameter")
	}
	return id, nil
}

func handleServiceError(c echo.Context, err error) error {
	var statusCode int
	var apiErr APIError

	switch {
	case errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		apiErr = APIError{Message: "Unauthorized"}
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrStepNotFound),
		errors.Is(err, models.ErrChoiceNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrDuplicate),
		errors.Is(err, models.ErrCharacterLimit),
		errors.Is(err, models.ErrSheetNotEditable),
		errors.Is(err, models.ErrInvalidTransition):
		statusCode = http.StatusConflict
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrChoiceNotEligible),
		errors.Is(err, models.ErrPrerequisiteOrder),
		errors.Is(err, models.ErrBadRequest):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrDataIntegrity):
		statusCode = http.StatusUnprocessableEntity
		apiErr = APIError{Message: err.Error()}
	default:
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Internal server error"}
	}
	return c.JSON(statusCode, apiErr)
}
