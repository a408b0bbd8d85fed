package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"larp-server/internal/handler"
	"larp-server/internal/models"
	"larp-server/internal/service"
	serviceMocks "larp-server/internal/service/mocks"
	"larp-server/pkg/authutils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const jwtTestSecret = "handler-test-secret"

type handlerMocks struct {
	background *serviceMocks.BackgroundService
	catalog    *serviceMocks.CatalogService
	character  *serviceMocks.CharacterService
	enrollment *serviceMocks.EnrollmentService
	profile    *serviceMocks.ProfileService
}

func newTestServer(t *testing.T) (*echo.Echo, *handlerMocks) {
	t.Helper()

	m := &handlerMocks{
		background: new(serviceMocks.BackgroundService),
		catalog:    new(serviceMocks.CatalogService),
		character:  new(serviceMocks.CharacterService),
		enrollment: new(serviceMocks.EnrollmentService),
		profile:    new(serviceMocks.ProfileService),
	}

	verifier, err := authutils.NewJWTVerifier(jwtTestSecret, zap.NewNop())
	require.NoError(t, err)

	h := handler.NewHandler(m.background, m.catalog, m.character, m.enrollment, m.profile, verifier, zap.NewNop())

	e := echo.New()
	e.Validator = handler.NewCustomValidator()
	h.RegisterRoutes(e)
	return e, m
}

func signToken(t *testing.T, userID uuid.UUID, roles ...string) string {
	t.Helper()
	claims := models.Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtTestSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_MissingTokenIsUnauthorized(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/characters", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoutes_ExpiredTokenIsUnauthorized(t *testing.T) {
	e, _ := newTestServer(t)

	claims := models.Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtTestSecret))
	require.NoError(t, err)

	rec := doRequest(e, http.MethodGet, "/characters", signed, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResolveBackground_ReturnsStepWithChoices(t *testing.T) {
	e, m := newTestServer(t)
	userID := uuid.New()
	characterID := uuid.New()

	stepID := uuid.New()
	resolution := &models.BackgroundResolution{
		State: models.BackgroundInProgress,
		Step:  &models.BgStep{ID: stepID, StepOrder: 1, ShortName: "Origine"},
		EligibleChoices: []models.BgChoice{
			{ID: uuid.New(), StepID: stepID, ShortName: "Noble"},
		},
	}
	m.background.On("ResolveCurrentStep", mock.Anything, mock.MatchedBy(func(a models.Actor) bool {
		return a.UserID == userID
	}), characterID).Return(resolution, nil)

	rec := doRequest(e, http.MethodGet, "/characters/"+characterID.String()+"/background", signToken(t, userID), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.BackgroundResolution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.BackgroundInProgress, got.State)
	require.NotNil(t, got.Step)
	assert.Equal(t, "Origine", got.Step.ShortName)
	assert.Len(t, got.EligibleChoices, 1)
}

func TestSubmitAnswer_IneligibleChoiceIsBadRequest(t *testing.T) {
	e, m := newTestServer(t)
	userID := uuid.New()
	characterID := uuid.New()
	stepID := uuid.New()
	choiceID := uuid.New()

	m.background.On("SubmitAnswer", mock.Anything, mock.Anything, characterID, stepID, choiceID, "").
		Return(nil, models.ErrChoiceNotEligible)

	body := `{"step_id":"` + stepID.String() + `","choice_id":"` + choiceID.String() + `"}`
	rec := doRequest(e, http.MethodPost, "/characters/"+characterID.String()+"/background/answers", signToken(t, userID), body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitAnswer_MissingChoiceFailsValidation(t *testing.T) {
	e, m := newTestServer(t)

	body := `{"step_id":"` + uuid.New().String() + `"}`
	rec := doRequest(e, http.MethodPost, "/characters/"+uuid.New().String()+"/background/answers", signToken(t, uuid.New()), body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.background.AssertNotCalled(t, "SubmitAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveStep_UnknownDirectionFailsValidation(t *testing.T) {
	e, m := newTestServer(t)

	body := `{"direction":"sideways"}`
	rec := doRequest(e, http.MethodPost, "/steps/"+uuid.New().String()+"/move", signToken(t, uuid.New()), body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.catalog.AssertNotCalled(t, "MoveStep", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveStep_DelegatesDirection(t *testing.T) {
	e, m := newTestServer(t)
	stepID := uuid.New()

	m.catalog.On("MoveStep", mock.Anything, mock.Anything, stepID, service.MoveUp).Return(nil)

	rec := doRequest(e, http.MethodPost, "/steps/"+stepID.String()+"/move", signToken(t, uuid.New()), `{"direction":"up"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	m.catalog.AssertExpectations(t)
}

func TestCreateLarp_NonAdminIsForbidden(t *testing.T) {
	e, m := newTestServer(t)

	body := `{"name":"Les Chroniques"}`
	rec := doRequest(e, http.MethodPost, "/larps", signToken(t, uuid.New()), body)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	m.enrollment.AssertNotCalled(t, "CreateLarp", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateLarp_AdminSucceeds(t *testing.T) {
	e, m := newTestServer(t)
	adminID := uuid.New()
	larp := &models.Larp{ID: uuid.New(), Name: "Les Chroniques"}

	m.enrollment.On("CreateLarp", mock.Anything, mock.MatchedBy(func(a models.Actor) bool {
		return a.UserID == adminID && a.IsAdmin()
	}), "Les Chroniques", "", "").Return(larp, nil)

	rec := doRequest(e, http.MethodPost, "/larps", signToken(t, adminID, models.RoleAdmin), `{"name":"Les Chroniques"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	m.enrollment.AssertExpectations(t)
}

func TestPlayerValidate_InvalidTransitionIsConflict(t *testing.T) {
	e, m := newTestServer(t)
	characterID := uuid.New()

	m.character.On("PlayerValidate", mock.Anything, mock.Anything, characterID).
		Return(models.ErrInvalidTransition)

	rec := doRequest(e, http.MethodPost, "/characters/"+characterID.String()+"/validate", signToken(t, uuid.New()), "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetCharacter_MalformedIDIsBadRequest(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/characters/not-a-uuid", signToken(t, uuid.New()), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCharacter_UnknownIDIsNotFound(t *testing.T) {
	e, m := newTestServer(t)
	characterID := uuid.New()

	m.character.On("GetCharacter", mock.Anything, mock.Anything, characterID).
		Return(nil, models.ErrNotFound)

	rec := doRequest(e, http.MethodGet, "/characters/"+characterID.String(), signToken(t, uuid.New()), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEnroll_DuplicateIsConflict(t *testing.T) {
	e, m := newTestServer(t)
	opusID := uuid.New()

	m.enrollment.On("Enroll", mock.Anything, mock.Anything, opusID, models.AccessPJ, (*uuid.UUID)(nil)).
		Return(nil, models.ErrDuplicate)

	rec := doRequest(e, http.MethodPost, "/opuses/"+opusID.String()+"/inscriptions", signToken(t, uuid.New()), `{"access_type":"PJ"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
