package service

import (
	"context"
	"testing"

	"larp-server/internal/models"
	"larp-server/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEnrollmentService(t *testing.T) (EnrollmentService, *mocks.LarpRepository, *mocks.InscriptionRepository) {
	t.Helper()
	larpRepo := new(mocks.LarpRepository)
	inscriptionRepo := new(mocks.InscriptionRepository)
	svc := NewEnrollmentService(nil, larpRepo, inscriptionRepo, zap.NewNop())
	return svc, larpRepo, inscriptionRepo
}

func TestEnroll_Success(t *testing.T) {
	svc, larpRepo, inscriptionRepo := newEnrollmentService(t)
	actor := models.Actor{UserID: uuid.New()}
	opus := &models.Opus{ID: uuid.New(), LarpID: uuid.New()}

	larpRepo.On("GetOpusByID", mock.Anything, mock.Anything, opus.ID).Return(opus, nil)
	inscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(in *models.Inscription) bool {
		return in.UserID == actor.UserID && in.OpusID == opus.ID && in.AccessType == models.AccessPJ
	})).Return(nil)

	inscription, err := svc.Enroll(context.Background(), actor, opus.ID, models.AccessPJ, nil)

	require.NoError(t, err)
	assert.Equal(t, actor.UserID, inscription.UserID)
}

func TestEnroll_SecondEnrollmentSameOpus(t *testing.T) {
	svc, larpRepo, inscriptionRepo := newEnrollmentService(t)
	actor := models.Actor{UserID: uuid.New()}
	opus := &models.Opus{ID: uuid.New(), LarpID: uuid.New()}

	larpRepo.On("GetOpusByID", mock.Anything, mock.Anything, opus.ID).Return(opus, nil)
	inscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(models.ErrDuplicate)

	_, err := svc.Enroll(context.Background(), actor, opus.ID, models.AccessPNJV, nil)

	assert.ErrorIs(t, err, models.ErrDuplicate)
}

func TestEnroll_InvalidAccessType(t *testing.T) {
	svc, _, _ := newEnrollmentService(t)
	actor := models.Actor{UserID: uuid.New()}

	_, err := svc.Enroll(context.Background(), actor, uuid.New(), models.AccessType("GUEST"), nil)

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestEnroll_FactionFromAnotherLarp(t *testing.T) {
	svc, larpRepo, _ := newEnrollmentService(t)
	actor := models.Actor{UserID: uuid.New()}
	opus := &models.Opus{ID: uuid.New(), LarpID: uuid.New()}
	faction := &models.Faction{ID: uuid.New(), LarpID: uuid.New()}

	larpRepo.On("GetOpusByID", mock.Anything, mock.Anything, opus.ID).Return(opus, nil)
	larpRepo.On("GetFactionByID", mock.Anything, mock.Anything, faction.ID).Return(faction, nil)

	_, err := svc.Enroll(context.Background(), actor, opus.ID, models.AccessPNJF, &faction.ID)

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateLarp_AdminOnly(t *testing.T) {
	svc, _, _ := newEnrollmentService(t)
	actor := models.Actor{UserID: uuid.New(), Roles: []string{models.RoleOrga}}

	_, err := svc.CreateLarp(context.Background(), actor, "Chroniques", "", "clan")

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestCreateLarp_CreatorBecomesOrganizer(t *testing.T) {
	svc, larpRepo, _ := newEnrollmentService(t)
	actor := models.Actor{UserID: uuid.New(), Roles: []string{models.RoleAdmin}}

	larpRepo.On("CreateLarp", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	larpRepo.On("AddOrganizer", mock.Anything, mock.Anything, mock.Anything, actor.UserID).Return(nil)

	larp, err := svc.CreateLarp(context.Background(), actor, "Chroniques", "desc", "clan")

	require.NoError(t, err)
	assert.Equal(t, "Chroniques", larp.Name)
	larpRepo.AssertCalled(t, "AddOrganizer", mock.Anything, mock.Anything, larp.ID, actor.UserID)
}

func TestCancelInscription_OwnerOnly(t *testing.T) {
	svc, _, inscriptionRepo := newEnrollmentService(t)
	stranger := models.Actor{UserID: uuid.New()}
	inscription := &models.Inscription{ID: uuid.New(), UserID: uuid.New()}

	inscriptionRepo.On("GetByID", mock.Anything, mock.Anything, inscription.ID).Return(inscription, nil)

	err := svc.CancelInscription(context.Background(), stranger, inscription.ID)

	assert.ErrorIs(t, err, models.ErrForbidden)
	inscriptionRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTicket_NegativePrice(t *testing.T) {
	svc, larpRepo, _ := newEnrollmentService(t)
	actor := models.Actor{UserID: uuid.New(), Roles: []string{models.RoleAdmin}}
	opus := &models.Opus{ID: uuid.New(), LarpID: uuid.New()}

	larpRepo.On("GetOpusByID", mock.Anything, mock.Anything, opus.ID).Return(opus, nil)

	_, err := svc.CreateTicket(context.Background(), actor, opus.ID, -5, models.AccessPJ)

	assert.ErrorIs(t, err, models.ErrValidation)
}
