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

type profileServiceMocks struct {
	profileRepo     *mocks.ProfileRepository
	larpRepo        *mocks.LarpRepository
	inscriptionRepo *mocks.InscriptionRepository
}

func newProfileService(t *testing.T) (ProfileService, *profileServiceMocks) {
	t.Helper()
	m := &profileServiceMocks{
		profileRepo:     new(mocks.ProfileRepository),
		larpRepo:        new(mocks.LarpRepository),
		inscriptionRepo: new(mocks.InscriptionRepository),
	}
	svc := NewProfileService(nil, m.profileRepo, m.larpRepo, m.inscriptionRepo, zap.NewNop())
	return svc, m
}

func TestSaveProfile_ActivatesOnSave(t *testing.T) {
	svc, m := newProfileService(t)
	actor := models.Actor{UserID: uuid.New()}

	m.profileRepo.On("UpsertProfile", mock.Anything, mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.UserID == actor.UserID && p.Activated
	})).Return(nil)

	profile, err := svc.SaveProfile(context.Background(), actor, UpsertProfileInput{
		Pseudos:    "Nyx",
		Experience: models.ExperienceRegular,
	})

	require.NoError(t, err)
	assert.True(t, profile.Activated)
}

func TestSaveProfile_InvalidExperience(t *testing.T) {
	svc, _ := newProfileService(t)
	actor := models.Actor{UserID: uuid.New()}

	_, err := svc.SaveProfile(context.Background(), actor, UpsertProfileInput{
		Experience: models.ExperienceLevel("TEN"),
	})

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSavePnjProfile_RequiresPnjEnrollment(t *testing.T) {
	svc, m := newProfileService(t)
	actor := models.Actor{UserID: uuid.New()}
	larp := &models.Larp{ID: uuid.New()}
	inscription := &models.Inscription{UserID: actor.UserID, AccessType: models.AccessPJ}

	m.larpRepo.On("GetLarpByID", mock.Anything, mock.Anything, larp.ID).Return(larp, nil)
	m.inscriptionRepo.On("LatestForUserAndLarp", mock.Anything, mock.Anything, actor.UserID, larp.ID).Return(inscription, nil)

	_, err := svc.SavePnjProfile(context.Background(), actor, UpsertPnjProfileInput{LarpID: larp.ID})

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestSavePnjProfile_CompletedWhenAllPreferencesSet(t *testing.T) {
	svc, m := newProfileService(t)
	actor := models.Actor{UserID: uuid.New()}
	larp := &models.Larp{ID: uuid.New()}
	inscription := &models.Inscription{UserID: actor.UserID, AccessType: models.AccessPNJV}

	preferred := models.TimeEarly
	night := true
	logistic := models.ScaleLevel(3)
	importance := models.ScaleLevel(4)

	m.larpRepo.On("GetLarpByID", mock.Anything, mock.Anything, larp.ID).Return(larp, nil)
	m.inscriptionRepo.On("LatestForUserAndLarp", mock.Anything, mock.Anything, actor.UserID, larp.ID).Return(inscription, nil)
	m.profileRepo.On("UpsertPnjProfile", mock.Anything, mock.Anything, mock.MatchedBy(func(p *models.PnjProfile) bool {
		return p.Completed
	})).Return(nil)

	profile, err := svc.SavePnjProfile(context.Background(), actor, UpsertPnjProfileInput{
		LarpID:         larp.ID,
		PreferredTime:  &preferred,
		NightAction:    &night,
		LogisticOrRole: &logistic,
		Importance:     &importance,
	})

	require.NoError(t, err)
	assert.True(t, profile.Completed)
}

func TestSavePnjProfile_PartialAnswersStayIncomplete(t *testing.T) {
	svc, m := newProfileService(t)
	actor := models.Actor{UserID: uuid.New()}
	larp := &models.Larp{ID: uuid.New()}
	inscription := &models.Inscription{UserID: actor.UserID, AccessType: models.AccessPNJF}

	preferred := models.TimeLate

	m.larpRepo.On("GetLarpByID", mock.Anything, mock.Anything, larp.ID).Return(larp, nil)
	m.inscriptionRepo.On("LatestForUserAndLarp", mock.Anything, mock.Anything, actor.UserID, larp.ID).Return(inscription, nil)
	m.profileRepo.On("UpsertPnjProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	profile, err := svc.SavePnjProfile(context.Background(), actor, UpsertPnjProfileInput{
		LarpID:        larp.ID,
		PreferredTime: &preferred,
	})

	require.NoError(t, err)
	assert.False(t, profile.Completed)
}

func TestSavePnjProfile_ScaleOutOfRange(t *testing.T) {
	svc, _ := newProfileService(t)
	actor := models.Actor{UserID: uuid.New()}
	scale := models.ScaleLevel(9)

	_, err := svc.SavePnjProfile(context.Background(), actor, UpsertPnjProfileInput{
		LarpID:     uuid.New(),
		Importance: &scale,
	})

	assert.ErrorIs(t, err, models.ErrValidation)
}
