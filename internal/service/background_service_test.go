package service

import (
	"context"
	"testing"

	"larp-server/internal/messaging"
	messagingMocks "larp-server/internal/messaging/mocks"
	"larp-server/internal/models"
	"larp-server/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type backgroundServiceMocks struct {
	characterRepo *mocks.CharacterRepository
	stepRepo      *mocks.StepRepository
	choiceRepo    *mocks.ChoiceRepository
	answerRepo    *mocks.AnswerRepository
	larpRepo      *mocks.LarpRepository
	txManager     *mocks.TxManager
	publisher     *messagingMocks.NotificationPublisher
}

func newBackgroundService(t *testing.T) (BackgroundService, *backgroundServiceMocks) {
	t.Helper()
	m := &backgroundServiceMocks{
		characterRepo: new(mocks.CharacterRepository),
		stepRepo:      new(mocks.StepRepository),
		choiceRepo:    new(mocks.ChoiceRepository),
		answerRepo:    new(mocks.AnswerRepository),
		larpRepo:      new(mocks.LarpRepository),
		txManager:     new(mocks.TxManager),
		publisher:     new(messagingMocks.NotificationPublisher),
	}
	svc := NewBackgroundService(
		nil, m.txManager, m.characterRepo, m.stepRepo, m.choiceRepo,
		m.answerRepo, m.larpRepo, m.publisher, zap.NewNop(),
	)
	return svc, m
}

// questionnaireFixture is the two-step track used across the tests:
// step 1 "Origine" with choices A and B (no prerequisites), step 2
// "Motivation" with C requiring A and D requiring B.
type questionnaireFixture struct {
	actor     models.Actor
	character *models.Character
	step1     *models.BgStep
	step2     *models.BgStep
	choiceA   models.BgChoice
	choiceB   models.BgChoice
	choiceC   models.BgChoice
	choiceD   models.BgChoice
}

func newQuestionnaireFixture() questionnaireFixture {
	userID := uuid.New()
	factionID := uuid.New()
	f := questionnaireFixture{
		actor: models.Actor{UserID: userID},
		character: &models.Character{
			ID:        uuid.New(),
			UserID:    userID,
			LarpID:    uuid.New(),
			FactionID: factionID,
			Status:    models.SheetUnlocked,
		},
		step1: &models.BgStep{ID: uuid.New(), FactionID: factionID, StepOrder: 1, ShortName: "Origine"},
		step2: &models.BgStep{ID: uuid.New(), FactionID: factionID, StepOrder: 2, ShortName: "Motivation"},
	}
	f.choiceA = models.BgChoice{ID: uuid.New(), StepID: f.step1.ID, ShortName: "A"}
	f.choiceB = models.BgChoice{ID: uuid.New(), StepID: f.step1.ID, ShortName: "B"}
	f.choiceC = models.BgChoice{ID: uuid.New(), StepID: f.step2.ID, ShortName: "C", PrerequisiteID: &f.choiceA.ID}
	f.choiceD = models.BgChoice{ID: uuid.New(), StepID: f.step2.ID, ShortName: "D", PrerequisiteID: &f.choiceB.ID}
	return f
}

func TestResolveCurrentStep_FiltersIneligibleChoices(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()

	// Step 1 was answered with A, so step 2 is next and only C qualifies.
	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.answerRepo.On("MaxAnsweredOrder", mock.Anything, mock.Anything, f.character.ID).Return(1, nil)
	m.stepRepo.On("GetByFactionAndOrder", mock.Anything, mock.Anything, f.character.FactionID, 2).Return(f.step2, nil)
	m.choiceRepo.On("ListByStep", mock.Anything, mock.Anything, f.step2.ID).Return([]models.BgChoice{f.choiceC, f.choiceD}, nil)
	m.answerRepo.On("AnsweredChoiceIDs", mock.Anything, mock.Anything, f.character.ID).Return([]uuid.UUID{f.choiceA.ID}, nil)

	resolution, err := svc.ResolveCurrentStep(context.Background(), f.actor, f.character.ID)

	require.NoError(t, err)
	assert.Equal(t, models.BackgroundInProgress, resolution.State)
	assert.Equal(t, f.step2.ID, resolution.Step.ID)
	require.Len(t, resolution.EligibleChoices, 1)
	assert.Equal(t, f.choiceC.ID, resolution.EligibleChoices[0].ID)
}

func TestResolveCurrentStep_NoPrerequisiteAlwaysEligible(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.answerRepo.On("MaxAnsweredOrder", mock.Anything, mock.Anything, f.character.ID).Return(0, nil)
	m.stepRepo.On("GetByFactionAndOrder", mock.Anything, mock.Anything, f.character.FactionID, 1).Return(f.step1, nil)
	m.choiceRepo.On("ListByStep", mock.Anything, mock.Anything, f.step1.ID).Return([]models.BgChoice{f.choiceA, f.choiceB}, nil)
	m.answerRepo.On("AnsweredChoiceIDs", mock.Anything, mock.Anything, f.character.ID).Return(nil, nil)

	resolution, err := svc.ResolveCurrentStep(context.Background(), f.actor, f.character.ID)

	require.NoError(t, err)
	assert.Equal(t, models.BackgroundInProgress, resolution.State)
	assert.Len(t, resolution.EligibleChoices, 2)
}

func TestResolveCurrentStep_CompletionWhenNoNextStep(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.answerRepo.On("MaxAnsweredOrder", mock.Anything, mock.Anything, f.character.ID).Return(2, nil)
	m.stepRepo.On("GetByFactionAndOrder", mock.Anything, mock.Anything, f.character.FactionID, 3).Return(nil, models.ErrStepNotFound)
	m.characterRepo.On("SetBackgroundCompleted", mock.Anything, mock.Anything, f.character.ID, true).Return(nil)

	resolution, err := svc.ResolveCurrentStep(context.Background(), f.actor, f.character.ID)

	require.NoError(t, err)
	assert.Equal(t, models.BackgroundCompleted, resolution.State)
	assert.Nil(t, resolution.Step)
	m.characterRepo.AssertCalled(t, "SetBackgroundCompleted", mock.Anything, mock.Anything, f.character.ID, true)
}

func TestResolveCurrentStep_EmptyQuestionnaireCompletesImmediately(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.answerRepo.On("MaxAnsweredOrder", mock.Anything, mock.Anything, f.character.ID).Return(0, nil)
	m.stepRepo.On("GetByFactionAndOrder", mock.Anything, mock.Anything, f.character.FactionID, 1).Return(nil, models.ErrStepNotFound)
	m.characterRepo.On("SetBackgroundCompleted", mock.Anything, mock.Anything, f.character.ID, true).Return(nil)

	resolution, err := svc.ResolveCurrentStep(context.Background(), f.actor, f.character.ID)

	require.NoError(t, err)
	assert.Equal(t, models.BackgroundCompleted, resolution.State)
}

func TestResolveCurrentStep_CompletionPersistsOnlyOnce(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()
	f.character.BgCompleted = true

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.answerRepo.On("MaxAnsweredOrder", mock.Anything, mock.Anything, f.character.ID).Return(2, nil)
	m.stepRepo.On("GetByFactionAndOrder", mock.Anything, mock.Anything, f.character.FactionID, 3).Return(nil, models.ErrStepNotFound)

	resolution, err := svc.ResolveCurrentStep(context.Background(), f.actor, f.character.ID)

	require.NoError(t, err)
	assert.Equal(t, models.BackgroundCompleted, resolution.State)
	m.characterRepo.AssertNotCalled(t, "SetBackgroundCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveCurrentStep_ForbiddenForStrangers(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()
	stranger := models.Actor{UserID: uuid.New()}

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.larpRepo.On("IsOrganizer", mock.Anything, mock.Anything, f.character.LarpID, stranger.UserID).Return(false, nil)

	_, err := svc.ResolveCurrentStep(context.Background(), stranger, f.character.ID)

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestSubmitAnswer_LastStepMarksCompletion(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, f.step2.ID).Return(f.step2, nil)
	m.answerRepo.On("MaxAnsweredOrder", mock.Anything, mock.Anything, f.character.ID).Return(1, nil)
	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, f.choiceC.ID).Return(&f.choiceC, nil)
	m.choiceRepo.On("ListByStep", mock.Anything, mock.Anything, f.step2.ID).Return([]models.BgChoice{f.choiceC, f.choiceD}, nil)
	m.answerRepo.On("AnsweredChoiceIDs", mock.Anything, mock.Anything, f.character.ID).Return([]uuid.UUID{f.choiceA.ID}, nil)
	m.stepRepo.On("MaxOrderByFaction", mock.Anything, mock.Anything, f.character.FactionID).Return(2, nil)
	m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	m.answerRepo.On("Upsert", mock.Anything, mock.Anything, mock.MatchedBy(func(a *models.BgAnswer) bool {
		return a.CharacterID == f.character.ID && a.ChoiceID == f.choiceC.ID && a.StepOrder == 2
	})).Return(nil)
	m.characterRepo.On("SetBackgroundCompleted", mock.Anything, mock.Anything, f.character.ID, true).Return(nil)
	m.publisher.On("PublishBackgroundCompleted", mock.Anything, mock.AnythingOfType("messaging.BackgroundCompletedEvent")).Return(nil)

	result, err := svc.SubmitAnswer(context.Background(), f.actor, f.character.ID, f.step2.ID, f.choiceC.ID, "")

	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Zero(t, result.NextOrder)
	m.publisher.AssertCalled(t, "PublishBackgroundCompleted", mock.Anything, mock.MatchedBy(func(e messaging.BackgroundCompletedEvent) bool {
		return e.CharacterID == f.character.ID
	}))
}

func TestSubmitAnswer_RejectsIneligibleChoice(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()

	// B was never answered, so D's prerequisite is unmet.
	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, f.step2.ID).Return(f.step2, nil)
	m.answerRepo.On("MaxAnsweredOrder", mock.Anything, mock.Anything, f.character.ID).Return(1, nil)
	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, f.choiceD.ID).Return(&f.choiceD, nil)
	m.choiceRepo.On("ListByStep", mock.Anything, mock.Anything, f.step2.ID).Return([]models.BgChoice{f.choiceC, f.choiceD}, nil)
	m.answerRepo.On("AnsweredChoiceIDs", mock.Anything, mock.Anything, f.character.ID).Return([]uuid.UUID{f.choiceA.ID}, nil)

	_, err := svc.SubmitAnswer(context.Background(), f.actor, f.character.ID, f.step2.ID, f.choiceD.ID, "")

	assert.ErrorIs(t, err, models.ErrChoiceNotEligible)
	m.answerRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAnswer_CannotSkipAhead(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, f.step2.ID).Return(f.step2, nil)
	m.answerRepo.On("MaxAnsweredOrder", mock.Anything, mock.Anything, f.character.ID).Return(0, nil)

	_, err := svc.SubmitAnswer(context.Background(), f.actor, f.character.ID, f.step2.ID, f.choiceC.ID, "")

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSubmitAnswer_ResubmissionOverwrites(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()

	// Step 1 already answered; answering it again is an upsert, not an error.
	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, f.step1.ID).Return(f.step1, nil)
	m.answerRepo.On("MaxAnsweredOrder", mock.Anything, mock.Anything, f.character.ID).Return(1, nil)
	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, f.choiceB.ID).Return(&f.choiceB, nil)
	m.choiceRepo.On("ListByStep", mock.Anything, mock.Anything, f.step1.ID).Return([]models.BgChoice{f.choiceA, f.choiceB}, nil)
	m.answerRepo.On("AnsweredChoiceIDs", mock.Anything, mock.Anything, f.character.ID).Return([]uuid.UUID{f.choiceA.ID}, nil)
	m.stepRepo.On("MaxOrderByFaction", mock.Anything, mock.Anything, f.character.FactionID).Return(2, nil)
	m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	m.answerRepo.On("Upsert", mock.Anything, mock.Anything, mock.MatchedBy(func(a *models.BgAnswer) bool {
		return a.ChoiceID == f.choiceB.ID && a.StepOrder == 1
	})).Return(nil)

	result, err := svc.SubmitAnswer(context.Background(), f.actor, f.character.ID, f.step1.ID, f.choiceB.ID, "")

	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Equal(t, 2, result.NextOrder)
	m.characterRepo.AssertNotCalled(t, "SetBackgroundCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAnswer_DropsTextWhenChoiceNotFillable(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, f.step1.ID).Return(f.step1, nil)
	m.answerRepo.On("MaxAnsweredOrder", mock.Anything, mock.Anything, f.character.ID).Return(0, nil)
	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, f.choiceA.ID).Return(&f.choiceA, nil)
	m.choiceRepo.On("ListByStep", mock.Anything, mock.Anything, f.step1.ID).Return([]models.BgChoice{f.choiceA, f.choiceB}, nil)
	m.answerRepo.On("AnsweredChoiceIDs", mock.Anything, mock.Anything, f.character.ID).Return(nil, nil)
	m.stepRepo.On("MaxOrderByFaction", mock.Anything, mock.Anything, f.character.FactionID).Return(2, nil)
	m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	m.answerRepo.On("Upsert", mock.Anything, mock.Anything, mock.MatchedBy(func(a *models.BgAnswer) bool {
		return a.PlayerText == ""
	})).Return(nil)

	_, err := svc.SubmitAnswer(context.Background(), f.actor, f.character.ID, f.step1.ID, f.choiceA.ID, "ignored free text")

	require.NoError(t, err)
}

func TestSubmitAnswer_LockedSheetRejected(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()
	f.character.Status = models.SheetPlayerValidated

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)

	_, err := svc.SubmitAnswer(context.Background(), f.actor, f.character.ID, f.step1.ID, f.choiceA.ID, "")

	assert.ErrorIs(t, err, models.ErrSheetNotEditable)
}

func TestSubmitAnswer_StepFromAnotherFaction(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()
	foreignStep := &models.BgStep{ID: uuid.New(), FactionID: uuid.New(), StepOrder: 1}

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, foreignStep.ID).Return(foreignStep, nil)

	_, err := svc.SubmitAnswer(context.Background(), f.actor, f.character.ID, foreignStep.ID, f.choiceA.ID, "")

	assert.ErrorIs(t, err, models.ErrStepNotFound)
}

func TestListAnswers_ReportsOrphans(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()
	answers := []models.BgAnswer{
		{ID: uuid.New(), CharacterID: f.character.ID, StepOrder: 1, ChoiceShortName: "A"},
		{ID: uuid.New(), CharacterID: f.character.ID, StepOrder: 2, Orphaned: true},
	}

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.answerRepo.On("ListByCharacter", mock.Anything, mock.Anything, f.character.ID).Return(answers, nil)

	got, err := svc.ListAnswers(context.Background(), f.actor, f.character.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.False(t, got[0].Orphaned)
	assert.True(t, got[1].Orphaned)
}

func TestUpdateAnswerText_OrphanedAnswerIsDataIntegrity(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()
	answer := &models.BgAnswer{ID: uuid.New(), CharacterID: f.character.ID, StepOrder: 1, Orphaned: true}

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.answerRepo.On("GetByID", mock.Anything, mock.Anything, answer.ID).Return(answer, nil)

	err := svc.UpdateAnswerText(context.Background(), f.actor, f.character.ID, answer.ID, "new text")

	assert.ErrorIs(t, err, models.ErrDataIntegrity)
	m.answerRepo.AssertNotCalled(t, "UpdateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateAnswerText_RejectedWhenChoiceNotFillable(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()
	answer := &models.BgAnswer{ID: uuid.New(), CharacterID: f.character.ID, ChoiceID: f.choiceA.ID, StepOrder: 1}

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.answerRepo.On("GetByID", mock.Anything, mock.Anything, answer.ID).Return(answer, nil)
	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, f.choiceA.ID).Return(&f.choiceA, nil)

	err := svc.UpdateAnswerText(context.Background(), f.actor, f.character.ID, answer.ID, "text")

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateAnswerText_FillableChoice(t *testing.T) {
	svc, m := newBackgroundService(t)
	f := newQuestionnaireFixture()
	fillable := models.BgChoice{ID: uuid.New(), StepID: f.step1.ID, ShortName: "E", FillableByPlayer: true}
	answer := &models.BgAnswer{ID: uuid.New(), CharacterID: f.character.ID, ChoiceID: fillable.ID, StepOrder: 1}

	m.characterRepo.On("GetByID", mock.Anything, mock.Anything, f.character.ID).Return(f.character, nil)
	m.answerRepo.On("GetByID", mock.Anything, mock.Anything, answer.ID).Return(answer, nil)
	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, fillable.ID).Return(&fillable, nil)
	m.answerRepo.On("UpdateText", mock.Anything, mock.Anything, answer.ID, "my story").Return(nil)

	err := svc.UpdateAnswerText(context.Background(), f.actor, f.character.ID, answer.ID, "my story")

	require.NoError(t, err)
	m.answerRepo.AssertExpectations(t)
}
