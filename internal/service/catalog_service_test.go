package service

import (
	"context"
	"errors"
	"testing"

	"larp-server/internal/models"
	"larp-server/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type catalogServiceMocks struct {
	stepRepo   *mocks.StepRepository
	choiceRepo *mocks.ChoiceRepository
	larpRepo   *mocks.LarpRepository
	txManager  *mocks.TxManager
}

func newCatalogService(t *testing.T) (CatalogService, *catalogServiceMocks) {
	t.Helper()
	m := &catalogServiceMocks{
		stepRepo:   new(mocks.StepRepository),
		choiceRepo: new(mocks.ChoiceRepository),
		larpRepo:   new(mocks.LarpRepository),
		txManager:  new(mocks.TxManager),
	}
	svc := NewCatalogService(nil, m.txManager, m.stepRepo, m.choiceRepo, m.larpRepo, zap.NewNop())
	return svc, m
}

// organizerFixture wires a faction whose larp the actor organizes.
type organizerFixture struct {
	actor   models.Actor
	faction *models.Faction
}

func newOrganizerFixture(m *catalogServiceMocks) organizerFixture {
	f := organizerFixture{
		actor: models.Actor{UserID: uuid.New(), Roles: []string{models.RoleOrga}},
		faction: &models.Faction{
			ID:     uuid.New(),
			LarpID: uuid.New(),
			Name:   "Clan of the Raven",
		},
	}
	m.larpRepo.On("GetFactionByID", mock.Anything, mock.Anything, f.faction.ID).Return(f.faction, nil)
	m.larpRepo.On("IsOrganizer", mock.Anything, mock.Anything, f.faction.LarpID, f.actor.UserID).Return(true, nil)
	return f
}

func TestCreateStep_AppendsAtEnd(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)

	m.stepRepo.On("CountByFaction", mock.Anything, mock.Anything, f.faction.ID).Return(2, nil)
	m.stepRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(s *models.BgStep) bool {
		return s.StepOrder == 3 && s.FactionID == f.faction.ID
	})).Return(nil)

	step, err := svc.CreateStep(context.Background(), f.actor, f.faction.ID, "Allegiances", "Who do you serve?")

	require.NoError(t, err)
	assert.Equal(t, 3, step.StepOrder)
	m.stepRepo.AssertExpectations(t)
}

func TestCreateStep_EmptyShortName(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)

	_, err := svc.CreateStep(context.Background(), f.actor, f.faction.ID, "   ", "question")

	assert.ErrorIs(t, err, models.ErrValidation)
	m.stepRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateStep_NonOrganizerForbidden(t *testing.T) {
	svc, m := newCatalogService(t)
	faction := &models.Faction{ID: uuid.New(), LarpID: uuid.New()}
	stranger := models.Actor{UserID: uuid.New()}

	m.larpRepo.On("GetFactionByID", mock.Anything, mock.Anything, faction.ID).Return(faction, nil)
	m.larpRepo.On("IsOrganizer", mock.Anything, mock.Anything, faction.LarpID, stranger.UserID).Return(false, nil)

	_, err := svc.CreateStep(context.Background(), stranger, faction.ID, "Origine", "q")

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestMoveStep_FirstStepUpIsNoop(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)
	step := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 1}

	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step.ID).Return(step, nil)
	m.stepRepo.On("GetByFactionAndOrder", mock.Anything, mock.Anything, f.faction.ID, 0).Return(nil, models.ErrStepNotFound)

	err := svc.MoveStep(context.Background(), f.actor, step.ID, MoveUp)

	require.NoError(t, err)
	m.stepRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.txManager.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
}

func TestMoveStep_SwapsAdjacentOrders(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)
	step := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 2}
	neighbor := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 3}

	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step.ID).Return(step, nil)
	m.stepRepo.On("GetByFactionAndOrder", mock.Anything, mock.Anything, f.faction.ID, 3).Return(neighbor, nil)
	m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	m.stepRepo.On("UpdateOrder", mock.Anything, mock.Anything, step.ID, 3).Return(nil)
	m.stepRepo.On("UpdateOrder", mock.Anything, mock.Anything, neighbor.ID, 2).Return(nil)

	err := svc.MoveStep(context.Background(), f.actor, step.ID, MoveDown)

	require.NoError(t, err)
	m.stepRepo.AssertCalled(t, "UpdateOrder", mock.Anything, mock.Anything, step.ID, 3)
	m.stepRepo.AssertCalled(t, "UpdateOrder", mock.Anything, mock.Anything, neighbor.ID, 2)
}

func TestMoveStep_SecondUpdateFailureAbortsSwap(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)
	step := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 1}
	neighbor := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 2}
	boom := errors.New("connection reset")

	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step.ID).Return(step, nil)
	m.stepRepo.On("GetByFactionAndOrder", mock.Anything, mock.Anything, f.faction.ID, 2).Return(neighbor, nil)
	m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	m.stepRepo.On("UpdateOrder", mock.Anything, mock.Anything, step.ID, 2).Return(nil)
	m.stepRepo.On("UpdateOrder", mock.Anything, mock.Anything, neighbor.ID, 1).Return(boom)

	err := svc.MoveStep(context.Background(), f.actor, step.ID, MoveDown)

	// The transactional closure surfaces the failure so the manager
	// rolls the first update back with it.
	assert.ErrorIs(t, err, boom)
}

func TestMoveStep_UnknownDirection(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)
	step := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 1}

	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step.ID).Return(step, nil)

	err := svc.MoveStep(context.Background(), f.actor, step.ID, MoveDirection("sideways"))

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateChoice_DuplicateShortName(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)
	step := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 1}

	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step.ID).Return(step, nil)
	m.choiceRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(models.ErrDuplicate)

	_, err := svc.CreateChoice(context.Background(), f.actor, step.ID, "A", "text", false, nil)

	assert.ErrorIs(t, err, models.ErrDuplicate)
}

func TestCreateChoice_PrerequisiteOnEarlierStep(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)
	step1 := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 1}
	step2 := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 2}
	prereq := &models.BgChoice{ID: uuid.New(), StepID: step1.ID, ShortName: "A"}

	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step2.ID).Return(step2, nil)
	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, prereq.ID).Return(prereq, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step1.ID).Return(step1, nil)
	m.choiceRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(c *models.BgChoice) bool {
		return c.PrerequisiteID != nil && *c.PrerequisiteID == prereq.ID
	})).Return(nil)

	choice, err := svc.CreateChoice(context.Background(), f.actor, step2.ID, "C", "text", false, &prereq.ID)

	require.NoError(t, err)
	assert.Equal(t, prereq.ID, *choice.PrerequisiteID)
}

func TestSetPrerequisite_RejectsSameStep(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)
	step := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 2}
	choice := &models.BgChoice{ID: uuid.New(), StepID: step.ID, ShortName: "C"}
	sibling := &models.BgChoice{ID: uuid.New(), StepID: step.ID, ShortName: "D"}

	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, choice.ID).Return(choice, nil)
	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, sibling.ID).Return(sibling, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step.ID).Return(step, nil)

	err := svc.SetPrerequisite(context.Background(), f.actor, choice.ID, &sibling.ID)

	assert.ErrorIs(t, err, models.ErrPrerequisiteOrder)
	m.choiceRepo.AssertNotCalled(t, "SetPrerequisite", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetPrerequisite_RejectsLaterStep(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)
	step1 := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 1}
	step3 := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 3}
	choice := &models.BgChoice{ID: uuid.New(), StepID: step1.ID, ShortName: "A"}
	later := &models.BgChoice{ID: uuid.New(), StepID: step3.ID, ShortName: "Z"}

	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, choice.ID).Return(choice, nil)
	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, later.ID).Return(later, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step1.ID).Return(step1, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step3.ID).Return(step3, nil)

	err := svc.SetPrerequisite(context.Background(), f.actor, choice.ID, &later.ID)

	assert.ErrorIs(t, err, models.ErrPrerequisiteOrder)
}

func TestSetPrerequisite_RejectsSelf(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)
	step := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 2}
	choice := &models.BgChoice{ID: uuid.New(), StepID: step.ID, ShortName: "C"}

	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, choice.ID).Return(choice, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step.ID).Return(step, nil)

	err := svc.SetPrerequisite(context.Background(), f.actor, choice.ID, &choice.ID)

	assert.ErrorIs(t, err, models.ErrPrerequisiteOrder)
}

func TestSetPrerequisite_ClearsLink(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)
	step := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 2}
	prereqID := uuid.New()
	choice := &models.BgChoice{ID: uuid.New(), StepID: step.ID, ShortName: "C", PrerequisiteID: &prereqID}

	m.choiceRepo.On("GetByID", mock.Anything, mock.Anything, choice.ID).Return(choice, nil)
	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step.ID).Return(step, nil)
	m.choiceRepo.On("SetPrerequisite", mock.Anything, mock.Anything, choice.ID, (*uuid.UUID)(nil)).Return(nil)

	err := svc.SetPrerequisite(context.Background(), f.actor, choice.ID, nil)

	require.NoError(t, err)
	m.choiceRepo.AssertExpectations(t)
}

func TestDeleteStep_DelegatesToRepository(t *testing.T) {
	svc, m := newCatalogService(t)
	f := newOrganizerFixture(m)
	step := &models.BgStep{ID: uuid.New(), FactionID: f.faction.ID, StepOrder: 1}

	m.stepRepo.On("GetByID", mock.Anything, mock.Anything, step.ID).Return(step, nil)
	m.stepRepo.On("Delete", mock.Anything, mock.Anything, step.ID).Return(nil)

	err := svc.DeleteStep(context.Background(), f.actor, step.ID)

	require.NoError(t, err)
	m.stepRepo.AssertExpectations(t)
}
