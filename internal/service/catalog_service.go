package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"larp-server/internal/models"
	"larp-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MoveDirection is the direction of a step reorder.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// CatalogService is the organizer-facing management of a faction's
// background questionnaire: its ordered steps and their choices.
type CatalogService interface {
	ListSteps(ctx context.Context, actor models.Actor, factionID uuid.UUID) ([]models.BgStep, error)

	// CreateStep appends a step at the end of the faction's questionnaire.
	CreateStep(ctx context.Context, actor models.Actor, factionID uuid.UUID, shortName, question string) (*models.BgStep, error)

	UpdateStep(ctx context.Context, actor models.Actor, stepID uuid.UUID, shortName, question string) (*models.BgStep, error)

	// MoveStep swaps the step's order with its neighbor. Moving the first
	// step up or the last step down is a no-op.
	MoveStep(ctx context.Context, actor models.Actor, stepID uuid.UUID, direction MoveDirection) error

	// DeleteStep removes the step and its choices. Answers referencing
	// those choices stay recorded and become orphaned.
	DeleteStep(ctx context.Context, actor models.Actor, stepID uuid.UUID) error

	ListChoices(ctx context.Context, actor models.Actor, stepID uuid.UUID) ([]models.BgChoice, error)

	CreateChoice(ctx context.Context, actor models.Actor, stepID uuid.UUID, shortName, text string, fillableByPlayer bool, prerequisiteID *uuid.UUID) (*models.BgChoice, error)

	UpdateChoice(ctx context.Context, actor models.Actor, choiceID uuid.UUID, shortName, text string, fillableByPlayer bool) (*models.BgChoice, error)

	// SetPrerequisite replaces the choice's prerequisite link; nil clears
	// it. The prerequisite must belong to a strictly earlier step of the
	// same faction.
	SetPrerequisite(ctx context.Context, actor models.Actor, choiceID uuid.UUID, prerequisiteID *uuid.UUID) error

	DeleteChoice(ctx context.Context, actor models.Actor, choiceID uuid.UUID) error
}

type catalogServiceImpl struct {
	db         repository.DBTX
	txManager  repository.TxManager
	stepRepo   repository.StepRepository
	choiceRepo repository.ChoiceRepository
	larpRepo   repository.LarpRepository
	logger     *zap.Logger
}

func NewCatalogService(
	db repository.DBTX,
	txManager repository.TxManager,
	stepRepo repository.StepRepository,
	choiceRepo repository.ChoiceRepository,
	larpRepo repository.LarpRepository,
	logger *zap.Logger,
) CatalogService {
	return &catalogServiceImpl{
		db:         db,
		txManager:  txManager,
		stepRepo:   stepRepo,
		choiceRepo: choiceRepo,
		larpRepo:   larpRepo,
		logger:     logger.Named("CatalogService"),
	}
}

// requireFactionOrganizer loads the faction and checks that the actor
// organizes its larp.
func (s *catalogServiceImpl) requireFactionOrganizer(ctx context.Context, actor models.Actor, factionID uuid.UUID) (*models.Faction, error) {
	faction, err := s.larpRepo.GetFactionByID(ctx, s.db, factionID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return faction, nil
	}
	isOrga, err := s.larpRepo.IsOrganizer(ctx, s.db, faction.LarpID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !isOrga {
		return nil, models.ErrForbidden
	}
	return faction, nil
}

func (s *catalogServiceImpl) requireStepOrganizer(ctx context.Context, actor models.Actor, stepID uuid.UUID) (*models.BgStep, error) {
	step, err := s.stepRepo.GetByID(ctx, s.db, stepID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireFactionOrganizer(ctx, actor, step.FactionID); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *catalogServiceImpl) ListSteps(ctx context.Context, actor models.Actor, factionID uuid.UUID) ([]models.BgStep, error) {
	if _, err := s.requireFactionOrganizer(ctx, actor, factionID); err != nil {
		return nil, err
	}
	return s.stepRepo.ListByFaction(ctx, s.db, factionID)
}

func (s *catalogServiceImpl) CreateStep(ctx context.Context, actor models.Actor, factionID uuid.UUID, shortName, question string) (*models.BgStep, error) {
	if _, err := s.requireFactionOrganizer(ctx, actor, factionID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(shortName) == "" {
		return nil, fmt.Errorf("%w: step short name is required", models.ErrValidation)
	}

	count, err := s.stepRepo.CountByFaction(ctx, s.db, factionID)
	if err != nil {
		return nil, err
	}

	step := &models.BgStep{
		ID:        uuid.New(),
		FactionID: factionID,
		StepOrder: count + 1,
		ShortName: shortName,
		Question:  question,
	}
	if err := s.stepRepo.Create(ctx, s.db, step); err != nil {
		return nil, err
	}
	s.logger.Info("Step created",
		zap.Stringer("stepID", step.ID), zap.Stringer("factionID", factionID), zap.Int("order", step.StepOrder))
	return step, nil
}

func (s *catalogServiceImpl) UpdateStep(ctx context.Context, actor models.Actor, stepID uuid.UUID, shortName, question string) (*models.BgStep, error) {
	step, err := s.requireStepOrganizer(ctx, actor, stepID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(shortName) == "" {
		return nil, fmt.Errorf("%w: step short name is required", models.ErrValidation)
	}
	step.ShortName = shortName
	step.Question = question
	if err := s.stepRepo.Update(ctx, s.db, step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *catalogServiceImpl) MoveStep(ctx context.Context, actor models.Actor, stepID uuid.UUID, direction MoveDirection) error {
	step, err := s.requireStepOrganizer(ctx, actor, stepID)
	if err != nil {
		return err
	}

	var adjacentOrder int
	switch direction {
	case MoveUp:
		adjacentOrder = step.StepOrder - 1
	case MoveDown:
		adjacentOrder = step.StepOrder + 1
	default:
		return fmt.Errorf("%w: unknown direction %q", models.ErrValidation, direction)
	}

	adjacent, err := s.stepRepo.GetByFactionAndOrder(ctx, s.db, step.FactionID, adjacentOrder)
	if err != nil {
		if errors.Is(err, models.ErrStepNotFound) {
			// First step moved up or last moved down: nothing to swap with.
			return nil
		}
		return err
	}

	// Both updates commit together; the order uniqueness constraint is
	// deferred, so the transient duplicate never becomes visible.
	return s.txManager.WithTransaction(ctx, func(ctx context.Context, tx repository.DBTX) error {
		if err := s.stepRepo.UpdateOrder(ctx, tx, step.ID, adjacent.StepOrder); err != nil {
			return err
		}
		return s.stepRepo.UpdateOrder(ctx, tx, adjacent.ID, step.StepOrder)
	})
}

func (s *catalogServiceImpl) DeleteStep(ctx context.Context, actor models.Actor, stepID uuid.UUID) error {
	if _, err := s.requireStepOrganizer(ctx, actor, stepID); err != nil {
		return err
	}
	return s.stepRepo.Delete(ctx, s.db, stepID)
}

func (s *catalogServiceImpl) ListChoices(ctx context.Context, actor models.Actor, stepID uuid.UUID) ([]models.BgChoice, error) {
	if _, err := s.requireStepOrganizer(ctx, actor, stepID); err != nil {
		return nil, err
	}
	return s.choiceRepo.ListByStep(ctx, s.db, stepID)
}

func (s *catalogServiceImpl) CreateChoice(ctx context.Context, actor models.Actor, stepID uuid.UUID, shortName, text string, fillableByPlayer bool, prerequisiteID *uuid.UUID) (*models.BgChoice, error) {
	step, err := s.requireStepOrganizer(ctx, actor, stepID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(shortName) == "" {
		return nil, fmt.Errorf("%w: choice short name is required", models.ErrValidation)
	}
	if prerequisiteID != nil {
		if err := s.validatePrerequisite(ctx, step, *prerequisiteID); err != nil {
			return nil, err
		}
	}

	choice := &models.BgChoice{
		ID:               uuid.New(),
		StepID:           stepID,
		ShortName:        shortName,
		Text:             text,
		FillableByPlayer: fillableByPlayer,
		PrerequisiteID:   prerequisiteID,
	}
	if err := s.choiceRepo.Create(ctx, s.db, choice); err != nil {
		return nil, err
	}
	s.logger.Info("Choice created",
		zap.Stringer("choiceID", choice.ID), zap.Stringer("stepID", stepID))
	return choice, nil
}

func (s *catalogServiceImpl) UpdateChoice(ctx context.Context, actor models.Actor, choiceID uuid.UUID, shortName, text string, fillableByPlayer bool) (*models.BgChoice, error) {
	choice, err := s.choiceRepo.GetByID(ctx, s.db, choiceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireStepOrganizer(ctx, actor, choice.StepID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(shortName) == "" {
		return nil, fmt.Errorf("%w: choice short name is required", models.ErrValidation)
	}
	choice.ShortName = shortName
	choice.Text = text
	choice.FillableByPlayer = fillableByPlayer
	if err := s.choiceRepo.Update(ctx, s.db, choice); err != nil {
		return nil, err
	}
	return choice, nil
}

func (s *catalogServiceImpl) SetPrerequisite(ctx context.Context, actor models.Actor, choiceID uuid.UUID, prerequisiteID *uuid.UUID) error {
	choice, err := s.choiceRepo.GetByID(ctx, s.db, choiceID)
	if err != nil {
		return err
	}
	step, err := s.requireStepOrganizer(ctx, actor, choice.StepID)
	if err != nil {
		return err
	}
	if prerequisiteID != nil {
		if *prerequisiteID == choiceID {
			return fmt.Errorf("%w: choice cannot require itself", models.ErrPrerequisiteOrder)
		}
		if err := s.validatePrerequisite(ctx, step, *prerequisiteID); err != nil {
			return err
		}
	}
	return s.choiceRepo.SetPrerequisite(ctx, s.db, choiceID, prerequisiteID)
}

// validatePrerequisite ensures the prerequisite choice exists and sits on a
// strictly earlier step of the same faction. A same-step or later-step link
// would make the gated choice unreachable in sequence.
func (s *catalogServiceImpl) validatePrerequisite(ctx context.Context, step *models.BgStep, prerequisiteID uuid.UUID) error {
	prereq, err := s.choiceRepo.GetByID(ctx, s.db, prerequisiteID)
	if err != nil {
		return err
	}
	prereqStep, err := s.stepRepo.GetByID(ctx, s.db, prereq.StepID)
	if err != nil {
		return err
	}
	if prereqStep.FactionID != step.FactionID {
		return fmt.Errorf("%w: prerequisite belongs to another faction", models.ErrPrerequisiteOrder)
	}
	if prereqStep.StepOrder >= step.StepOrder {
		return fmt.Errorf("%w: prerequisite must sit on an earlier step", models.ErrPrerequisiteOrder)
	}
	return nil
}

func (s *catalogServiceImpl) DeleteChoice(ctx context.Context, actor models.Actor, choiceID uuid.UUID) error {
	choice, err := s.choiceRepo.GetByID(ctx, s.db, choiceID)
	if err != nil {
		return err
	}
	if _, err := s.requireStepOrganizer(ctx, actor, choice.StepID); err != nil {
		return err
	}
	return s.choiceRepo.Delete(ctx, s.db, choiceID)
}
