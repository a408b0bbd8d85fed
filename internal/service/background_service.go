package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"larp-server/internal/messaging"
	"larp-server/internal/models"
	"larp-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BackgroundService drives a character through its faction's background
// questionnaire: resolving the current step with the choices the character
// is eligible for, recording answers, and detecting completion.
type BackgroundService interface {
	// ResolveCurrentStep returns the next unanswered step of the
	// character's faction with its eligible choices, or the completed
	// state once every step has been answered.
	ResolveCurrentStep(ctx context.Context, actor models.Actor, characterID uuid.UUID) (*models.BackgroundResolution, error)

	// SubmitAnswer records the character's choice for a step. Submitting
	// an already-answered step overwrites the previous answer.
	SubmitAnswer(ctx context.Context, actor models.Actor, characterID, stepID, choiceID uuid.UUID, playerText string) (*models.SubmitResult, error)

	// ListAnswers returns the character's recorded answers in step order.
	ListAnswers(ctx context.Context, actor models.Actor, characterID uuid.UUID) ([]models.BgAnswer, error)

	// UpdateAnswerText replaces the free text of a recorded answer without
	// changing the chosen option.
	UpdateAnswerText(ctx context.Context, actor models.Actor, characterID, answerID uuid.UUID, playerText string) error
}

type backgroundServiceImpl struct {
	db            repository.DBTX
	txManager     repository.TxManager
	characterRepo repository.CharacterRepository
	stepRepo      repository.StepRepository
	choiceRepo    repository.ChoiceRepository
	answerRepo    repository.AnswerRepository
	larpRepo      repository.LarpRepository
	publisher     messaging.NotificationPublisher
	logger        *zap.Logger
}

func NewBackgroundService(
	db repository.DBTX,
	txManager repository.TxManager,
	characterRepo repository.CharacterRepository,
	stepRepo repository.StepRepository,
	choiceRepo repository.ChoiceRepository,
	answerRepo repository.AnswerRepository,
	larpRepo repository.LarpRepository,
	publisher messaging.NotificationPublisher,
	logger *zap.Logger,
) BackgroundService {
	return &backgroundServiceImpl{
		db:            db,
		txManager:     txManager,
		characterRepo: characterRepo,
		stepRepo:      stepRepo,
		choiceRepo:    choiceRepo,
		answerRepo:    answerRepo,
		larpRepo:      larpRepo,
		publisher:     publisher,
		logger:        logger.Named("BackgroundService"),
	}
}

// loadOwnedCharacter fetches the character and verifies the actor may act
// on it: the owner always may, organizers of the larp may read.
func (s *backgroundServiceImpl) loadOwnedCharacter(ctx context.Context, actor models.Actor, characterID uuid.UUID) (*models.Character, error) {
	character, err := s.characterRepo.GetByID(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}
	if character.UserID == actor.UserID {
		return character, nil
	}
	if actor.IsAdmin() {
		return character, nil
	}
	isOrga, err := s.larpRepo.IsOrganizer(ctx, s.db, character.LarpID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !isOrga {
		return nil, models.ErrForbidden
	}
	return character, nil
}

func (s *backgroundServiceImpl) ResolveCurrentStep(ctx context.Context, actor models.Actor, characterID uuid.UUID) (*models.BackgroundResolution, error) {
	character, err := s.loadOwnedCharacter(ctx, actor, characterID)
	if err != nil {
		return nil, err
	}

	maxAnswered, err := s.answerRepo.MaxAnsweredOrder(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}
	nextOrder := maxAnswered + 1

	step, err := s.stepRepo.GetByFactionAndOrder(ctx, s.db, character.FactionID, nextOrder)
	if err != nil {
		if errors.Is(err, models.ErrStepNotFound) {
			// No step at the next order: the questionnaire is over. An
			// empty questionnaire counts as completed immediately.
			if err := s.markCompleted(ctx, character); err != nil {
				return nil, err
			}
			return &models.BackgroundResolution{State: models.BackgroundCompleted}, nil
		}
		return nil, err
	}

	eligible, err := s.eligibleChoices(ctx, s.db, characterID, step.ID)
	if err != nil {
		return nil, err
	}

	return &models.BackgroundResolution{
		State:           models.BackgroundInProgress,
		Step:            step,
		EligibleChoices: eligible,
	}, nil
}

// eligibleChoices returns the step's choices whose prerequisite, if any,
// the character has already answered.
func (s *backgroundServiceImpl) eligibleChoices(ctx context.Context, querier repository.DBTX, characterID, stepID uuid.UUID) ([]models.BgChoice, error) {
	choices, err := s.choiceRepo.ListByStep(ctx, querier, stepID)
	if err != nil {
		return nil, err
	}
	answeredIDs, err := s.answerRepo.AnsweredChoiceIDs(ctx, querier, characterID)
	if err != nil {
		return nil, err
	}

	answered := make(map[uuid.UUID]struct{}, len(answeredIDs))
	for _, id := range answeredIDs {
		answered[id] = struct{}{}
	}

	eligible := make([]models.BgChoice, 0, len(choices))
	for _, choice := range choices {
		if choice.PrerequisiteID != nil {
			if _, ok := answered[*choice.PrerequisiteID]; !ok {
				continue
			}
		}
		eligible = append(eligible, choice)
	}
	return eligible, nil
}

func (s *backgroundServiceImpl) SubmitAnswer(ctx context.Context, actor models.Actor, characterID, stepID, choiceID uuid.UUID, playerText string) (*models.SubmitResult, error) {
	character, err := s.loadOwnedCharacter(ctx, actor, characterID)
	if err != nil {
		return nil, err
	}
	if character.UserID != actor.UserID && !actor.IsAdmin() {
		// Organizers can read progression but only the player answers.
		return nil, models.ErrForbidden
	}
	if character.Status != models.SheetUnlocked {
		return nil, models.ErrSheetNotEditable
	}

	step, err := s.stepRepo.GetByID(ctx, s.db, stepID)
	if err != nil {
		return nil, err
	}
	if step.FactionID != character.FactionID {
		return nil, models.ErrStepNotFound
	}

	// The character may answer its current step or redo an earlier one,
	// never skip ahead.
	maxAnswered, err := s.answerRepo.MaxAnsweredOrder(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}
	if step.StepOrder > maxAnswered+1 {
		return nil, fmt.Errorf("%w: step %d is not reachable yet", models.ErrValidation, step.StepOrder)
	}

	choice, err := s.choiceRepo.GetByID(ctx, s.db, choiceID)
	if err != nil {
		return nil, err
	}
	if choice.StepID != step.ID {
		return nil, models.ErrChoiceNotFound
	}

	// Eligibility is re-derived here; a stale client list is not trusted.
	eligible, err := s.eligibleChoices(ctx, s.db, characterID, step.ID)
	if err != nil {
		return nil, err
	}
	if !containsChoice(eligible, choice.ID) {
		return nil, models.ErrChoiceNotEligible
	}

	if !choice.FillableByPlayer {
		playerText = ""
	}

	lastOrder, err := s.stepRepo.MaxOrderByFaction(ctx, s.db, character.FactionID)
	if err != nil {
		return nil, err
	}
	completed := step.StepOrder == lastOrder

	answer := &models.BgAnswer{
		ID:          uuid.New(),
		CharacterID: characterID,
		ChoiceID:    choice.ID,
		StepOrder:   step.StepOrder,
		PlayerText:  playerText,
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context, tx repository.DBTX) error {
		if err := s.answerRepo.Upsert(ctx, tx, answer); err != nil {
			return err
		}
		if completed && !character.BgCompleted {
			if err := s.characterRepo.SetBackgroundCompleted(ctx, tx, characterID, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Answer recorded",
		zap.Stringer("characterID", characterID),
		zap.Stringer("stepID", step.ID),
		zap.Int("order", step.StepOrder),
		zap.Bool("completed", completed))

	if completed && !character.BgCompleted {
		event := messaging.BackgroundCompletedEvent{
			CharacterID: characterID,
			UserID:      character.UserID,
			LarpID:      character.LarpID,
			FactionID:   character.FactionID,
			OccurredAt:  time.Now().UTC(),
		}
		if err := s.publisher.PublishBackgroundCompleted(ctx, event); err != nil {
			// The answer is committed; notification loss is logged, not fatal.
			s.logger.Error("Failed to publish completion event",
				zap.Stringer("characterID", characterID), zap.Error(err))
		}
	}

	result := &models.SubmitResult{Completed: completed}
	if !completed {
		result.NextOrder = step.StepOrder + 1
	}
	return result, nil
}

func (s *backgroundServiceImpl) ListAnswers(ctx context.Context, actor models.Actor, characterID uuid.UUID) ([]models.BgAnswer, error) {
	if _, err := s.loadOwnedCharacter(ctx, actor, characterID); err != nil {
		return nil, err
	}
	return s.answerRepo.ListByCharacter(ctx, s.db, characterID)
}

func (s *backgroundServiceImpl) UpdateAnswerText(ctx context.Context, actor models.Actor, characterID, answerID uuid.UUID, playerText string) error {
	character, err := s.loadOwnedCharacter(ctx, actor, characterID)
	if err != nil {
		return err
	}
	if character.UserID != actor.UserID && !actor.IsAdmin() {
		return models.ErrForbidden
	}
	if character.Status != models.SheetUnlocked {
		return models.ErrSheetNotEditable
	}

	answer, err := s.answerRepo.GetByID(ctx, s.db, answerID)
	if err != nil {
		return err
	}
	if answer.CharacterID != characterID {
		return models.ErrNotFound
	}
	if answer.Orphaned {
		return fmt.Errorf("%w: answer references a deleted choice", models.ErrDataIntegrity)
	}

	choice, err := s.choiceRepo.GetByID(ctx, s.db, answer.ChoiceID)
	if err != nil {
		if errors.Is(err, models.ErrChoiceNotFound) || errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: answer references a deleted choice", models.ErrDataIntegrity)
		}
		return err
	}
	if !choice.FillableByPlayer {
		return fmt.Errorf("%w: choice does not accept player text", models.ErrValidation)
	}

	return s.answerRepo.UpdateText(ctx, s.db, answerID, playerText)
}

// markCompleted persists the completion flag the first time the finished
// state is observed. Safe to call repeatedly.
func (s *backgroundServiceImpl) markCompleted(ctx context.Context, character *models.Character) error {
	if character.BgCompleted {
		return nil
	}
	if err := s.characterRepo.SetBackgroundCompleted(ctx, s.db, character.ID, true); err != nil {
		return err
	}
	character.BgCompleted = true
	return nil
}

func containsChoice(choices []models.BgChoice, id uuid.UUID) bool {
	for _, c := range choices {
		if c.ID == id {
			return true
		}
	}
	return false
}
