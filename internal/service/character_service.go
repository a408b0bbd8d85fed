package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"larp-server/internal/messaging"
	"larp-server/internal/models"
	"larp-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// charactersPerLarpLimit caps how many sheets one user may hold in a larp.
const charactersPerLarpLimit = 1

// CreateCharacterInput carries the player-provided fields of a new sheet.
type CreateCharacterInput struct {
	LarpID      uuid.UUID
	FactionID   uuid.UUID
	Name        string
	Skills      string
	LastLearned string
	Emotions    models.EmotionPreference
	Objectives  string
}

// UpdateCharacterInput carries the editable fields of an unlocked sheet.
type UpdateCharacterInput struct {
	Name        string
	Skills      string
	LastLearned string
	Emotions    models.EmotionPreference
	Objectives  string
}

// CharacterService manages PJ sheets: creation gated by enrollment and the
// larp's opening flag, edits while unlocked, the two-stage validation flow,
// and the documents organizers attach.
type CharacterService interface {
	CreateCharacter(ctx context.Context, actor models.Actor, input CreateCharacterInput) (*models.Character, error)
	GetCharacter(ctx context.Context, actor models.Actor, characterID uuid.UUID) (*models.Character, error)
	ListMyCharacters(ctx context.Context, actor models.Actor) ([]models.Character, error)
	ListLarpCharacters(ctx context.Context, actor models.Actor, larpID uuid.UUID) ([]models.Character, error)
	UpdateCharacter(ctx context.Context, actor models.Actor, characterID uuid.UUID, input UpdateCharacterInput) (*models.Character, error)
	DeleteCharacter(ctx context.Context, actor models.Actor, characterID uuid.UUID) error

	// PlayerValidate freezes the sheet for organizer review. Requires the
	// background questionnaire to be completed first.
	PlayerValidate(ctx context.Context, actor models.Actor, characterID uuid.UUID) error

	// OrgaValidate marks a player-validated sheet as final.
	OrgaValidate(ctx context.Context, actor models.Actor, characterID uuid.UUID) error

	// Unlock hands a sheet back to the player for edits.
	Unlock(ctx context.Context, actor models.Actor, characterID uuid.UUID) error

	AddDocument(ctx context.Context, actor models.Actor, characterID uuid.UUID, name, documentURL string) (*models.CharacterDocument, error)
	ListDocuments(ctx context.Context, actor models.Actor, characterID uuid.UUID) ([]models.CharacterDocument, error)
	DeleteDocument(ctx context.Context, actor models.Actor, characterID, documentID uuid.UUID) error
}

type characterServiceImpl struct {
	db              repository.DBTX
	characterRepo   repository.CharacterRepository
	larpRepo        repository.LarpRepository
	inscriptionRepo repository.InscriptionRepository
	publisher       messaging.NotificationPublisher
	logger          *zap.Logger
}

func NewCharacterService(
	db repository.DBTX,
	characterRepo repository.CharacterRepository,
	larpRepo repository.LarpRepository,
	inscriptionRepo repository.InscriptionRepository,
	publisher messaging.NotificationPublisher,
	logger *zap.Logger,
) CharacterService {
	return &characterServiceImpl{
		db:              db,
		characterRepo:   characterRepo,
		larpRepo:        larpRepo,
		inscriptionRepo: inscriptionRepo,
		publisher:       publisher,
		logger:          logger.Named("CharacterService"),
	}
}

func (s *characterServiceImpl) isOrganizer(ctx context.Context, actor models.Actor, larpID uuid.UUID) (bool, error) {
	if actor.IsAdmin() {
		return true, nil
	}
	return s.larpRepo.IsOrganizer(ctx, s.db, larpID, actor.UserID)
}

// loadVisibleCharacter returns the character when the actor owns it or
// organizes its larp.
func (s *characterServiceImpl) loadVisibleCharacter(ctx context.Context, actor models.Actor, characterID uuid.UUID) (*models.Character, error) {
	character, err := s.characterRepo.GetByID(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}
	if character.UserID == actor.UserID {
		return character, nil
	}
	isOrga, err := s.isOrganizer(ctx, actor, character.LarpID)
	if err != nil {
		return nil, err
	}
	if !isOrga {
		return nil, models.ErrForbidden
	}
	return character, nil
}

func (s *characterServiceImpl) CreateCharacter(ctx context.Context, actor models.Actor, input CreateCharacterInput) (*models.Character, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: character name is required", models.ErrValidation)
	}
	if !input.Emotions.Valid() {
		return nil, fmt.Errorf("%w: unknown emotion preference %q", models.ErrValidation, input.Emotions)
	}

	larp, err := s.larpRepo.GetLarpByID(ctx, s.db, input.LarpID)
	if err != nil {
		return nil, err
	}
	if !larp.SheetCreationOpened {
		return nil, fmt.Errorf("%w: sheet creation is closed for this larp", models.ErrValidation)
	}

	faction, err := s.larpRepo.GetFactionByID(ctx, s.db, input.FactionID)
	if err != nil {
		return nil, err
	}
	if faction.LarpID != input.LarpID {
		return nil, fmt.Errorf("%w: faction does not belong to this larp", models.ErrValidation)
	}

	inscription, err := s.inscriptionRepo.LatestForUserAndLarp(ctx, s.db, actor.UserID, input.LarpID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: not enrolled in this larp", models.ErrForbidden)
		}
		return nil, err
	}
	if !inscription.AccessType.CanCreateCharacter() {
		return nil, fmt.Errorf("%w: access type %s has no character sheet", models.ErrForbidden, inscription.AccessType)
	}

	count, err := s.characterRepo.CountByUserAndLarp(ctx, s.db, actor.UserID, input.LarpID)
	if err != nil {
		return nil, err
	}
	if count >= charactersPerLarpLimit {
		return nil, models.ErrCharacterLimit
	}

	now := time.Now().UTC()
	character := &models.Character{
		ID:          uuid.New(),
		UserID:      actor.UserID,
		LarpID:      input.LarpID,
		FactionID:   input.FactionID,
		Name:        input.Name,
		Skills:      input.Skills,
		LastLearned: input.LastLearned,
		Emotions:    input.Emotions,
		Objectives:  input.Objectives,
		Status:      models.SheetUnlocked,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.characterRepo.Create(ctx, s.db, character); err != nil {
		return nil, err
	}
	s.logger.Info("Character created",
		zap.Stringer("characterID", character.ID),
		zap.Stringer("userID", actor.UserID),
		zap.Stringer("larpID", input.LarpID))
	return character, nil
}

func (s *characterServiceImpl) GetCharacter(ctx context.Context, actor models.Actor, characterID uuid.UUID) (*models.Character, error) {
	return s.loadVisibleCharacter(ctx, actor, characterID)
}

func (s *characterServiceImpl) ListMyCharacters(ctx context.Context, actor models.Actor) ([]models.Character, error) {
	return s.characterRepo.ListByUser(ctx, s.db, actor.UserID)
}

func (s *characterServiceImpl) ListLarpCharacters(ctx context.Context, actor models.Actor, larpID uuid.UUID) ([]models.Character, error) {
	isOrga, err := s.isOrganizer(ctx, actor, larpID)
	if err != nil {
		return nil, err
	}
	if !isOrga {
		return nil, models.ErrForbidden
	}
	return s.characterRepo.ListByLarp(ctx, s.db, larpID)
}

func (s *characterServiceImpl) UpdateCharacter(ctx context.Context, actor models.Actor, characterID uuid.UUID, input UpdateCharacterInput) (*models.Character, error) {
	character, err := s.characterRepo.GetByID(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}
	if character.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, models.ErrForbidden
	}
	if character.Status != models.SheetUnlocked {
		return nil, models.ErrSheetNotEditable
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: character name is required", models.ErrValidation)
	}
	if !input.Emotions.Valid() {
		return nil, fmt.Errorf("%w: unknown emotion preference %q", models.ErrValidation, input.Emotions)
	}

	character.Name = input.Name
	character.Skills = input.Skills
	character.LastLearned = input.LastLearned
	character.Emotions = input.Emotions
	character.Objectives = input.Objectives
	if err := s.characterRepo.Update(ctx, s.db, character); err != nil {
		return nil, err
	}
	return character, nil
}

func (s *characterServiceImpl) DeleteCharacter(ctx context.Context, actor models.Actor, characterID uuid.UUID) error {
	character, err := s.characterRepo.GetByID(ctx, s.db, characterID)
	if err != nil {
		return err
	}
	if character.UserID == actor.UserID {
		if character.Status != models.SheetUnlocked {
			return models.ErrSheetNotEditable
		}
		return s.characterRepo.Delete(ctx, s.db, characterID)
	}
	isOrga, err := s.isOrganizer(ctx, actor, character.LarpID)
	if err != nil {
		return err
	}
	if !isOrga {
		return models.ErrForbidden
	}
	return s.characterRepo.Delete(ctx, s.db, characterID)
}

func (s *characterServiceImpl) PlayerValidate(ctx context.Context, actor models.Actor, characterID uuid.UUID) error {
	character, err := s.characterRepo.GetByID(ctx, s.db, characterID)
	if err != nil {
		return err
	}
	if character.UserID != actor.UserID && !actor.IsAdmin() {
		return models.ErrForbidden
	}
	if character.Status != models.SheetUnlocked {
		return fmt.Errorf("%w: cannot validate a sheet in status %s", models.ErrInvalidTransition, character.Status)
	}
	if !character.BgCompleted {
		return fmt.Errorf("%w: background questionnaire is not finished", models.ErrValidation)
	}
	return s.transition(ctx, character, models.SheetPlayerValidated)
}

func (s *characterServiceImpl) OrgaValidate(ctx context.Context, actor models.Actor, characterID uuid.UUID) error {
	character, err := s.characterRepo.GetByID(ctx, s.db, characterID)
	if err != nil {
		return err
	}
	isOrga, err := s.isOrganizer(ctx, actor, character.LarpID)
	if err != nil {
		return err
	}
	if !isOrga {
		return models.ErrForbidden
	}
	if character.Status != models.SheetPlayerValidated {
		return fmt.Errorf("%w: cannot finalize a sheet in status %s", models.ErrInvalidTransition, character.Status)
	}
	return s.transition(ctx, character, models.SheetOrgaValidated)
}

func (s *characterServiceImpl) Unlock(ctx context.Context, actor models.Actor, characterID uuid.UUID) error {
	character, err := s.characterRepo.GetByID(ctx, s.db, characterID)
	if err != nil {
		return err
	}
	isOrga, err := s.isOrganizer(ctx, actor, character.LarpID)
	if err != nil {
		return err
	}
	if !isOrga {
		return models.ErrForbidden
	}
	if character.Status == models.SheetUnlocked {
		return fmt.Errorf("%w: sheet is already unlocked", models.ErrInvalidTransition)
	}
	return s.transition(ctx, character, models.SheetUnlocked)
}

func (s *characterServiceImpl) transition(ctx context.Context, character *models.Character, newStatus models.SheetStatus) error {
	oldStatus := character.Status
	if err := s.characterRepo.UpdateStatus(ctx, s.db, character.ID, newStatus); err != nil {
		return err
	}
	s.logger.Info("Sheet status changed",
		zap.Stringer("characterID", character.ID),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(newStatus)))

	event := messaging.SheetStatusChangedEvent{
		CharacterID: character.ID,
		UserID:      character.UserID,
		LarpID:      character.LarpID,
		OldStatus:   string(oldStatus),
		NewStatus:   string(newStatus),
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.publisher.PublishSheetStatusChanged(ctx, event); err != nil {
		// The transition is committed; notification loss is logged only.
		s.logger.Error("Failed to publish status event",
			zap.Stringer("characterID", character.ID), zap.Error(err))
	}
	return nil
}

func (s *characterServiceImpl) AddDocument(ctx context.Context, actor models.Actor, characterID uuid.UUID, name, documentURL string) (*models.CharacterDocument, error) {
	character, err := s.characterRepo.GetByID(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}
	isOrga, err := s.isOrganizer(ctx, actor, character.LarpID)
	if err != nil {
		return nil, err
	}
	if !isOrga {
		return nil, models.ErrForbidden
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(documentURL) == "" {
		return nil, fmt.Errorf("%w: document name and url are required", models.ErrValidation)
	}

	doc := &models.CharacterDocument{
		ID:          uuid.New(),
		CharacterID: characterID,
		Name:        name,
		DocumentURL: documentURL,
	}
	if err := s.characterRepo.AddDocument(ctx, s.db, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *characterServiceImpl) ListDocuments(ctx context.Context, actor models.Actor, characterID uuid.UUID) ([]models.CharacterDocument, error) {
	if _, err := s.loadVisibleCharacter(ctx, actor, characterID); err != nil {
		return nil, err
	}
	return s.characterRepo.ListDocuments(ctx, s.db, characterID)
}

func (s *characterServiceImpl) DeleteDocument(ctx context.Context, actor models.Actor, characterID, documentID uuid.UUID) error {
	character, err := s.characterRepo.GetByID(ctx, s.db, characterID)
	if err != nil {
		return err
	}
	isOrga, err := s.isOrganizer(ctx, actor, character.LarpID)
	if err != nil {
		return err
	}
	if !isOrga {
		return models.ErrForbidden
	}
	return s.characterRepo.DeleteDocument(ctx, s.db, documentID)
}
