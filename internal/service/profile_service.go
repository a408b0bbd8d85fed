package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"larp-server/internal/models"
	"larp-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpsertProfileInput carries the fields of the security questionnaire.
type UpsertProfileInput struct {
	Pseudos          string
	Birthdate        *time.Time
	Food             string
	Experience       models.ExperienceLevel
	UnwantedPeople   string
	Fears            string
	EmergencyContact string
}

// UpsertPnjProfileInput carries the PNJ preference questionnaire.
type UpsertPnjProfileInput struct {
	LarpID         uuid.UUID
	InfoOrga       string
	PreferredTime  *models.TimePreference
	NightAction    *bool
	LogisticOrRole *models.ScaleLevel
	Importance     *models.ScaleLevel
	Talent         string
}

// ProfileService manages the per-user security profile and the per-larp
// PNJ preference profile. Both questionnaires can be refilled; saving
// overwrites the previous answers.
type ProfileService interface {
	GetProfile(ctx context.Context, actor models.Actor) (*models.Profile, error)
	SaveProfile(ctx context.Context, actor models.Actor, input UpsertProfileInput) (*models.Profile, error)

	GetPnjProfile(ctx context.Context, actor models.Actor, larpID uuid.UUID) (*models.PnjProfile, error)
	SavePnjProfile(ctx context.Context, actor models.Actor, input UpsertPnjProfileInput) (*models.PnjProfile, error)
}

type profileServiceImpl struct {
	db              repository.DBTX
	profileRepo     repository.ProfileRepository
	larpRepo        repository.LarpRepository
	inscriptionRepo repository.InscriptionRepository
	logger          *zap.Logger
}

func NewProfileService(
	db repository.DBTX,
	profileRepo repository.ProfileRepository,
	larpRepo repository.LarpRepository,
	inscriptionRepo repository.InscriptionRepository,
	logger *zap.Logger,
) ProfileService {
	return &profileServiceImpl{
		db:              db,
		profileRepo:     profileRepo,
		larpRepo:        larpRepo,
		inscriptionRepo: inscriptionRepo,
		logger:          logger.Named("ProfileService"),
	}
}

func (s *profileServiceImpl) GetProfile(ctx context.Context, actor models.Actor) (*models.Profile, error) {
	return s.profileRepo.GetProfile(ctx, s.db, actor.UserID)
}

func (s *profileServiceImpl) SaveProfile(ctx context.Context, actor models.Actor, input UpsertProfileInput) (*models.Profile, error) {
	if !input.Experience.Valid() {
		return nil, fmt.Errorf("%w: unknown experience level %q", models.ErrValidation, input.Experience)
	}

	profile := &models.Profile{
		UserID:           actor.UserID,
		Pseudos:          input.Pseudos,
		Birthdate:        input.Birthdate,
		Food:             input.Food,
		Experience:       input.Experience,
		UnwantedPeople:   input.UnwantedPeople,
		Fears:            input.Fears,
		EmergencyContact: input.EmergencyContact,
		Activated:        true,
	}
	if err := s.profileRepo.UpsertProfile(ctx, s.db, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileServiceImpl) GetPnjProfile(ctx context.Context, actor models.Actor, larpID uuid.UUID) (*models.PnjProfile, error) {
	return s.profileRepo.GetPnjProfile(ctx, s.db, actor.UserID, larpID)
}

func (s *profileServiceImpl) SavePnjProfile(ctx context.Context, actor models.Actor, input UpsertPnjProfileInput) (*models.PnjProfile, error) {
	if input.PreferredTime != nil && !input.PreferredTime.Valid() {
		return nil, fmt.Errorf("%w: unknown time preference %q", models.ErrValidation, *input.PreferredTime)
	}
	if input.LogisticOrRole != nil && !input.LogisticOrRole.Valid() {
		return nil, fmt.Errorf("%w: logistic/role scale out of range", models.ErrValidation)
	}
	if input.Importance != nil && !input.Importance.Valid() {
		return nil, fmt.Errorf("%w: importance scale out of range", models.ErrValidation)
	}

	if _, err := s.larpRepo.GetLarpByID(ctx, s.db, input.LarpID); err != nil {
		return nil, err
	}

	// Only users enrolled with a PNJ access type fill this questionnaire.
	inscription, err := s.inscriptionRepo.LatestForUserAndLarp(ctx, s.db, actor.UserID, input.LarpID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: not enrolled in this larp", models.ErrForbidden)
		}
		return nil, err
	}
	if !inscription.AccessType.HasPnjProfile() {
		return nil, fmt.Errorf("%w: access type %s has no pnj profile", models.ErrForbidden, inscription.AccessType)
	}

	// All four preference fields answered marks the profile completed.
	completed := input.PreferredTime != nil && input.NightAction != nil &&
		input.LogisticOrRole != nil && input.Importance != nil

	profile := &models.PnjProfile{
		ID:             uuid.New(),
		UserID:         actor.UserID,
		LarpID:         input.LarpID,
		InfoOrga:       input.InfoOrga,
		PreferredTime:  input.PreferredTime,
		NightAction:    input.NightAction,
		LogisticOrRole: input.LogisticOrRole,
		Importance:     input.Importance,
		Talent:         input.Talent,
		Completed:      completed,
	}
	if err := s.profileRepo.UpsertPnjProfile(ctx, s.db, profile); err != nil {
		return nil, err
	}
	s.logger.Info("Pnj profile saved",
		zap.Stringer("userID", actor.UserID),
		zap.Stringer("larpID", input.LarpID),
		zap.Bool("completed", completed))
	return profile, nil
}
