package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"larp-server/internal/models"
	"larp-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EnrollmentService exposes the event catalog (larps, opuses, factions,
// tickets) and manages user enrollments into opuses.
type EnrollmentService interface {
	ListLarps(ctx context.Context) ([]models.Larp, error)
	GetLarp(ctx context.Context, larpID uuid.UUID) (*models.Larp, error)
	CreateLarp(ctx context.Context, actor models.Actor, name, description, factionsName string) (*models.Larp, error)
	SetSheetCreationOpened(ctx context.Context, actor models.Actor, larpID uuid.UUID, opened bool) error

	ListOpuses(ctx context.Context, larpID uuid.UUID) ([]models.Opus, error)
	CreateOpus(ctx context.Context, actor models.Actor, larpID uuid.UUID, name string, date *time.Time, description, location string) (*models.Opus, error)

	ListFactions(ctx context.Context, larpID uuid.UUID) ([]models.Faction, error)
	CreateFaction(ctx context.Context, actor models.Actor, larpID uuid.UUID, name, orgaContact string, orgaUserID *uuid.UUID) (*models.Faction, error)

	ListTickets(ctx context.Context, opusID uuid.UUID) ([]models.Ticket, error)
	CreateTicket(ctx context.Context, actor models.Actor, opusID uuid.UUID, price float64, accessType models.AccessType) (*models.Ticket, error)

	// Enroll registers the actor into an opus. One enrollment per
	// (user, opus); a second attempt fails with ErrDuplicate.
	Enroll(ctx context.Context, actor models.Actor, opusID uuid.UUID, accessType models.AccessType, factionID *uuid.UUID) (*models.Inscription, error)
	ListMyInscriptions(ctx context.Context, actor models.Actor) ([]models.Inscription, error)
	CancelInscription(ctx context.Context, actor models.Actor, inscriptionID uuid.UUID) error
}

type enrollmentServiceImpl struct {
	db              repository.DBTX
	larpRepo        repository.LarpRepository
	inscriptionRepo repository.InscriptionRepository
	logger          *zap.Logger
}

func NewEnrollmentService(
	db repository.DBTX,
	larpRepo repository.LarpRepository,
	inscriptionRepo repository.InscriptionRepository,
	logger *zap.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		db:              db,
		larpRepo:        larpRepo,
		inscriptionRepo: inscriptionRepo,
		logger:          logger.Named("EnrollmentService"),
	}
}

func (s *enrollmentServiceImpl) requireOrganizer(ctx context.Context, actor models.Actor, larpID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	isOrga, err := s.larpRepo.IsOrganizer(ctx, s.db, larpID, actor.UserID)
	if err != nil {
		return err
	}
	if !isOrga {
		return models.ErrForbidden
	}
	return nil
}

func (s *enrollmentServiceImpl) ListLarps(ctx context.Context) ([]models.Larp, error) {
	return s.larpRepo.ListLarps(ctx, s.db)
}

func (s *enrollmentServiceImpl) GetLarp(ctx context.Context, larpID uuid.UUID) (*models.Larp, error) {
	return s.larpRepo.GetLarpByID(ctx, s.db, larpID)
}

func (s *enrollmentServiceImpl) CreateLarp(ctx context.Context, actor models.Actor, name, description, factionsName string) (*models.Larp, error) {
	if !actor.IsAdmin() {
		return nil, models.ErrForbidden
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: larp name is required", models.ErrValidation)
	}

	now := time.Now().UTC()
	larp := &models.Larp{
		ID:           uuid.New(),
		Name:         name,
		Description:  description,
		FactionsName: factionsName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.larpRepo.CreateLarp(ctx, s.db, larp); err != nil {
		return nil, err
	}
	// The creator organizes the larp they created.
	if err := s.larpRepo.AddOrganizer(ctx, s.db, larp.ID, actor.UserID); err != nil {
		return nil, err
	}
	s.logger.Info("Larp created", zap.Stringer("larpID", larp.ID), zap.String("name", name))
	return larp, nil
}

func (s *enrollmentServiceImpl) SetSheetCreationOpened(ctx context.Context, actor models.Actor, larpID uuid.UUID, opened bool) error {
	if err := s.requireOrganizer(ctx, actor, larpID); err != nil {
		return err
	}
	larp, err := s.larpRepo.GetLarpByID(ctx, s.db, larpID)
	if err != nil {
		return err
	}
	larp.SheetCreationOpened = opened
	return s.larpRepo.UpdateLarp(ctx, s.db, larp)
}

func (s *enrollmentServiceImpl) ListOpuses(ctx context.Context, larpID uuid.UUID) ([]models.Opus, error) {
	return s.larpRepo.ListOpusesByLarp(ctx, s.db, larpID)
}

func (s *enrollmentServiceImpl) CreateOpus(ctx context.Context, actor models.Actor, larpID uuid.UUID, name string, date *time.Time, description, location string) (*models.Opus, error) {
	if err := s.requireOrganizer(ctx, actor, larpID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: opus name is required", models.ErrValidation)
	}

	opus := &models.Opus{
		ID:          uuid.New(),
		LarpID:      larpID,
		Name:        name,
		Date:        date,
		Description: description,
		Location:    location,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.larpRepo.CreateOpus(ctx, s.db, opus); err != nil {
		return nil, err
	}
	return opus, nil
}

func (s *enrollmentServiceImpl) ListFactions(ctx context.Context, larpID uuid.UUID) ([]models.Faction, error) {
	return s.larpRepo.ListFactionsByLarp(ctx, s.db, larpID)
}

func (s *enrollmentServiceImpl) CreateFaction(ctx context.Context, actor models.Actor, larpID uuid.UUID, name, orgaContact string, orgaUserID *uuid.UUID) (*models.Faction, error) {
	if err := s.requireOrganizer(ctx, actor, larpID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: faction name is required", models.ErrValidation)
	}

	faction := &models.Faction{
		ID:          uuid.New(),
		LarpID:      larpID,
		Name:        name,
		OrgaUserID:  orgaUserID,
		OrgaContact: orgaContact,
	}
	if err := s.larpRepo.CreateFaction(ctx, s.db, faction); err != nil {
		return nil, err
	}
	return faction, nil
}

func (s *enrollmentServiceImpl) ListTickets(ctx context.Context, opusID uuid.UUID) ([]models.Ticket, error) {
	return s.inscriptionRepo.ListTicketsByOpus(ctx, s.db, opusID)
}

func (s *enrollmentServiceImpl) CreateTicket(ctx context.Context, actor models.Actor, opusID uuid.UUID, price float64, accessType models.AccessType) (*models.Ticket, error) {
	opus, err := s.larpRepo.GetOpusByID(ctx, s.db, opusID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOrganizer(ctx, actor, opus.LarpID); err != nil {
		return nil, err
	}
	if !accessType.Valid() {
		return nil, fmt.Errorf("%w: unknown access type %q", models.ErrValidation, accessType)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", models.ErrValidation)
	}

	ticket := &models.Ticket{
		ID:         uuid.New(),
		OpusID:     opusID,
		Price:      price,
		AccessType: accessType,
	}
	if err := s.inscriptionRepo.CreateTicket(ctx, s.db, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *enrollmentServiceImpl) Enroll(ctx context.Context, actor models.Actor, opusID uuid.UUID, accessType models.AccessType, factionID *uuid.UUID) (*models.Inscription, error) {
	if !accessType.Valid() {
		return nil, fmt.Errorf("%w: unknown access type %q", models.ErrValidation, accessType)
	}

	opus, err := s.larpRepo.GetOpusByID(ctx, s.db, opusID)
	if err != nil {
		return nil, err
	}
	if factionID != nil {
		faction, err := s.larpRepo.GetFactionByID(ctx, s.db, *factionID)
		if err != nil {
			return nil, err
		}
		if faction.LarpID != opus.LarpID {
			return nil, fmt.Errorf("%w: faction does not belong to this larp", models.ErrValidation)
		}
	}

	inscription := &models.Inscription{
		ID:         uuid.New(),
		UserID:     actor.UserID,
		OpusID:     opusID,
		AccessType: accessType,
		FactionID:  factionID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.inscriptionRepo.Create(ctx, s.db, inscription); err != nil {
		return nil, err
	}
	s.logger.Info("User enrolled",
		zap.Stringer("userID", actor.UserID),
		zap.Stringer("opusID", opusID),
		zap.String("accessType", string(accessType)))
	return inscription, nil
}

func (s *enrollmentServiceImpl) ListMyInscriptions(ctx context.Context, actor models.Actor) ([]models.Inscription, error) {
	return s.inscriptionRepo.ListByUser(ctx, s.db, actor.UserID)
}

func (s *enrollmentServiceImpl) CancelInscription(ctx context.Context, actor models.Actor, inscriptionID uuid.UUID) error {
	inscription, err := s.inscriptionRepo.GetByID(ctx, s.db, inscriptionID)
	if err != nil {
		return err
	}
	if inscription.UserID != actor.UserID && !actor.IsAdmin() {
		return models.ErrForbidden
	}
	return s.inscriptionRepo.Delete(ctx, s.db, inscriptionID)
}
