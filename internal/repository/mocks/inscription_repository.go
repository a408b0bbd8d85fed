package mocks

import (
	"context"

	"larp-server/internal/models"
	"larp-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock InscriptionRepository
type InscriptionRepository struct {
	mock.Mock
}

func (m *InscriptionRepository) Create(ctx context.Context, querier repository.DBTX, inscription *models.Inscription) error {
	args := m.Called(ctx, querier, inscription)
	return args.Error(0)
}
func (m *InscriptionRepository) GetByID(ctx context.Context, querier repository.DBTX, id uuid.UUID) (*models.Inscription, error) {
	args := m.Called(ctx, querier, id)
	inscription, _ := args.Get(0).(*models.Inscription)
	return inscription, args.Error(1)
}
func (m *InscriptionRepository) ListByUser(ctx context.Context, querier repository.DBTX, userID uuid.UUID) ([]models.Inscription, error) {
	args := m.Called(ctx, querier, userID)
	inscriptions, _ := args.Get(0).([]models.Inscription)
	return inscriptions, args.Error(1)
}
func (m *InscriptionRepository) LatestForUserAndLarp(ctx context.Context, querier repository.DBTX, userID, larpID uuid.UUID) (*models.Inscription, error) {
	args := m.Called(ctx, querier, userID, larpID)
	inscription, _ := args.Get(0).(*models.Inscription)
	return inscription, args.Error(1)
}
func (m *InscriptionRepository) Delete(ctx context.Context, querier repository.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, querier, id)
	return args.Error(0)
}
func (m *InscriptionRepository) CreateTicket(ctx context.Context, querier repository.DBTX, ticket *models.Ticket) error {
	args := m.Called(ctx, querier, ticket)
	return args.Error(0)
}
func (m *InscriptionRepository) ListTicketsByOpus(ctx context.Context, querier repository.DBTX, opusID uuid.UUID) ([]models.Ticket, error) {
	args := m.Called(ctx, querier, opusID)
	tickets, _ := args.Get(0).([]models.Ticket)
	return tickets, args.Error(1)
}

// Mock ProfileRepository
type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) GetProfile(ctx context.Context, querier repository.DBTX, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, querier, userID)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}
func (m *ProfileRepository) UpsertProfile(ctx context.Context, querier repository.DBTX, profile *models.Profile) error {
	args := m.Called(ctx, querier, profile)
	return args.Error(0)
}
func (m *ProfileRepository) GetPnjProfile(ctx context.Context, querier repository.DBTX, userID, larpID uuid.UUID) (*models.PnjProfile, error) {
	args := m.Called(ctx, querier, userID, larpID)
	profile, _ := args.Get(0).(*models.PnjProfile)
	return profile, args.Error(1)
}
func (m *ProfileRepository) UpsertPnjProfile(ctx context.Context, querier repository.DBTX, profile *models.PnjProfile) error {
	args := m.Called(ctx, querier, profile)
	return args.Error(0)
}
