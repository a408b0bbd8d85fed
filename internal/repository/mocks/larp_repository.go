package mocks

import (
	"context"

	"larp-server/internal/models"
	"larp-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock LarpRepository
type LarpRepository struct {
	mock.Mock
}

func (m *LarpRepository) CreateLarp(ctx context.Context, querier repository.DBTX, larp *models.Larp) error {
	args := m.Called(ctx, querier, larp)
	return args.Error(0)
}
func (m *LarpRepository) GetLarpByID(ctx context.Context, querier repository.DBTX, id uuid.UUID) (*models.Larp, error) {
	args := m.Called(ctx, querier, id)
	larp, _ := args.Get(0).(*models.Larp)
	return larp, args.Error(1)
}
func (m *LarpRepository) ListLarps(ctx context.Context, querier repository.DBTX) ([]models.Larp, error) {
	args := m.Called(ctx, querier)
	larps, _ := args.Get(0).([]models.Larp)
	return larps, args.Error(1)
}
func (m *LarpRepository) UpdateLarp(ctx context.Context, querier repository.DBTX, larp *models.Larp) error {
	args := m.Called(ctx, querier, larp)
	return args.Error(0)
}
func (m *LarpRepository) IsOrganizer(ctx context.Context, querier repository.DBTX, larpID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, querier, larpID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *LarpRepository) AddOrganizer(ctx context.Context, querier repository.DBTX, larpID, userID uuid.UUID) error {
	args := m.Called(ctx, querier, larpID, userID)
	return args.Error(0)
}
func (m *LarpRepository) CreateOpus(ctx context.Context, querier repository.DBTX, opus *models.Opus) error {
	args := m.Called(ctx, querier, opus)
	return args.Error(0)
}
func (m *LarpRepository) GetOpusByID(ctx context.Context, querier repository.DBTX, id uuid.UUID) (*models.Opus, error) {
	args := m.Called(ctx, querier, id)
	opus, _ := args.Get(0).(*models.Opus)
	return opus, args.Error(1)
}
func (m *LarpRepository) ListOpusesByLarp(ctx context.Context, querier repository.DBTX, larpID uuid.UUID) ([]models.Opus, error) {
	args := m.Called(ctx, querier, larpID)
	opuses, _ := args.Get(0).([]models.Opus)
	return opuses, args.Error(1)
}
func (m *LarpRepository) CreateFaction(ctx context.Context, querier repository.DBTX, faction *models.Faction) error {
	args := m.Called(ctx, querier, faction)
	return args.Error(0)
}
func (m *LarpRepository) GetFactionByID(ctx context.Context, querier repository.DBTX, id uuid.UUID) (*models.Faction, error) {
	args := m.Called(ctx, querier, id)
	faction, _ := args.Get(0).(*models.Faction)
	return faction, args.Error(1)
}
func (m *LarpRepository) ListFactionsByLarp(ctx context.Context, querier repository.DBTX, larpID uuid.UUID) ([]models.Faction, error) {
	args := m.Called(ctx, querier, larpID)
	factions, _ := args.Get(0).([]models.Faction)
	return factions, args.Error(1)
}
