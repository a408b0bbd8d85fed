package mocks

import (
	"context"

	"larp-server/internal/models"
	"larp-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock StepRepository
type StepRepository struct {
	mock.Mock
}

func (m *StepRepository) ListByFaction(ctx context.Context, querier repository.DBTX, factionID uuid.UUID) ([]models.BgStep, error) {
	args := m.Called(ctx, querier, factionID)
	steps, _ := args.Get(0).([]models.BgStep)
	return steps, args.Error(1)
}
func (m *StepRepository) GetByID(ctx context.Context, querier repository.DBTX, id uuid.UUID) (*models.BgStep, error) {
	args := m.Called(ctx, querier, id)
	step, _ := args.Get(0).(*models.BgStep)
	return step, args.Error(1)
}
func (m *StepRepository) GetByFactionAndOrder(ctx context.Context, querier repository.DBTX, factionID uuid.UUID, order int) (*models.BgStep, error) {
	args := m.Called(ctx, querier, factionID, order)
	step, _ := args.Get(0).(*models.BgStep)
	return step, args.Error(1)
}
func (m *StepRepository) CountByFaction(ctx context.Context, querier repository.DBTX, factionID uuid.UUID) (int, error) {
	args := m.Called(ctx, querier, factionID)
	return args.Int(0), args.Error(1)
}
func (m *StepRepository) MaxOrderByFaction(ctx context.Context, querier repository.DBTX, factionID uuid.UUID) (int, error) {
	args := m.Called(ctx, querier, factionID)
	return args.Int(0), args.Error(1)
}
func (m *StepRepository) Create(ctx context.Context, querier repository.DBTX, step *models.BgStep) error {
	args := m.Called(ctx, querier, step)
	return args.Error(0)
}
func (m *StepRepository) Update(ctx context.Context, querier repository.DBTX, step *models.BgStep) error {
	args := m.Called(ctx, querier, step)
	return args.Error(0)
}
func (m *StepRepository) UpdateOrder(ctx context.Context, querier repository.DBTX, id uuid.UUID, order int) error {
	args := m.Called(ctx, querier, id, order)
	return args.Error(0)
}
func (m *StepRepository) Delete(ctx context.Context, querier repository.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, querier, id)
	return args.Error(0)
}
