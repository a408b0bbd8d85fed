package mocks

import (
	"context"

	"larp-server/internal/models"
	"larp-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock ChoiceRepository
type ChoiceRepository struct {
	mock.Mock
}

func (m *ChoiceRepository) ListByStep(ctx context.Context, querier repository.DBTX, stepID uuid.UUID) ([]models.BgChoice, error) {
	args := m.Called(ctx, querier, stepID)
	choices, _ := args.Get(0).([]models.BgChoice)
	return choices, args.Error(1)
}
func (m *ChoiceRepository) GetByID(ctx context.Context, querier repository.DBTX, id uuid.UUID) (*models.BgChoice, error) {
	args := m.Called(ctx, querier, id)
	choice, _ := args.Get(0).(*models.BgChoice)
	return choice, args.Error(1)
}
func (m *ChoiceRepository) Create(ctx context.Context, querier repository.DBTX, choice *models.BgChoice) error {
	args := m.Called(ctx, querier, choice)
	return args.Error(0)
}
func (m *ChoiceRepository) Update(ctx context.Context, querier repository.DBTX, choice *models.BgChoice) error {
	args := m.Called(ctx, querier, choice)
	return args.Error(0)
}
func (m *ChoiceRepository) SetPrerequisite(ctx context.Context, querier repository.DBTX, choiceID uuid.UUID, prerequisiteID *uuid.UUID) error {
	args := m.Called(ctx, querier, choiceID, prerequisiteID)
	return args.Error(0)
}
func (m *ChoiceRepository) Delete(ctx context.Context, querier repository.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, querier, id)
	return args.Error(0)
}
