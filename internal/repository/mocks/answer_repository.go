package mocks

import (
	"context"

	"larp-server/internal/models"
	"larp-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock AnswerRepository
type AnswerRepository struct {
	mock.Mock
}

func (m *AnswerRepository) ListByCharacter(ctx context.Context, querier repository.DBTX, characterID uuid.UUID) ([]models.BgAnswer, error) {
	args := m.Called(ctx, querier, characterID)
	answers, _ := args.Get(0).([]models.BgAnswer)
	return answers, args.Error(1)
}
func (m *AnswerRepository) GetByID(ctx context.Context, querier repository.DBTX, id uuid.UUID) (*models.BgAnswer, error) {
	args := m.Called(ctx, querier, id)
	answer, _ := args.Get(0).(*models.BgAnswer)
	return answer, args.Error(1)
}
func (m *AnswerRepository) AnsweredChoiceIDs(ctx context.Context, querier repository.DBTX, characterID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, querier, characterID)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}
func (m *AnswerRepository) MaxAnsweredOrder(ctx context.Context, querier repository.DBTX, characterID uuid.UUID) (int, error) {
	args := m.Called(ctx, querier, characterID)
	return args.Int(0), args.Error(1)
}
func (m *AnswerRepository) Upsert(ctx context.Context, querier repository.DBTX, answer *models.BgAnswer) error {
	args := m.Called(ctx, querier, answer)
	return args.Error(0)
}
func (m *AnswerRepository) UpdateText(ctx context.Context, querier repository.DBTX, id uuid.UUID, playerText string) error {
	args := m.Called(ctx, querier, id, playerText)
	return args.Error(0)
}
