package mocks

import (
	"context"

	"larp-server/internal/models"
	"larp-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock CharacterRepository
type CharacterRepository struct {
	mock.Mock
}

func (m *CharacterRepository) Create(ctx context.Context, querier repository.DBTX, character *models.Character) error {
	args := m.Called(ctx, querier, character)
	return args.Error(0)
}
func (m *CharacterRepository) GetByID(ctx context.Context, querier repository.DBTX, id uuid.UUID) (*models.Character, error) {
	args := m.Called(ctx, querier, id)
	character, _ := args.Get(0).(*models.Character)
	return character, args.Error(1)
}
func (m *CharacterRepository) ListByUser(ctx context.Context, querier repository.DBTX, userID uuid.UUID) ([]models.Character, error) {
	args := m.Called(ctx, querier, userID)
	characters, _ := args.Get(0).([]models.Character)
	return characters, args.Error(1)
}
func (m *CharacterRepository) ListByLarp(ctx context.Context, querier repository.DBTX, larpID uuid.UUID) ([]models.Character, error) {
	args := m.Called(ctx, querier, larpID)
	characters, _ := args.Get(0).([]models.Character)
	return characters, args.Error(1)
}
func (m *CharacterRepository) CountByUserAndLarp(ctx context.Context, querier repository.DBTX, userID, larpID uuid.UUID) (int, error) {
	args := m.Called(ctx, querier, userID, larpID)
	return args.Int(0), args.Error(1)
}
func (m *CharacterRepository) Update(ctx context.Context, querier repository.DBTX, character *models.Character) error {
	args := m.Called(ctx, querier, character)
	return args.Error(0)
}
func (m *CharacterRepository) UpdateStatus(ctx context.Context, querier repository.DBTX, id uuid.UUID, status models.SheetStatus) error {
	args := m.Called(ctx, querier, id, status)
	return args.Error(0)
}
func (m *CharacterRepository) SetBackgroundCompleted(ctx context.Context, querier repository.DBTX, id uuid.UUID, completed bool) error {
	args := m.Called(ctx, querier, id, completed)
	return args.Error(0)
}
func (m *CharacterRepository) Delete(ctx context.Context, querier repository.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, querier, id)
	return args.Error(0)
}
func (m *CharacterRepository) AddDocument(ctx context.Context, querier repository.DBTX, doc *models.CharacterDocument) error {
	args := m.Called(ctx, querier, doc)
	return args.Error(0)
}
func (m *CharacterRepository) ListDocuments(ctx context.Context, querier repository.DBTX, characterID uuid.UUID) ([]models.CharacterDocument, error) {
	args := m.Called(ctx, querier, characterID)
	docs, _ := args.Get(0).([]models.CharacterDocument)
	return docs, args.Error(1)
}
func (m *CharacterRepository) DeleteDocument(ctx context.Context, querier repository.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, querier, id)
	return args.Error(0)
}
