package repository

import (
	"context"

	"larp-server/internal/models"

	"github.com/google/uuid"
)

// CharacterRepository is the data access surface for PJ sheets and their documents.
type CharacterRepository interface {
	Create(ctx context.Context, querier DBTX, character *models.Character) error

	// GetByID returns the character or models.ErrNotFound.
	GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Character, error)

	ListByUser(ctx context.Context, querier DBTX, userID uuid.UUID) ([]models.Character, error)
	ListByLarp(ctx context.Context, querier DBTX, larpID uuid.UUID) ([]models.Character, error)
	CountByUserAndLarp(ctx context.Context, querier DBTX, userID, larpID uuid.UUID) (int, error)

	// Update persists the player-editable sheet fields.
	Update(ctx context.Context, querier DBTX, character *models.Character) error

	UpdateStatus(ctx context.Context, querier DBTX, id uuid.UUID, status models.SheetStatus) error

	// SetBackgroundCompleted flips the questionnaire completion flag.
	// Idempotent: setting an already-set flag is not an error.
	SetBackgroundCompleted(ctx context.Context, querier DBTX, id uuid.UUID, completed bool) error

	Delete(ctx context.Context, querier DBTX, id uuid.UUID) error

	AddDocument(ctx context.Context, querier DBTX, doc *models.CharacterDocument) error
	ListDocuments(ctx context.Context, querier DBTX, characterID uuid.UUID) ([]models.CharacterDocument, error)
	DeleteDocument(ctx context.Context, querier DBTX, id uuid.UUID) error
}
