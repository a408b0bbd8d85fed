package repository

import (
	"context"

	"larp-server/internal/models"

	"github.com/google/uuid"
)

// ChoiceRepository is the data access surface for background choices.
type ChoiceRepository interface {
	// ListByStep returns every choice of the step, unordered.
	ListByStep(ctx context.Context, querier DBTX, stepID uuid.UUID) ([]models.BgChoice, error)

	// GetByID returns the choice or models.ErrNotFound.
	GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.BgChoice, error)

	Create(ctx context.Context, querier DBTX, choice *models.BgChoice) error
	Update(ctx context.Context, querier DBTX, choice *models.BgChoice) error

	// SetPrerequisite replaces the prerequisite link; nil clears it.
	SetPrerequisite(ctx context.Context, querier DBTX, choiceID uuid.UUID, prerequisiteID *uuid.UUID) error

	Delete(ctx context.Context, querier DBTX, id uuid.UUID) error
}
