package repository

import (
	"context"

	"larp-server/internal/models"

	"github.com/google/uuid"
)

// StepRepository is the data access surface for background-questionnaire steps.
type StepRepository interface {
	// ListByFaction returns the faction's steps ordered by step_order ascending.
	ListByFaction(ctx context.Context, querier DBTX, factionID uuid.UUID) ([]models.BgStep, error)

	// GetByID returns the step or models.ErrNotFound.
	GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.BgStep, error)

	// GetByFactionAndOrder returns the step at the given order within the
	// faction, or models.ErrNotFound when no step holds that order.
	GetByFactionAndOrder(ctx context.Context, querier DBTX, factionID uuid.UUID, order int) (*models.BgStep, error)

	// CountByFaction returns how many steps the faction currently has.
	CountByFaction(ctx context.Context, querier DBTX, factionID uuid.UUID) (int, error)

	// MaxOrderByFaction returns the highest step_order of the faction,
	// or 0 when the faction has no steps.
	MaxOrderByFaction(ctx context.Context, querier DBTX, factionID uuid.UUID) (int, error)

	Create(ctx context.Context, querier DBTX, step *models.BgStep) error
	Update(ctx context.Context, querier DBTX, step *models.BgStep) error

	// UpdateOrder moves a single step to a new order. Callers swapping two
	// steps must do both updates inside one transaction; the uniqueness
	// constraint is deferred to commit.
	UpdateOrder(ctx context.Context, querier DBTX, id uuid.UUID, order int) error

	// Delete removes the step; its choices go with it (FK cascade).
	Delete(ctx context.Context, querier DBTX, id uuid.UUID) error
}
