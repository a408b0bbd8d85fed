package repository

import (
	"context"

	"larp-server/internal/models"

	"github.com/google/uuid"
)

// LarpRepository manages larps, their opuses and factions, and the
// organizer membership used for permission checks.
type LarpRepository interface {
	CreateLarp(ctx context.Context, querier DBTX, larp *models.Larp) error
	GetLarpByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Larp, error)
	ListLarps(ctx context.Context, querier DBTX) ([]models.Larp, error)
	UpdateLarp(ctx context.Context, querier DBTX, larp *models.Larp) error

	IsOrganizer(ctx context.Context, querier DBTX, larpID, userID uuid.UUID) (bool, error)
	AddOrganizer(ctx context.Context, querier DBTX, larpID, userID uuid.UUID) error

	CreateOpus(ctx context.Context, querier DBTX, opus *models.Opus) error
	GetOpusByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Opus, error)
	ListOpusesByLarp(ctx context.Context, querier DBTX, larpID uuid.UUID) ([]models.Opus, error)

	CreateFaction(ctx context.Context, querier DBTX, faction *models.Faction) error
	GetFactionByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Faction, error)
	ListFactionsByLarp(ctx context.Context, querier DBTX, larpID uuid.UUID) ([]models.Faction, error)
}
