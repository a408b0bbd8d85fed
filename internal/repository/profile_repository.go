package repository

import (
	"context"

	"larp-server/internal/models"

	"github.com/google/uuid"
)

// ProfileRepository manages the per-user security profile and the
// per-(user, larp) PNJ preference profile. Both are upserted: the
// questionnaires can be refilled any number of times.
type ProfileRepository interface {
	GetProfile(ctx context.Context, querier DBTX, userID uuid.UUID) (*models.Profile, error)
	UpsertProfile(ctx context.Context, querier DBTX, profile *models.Profile) error

	GetPnjProfile(ctx context.Context, querier DBTX, userID, larpID uuid.UUID) (*models.PnjProfile, error)
	UpsertPnjProfile(ctx context.Context, querier DBTX, profile *models.PnjProfile) error
}
