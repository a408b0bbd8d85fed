package repository

import (
	"context"
	"errors"
	"fmt"

	"larp-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check
var _ ProfileRepository = (*pgProfileRepository)(nil)

type pgProfileRepository struct {
	logger *zap.Logger
}

// NewPgProfileRepository creates a new profile repository.
func NewPgProfileRepository(logger *zap.Logger) ProfileRepository {
	return &pgProfileRepository{
		logger: logger.Named("PgProfileRepo"),
	}
}

const getProfileQuery = `
SELECT user_id, pseudos, birthdate, food, experience, unwanted_people, fears, emergency_contact, activated
FROM profiles
WHERE user_id = $1`

const upsertProfileQuery = `
INSERT INTO profiles (user_id, pseudos, birthdate, food, experience, unwanted_people, fears, emergency_contact, activated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (user_id) DO UPDATE SET
    pseudos = EXCLUDED.pseudos,
    birthdate = EXCLUDED.birthdate,
    food = EXCLUDED.food,
    experience = EXCLUDED.experience,
    unwanted_people = EXCLUDED.unwanted_people,
    fears = EXCLUDED.fears,
    emergency_contact = EXCLUDED.emergency_contact,
    activated = EXCLUDED.activated`

const getPnjProfileQuery = `
SELECT id, user_id, larp_id, info_orga, preferred_time, night_action, logistic_or_role, importance, talent, completed
FROM pnj_profiles
WHERE user_id = $1 AND larp_id = $2`

const upsertPnjProfileQuery = `
INSERT INTO pnj_profiles (id, user_id, larp_id, info_orga, preferred_time, night_action, logistic_or_role, importance, talent, completed)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT ON CONSTRAINT unique_pnj_profile DO UPDATE SET
    info_orga = EXCLUDED.info_orga,
    preferred_time = EXCLUDED.preferred_time,
    night_action = EXCLUDED.night_action,
    logistic_or_role = EXCLUDED.logistic_or_role,
    importance = EXCLUDED.importance,
    talent = EXCLUDED.talent,
    completed = EXCLUDED.completed`

func (r *pgProfileRepository) GetProfile(ctx context.Context, querier DBTX, userID uuid.UUID) (*models.Profile, error) {
	profile := &models.Profile{}
	err := querier.QueryRow(ctx, getProfileQuery, userID).Scan(
		&profile.UserID, &profile.Pseudos, &profile.Birthdate, &profile.Food,
		&profile.Experience, &profile.UnwantedPeople, &profile.Fears,
		&profile.EmergencyContact, &profile.Activated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get profile", zap.Stringer("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get profile of user %s: %w", userID, err)
	}
	return profile, nil
}

func (r *pgProfileRepository) UpsertProfile(ctx context.Context, querier DBTX, profile *models.Profile) error {
	_, err := querier.Exec(ctx, upsertProfileQuery,
		profile.UserID, profile.Pseudos, profile.Birthdate, profile.Food,
		profile.Experience, profile.UnwantedPeople, profile.Fears,
		profile.EmergencyContact, profile.Activated,
	)
	if err != nil {
		r.logger.Error("Failed to upsert profile", zap.Stringer("userID", profile.UserID), zap.Error(err))
		return fmt.Errorf("failed to upsert profile of user %s: %w", profile.UserID, err)
	}
	r.logger.Info("Profile upserted", zap.Stringer("userID", profile.UserID))
	return nil
}

func (r *pgProfileRepository) GetPnjProfile(ctx context.Context, querier DBTX, userID, larpID uuid.UUID) (*models.PnjProfile, error) {
	profile := &models.PnjProfile{}
	err := querier.QueryRow(ctx, getPnjProfileQuery, userID, larpID).Scan(
		&profile.ID, &profile.UserID, &profile.LarpID, &profile.InfoOrga,
		&profile.PreferredTime, &profile.NightAction, &profile.LogisticOrRole,
		&profile.Importance, &profile.Talent, &profile.Completed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get pnj profile",
			zap.Stringer("userID", userID), zap.Stringer("larpID", larpID), zap.Error(err))
		return nil, fmt.Errorf("failed to get pnj profile of user %s: %w", userID, err)
	}
	return profile, nil
}

func (r *pgProfileRepository) UpsertPnjProfile(ctx context.Context, querier DBTX, profile *models.PnjProfile) error {
	_, err := querier.Exec(ctx, upsertPnjProfileQuery,
		profile.ID, profile.UserID, profile.LarpID, profile.InfoOrga,
		profile.PreferredTime, profile.NightAction, profile.LogisticOrRole,
		profile.Importance, profile.Talent, profile.Completed,
	)
	if err != nil {
		r.logger.Error("Failed to upsert pnj profile",
			zap.Stringer("userID", profile.UserID), zap.Stringer("larpID", profile.LarpID), zap.Error(err))
		return fmt.Errorf("failed to upsert pnj profile of user %s: %w", profile.UserID, err)
	}
	r.logger.Info("Pnj profile upserted",
		zap.Stringer("userID", profile.UserID), zap.Stringer("larpID", profile.LarpID))
	return nil
}
