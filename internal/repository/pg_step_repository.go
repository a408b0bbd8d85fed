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
var _ StepRepository = (*pgStepRepository)(nil)

type pgStepRepository struct {
	logger *zap.Logger
}

// NewPgStepRepository creates a new step repository.
func NewPgStepRepository(logger *zap.Logger) StepRepository {
	return &pgStepRepository{
		logger: logger.Named("PgStepRepo"),
	}
}

const listStepsByFactionQuery = `
SELECT id, faction_id, step_order, short_name, question
FROM bg_steps
WHERE faction_id = $1
ORDER BY step_order ASC`

const getStepByIDQuery = `
SELECT id, faction_id, step_order, short_name, question
FROM bg_steps
WHERE id = $1`

const getStepByFactionAndOrderQuery = `
SELECT id, faction_id, step_order, short_name, question
FROM bg_steps
WHERE faction_id = $1 AND step_order = $2`

const insertStepQuery = `
INSERT INTO bg_steps (id, faction_id, step_order, short_name, question)
VALUES ($1, $2, $3, $4, $5)`

func (r *pgStepRepository) ListByFaction(ctx context.Context, querier DBTX, factionID uuid.UUID) ([]models.BgStep, error) {
	rows, err := querier.Query(ctx, listStepsByFactionQuery, factionID)
	if err != nil {
		r.logger.Error("Failed to list steps", zap.Stringer("factionID", factionID), zap.Error(err))
		return nil, fmt.Errorf("failed to list steps for faction %s: %w", factionID, err)
	}
	defer rows.Close()

	var steps []models.BgStep
	for rows.Next() {
		var s models.BgStep
		if err := rows.Scan(&s.ID, &s.FactionID, &s.StepOrder, &s.ShortName, &s.Question); err != nil {
			return nil, fmt.Errorf("failed to scan step row: %w", err)
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate step rows: %w", err)
	}
	return steps, nil
}

func (r *pgStepRepository) GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.BgStep, error) {
	step := &models.BgStep{}
	err := querier.QueryRow(ctx, getStepByIDQuery, id).Scan(
		&step.ID, &step.FactionID, &step.StepOrder, &step.ShortName, &step.Question,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrStepNotFound
		}
		r.logger.Error("Failed to get step by ID", zap.Stringer("stepID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get step %s: %w", id, err)
	}
	return step, nil
}

func (r *pgStepRepository) GetByFactionAndOrder(ctx context.Context, querier DBTX, factionID uuid.UUID, order int) (*models.BgStep, error) {
	step := &models.BgStep{}
	err := querier.QueryRow(ctx, getStepByFactionAndOrderQuery, factionID, order).Scan(
		&step.ID, &step.FactionID, &step.StepOrder, &step.ShortName, &step.Question,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrStepNotFound
		}
		r.logger.Error("Failed to get step by order",
			zap.Stringer("factionID", factionID), zap.Int("order", order), zap.Error(err))
		return nil, fmt.Errorf("failed to get step %d of faction %s: %w", order, factionID, err)
	}
	return step, nil
}

func (r *pgStepRepository) CountByFaction(ctx context.Context, querier DBTX, factionID uuid.UUID) (int, error) {
	var count int
	err := querier.QueryRow(ctx, `SELECT COUNT(*) FROM bg_steps WHERE faction_id = $1`, factionID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count steps", zap.Stringer("factionID", factionID), zap.Error(err))
		return 0, fmt.Errorf("failed to count steps for faction %s: %w", factionID, err)
	}
	return count, nil
}

func (r *pgStepRepository) MaxOrderByFaction(ctx context.Context, querier DBTX, factionID uuid.UUID) (int, error) {
	var max int
	err := querier.QueryRow(ctx, `SELECT COALESCE(MAX(step_order), 0) FROM bg_steps WHERE faction_id = $1`, factionID).Scan(&max)
	if err != nil {
		r.logger.Error("Failed to get max step order", zap.Stringer("factionID", factionID), zap.Error(err))
		return 0, fmt.Errorf("failed to get max step order for faction %s: %w", factionID, err)
	}
	return max, nil
}

func (r *pgStepRepository) Create(ctx context.Context, querier DBTX, step *models.BgStep) error {
	logFields := []zap.Field{zap.Stringer("stepID", step.ID), zap.Stringer("factionID", step.FactionID), zap.Int("order", step.StepOrder)}
	_, err := querier.Exec(ctx, insertStepQuery,
		step.ID, step.FactionID, step.StepOrder, step.ShortName, step.Question,
	)
	if err != nil {
		if isUniqueViolation(err, "unique_bg_step_per_faction") {
			return models.ErrDuplicate
		}
		r.logger.Error("Failed to create step", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create step: %w", err)
	}
	r.logger.Info("Step created", logFields...)
	return nil
}

func (r *pgStepRepository) Update(ctx context.Context, querier DBTX, step *models.BgStep) error {
	tag, err := querier.Exec(ctx,
		`UPDATE bg_steps SET short_name = $1, question = $2 WHERE id = $3`,
		step.ShortName, step.Question, step.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update step", zap.Stringer("stepID", step.ID), zap.Error(err))
		return fmt.Errorf("failed to update step %s: %w", step.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrStepNotFound
	}
	return nil
}

func (r *pgStepRepository) UpdateOrder(ctx context.Context, querier DBTX, id uuid.UUID, order int) error {
	tag, err := querier.Exec(ctx, `UPDATE bg_steps SET step_order = $1 WHERE id = $2`, order, id)
	if err != nil {
		r.logger.Error("Failed to update step order", zap.Stringer("stepID", id), zap.Int("order", order), zap.Error(err))
		return fmt.Errorf("failed to update order of step %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrStepNotFound
	}
	return nil
}

func (r *pgStepRepository) Delete(ctx context.Context, querier DBTX, id uuid.UUID) error {
	tag, err := querier.Exec(ctx, `DELETE FROM bg_steps WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete step", zap.Stringer("stepID", id), zap.Error(err))
		return fmt.Errorf("failed to delete step %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrStepNotFound
	}
	r.logger.Info("Step deleted", zap.Stringer("stepID", id))
	return nil
}
