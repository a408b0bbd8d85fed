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
var _ ChoiceRepository = (*pgChoiceRepository)(nil)

type pgChoiceRepository struct {
	logger *zap.Logger
}

// NewPgChoiceRepository creates a new choice repository.
func NewPgChoiceRepository(logger *zap.Logger) ChoiceRepository {
	return &pgChoiceRepository{
		logger: logger.Named("PgChoiceRepo"),
	}
}

const listChoicesByStepQuery = `
SELECT id, step_id, short_name, text, fillable_by_player, prerequisite_id
FROM bg_choices
WHERE step_id = $1`

const getChoiceByIDQuery = `
SELECT id, step_id, short_name, text, fillable_by_player, prerequisite_id
FROM bg_choices
WHERE id = $1`

const insertChoiceQuery = `
INSERT INTO bg_choices (id, step_id, short_name, text, fillable_by_player, prerequisite_id)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *pgChoiceRepository) ListByStep(ctx context.Context, querier DBTX, stepID uuid.UUID) ([]models.BgChoice, error) {
	rows, err := querier.Query(ctx, listChoicesByStepQuery, stepID)
	if err != nil {
		r.logger.Error("Failed to list choices", zap.Stringer("stepID", stepID), zap.Error(err))
		return nil, fmt.Errorf("failed to list choices for step %s: %w", stepID, err)
	}
	defer rows.Close()

	var choices []models.BgChoice
	for rows.Next() {
		var c models.BgChoice
		if err := rows.Scan(&c.ID, &c.StepID, &c.ShortName, &c.Text, &c.FillableByPlayer, &c.PrerequisiteID); err != nil {
			return nil, fmt.Errorf("failed to scan choice row: %w", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate choice rows: %w", err)
	}
	return choices, nil
}

func (r *pgChoiceRepository) GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.BgChoice, error) {
	choice := &models.BgChoice{}
	err := querier.QueryRow(ctx, getChoiceByIDQuery, id).Scan(
		&choice.ID, &choice.StepID, &choice.ShortName, &choice.Text, &choice.FillableByPlayer, &choice.PrerequisiteID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrChoiceNotFound
		}
		r.logger.Error("Failed to get choice by ID", zap.Stringer("choiceID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get choice %s: %w", id, err)
	}
	return choice, nil
}

func (r *pgChoiceRepository) Create(ctx context.Context, querier DBTX, choice *models.BgChoice) error {
	logFields := []zap.Field{zap.Stringer("choiceID", choice.ID), zap.Stringer("stepID", choice.StepID), zap.String("shortName", choice.ShortName)}
	_, err := querier.Exec(ctx, insertChoiceQuery,
		choice.ID, choice.StepID, choice.ShortName, choice.Text, choice.FillableByPlayer, choice.PrerequisiteID,
	)
	if err != nil {
		if isUniqueViolation(err, "unique_choice_per_step") {
			return models.ErrDuplicate
		}
		r.logger.Error("Failed to create choice", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create choice: %w", err)
	}
	r.logger.Info("Choice created", logFields...)
	return nil
}

func (r *pgChoiceRepository) Update(ctx context.Context, querier DBTX, choice *models.BgChoice) error {
	tag, err := querier.Exec(ctx,
		`UPDATE bg_choices SET short_name = $1, text = $2, fillable_by_player = $3 WHERE id = $4`,
		choice.ShortName, choice.Text, choice.FillableByPlayer, choice.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "unique_choice_per_step") {
			return models.ErrDuplicate
		}
		r.logger.Error("Failed to update choice", zap.Stringer("choiceID", choice.ID), zap.Error(err))
		return fmt.Errorf("failed to update choice %s: %w", choice.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrChoiceNotFound
	}
	return nil
}

func (r *pgChoiceRepository) SetPrerequisite(ctx context.Context, querier DBTX, choiceID uuid.UUID, prerequisiteID *uuid.UUID) error {
	tag, err := querier.Exec(ctx,
		`UPDATE bg_choices SET prerequisite_id = $1 WHERE id = $2`,
		prerequisiteID, choiceID,
	)
	if err != nil {
		r.logger.Error("Failed to set prerequisite", zap.Stringer("choiceID", choiceID), zap.Error(err))
		return fmt.Errorf("failed to set prerequisite of choice %s: %w", choiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrChoiceNotFound
	}
	return nil
}

func (r *pgChoiceRepository) Delete(ctx context.Context, querier DBTX, id uuid.UUID) error {
	tag, err := querier.Exec(ctx, `DELETE FROM bg_choices WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete choice", zap.Stringer("choiceID", id), zap.Error(err))
		return fmt.Errorf("failed to delete choice %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrChoiceNotFound
	}
	r.logger.Info("Choice deleted", zap.Stringer("choiceID", id))
	return nil
}
