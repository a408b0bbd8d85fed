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
var _ AnswerRepository = (*pgAnswerRepository)(nil)

type pgAnswerRepository struct {
	logger *zap.Logger
}

// NewPgAnswerRepository creates a new answer repository.
func NewPgAnswerRepository(logger *zap.Logger) AnswerRepository {
	return &pgAnswerRepository{
		logger: logger.Named("PgAnswerRepo"),
	}
}

// Choices are LEFT JOINed: a deleted choice leaves the answer row in place
// and the NULL join marks it orphaned.
const listAnswersByCharacterQuery = `
SELECT a.id, a.character_id, a.choice_id, a.step_order, a.player_text,
       c.short_name, c.text, s.short_name
FROM character_bg_answers a
LEFT JOIN bg_choices c ON c.id = a.choice_id
LEFT JOIN bg_steps s ON s.id = c.step_id
WHERE a.character_id = $1
ORDER BY a.step_order ASC`

const getAnswerByIDQuery = `
SELECT a.id, a.character_id, a.choice_id, a.step_order, a.player_text,
       c.short_name, c.text, s.short_name
FROM character_bg_answers a
LEFT JOIN bg_choices c ON c.id = a.choice_id
LEFT JOIN bg_steps s ON s.id = c.step_id
WHERE a.id = $1`

const upsertAnswerQuery = `
INSERT INTO character_bg_answers (id, character_id, choice_id, step_order, player_text)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (character_id, step_order) DO UPDATE SET
    choice_id = EXCLUDED.choice_id,
    player_text = EXCLUDED.player_text`

func scanAnswer(row pgx.Row, a *models.BgAnswer) error {
	var choiceShortName, choiceText, stepShortName *string
	if err := row.Scan(
		&a.ID, &a.CharacterID, &a.ChoiceID, &a.StepOrder, &a.PlayerText,
		&choiceShortName, &choiceText, &stepShortName,
	); err != nil {
		return err
	}
	if choiceShortName == nil {
		a.Orphaned = true
		return nil
	}
	a.ChoiceShortName = *choiceShortName
	if choiceText != nil {
		a.ChoiceText = *choiceText
	}
	if stepShortName != nil {
		a.StepShortName = *stepShortName
	}
	return nil
}

func (r *pgAnswerRepository) ListByCharacter(ctx context.Context, querier DBTX, characterID uuid.UUID) ([]models.BgAnswer, error) {
	rows, err := querier.Query(ctx, listAnswersByCharacterQuery, characterID)
	if err != nil {
		r.logger.Error("Failed to list answers", zap.Stringer("characterID", characterID), zap.Error(err))
		return nil, fmt.Errorf("failed to list answers for character %s: %w", characterID, err)
	}
	defer rows.Close()

	var answers []models.BgAnswer
	for rows.Next() {
		var a models.BgAnswer
		if err := scanAnswer(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan answer row: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate answer rows: %w", err)
	}
	return answers, nil
}

func (r *pgAnswerRepository) GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.BgAnswer, error) {
	answer := &models.BgAnswer{}
	err := scanAnswer(querier.QueryRow(ctx, getAnswerByIDQuery, id), answer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get answer by ID", zap.Stringer("answerID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get answer %s: %w", id, err)
	}
	return answer, nil
}

func (r *pgAnswerRepository) AnsweredChoiceIDs(ctx context.Context, querier DBTX, characterID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := querier.Query(ctx,
		`SELECT choice_id FROM character_bg_answers WHERE character_id = $1`, characterID)
	if err != nil {
		r.logger.Error("Failed to get answered choice ids", zap.Stringer("characterID", characterID), zap.Error(err))
		return nil, fmt.Errorf("failed to get answered choice ids for character %s: %w", characterID, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan choice id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate choice id rows: %w", err)
	}
	return ids, nil
}

func (r *pgAnswerRepository) MaxAnsweredOrder(ctx context.Context, querier DBTX, characterID uuid.UUID) (int, error) {
	var max int
	err := querier.QueryRow(ctx,
		`SELECT COALESCE(MAX(step_order), 0) FROM character_bg_answers WHERE character_id = $1`, characterID).Scan(&max)
	if err != nil {
		r.logger.Error("Failed to get max answered order", zap.Stringer("characterID", characterID), zap.Error(err))
		return 0, fmt.Errorf("failed to get max answered order for character %s: %w", characterID, err)
	}
	return max, nil
}

func (r *pgAnswerRepository) Upsert(ctx context.Context, querier DBTX, answer *models.BgAnswer) error {
	logFields := []zap.Field{
		zap.Stringer("characterID", answer.CharacterID),
		zap.Int("stepOrder", answer.StepOrder),
		zap.Stringer("choiceID", answer.ChoiceID),
	}
	_, err := querier.Exec(ctx, upsertAnswerQuery,
		answer.ID, answer.CharacterID, answer.ChoiceID, answer.StepOrder, answer.PlayerText,
	)
	if err != nil {
		r.logger.Error("Failed to upsert answer", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to upsert answer: %w", err)
	}
	r.logger.Debug("Answer upserted", logFields...)
	return nil
}

func (r *pgAnswerRepository) UpdateText(ctx context.Context, querier DBTX, id uuid.UUID, playerText string) error {
	tag, err := querier.Exec(ctx,
		`UPDATE character_bg_answers SET player_text = $1 WHERE id = $2`, playerText, id)
	if err != nil {
		r.logger.Error("Failed to update answer text", zap.Stringer("answerID", id), zap.Error(err))
		return fmt.Errorf("failed to update text of answer %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
