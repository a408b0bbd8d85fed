package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"larp-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check
var _ CharacterRepository = (*pgCharacterRepository)(nil)

type pgCharacterRepository struct {
	logger *zap.Logger
}

// NewPgCharacterRepository creates a new character repository.
func NewPgCharacterRepository(logger *zap.Logger) CharacterRepository {
	return &pgCharacterRepository{
		logger: logger.Named("PgCharacterRepo"),
	}
}

const characterColumns = `id, user_id, larp_id, faction_id, name, skills, last_learned, emotions, objectives, bg_completed, status, created_at, updated_at`

const insertCharacterQuery = `
INSERT INTO characters
    (id, user_id, larp_id, faction_id, name, skills, last_learned, emotions, objectives, bg_completed, status, created_at, updated_at)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

func scanCharacter(row pgx.Row, c *models.Character) error {
	return row.Scan(
		&c.ID, &c.UserID, &c.LarpID, &c.FactionID, &c.Name, &c.Skills, &c.LastLearned,
		&c.Emotions, &c.Objectives, &c.BgCompleted, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *pgCharacterRepository) Create(ctx context.Context, querier DBTX, character *models.Character) error {
	logFields := []zap.Field{zap.Stringer("characterID", character.ID), zap.Stringer("userID", character.UserID)}
	_, err := querier.Exec(ctx, insertCharacterQuery,
		character.ID, character.UserID, character.LarpID, character.FactionID,
		character.Name, character.Skills, character.LastLearned, character.Emotions,
		character.Objectives, character.BgCompleted, character.Status,
		character.CreatedAt, character.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create character", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create character: %w", err)
	}
	r.logger.Info("Character created", logFields...)
	return nil
}

func (r *pgCharacterRepository) GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Character, error) {
	character := &models.Character{}
	err := scanCharacter(querier.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = $1`, id), character)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get character by ID", zap.Stringer("characterID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get character %s: %w", id, err)
	}
	return character, nil
}

func (r *pgCharacterRepository) listCharacters(ctx context.Context, querier DBTX, query string, arg any) ([]models.Character, error) {
	rows, err := querier.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var characters []models.Character
	for rows.Next() {
		var c models.Character
		if err := scanCharacter(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan character row: %w", err)
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate character rows: %w", err)
	}
	return characters, nil
}

func (r *pgCharacterRepository) ListByUser(ctx context.Context, querier DBTX, userID uuid.UUID) ([]models.Character, error) {
	characters, err := r.listCharacters(ctx, querier,
		`SELECT `+characterColumns+` FROM characters WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		r.logger.Error("Failed to list characters by user", zap.Stringer("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list characters of user %s: %w", userID, err)
	}
	return characters, nil
}

func (r *pgCharacterRepository) ListByLarp(ctx context.Context, querier DBTX, larpID uuid.UUID) ([]models.Character, error) {
	characters, err := r.listCharacters(ctx, querier,
		`SELECT `+characterColumns+` FROM characters WHERE larp_id = $1 ORDER BY name ASC`, larpID)
	if err != nil {
		r.logger.Error("Failed to list characters by larp", zap.Stringer("larpID", larpID), zap.Error(err))
		return nil, fmt.Errorf("failed to list characters of larp %s: %w", larpID, err)
	}
	return characters, nil
}

func (r *pgCharacterRepository) CountByUserAndLarp(ctx context.Context, querier DBTX, userID, larpID uuid.UUID) (int, error) {
	var count int
	err := querier.QueryRow(ctx,
		`SELECT COUNT(*) FROM characters WHERE user_id = $1 AND larp_id = $2`, userID, larpID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count characters", zap.Stringer("userID", userID), zap.Error(err))
		return 0, fmt.Errorf("failed to count characters of user %s: %w", userID, err)
	}
	return count, nil
}

func (r *pgCharacterRepository) Update(ctx context.Context, querier DBTX, character *models.Character) error {
	tag, err := querier.Exec(ctx, `
        UPDATE characters SET
            name = $1, skills = $2, last_learned = $3, emotions = $4, objectives = $5, updated_at = $6
        WHERE id = $7`,
		character.Name, character.Skills, character.LastLearned, character.Emotions,
		character.Objectives, time.Now(), character.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update character", zap.Stringer("characterID", character.ID), zap.Error(err))
		return fmt.Errorf("failed to update character %s: %w", character.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgCharacterRepository) UpdateStatus(ctx context.Context, querier DBTX, id uuid.UUID, status models.SheetStatus) error {
	tag, err := querier.Exec(ctx,
		`UPDATE characters SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update character status", zap.Stringer("characterID", id), zap.Error(err))
		return fmt.Errorf("failed to update status of character %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgCharacterRepository) SetBackgroundCompleted(ctx context.Context, querier DBTX, id uuid.UUID, completed bool) error {
	tag, err := querier.Exec(ctx,
		`UPDATE characters SET bg_completed = $1, updated_at = $2 WHERE id = $3`, completed, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to set background completion", zap.Stringer("characterID", id), zap.Error(err))
		return fmt.Errorf("failed to set background completion of character %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("Background completion updated", zap.Stringer("characterID", id), zap.Bool("completed", completed))
	return nil
}

func (r *pgCharacterRepository) Delete(ctx context.Context, querier DBTX, id uuid.UUID) error {
	tag, err := querier.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete character", zap.Stringer("characterID", id), zap.Error(err))
		return fmt.Errorf("failed to delete character %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgCharacterRepository) AddDocument(ctx context.Context, querier DBTX, doc *models.CharacterDocument) error {
	_, err := querier.Exec(ctx,
		`INSERT INTO character_documents (id, character_id, name, document_url) VALUES ($1, $2, $3, $4)`,
		doc.ID, doc.CharacterID, doc.Name, doc.DocumentURL,
	)
	if err != nil {
		r.logger.Error("Failed to add document", zap.Stringer("characterID", doc.CharacterID), zap.Error(err))
		return fmt.Errorf("failed to add document: %w", err)
	}
	return nil
}

func (r *pgCharacterRepository) ListDocuments(ctx context.Context, querier DBTX, characterID uuid.UUID) ([]models.CharacterDocument, error) {
	rows, err := querier.Query(ctx,
		`SELECT id, character_id, name, document_url FROM character_documents WHERE character_id = $1 ORDER BY name ASC`,
		characterID)
	if err != nil {
		r.logger.Error("Failed to list documents", zap.Stringer("characterID", characterID), zap.Error(err))
		return nil, fmt.Errorf("failed to list documents of character %s: %w", characterID, err)
	}
	defer rows.Close()

	var docs []models.CharacterDocument
	for rows.Next() {
		var d models.CharacterDocument
		if err := rows.Scan(&d.ID, &d.CharacterID, &d.Name, &d.DocumentURL); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}
	return docs, nil
}

func (r *pgCharacterRepository) DeleteDocument(ctx context.Context, querier DBTX, id uuid.UUID) error {
	tag, err := querier.Exec(ctx, `DELETE FROM character_documents WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete document", zap.Stringer("documentID", id), zap.Error(err))
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
