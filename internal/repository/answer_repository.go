package repository

import (
	"context"

	"larp-server/internal/models"

	"github.com/google/uuid"
)

// AnswerRepository is the ledger of recorded background answers.
type AnswerRepository interface {
	// ListByCharacter returns the character's answers ordered by step_order,
	// joined with their choice and step. Answers whose choice no longer
	// exists come back with Orphaned set instead of failing the listing.
	ListByCharacter(ctx context.Context, querier DBTX, characterID uuid.UUID) ([]models.BgAnswer, error)

	// GetByID returns one answer with its joined choice, Orphaned set when
	// the choice is gone, or models.ErrNotFound.
	GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.BgAnswer, error)

	// AnsweredChoiceIDs returns the ids of every choice the character has
	// recorded, the eligibility set for prerequisite filtering.
	AnsweredChoiceIDs(ctx context.Context, querier DBTX, characterID uuid.UUID) ([]uuid.UUID, error)

	// MaxAnsweredOrder returns the highest step_order the character has
	// answered, or 0 when no answer exists.
	MaxAnsweredOrder(ctx context.Context, querier DBTX, characterID uuid.UUID) (int, error)

	// Upsert inserts the answer or, when one already exists for
	// (character, step_order), overwrites its choice and player text.
	// Atomic: concurrent submissions for the same step never duplicate.
	Upsert(ctx context.Context, querier DBTX, answer *models.BgAnswer) error

	// UpdateText replaces the free text of a recorded answer.
	UpdateText(ctx context.Context, querier DBTX, id uuid.UUID, playerText string) error
}
