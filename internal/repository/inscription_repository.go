package repository

import (
	"context"

	"larp-server/internal/models"

	"github.com/google/uuid"
)

// InscriptionRepository manages enrollments of users into opuses and
// the ticket prices attached to each opus.
type InscriptionRepository interface {
	Create(ctx context.Context, querier DBTX, inscription *models.Inscription) error
	GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Inscription, error)
	// ListByUser returns the user's enrollments with larp and opus
	// names joined in, most recent opus first.
	ListByUser(ctx context.Context, querier DBTX, userID uuid.UUID) ([]models.Inscription, error)
	// LatestForUserAndLarp returns the user's most recent enrollment
	// across all opuses of a larp, or models.ErrNotFound.
	LatestForUserAndLarp(ctx context.Context, querier DBTX, userID, larpID uuid.UUID) (*models.Inscription, error)
	Delete(ctx context.Context, querier DBTX, id uuid.UUID) error

	CreateTicket(ctx context.Context, querier DBTX, ticket *models.Ticket) error
	ListTicketsByOpus(ctx context.Context, querier DBTX, opusID uuid.UUID) ([]models.Ticket, error)
}
