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
var _ InscriptionRepository = (*pgInscriptionRepository)(nil)

type pgInscriptionRepository struct {
	logger *zap.Logger
}

// NewPgInscriptionRepository creates a new inscription repository.
func NewPgInscriptionRepository(logger *zap.Logger) InscriptionRepository {
	return &pgInscriptionRepository{
		logger: logger.Named("PgInscriptionRepo"),
	}
}

const insertInscriptionQuery = `
INSERT INTO inscriptions (id, user_id, opus_id, access_type, faction_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const inscriptionSelect = `
SELECT i.id, i.user_id, i.opus_id, i.access_type, i.faction_id, i.created_at,
       o.larp_id, l.name, o.name
FROM inscriptions i
JOIN opuses o ON o.id = i.opus_id
JOIN larps l ON l.id = o.larp_id`

const getInscriptionByIDQuery = inscriptionSelect + `
WHERE i.id = $1`

const listInscriptionsByUserQuery = inscriptionSelect + `
WHERE i.user_id = $1
ORDER BY o.date DESC NULLS LAST, i.created_at DESC`

const latestInscriptionQuery = inscriptionSelect + `
WHERE i.user_id = $1 AND o.larp_id = $2
ORDER BY o.date DESC NULLS LAST, i.created_at DESC
LIMIT 1`

func scanInscription(row pgx.Row, in *models.Inscription) error {
	return row.Scan(
		&in.ID, &in.UserID, &in.OpusID, &in.AccessType, &in.FactionID, &in.CreatedAt,
		&in.LarpID, &in.LarpName, &in.OpusName,
	)
}

func (r *pgInscriptionRepository) Create(ctx context.Context, querier DBTX, inscription *models.Inscription) error {
	logFields := []zap.Field{
		zap.Stringer("inscriptionID", inscription.ID),
		zap.Stringer("userID", inscription.UserID),
		zap.Stringer("opusID", inscription.OpusID),
	}
	_, err := querier.Exec(ctx, insertInscriptionQuery,
		inscription.ID, inscription.UserID, inscription.OpusID,
		inscription.AccessType, inscription.FactionID, inscription.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "unique_inscription") {
			return models.ErrDuplicate
		}
		r.logger.Error("Failed to create inscription", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create inscription: %w", err)
	}
	r.logger.Info("Inscription created", logFields...)
	return nil
}

func (r *pgInscriptionRepository) GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Inscription, error) {
	inscription := &models.Inscription{}
	err := scanInscription(querier.QueryRow(ctx, getInscriptionByIDQuery, id), inscription)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get inscription by ID", zap.Stringer("inscriptionID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get inscription %s: %w", id, err)
	}
	return inscription, nil
}

func (r *pgInscriptionRepository) ListByUser(ctx context.Context, querier DBTX, userID uuid.UUID) ([]models.Inscription, error) {
	rows, err := querier.Query(ctx, listInscriptionsByUserQuery, userID)
	if err != nil {
		r.logger.Error("Failed to list inscriptions", zap.Stringer("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list inscriptions of user %s: %w", userID, err)
	}
	defer rows.Close()

	var inscriptions []models.Inscription
	for rows.Next() {
		var in models.Inscription
		if err := scanInscription(rows, &in); err != nil {
			return nil, fmt.Errorf("failed to scan inscription row: %w", err)
		}
		inscriptions = append(inscriptions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inscription rows: %w", err)
	}
	return inscriptions, nil
}

func (r *pgInscriptionRepository) LatestForUserAndLarp(ctx context.Context, querier DBTX, userID, larpID uuid.UUID) (*models.Inscription, error) {
	inscription := &models.Inscription{}
	err := scanInscription(querier.QueryRow(ctx, latestInscriptionQuery, userID, larpID), inscription)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get latest inscription",
			zap.Stringer("userID", userID), zap.Stringer("larpID", larpID), zap.Error(err))
		return nil, fmt.Errorf("failed to get latest inscription of user %s: %w", userID, err)
	}
	return inscription, nil
}

func (r *pgInscriptionRepository) Delete(ctx context.Context, querier DBTX, id uuid.UUID) error {
	tag, err := querier.Exec(ctx, `DELETE FROM inscriptions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete inscription", zap.Stringer("inscriptionID", id), zap.Error(err))
		return fmt.Errorf("failed to delete inscription %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgInscriptionRepository) CreateTicket(ctx context.Context, querier DBTX, ticket *models.Ticket) error {
	_, err := querier.Exec(ctx,
		`INSERT INTO tickets (id, opus_id, price, access_type) VALUES ($1, $2, $3, $4)`,
		ticket.ID, ticket.OpusID, ticket.Price, ticket.AccessType,
	)
	if err != nil {
		r.logger.Error("Failed to create ticket", zap.Stringer("opusID", ticket.OpusID), zap.Error(err))
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

func (r *pgInscriptionRepository) ListTicketsByOpus(ctx context.Context, querier DBTX, opusID uuid.UUID) ([]models.Ticket, error) {
	rows, err := querier.Query(ctx,
		`SELECT id, opus_id, price, access_type FROM tickets WHERE opus_id = $1 ORDER BY price ASC`, opusID)
	if err != nil {
		r.logger.Error("Failed to list tickets", zap.Stringer("opusID", opusID), zap.Error(err))
		return nil, fmt.Errorf("failed to list tickets of opus %s: %w", opusID, err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.OpusID, &t.Price, &t.AccessType); err != nil {
			return nil, fmt.Errorf("failed to scan ticket row: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ticket rows: %w", err)
	}
	return tickets, nil
}
