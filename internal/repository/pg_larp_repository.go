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
var _ LarpRepository = (*pgLarpRepository)(nil)

type pgLarpRepository struct {
	logger *zap.Logger
}

// NewPgLarpRepository creates a new larp repository.
func NewPgLarpRepository(logger *zap.Logger) LarpRepository {
	return &pgLarpRepository{
		logger: logger.Named("PgLarpRepo"),
	}
}

const insertLarpQuery = `
INSERT INTO larps (id, name, description, factions_name, pnjv_orga_contact, sheet_creation_opened, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const getLarpByIDQuery = `
SELECT id, name, description, factions_name, pnjv_orga_contact, sheet_creation_opened, created_at, updated_at
FROM larps
WHERE id = $1`

const listLarpsQuery = `
SELECT id, name, description, factions_name, pnjv_orga_contact, sheet_creation_opened, created_at, updated_at
FROM larps
ORDER BY name ASC`

const updateLarpQuery = `
UPDATE larps SET
    name = $1, description = $2, factions_name = $3, pnjv_orga_contact = $4, sheet_creation_opened = $5, updated_at = $6
WHERE id = $7`

func (r *pgLarpRepository) CreateLarp(ctx context.Context, querier DBTX, larp *models.Larp) error {
	logFields := []zap.Field{zap.Stringer("larpID", larp.ID), zap.String("name", larp.Name)}
	_, err := querier.Exec(ctx, insertLarpQuery,
		larp.ID, larp.Name, larp.Description, larp.FactionsName,
		larp.PnjvOrgaContact, larp.SheetCreationOpened, larp.CreatedAt, larp.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "larps_name_key") {
			return models.ErrDuplicate
		}
		r.logger.Error("Failed to create larp", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create larp: %w", err)
	}
	r.logger.Info("Larp created", logFields...)
	return nil
}

func (r *pgLarpRepository) GetLarpByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Larp, error) {
	larp := &models.Larp{}
	err := querier.QueryRow(ctx, getLarpByIDQuery, id).Scan(
		&larp.ID, &larp.Name, &larp.Description, &larp.FactionsName,
		&larp.PnjvOrgaContact, &larp.SheetCreationOpened, &larp.CreatedAt, &larp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get larp by ID", zap.Stringer("larpID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get larp %s: %w", id, err)
	}
	return larp, nil
}

func (r *pgLarpRepository) ListLarps(ctx context.Context, querier DBTX) ([]models.Larp, error) {
	rows, err := querier.Query(ctx, listLarpsQuery)
	if err != nil {
		r.logger.Error("Failed to list larps", zap.Error(err))
		return nil, fmt.Errorf("failed to list larps: %w", err)
	}
	defer rows.Close()

	var larps []models.Larp
	for rows.Next() {
		var l models.Larp
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Description, &l.FactionsName,
			&l.PnjvOrgaContact, &l.SheetCreationOpened, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan larp row: %w", err)
		}
		larps = append(larps, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate larp rows: %w", err)
	}
	return larps, nil
}

func (r *pgLarpRepository) UpdateLarp(ctx context.Context, querier DBTX, larp *models.Larp) error {
	tag, err := querier.Exec(ctx, updateLarpQuery,
		larp.Name, larp.Description, larp.FactionsName,
		larp.PnjvOrgaContact, larp.SheetCreationOpened, time.Now(), larp.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update larp", zap.Stringer("larpID", larp.ID), zap.Error(err))
		return fmt.Errorf("failed to update larp %s: %w", larp.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgLarpRepository) IsOrganizer(ctx context.Context, querier DBTX, larpID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := querier.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM larp_organizers WHERE larp_id = $1 AND user_id = $2)`,
		larpID, userID).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check organizer membership",
			zap.Stringer("larpID", larpID), zap.Stringer("userID", userID), zap.Error(err))
		return false, fmt.Errorf("failed to check organizer membership: %w", err)
	}
	return exists, nil
}

func (r *pgLarpRepository) AddOrganizer(ctx context.Context, querier DBTX, larpID, userID uuid.UUID) error {
	_, err := querier.Exec(ctx,
		`INSERT INTO larp_organizers (larp_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		larpID, userID)
	if err != nil {
		r.logger.Error("Failed to add organizer",
			zap.Stringer("larpID", larpID), zap.Stringer("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to add organizer: %w", err)
	}
	return nil
}

func (r *pgLarpRepository) CreateOpus(ctx context.Context, querier DBTX, opus *models.Opus) error {
	_, err := querier.Exec(ctx,
		`INSERT INTO opuses (id, larp_id, name, date, description, location, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		opus.ID, opus.LarpID, opus.Name, opus.Date, opus.Description, opus.Location, opus.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "opuses_name_key") {
			return models.ErrDuplicate
		}
		r.logger.Error("Failed to create opus", zap.Stringer("opusID", opus.ID), zap.Error(err))
		return fmt.Errorf("failed to create opus: %w", err)
	}
	r.logger.Info("Opus created", zap.Stringer("opusID", opus.ID), zap.String("name", opus.Name))
	return nil
}

func (r *pgLarpRepository) GetOpusByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Opus, error) {
	opus := &models.Opus{}
	err := querier.QueryRow(ctx,
		`SELECT id, larp_id, name, date, description, location, created_at FROM opuses WHERE id = $1`, id).Scan(
		&opus.ID, &opus.LarpID, &opus.Name, &opus.Date, &opus.Description, &opus.Location, &opus.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get opus by ID", zap.Stringer("opusID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get opus %s: %w", id, err)
	}
	return opus, nil
}

func (r *pgLarpRepository) ListOpusesByLarp(ctx context.Context, querier DBTX, larpID uuid.UUID) ([]models.Opus, error) {
	rows, err := querier.Query(ctx,
		`SELECT id, larp_id, name, date, description, location, created_at FROM opuses WHERE larp_id = $1 ORDER BY date ASC NULLS LAST`,
		larpID)
	if err != nil {
		r.logger.Error("Failed to list opuses", zap.Stringer("larpID", larpID), zap.Error(err))
		return nil, fmt.Errorf("failed to list opuses of larp %s: %w", larpID, err)
	}
	defer rows.Close()

	var opuses []models.Opus
	for rows.Next() {
		var o models.Opus
		if err := rows.Scan(&o.ID, &o.LarpID, &o.Name, &o.Date, &o.Description, &o.Location, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan opus row: %w", err)
		}
		opuses = append(opuses, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate opus rows: %w", err)
	}
	return opuses, nil
}

func (r *pgLarpRepository) CreateFaction(ctx context.Context, querier DBTX, faction *models.Faction) error {
	_, err := querier.Exec(ctx,
		`INSERT INTO factions (id, larp_id, name, orga_user_id, orga_contact) VALUES ($1, $2, $3, $4, $5)`,
		faction.ID, faction.LarpID, faction.Name, faction.OrgaUserID, faction.OrgaContact,
	)
	if err != nil {
		if isUniqueViolation(err, "factions_name_key") {
			return models.ErrDuplicate
		}
		r.logger.Error("Failed to create faction", zap.Stringer("factionID", faction.ID), zap.Error(err))
		return fmt.Errorf("failed to create faction: %w", err)
	}
	r.logger.Info("Faction created", zap.Stringer("factionID", faction.ID), zap.String("name", faction.Name))
	return nil
}

func (r *pgLarpRepository) GetFactionByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Faction, error) {
	faction := &models.Faction{}
	err := querier.QueryRow(ctx,
		`SELECT id, larp_id, name, orga_user_id, orga_contact FROM factions WHERE id = $1`, id).Scan(
		&faction.ID, &faction.LarpID, &faction.Name, &faction.OrgaUserID, &faction.OrgaContact,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get faction by ID", zap.Stringer("factionID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get faction %s: %w", id, err)
	}
	return faction, nil
}

func (r *pgLarpRepository) ListFactionsByLarp(ctx context.Context, querier DBTX, larpID uuid.UUID) ([]models.Faction, error) {
	rows, err := querier.Query(ctx,
		`SELECT id, larp_id, name, orga_user_id, orga_contact FROM factions WHERE larp_id = $1 ORDER BY name ASC`,
		larpID)
	if err != nil {
		r.logger.Error("Failed to list factions", zap.Stringer("larpID", larpID), zap.Error(err))
		return nil, fmt.Errorf("failed to list factions of larp %s: %w", larpID, err)
	}
	defer rows.Close()

	var factions []models.Faction
	for rows.Next() {
		var f models.Faction
		if err := rows.Scan(&f.ID, &f.LarpID, &f.Name, &f.OrgaUserID, &f.OrgaContact); err != nil {
			return nil, fmt.Errorf("failed to scan faction row: %w", err)
		}
		factions = append(factions, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate faction rows: %w", err)
	}
	return factions, nil
}
