package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openfmis/ipsas_ledger/internal/apperrors"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	portsrepo "github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
	"github.com/openfmis/ipsas_ledger/internal/models"
	"github.com/openfmis/ipsas_ledger/internal/utils/mapping"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

const entityColumns = `entity_id, entity_code, entity_name, entity_type, parent_entity_id, fiscal_year_end, currency_code, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

var entitySortColumns = map[string]string{
	"createdAt":  "created_at",
	"entityCode": "entity_code",
	"entityName": "entity_name",
}

type PgxEntityRepository struct {
	pool *pgxpool.Pool
}

// newPgxEntityRepository creates a new repository for entity data.
func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityRepositoryFacade {
	return &PgxEntityRepository{pool: pool}
}

var _ portsrepo.EntityRepositoryFacade = (*PgxEntityRepository)(nil)

func scanEntity(row rowScanner) (models.Entity, error) {
	var m models.Entity
	var parentID sql.NullString
	err := row.Scan(
		&m.EntityID,
		&m.EntityCode,
		&m.EntityName,
		&m.EntityType,
		&parentID,
		&m.FiscalYearEnd,
		&m.CurrencyCode,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Entity{}, err
	}
	if parentID.Valid {
		m.ParentEntityID = parentID.String
	}
	return m, nil
}

// SaveEntity inserts a new entity.
func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	m := mapping.ToModelEntity(entity)

	query := `
		INSERT INTO entities (` + entityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		m.EntityID,
		m.EntityCode,
		m.EntityName,
		m.EntityType,
		nullableString(m.ParentEntityID),
		m.FiscalYearEnd,
		m.CurrencyCode,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: entity code %s", apperrors.ErrDuplicate, m.EntityCode)
		}
		return fmt.Errorf("failed to save entity %s: %w", m.EntityID, err)
	}
	return nil
}

// FindEntityByID retrieves an entity by its ID.
func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE entity_id = $1;`

	m, err := scanEntity(r.pool.QueryRow(ctx, query, entityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entity by ID %s: %w", entityID, err)
	}
	d := mapping.ToDomainEntity(m)
	return &d, nil
}

// ListEntities retrieves a page of entities plus the total row count.
func (r *PgxEntityRepository) ListEntities(ctx context.Context, params pagination.Params) ([]domain.Entity, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM entities;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count entities: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+entityColumns+` FROM entities ORDER BY %s %s LIMIT $1 OFFSET $2;`,
		sortColumn(entitySortColumns, params.SortBy), params.SortOrder)

	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	ms := []models.Entity{}
	for rows.Next() {
		m, err := scanEntity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan entity row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating entity rows: %w", err)
	}

	return mapping.ToDomainEntitySlice(ms), total, nil
}

// UpdateEntity updates an existing entity's mutable details.
func (r *PgxEntityRepository) UpdateEntity(ctx context.Context, entity domain.Entity) error {
	m := mapping.ToModelEntity(entity)

	query := `
		UPDATE entities
		SET entity_name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entity_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.EntityID,
		m.EntityName,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entity %s: %w", m.EntityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateEntity marks an entity as inactive.
func (r *PgxEntityRepository) DeactivateEntity(ctx context.Context, entityID string, userID string, now time.Time) error {
	query := `
		UPDATE entities
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE entity_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, entityID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate entity %s: %w", entityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
