package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// FacilityRepository implements usecase.FacilityRepository.
type FacilityRepository struct {
	pool *pgxpool.Pool
}

// NewFacilityRepository creates a new FacilityRepository.
func NewFacilityRepository(pool *pgxpool.Pool) *FacilityRepository {
	return &FacilityRepository{pool: pool}
}

const insertFacility = `
INSERT INTO facilities (id, name, position_name, position_holder_name, sort_order, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const selectFacility = `
SELECT id, name, position_name, position_holder_name, sort_order, is_active, created_at, updated_at
FROM facilities`

// Create inserts a new facility.
func (r *FacilityRepository) Create(ctx context.Context, facility *domain.Facility) error {
	_, err := r.pool.Exec(ctx, insertFacility, facilityArgs(facility)...)

	return err
}

// CreateTx inserts a new facility within a transaction.
func (r *FacilityRepository) CreateTx(ctx context.Context, tx usecase.Transaction, facility *domain.Facility) error {
	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, insertFacility, facilityArgs(facility)...)

	return err
}

// GetByID retrieves a facility by ID.
func (r *FacilityRepository) GetByID(ctx context.Context, id string) (*domain.Facility, error) {
	row := r.pool.QueryRow(ctx, selectFacility+` WHERE id = $1`, id)

	facility, err := scanFacility(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFacilityNotFound
		}

		return nil, err
	}

	return facility, nil
}

// GetByName retrieves a facility by name.
func (r *FacilityRepository) GetByName(ctx context.Context, tx usecase.Transaction, name string) (*domain.Facility, error) {
	query := selectFacility + ` WHERE name = $1`

	var row pgx.Row
	if tx != nil {
		row = tx.(*Tx).PgxTx().QueryRow(ctx, query, name)
	} else {
		row = r.pool.QueryRow(ctx, query, name)
	}

	facility, err := scanFacility(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFacilityNotFound
		}

		return nil, err
	}

	return facility, nil
}

// Update updates facility master data.
func (r *FacilityRepository) Update(ctx context.Context, facility *domain.Facility) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE facilities
SET name = $2, position_name = $3, position_holder_name = $4, sort_order = $5, is_active = $6, updated_at = $7
WHERE id = $1`,
		facility.ID,
		facility.Name,
		facility.PositionName,
		facility.PositionHolderName,
		facility.SortOrder,
		facility.IsActive,
		timeToPgTimestamptz(facility.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFacilityNotFound
	}

	return nil
}

// List lists facilities in sort order.
func (r *FacilityRepository) List(ctx context.Context, includeInactive bool) ([]*domain.Facility, error) {
	query := selectFacility
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facilities []*domain.Facility
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		facilities = append(facilities, facility)
	}

	return facilities, rows.Err()
}

func facilityArgs(facility *domain.Facility) []any {
	return []any{
		facility.ID,
		facility.Name,
		facility.PositionName,
		facility.PositionHolderName,
		facility.SortOrder,
		facility.IsActive,
		timeToPgTimestamptz(facility.CreatedAt),
		timeToPgTimestamptz(facility.UpdatedAt),
	}
}

func scanFacility(row pgx.Row) (*domain.Facility, error) {
	var (
		facility  domain.Facility
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&facility.ID,
		&facility.Name,
		&facility.PositionName,
		&facility.PositionHolderName,
		&facility.SortOrder,
		&facility.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	facility.CreatedAt = createdAt.Time
	facility.UpdatedAt = updatedAt.Time

	return &facility, nil
}
