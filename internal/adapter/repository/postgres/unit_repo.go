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

// UnitRepository implements usecase.UnitRepository.
type UnitRepository struct {
	pool *pgxpool.Pool
}

// NewUnitRepository creates a new UnitRepository.
func NewUnitRepository(pool *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{pool: pool}
}

const insertUnit = `
INSERT INTO units (id, facility_id, name, sort_order, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const selectUnit = `
SELECT id, facility_id, name, sort_order, is_active, created_at, updated_at
FROM units`

// Create inserts a new unit.
func (r *UnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	_, err := r.pool.Exec(ctx, insertUnit, unitArgs(unit)...)

	return err
}

// CreateTx inserts a new unit within a transaction.
func (r *UnitRepository) CreateTx(ctx context.Context, tx usecase.Transaction, unit *domain.Unit) error {
	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, insertUnit, unitArgs(unit)...)

	return err
}

// GetByID retrieves a unit by ID.
func (r *UnitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	row := r.pool.QueryRow(ctx, selectUnit+` WHERE id = $1`, id)

	unit, err := scanUnit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnitNotFound
		}

		return nil, err
	}

	return unit, nil
}

// GetByName retrieves a unit by facility and name.
func (r *UnitRepository) GetByName(ctx context.Context, tx usecase.Transaction, facilityID, name string) (*domain.Unit, error) {
	query := selectUnit + ` WHERE facility_id = $1 AND name = $2`

	var row pgx.Row
	if tx != nil {
		row = tx.(*Tx).PgxTx().QueryRow(ctx, query, facilityID, name)
	} else {
		row = r.pool.QueryRow(ctx, query, facilityID, name)
	}

	unit, err := scanUnit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnitNotFound
		}

		return nil, err
	}

	return unit, nil
}

// ListByFacility lists a facility's units in sort order.
func (r *UnitRepository) ListByFacility(ctx context.Context, facilityID string) ([]*domain.Unit, error) {
	rows, err := r.pool.Query(ctx, selectUnit+` WHERE facility_id = $1 ORDER BY sort_order, name`, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*domain.Unit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	return units, rows.Err()
}

func unitArgs(unit *domain.Unit) []any {
	return []any{
		unit.ID,
		unit.FacilityID,
		unit.Name,
		unit.SortOrder,
		unit.IsActive,
		timeToPgTimestamptz(unit.CreatedAt),
		timeToPgTimestamptz(unit.UpdatedAt),
	}
}

func scanUnit(row pgx.Row) (*domain.Unit, error) {
	var (
		unit      domain.Unit
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&unit.ID,
		&unit.FacilityID,
		&unit.Name,
		&unit.SortOrder,
		&unit.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	unit.CreatedAt = createdAt.Time
	unit.UpdatedAt = updatedAt.Time

	return &unit, nil
}
