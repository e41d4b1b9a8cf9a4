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

// ResidentRepository implements usecase.ResidentRepository.
type ResidentRepository struct {
	pool *pgxpool.Pool
}

// NewResidentRepository creates a new ResidentRepository.
func NewResidentRepository(pool *pgxpool.Pool) *ResidentRepository {
	return &ResidentRepository{pool: pool}
}

const insertResident = `
INSERT INTO residents (id, facility_id, unit_id, name, start_date, end_date, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const selectResident = `
SELECT id, facility_id, unit_id, name, start_date, end_date, is_active, created_at, updated_at
FROM residents`

// Create inserts a new resident.
func (r *ResidentRepository) Create(ctx context.Context, resident *domain.Resident) error {
	_, err := r.pool.Exec(ctx, insertResident, residentArgs(resident)...)

	return err
}

// CreateTx inserts a new resident within a transaction.
func (r *ResidentRepository) CreateTx(ctx context.Context, tx usecase.Transaction, resident *domain.Resident) error {
	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, insertResident, residentArgs(resident)...)

	return err
}

// GetByID retrieves a resident by ID.
func (r *ResidentRepository) GetByID(ctx context.Context, id string) (*domain.Resident, error) {
	row := r.pool.QueryRow(ctx, selectResident+` WHERE id = $1`, id)

	resident, err := scanResident(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResidentNotFound
		}

		return nil, err
	}

	return resident, nil
}

// GetByName retrieves a resident by facility and name, within the import
// transaction so freshly inserted rows are visible.
func (r *ResidentRepository) GetByName(ctx context.Context, tx usecase.Transaction, facilityID, name string) (*domain.Resident, error) {
	query := selectResident + ` WHERE facility_id = $1 AND name = $2`

	var row pgx.Row
	if tx != nil {
		row = tx.(*Tx).PgxTx().QueryRow(ctx, query, facilityID, name)
	} else {
		row = r.pool.QueryRow(ctx, query, facilityID, name)
	}

	resident, err := scanResident(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResidentNotFound
		}

		return nil, err
	}

	return resident, nil
}

// Update updates resident master data.
func (r *ResidentRepository) Update(ctx context.Context, resident *domain.Resident) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE residents
SET unit_id = $2, name = $3, start_date = $4, end_date = $5, is_active = $6, updated_at = $7
WHERE id = $1`,
		resident.ID,
		resident.UnitID,
		resident.Name,
		timePtrToPgDate(resident.StartDate),
		timePtrToPgDate(resident.EndDate),
		resident.IsActive,
		timeToPgTimestamptz(resident.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResidentNotFound
	}

	return nil
}

// List lists residents matching the filter, sorted by name.
func (r *ResidentRepository) List(ctx context.Context, filter usecase.ResidentFilter) ([]*domain.Resident, error) {
	query := selectResident + ` WHERE 1=1`
	args := []any{}

	if filter.FacilityID != "" {
		args = append(args, filter.FacilityID)
		query += ` AND facility_id = $1`
	}
	if filter.UnitID != "" {
		args = append(args, filter.UnitID)
		if len(args) == 1 {
			query += ` AND unit_id = $1`
		} else {
			query += ` AND unit_id = $2`
		}
	}
	if !filter.IncludeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY name, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var residents []*domain.Resident
	for rows.Next() {
		resident, err := scanResident(rows)
		if err != nil {
			return nil, err
		}
		residents = append(residents, resident)
	}

	return residents, rows.Err()
}

func residentArgs(resident *domain.Resident) []any {
	return []any{
		resident.ID,
		resident.FacilityID,
		resident.UnitID,
		resident.Name,
		timePtrToPgDate(resident.StartDate),
		timePtrToPgDate(resident.EndDate),
		resident.IsActive,
		timeToPgTimestamptz(resident.CreatedAt),
		timeToPgTimestamptz(resident.UpdatedAt),
	}
}

func scanResident(row pgx.Row) (*domain.Resident, error) {
	var (
		resident  domain.Resident
		startDate pgtype.Date
		endDate   pgtype.Date
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&resident.ID,
		&resident.FacilityID,
		&resident.UnitID,
		&resident.Name,
		&startDate,
		&endDate,
		&resident.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	resident.StartDate = pgDateToTimePtr(startDate)
	resident.EndDate = pgDateToTimePtr(endDate)
	resident.CreatedAt = createdAt.Time
	resident.UpdatedAt = updatedAt.Time

	return &resident, nil
}
