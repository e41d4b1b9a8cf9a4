package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const insertEntry = `
INSERT INTO entries (id, resident_id, occurred_on, kind, amount, description, payee, reason, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const selectEntry = `
SELECT id, resident_id, occurred_on, kind, amount, description, payee, reason, created_at
FROM entries`

// Create inserts a new entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	_, err := r.pool.Exec(ctx, insertEntry,
		entry.ID,
		entry.ResidentID,
		timeToPgDate(entry.OccurredOn),
		string(entry.Kind),
		decimalToNumeric(entry.Amount),
		entry.Description,
		entry.Payee,
		entry.Reason,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// CreateTx inserts a new entry within a transaction.
func (r *EntryRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertEntry,
		entry.ID,
		entry.ResidentID,
		timeToPgDate(entry.OccurredOn),
		string(entry.Kind),
		decimalToNumeric(entry.Amount),
		entry.Description,
		entry.Payee,
		entry.Reason,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	row := r.pool.QueryRow(ctx, selectEntry+` WHERE id = $1`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// UpdateKind transitions an entry's kind, guarded by the expected current
// kind so two concurrent corrections cannot both win.
func (r *EntryRepository) UpdateKind(ctx context.Context, id string, from, to domain.Kind) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE entries SET kind = $3 WHERE id = $1 AND kind = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// The guarded update touched nothing. Distinguish a missing entry
	// from one that was already transitioned.
	var current string
	err = r.pool.QueryRow(ctx, `SELECT kind FROM entries WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEntryNotFound
	}
	if err != nil {
		return err
	}

	return domain.ErrAlreadyCorrected
}

// ListByResident retrieves a resident's entries sorted for the ledger.
func (r *EntryRepository) ListByResident(ctx context.Context, residentID string) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, selectEntry+` WHERE resident_id = $1 ORDER BY occurred_on, id`, residentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		entry      domain.LedgerEntry
		kind       string
		occurredOn pgtype.Date
		amount     pgtype.Numeric
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.ResidentID,
		&occurredOn,
		&kind,
		&amount,
		&entry.Description,
		&entry.Payee,
		&entry.Reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Kind = domain.Kind(kind)
	entry.OccurredOn = occurredOn.Time.UTC()
	entry.Amount = numericToDecimal(amount)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timeToPgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}

func timePtrToPgDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}

	return pgtype.Date{Time: *t, Valid: true}
}

func pgDateToTimePtr(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}

	t := d.Time.UTC()

	return &t
}
