package usecase

import (
	"context"
	"time"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
)

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	CreateTx(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	// UpdateKind transitions an entry's kind, guarded by the expected
	// current kind. Returns domain.ErrAlreadyCorrected when the entry
	// was transitioned by someone else in the meantime.
	UpdateKind(ctx context.Context, id string, from, to domain.Kind) error
	ListByResident(ctx context.Context, residentID string) ([]*domain.LedgerEntry, error)
}

// ResidentFilter narrows resident listings.
type ResidentFilter struct {
	FacilityID      string
	UnitID          string
	IncludeInactive bool
}

// ResidentRepository defines data access for residents.
type ResidentRepository interface {
	Create(ctx context.Context, resident *domain.Resident) error
	CreateTx(ctx context.Context, tx Transaction, resident *domain.Resident) error
	GetByID(ctx context.Context, id string) (*domain.Resident, error)
	GetByName(ctx context.Context, tx Transaction, facilityID, name string) (*domain.Resident, error)
	Update(ctx context.Context, resident *domain.Resident) error
	List(ctx context.Context, filter ResidentFilter) ([]*domain.Resident, error)
}

// FacilityRepository defines data access for facilities.
type FacilityRepository interface {
	Create(ctx context.Context, facility *domain.Facility) error
	CreateTx(ctx context.Context, tx Transaction, facility *domain.Facility) error
	GetByID(ctx context.Context, id string) (*domain.Facility, error)
	GetByName(ctx context.Context, tx Transaction, name string) (*domain.Facility, error)
	Update(ctx context.Context, facility *domain.Facility) error
	List(ctx context.Context, includeInactive bool) ([]*domain.Facility, error)
}

// UnitRepository defines data access for units.
type UnitRepository interface {
	Create(ctx context.Context, unit *domain.Unit) error
	CreateTx(ctx context.Context, tx Transaction, unit *domain.Unit) error
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
	GetByName(ctx context.Context, tx Transaction, facilityID, name string) (*domain.Unit, error)
	ListByFacility(ctx context.Context, facilityID string) ([]*domain.Unit, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique, monotonically increasing IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time. Every operation captures it once so a
// request straddling midnight cannot see two different "today"s.
type Clock interface {
	Now() time.Time
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines best-effort caching operations. DeletePrefix drops
// every key under a prefix so writers can invalidate whole views.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
