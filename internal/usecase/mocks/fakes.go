package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// FakeEntryRepository is an in-memory fake of EntryRepository.
type FakeEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.LedgerEntry

	CreateFunc         func(ctx context.Context, entry *domain.LedgerEntry) error
	CreateTxFunc       func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.LedgerEntry, error)
	UpdateKindFunc     func(ctx context.Context, id string, from, to domain.Kind) error
	ListByResidentFunc func(ctx context.Context, residentID string) ([]*domain.LedgerEntry, error)
}

func NewFakeEntryRepository() *FakeEntryRepository {
	return &FakeEntryRepository{
		entries: make(map[string]*domain.LedgerEntry),
	}
}

func (m *FakeEntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *FakeEntryRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, entry)
	}
	return m.Create(ctx, entry)
}

func (m *FakeEntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		// Return a copy so callers mutating the entry do not alias the
		// stored record, mirroring a real repository read.
		c := *e
		return &c, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *FakeEntryRepository) UpdateKind(ctx context.Context, id string, from, to domain.Kind) error {
	if m.UpdateKindFunc != nil {
		return m.UpdateKindFunc(ctx, id, from, to)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}
	if e.Kind != from {
		return domain.ErrAlreadyCorrected
	}
	e.Kind = to
	return nil
}

func (m *FakeEntryRepository) ListByResident(ctx context.Context, residentID string) ([]*domain.LedgerEntry, error) {
	if m.ListByResidentFunc != nil {
		return m.ListByResidentFunc(ctx, residentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.ResidentID == residentID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// FakeResidentRepository is an in-memory fake of ResidentRepository.
type FakeResidentRepository struct {
	mu        sync.RWMutex
	residents map[string]*domain.Resident

	CreateFunc    func(ctx context.Context, resident *domain.Resident) error
	CreateTxFunc  func(ctx context.Context, tx usecase.Transaction, resident *domain.Resident) error
	GetByIDFunc   func(ctx context.Context, id string) (*domain.Resident, error)
	GetByNameFunc func(ctx context.Context, tx usecase.Transaction, facilityID, name string) (*domain.Resident, error)
	UpdateFunc    func(ctx context.Context, resident *domain.Resident) error
	ListFunc      func(ctx context.Context, filter usecase.ResidentFilter) ([]*domain.Resident, error)
}

func NewFakeResidentRepository() *FakeResidentRepository {
	return &FakeResidentRepository{
		residents: make(map[string]*domain.Resident),
	}
}

func (m *FakeResidentRepository) Create(ctx context.Context, resident *domain.Resident) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, resident)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.residents[resident.ID] = resident
	return nil
}

func (m *FakeResidentRepository) CreateTx(ctx context.Context, tx usecase.Transaction, resident *domain.Resident) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, resident)
	}
	return m.Create(ctx, resident)
}

func (m *FakeResidentRepository) GetByID(ctx context.Context, id string) (*domain.Resident, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.residents[id]; ok {
		return r, nil
	}
	return nil, domain.ErrResidentNotFound
}

func (m *FakeResidentRepository) GetByName(ctx context.Context, tx usecase.Transaction, facilityID, name string) (*domain.Resident, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, tx, facilityID, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.residents {
		if r.FacilityID == facilityID && r.Name == name {
			return r, nil
		}
	}
	return nil, domain.ErrResidentNotFound
}

func (m *FakeResidentRepository) Update(ctx context.Context, resident *domain.Resident) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, resident)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.residents[resident.ID]; !ok {
		return domain.ErrResidentNotFound
	}
	m.residents[resident.ID] = resident
	return nil
}

func (m *FakeResidentRepository) List(ctx context.Context, filter usecase.ResidentFilter) ([]*domain.Resident, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var residents []*domain.Resident
	for _, r := range m.residents {
		if filter.FacilityID != "" && r.FacilityID != filter.FacilityID {
			continue
		}
		if filter.UnitID != "" && r.UnitID != filter.UnitID {
			continue
		}
		if !filter.IncludeInactive && !r.IsActive {
			continue
		}
		residents = append(residents, r)
	}
	return residents, nil
}

// FakeFacilityRepository is an in-memory fake of FacilityRepository.
type FakeFacilityRepository struct {
	mu         sync.RWMutex
	facilities map[string]*domain.Facility

	CreateFunc    func(ctx context.Context, facility *domain.Facility) error
	CreateTxFunc  func(ctx context.Context, tx usecase.Transaction, facility *domain.Facility) error
	GetByIDFunc   func(ctx context.Context, id string) (*domain.Facility, error)
	GetByNameFunc func(ctx context.Context, tx usecase.Transaction, name string) (*domain.Facility, error)
	UpdateFunc    func(ctx context.Context, facility *domain.Facility) error
	ListFunc      func(ctx context.Context, includeInactive bool) ([]*domain.Facility, error)
}

func NewFakeFacilityRepository() *FakeFacilityRepository {
	return &FakeFacilityRepository{
		facilities: make(map[string]*domain.Facility),
	}
}

func (m *FakeFacilityRepository) Create(ctx context.Context, facility *domain.Facility) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, facility)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.facilities[facility.ID] = facility
	return nil
}

func (m *FakeFacilityRepository) CreateTx(ctx context.Context, tx usecase.Transaction, facility *domain.Facility) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, facility)
	}
	return m.Create(ctx, facility)
}

func (m *FakeFacilityRepository) GetByID(ctx context.Context, id string) (*domain.Facility, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.facilities[id]; ok {
		return f, nil
	}
	return nil, domain.ErrFacilityNotFound
}

func (m *FakeFacilityRepository) GetByName(ctx context.Context, tx usecase.Transaction, name string) (*domain.Facility, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, tx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.facilities {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, domain.ErrFacilityNotFound
}

func (m *FakeFacilityRepository) Update(ctx context.Context, facility *domain.Facility) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, facility)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.facilities[facility.ID]; !ok {
		return domain.ErrFacilityNotFound
	}
	m.facilities[facility.ID] = facility
	return nil
}

func (m *FakeFacilityRepository) List(ctx context.Context, includeInactive bool) ([]*domain.Facility, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, includeInactive)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var facilities []*domain.Facility
	for _, f := range m.facilities {
		if !includeInactive && !f.IsActive {
			continue
		}
		facilities = append(facilities, f)
	}
	return facilities, nil
}

// FakeUnitRepository is an in-memory fake of UnitRepository.
type FakeUnitRepository struct {
	mu    sync.RWMutex
	units map[string]*domain.Unit

	CreateFunc         func(ctx context.Context, unit *domain.Unit) error
	CreateTxFunc       func(ctx context.Context, tx usecase.Transaction, unit *domain.Unit) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Unit, error)
	GetByNameFunc      func(ctx context.Context, tx usecase.Transaction, facilityID, name string) (*domain.Unit, error)
	ListByFacilityFunc func(ctx context.Context, facilityID string) ([]*domain.Unit, error)
}

func NewFakeUnitRepository() *FakeUnitRepository {
	return &FakeUnitRepository{
		units: make(map[string]*domain.Unit),
	}
}

func (m *FakeUnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, unit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units[unit.ID] = unit
	return nil
}

func (m *FakeUnitRepository) CreateTx(ctx context.Context, tx usecase.Transaction, unit *domain.Unit) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, unit)
	}
	return m.Create(ctx, unit)
}

func (m *FakeUnitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.units[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUnitNotFound
}

func (m *FakeUnitRepository) GetByName(ctx context.Context, tx usecase.Transaction, facilityID, name string) (*domain.Unit, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, tx, facilityID, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.units {
		if u.FacilityID == facilityID && u.Name == name {
			return u, nil
		}
	}
	return nil, domain.ErrUnitNotFound
}

func (m *FakeUnitRepository) ListByFacility(ctx context.Context, facilityID string) ([]*domain.Unit, error) {
	if m.ListByFacilityFunc != nil {
		return m.ListByFacilityFunc(ctx, facilityID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var units []*domain.Unit
	for _, u := range m.units {
		if u.FacilityID == facilityID {
			units = append(units, u)
		}
	}
	return units, nil
}

// FakeTransactionManager is a configurable fake TransactionManager.
type FakeTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &FakeTransaction{}, nil
}

// FakeTransaction is a configurable fake Transaction.
type FakeTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *FakeTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *FakeTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// FakeIDGenerator is a configurable fake IDGenerator.
type FakeIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (m *FakeIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%03d", m.counter)
}

// FakeClock is a configurable fake Clock.
type FakeClock struct {
	NowFunc func() time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{NowFunc: func() time.Time { return now }}
}

func (m *FakeClock) Now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	return time.Now()
}

// FakeRetrier is a configurable fake Retrier. By default it runs
// the operation once with no retries.
type FakeRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewFakeRetrier() *FakeRetrier {
	return &FakeRetrier{}
}

func (m *FakeRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// FakeCache is an in-memory fake of Cache.
type FakeCache struct {
	mu   sync.RWMutex
	data map[string]string

	GetFunc          func(ctx context.Context, key string) (string, error)
	SetFunc          func(ctx context.Context, key, value string, ttl time.Duration) error
	DeletePrefixFunc func(ctx context.Context, prefix string) error
}

func NewFakeCache() *FakeCache {
	return &FakeCache{
		data: make(map[string]string),
	}
}

func (m *FakeCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss: %s", key)
}

func (m *FakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *FakeCache) DeletePrefix(ctx context.Context, prefix string) error {
	if m.DeletePrefixFunc != nil {
		return m.DeletePrefixFunc(ctx, prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
		}
	}
	return nil
}

// FakeIdempotencyStore is an in-memory fake of IdempotencyStore.
type FakeIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewFakeIdempotencyStore() *FakeIdempotencyStore {
	return &FakeIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *FakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *FakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
