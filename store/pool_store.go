package store

import (
	"fmt"
	"sync"

	"github.com/seededlabs/seedpool/db"
	"github.com/seededlabs/seedpool/jsonx"
	"github.com/seededlabs/seedpool/logx"
	"github.com/seededlabs/seedpool/types"
)

// PoolStore persists the singleton pool record at its derived address
type PoolStore interface {
	Store(addr string, record *types.PoolRecord) error
	StageStore(batch db.DatabaseBatch, addr string, record *types.PoolRecord) error
	GetByAddr(addr string) (*types.PoolRecord, error)
	ExistsByAddr(addr string) (bool, error)
	MustClose()
}

type GenericPoolStore struct {
	mu         sync.RWMutex
	dbProvider db.DatabaseProvider
}

func NewGenericPoolStore(dbProvider db.DatabaseProvider) (*GenericPoolStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericPoolStore{
		dbProvider: dbProvider,
	}, nil
}

func (ps *GenericPoolStore) Store(addr string, record *types.PoolRecord) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	data, err := jsonx.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal pool record: %w", err)
	}

	if err := ps.dbProvider.Put(ps.getDbKey(addr), data); err != nil {
		return fmt.Errorf("failed to write pool record to db: %w", err)
	}

	return nil
}

// StageStore encodes the record into an already open batch without writing
func (ps *GenericPoolStore) StageStore(batch db.DatabaseBatch, addr string, record *types.PoolRecord) error {
	data, err := jsonx.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal pool record: %w", err)
	}

	batch.Put(ps.getDbKey(addr), data)
	return nil
}

// GetByAddr returns the pool record stored at addr, both nil if not exist
func (ps *GenericPoolStore) GetByAddr(addr string) (*types.PoolRecord, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	data, err := ps.dbProvider.Get(ps.getDbKey(addr))
	if err != nil {
		return nil, fmt.Errorf("could not get pool record %s from db: %w", addr, err)
	}

	if data == nil {
		return nil, nil
	}

	var record types.PoolRecord
	if err := jsonx.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pool record %s: %w", addr, err)
	}
	return &record, nil
}

func (ps *GenericPoolStore) ExistsByAddr(addr string) (bool, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return ps.dbProvider.Has(ps.getDbKey(addr))
}

func (ps *GenericPoolStore) MustClose() {
	err := ps.dbProvider.Close()
	if err != nil {
		logx.Error("POOL_STORE", "Failed to close db provider:", err.Error())
	}
}

func (ps *GenericPoolStore) getDbKey(addr string) []byte {
	return []byte(PrefixPool + addr)
}
