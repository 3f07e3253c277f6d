package store

import (
	"fmt"
	"sync"

	"github.com/seededlabs/seedpool/db"
	"github.com/seededlabs/seedpool/jsonx"
	"github.com/seededlabs/seedpool/logx"
	"github.com/seededlabs/seedpool/types"
)

// StakeStore persists participant stake records keyed by derived address
type StakeStore interface {
	Store(addr string, record *types.StakeRecord) error
	StageStore(batch db.DatabaseBatch, addr string, record *types.StakeRecord) error
	GetByAddr(addr string) (*types.StakeRecord, error)
	ExistsByAddr(addr string) (bool, error)
	GetAll() ([]*types.StakeRecord, error)
	MustClose()
}

type GenericStakeStore struct {
	mu         sync.RWMutex
	dbProvider db.DatabaseProvider
}

func NewGenericStakeStore(dbProvider db.DatabaseProvider) (*GenericStakeStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericStakeStore{
		dbProvider: dbProvider,
	}, nil
}

func (ss *GenericStakeStore) Store(addr string, record *types.StakeRecord) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	data, err := jsonx.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal stake record: %w", err)
	}

	if err := ss.dbProvider.Put(ss.getDbKey(addr), data); err != nil {
		return fmt.Errorf("failed to write stake record to db: %w", err)
	}

	return nil
}

// StageStore encodes the record into an already open batch without writing.
// The caller owns the commit so several stores can land in one atomic write.
func (ss *GenericStakeStore) StageStore(batch db.DatabaseBatch, addr string, record *types.StakeRecord) error {
	data, err := jsonx.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal stake record: %w", err)
	}

	batch.Put(ss.getDbKey(addr), data)
	return nil
}

// GetByAddr returns the stake record stored at addr, both nil if not exist
func (ss *GenericStakeStore) GetByAddr(addr string) (*types.StakeRecord, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	data, err := ss.dbProvider.Get(ss.getDbKey(addr))
	if err != nil {
		return nil, fmt.Errorf("could not get stake record %s from db: %w", addr, err)
	}

	// Record doesn't exist
	if data == nil {
		return nil, nil
	}

	var record types.StakeRecord
	if err := jsonx.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stake record %s: %w", addr, err)
	}
	return &record, nil
}

func (ss *GenericStakeStore) ExistsByAddr(addr string) (bool, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	return ss.dbProvider.Has(ss.getDbKey(addr))
}

// GetAll returns every stake record, used by conservation checks and pool
// wide queries
func (ss *GenericStakeStore) GetAll() ([]*types.StakeRecord, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	iterable, ok := ss.dbProvider.(db.IterableProvider)
	if !ok {
		return nil, fmt.Errorf("db provider does not support iteration")
	}

	records := make([]*types.StakeRecord, 0)
	var iterErr error
	err := iterable.IteratePrefix([]byte(PrefixStake), func(key, value []byte) bool {
		var record types.StakeRecord
		if err := jsonx.Unmarshal(value, &record); err != nil {
			iterErr = fmt.Errorf("failed to unmarshal stake record %s: %w", string(key), err)
			return false
		}
		records = append(records, &record)
		return true
	})
	if err != nil {
		return nil, err
	}
	if iterErr != nil {
		return nil, iterErr
	}
	return records, nil
}

func (ss *GenericStakeStore) MustClose() {
	err := ss.dbProvider.Close()
	if err != nil {
		logx.Error("STAKE_STORE", "Failed to close db provider:", err.Error())
	}
}

func (ss *GenericStakeStore) getDbKey(addr string) []byte {
	return []byte(PrefixStake + addr)
}
