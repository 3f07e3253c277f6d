package store

import (
	"fmt"
	"sync"

	"github.com/seededlabs/seedpool/db"
	"github.com/seededlabs/seedpool/jsonx"
	"github.com/seededlabs/seedpool/logx"
	"github.com/seededlabs/seedpool/types"
)

// TokenAccountStore persists token accounts keyed by address
type TokenAccountStore interface {
	Store(account *types.TokenAccount) error
	StageStore(batch db.DatabaseBatch, account *types.TokenAccount) error
	GetByAddr(addr string) (*types.TokenAccount, error)
	ExistsByAddr(addr string) (bool, error)
	MustClose()
}

type GenericTokenAccountStore struct {
	mu         sync.RWMutex
	dbProvider db.DatabaseProvider
}

func NewGenericTokenAccountStore(dbProvider db.DatabaseProvider) (*GenericTokenAccountStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericTokenAccountStore{
		dbProvider: dbProvider,
	}, nil
}

func (as *GenericTokenAccountStore) Store(account *types.TokenAccount) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	data, err := jsonx.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal token account: %w", err)
	}

	if err := as.dbProvider.Put(as.getDbKey(account.Address), data); err != nil {
		return fmt.Errorf("failed to write token account to db: %w", err)
	}

	return nil
}

// StageStore encodes the account into an already open batch without writing
func (as *GenericTokenAccountStore) StageStore(batch db.DatabaseBatch, account *types.TokenAccount) error {
	data, err := jsonx.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal token account: %w", err)
	}

	batch.Put(as.getDbKey(account.Address), data)
	return nil
}

// GetByAddr returns the token account stored at addr, both nil if not exist
func (as *GenericTokenAccountStore) GetByAddr(addr string) (*types.TokenAccount, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	data, err := as.dbProvider.Get(as.getDbKey(addr))
	if err != nil {
		return nil, fmt.Errorf("could not get token account %s from db: %w", addr, err)
	}

	if data == nil {
		return nil, nil
	}

	var account types.TokenAccount
	if err := jsonx.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token account %s: %w", addr, err)
	}
	return &account, nil
}

func (as *GenericTokenAccountStore) ExistsByAddr(addr string) (bool, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	return as.dbProvider.Has(as.getDbKey(addr))
}

func (as *GenericTokenAccountStore) MustClose() {
	err := as.dbProvider.Close()
	if err != nil {
		logx.Error("TOKEN_ACCOUNT_STORE", "Failed to close db provider:", err.Error())
	}
}

func (as *GenericTokenAccountStore) getDbKey(addr string) []byte {
	return []byte(PrefixAccount + addr)
}
