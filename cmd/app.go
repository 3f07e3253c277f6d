package cmd

import (
	"fmt"

	"github.com/seededlabs/seedpool/config"
	"github.com/seededlabs/seedpool/db"
	"github.com/seededlabs/seedpool/events"
	"github.com/seededlabs/seedpool/ledger"
	"github.com/seededlabs/seedpool/logx"
	"github.com/seededlabs/seedpool/staking"
	"github.com/seededlabs/seedpool/store"
)

// app wires the storage provider, stores, ledger and engine together the
// same way for every command.
type app struct {
	cfg      *config.PoolConfig
	provider db.DatabaseProvider
	pools    store.PoolStore
	stakes   store.StakeStore
	accounts store.TokenAccountStore
	ledger   *ledger.Ledger
	bus      *events.EventBus
	engine   *staking.Engine
}

func buildApp() (*app, error) {
	poolCfg, err := config.LoadPoolConfig(poolConfigPath)
	if err != nil {
		return nil, err
	}
	storageCfg, err := config.LoadStorageConfig(nodeConfigPath)
	if err != nil {
		return nil, err
	}

	provider, err := db.NewProvider(storageCfg)
	if err != nil {
		return nil, fmt.Errorf("could not open storage backend: %w", err)
	}

	pools, err := store.NewGenericPoolStore(provider)
	if err != nil {
		provider.Close()
		return nil, err
	}
	stakes, err := store.NewGenericStakeStore(provider)
	if err != nil {
		provider.Close()
		return nil, err
	}
	accounts, err := store.NewGenericTokenAccountStore(provider)
	if err != nil {
		provider.Close()
		return nil, err
	}

	ldg := ledger.NewLedger(accounts)
	bus := events.NewEventBus()

	engine, err := staking.NewEngine(poolCfg, provider, pools, stakes, ldg, staking.SystemClock(), bus)
	if err != nil {
		provider.Close()
		return nil, err
	}

	return &app{
		cfg:      poolCfg,
		provider: provider,
		pools:    pools,
		stakes:   stakes,
		accounts: accounts,
		ledger:   ldg,
		bus:      bus,
		engine:   engine,
	}, nil
}

// close releases the shared storage provider. Stores share one provider so
// it is closed exactly once here.
func (a *app) close() {
	if err := a.provider.Close(); err != nil {
		logx.Error("CLI", "Failed to close storage provider:", err)
	}
}
