package service

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seededlabs/seedpool/config"
	"github.com/seededlabs/seedpool/db"
	"github.com/seededlabs/seedpool/errors"
	"github.com/seededlabs/seedpool/events"
	"github.com/seededlabs/seedpool/ledger"
	"github.com/seededlabs/seedpool/staking"
	"github.com/seededlabs/seedpool/store"
)

const (
	testAuthority = "Pauthr1tyAdm1n333333333333333333333333333333"
	testMint      = "SeededM1nt4444444444444444444444444444444444"
	testOwner     = "A1iceStakerWa11et111111111111111111111111111"
)

func newService(t *testing.T) (*StakingServiceImpl, *staking.Engine) {
	t.Helper()

	provider := db.NewMemoryProvider()
	pools, err := store.NewGenericPoolStore(provider)
	require.NoError(t, err)
	stakes, err := store.NewGenericStakeStore(provider)
	require.NoError(t, err)
	accounts, err := store.NewGenericTokenAccountStore(provider)
	require.NoError(t, err)

	cfg := &config.PoolConfig{
		ProtocolName: config.ProtocolName,
		Authority:    testAuthority,
		AssetMint:    testMint,
	}
	engine, err := staking.NewEngine(cfg, provider, pools, stakes,
		ledger.NewLedger(accounts), staking.SystemClock(), events.NewEventBus())
	require.NoError(t, err)

	return NewStakingService(engine), engine
}

func TestServiceRejectsInvalidIdentity(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, owner := range []string{"", "0-not-base58", "with space"} {
		_, _, err := svc.Bootstrap(ctx, owner)
		assert.Equal(t, errors.ErrCodeInvalidAddress, errors.CodeOf(err), "owner %q", owner)

		_, err = svc.EnterStake(ctx, owner, uint256.NewInt(1))
		assert.Equal(t, errors.ErrCodeInvalidAddress, errors.CodeOf(err), "owner %q", owner)

		_, err = svc.Harvest(ctx, owner)
		assert.Equal(t, errors.ErrCodeInvalidAddress, errors.CodeOf(err), "owner %q", owner)
	}
}

func TestServicePassesThroughEngine(t *testing.T) {
	svc, engine := newService(t)
	ctx := context.Background()

	_, err := engine.InitializePool(testAuthority)
	require.NoError(t, err)

	record, created, err := svc.Bootstrap(ctx, testOwner)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, testOwner, record.Owner)

	balances, err := svc.QueryBalances(ctx, testOwner)
	require.NoError(t, err)
	assert.True(t, balances.StakedAmount.IsZero())

	info, err := svc.PoolInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.ProtocolName, info.ProtocolName)
}
