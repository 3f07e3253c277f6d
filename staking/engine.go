// Package staking implements the stake lifecycle state machine: pool
// initialization, participant bootstrap, enter-stake, begin-unstake and
// harvest. Each transition validates authority, recomputes accrual and
// commits its record mutation together with both transfer legs in a single
// batch, so no partial effect is ever visible.
package staking

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/seededlabs/seedpool/config"
	"github.com/seededlabs/seedpool/db"
	"github.com/seededlabs/seedpool/derive"
	"github.com/seededlabs/seedpool/errors"
	"github.com/seededlabs/seedpool/events"
	"github.com/seededlabs/seedpool/ledger"
	"github.com/seededlabs/seedpool/logx"
	"github.com/seededlabs/seedpool/store"
	"github.com/seededlabs/seedpool/types"
)

// Engine drives all stake record and custody mutations. A single mutex
// serializes transitions, standing in for the ledger's global commit order:
// two transitions on the same record are totally ordered, and the custody
// account only ever changes as one leg of an atomic pairing.
type Engine struct {
	mu       sync.Mutex
	cfg      *config.PoolConfig
	provider db.DatabaseProvider
	pools    store.PoolStore
	stakes   store.StakeStore
	ledger   *ledger.Ledger
	clock    Clock
	bus      *events.EventBus

	poolAddr string
	poolBump uint8
}

// Balances is the read-only view returned by QueryBalances
type Balances struct {
	Owner           string       `json:"owner"`
	WalletBalance   *uint256.Int `json:"wallet_balance"`
	StakedAmount    *uint256.Int `json:"staked_amount"`
	PendingReward   *uint256.Int `json:"pending_reward"`
	CustodyTotal    *uint256.Int `json:"custody_total"`
	LastAccrualTime int64        `json:"last_accrual_time"`
}

// PoolInfo is the read-only view of the pool record and custody state
type PoolInfo struct {
	ProtocolName   string       `json:"protocol_name"`
	PoolAddress    string       `json:"pool_address"`
	Authority      string       `json:"authority"`
	CustodyAccount string       `json:"custody_account"`
	AssetMint      string       `json:"asset_mint"`
	CustodyBalance *uint256.Int `json:"custody_balance"`
	TotalStaked    *uint256.Int `json:"total_staked"`
}

func NewEngine(cfg *config.PoolConfig, provider db.DatabaseProvider, pools store.PoolStore,
	stakes store.StakeStore, ldg *ledger.Ledger, clock Clock, bus *events.EventBus) (*Engine, error) {
	poolAddr, poolBump, err := derive.PoolAddress(cfg.ProtocolName)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:      cfg,
		provider: provider,
		pools:    pools,
		stakes:   stakes,
		ledger:   ldg,
		clock:    clock,
		bus:      bus,
		poolAddr: poolAddr,
		poolBump: poolBump,
	}, nil
}

// PoolAddress returns the derived address of the singleton pool record
func (e *Engine) PoolAddress() string {
	return e.poolAddr
}

// InitializePool creates the pool record and its custody token account. One
// time operation, restricted to the configured authority; the record is
// immutable afterwards.
func (e *Engine) InitializePool(authority string) (*types.PoolRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if authority != e.cfg.Authority {
		return nil, errors.NewError(errors.ErrCodeUnauthorized,
			"only the configured authority may initialize the pool")
	}

	existed, err := e.pools.ExistsByAddr(e.poolAddr)
	if err != nil {
		return nil, e.ledgerError("could not check pool existence", err)
	}
	if existed {
		return nil, errors.NewError(errors.ErrCodeRecordExists, "pool is already initialized")
	}

	custodyAddr, custodyBump, err := derive.CustodyAddress(e.cfg.ProtocolName)
	if err != nil {
		return nil, err
	}

	record := &types.PoolRecord{
		ProtocolName:   e.cfg.ProtocolName,
		Authority:      authority,
		CustodyAccount: custodyAddr,
		AssetMint:      e.cfg.AssetMint,
		Bumps: types.PoolBumps{
			Pool:    e.poolBump,
			Custody: custodyBump,
		},
	}

	// Custody is owned by the pool record itself: no private key can spend
	// from it, only these transitions move its balance.
	custody := &types.TokenAccount{
		Address: custodyAddr,
		Owner:   e.poolAddr,
		Mint:    e.cfg.AssetMint,
		Balance: uint256.NewInt(0),
	}

	batch := e.provider.Batch()
	if err := e.pools.StageStore(batch, e.poolAddr, record); err != nil {
		return nil, err
	}
	if err := e.ledger.StageAccount(batch, custody); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, e.ledgerError("failed to commit pool initialization", err)
	}

	logx.Info("STAKING", fmt.Sprintf("Initialized pool %s at %s, custody %s", e.cfg.ProtocolName, e.poolAddr, custodyAddr))
	return record, nil
}

// loadPool fetches the pool record; every participant-facing operation
// treats a missing or malformed record as a fatal precondition failure.
func (e *Engine) loadPool() (*types.PoolRecord, error) {
	record, err := e.pools.GetByAddr(e.poolAddr)
	if err != nil {
		return nil, e.ledgerError("could not load pool record", err)
	}
	if record == nil {
		return nil, errors.NewError(errors.ErrCodePoolNotInitialized, errors.ErrMsgPoolNotInitialized)
	}
	if record.CustodyAccount == "" || record.AssetMint == "" {
		return nil, errors.NewError(errors.ErrCodePoolNotInitialized, "pool record is malformed")
	}
	return record, nil
}

// BootstrapParticipant creates the stake record for owner if absent. The
// second return reports whether a record was created; calling again for an
// existing participant changes nothing.
func (e *Engine) BootstrapParticipant(owner string) (*types.StakeRecord, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.loadPool(); err != nil {
		return nil, false, err
	}

	stakeAddr, bump, err := derive.StakeAddress(e.cfg.ProtocolName, owner)
	if err != nil {
		return nil, false, err
	}

	existing, err := e.stakes.GetByAddr(stakeAddr)
	if err != nil {
		return nil, false, e.ledgerError("could not load stake record", err)
	}
	if existing != nil {
		// Derived addresses cannot collide across owners, so an occupied
		// slot always belongs to this participant already.
		logx.Debug("STAKING", fmt.Sprintf("Participant %s already bootstrapped at %s", owner, stakeAddr))
		return existing, false, nil
	}

	record := &types.StakeRecord{
		Owner:           owner,
		StakedAmount:    uint256.NewInt(0),
		LastAccrualTime: e.clock.Now(),
		Bump:            bump,
	}
	if err := e.stakes.Store(stakeAddr, record); err != nil {
		return nil, false, e.ledgerError("failed to store stake record", err)
	}

	e.publish(events.NewParticipantBootstrapped(owner, stakeAddr))
	logx.Info("STAKING", fmt.Sprintf("Bootstrapped participant %s at %s (bump %d)", owner, stakeAddr, bump))
	return record, true, nil
}

// EnterStake moves amount from the owner's wallet account into custody and
// adds it to the staked balance. The accrual clock restarts: any reward not
// harvested before this call is forfeited, which mirrors the deployed
// protocol and is intentional.
func (e *Engine) EnterStake(owner string, amount *uint256.Int) (*types.StakeRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool, err := e.loadPool()
	if err != nil {
		return nil, err
	}

	stakeAddr, record, err := e.loadOwnedRecord(owner)
	if err != nil {
		return nil, err
	}

	if amount == nil || amount.IsZero() {
		return nil, errors.NewError(errors.ErrCodeInvalidAmount, errors.ErrMsgInvalidAmount)
	}

	updated := record.Clone()
	updated.StakedAmount.Add(updated.StakedAmount, amount)
	updated.LastAccrualTime = e.clock.Now()

	batch := e.provider.Batch()
	if err := e.ledger.StageTransfer(batch, owner, pool.CustodyAccount, amount); err != nil {
		return nil, err
	}
	if err := e.stakes.StageStore(batch, stakeAddr, updated); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, e.ledgerError("failed to commit enter-stake", err)
	}

	e.publish(events.NewStakeEntered(owner, amount, updated.StakedAmount))
	logx.Info("STAKING", fmt.Sprintf("Participant %s staked %s, total %s", owner, amount.String(), updated.StakedAmount.String()))
	return updated, nil
}

// BeginUnstake moves amount out of custody back to the owner's wallet
// account and subtracts it from the staked balance. The accrual clock
// restarts with the same forfeiture caveat as EnterStake.
func (e *Engine) BeginUnstake(owner string, amount *uint256.Int) (*types.StakeRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool, err := e.loadPool()
	if err != nil {
		return nil, err
	}

	stakeAddr, record, err := e.loadOwnedRecord(owner)
	if err != nil {
		return nil, err
	}

	if amount == nil || amount.IsZero() {
		return nil, errors.NewError(errors.ErrCodeInvalidAmount, errors.ErrMsgInvalidAmount)
	}
	if record.StakedAmount.IsZero() {
		return nil, errors.NewError(errors.ErrCodeNothingStaked, errors.ErrMsgNothingStaked)
	}
	if record.StakedAmount.Cmp(amount) < 0 {
		return nil, errors.NewError(errors.ErrCodeInsufficientBalance,
			fmt.Sprintf("unstake amount %s exceeds staked %s", amount.String(), record.StakedAmount.String()))
	}

	updated := record.Clone()
	updated.StakedAmount.Sub(updated.StakedAmount, amount)
	updated.LastAccrualTime = e.clock.Now()

	batch := e.provider.Batch()
	if err := e.ledger.StageTransfer(batch, pool.CustodyAccount, owner, amount); err != nil {
		return nil, err
	}
	if err := e.stakes.StageStore(batch, stakeAddr, updated); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, e.ledgerError("failed to commit begin-unstake", err)
	}

	e.publish(events.NewUnstakeStarted(owner, amount, updated.StakedAmount))
	logx.Info("STAKING", fmt.Sprintf("Participant %s unstaked %s, remaining %s", owner, amount.String(), updated.StakedAmount.String()))
	return updated, nil
}

// Harvest pays out the reward accrued since the last clock reset. A zero
// reward is a permitted no-op that writes nothing, so partial accrual days
// are never forfeited by an early harvest.
func (e *Engine) Harvest(owner string) (*uint256.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool, err := e.loadPool()
	if err != nil {
		return nil, err
	}

	stakeAddr, record, err := e.loadOwnedRecord(owner)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	reward := PendingReward(record.StakedAmount, record.LastAccrualTime, now)
	if reward.IsZero() {
		return uint256.NewInt(0), nil
	}

	updated := record.Clone()
	updated.LastAccrualTime = now

	batch := e.provider.Batch()
	if err := e.ledger.StageTransfer(batch, pool.CustodyAccount, owner, reward); err != nil {
		return nil, err
	}
	if err := e.stakes.StageStore(batch, stakeAddr, updated); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, e.ledgerError("failed to commit harvest", err)
	}

	e.publish(events.NewRewardHarvested(owner, reward))
	logx.Info("STAKING", fmt.Sprintf("Participant %s harvested %s", owner, reward.String()))
	return reward, nil
}

// QueryBalances returns the owner's wallet balance, staked amount, pending
// reward estimate and the custody total. Read-only.
func (e *Engine) QueryBalances(owner string) (*Balances, error) {
	pool, err := e.loadPool()
	if err != nil {
		return nil, err
	}

	stakeAddr, _, err := derive.StakeAddress(e.cfg.ProtocolName, owner)
	if err != nil {
		return nil, err
	}

	record, err := e.stakes.GetByAddr(stakeAddr)
	if err != nil {
		return nil, e.ledgerError("could not load stake record", err)
	}

	wallet, err := e.ledger.Balance(owner)
	if err != nil {
		return nil, e.ledgerError("could not load wallet balance", err)
	}
	custody, err := e.ledger.Balance(pool.CustodyAccount)
	if err != nil {
		return nil, e.ledgerError("could not load custody balance", err)
	}

	balances := &Balances{
		Owner:         owner,
		WalletBalance: wallet,
		StakedAmount:  uint256.NewInt(0),
		PendingReward: uint256.NewInt(0),
		CustodyTotal:  custody,
	}
	if record != nil {
		balances.StakedAmount = new(uint256.Int).Set(record.StakedAmount)
		balances.PendingReward = PendingReward(record.StakedAmount, record.LastAccrualTime, e.clock.Now())
		balances.LastAccrualTime = record.LastAccrualTime
	}
	return balances, nil
}

// Pool returns pool record state plus custody balance and the sum of all
// staked amounts.
func (e *Engine) Pool() (*PoolInfo, error) {
	pool, err := e.loadPool()
	if err != nil {
		return nil, err
	}

	custody, err := e.ledger.Balance(pool.CustodyAccount)
	if err != nil {
		return nil, e.ledgerError("could not load custody balance", err)
	}

	total := uint256.NewInt(0)
	records, err := e.stakes.GetAll()
	if err != nil {
		return nil, e.ledgerError("could not enumerate stake records", err)
	}
	for _, record := range records {
		total.Add(total, record.StakedAmount)
	}

	return &PoolInfo{
		ProtocolName:   pool.ProtocolName,
		PoolAddress:    e.poolAddr,
		Authority:      pool.Authority,
		CustodyAccount: pool.CustodyAccount,
		AssetMint:      pool.AssetMint,
		CustodyBalance: custody,
		TotalStaked:    total,
	}, nil
}

// FundCustody mints reward reserve into the custody account. Authority only:
// this is the top-up path the deploy procedure uses so harvests have a
// reserve beyond the staked principal.
func (e *Engine) FundCustody(authority string, amount *uint256.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool, err := e.loadPool()
	if err != nil {
		return err
	}
	if authority != pool.Authority {
		return errors.NewError(errors.ErrCodeUnauthorized,
			"only the pool authority may fund the custody account")
	}

	return e.ledger.Mint(pool.CustodyAccount, e.poolAddr, pool.AssetMint, amount)
}

// loadOwnedRecord derives the stake address for owner, loads the record and
// enforces the ownership invariant shared by every mutating transition.
func (e *Engine) loadOwnedRecord(owner string) (string, *types.StakeRecord, error) {
	stakeAddr, _, err := derive.StakeAddress(e.cfg.ProtocolName, owner)
	if err != nil {
		return "", nil, err
	}

	record, err := e.stakes.GetByAddr(stakeAddr)
	if err != nil {
		return "", nil, e.ledgerError("could not load stake record", err)
	}
	if record == nil {
		return "", nil, errors.NewError(errors.ErrCodeRecordNotFound, errors.ErrMsgRecordNotFound)
	}
	if record.Owner != owner {
		return "", nil, errors.NewError(errors.ErrCodeUnauthorized, errors.ErrMsgUnauthorized)
	}
	return stakeAddr, record, nil
}

func (e *Engine) publish(event events.StakeEvent) {
	if e.bus != nil {
		e.bus.Publish(event)
	}
}

// ledgerError wraps storage failures as retryable ledger errors. No partial
// state can have been committed, so resubmitting the identical request is
// safe.
func (e *Engine) ledgerError(msg string, err error) error {
	logx.Error("STAKING", fmt.Sprintf("%s: %v", msg, err))
	return errors.NewError(errors.ErrCodeLedgerUnavailable, errors.ErrMsgLedgerUnavailable)
}
