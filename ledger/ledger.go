// Package ledger manages token accounts of the pool's accepted asset. It is
// the only writer of balances: every debit is staged together with its
// matching credit so each transition conserves the total supply.
package ledger

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/seededlabs/seedpool/db"
	"github.com/seededlabs/seedpool/errors"
	"github.com/seededlabs/seedpool/logx"
	"github.com/seededlabs/seedpool/store"
	"github.com/seededlabs/seedpool/types"
)

type Ledger struct {
	mu           sync.RWMutex
	accountStore store.TokenAccountStore
}

func NewLedger(accountStore store.TokenAccountStore) *Ledger {
	return &Ledger{
		accountStore: accountStore,
	}
}

// CreateAccount creates and stores a new token account, rejecting duplicates
func (l *Ledger) CreateAccount(addr, owner, mint string) (*types.TokenAccount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	existed, err := l.accountStore.ExistsByAddr(addr)
	if err != nil {
		return nil, fmt.Errorf("could not check existence of account: %w", err)
	}
	if existed {
		return nil, errors.NewError(errors.ErrCodeRecordExists,
			fmt.Sprintf("token account %s already exists", addr))
	}

	account := &types.TokenAccount{
		Address: addr,
		Owner:   owner,
		Mint:    mint,
		Balance: uint256.NewInt(0),
	}
	if err := l.accountStore.Store(account); err != nil {
		return nil, fmt.Errorf("failed to store account: %w", err)
	}

	return account, nil
}

// GetAccount returns account with addr (nil if not exist)
func (l *Ledger) GetAccount(addr string) (*types.TokenAccount, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.accountStore.GetByAddr(addr)
}

// AccountExists checks if a token account exists
func (l *Ledger) AccountExists(addr string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.accountStore.ExistsByAddr(addr)
}

// Balance returns current balance for addr, zero for absent accounts
func (l *Ledger) Balance(addr string) (*uint256.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acc, err := l.accountStore.GetByAddr(addr)
	if err != nil {
		return uint256.NewInt(0), err
	}
	if acc == nil {
		return uint256.NewInt(0), nil
	}

	return new(uint256.Int).Set(acc.Balance), nil
}

// StageAccount stages a new token account into batch, rejecting duplicates
func (l *Ledger) StageAccount(batch db.DatabaseBatch, account *types.TokenAccount) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existed, err := l.accountStore.ExistsByAddr(account.Address)
	if err != nil {
		return fmt.Errorf("could not check existence of account: %w", err)
	}
	if existed {
		return errors.NewError(errors.ErrCodeRecordExists,
			fmt.Sprintf("token account %s already exists", account.Address))
	}

	return l.accountStore.StageStore(batch, account)
}

// StageTransfer stages a two-leg transfer into batch: debit from, credit to.
// Nothing is visible to readers until the caller commits the batch, and a
// failed precondition stages nothing at all.
func (l *Ledger) StageTransfer(batch db.DatabaseBatch, fromAddr, toAddr string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount == nil || amount.IsZero() {
		return errors.NewError(errors.ErrCodeInvalidAmount, errors.ErrMsgInvalidAmount)
	}

	from, err := l.accountStore.GetByAddr(fromAddr)
	if err != nil {
		return fmt.Errorf("could not load account %s: %w", fromAddr, err)
	}
	if from == nil {
		return errors.NewError(errors.ErrCodeAccountNotFound,
			fmt.Sprintf("token account %s does not exist", fromAddr))
	}

	to, err := l.accountStore.GetByAddr(toAddr)
	if err != nil {
		return fmt.Errorf("could not load account %s: %w", toAddr, err)
	}
	if to == nil {
		return errors.NewError(errors.ErrCodeAccountNotFound,
			fmt.Sprintf("token account %s does not exist", toAddr))
	}

	if from.Mint != to.Mint {
		return errors.NewError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("mint mismatch between %s and %s", fromAddr, toAddr))
	}

	if from.Balance.Cmp(amount) < 0 {
		return errors.NewError(errors.ErrCodeInsufficientBalance, errors.ErrMsgInsufficientBalance)
	}

	debited := from.Clone()
	credited := to.Clone()
	debited.Balance.Sub(debited.Balance, amount)
	credited.Balance.Add(credited.Balance, amount)

	if err := l.accountStore.StageStore(batch, debited); err != nil {
		return err
	}
	if err := l.accountStore.StageStore(batch, credited); err != nil {
		return err
	}

	logx.Debug("LEDGER", fmt.Sprintf("Staged transfer %s: %s -> %s", amount.String(), fromAddr, toAddr))
	return nil
}

// Mint credits freshly issued tokens to addr, creating the account when
// absent. Only the pool bootstrap and top-up paths call this, gated on the
// configured authority.
func (l *Ledger) Mint(addr, owner, mint string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount == nil || amount.IsZero() {
		return errors.NewError(errors.ErrCodeInvalidAmount, errors.ErrMsgInvalidAmount)
	}

	acc, err := l.accountStore.GetByAddr(addr)
	if err != nil {
		return fmt.Errorf("could not load account %s: %w", addr, err)
	}
	if acc == nil {
		acc = &types.TokenAccount{
			Address: addr,
			Owner:   owner,
			Mint:    mint,
			Balance: uint256.NewInt(0),
		}
	} else {
		acc = acc.Clone()
	}

	acc.Balance.Add(acc.Balance, amount)
	if err := l.accountStore.Store(acc); err != nil {
		return fmt.Errorf("failed to store account: %w", err)
	}

	logx.Info("LEDGER", fmt.Sprintf("Minted %s to %s", amount.String(), addr))
	return nil
}
