package ledger

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/seededlabs/seedpool/db"
	"github.com/seededlabs/seedpool/errors"
	"github.com/seededlabs/seedpool/store"
)

const (
	mint  = "SeededM1nt4444444444444444444444444444444444"
	alice = "A1iceStakerWa11et111111111111111111111111111"
	bob   = "BobStakerWa11et22222222222222222222222222222"
)

func newTestLedger(t *testing.T) (*Ledger, db.DatabaseProvider) {
	t.Helper()
	provider := db.NewMemoryProvider()
	accounts, err := store.NewGenericTokenAccountStore(provider)
	if err != nil {
		t.Fatalf("could not create account store: %v", err)
	}
	return NewLedger(accounts), provider
}

func TestCreateAccount(t *testing.T) {
	ldg, _ := newTestLedger(t)

	account, err := ldg.CreateAccount(alice, alice, mint)
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if !account.Balance.IsZero() {
		t.Errorf("New account must start empty, got %s", account.Balance.Dec())
	}

	if _, err := ldg.CreateAccount(alice, alice, mint); errors.CodeOf(err) != errors.ErrCodeRecordExists {
		t.Errorf("Expected record_exists for duplicate account, got %v", err)
	}
}

func TestBalanceAbsentAccount(t *testing.T) {
	ldg, _ := newTestLedger(t)

	balance, err := ldg.Balance(alice)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if !balance.IsZero() {
		t.Errorf("Absent account must report zero, got %s", balance.Dec())
	}
}

func TestMintCreatesAndCredits(t *testing.T) {
	ldg, _ := newTestLedger(t)

	if err := ldg.Mint(alice, alice, mint, uint256.NewInt(500)); err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if err := ldg.Mint(alice, alice, mint, uint256.NewInt(250)); err != nil {
		t.Fatalf("Second mint failed: %v", err)
	}

	balance, err := ldg.Balance(alice)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if balance.Cmp(uint256.NewInt(750)) != 0 {
		t.Errorf("Expected 750, got %s", balance.Dec())
	}

	if err := ldg.Mint(alice, alice, mint, uint256.NewInt(0)); errors.CodeOf(err) != errors.ErrCodeInvalidAmount {
		t.Errorf("Expected invalid_amount for zero mint, got %v", err)
	}
}

func TestStageTransfer(t *testing.T) {
	ldg, provider := newTestLedger(t)
	mustMint(t, ldg, alice, 1000)
	mustMint(t, ldg, bob, 100)

	batch := provider.Batch()
	if err := ldg.StageTransfer(batch, alice, bob, uint256.NewInt(400)); err != nil {
		t.Fatalf("StageTransfer failed: %v", err)
	}

	// Nothing is visible before the batch commits.
	if balance, _ := ldg.Balance(bob); balance.Cmp(uint256.NewInt(100)) != 0 {
		t.Errorf("Staged transfer leaked before commit, bob has %s", balance.Dec())
	}

	if err := batch.Write(); err != nil {
		t.Fatalf("batch write failed: %v", err)
	}

	if balance, _ := ldg.Balance(alice); balance.Cmp(uint256.NewInt(600)) != 0 {
		t.Errorf("Expected alice at 600, got %s", balance.Dec())
	}
	if balance, _ := ldg.Balance(bob); balance.Cmp(uint256.NewInt(500)) != 0 {
		t.Errorf("Expected bob at 500, got %s", balance.Dec())
	}
}

func TestStageTransferPreconditions(t *testing.T) {
	ldg, provider := newTestLedger(t)
	mustMint(t, ldg, alice, 100)

	batch := provider.Batch()

	if err := ldg.StageTransfer(batch, alice, bob, uint256.NewInt(50)); errors.CodeOf(err) != errors.ErrCodeAccountNotFound {
		t.Errorf("Expected account_not_found for absent recipient, got %v", err)
	}

	mustMint(t, ldg, bob, 1)
	if err := ldg.StageTransfer(batch, alice, bob, uint256.NewInt(101)); errors.CodeOf(err) != errors.ErrCodeInsufficientBalance {
		t.Errorf("Expected insufficient_balance, got %v", err)
	}
	if err := ldg.StageTransfer(batch, alice, bob, uint256.NewInt(0)); errors.CodeOf(err) != errors.ErrCodeInvalidAmount {
		t.Errorf("Expected invalid_amount, got %v", err)
	}

	// Failed preconditions staged nothing.
	if err := batch.Write(); err != nil {
		t.Fatalf("batch write failed: %v", err)
	}
	if balance, _ := ldg.Balance(alice); balance.Cmp(uint256.NewInt(100)) != 0 {
		t.Errorf("Alice balance changed after failed stages: %s", balance.Dec())
	}
}

func TestStageTransferMintMismatch(t *testing.T) {
	ldg, provider := newTestLedger(t)
	mustMint(t, ldg, alice, 100)
	if err := ldg.Mint(bob, bob, "A1tM1nt5555555555555555555555555555555555555", uint256.NewInt(1)); err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	batch := provider.Batch()
	if err := ldg.StageTransfer(batch, alice, bob, uint256.NewInt(10)); errors.CodeOf(err) != errors.ErrCodeInvalidRequest {
		t.Errorf("Expected invalid_request for mint mismatch, got %v", err)
	}
}

func mustMint(t *testing.T, ldg *Ledger, addr string, amount uint64) {
	t.Helper()
	if err := ldg.Mint(addr, addr, mint, uint256.NewInt(amount)); err != nil {
		t.Fatalf("Mint failed for %s: %v", addr, err)
	}
}
