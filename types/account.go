package types

import (
	"github.com/holiman/uint256"
)

// TokenAccount holds a balance of the pool's accepted asset. Participant
// wallet accounts are keyed by the owner identity; the custody account is
// keyed by its derived address and owned by the pool record.
type TokenAccount struct {
	Address string       `json:"address"`
	Owner   string       `json:"owner"`
	Mint    string       `json:"mint"`
	Balance *uint256.Int `json:"balance"`
}

// Clone returns a copy safe to mutate without touching stored state
func (a *TokenAccount) Clone() *TokenAccount {
	return &TokenAccount{
		Address: a.Address,
		Owner:   a.Owner,
		Mint:    a.Mint,
		Balance: new(uint256.Int).Set(a.Balance),
	}
}
