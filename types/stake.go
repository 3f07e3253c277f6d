package types

import (
	"github.com/holiman/uint256"
)

// StakeRecord is the per-participant staking state. It lives at the address
// derived from the protocol name and the owner identity, exists from the
// first bootstrap onwards and is only ever zeroed, never deleted.
type StakeRecord struct {
	Owner           string       `json:"owner"`
	StakedAmount    *uint256.Int `json:"staked_amount"`
	LastAccrualTime int64        `json:"last_accrual_time"`
	Bump            uint8        `json:"bump"`
}

// Clone returns a copy safe to mutate without touching stored state
func (r *StakeRecord) Clone() *StakeRecord {
	return &StakeRecord{
		Owner:           r.Owner,
		StakedAmount:    new(uint256.Int).Set(r.StakedAmount),
		LastAccrualTime: r.LastAccrualTime,
		Bump:            r.Bump,
	}
}
