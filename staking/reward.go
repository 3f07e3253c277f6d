package staking

import (
	"github.com/holiman/uint256"

	"github.com/seededlabs/seedpool/config"
)

// PendingReward computes the reward owed for the time staked since the last
// accrual. Pure integer arithmetic: every caller gets bit-identical results
// for identical inputs, which matters because this value moves custodied
// tokens. Partial days earn nothing and negative elapsed time (clock skew)
// clamps to zero.
func PendingReward(staked *uint256.Int, lastAccrualTime, currentLedgerTime int64) *uint256.Int {
	if staked == nil || staked.IsZero() {
		return uint256.NewInt(0)
	}

	elapsed := currentLedgerTime - lastAccrualTime
	if elapsed < 0 {
		elapsed = 0
	}
	days := uint64(elapsed / config.DayInSeconds)
	if days == 0 {
		return uint256.NewInt(0)
	}

	// reward = staked * days * numerator / denominator
	reward := new(uint256.Int).Mul(staked, uint256.NewInt(days))
	reward.Mul(reward, uint256.NewInt(config.DailyRewardRateNumerator))
	reward.Div(reward, uint256.NewInt(config.RewardRateDenominator))
	return reward
}

// ElapsedDays returns the number of whole accrual days between two ledger
// timestamps, clamped at zero.
func ElapsedDays(lastAccrualTime, currentLedgerTime int64) uint64 {
	elapsed := currentLedgerTime - lastAccrualTime
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / config.DayInSeconds)
}
