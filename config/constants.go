package config

// Protocol-wide constants. Every component derives addresses and computes
// rewards from these values; they are fixed configuration, not runtime state.
const (
	// ProtocolName is the seed every derived address starts from. It doubles
	// as the deployment identifier, so changing it moves the whole pool.
	ProtocolName = "staking_05"

	// CustodySubSeed extends ProtocolName when deriving the custody account.
	CustodySubSeed = "pool_seeded"

	// Decimals is the smallest-unit scale of the accepted asset (10^9).
	Decimals = 9

	// DayInSeconds is the accrual granularity. Partial days earn nothing.
	DayInSeconds = 86400

	// DailyRewardRateNumerator over RewardRateDenominator gives the daily
	// reward rate: 5/10000 = 0.05% per day, integer fixed-point.
	DailyRewardRateNumerator = 5
	RewardRateDenominator    = 10000

	// MaxSeedLen bounds a single seed part fed into address derivation.
	MaxSeedLen = 32

	// IdentitySeedSplit is where a participant identity is cut into two
	// seed parts so each respects MaxSeedLen.
	IdentitySeedSplit = 22

	// MaxBumpSearch bounds the disambiguation search. Running past it is a
	// configuration error, not a retryable condition.
	MaxBumpSearch = 256
)

// GetDecimalsFactor returns the decimal scale clients should use
func GetDecimalsFactor() uint32 {
	return Decimals
}
