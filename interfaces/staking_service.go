package interfaces

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/seededlabs/seedpool/staking"
	"github.com/seededlabs/seedpool/types"
)

// StakingService is the surface the RPC layer talks to. Amounts are base
// units of the pool asset.
type StakingService interface {
	Bootstrap(ctx context.Context, owner string) (*types.StakeRecord, bool, error)
	EnterStake(ctx context.Context, owner string, amount *uint256.Int) (*types.StakeRecord, error)
	BeginUnstake(ctx context.Context, owner string, amount *uint256.Int) (*types.StakeRecord, error)
	Harvest(ctx context.Context, owner string) (*uint256.Int, error)
	QueryBalances(ctx context.Context, owner string) (*staking.Balances, error)
	PoolInfo(ctx context.Context) (*staking.PoolInfo, error)
}
