package service

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/seededlabs/seedpool/common"
	"github.com/seededlabs/seedpool/errors"
	"github.com/seededlabs/seedpool/logx"
	"github.com/seededlabs/seedpool/staking"
	"github.com/seededlabs/seedpool/types"
)

// StakingServiceImpl fronts the staking engine for transport layers. It owns
// request validation so the engine can assume well-formed identities.
type StakingServiceImpl struct {
	engine *staking.Engine
}

func NewStakingService(engine *staking.Engine) *StakingServiceImpl {
	return &StakingServiceImpl{engine: engine}
}

func (s *StakingServiceImpl) Bootstrap(ctx context.Context, owner string) (*types.StakeRecord, bool, error) {
	if err := validateOwner(owner); err != nil {
		return nil, false, err
	}

	record, created, err := s.engine.BootstrapParticipant(owner)
	if err != nil {
		logx.Error("RPC STAKING", fmt.Sprintf("Bootstrap failed for %s: %v", owner, err))
		return nil, false, err
	}
	return record, created, nil
}

func (s *StakingServiceImpl) EnterStake(ctx context.Context, owner string, amount *uint256.Int) (*types.StakeRecord, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	record, err := s.engine.EnterStake(owner, amount)
	if err != nil {
		logx.Error("RPC STAKING", fmt.Sprintf("EnterStake failed for %s: %v", owner, err))
		return nil, err
	}
	return record, nil
}

func (s *StakingServiceImpl) BeginUnstake(ctx context.Context, owner string, amount *uint256.Int) (*types.StakeRecord, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	record, err := s.engine.BeginUnstake(owner, amount)
	if err != nil {
		logx.Error("RPC STAKING", fmt.Sprintf("BeginUnstake failed for %s: %v", owner, err))
		return nil, err
	}
	return record, nil
}

func (s *StakingServiceImpl) Harvest(ctx context.Context, owner string) (*uint256.Int, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	reward, err := s.engine.Harvest(owner)
	if err != nil {
		logx.Error("RPC STAKING", fmt.Sprintf("Harvest failed for %s: %v", owner, err))
		return nil, err
	}
	return reward, nil
}

func (s *StakingServiceImpl) QueryBalances(ctx context.Context, owner string) (*staking.Balances, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	return s.engine.QueryBalances(owner)
}

func (s *StakingServiceImpl) PoolInfo(ctx context.Context) (*staking.PoolInfo, error) {
	return s.engine.Pool()
}

func validateOwner(owner string) error {
	if owner == "" || !common.IsValidBase58(owner) {
		return errors.NewError(errors.ErrCodeInvalidAddress, errors.ErrMsgInvalidAddress)
	}
	return nil
}
