package staking

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/seededlabs/seedpool/config"
)

func TestPendingRewardZeroElapsed(t *testing.T) {
	staked := uint256.NewInt(1_000_000_000)
	reward := PendingReward(staked, 1000, 1000)
	if !reward.IsZero() {
		t.Errorf("Expected zero reward for zero elapsed time, got %s", reward.Dec())
	}
}

func TestPendingRewardTenDays(t *testing.T) {
	staked := uint256.NewInt(1_000_000_000)
	// 10 days at 5/10000 per day: 1e9 * 10 * 5 / 10000
	reward := PendingReward(staked, 0, 10*config.DayInSeconds)
	if want := uint256.NewInt(5_000_000); reward.Cmp(want) != 0 {
		t.Errorf("Expected %s, got %s", want.Dec(), reward.Dec())
	}
}

func TestPendingRewardSingleDay(t *testing.T) {
	staked := uint256.NewInt(1_000_000_000)
	reward := PendingReward(staked, 0, config.DayInSeconds)
	if want := uint256.NewInt(500_000); reward.Cmp(want) != 0 {
		t.Errorf("Expected %s, got %s", want.Dec(), reward.Dec())
	}
}

func TestPendingRewardPartialDay(t *testing.T) {
	staked := uint256.NewInt(1_000_000_000)
	reward := PendingReward(staked, 0, config.DayInSeconds-1)
	if !reward.IsZero() {
		t.Errorf("Partial day must earn nothing, got %s", reward.Dec())
	}
}

func TestPendingRewardClockSkewClamps(t *testing.T) {
	staked := uint256.NewInt(1_000_000_000)
	reward := PendingReward(staked, 10*config.DayInSeconds, 0)
	if !reward.IsZero() {
		t.Errorf("Negative elapsed time must clamp to zero, got %s", reward.Dec())
	}
}

func TestPendingRewardNothingStaked(t *testing.T) {
	if r := PendingReward(uint256.NewInt(0), 0, 10*config.DayInSeconds); !r.IsZero() {
		t.Errorf("Zero stake must earn nothing, got %s", r.Dec())
	}
	if r := PendingReward(nil, 0, 10*config.DayInSeconds); !r.IsZero() {
		t.Errorf("Nil stake must earn nothing, got %s", r.Dec())
	}
}

func TestElapsedDays(t *testing.T) {
	cases := []struct {
		last, now int64
		want      uint64
	}{
		{0, 0, 0},
		{0, config.DayInSeconds - 1, 0},
		{0, config.DayInSeconds, 1},
		{0, 10*config.DayInSeconds + 5, 10},
		{config.DayInSeconds, 0, 0},
	}
	for _, c := range cases {
		if got := ElapsedDays(c.last, c.now); got != c.want {
			t.Errorf("ElapsedDays(%d, %d) = %d, want %d", c.last, c.now, got, c.want)
		}
	}
}
