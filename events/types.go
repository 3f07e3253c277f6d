package events

import (
	"time"

	"github.com/holiman/uint256"
)

// EventType is an enum-like string type for stake lifecycle events
type EventType string

const (
	EventParticipantBootstrapped EventType = "ParticipantBootstrapped"
	EventStakeEntered            EventType = "StakeEntered"
	EventUnstakeStarted          EventType = "UnstakeStarted"
	EventRewardHarvested         EventType = "RewardHarvested"
)

// StakeEvent represents any event emitted by the stake lifecycle
type StakeEvent interface {
	Type() EventType
	Timestamp() time.Time
	Owner() string
}

// ParticipantBootstrapped event when a stake record is created
type ParticipantBootstrapped struct {
	owner     string
	stakeAddr string
	timestamp time.Time
}

func NewParticipantBootstrapped(owner, stakeAddr string) *ParticipantBootstrapped {
	return &ParticipantBootstrapped{
		owner:     owner,
		stakeAddr: stakeAddr,
		timestamp: time.Now(),
	}
}

func (e *ParticipantBootstrapped) Type() EventType {
	return EventParticipantBootstrapped
}

func (e *ParticipantBootstrapped) Timestamp() time.Time {
	return e.timestamp
}

func (e *ParticipantBootstrapped) Owner() string {
	return e.owner
}

func (e *ParticipantBootstrapped) StakeAddress() string {
	return e.stakeAddr
}

// StakeEntered event when tokens move into custody
type StakeEntered struct {
	owner     string
	amount    *uint256.Int
	staked    *uint256.Int
	timestamp time.Time
}

func NewStakeEntered(owner string, amount, staked *uint256.Int) *StakeEntered {
	return &StakeEntered{
		owner:     owner,
		amount:    amount,
		staked:    staked,
		timestamp: time.Now(),
	}
}

func (e *StakeEntered) Type() EventType {
	return EventStakeEntered
}

func (e *StakeEntered) Timestamp() time.Time {
	return e.timestamp
}

func (e *StakeEntered) Owner() string {
	return e.owner
}

func (e *StakeEntered) Amount() *uint256.Int {
	return e.amount
}

func (e *StakeEntered) StakedTotal() *uint256.Int {
	return e.staked
}

// UnstakeStarted event when tokens move back out of custody
type UnstakeStarted struct {
	owner     string
	amount    *uint256.Int
	staked    *uint256.Int
	timestamp time.Time
}

func NewUnstakeStarted(owner string, amount, staked *uint256.Int) *UnstakeStarted {
	return &UnstakeStarted{
		owner:     owner,
		amount:    amount,
		staked:    staked,
		timestamp: time.Now(),
	}
}

func (e *UnstakeStarted) Type() EventType {
	return EventUnstakeStarted
}

func (e *UnstakeStarted) Timestamp() time.Time {
	return e.timestamp
}

func (e *UnstakeStarted) Owner() string {
	return e.owner
}

func (e *UnstakeStarted) Amount() *uint256.Int {
	return e.amount
}

func (e *UnstakeStarted) StakedTotal() *uint256.Int {
	return e.staked
}

// RewardHarvested event when accrued reward pays out
type RewardHarvested struct {
	owner     string
	reward    *uint256.Int
	timestamp time.Time
}

func NewRewardHarvested(owner string, reward *uint256.Int) *RewardHarvested {
	return &RewardHarvested{
		owner:     owner,
		reward:    reward,
		timestamp: time.Now(),
	}
}

func (e *RewardHarvested) Type() EventType {
	return EventRewardHarvested
}

func (e *RewardHarvested) Timestamp() time.Time {
	return e.timestamp
}

func (e *RewardHarvested) Owner() string {
	return e.owner
}

func (e *RewardHarvested) Reward() *uint256.Int {
	return e.reward
}
