package events

import (
	"testing"
	"time"

	"github.com/holiman/uint256"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	id, ch := bus.Subscribe()
	if count := bus.GetTotalSubscriptions(); count != 1 {
		t.Errorf("Expected 1 subscriber, got %d", count)
	}

	event := NewStakeEntered("owner-a", uint256.NewInt(100), uint256.NewInt(100))
	go func() {
		bus.Publish(event)
	}()

	select {
	case received := <-ch:
		if received.Type() != EventStakeEntered {
			t.Errorf("Expected %s, got %s", EventStakeEntered, received.Type())
		}
		if received.Owner() != "owner-a" {
			t.Errorf("Expected owner-a, got %s", received.Owner())
		}
	case <-time.After(1 * time.Second):
		t.Error("Timeout waiting for event")
	}

	if !bus.Unsubscribe(id) {
		t.Error("Unsubscribe failed for live subscription")
	}
	if count := bus.GetTotalSubscriptions(); count != 0 {
		t.Errorf("Expected 0 subscribers after unsubscribe, got %d", count)
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe succeeded twice for the same id")
	}
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	bus := NewEventBus()

	done := make(chan struct{})
	go func() {
		bus.Publish(NewRewardHarvested("owner-a", uint256.NewInt(5)))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Error("Publish blocked with no subscribers")
	}
}

func TestLifecycleEventFields(t *testing.T) {
	before := time.Now().Add(-time.Second)

	bootstrapped := NewParticipantBootstrapped("owner-a", "addr-1")
	if bootstrapped.Type() != EventParticipantBootstrapped {
		t.Errorf("Unexpected type %s", bootstrapped.Type())
	}
	if bootstrapped.Timestamp().Before(before) {
		t.Error("Timestamp not set")
	}
	if bootstrapped.StakeAddress() != "addr-1" {
		t.Errorf("Expected addr-1, got %s", bootstrapped.StakeAddress())
	}

	unstaked := NewUnstakeStarted("owner-a", uint256.NewInt(30), uint256.NewInt(70))
	if unstaked.Type() != EventUnstakeStarted || unstaked.Owner() != "owner-a" {
		t.Errorf("Unexpected event %+v", unstaked)
	}
}
