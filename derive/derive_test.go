package derive

import (
	"testing"

	"github.com/seededlabs/seedpool/config"
	"github.com/seededlabs/seedpool/errors"
)

const (
	testProtocol = "staking_05"
	testOwner    = "A1iceStakerWa11et111111111111111111111111111"
	otherOwner   = "BobStakerWa11et22222222222222222222222222222"
)

func TestDeriveDeterministic(t *testing.T) {
	addr1, bump1, err := Derive([]byte(testProtocol))
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	addr2, bump2, err := Derive([]byte(testProtocol))
	if err != nil {
		t.Fatalf("Derive failed on repeat: %v", err)
	}

	if addr1 != addr2 {
		t.Errorf("Expected identical addresses, got %s and %s", addr1, addr2)
	}
	if bump1 != bump2 {
		t.Errorf("Expected identical bumps, got %d and %d", bump1, bump2)
	}
}

func TestDeriveDistinctSeeds(t *testing.T) {
	poolAddr, _, err := PoolAddress(testProtocol)
	if err != nil {
		t.Fatalf("PoolAddress failed: %v", err)
	}
	custodyAddr, _, err := CustodyAddress(testProtocol)
	if err != nil {
		t.Fatalf("CustodyAddress failed: %v", err)
	}

	if poolAddr == custodyAddr {
		t.Errorf("Pool and custody addresses must differ, both %s", poolAddr)
	}
}

func TestStakeAddressPerOwner(t *testing.T) {
	addrA, _, err := StakeAddress(testProtocol, testOwner)
	if err != nil {
		t.Fatalf("StakeAddress failed: %v", err)
	}
	addrB, _, err := StakeAddress(testProtocol, otherOwner)
	if err != nil {
		t.Fatalf("StakeAddress failed: %v", err)
	}

	if addrA == addrB {
		t.Errorf("Distinct owners derived the same address %s", addrA)
	}

	// Repeating for the same owner reproduces the address exactly.
	again, _, err := StakeAddress(testProtocol, testOwner)
	if err != nil {
		t.Fatalf("StakeAddress failed on repeat: %v", err)
	}
	if again != addrA {
		t.Errorf("Expected %s, got %s", addrA, again)
	}
}

func TestStakeAddressRejectsInvalidIdentity(t *testing.T) {
	_, _, err := StakeAddress(testProtocol, "0-not-base58-0")
	if err == nil {
		t.Fatal("Expected error for invalid identity")
	}
	if errors.CodeOf(err) != errors.ErrCodeInvalidAddress {
		t.Errorf("Expected invalid_address, got %v", errors.CodeOf(err))
	}
}

func TestDeriveRejectsOversizedSeed(t *testing.T) {
	long := make([]byte, config.MaxSeedLen+1)
	_, _, err := Derive(long)
	if err == nil {
		t.Fatal("Expected error for oversized seed")
	}
	if errors.CodeOf(err) != errors.ErrCodeDerivationFailed {
		t.Errorf("Expected derivation_failed, got %v", errors.CodeOf(err))
	}
}

func TestSplitIdentity(t *testing.T) {
	seed0, seed1 := SplitIdentity(testOwner)
	if len(seed0) != config.IdentitySeedSplit {
		t.Errorf("Expected first segment of %d chars, got %d", config.IdentitySeedSplit, len(seed0))
	}
	if seed0+seed1 != testOwner {
		t.Errorf("Segments do not reassemble the identity: %s + %s", seed0, seed1)
	}
	if len(seed0) > config.MaxSeedLen || len(seed1) > config.MaxSeedLen {
		t.Error("Segment exceeds max seed length")
	}

	short0, short1 := SplitIdentity("short")
	if short0 != "short" || short1 != "" {
		t.Errorf("Short identity should not split, got %q and %q", short0, short1)
	}
}
