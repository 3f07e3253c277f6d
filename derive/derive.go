// Package derive maps protocol seeds to deterministic storage addresses.
// Any caller holding a participant's public identity and the protocol name
// reproduces the same address, so no directory of records is needed.
package derive

import (
	"crypto/sha256"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/seededlabs/seedpool/common"
	"github.com/seededlabs/seedpool/config"
	"github.com/seededlabs/seedpool/errors"
)

// domainTag keeps derived digests from colliding with any other use of
// sha256 over the same seed material.
const domainTag = "seedpool:derived-address:v1"

// Derive computes the storage address for the given seed parts together with
// the bump that made it valid. The bump is the smallest value in
// [0, MaxBumpSearch) whose digest fails to decode as an ed25519 curve point,
// which is what makes the address program-controlled: no private key can
// independently sign for it.
func Derive(seeds ...[]byte) (string, uint8, error) {
	for i, seed := range seeds {
		if len(seed) > config.MaxSeedLen {
			return "", 0, errors.NewError(errors.ErrCodeDerivationFailed,
				fmt.Sprintf("seed part %d exceeds max length %d", i, config.MaxSeedLen))
		}
	}

	for bump := 0; bump < config.MaxBumpSearch; bump++ {
		h := sha256.New()
		for _, seed := range seeds {
			h.Write(seed)
		}
		h.Write([]byte{uint8(bump)})
		h.Write([]byte(domainTag))
		digest := h.Sum(nil)

		if offCurve(digest) {
			return common.EncodeBytesToBase58(digest), uint8(bump), nil
		}
	}

	// Statistically unreachable: roughly half of all digests are off-curve.
	return "", 0, errors.NewError(errors.ErrCodeDerivationFailed, errors.ErrMsgDerivationFailed)
}

// offCurve reports whether digest is not a valid ed25519 point encoding
func offCurve(digest []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(digest)
	return err != nil
}

// PoolAddress derives the singleton pool record address from the protocol
// name alone.
func PoolAddress(protocolName string) (string, uint8, error) {
	return Derive([]byte(protocolName))
}

// CustodyAddress derives the pooled custody token account address.
func CustodyAddress(protocolName string) (string, uint8, error) {
	return Derive([]byte(protocolName), []byte(config.CustodySubSeed))
}

// StakeAddress derives a participant's stake record address. The identity is
// split into two fixed segments so each seed part respects MaxSeedLen.
func StakeAddress(protocolName, owner string) (string, uint8, error) {
	if !common.IsValidBase58(owner) {
		return "", 0, errors.NewError(errors.ErrCodeInvalidAddress, errors.ErrMsgInvalidAddress)
	}
	seed0, seed1 := SplitIdentity(owner)
	return Derive([]byte(protocolName), []byte(seed0), []byte(seed1))
}

// SplitIdentity cuts an identity string at the fixed split index. Both halves
// always reproduce the same way for the same identity.
func SplitIdentity(identity string) (string, string) {
	if len(identity) <= config.IdentitySeedSplit {
		return identity, ""
	}
	return identity[:config.IdentitySeedSplit], identity[config.IdentitySeedSplit:]
}
