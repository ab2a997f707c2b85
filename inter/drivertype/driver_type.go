// Package drivertype defines the fundamental data structures for representing
// validators within the consensus driver. It serves as a bridge between the
// consensus engine and the staking registry, defining how validator
// identities, weights, and network endpoints are structured.

package drivertype

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/aurumchain/go-aurum/inter/validatorpk"
)

// Validator is the driver-side representation of a consensus validator.
// It encapsulates the cryptographic identity and the protocol weight of a
// single participant.
type Validator struct {
	// Weight represents the voting power of the validator. It corresponds to
	// the amount of coin held active in the validator's stake pool.
	Weight *big.Int

	// PubKey is the consensus public key used to verify the signatures of
	// events and blocks created by this validator.
	PubKey validatorpk.PubKey

	// NetworkAddresses is the opaque serialized list of validator endpoints,
	// consumed by the networking layer.
	NetworkAddresses []byte

	// FullNodeNetworkAddresses is the opaque serialized list of the
	// validator's full-node endpoints.
	FullNodeNetworkAddresses []byte
}

// Copy creates a deep copy of the Validator.
func (v Validator) Copy() Validator {
	cp := v
	if v.Weight != nil {
		cp.Weight = new(big.Int).Set(v.Weight)
	}
	cp.PubKey = v.PubKey.Copy()
	cp.NetworkAddresses = append([]byte(nil), v.NetworkAddresses...)
	cp.FullNodeNetworkAddresses = append([]byte(nil), v.FullNodeNetworkAddresses...)
	return cp
}

// ValidatorAndID pairs a validator's definition with its unique numeric index.
// Used when iterating over validator collections where both are needed.
type ValidatorAndID struct {
	// ValidatorID is the unique numeric identifier for the validator,
	// assigned deterministically in roster order at the first epoch
	// transition.
	ValidatorID idx.ValidatorID

	// Validator holds the detailed information for this ID.
	Validator Validator
}
