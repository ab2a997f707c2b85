// Stake pools.
//
// A pool is the per-validator record of committed funds and role bindings.
// Funds move between four buckets mirroring the validator lifecycle: active,
// pending_active, inactive, pending_inactive. The genesis path only ever
// populates the active bucket; the other buckets exist so the record is laid
// out the way the runtime staking operations expect once consensus starts.

package stake

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/aurumchain/go-aurum/inter"
	"github.com/aurumchain/go-aurum/inter/validatorpk"
)

// Pool is a validator's stake pool. Created when a validator account first
// registers; never destroyed during genesis.
type Pool struct {
	// Owner is the account that owns the pool and its funds.
	Owner common.Address

	// Operator is the address bound to operate the validator (key
	// rotation, joining). May alias the owner.
	Operator common.Address

	// Voter is the address bound to vote with the pool's stake in
	// governance. May alias the owner or operator.
	Voter common.Address

	// Stake buckets.
	Active          uint64
	PendingActive   uint64
	Inactive        uint64
	PendingInactive uint64

	// LockedUntil is the timestamp until which promoted stake stays
	// locked. Stamped at epoch promotion.
	LockedUntil inter.Timestamp

	// ConsensusKey is the pool's consensus public key, pending until the
	// epoch transition promotes the validator.
	ConsensusKey validatorpk.PubKey

	// NetworkAddresses and FullNodeNetworkAddresses are opaque serialized
	// endpoint lists consumed by the networking layer.
	NetworkAddresses         []byte
	FullNodeNetworkAddresses []byte

	// ValidatorID is the deterministic numeric identity assigned at the
	// first epoch transition. Zero while the validator is still pending.
	ValidatorID idx.ValidatorID
}

// TotalStake returns the pool's combined funds across all buckets.
func (p *Pool) TotalStake() uint64 {
	return p.Active + p.PendingActive + p.Inactive + p.PendingInactive
}

// PoolRecord is the canonical projection of a pool used by fingerprints.
type PoolRecord struct {
	Owner                    common.Address
	Operator                 common.Address
	Voter                    common.Address
	Active                   uint64
	LockedUntil              uint64
	ConsensusKey             []byte
	NetworkAddresses         []byte
	FullNodeNetworkAddresses []byte
	ValidatorID              uint32
}

func (p *Pool) record() PoolRecord {
	return PoolRecord{
		Owner:                    p.Owner,
		Operator:                 p.Operator,
		Voter:                    p.Voter,
		Active:                   p.Active,
		LockedUntil:              uint64(p.LockedUntil),
		ConsensusKey:             p.ConsensusKey.Bytes(),
		NetworkAddresses:         p.NetworkAddresses,
		FullNodeNetworkAddresses: p.FullNodeNetworkAddresses,
		ValidatorID:              uint32(p.ValidatorID),
	}
}
