// Epoch-level validator set state.
//
// EpochState is the authoritative record of the active validator set for the
// current epoch. It is empty at process start, populated by the first epoch
// transition, and fingerprinted with sha256 over its RLP encoding so nodes
// can compare it byte-for-byte.

package stake

import (
	"crypto/sha256"
	"sort"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/Fantom-foundation/lachesis-base/inter/pos"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/aurumchain/go-aurum/inter"
	"github.com/aurumchain/go-aurum/inter/drivertype"
)

// ValidatorProfiles maps validator IDs to their driver-side profiles.
type ValidatorProfiles map[idx.ValidatorID]drivertype.Validator

// Copy creates a deep copy of the profiles map.
func (vp ValidatorProfiles) Copy() ValidatorProfiles {
	cp := make(ValidatorProfiles, len(vp))
	for id, profile := range vp {
		cp[id] = profile.Copy()
	}
	return cp
}

// SortedIDs returns the profile IDs in ascending order. The only iteration
// order the map exposes.
func (vp ValidatorProfiles) SortedIDs() []idx.ValidatorID {
	ids := make([]idx.ValidatorID, 0, len(vp))
	for id := range vp {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// SortedValidators pairs every profile with its ID, in ascending ID order.
func (vp ValidatorProfiles) SortedValidators() []drivertype.ValidatorAndID {
	list := make([]drivertype.ValidatorAndID, 0, len(vp))
	for _, id := range vp.SortedIDs() {
		list = append(list, drivertype.ValidatorAndID{
			ValidatorID: id,
			Validator:   vp[id].Copy(),
		})
	}
	return list
}

// EpochState is the validator set state for one epoch.
type EpochState struct {
	// Epoch is the epoch this state is effective for. Zero means no epoch
	// transition has happened and the chain cannot make progress.
	Epoch idx.Epoch

	// EpochStart is the timestamp of the transition into this epoch.
	EpochStart inter.Timestamp

	// Validators is the authoritative weighted validator set.
	Validators *pos.Validators

	// Profiles holds the driver-side metadata per validator ID.
	Profiles ValidatorProfiles
}

// epochFingerprint is the canonical RLP projection of the epoch state.
type epochFingerprint struct {
	Epoch      uint64
	EpochStart uint64
	Validators *pos.Validators
	Profiles   []profileRecord
}

type profileRecord struct {
	ID                       uint32
	Weight                   uint64
	PubKey                   []byte
	NetworkAddresses         []byte
	FullNodeNetworkAddresses []byte
}

// Hash fingerprints the epoch state. Profiles are serialized in ascending ID
// order so the hash never depends on map iteration.
func (es EpochState) Hash() hash.Hash {
	fp := epochFingerprint{
		Epoch:      uint64(es.Epoch),
		EpochStart: uint64(es.EpochStart),
		Validators: es.Validators,
	}
	if fp.Validators == nil {
		fp.Validators = pos.NewBigBuilder().Build()
	}
	for _, id := range es.Profiles.SortedIDs() {
		profile := es.Profiles[id]
		fp.Profiles = append(fp.Profiles, profileRecord{
			ID:                       uint32(id),
			Weight:                   profile.Weight.Uint64(),
			PubKey:                   profile.PubKey.Bytes(),
			NetworkAddresses:         profile.NetworkAddresses,
			FullNodeNetworkAddresses: profile.FullNodeNetworkAddresses,
		})
	}
	hasher := sha256.New()
	err := rlp.Encode(hasher, &fp)
	if err != nil {
		panic("can't hash: " + err.Error())
	}
	return hash.BytesToHash(hasher.Sum(nil))
}

// Copy creates a deep copy of the EpochState.
func (es EpochState) Copy() EpochState {
	cp := es
	cp.Profiles = es.Profiles.Copy()
	return cp
}
