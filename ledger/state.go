// Package ledger contains the in-memory ledger state assembled by the
// genesis bootstrap: the account directory, the singleton system parameter
// store, the time/epoch controller, block metadata, and the bootstrap phase
// machine that makes the mandated step ordering structural.
//
// During genesis exactly one logical writer exists (the orchestrator) and no
// other subsystem is active, so the state carries no locking. The state is
// either completed in full and handed to the storage layer, or discarded
// entirely; there is no partial-commit path.
package ledger

import (
	"crypto/sha256"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/inter"
)

// State is the ledger state under construction.
type State struct {
	phase Phase

	// Accounts is the account directory.
	Accounts *Directory

	// Params is the singleton system parameter store.
	Params *ParamStore

	// Clock is the time and epoch controller.
	Clock *Clock

	// Block is the block metadata record, installed late in the base
	// sequence. Nil until then.
	Block *BlockMeta
}

// NewState returns an empty, uninitialized ledger state.
func NewState() *State {
	return &State{
		phase:    PhaseUninitialized,
		Accounts: NewDirectory(),
		Params:   NewParamStore(),
		Clock:    NewClock(),
	}
}

// CreateFrameworkAccount creates the reserved framework account and derives
// the internal governance capability authorizing control over the system
// parameter store. This is the first bootstrap step; the returned capability
// must immediately be transferred to the parameter store so no other code
// path can mint fresh authority over the framework account.
func (s *State) CreateFrameworkAccount() (*Account, *GovernanceCapability, error) {
	if err := s.requirePhase("create framework account", PhaseUninitialized); err != nil {
		return nil, nil, err
	}
	acc, err := s.Accounts.Create(FrameworkAddress)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Advance(PhaseUninitialized, PhaseAccountsBootstrapped); err != nil {
		return nil, nil, err
	}
	return acc, &GovernanceCapability{}, nil
}

// StartClock marks time as started. This must be the last step of the base
// sequence: the transition is refused unless every singleton parameter has
// been written and the block metadata record exists.
func (s *State) StartClock(t inter.Timestamp) error {
	if err := s.requirePhase("start clock", PhaseParametersInitialized); err != nil {
		return err
	}
	if !s.Params.Complete() {
		return &aurum.SequencingError{Op: "start clock", Detail: "parameter store incomplete"}
	}
	if s.Block == nil {
		return &aurum.SequencingError{Op: "start clock", Detail: "block metadata not initialized"}
	}
	if err := s.Clock.start(t); err != nil {
		return err
	}
	return s.Advance(PhaseParametersInitialized, PhaseTimeStarted)
}

// stateFingerprint is the canonical RLP projection of the ledger state.
type stateFingerprint struct {
	Phase       uint8
	Params      ParamRecord
	Accounts    []AccountRecord
	BlockHeight uint64
	BlockTime   uint64
	GenesisTime uint64
	Epoch       uint64
}

// Fingerprint hashes the canonical projection of the ledger state. Two
// independent bootstraps of the same configuration produce identical
// fingerprints; the combined fingerprint of the full genesis result is the
// trust anchor nodes compare before consensus exists to arbitrate
// discrepancies.
func (s *State) Fingerprint() hash.Hash {
	fp := stateFingerprint{
		Phase:       uint8(s.phase),
		Params:      s.Params.Record(),
		Accounts:    s.Accounts.SortedRecords(),
		GenesisTime: uint64(s.Clock.GenesisTime()),
		Epoch:       uint64(s.Clock.CurrentEpoch()),
	}
	if s.Block != nil {
		fp.BlockHeight = uint64(s.Block.Height)
		fp.BlockTime = uint64(s.Block.Time)
	}
	hasher := sha256.New()
	err := rlp.Encode(hasher, &fp)
	if err != nil {
		panic("can't hash: " + err.Error())
	}
	return hash.BytesToHash(hasher.Sum(nil))
}
