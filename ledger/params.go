// Singleton system parameter store.
//
// The parameter store holds the write-once configuration records of the
// chain: chain identity, protocol version, gas schedule, consensus
// configuration, staking economics, epoch interval, and the transaction
// validation script identifiers installed on the framework account. Writes
// require the governance capability derived from the framework account at
// its creation; after genesis that capability is held by the governance
// subsystem only, so no externally-controlled address can ever gain
// parameter-writing authority.

package ledger

import (
	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/inter"
)

// GovernanceCapability authorizes writes to the parameter store. Exactly one
// is derived, when the framework account is created; it cannot be minted by
// any other code path.
type GovernanceCapability struct {
	holder *ParamStore
}

// ParamStore holds the singleton system parameter records.
type ParamStore struct {
	gov *GovernanceCapability

	consensus       []byte
	consensusSet    bool
	protocolVersion uint64
	versionSet      bool
	staking         aurum.StakingRules
	stakingSet      bool
	gasSchedule     []byte
	gasSet          bool
	chainID         aurum.ChainID
	chainIDSet      bool
	epochInterval   inter.Timestamp
	epochSet        bool
	scripts         aurum.ScriptIdentifiers
	scriptsSet      bool
}

// NewParamStore returns an empty, unbound parameter store. It accepts no
// writes until a governance capability is bound.
func NewParamStore() *ParamStore {
	return &ParamStore{}
}

// BindGovernance transfers the governance capability into the store. The
// hand-off happens exactly once, immediately after the framework account is
// created.
func (p *ParamStore) BindGovernance(cap *GovernanceCapability) error {
	if cap == nil {
		return &aurum.SequencingError{Op: "bind governance", Detail: "nil capability"}
	}
	if p.gov != nil {
		return &aurum.SequencingError{Op: "bind governance", Detail: "governance capability already bound"}
	}
	if cap.holder != nil {
		return &aurum.SequencingError{Op: "bind governance", Detail: "capability already transferred"}
	}
	cap.holder = p
	p.gov = cap
	return nil
}

// authorize rejects writes while no governance capability is bound, or after
// a singleton has already been written.
func (p *ParamStore) authorize(op string, alreadySet bool) error {
	if p.gov == nil {
		return &aurum.SequencingError{Op: op, Detail: "no governance capability bound"}
	}
	if alreadySet {
		return &aurum.SequencingError{Op: op, Detail: "singleton already written"}
	}
	return nil
}

// SetConsensusParams records the opaque consensus configuration blob.
// An empty blob is a ConfigurationError.
func (p *ParamStore) SetConsensusParams(blob []byte) error {
	if err := p.authorize("set consensus params", p.consensusSet); err != nil {
		return err
	}
	if len(blob) == 0 {
		return &aurum.ConfigurationError{Field: "consensus", Reason: "empty consensus configuration"}
	}
	p.consensus = append([]byte(nil), blob...)
	p.consensusSet = true
	return nil
}

// SetProtocolVersion records the protocol version.
func (p *ParamStore) SetProtocolVersion(v uint64) error {
	if err := p.authorize("set protocol version", p.versionSet); err != nil {
		return err
	}
	p.protocolVersion = v
	p.versionSet = true
	return nil
}

// SetStakingRules validates and records the staking economics.
func (p *ParamStore) SetStakingRules(rules aurum.StakingRules) error {
	if err := p.authorize("set staking rules", p.stakingSet); err != nil {
		return err
	}
	if err := rules.Validate(); err != nil {
		return err
	}
	p.staking = rules
	p.stakingSet = true
	return nil
}

// SetGasSchedule records the opaque gas schedule blob.
func (p *ParamStore) SetGasSchedule(blob []byte) error {
	if err := p.authorize("set gas schedule", p.gasSet); err != nil {
		return err
	}
	if len(blob) == 0 {
		return &aurum.ConfigurationError{Field: "gasSchedule", Reason: "empty gas schedule"}
	}
	p.gasSchedule = append([]byte(nil), blob...)
	p.gasSet = true
	return nil
}

// SetChainID records the one-byte chain identity tag.
func (p *ParamStore) SetChainID(id aurum.ChainID) error {
	if err := p.authorize("set chain id", p.chainIDSet); err != nil {
		return err
	}
	p.chainID = id
	p.chainIDSet = true
	return nil
}

// SetEpochInterval records the epoch interval consumed by block metadata
// tracking and the reconfiguration subsystem.
func (p *ParamStore) SetEpochInterval(interval inter.Timestamp) error {
	if err := p.authorize("set epoch interval", p.epochSet); err != nil {
		return err
	}
	if interval == 0 {
		return &aurum.ConfigurationError{Field: "epochInterval", Reason: "zero epoch interval"}
	}
	p.epochInterval = interval
	p.epochSet = true
	return nil
}

// SetScriptIdentifiers records the transaction validation prologue/epilogue
// identifiers on the framework account.
func (p *ParamStore) SetScriptIdentifiers(scripts aurum.ScriptIdentifiers) error {
	if err := p.authorize("set script identifiers", p.scriptsSet); err != nil {
		return err
	}
	p.scripts = aurum.ScriptIdentifiers{
		Prologue: append([]byte(nil), scripts.Prologue...),
		Epilogue: append([]byte(nil), scripts.Epilogue...),
	}
	p.scriptsSet = true
	return nil
}

// Complete reports whether every singleton has been written. The clock
// refuses to start until this holds.
func (p *ParamStore) Complete() bool {
	return p.consensusSet && p.versionSet && p.stakingSet &&
		p.gasSet && p.chainIDSet && p.epochSet && p.scriptsSet
}

// ConsensusParams returns the recorded consensus configuration blob.
func (p *ParamStore) ConsensusParams() []byte { return p.consensus }

// ProtocolVersion returns the recorded protocol version.
func (p *ParamStore) ProtocolVersion() uint64 { return p.protocolVersion }

// StakingRules returns the recorded staking economics.
func (p *ParamStore) StakingRules() aurum.StakingRules { return p.staking }

// GasSchedule returns the recorded gas schedule blob.
func (p *ParamStore) GasSchedule() []byte { return p.gasSchedule }

// ChainID returns the recorded chain identity tag.
func (p *ParamStore) ChainID() aurum.ChainID { return p.chainID }

// EpochInterval returns the recorded epoch interval.
func (p *ParamStore) EpochInterval() inter.Timestamp { return p.epochInterval }

// ScriptIdentifiers returns the recorded validation script identifiers.
func (p *ParamStore) ScriptIdentifiers() aurum.ScriptIdentifiers { return p.scripts }

// ParamRecord is the canonical projection of the parameter store used by
// state fingerprints.
type ParamRecord struct {
	Consensus       []byte
	ProtocolVersion uint64
	Staking         aurum.StakingRules
	GasSchedule     []byte
	ChainID         uint8
	EpochInterval   uint64
	Prologue        []byte
	Epilogue        []byte
}

// Record projects the parameter store into its canonical record.
func (p *ParamStore) Record() ParamRecord {
	return ParamRecord{
		Consensus:       p.consensus,
		ProtocolVersion: p.protocolVersion,
		Staking:         p.staking,
		GasSchedule:     p.gasSchedule,
		ChainID:         uint8(p.chainID),
		EpochInterval:   uint64(p.epochInterval),
		Prologue:        p.scripts.Prologue,
		Epilogue:        p.scripts.Epilogue,
	}
}
