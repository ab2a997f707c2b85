// Package aurum defines the network rules and configuration parameters for
// the Aurum ledger.
//
// This package provides:
//   - Network identification constants (MainNet, TestNet, FakeNet)
//   - Chain identity and protocol version
//   - Staking economics (stake bounds, lockup, reward rate)
//   - Epoch interval configuration
//   - Opaque consensus and gas schedule blobs consumed by other subsystems
//
// The Rules type is the central configuration structure that defines all
// consensus-critical parameters for a given Aurum network deployment. Every
// field of Rules is projected into the ledger's singleton parameter store
// during genesis and is thereafter mutable only through governance.

package aurum

import (
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/aurumchain/go-aurum/inter"
)

// ChainID is the one-byte chain identity tag. It distinguishes network
// lineages and prevents cross-chain replay of signed material.
type ChainID uint8

// Network identification constants.
const (
	// MainNetChainID is the chain identity of the Aurum mainnet.
	MainNetChainID ChainID = 0x01

	// TestNetChainID is the chain identity of the public testnet.
	TestNetChainID ChainID = 0x02

	// FakeNetChainID is the chain identity used by local/fake networks
	// for testing and development.
	FakeNetChainID ChainID = 0xfa

	// maxVotingPowerIncreaseLimit bounds the voting-power-increase limit,
	// which expresses a percentage.
	maxVotingPowerIncreaseLimit = 100
)

// StakingRules defines the economic parameters of the stake subsystem.
// They are validated during genesis before any validator is processed.
type StakingRules struct {
	// MinimumStake is the least amount of coin a validator must commit.
	MinimumStake uint64

	// MaximumStake is the most coin a single validator may commit
	// (prevents centralization of voting power).
	MaximumStake uint64

	// LockupDuration is how long promoted stake stays locked after an
	// epoch transition.
	LockupDuration inter.Timestamp

	// AllowValidatorSetChanges controls whether validators may join or
	// leave the set after genesis.
	AllowValidatorSetChanges bool

	// RewardsRateNumerator and RewardsRateDenominator express the
	// per-epoch reward rate as a fraction. The denominator must be
	// nonzero.
	RewardsRateNumerator   uint64
	RewardsRateDenominator uint64

	// VotingPowerIncreaseLimit caps, as a percentage (0-100), how much
	// total voting power may grow within one epoch.
	VotingPowerIncreaseLimit uint64
}

// ScriptIdentifiers carries the prologue/epilogue identifiers used by
// transaction validation. They are opaque blobs from the point of view of the
// genesis sequence: genesis only records them on the framework account.
type ScriptIdentifiers struct {
	Prologue hexutil.Bytes
	Epilogue hexutil.Bytes
}

// Rules describes the complete static configuration of an Aurum network.
type Rules struct {
	// Name is the human-readable network name (e.g. "main", "test").
	Name string

	// ChainID is the one-byte chain identity tag.
	ChainID ChainID

	// ProtocolVersion is the protocol version recorded at genesis.
	ProtocolVersion uint64

	// EpochInterval is the target duration of one epoch, consumed by the
	// block metadata tracker.
	EpochInterval inter.Timestamp

	// Consensus is the opaque consensus configuration blob. It must be
	// non-empty; its interpretation belongs to the consensus layer.
	Consensus hexutil.Bytes

	// GasSchedule is the opaque gas schedule blob consumed by transaction
	// execution.
	GasSchedule hexutil.Bytes

	// Scripts holds the transaction validation script identifiers
	// installed on the framework account.
	Scripts ScriptIdentifiers

	// Staking holds the economic parameters of the stake subsystem.
	Staking StakingRules
}

// Validate checks the roster-independent invariants of the rules. It returns
// a ConfigurationError for malformed or missing blobs and an
// InvariantViolationError for out-of-bounds economic parameters.
func (r Rules) Validate() error {
	if r.Name == "" {
		return &ConfigurationError{Field: "name", Reason: "empty network name"}
	}
	if len(r.Consensus) == 0 {
		return &ConfigurationError{Field: "consensus", Reason: "empty consensus configuration"}
	}
	if r.EpochInterval == 0 {
		return &ConfigurationError{Field: "epochInterval", Reason: "zero epoch interval"}
	}
	return r.Staking.Validate()
}

// Validate checks the staking economics invariants.
func (s StakingRules) Validate() error {
	if s.RewardsRateDenominator == 0 {
		return &InvariantViolationError{
			Invariant: "rewards rate",
			Detail:    "zero denominator",
		}
	}
	if s.VotingPowerIncreaseLimit > maxVotingPowerIncreaseLimit {
		return &InvariantViolationError{
			Invariant: "voting power increase limit",
			Detail:    "must be a percentage within [0, 100]",
		}
	}
	if s.MinimumStake > s.MaximumStake {
		return &InvariantViolationError{
			Invariant: "stake bounds",
			Detail:    "minimum stake exceeds maximum stake",
		}
	}
	return nil
}

// MainNetRules returns the configuration of the Aurum mainnet.
// This is the production network configuration with conservative parameters.
func MainNetRules() Rules {
	return Rules{
		Name:            "main",
		ChainID:         MainNetChainID,
		ProtocolVersion: 1,
		EpochInterval:   inter.Timestamp(4 * time.Hour),
		Consensus:       DefaultConsensusBlob(),
		GasSchedule:     DefaultGasScheduleBlob(),
		Scripts:         DefaultScriptIdentifiers(),
		Staking:         DefaultStakingRules(),
	}
}

// TestNetRules returns the configuration of the public testnet. The testnet
// uses the same economics as mainnet for realistic testing.
func TestNetRules() Rules {
	cfg := MainNetRules()
	cfg.Name = "test"
	cfg.ChainID = TestNetChainID
	return cfg
}

// FakeNetRules returns the configuration of local/fake networks. Fakenet
// uses accelerated parameters for faster development cycles:
//   - shorter epochs (10 minutes vs 4 hours)
//   - short lockups (2 hours)
//   - permissive stake bounds so tiny test stakes are accepted
func FakeNetRules() Rules {
	cfg := MainNetRules()
	cfg.Name = "fake"
	cfg.ChainID = FakeNetChainID
	cfg.EpochInterval = inter.Timestamp(10 * time.Minute)
	cfg.Staking.MinimumStake = 0
	cfg.Staking.MaximumStake = 100_000_000_000_000
	cfg.Staking.LockupDuration = inter.Timestamp(2 * time.Hour)
	cfg.Staking.AllowValidatorSetChanges = true
	return cfg
}

// DefaultStakingRules returns the mainnet staking economics.
func DefaultStakingRules() StakingRules {
	return StakingRules{
		MinimumStake:             1_000_000,
		MaximumStake:             50_000_000_000_000,
		LockupDuration:           inter.Timestamp(14 * 24 * time.Hour),
		AllowValidatorSetChanges: true,
		RewardsRateNumerator:     1,
		RewardsRateDenominator:   100,
		VotingPowerIncreaseLimit: 20,
	}
}

// DefaultConsensusBlob returns the default opaque consensus configuration.
// The contents are interpreted by the consensus layer only; genesis merely
// requires the blob to be non-empty.
func DefaultConsensusBlob() hexutil.Bytes {
	return hexutil.Bytes{0x01}
}

// DefaultGasScheduleBlob returns the default opaque gas schedule.
func DefaultGasScheduleBlob() hexutil.Bytes {
	return hexutil.Bytes{0x01}
}

// DefaultScriptIdentifiers returns the default transaction validation script
// identifiers installed on the framework account.
func DefaultScriptIdentifiers() ScriptIdentifiers {
	return ScriptIdentifiers{
		Prologue: hexutil.Bytes("script_prologue"),
		Epilogue: hexutil.Bytes("script_epilogue"),
	}
}

// Copy creates a deep copy of Rules. The byte-slice fields would otherwise be
// shared between copies.
func (r Rules) Copy() Rules {
	cp := r
	cp.Consensus = append(hexutil.Bytes(nil), r.Consensus...)
	cp.GasSchedule = append(hexutil.Bytes(nil), r.GasSchedule...)
	cp.Scripts.Prologue = append(hexutil.Bytes(nil), r.Scripts.Prologue...)
	cp.Scripts.Epilogue = append(hexutil.Bytes(nil), r.Scripts.Epilogue...)
	return cp
}

// String returns a JSON representation of Rules for debugging and logging.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
