// Package genesis defines the genesis configuration document and the
// bootstrap sequence that converts it into the canonical initial ledger
// state.
//
// Key concepts:
//   - Genesis: the complete configuration consumed exactly once at
//     network-creation time (rules, genesis time, validator roster)
//   - ValidatorConfiguration: one immutable roster entry
//   - Bootstrap: the one-shot orchestrator (see bootstrap.go)
//
// The document is JSON on disk. The encoding itself is an external concern;
// the only hard requirement is that it is canonical and order-preserving for
// the roster, which encoding/json's array handling satisfies.
package genesis

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/inter"
	"github.com/aurumchain/go-aurum/inter/validatorpk"
)

// ValidatorConfiguration is one immutable entry of the genesis validator
// roster. It is constructed from external configuration input, consumed
// exactly once by the orchestrator, and never persisted as-is: its fields are
// projected into ledger state.
type ValidatorConfiguration struct {
	// OwnerAddress owns the stake pool and its funds.
	OwnerAddress common.Address `json:"ownerAddress"`

	// OperatorAddress operates the validator. If it equals the owner, the
	// operator aliases the owner account.
	OperatorAddress common.Address `json:"operatorAddress"`

	// VoterAddress votes with the pool's stake. If it equals the owner or
	// operator, it aliases that account.
	VoterAddress common.Address `json:"voterAddress"`

	// StakeAmount is the coin amount minted to the owner and committed to
	// the stake pool. Must lie within the staking rules' stake bounds.
	StakeAmount uint64 `json:"stakeAmount"`

	// ConsensusPubKey is the validator's consensus public key.
	ConsensusPubKey validatorpk.PubKey `json:"consensusPubKey"`

	// ProofOfPossession attests ownership of the consensus key. A proof
	// that fails verification aborts the whole bootstrap.
	ProofOfPossession hexutil.Bytes `json:"proofOfPossession"`

	// NetworkAddresses is the opaque serialized validator endpoint list.
	NetworkAddresses hexutil.Bytes `json:"networkAddresses"`

	// FullNodeNetworkAddresses is the opaque serialized full-node
	// endpoint list.
	FullNodeNetworkAddresses hexutil.Bytes `json:"fullNodeNetworkAddresses"`
}

// Genesis is the complete genesis configuration of a network lineage.
type Genesis struct {
	// Rules carries every system parameter.
	Rules aurum.Rules `json:"rules"`

	// GenesisTime is the timestamp at which chain time starts.
	GenesisTime inter.Timestamp `json:"genesisTime"`

	// Validators is the ordered validator roster.
	Validators []ValidatorConfiguration `json:"validators"`
}

// Validate checks the document's roster-independent shape: the rules
// invariants, a nonzero genesis time, and a non-empty roster. Roster-wide
// invariants (duplicates, stake bounds) are checked by the orchestrator
// before any mutation.
func (g *Genesis) Validate() error {
	if err := g.Rules.Validate(); err != nil {
		return err
	}
	if g.GenesisTime == 0 {
		return &aurum.ConfigurationError{Field: "genesisTime", Reason: "zero genesis time"}
	}
	if len(g.Validators) == 0 {
		return &aurum.ConfigurationError{Field: "validators", Reason: "empty validator roster"}
	}
	for i := range g.Validators {
		v := &g.Validators[i]
		if v.ConsensusPubKey.Empty() {
			return &aurum.ConfigurationError{
				Field:  "validators.consensusPubKey",
				Reason: "empty consensus key for " + v.OwnerAddress.Hex(),
			}
		}
		if len(v.ProofOfPossession) == 0 {
			return &aurum.ConfigurationError{
				Field:  "validators.proofOfPossession",
				Reason: "empty proof of possession for " + v.OwnerAddress.Hex(),
			}
		}
	}
	return nil
}

// ReadGenesis decodes a genesis document from r.
func ReadGenesis(r io.Reader) (*Genesis, error) {
	var g Genesis
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, &aurum.ConfigurationError{Field: "document", Reason: err.Error()}
	}
	return &g, nil
}

// LoadGenesis reads and decodes the genesis document at path.
func LoadGenesis(path string) (*Genesis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGenesis(f)
}

// Write encodes the document as indented JSON to w. Used by tooling that
// assembles fakenet documents.
func (g *Genesis) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}
