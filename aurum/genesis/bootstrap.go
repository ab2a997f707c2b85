// The genesis orchestrator.
//
// Bootstrap drives every subsystem in the mandated order and finalizes the
// initial validator set. It runs exactly once per network lineage: every node
// executes the same sequence independently before any consensus exists, so
// the whole path is single-threaded, free of wall-clock reads and randomness,
// and either completes fully or its result is discarded (a non-nil error
// means the returned state is void and must never be persisted).

package genesis

import (
	"crypto/sha256"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/sirupsen/logrus"

	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/coin"
	"github.com/aurumchain/go-aurum/ledger"
	"github.com/aurumchain/go-aurum/stake"
)

var log = logrus.WithField("module", "genesis")

// Result is the fully initialized ledger produced by a successful bootstrap.
// It is consumed by the storage layer and, once consensus starts operating,
// by the consensus layer through the stake registry's validator set.
type Result struct {
	State *ledger.State
	Vault *coin.Vault
	Fees  *coin.FeeBurner
	Stake *stake.Registry
}

// Bootstrap converts the genesis configuration into the canonical initial
// ledger state. Calling it twice against the same lineage, or persisting its
// result after an error, is an operational error; there is no partial-success
// state.
func Bootstrap(g *Genesis) (*Result, error) {
	return bootstrap(g, nil)
}

// testFunding carries the dev-only core resources funding request.
type testFunding struct {
	amount uint64
}

// BootstrapWithTestFunding runs the same sequence as Bootstrap and
// additionally creates the privileged core resources test account with the
// given initial balance. This path exists for test and development networks
// only; it is a distinct entry point and is unreachable from a production
// bootstrap.
func BootstrapWithTestFunding(g *Genesis, amount uint64) (*Result, error) {
	return bootstrap(g, &testFunding{amount: amount})
}

func bootstrap(g *Genesis, funding *testFunding) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := validateRoster(g); err != nil {
		return nil, err
	}

	st := ledger.NewState()

	// 1. Reserved framework account; its governance capability goes
	// straight to the parameter store so no other code path can mint
	// authority over it.
	framework, gov, err := st.CreateFrameworkAccount()
	if err != nil {
		return nil, err
	}
	if err := st.Params.BindGovernance(gov); err != nil {
		return nil, err
	}
	log.WithField("address", framework.Address.Hex()).Debug("framework account created")

	// 2. Account-subsystem parameters on the framework account.
	if err := st.Params.SetScriptIdentifiers(g.Rules.Scripts); err != nil {
		return nil, err
	}

	// 3. Consensus configuration, protocol version, stake subsystem
	// (registry only), staking parameters, gas schedule — strictly in
	// this order.
	if err := st.Params.SetConsensusParams(g.Rules.Consensus); err != nil {
		return nil, err
	}
	if err := st.Params.SetProtocolVersion(g.Rules.ProtocolVersion); err != nil {
		return nil, err
	}
	registry, err := stake.NewRegistry(st)
	if err != nil {
		return nil, err
	}
	if err := st.Params.SetStakingRules(g.Rules.Staking); err != nil {
		return nil, err
	}
	if err := st.Params.SetGasSchedule(g.Rules.GasSchedule); err != nil {
		return nil, err
	}

	// 4. Chain identity.
	if err := st.Params.SetChainID(g.Rules.ChainID); err != nil {
		return nil, err
	}

	// 5. Reconfiguration/epoch-transition subsystem.
	if err := st.Params.SetEpochInterval(g.Rules.EpochInterval); err != nil {
		return nil, err
	}

	// 6. Block metadata tracking with the configured epoch interval.
	if err := st.InitBlockMeta(g.GenesisTime); err != nil {
		return nil, err
	}
	if err := st.Advance(ledger.PhaseAccountsBootstrapped, ledger.PhaseParametersInitialized); err != nil {
		return nil, err
	}

	// 7. Time starts. Must be the last step of the base sequence; the
	// ledger refuses the transition if any singleton is missing.
	if err := st.StartClock(g.GenesisTime); err != nil {
		return nil, err
	}
	log.WithField("time", g.GenesisTime.Time()).Debug("chain time started")

	// 9. Native coin: the vault issues the canonical capability pair.
	// The mint capability is retained by the stake registry for reward
	// payments; the burn capability goes to the fee subsystem.
	vault, rewardMint, burn, err := coin.Initialize(st)
	if err != nil {
		return nil, err
	}
	if err := registry.RetainRewardCapability(vault, rewardMint); err != nil {
		return nil, err
	}
	fees, err := coin.NewFeeBurner(vault, burn)
	if err != nil {
		return nil, err
	}

	// The one-shot genesis grant funds the roster (and, on the dev path,
	// the core resources account) and nothing else. It is destroyed as
	// soon as the roster is processed.
	grant, err := vault.IssueGenesisGrant()
	if err != nil {
		return nil, err
	}

	// 8. (dev path only) privileged core resources test account.
	if funding != nil {
		if err := fundCoreResources(st, vault, grant, funding.amount); err != nil {
			return nil, err
		}
	}

	// 10. Validator roster bootstrap and the first epoch transition.
	if err := initializeValidators(st, vault, grant, registry, g.Validators); err != nil {
		return nil, err
	}

	res := &Result{
		State: st,
		Vault: vault,
		Fees:  fees,
		Stake: registry,
	}
	log.WithFields(logrus.Fields{
		"validators":  len(g.Validators),
		"supply":      vault.TotalSupply(),
		"fingerprint": res.Fingerprint().String(),
	}).Info("genesis bootstrap complete")
	return res, nil
}

// validateRoster enforces the roster-wide invariants before any mutation:
// unique owners and stake bounds. The rewards-rate and voting-power-limit
// invariants are part of rules validation and already hold here.
func validateRoster(g *Genesis) error {
	seen := make(map[common.Address]bool, len(g.Validators))
	for i := range g.Validators {
		v := &g.Validators[i]
		if seen[v.OwnerAddress] {
			return &aurum.DuplicateAddressError{Address: v.OwnerAddress}
		}
		seen[v.OwnerAddress] = true
		if v.StakeAmount < g.Rules.Staking.MinimumStake || v.StakeAmount > g.Rules.Staking.MaximumStake {
			return &aurum.InvariantViolationError{
				Invariant: "stake bounds",
				Detail:    "stake amount outside [minimum_stake, maximum_stake] for " + v.OwnerAddress.Hex(),
			}
		}
	}
	return nil
}

// initializeValidators turns the roster into a populated validator set and
// triggers the first epoch transition. Any failure aborts the whole
// bootstrap: a malformed genesis roster must never silently produce an
// incomplete validator set.
func initializeValidators(st *ledger.State, vault *coin.Vault, grant *coin.MintCapability, registry *stake.Registry, roster []ValidatorConfiguration) error {
	if err := st.Advance(ledger.PhaseCoinInitialized, ledger.PhaseValidatorsJoining); err != nil {
		return err
	}

	for i := range roster {
		v := &roster[i]
		owner, err := createValidatorAccounts(st.Accounts, v)
		if err != nil {
			return err
		}
		if err := vault.Register(owner); err != nil {
			return err
		}
		if err := vault.Mint(grant, owner, v.StakeAmount); err != nil {
			return err
		}
		if _, err := registry.InitializePool(owner, v.OperatorAddress, v.VoterAddress, v.StakeAmount); err != nil {
			return err
		}
		if err := registry.RotateConsensusKey(v.OwnerAddress, v.ConsensusPubKey, v.ProofOfPossession); err != nil {
			return err
		}
		if err := registry.SetNetworkAddresses(v.OwnerAddress, v.NetworkAddresses, v.FullNodeNetworkAddresses); err != nil {
			return err
		}
		if err := registry.JoinValidatorSet(v.OwnerAddress); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"owner": v.OwnerAddress.Hex(),
			"stake": v.StakeAmount,
		}).Debug("validator joined pending set")
	}

	// No further minting is possible via this path: the initial supply
	// contract is fixed here. The reward capability retained by the stake
	// registry is a separate instance.
	grant.Destroy()
	vault.Seal()

	if _, err := registry.FinalizeEpoch(); err != nil {
		return err
	}
	return st.Advance(ledger.PhaseValidatorsJoining, ledger.PhaseEpoch1Active)
}

// createValidatorAccounts resolves the three role addresses of one roster
// entry into ledger accounts. The resolutions are independent with explicit
// equality checks: the operator aliases the owner when equal, and the voter
// aliases whichever of owner/operator it matches. Creating an address that
// already exists is fatal.
func createValidatorAccounts(dir *ledger.Directory, v *ValidatorConfiguration) (*ledger.Account, error) {
	owner, err := dir.Create(v.OwnerAddress)
	if err != nil {
		return nil, err
	}
	operatorAliasesOwner := v.OperatorAddress == v.OwnerAddress
	if !operatorAliasesOwner {
		if _, err := dir.Create(v.OperatorAddress); err != nil {
			return nil, err
		}
	}
	voterAliasesOwner := v.VoterAddress == v.OwnerAddress
	voterAliasesOperator := v.VoterAddress == v.OperatorAddress
	if !voterAliasesOwner && !voterAliasesOperator {
		if _, err := dir.Create(v.VoterAddress); err != nil {
			return nil, err
		}
	}
	return owner, nil
}

// fundCoreResources creates the privileged core resources test account and
// mints it initial funds through the genesis grant. Only reachable from
// BootstrapWithTestFunding.
func fundCoreResources(st *ledger.State, vault *coin.Vault, grant *coin.MintCapability, amount uint64) error {
	acc, err := st.Accounts.Create(ledger.CoreResourcesAddress)
	if err != nil {
		return err
	}
	if err := vault.Register(acc); err != nil {
		return err
	}
	if err := vault.Mint(grant, acc, amount); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"address": acc.Address.Hex(),
		"amount":  amount,
	}).Warn("core resources test account funded; not a production chain")
	return nil
}

// resultFingerprint is the canonical RLP projection of the full genesis
// result.
type resultFingerprint struct {
	State  hash.Hash
	Supply uint64
	Sealed bool
	Pools  []stake.PoolRecord
	Epoch  hash.Hash
}

// Fingerprint hashes the complete genesis result. This is the trust anchor
// every node must independently derive: two executions of the same
// configuration produce identical fingerprints.
func (r *Result) Fingerprint() hash.Hash {
	fp := resultFingerprint{
		State:  r.State.Fingerprint(),
		Supply: r.Vault.TotalSupply(),
		Sealed: r.Vault.Sealed(),
		Pools:  r.Stake.SortedPoolRecords(),
		Epoch:  r.Stake.EpochState().Hash(),
	}
	hasher := sha256.New()
	err := rlp.Encode(hasher, &fp)
	if err != nil {
		panic("can't hash: " + err.Error())
	}
	return hash.BytesToHash(hasher.Sum(nil))
}
