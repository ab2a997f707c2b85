// Package stake maintains per-validator stake pools, role bindings, consensus
// key material, and the active validator set. It depends on the account
// directory (pool owners are ledger accounts), the coin vault (stake is
// native coin; rewards are paid through a retained mint capability), and the
// system parameter store (stake bounds and lockup come from the staking
// rules).
//
// Joining the validator set is only a request: a validator stays pending
// until an explicit epoch transition atomically promotes every pending
// validator into the active set. Before the first transition the chain has no
// active validators and cannot make progress.
package stake

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/Fantom-foundation/lachesis-base/inter/pos"
	"github.com/ethereum/go-ethereum/common"

	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/coin"
	"github.com/aurumchain/go-aurum/inter/drivertype"
	"github.com/aurumchain/go-aurum/inter/validatorpk"
	"github.com/aurumchain/go-aurum/ledger"
)

// Registry is the stake and validator registry.
type Registry struct {
	state *ledger.State
	vault *coin.Vault

	// rewardCap is the mint capability retained for paying validator
	// rewards. It is the only live mint authority after genesis.
	rewardCap *coin.MintCapability

	pools map[common.Address]*Pool
	// order preserves pool creation order so iteration is deterministic.
	order []common.Address

	// pending holds owners that requested to join the validator set, in
	// request order, awaiting the next epoch transition.
	pending []common.Address

	epoch EpochState
}

// NewRegistry initializes the stake subsystem (registry only, no
// validators). It must run during system parameter initialization, before
// time starts; creating it later is an orchestration bug. The coin vault does
// not exist yet at this point; the reward capability is transferred in later
// via RetainRewardCapability.
func NewRegistry(st *ledger.State) (*Registry, error) {
	if st.Phase() != ledger.PhaseAccountsBootstrapped {
		return nil, &aurum.SequencingError{
			Op:     "initialize stake registry",
			Detail: "chain is in phase " + st.Phase().String(),
		}
	}
	return &Registry{
		state: st,
		pools: make(map[common.Address]*Pool),
	}, nil
}

// RetainRewardCapability transfers the reward mint capability into the
// registry. Exactly one hand-off is allowed.
func (r *Registry) RetainRewardCapability(v *coin.Vault, cap *coin.MintCapability) error {
	if r.rewardCap != nil {
		return &aurum.SequencingError{Op: "retain reward capability", Detail: "already retained"}
	}
	if cap == nil {
		return &aurum.SequencingError{Op: "retain reward capability", Detail: "nil capability"}
	}
	r.vault = v
	r.rewardCap = cap
	return nil
}

// RewardCapability returns the retained reward mint capability.
func (r *Registry) RewardCapability() *coin.MintCapability {
	return r.rewardCap
}

// rules returns the staking economics from the parameter store.
func (r *Registry) rules() aurum.StakingRules {
	return r.state.Params.StakingRules()
}

// InitializePool creates a stake pool for owner with no third-party
// governance keys, binding the operator and voter addresses and moving
// amount coin from the owner's balance into the pool's active bucket.
func (r *Registry) InitializePool(owner *ledger.Account, operator, voter common.Address, amount uint64) (*Pool, error) {
	if owner.Modules.Stake {
		return nil, &aurum.DuplicateAddressError{Address: owner.Address}
	}
	rules := r.rules()
	if amount < rules.MinimumStake || amount > rules.MaximumStake {
		return nil, &aurum.InvariantViolationError{
			Invariant: "stake bounds",
			Detail:    "stake amount outside [minimum_stake, maximum_stake] for " + owner.Address.Hex(),
		}
	}
	if owner.Balance < amount {
		return nil, &aurum.InvariantViolationError{
			Invariant: "stake funding",
			Detail:    "owner balance below stake amount for " + owner.Address.Hex(),
		}
	}
	owner.Balance -= amount
	pool := &Pool{
		Owner:    owner.Address,
		Operator: operator,
		Voter:    voter,
		Active:   amount,
	}
	owner.Modules.Stake = true
	r.pools[owner.Address] = pool
	r.order = append(r.order, owner.Address)
	return pool, nil
}

// Pool returns the stake pool owned by owner, or nil.
func (r *Registry) Pool(owner common.Address) *Pool {
	return r.pools[owner]
}

// RotateConsensusKey sets the pool's pending consensus key after validating
// the proof of possession. A failed proof rejects the validator.
func (r *Registry) RotateConsensusKey(owner common.Address, key validatorpk.PubKey, proof []byte) error {
	pool := r.pools[owner]
	if pool == nil {
		return &aurum.ConfigurationError{Field: "owner", Reason: "no stake pool at " + owner.Hex()}
	}
	if err := validatorpk.VerifyPossession(owner, key, proof); err != nil {
		return &aurum.InvariantViolationError{
			Invariant: "proof of possession",
			Detail:    err.Error() + " for " + owner.Hex(),
		}
	}
	pool.ConsensusKey = key.Copy()
	return nil
}

// SetNetworkAddresses records the pool's opaque endpoint blobs.
func (r *Registry) SetNetworkAddresses(owner common.Address, network, fullNode []byte) error {
	pool := r.pools[owner]
	if pool == nil {
		return &aurum.ConfigurationError{Field: "owner", Reason: "no stake pool at " + owner.Hex()}
	}
	pool.NetworkAddresses = append([]byte(nil), network...)
	pool.FullNodeNetworkAddresses = append([]byte(nil), fullNode...)
	return nil
}

// JoinValidatorSet requests that owner's pool join the validator set. The
// join is pending until the next epoch transition promotes it.
func (r *Registry) JoinValidatorSet(owner common.Address) error {
	pool := r.pools[owner]
	if pool == nil {
		return &aurum.ConfigurationError{Field: "owner", Reason: "no stake pool at " + owner.Hex()}
	}
	if pool.ConsensusKey.Empty() {
		return &aurum.SequencingError{
			Op:     "join validator set",
			Detail: "consensus key not rotated for " + owner.Hex(),
		}
	}
	if pool.ValidatorID != 0 {
		return &aurum.SequencingError{
			Op:     "join validator set",
			Detail: "already active: " + owner.Hex(),
		}
	}
	for _, pending := range r.pending {
		if pending == owner {
			return &aurum.SequencingError{
				Op:     "join validator set",
				Detail: "already pending: " + owner.Hex(),
			}
		}
	}
	r.pending = append(r.pending, owner)
	return nil
}

// PendingCount returns the number of join requests awaiting promotion.
func (r *Registry) PendingCount() int {
	return len(r.pending)
}

// EpochState returns the validator set state of the current epoch.
func (r *Registry) EpochState() EpochState {
	return r.epoch
}

// ActiveSet returns the authoritative weighted validator set, or nil before
// the first epoch transition.
func (r *Registry) ActiveSet() *pos.Validators {
	return r.epoch.Validators
}

// IsActive reports whether owner's pool is in the active validator set.
func (r *Registry) IsActive(owner common.Address) bool {
	pool := r.pools[owner]
	if pool == nil || pool.ValidatorID == 0 || r.epoch.Validators == nil {
		return false
	}
	return r.epoch.Validators.Exists(pool.ValidatorID)
}

// FinalizeEpoch performs one epoch transition: it atomically promotes every
// pending validator into the active set, assigns deterministic validator IDs
// in request order, stamps lockups, and advances the epoch counter. An empty
// pending set is an invariant violation at genesis, since the resulting chain
// could never make progress.
func (r *Registry) FinalizeEpoch() (EpochState, error) {
	if len(r.pending) == 0 && r.epoch.Epoch == 0 {
		return EpochState{}, &aurum.InvariantViolationError{
			Invariant: "validator set",
			Detail:    "no validators joined before the first epoch transition",
		}
	}
	clock := r.state.Clock
	builder := pos.NewBigBuilder()
	profiles := r.epoch.Profiles.Copy()
	if profiles == nil {
		profiles = make(ValidatorProfiles)
	}
	nextID := idx.ValidatorID(len(profiles))
	for _, owner := range r.pending {
		pool := r.pools[owner]
		nextID++
		pool.ValidatorID = nextID
		pool.LockedUntil = clock.Now() + r.rules().LockupDuration
		profiles[pool.ValidatorID] = drivertype.Validator{
			Weight:                   new(big.Int).SetUint64(pool.Active),
			PubKey:                   pool.ConsensusKey.Copy(),
			NetworkAddresses:         append([]byte(nil), pool.NetworkAddresses...),
			FullNodeNetworkAddresses: append([]byte(nil), pool.FullNodeNetworkAddresses...),
		}
	}
	for id, profile := range profiles {
		builder.Set(id, profile.Weight)
	}
	epoch, err := clock.AdvanceEpoch()
	if err != nil {
		return EpochState{}, err
	}
	r.pending = nil
	r.epoch = EpochState{
		Epoch:      epoch,
		EpochStart: clock.Now(),
		Validators: builder.Build(),
		Profiles:   profiles,
	}
	return r.epoch, nil
}

// PayEpochReward mints one epoch's reward into owner's pool through the
// retained reward capability. This is the designated reward path: after
// genesis it is the only supply-increasing operation, since the genesis mint
// grant has been destroyed and the vault is sealed.
func (r *Registry) PayEpochReward(owner common.Address) (uint64, error) {
	pool := r.pools[owner]
	if pool == nil {
		return 0, &aurum.ConfigurationError{Field: "owner", Reason: "no stake pool at " + owner.Hex()}
	}
	if r.rewardCap == nil || r.vault == nil {
		return 0, &aurum.SequencingError{Op: "pay epoch reward", Detail: "reward capability not retained"}
	}
	rules := r.rules()
	// reward = active * numerator / denominator, widened to avoid overflow.
	reward := new(big.Int).SetUint64(pool.Active)
	reward.Mul(reward, new(big.Int).SetUint64(rules.RewardsRateNumerator))
	reward.Div(reward, new(big.Int).SetUint64(rules.RewardsRateDenominator))
	amount := reward.Uint64()
	acc := r.state.Accounts.Get(owner)
	if acc == nil {
		return 0, &aurum.ConfigurationError{Field: "owner", Reason: "no account at " + owner.Hex()}
	}
	if err := r.vault.Mint(r.rewardCap, acc, amount); err != nil {
		return 0, err
	}
	// Move the freshly minted coin from the owner's balance into the pool.
	acc.Balance -= amount
	pool.Active += amount
	return amount, nil
}

// SortedPoolRecords projects every pool into its canonical record, in pool
// creation order (which is roster order at genesis).
func (r *Registry) SortedPoolRecords() []PoolRecord {
	records := make([]PoolRecord, 0, len(r.order))
	for _, owner := range r.order {
		records = append(records, r.pools[owner].record())
	}
	return records
}
