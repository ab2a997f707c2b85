package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/inter"
)

var testGenesisTime = inter.FromUnix(1608600000)

// initializeParams writes every singleton parameter from the given rules and
// advances the state to PhaseParametersInitialized. The helper mirrors the
// base genesis sequence up to (but excluding) the clock start.
func initializeParams(t *testing.T, st *State, rules aurum.Rules) {
	require := require.New(t)

	_, gov, err := st.CreateFrameworkAccount()
	require.NoError(err)
	require.NoError(st.Params.BindGovernance(gov))

	require.NoError(st.Params.SetScriptIdentifiers(rules.Scripts))
	require.NoError(st.Params.SetConsensusParams(rules.Consensus))
	require.NoError(st.Params.SetProtocolVersion(rules.ProtocolVersion))
	require.NoError(st.Params.SetStakingRules(rules.Staking))
	require.NoError(st.Params.SetGasSchedule(rules.GasSchedule))
	require.NoError(st.Params.SetChainID(rules.ChainID))
	require.NoError(st.Params.SetEpochInterval(rules.EpochInterval))
	require.NoError(st.InitBlockMeta(testGenesisTime))
	require.NoError(st.Advance(PhaseAccountsBootstrapped, PhaseParametersInitialized))
}

// TestPhaseMachine verifies that phases may only advance one step at a time
// from the exact current phase.
func TestPhaseMachine(t *testing.T) {
	require := require.New(t)
	st := NewState()

	require.Equal(PhaseUninitialized, st.Phase())

	// Skipping a phase is refused.
	err := st.Advance(PhaseUninitialized, PhaseParametersInitialized)
	var seqErr *aurum.SequencingError
	require.True(errors.As(err, &seqErr))
	require.Equal(PhaseUninitialized, st.Phase())

	// Advancing from a phase the chain is not in is refused.
	err = st.Advance(PhaseAccountsBootstrapped, PhaseParametersInitialized)
	require.True(errors.As(err, &seqErr))

	// The legitimate single step works.
	require.NoError(st.Advance(PhaseUninitialized, PhaseAccountsBootstrapped))
	require.Equal(PhaseAccountsBootstrapped, st.Phase())
}

// TestCreateFrameworkAccount verifies the first bootstrap step: the framework
// account appears, the governance capability is handed out exactly once, and
// a repeat call is refused.
func TestCreateFrameworkAccount(t *testing.T) {
	require := require.New(t)
	st := NewState()

	acc, gov, err := st.CreateFrameworkAccount()
	require.NoError(err)
	require.NotNil(gov)
	require.Equal(FrameworkAddress, acc.Address)
	require.Equal(PhaseAccountsBootstrapped, st.Phase())
	require.True(st.Accounts.Exists(FrameworkAddress))

	// Second call is a sequencing error: the phase has moved on.
	_, _, err = st.CreateFrameworkAccount()
	var seqErr *aurum.SequencingError
	require.True(errors.As(err, &seqErr))
}

// TestDirectoryDuplicateCreate verifies that an address can be created at
// most once.
func TestDirectoryDuplicateCreate(t *testing.T) {
	require := require.New(t)
	dir := NewDirectory()

	addr := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	acc, err := dir.Create(addr)
	require.NoError(err)
	require.Equal(addr, acc.Address)

	_, err = dir.Create(addr)
	var dupErr *aurum.DuplicateAddressError
	require.True(errors.As(err, &dupErr))
	require.Equal(addr, dupErr.Address)
	require.Equal(1, dir.Len())
}

// TestDirectoryAuthKeyDerivation verifies that the initial authentication
// credential is a pure function of the address.
func TestDirectoryAuthKeyDerivation(t *testing.T) {
	require := require.New(t)

	addr := common.HexToAddress("0x00000000000000000000000000000000000000aa")

	a, err := NewDirectory().Create(addr)
	require.NoError(err)
	b, err := NewDirectory().Create(addr)
	require.NoError(err)

	require.Equal(a.AuthKey, b.AuthKey)
	require.NotEqual(common.Hash{}, a.AuthKey)
}

// TestDirectorySortedAddresses verifies the directory exposes its contents in
// ascending byte order regardless of creation order.
func TestDirectorySortedAddresses(t *testing.T) {
	require := require.New(t)
	dir := NewDirectory()

	hi := common.HexToAddress("0x00000000000000000000000000000000000000ff")
	lo := common.HexToAddress("0x0000000000000000000000000000000000000001")
	mid := common.HexToAddress("0x0000000000000000000000000000000000000080")

	for _, addr := range []common.Address{hi, lo, mid} {
		_, err := dir.Create(addr)
		require.NoError(err)
	}

	require.Equal([]common.Address{lo, mid, hi}, dir.SortedAddresses())

	records := dir.SortedRecords()
	require.Len(records, 3)
	require.Equal(lo, records[0].Address)
	require.Equal(hi, records[2].Address)
}

// TestParamStoreRequiresGovernance verifies that no write is accepted before
// the governance capability is bound.
func TestParamStoreRequiresGovernance(t *testing.T) {
	require := require.New(t)
	p := NewParamStore()

	var seqErr *aurum.SequencingError
	require.True(errors.As(p.SetProtocolVersion(1), &seqErr))
	require.True(errors.As(p.SetChainID(aurum.MainNetChainID), &seqErr))
}

// TestParamStoreBindGovernanceOnce verifies the capability hand-off happens
// exactly once and a spent capability cannot be rebound.
func TestParamStoreBindGovernanceOnce(t *testing.T) {
	require := require.New(t)
	var seqErr *aurum.SequencingError

	p := NewParamStore()
	require.True(errors.As(p.BindGovernance(nil), &seqErr))

	gov := &GovernanceCapability{}
	require.NoError(p.BindGovernance(gov))
	require.True(errors.As(p.BindGovernance(&GovernanceCapability{}), &seqErr))

	// The same capability cannot be transferred into a second store.
	other := NewParamStore()
	require.True(errors.As(other.BindGovernance(gov), &seqErr))
}

// TestParamStoreWriteOnce verifies that every singleton rejects a second
// write.
func TestParamStoreWriteOnce(t *testing.T) {
	require := require.New(t)
	var seqErr *aurum.SequencingError

	p := NewParamStore()
	require.NoError(p.BindGovernance(&GovernanceCapability{}))

	require.NoError(p.SetProtocolVersion(1))
	require.True(errors.As(p.SetProtocolVersion(2), &seqErr))
	require.Equal(uint64(1), p.ProtocolVersion())

	require.NoError(p.SetConsensusParams([]byte{0x01}))
	require.True(errors.As(p.SetConsensusParams([]byte{0x02}), &seqErr))

	require.NoError(p.SetChainID(aurum.MainNetChainID))
	require.True(errors.As(p.SetChainID(aurum.TestNetChainID), &seqErr))
	require.Equal(aurum.MainNetChainID, p.ChainID())

	require.NoError(p.SetEpochInterval(inter.Timestamp(time.Hour)))
	require.True(errors.As(p.SetEpochInterval(inter.Timestamp(time.Minute)), &seqErr))
}

// TestParamStoreRejectsEmptyBlobs verifies that empty consensus and gas
// schedule blobs are configuration errors, not silent no-ops.
func TestParamStoreRejectsEmptyBlobs(t *testing.T) {
	require := require.New(t)
	var cfgErr *aurum.ConfigurationError

	p := NewParamStore()
	require.NoError(p.BindGovernance(&GovernanceCapability{}))

	require.True(errors.As(p.SetConsensusParams(nil), &cfgErr))
	require.True(errors.As(p.SetGasSchedule(nil), &cfgErr))
	require.True(errors.As(p.SetEpochInterval(0), &cfgErr))
	require.False(p.Complete())
}

// TestParamStoreComplete verifies Complete() only holds once every singleton
// has been written.
func TestParamStoreComplete(t *testing.T) {
	require := require.New(t)

	st := NewState()
	require.False(st.Params.Complete())

	initializeParams(t, st, aurum.FakeNetRules())
	require.True(st.Params.Complete())
}

// TestStartClockOrdering verifies the clock refuses to start before the base
// sequence is complete, and starts exactly once afterwards.
func TestStartClockOrdering(t *testing.T) {
	require := require.New(t)
	var seqErr *aurum.SequencingError

	// Fresh state: wrong phase entirely.
	st := NewState()
	require.True(errors.As(st.StartClock(testGenesisTime), &seqErr))

	// Full base sequence: the clock starts and time becomes observable.
	st = NewState()
	initializeParams(t, st, aurum.FakeNetRules())
	require.False(st.Clock.HasStarted())

	require.NoError(st.StartClock(testGenesisTime))
	require.Equal(PhaseTimeStarted, st.Phase())
	require.True(st.Clock.HasStarted())
	require.Equal(testGenesisTime, st.Clock.GenesisTime())
	require.Equal(testGenesisTime, st.Clock.Now())

	// A second start is refused.
	require.True(errors.As(st.StartClock(testGenesisTime), &seqErr))
}

// TestStartClockRequiresBlockMeta verifies the clock refuses to start when
// the block metadata record is missing, even with all parameters written.
func TestStartClockRequiresBlockMeta(t *testing.T) {
	require := require.New(t)

	st := NewState()
	rules := aurum.FakeNetRules()

	_, gov, err := st.CreateFrameworkAccount()
	require.NoError(err)
	require.NoError(st.Params.BindGovernance(gov))
	require.NoError(st.Params.SetScriptIdentifiers(rules.Scripts))
	require.NoError(st.Params.SetConsensusParams(rules.Consensus))
	require.NoError(st.Params.SetProtocolVersion(rules.ProtocolVersion))
	require.NoError(st.Params.SetStakingRules(rules.Staking))
	require.NoError(st.Params.SetGasSchedule(rules.GasSchedule))
	require.NoError(st.Params.SetChainID(rules.ChainID))
	require.NoError(st.Params.SetEpochInterval(rules.EpochInterval))
	require.NoError(st.Advance(PhaseAccountsBootstrapped, PhaseParametersInitialized))

	var seqErr *aurum.SequencingError
	require.True(errors.As(st.StartClock(testGenesisTime), &seqErr))
}

// TestInitBlockMeta verifies block metadata needs a recorded epoch interval
// and may be installed only once.
func TestInitBlockMeta(t *testing.T) {
	require := require.New(t)
	var seqErr *aurum.SequencingError

	st := NewState()
	require.True(errors.As(st.InitBlockMeta(testGenesisTime), &seqErr))

	require.NoError(st.Params.BindGovernance(&GovernanceCapability{}))
	require.NoError(st.Params.SetEpochInterval(inter.Timestamp(time.Hour)))

	require.NoError(st.InitBlockMeta(testGenesisTime))
	require.Equal(uint64(0), uint64(st.Block.Height))
	require.Equal(testGenesisTime, st.Block.Time)
	require.Equal(inter.Timestamp(time.Hour), st.Block.EpochInterval)

	require.True(errors.As(st.InitBlockMeta(testGenesisTime), &seqErr))
}

// TestClockAdvanceEpoch verifies epoch transitions are refused on a dormant
// clock and increment monotonically afterwards.
func TestClockAdvanceEpoch(t *testing.T) {
	require := require.New(t)

	c := NewClock()
	_, err := c.AdvanceEpoch()
	var seqErr *aurum.SequencingError
	require.True(errors.As(err, &seqErr))

	require.NoError(c.start(testGenesisTime))
	e, err := c.AdvanceEpoch()
	require.NoError(err)
	require.Equal(uint64(1), uint64(e))
	e, err = c.AdvanceEpoch()
	require.NoError(err)
	require.Equal(uint64(2), uint64(e))
	require.Equal(e, c.CurrentEpoch())
}

// TestStateFingerprintDeterminism verifies two independently assembled states
// with the same inputs hash identically, and that any divergence changes the
// fingerprint.
func TestStateFingerprintDeterminism(t *testing.T) {
	require := require.New(t)

	build := func() *State {
		st := NewState()
		initializeParams(t, st, aurum.FakeNetRules())
		require.NoError(st.StartClock(testGenesisTime))
		return st
	}

	a := build()
	b := build()
	require.Equal(a.Fingerprint(), b.Fingerprint())

	// An extra account diverges the fingerprint.
	_, err := b.Accounts.Create(common.HexToAddress("0x00000000000000000000000000000000000000aa"))
	require.NoError(err)
	require.NotEqual(a.Fingerprint(), b.Fingerprint())
}
