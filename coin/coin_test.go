package coin

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/inter"
	"github.com/aurumchain/go-aurum/ledger"
)

// timeStartedState assembles a ledger state through the base genesis
// sequence, leaving it in the time-started phase the coin initializer
// expects.
func timeStartedState(t *testing.T) *ledger.State {
	require := require.New(t)
	rules := aurum.FakeNetRules()

	st := ledger.NewState()
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
	require.NoError(st.InitBlockMeta(inter.FromUnix(1608600000)))
	require.NoError(st.Advance(ledger.PhaseAccountsBootstrapped, ledger.PhaseParametersInitialized))
	require.NoError(st.StartClock(inter.FromUnix(1608600000)))
	return st
}

func testAccount(t *testing.T, st *ledger.State, tail byte) *ledger.Account {
	acc, err := st.Accounts.Create(common.BytesToAddress([]byte{0xaa, tail}))
	require.NoError(t, err)
	return acc
}

// TestInitializeRequiresTimeStarted verifies the coin cannot be created
// before the clock is live.
func TestInitializeRequiresTimeStarted(t *testing.T) {
	require := require.New(t)

	_, _, _, err := Initialize(ledger.NewState())
	var seqErr *aurum.SequencingError
	require.True(errors.As(err, &seqErr))
}

// TestInitialize verifies coin creation: zero initial supply, a live
// capability pair bound to the vault, and the phase advanced.
func TestInitialize(t *testing.T) {
	require := require.New(t)
	st := timeStartedState(t)

	v, mint, burn, err := Initialize(st)
	require.NoError(err)
	require.Equal(uint64(0), v.TotalSupply())
	require.False(v.Sealed())
	require.False(mint.Destroyed())
	require.False(burn.Destroyed())
	require.Equal(ledger.PhaseCoinInitialized, st.Phase())
}

// TestMintBurnAccounting verifies supply and balances move together through
// mint and burn.
func TestMintBurnAccounting(t *testing.T) {
	require := require.New(t)
	st := timeStartedState(t)

	v, mint, burn, err := Initialize(st)
	require.NoError(err)

	acc := testAccount(t, st, 1)
	require.NoError(v.Register(acc))

	require.NoError(v.Mint(mint, acc, 1000))
	require.Equal(uint64(1000), acc.Balance)
	require.Equal(uint64(1000), v.TotalSupply())

	require.NoError(v.Burn(burn, acc, 400))
	require.Equal(uint64(600), acc.Balance)
	require.Equal(uint64(600), v.TotalSupply())

	// Burning more than the balance is refused and changes nothing.
	var invErr *aurum.InvariantViolationError
	require.True(errors.As(v.Burn(burn, acc, 601), &invErr))
	require.Equal(uint64(600), acc.Balance)
	require.Equal(uint64(600), v.TotalSupply())
}

// TestMintRequiresRegistration verifies minting into an account that never
// initialized its coin store is a sequencing error.
func TestMintRequiresRegistration(t *testing.T) {
	require := require.New(t)
	st := timeStartedState(t)

	v, mint, _, err := Initialize(st)
	require.NoError(err)

	acc := testAccount(t, st, 1)
	var seqErr *aurum.SequencingError
	require.True(errors.As(v.Mint(mint, acc, 1), &seqErr))
	require.Equal(uint64(0), v.TotalSupply())
}

// TestRegisterOnce verifies coin registration happens once per account.
func TestRegisterOnce(t *testing.T) {
	require := require.New(t)
	st := timeStartedState(t)

	v, _, _, err := Initialize(st)
	require.NoError(err)

	acc := testAccount(t, st, 1)
	require.NoError(v.Register(acc))

	var seqErr *aurum.SequencingError
	require.True(errors.As(v.Register(acc), &seqErr))
}

// TestCapabilityDestroy verifies a destroyed capability is permanently
// unusable.
func TestCapabilityDestroy(t *testing.T) {
	require := require.New(t)
	st := timeStartedState(t)

	v, mint, burn, err := Initialize(st)
	require.NoError(err)

	acc := testAccount(t, st, 1)
	require.NoError(v.Register(acc))
	require.NoError(v.Mint(mint, acc, 100))

	mint.Destroy()
	require.True(mint.Destroyed())
	var invErr *aurum.InvariantViolationError
	require.True(errors.As(v.Mint(mint, acc, 1), &invErr))
	require.Equal(uint64(100), v.TotalSupply())

	burn.Destroy()
	require.True(errors.As(v.Burn(burn, acc, 1), &invErr))
	require.Equal(uint64(100), acc.Balance)
}

// TestForeignCapabilityRejected verifies a capability issued by one vault
// carries no authority over another.
func TestForeignCapabilityRejected(t *testing.T) {
	require := require.New(t)

	stA := timeStartedState(t)
	vA, mintA, burnA, err := Initialize(stA)
	require.NoError(err)
	_ = vA

	stB := timeStartedState(t)
	vB, _, _, err := Initialize(stB)
	require.NoError(err)

	acc := testAccount(t, stB, 1)
	require.NoError(vB.Register(acc))

	var invErr *aurum.InvariantViolationError
	require.True(errors.As(vB.Mint(mintA, acc, 1), &invErr))
	require.True(errors.As(vB.Mint(nil, acc, 1), &invErr))
	require.True(errors.As(vB.Burn(burnA, acc, 1), &invErr))
}

// TestGenesisGrant verifies the one-shot grant: issued at most once, never
// after sealing, and revocable.
func TestGenesisGrant(t *testing.T) {
	require := require.New(t)
	st := timeStartedState(t)

	v, _, _, err := Initialize(st)
	require.NoError(err)

	grant, err := v.IssueGenesisGrant()
	require.NoError(err)

	acc := testAccount(t, st, 1)
	require.NoError(v.Register(acc))
	require.NoError(v.Mint(grant, acc, 50))

	// A second grant is refused.
	var seqErr *aurum.SequencingError
	_, err = v.IssueGenesisGrant()
	require.True(errors.As(err, &seqErr))

	// Once destroyed, the grant is dead.
	grant.Destroy()
	var invErr *aurum.InvariantViolationError
	require.True(errors.As(v.Mint(grant, acc, 1), &invErr))
}

// TestSealedVaultIssuesNothing verifies sealing permanently disables
// capability issuance while leaving already-issued capabilities live.
func TestSealedVaultIssuesNothing(t *testing.T) {
	require := require.New(t)
	st := timeStartedState(t)

	v, mint, _, err := Initialize(st)
	require.NoError(err)

	v.Seal()
	require.True(v.Sealed())

	var seqErr *aurum.SequencingError
	_, err = v.IssueGenesisGrant()
	require.True(errors.As(err, &seqErr))

	// The capability pair issued before sealing keeps working.
	acc := testAccount(t, st, 1)
	require.NoError(v.Register(acc))
	require.NoError(v.Mint(mint, acc, 10))
}

// TestFeeBurner verifies the fee subsystem burns through its held capability
// and refuses a foreign one at construction.
func TestFeeBurner(t *testing.T) {
	require := require.New(t)
	st := timeStartedState(t)

	v, mint, burn, err := Initialize(st)
	require.NoError(err)

	acc := testAccount(t, st, 1)
	require.NoError(v.Register(acc))
	require.NoError(v.Mint(mint, acc, 100))

	burner, err := NewFeeBurner(v, burn)
	require.NoError(err)
	require.NoError(burner.BurnFees(acc, 30))
	require.Equal(uint64(70), acc.Balance)
	require.Equal(uint64(70), v.TotalSupply())

	var invErr *aurum.InvariantViolationError
	_, err = NewFeeBurner(v, nil)
	require.True(errors.As(err, &invErr))
}
