// Package coin implements the native coin of the Aurum ledger and its
// capability registry. Supply changes are only possible through unforgeable
// mint/burn capability tokens issued by the vault during genesis:
//
//   - the reward mint capability is transferred to the stake registry so it
//     can later pay validator rewards;
//   - the burn capability is transferred to the transaction fee subsystem;
//   - a one-shot genesis mint grant funds the validator roster and is
//     destroyed as soon as the roster is processed, fixing the initial
//     supply contract.
//
// Capabilities are linear, consumed-once handles: destroying one invalidates
// it permanently, and every authority-requiring call re-checks liveness.
// After the vault is sealed no further capability can ever be issued, so
// post-genesis the designated reward path holds the only live mint authority.
package coin

import (
	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/ledger"
)

// MintCapability grants its holder authority to mint native coin.
type MintCapability struct {
	vault     *Vault
	destroyed bool
}

// BurnCapability grants its holder authority to burn native coin.
type BurnCapability struct {
	vault     *Vault
	destroyed bool
}

// Vault is the capability registry and supply ledger of the native coin.
type Vault struct {
	total uint64

	issued  bool
	granted bool
	sealed  bool
}

// Initialize creates the native coin: it opens the vault and issues the
// canonical mint/burn capability pair. It is the first step after time
// starts, and advances the chain into the coin-initialized phase.
//
// The returned mint capability must be handed to the stake registry (reward
// payments) and the burn capability to the fee subsystem; no other interface
// may request them.
func Initialize(st *ledger.State) (*Vault, *MintCapability, *BurnCapability, error) {
	if err := st.Advance(ledger.PhaseTimeStarted, ledger.PhaseCoinInitialized); err != nil {
		return nil, nil, nil, err
	}
	v := &Vault{}
	v.issued = true
	mint := &MintCapability{vault: v}
	burn := &BurnCapability{vault: v}
	return v, mint, burn, nil
}

// IssueGenesisGrant issues the one-shot mint capability that funds the
// validator roster. It can be issued exactly once, and never after the vault
// is sealed.
func (v *Vault) IssueGenesisGrant() (*MintCapability, error) {
	if v.sealed {
		return nil, &aurum.SequencingError{Op: "issue genesis grant", Detail: "vault is sealed"}
	}
	if v.granted {
		return nil, &aurum.SequencingError{Op: "issue genesis grant", Detail: "grant already issued"}
	}
	v.granted = true
	return &MintCapability{vault: v}, nil
}

// Seal permanently disables capability issuance. Called once the roster is
// processed; from then on the initial supply contract is fixed.
func (v *Vault) Seal() {
	v.sealed = true
}

// Sealed reports whether capability issuance is disabled.
func (v *Vault) Sealed() bool {
	return v.sealed
}

// TotalSupply returns the current total native coin supply.
func (v *Vault) TotalSupply() uint64 {
	return v.total
}

// Register marks acc as able to hold the native coin. Registering twice is
// a sequencing error: module initialization happens once per account.
func (v *Vault) Register(acc *ledger.Account) error {
	if acc.Modules.Coin {
		return &aurum.SequencingError{
			Op:     "register coin store",
			Detail: "account " + acc.Address.Hex() + " already registered",
		}
	}
	acc.Modules.Coin = true
	return nil
}

// Mint creates amount new coin in acc's balance. Requires a live mint
// capability issued by this vault and a coin-registered account.
func (v *Vault) Mint(cap *MintCapability, acc *ledger.Account, amount uint64) error {
	if err := v.checkMint(cap); err != nil {
		return err
	}
	if !acc.Modules.Coin {
		return &aurum.SequencingError{
			Op:     "mint",
			Detail: "account " + acc.Address.Hex() + " not registered for coin",
		}
	}
	acc.Balance += amount
	v.total += amount
	return nil
}

// Burn destroys amount coin from acc's balance. Requires a live burn
// capability issued by this vault.
func (v *Vault) Burn(cap *BurnCapability, acc *ledger.Account, amount uint64) error {
	if cap == nil || cap.vault != v {
		return &aurum.InvariantViolationError{
			Invariant: "burn authority",
			Detail:    "capability not issued by this vault",
		}
	}
	if cap.destroyed {
		return &aurum.InvariantViolationError{
			Invariant: "burn authority",
			Detail:    "capability has been destroyed",
		}
	}
	if acc.Balance < amount {
		return &aurum.InvariantViolationError{
			Invariant: "coin supply",
			Detail:    "burn exceeds account balance",
		}
	}
	acc.Balance -= amount
	v.total -= amount
	return nil
}

func (v *Vault) checkMint(cap *MintCapability) error {
	if cap == nil || cap.vault != v {
		return &aurum.InvariantViolationError{
			Invariant: "mint authority",
			Detail:    "capability not issued by this vault",
		}
	}
	if cap.destroyed {
		return &aurum.InvariantViolationError{
			Invariant: "mint authority",
			Detail:    "capability has been destroyed",
		}
	}
	return nil
}

// Destroy irreversibly revokes the capability. Any later use fails with an
// InvariantViolationError.
func (c *MintCapability) Destroy() {
	c.destroyed = true
}

// Destroyed reports whether the capability has been revoked.
func (c *MintCapability) Destroyed() bool {
	return c.destroyed
}

// Destroy irreversibly revokes the capability.
func (c *BurnCapability) Destroy() {
	c.destroyed = true
}

// Destroyed reports whether the capability has been revoked.
func (c *BurnCapability) Destroyed() bool {
	return c.destroyed
}
