// Transaction fee subsystem.
//
// The fee burner is the designated long-lived holder of the burn capability.
// Genesis hands the capability over right after the coin is initialized;
// afterwards fee burning is the only supply-decreasing path.

package coin

import (
	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/ledger"
)

// FeeBurner holds the burn capability and destroys collected transaction
// fees.
type FeeBurner struct {
	vault *Vault
	cap   *BurnCapability
}

// NewFeeBurner binds the burn capability to the fee subsystem. The hand-off
// happens exactly once during genesis.
func NewFeeBurner(v *Vault, cap *BurnCapability) (*FeeBurner, error) {
	if cap == nil || cap.vault != v {
		return nil, &aurum.InvariantViolationError{
			Invariant: "burn authority",
			Detail:    "capability not issued by this vault",
		}
	}
	return &FeeBurner{vault: v, cap: cap}, nil
}

// BurnFees destroys amount collected fees from acc's balance.
func (f *FeeBurner) BurnFees(acc *ledger.Account, amount uint64) error {
	return f.vault.Burn(f.cap, acc, amount)
}
