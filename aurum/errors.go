// Genesis error taxonomy.
//
// Bootstrap failures are never retried: the ledger state produced by a failed
// attempt is void and must be discarded wholesale. The error types below exist
// so callers and tests can classify a failure (bad input vs. violated
// invariant vs. broken orchestration) with errors.As, while the messages stay
// ordinary human-readable strings.

package aurum

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ConfigurationError reports a malformed or missing genesis configuration
// field. It aborts the bootstrap before any state mutation.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("genesis configuration: %s: %s", e.Field, e.Reason)
}

// DuplicateAddressError reports an attempt to create a ledger account at an
// address that already exists (duplicate validator roles or roster
// collisions).
type DuplicateAddressError struct {
	Address common.Address
}

func (e *DuplicateAddressError) Error() string {
	return fmt.Sprintf("account already exists: %s", e.Address.Hex())
}

// InvariantViolationError reports a violated economic or structural
// invariant: stake out of bounds, zero reward denominator, out-of-range
// voting power limit, failed proof of possession.
type InvariantViolationError struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violated: %s: %s", e.Invariant, e.Detail)
}

// SequencingError reports a violated internal ordering precondition, e.g.
// starting the clock before the parameter store is complete. This is a
// programmer error in orchestration and is fatal; it must never be caught
// and retried.
type SequencingError struct {
	Op     string
	Detail string
}

func (e *SequencingError) Error() string {
	return fmt.Sprintf("sequencing: %s: %s", e.Op, e.Detail)
}
