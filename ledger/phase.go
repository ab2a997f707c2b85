// Bootstrap phase machine.
//
// The genesis sequence has a mandated step order, and several subsystems may
// only be touched once earlier ones are consistent. Rather than relying on
// comments ("must be called last"), the chain's bootstrap progress is an
// explicit state machine: each orchestration step names the phase it expects
// and the phase it produces, so an out-of-order call surfaces as a
// SequencingError on the first call instead of silently corrupting state.

package ledger

import (
	"github.com/aurumchain/go-aurum/aurum"
)

// Phase enumerates the bootstrap progress of the chain. There is no path back
// to an earlier phase; a failure at any phase voids the whole attempt.
type Phase uint8

const (
	// PhaseUninitialized is the zero state before any bootstrap step ran.
	PhaseUninitialized Phase = iota
	// PhaseAccountsBootstrapped: the framework account exists and its
	// governance capability has been handed off.
	PhaseAccountsBootstrapped
	// PhaseParametersInitialized: every singleton system parameter is set.
	PhaseParametersInitialized
	// PhaseTimeStarted: the clock is live; epoch and timestamp dependent
	// logic may now observe time.
	PhaseTimeStarted
	// PhaseCoinInitialized: the native coin exists and its capability
	// pair has been handed off.
	PhaseCoinInitialized
	// PhaseValidatorsJoining: the validator roster is being processed.
	PhaseValidatorsJoining
	// PhaseEpoch1Active: the first epoch transition promoted the pending
	// validators; the chain can make progress.
	PhaseEpoch1Active
)

var phaseNames = map[Phase]string{
	PhaseUninitialized:         "uninitialized",
	PhaseAccountsBootstrapped:  "accounts-bootstrapped",
	PhaseParametersInitialized: "parameters-initialized",
	PhaseTimeStarted:           "time-started",
	PhaseCoinInitialized:       "coin-initialized",
	PhaseValidatorsJoining:     "validators-joining",
	PhaseEpoch1Active:          "epoch1-active",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// Phase returns the current bootstrap phase.
func (s *State) Phase() Phase {
	return s.phase
}

// Advance moves the phase machine from `from` to `to`. The transition is
// refused unless the current phase is exactly `from` and `to` is the next
// phase, which makes every orchestration step a checked precondition.
func (s *State) Advance(from, to Phase) error {
	if s.phase != from {
		return &aurum.SequencingError{
			Op:     "phase transition to " + to.String(),
			Detail: "chain is in phase " + s.phase.String() + ", expected " + from.String(),
		}
	}
	if to != from+1 {
		return &aurum.SequencingError{
			Op:     "phase transition to " + to.String(),
			Detail: "phases may only advance one step at a time",
		}
	}
	s.phase = to
	return nil
}

// requirePhase returns a SequencingError unless the chain is in exactly p.
func (s *State) requirePhase(op string, p Phase) error {
	if s.phase != p {
		return &aurum.SequencingError{
			Op:     op,
			Detail: "chain is in phase " + s.phase.String() + ", expected " + p.String(),
		}
	}
	return nil
}
