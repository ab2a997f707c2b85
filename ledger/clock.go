// Time and epoch controller.
//
// The clock tracks logical chain time and the epoch counter. It is created
// dormant and marked "started" as the final step of the base genesis
// sequence; earlier steps assume time is not yet advancing, so starting the
// clock earlier would let epoch- and timestamp-dependent logic observe a live
// clock before the rest of the system is consistent. The ledger state gates
// the start behind the phase machine (see State.StartClock).

package ledger

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/inter"
)

// Clock tracks logical time and the epoch counter of the chain.
type Clock struct {
	started     bool
	genesisTime inter.Timestamp
	now         inter.Timestamp
	epoch       idx.Epoch
}

// NewClock returns a dormant clock at epoch 0.
func NewClock() *Clock {
	return &Clock{}
}

// start marks time as started at t. Called through State.StartClock only,
// which enforces the phase precondition.
func (c *Clock) start(t inter.Timestamp) error {
	if c.started {
		return &aurum.SequencingError{Op: "start clock", Detail: "time already started"}
	}
	c.started = true
	c.genesisTime = t
	c.now = t
	return nil
}

// HasStarted reports whether the chain considers time to be advancing.
func (c *Clock) HasStarted() bool {
	return c.started
}

// GenesisTime returns the timestamp at which time was started.
func (c *Clock) GenesisTime() inter.Timestamp {
	return c.genesisTime
}

// Now returns the current logical time. Zero until the clock starts.
func (c *Clock) Now() inter.Timestamp {
	return c.now
}

// CurrentEpoch returns the current epoch counter. Epoch 0 means the chain
// has no active validator set yet.
func (c *Clock) CurrentEpoch() idx.Epoch {
	return c.epoch
}

// AdvanceEpoch increments the epoch counter and returns the new epoch.
// Refused while the clock is dormant: an epoch transition before time starts
// is an orchestration bug.
func (c *Clock) AdvanceEpoch() (idx.Epoch, error) {
	if !c.started {
		return 0, &aurum.SequencingError{Op: "advance epoch", Detail: "time not started"}
	}
	c.epoch++
	return c.epoch, nil
}
