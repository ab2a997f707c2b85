// Block metadata tracking.
//
// Genesis records a single block-metadata entry: height 0, the genesis
// timestamp, and the configured epoch interval. The consensus layer continues
// the sequence once it starts operating; genesis only has to leave the record
// in a consistent initial shape.

package ledger

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/inter"
)

// BlockMeta is the block metadata record maintained from genesis onward.
type BlockMeta struct {
	// Height is the block height. Genesis is always height 0.
	Height idx.Block

	// Time is the timestamp of the block. For genesis this equals the
	// configured genesis time.
	Time inter.Timestamp

	// EpochInterval is the configured target epoch duration, used by the
	// reconfiguration subsystem to schedule epoch transitions.
	EpochInterval inter.Timestamp
}

// InitBlockMeta installs the genesis block metadata record. It requires the
// epoch interval to already be recorded in the parameter store, and may run
// only once.
func (s *State) InitBlockMeta(genesisTime inter.Timestamp) error {
	if s.Block != nil {
		return &aurum.SequencingError{Op: "init block metadata", Detail: "already initialized"}
	}
	if s.Params.EpochInterval() == 0 {
		return &aurum.SequencingError{Op: "init block metadata", Detail: "epoch interval not recorded"}
	}
	s.Block = &BlockMeta{
		Height:        0,
		Time:          genesisTime,
		EpochInterval: s.Params.EpochInterval(),
	}
	return nil
}
