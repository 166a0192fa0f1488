// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/lvldb"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/pkg/errors"
)

// the parent id of every genesis block, its number decodes to 0xffffffff
var genesisParentID = ledger.Bytes32{0xff, 0xff, 0xff, 0xff}

// Builder helper to build genesis block.
type Builder struct {
	timestamp  uint64
	stateProcs []func(state *state.State) error
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// ComputeID compute genesis ID.
func (b *Builder) ComputeID() (ledger.Bytes32, error) {
	kv, err := lvldb.NewMem()
	if err != nil {
		return ledger.Bytes32{}, err
	}
	defer kv.Close()

	blk, _, err := b.Build(state.NewCreator(kv))
	if err != nil {
		return ledger.Bytes32{}, err
	}
	return blk.Header().ID(), nil
}

// Build build genesis block according to presets.
func (b *Builder) Build(stateCreator *state.Creator) (*block.Block, *state.Stage, error) {
	st := stateCreator.NewState()
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return nil, nil, errors.Wrap(err, "state process")
		}
	}
	if err := st.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "state")
	}

	stage := st.Stage()
	return new(block.Builder).
			ParentID(genesisParentID).
			Timestamp(b.timestamp).
			StateHash(stage.Hash()).
			Build(),
		stage, nil
}
