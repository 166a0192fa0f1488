// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (

	"github.com/johnqh/auctions-contracts/block"
	"github.com/johnqh/auctions-contracts/ledger"
	"github.com/johnqh/auctions-contracts/state"
	"github.com/pkg/errors"
)

var log = ledger.NewLogger("genesis")

// Genesis to build genesis block.
type Genesis struct {
	builder *Builder
	id      ledger.Bytes32
	name    string
}

// Build builds the genesis block together with the staged genesis state.
// The stage must be committed only when the chain is created, never on restart.
func (g *Genesis) Build(stateCreator *state.Creator) (*block.Block, *state.Stage, error) {
	blk, stage, err := g.builder.Build(stateCreator)
	if err != nil {
		return nil, nil, err
	}
	if blk.Header().ID() != g.id {
		return nil, nil, errors.New("built genesis ID incorrect")
	}
	return blk, stage, nil
}

// ID returns genesis block ID.
func (g *Genesis) ID() ledger.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}
